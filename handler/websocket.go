package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"movie_theater/config"
	"movie_theater/database"
	"movie_theater/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once

	seatConnections = make(map[uint]map[*websocket.Conn]bool)
	seatMutex       sync.Mutex
)

func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		addr := config.Config("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	})
	return redisClient
}

type SeatUI struct {
	Id     uint   `json:"id"`
	Label  string `json:"label"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// FetchScheduleSeats lấy sơ đồ ghế hiện tại, nhóm theo hàng
func FetchScheduleSeats(scheduleId uint) (map[string][]SeatUI, error) {
	var seats []model.ScheduleSeat
	if err := database.DB.
		Where("schedule_id = ?", scheduleId).
		Order("seat_row, seat_column").
		Find(&seats).Error; err != nil {
		return nil, err
	}

	result := make(map[string][]SeatUI)
	for _, s := range seats {
		result[s.SeatRow] = append(result[s.SeatRow], SeatUI{
			Id:     s.ID,
			Label:  fmt.Sprintf("%s%d", s.SeatRow, s.SeatColumn),
			Type:   s.SeatType,
			Status: s.Status,
		})
	}
	return result, nil
}

// ScheduleSeatWebsocket đẩy sơ đồ ghế realtime cho client đang chọn ghế
func ScheduleSeatWebsocket(c *websocket.Conn) {
	scheduleIdStr := c.Params("scheduleId")
	id64, err := strconv.ParseUint(scheduleIdStr, 10, 64)
	if err != nil {
		log.Printf("Invalid scheduleId: %s", scheduleIdStr)
		c.Close()
		return
	}
	scheduleId := uint(id64)

	seatMutex.Lock()
	if seatConnections[scheduleId] == nil {
		seatConnections[scheduleId] = make(map[*websocket.Conn]bool)
	}
	seatConnections[scheduleId][c] = true
	seatMutex.Unlock()

	defer func() {
		seatMutex.Lock()
		delete(seatConnections[scheduleId], c)
		if len(seatConnections[scheduleId]) == 0 {
			delete(seatConnections, scheduleId)
		}
		seatMutex.Unlock()
		c.Close()
	}()

	// Gửi ngay trạng thái ghế cho client mới connect
	if seats, err := FetchScheduleSeats(scheduleId); err == nil {
		c.WriteJSON(seats)
	}

	// Sub kênh Redis của suất chiếu
	pubsub := getRedisClient().Subscribe(
		context.Background(),
		fmt.Sprintf("schedule:%d", scheduleId),
	)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		payload := []byte(msg.Payload)

		seatMutex.Lock()
		for conn := range seatConnections[scheduleId] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(seatConnections[scheduleId], conn)
			}
		}
		seatMutex.Unlock()
	}
}

// BroadcastSchedule publish sơ đồ ghế mới nhất lên Redis để mọi instance fan-out
func BroadcastSchedule(scheduleId uint) {
	seats, err := FetchScheduleSeats(scheduleId)
	if err != nil {
		log.Printf("Lỗi load ghế để broadcast schedule %d: %v", scheduleId, err)
		return
	}

	payload, err := json.Marshal(seats)
	if err != nil {
		return
	}

	if err := getRedisClient().Publish(
		context.Background(),
		fmt.Sprintf("schedule:%d", scheduleId),
		payload,
	).Err(); err != nil {
		log.Printf("Lỗi publish sơ đồ ghế schedule %d: %v", scheduleId, err)
	}
}

// BroadcastSchedules dùng cho job quét expire (nhiều suất cùng lúc)
func BroadcastSchedules(scheduleIds []uint) {
	for _, id := range scheduleIds {
		BroadcastSchedule(id)
	}
}
