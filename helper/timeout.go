package helper

import (
	"log"
	"sync"
	"time"

	"movie_theater/config"
	"movie_theater/constants"
	"movie_theater/model"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Timer trong RAM chỉ là tối ưu cho đường nhanh; nguồn sự thật là cột
// expires_at trên booking, được job quét định kỳ xử lý nên restart không mất.
var (
	timeoutTimers = make(map[string]*time.Timer)
	timeoutMutex  sync.Mutex
)

var paymentScheduler gocron.Scheduler

func PaymentTimeout() time.Duration {
	seconds := config.ConfigInt("MOMO_TIMEOUT_SECONDS", constants.DefaultPaymentTimeoutSeconds)
	return time.Duration(seconds) * time.Second
}

// SchedulePaymentTimeout hẹn giờ expire đơn nếu không có callback thành công
func SchedulePaymentTimeout(db *gorm.DB, orderCode string, delay time.Duration) {
	timeoutMutex.Lock()
	if old, ok := timeoutTimers[orderCode]; ok {
		old.Stop()
	}
	timeoutTimers[orderCode] = time.AfterFunc(delay, func() {
		timeoutMutex.Lock()
		delete(timeoutTimers, orderCode)
		timeoutMutex.Unlock()

		log.Printf("Payment timeout fired for order %s", orderCode)
		if _, err := ExpireOrder(db, orderCode); err != nil {
			// ghế chưa trả thì booking vẫn PENDING quá hạn, job quét sẽ thử lại
			log.Printf("Lỗi expire đơn %s: %v", orderCode, err)
		}
	})
	timeoutMutex.Unlock()
}

// CancelPaymentTimeout gỡ timer khi thanh toán đã xác nhận (best-effort:
// timer đã chạy thì ExpireOrder tự no-op với booking PAID)
func CancelPaymentTimeout(orderCode string) {
	timeoutMutex.Lock()
	defer timeoutMutex.Unlock()
	if t, ok := timeoutTimers[orderCode]; ok {
		t.Stop()
		delete(timeoutTimers, orderCode)
		log.Printf("Cancelled payment timeout for order %s", orderCode)
	}
}

// SweepExpiredPayments expire mọi booking gateway còn PENDING đã quá hạn,
// trả về các schedule bị ảnh hưởng để broadcast lại sơ đồ ghế.
// Đây là đường bền: timer của process đã chết vẫn được dọn ở đây.
func SweepExpiredPayments(db *gorm.DB) []uint {
	var orderCodes []string
	if err := db.Model(&model.Booking{}).
		Distinct("order_code").
		Where("status = ? AND order_code IS NOT NULL AND expires_at < ?", constants.BookingPending, time.Now()).
		Pluck("order_code", &orderCodes).Error; err != nil {
		log.Printf("Lỗi quét booking quá hạn: %v", err)
		return nil
	}

	affected := make(map[uint]bool)
	for _, orderCode := range orderCodes {
		expired, err := ExpireOrder(db, orderCode)
		if err != nil {
			log.Printf("Lỗi expire đơn %s khi quét: %v", orderCode, err)
			continue // giữ lại cho lần quét sau
		}
		CancelPaymentTimeout(orderCode)
		for _, booking := range expired {
			affected[booking.ScheduleId] = true
		}
	}

	scheduleIds := make([]uint, 0, len(affected))
	for id := range affected {
		scheduleIds = append(scheduleIds, id)
	}
	return scheduleIds
}

// CleanupStaleBookings expire các booking còn PENDING của suất chiếu đã bắt
// đầu (không còn thanh toán/hủy được nữa) và trả ghế, để ghế của suất cũ
// không bị giữ vô thời hạn bởi booking bỏ dở không qua gateway.
func CleanupStaleBookings(db *gorm.DB) int {
	var bookings []model.Booking
	if err := db.Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
		Where("bookings.status = ? AND schedules.start_time < ?", constants.BookingPending, time.Now()).
		Find(&bookings).Error; err != nil {
		log.Printf("Lỗi quét booking của suất đã chiếu: %v", err)
		return 0
	}

	cleaned := 0
	for _, booking := range bookings {
		err := db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&model.Booking{}).
				Where("id = ? AND status = ?", booking.ID, constants.BookingPending).
				Updates(map[string]any{"status": constants.BookingExpired, "expires_at": nil})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil
			}
			cleaned++
			return releaseSeatTx(tx, booking.ScheduleId, booking.ScheduleSeatId)
		})
		if err != nil {
			log.Printf("Lỗi dọn booking %s: %v", booking.BookingCode, err)
		}
	}
	if cleaned > 0 {
		log.Printf("Cleaned up %d stale pending bookings", cleaned)
	}
	return cleaned
}

// StartPaymentTimeoutScheduler chạy job quét mỗi 15 giây. notify (có thể nil)
// được gọi với các schedule vừa có ghế được trả để broadcast sơ đồ ghế.
func StartPaymentTimeoutScheduler(db *gorm.DB, notify func(scheduleIds []uint)) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler thanh toán: %v", err)
		return
	}
	paymentScheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(15*time.Second),
		gocron.NewTask(func() {
			scheduleIds := SweepExpiredPayments(db)
			if notify != nil && len(scheduleIds) > 0 {
				notify(scheduleIds)
			}
		}),
	)
	if err != nil {
		log.Printf("Lỗi đăng ký job quét thanh toán: %v", err)
		return
	}

	// Dọn booking bỏ dở của suất đã chiếu lúc 4h sáng hằng ngày
	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(4, 0, 0))),
		gocron.NewTask(func() {
			CleanupStaleBookings(db)
		}),
	)
	if err != nil {
		log.Printf("Lỗi đăng ký job dọn suất đã chiếu: %v", err)
		return
	}

	s.Start()
	log.Println("Scheduler timeout thanh toán đã khởi động (mỗi 15 giây)")
}

func StopPaymentTimeoutScheduler() {
	if paymentScheduler != nil {
		if err := paymentScheduler.Shutdown(); err != nil {
			log.Printf("Lỗi dừng scheduler thanh toán: %v", err)
		}
	}
}
