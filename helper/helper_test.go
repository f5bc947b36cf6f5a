package helper

import (
	"testing"
	"time"

	"movie_theater/constants"
	"movie_theater/database"
	"movie_theater/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// sqlite :memory: là DB riêng cho mỗi connection, giới hạn pool về 1
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedSchedule tạo 1 suất chiếu 10 ghế hàng A (A8 là VIP), startTime giờ chiếu
func seedSchedule(t *testing.T, db *gorm.DB, startTime time.Time) (model.Schedule, []model.ScheduleSeat) {
	t.Helper()

	customer := model.Customer{FullName: "Khách Test", Email: "test@example.com", IsActive: true}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	schedule := model.Schedule{
		StartTime:      startTime,
		EndTime:        startTime.Add(2 * time.Hour),
		Price:          100000,
		TotalSeats:     10,
		AvailableSeats: 10,
	}
	if err := db.Create(&schedule).Error; err != nil {
		t.Fatalf("seed schedule: %v", err)
	}

	seats := make([]model.ScheduleSeat, 0, 10)
	for col := 1; col <= 10; col++ {
		seatType := constants.SeatTypeNormal
		if col == 8 {
			seatType = constants.SeatTypeVIP
		}
		seats = append(seats, model.ScheduleSeat{
			ScheduleId: schedule.ID,
			SeatRow:    "A",
			SeatColumn: col,
			SeatType:   seatType,
			Status:     constants.SeatAvailable,
		})
	}
	if err := db.Create(&seats).Error; err != nil {
		t.Fatalf("seed seats: %v", err)
	}
	return schedule, seats
}

func testSeat(row string, col int) model.ScheduleSeat {
	return model.ScheduleSeat{SeatRow: row, SeatColumn: col}
}

func seatStatus(t *testing.T, db *gorm.DB, seatId uint) string {
	t.Helper()
	var seat model.ScheduleSeat
	if err := db.First(&seat, seatId).Error; err != nil {
		t.Fatalf("load seat %d: %v", seatId, err)
	}
	return seat.Status
}

func availableSeats(t *testing.T, db *gorm.DB, scheduleId uint) int {
	t.Helper()
	var schedule model.Schedule
	if err := db.First(&schedule, scheduleId).Error; err != nil {
		t.Fatalf("load schedule %d: %v", scheduleId, err)
	}
	return schedule.AvailableSeats
}

func bookedSeatCount(t *testing.T, db *gorm.DB, scheduleId uint) int {
	t.Helper()
	var count int64
	if err := db.Model(&model.ScheduleSeat{}).
		Where("schedule_id = ? AND status = ?", scheduleId, constants.SeatBooked).
		Count(&count).Error; err != nil {
		t.Fatalf("count booked seats: %v", err)
	}
	return int(count)
}
