package helper

import (
	"testing"
	"time"

	"movie_theater/constants"
	"movie_theater/model"
	"movie_theater/utils"

	"github.com/stretchr/testify/assert"
)

func TestSweepExpiredPayments(t *testing.T) {
	db := setupTestDB(t)
	schedule, seats := seedSchedule(t, db, time.Now().Add(24*time.Hour))

	// Đơn quá hạn
	overdueOrder := GenerateOrderCode()
	overdueAt := time.Now().Add(-time.Minute)
	_, _, err := ReserveSeats(db, 1, model.CreateBookingInput{
		ScheduleId: schedule.ID,
		SeatIds:    []uint{seats[0].ID},
	}, ReserveOptions{OrderCode: utils.Ptr(overdueOrder), ExpiresAt: &overdueAt})
	assert.NoError(t, err)

	// Đơn còn hạn
	freshOrder := GenerateOrderCode()
	freshAt := time.Now().Add(time.Hour)
	_, _, err = ReserveSeats(db, 1, model.CreateBookingInput{
		ScheduleId: schedule.ID,
		SeatIds:    []uint{seats[1].ID},
	}, ReserveOptions{OrderCode: utils.Ptr(freshOrder), ExpiresAt: &freshAt})
	assert.NoError(t, err)

	scheduleIds := SweepExpiredPayments(db)
	assert.Equal(t, []uint{schedule.ID}, scheduleIds)

	var overdue, fresh model.Booking
	db.Where("order_code = ?", overdueOrder).First(&overdue)
	db.Where("order_code = ?", freshOrder).First(&fresh)

	assert.Equal(t, constants.BookingExpired, overdue.Status)
	assert.Equal(t, constants.BookingPending, fresh.Status)
	assert.Equal(t, constants.SeatAvailable, seatStatus(t, db, seats[0].ID))
	assert.Equal(t, constants.SeatBooked, seatStatus(t, db, seats[1].ID))
	assert.Equal(t, 9, availableSeats(t, db, schedule.ID))
}

func TestSweepSkipsPaidBookings(t *testing.T) {
	db := setupTestDB(t)
	schedule, seats := seedSchedule(t, db, time.Now().Add(24*time.Hour))

	orderCode := GenerateOrderCode()
	expiresAt := time.Now().Add(-time.Minute)
	_, _, err := ReserveSeats(db, 1, model.CreateBookingInput{
		ScheduleId: schedule.ID,
		SeatIds:    []uint{seats[0].ID},
	}, ReserveOptions{OrderCode: utils.Ptr(orderCode), ExpiresAt: &expiresAt})
	assert.NoError(t, err)

	// Đã thanh toán (expires_at được xóa khi confirm)
	_, err = ConfirmOrderPaid(db, orderCode)
	assert.NoError(t, err)

	assert.Empty(t, SweepExpiredPayments(db))

	var booking model.Booking
	db.Where("order_code = ?", orderCode).First(&booking)
	assert.Equal(t, constants.BookingPaid, booking.Status)
	assert.Equal(t, constants.SeatBooked, seatStatus(t, db, seats[0].ID))
}

func TestSweepNoOverdueOrders(t *testing.T) {
	db := setupTestDB(t)
	seedSchedule(t, db, time.Now().Add(24*time.Hour))

	assert.Empty(t, SweepExpiredPayments(db))
}

func TestCleanupStaleBookings(t *testing.T) {
	db := setupTestDB(t)

	// Suất đã chiếu 1 tiếng trước, booking trực tiếp chưa bao giờ thanh toán
	pastSchedule, pastSeats := seedSchedule(t, db, time.Now().Add(-time.Hour))
	_, _, err := ReserveSeats(db, 1, model.CreateBookingInput{
		ScheduleId: pastSchedule.ID,
		SeatIds:    []uint{pastSeats[0].ID},
	}, ReserveOptions{})
	assert.NoError(t, err)

	assert.Equal(t, 1, CleanupStaleBookings(db))

	var booking model.Booking
	db.Where("schedule_id = ?", pastSchedule.ID).First(&booking)
	assert.Equal(t, constants.BookingExpired, booking.Status)
	assert.Equal(t, constants.SeatAvailable, seatStatus(t, db, pastSeats[0].ID))
	assert.Equal(t, 10, availableSeats(t, db, pastSchedule.ID))

	// Chạy lại không dọn thêm gì
	assert.Equal(t, 0, CleanupStaleBookings(db))
}

func TestCleanupKeepsUpcomingBookings(t *testing.T) {
	db := setupTestDB(t)
	schedule, seats := seedSchedule(t, db, time.Now().Add(24*time.Hour))

	_, _, err := ReserveSeats(db, 1, model.CreateBookingInput{
		ScheduleId: schedule.ID,
		SeatIds:    []uint{seats[0].ID},
	}, ReserveOptions{})
	assert.NoError(t, err)

	assert.Equal(t, 0, CleanupStaleBookings(db))

	var booking model.Booking
	db.Where("schedule_id = ?", schedule.ID).First(&booking)
	assert.Equal(t, constants.BookingPending, booking.Status)
}

func TestSchedulePaymentTimeoutFires(t *testing.T) {
	db := setupTestDB(t)
	schedule, seats := seedSchedule(t, db, time.Now().Add(24*time.Hour))

	orderCode := GenerateOrderCode()
	expiresAt := time.Now().Add(50 * time.Millisecond)
	_, _, err := ReserveSeats(db, 1, model.CreateBookingInput{
		ScheduleId: schedule.ID,
		SeatIds:    []uint{seats[0].ID},
	}, ReserveOptions{OrderCode: utils.Ptr(orderCode), ExpiresAt: &expiresAt})
	assert.NoError(t, err)

	SchedulePaymentTimeout(db, orderCode, 50*time.Millisecond)

	assert.Eventually(t, func() bool {
		var booking model.Booking
		db.Where("order_code = ?", orderCode).First(&booking)
		return booking.Status == constants.BookingExpired
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, constants.SeatAvailable, seatStatus(t, db, seats[0].ID))
}

func TestCancelPaymentTimeoutDisarms(t *testing.T) {
	db := setupTestDB(t)
	schedule, seats := seedSchedule(t, db, time.Now().Add(24*time.Hour))

	orderCode := GenerateOrderCode()
	_, _, err := ReserveSeats(db, 1, model.CreateBookingInput{
		ScheduleId: schedule.ID,
		SeatIds:    []uint{seats[0].ID},
	}, ReserveOptions{OrderCode: utils.Ptr(orderCode)})
	assert.NoError(t, err)

	SchedulePaymentTimeout(db, orderCode, 50*time.Millisecond)
	CancelPaymentTimeout(orderCode)

	time.Sleep(150 * time.Millisecond)

	var booking model.Booking
	db.Where("order_code = ?", orderCode).First(&booking)
	assert.Equal(t, constants.BookingPending, booking.Status)
	assert.Equal(t, constants.SeatBooked, seatStatus(t, db, seats[0].ID))
}
