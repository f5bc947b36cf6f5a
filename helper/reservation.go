package helper

import (
	"errors"
	"fmt"
	"log"
	"time"

	"movie_theater/constants"
	"movie_theater/model"
	"movie_theater/utils"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GenerateBookingCode() string {
	return uuid.New().String()
}

func GenerateOrderCode() string {
	return "BOOKING-" + uuid.New().String()
}

func GenerateRequestId() string {
	return "REQ-" + uuid.New().String()
}

// ReserveOptions tùy chọn cho luồng thanh toán gateway
type ReserveOptions struct {
	OrderCode     *string
	PaymentMethod *string
	ExpiresAt     *time.Time
}

// ReserveSeats giữ ghế all-or-nothing: chuyển ghế AVAILABLE→BOOKED bằng
// update có điều kiện (CAS), trừ available_seats và tạo booking PENDING
// trong cùng 1 transaction. Hai request tranh cùng ghế thì tối đa 1 thắng,
// request thua nhận Conflict, không bao giờ commit nửa chừng.
func ReserveSeats(db *gorm.DB, customerId uint, input model.CreateBookingInput, opts ReserveOptions) ([]model.Booking, *string, error) {
	var schedule model.Schedule
	if err := db.First(&schedule, input.ScheduleId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, utils.NotFoundError("Schedule not found", err)
		}
		return nil, nil, err
	}

	seen := make(map[uint]bool, len(input.SeatIds))
	for _, seatId := range input.SeatIds {
		if seen[seatId] {
			return nil, nil, utils.InvalidStateError("Duplicate seat ids in selection", nil)
		}
		seen[seatId] = true
	}

	var seats []model.ScheduleSeat
	if err := db.Where("schedule_id = ? AND id IN ?", schedule.ID, input.SeatIds).Find(&seats).Error; err != nil {
		return nil, nil, err
	}
	if len(seats) != len(input.SeatIds) {
		return nil, nil, utils.NotFoundError("One or more seats not found", nil)
	}

	seatById := make(map[uint]model.ScheduleSeat, len(seats))
	for _, seat := range seats {
		if seat.Status != constants.SeatAvailable {
			return nil, nil, utils.ConflictError(fmt.Sprintf("Seat %s is already booked", SeatLabel(seat)), nil)
		}
		seatById[seat.ID] = seat
	}

	warning := CheckSeatConsecutiveness(seats)
	if warning != nil {
		log.Printf("Seat selection warning for schedule %d: %s", schedule.ID, *warning)
	}

	var bookings []model.Booking
	err := db.Transaction(func(tx *gorm.DB) error {
		// CAS: chỉ thành công khi TẤT CẢ ghế còn AVAILABLE
		res := tx.Model(&model.ScheduleSeat{}).
			Where("id IN ? AND status = ?", input.SeatIds, constants.SeatAvailable).
			Update("status", constants.SeatBooked)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(input.SeatIds)) {
			return utils.ConflictError("One or more seats are already booked", nil)
		}

		res = tx.Model(&model.Schedule{}).
			Where("id = ? AND available_seats >= ?", schedule.ID, len(input.SeatIds)).
			UpdateColumn("available_seats", gorm.Expr("available_seats - ?", len(input.SeatIds)))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return utils.ConflictError("Not enough available seats", nil)
		}

		now := time.Now()
		status := constants.BookingPending
		for _, seatId := range input.SeatIds {
			seat := seatById[seatId]
			bookings = append(bookings, model.Booking{
				BookingCode:    GenerateBookingCode(),
				CustomerId:     customerId,
				ScheduleId:     schedule.ID,
				ScheduleSeatId: seat.ID,
				BookingDate:    now,
				Status:         status,
				PromotionId:    input.PromotionId,
				Price:          CalculateSeatPrice(schedule, seat),
				OrderCode:      opts.OrderCode,
				PaymentMethod:  opts.PaymentMethod,
				ExpiresAt:      opts.ExpiresAt,
			})
		}
		return tx.Create(&bookings).Error
	})
	if err != nil {
		return nil, nil, err
	}

	log.Printf("Created %d bookings for customer %d, schedule %d", len(bookings), customerId, schedule.ID)
	return bookings, warning, nil
}

// releaseSeatTx trả 1 ghế BOOKED→AVAILABLE và cộng lại available_seats.
// Update có điều kiện nên gọi trùng không cộng 2 lần.
func releaseSeatTx(tx *gorm.DB, scheduleId uint, scheduleSeatId uint) error {
	res := tx.Model(&model.ScheduleSeat{}).
		Where("id = ? AND status = ?", scheduleSeatId, constants.SeatBooked).
		Update("status", constants.SeatAvailable)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}
	return tx.Model(&model.Schedule{}).
		Where("id = ?", scheduleId).
		UpdateColumn("available_seats", gorm.Expr("available_seats + ?", 1)).Error
}

// CancelBooking hủy vé PENDING của chính chủ, trước giờ chiếu ít nhất 6 tiếng.
// Hủy vé đã CANCELLED là idempotent (trả thành công, không đổi gì).
func CancelBooking(db *gorm.DB, bookingCode string, customerId uint) error {
	var booking model.Booking
	if err := db.Preload("Schedule").Where("booking_code = ?", bookingCode).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("Booking not found", err)
		}
		return err
	}
	if booking.CustomerId != customerId {
		log.Printf("Unauthorized cancel attempt for booking %s by customer %d", bookingCode, customerId)
		return utils.NotFoundError("Booking not found", nil)
	}
	if booking.Status == constants.BookingCancelled {
		log.Printf("Booking already cancelled: %s", bookingCode)
		return nil
	}
	if booking.Status != constants.BookingPending {
		return utils.InvalidStateError("Only pending bookings can be cancelled", nil)
	}
	if booking.Schedule.StartTime.Before(time.Now().Add(constants.CancelCutoffHours * time.Hour)) {
		return utils.InvalidStateError("Cannot cancel booking less than 6 hours before showtime", nil)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Booking{}).
			Where("id = ? AND status = ?", booking.ID, constants.BookingPending).
			Updates(map[string]any{"status": constants.BookingCancelled, "expires_at": nil})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// thua race với confirm/expire
			return utils.InvalidStateError("Booking is no longer pending", nil)
		}
		return releaseSeatTx(tx, booking.ScheduleId, booking.ScheduleSeatId)
	})
}

// ConfirmOrderPaid chuyển toàn bộ booking PENDING của đơn sang PAID sau khi
// callback đã được xác thực. Booking không còn PENDING thì bỏ qua (no-op),
// nên callback đến sau timeout không hồi sinh được booking EXPIRED.
func ConfirmOrderPaid(db *gorm.DB, orderCode string) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := db.Where("order_code = ?", orderCode).Find(&bookings).Error; err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, utils.NotFoundError("No bookings found for order", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Booking{}).
			Where("order_code = ? AND status = ?", orderCode, constants.BookingPending).
			Updates(map[string]any{
				"status":         constants.BookingPaid,
				"payment_method": constants.PaymentMethodMoMo,
				"paid_at":        time.Now(),
				"expires_at":     nil,
			})
		if res.Error != nil {
			return res.Error
		}
		log.Printf("Confirmed %d bookings as PAID for order %s", res.RowsAffected, orderCode)
		return nil
	})
	if err != nil {
		return nil, err
	}

	CancelPaymentTimeout(orderCode)

	if err := db.Where("order_code = ?", orderCode).Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ExpireOrder chuyển các booking còn PENDING đã quá hạn của đơn sang EXPIRED
// và trả ghế, trả về danh sách booking thực sự bị expire. Nguồn sự thật là
// cột expires_at: retry vừa gia hạn đơn thì timer cũ nổ muộn cũng không expire
// được. Booking đã PAID/CANCELLED giữ nguyên, nên timer nổ sau khi thanh toán
// thành công là no-op an toàn.
func ExpireOrder(db *gorm.DB, orderCode string) ([]model.Booking, error) {
	now := time.Now()
	var bookings []model.Booking
	if err := db.
		Where("order_code = ? AND status = ? AND (expires_at IS NULL OR expires_at <= ?)",
			orderCode, constants.BookingPending, now).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, nil
	}

	var expired []model.Booking
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, booking := range bookings {
			res := tx.Model(&model.Booking{}).
				Where("id = ? AND status = ? AND (expires_at IS NULL OR expires_at <= ?)",
					booking.ID, constants.BookingPending, now).
				Updates(map[string]any{"status": constants.BookingExpired, "expires_at": nil})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue // đã được confirm/cancel hoặc gia hạn trong lúc đó
			}
			if err := releaseSeatTx(tx, booking.ScheduleId, booking.ScheduleSeatId); err != nil {
				return err
			}
			expired = append(expired, booking)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(expired) > 0 {
		log.Printf("Expired %d bookings for order %s, seats released", len(expired), orderCode)
	}
	return expired, nil
}

// HasDuplicateBooking chặn gửi trùng: cùng khách + suất chiếu + ghế đã có
// booking PENDING/PAID thì không cho khởi tạo thanh toán lần nữa
func HasDuplicateBooking(db *gorm.DB, customerId uint, scheduleId uint, seatIds []uint) (bool, error) {
	var count int64
	err := db.Model(&model.Booking{}).
		Where("customer_id = ? AND schedule_id = ? AND schedule_seat_id IN ? AND status IN ?",
			customerId, scheduleId, seatIds,
			[]string{constants.BookingPending, constants.BookingPaid}).
		Count(&count).Error
	return count > 0, err
}

func ToBookingResponse(booking model.Booking, seat model.ScheduleSeat) model.BookingResponse {
	var resp model.BookingResponse
	if err := copier.Copy(&resp, &booking); err != nil {
		log.Printf("Lỗi convert booking %s: %v", booking.BookingCode, err)
	}
	resp.SeatLabel = SeatLabel(seat)
	return resp
}

func ToBookingResponses(db *gorm.DB, bookings []model.Booking) []model.BookingResponse {
	responses := make([]model.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		seat := booking.ScheduleSeat
		if seat.ID == 0 {
			db.First(&seat, booking.ScheduleSeatId)
		}
		responses = append(responses, ToBookingResponse(booking, seat))
	}
	return responses
}
