package handler

import (
	"encoding/base64"
	"errors"
	"log"

	"movie_theater/database"
	"movie_theater/helper"
	"movie_theater/model"
	"movie_theater/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// POST /api/v1/bookings - đặt nhiều ghế, booking PENDING trả về ngay
func CreateBookings(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateBookingInput)

	customer, err := helper.GetActiveCustomer(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", err)
	}

	bookings, warning, err := helper.ReserveSeats(database.DB, customer.ID, input, helper.ReserveOptions{})
	if err != nil {
		return utils.RespondError(c, err)
	}

	BroadcastSchedule(input.ScheduleId)

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"bookings": helper.ToBookingResponses(database.DB, bookings),
		"warning":  warning,
	})
}

// POST /api/v1/bookings/single - đặt 1 ghế (giữ tương thích client cũ)
func CreateBooking(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateBookingInput)
	input.SeatIds = input.SeatIds[:1]

	customer, err := helper.GetActiveCustomer(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", err)
	}

	bookings, _, err := helper.ReserveSeats(database.DB, customer.ID, input, helper.ReserveOptions{})
	if err != nil {
		return utils.RespondError(c, err)
	}

	BroadcastSchedule(input.ScheduleId)

	return utils.SuccessResponse(c, fiber.StatusCreated, helper.ToBookingResponses(database.DB, bookings)[0])
}

// GET /api/v1/bookings - vé của khách đang đăng nhập
func GetMyBookings(c *fiber.Ctx) error {
	customer, err := helper.GetActiveCustomer(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", err)
	}

	var bookings []model.Booking
	if err := database.DB.
		Preload("ScheduleSeat").
		Preload("Schedule").
		Preload("Schedule.Movie").
		Where("customer_id = ?", customer.ID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải danh sách vé", err)
	}

	response := []fiber.Map{}
	for _, booking := range bookings {
		response = append(response, fiber.Map{
			"bookingCode": booking.BookingCode,
			"movieTitle":  booking.Schedule.Movie.Title,
			"showtime":    booking.Schedule.StartTime.Format("15:04 - 02/01/2006"),
			"seatLabel":   helper.SeatLabel(booking.ScheduleSeat),
			"status":      booking.Status,
			"price":       booking.Price,
			"orderCode":   booking.OrderCode,
			"paidAt":      booking.PaidAt,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GET /api/v1/bookings/:bookingCode - chi tiết vé kèm QR
func GetBookingDetail(c *fiber.Ctx) error {
	bookingCode := c.Params("bookingCode")

	customer, err := helper.GetActiveCustomer(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", err)
	}

	var booking model.Booking
	if err := database.DB.
		Preload("ScheduleSeat").
		Preload("Schedule").
		Preload("Schedule.Movie").
		Preload("Schedule.Room").
		Where("booking_code = ?", bookingCode).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.RespondError(c, utils.NotFoundError("Booking not found", err))
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải vé", err)
	}
	if booking.CustomerId != customer.ID {
		log.Printf("Unauthorized access to booking %s by customer %d", bookingCode, customer.ID)
		return utils.RespondError(c, utils.NotFoundError("Booking not found", nil))
	}

	qrBase64 := ""
	qrBytes, err := utils.GenerateQRCode(booking.BookingCode, 400)
	if err != nil {
		log.Printf("Lỗi tạo QR cho vé %s: %v", booking.BookingCode, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"bookingCode":   booking.BookingCode,
		"movieTitle":    booking.Schedule.Movie.Title,
		"room":          booking.Schedule.Room.Name,
		"showtime":      booking.Schedule.StartTime.Format("15:04 - 02/01/2006"),
		"seatLabel":     helper.SeatLabel(booking.ScheduleSeat),
		"status":        booking.Status,
		"price":         booking.Price,
		"paymentMethod": booking.PaymentMethod,
		"paidAt":        booking.PaidAt,
		"qrCode":        qrBase64,
	})
}

// POST /api/v1/bookings/:bookingCode/cancel - hủy vé (trước giờ chiếu 6 tiếng)
func CancelBooking(c *fiber.Ctx) error {
	bookingCode := c.Params("bookingCode")
	if bookingCode == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mã vé không hợp lệ", nil)
	}

	customer, err := helper.GetActiveCustomer(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", err)
	}

	if err := helper.CancelBooking(database.DB, bookingCode, customer.ID); err != nil {
		return utils.RespondError(c, err)
	}

	var booking model.Booking
	if err := database.DB.Preload("ScheduleSeat").Where("booking_code = ?", bookingCode).First(&booking).Error; err == nil {
		BroadcastSchedule(booking.ScheduleId)
		utils.SendCancelConfirmationEmail(customer.Email, booking.BookingCode, helper.SeatLabel(booking.ScheduleSeat), booking.Price)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Hủy vé thành công",
	})
}
