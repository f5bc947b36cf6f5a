package handler

import (
	"log"
	"strings"
	"sync"
	"time"

	"movie_theater/constants"
	"movie_theater/database"
	"movie_theater/helper"
	"movie_theater/model"
	"movie_theater/utils"

	"github.com/gofiber/fiber/v2"
)

var (
	momoService *helper.MoMoService
	momoOnce    sync.Once
)

func getMoMoService() *helper.MoMoService {
	momoOnce.Do(func() {
		momoService = helper.NewMoMoService()
	})
	return momoService
}

// POST /api/v1/payments/momo - giữ ghế rồi khởi tạo thanh toán MoMo
func InitiateMoMoPayment(c *fiber.Ctx) error {
	input := c.Locals("input").(model.InitiatePaymentInput)

	customer, err := helper.GetActiveCustomer(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", err)
	}

	duplicate, err := helper.HasDuplicateBooking(database.DB, customer.ID, input.ScheduleId, input.SeatIds)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi kiểm tra booking", err)
	}
	if duplicate {
		return utils.RespondError(c, utils.ConflictError("Duplicate bookings found for the selected seats", nil))
	}

	orderCode := helper.GenerateOrderCode()
	expiresAt := time.Now().Add(helper.PaymentTimeout())

	bookings, warning, err := helper.ReserveSeats(database.DB, customer.ID,
		model.CreateBookingInput{
			ScheduleId:  input.ScheduleId,
			SeatIds:     input.SeatIds,
			PromotionId: input.PromotionId,
		},
		helper.ReserveOptions{
			OrderCode:     utils.Ptr(orderCode),
			PaymentMethod: utils.Ptr(constants.PaymentMethodMoMo),
			ExpiresAt:     &expiresAt,
		})
	if err != nil {
		return utils.RespondError(c, err)
	}

	helper.SchedulePaymentTimeout(database.DB, orderCode, helper.PaymentTimeout())
	BroadcastSchedule(input.ScheduleId)

	var amount int64
	for _, booking := range bookings {
		amount += int64(booking.Price)
	}

	result, err := getMoMoService().InitiatePayment(amount, orderCode, helper.GenerateRequestId(), "Movie ticket payment")
	if err != nil {
		// Ghế vẫn đang giữ, hết hạn sẽ tự trả; client có thể gọi retry
		return utils.RespondError(c, err)
	}
	if result.ResultCode != 0 {
		log.Printf("MoMo declined order %s: resultCode=%d message=%s", orderCode, result.ResultCode, result.Message)
		return utils.RespondError(c, utils.GatewayError("MoMo payment initiation failed: "+result.Message, nil))
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"orderCode": orderCode,
		"payUrl":    result.PayUrl,
		"amount":    amount,
		"expiresAt": expiresAt,
		"bookings":  helper.ToBookingResponses(database.DB, bookings),
		"warning":   warning,
	})
}

// POST /api/v1/payments/momo/retry/:orderCode - lấy payUrl mới cho đơn còn PENDING
func RetryMoMoPayment(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	customer, err := helper.GetActiveCustomer(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", err)
	}

	var bookings []model.Booking
	if err := database.DB.
		Where("order_code = ? AND customer_id = ? AND status = ?", orderCode, customer.ID, constants.BookingPending).
		Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải đơn", err)
	}
	if len(bookings) == 0 {
		return utils.RespondError(c, utils.NotFoundError("No pending bookings found for order", nil))
	}

	// Gia hạn cửa sổ thanh toán trước khi phát lại payUrl
	expiresAt := time.Now().Add(helper.PaymentTimeout())
	if err := database.DB.Model(&model.Booking{}).
		Where("order_code = ? AND status = ?", orderCode, constants.BookingPending).
		Update("expires_at", expiresAt).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi gia hạn đơn", err)
	}
	helper.SchedulePaymentTimeout(database.DB, orderCode, helper.PaymentTimeout())

	var amount int64
	for _, booking := range bookings {
		amount += int64(booking.Price)
	}

	result, err := getMoMoService().InitiatePayment(amount, orderCode, helper.GenerateRequestId(), "Movie ticket payment")
	if err != nil {
		return utils.RespondError(c, err)
	}
	if result.ResultCode != 0 {
		return utils.RespondError(c, utils.GatewayError("MoMo payment initiation failed: "+result.Message, nil))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderCode": orderCode,
		"payUrl":    result.PayUrl,
		"amount":    amount,
		"expiresAt": expiresAt,
	})
}

// MoMoCallback nhận IPN từ MoMo (GET query hoặc POST form/json).
// Callback báo thất bại KHÔNG trả ghế ngay: đơn vẫn PENDING tới hạn,
// khách còn cơ hội retry, hết hạn thì job timeout tự trả ghế.
func MoMoCallback(c *fiber.Ctx) error {
	var params model.MoMoCallbackParams
	if err := c.QueryParser(&params); err != nil || params.OrderId == "" {
		if err := c.BodyParser(&params); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Tham số callback không hợp lệ", err)
		}
	}

	if err := getMoMoService().VerifyCallback(params); err != nil {
		return utils.RespondError(c, err)
	}

	if params.ResultCode != "0" {
		log.Printf("MoMo payment failed for order %s: resultCode=%s message=%s, relying on existing timeout",
			params.OrderId, params.ResultCode, params.Message)
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"orderCode": params.OrderId,
			"status":    "FAILED",
			"message":   params.Message,
		})
	}

	bookings, err := helper.ConfirmOrderPaid(database.DB, params.OrderId)
	if err != nil {
		return utils.RespondError(c, err)
	}

	sendOrderConfirmationEmail(params.OrderId)
	BroadcastSchedules(scheduleIdsOf(bookings))

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderCode": params.OrderId,
		"bookings":  helper.ToBookingResponses(database.DB, bookings),
	})
}

func scheduleIdsOf(bookings []model.Booking) []uint {
	seen := make(map[uint]bool)
	ids := make([]uint, 0, 1)
	for _, booking := range bookings {
		if !seen[booking.ScheduleId] {
			seen[booking.ScheduleId] = true
			ids = append(ids, booking.ScheduleId)
		}
	}
	return ids
}

func sendOrderConfirmationEmail(orderCode string) {
	var bookings []model.Booking
	if err := database.DB.
		Preload("Customer").
		Preload("ScheduleSeat").
		Preload("Schedule").
		Preload("Schedule.Movie").
		Where("order_code = ? AND status = ?", orderCode, constants.BookingPaid).
		Find(&bookings).Error; err != nil || len(bookings) == 0 {
		log.Printf("Không tải được booking để gửi email cho đơn %s: %v", orderCode, err)
		return
	}

	seatLabels := make([]string, 0, len(bookings))
	var total float64
	for _, booking := range bookings {
		seatLabels = append(seatLabels, helper.SeatLabel(booking.ScheduleSeat))
		total += booking.Price
	}

	utils.SendBookingConfirmationEmail(bookings[0].Customer.Email, utils.BookingEmailData{
		OrderCode:   orderCode,
		MovieName:   bookings[0].Schedule.Movie.Title,
		Showtime:    bookings[0].Schedule.StartTime.Format("15:04 - 02/01/2006"),
		Seats:       strings.Join(seatLabels, ", "),
		TotalAmount: total,
	})
}
