package router

import (
	"movie_theater/handler"
	"movie_theater/middleware"
	"movie_theater/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	// Public
	movie := v1.Group("/movies")
	movie.Get("/", handler.GetMovies)

	schedule := v1.Group("/schedules", logger.New())
	schedule.Get("/", handler.GetSchedules)
	schedule.Get("/:scheduleId", handler.GetScheduleById)
	schedule.Get("/:scheduleId/seats", handler.GetScheduleSeats)

	// Vé của khách (yêu cầu đăng nhập)
	booking := v1.Group("/bookings", logger.New())
	booking.Get("/", middleware.Protected(), handler.GetMyBookings)
	booking.Get("/:bookingCode", middleware.Protected(), handler.GetBookingDetail)
	booking.Post("/", middleware.Protected(), validate.CreateBookings(), handler.CreateBookings)
	booking.Post("/single", middleware.Protected(), validate.CreateBooking(), handler.CreateBooking)
	booking.Post("/:bookingCode/cancel", middleware.Protected(), handler.CancelBooking)

	// Thanh toán MoMo
	payment := v1.Group("/payments", logger.New())
	payment.Post("/momo", middleware.Protected(), validate.InitiatePayment(), handler.InitiateMoMoPayment)
	payment.Post("/momo/retry/:orderCode", middleware.Protected(), handler.RetryMoMoPayment)

	// Server-to-Server: MoMo gọi về, xác thực bằng chữ ký chứ không phải JWT
	app.Get("/momo/ipn", handler.MoMoCallback)
	app.Post("/momo/ipn", handler.MoMoCallback)

	// Realtime sơ đồ ghế
	v1.Get("/ws/schedules/:scheduleId/seats", websocket.New(handler.ScheduleSeatWebsocket))
}
