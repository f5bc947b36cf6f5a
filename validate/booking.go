package validate

import (
	"movie_theater/model"
	"movie_theater/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateBookingInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func CreateBookings() fiber.Handler {
	return CreateBooking()
}

func InitiatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.InitiatePaymentInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}
