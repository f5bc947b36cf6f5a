package helper

import (
	"errors"
	"log"

	"movie_theater/database"
	"movie_theater/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetInfoCustomerFromToken lấy claim khách hàng từ JWT đã verify ở middleware
func GetInfoCustomerFromToken(c *fiber.Ctx) (model.TokenClaim, error) {
	u := c.Locals("user")
	if u == nil {
		return model.TokenClaim{}, errors.New("no token")
	}

	userToken, ok := u.(*jwt.Token)
	if !ok || userToken == nil {
		return model.TokenClaim{}, errors.New("invalid token type")
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, errors.New("invalid claims type")
	}

	customerIdFloat, ok := claims["customerId"].(float64)
	if !ok || customerIdFloat == 0 {
		log.Println("No valid customerId in claims")
		return model.TokenClaim{}, errors.New("missing customerId claim")
	}

	email, _ := claims["email"].(string)
	return model.TokenClaim{
		CustomerId: uint(customerIdFloat),
		Email:      email,
	}, nil
}

// GetActiveCustomer load khách hàng từ claim, chặn tài khoản bị khóa
func GetActiveCustomer(c *fiber.Ctx) (*model.Customer, error) {
	claim, err := GetInfoCustomerFromToken(c)
	if err != nil {
		return nil, err
	}

	var customer model.Customer
	if err := database.DB.First(&customer, "id = ? AND is_active = true", claim.CustomerId).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
