package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ErrorKind string

const (
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindConflict           ErrorKind = "CONFLICT"
	KindInvalidState       ErrorKind = "INVALID_STATE"
	KindSecurityViolation  ErrorKind = "SECURITY_VIOLATION"
	KindGatewayUnavailable ErrorKind = "GATEWAY_UNAVAILABLE"
)

// AppError gắn kind cho lỗi nghiệp vụ, map sang HTTP đúng 1 chỗ ở RespondError
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NotFoundError(message string, err error) *AppError {
	return NewAppError(KindNotFound, message, err)
}

func ConflictError(message string, err error) *AppError {
	return NewAppError(KindConflict, message, err)
}

func InvalidStateError(message string, err error) *AppError {
	return NewAppError(KindInvalidState, message, err)
}

func SecurityError(message string, err error) *AppError {
	return NewAppError(KindSecurityViolation, message, err)
}

func GatewayError(message string, err error) *AppError {
	return NewAppError(KindGatewayUnavailable, message, err)
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var errMsg interface{}
	if err != nil {
		errMsg = err.Error()
	} else {
		errMsg = nil
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   errMsg,
	})
}

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// RespondError map AppError kind → HTTP status, lỗi khác → 500
func RespondError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := fiber.StatusInternalServerError
		switch appErr.Kind {
		case KindNotFound:
			status = fiber.StatusNotFound
		case KindConflict:
			status = fiber.StatusConflict
		case KindInvalidState:
			status = fiber.StatusBadRequest
		case KindSecurityViolation:
			status = fiber.StatusForbidden
		case KindGatewayUnavailable:
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{
			"message": appErr.Message,
			"kind":    appErr.Kind,
			"error":   errMsgOrNil(appErr.Err),
		})
	}
	return ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi hệ thống", err)
}

func errMsgOrNil(err error) interface{} {
	if err == nil {
		return nil
	}
	return err.Error()
}

func ApplyPagination(query *gorm.DB, limit, page *int) *gorm.DB {
	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		query = query.Limit(*limit)
		offset := *limit * (*page - 1)
		query = query.Offset(offset)
	}
	return query
}

func Ptr[T any](v T) *T {
	return &v
}
