package utils

import (
	"errors"

	"cinema_retail/backend"

	"github.com/gofiber/fiber/v2"
)

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

// BackendErrorResponse đẩy lỗi từ server đặt vé ra client: lỗi 4xx giữ
// nguyên mã và thông báo của server, còn lại coi là lỗi mạng để người dùng
// thử lại — không tự chế thông báo thay server.
func BackendErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return ErrorResponse(c, apiErr.StatusCode, apiErr.Error(), nil)
	}
	return ErrorResponse(c, fiber.StatusBadGateway, fallback, err)
}

func Ptr[T any](v T) *T {
	return &v
}
