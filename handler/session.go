package handler

import (
	"time"

	"cinema_retail/helper"
	"cinema_retail/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// StartSession khởi tạo phiên đặt vé ẩn danh. Token phiên là thứ duy nhất
// client giữ lại qua reload — giỏ hàng sống trong bộ nhớ server theo phiên.
func StartSession(c *fiber.Ctx) error {
	sessionID := uuid.NewString()

	token, err := helper.GenerateSessionToken(sessionID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không khởi tạo được phiên", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "session_token",
		Value:    token,
		Expires:  time.Now().Add(helper.SessionTokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"sessionToken": token,
	})
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals("sessionId").(string)
	return id
}
