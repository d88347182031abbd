package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema_retail/constants"
	"cinema_retail/helper"
	"cinema_retail/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// SessionProtected bắt buộc request mang token phiên đặt vé
func SessionProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("session_token")

		if token == "" {
			// check header Authorization: Bearer xxx
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, 401, constants.MsgSessionRequired, errors.New("no token"))
		}

		sessionID, err := helper.ParseSessionToken(token)
		if err != nil {
			return utils.ErrorResponse(c, 401, constants.MsgInvalidSession, err)
		}

		c.Locals("sessionId", sessionID)
		return c.Next()
	}
}

// RateLimit giới hạn số request theo IP trên cửa công khai, đếm bằng Redis
// theo cửa sổ cố định. Redis không kết nối được thì cho qua hết — giới hạn
// tốc độ không được phép làm sập luồng đặt vé.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) fiber.Handler {
	if rdb == nil || limit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("rl:%s:%s", c.IP(), c.Route().Path)

		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis lỗi thì bỏ qua giới hạn
			return c.Next()
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}
		if count > int64(limit) {
			return utils.ErrorResponse(c, fiber.StatusTooManyRequests, constants.MsgTooManyRequests, nil)
		}
		return c.Next()
	}
}
