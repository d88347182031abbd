package handler

import (
	"cinema_retail/constants"
	"cinema_retail/model"
	"cinema_retail/utils"

	"github.com/gofiber/fiber/v2"
)

// GetCart trả lựa chọn hiện tại của phiên kèm tổng tiền tính lại
func GetCart(c *fiber.Ctx) error {
	userCart := cartStore.Get(sessionID(c))

	schedule := userCart.Schedule()
	if schedule == nil {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"schedule": nil,
			"seats":    []string{},
		})
	}

	totals, err := userCart.Totals()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không tính được tổng tiền", err)
	}

	seats := userCart.Seats()
	labels := make([]string, 0, len(seats))
	for _, seat := range seats {
		labels = append(labels, seat.Label())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"schedule": schedule,
		"seats":    labels,
		"seatIds":  userCart.SeatIDs(),
		"discount": userCart.Discount(),
		"totals":   totals,
	})
}

// ApplyDiscount xác thực mã với server rồi mới đưa vào giỏ. Server từ chối
// (hết hạn, hết lượt, ngưng hoạt động...) thì trả nguyên văn lý do.
func ApplyDiscount(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ApplyDiscountInput)

	userCart := cartStore.Get(sessionID(c))
	if userCart.Schedule() == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MsgNoSchedule, nil)
	}

	discount, err := backendClient.VerifyDiscount(c.UserContext(), input.Code)
	if err != nil {
		return utils.BackendErrorResponse(c, err, constants.MsgBackendUnreachable)
	}

	userCart.ApplyDiscount(*discount)

	totals, err := userCart.Totals()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không tính được tổng tiền", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"discount": discount,
		"totals":   totals,
	})
}

// RemoveDiscount gỡ mã giảm giá khỏi giỏ
func RemoveDiscount(c *fiber.Ctx) error {
	userCart := cartStore.Get(sessionID(c))
	userCart.RemoveDiscount()

	totals, err := userCart.Totals()
	if err != nil {
		// Giỏ chưa có suất chiếu thì tổng coi như rỗng
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"discount": nil})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"discount": nil,
		"totals":   totals,
	})
}

// ClearCart người dùng chủ động hủy luồng đặt vé
func ClearCart(c *fiber.Ctx) error {
	cartStore.Get(sessionID(c)).Clear()
	return utils.SuccessResponse(c, fiber.StatusOK, "Đã xóa giỏ hàng")
}
