package handler

import (
	"errors"

	"cinema_retail/cart"
	"cinema_retail/constants"
	"cinema_retail/helper"
	"cinema_retail/model"
	"cinema_retail/utils"

	"github.com/gofiber/fiber/v2"
)

// GetSeatMap trả sơ đồ ghế của suất chiếu đang chọn, đã phủ trạng thái
// SELECTED từ giỏ hàng. Đây là ảnh chụp: lần submit đơn server vẫn kiểm
// tra lại ghế, sơ đồ này chỉ mang tính tham khảo cho màn chọn ghế.
func GetSeatMap(c *fiber.Ctx) error {
	userCart := cartStore.Get(sessionID(c))
	schedule := userCart.Schedule()
	if schedule == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MsgNoSchedule, nil)
	}

	seats, err := backendClient.FetchSeatMap(c.UserContext(), schedule.ID)
	if err != nil {
		return utils.BackendErrorResponse(c, err, constants.MsgBackendUnreachable)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"scheduleId": schedule.ID,
		"seats":      helper.BuildSeatMapView(seats, userCart.Selected()),
	})
}

// ToggleSeat chọn/bỏ chọn một ghế. Ghế được tra lại từ snapshot mới nhất
// của server trước khi đưa vào giỏ — không tin dữ liệu ghế client gửi lên.
func ToggleSeat(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ToggleSeatInput)

	userCart := cartStore.Get(sessionID(c))
	schedule := userCart.Schedule()
	if schedule == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MsgNoSchedule, nil)
	}

	seats, err := backendClient.FetchSeatMap(c.UserContext(), schedule.ID)
	if err != nil {
		return utils.BackendErrorResponse(c, err, constants.MsgBackendUnreachable)
	}

	seat, ok := helper.FindSeat(seats, input.SeatID)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MsgSeatNotFound, nil)
	}

	selected, totals, err := userCart.ToggleSeat(seat)
	if err != nil {
		if errors.Is(err, cart.ErrSeatBooked) || errors.Is(err, cart.ErrSeatMaintenance) {
			return utils.ErrorResponse(c, fiber.StatusConflict, err.Error(), nil)
		}
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"seatId":   seat.ID,
		"label":    seat.Label(),
		"selected": selected,
		"totals":   totals,
	})
}
