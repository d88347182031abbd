package handler

import (
	"log"

	"cinema_retail/constants"
	"cinema_retail/helper"
	"cinema_retail/model"
	"cinema_retail/utils"

	"github.com/gofiber/fiber/v2"
)

// GetSchedules danh sách suất chiếu đang mở bán (proxy từ server đặt vé)
func GetSchedules(c *fiber.Ctx) error {
	schedules, err := backendClient.FetchSchedules(c.UserContext())
	if err != nil {
		return utils.BackendErrorResponse(c, err, constants.MsgBackendUnreachable)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, schedules)
}

// SelectSchedule chọn suất chiếu cho giỏ hàng của phiên. Ghế và giảm giá
// đang chọn (nếu có) bị xóa, bảng giá được tải lại cho suất mới.
func SelectSchedule(c *fiber.Ctx) error {
	input := c.Locals("input").(model.SelectScheduleInput)
	ctx := c.UserContext()

	schedule, err := backendClient.FetchSchedule(ctx, input.ScheduleID)
	if err != nil {
		return utils.BackendErrorResponse(c, err, constants.MsgScheduleNotFound)
	}

	// Không tải được bảng giá thì dùng giá mặc định chứ không chặn luồng —
	// degrade có chủ đích, phải log rõ
	table := helper.DefaultPriceTable()
	rows, err := backendClient.FetchPriceTable(ctx)
	if err != nil {
		log.Printf("⚠️ Không tải được bảng giá, dùng giá mặc định: %v", err)
	} else if parsed, perr := helper.NewPriceTable(rows); perr != nil {
		log.Printf("⚠️ Bảng giá từ server không hợp lệ, dùng giá mặc định: %v", perr)
	} else {
		table = parsed
	}

	userCart := cartStore.Get(sessionID(c))
	userCart.SetSchedule(*schedule, table)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"schedule": schedule,
		"dayType":  helper.DayTypeOf(schedule.ShowTime),
	})
}
