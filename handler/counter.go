package handler

import (
	"log"

	"cinema_retail/cart"
	"cinema_retail/checkout"
	"cinema_retail/constants"
	"cinema_retail/helper"
	"cinema_retail/model"
	"cinema_retail/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

// CreateCounterOrder luồng bán vé tại quầy: thu ngân chọn suất + ghế + mã
// giảm giá trong một request, thanh toán tiền mặt nên bỏ qua cổng thanh
// toán và đối soát ngay sau khi tạo đơn. Đi qua đúng các guard chọn ghế
// của luồng online — ghế đã đặt hay bảo trì vẫn bị chặn như thường.
func CreateCounterOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CounterOrderInput)
	ctx := c.UserContext()

	schedule, err := backendClient.FetchSchedule(ctx, input.ScheduleID)
	if err != nil {
		return utils.BackendErrorResponse(c, err, constants.MsgScheduleNotFound)
	}

	table := helper.DefaultPriceTable()
	if rows, ferr := backendClient.FetchPriceTable(ctx); ferr != nil {
		log.Printf("⚠️ Không tải được bảng giá, dùng giá mặc định: %v", ferr)
	} else if parsed, perr := helper.NewPriceTable(rows); perr != nil {
		log.Printf("⚠️ Bảng giá từ server không hợp lệ, dùng giá mặc định: %v", perr)
	} else {
		table = parsed
	}

	seats, err := backendClient.FetchSeatMap(ctx, schedule.ID)
	if err != nil {
		return utils.BackendErrorResponse(c, err, constants.MsgBackendUnreachable)
	}

	counterCart := cart.New()
	counterCart.SetSchedule(*schedule, table)
	for _, seatID := range input.SeatIDs {
		seat, ok := helper.FindSeat(seats, seatID)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MsgSeatNotFound, nil)
		}
		if _, _, terr := counterCart.ToggleSeat(seat); terr != nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, terr.Error(), nil)
		}
	}

	if input.DiscountCode != "" {
		discount, derr := backendClient.VerifyDiscount(ctx, input.DiscountCode)
		if derr != nil {
			return utils.BackendErrorResponse(c, derr, constants.MsgBackendUnreachable)
		}
		counterCart.ApplyDiscount(*discount)
	}

	var customer model.CustomerInfo
	copier.Copy(&customer, &input)
	customer.Name = input.CustomerName

	// Orchestrator dùng một lần cho đơn tại quầy, không dính vào luồng
	// online của phiên
	o := checkout.New(backendClient, counterCart)
	o.OnPaid = func(order model.Order) {
		utils.SendOrderConfirmationEmail(order)
	}

	res, err := o.SubmitOffline(ctx, customer)
	if err != nil {
		return utils.BackendErrorResponse(c, err, constants.MsgBackendUnreachable)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, res)
}
