package handler

import (
	"errors"
	"strconv"

	"cinema_retail/cart"
	"cinema_retail/checkout"
	"cinema_retail/constants"
	"cinema_retail/model"
	"cinema_retail/utils"

	"github.com/gofiber/fiber/v2"
)

// Checkout submit đơn hàng và trả snap token để mở popup thanh toán.
// Chặn trước khi gọi mạng: giỏ rỗng hoặc thiếu cấu hình thanh toán thì
// từ chối luôn, không phí một vòng round trip.
func Checkout(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CheckoutInput)
	sid := sessionID(c)

	o := orchestratorFor(sid)
	if s := o.State(); s.IsTerminal() && s != checkout.StateFailed {
		// luồng trước đã kết thúc, bắt đầu luồng mới
		o = resetOrchestrator(sid)
	}

	session, err := o.Submit(c.UserContext(), model.CustomerInfo{
		Name:  input.CustomerName,
		Phone: input.Phone,
		Email: input.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrNoSchedule),
			errors.Is(err, checkout.ErrEmptySelection),
			errors.Is(err, checkout.ErrCheckoutInProgress):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, checkout.ErrMissingPaymentConfig):
			return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, err.Error(), nil)
		}
		return utils.BackendErrorResponse(c, err, constants.MsgBackendUnreachable)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"orderId":   session.OrderID,
		"snapToken": session.SnapToken,
		"clientKey": session.ClientKey,
		"state":     o.State(),
	})
}

// PaymentOutcome nhận kết quả popup thanh toán từ trình duyệt. Bất kể
// popup báo gì — success, pending, error hay người dùng đóng ngang — đều
// đối soát với server trước khi trả trạng thái cuối cùng.
func PaymentOutcome(c *fiber.Ctx) error {
	input := c.Locals("input").(model.PaymentOutcomeInput)

	o := orchestratorFor(sessionID(c))
	if active := o.Order(); active == nil || active.ID != input.OrderID {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.MsgOrderNotFound,
			errors.New("outcome không khớp đơn hàng đang thanh toán"))
	}

	res, err := o.HandleOutcome(c.UserContext(), input.Result)
	if err != nil {
		if errors.Is(err, checkout.ErrNoActiveOrder) {
			return utils.ErrorResponse(c, fiber.StatusConflict, err.Error(), nil)
		}
		return utils.BackendErrorResponse(c, err, constants.MsgBackendUnreachable)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func orderIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("orderId"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("orderId không hợp lệ")
	}
	return uint(id), nil
}

// GetInvoice đọc trạng thái đơn hàng từ server cho màn hóa đơn. Nút trả
// tiền / hủy đơn chỉ bật khi đơn còn PENDING.
func GetInvoice(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	order, err := backendClient.OrderStatus(c.UserContext(), orderID)
	if err != nil {
		return utils.BackendErrorResponse(c, err, constants.MsgOrderNotFound)
	}

	pending := order.PaymentStatus == constants.OrderPending
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"order":     order,
		"canPay":    pending,
		"canCancel": pending,
	})
}

// ResumePayment lấy snap token mới cho đơn còn PENDING ("thanh toán ngay"
// trên màn hóa đơn)
func ResumePayment(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	o := orchestratorFor(sessionID(c))
	session, err := o.ResumePayment(c.UserContext(), orderID)
	if err != nil {
		if errors.Is(err, checkout.ErrOrderNotPending) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
		}
		return utils.BackendErrorResponse(c, err, constants.MsgBackendUnreachable)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderId":   session.OrderID,
		"snapToken": session.SnapToken,
		"clientKey": session.ClientKey,
	})
}

// CancelOrder hủy đơn còn PENDING. Server xác nhận xong mới báo đã hủy —
// không đánh dấu hủy trước ở client; server từ chối thì đơn vẫn PENDING
// và lý do được trả nguyên văn.
func CancelOrder(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	o := orchestratorFor(sessionID(c))
	order, err := o.Cancel(c.UserContext(), orderID)
	if err != nil {
		return utils.BackendErrorResponse(c, err, constants.MsgCancelFailed)
	}

	utils.SendOrderCancelledEmail(*order)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Hủy đơn hàng thành công, ghế đã được giải phóng",
		"order":   order,
	})
}
