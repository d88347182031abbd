package constants

// Thông báo trả về cho client
const (
	MsgSessionRequired    = "Vui lòng khởi tạo phiên đặt vé"
	MsgInvalidSession     = "Phiên đặt vé không hợp lệ hoặc đã hết hạn"
	MsgNoSchedule         = "Vui lòng chọn suất chiếu trước"
	MsgScheduleNotFound   = "Không tìm thấy suất chiếu"
	MsgSeatNotFound       = "Không tìm thấy ghế trong sơ đồ"
	MsgSeatBooked         = "Ghế đã được đặt, vui lòng chọn ghế khác"
	MsgSeatMaintenance    = "Ghế đang bảo trì, không thể chọn"
	MsgEmptySelection     = "Chưa chọn ghế nào"
	MsgMissingPaymentCfg  = "Thiếu cấu hình cổng thanh toán, không thể tiếp tục"
	MsgCheckoutInProgress = "Đang có giao dịch thanh toán chưa hoàn tất"
	MsgOrderNotFound      = "Không tìm thấy đơn hàng"
	MsgOrderNotPending    = "Đơn hàng không ở trạng thái chờ thanh toán"
	MsgCancelFailed       = "Hủy đơn hàng thất bại"
	MsgBackendUnreachable = "Không kết nối được máy chủ đặt vé, vui lòng thử lại"
	MsgTooManyRequests    = "Thao tác quá nhanh, vui lòng thử lại sau"
)
