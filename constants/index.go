package constants

// Trạng thái thanh toán của đơn hàng (server là nguồn sự thật duy nhất)
const (
	OrderPending   = "PENDING"
	OrderPaid      = "PAID"
	OrderCancelled = "CANCELLED"
)

// Trạng thái vé (chỉ đọc, hệ thống soát vé cập nhật)
const (
	TicketUnused  = "UNUSED"
	TicketScanned = "SCANNED"
)

// Trạng thái ghế trong sơ đồ ghế
const (
	SeatAvailable   = "AVAILABLE"
	SeatBooked      = "BOOKED"
	SeatMaintenance = "MAINTENANCE"
	SeatSelected    = "SELECTED"
)

// Loại ghế
const (
	SeatStandard = "STANDARD"
	SeatVIP      = "VIP"
)

// Loại ngày để tra bảng giá
const (
	DayWeekday = "weekday"
	DayWeekend = "weekend"
)

// Loại giảm giá
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Phương thức thanh toán
const (
	MethodSnap = "SNAP"
	MethodCash = "CASH"
)

// Kết quả từ popup thanh toán (callback phía trình duyệt, không đáng tin
// cho tới khi đối soát với server)
const (
	PaymentResultSuccess = "success"
	PaymentResultPending = "pending"
	PaymentResultError   = "error"
	PaymentResultClose   = "close"
)
