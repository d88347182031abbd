package model

// SnapConfig là cấu hình công khai của cổng thanh toán, tải một lần khi
// vào màn thanh toán. Thiếu client key thì không được phép submit đơn.
type SnapConfig struct {
	ClientKey string `json:"clientKey"`
}

// PaymentSession tồn tại từ lúc tạo đơn tới khi cổng thanh toán trả kết quả.
// Không bao giờ được lưu trữ lâu dài.
type PaymentSession struct {
	OrderID   uint   `json:"orderId"`
	SnapToken string `json:"snapToken"`
	ClientKey string `json:"clientKey"`
}
