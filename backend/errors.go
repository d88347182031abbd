package backend

import "fmt"

// APIError giữ nguyên văn thông báo lỗi từ server đặt vé.
// Tầng trên không được tự chế lại nội dung thông báo.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server trả về mã lỗi %d", e.StatusCode)
}

// IsConflict lỗi 4xx: ghế bị tranh, mã giảm giá bị từ chối, dữ liệu sai...
// Người dùng có thể sửa lựa chọn và thử lại, giỏ hàng KHÔNG bị xóa.
func (e *APIError) IsConflict() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}
