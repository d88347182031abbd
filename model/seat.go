package model

import "fmt"

// Seat là ảnh chụp ghế từ server, phía client chỉ đọc.
// Row/Column bắt buộc phải có, dùng để dựng nhãn ghế hiển thị.
type Seat struct {
	ID       uint   `json:"id"`
	Row      string `json:"row"`    // "A", "B"...
	Column   int    `json:"column"` // 1, 2...
	Category string `json:"category"`
	IsBooked bool   `json:"isBooked"`
	Status   string `json:"status"`
}

// Label dựng nhãn ghế hiển thị trên màn xác nhận, hóa đơn và vé.
// Định dạng cố định: hàng + số cột, ví dụ "A7".
func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Column)
}
