package model

import "time"

// Order do server tạo khi submit. Client chỉ có quyền hủy khi còn PENDING,
// sau khi PaymentStatus rời PENDING thì đơn hàng bất biến với client.
type Order struct {
	ID            uint       `json:"id"`
	OrderNumber   string     `json:"orderNumber"`
	ScheduleID    uint       `json:"scheduleId"`
	SeatIDs       []uint     `json:"seatIds"`
	SeatLabels    []string   `json:"seatLabels,omitempty"`
	FilmTitle     string     `json:"filmTitle,omitempty"`
	ShowTime      *time.Time `json:"showTime,omitempty"`
	CustomerName  string     `json:"customerName,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Email         string     `json:"email,omitempty"`
	DiscountCode  string     `json:"discountCode,omitempty"`
	TotalAmount   float64    `json:"totalAmount"`
	PaymentMethod string     `json:"paymentMethod"`
	PaymentStatus string     `json:"paymentStatus"` // PENDING, PAID, CANCELLED
	TicketStatus  string     `json:"ticketStatus"`  // UNUSED, SCANNED
	CreatedAt     time.Time  `json:"createdAt"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	ScannedAt     *time.Time `json:"scannedAt,omitempty"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`
}

// CustomerInfo thông tin khách (tùy chọn, khách vãng lai có thể bỏ trống)
type CustomerInfo struct {
	Name  string `json:"name" validate:"omitempty"`
	Phone string `json:"phone" validate:"omitempty"`
	Email string `json:"email" validate:"omitempty,email"`
}
