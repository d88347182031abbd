package model

import (
	"time"

	"cinema_retail/constants"
)

// Discount là mã giảm giá đã được server xác thực. Client chỉ giữ bản sao,
// không tự kiểm tra hạn dùng hay lượt dùng — các bộ đếm đó thuộc về server.
type Discount struct {
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Type       string    `json:"type"` // percentage | fixed
	Value      float64   `json:"value"`
	IsActive   bool      `json:"isActive"`
	ValidFrom  time.Time `json:"validFrom"`
	ValidUntil time.Time `json:"validUntil"`
	MaxUses    int       `json:"maxUses"`
	UsedCount  int       `json:"usedCount"`
}

// AmountFor tính số tiền giảm trên tạm tính. Luôn nằm trong [0, subtotal].
func (d Discount) AmountFor(subtotal float64) float64 {
	var amount float64
	switch d.Type {
	case constants.DiscountPercentage:
		amount = subtotal * d.Value / 100
	case constants.DiscountFixed:
		amount = d.Value
	}
	if amount < 0 {
		amount = 0
	}
	if amount > subtotal {
		amount = subtotal
	}
	return amount
}
