package model

// Input cho các endpoint, validate bằng go-playground/validator

type SelectScheduleInput struct {
	ScheduleID uint `json:"scheduleId" validate:"required,gt=0"`
}

type ToggleSeatInput struct {
	SeatID uint `json:"seatId" validate:"required,gt=0"`
}

type ApplyDiscountInput struct {
	Code string `json:"code" validate:"required,min=3,max=30"`
}

type CheckoutInput struct {
	CustomerName string `json:"customerName" validate:"omitempty"`
	Phone        string `json:"phone" validate:"omitempty"`
	Email        string `json:"email" validate:"omitempty,email"`
}

type PaymentOutcomeInput struct {
	OrderID uint   `json:"orderId" validate:"required,gt=0"`
	Result  string `json:"result" validate:"required,oneof=success pending error close"`
}

type CounterOrderInput struct {
	ScheduleID   uint   `json:"scheduleId" validate:"required,gt=0"`
	SeatIDs      []uint `json:"seatIds" validate:"required,min=1,dive,gt=0"`
	DiscountCode string `json:"discountCode" validate:"omitempty,min=3,max=30"`
	CustomerName string `json:"customerName" validate:"omitempty"`
	Phone        string `json:"phone" validate:"omitempty"`
	Email        string `json:"email" validate:"omitempty,email"`
}
