package helper

import (
	"errors"
	"fmt"
	"time"

	"cinema_retail/constants"
	"cinema_retail/model"
)

// Giá mặc định khi không tải được bảng giá từ server. Đây là chính sách
// degrade có chủ đích: vẫn bán vé được với giá chuẩn, và phải log rõ.
const (
	DefaultWeekdayPrice = 35000.0
	DefaultWeekendPrice = 45000.0
)

// Hệ số ghế VIP so với ghế thường
const VIPModifier = 1.5

// PriceTable ánh xạ loại ngày → đơn giá cơ bản
type PriceTable map[string]float64

// DefaultPriceTable bảng giá dự phòng
func DefaultPriceTable() PriceTable {
	return PriceTable{
		constants.DayWeekday: DefaultWeekdayPrice,
		constants.DayWeekend: DefaultWeekendPrice,
	}
}

// NewPriceTable dựng bảng giá từ dữ liệu server, fail ngay nếu dữ liệu hỏng
// thay vì âm thầm tính giá 0
func NewPriceTable(rows []model.PriceRow) (PriceTable, error) {
	if len(rows) == 0 {
		return nil, errors.New("bảng giá rỗng")
	}
	table := make(PriceTable, len(rows))
	for _, row := range rows {
		if row.DayType == "" || row.Price <= 0 {
			return nil, fmt.Errorf("dòng bảng giá không hợp lệ: %q = %v", row.DayType, row.Price)
		}
		table[row.DayType] = row.Price
	}
	return table, nil
}

// DayTypeOf phân loại ngày chiếu: thứ 7, chủ nhật là weekend, còn lại weekday
func DayTypeOf(showTime time.Time) string {
	switch showTime.Weekday() {
	case time.Saturday, time.Sunday:
		return constants.DayWeekend
	default:
		return constants.DayWeekday
	}
}

// BaseFor tra đơn giá cơ bản theo loại ngày
func (t PriceTable) BaseFor(dayType string) (float64, error) {
	base, ok := t[dayType]
	if !ok {
		return 0, fmt.Errorf("bảng giá không có loại ngày %q", dayType)
	}
	if base <= 0 {
		return 0, fmt.Errorf("đơn giá loại ngày %q không hợp lệ: %v", dayType, base)
	}
	return base, nil
}

// UnitPrice tính đơn giá một ghế cho một suất chiếu. Hàm thuần, không side
// effect: ghế VIP nhân 1.5, còn lại giữ nguyên đơn giá theo loại ngày.
func UnitPrice(schedule model.Schedule, seat model.Seat, table PriceTable) (float64, error) {
	if schedule.ShowTime.IsZero() {
		return 0, errors.New("suất chiếu thiếu giờ chiếu")
	}
	base, err := table.BaseFor(DayTypeOf(schedule.ShowTime))
	if err != nil {
		return 0, err
	}
	switch seat.Category {
	case constants.SeatStandard:
		return base, nil
	case constants.SeatVIP:
		return base * VIPModifier, nil
	default:
		return 0, fmt.Errorf("loại ghế không hợp lệ: %q", seat.Category)
	}
}
