package helper

import (
	"sort"

	"cinema_retail/constants"
	"cinema_retail/model"
)

// SeatView là một ghế trong sơ đồ trả cho UI, kèm trạng thái đã phân loại
type SeatView struct {
	ID       uint   `json:"id"`
	Label    string `json:"label"`
	Row      string `json:"row"`
	Column   int    `json:"column"`
	Category string `json:"category"`
	Status   string `json:"status"` // AVAILABLE | BOOKED | MAINTENANCE | SELECTED
}

// ClassifySeat phân loại một ghế theo snapshot server + tập ghế đang chọn.
// Ghế đã đặt hoặc bảo trì không bao giờ được tính là SELECTED.
func ClassifySeat(seat model.Seat, selected map[uint]model.Seat) string {
	if seat.IsBooked {
		return constants.SeatBooked
	}
	if seat.Status == constants.SeatMaintenance {
		return constants.SeatMaintenance
	}
	if _, ok := selected[seat.ID]; ok {
		return constants.SeatSelected
	}
	return constants.SeatAvailable
}

// BuildSeatMapView sắp xếp ghế theo hàng (chữ cái) rồi theo cột (số).
// Thứ tự này là contract: nhãn ghế "A7" dựng từ hàng+cột được dùng lại trên
// màn xác nhận, hóa đơn và vé nên không được đổi.
func BuildSeatMapView(seats []model.Seat, selected map[uint]model.Seat) []SeatView {
	sorted := make([]model.Seat, len(seats))
	copy(sorted, seats)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Column < sorted[j].Column
	})

	views := make([]SeatView, 0, len(sorted))
	for _, seat := range sorted {
		views = append(views, SeatView{
			ID:       seat.ID,
			Label:    seat.Label(),
			Row:      seat.Row,
			Column:   seat.Column,
			Category: seat.Category,
			Status:   ClassifySeat(seat, selected),
		})
	}
	return views
}

// FindSeat tìm ghế theo id trong snapshot
func FindSeat(seats []model.Seat, seatID uint) (model.Seat, bool) {
	for _, seat := range seats {
		if seat.ID == seatID {
			return seat, true
		}
	}
	return model.Seat{}, false
}
