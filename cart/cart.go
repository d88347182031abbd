package cart

import (
	"errors"
	"sort"
	"sync"
	"time"

	"cinema_retail/constants"
	"cinema_retail/helper"
	"cinema_retail/model"
)

var (
	ErrNoSchedule      = errors.New(constants.MsgNoSchedule)
	ErrSeatBooked      = errors.New(constants.MsgSeatBooked)
	ErrSeatMaintenance = errors.New(constants.MsgSeatMaintenance)
)

// Totals là kết quả tính tiền, luôn dẫn xuất lại từ lựa chọn hiện tại —
// không cache riêng để khỏi lệch với nguồn
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	Total          float64 `json:"total"`
}

// Cart giữ lựa chọn đặt vé đang dở của một phiên. Một phiên một cart,
// chỉ handler của phiên đó và orchestrator lúc kết thúc được ghi vào.
// Mutex chỉ để an toàn khi client bắn request trùng nhau.
type Cart struct {
	mu        sync.Mutex
	schedule  *model.Schedule
	table     helper.PriceTable
	seats     map[uint]model.Seat
	discount  *model.Discount
	updatedAt time.Time
}

func New() *Cart {
	return &Cart{
		seats:     make(map[uint]model.Seat),
		updatedAt: time.Now(),
	}
}

// SetSchedule thay suất chiếu và bảng giá đi kèm trong cùng một thao tác.
// Ghế và giảm giá cũ bị xóa sạch — không bao giờ để ghế của suất cũ dính
// sang suất mới, cũng không bao giờ tính giá bằng bảng giá của suất cũ.
func (c *Cart) SetSchedule(schedule model.Schedule, table helper.PriceTable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.schedule = &schedule
	c.table = table
	c.seats = make(map[uint]model.Seat)
	c.discount = nil
	c.updatedAt = time.Now()
}

func (c *Cart) Schedule() *model.Schedule {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.schedule == nil {
		return nil
	}
	schedule := *c.schedule
	return &schedule
}

// ToggleSeat chọn/bỏ chọn một ghế. Gọi hai lần với cùng ghế thì quay về
// trạng thái ban đầu. Ghế đã đặt hoặc bảo trì bị từ chối, lựa chọn giữ
// nguyên. Trả về tổng tiền đã tính lại ngay sau thao tác.
func (c *Cart) ToggleSeat(seat model.Seat) (bool, Totals, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.schedule == nil {
		return false, Totals{}, ErrNoSchedule
	}
	if seat.IsBooked {
		return false, Totals{}, ErrSeatBooked
	}
	if seat.Status == constants.SeatMaintenance {
		return false, Totals{}, ErrSeatMaintenance
	}

	var selected bool
	if _, ok := c.seats[seat.ID]; ok {
		delete(c.seats, seat.ID)
	} else {
		c.seats[seat.ID] = seat
		selected = true
	}
	c.updatedAt = time.Now()

	totals, err := c.totalsLocked()
	if err != nil {
		// Giá hỏng thì trả lựa chọn về như cũ, không giữ cart ở trạng thái
		// không tính được tiền
		if selected {
			delete(c.seats, seat.ID)
		} else {
			c.seats[seat.ID] = seat
		}
		return false, Totals{}, err
	}
	return selected, totals, nil
}

// ApplyDiscount thay mã giảm giá hiện tại (nếu có) bằng mã mới
func (c *Cart) ApplyDiscount(discount model.Discount) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discount = &discount
	c.updatedAt = time.Now()
}

// RemoveDiscount xóa mã và số tiền giảm trong cùng một thao tác — không có
// trạng thái trung gian mã còn mà tiền giảm mất
func (c *Cart) RemoveDiscount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discount = nil
	c.updatedAt = time.Now()
}

func (c *Cart) Discount() *model.Discount {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.discount == nil {
		return nil
	}
	discount := *c.discount
	return &discount
}

// Totals tính lại tạm tính / giảm giá / tổng từ đầu mỗi lần gọi
func (c *Cart) Totals() (Totals, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalsLocked()
}

func (c *Cart) totalsLocked() (Totals, error) {
	if c.schedule == nil {
		return Totals{}, ErrNoSchedule
	}

	var subtotal float64
	for _, seat := range c.seats {
		price, err := helper.UnitPrice(*c.schedule, seat, c.table)
		if err != nil {
			return Totals{}, err
		}
		subtotal += price
	}

	var discountAmount float64
	if c.discount != nil {
		discountAmount = c.discount.AmountFor(subtotal)
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          subtotal - discountAmount,
	}, nil
}

// Seats trả danh sách ghế đã chọn, sắp theo hàng rồi cột để hiển thị
func (c *Cart) Seats() []model.Seat {
	c.mu.Lock()
	defer c.mu.Unlock()

	seats := make([]model.Seat, 0, len(c.seats))
	for _, seat := range c.seats {
		seats = append(seats, seat)
	}
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Column < seats[j].Column
	})
	return seats
}

// Selected trả bản sao tập ghế đang chọn theo id, dùng để phân loại sơ đồ
func (c *Cart) Selected() map[uint]model.Seat {
	c.mu.Lock()
	defer c.mu.Unlock()

	selected := make(map[uint]model.Seat, len(c.seats))
	for id, seat := range c.seats {
		selected[id] = seat
	}
	return selected
}

func (c *Cart) SeatIDs() []uint {
	seats := c.Seats()
	ids := make([]uint, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.ID)
	}
	return ids
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seats) == 0
}

// Clear đưa cart về rỗng. Chỉ gọi sau kết cục cuối cùng: đã thanh toán,
// đã xác nhận pending, hoặc người dùng chủ động hủy luồng.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schedule = nil
	c.table = nil
	c.seats = make(map[uint]model.Seat)
	c.discount = nil
	c.updatedAt = time.Now()
}

func (c *Cart) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updatedAt
}
