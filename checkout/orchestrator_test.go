package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"cinema_retail/backend"
	"cinema_retail/cart"
	"cinema_retail/constants"
	"cinema_retail/helper"
	"cinema_retail/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend giả lập server đặt vé, ghi lại thứ tự các lời gọi
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	createOrderFn  func(req backend.CreateOrderRequest) (*model.Order, error)
	orderStatusFn  func(orderID uint) (*model.Order, error)
	cancelOrderFn  func(orderID uint) error
	paymentTokenFn func(orderID uint) (string, error)
	clientKey      string
	clientCfgErr   error
}

func newFakeBackend() *fakeBackend {
	f := &fakeBackend{clientKey: "client-key-123"}
	f.createOrderFn = func(req backend.CreateOrderRequest) (*model.Order, error) {
		return &model.Order{
			ID:            42,
			OrderNumber:   "ORD-000042",
			ScheduleID:    req.ScheduleID,
			SeatIDs:       req.SeatIDs,
			DiscountCode:  req.DiscountCode,
			PaymentMethod: req.PaymentMethod,
			PaymentStatus: constants.OrderPending,
			TicketStatus:  constants.TicketUnused,
		}, nil
	}
	f.orderStatusFn = func(orderID uint) (*model.Order, error) {
		return &model.Order{ID: orderID, OrderNumber: "ORD-000042", PaymentStatus: constants.OrderPending}, nil
	}
	f.cancelOrderFn = func(orderID uint) error { return nil }
	f.paymentTokenFn = func(orderID uint) (string, error) { return "snap-token-abc", nil }
	return f
}

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeBackend) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.calls {
		if call == name {
			n++
		}
	}
	return n
}

func (f *fakeBackend) CreateOrder(_ context.Context, req backend.CreateOrderRequest) (*model.Order, error) {
	f.record("createOrder")
	return f.createOrderFn(req)
}

func (f *fakeBackend) OrderStatus(_ context.Context, orderID uint) (*model.Order, error) {
	f.record("orderStatus")
	return f.orderStatusFn(orderID)
}

func (f *fakeBackend) CancelOrder(_ context.Context, orderID uint) error {
	f.record("cancelOrder")
	return f.cancelOrderFn(orderID)
}

func (f *fakeBackend) PaymentToken(_ context.Context, orderID uint) (string, error) {
	f.record("paymentToken")
	return f.paymentTokenFn(orderID)
}

func (f *fakeBackend) PaymentClientConfig(_ context.Context) (*model.SnapConfig, error) {
	f.record("clientConfig")
	if f.clientCfgErr != nil {
		return nil, f.clientCfgErr
	}
	return &model.SnapConfig{ClientKey: f.clientKey}, nil
}

func saturdayCart(t *testing.T, seats ...model.Seat) *cart.Cart {
	t.Helper()
	c := cart.New()
	// Thứ 7 → weekend, giá 45000
	c.SetSchedule(model.Schedule{
		ID:        7,
		FilmTitle: "Ký Sinh Trùng",
		ShowTime:  time.Date(2026, 8, 29, 19, 30, 0, 0, time.UTC),
	}, helper.DefaultPriceTable())
	for _, seat := range seats {
		_, _, err := c.ToggleSeat(seat)
		require.NoError(t, err)
	}
	return c
}

func standardSeat(id uint, row string, col int) model.Seat {
	return model.Seat{ID: id, Row: row, Column: col, Category: constants.SeatStandard, Status: constants.SeatAvailable}
}

func TestSubmit_HappyPath(t *testing.T) {
	f := newFakeBackend()
	c := saturdayCart(t, standardSeat(1, "A", 1), standardSeat(2, "A", 2))
	o := New(f, c)

	session, err := o.Submit(context.Background(), model.CustomerInfo{})
	require.NoError(t, err)
	assert.Equal(t, StatePaymentInProgress, o.State())
	assert.Equal(t, uint(42), session.OrderID)
	assert.Equal(t, "snap-token-abc", session.SnapToken)
	assert.Equal(t, "client-key-123", session.ClientKey)

	// Tuần tự nghiêm ngặt: tạo đơn xong mới lấy token
	assert.Equal(t, []string{"clientConfig", "createOrder", "paymentToken"}, f.calls)
}

func TestSubmit_EmptySelectionBlockedBeforeNetwork(t *testing.T) {
	f := newFakeBackend()
	o := New(f, saturdayCart(t))

	_, err := o.Submit(context.Background(), model.CustomerInfo{})
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Equal(t, StateIdle, o.State())
	assert.Zero(t, f.callCount("createOrder"))
}

func TestSubmit_RefusesWithoutClientKey(t *testing.T) {
	f := newFakeBackend()
	f.clientKey = ""
	o := New(f, saturdayCart(t, standardSeat(1, "A", 1)))

	_, err := o.Submit(context.Background(), model.CustomerInfo{})
	assert.ErrorIs(t, err, ErrMissingPaymentConfig)
	// Không được submit một đơn không bao giờ trả tiền được
	assert.Zero(t, f.callCount("createOrder"))
}

func TestSubmit_SeatConflictKeepsCart(t *testing.T) {
	f := newFakeBackend()
	f.createOrderFn = func(req backend.CreateOrderRequest) (*model.Order, error) {
		return nil, &backend.APIError{StatusCode: 409, Message: "Ghế A1 đã được đặt bởi khách khác"}
	}
	c := saturdayCart(t, standardSeat(1, "A", 1))
	o := New(f, c)

	_, err := o.Submit(context.Background(), model.CustomerInfo{})
	require.Error(t, err)
	// Lý do của server trả nguyên văn
	assert.Equal(t, "Ghế A1 đã được đặt bởi khách khác", err.Error())
	assert.Equal(t, StateFailed, o.State())
	assert.Nil(t, o.Order())
	// Giỏ giữ nguyên để người dùng sửa rồi thử lại
	assert.False(t, c.IsEmpty())

	// Thử lại được sau khi sửa lựa chọn
	f.createOrderFn = newFakeBackend().createOrderFn
	_, err = o.Submit(context.Background(), model.CustomerInfo{})
	assert.NoError(t, err)
}

// Test quan trọng nhất của cả core: popup báo success nhưng server vẫn bảo
// PENDING thì kết cục là PENDING_CONFIRMED chứ không phải PAID.
func TestHandleOutcome_SuccessCallbackButServerPending(t *testing.T) {
	f := newFakeBackend()
	c := saturdayCart(t, standardSeat(1, "A", 1))
	o := New(f, c)

	_, err := o.Submit(context.Background(), model.CustomerInfo{})
	require.NoError(t, err)

	res, err := o.HandleOutcome(context.Background(), constants.PaymentResultSuccess)
	require.NoError(t, err)
	assert.Equal(t, StatePendingConfirmed, res.State)
	assert.Equal(t, constants.OrderPending, res.Order.PaymentStatus)
	// Đơn đã tồn tại server-side nên cart vẫn được dọn
	assert.True(t, c.IsEmpty())
}

func TestHandleOutcome_PaidAfterReconciliation(t *testing.T) {
	f := newFakeBackend()
	paidAt := time.Now()
	f.orderStatusFn = func(orderID uint) (*model.Order, error) {
		return &model.Order{
			ID: orderID, OrderNumber: "ORD-000042",
			PaymentStatus: constants.OrderPaid, PaidAt: &paidAt,
			Email: "khach@example.com",
		}, nil
	}
	c := saturdayCart(t, standardSeat(1, "A", 1))
	o := New(f, c)

	paid := make(chan model.Order, 1)
	o.OnPaid = func(order model.Order) { paid <- order }

	_, err := o.Submit(context.Background(), model.CustomerInfo{})
	require.NoError(t, err)

	res, err := o.HandleOutcome(context.Background(), constants.PaymentResultSuccess)
	require.NoError(t, err)
	assert.Equal(t, StatePaid, res.State)
	assert.True(t, c.IsEmpty())

	select {
	case order := <-paid:
		assert.Equal(t, "ORD-000042", order.OrderNumber)
	case <-time.After(time.Second):
		t.Fatal("OnPaid không được gọi")
	}
}

func TestHandleOutcome_AllFourOutcomesReconcile(t *testing.T) {
	for _, result := range []string{
		constants.PaymentResultSuccess,
		constants.PaymentResultPending,
		constants.PaymentResultError,
		constants.PaymentResultClose,
	} {
		f := newFakeBackend()
		o := New(f, saturdayCart(t, standardSeat(1, "A", 1)))
		_, err := o.Submit(context.Background(), model.CustomerInfo{})
		require.NoError(t, err)

		_, err = o.HandleOutcome(context.Background(), result)
		require.NoError(t, err)
		// Kể cả error và đóng popup cũng phải đối soát
		assert.Equal(t, 1, f.callCount("orderStatus"), "outcome %q phải gọi đối soát", result)
	}
}

func TestHandleOutcome_AtMostOncePerOutcome(t *testing.T) {
	f := newFakeBackend()
	o := New(f, saturdayCart(t, standardSeat(1, "A", 1)))
	_, err := o.Submit(context.Background(), model.CustomerInfo{})
	require.NoError(t, err)

	first, err := o.HandleOutcome(context.Background(), constants.PaymentResultSuccess)
	require.NoError(t, err)
	second, err := o.HandleOutcome(context.Background(), constants.PaymentResultSuccess)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, f.callCount("orderStatus"))
}

func TestHandleOutcome_WithoutOrderFailsLoudly(t *testing.T) {
	f := newFakeBackend()
	o := New(f, saturdayCart(t, standardSeat(1, "A", 1)))

	_, err := o.HandleOutcome(context.Background(), constants.PaymentResultError)
	assert.ErrorIs(t, err, ErrNoActiveOrder)
	assert.Zero(t, f.callCount("orderStatus"))
}

func TestCancel_OnlyAfterServerConfirms(t *testing.T) {
	f := newFakeBackend()
	cancelledAt := time.Now()
	f.cancelOrderFn = func(orderID uint) error { return nil }
	f.orderStatusFn = func(orderID uint) (*model.Order, error) {
		return &model.Order{ID: orderID, PaymentStatus: constants.OrderCancelled, CancelledAt: &cancelledAt}, nil
	}
	c := saturdayCart(t, standardSeat(1, "A", 1))
	o := New(f, c)
	_, err := o.Submit(context.Background(), model.CustomerInfo{})
	require.NoError(t, err)

	order, err := o.Cancel(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderCancelled, order.PaymentStatus)
	assert.Equal(t, StateCancelled, o.State())
	assert.True(t, c.IsEmpty())
}

func TestCancel_PaidOrderRejectedByServer(t *testing.T) {
	f := newFakeBackend()
	f.cancelOrderFn = func(orderID uint) error {
		return &backend.APIError{StatusCode: 400, Message: "Đơn hàng đã thanh toán, không thể hủy"}
	}
	o := New(f, saturdayCart(t, standardSeat(1, "A", 1)))
	_, err := o.Submit(context.Background(), model.CustomerInfo{})
	require.NoError(t, err)

	_, err = o.Cancel(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, "Đơn hàng đã thanh toán, không thể hủy", err.Error())
	// Không tự đánh dấu hủy trước khi server xác nhận
	assert.NotEqual(t, StateCancelled, o.State())
}

func TestResumePayment(t *testing.T) {
	f := newFakeBackend()
	o := New(f, saturdayCart(t, standardSeat(1, "A", 1)))

	session, err := o.ResumePayment(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), session.OrderID)
	assert.Equal(t, StatePaymentInProgress, o.State())

	// Đơn đã thanh toán thì không phát lại token
	f.orderStatusFn = func(orderID uint) (*model.Order, error) {
		return &model.Order{ID: orderID, PaymentStatus: constants.OrderPaid}, nil
	}
	o2 := New(f, saturdayCart(t))
	_, err = o2.ResumePayment(context.Background(), 42)
	assert.ErrorIs(t, err, ErrOrderNotPending)
}

func TestSubmitOffline_CashReconcilesImmediately(t *testing.T) {
	f := newFakeBackend()
	f.orderStatusFn = func(orderID uint) (*model.Order, error) {
		return &model.Order{ID: orderID, OrderNumber: "ORD-000042", PaymentStatus: constants.OrderPaid, PaymentMethod: constants.MethodCash}, nil
	}
	c := saturdayCart(t, standardSeat(1, "A", 1))
	o := New(f, c)

	res, err := o.SubmitOffline(context.Background(), model.CustomerInfo{Name: "Khách tại quầy"})
	require.NoError(t, err)
	assert.Equal(t, StatePaid, res.State)
	assert.True(t, c.IsEmpty())
	// Không đụng vào cổng thanh toán
	assert.Zero(t, f.callCount("paymentToken"))
	assert.Zero(t, f.callCount("clientConfig"))
}

// Kịch bản đầu-cuối: suất thứ 7 (weekend 45000) + 2 ghế thường + mã
// DISKON50 giảm 50% → tổng 45000; đối soát báo PAID → Paid và cart rỗng.
func TestEndToEnd_WeekendWithDiscount(t *testing.T) {
	c := saturdayCart(t, standardSeat(1, "A", 1), standardSeat(2, "A", 2))
	c.ApplyDiscount(model.Discount{
		Code: "DISKON50", Name: "Giảm 50%",
		Type: constants.DiscountPercentage, Value: 50, IsActive: true,
	})

	totals, err := c.Totals()
	require.NoError(t, err)
	assert.Equal(t, 90000.0, totals.Subtotal)
	assert.Equal(t, 45000.0, totals.DiscountAmount)
	assert.Equal(t, 45000.0, totals.Total)

	f := newFakeBackend()
	var submitted backend.CreateOrderRequest
	f.createOrderFn = func(req backend.CreateOrderRequest) (*model.Order, error) {
		submitted = req
		return &model.Order{ID: 42, OrderNumber: "ORD-000042", PaymentStatus: constants.OrderPending, TotalAmount: 45000}, nil
	}
	f.orderStatusFn = func(orderID uint) (*model.Order, error) {
		return &model.Order{ID: orderID, OrderNumber: "ORD-000042", PaymentStatus: constants.OrderPaid, TotalAmount: 45000}, nil
	}

	o := New(f, c)
	_, err = o.Submit(context.Background(), model.CustomerInfo{})
	require.NoError(t, err)
	assert.Equal(t, "DISKON50", submitted.DiscountCode)
	assert.Equal(t, []uint{1, 2}, submitted.SeatIDs)

	res, err := o.HandleOutcome(context.Background(), constants.PaymentResultSuccess)
	require.NoError(t, err)
	assert.Equal(t, StatePaid, res.State)
	assert.True(t, c.IsEmpty())
}
