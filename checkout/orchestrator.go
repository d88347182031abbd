package checkout

import (
	"context"
	"errors"
	"log"
	"sync"

	"cinema_retail/backend"
	"cinema_retail/cart"
	"cinema_retail/constants"
	"cinema_retail/model"
)

// State của máy trạng thái checkout
type State string

const (
	StateIdle              State = "IDLE"
	StateSubmitting        State = "SUBMITTING"
	StateAwaitingToken     State = "AWAITING_TOKEN"
	StatePaymentInProgress State = "PAYMENT_IN_PROGRESS"
	StateReconciling       State = "RECONCILING"
	StatePaid              State = "PAID"
	StatePendingConfirmed  State = "PENDING_CONFIRMED"
	StateFailed            State = "FAILED"
	StateCancelled         State = "CANCELLED"
)

// IsTerminal true nếu máy không tự chuyển tiếp nữa, chờ người dùng
func (s State) IsTerminal() bool {
	switch s {
	case StatePaid, StatePendingConfirmed, StateFailed, StateCancelled:
		return true
	}
	return false
}

var (
	ErrEmptySelection       = errors.New(constants.MsgEmptySelection)
	ErrMissingPaymentConfig = errors.New(constants.MsgMissingPaymentCfg)
	ErrCheckoutInProgress   = errors.New(constants.MsgCheckoutInProgress)
	ErrOrderNotPending      = errors.New(constants.MsgOrderNotPending)

	// ErrNoActiveOrder là lỗi lập trình: popup thanh toán không bao giờ
	// được mở khi chưa có mã đơn hàng
	ErrNoActiveOrder = errors.New("không có đơn hàng đang thanh toán — popup được mở khi chưa tạo đơn?")
)

// Backend là phần contract của server đặt vé mà orchestrator cần
type Backend interface {
	CreateOrder(ctx context.Context, req backend.CreateOrderRequest) (*model.Order, error)
	OrderStatus(ctx context.Context, orderID uint) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID uint) error
	PaymentToken(ctx context.Context, orderID uint) (string, error)
	PaymentClientConfig(ctx context.Context) (*model.SnapConfig, error)
}

// Resolution là kết cục sau đối soát, kèm đơn hàng server vừa trả
type Resolution struct {
	State State        `json:"state"`
	Order *model.Order `json:"order"`
}

// Orchestrator chạy trình tự checkout cho một phiên: submit đơn → lấy snap
// token → popup thanh toán → đối soát trạng thái với server. Nguyên tắc
// xuyên suốt: KHÔNG BAO GIỜ tuyên bố đã thanh toán chỉ dựa trên callback
// của popup — callback có thể giả mạo, đến trễ, hoặc không đến; chỉ lời
// gọi đối soát mới quyết định kết cục.
type Orchestrator struct {
	mu       sync.Mutex
	backend  Backend
	cart     *cart.Cart
	state    State
	clientKey string
	order    *model.Order
	session  *model.PaymentSession
	resolved map[string]*Resolution // mỗi outcome của popup chỉ đối soát một lần

	// OnPaid gọi (async) khi đối soát xác nhận đã thanh toán — gửi email
	// xác nhận chẳng hạn. Có thể nil.
	OnPaid func(order model.Order)
}

func New(b Backend, c *cart.Cart) *Orchestrator {
	return &Orchestrator{
		backend:  b,
		cart:     c,
		state:    StateIdle,
		resolved: make(map[string]*Resolution),
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Order trả đơn hàng đang theo dõi (nil nếu chưa submit)
func (o *Orchestrator) Order() *model.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.order == nil {
		return nil
	}
	order := *o.order
	return &order
}

// EnsureConfig tải client key của cổng thanh toán nếu chưa có. Gọi khi vào
// màn thanh toán — thiếu key thì từ chối cả luồng chứ không submit một đơn
// không bao giờ trả tiền được.
func (o *Orchestrator) EnsureConfig(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ensureConfigLocked(ctx)
}

func (o *Orchestrator) ensureConfigLocked(ctx context.Context) error {
	if o.clientKey != "" {
		return nil
	}
	cfg, err := o.backend.PaymentClientConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.ClientKey == "" {
		return ErrMissingPaymentConfig
	}
	o.clientKey = cfg.ClientKey
	return nil
}

// Submit chạy bước 1→3: tạo đơn trên server rồi lấy snap token. Tuần tự
// nghiêm ngặt — không lấy token trước khi server xác nhận đã tạo đơn.
// Thành công thì máy ở PAYMENT_IN_PROGRESS và popup được mở với session
// trả về.
func (o *Orchestrator) Submit(ctx context.Context, customer model.CustomerInfo) (*model.PaymentSession, error) {
	return o.submit(ctx, customer, constants.MethodSnap)
}

func (o *Orchestrator) submit(ctx context.Context, customer model.CustomerInfo, method string) (*model.PaymentSession, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case StateIdle, StateFailed:
		// cho phép submit (lần đầu hoặc thử lại sau khi sửa lựa chọn)
	default:
		return nil, ErrCheckoutInProgress
	}

	schedule := o.cart.Schedule()
	if schedule == nil {
		return nil, cart.ErrNoSchedule
	}
	if o.cart.IsEmpty() {
		return nil, ErrEmptySelection
	}
	if method == constants.MethodSnap {
		if err := o.ensureConfigLocked(ctx); err != nil {
			return nil, err
		}
	}

	var discountCode string
	if d := o.cart.Discount(); d != nil {
		discountCode = d.Code
	}

	o.state = StateSubmitting
	order, err := o.backend.CreateOrder(ctx, backend.CreateOrderRequest{
		ScheduleID:    schedule.ID,
		SeatIDs:       o.cart.SeatIDs(),
		DiscountCode:  discountCode,
		PaymentMethod: method,
		Customer:      customer,
	})
	if err != nil {
		if ctx.Err() != nil {
			// người dùng đã rời màn hình — bỏ kết quả, không đổi trạng thái
			o.state = StateIdle
			return nil, ctx.Err()
		}
		// server từ chối (ghế bị tranh, mã giảm giá hỏng...): không giữ
		// mã đơn nào, giỏ hàng giữ nguyên cho người dùng sửa rồi thử lại
		o.state = StateFailed
		o.order = nil
		return nil, err
	}
	o.order = order
	o.resolved = make(map[string]*Resolution)

	if method == constants.MethodCash {
		// Đơn tại quầy không qua cổng thanh toán
		return nil, nil
	}

	o.state = StateAwaitingToken
	token, err := o.backend.PaymentToken(ctx, order.ID)
	if err != nil {
		if ctx.Err() != nil {
			o.state = StateIdle
			return nil, ctx.Err()
		}
		// Đơn đã tồn tại trên server, có thể trả tiền lại từ màn hóa đơn
		o.state = StateFailed
		return nil, err
	}

	o.state = StatePaymentInProgress
	o.session = &model.PaymentSession{
		OrderID:   order.ID,
		SnapToken: token,
		ClientKey: o.clientKey,
	}
	return o.session, nil
}

// HandleOutcome nhận kết quả từ popup thanh toán. Cả BỐN kết quả — success,
// pending, error, đóng popup không quyết định — đều bắt buộc đối soát với
// server trước khi chốt trạng thái; kết cục lấy từ server chứ không từ
// callback.
func (o *Orchestrator) HandleOutcome(ctx context.Context, result string) (*Resolution, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.order == nil {
		log.Printf("❌ Nhận outcome %q khi chưa có đơn hàng — lỗi luồng nghiêm trọng", result)
		return nil, ErrNoActiveOrder
	}
	if res, ok := o.resolved[result]; ok {
		// outcome này đã đối soát rồi, không gọi lại
		return res, nil
	}

	prev := o.state
	o.state = StateReconciling
	order, err := o.backend.OrderStatus(ctx, o.order.ID)
	if err != nil {
		// Chưa đối soát được thì chưa coi là đã xử lý outcome — người dùng
		// bấm lại sẽ đối soát lại
		o.state = prev
		return nil, err
	}

	res := o.applyStatusLocked(order)
	o.resolved[result] = res
	return res, nil
}

// applyStatusLocked chốt trạng thái máy theo đơn hàng server vừa trả
func (o *Orchestrator) applyStatusLocked(order *model.Order) *Resolution {
	o.order = order
	o.session = nil

	switch order.PaymentStatus {
	case constants.OrderPaid:
		o.state = StatePaid
		o.cart.Clear()
		if o.OnPaid != nil {
			go o.OnPaid(*order)
		}
	case constants.OrderCancelled:
		o.state = StateCancelled
	default:
		// Server vẫn bảo PENDING dù popup báo success — không phải lỗi.
		// Đơn đã tồn tại và truy được theo id, dọn cart và đưa người dùng
		// sang màn hóa đơn với nút trả tiền / hủy đơn.
		o.state = StatePendingConfirmed
		o.cart.Clear()
	}

	return &Resolution{State: o.state, Order: order}
}

// ResumePayment lấy snap token mới cho một đơn còn PENDING (nút "thanh toán
// ngay" trên màn hóa đơn) và quay lại PAYMENT_IN_PROGRESS
func (o *Orchestrator) ResumePayment(ctx context.Context, orderID uint) (*model.PaymentSession, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	order, err := o.backend.OrderStatus(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus != constants.OrderPending {
		return nil, ErrOrderNotPending
	}
	if err := o.ensureConfigLocked(ctx); err != nil {
		return nil, err
	}

	token, err := o.backend.PaymentToken(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	o.order = order
	o.resolved = make(map[string]*Resolution) // lượt thanh toán mới, outcome mới
	o.state = StatePaymentInProgress
	o.session = &model.PaymentSession{
		OrderID:   order.ID,
		SnapToken: token,
		ClientKey: o.clientKey,
	}
	return o.session, nil
}

// Cancel hủy một đơn còn PENDING. Chỉ đánh dấu hủy sau khi server xác nhận;
// server từ chối thì trả lỗi nguyên văn và đơn vẫn PENDING.
func (o *Orchestrator) Cancel(ctx context.Context, orderID uint) (*model.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.backend.CancelOrder(ctx, orderID); err != nil {
		return nil, err
	}

	// Đọc lại trạng thái đã xác nhận
	order, err := o.backend.OrderStatus(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.order != nil && o.order.ID == orderID {
		o.order = order
		o.session = nil
		o.state = StateCancelled
		o.cart.Clear()
	}
	return order, nil
}

// SubmitOffline tạo đơn tại quầy (tiền mặt): không qua cổng thanh toán,
// tạo đơn xong đối soát luôn — server vẫn là nơi quyết định đơn đã được
// ghi nhận thanh toán hay chưa.
func (o *Orchestrator) SubmitOffline(ctx context.Context, customer model.CustomerInfo) (*Resolution, error) {
	if _, err := o.submit(ctx, customer, constants.MethodCash); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.order == nil {
		return nil, ErrNoActiveOrder
	}

	o.state = StateReconciling
	order, err := o.backend.OrderStatus(ctx, o.order.ID)
	if err != nil {
		o.state = StateFailed
		return nil, err
	}
	return o.applyStatusLocked(order), nil
}
