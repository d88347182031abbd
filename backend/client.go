package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cinema_retail/config"
	"cinema_retail/model"
)

// Client gọi sang server đặt vé (nguồn sự thật về ghế, đơn hàng, mã giảm giá).
// Mọi lỗi mạng trả về nguyên trạng cho tầng trên, KHÔNG tự retry ngầm —
// người dùng chủ động thử lại.
type Client struct {
	BaseURL string
	http    *http.Client
}

func New() *Client {
	return NewWithBase(config.ConfigOr("BACKEND_URL", "http://localhost:8002/api/v1"))
}

func NewWithBase(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// envelope theo chuẩn response của server: success bọc trong data,
// lỗi nằm ở message
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// Kết quả về sau khi context đã hủy (người dùng rời màn hình) thì bỏ,
	// không được dùng để cập nhật trạng thái nữa
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("response không đúng định dạng: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if env.Data == nil {
			return errors.New("response thiếu trường data")
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("không đọc được dữ liệu response: %w", err)
		}
	}
	return nil
}

// FetchSchedules lấy danh sách suất chiếu đang mở bán
func (c *Client) FetchSchedules(ctx context.Context) ([]model.Schedule, error) {
	var schedules []model.Schedule
	if err := c.do(ctx, http.MethodGet, "/schedules", nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// FetchSchedule lấy chi tiết một suất chiếu
func (c *Client) FetchSchedule(ctx context.Context, scheduleID uint) (*model.Schedule, error) {
	var schedule model.Schedule
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/schedules/%d", scheduleID), nil, &schedule); err != nil {
		return nil, err
	}
	if schedule.ID == 0 || schedule.ShowTime.IsZero() {
		return nil, errors.New("dữ liệu suất chiếu thiếu trường bắt buộc")
	}
	return &schedule, nil
}

// rawSeat dùng con trỏ để phân biệt "thiếu trường" với "giá trị rỗng".
// Ghế thiếu row/column bị loại ngay thay vì render nhãn kiểu "N/A".
type rawSeat struct {
	ID       uint    `json:"id"`
	Row      *string `json:"row"`
	Column   *int    `json:"column"`
	Category string  `json:"category"`
	IsBooked bool    `json:"isBooked"`
	Status   string  `json:"status"`
}

// FetchSeatMap lấy ảnh chụp sơ đồ ghế của một suất chiếu. Đây là snapshot,
// không phải subscription — đổi suất chiếu thì phải tải lại, trạng thái
// cuối cùng vẫn do server quyết định lúc submit đơn.
func (c *Client) FetchSeatMap(ctx context.Context, scheduleID uint) ([]model.Seat, error) {
	var rows []rawSeat
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/schedules/%d/seats", scheduleID), nil, &rows); err != nil {
		return nil, err
	}

	seats := make([]model.Seat, 0, len(rows))
	for _, r := range rows {
		if r.ID == 0 || r.Row == nil || *r.Row == "" || r.Column == nil || *r.Column < 1 {
			return nil, fmt.Errorf("dữ liệu ghế không hợp lệ (id=%d): thiếu hàng hoặc cột", r.ID)
		}
		seats = append(seats, model.Seat{
			ID:       r.ID,
			Row:      *r.Row,
			Column:   *r.Column,
			Category: r.Category,
			IsBooked: r.IsBooked,
			Status:   r.Status,
		})
	}
	return seats, nil
}

// FetchPriceTable lấy bảng giá theo loại ngày
func (c *Client) FetchPriceTable(ctx context.Context) ([]model.PriceRow, error) {
	var rows []model.PriceRow
	if err := c.do(ctx, http.MethodGet, "/prices", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// VerifyDiscount xác thực mã giảm giá bằng một vòng gọi duy nhất tới server.
// Client KHÔNG tự kiểm tra hạn dùng hay lượt dùng — các bộ đếm đó có thể
// đang bị khách khác dùng đồng thời, chỉ server mới nói được.
func (c *Client) VerifyDiscount(ctx context.Context, code string) (*model.Discount, error) {
	var discount model.Discount
	payload := map[string]string{"code": code}
	if err := c.do(ctx, http.MethodPost, "/discounts/verify", payload, &discount); err != nil {
		return nil, err
	}
	if discount.Code == "" || discount.Type == "" {
		return nil, errors.New("dữ liệu mã giảm giá thiếu trường bắt buộc")
	}
	return &discount, nil
}

// CreateOrderRequest payload tạo đơn hàng
type CreateOrderRequest struct {
	ScheduleID    uint               `json:"scheduleId"`
	SeatIDs       []uint             `json:"seatIds"`
	DiscountCode  string             `json:"discountCode,omitempty"`
	PaymentMethod string             `json:"paymentMethod"`
	Customer      model.CustomerInfo `json:"customer"`
}

// CreateOrder submit đơn hàng. Server kiểm tra lại ghế và mã giảm giá —
// nếu ghế đã bị khách khác đặt thì trả 4xx kèm lý do, client chỉ việc
// hiển thị nguyên văn.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, errors.New("server không trả về mã đơn hàng")
	}
	return &order, nil
}

// OrderStatus đọc trạng thái đơn hàng hiện tại — đây là lời gọi đối soát
// bắt buộc sau mọi kết quả từ popup thanh toán.
func (c *Client) OrderStatus(ctx context.Context, orderID uint) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil, &order); err != nil {
		return nil, err
	}
	if order.ID == 0 || order.PaymentStatus == "" {
		return nil, errors.New("dữ liệu đơn hàng thiếu trường bắt buộc")
	}
	return &order, nil
}

// CancelOrder hủy đơn còn PENDING. Server từ chối thì trả lỗi nguyên văn,
// đơn hàng vẫn PENDING — không đánh dấu hủy trước ở client.
func (c *Client) CancelOrder(ctx context.Context, orderID uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", orderID), nil, nil)
}

// PaymentClientConfig lấy client key của cổng thanh toán, gọi một lần khi
// vào màn thanh toán
func (c *Client) PaymentClientConfig(ctx context.Context) (*model.SnapConfig, error) {
	var cfg model.SnapConfig
	if err := c.do(ctx, http.MethodGet, "/payments/client-config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PaymentToken lấy snap token cho một đơn hàng đã tạo
func (c *Client) PaymentToken(ctx context.Context, orderID uint) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payments/token/%d", orderID), nil, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("server không trả về snap token")
	}
	return out.Token, nil
}
