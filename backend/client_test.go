package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinema_retail/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithBase(srv.URL)
}

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": data})
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{"status": "error", "message": message})
}

func TestFetchSeatMap_RejectsSeatMissingRow(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		// Ghế thứ hai thiếu row
		writeSuccess(w, []map[string]any{
			{"id": 1, "row": "A", "column": 1, "category": constants.SeatStandard},
			{"id": 2, "column": 2, "category": constants.SeatStandard},
		})
	})

	_, err := client.FetchSeatMap(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id=2")
}

func TestFetchSeatMap_ParsesSeats(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedules/7/seats", r.URL.Path)
		writeSuccess(w, []map[string]any{
			{"id": 1, "row": "A", "column": 1, "category": constants.SeatStandard, "isBooked": false},
			{"id": 2, "row": "B", "column": 12, "category": constants.SeatVIP, "isBooked": true},
		})
	})

	seats, err := client.FetchSeatMap(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, seats, 2)
	assert.Equal(t, "A1", seats[0].Label())
	assert.Equal(t, "B12", seats[1].Label())
	assert.True(t, seats[1].IsBooked)
}

func TestVerifyDiscount_ServerMessageVerbatim(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, "Mã giảm giá đã hết lượt sử dụng")
	})

	_, err := client.VerifyDiscount(context.Background(), "DISKON50")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Mã giảm giá đã hết lượt sử dụng", apiErr.Message)
	assert.True(t, apiErr.IsConflict())
}

func TestVerifyDiscount_Success(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "DISKON50", body["code"])
		writeSuccess(w, map[string]any{
			"code": "DISKON50", "type": constants.DiscountPercentage, "value": 50, "isActive": true,
		})
	})

	discount, err := client.VerifyDiscount(context.Background(), "DISKON50")
	require.NoError(t, err)
	assert.Equal(t, 50.0, discount.Value)
}

func TestCreateOrder_SeatConflictIsAPIError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusConflict, "Ghế A1 đã được đặt bởi khách khác")
	})

	_, err := client.CreateOrder(context.Background(), CreateOrderRequest{ScheduleID: 7, SeatIDs: []uint{1}})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsConflict())
	assert.Equal(t, "Ghế A1 đã được đặt bởi khách khác", err.Error())
}

func TestCreateOrder_RequiresOrderID(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, map[string]any{"orderNumber": "ORD-000042"})
	})

	_, err := client.CreateOrder(context.Background(), CreateOrderRequest{ScheduleID: 7, SeatIDs: []uint{1}})
	assert.Error(t, err)
}

func TestOrderStatus(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/42", r.URL.Path)
		writeSuccess(w, map[string]any{"id": 42, "paymentStatus": constants.OrderPaid})
	})

	order, err := client.OrderStatus(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderPaid, order.PaymentStatus)
}

func TestOrderStatus_MissingStatusField(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, map[string]any{"id": 42})
	})

	_, err := client.OrderStatus(context.Background(), 42)
	assert.Error(t, err)
}

func TestPaymentToken_EmptyTokenRejected(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, map[string]any{"token": ""})
	})

	_, err := client.PaymentToken(context.Background(), 42)
	assert.Error(t, err)
}

func TestDo_CancelledContextDiscardsResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		// Hủy khi request đang bay — kết quả về phải bị bỏ
		cancel()
		writeSuccess(w, map[string]any{"id": 42, "paymentStatus": constants.OrderPaid})
	})

	_, err := client.OrderStatus(ctx, 42)
	assert.ErrorIs(t, err, context.Canceled)
}
