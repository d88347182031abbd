package handler

import (
	"sync"

	"cinema_retail/backend"
	"cinema_retail/cart"
	"cinema_retail/checkout"
	"cinema_retail/model"
	"cinema_retail/utils"
)

var (
	backendClient *backend.Client
	cartStore     *cart.Store

	checkoutMu sync.Mutex
	checkouts  = make(map[string]*checkout.Orchestrator)
)

// Init gắn các phụ thuộc dùng chung cho toàn bộ handler, gọi một lần từ main
func Init(b *backend.Client, store *cart.Store) {
	backendClient = b
	cartStore = store
	// cart bị dọn thì orchestrator của phiên đó cũng không còn lý do tồn tại
	store.OnEvict = dropOrchestrator
}

func dropOrchestrator(sessionID string) {
	checkoutMu.Lock()
	defer checkoutMu.Unlock()
	delete(checkouts, sessionID)
}

func newOrchestrator(sessionID string) *checkout.Orchestrator {
	o := checkout.New(backendClient, cartStore.Get(sessionID))
	o.OnPaid = func(order model.Order) {
		utils.SendOrderConfirmationEmail(order)
	}
	return o
}

// orchestratorFor trả orchestrator của phiên, tạo mới nếu chưa có
func orchestratorFor(sessionID string) *checkout.Orchestrator {
	checkoutMu.Lock()
	defer checkoutMu.Unlock()

	o, ok := checkouts[sessionID]
	if !ok {
		o = newOrchestrator(sessionID)
		checkouts[sessionID] = o
	}
	return o
}

// resetOrchestrator bắt đầu một luồng checkout mới cho phiên (sau khi luồng
// trước đã kết thúc)
func resetOrchestrator(sessionID string) *checkout.Orchestrator {
	checkoutMu.Lock()
	defer checkoutMu.Unlock()

	o := newOrchestrator(sessionID)
	checkouts[sessionID] = o
	return o
}
