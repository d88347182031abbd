package cart

import (
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Cart bị bỏ quên quá lâu thì dọn — ghế chưa submit không giữ chỗ gì
// phía server nên xóa là vô hại
const DefaultIdleTTL = 30 * time.Minute

// Store giữ cart theo sessionId trong bộ nhớ. Không lưu xuống đâu cả:
// client không được phép có trạng thái bền ngoài token phiên.
type Store struct {
	mu        sync.Mutex
	carts     map[string]*Cart
	scheduler gocron.Scheduler

	// OnEvict gọi với sessionId mỗi khi sweeper dọn một cart, để tầng trên
	// dọn luôn trạng thái checkout của phiên đó. Có thể nil.
	OnEvict func(sessionID string)
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get trả cart của phiên, tạo mới nếu chưa có
func (s *Store) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	return c
}

func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

// SweepIdle xóa các cart không hoạt động quá ttl, trả về số cart đã dọn
func (s *Store) SweepIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	var evicted []string
	for id, c := range s.carts {
		if c.LastActivity().Before(cutoff) {
			delete(s.carts, id)
			evicted = append(evicted, id)
		}
	}
	s.mu.Unlock()

	if s.OnEvict != nil {
		for _, id := range evicted {
			s.OnEvict(id)
		}
	}
	return len(evicted)
}

// StartSweeper chạy job dọn cart định kỳ
func (s *Store) StartSweeper(ttl time.Duration) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func() {
			if n := s.SweepIdle(ttl); n > 0 {
				log.Printf("Đã dọn %d cart bỏ quên", n)
			}
		}),
	)
	if err != nil {
		return err
	}

	s.scheduler = scheduler
	scheduler.Start()
	log.Println("✅ Cart sweeper started")
	return nil
}

func (s *Store) StopSweeper() {
	if s.scheduler != nil {
		_ = s.scheduler.Shutdown()
	}
}
