package popup

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
)

const (
	defaultCapacity   = 100
	subscriberBacklog = 16
)

// Hub is the map annotation sink. It keeps the most recent popups and
// pushes new ones to live subscribers.
type Hub struct {
	mu          sync.Mutex
	capacity    int
	records     []*model.PopupRecord
	subscribers map[chan *model.PopupRecord]struct{}
	now         func() time.Time
}

var _ interfaces.PopupSink = (*Hub)(nil)

// Option is a functional option for Hub
type Option func(*Hub)

// WithCapacity sets how many recent popups are retained
func WithCapacity(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.capacity = n
		}
	}
}

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(h *Hub) {
		h.now = now
	}
}

// New creates a new Hub
func New(opts ...Option) *Hub {
	h := &Hub{
		capacity:    defaultCapacity,
		subscribers: make(map[chan *model.PopupRecord]struct{}),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddPopup stores the popup and delivers it to subscribers. A subscriber
// whose backlog is full misses the popup.
func (h *Hub) AddPopup(ctx context.Context, popup *model.PopupMessage) error {
	record := &model.PopupRecord{
		ID:        uuid.NewString(),
		CreatedAt: h.now(),
		Popup:     popup,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, record)
	if len(h.records) > h.capacity {
		h.records = h.records[len(h.records)-h.capacity:]
	}

	for ch := range h.subscribers {
		select {
		case ch <- record:
		default:
			ctxlog.From(ctx).Warn("Popup subscriber is lagging, dropping popup", "id", record.ID)
		}
	}

	return nil
}

// Recent returns retained popups, oldest first
func (h *Hub) Recent() []*model.PopupRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*model.PopupRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Subscribe registers a live subscriber. The returned cancel function must
// be called to release it; the channel is closed afterwards.
func (h *Hub) Subscribe() (<-chan *model.PopupRecord, func()) {
	ch := make(chan *model.PopupRecord, subscriberBacklog)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers returns the number of live subscribers
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
