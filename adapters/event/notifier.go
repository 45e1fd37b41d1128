package event

import (
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/user-gateway/internal/domain/user"
)

// Notifier is an in-process broadcast hub for user change events. One
// instance is created at startup and handed to everything that publishes
// or subscribes; there is no package-level hub.
//
// Delivery is live-only: a subscriber registered after a publish never sees
// that event. Publishes never block: when a subscriber's buffer is full the
// newest event for that subscriber is dropped.
type Notifier struct {
	mu     sync.Mutex
	nextID uint64
	buffer int

	upserted map[uint64]chan *user.User
	deleted  map[uint64]chan uuid.UUID
}

func NewNotifier(buffer int) *Notifier {
	if buffer <= 0 {
		buffer = 16
	}
	return &Notifier{
		buffer:   buffer,
		upserted: make(map[uint64]chan *user.User),
		deleted:  make(map[uint64]chan uuid.UUID),
	}
}

// SubscribeUpserted registers a listener for create/update events. The
// cancel func deregisters the listener and closes the channel; it is safe
// to call more than once.
func (n *Notifier) SubscribeUpserted() (<-chan *user.User, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan *user.User, n.buffer)
	n.upserted[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.upserted, id)
			close(ch)
		})
	}
	return ch, cancel
}

// SubscribeDeleted registers a listener for delete events.
func (n *Notifier) SubscribeDeleted() (<-chan uuid.UUID, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan uuid.UUID, n.buffer)
	n.deleted[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.deleted, id)
			close(ch)
		})
	}
	return ch, cancel
}

// PublishUpserted fans the persisted row out to every current listener.
// Holding the lock for the whole fan-out keeps per-listener delivery order
// equal to publish order.
func (n *Notifier) PublishUpserted(u *user.User) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.upserted {
		select {
		case ch <- u:
		default: // slow subscriber, drop
		}
	}
}

// PublishDeleted fans the deleted id out to every current listener.
func (n *Notifier) PublishDeleted(id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.deleted {
		select {
		case ch <- id:
		default:
		}
	}
}
