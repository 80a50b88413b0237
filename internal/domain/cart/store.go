package cart

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
)

// ErrCheckoutInFlight is returned when a checkout is started for a session
// that already has one in flight.
var ErrCheckoutInFlight = errors.New("checkout already in progress")

// session holds one cart plus its bookkeeping.
type session struct {
	cart       *Cart
	touched    time.Time
	submitting bool
}

// Store owns every session's cart and is the only component allowed to
// mutate cart state. Carts are created lazily on first access and evicted
// after sitting idle for the configured TTL.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*session
	now      func() time.Time
}

// NewStore creates a Store whose carts expire after ttl of inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// get returns the session, creating it when absent. Caller holds s.mu.
func (s *Store) get(sessionID string) *session {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{cart: New()}
		s.sessions[sessionID] = sess
	}
	sess.touched = s.now()
	return sess
}

// AddItem adds the item to the session's cart, incrementing the quantity of
// an existing entry with the same product id.
func (s *Store) AddItem(sessionID string, item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).cart.AddItem(item)
}

// UpdateQuantity sets the quantity of the matching entry when quantity > 0
// and is a no-op otherwise.
func (s *Store) UpdateQuantity(sessionID, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).cart.UpdateQuantity(productID, quantity)
}

// RemoveItem deletes the matching entry from the session's cart.
func (s *Store) RemoveItem(sessionID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).cart.RemoveItem(productID)
}

// ClearCart empties the session's cart.
func (s *Store) ClearCart(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).cart.Clear()
}

// Snapshot returns an immutable copy of the session's cart.
func (s *Store) Snapshot(sessionID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(sessionID).cart.Snapshot(s.now())
}

// BeginCheckout marks the session as submitting and returns a snapshot taken
// under the same lock, so the payload reflects exactly the guarded state.
// It returns ErrCheckoutInFlight when a previous checkout has not settled.
func (s *Store) BeginCheckout(sessionID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(sessionID)
	if sess.submitting {
		return Snapshot{}, ErrCheckoutInFlight
	}
	sess.submitting = true
	return sess.cart.Snapshot(s.now()), nil
}

// EndCheckout settles the in-flight checkout. When clear is true the cart is
// emptied; otherwise it is left untouched.
func (s *Store) EndCheckout(sessionID string, clear bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(sessionID)
	sess.submitting = false
	if clear {
		sess.cart.Clear()
	}
}

// cleanup removes sessions whose carts have been idle past the TTL.
// Sessions with a checkout in flight are never evicted.
func (s *Store) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if !sess.submitting && now.Sub(sess.touched) >= s.ttl {
			delete(s.sessions, id)
		}
	}
}

// StartCleanup launches a background goroutine that evicts idle sessions at
// the given interval. It stops when ctx is cancelled.
func (s *Store) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.cleanup(now)
			}
		}
	}()
}
