// Package checkout implements the one-shot transition from cart to
// submitted order: snapshot, a single network call, and cart cleanup.
package checkout

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/eliteemart/storefront/internal/domain/cart"
)

// ErrEmptyCart is returned when checkout is invoked on a cart with no items.
var ErrEmptyCart = errors.New("cart is empty")

// State tracks a single checkout invocation. Succeeded and Failed are
// terminal; a new invocation starts a fresh cycle from whatever the cart
// holds at that time.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Receipt reports the outcome of one checkout invocation.
type Receipt struct {
	State    State
	Payload  OrderPayload
	Redirect string
}

// Submitter performs checkouts against the order-creation endpoint. The
// per-session guard lives in the cart store so a second invocation is
// rejected while one is in flight.
type Submitter struct {
	carts    *cart.Store
	client   *Client
	redirect string
}

// NewSubmitter creates a Submitter. redirect is the follow-up page the user
// is sent to after a successful checkout.
func NewSubmitter(carts *cart.Store, client *Client, redirect string) *Submitter {
	return &Submitter{
		carts:    carts,
		client:   client,
		redirect: redirect,
	}
}

// Submit snapshots the session's cart, posts the order, and settles the
// cart: cleared on HTTP-OK, untouched on any failure. It returns
// cart.ErrCheckoutInFlight when the session already has a checkout pending
// and ErrEmptyCart when there is nothing to submit.
func (s *Submitter) Submit(ctx context.Context, sessionID string) (Receipt, error) {
	snap, err := s.carts.BeginCheckout(sessionID)
	if err != nil {
		return Receipt{State: StateSubmitting}, err
	}

	if len(snap.Items) == 0 {
		s.carts.EndCheckout(sessionID, false)
		return Receipt{State: StateIdle}, ErrEmptyCart
	}

	payload := NewPayload(snap)

	if err := s.client.CreateOrder(ctx, payload); err != nil {
		s.carts.EndCheckout(sessionID, false)
		return Receipt{State: StateFailed, Payload: payload}, errors.Wrap(err, "create order")
	}

	s.carts.EndCheckout(sessionID, true)
	return Receipt{
		State:    StateSucceeded,
		Payload:  payload,
		Redirect: s.redirect,
	}, nil
}
