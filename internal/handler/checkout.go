package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/eliteemart/storefront/internal/cartview"
	"github.com/eliteemart/storefront/internal/domain/cart"
	"github.com/eliteemart/storefront/internal/domain/checkout"
)

const (
	noticeOrderPlaced = "Order placed successfully!"
	noticeOrderFailed = "Failed to place order"
)

// checkoutResponse reports the checkout outcome. Redirect is set only on
// success; the UI navigates the user there.
type checkoutResponse struct {
	Notice   string        `json:"notice"`
	State    string        `json:"state"`
	Redirect string        `json:"redirect,omitempty"`
	Cart     cartview.View `json:"cart"`
}

// Checkout submits the session's cart as an order. Exactly one request is
// made per invocation; a second invocation while one is pending gets 409.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)

	receipt, err := h.submitter.Submit(r.Context(), sid)
	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, checkoutResponse{
			Notice:   noticeOrderPlaced,
			State:    receipt.State.String(),
			Redirect: receipt.Redirect,
			Cart:     cartview.Build(h.carts.Snapshot(sid), h.cfg.PlaceholderImageURL),
		})

	case errors.Is(err, cart.ErrCheckoutInFlight):
		writeError(w, r, http.StatusConflict, "checkout already in progress")

	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, r, http.StatusBadRequest, "cart is empty")

	default:
		// Transport failure or non-OK from the order endpoint: the cart is
		// untouched and the user is told, nothing is retried.
		zctx.From(r.Context()).Warn("Checkout failed", zap.Error(err))
		writeJSON(w, r, http.StatusBadGateway, checkoutResponse{
			Notice: noticeOrderFailed,
			State:  receipt.State.String(),
			Cart:   cartview.Build(h.carts.Snapshot(sid), h.cfg.PlaceholderImageURL),
		})
	}
}
