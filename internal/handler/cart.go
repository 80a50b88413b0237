package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/eliteemart/storefront/internal/cartview"
	"github.com/eliteemart/storefront/internal/domain/cart"
	"github.com/eliteemart/storefront/internal/domain/product"
)

// Transient notices surfaced after mutating actions. They are advisory UI
// feedback only; the mutation has already happened by the time one is sent.
const (
	noticeAdded   = "Item added to cart!"
	noticeUpdated = "Cart updated!"
	noticeRemoved = "Item removed from cart!"
	noticeCleared = "Cart cleared!"
)

// cartResponse is the cart view plus an optional transient notice.
type cartResponse struct {
	Notice string        `json:"notice,omitempty"`
	Cart   cartview.View `json:"cart"`
}

func (h *Handler) cartResponse(sessionID, notice string) cartResponse {
	return cartResponse{
		Notice: notice,
		Cart:   cartview.Build(h.carts.Snapshot(sessionID), h.cfg.PlaceholderImageURL),
	}
}

// GetCart renders the session's cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.cartResponse(sessionID(w, r), ""))
}

// AddItem resolves the product and adds it to the cart, incrementing the
// quantity when the product is already present.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == "" {
		writeError(w, r, http.StatusBadRequest, "productId required")
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	// Definitive negative from the filter saves the catalog lookup.
	if !h.filter.MightContain(req.ProductID) {
		writeError(w, r, http.StatusNotFound, "product not found")
		return
	}

	p, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, r, errors.Wrap(err, "get product"))
		return
	}

	sid := sessionID(w, r)
	h.carts.AddItem(sid, cart.Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  req.Quantity,
		ImageURL:  h.resolveImageURL(p.ImageURL),
	})

	writeJSON(w, r, http.StatusOK, h.cartResponse(sid, noticeAdded))
}

// UpdateQuantity sets a line item's quantity. Non-positive quantities are a
// no-op in the store; the response still carries the (unchanged) cart.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	sid := sessionID(w, r)
	h.carts.UpdateQuantity(sid, r.PathValue("id"), req.Quantity)

	notice := noticeUpdated
	if req.Quantity <= 0 {
		notice = ""
	}
	writeJSON(w, r, http.StatusOK, h.cartResponse(sid, notice))
}

// RemoveItem deletes a line item; removing an absent id is a no-op.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	h.carts.RemoveItem(sid, r.PathValue("id"))
	writeJSON(w, r, http.StatusOK, h.cartResponse(sid, noticeRemoved))
}

// ClearCart empties the session's cart unconditionally.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	h.carts.ClearCart(sid)
	writeJSON(w, r, http.StatusOK, h.cartResponse(sid, noticeCleared))
}
