package handler

import (
	"net/http"
	"strings"

	"github.com/go-faster/errors"

	"github.com/eliteemart/storefront/internal/domain/product"
)

// productResponse is the catalog wire representation.
type productResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

// ListProducts returns every product in the catalog.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		writeInternalError(w, r, errors.Wrap(err, "list products"))
		return
	}

	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = h.toProductResponse(p)
	}
	writeJSON(w, r, http.StatusOK, out)
}

// GetProduct returns a single product by ID.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, r, errors.Wrap(err, "get product"))
		return
	}

	writeJSON(w, r, http.StatusOK, h.toProductResponse(*p))
}

// toProductResponse converts a domain product to its wire form.
func (h *Handler) toProductResponse(p product.Product) productResponse {
	return productResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price.InexactFloat64(),
		ImageURL: h.resolveImageURL(p.ImageURL),
	}
}

// resolveImageURL prefixes relative image paths with the configured image
// base URL. Absolute URLs and empty values pass through unchanged.
func (h *Handler) resolveImageURL(imageURL string) string {
	if imageURL == "" || h.cfg.ImageBaseURL == "" || strings.Contains(imageURL, "://") {
		return imageURL
	}
	return h.cfg.ImageBaseURL + imageURL
}
