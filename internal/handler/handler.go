// Package handler exposes the storefront HTTP API: product catalog, cart
// operations, checkout, the order-creation endpoint, and site content.
package handler

import (
	"net/http"

	"github.com/eliteemart/storefront/internal/content"
	"github.com/eliteemart/storefront/internal/domain/auth"
	"github.com/eliteemart/storefront/internal/domain/cart"
	"github.com/eliteemart/storefront/internal/domain/checkout"
	"github.com/eliteemart/storefront/internal/domain/order"
	"github.com/eliteemart/storefront/internal/domain/product"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// ImageBaseURL is prepended to relative image paths in product responses.
	// When empty, image paths are returned as stored in the database.
	ImageBaseURL string
	// PlaceholderImageURL is used for cart rows whose product has no image.
	PlaceholderImageURL string
	// Auth is the hosted identity-provider configuration exposed to the UI.
	Auth content.AuthSettings
}

// Handler wires the domain services to HTTP routes.
type Handler struct {
	cfg       Config
	products  product.Repository
	filter    *product.ExistenceFilter
	carts     *cart.Store
	submitter *checkout.Submitter
	orders    *order.Service
	apikeys   auth.Repository
	pepper    []byte
	footer    content.Footer
}

// New constructs a Handler with the required dependencies. filter may be nil,
// in which case every product id goes straight to the repository.
func New(
	cfg Config,
	products product.Repository,
	filter *product.ExistenceFilter,
	carts *cart.Store,
	submitter *checkout.Submitter,
	orders *order.Service,
	apikeys auth.Repository,
	pepper []byte,
) *Handler {
	return &Handler{
		cfg:       cfg,
		products:  products,
		filter:    filter,
		carts:     carts,
		submitter: submitter,
		orders:    orders,
		apikeys:   apikeys,
		pepper:    pepper,
		footer:    content.DefaultFooter(),
	}
}

// Routes registers every API route on the mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)

	mux.HandleFunc("GET /api/cart", h.GetCart)
	mux.HandleFunc("POST /api/cart/items", h.AddItem)
	mux.HandleFunc("PATCH /api/cart/items/{id}", h.UpdateQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.RemoveItem)
	mux.HandleFunc("DELETE /api/cart", h.ClearCart)
	mux.HandleFunc("POST /api/cart/checkout", h.Checkout)

	mux.Handle("POST /api/createOrder", h.requireAPIKey(http.HandlerFunc(h.CreateOrder)))

	mux.HandleFunc("GET /api/site/footer", h.GetFooter)
	mux.HandleFunc("GET /api/auth/config", h.GetAuthConfig)
}
