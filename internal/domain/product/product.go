package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product is a catalog record as supplied by the content store: already
// shaped for the cart, the service only reads these fields.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	ImageURL string
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}
