package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a submitted customer order as accepted by the order-creation
// endpoint. Orders are created once and never mutated.
type Order struct {
	ID        string
	Items     []Item
	Total     decimal.Decimal
	OrderDate time.Time
	Status    string
}

// Item is a single line item of a submitted order.
type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, order *Order) error
}
