package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusPending is the only status accepted for newly submitted orders.
const StatusPending = "pending"

// Sentinel errors for order validation.
var (
	ErrEmptyItems = fmt.Errorf("items required")
	ErrBadStatus  = fmt.Errorf("status must be %q", StatusPending)
)

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	ProductID string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %s", e.ProductID)
}

// CreateOrderRequest holds the decoded order payload.
type CreateOrderRequest struct {
	Items     []Item
	Total     decimal.Decimal
	OrderDate time.Time
	Status    string
}

// Service validates and persists submitted orders.
type Service struct {
	orders Repository
}

// NewService creates an order Service backed by the given repository.
func NewService(orders Repository) *Service {
	return &Service{orders: orders}
}

// CreateOrder validates the payload shape, assigns an id, and persists the
// order. The payload's total is accepted as authoritative; the storefront
// computed it from the same cart snapshot it submitted.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{ProductID: item.ProductID}
		}
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}
	if status != StatusPending {
		return nil, ErrBadStatus
	}

	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}

	o := &Order{
		ID:        uuid.New().String(),
		Items:     req.Items,
		Total:     req.Total.Round(2),
		OrderDate: orderDate,
		Status:    status,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return o, nil
}
