package checkout

import (
	"time"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/eliteemart/storefront/internal/domain/cart"
)

// StatusPending is the initial status of every submitted order.
const StatusPending = "pending"

// OrderPayload is the write-once projection of a cart snapshot sent to the
// order-creation endpoint. It is never mutated after construction.
type OrderPayload struct {
	Items     []OrderItem
	Total     decimal.Decimal
	OrderDate time.Time
	Status    string
}

// OrderItem is one cart line item projected into the order wire format.
type OrderItem struct {
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
}

// NewPayload projects a cart snapshot into an order payload.
func NewPayload(snap cart.Snapshot) OrderPayload {
	items := make([]OrderItem, len(snap.Items))
	for i, it := range snap.Items {
		items[i] = OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}
	return OrderPayload{
		Items:     items,
		Total:     snap.Total,
		OrderDate: snap.TakenAt.UTC(),
		Status:    StatusPending,
	}
}

// Encode writes the payload in the order endpoint's wire format:
//
//	{"type":"order","items":[{"type":"orderItem",...}],
//	 "total":N,"orderDate":"<RFC3339>","status":"pending"}
func (p OrderPayload) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("type")
	e.Str("order")
	e.FieldStart("items")
	e.ArrStart()
	for _, it := range p.Items {
		e.ObjStart()
		e.FieldStart("type")
		e.Str("orderItem")
		e.FieldStart("productId")
		e.Str(it.ProductID)
		e.FieldStart("name")
		e.Str(it.Name)
		e.FieldStart("quantity")
		e.Int(it.Quantity)
		e.FieldStart("price")
		e.Float64(it.Price.InexactFloat64())
		e.ObjEnd()
	}
	e.ArrEnd()
	e.FieldStart("total")
	e.Float64(p.Total.InexactFloat64())
	e.FieldStart("orderDate")
	e.Str(p.OrderDate.Format(time.RFC3339))
	e.FieldStart("status")
	e.Str(p.Status)
	e.ObjEnd()
}
