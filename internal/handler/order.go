package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/eliteemart/storefront/internal/domain/order"
)

// orderCreatedResponse acknowledges a persisted order. Callers only check
// the HTTP status; the body is informational.
type orderCreatedResponse struct {
	ID     string  `json:"id"`
	Total  float64 `json:"total"`
	Status string  `json:"status"`
}

// CreateOrder accepts the storefront's order payload, validates it, and
// persists the order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "read request body")
		return
	}

	req, err := decodeOrderPayload(body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid order payload")
		return
	}

	o, err := h.orders.CreateOrder(r.Context(), req)
	if err != nil {
		h.mapOrderError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, orderCreatedResponse{
		ID:     o.ID,
		Total:  o.Total.InexactFloat64(),
		Status: o.Status,
	})
}

// mapOrderError converts order service errors to JSON error responses.
func (h *Handler) mapOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var iqErr *order.InvalidQuantityError
	switch {
	case errors.Is(err, order.ErrEmptyItems):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &iqErr):
		writeError(w, r, http.StatusUnprocessableEntity, iqErr.Error())
	case errors.Is(err, order.ErrBadStatus):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		writeInternalError(w, r, err)
	}
}

// decodeOrderPayload parses the order wire format:
//
//	{"type":"order","items":[{"type":"orderItem","productId":...,"name":...,
//	 "quantity":N,"price":N}],"total":N,"orderDate":"<ISO-8601>","status":S}
//
// Unknown fields are skipped. Prices and the total are parsed as decimals to
// avoid float drift.
func decodeOrderPayload(data []byte) (order.CreateOrderRequest, error) {
	var req order.CreateOrderRequest

	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "type":
			typ, err := d.Str()
			if err != nil {
				return err
			}
			if typ != "order" {
				return errors.Errorf("unexpected payload type %q", typ)
			}
			return nil
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				item, err := decodeOrderItem(d)
				if err != nil {
					return err
				}
				req.Items = append(req.Items, item)
				return nil
			})
		case "total":
			n, err := d.Num()
			if err != nil {
				return err
			}
			total, err := decimal.NewFromString(n.String())
			if err != nil {
				return errors.Wrap(err, "parse total")
			}
			req.Total = total
			return nil
		case "orderDate":
			s, err := d.Str()
			if err != nil {
				return err
			}
			ts, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return errors.Wrap(err, "parse orderDate")
			}
			req.OrderDate = ts
			return nil
		case "status":
			s, err := d.Str()
			if err != nil {
				return err
			}
			req.Status = s
			return nil
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return order.CreateOrderRequest{}, errors.Wrap(err, "decode order payload")
	}

	return req, nil
}

func decodeOrderItem(d *jx.Decoder) (order.Item, error) {
	var item order.Item
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "productId":
			s, err := d.Str()
			item.ProductID = s
			return err
		case "name":
			s, err := d.Str()
			item.Name = s
			return err
		case "quantity":
			n, err := d.Int()
			item.Quantity = n
			return err
		case "price":
			n, err := d.Num()
			if err != nil {
				return err
			}
			price, err := decimal.NewFromString(n.String())
			if err != nil {
				return errors.Wrap(err, "parse price")
			}
			item.Price = price
			return nil
		default:
			// "type":"orderItem" and anything else is tolerated.
			return d.Skip()
		}
	})
	return item, err
}
