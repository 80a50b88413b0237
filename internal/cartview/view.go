// Package cartview projects cart state into the shape the storefront UI
// renders. It holds formatting only: no business rules, no mutation, so the
// cart store stays testable without any rendering environment.
package cartview

import (
	"github.com/shopspring/decimal"

	"github.com/eliteemart/storefront/internal/domain/cart"
)

// Row is one rendered cart line.
type Row struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	RowTotal  string `json:"rowTotal"`
}

// View is the full cart page model. Subtotal and Total carry the same value;
// there is no tax or discount stage.
type View struct {
	Rows     []Row  `json:"rows"`
	Empty    bool   `json:"empty"`
	Subtotal string `json:"subtotal"`
	Total    string `json:"total"`
}

// Build renders the snapshot. Items without an image get placeholderURL.
// Prices and totals are formatted to two decimal places.
func Build(snap cart.Snapshot, placeholderURL string) View {
	rows := make([]Row, len(snap.Items))
	for i, it := range snap.Items {
		imageURL := it.ImageURL
		if imageURL == "" {
			imageURL = placeholderURL
		}
		qty := decimal.NewFromInt(int64(it.Quantity))
		rows[i] = Row{
			ProductID: it.ProductID,
			Name:      it.Name,
			ImageURL:  imageURL,
			UnitPrice: it.Price.StringFixed(2),
			Quantity:  it.Quantity,
			RowTotal:  it.Price.Mul(qty).StringFixed(2),
		}
	}

	total := snap.Total.StringFixed(2)
	return View{
		Rows:     rows,
		Empty:    len(rows) == 0,
		Subtotal: total,
		Total:    total,
	}
}
