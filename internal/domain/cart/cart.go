// Package cart holds the in-memory shopping cart state: line items keyed by
// product id, mutated only through the operations defined here.
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a single line item in a cart. Quantity is at least 1 for every
// item present in a cart; quantities only leave a cart through RemoveItem
// or Clear.
type Item struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	ImageURL  string
}

// Cart is an ordered collection of line items with unique product ids.
// Cart is not safe for concurrent use; the Store serializes access.
type Cart struct {
	items []Item
	index map[string]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: make(map[string]int)}
}

// AddItem inserts the item, or increments the quantity of the existing entry
// when the product id is already present. It never fails.
func (c *Cart) AddItem(item Item) {
	if i, ok := c.index[item.ProductID]; ok {
		c.items[i].Quantity += item.Quantity
		return
	}
	c.index[item.ProductID] = len(c.items)
	c.items = append(c.items, item)
}

// UpdateQuantity sets the quantity of the matching entry when quantity > 0.
// A non-positive quantity is deliberately a no-op: callers validate input,
// and zero must not silently turn into a removal.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		return
	}
	if i, ok := c.index[productID]; ok {
		c.items[i].Quantity = quantity
	}
}

// RemoveItem deletes the matching entry. Removing an absent id is a no-op.
func (c *Cart) RemoveItem(productID string) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].ProductID] = j
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.items = c.items[:0]
	clear(c.index)
}

// Total returns the sum of price * quantity over all items. An empty cart
// yields exactly zero.
func (c *Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Snapshot is an immutable copy of cart state taken at a specific moment.
type Snapshot struct {
	Items   []Item
	Total   decimal.Decimal
	TakenAt time.Time
}

// Snapshot copies the current items and total.
func (c *Cart) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		Items:   c.Items(),
		Total:   c.Total(),
		TakenAt: now,
	}
}
