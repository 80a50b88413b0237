package cartview

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteemart/storefront/internal/domain/cart"
)

const placeholder = "/images/placeholder.png"

func TestBuild_EmptyCart(t *testing.T) {
	v := Build(cart.Snapshot{Total: decimal.Zero}, placeholder)

	assert.True(t, v.Empty)
	assert.Empty(t, v.Rows)
	assert.Equal(t, "0.00", v.Subtotal)
	assert.Equal(t, "0.00", v.Total)
}

func TestBuild_FormatsTwoDecimals(t *testing.T) {
	snap := cart.Snapshot{
		Items: []cart.Item{
			{ProductID: "p1", Name: "Widget", Price: decimal.RequireFromString("10.5"), Quantity: 3, ImageURL: "https://cdn.example.com/w.png"},
		},
		Total: decimal.RequireFromString("31.5"),
	}

	v := Build(snap, placeholder)

	require.Len(t, v.Rows, 1)
	assert.Equal(t, "10.50", v.Rows[0].UnitPrice)
	assert.Equal(t, "31.50", v.Rows[0].RowTotal)
	assert.Equal(t, 3, v.Rows[0].Quantity)
	assert.Equal(t, "https://cdn.example.com/w.png", v.Rows[0].ImageURL)
	assert.False(t, v.Empty)
}

func TestBuild_MissingImageGetsPlaceholder(t *testing.T) {
	snap := cart.Snapshot{
		Items: []cart.Item{
			{ProductID: "p1", Name: "Widget", Price: decimal.RequireFromString("10.00"), Quantity: 1},
		},
		Total: decimal.RequireFromString("10.00"),
	}

	v := Build(snap, placeholder)

	require.Len(t, v.Rows, 1)
	assert.Equal(t, placeholder, v.Rows[0].ImageURL)
}

func TestBuild_SubtotalEqualsTotal(t *testing.T) {
	snap := cart.Snapshot{
		Items: []cart.Item{
			{ProductID: "p1", Name: "Widget", Price: decimal.RequireFromString("10.00"), Quantity: 2},
			{ProductID: "p2", Name: "Gadget", Price: decimal.RequireFromString("5.00"), Quantity: 1},
		},
		Total: decimal.RequireFromString("25.00"),
	}

	v := Build(snap, placeholder)

	// No tax or discount stage exists: the two values are always identical.
	assert.Equal(t, "25.00", v.Subtotal)
	assert.Equal(t, v.Subtotal, v.Total)
}

func TestBuild_NegativePriceIsNotRejected(t *testing.T) {
	snap := cart.Snapshot{
		Items: []cart.Item{
			{ProductID: "p1", Name: "Oddity", Price: decimal.RequireFromString("-1.00"), Quantity: 1},
		},
		Total: decimal.RequireFromString("-1.00"),
	}

	v := Build(snap, placeholder)

	require.Len(t, v.Rows, 1)
	assert.Equal(t, "-1.00", v.Rows[0].UnitPrice)
}
