package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, price string, qty int) Item {
	return Item{
		ProductID: id,
		Name:      "product " + id,
		Price:     decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestAddItem_NewEntry(t *testing.T) {
	c := New()
	c.AddItem(item("p1", "10.00", 2))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Items()[0].Quantity)
}

func TestAddItem_RepeatedAddIncrementsQuantity(t *testing.T) {
	c := New()
	c.AddItem(item("p1", "10.00", 2))
	c.AddItem(item("p1", "10.00", 3))
	c.AddItem(item("p1", "10.00", 1))

	// One entry per product id; quantity is the sum of every add.
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 6, c.Items()[0].Quantity)
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	c := New()
	c.AddItem(item("p2", "5.00", 1))
	c.AddItem(item("p1", "10.00", 1))
	c.AddItem(item("p3", "1.00", 1))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "p2", items[0].ProductID)
	assert.Equal(t, "p1", items[1].ProductID)
	assert.Equal(t, "p3", items[2].ProductID)
}

func TestUpdateQuantity_SetsExactValue(t *testing.T) {
	c := New()
	c.AddItem(item("p1", "10.00", 2))

	c.UpdateQuantity("p1", 7)

	assert.Equal(t, 7, c.Items()[0].Quantity)
}

// Zero and negative quantities are deliberately ignored rather than treated
// as removals. If that ever changes it is a product decision, not a bug fix.
func TestUpdateQuantity_NonPositiveIsNoOp(t *testing.T) {
	c := New()
	c.AddItem(item("p1", "10.00", 2))

	c.UpdateQuantity("p1", 0)
	assert.Equal(t, 2, c.Items()[0].Quantity, "zero must not change quantity")

	c.UpdateQuantity("p1", -3)
	assert.Equal(t, 2, c.Items()[0].Quantity, "negative must not change quantity")

	require.Equal(t, 1, c.Len(), "item must not be removed")
}

func TestUpdateQuantity_UnknownIDIsNoOp(t *testing.T) {
	c := New()
	c.AddItem(item("p1", "10.00", 2))

	c.UpdateQuantity("missing", 5)

	assert.Equal(t, 2, c.Items()[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	c := New()
	c.AddItem(item("p1", "10.00", 2))
	c.AddItem(item("p2", "5.00", 1))

	c.RemoveItem("p1")

	require.Equal(t, 1, c.Len())
	assert.Equal(t, "p2", c.Items()[0].ProductID)
	assert.True(t, decimal.RequireFromString("5.00").Equal(c.Total()))
}

func TestRemoveItem_AbsentIDIsNoOp(t *testing.T) {
	c := New()
	c.AddItem(item("p1", "10.00", 2))

	c.RemoveItem("missing")

	assert.Equal(t, 1, c.Len())
}

func TestRemoveItem_ReaddAfterRemove(t *testing.T) {
	c := New()
	c.AddItem(item("p1", "10.00", 2))
	c.AddItem(item("p2", "5.00", 1))
	c.RemoveItem("p1")
	c.AddItem(item("p1", "10.00", 1))

	require.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.Items()[1].Quantity)
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(item("p1", "10.00", 2))
	c.AddItem(item("p2", "5.00", 1))

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Total().IsZero())
}

func TestTotal_EmptyCartIsZero(t *testing.T) {
	assert.True(t, New().Total().IsZero())
}

func TestTotal_SumsPriceTimesQuantity(t *testing.T) {
	c := New()
	c.AddItem(item("p1", "10.00", 2))
	c.AddItem(item("p2", "5.00", 1))

	assert.True(t, decimal.RequireFromString("25.00").Equal(c.Total()))
}

func TestTotal_AfterRepeatedAdd(t *testing.T) {
	c := New()
	c.AddItem(item("p1", "10.00", 2))
	c.AddItem(item("p2", "5.00", 1))
	c.AddItem(item("p1", "10.00", 1))

	require.Equal(t, 2, c.Len())
	assert.Equal(t, 3, c.Items()[0].Quantity)
	assert.True(t, decimal.RequireFromString("35.00").Equal(c.Total()))
}

func TestSnapshot_IsCopy(t *testing.T) {
	c := New()
	c.AddItem(item("p1", "10.00", 2))

	snap := c.Snapshot(time.Now())
	c.UpdateQuantity("p1", 9)
	c.AddItem(item("p2", "5.00", 1))

	// Later mutations must not leak into an already-taken snapshot.
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("20.00").Equal(snap.Total))
}
