package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeProduct(id, name string, price float64) *Product {
	return &Product{ID: id, Name: name, Price: price, Status: ProductStatusActive}
}

func assertInvariants(t *testing.T, c *Cart) {
	t.Helper()
	seen := make(map[string]bool)
	for _, li := range c.Items {
		assert.False(t, seen[li.ProductID], "duplicate line item for product %s", li.ProductID)
		seen[li.ProductID] = true
		assert.GreaterOrEqual(t, li.Quantity, 1, "line item %s has quantity below 1", li.ProductID)
	}

	snap := c.Snapshot()
	var wantCount int
	var wantSubtotal float64
	for _, li := range c.Items {
		wantCount += li.Quantity
		wantSubtotal += li.UnitPrice * float64(li.Quantity)
	}
	assert.Equal(t, wantCount, snap.ItemCount)
	assert.InDelta(t, wantSubtotal, snap.Subtotal, 1e-9)
}

func TestCart_AddItem_NewLine(t *testing.T) {
	c := NewCart("sess-1")

	err := c.AddItem(activeProduct("p1", "Rose Serum", 29.90), 2)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, "p1", c.Items[0].ProductID)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 29.90, c.Items[0].UnitPrice)
	assertInvariants(t, c)
}

func TestCart_AddItem_MergesQuantities(t *testing.T) {
	c := NewCart("sess-1")

	require.NoError(t, c.AddItem(activeProduct("p1", "Rose Serum", 29.90), 2))
	require.NoError(t, c.AddItem(activeProduct("p1", "Rose Serum", 29.90), 3))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assertInvariants(t, c)
}

func TestCart_AddItem_SnapshotsPriceAtAddTime(t *testing.T) {
	c := NewCart("sess-1")

	require.NoError(t, c.AddItem(activeProduct("p1", "Rose Serum", 29.90), 1))

	// The catalog price changed; merging more units keeps the original price.
	require.NoError(t, c.AddItem(activeProduct("p1", "Rose Serum", 39.90), 1))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 29.90, c.Items[0].UnitPrice)
}

func TestCart_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	c := NewCart("sess-1")

	for _, qty := range []int{0, -1, -100} {
		err := c.AddItem(activeProduct("p1", "Rose Serum", 29.90), qty)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "quantity %d must be rejected", qty)
		assert.Empty(t, c.Items, "rejected add must not mutate the cart")
	}
}

func TestCart_AddItem_RejectsMalformedProduct(t *testing.T) {
	c := NewCart("sess-1")
	var vErr *ValidationError

	require.ErrorAs(t, c.AddItem(nil, 1), &vErr)
	require.ErrorAs(t, c.AddItem(&Product{Name: "No ID", Price: 5}, 1), &vErr)
	require.ErrorAs(t, c.AddItem(&Product{ID: "p1", Price: 5}, 1), &vErr)
	require.ErrorAs(t, c.AddItem(&Product{ID: "p1", Name: "Negative", Price: -1}, 1), &vErr)
	assert.Empty(t, c.Items)
}

func TestCart_UpdateItemQuantity_SetsQuantity(t *testing.T) {
	c := NewCart("sess-1")
	require.NoError(t, c.AddItem(activeProduct("p1", "Rose Serum", 29.90), 2))

	c.UpdateItemQuantity("p1", 7)

	assert.Equal(t, 7, c.Items[0].Quantity)
	assertInvariants(t, c)
}

func TestCart_UpdateItemQuantity_ZeroRemovesLine(t *testing.T) {
	c := NewCart("sess-1")
	require.NoError(t, c.AddItem(activeProduct("p1", "Rose Serum", 29.90), 2))
	require.NoError(t, c.AddItem(activeProduct("p2", "Clay Mask", 12.50), 1))

	c.UpdateItemQuantity("p1", 0)

	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)
	assertInvariants(t, c)
}

func TestCart_UpdateItemQuantity_NegativeRemovesLine(t *testing.T) {
	c := NewCart("sess-1")
	require.NoError(t, c.AddItem(activeProduct("p1", "Rose Serum", 29.90), 2))

	c.UpdateItemQuantity("p1", -3)

	assert.Empty(t, c.Items)
}

func TestCart_UpdateItemQuantity_MissingProductIsNoOp(t *testing.T) {
	c := NewCart("sess-1")
	require.NoError(t, c.AddItem(activeProduct("p1", "Rose Serum", 29.90), 2))
	before := c.Snapshot()

	c.UpdateItemQuantity("missing", 5)

	after := c.Snapshot()
	assert.Equal(t, before.Items, after.Items)
	assertInvariants(t, c)
}

func TestCart_RemoveItem(t *testing.T) {
	c := NewCart("sess-1")
	require.NoError(t, c.AddItem(activeProduct("p1", "Rose Serum", 29.90), 1))
	require.NoError(t, c.AddItem(activeProduct("p2", "Clay Mask", 12.50), 2))

	assert.True(t, c.RemoveItem("p1"))

	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)

	// Removing an absent product is a no-op, not an error.
	assert.False(t, c.RemoveItem("p1"))
	assert.Len(t, c.Items, 1)
	assertInvariants(t, c)
}

func TestCart_Clear(t *testing.T) {
	c := NewCart("sess-1")
	require.NoError(t, c.AddItem(activeProduct("p1", "Rose Serum", 29.90), 3))

	c.Clear()

	snap := c.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0, snap.ItemCount)
	assert.Equal(t, 0.0, snap.Subtotal)
}

func TestCart_DerivedTotalsScenario(t *testing.T) {
	c := NewCart("sess-1")
	require.NoError(t, c.AddItem(activeProduct("A", "Lip Balm", 10), 1))
	require.NoError(t, c.AddItem(activeProduct("B", "Hand Cream", 5), 2))

	snap := c.Snapshot()
	assert.Equal(t, 3, snap.ItemCount)
	assert.InDelta(t, 20.0, snap.Subtotal, 1e-9)

	c.RemoveItem("A")

	snap = c.Snapshot()
	assert.Equal(t, 2, snap.ItemCount)
	assert.InDelta(t, 10.0, snap.Subtotal, 1e-9)
}

func TestCart_InsertionOrderPreserved(t *testing.T) {
	c := NewCart("sess-1")
	require.NoError(t, c.AddItem(activeProduct("p3", "Toner", 8), 1))
	require.NoError(t, c.AddItem(activeProduct("p1", "Rose Serum", 29.90), 1))
	require.NoError(t, c.AddItem(activeProduct("p2", "Clay Mask", 12.50), 1))

	// Merging into an existing line must not reorder it.
	require.NoError(t, c.AddItem(activeProduct("p1", "Rose Serum", 29.90), 1))

	ids := []string{c.Items[0].ProductID, c.Items[1].ProductID, c.Items[2].ProductID}
	assert.Equal(t, []string{"p3", "p1", "p2"}, ids)
}

func TestCart_SnapshotIsDefensiveCopy(t *testing.T) {
	c := NewCart("sess-1")
	require.NoError(t, c.AddItem(activeProduct("p1", "Rose Serum", 29.90), 2))

	snap := c.Snapshot()
	snap.Items[0].Quantity = 999

	assert.Equal(t, 2, c.Items[0].Quantity, "mutating a snapshot must not affect the cart")
}

func TestCart_RandomOpSequenceKeepsInvariants(t *testing.T) {
	c := NewCart("sess-1")
	products := []*Product{
		activeProduct("p1", "Rose Serum", 29.90),
		activeProduct("p2", "Clay Mask", 12.50),
		activeProduct("p3", "Toner", 8),
	}

	ops := []func(){
		func() { _ = c.AddItem(products[0], 1) },
		func() { _ = c.AddItem(products[1], 3) },
		func() { _ = c.AddItem(products[2], 2) },
		func() { c.UpdateItemQuantity("p1", 4) },
		func() { c.UpdateItemQuantity("p2", 0) },
		func() { c.RemoveItem("p3") },
		func() { _ = c.AddItem(products[1], 2) },
		func() { c.UpdateItemQuantity("missing", 9) },
		func() { c.RemoveItem("missing") },
	}

	for _, op := range ops {
		op()
		assertInvariants(t, c)
	}
}
