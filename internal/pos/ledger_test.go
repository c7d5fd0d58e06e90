package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handlersyss/BarSystem/internal/model"
)

func TestOpenTabRequiresFreeTable(t *testing.T) {
	sys, _ := newSystem(t)

	_, err := sys.OpenTab(99, "")
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := sys.OpenTab(1, "Ana")
	require.NoError(t, err)
	assert.Equal(t, model.TabOpen, first.Status)
	assert.Equal(t, "Ana", first.CustomerName)
	assert.NotEmpty(t, first.OpenedAt)
	assert.Empty(t, first.ClosedAt)

	// Second open on the same table always fails, whoever asks.
	_, err = sys.OpenTab(1, "Bruno")
	assert.ErrorIs(t, err, ErrTableOccupied)

	// After closing, the table can host a new tab.
	_, err = sys.CloseTab(first.ID)
	require.NoError(t, err)
	second, err := sys.OpenTab(1, "Bruno")
	require.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)
}

func TestAddItemFailures(t *testing.T) {
	sys, _ := newSystem(t)
	p := addTestProduct(t, sys, "Lager", 8.0, 3)
	tab, err := sys.OpenTab(1, "")
	require.NoError(t, err)

	assert.ErrorIs(t, sys.AddItem(999, p.ID, 1), ErrNotFound)
	assert.ErrorIs(t, sys.AddItem(tab.ID, 999, 1), ErrNotFound)
	assert.ErrorIs(t, sys.AddItem(tab.ID, p.ID, 0), ErrValidation)
	assert.ErrorIs(t, sys.AddItem(tab.ID, p.ID, 4), ErrInsufficientStock)

	// A failed add leaves stock untouched.
	got, err := sys.Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}

func TestAddItemMergesSameProduct(t *testing.T) {
	sys, _ := newSystem(t)
	p := addTestProduct(t, sys, "IPA", 9.0, 10)
	tab, err := sys.OpenTab(1, "")
	require.NoError(t, err)

	require.NoError(t, sys.AddItem(tab.ID, p.ID, 2))
	require.NoError(t, sys.AddItem(tab.ID, p.ID, 3))

	got, err := sys.Tab(tab.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 5, got.Items[0].Quantity)
	assert.Equal(t, "45.00", got.Items[0].Subtotal.StringFixed(2))
}

func TestSnapshotSurvivesProductEdit(t *testing.T) {
	sys, _ := newSystem(t)
	p := addTestProduct(t, sys, "Daily Special", 10.0, 10)
	tab, err := sys.OpenTab(1, "")
	require.NoError(t, err)
	require.NoError(t, sys.AddItem(tab.ID, p.ID, 1))

	newName := "Renamed Special"
	require.NoError(t, sys.EditProduct(p.ID, ProductUpdate{Name: &newName}))

	got, err := sys.Tab(tab.ID)
	require.NoError(t, err)
	assert.Equal(t, "Daily Special", got.Items[0].ProductName)
	assert.Equal(t, "10.00", got.Items[0].UnitPrice.StringFixed(2))

	// A later add merges on the old snapshot, it does not re-read the catalog.
	require.NoError(t, sys.AddItem(tab.ID, p.ID, 1))
	got, err = sys.Tab(tab.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Daily Special", got.Items[0].ProductName)
	assert.Equal(t, "20.00", got.Items[0].Subtotal.StringFixed(2))
}

func TestRemoveItemClampAndPartial(t *testing.T) {
	sys, _ := newSystem(t)
	p := addTestProduct(t, sys, "Wine", 15.0, 10)
	tab, err := sys.OpenTab(1, "")
	require.NoError(t, err)
	require.NoError(t, sys.AddItem(tab.ID, p.ID, 4))

	// Partial removal keeps the row and returns only what was asked.
	require.NoError(t, sys.RemoveItem(tab.ID, p.ID, 1))
	got, err := sys.Tab(tab.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)
	stock, _ := sys.Product(p.ID)
	assert.Equal(t, 7, stock.Stock)

	// Removing more than held clamps to the held quantity.
	require.NoError(t, sys.RemoveItem(tab.ID, p.ID, 50))
	got, err = sys.Tab(tab.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	stock, _ = sys.Product(p.ID)
	assert.Equal(t, 10, stock.Stock)

	// The product is no longer on the tab.
	assert.ErrorIs(t, sys.RemoveItem(tab.ID, p.ID, 1), ErrNotFound)
}

func TestTotalMatchesLineItems(t *testing.T) {
	sys, _ := newSystem(t)
	ale := addTestProduct(t, sys, "Ale", 5.5, 20)
	nuts := addTestProduct(t, sys, "Nuts", 3.25, 20)
	tab, err := sys.OpenTab(1, "")
	require.NoError(t, err)

	checkTotal := func(want string) {
		t.Helper()
		got, err := sys.Tab(tab.ID)
		require.NoError(t, err)
		expected := got.Total()
		assert.Equal(t, want, expected.StringFixed(2))
		total, err := sys.Total(tab.ID)
		require.NoError(t, err)
		assert.True(t, total.Equal(expected))
	}

	checkTotal("0.00")
	require.NoError(t, sys.AddItem(tab.ID, ale.ID, 2))
	checkTotal("11.00")
	require.NoError(t, sys.AddItem(tab.ID, nuts.ID, 3))
	checkTotal("20.75")
	require.NoError(t, sys.RemoveItem(tab.ID, ale.ID, 1))
	checkTotal("15.25")
}

func TestClosedTabIsImmutable(t *testing.T) {
	sys, _ := newSystem(t)
	p := addTestProduct(t, sys, "Porter", 7.0, 10)
	tab, err := sys.OpenTab(1, "")
	require.NoError(t, err)
	require.NoError(t, sys.AddItem(tab.ID, p.ID, 2))

	total, err := sys.CloseTab(tab.ID)
	require.NoError(t, err)
	assert.Equal(t, "14.00", total.StringFixed(2))

	closed, err := sys.Tab(tab.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TabClosed, closed.Status)
	assert.NotEmpty(t, closed.ClosedAt)

	assert.ErrorIs(t, sys.AddItem(tab.ID, p.ID, 1), ErrTabClosed)
	assert.ErrorIs(t, sys.RemoveItem(tab.ID, p.ID, 1), ErrTabClosed)
	_, err = sys.CloseTab(tab.ID)
	assert.ErrorIs(t, err, ErrTabClosed)

	// The total never moves again.
	after, err := sys.Total(tab.ID)
	require.NoError(t, err)
	assert.True(t, after.Equal(total))
}

func TestOpenTabsListing(t *testing.T) {
	sys, _ := newSystem(t)
	a, err := sys.OpenTab(1, "")
	require.NoError(t, err)
	b, err := sys.OpenTab(2, "")
	require.NoError(t, err)
	_, err = sys.CloseTab(a.ID)
	require.NoError(t, err)

	open := sys.OpenTabs()
	require.Len(t, open, 1)
	assert.Equal(t, b.ID, open[0].ID)
}
