package pos

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/handlersyss/BarSystem/internal/model"
)

// memStore keeps the saved state in memory so core tests run without disk.
type memStore struct {
	state *model.State
	saves int
}

func (m *memStore) Load() (*model.State, error) {
	if m.state == nil {
		return model.NewState(), nil
	}
	return m.state.Clone(), nil
}

func (m *memStore) Save(state *model.State) error {
	m.state = state.Clone()
	m.saves++
	return nil
}

// failStore accepts loads but refuses every save.
type failStore struct {
	memStore
	failing bool
}

func (f *failStore) Save(state *model.State) error {
	if f.failing {
		return errors.New("disk unplugged")
	}
	return f.memStore.Save(state)
}

func newSystem(t *testing.T) (*System, *memStore) {
	t.Helper()
	st := &memStore{}
	sys, err := New(st, zap.NewNop())
	require.NoError(t, err)
	return sys, st
}

func addTestProduct(t *testing.T, sys *System, name string, price float64, stock int) *model.Product {
	t.Helper()
	p, err := sys.AddProduct(name, decimal.NewFromFloat(price), "drinks", stock)
	require.NoError(t, err)
	return p
}

func TestFreshVenueSeedsDefaultTables(t *testing.T) {
	sys, _ := newSystem(t)
	assert.Len(t, sys.FreeTables(), 10)
	assert.Empty(t, sys.OccupiedTables())
}

func TestLoadedStateIsNotReseeded(t *testing.T) {
	st := &memStore{state: model.NewState()}
	st.state.Tables[42] = nil

	sys, err := New(st, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []int{42}, sys.FreeTables())
}

func TestEveryMutationPersists(t *testing.T) {
	sys, st := newSystem(t)

	p := addTestProduct(t, sys, "Lager", 8.0, 20)
	tab, err := sys.OpenTab(1, "")
	require.NoError(t, err)
	require.NoError(t, sys.AddItem(tab.ID, p.ID, 2))
	_, err = sys.CloseTab(tab.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, st.saves)

	// A reload from the same store sees the final state.
	sys2, err := New(st, zap.NewNop())
	require.NoError(t, err)
	closed, err := sys2.Tab(tab.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TabClosed, closed.Status)
	stock, err := sys2.Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 18, stock.Stock)
}

func TestFailedSaveRollsBackMemoryState(t *testing.T) {
	st := &failStore{}
	sys, err := New(st, zap.NewNop())
	require.NoError(t, err)

	p := addTestProduct(t, sys, "Stout", 10.0, 5)
	tab, err := sys.OpenTab(2, "")
	require.NoError(t, err)

	st.failing = true
	err = sys.AddItem(tab.ID, p.ID, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)

	// Neither the stock nor the tab moved.
	got, err := sys.Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
	reloaded, err := sys.Tab(tab.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)

	// The system keeps working once the store recovers.
	st.failing = false
	require.NoError(t, sys.AddItem(tab.ID, p.ID, 3))
}

// Full walkthrough: open, add, clamped remove, close, closed tab rejects.
func TestTabLifecycleScenario(t *testing.T) {
	sys, _ := newSystem(t)
	p := addTestProduct(t, sys, "House Ale", 5.0, 10)

	tab, err := sys.OpenTab(3, "")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, sys.OccupiedTables())

	bound, err := sys.TabForTable(3)
	require.NoError(t, err)
	assert.Equal(t, tab.ID, bound.ID)

	require.NoError(t, sys.AddItem(tab.ID, p.ID, 4))
	got, _ := sys.Product(p.ID)
	assert.Equal(t, 6, got.Stock)
	total, err := sys.Total(tab.ID)
	require.NoError(t, err)
	assert.Equal(t, "20.00", total.StringFixed(2))

	// Removing more than held clamps: the row is gone, stock fully back.
	require.NoError(t, sys.RemoveItem(tab.ID, p.ID, 6))
	got, _ = sys.Product(p.ID)
	assert.Equal(t, 10, got.Stock)
	total, err = sys.Total(tab.ID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	closeTotal, err := sys.CloseTab(tab.ID)
	require.NoError(t, err)
	assert.True(t, closeTotal.IsZero())
	assert.Contains(t, sys.FreeTables(), 3)

	err = sys.AddItem(tab.ID, p.ID, 1)
	assert.ErrorIs(t, err, ErrTabClosed)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestStockConservationAcrossTabs(t *testing.T) {
	sys, _ := newSystem(t)
	const initial = 30
	p, err := sys.AddProduct("Cider", decimal.NewFromFloat(7.5), "drinks", initial)
	require.NoError(t, err)

	tabA, err := sys.OpenTab(1, "")
	require.NoError(t, err)
	tabB, err := sys.OpenTab(2, "")
	require.NoError(t, err)

	require.NoError(t, sys.AddItem(tabA.ID, p.ID, 5))
	require.NoError(t, sys.AddItem(tabB.ID, p.ID, 7))
	require.NoError(t, sys.RemoveItem(tabA.ID, p.ID, 2))
	require.NoError(t, sys.AddItem(tabB.ID, p.ID, 1))

	held := 0
	for _, id := range []int{tabA.ID, tabB.ID} {
		tab, err := sys.Tab(id)
		require.NoError(t, err)
		if item := tab.Item(p.ID); item != nil {
			held += item.Quantity
		}
	}
	got, err := sys.Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, initial, got.Stock+held)
}

func TestQuickSaleTimestampsMatch(t *testing.T) {
	sys, _ := newSystem(t)
	fixed := time.Date(2026, 8, 31, 21, 15, 0, 0, time.UTC)
	sys.now = func() time.Time { return fixed }

	p := addTestProduct(t, sys, "Espresso", 4.0, 8)
	draft := NewDraft("walk-in")
	require.NoError(t, sys.DraftAdd(draft, p.ID, 2))

	tab, err := sys.FinalizeQuickSale(draft)
	require.NoError(t, err)
	assert.Equal(t, model.TabClosed, tab.Status)
	assert.Equal(t, model.QuickSaleTable, tab.Table)
	assert.Equal(t, tab.OpenedAt, tab.ClosedAt)
	assert.Equal(t, "31/08/2026 21:15:00", tab.OpenedAt)
}
