package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handlersyss/BarSystem/internal/model"
)

func sampleState() *model.State {
	state := model.NewState()
	state.Products[1] = &model.Product{
		ID:       1,
		Name:     "Lager",
		Price:    decimal.NewFromFloat(8.5),
		Category: "drinks",
		Stock:    17,
	}
	tab := &model.Tab{
		ID:           3,
		Table:        2,
		Status:       model.TabOpen,
		OpenedAt:     "01/09/2026 19:30:00",
		CustomerName: "Ana",
	}
	tab.AddItem(model.NewLineItem(1, 2, "Lager", decimal.NewFromFloat(8.5)))
	state.Tabs[3] = tab
	tabID := 3
	state.Tables[2] = &tabID
	state.Tables[1] = nil
	state.Counters = model.Counters{NextProductID: 2, NextTabID: 4}
	return state
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	want := sampleState()
	require.NoError(t, fs.Save(want))

	got, err := fs.Load()
	require.NoError(t, err)

	require.Len(t, got.Products, 1)
	assert.Equal(t, "Lager", got.Products[1].Name)
	assert.True(t, got.Products[1].Price.Equal(decimal.NewFromFloat(8.5)))
	assert.Equal(t, 17, got.Products[1].Stock)

	require.Len(t, got.Tabs, 1)
	tab := got.Tabs[3]
	assert.Equal(t, model.TabOpen, tab.Status)
	assert.Equal(t, "01/09/2026 19:30:00", tab.OpenedAt)
	assert.Equal(t, "Ana", tab.CustomerName)
	require.Len(t, tab.Items, 1)
	assert.Equal(t, "17.00", tab.Items[0].Subtotal.StringFixed(2))

	require.Len(t, got.Tables, 2)
	assert.Nil(t, got.Tables[1])
	require.NotNil(t, got.Tables[2])
	assert.Equal(t, 3, *got.Tables[2])

	assert.Equal(t, want.Counters, got.Counters)
}

func TestFileStoreMissingFilesLoadEmpty(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "never-created"))
	got, err := fs.Load()
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.Equal(t, 1, got.Counters.NextProductID)
	assert.Equal(t, 1, got.Counters.NextTabID)
}

func TestFileStoreCorruptFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, productsFile), []byte("{not json"), 0o644))

	_, err := NewFileStore(dir).Load()
	assert.Error(t, err)
}

func TestFileStoreFailedSaveLeavesDocumentSetConsistent(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)

	before := model.NewState()
	before.Products[1] = &model.Product{
		ID:       1,
		Name:     "Lager",
		Price:    decimal.NewFromFloat(5),
		Category: "drinks",
		Stock:    10,
	}
	before.Counters = model.Counters{NextProductID: 2, NextTabID: 1}
	require.NoError(t, fs.Save(before))

	// Block the tabs document so the next save cannot complete.
	tabsPath := filepath.Join(dir, tabsFile)
	require.NoError(t, os.Remove(tabsPath))
	require.NoError(t, os.Mkdir(tabsPath, 0o755))

	// One logical change touching two entity sets: stock deducted and a
	// tab holding the units.
	after := before.Clone()
	after.Products[1].Stock = 6
	tab := &model.Tab{ID: 1, Table: 2, Status: model.TabOpen, OpenedAt: "01/09/2026 20:00:00"}
	tab.AddItem(model.NewLineItem(1, 4, "Lager", decimal.NewFromFloat(5)))
	after.Tabs[1] = tab
	after.Counters.NextTabID = 2

	require.Error(t, fs.Save(after))

	// The products document must not have moved without the tab: the
	// deducted units would otherwise be lost across a restart.
	require.NoError(t, os.Remove(tabsPath))
	got, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 10, got.Products[1].Stock)
	assert.Empty(t, got.Tabs)
	assert.Equal(t, before.Counters, got.Counters)

	// No staged temp files left behind either.
	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileStoreSaveReplacesPreviousState(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	require.NoError(t, fs.Save(sampleState()))

	next := model.NewState()
	next.Counters = model.Counters{NextProductID: 10, NextTabID: 20}
	require.NoError(t, fs.Save(next))

	got, err := fs.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Products)
	assert.Empty(t, got.Tabs)
	assert.Equal(t, next.Counters, got.Counters)
}
