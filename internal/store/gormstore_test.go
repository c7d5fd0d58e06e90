package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/handlersyss/BarSystem/internal/model"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	gs, err := NewGormStore(db)
	require.NoError(t, err)
	return gs
}

func TestGormStoreEmptyLoad(t *testing.T) {
	gs := newTestGormStore(t)

	got, err := gs.Load()
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.Equal(t, 1, got.Counters.NextProductID)
	assert.Equal(t, 1, got.Counters.NextTabID)
}

func TestGormStoreRoundTrip(t *testing.T) {
	gs := newTestGormStore(t)
	want := sampleState()
	require.NoError(t, gs.Save(want))

	got, err := gs.Load()
	require.NoError(t, err)

	require.Len(t, got.Products, 1)
	assert.Equal(t, "Lager", got.Products[1].Name)
	assert.Equal(t, 17, got.Products[1].Stock)

	require.Len(t, got.Tabs, 1)
	tab := got.Tabs[3]
	assert.Equal(t, model.TabOpen, tab.Status)
	assert.Equal(t, 2, tab.Table)
	require.Len(t, tab.Items, 1)
	assert.Equal(t, 2, tab.Items[0].Quantity)
	assert.True(t, tab.Items[0].UnitPrice.Equal(want.Tabs[3].Items[0].UnitPrice))

	require.NotNil(t, got.Tables[2])
	assert.Equal(t, 3, *got.Tables[2])
	assert.Nil(t, got.Tables[1])

	assert.Equal(t, want.Counters, got.Counters)
}

func TestGormStoreSaveReplacesPreviousState(t *testing.T) {
	gs := newTestGormStore(t)
	require.NoError(t, gs.Save(sampleState()))

	next := model.NewState()
	next.Tables[7] = nil
	next.Counters = model.Counters{NextProductID: 5, NextTabID: 9}
	require.NoError(t, gs.Save(next))

	got, err := gs.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Products)
	assert.Empty(t, got.Tabs)
	require.Len(t, got.Tables, 1)
	assert.Contains(t, got.Tables, 7)
	assert.Equal(t, next.Counters, got.Counters)
}
