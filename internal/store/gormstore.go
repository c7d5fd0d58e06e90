package store

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/handlersyss/BarSystem/internal/model"
)

// Row types mirror the relational schema (products, tables, tabs, tab
// items, counters). They are kept separate from the domain structs so the
// in-memory model does not leak persistence concerns like the tab item
// surrogate key.

type tabRow struct {
	ID           int    `gorm:"primaryKey"`
	TableID      int    `gorm:"not null"`
	Status       string `gorm:"type:varchar(10);not null"`
	OpenedAt     string `gorm:"type:varchar(20);not null"`
	ClosedAt     string `gorm:"type:varchar(20)"`
	CustomerName string `gorm:"type:varchar(255)"`
}

func (tabRow) TableName() string { return "tabs" }

type tabItemRow struct {
	ID          int             `gorm:"primaryKey;autoIncrement"`
	TabID       int             `gorm:"index;not null"`
	ProductID   int             `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (tabItemRow) TableName() string { return "tab_items" }

type tableRow struct {
	ID    int  `gorm:"primaryKey"`
	TabID *int `gorm:""`
}

func (tableRow) TableName() string { return "venue_tables" }

type counterRow struct {
	Name  string `gorm:"primaryKey;type:varchar(50)"`
	Value int    `gorm:"not null"`
}

func (counterRow) TableName() string { return "counters" }

const (
	counterNextProduct = "next_product_id"
	counterNextTab     = "next_tab_id"
)

// GormStore persists the state in a relational database through GORM.
// Saves replace the full entity sets inside one transaction; the sets are
// small (one venue) so the simplicity wins over incremental upserts.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the schema and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	err := db.AutoMigrate(&model.Product{}, &tabRow{}, &tabItemRow{}, &tableRow{}, &counterRow{})
	if err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (g *GormStore) Load() (*model.State, error) {
	state := model.NewState()

	var products []model.Product
	if err := g.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	for i := range products {
		p := products[i]
		state.Products[p.ID] = &p
	}

	var tabs []tabRow
	if err := g.db.Find(&tabs).Error; err != nil {
		return nil, fmt.Errorf("load tabs: %w", err)
	}
	var items []tabItemRow
	if err := g.db.Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load tab items: %w", err)
	}
	for _, row := range tabs {
		state.Tabs[row.ID] = &model.Tab{
			ID:           row.ID,
			Table:        row.TableID,
			Status:       model.TabStatus(row.Status),
			OpenedAt:     row.OpenedAt,
			ClosedAt:     row.ClosedAt,
			CustomerName: row.CustomerName,
		}
	}
	for _, row := range items {
		tab, ok := state.Tabs[row.TabID]
		if !ok {
			continue
		}
		tab.Items = append(tab.Items, model.LineItem{
			ProductID:   row.ProductID,
			Quantity:    row.Quantity,
			ProductName: row.ProductName,
			UnitPrice:   row.UnitPrice,
			Subtotal:    row.Subtotal,
		})
	}

	var tables []tableRow
	if err := g.db.Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}
	for _, row := range tables {
		if row.TabID == nil {
			state.Tables[row.ID] = nil
			continue
		}
		v := *row.TabID
		state.Tables[row.ID] = &v
	}

	var counters []counterRow
	if err := g.db.Find(&counters).Error; err != nil {
		return nil, fmt.Errorf("load counters: %w", err)
	}
	for _, row := range counters {
		switch row.Name {
		case counterNextProduct:
			state.Counters.NextProductID = row.Value
		case counterNextTab:
			state.Counters.NextTabID = row.Value
		}
	}
	if state.Counters.NextProductID < 1 {
		state.Counters.NextProductID = 1
	}
	if state.Counters.NextTabID < 1 {
		state.Counters.NextTabID = 1
	}
	return state, nil
}

func (g *GormStore) Save(state *model.State) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&tabItemRow{}, &tabRow{}, &tableRow{}, &model.Product{}, &counterRow{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("clear rows: %w", err)
			}
		}

		products := make([]model.Product, 0, len(state.Products))
		for _, p := range state.Products {
			products = append(products, *p)
		}
		if len(products) > 0 {
			if err := tx.Create(&products).Error; err != nil {
				return fmt.Errorf("save products: %w", err)
			}
		}

		tabs := make([]tabRow, 0, len(state.Tabs))
		var items []tabItemRow
		for _, t := range state.Tabs {
			tabs = append(tabs, tabRow{
				ID:           t.ID,
				TableID:      t.Table,
				Status:       string(t.Status),
				OpenedAt:     t.OpenedAt,
				ClosedAt:     t.ClosedAt,
				CustomerName: t.CustomerName,
			})
			for _, it := range t.Items {
				items = append(items, tabItemRow{
					TabID:       t.ID,
					ProductID:   it.ProductID,
					Quantity:    it.Quantity,
					ProductName: it.ProductName,
					UnitPrice:   it.UnitPrice,
					Subtotal:    it.Subtotal,
				})
			}
		}
		if len(tabs) > 0 {
			if err := tx.Create(&tabs).Error; err != nil {
				return fmt.Errorf("save tabs: %w", err)
			}
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("save tab items: %w", err)
			}
		}

		tables := make([]tableRow, 0, len(state.Tables))
		for id, tabID := range state.Tables {
			row := tableRow{ID: id}
			if tabID != nil {
				v := *tabID
				row.TabID = &v
			}
			tables = append(tables, row)
		}
		if len(tables) > 0 {
			if err := tx.Create(&tables).Error; err != nil {
				return fmt.Errorf("save tables: %w", err)
			}
		}

		counters := []counterRow{
			{Name: counterNextProduct, Value: state.Counters.NextProductID},
			{Name: counterNextTab, Value: state.Counters.NextTabID},
		}
		if err := tx.Create(&counters).Error; err != nil {
			return fmt.Errorf("save counters: %w", err)
		}
		return nil
	})
}
