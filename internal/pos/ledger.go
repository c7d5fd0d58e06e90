package pos

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/handlersyss/BarSystem/internal/model"
)

// OpenTab creates a new open tab for a table and binds the table to it.
// A table can host at most one open tab at a time.
func (s *System) OpenTab(tableID int, customerName string) (*model.Tab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	openTab, ok := s.state.Tables[tableID]
	if !ok {
		return nil, fmt.Errorf("%w: table %d", ErrNotFound, tableID)
	}
	if openTab != nil {
		return nil, ErrTableOccupied
	}

	snapshot := s.state.Clone()
	tab := &model.Tab{
		ID:           s.state.Counters.NextTabID,
		Table:        tableID,
		Status:       model.TabOpen,
		OpenedAt:     model.FormatTime(s.now()),
		CustomerName: customerName,
	}
	s.state.Tabs[tab.ID] = tab
	s.state.Tables[tableID] = &tab.ID
	s.state.Counters.NextTabID++

	if err := s.persist(snapshot); err != nil {
		return nil, err
	}
	s.log.Info("tab opened",
		zap.Int("tab_id", tab.ID),
		zap.Int("table", tableID),
		zap.String("customer", customerName))
	return tab.Clone(), nil
}

// AddItem puts quantity units of a product on an open tab. The product's
// stock is deducted immediately and its current name and price are
// snapshotted into the line item. Adding the same product again merges
// into the existing line item.
func (s *System) AddItem(tabID, productID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tab, ok := s.state.Tabs[tabID]
	if !ok {
		return fmt.Errorf("%w: tab %d", ErrNotFound, tabID)
	}
	if !tab.IsOpen() {
		return ErrTabClosed
	}
	product, ok := s.state.Products[productID]
	if !ok {
		return fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	if product.Stock < quantity {
		return fmt.Errorf("%w: product %d has %d left", ErrInsufficientStock, productID, product.Stock)
	}

	snapshot := s.state.Clone()
	s.adjustStock(productID, -quantity)
	tab.AddItem(model.NewLineItem(productID, quantity, product.Name, product.Price))

	if err := s.persist(snapshot); err != nil {
		return err
	}
	s.log.Info("item added to tab",
		zap.Int("tab_id", tabID),
		zap.Int("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("stock_left", product.Stock))
	return nil
}

// RemoveItem takes units of a product off an open tab and returns them to
// stock. Removing more than the tab holds is clamped, not an error: the
// line item is deleted and only the held quantity goes back to stock.
func (s *System) RemoveItem(tabID, productID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tab, ok := s.state.Tabs[tabID]
	if !ok {
		return fmt.Errorf("%w: tab %d", ErrNotFound, tabID)
	}
	if !tab.IsOpen() {
		return ErrTabClosed
	}
	if tab.Item(productID) == nil {
		return fmt.Errorf("%w: product %d is not on tab %d", ErrNotFound, productID, tabID)
	}

	snapshot := s.state.Clone()
	returned := tab.RemoveItem(productID, quantity)
	// The product may have been deleted from the catalog since the item
	// was added; the removal still succeeds, the units just have nowhere
	// to go back to.
	s.adjustStock(productID, returned)

	if err := s.persist(snapshot); err != nil {
		return err
	}
	s.log.Info("item removed from tab",
		zap.Int("tab_id", tabID),
		zap.Int("product_id", productID),
		zap.Int("returned", returned))
	return nil
}

// CloseTab freezes a tab and returns the total owed. The table is freed;
// stock is untouched because it was committed when the items were added.
func (s *System) CloseTab(tabID int) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tab, ok := s.state.Tabs[tabID]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: tab %d", ErrNotFound, tabID)
	}
	if !tab.IsOpen() {
		return decimal.Zero, ErrTabClosed
	}

	snapshot := s.state.Clone()
	tab.Status = model.TabClosed
	tab.ClosedAt = model.FormatTime(s.now())
	if _, ok := s.state.Tables[tab.Table]; ok {
		s.state.Tables[tab.Table] = nil
	}
	total := tab.Total()

	if err := s.persist(snapshot); err != nil {
		return decimal.Zero, err
	}
	s.log.Info("tab closed",
		zap.Int("tab_id", tabID),
		zap.Int("table", tab.Table),
		zap.String("total", total.StringFixed(2)))
	return total, nil
}

// Total recomputes the amount owed on a tab. Pure read, open or closed.
func (s *System) Total(tabID int) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tab, ok := s.state.Tabs[tabID]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: tab %d", ErrNotFound, tabID)
	}
	return tab.Total(), nil
}

// Tab returns a copy of one tab.
func (s *System) Tab(tabID int) (model.Tab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tab, ok := s.state.Tabs[tabID]
	if !ok {
		return model.Tab{}, fmt.Errorf("%w: tab %d", ErrNotFound, tabID)
	}
	return *tab.Clone(), nil
}

// OpenTabs lists all tabs still accepting items, ordered by id.
func (s *System) OpenTabs() []model.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Tab, 0)
	for _, tab := range s.state.Tabs {
		if tab.IsOpen() {
			out = append(out, *tab.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
