package pos

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/handlersyss/BarSystem/internal/model"
)

// Draft is a quick sale being assembled. It belongs to the caller, holds no
// reservations and is not persisted; stock is only checked so the terminal
// can reject obviously unavailable items early. Several drafts can exist at
// once without seeing each other.
type Draft struct {
	CustomerName string
	Items        []model.LineItem
}

// NewDraft starts an empty quick-sale draft.
func NewDraft(customerName string) *Draft {
	return &Draft{CustomerName: customerName}
}

// DraftAdd puts an item on a draft, snapshotting the product's current name
// and price. The stock check is advisory: nothing is reserved until the
// draft is finalized, so stock can still run out in between.
func (s *System) DraftAdd(d *Draft, productID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.state.Products[productID]
	if !ok {
		return fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	if product.Stock < quantity {
		return fmt.Errorf("%w: product %d has %d left", ErrInsufficientStock, productID, product.Stock)
	}

	tmp := model.Tab{Items: d.Items}
	tmp.AddItem(model.NewLineItem(productID, quantity, product.Name, product.Price))
	d.Items = tmp.Items
	return nil
}

// DraftRemove takes units off a draft, clamped like tab removal. No stock
// moves because the draft never held any.
func (d *Draft) DraftRemove(productID, quantity int) {
	if quantity <= 0 {
		return
	}
	tmp := model.Tab{Items: d.Items}
	tmp.RemoveItem(productID, quantity)
	d.Items = tmp.Items
}

// FinalizeQuickSale turns a draft into a persisted, already-closed tab with
// no table. Stock is deducted item by item against the stock remaining at
// finalize time, not against a batch-validated snapshot; if any item no
// longer fits the whole sale fails and nothing is committed.
func (s *System) FinalizeQuickSale(d *Draft) (*model.Tab, error) {
	if len(d.Items) == 0 {
		return nil, fmt.Errorf("%w: quick sale has no items", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.Clone()
	now := model.FormatTime(s.now())
	tab := &model.Tab{
		ID:           s.state.Counters.NextTabID,
		Table:        model.QuickSaleTable,
		Status:       model.TabClosed,
		OpenedAt:     now,
		ClosedAt:     now,
		CustomerName: d.CustomerName,
	}

	for _, item := range d.Items {
		if !s.adjustStock(item.ProductID, -item.Quantity) {
			s.state = snapshot
			return nil, fmt.Errorf("%w: product %d", ErrInsufficientStock, item.ProductID)
		}
		tab.AddItem(item)
	}

	s.state.Tabs[tab.ID] = tab
	s.state.Counters.NextTabID++

	if err := s.persist(snapshot); err != nil {
		return nil, err
	}
	s.log.Info("quick sale finalized",
		zap.Int("tab_id", tab.ID),
		zap.Int("items", len(tab.Items)),
		zap.String("total", tab.Total().StringFixed(2)))
	return tab.Clone(), nil
}
