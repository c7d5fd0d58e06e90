package model

import "github.com/shopspring/decimal"

// TabStatus is the lifecycle state of a tab. The only transition is
// TabOpen -> TabClosed; a closed tab is immutable.
type TabStatus string

const (
	TabOpen   TabStatus = "open"
	TabClosed TabStatus = "closed"
)

// QuickSaleTable is the sentinel table id for tabs not bound to any table.
const QuickSaleTable = 0

// LineItem is one product entry within a tab. Name and unit price are
// snapshotted when the item is first added and never re-read from the
// catalog, so later product edits do not change existing tabs.
type LineItem struct {
	ProductID   int             `json:"product_id"`
	Quantity    int             `json:"quantity"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// NewLineItem builds a line item with the subtotal already computed.
func NewLineItem(productID, quantity int, name string, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		ProductID:   productID,
		Quantity:    quantity,
		ProductName: name,
		UnitPrice:   unitPrice,
		Subtotal:    unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// Tab is a running total for a table or a quick sale. Line items keep
// insertion order and are unique by product id.
type Tab struct {
	ID           int        `json:"id"`
	Table        int        `json:"table"`
	Status       TabStatus  `json:"status"`
	OpenedAt     string     `json:"opened_at"`
	ClosedAt     string     `json:"closed_at,omitempty"`
	CustomerName string     `json:"customer_name,omitempty"`
	Items        []LineItem `json:"items"`
}

// IsOpen reports whether the tab still accepts mutations.
func (t *Tab) IsOpen() bool {
	return t.Status == TabOpen
}

// AddItem merges the given line item into the tab. If a line item for the
// same product already exists its quantity is incremented and the subtotal
// recomputed from the original price snapshot; otherwise the item is
// appended.
func (t *Tab) AddItem(item LineItem) {
	for i := range t.Items {
		if t.Items[i].ProductID == item.ProductID {
			t.Items[i].Quantity += item.Quantity
			t.Items[i].Subtotal = t.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(t.Items[i].Quantity)))
			return
		}
	}
	t.Items = append(t.Items, item)
}

// RemoveItem takes up to quantity units of the product out of the tab and
// reports how many units were actually removed. Removing more than held is
// clamped: the whole line item is deleted and only the held quantity is
// returned. A zero return means the product was not on the tab.
func (t *Tab) RemoveItem(productID, quantity int) int {
	for i := range t.Items {
		if t.Items[i].ProductID != productID {
			continue
		}
		held := t.Items[i].Quantity
		if quantity >= held {
			t.Items = append(t.Items[:i], t.Items[i+1:]...)
			return held
		}
		t.Items[i].Quantity = held - quantity
		t.Items[i].Subtotal = t.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(t.Items[i].Quantity)))
		return quantity
	}
	return 0
}

// Item returns the line item for a product, or nil if absent.
func (t *Tab) Item(productID int) *LineItem {
	for i := range t.Items {
		if t.Items[i].ProductID == productID {
			return &t.Items[i]
		}
	}
	return nil
}

// Total recomputes the amount owed as the sum of all subtotals. It is never
// cached and never mutates the tab.
func (t *Tab) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range t.Items {
		total = total.Add(t.Items[i].Subtotal)
	}
	return total
}

// Clone returns an independent copy of the tab and its line items.
func (t *Tab) Clone() *Tab {
	cp := *t
	cp.Items = make([]LineItem, len(t.Items))
	copy(cp.Items, t.Items)
	return &cp
}
