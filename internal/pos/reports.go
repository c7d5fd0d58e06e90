package pos

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/handlersyss/BarSystem/internal/model"
)

// ProductSales is one row of the best-sellers breakdown.
type ProductSales struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DailySales summarizes the tabs closed on one day.
type DailySales struct {
	Date          string          `json:"date"`
	TabCount      int             `json:"tab_count"`
	Gross         decimal.Decimal `json:"gross"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	TopProducts   []ProductSales  `json:"top_products"`
}

// LowStock lists the products whose stock fell below the threshold.
func (s *System) LowStock(threshold int) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Product, 0)
	for _, p := range s.state.Products {
		if p.Stock < threshold {
			out = append(out, *p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TabsOfDay lists every tab opened on the given day, open or closed.
func (s *System) TabsOfDay(day time.Time) []model.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Tab, 0)
	for _, tab := range s.state.Tabs {
		if model.SameDay(tab.OpenedAt, day) {
			out = append(out, *tab.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SalesOfDay summarizes the tabs closed on the given day: count, gross
// total, average ticket and the best-selling products by quantity.
func (s *System) SalesOfDay(day time.Time) DailySales {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := DailySales{
		Date:          day.Format(model.DateLayout),
		Gross:         decimal.Zero,
		AverageTicket: decimal.Zero,
		TopProducts:   []ProductSales{},
	}

	sold := make(map[int]*ProductSales)
	for _, tab := range s.state.Tabs {
		if tab.Status != model.TabClosed || !model.SameDay(tab.ClosedAt, day) {
			continue
		}
		report.TabCount++
		report.Gross = report.Gross.Add(tab.Total())
		for _, item := range tab.Items {
			entry, ok := sold[item.ProductID]
			if !ok {
				entry = &ProductSales{ProductID: item.ProductID, Name: item.ProductName, Revenue: decimal.Zero}
				sold[item.ProductID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue = entry.Revenue.Add(item.Subtotal)
		}
	}

	if report.TabCount > 0 {
		report.AverageTicket = report.Gross.Div(decimal.NewFromInt(int64(report.TabCount))).Round(2)
	}
	for _, entry := range sold {
		report.TopProducts = append(report.TopProducts, *entry)
	}
	sort.Slice(report.TopProducts, func(i, j int) bool {
		if report.TopProducts[i].Quantity != report.TopProducts[j].Quantity {
			return report.TopProducts[i].Quantity > report.TopProducts[j].Quantity
		}
		return report.TopProducts[i].ProductID < report.TopProducts[j].ProductID
	})
	return report
}
