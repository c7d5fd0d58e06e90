package pos

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/handlersyss/BarSystem/internal/model"
)

// ProductUpdate carries a partial edit: only non-nil fields are applied.
type ProductUpdate struct {
	Name     *string
	Price    *decimal.Decimal
	Category *string
	Stock    *int
}

// AddProduct registers a new product and assigns it the next monotonic id.
// Ids are never reused after a deletion, so closed tabs can keep referring
// to products that no longer exist.
func (s *System) AddProduct(name string, price decimal.Decimal, category string, stock int) (*model.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.Clone()
	product := &model.Product{
		ID:       s.state.Counters.NextProductID,
		Name:     name,
		Price:    price,
		Category: category,
		Stock:    stock,
	}
	s.state.Products[product.ID] = product
	s.state.Counters.NextProductID++

	if err := s.persist(snapshot); err != nil {
		return nil, err
	}
	s.log.Info("product added",
		zap.Int("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("category", product.Category),
		zap.Int("stock", product.Stock))
	return product.Clone(), nil
}

// EditProduct applies a partial update. Supplied price and stock values go
// through the same validation as AddProduct.
func (s *System) EditProduct(id int, upd ProductUpdate) error {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if upd.Price != nil && !upd.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.state.Products[id]
	if !ok {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}

	snapshot := s.state.Clone()
	if upd.Name != nil {
		product.Name = *upd.Name
	}
	if upd.Price != nil {
		product.Price = *upd.Price
	}
	if upd.Category != nil {
		product.Category = *upd.Category
	}
	if upd.Stock != nil {
		product.Stock = *upd.Stock
	}

	if err := s.persist(snapshot); err != nil {
		return err
	}
	s.log.Info("product edited", zap.Int("product_id", id))
	return nil
}

// SetStock overwrites the stock count of a product.
func (s *System) SetStock(id, stock int) error {
	return s.EditProduct(id, ProductUpdate{Stock: &stock})
}

// RemoveProduct deletes a product unconditionally. Open tabs holding the
// product keep their name/price snapshot, but the product cannot be
// ordered again.
func (s *System) RemoveProduct(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Products[id]; !ok {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}

	snapshot := s.state.Clone()
	delete(s.state.Products, id)

	if err := s.persist(snapshot); err != nil {
		return err
	}
	s.log.Info("product removed", zap.Int("product_id", id))
	return nil
}

// Product returns a copy of one product.
func (s *System) Product(id int) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.state.Products[id]
	if !ok {
		return model.Product{}, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return *product.Clone(), nil
}

// Products returns a snapshot of the catalog ordered by id, optionally
// filtered by exact category match.
func (s *System) Products(category string) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Product, 0, len(s.state.Products))
	for _, p := range s.state.Products {
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, *p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// adjustStock moves stock by delta without persisting; callers hold the
// lock and persist as part of their own operation. It refuses to drive the
// count below zero.
func (s *System) adjustStock(id, delta int) bool {
	product, ok := s.state.Products[id]
	if !ok {
		return false
	}
	if product.Stock+delta < 0 {
		return false
	}
	product.Stock += delta
	return true
}
