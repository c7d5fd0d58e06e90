package model

import "github.com/shopspring/decimal"

// Product represents a sellable item in the catalog.
type Product struct {
	ID       int             `json:"id" gorm:"primaryKey"`
	Name     string          `json:"name" gorm:"type:varchar(255);not null"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category string          `json:"category" gorm:"type:varchar(100);not null"`
	Stock    int             `json:"stock" gorm:"not null;default:0"`
}

// Clone returns an independent copy of the product.
func (p *Product) Clone() *Product {
	cp := *p
	return &cp
}
