package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Quantities and prices travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product kept in stock.
type Product struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"size:120;not null"`
	Category   string          `json:"category" gorm:"size:80"`
	Unit       string          `json:"unit" gorm:"size:20"` // e.g. "kg", "pieza"
	Price      decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	Stock      decimal.Decimal `json:"stock" gorm:"type:numeric(14,3);not null"`
	Supplier   string          `json:"supplier" gorm:"size:120"`
	ExpiryDate Date            `json:"expiryDate" gorm:"type:date"`
	CreatedAt  time.Time       `json:"-"`
	UpdatedAt  time.Time       `json:"-"`
}

// ProductInput is the payload accepted when creating a product.
type ProductInput struct {
	Name       string          `json:"name" validate:"required,min=2,max=120"`
	Category   string          `json:"category" validate:"required,max=80"`
	Unit       string          `json:"unit" validate:"required,max=20"`
	Price      decimal.Decimal `json:"price" validate:"gte=0"`
	Stock      decimal.Decimal `json:"stock" validate:"gte=0"`
	Supplier   string          `json:"supplier" validate:"required,max=120"`
	ExpiryDate Date            `json:"expiryDate" validate:"required"`
}

// Product converts the input into a new, unsaved Product.
func (in ProductInput) Product() Product {
	return Product{
		Name:       in.Name,
		Category:   in.Category,
		Unit:       in.Unit,
		Price:      in.Price,
		Stock:      in.Stock,
		Supplier:   in.Supplier,
		ExpiryDate: in.ExpiryDate,
	}
}

// ProductPatch is a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name       *string          `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Category   *string          `json:"category,omitempty" validate:"omitempty,max=80"`
	Unit       *string          `json:"unit,omitempty" validate:"omitempty,max=20"`
	Price      *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock      *decimal.Decimal `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Supplier   *string          `json:"supplier,omitempty" validate:"omitempty,max=120"`
	ExpiryDate *Date            `json:"expiryDate,omitempty"`
}

// Apply copies every provided field onto p.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Unit != nil {
		p.Unit = *patch.Unit
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Supplier != nil {
		p.Supplier = *patch.Supplier
	}
	if patch.ExpiryDate != nil {
		p.ExpiryDate = *patch.ExpiryDate
	}
}

// IsEmpty reports whether the patch changes nothing.
func (patch ProductPatch) IsEmpty() bool {
	return patch == ProductPatch{}
}
