package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExitReason classifies why stock left the store.
type ExitReason string

const (
	ReasonSale     ExitReason = "Venta"
	ReasonWaste    ExitReason = "Merma"
	ReasonInternal ExitReason = "Uso Interno"
	ReasonDonation ExitReason = "Donación"
)

// ExitReasons lists every accepted exit reason.
var ExitReasons = []ExitReason{ReasonSale, ReasonWaste, ReasonInternal, ReasonDonation}

// Valid reports whether r is one of the accepted reasons.
func (r ExitReason) Valid() bool {
	for _, known := range ExitReasons {
		if r == known {
			return true
		}
	}
	return false
}

// StockEntry is an incoming movement. ProductName is a snapshot taken when the
// entry was recorded and is not updated if the product is later renamed.
type StockEntry struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	ProductID     uint            `json:"productId" gorm:"index;not null"`
	ProductName   string          `json:"productName" gorm:"size:120"`
	Quantity      decimal.Decimal `json:"quantity" gorm:"type:numeric(14,3);not null"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" gorm:"type:numeric(12,2);not null"`
	Date          Date            `json:"date" gorm:"type:date;index"`
	Supplier      string          `json:"supplier" gorm:"size:120"`
	CreatedAt     time.Time       `json:"-"`
}

// Total is the purchase cost of the entry.
func (e StockEntry) Total() decimal.Decimal {
	return e.Quantity.Mul(e.PurchasePrice)
}

// StockExit is an outgoing movement.
type StockExit struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ProductID   uint            `json:"productId" gorm:"index;not null"`
	ProductName string          `json:"productName" gorm:"size:120"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:numeric(14,3);not null"`
	Date        Date            `json:"date" gorm:"type:date;index"`
	Reason      ExitReason      `json:"reason" gorm:"size:20"`
	Customer    string          `json:"customer" gorm:"size:120"`
	CreatedAt   time.Time       `json:"-"`
}

// EntryInput is the payload for recording a stock entry.
type EntryInput struct {
	ProductID     uint            `json:"productId" validate:"required"`
	Quantity      decimal.Decimal `json:"quantity" validate:"gt=0"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" validate:"gte=0.01"`
	Date          Date            `json:"date" validate:"required"`
	Supplier      string          `json:"supplier" validate:"required,min=3,max=120"`
}

// ExitInput is the payload for recording a stock exit.
type ExitInput struct {
	ProductID uint            `json:"productId" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity" validate:"gt=0"`
	Date      Date            `json:"date" validate:"required"`
	Reason    ExitReason      `json:"reason" validate:"required,exit_reason"`
	Customer  string          `json:"customer" validate:"required,min=3,max=120"`
}
