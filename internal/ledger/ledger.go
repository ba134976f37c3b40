// Package ledger holds the stock arithmetic for entries, exits and their reversal.
// Every function validates before it builds its result and never mutates its inputs.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fruteria/internal/models"
)

// EntryMeta describes an incoming movement.
type EntryMeta struct {
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	Date          models.Date
	Supplier      string
}

// ExitMeta describes an outgoing movement.
type ExitMeta struct {
	Quantity decimal.Decimal
	Date     models.Date
	Reason   models.ExitReason
	Customer string
}

var minPurchasePrice = decimal.RequireFromString("0.01")

// RecordEntry adds meta.Quantity to the product's stock and returns the entry to append.
func RecordEntry(p models.Product, meta EntryMeta) (models.Product, models.StockEntry, error) {
	if !meta.Quantity.IsPositive() {
		return p, models.StockEntry{}, fmt.Errorf("%w: quantity must be greater than zero", models.ErrValidation)
	}
	if meta.PurchasePrice.LessThan(minPurchasePrice) {
		return p, models.StockEntry{}, fmt.Errorf("%w: purchase price must be at least 0.01", models.ErrValidation)
	}

	updated := p
	updated.Stock = p.Stock.Add(meta.Quantity)
	entry := models.StockEntry{
		ProductID:     p.ID,
		ProductName:   p.Name,
		Quantity:      meta.Quantity,
		PurchasePrice: meta.PurchasePrice,
		Date:          meta.Date,
		Supplier:      meta.Supplier,
	}
	return updated, entry, nil
}

// RecordExit removes meta.Quantity from the product's stock and returns the exit to append.
// It fails with models.ErrInsufficientStock when the product holds less than requested.
func RecordExit(p models.Product, meta ExitMeta) (models.Product, models.StockExit, error) {
	if !meta.Quantity.IsPositive() {
		return p, models.StockExit{}, fmt.Errorf("%w: quantity must be greater than zero", models.ErrValidation)
	}
	if !meta.Reason.Valid() {
		return p, models.StockExit{}, fmt.Errorf("%w: unknown exit reason %q", models.ErrValidation, meta.Reason)
	}
	if meta.Quantity.GreaterThan(p.Stock) {
		return p, models.StockExit{}, fmt.Errorf("%w: requested %s, available %s for %s",
			models.ErrInsufficientStock, meta.Quantity, p.Stock, p.Name)
	}

	updated := p
	updated.Stock = p.Stock.Sub(meta.Quantity)
	exit := models.StockExit{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    meta.Quantity,
		Date:        meta.Date,
		Reason:      meta.Reason,
		Customer:    meta.Customer,
	}
	return updated, exit, nil
}

// ReverseEntry undoes an entry. Stock consumed since the entry was recorded
// makes the reversal fail with models.ErrInsufficientStock.
func ReverseEntry(entry models.StockEntry, p models.Product) (models.Product, error) {
	if entry.ProductID != p.ID {
		return p, fmt.Errorf("%w: entry %d belongs to product %d, not %d", models.ErrValidation, entry.ID, entry.ProductID, p.ID)
	}
	if p.Stock.LessThan(entry.Quantity) {
		return p, fmt.Errorf("%w: cannot revert entry %d, stock %s is below %s",
			models.ErrInsufficientStock, entry.ID, p.Stock, entry.Quantity)
	}
	updated := p
	updated.Stock = p.Stock.Sub(entry.Quantity)
	return updated, nil
}

// ReverseExit undoes an exit by returning its quantity to stock. There is no upper bound.
func ReverseExit(exit models.StockExit, p models.Product) (models.Product, error) {
	if exit.ProductID != p.ID {
		return p, fmt.Errorf("%w: exit %d belongs to product %d, not %d", models.ErrValidation, exit.ID, exit.ProductID, p.ID)
	}
	updated := p
	updated.Stock = p.Stock.Add(exit.Quantity)
	return updated, nil
}
