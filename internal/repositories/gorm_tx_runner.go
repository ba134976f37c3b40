package repositories

import (
	"context"

	"gorm.io/gorm"
)

// GORMTxRunner runs callbacks inside a database transaction.
type GORMTxRunner struct {
	db *gorm.DB
}

// NewGORMTxRunner builds a runner over db.
func NewGORMTxRunner(db *gorm.DB) *GORMTxRunner {
	return &GORMTxRunner{db: db}
}

// Run begins a transaction, hands fn repositories bound to it, and commits
// when fn returns nil. Any error rolls the transaction back.
func (r *GORMTxRunner) Run(ctx context.Context, fn func(repos Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMRepositories(tx))
	})
}

// NewGORMRepositories bundles GORM repositories sharing db.
func NewGORMRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Products: NewGORMProductRepository(db),
		Entries:  NewGORMStockEntryRepository(db),
		Exits:    NewGORMStockExitRepository(db),
	}
}
