package repositories

import (
	"context"

	"fruteria/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	// GetForUpdate reads a product and, where the store supports it, locks the
	// row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

// StockEntryRepository defines the interface for incoming movement data access.
// Movements are immutable, so there is no Update.
type StockEntryRepository interface {
	GetAll(ctx context.Context) ([]models.StockEntry, error)
	GetByID(ctx context.Context, id uint) (*models.StockEntry, error)
	Create(ctx context.Context, entry *models.StockEntry) error
	Delete(ctx context.Context, id uint) error
}

// StockExitRepository defines the interface for outgoing movement data access.
type StockExitRepository interface {
	GetAll(ctx context.Context) ([]models.StockExit, error)
	GetByID(ctx context.Context, id uint) (*models.StockExit, error)
	Create(ctx context.Context, exit *models.StockExit) error
	Delete(ctx context.Context, id uint) error
}

// Repositories bundles the three stores handed to a transaction.
type Repositories struct {
	Products ProductRepository
	Entries  StockEntryRepository
	Exits    StockExitRepository
}

// TxRunner runs fn against repositories bound to a single unit of work.
// If fn returns an error nothing it wrote is kept, as far as the backing store allows.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}
