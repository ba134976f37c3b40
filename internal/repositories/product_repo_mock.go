package repositories

import (
	"context"

	"fruteria/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	table   *memoryTable[models.Product]
	journal *journal
}

// NewMemoryProductRepository creates an empty in-memory product store.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		table: newMemoryTable(func(p *models.Product) *uint { return &p.ID }),
	}
}

func (r *MemoryProductRepository) withJournal(j *journal) *MemoryProductRepository {
	return &MemoryProductRepository{table: r.table, journal: j}
}

// GetAll returns all products ordered by ID.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	return r.table.list(), nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id uint) (*models.Product, error) {
	product, ok := r.table.get(id)
	if !ok {
		return nil, notFound("product", id)
	}
	return &product, nil
}

// GetForUpdate is GetByID; MemoryStore transactions are already serialized.
func (r *MemoryProductRepository) GetForUpdate(ctx context.Context, id uint) (*models.Product, error) {
	return r.GetByID(ctx, id)
}

// Create adds a new product and assigns its ID.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	id := r.table.insert(product)
	r.journal.record(func() { r.table.remove(id) })
	return nil
}

// Update replaces an existing product.
func (r *MemoryProductRepository) Update(_ context.Context, product *models.Product) error {
	old, ok := r.table.replace(*product)
	if !ok {
		return notFound("product", product.ID)
	}
	r.journal.record(func() { r.table.restore(old) })
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id uint) error {
	old, ok := r.table.remove(id)
	if !ok {
		return notFound("product", id)
	}
	r.journal.record(func() { r.table.restore(old) })
	return nil
}
