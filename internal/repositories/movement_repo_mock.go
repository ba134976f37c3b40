package repositories

import (
	"context"

	"fruteria/internal/models"
)

// MemoryStockEntryRepository is an in-memory implementation of StockEntryRepository.
type MemoryStockEntryRepository struct {
	table   *memoryTable[models.StockEntry]
	journal *journal
}

// NewMemoryStockEntryRepository creates an empty in-memory entry store.
func NewMemoryStockEntryRepository() *MemoryStockEntryRepository {
	return &MemoryStockEntryRepository{
		table: newMemoryTable(func(e *models.StockEntry) *uint { return &e.ID }),
	}
}

func (r *MemoryStockEntryRepository) withJournal(j *journal) *MemoryStockEntryRepository {
	return &MemoryStockEntryRepository{table: r.table, journal: j}
}

func (r *MemoryStockEntryRepository) GetAll(_ context.Context) ([]models.StockEntry, error) {
	return r.table.list(), nil
}

func (r *MemoryStockEntryRepository) GetByID(_ context.Context, id uint) (*models.StockEntry, error) {
	entry, ok := r.table.get(id)
	if !ok {
		return nil, notFound("stock entry", id)
	}
	return &entry, nil
}

func (r *MemoryStockEntryRepository) Create(_ context.Context, entry *models.StockEntry) error {
	id := r.table.insert(entry)
	r.journal.record(func() { r.table.remove(id) })
	return nil
}

func (r *MemoryStockEntryRepository) Delete(_ context.Context, id uint) error {
	old, ok := r.table.remove(id)
	if !ok {
		return notFound("stock entry", id)
	}
	r.journal.record(func() { r.table.restore(old) })
	return nil
}

// MemoryStockExitRepository is an in-memory implementation of StockExitRepository.
type MemoryStockExitRepository struct {
	table   *memoryTable[models.StockExit]
	journal *journal
}

// NewMemoryStockExitRepository creates an empty in-memory exit store.
func NewMemoryStockExitRepository() *MemoryStockExitRepository {
	return &MemoryStockExitRepository{
		table: newMemoryTable(func(e *models.StockExit) *uint { return &e.ID }),
	}
}

func (r *MemoryStockExitRepository) withJournal(j *journal) *MemoryStockExitRepository {
	return &MemoryStockExitRepository{table: r.table, journal: j}
}

func (r *MemoryStockExitRepository) GetAll(_ context.Context) ([]models.StockExit, error) {
	return r.table.list(), nil
}

func (r *MemoryStockExitRepository) GetByID(_ context.Context, id uint) (*models.StockExit, error) {
	exit, ok := r.table.get(id)
	if !ok {
		return nil, notFound("stock exit", id)
	}
	return &exit, nil
}

func (r *MemoryStockExitRepository) Create(_ context.Context, exit *models.StockExit) error {
	id := r.table.insert(exit)
	r.journal.record(func() { r.table.remove(id) })
	return nil
}

func (r *MemoryStockExitRepository) Delete(_ context.Context, id uint) error {
	old, ok := r.table.remove(id)
	if !ok {
		return notFound("stock exit", id)
	}
	r.journal.record(func() { r.table.restore(old) })
	return nil
}
