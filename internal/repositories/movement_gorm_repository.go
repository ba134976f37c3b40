package repositories

import (
	"context"

	"gorm.io/gorm"

	"fruteria/internal/models"
)

// GORMStockEntryRepository is a GORM implementation of StockEntryRepository.
type GORMStockEntryRepository struct {
	db *gorm.DB
}

// NewGORMStockEntryRepository creates a new instance of GORMStockEntryRepository.
func NewGORMStockEntryRepository(db *gorm.DB) *GORMStockEntryRepository {
	return &GORMStockEntryRepository{db: db}
}

// GetAll returns entries in insertion order.
func (r *GORMStockEntryRepository) GetAll(ctx context.Context) ([]models.StockEntry, error) {
	var entries []models.StockEntry
	if err := r.db.WithContext(ctx).Order("id").Find(&entries).Error; err != nil {
		return nil, gormErr("list", "stock entries", 0, err)
	}
	return entries, nil
}

func (r *GORMStockEntryRepository) GetByID(ctx context.Context, id uint) (*models.StockEntry, error) {
	var entry models.StockEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, gormErr("get", "stock entry", id, err)
	}
	return &entry, nil
}

func (r *GORMStockEntryRepository) Create(ctx context.Context, entry *models.StockEntry) error {
	entry.ID = 0
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return gormErr("create", "stock entry", 0, err)
	}
	return nil
}

func (r *GORMStockEntryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.StockEntry{}, id)
	if res.Error != nil {
		return gormErr("delete", "stock entry", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("stock entry", id)
	}
	return nil
}

// GORMStockExitRepository is a GORM implementation of StockExitRepository.
type GORMStockExitRepository struct {
	db *gorm.DB
}

// NewGORMStockExitRepository creates a new instance of GORMStockExitRepository.
func NewGORMStockExitRepository(db *gorm.DB) *GORMStockExitRepository {
	return &GORMStockExitRepository{db: db}
}

// GetAll returns exits in insertion order.
func (r *GORMStockExitRepository) GetAll(ctx context.Context) ([]models.StockExit, error) {
	var exits []models.StockExit
	if err := r.db.WithContext(ctx).Order("id").Find(&exits).Error; err != nil {
		return nil, gormErr("list", "stock exits", 0, err)
	}
	return exits, nil
}

func (r *GORMStockExitRepository) GetByID(ctx context.Context, id uint) (*models.StockExit, error) {
	var exit models.StockExit
	if err := r.db.WithContext(ctx).First(&exit, id).Error; err != nil {
		return nil, gormErr("get", "stock exit", id, err)
	}
	return &exit, nil
}

func (r *GORMStockExitRepository) Create(ctx context.Context, exit *models.StockExit) error {
	exit.ID = 0
	if err := r.db.WithContext(ctx).Create(exit).Error; err != nil {
		return gormErr("create", "stock exit", 0, err)
	}
	return nil
}

func (r *GORMStockExitRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.StockExit{}, id)
	if res.Error != nil {
		return gormErr("delete", "stock exit", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("stock exit", id)
	}
	return nil
}
