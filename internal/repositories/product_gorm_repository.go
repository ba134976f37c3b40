package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fruteria/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products ordered by ID.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, gormErr("list", "products", 0, err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, gormErr("get", "product", id, err)
	}
	return &product, nil
}

// GetForUpdate reads a product with SELECT ... FOR UPDATE on dialects that
// support row locks. SQLite serializes writers already, so it reads plainly.
func (r *GORMProductRepository) GetForUpdate(ctx context.Context, id uint) (*models.Product, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var product models.Product
	if err := q.First(&product, id).Error; err != nil {
		return nil, gormErr("lock", "product", id, err)
	}
	return &product, nil
}

// Create inserts a new product; the database assigns its ID.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = 0
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return gormErr("create", "product", 0, err)
	}
	return nil
}

// Update writes every column of an existing product, zero values included.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(product).Select("*").Omit("id", "created_at").Updates(product)
	if res.Error != nil {
		return gormErr("update", "product", product.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("product", product.ID)
	}
	return nil
}

// Delete removes a product permanently. Its movements are left untouched.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return gormErr("delete", "product", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("product", id)
	}
	return nil
}
