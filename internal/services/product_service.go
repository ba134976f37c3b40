package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"fruteria/internal/models"
	"fruteria/internal/repositories"
	"fruteria/internal/validate"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	tx       repositories.TxRunner
	validate *validator.Validate
	log      zerolog.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, tx repositories.TxRunner, log zerolog.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		tx:       tx,
		validate: validate.New(),
		log:      log.With().Str("service", "products").Logger(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates input and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	if err := validate.Struct(s.validate, input); err != nil {
		return nil, err
	}
	product := input.Product()
	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, err
	}
	s.log.Info().Uint("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return &product, nil
}

// UpdateProduct applies a partial update. Only the fields present in patch change.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, patch models.ProductPatch) (*models.Product, error) {
	if err := validate.Struct(s.validate, patch); err != nil {
		return nil, err
	}

	var updated models.Product
	err := s.tx.Run(ctx, func(repos repositories.Repositories) error {
		product, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(product)
		if product.Stock.IsNegative() {
			return fmt.Errorf("%w: stock cannot be negative", models.ErrValidation)
		}
		if err := repos.Products.Update(ctx, product); err != nil {
			return err
		}
		updated = *product
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("product_id", id).Msg("product updated")
	return &updated, nil
}

// DeleteProduct deletes a product by its ID. Movements referencing it are kept
// and still show their ProductName snapshot.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("product_id", id).Msg("product deleted")
	return nil
}
