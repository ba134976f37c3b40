package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fruteria/internal/models"
	"fruteria/internal/repositories"
	"fruteria/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetForUpdate(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// directTx runs the callback against fixed repositories with no rollback.
type directTx struct {
	repos repositories.Repositories
}

func (d directTx) Run(_ context.Context, fn func(repositories.Repositories) error) error {
	return fn(d.repos)
}

func newProductService(repo *MockProductRepository) *services.ProductService {
	return services.NewProductService(repo, directTx{repositories.Repositories{Products: repo}}, zerolog.Nop())
}

func validInput() models.ProductInput {
	return models.ProductInput{
		Name:       "Plátano",
		Category:   "Frutas",
		Unit:       "kg",
		Price:      decimal.RequireFromString("22.90"),
		Stock:      decimal.NewFromInt(40),
		Supplier:   "Central de Abasto",
		ExpiryDate: models.NewDate(2026, time.June, 15),
	}
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo)

	expectedProducts := []models.Product{
		{ID: 1, Name: "Product A", Price: decimal.NewFromInt(10), Stock: decimal.NewFromInt(100)},
		{ID: 2, Name: "Product B", Price: decimal.NewFromInt(20), Stock: decimal.NewFromInt(50)},
	}

	mockRepo.On("GetAll", mock.Anything).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(context.Background())

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo)

	expectedProduct := &models.Product{ID: 1, Name: "Product A", Stock: decimal.NewFromInt(100)}

	// Test successful retrieval
	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	// Test product not found
	mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, fmt.Errorf("product with ID 99 %w", models.ErrNotFound)).Once()
	product, err = service.GetProductByID(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo)

	// Test successful creation
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Plátano" && p.Stock.Equal(decimal.NewFromInt(40))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Product).ID = 5
	}).Return(nil).Once()

	created, err := service.CreateProduct(context.Background(), validInput())
	assert.NoError(t, err)
	assert.Equal(t, uint(5), created.ID)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("database error: %w", models.ErrStoreUnavailable)).Once()
	_, err = service.CreateProduct(context.Background(), validInput())
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductValidation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo)

	tests := map[string]func(in *models.ProductInput){
		"negative price": func(in *models.ProductInput) { in.Price = decimal.NewFromInt(-1) },
		"negative stock": func(in *models.ProductInput) { in.Stock = decimal.RequireFromString("-0.5") },
		"missing name":   func(in *models.ProductInput) { in.Name = "" },
		"missing expiry": func(in *models.ProductInput) { in.ExpiryDate = models.Date{} },
		"missing unit":   func(in *models.ProductInput) { in.Unit = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := service.CreateProduct(context.Background(), in)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo)

	existing := &models.Product{ID: 1, Name: "Product A", Price: decimal.NewFromInt(12), Stock: decimal.NewFromInt(95)}
	newName := "Product A Updated"

	// Test successful partial update
	mockRepo.On("GetForUpdate", mock.Anything, uint(1)).Return(existing, nil).Once()
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == newName && p.Stock.Equal(decimal.NewFromInt(95))
	})).Return(nil).Once()

	updated, err := service.UpdateProduct(context.Background(), 1, models.ProductPatch{Name: &newName})
	assert.NoError(t, err)
	assert.Equal(t, newName, updated.Name)

	// Test update failure (e.g., product not found in repo)
	mockRepo.On("GetForUpdate", mock.Anything, uint(99)).Return(nil, fmt.Errorf("product with ID 99 %w", models.ErrNotFound)).Once()
	_, err = service.UpdateProduct(context.Background(), 99, models.ProductPatch{Name: &newName})
	assert.ErrorIs(t, err, models.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProductRejectsNegativeStock(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo)

	negative := decimal.NewFromInt(-3)
	_, err := service.UpdateProduct(context.Background(), 1, models.ProductPatch{Stock: &negative})
	assert.ErrorIs(t, err, models.ErrValidation)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo)

	// Test successful deletion
	mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil).Once()
	err := service.DeleteProduct(context.Background(), 1)
	assert.NoError(t, err)

	// Test deletion failure (e.g., product not found)
	mockRepo.On("Delete", mock.Anything, uint(99)).Return(fmt.Errorf("product with ID 99 %w", models.ErrNotFound)).Once()
	err = service.DeleteProduct(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
