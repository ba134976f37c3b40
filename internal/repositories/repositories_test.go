package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruteria/internal/database"
	"fruteria/internal/models"
	"fruteria/internal/repositories"
)

type storeFactory func(t *testing.T) (repositories.Repositories, repositories.TxRunner)

func memoryFactory(t *testing.T) (repositories.Repositories, repositories.TxRunner) {
	store := repositories.NewMemoryStore()
	return store.Repositories(), store
}

func sqliteFactory(t *testing.T) (repositories.Repositories, repositories.TxRunner) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	return repositories.NewGORMRepositories(db), repositories.NewGORMTxRunner(db)
}

var factories = map[string]storeFactory{
	"memory": memoryFactory,
	"sqlite": sqliteFactory,
}

func sampleProduct(name, stock string) *models.Product {
	return &models.Product{
		Name:       name,
		Category:   "Frutas",
		Unit:       "kg",
		Price:      decimal.RequireFromString("25.5"),
		Stock:      decimal.RequireFromString(stock),
		Supplier:   "Central de Abasto",
		ExpiryDate: models.NewDate(2026, time.July, 1),
	}
}

func TestProductRepository_CRUD(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repos, _ := factory(t)

			p := sampleProduct("Mango", "12")
			require.NoError(t, repos.Products.Create(ctx, p))
			assert.NotZero(t, p.ID)

			second := sampleProduct("Papaya", "3")
			require.NoError(t, repos.Products.Create(ctx, second))
			assert.Greater(t, second.ID, p.ID)

			got, err := repos.Products.GetByID(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, "Mango", got.Name)
			assert.True(t, decimal.NewFromInt(12).Equal(got.Stock))
			assert.Equal(t, models.NewDate(2026, time.July, 1), got.ExpiryDate)

			got.Stock = decimal.Zero
			got.Name = "Mango Ataulfo"
			require.NoError(t, repos.Products.Update(ctx, got))

			reloaded, err := repos.Products.GetForUpdate(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, "Mango Ataulfo", reloaded.Name)
			assert.True(t, reloaded.Stock.IsZero())

			all, err := repos.Products.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 2)
			assert.Equal(t, p.ID, all[0].ID)

			require.NoError(t, repos.Products.Delete(ctx, p.ID))
			_, err = repos.Products.GetByID(ctx, p.ID)
			assert.ErrorIs(t, err, models.ErrNotFound)
			assert.Contains(t, err.Error(), "not found")

			assert.ErrorIs(t, repos.Products.Delete(ctx, p.ID), models.ErrNotFound)
			missing := sampleProduct("Nada", "1")
			missing.ID = 999
			assert.ErrorIs(t, repos.Products.Update(ctx, missing), models.ErrNotFound)
		})
	}
}

func TestMovementRepositories(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repos, _ := factory(t)

			entry := &models.StockEntry{
				ProductID:     1,
				ProductName:   "Mango",
				Quantity:      decimal.NewFromInt(20),
				PurchasePrice: decimal.RequireFromString("18.5"),
				Date:          models.NewDate(2026, time.May, 2),
				Supplier:      "Frutas del Valle",
			}
			require.NoError(t, repos.Entries.Create(ctx, entry))
			assert.NotZero(t, entry.ID)

			exit := &models.StockExit{
				ProductID:   1,
				ProductName: "Mango",
				Quantity:    decimal.NewFromInt(5),
				Date:        models.NewDate(2026, time.May, 3),
				Reason:      models.ReasonWaste,
				Customer:    "Interno",
			}
			require.NoError(t, repos.Exits.Create(ctx, exit))

			gotEntry, err := repos.Entries.GetByID(ctx, entry.ID)
			require.NoError(t, err)
			assert.Equal(t, "Frutas del Valle", gotEntry.Supplier)
			assert.True(t, decimal.NewFromInt(370).Equal(gotEntry.Total()))

			gotExit, err := repos.Exits.GetByID(ctx, exit.ID)
			require.NoError(t, err)
			assert.Equal(t, models.ReasonWaste, gotExit.Reason)

			entries, err := repos.Entries.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, entries, 1)

			require.NoError(t, repos.Entries.Delete(ctx, entry.ID))
			require.NoError(t, repos.Exits.Delete(ctx, exit.ID))
			assert.ErrorIs(t, repos.Entries.Delete(ctx, entry.ID), models.ErrNotFound)
			_, err = repos.Exits.GetByID(ctx, exit.ID)
			assert.ErrorIs(t, err, models.ErrNotFound)
		})
	}
}

func TestTxRunner_RollsBackOnError(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repos, runner := factory(t)

			p := sampleProduct("Sandía", "10")
			require.NoError(t, repos.Products.Create(ctx, p))

			boom := errors.New("stock write failed")
			err := runner.Run(ctx, func(tx repositories.Repositories) error {
				entry := &models.StockEntry{ProductID: p.ID, ProductName: p.Name, Quantity: decimal.NewFromInt(4),
					PurchasePrice: decimal.NewFromInt(1), Date: models.NewDate(2026, time.May, 1), Supplier: "Rancho"}
				if err := tx.Entries.Create(ctx, entry); err != nil {
					return err
				}
				locked, err := tx.Products.GetForUpdate(ctx, p.ID)
				if err != nil {
					return err
				}
				locked.Stock = locked.Stock.Add(entry.Quantity)
				if err := tx.Products.Update(ctx, locked); err != nil {
					return err
				}
				return boom
			})
			assert.ErrorIs(t, err, boom)

			entries, err := repos.Entries.GetAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)

			got, err := repos.Products.GetByID(ctx, p.ID)
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(10).Equal(got.Stock), "stock should be unchanged, got %s", got.Stock)
		})
	}
}

func TestTxRunner_CommitsOnSuccess(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repos, runner := factory(t)

			p := sampleProduct("Piña", "2")
			require.NoError(t, repos.Products.Create(ctx, p))

			err := runner.Run(ctx, func(tx repositories.Repositories) error {
				if err := tx.Products.Delete(ctx, p.ID); err != nil {
					return err
				}
				return nil
			})
			require.NoError(t, err)

			_, err = repos.Products.GetByID(ctx, p.ID)
			assert.ErrorIs(t, err, models.ErrNotFound)
		})
	}
}

func TestMemoryStore_RollbackRestoresDeletedRows(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	p := sampleProduct("Limón", "8")
	require.NoError(t, store.Products.Create(ctx, p))

	err := store.Run(ctx, func(tx repositories.Repositories) error {
		require.NoError(t, tx.Products.Delete(ctx, p.ID))
		return errors.New("abort")
	})
	assert.Error(t, err)

	got, err := store.Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Limón", got.Name)
}
