package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fruteria/internal/events"
	"fruteria/internal/ledger"
	"fruteria/internal/models"
	"fruteria/internal/repositories"
	"fruteria/internal/validate"
)

// LedgerService records and reverses stock movements. Each operation writes
// the movement and the product's new stock through one TxRunner call.
type LedgerService struct {
	repos     repositories.Repositories
	tx        repositories.TxRunner
	publisher events.Publisher
	validate  *validator.Validate
	log       zerolog.Logger
}

// NewLedgerService creates a new LedgerService. publisher may be nil.
func NewLedgerService(repos repositories.Repositories, tx repositories.TxRunner, publisher events.Publisher, log zerolog.Logger) *LedgerService {
	return &LedgerService{
		repos:     repos,
		tx:        tx,
		publisher: publisher,
		validate:  validate.New(),
		log:       log.With().Str("service", "ledger").Logger(),
	}
}

// ListEntries returns every recorded entry, oldest first.
func (s *LedgerService) ListEntries(ctx context.Context) ([]models.StockEntry, error) {
	return s.repos.Entries.GetAll(ctx)
}

// GetEntry returns one entry.
func (s *LedgerService) GetEntry(ctx context.Context, id uint) (*models.StockEntry, error) {
	return s.repos.Entries.GetByID(ctx, id)
}

// ListExits returns every recorded exit, oldest first.
func (s *LedgerService) ListExits(ctx context.Context) ([]models.StockExit, error) {
	return s.repos.Exits.GetAll(ctx)
}

// GetExit returns one exit.
func (s *LedgerService) GetExit(ctx context.Context, id uint) (*models.StockExit, error) {
	return s.repos.Exits.GetByID(ctx, id)
}

// RecordEntry adds stock to a product and appends the entry.
func (s *LedgerService) RecordEntry(ctx context.Context, input models.EntryInput) (*models.Product, *models.StockEntry, error) {
	if err := validate.Struct(s.validate, input); err != nil {
		return nil, nil, err
	}

	var product models.Product
	var entry models.StockEntry
	err := s.tx.Run(ctx, func(repos repositories.Repositories) error {
		current, err := repos.Products.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		product, entry, err = ledger.RecordEntry(*current, ledger.EntryMeta{
			Quantity:      input.Quantity,
			PurchasePrice: input.PurchasePrice,
			Date:          input.Date,
			Supplier:      input.Supplier,
		})
		if err != nil {
			return err
		}
		if err := repos.Entries.Create(ctx, &entry); err != nil {
			return err
		}
		return repos.Products.Update(ctx, &product)
	})
	if err != nil {
		s.log.Warn().Err(err).Uint("product_id", input.ProductID).Msg("stock entry rejected")
		return nil, nil, err
	}

	s.log.Info().Uint("entry_id", entry.ID).Uint("product_id", product.ID).
		Str("quantity", entry.Quantity.String()).Str("stock", product.Stock.String()).Msg("stock entry recorded")
	s.publish(ctx, events.EntryRecorded, entry.ID, product, entry.Quantity)
	return &product, &entry, nil
}

// RecordExit removes stock from a product and appends the exit. It fails with
// models.ErrInsufficientStock, before writing anything, when stock is short.
func (s *LedgerService) RecordExit(ctx context.Context, input models.ExitInput) (*models.Product, *models.StockExit, error) {
	if err := validate.Struct(s.validate, input); err != nil {
		return nil, nil, err
	}

	var product models.Product
	var exit models.StockExit
	err := s.tx.Run(ctx, func(repos repositories.Repositories) error {
		current, err := repos.Products.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		product, exit, err = ledger.RecordExit(*current, ledger.ExitMeta{
			Quantity: input.Quantity,
			Date:     input.Date,
			Reason:   input.Reason,
			Customer: input.Customer,
		})
		if err != nil {
			return err
		}
		if err := repos.Exits.Create(ctx, &exit); err != nil {
			return err
		}
		return repos.Products.Update(ctx, &product)
	})
	if err != nil {
		s.log.Warn().Err(err).Uint("product_id", input.ProductID).Msg("stock exit rejected")
		return nil, nil, err
	}

	s.log.Info().Uint("exit_id", exit.ID).Uint("product_id", product.ID).
		Str("quantity", exit.Quantity.String()).Str("stock", product.Stock.String()).Msg("stock exit recorded")
	s.publish(ctx, events.ExitRecorded, exit.ID, product, exit.Quantity)
	return &product, &exit, nil
}

// DeleteEntry removes an entry and takes its quantity back out of stock.
// It fails with models.ErrInsufficientStock when that stock has since been used.
func (s *LedgerService) DeleteEntry(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	var entry models.StockEntry
	err := s.tx.Run(ctx, func(repos repositories.Repositories) error {
		found, err := repos.Entries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		entry = *found
		current, err := repos.Products.GetForUpdate(ctx, entry.ProductID)
		if err != nil {
			return err
		}
		product, err = ledger.ReverseEntry(entry, *current)
		if err != nil {
			return err
		}
		if err := repos.Entries.Delete(ctx, id); err != nil {
			return err
		}
		return repos.Products.Update(ctx, &product)
	})
	if err != nil {
		s.log.Warn().Err(err).Uint("entry_id", id).Msg("stock entry reversal rejected")
		return nil, err
	}

	s.log.Info().Uint("entry_id", id).Uint("product_id", product.ID).Str("stock", product.Stock.String()).Msg("stock entry reversed")
	s.publish(ctx, events.EntryReversed, id, product, entry.Quantity)
	return &product, nil
}

// DeleteExit removes an exit and returns its quantity to stock.
func (s *LedgerService) DeleteExit(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	var exit models.StockExit
	err := s.tx.Run(ctx, func(repos repositories.Repositories) error {
		found, err := repos.Exits.GetByID(ctx, id)
		if err != nil {
			return err
		}
		exit = *found
		current, err := repos.Products.GetForUpdate(ctx, exit.ProductID)
		if err != nil {
			return err
		}
		product, err = ledger.ReverseExit(exit, *current)
		if err != nil {
			return err
		}
		if err := repos.Exits.Delete(ctx, id); err != nil {
			return err
		}
		return repos.Products.Update(ctx, &product)
	})
	if err != nil {
		s.log.Warn().Err(err).Uint("exit_id", id).Msg("stock exit reversal rejected")
		return nil, err
	}

	s.log.Info().Uint("exit_id", id).Uint("product_id", product.ID).Str("stock", product.Stock.String()).Msg("stock exit reversed")
	s.publish(ctx, events.ExitReversed, id, product, exit.Quantity)
	return &product, nil
}

// publish reports a committed movement. Failures are logged only: the
// movement is already stored and must not be reported as failed.
func (s *LedgerService) publish(ctx context.Context, kind events.Kind, movementID uint, product models.Product, qty decimal.Decimal) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewMovementEvent(kind, movementID, product, qty)); err != nil {
		s.log.Error().Err(err).Str("kind", string(kind)).Uint("movement_id", movementID).Msg("failed to publish movement event")
	}
}
