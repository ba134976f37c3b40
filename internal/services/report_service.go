package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"fruteria/internal/expiry"
	"fruteria/internal/models"
	"fruteria/internal/repositories"
)

// RecentLimit is how many of the latest entries and exits the dashboard shows.
const RecentLimit = 5

// Dashboard is the at-a-glance inventory summary.
type Dashboard struct {
	TotalStock        decimal.Decimal     `json:"totalStock"`
	ExpiringSoonCount int                 `json:"expiringSoonCount"`
	RecentEntries     []models.StockEntry `json:"recentEntries"`
	RecentExits       []models.StockExit  `json:"recentExits"`
	RecentMovements   int                 `json:"recentMovements"`
	// Errors lists the sources that failed to load; the other fields are
	// still filled from the sources that succeeded.
	Errors []string `json:"errors,omitempty"`
}

// ExpiryRow is one product in the expiry report.
type ExpiryRow struct {
	Product       models.Product `json:"product"`
	Status        expiry.Status  `json:"status"`
	DaysRemaining int            `json:"daysRemaining"`
	Label         string         `json:"label"`
	ExpiryDate    string         `json:"expiryDateFormatted"`
	Price         string         `json:"priceFormatted"`
}

// ExpiryReport groups products by expiry status.
type ExpiryReport struct {
	Valid        []ExpiryRow `json:"valid"`
	ExpiringSoon []ExpiryRow `json:"expiringSoon"`
	Expired      []ExpiryRow `json:"expired"`
	Total        int         `json:"total"`
}

// ReportService builds the derived read-only views.
type ReportService struct {
	repos repositories.Repositories
}

// NewReportService creates a new ReportService.
func NewReportService(repos repositories.Repositories) *ReportService {
	return &ReportService{repos: repos}
}

// Dashboard loads products, entries and exits concurrently. A failing source
// does not stop the others; its error is recorded in Dashboard.Errors. The
// returned error is only set when ctx ends before the sources are loaded.
func (s *ReportService) Dashboard(ctx context.Context, reference time.Time) (*Dashboard, error) {
	var (
		products                      []models.Product
		entries                       []models.StockEntry
		exits                         []models.StockExit
		productErr, entryErr, exitErr error
		g                             errgroup.Group
	)

	// Source errors stay per source; only cancellation fails the group.
	g.Go(func() error {
		products, productErr = s.repos.Products.GetAll(ctx)
		return ctx.Err()
	})
	g.Go(func() error {
		entries, entryErr = s.repos.Entries.GetAll(ctx)
		return ctx.Err()
	})
	g.Go(func() error {
		exits, exitErr = s.repos.Exits.GetAll(ctx)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{TotalStock: decimal.Zero}
	for _, src := range []struct {
		name string
		err  error
	}{{"products", productErr}, {"entries", entryErr}, {"exits", exitErr}} {
		if src.err != nil {
			d.Errors = append(d.Errors, fmt.Sprintf("%s: %v", src.name, src.err))
		}
	}

	for _, p := range products {
		d.TotalStock = d.TotalStock.Add(p.Stock)
		if expiry.Classify(p.ExpiryDate, reference) == expiry.ExpiringSoon {
			d.ExpiringSoonCount++
		}
	}
	d.RecentEntries = lastReversed(entries, RecentLimit)
	d.RecentExits = lastReversed(exits, RecentLimit)
	d.RecentMovements = len(d.RecentEntries) + len(d.RecentExits)
	return d, nil
}

// lastReversed returns up to n trailing elements of items, newest first.
func lastReversed[T any](items []T, n int) []T {
	if len(items) < n {
		n = len(items)
	}
	out := make([]T, 0, n)
	for i := len(items) - 1; i >= len(items)-n; i-- {
		out = append(out, items[i])
	}
	return out
}

// Expiry classifies every product relative to reference.
func (s *ReportService) Expiry(ctx context.Context, reference time.Time) (*ExpiryReport, error) {
	products, err := s.repos.Products.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	buckets := expiry.Partition(products, reference)
	return &ExpiryReport{
		Valid:        expiryRows(buckets.Valid, reference),
		ExpiringSoon: expiryRows(buckets.ExpiringSoon, reference),
		Expired:      expiryRows(buckets.Expired, reference),
		Total:        len(products),
	}, nil
}

func expiryRows(products []models.Product, reference time.Time) []ExpiryRow {
	rows := make([]ExpiryRow, 0, len(products))
	for _, p := range products {
		days := expiry.DaysRemaining(p.ExpiryDate, reference)
		rows = append(rows, ExpiryRow{
			Product:       p,
			Status:        expiry.StatusFor(days),
			DaysRemaining: days,
			Label:         expiry.Label(days),
			ExpiryDate:    expiry.FormatDate(p.ExpiryDate),
			Price:         expiry.FormatCurrency(p.Price),
		})
	}
	return rows
}
