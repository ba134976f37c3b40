// Package expiry classifies products by how close they are to their expiry date.
package expiry

import (
	"fmt"
	"time"

	"fruteria/internal/models"
)

// Status is the freshness category of a product relative to a reference day.
type Status string

const (
	Expired      Status = "expired"
	ExpiringSoon Status = "expiringSoon"
	Valid        Status = "valid"
)

// SoonWindowDays is the last day count (inclusive) still considered expiring soon.
const SoonWindowDays = 7

const secondsPerDay = 24 * 60 * 60

// DaysRemaining returns the signed number of calendar days from reference to
// expiry. Time of day is ignored: reference is truncated to its own calendar day.
func DaysRemaining(expiry models.Date, reference time.Time) int {
	ref := models.DateOf(reference).Time
	exp := models.DateOf(expiry.Time).Time
	// Both are UTC midnights, so the difference is a whole number of days.
	// Unix seconds avoid time.Duration, which saturates after about 292 years.
	return int((exp.Unix() - ref.Unix()) / secondsPerDay)
}

// Classify maps an expiry date to its Status relative to reference.
func Classify(expiry models.Date, reference time.Time) Status {
	return StatusFor(DaysRemaining(expiry, reference))
}

// StatusFor maps a days-remaining count to its Status.
func StatusFor(days int) Status {
	switch {
	case days < 0:
		return Expired
	case days <= SoonWindowDays:
		return ExpiringSoon
	default:
		return Valid
	}
}

// Label renders the short display text shown next to a product.
func Label(days int) string {
	switch StatusFor(days) {
	case Expired:
		return fmt.Sprintf("Expiró hace %dd", -days)
	case ExpiringSoon:
		return fmt.Sprintf("Vence en %dd", days)
	default:
		return fmt.Sprintf("%d días restantes", days)
	}
}

// Buckets groups products by Status.
type Buckets struct {
	Valid        []models.Product
	ExpiringSoon []models.Product
	Expired      []models.Product
}

// Partition splits products into Buckets, preserving input order within each.
func Partition(products []models.Product, reference time.Time) Buckets {
	var b Buckets
	for _, p := range products {
		switch Classify(p.ExpiryDate, reference) {
		case Expired:
			b.Expired = append(b.Expired, p)
		case ExpiringSoon:
			b.ExpiringSoon = append(b.ExpiringSoon, p)
		default:
			b.Valid = append(b.Valid, p)
		}
	}
	return b
}
