package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fruteria/internal/models"
)

func notFound(kind string, id uint) error {
	return fmt.Errorf("%s with ID %d %w", kind, id, models.ErrNotFound)
}

// gormErr classifies a GORM error: missing rows become models.ErrNotFound,
// everything else is reported as models.ErrStoreUnavailable.
func gormErr(op, kind string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(kind, id)
	}
	return fmt.Errorf("failed to %s %s: %w: %w", op, kind, models.ErrStoreUnavailable, err)
}
