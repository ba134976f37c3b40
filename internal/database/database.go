// Package database opens the GORM connection for the configured driver.
package database

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fruteria/internal/models"
)

// Supported GORM drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to dsn with the named driver and migrates the inventory tables.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(dsn))
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// SQLiteDSN adds a busy timeout and immediate write transactions to dsn unless
// it sets them already. Immediate transactions take the write lock at BEGIN
// and concurrent writers wait up to the timeout for it.
func SQLiteDSN(dsn string) string {
	params := []string{}
	if !strings.Contains(dsn, "_busy_timeout=") {
		params = append(params, "_busy_timeout=5000")
	}
	if !strings.Contains(dsn, "_txlock=") {
		params = append(params, "_txlock=immediate")
	}
	if len(params) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// Migrate creates or updates the inventory tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}, &models.StockEntry{}, &models.StockExit{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// OpenMemory opens a private in-memory SQLite database, mainly for tests.
// A single connection keeps shared-cache table locks out of the way.
func OpenMemory() (*gorm.DB, error) {
	db, err := Open(DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
