package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Driver names registered by the blank imports in cmd/.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Open returns a verified handle for the source database.
func Open(driver, databaseURL string) (*sql.DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("openDB: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open %s database: %w", driver, err)
	}

	// The pipeline reads two tables sequentially; a small pool is enough.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("openDB: verify %s connection: %w", driver, err)
	}

	return db, nil
}
