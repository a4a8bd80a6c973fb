package repositories

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"freight-eda/internal/adapters/frame"
	"freight-eda/internal/config"
	"freight-eda/internal/platform/db"
	"os"
	"strings"
)

// quoteIdent double-quotes a column name; both SQLite and Postgres accept it.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func placeholder(driver string, n int) string {
	if driver == db.DriverSQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

// Create a source table whose columns mirror a CSV header. Every column is TEXT;
// typing happens when the table is decoded, exactly as for CSV input.
func InitSchema(ctx context.Context, conn *sql.DB, table string, columns []string) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}
	if !config.ValidIdentifier(table) {
		return fmt.Errorf("init schema: invalid table name %q", table)
	}
	if len(columns) == 0 {
		return fmt.Errorf("init schema: table %s has no columns", table)
	}

	defs := make([]string, 0, len(columns))
	for _, c := range columns {
		defs = append(defs, quoteIdent(c)+" TEXT")
	}

	q := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n);", table, strings.Join(defs, ",\n\t"))
	if _, err := conn.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init schema: create %s: %w", table, err)
	}

	return nil
}

// Populate a source table from a CSV file, creating it if needed.
// Existing rows are replaced so repeated seeding does not duplicate the snapshot.
func SeedFromCSV(ctx context.Context, conn *sql.DB, driver string, table string, csvPath string) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("seed %s: open %q: %w", table, csvPath, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("seed %s: read %q: %w", table, csvPath, err)
	}

	tbl, err := frame.NewTable(records)
	if err != nil {
		return 0, fmt.Errorf("seed %s: %w", table, err)
	}

	if err := InitSchema(ctx, conn, table, tbl.Header); err != nil {
		return 0, fmt.Errorf("seed %s: %w", table, err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed %s: begin tx: %w", table, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return 0, fmt.Errorf("seed %s: clear table: %w", table, err)
	}

	cols := make([]string, 0, len(tbl.Header))
	ph := make([]string, 0, len(tbl.Header))
	for i, h := range tbl.Header {
		cols = append(cols, quoteIdent(h))
		ph = append(ph, placeholder(driver, i+1))
	}

	// Only identifiers are interpolated; all values remain parameterized.
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", table, strings.Join(cols, ", "), strings.Join(ph, ", "))
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("seed %s: prepare insert: %w", table, err)
	}
	defer stmt.Close()

	args := make([]any, len(tbl.Header))
	for i, row := range tbl.Rows {
		for j, v := range row {
			if v == "" {
				args[j] = nil
				continue
			}
			args[j] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("seed %s: insert row %d: %w", table, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed %s: commit tx: %w", table, err)
	}

	return len(tbl.Rows), nil
}
