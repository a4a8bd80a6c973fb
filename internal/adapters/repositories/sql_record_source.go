package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"freight-eda/internal/adapters/frame"
	"freight-eda/internal/config"
	"freight-eda/internal/domain"
	"freight-eda/internal/platform/obs"
	"freight-eda/internal/ports"
)

// SQL-backed implementation of the RecordSource port.
// Each table is read as one snapshot query and decoded like a CSV file.
type SQLRecordSource struct {
	DB           *sql.DB
	LoadTable    string
	ServiceTable string
}

func NewSQLRecordSource(db *sql.DB, loadTable, serviceTable string) *SQLRecordSource {
	return &SQLRecordSource{DB: db, LoadTable: loadTable, ServiceTable: serviceTable}
}

func (s *SQLRecordSource) LoadLevel(ctx context.Context) (_ ports.Table[domain.LoadRecord], err error) {
	defer obs.Time(ctx, "sql.LoadLevel")(&err)

	tbl, err := s.readTable(ctx, s.LoadTable)
	if err != nil {
		return ports.Table[domain.LoadRecord]{}, fmt.Errorf("load level: %w", err)
	}

	out, err := frame.DecodeLoadLevel(tbl)
	if err != nil {
		return ports.Table[domain.LoadRecord]{}, fmt.Errorf("load level table %s: %w", s.LoadTable, err)
	}
	return out, nil
}

func (s *SQLRecordSource) ServicePerformance(ctx context.Context) (_ ports.Table[domain.ServicePerformanceRecord], err error) {
	defer obs.Time(ctx, "sql.ServicePerformance")(&err)

	tbl, err := s.readTable(ctx, s.ServiceTable)
	if err != nil {
		return ports.Table[domain.ServicePerformanceRecord]{}, fmt.Errorf("service performance: %w", err)
	}

	out, err := frame.DecodeServicePerformance(tbl)
	if err != nil {
		return ports.Table[domain.ServicePerformanceRecord]{}, fmt.Errorf("service performance table %s: %w", s.ServiceTable, err)
	}
	return out, nil
}

// readTable returns the header and every row as strings. NULL becomes "".
func (s *SQLRecordSource) readTable(ctx context.Context, table string) (frame.Table, error) {
	if s.DB == nil {
		return frame.Table{}, errors.New("sql record source: DB is nil")
	}
	if !config.ValidIdentifier(table) {
		return frame.Table{}, fmt.Errorf("sql record source: invalid table name %q", table)
	}

	rows, err := s.DB.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return frame.Table{}, fmt.Errorf("query %s table: %w", table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return frame.Table{}, fmt.Errorf("read %s columns: %w", table, err)
	}

	records := make([][]string, 0, 1024)
	records = append(records, header)

	cells := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return frame.Table{}, fmt.Errorf("scan %s row: %w", table, err)
		}
		rec := make([]string, len(cells))
		for i, c := range cells {
			if c.Valid {
				rec[i] = c.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return frame.Table{}, fmt.Errorf("%s row iteration: %w", table, err)
	}

	return frame.NewTable(records)
}
