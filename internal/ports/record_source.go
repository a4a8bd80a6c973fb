package ports

import (
	"context"
	"freight-eda/internal/domain"
)

// Table is a decoded source table together with its column count,
// which the record slices alone do not reveal.
type Table[T any] struct {
	Rows    []T
	Columns int
}

// Port: a boundary for loading the two snapshot tables.
// Implementations must fail on unreadable input or missing required columns,
// and must not deduplicate rows.
type RecordSource interface {
	// Load the shipment-level table.
	LoadLevel(ctx context.Context) (Table[domain.LoadRecord], error)
	// Load the service-performance table.
	ServicePerformance(ctx context.Context) (Table[domain.ServicePerformanceRecord], error)
}
