package ports

import (
	"context"
	"freight-eda/internal/domain"
)

// Contract for rendering or exporting a finished report.
// Sinks receive the report by parameter and must treat it as read-only.
type ReportSink interface {
	Write(ctx context.Context, report *domain.Report) error
}
