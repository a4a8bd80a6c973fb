package report

import (
	"context"
	"errors"
	"freight-eda/internal/domain"
	"freight-eda/internal/ports"
)

// Multi writes the report to every sink in order. A failing sink does not
// stop the others; all errors are returned joined.
type Multi []ports.ReportSink

func (m Multi) Write(ctx context.Context, r *domain.Report) error {
	var errs []error
	for _, s := range m {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.Write(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
