package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"freight-eda/internal/adapters/frame"
	"freight-eda/internal/domain"
	"freight-eda/internal/platform/obs"
	"freight-eda/internal/ports"
	"os"

	"github.com/rs/zerolog"
)

// Source implements RecordSource over two CSV files with header rows.
type Source struct {
	LoadLevelPath          string
	ServicePerformancePath string
}

func NewSource(loadLevelPath, servicePerformancePath string) *Source {
	return &Source{
		LoadLevelPath:          loadLevelPath,
		ServicePerformancePath: servicePerformancePath,
	}
}

func (s *Source) LoadLevel(ctx context.Context) (_ ports.Table[domain.LoadRecord], err error) {
	defer obs.Time(ctx, "csv.LoadLevel")(&err)

	tbl, err := readTable(ctx, s.LoadLevelPath)
	if err != nil {
		return ports.Table[domain.LoadRecord]{}, fmt.Errorf("load level: %w", err)
	}

	out, err := frame.DecodeLoadLevel(tbl)
	if err != nil {
		return ports.Table[domain.LoadRecord]{}, fmt.Errorf("load level %q: %w", s.LoadLevelPath, err)
	}
	return out, nil
}

func (s *Source) ServicePerformance(ctx context.Context) (_ ports.Table[domain.ServicePerformanceRecord], err error) {
	defer obs.Time(ctx, "csv.ServicePerformance")(&err)

	tbl, err := readTable(ctx, s.ServicePerformancePath)
	if err != nil {
		return ports.Table[domain.ServicePerformanceRecord]{}, fmt.Errorf("service performance: %w", err)
	}

	out, err := frame.DecodeServicePerformance(tbl)
	if err != nil {
		return ports.Table[domain.ServicePerformanceRecord]{}, fmt.Errorf("service performance %q: %w", s.ServicePerformancePath, err)
	}
	return out, nil
}

func readTable(ctx context.Context, path string) (frame.Table, error) {
	if err := ctx.Err(); err != nil {
		return frame.Table{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return frame.Table{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return frame.Table{}, fmt.Errorf("read csv %q: %w", path, err)
	}

	zerolog.Ctx(ctx).Info().Str("path", path).Int("records", len(records)).Msg("csv read")

	tbl, err := frame.NewTable(records)
	if err != nil {
		return frame.Table{}, fmt.Errorf("%q: %w", path, err)
	}
	return tbl, nil
}
