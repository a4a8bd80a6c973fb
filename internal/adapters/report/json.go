package report

import (
	"context"
	"encoding/json"
	"fmt"
	"freight-eda/internal/adapters/report/dto"
	"freight-eda/internal/domain"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

// JSONSink writes the report as indented JSON to Path.
type JSONSink struct {
	Path string
}

func NewJSONSink(path string) *JSONSink {
	return &JSONSink{Path: path}
}

func (s *JSONSink) Write(ctx context.Context, r *domain.Report) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("write json report: %w", err)
	}

	if err := Encode(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write json report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write json report: close: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("path", s.Path).Msg("json report written")
	return nil
}

// Encode writes the JSON form of r to w.
func Encode(w io.Writer, r *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewResponse(r)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// NewResponse maps a report to its serialized shape. Per-row views
// (bucket rows, joined rows) are reduced to counts.
func NewResponse(r *domain.Report) dto.ReportResponse {
	res := dto.ReportResponse{
		RunID:           r.RunID,
		GeneratedAt:     r.GeneratedAt,
		CarrierZones:    crossTabResponse(r.CarrierZones),
		Timeliness:      crossTabResponse(r.Timeliness),
		AwardComparison: make([]dto.AwardComparisonResponse, 0, len(r.AwardComparison)),
		Carriers:        make([]dto.CarrierResponse, 0, len(r.CarrierAggregates)),
		Buckets:         make([]dto.BucketResponse, 0, len(r.Buckets)),
	}

	for _, a := range r.AwardComparison {
		res.AwardComparison = append(res.AwardComparison, dto.AwardComparisonResponse{
			CarrierKey:     a.CarrierKey,
			MeanPrimary:    a.MeanPrimary,
			MeanSecondary:  a.MeanSecondary,
			PrimaryLoads:   a.PrimaryLoads,
			SecondaryLoads: a.SecondaryLoads,
		})
	}

	for _, c := range r.CarrierAggregates {
		res.Carriers = append(res.Carriers, dto.CarrierResponse{
			CarrierKey:  c.CarrierKey,
			Loads:       c.Loads,
			MeanMileage: optional(c.MeanMileage),
			MeanPayment: optional(c.MeanPayment),
		})
	}

	if r.HasQuartiles {
		res.Quartiles = &dto.QuartilesResponse{Q1: r.Quartiles.Q1, Q2: r.Quartiles.Q2, Q3: r.Quartiles.Q3}
	}

	for _, b := range r.Buckets {
		res.Buckets = append(res.Buckets, dto.BucketResponse{ID: b.ID, Carriers: b.Carriers, Rows: len(b.Rows)})
	}

	cpm := r.CostPerMile
	res.CostPerMile = dto.CostPerMileResponse{
		Count:          len(cpm.Values),
		Missing:        cpm.Missing,
		NonFinite:      cpm.NonFinite,
		ClipPercentile: cpm.ClipPercentile,
		Upper:          cpm.Upper,
	}
	if len(cpm.Values) > 0 {
		mean := stat.Mean(cpm.Values, nil)
		res.CostPerMile.Mean = &mean
	}

	d := r.Diagnostics
	res.Diagnostics = dto.DiagnosticsResponse{
		LoadRows:               d.LoadRows,
		LoadColumns:            d.LoadColumns,
		ServiceRows:            d.ServiceRows,
		ServiceColumns:         d.ServiceColumns,
		DistinctCarriers:       d.DistinctCarriers,
		DistinctTemperatureReq: d.DistinctTemperatureReq,
		MissingMileage:         d.MissingMileage,
		MissingPayment:         d.MissingPayment,
		MissingCostPerMile:     d.MissingCostPerMile,
		NonFiniteCostPerMile:   d.NonFiniteCostPerMile,
		TimelinessExcluded:     d.TimelinessExcluded,
		Join: dto.JoinResponse{
			LeftRows:        d.Join.LeftRows,
			RightRows:       d.Join.RightRows,
			JoinedRows:      d.Join.JoinedRows,
			LeftDuplicates:  d.Join.LeftDuplicates,
			RightDuplicates: d.Join.RightDuplicates,
			JoinDuplicates:  d.Join.JoinDuplicates,
			LeftOnlyKeys:    d.Join.LeftOnlyKeys,
			RightOnlyKeys:   d.Join.RightOnlyKeys,
		},
	}

	return res
}

func crossTabResponse(c *domain.CrossTab) *dto.CrossTabResponse {
	if c == nil {
		return nil
	}
	return &dto.CrossTabResponse{
		RowName:    c.RowName,
		ColName:    c.ColName,
		RowLabels:  c.RowLabels,
		ColLabels:  c.ColLabels,
		Cells:      c.Cells,
		Total:      c.Total,
		Normalized: c.Normalized,
	}
}

func optional(f domain.NullFloat) *float64 {
	v, ok := f.Get()
	if !ok {
		return nil
	}
	return &v
}
