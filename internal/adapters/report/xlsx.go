package report

import (
	"context"
	"fmt"
	"freight-eda/internal/domain"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Worksheet names of the XLSX export.
const (
	SheetSummary         = "Summary"
	SheetCarrierZones    = "Carrier Zones"
	SheetTimeliness      = "Timeliness"
	SheetAwardComparison = "Award Comparison"
	SheetCarriers        = "Carriers"
	SheetBuckets         = "Buckets"
)

// XLSXSink writes one worksheet per report view to Path.
type XLSXSink struct {
	Path string
}

func NewXLSXSink(path string) *XLSXSink {
	return &XLSXSink{Path: path}
}

func (s *XLSXSink) Write(ctx context.Context, r *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("write xlsx report: %w", err)
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetSummary, summaryRows(r)},
		{SheetCarrierZones, crossTabRows(r.CarrierZones)},
		{SheetTimeliness, crossTabRows(r.Timeliness)},
		{SheetAwardComparison, awardRows(r.AwardComparison)},
		{SheetCarriers, carrierRows(r)},
		{SheetBuckets, bucketRows(r.Buckets)},
	}

	for _, sh := range sheets {
		if sh.name != SheetSummary {
			if _, err := f.NewSheet(sh.name); err != nil {
				return fmt.Errorf("write xlsx report: sheet %q: %w", sh.name, err)
			}
		}
		if err := writeRows(f, sh.name, sh.rows); err != nil {
			return fmt.Errorf("write xlsx report: sheet %q: %w", sh.name, err)
		}
	}

	if err := f.SaveAs(s.Path); err != nil {
		return fmt.Errorf("write xlsx report: save: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("path", s.Path).Int("sheets", len(sheets)).Msg("xlsx report written")
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func summaryRows(r *domain.Report) [][]any {
	d := r.Diagnostics
	rows := [][]any{
		{"Metric", "Value"},
		{"Run ID", r.RunID},
		{"Generated at", r.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z")},
		{"Load rows", d.LoadRows},
		{"Load columns", d.LoadColumns},
		{"Service rows", d.ServiceRows},
		{"Service columns", d.ServiceColumns},
		{"Distinct carriers", d.DistinctCarriers},
		{"Distinct temperature requirements", d.DistinctTemperatureReq},
		{"Missing mileage", d.MissingMileage},
		{"Missing payment", d.MissingPayment},
		{"Missing cost per mile", d.MissingCostPerMile},
		{"Non-finite cost per mile", d.NonFiniteCostPerMile},
		{"Timeliness rows excluded", d.TimelinessExcluded},
		{"Cost per mile clip", r.CostPerMile.Upper},
		{"Joined rows", d.Join.JoinedRows},
		{"Duplicate load ids (join)", d.Join.JoinDuplicates},
		{"Duplicate load ids (load level)", d.Join.LeftDuplicates},
		{"Duplicate load ids (service performance)", d.Join.RightDuplicates},
		{"Load ids only in load level", d.Join.LeftOnlyKeys},
		{"Load ids only in service performance", d.Join.RightOnlyKeys},
	}
	if r.HasQuartiles {
		rows = append(rows,
			[]any{"Q1", r.Quartiles.Q1},
			[]any{"Q2", r.Quartiles.Q2},
			[]any{"Q3", r.Quartiles.Q3},
		)
	}
	return rows
}

func crossTabRows(c *domain.CrossTab) [][]any {
	if c == nil {
		return nil
	}
	header := []any{c.RowName}
	for _, l := range c.ColLabels {
		header = append(header, l)
	}

	rows := [][]any{header}
	for i, label := range c.RowLabels {
		row := []any{label}
		for _, v := range c.Cells[i] {
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return rows
}

func awardRows(items []domain.AwardComparison) [][]any {
	rows := [][]any{{domain.ColCarrierKey, "Mean primary", "Mean secondary", "Primary loads", "Secondary loads"}}
	for _, a := range items {
		rows = append(rows, []any{a.CarrierKey, a.MeanPrimary, a.MeanSecondary, a.PrimaryLoads, a.SecondaryLoads})
	}
	return rows
}

func carrierRows(r *domain.Report) [][]any {
	bucketOf := make(map[string]int)
	for _, b := range r.Buckets {
		for _, c := range b.Carriers {
			bucketOf[c] = b.ID
		}
	}

	rows := [][]any{{domain.ColCarrierKey, "Loads", "Mean mileage", "Mean payment", "Bucket"}}
	for _, c := range r.CarrierAggregates {
		rows = append(rows, []any{c.CarrierKey, c.Loads, cellValue(c.MeanMileage), cellValue(c.MeanPayment), bucketOf[c.CarrierKey]})
	}
	return rows
}

func bucketRows(buckets []domain.Bucket) [][]any {
	rows := [][]any{{"Bucket", "Carriers", "Rows after linehaul filter"}}
	for _, b := range buckets {
		rows = append(rows, []any{b.ID, len(b.Carriers), len(b.Rows)})
	}
	return rows
}

// Missing values become empty cells.
func cellValue(f domain.NullFloat) any {
	if v, ok := f.Get(); ok {
		return v
	}
	return nil
}
