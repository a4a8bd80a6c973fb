package services

import (
	"context"
	"errors"
	"fmt"
	"freight-eda/internal/domain"
	"freight-eda/internal/platform/obs"
	"freight-eda/internal/ports"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Options struct {
	// Loads at or below this contract/paid linehaul are placeholders.
	LinehaulFloor  float64
	AwardPrimary   string
	AwardSecondary string
	// Percentile of cost per mile used as the histogram upper bound.
	CostPerMileClip float64
	// Now stamps the report; defaults to time.Now.
	Now func() time.Time
}

func DefaultOptions() Options {
	return Options{
		LinehaulFloor:   100,
		AwardPrimary:    "Primary",
		AwardSecondary:  "Waterfall #2",
		CostPerMileClip: 0.90,
		Now:             time.Now,
	}
}

// Run executes the analysis once: load, clean, aggregate, segment, join.
//
// Stages run strictly in order and each consumes the previous stage's output
// without mutating it. Any load failure aborts the run before aggregation.
func Run(ctx context.Context, src ports.RecordSource, opts Options) (_ *domain.Report, err error) {
	if src == nil {
		return nil, errors.New("run pipeline: source must be non-nil")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	runID := uuid.NewString()
	ctx = obs.WithRunID(ctx, runID)
	logger := zerolog.Ctx(ctx)
	defer obs.Time(ctx, "pipeline.Run")(&err)

	report := &domain.Report{RunID: runID, GeneratedAt: opts.Now()}

	loads, service, err := loadStage(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	report.Diagnostics.LoadRows = len(loads.Rows)
	report.Diagnostics.LoadColumns = loads.Columns
	report.Diagnostics.ServiceRows = len(service.Rows)
	report.Diagnostics.ServiceColumns = service.Columns

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	derived, cpmStats := cleanStage(ctx, loads.Rows, report)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	if err := aggregateStage(ctx, derived, cpmStats, opts, report); err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	segmentStage(ctx, derived, opts, report)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	joinStage(ctx, derived, service.Rows, report)

	logger.Info().
		Int("loads", report.Diagnostics.LoadRows).
		Int("service_rows", report.Diagnostics.ServiceRows).
		Int("carriers", report.Diagnostics.DistinctCarriers).
		Int("missing_cost_per_mile", report.Diagnostics.MissingCostPerMile).
		Int("joined_rows", report.Diagnostics.Join.JoinedRows).
		Msg("pipeline complete")

	return report, nil
}

func loadStage(
	ctx context.Context,
	src ports.RecordSource,
) (loads ports.Table[domain.LoadRecord], service ports.Table[domain.ServicePerformanceRecord], err error) {
	defer obs.Time(ctx, "pipeline.load")(&err)

	loads, err = src.LoadLevel(ctx)
	if err != nil {
		return loads, service, fmt.Errorf("load stage: %w", err)
	}

	service, err = src.ServicePerformance(ctx)
	if err != nil {
		return loads, service, fmt.Errorf("load stage: %w", err)
	}

	return loads, service, nil
}

func cleanStage(ctx context.Context, loads []domain.LoadRecord, report *domain.Report) ([]domain.LoadRecord, CostPerMileStats) {
	defer obs.Time(ctx, "pipeline.clean")(nil)

	derived, stats := DeriveCostPerMile(loads)

	d := &report.Diagnostics
	d.MissingCostPerMile = stats.Missing
	d.NonFiniteCostPerMile = stats.NonFinite
	d.TimelinessExcluded = len(loads) - len(FilterTimeliness(loads))

	carriers := make(map[string]struct{})
	reqs := make(map[string]struct{})
	for _, l := range loads {
		if !l.Mileage.Valid {
			d.MissingMileage++
		}
		if !l.TotalPaymentAmount.Valid {
			d.MissingPayment++
		}
		if l.CarrierKey != "" {
			carriers[l.CarrierKey] = struct{}{}
		}
		if l.TemperatureReq != "" {
			reqs[l.TemperatureReq] = struct{}{}
		}
	}
	d.DistinctCarriers = len(carriers)
	d.DistinctTemperatureReq = len(reqs)

	if stats.NonFinite > 0 {
		zerolog.Ctx(ctx).Warn().Int("count", stats.NonFinite).Msg("non-finite cost per mile downgraded to missing")
	}

	return derived, stats
}

func aggregateStage(
	ctx context.Context,
	loads []domain.LoadRecord,
	cpmStats CostPerMileStats,
	opts Options,
	report *domain.Report,
) (err error) {
	defer obs.Time(ctx, "pipeline.aggregate")(&err)

	report.CarrierZones = CarrierZoneCrossTab(loads)
	report.Timeliness = TimelinessCrossTab(loads, true)
	report.AwardComparison = CompareAwardPayments(loads, opts.AwardPrimary, opts.AwardSecondary)
	report.CarrierAggregates = CarrierAggregates(loads)
	report.Frequencies = CarrierFrequencies(loads)

	q, err := ComputeQuartiles(report.Frequencies)
	switch {
	case errors.Is(err, ErrEmptySeries):
		zerolog.Ctx(ctx).Warn().Msg("no carrier has a load; quartiles undefined")
	case err != nil:
		return fmt.Errorf("aggregate stage: %w", err)
	default:
		report.Quartiles = q
		report.HasQuartiles = true
	}

	report.CostPerMile, err = SummarizeCostPerMile(loads, cpmStats, opts.CostPerMileClip)
	if err != nil {
		return fmt.Errorf("aggregate stage: cost per mile: %w", err)
	}

	return nil
}

func segmentStage(ctx context.Context, loads []domain.LoadRecord, opts Options, report *domain.Report) {
	defer obs.Time(ctx, "pipeline.segment")(nil)

	if !report.HasQuartiles {
		report.Buckets = SegmentCarriers(nil, domain.Quartiles{}, opts.LinehaulFloor)
		return
	}
	report.Buckets = SegmentCarriers(loads, report.Quartiles, opts.LinehaulFloor)
}

func joinStage(ctx context.Context, loads []domain.LoadRecord, service []domain.ServicePerformanceRecord, report *domain.Report) {
	defer obs.Time(ctx, "pipeline.join")(nil)

	report.Joined, report.Diagnostics.Join = InnerJoin(loads, service)

	if j := report.Diagnostics.Join; j.LeftDuplicates > 0 || j.RightDuplicates > 0 {
		zerolog.Ctx(ctx).Warn().
			Int("load_level_duplicates", j.LeftDuplicates).
			Int("service_performance_duplicates", j.RightDuplicates).
			Int("join_duplicates", j.JoinDuplicates).
			Msg("duplicate LOAD_ID values expand the join")
	}
}
