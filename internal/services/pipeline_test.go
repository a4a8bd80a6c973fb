package services

import (
	"context"
	"errors"
	"freight-eda/internal/domain"
	"freight-eda/internal/ports"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fake ports.RecordSource serving fixed tables.
type fakeSource struct {
	loads      []domain.LoadRecord
	service    []domain.ServicePerformanceRecord
	loadErr    error
	serviceErr error
	calls      int
}

func (f *fakeSource) LoadLevel(ctx context.Context) (ports.Table[domain.LoadRecord], error) {
	f.calls++
	if f.loadErr != nil {
		return ports.Table[domain.LoadRecord]{}, f.loadErr
	}
	return ports.Table[domain.LoadRecord]{Rows: f.loads, Columns: len(domain.LoadLevelColumns)}, nil
}

func (f *fakeSource) ServicePerformance(ctx context.Context) (ports.Table[domain.ServicePerformanceRecord], error) {
	f.calls++
	if f.serviceErr != nil {
		return ports.Table[domain.ServicePerformanceRecord]{}, f.serviceErr
	}
	return ports.Table[domain.ServicePerformanceRecord]{Rows: f.service, Columns: 2}, nil
}

func fixedOptions() Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return opts
}

func shipment(id, carrier, zone, award string, pick, drop, contract, paid, payment, mileage float64) domain.LoadRecord {
	return domain.LoadRecord{
		LoadID:             id,
		CarrierKey:         carrier,
		TemperatureZone:    zone,
		TemperatureReq:     zone,
		OnTimePick:         domain.ParseTimeliness(pick),
		OnTimeDrop:         domain.ParseTimeliness(drop),
		AwardType:          award,
		ContractLinehaul:   domain.Float(contract),
		PaidLinehaul:       domain.Float(paid),
		TotalPaymentAmount: domain.Float(payment),
		Mileage:            domain.Float(mileage),
	}
}

func TestRunProducesReport(t *testing.T) {
	src := &fakeSource{
		loads: []domain.LoadRecord{
			shipment("L1", "A", domain.ZoneDry, "Primary", 1, 1, 400, 450, 500, 100),
			shipment("L2", "A", domain.ZoneDry, "Waterfall #2", 0, 1, 400, 450, 600, 100),
			shipment("L3", "B", domain.ZoneTempControlled, "Primary", 2, 1, 0, 0, 500, 0),
			shipment("L4", "C", domain.ZoneDry, "Primary", 1, 0, 900, 950, 1000, 250),
		},
		service: []domain.ServicePerformanceRecord{svc("L1"), svc("L2"), svc("L2"), svc("X")},
	}

	report, err := Run(context.Background(), src, fixedOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), report.GeneratedAt)

	d := report.Diagnostics
	assert.Equal(t, 4, d.LoadRows)
	assert.Equal(t, len(domain.LoadLevelColumns), d.LoadColumns)
	assert.Equal(t, 4, d.ServiceRows)
	assert.Equal(t, 3, d.DistinctCarriers)
	assert.Equal(t, 2, d.DistinctTemperatureReq)
	assert.Equal(t, 1, d.MissingCostPerMile)
	assert.Equal(t, 1, d.NonFiniteCostPerMile)
	assert.Equal(t, 1, d.TimelinessExcluded)

	assert.Equal(t, 4, report.CarrierZones.Total)
	assert.Equal(t, 3, report.Timeliness.Total)
	assert.InDelta(t, 1.0, report.Timeliness.Sum(), 1e-9)

	require.Len(t, report.AwardComparison, 1)
	assert.Equal(t, "A", report.AwardComparison[0].CarrierKey)

	require.True(t, report.HasQuartiles)
	require.Len(t, report.Buckets, BucketCount)
	carriers := 0
	for _, b := range report.Buckets {
		carriers += len(b.Carriers)
	}
	assert.Equal(t, d.DistinctCarriers, carriers)

	assert.Len(t, report.CostPerMile.Values, 3)
	assert.Equal(t, 3, d.Join.JoinedRows)
	assert.Equal(t, 1, d.Join.RightDuplicates)
	assert.Len(t, report.Joined, 3)

	for _, l := range src.loads {
		assert.False(t, l.CostPerMile.Valid, "source rows must not be mutated")
	}
}

func TestRunAbortsOnLoadFailure(t *testing.T) {
	boom := errors.New("boom")

	_, err := Run(context.Background(), &fakeSource{loadErr: boom}, fixedOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	src := &fakeSource{serviceErr: boom}
	_, err = Run(context.Background(), src, fixedOptions())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, src.calls)
}

func TestRunEmptyInput(t *testing.T) {
	report, err := Run(context.Background(), &fakeSource{}, fixedOptions())
	require.NoError(t, err)

	assert.False(t, report.HasQuartiles)
	require.Len(t, report.Buckets, BucketCount)
	for _, b := range report.Buckets {
		assert.Empty(t, b.Carriers)
	}
	assert.Equal(t, 0, report.Timeliness.Total)
	assert.Empty(t, report.Joined)
}

func TestRunRejectsNilSource(t *testing.T) {
	_, err := Run(context.Background(), nil, fixedOptions())
	assert.Error(t, err)
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, &fakeSource{}, fixedOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
