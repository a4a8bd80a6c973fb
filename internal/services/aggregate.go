package services

import (
	"cmp"
	"freight-eda/internal/domain"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// KeyFunc extracts a categorical key from a row. ok=false marks a missing key.
type KeyFunc[T any] func(T) (key string, ok bool)

// ValueFunc extracts a numeric value from a row.
type ValueFunc[T any] func(T) domain.NullFloat

type CrossTabOptions struct {
	RowName string
	ColName string
	// Fixed label sets. When empty, the observed values are used, sorted.
	// Rows whose value is outside a fixed set are not counted.
	RowLevels []string
	ColLevels []string
	// Normalize divides every cell by the grand total.
	Normalize bool
}

// CrossTabulate counts co-occurrences of two categorical keys.
// Rows with a missing key on either axis are skipped.
func CrossTabulate[T any](rows []T, rowKey, colKey KeyFunc[T], opts CrossTabOptions) *domain.CrossTab {
	type pair struct{ r, c string }

	counts := make(map[pair]int)
	seenRows := make(map[string]struct{})
	seenCols := make(map[string]struct{})
	for _, row := range rows {
		r, okR := rowKey(row)
		c, okC := colKey(row)
		if !okR || !okC {
			continue
		}
		counts[pair{r, c}]++
		seenRows[r] = struct{}{}
		seenCols[c] = struct{}{}
	}

	rowLabels := levels(opts.RowLevels, seenRows)
	colLabels := levels(opts.ColLevels, seenCols)

	ct := &domain.CrossTab{
		RowName:    opts.RowName,
		ColName:    opts.ColName,
		RowLabels:  rowLabels,
		ColLabels:  colLabels,
		Cells:      make([][]float64, len(rowLabels)),
		Normalized: opts.Normalize,
	}
	for i, r := range rowLabels {
		ct.Cells[i] = make([]float64, len(colLabels))
		for j, c := range colLabels {
			n := counts[pair{r, c}]
			ct.Cells[i][j] = float64(n)
			ct.Total += n
		}
	}

	if opts.Normalize && ct.Total > 0 {
		total := float64(ct.Total)
		for i := range ct.Cells {
			for j := range ct.Cells[i] {
				ct.Cells[i][j] /= total
			}
		}
	}

	return ct
}

func levels(fixed []string, seen map[string]struct{}) []string {
	if len(fixed) > 0 {
		return slices.Clone(fixed)
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func carrierKey(l domain.LoadRecord) (string, bool) { return l.CarrierKey, l.CarrierKey != "" }

// CarrierZoneCrossTab counts loads per carrier and temperature zone.
func CarrierZoneCrossTab(loads []domain.LoadRecord) *domain.CrossTab {
	return CrossTabulate(
		loads,
		carrierKey,
		func(l domain.LoadRecord) (string, bool) { return l.TemperatureZone, l.TemperatureZone != "" },
		CrossTabOptions{RowName: domain.ColCarrierKey, ColName: domain.ColTemperatureZone},
	)
}

var timelinessLevels = []string{domain.Late.String(), domain.OnTime.String()}

// TimelinessCrossTab builds the 2×2 on-time pick × on-time drop table.
// Sentinel rows are removed first; flags that are otherwise unknown are not counted.
func TimelinessCrossTab(loads []domain.LoadRecord, normalize bool) *domain.CrossTab {
	flag := func(t domain.Timeliness) (string, bool) { return t.String(), t.Analyzable() }

	return CrossTabulate(
		FilterTimeliness(loads),
		func(l domain.LoadRecord) (string, bool) { return flag(l.OnTimePick) },
		func(l domain.LoadRecord) (string, bool) { return flag(l.OnTimeDrop) },
		CrossTabOptions{
			RowName:   domain.ColOnTimePick,
			ColName:   domain.ColOnTimeDrop,
			RowLevels: timelinessLevels,
			ColLevels: timelinessLevels,
			Normalize: normalize,
		},
	)
}

// GroupedMean returns the arithmetic mean of value per key.
// Rows with a missing key or value do not qualify; groups without a
// qualifying row are absent from the result.
func GroupedMean[T any](rows []T, key KeyFunc[T], value ValueFunc[T]) map[string]float64 {
	groups := make(map[string][]float64)
	for _, row := range rows {
		k, ok := key(row)
		if !ok {
			continue
		}
		v, ok := value(row).Get()
		if !ok {
			continue
		}
		groups[k] = append(groups[k], v)
	}

	out := make(map[string]float64, len(groups))
	for k, vs := range groups {
		out[k] = stat.Mean(vs, nil)
	}
	return out
}

func countBy[T any](rows []T, key KeyFunc[T]) map[string]int {
	out := make(map[string]int)
	for _, row := range rows {
		if k, ok := key(row); ok {
			out[k]++
		}
	}
	return out
}

// CarrierAggregates summarizes every carrier with at least one load, sorted by carrier key.
func CarrierAggregates(loads []domain.LoadRecord) []domain.CarrierAggregate {
	counts := countBy(loads, carrierKey)
	mileage := GroupedMean(loads, carrierKey, func(l domain.LoadRecord) domain.NullFloat { return l.Mileage })
	payment := GroupedMean(loads, carrierKey, func(l domain.LoadRecord) domain.NullFloat { return l.TotalPaymentAmount })

	out := make([]domain.CarrierAggregate, 0, len(counts))
	for k, n := range counts {
		agg := domain.CarrierAggregate{CarrierKey: k, Loads: n}
		if v, ok := mileage[k]; ok {
			agg.MeanMileage = domain.Float(v)
		}
		if v, ok := payment[k]; ok {
			agg.MeanPayment = domain.Float(v)
		}
		out = append(out, agg)
	}

	slices.SortFunc(out, func(a, b domain.CarrierAggregate) int { return cmp.Compare(a.CarrierKey, b.CarrierKey) })
	return out
}

// CompareAwardPayments computes each carrier's mean payment under the primary and
// the secondary award type, keeping only carriers that have both (inner merge).
func CompareAwardPayments(loads []domain.LoadRecord, primary, secondary string) []domain.AwardComparison {
	payment := func(l domain.LoadRecord) domain.NullFloat { return l.TotalPaymentAmount }

	reliable := FilterAwardTypes(loads, primary, secondary)
	primaryLoads := FilterAwardTypes(reliable, primary)
	secondaryLoads := FilterAwardTypes(reliable, secondary)

	primaryMeans := GroupedMean(primaryLoads, carrierKey, payment)
	secondaryMeans := GroupedMean(secondaryLoads, carrierKey, payment)
	primaryCounts := countBy(primaryLoads, carrierKey)
	secondaryCounts := countBy(secondaryLoads, carrierKey)

	out := make([]domain.AwardComparison, 0)
	for k, p := range primaryMeans {
		s, ok := secondaryMeans[k]
		if !ok {
			continue
		}
		out = append(out, domain.AwardComparison{
			CarrierKey:     k,
			MeanPrimary:    p,
			MeanSecondary:  s,
			PrimaryLoads:   primaryCounts[k],
			SecondaryLoads: secondaryCounts[k],
		})
	}

	slices.SortFunc(out, func(a, b domain.AwardComparison) int { return cmp.Compare(a.CarrierKey, b.CarrierKey) })
	return out
}

// CarrierFrequencies counts loads per carrier, most active first; ties sort by key.
func CarrierFrequencies(loads []domain.LoadRecord) []domain.CarrierCount {
	counts := countBy(loads, carrierKey)

	out := make([]domain.CarrierCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, domain.CarrierCount{CarrierKey: k, Loads: n})
	}

	slices.SortFunc(out, func(a, b domain.CarrierCount) int {
		if c := cmp.Compare(b.Loads, a.Loads); c != 0 {
			return c
		}
		return cmp.Compare(a.CarrierKey, b.CarrierKey)
	})
	return out
}

// SummarizeCostPerMile collects the defined cost-per-mile values and the
// clip percentile used as the histogram's upper bound.
func SummarizeCostPerMile(loads []domain.LoadRecord, stats CostPerMileStats, clip float64) (domain.CostPerMileSummary, error) {
	s := domain.CostPerMileSummary{
		Values:         make([]float64, 0, len(loads)),
		Missing:        stats.Missing,
		NonFinite:      stats.NonFinite,
		ClipPercentile: clip,
	}
	for _, l := range loads {
		if v, ok := l.CostPerMile.Get(); ok {
			s.Values = append(s.Values, v)
		}
	}

	if len(s.Values) == 0 {
		return s, nil
	}

	upper, err := Quantile(s.Values, clip)
	if err != nil {
		return domain.CostPerMileSummary{}, err
	}
	s.Upper = upper
	return s, nil
}
