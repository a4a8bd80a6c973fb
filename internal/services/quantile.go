package services

import (
	"errors"
	"fmt"
	"freight-eda/internal/domain"
	"math"
	"slices"
)

// ErrEmptySeries is returned when a statistic needs at least one value.
var ErrEmptySeries = errors.New("empty series")

// Quantile returns the p-th quantile using linear interpolation between
// order statistics: h = (n-1)p, q = x[⌊h⌋] + (h-⌊h⌋)(x[⌊h⌋+1]-x[⌊h⌋]).
//
// This is the common default percentile definition (numpy "linear",
// R type 7). values is not modified.
func Quantile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySeries
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("quantile: p=%v outside [0, 1]", p)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1], nil
	}

	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), nil
}

// ComputeQuartiles derives the 25th, 50th and 75th percentile of carrier load counts.
func ComputeQuartiles(freqs []domain.CarrierCount) (domain.Quartiles, error) {
	values := make([]float64, len(freqs))
	for i, f := range freqs {
		values[i] = float64(f.Loads)
	}

	var q domain.Quartiles
	var err error
	if q.Q1, err = Quantile(values, 0.25); err != nil {
		return domain.Quartiles{}, fmt.Errorf("compute quartiles: %w", err)
	}
	if q.Q2, err = Quantile(values, 0.5); err != nil {
		return domain.Quartiles{}, fmt.Errorf("compute quartiles: %w", err)
	}
	if q.Q3, err = Quantile(values, 0.75); err != nil {
		return domain.Quartiles{}, fmt.Errorf("compute quartiles: %w", err)
	}
	return q, nil
}
