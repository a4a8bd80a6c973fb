package services

import (
	"errors"
	"freight-eda/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantileLinearInterpolation(t *testing.T) {
	values := []float64{50, 1, 10, 5}

	cases := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 4},
		{0.5, 7.5},
		{0.75, 20},
		{1, 50},
	}
	for _, c := range cases {
		got, err := Quantile(values, c.p)
		require.NoError(t, err)
		assert.InDelta(t, c.want, got, 1e-12, "p=%v", c.p)
	}

	assert.Equal(t, []float64{50, 1, 10, 5}, values, "input must not be sorted in place")
}

func TestQuantileErrors(t *testing.T) {
	_, err := Quantile(nil, 0.5)
	assert.True(t, errors.Is(err, ErrEmptySeries))

	_, err = Quantile([]float64{1}, 1.5)
	assert.Error(t, err)

	got, err := Quantile([]float64{7}, 0.9)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)
}

func TestComputeQuartilesScenario(t *testing.T) {
	freqs := []domain.CarrierCount{
		{CarrierKey: "A", Loads: 1},
		{CarrierKey: "B", Loads: 5},
		{CarrierKey: "C", Loads: 10},
		{CarrierKey: "D", Loads: 50},
	}

	q, err := ComputeQuartiles(freqs)
	require.NoError(t, err)
	assert.Equal(t, domain.Quartiles{Q1: 4, Q2: 7.5, Q3: 20}, q)

	assert.Equal(t, 1, BucketFor(1, q), "A")
	assert.Equal(t, 2, BucketFor(5, q), "B")
	assert.Equal(t, 3, BucketFor(10, q), "C")
	assert.Equal(t, 4, BucketFor(50, q), "D")
}
