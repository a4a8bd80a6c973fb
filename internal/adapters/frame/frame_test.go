package frame

import (
	"errors"
	"freight-eda/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loadHeader = []string{
	"\ufeffLOAD_ID", "CARRIER_SKEY", "TEMPERATURE_ZONE", "TEMPERATURE_REQ",
	"ON_TIME_PICK", "ON_TIME_DROP", "AWARD_TYPE", "CONTRACT_LINEHAUL",
	"PAID_LINEHAUL", "TOTAL_PAYMENT_AMOUNT", "MILEAGE", "EXTRA",
}

func TestDecodeLoadLevel(t *testing.T) {
	tbl, err := NewTable([][]string{
		loadHeader,
		{"L1", "C1", "DRY", "Dry", "1", "0", "Primary", "250.5", "300", "500", "100", "x"},
		{"L2", " C2 ", "TEMP CONTROLLED", "Frozen", "2.0", "1", "Waterfall #2", "", "abc", "700", "NA", "y"},
	})
	require.NoError(t, err)

	got, err := DecodeLoadLevel(tbl)
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, 12, got.Columns)

	first := got.Rows[0]
	assert.Equal(t, "L1", first.LoadID)
	assert.Equal(t, domain.OnTime, first.OnTimePick)
	assert.Equal(t, domain.Late, first.OnTimeDrop)
	assert.Equal(t, domain.Float(250.5), first.ContractLinehaul)
	assert.Equal(t, domain.Float(100), first.Mileage)
	assert.False(t, first.CostPerMile.Valid, "cost per mile is derived later")

	second := got.Rows[1]
	assert.Equal(t, "C2", second.CarrierKey)
	assert.Equal(t, domain.NotApplicable, second.OnTimePick)
	assert.False(t, second.ContractLinehaul.Valid, "empty cell is missing")
	assert.False(t, second.PaidLinehaul.Valid, "malformed cell degrades to missing")
	assert.False(t, second.Mileage.Valid)
	assert.Equal(t, domain.Float(700), second.TotalPaymentAmount)
}

func TestDecodeLoadLevelMissingColumn(t *testing.T) {
	tbl, err := NewTable([][]string{{"LOAD_ID", "CARRIER_SKEY"}, {"L1", "C1"}})
	require.NoError(t, err)

	_, err = DecodeLoadLevel(tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingColumn))
	assert.Contains(t, err.Error(), "MILEAGE")
}

func TestDecodeHeaderOnly(t *testing.T) {
	tbl, err := NewTable([][]string{loadHeader})
	require.NoError(t, err)

	got, err := DecodeLoadLevel(tbl)
	require.NoError(t, err)
	assert.Empty(t, got.Rows)
}

func TestDecodeServicePerformanceKeepsAttributes(t *testing.T) {
	tbl, err := NewTable([][]string{
		{"ON_TIME", "LOAD_ID", "LATE_MINUTES"},
		{"Y", "L1", "0"},
		{"N", "L1", "45"},
	})
	require.NoError(t, err)

	got, err := DecodeServicePerformance(tbl)
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)

	assert.Equal(t, "L1", got.Rows[1].LoadID)
	assert.Equal(t, []domain.Attribute{
		{Name: "ON_TIME", Value: "N"},
		{Name: "LATE_MINUTES", Value: "45"},
	}, got.Rows[1].Attributes)
}

func TestNewTableRejectsRaggedRows(t *testing.T) {
	_, err := NewTable([][]string{{"LOAD_ID", "X"}, {"L1"}})
	assert.Error(t, err)

	_, err = NewTable(nil)
	assert.Error(t, err)
}
