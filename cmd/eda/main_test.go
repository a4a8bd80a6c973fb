package main

import (
	"bytes"
	"context"
	"encoding/json"
	"freight-eda/internal/adapters/repositories"
	"freight-eda/internal/platform/db"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loadsCSV = `LOAD_ID,CARRIER_SKEY,TEMPERATURE_ZONE,TEMPERATURE_REQ,ON_TIME_PICK,ON_TIME_DROP,AWARD_TYPE,CONTRACT_LINEHAUL,PAID_LINEHAUL,TOTAL_PAYMENT_AMOUNT,MILEAGE
L1,A,DRY,Dry,1,1,Primary,400,450,500,100
L2,A,DRY,Dry,0,1,Waterfall #2,400,450,600,100
L3,B,TEMP CONTROLLED,Frozen,2.0,1,Primary,0,0,500,0
L4,C,DRY,Dry,1,0,Primary,900,950,1000,250
`

const serviceCSV = `LOAD_ID,DELIVERED
L1,Y
L2,Y
L2,N
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"EDA_SOURCE", "EDA_LOAD_LEVEL_PATH", "EDA_SERVICE_PERFORMANCE_PATH",
		"EDA_DATABASE_URL", "EDA_DB_DRIVER", "EDA_REPORT_JSON", "EDA_REPORT_XLSX",
	} {
		// Setenv restores the original value on cleanup; an empty value would
		// otherwise suppress envconfig defaults.
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("EDA_LOG_FORMAT", "json")
}

func TestRunCSV(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "report.json")
	xlsxPath := filepath.Join(dir, "report.xlsx")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, flags{
		loads:   writeFile(t, dir, "loads.csv", loadsCSV),
		service: writeFile(t, dir, "service.csv", serviceCSV),
		json:    jsonPath,
		xlsx:    xlsxPath,
	})
	require.NoError(t, err, stderr.String())

	assert.Contains(t, stdout.String(), "length of join table")
	assert.Contains(t, stderr.String(), "pipeline complete")

	b, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var got struct {
		Diagnostics struct {
			LoadRows int `json:"load_rows"`
			Join     struct {
				JoinedRows int `json:"joined_rows"`
			} `json:"join"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, 4, got.Diagnostics.LoadRows)
	assert.Equal(t, 3, got.Diagnostics.Join.JoinedRows)

	assert.FileExists(t, xlsxPath)
}

func TestRunSQLite(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "eda.db")

	conn, err := db.Open(db.DriverSQLite, dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = repositories.SeedFromCSV(ctx, conn, db.DriverSQLite, "load_level_shipment_records", writeFile(t, dir, "loads.csv", loadsCSV))
	require.NoError(t, err)
	_, err = repositories.SeedFromCSV(ctx, conn, db.DriverSQLite, "service_performance", writeFile(t, dir, "service.csv", serviceCSV))
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	t.Setenv("EDA_SOURCE", "sql")
	t.Setenv("EDA_DB_DRIVER", "sqlite")
	t.Setenv("EDA_DATABASE_URL", dbPath)

	var stdout, stderr bytes.Buffer
	err = run(ctx, &stdout, &stderr, flags{})
	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "(4, 11)")
}

func TestRunFailsOnMissingInput(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, flags{
		loads:   filepath.Join(dir, "missing.csv"),
		service: writeFile(t, dir, "service.csv", serviceCSV),
	})

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, stdout.String(), "nothing is reported when loading fails")
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	clearEnv(t)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, flags{})

	assert.Error(t, err)
	assert.Contains(t, stderr.String(), "invalid configuration")
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"loads", "service", "json", "xlsx", "quiet"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Error(t, cmd.Args(cmd, []string{"extra"}))
}
