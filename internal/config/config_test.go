package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("EDA_LOAD_LEVEL_PATH", "loads.csv")
	t.Setenv("EDA_SERVICE_PERFORMANCE_PATH", "service.csv")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, SourceCSV, cfg.Source.Kind)
	assert.Equal(t, 100.0, cfg.Analysis.LinehaulFloor)
	assert.Equal(t, "Waterfall #2", cfg.Analysis.AwardSecondary)
	assert.InDelta(t, 0.90, cfg.Analysis.CostPerMileClip, 1e-12)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate_MissingPaths(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	cfg.Source.LoadLevelPath = ""
	cfg.Source.ServicePerformancePath = ""

	assert.Error(t, cfg.Validate())
}

func TestValidate_SQLSource(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	cfg.Source.Kind = SourceSQL

	require.Error(t, cfg.Validate(), "database url is required")

	cfg.Source.DatabaseURL = "file::memory:"
	require.NoError(t, cfg.Validate())

	cfg.Source.LoadTable = "loads; DROP TABLE x"
	assert.Error(t, cfg.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("EDA_TEST_DOTENV=hello\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("EDA_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "hello", Get("EDA_TEST_DOTENV", "fallback"))
	assert.Equal(t, "fallback", Get("EDA_TEST_UNSET", "fallback"))
}
