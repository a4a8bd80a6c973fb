package main

import (
	"context"
	"database/sql"
	"errors"
	"freight-eda/internal/adapters/repositories"
	"freight-eda/internal/config"
	"freight-eda/internal/platform/db"
	"freight-eda/internal/platform/obs"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// dbtool loads the two CSV snapshots into the database read by EDA_SOURCE=sql.
func main() {
	if err := config.LoadDotEnv(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := obs.NewLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	ctx := logger.WithContext(context.Background())

	src := cfg.Source
	if strings.TrimSpace(src.DatabaseURL) == "" {
		logger.Fatal().Msg("EDA_DATABASE_URL is required")
	}

	conn, err := db.Open(src.DBDriver, src.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, src); err != nil {
		conn.Close()
		logger.Fatal().Err(err).Msg("seeding failed")
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, src config.SourceConfig) error {
	logger := zerolog.Ctx(ctx)

	seeds := []struct {
		table string
		path  string
	}{
		{src.LoadTable, src.LoadLevelPath},
		{src.ServiceTable, src.ServicePerformancePath},
	}

	for _, s := range seeds {
		if strings.TrimSpace(s.path) == "" {
			return errors.New("EDA_LOAD_LEVEL_PATH and EDA_SERVICE_PERFORMANCE_PATH are required")
		}

		logger.Info().Str("table", s.table).Str("path", s.path).Msg("seeding table")
		n, err := repositories.SeedFromCSV(ctx, conn, src.DBDriver, s.table, s.path)
		if err != nil {
			return err
		}
		logger.Info().Str("table", s.table).Int("rows", n).Msg("seeding complete")
	}

	return nil
}
