package main

import (
	"context"
	"fmt"
	"freight-eda/internal/adapters/csvsource"
	"freight-eda/internal/adapters/report"
	"freight-eda/internal/adapters/repositories"
	"freight-eda/internal/config"
	"freight-eda/internal/platform/db"
	"freight-eda/internal/platform/obs"
	"freight-eda/internal/ports"
	"freight-eda/internal/services"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

type flags struct {
	loads   string
	service string
	json    string
	xlsx    string
	quiet   bool
}

// main is the composition root: config, logger, source, pipeline, sinks.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "eda",
		Short: "Exploratory analysis of carrier load and service-performance snapshots",
		Long: `eda loads the load-level shipment table and the service-performance table,
derives cost per mile, cross-tabulates carriers, segments them into load-count
quartile buckets and joins both tables on LOAD_ID.

Configuration comes from EDA_* environment variables (or .env); flags override it.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), f)
		},
	}

	cmd.Flags().StringVar(&f.loads, "loads", "", "load-level CSV path (overrides EDA_LOAD_LEVEL_PATH)")
	cmd.Flags().StringVar(&f.service, "service", "", "service-performance CSV path (overrides EDA_SERVICE_PERFORMANCE_PATH)")
	cmd.Flags().StringVar(&f.json, "json", "", "write the JSON report to this path (overrides EDA_REPORT_JSON)")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "write the XLSX report to this path (overrides EDA_REPORT_XLSX)")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "skip the console summary")

	return cmd
}

func run(ctx context.Context, stdout, stderr io.Writer, f flags) error {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}
	applyFlags(cfg, f)

	logger := obs.NewLogger(cfg.Log.Level, cfg.Log.Format, stderr)
	ctx = logger.WithContext(ctx)

	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return err
	}

	src, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("open source failed")
		return err
	}
	defer closeSrc()

	opts := services.DefaultOptions()
	opts.LinehaulFloor = cfg.Analysis.LinehaulFloor
	opts.AwardPrimary = cfg.Analysis.AwardPrimary
	opts.AwardSecondary = cfg.Analysis.AwardSecondary
	opts.CostPerMileClip = cfg.Analysis.CostPerMileClip

	rep, err := services.Run(ctx, src, opts)
	if err != nil {
		logger.Error().Err(err).Msg("analysis failed")
		return err
	}

	if err := buildSinks(cfg, stdout, f.quiet).Write(ctx, rep); err != nil {
		logger.Error().Err(err).Msg("writing report failed")
		return err
	}
	return nil
}

func applyFlags(cfg *config.Config, f flags) {
	if f.loads != "" {
		cfg.Source.LoadLevelPath = f.loads
	}
	if f.service != "" {
		cfg.Source.ServicePerformancePath = f.service
	}
	if f.json != "" {
		cfg.Report.JSONPath = f.json
	}
	if f.xlsx != "" {
		cfg.Report.XLSXPath = f.xlsx
	}
}

func openSource(ctx context.Context, cfg *config.Config) (ports.RecordSource, func(), error) {
	if cfg.Source.Kind != config.SourceSQL {
		return csvsource.NewSource(cfg.Source.LoadLevelPath, cfg.Source.ServicePerformancePath), func() {}, nil
	}

	conn, err := db.Open(cfg.Source.DBDriver, cfg.Source.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open source: %w", err)
	}
	zerolog.Ctx(ctx).Info().
		Str("driver", cfg.Source.DBDriver).
		Str("load_table", cfg.Source.LoadTable).
		Str("service_table", cfg.Source.ServiceTable).
		Msg("reading tables from database")

	closeFn := func() {
		if err := conn.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("close database")
		}
	}
	return repositories.NewSQLRecordSource(conn, cfg.Source.LoadTable, cfg.Source.ServiceTable), closeFn, nil
}

func buildSinks(cfg *config.Config, stdout io.Writer, quiet bool) report.Multi {
	var sinks report.Multi
	if !quiet {
		sinks = append(sinks, report.NewConsoleSink(stdout))
	}
	if cfg.Report.JSONPath != "" {
		sinks = append(sinks, report.NewJSONSink(cfg.Report.JSONPath))
	}
	if cfg.Report.XLSXPath != "" {
		sinks = append(sinks, report.NewXLSXSink(cfg.Report.XLSXPath))
	}
	return sinks
}
