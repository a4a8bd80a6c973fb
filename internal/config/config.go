package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every variable. Field tags carry the full name
// because nested structs would otherwise add their own prefix.
const EnvPrefix = "EDA"

const (
	SourceCSV = "csv"
	SourceSQL = "sql"
)

type Config struct {
	Source   SourceConfig
	Analysis AnalysisConfig
	Report   ReportConfig
	Log      LogConfig
}

type SourceConfig struct {
	Kind                   string `envconfig:"EDA_SOURCE" default:"csv"`
	LoadLevelPath          string `envconfig:"EDA_LOAD_LEVEL_PATH"`
	ServicePerformancePath string `envconfig:"EDA_SERVICE_PERFORMANCE_PATH"`
	DatabaseURL            string `envconfig:"EDA_DATABASE_URL"`
	DBDriver               string `envconfig:"EDA_DB_DRIVER" default:"pgx"`
	LoadTable              string `envconfig:"EDA_LOAD_TABLE" default:"load_level_shipment_records"`
	ServiceTable           string `envconfig:"EDA_SERVICE_TABLE" default:"service_performance"`
}

type AnalysisConfig struct {
	LinehaulFloor   float64 `envconfig:"EDA_LINEHAUL_FLOOR" default:"100"`
	AwardPrimary    string  `envconfig:"EDA_AWARD_PRIMARY" default:"Primary"`
	AwardSecondary  string  `envconfig:"EDA_AWARD_SECONDARY" default:"Waterfall #2"`
	CostPerMileClip float64 `envconfig:"EDA_COST_PER_MILE_CLIP" default:"0.90"`
}

type ReportConfig struct {
	JSONPath string `envconfig:"EDA_REPORT_JSON"`
	XLSXPath string `envconfig:"EDA_REPORT_XLSX"`
}

type LogConfig struct {
	Level  string `envconfig:"EDA_LOG_LEVEL" default:"info"`
	Format string `envconfig:"EDA_LOG_FORMAT" default:"console"`
}

// LoadDotEnv reads .env if present. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

// Load parses the environment. Call Validate once flag overrides are applied.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name can be interpolated as a SQL table name.
func ValidIdentifier(name string) bool { return identifier.MatchString(name) }

func (c *Config) Validate() error {
	c.Source.Kind = strings.ToLower(strings.TrimSpace(c.Source.Kind))
	switch c.Source.Kind {
	case SourceCSV:
		if strings.TrimSpace(c.Source.LoadLevelPath) == "" {
			return errors.New("config: EDA_LOAD_LEVEL_PATH is required for csv source")
		}
		if strings.TrimSpace(c.Source.ServicePerformancePath) == "" {
			return errors.New("config: EDA_SERVICE_PERFORMANCE_PATH is required for csv source")
		}
	case SourceSQL:
		if strings.TrimSpace(c.Source.DatabaseURL) == "" {
			return errors.New("config: EDA_DATABASE_URL is required for sql source")
		}
		if !ValidIdentifier(c.Source.LoadTable) || !ValidIdentifier(c.Source.ServiceTable) {
			return fmt.Errorf("config: invalid table name %q or %q", c.Source.LoadTable, c.Source.ServiceTable)
		}
	default:
		return fmt.Errorf("config: unknown source %q", c.Source.Kind)
	}

	if c.Analysis.CostPerMileClip <= 0 || c.Analysis.CostPerMileClip > 1 {
		return fmt.Errorf("config: cost per mile clip %v must be in (0, 1]", c.Analysis.CostPerMileClip)
	}
	if strings.TrimSpace(c.Analysis.AwardPrimary) == "" || strings.TrimSpace(c.Analysis.AwardSecondary) == "" {
		return errors.New("config: award types must be non-empty")
	}

	return nil
}

// Get returns the environment value of key or fallback.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
