package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level configuration for the backtester CLI.
type Config struct {
	Evaluation Evaluation `yaml:"evaluation"`
	Data       Data       `yaml:"data"`
	Batch      Batch      `yaml:"batch"`
	Report     Report     `yaml:"report"`
	Logging    Logging    `yaml:"logging"`
}

// Evaluation holds the capital, fee and risk-free parameters of a run.
type Evaluation struct {
	InitialCapital float64 `yaml:"initial_capital"`
	FeeRatio       float64 `yaml:"fee_ratio"`
	RiskFreeRate   float64 `yaml:"risk_free_rate"`
	ReturnKind     string  `yaml:"return_kind"`
}

// Data selects where bars and positions come from.
type Data struct {
	Source          string `yaml:"source"`
	DatabaseURL     string `yaml:"database_url"`
	BarsDir         string `yaml:"bars_dir"`
	Ticker          string `yaml:"ticker"`
	BenchmarkTicker string `yaml:"benchmark_ticker"`
	Interval        string `yaml:"interval"`
	Start           string `yaml:"start"`
	End             string `yaml:"end"`
	PositionsPath   string `yaml:"positions_path"`
}

// Batch controls the batch runner.
type Batch struct {
	Workers int           `yaml:"workers"`
	Timeout time.Duration `yaml:"timeout"`
	Jobs    []BatchJob    `yaml:"jobs"`
}

// BatchJob is one strategy variant evaluated over the shared data.
type BatchJob struct {
	Name          string `yaml:"name"`
	Parameters    string `yaml:"parameters"`
	PositionsPath string `yaml:"positions_path"`
}

type Report struct {
	Print     bool   `yaml:"print"`
	TradesCSV string `yaml:"trades_csv"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	SourcePostgres = "postgres"
	SourceParquet  = "parquet"
	SourceCSV      = "csv"
)

// Default returns the configuration used for fields a file leaves unset.
func Default() *Config {
	return &Config{
		Evaluation: Evaluation{
			InitialCapital: 10000,
			FeeRatio:       0.001,
			ReturnKind:     "log",
		},
		Data: Data{
			Source:   SourceCSV,
			BarsDir:  "data",
			Interval: "1D",
		},
		Batch: Batch{
			Workers: 4,
			Timeout: 30 * time.Second,
		},
		Report: Report{Print: true},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the YAML configuration file at path over the defaults, applies
// environment variable overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("BACKTEST_DATABASE_URL"); v != "" {
		cfg.Data.DatabaseURL = v
	}
	if v := os.Getenv("BACKTEST_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("BACKTEST_FEE_RATIO"); v != "" {
		fee, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: BACKTEST_FEE_RATIO %q", ErrInvalidConfig, v)
		}
		cfg.Evaluation.FeeRatio = fee
	}
	return nil
}

// Validate checks the fields every command relies on.
func (c *Config) Validate() error {
	if c.Evaluation.InitialCapital <= 0 {
		return fmt.Errorf("%w: initial_capital must be positive", ErrInvalidConfig)
	}
	if c.Evaluation.FeeRatio < 0 {
		return fmt.Errorf("%w: fee_ratio must not be negative", ErrInvalidConfig)
	}
	switch c.Data.Source {
	case SourcePostgres:
		if c.Data.DatabaseURL == "" {
			return fmt.Errorf("%w: database_url is required for postgres", ErrInvalidConfig)
		}
	case SourceParquet, SourceCSV:
		if c.Data.BarsDir == "" {
			return fmt.Errorf("%w: bars_dir is required for %s", ErrInvalidConfig, c.Data.Source)
		}
	default:
		return fmt.Errorf("%w: unknown data source %q", ErrInvalidConfig, c.Data.Source)
	}
	if _, err := c.Data.Range(); err != nil {
		return err
	}
	if c.Batch.Workers < 0 || c.Batch.Timeout < 0 {
		return fmt.Errorf("%w: batch workers and timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// TimeRange is the inclusive-exclusive window bars are loaded for. Zero
// values leave a side open.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Range parses Start and End as RFC3339 timestamps or 2006-01-02 dates.
func (d Data) Range() (TimeRange, error) {
	var r TimeRange
	var err error
	if r.Start, err = parseDate(d.Start); err != nil {
		return r, fmt.Errorf("%w: start: %v", ErrInvalidConfig, err)
	}
	if r.End, err = parseDate(d.End); err != nil {
		return r, fmt.Errorf("%w: end: %v", ErrInvalidConfig, err)
	}
	if !r.Start.IsZero() && !r.End.IsZero() && !r.End.After(r.Start) {
		return r, fmt.Errorf("%w: end must be after start", ErrInvalidConfig)
	}
	return r, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
