package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives the benchmark driver. The engine itself takes no
// configuration; everything here shapes the synthetic order stream and where
// results land.
type Config struct {
	Bench struct {
		Instruments []string `yaml:"instruments"`
		Orders      int      `yaml:"orders"`
		Seed        int64    `yaml:"seed"`
		BasePrice   float64  `yaml:"base_price"`
		PriceBand   float64  `yaml:"price_band"`
		MaxQuantity uint64   `yaml:"max_quantity"`
		ResultsPath string   `yaml:"results_path"`
	} `yaml:"bench"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Default mirrors the historical benchmark parameters: 100k orders around a
// 100.0 base price with a +-0.5 band and quantities in [1, 100].
func Default() *Config {
	var cfg Config
	cfg.Bench.Instruments = []string{"AAPL"}
	cfg.Bench.Orders = 100_000
	cfg.Bench.Seed = 42
	cfg.Bench.BasePrice = 100.0
	cfg.Bench.PriceBand = 0.5
	cfg.Bench.MaxQuantity = 100
	cfg.Bench.ResultsPath = "benchmark_results.txt"
	cfg.Logging.Level = "info"
	return &cfg
}

// LoadConfig reads and parses the yaml config at path, filling unset fields
// from Default and validating the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if len(c.Bench.Instruments) == 0 {
		return fmt.Errorf("at least one instrument is required")
	}
	seen := make(map[string]struct{}, len(c.Bench.Instruments))
	for _, instrument := range c.Bench.Instruments {
		if instrument == "" {
			return fmt.Errorf("instrument names must be non-empty")
		}
		if _, dup := seen[instrument]; dup {
			return fmt.Errorf("duplicate instrument: %s", instrument)
		}
		seen[instrument] = struct{}{}
	}

	if c.Bench.Orders <= 0 {
		return fmt.Errorf("orders must be positive, got %d", c.Bench.Orders)
	}
	if c.Bench.BasePrice <= 0 {
		return fmt.Errorf("base price must be positive, got %f", c.Bench.BasePrice)
	}
	if c.Bench.PriceBand < 0 {
		return fmt.Errorf("price band must not be negative, got %f", c.Bench.PriceBand)
	}
	if c.Bench.PriceBand >= c.Bench.BasePrice {
		return fmt.Errorf("price band %f would allow non-positive prices", c.Bench.PriceBand)
	}
	if c.Bench.MaxQuantity == 0 {
		return fmt.Errorf("max quantity must be positive")
	}
	if c.Bench.ResultsPath == "" {
		return fmt.Errorf("results path is required")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.Logging.Level)
	}

	return nil
}
