package trade

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ygoncloud/YG-trade/marketdata"
)

// Config holds the portfolio settings read from the data directory's
// config.yaml. A missing file yields the defaults.
type Config struct {
	Currency       string   `yaml:"currency"`
	StartingEquity float64  `yaml:"starting_equity"`
	RiskFreeRate   float64  `yaml:"risk_free_rate"`
	Benchmarks     []string `yaml:"benchmarks"`
	CAPMBenchmark  string   `yaml:"capm_benchmark"`

	Symbols marketdata.Symbols `yaml:"symbols"`
}

// LoadConfig reads config from a YAML file, then fills defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	if cfg.StartingEquity <= 0 {
		cfg.StartingEquity = 100
	}
	if cfg.RiskFreeRate == 0 {
		cfg.RiskFreeRate = DefaultRiskFreeRate
	}
	if len(cfg.Benchmarks) == 0 {
		cfg.Benchmarks = []string{"IWO", "XBI", "SPY", "IWM"}
	}
	if cfg.CAPMBenchmark == "" {
		cfg.CAPMBenchmark = "^GSPC"
	}
	defaults := marketdata.Defaults()
	if cfg.Symbols.StooqAliases == nil {
		cfg.Symbols.StooqAliases = defaults.StooqAliases
	}
	if cfg.Symbols.StooqBlocklist == nil {
		cfg.Symbols.StooqBlocklist = defaults.StooqBlocklist
	}
	if cfg.Symbols.Proxies == nil {
		cfg.Symbols.Proxies = defaults.Proxies
	}

	return cfg, nil
}

// StartingCash returns the configured starting equity as money.
func (c *Config) StartingCash() Money {
	return M(c.StartingEquity, c.Currency)
}

// Validate checks the settings that have no sensible fallback.
func (c *Config) Validate() error {
	if c.StartingEquity <= 0 {
		return fmt.Errorf("starting_equity must be positive")
	}
	if c.RiskFreeRate < 0 || c.RiskFreeRate >= 1 {
		return fmt.Errorf("risk_free_rate must be a fraction in [0, 1)")
	}
	return nil
}
