package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete btcwatch configuration.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Advisor  AdvisorConfig  `yaml:"advisor"`
	Signal   SignalConfig   `yaml:"signal"`
	Server   ServerConfig   `yaml:"server"`
}

// ProviderConfig configures the market data provider client.
type ProviderConfig struct {
	BaseURL     string        `yaml:"base_url"`
	UserAgent   string        `yaml:"user_agent"`
	TimeoutSecs int           `yaml:"timeout_secs"` // Per-request timeout
	RPS         float64       `yaml:"rps"`          // Requests per second (free tier)
	Burst       int           `yaml:"burst"`        // Burst capacity
	Circuit     CircuitConfig `yaml:"circuit"`
}

// CircuitConfig configures the provider circuit breaker.
type CircuitConfig struct {
	FailureThreshold int `yaml:"failure_threshold"` // Consecutive failures to open circuit
	OpenTimeoutSecs  int `yaml:"open_timeout_secs"` // Seconds before a recovery probe
}

// AdvisorConfig holds the momentum thresholds behind BUY/HOLD/REDUCE.
type AdvisorConfig struct {
	HourlyThreshold float64 `yaml:"hourly_threshold"` // Percent, symmetric around zero
	DailyThreshold  float64 `yaml:"daily_threshold"`
	WeeklyThreshold float64 `yaml:"weekly_threshold"` // Weekly context, rationale only
}

// SignalConfig holds the moving-average crossover parameters.
type SignalConfig struct {
	ShortWindow int     `yaml:"short_window"`
	LongWindow  int     `yaml:"long_window"`
	Hours       float64 `yaml:"hours"` // Default lookback for the price series
}

// ServerConfig configures the dashboard HTTP server.
type ServerConfig struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	ReadTimeoutSecs  int    `yaml:"read_timeout_secs"`
	WriteTimeoutSecs int    `yaml:"write_timeout_secs"`
	IdleTimeoutSecs  int    `yaml:"idle_timeout_secs"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Provider: ProviderConfig{
			BaseURL:     "https://api.coingecko.com/api/v3",
			UserAgent:   "btcwatch/1.0",
			TimeoutSecs: 10,
			RPS:         0.5, // Conservative for the free tier
			Burst:       2,
			Circuit: CircuitConfig{
				FailureThreshold: 5,
				OpenTimeoutSecs:  60,
			},
		},
		Advisor: AdvisorConfig{
			HourlyThreshold: 0.25,
			DailyThreshold:  0.5,
			WeeklyThreshold: 5.0,
		},
		Signal: SignalConfig{
			ShortWindow: 20,
			LongWindow:  60,
			Hours:       6.0,
		},
		Server: ServerConfig{
			Host:             "127.0.0.1",
			Port:             8000,
			ReadTimeoutSecs:  10,
			WriteTimeoutSecs: 10,
			IdleTimeoutSecs:  60,
		},
	}
}

// Load reads configuration from a YAML file layered over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url must not be empty")
	}
	if c.Provider.TimeoutSecs <= 0 {
		return fmt.Errorf("provider.timeout_secs must be positive, got %d", c.Provider.TimeoutSecs)
	}
	if c.Provider.RPS <= 0 {
		return fmt.Errorf("provider.rps must be positive, got %g", c.Provider.RPS)
	}
	if c.Provider.Burst <= 0 {
		return fmt.Errorf("provider.burst must be positive, got %d", c.Provider.Burst)
	}
	if c.Provider.Circuit.FailureThreshold <= 0 {
		return fmt.Errorf("provider.circuit.failure_threshold must be positive, got %d", c.Provider.Circuit.FailureThreshold)
	}
	if c.Advisor.HourlyThreshold <= 0 || c.Advisor.DailyThreshold <= 0 || c.Advisor.WeeklyThreshold <= 0 {
		return fmt.Errorf("advisor thresholds must be positive")
	}
	if c.Signal.ShortWindow <= 0 || c.Signal.LongWindow <= 0 {
		return fmt.Errorf("signal windows must be positive")
	}
	if c.Signal.ShortWindow >= c.Signal.LongWindow {
		return fmt.Errorf("signal.short_window %d must be below long_window %d", c.Signal.ShortWindow, c.Signal.LongWindow)
	}
	if c.Signal.Hours <= 0 {
		return fmt.Errorf("signal.hours must be positive, got %g", c.Signal.Hours)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}
