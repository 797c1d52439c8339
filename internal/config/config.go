package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration. Environment variables
// (prefix RISKDESK_) take precedence over the optional yaml file.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

// SecurityConfig contains rate limiting configuration.
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig controls the request rate limiter.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/riskdesk.log"`
}

// DataConfig locates the three source workbooks and the export scratch
// directory. Paths may be relative; they resolve against the working
// directory at load time.
type DataConfig struct {
	CorrelationFile string `yaml:"correlation_file" envconfig:"CORRELATION_FILE" default:"corr_ptf.xlsx"`
	StressFile      string `yaml:"stress_file" envconfig:"STRESS_FILE" default:"stress_test_bystrat.xlsx"`
	LegendFile      string `yaml:"legend_file" envconfig:"LEGEND_FILE" default:"Legenda.xlsx"`
	ExportDir       string `yaml:"export_dir" envconfig:"EXPORT_DIR" default:"exports"`
}

// Load builds the configuration from the environment, overlaid on the
// optional riskdesk.yml config file.
func Load() (*Config, error) {
	cfg := &Config{}

	if data, err := os.ReadFile(configFilePath()); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("RISKDESK", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func configFilePath() string {
	if p := os.Getenv("RISKDESK_CONFIG"); p != "" {
		return p
	}
	return "riskdesk.yml"
}

func (c *Config) resolvePaths() error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	for _, p := range []*string{
		&c.Data.CorrelationFile,
		&c.Data.StressFile,
		&c.Data.LegendFile,
		&c.Data.ExportDir,
	} {
		if !filepath.IsAbs(*p) {
			*p = filepath.Join(wd, *p)
		}
	}
	return nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive, got %v", c.Security.RateLimit.RPS)
	}
	return nil
}
