package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Source    SourceConfig    `yaml:"source" envconfig:"SOURCE"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	WebSocket WebSocketConfig `yaml:"websocket" envconfig:"WEBSOCKET"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration for the API.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"50"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"25"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// SourceConfig describes where transaction rows come from and how to
// interpret them. Exactly one of SpreadsheetID (Google Sheets) or
// WorkbookPath (local Excel workbook) must be set.
type SourceConfig struct {
	SpreadsheetID     string        `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID"`
	Worksheet         string        `yaml:"worksheet" envconfig:"WORKSHEET" default:"Sheet1"`
	WorkbookPath      string        `yaml:"workbook_path" envconfig:"WORKBOOK_PATH"`
	CredentialsFile   string        `yaml:"credentials_file" envconfig:"CREDENTIALS_FILE"`
	DateColumn        string        `yaml:"date_column" envconfig:"DATE_COLUMN" default:"Date" validate:"required"`
	CustomerColumn    string        `yaml:"customer_column" envconfig:"CUSTOMER_COLUMN" default:"Customer" validate:"required"`
	ExcludedCustomers []string      `yaml:"excluded_customers" envconfig:"EXCLUDED_CUSTOMERS"`
	RefreshInterval   time.Duration `yaml:"refresh_interval" envconfig:"REFRESH_INTERVAL" default:"60s"`
}

// ReportConfig configures static report generation and upload.
type ReportConfig struct {
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"build"`
	FileName    string `yaml:"file_name" envconfig:"FILE_NAME" default:"new_customers_report.html"`
	DriveFileID string `yaml:"drive_file_id" envconfig:"DRIVE_FILE_ID"`
}

// WebSocketConfig contains WebSocket configuration for the refresh hub.
type WebSocketConfig struct {
	ReadBufferSize  int           `yaml:"read_buffer_size" envconfig:"READ_BUFFER_SIZE" default:"1024"`
	WriteBufferSize int           `yaml:"write_buffer_size" envconfig:"WRITE_BUFFER_SIZE" default:"1024"`
	PingPeriod      time.Duration `yaml:"ping_period" envconfig:"PING_PERIOD" default:"30s"`
	PongWait        time.Duration `yaml:"pong_wait" envconfig:"PONG_WAIT" default:"60s"`
}

// Load loads configuration from environment variables (PULSE_ prefix),
// overlaid on an optional YAML file named by PULSE_CONFIG_FILE or
// config.yaml in the working directory. Environment values win.
func Load() (*Config, error) {
	var cfg Config

	configFile := os.Getenv("PULSE_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process("PULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Source.RefreshInterval < 15*time.Second {
		return fmt.Errorf("source: refresh_interval must be at least 15s, got %s", c.Source.RefreshInterval)
	}
	if c.Source.SpreadsheetID == "" && c.Source.WorkbookPath == "" {
		return fmt.Errorf("source: either spreadsheet_id or workbook_path must be set")
	}
	if c.Source.SpreadsheetID != "" && c.Source.CredentialsFile == "" && os.Getenv("GOOGLE_SERVICE_ACCOUNT") == "" {
		return fmt.Errorf("source: credentials_file or GOOGLE_SERVICE_ACCOUNT required for a Google Sheets source")
	}
	return nil
}

// Credentials returns the service account JSON, preferring the
// GOOGLE_SERVICE_ACCOUNT environment variable (the original deployment
// contract) over the configured credentials file.
func (c *SourceConfig) Credentials() ([]byte, error) {
	if raw := os.Getenv("GOOGLE_SERVICE_ACCOUNT"); raw != "" {
		return []byte(raw), nil
	}
	if c.CredentialsFile == "" {
		return nil, fmt.Errorf("no service account credentials configured")
	}
	data, err := os.ReadFile(c.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return data, nil
}
