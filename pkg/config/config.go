package config

import (
	"fmt"
	"time"

	"github.com/ajitpratap0/vrem/pkg/errors"
	"github.com/ajitpratap0/vrem/pkg/logger"
	"github.com/ajitpratap0/vrem/pkg/observability"
)

// Config is the complete configuration of the vrem command
type Config struct {
	// Database holds the MongoDB connection settings
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Logging configures the global zap logger
	Logging logger.Config `mapstructure:"logging" yaml:"logging"`

	// Import controls the folder importer
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	// Observability controls tracing and the metrics dump
	Observability ObservabilityConfig `mapstructure:"observability" yaml:"observability"`
}

// DatabaseConfig contains the MongoDB settings
type DatabaseConfig struct {
	// URI is a MongoDB connection string
	URI string `mapstructure:"uri" yaml:"uri"`
	// Name of the database holding exhibitions
	Name string `mapstructure:"name" yaml:"name"`
	// Collection holding one document per exhibition
	Collection string `mapstructure:"collection" yaml:"collection"`
	// ConnectTimeout bounds connecting and the initial ping
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" yaml:"connect_timeout"`
	// OperationTimeout bounds each store operation
	OperationTimeout time.Duration `mapstructure:"operation_timeout" yaml:"operation_timeout"`
}

// ImportConfig contains folder importer settings
type ImportConfig struct {
	// ReservedPrefix marks room directories the importer ignores
	ReservedPrefix string `mapstructure:"reserved_prefix" yaml:"reserved_prefix"`
	// Extensions lists the image file extensions that become exhibits
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
	// DefaultName names an exhibition imported without --name
	DefaultName string `mapstructure:"default_name" yaml:"default_name"`
}

// ObservabilityConfig contains tracing and metrics settings
type ObservabilityConfig struct {
	Tracing observability.Config `mapstructure:"tracing" yaml:"tracing"`
	// MetricsFile, when set, receives a Prometheus textfile dump after each run
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file"`
}

// NewDefault returns the configuration used when nothing is overridden
func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{
			URI:              "mongodb://localhost:27017",
			Name:             "vrem",
			Collection:       "exhibitions",
			ConnectTimeout:   10 * time.Second,
			OperationTimeout: 30 * time.Second,
		},
		Logging: logger.DefaultConfig(),
		Import: ImportConfig{
			ReservedPrefix: "__",
			Extensions:     []string{"png", "jpg", "jpeg"},
			DefaultName:    "default-name",
		},
		Observability: ObservabilityConfig{
			Tracing: observability.DefaultConfig(),
		},
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Database.URI == "" {
		return errors.New(errors.ErrorTypeConfig, "database.uri is required")
	}
	if c.Database.Name == "" {
		return errors.New(errors.ErrorTypeConfig, "database.name is required")
	}
	if c.Database.Collection == "" {
		return errors.New(errors.ErrorTypeConfig, "database.collection is required")
	}
	if c.Database.ConnectTimeout <= 0 {
		return errors.New(errors.ErrorTypeConfig, "database.connect_timeout must be positive")
	}
	if c.Database.OperationTimeout <= 0 {
		return errors.New(errors.ErrorTypeConfig, "database.operation_timeout must be positive")
	}
	if len(c.Import.Extensions) == 0 {
		return errors.New(errors.ErrorTypeConfig, "import.extensions must not be empty")
	}
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return errors.New(errors.ErrorTypeConfig, fmt.Sprintf("logging.encoding must be json or console, got %q", c.Logging.Encoding))
	}
	if rate := c.Observability.Tracing.SamplingRate; rate < 0 || rate > 1 {
		return errors.New(errors.ErrorTypeConfig, "observability.tracing.sampling_rate must be between 0 and 1")
	}
	return nil
}
