package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/vrem/pkg/errors"
)

// EnvPrefix prefixes environment overrides, e.g. VREM_DATABASE_URI
const EnvPrefix = "VREM"

// FlagBindings maps configuration keys to the command line flags that
// override them
var FlagBindings = map[string]string{
	"database.uri":                  "db-uri",
	"database.name":                 "db-name",
	"database.collection":           "db-collection",
	"logging.level":                 "log-level",
	"logging.encoding":              "log-encoding",
	"observability.tracing.enabled": "trace",
	"observability.metrics_file":    "metrics-file",
	"import.reserved_prefix":        "reserved-prefix",
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty), VREM_* environment variables and the flags in flags
// (if not nil). ${VAR} references in the file are expanded.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, NewDefault())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the operator
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file").
				WithDetail("path", path)
		}
		v.SetConfigType("yaml")
		if err := v.ReadConfig(strings.NewReader(substituteEnvVars(string(data)))); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse config file").
				WithDetail("path", path)
		}
	}

	if flags != nil {
		for key, name := range FlagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to bind flag").
						WithDetail("flag", name)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("database.uri", cfg.Database.URI)
	v.SetDefault("database.name", cfg.Database.Name)
	v.SetDefault("database.collection", cfg.Database.Collection)
	v.SetDefault("database.connect_timeout", cfg.Database.ConnectTimeout)
	v.SetDefault("database.operation_timeout", cfg.Database.OperationTimeout)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.development", cfg.Logging.Development)
	v.SetDefault("logging.encoding", cfg.Logging.Encoding)
	v.SetDefault("logging.output_paths", cfg.Logging.OutputPaths)

	v.SetDefault("import.reserved_prefix", cfg.Import.ReservedPrefix)
	v.SetDefault("import.extensions", cfg.Import.Extensions)
	v.SetDefault("import.default_name", cfg.Import.DefaultName)

	tracing := cfg.Observability.Tracing
	v.SetDefault("observability.tracing.enabled", tracing.Enabled)
	v.SetDefault("observability.tracing.service_name", tracing.ServiceName)
	v.SetDefault("observability.tracing.service_version", tracing.ServiceVersion)
	v.SetDefault("observability.tracing.environment", tracing.Environment)
	v.SetDefault("observability.tracing.sampling_rate", tracing.SamplingRate)
	v.SetDefault("observability.tracing.exporter", tracing.Exporter)
	v.SetDefault("observability.tracing.pretty_print", tracing.PrettyPrint)
	v.SetDefault("observability.metrics_file", cfg.Observability.MetricsFile)
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
