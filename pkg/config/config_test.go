package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/vrem/pkg/errors"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, NewDefault(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vrem.yaml")
	cfg := NewDefault()
	cfg.Database.Name = "from-file"
	cfg.Database.Collection = "from-file"
	cfg.Database.ConnectTimeout = 3 * time.Second
	require.NoError(t, Save(path, cfg))

	t.Setenv("VREM_DATABASE_COLLECTION", "from-env")
	t.Setenv("VREM_DATABASE_URI", "mongodb://env:27017")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db-uri", "", "")
	require.NoError(t, flags.Parse([]string{"--db-uri", "mongodb://flag:27017"}))

	loaded, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "from-file", loaded.Database.Name)
	assert.Equal(t, "from-env", loaded.Database.Collection)
	assert.Equal(t, "mongodb://flag:27017", loaded.Database.URI)
	assert.Equal(t, 3*time.Second, loaded.Database.ConnectTimeout)
}

func TestLoad_UnsetFlagDoesNotOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db-name", "flag-default", "")
	require.NoError(t, flags.Parse(nil))

	t.Setenv("VREM_DATABASE_NAME", "from-env")
	loaded, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "from-env", loaded.Database.Name)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("VREM_LOGGING_ENCODING", "xml")
	_, err := Load("", nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty uri", func(c *Config) { c.Database.URI = "" }},
		{"empty database", func(c *Config) { c.Database.Name = "" }},
		{"zero timeout", func(c *Config) { c.Database.OperationTimeout = 0 }},
		{"no extensions", func(c *Config) { c.Import.Extensions = nil }},
		{"sampling rate", func(c *Config) { c.Observability.Tracing.SamplingRate = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, NewDefault().Validate())
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("VREM_TEST_HOST", "example")
	assert.Equal(t, "uri: mongodb://example/db", substituteEnvVars("uri: mongodb://${VREM_TEST_HOST}/db"))
	assert.Equal(t, "x: ${unterminated", substituteEnvVars("x: ${unterminated"))
}
