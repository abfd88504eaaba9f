// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/naranyala/webui-starter/internal/config"
	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "starter", cfg.App.Name)
	assert.Equal(t, "0.1.0", cfg.App.Version)
	assert.Equal(t, "./app.db", cfg.Database.Path)
	assert.True(t, cfg.Database.CreateSampleData)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "./app.log", cfg.Logging.File)
	assert.True(t, cfg.Logging.Append)
	assert.Equal(t, "127.0.0.1:18790", cfg.Server.Listen)
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.Server.CORSOrigins)
}

func TestDefault_MatchesLoad(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg, config.Default())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "starter.yaml")

	content := `
database:
  path: "/var/lib/starter/users.db"
  create_sample_data: false
logging:
  level: debug
server:
  listen: "0.0.0.0:9999"
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/starter/users.db", cfg.Database.Path)
	assert.False(t, cfg.Database.CreateSampleData)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.Listen)
	assert.Equal(t, "./app.log", cfg.Logging.File)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("STARTER_SERVER_LISTEN", "10.0.0.1:8080")
	t.Setenv("STARTER_DATABASE_PATH", "/tmp/env.db")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:8080", cfg.Server.Listen)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
}

func TestLoad_LegacyEnv(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/legacy.db")
	t.Setenv("LOG_FILE", "/tmp/legacy.log")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/legacy.db", cfg.Database.Path)
	assert.Equal(t, "/tmp/legacy.log", cfg.Logging.File)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_PrefixedEnvWinsOverLegacy(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/legacy.db")
	t.Setenv("STARTER_DATABASE_PATH", "/tmp/prefixed.db")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/prefixed.db", cfg.Database.Path)
}

func TestLoadWith_SharedViper(t *testing.T) {
	v := viper.New()
	v.Set("database.path", "/tmp/flag.db")

	cfg, err := config.LoadWith(v, "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/flag.db", cfg.Database.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindLogging, ae.Kind())
	assert.Equal(t, apperr.CodeInternal, ae.Code())
}

func TestLoad_MalformedFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "starter.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("database: [unterminated\n"), 0o644))

	_, err := config.Load(cfgPath)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeSerializationFailed, apperr.CodeOf(err))
}

func TestLoad_ValidationCalledAtLoadTime(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "starter.yaml")
	content := `
logging:
  level: "chatty"
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	_, err := config.Load(cfgPath)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidationFailed, apperr.CodeOf(err))
	assert.Contains(t, err.Error(), "logging.level")

	field, ok := apperr.ValueOf(err).Field()
	assert.True(t, ok)
	assert.Equal(t, "logging.level", field)
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.Empty(t, config.Default().Validate())
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"empty app name", func(c *config.Config) { c.App.Name = " " }, "app.name"},
		{"empty database path", func(c *config.Config) { c.Database.Path = "" }, "database.path"},
		{"unknown log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"empty listen", func(c *config.Config) { c.Server.Listen = "" }, "server.listen"},
		{"listen without port", func(c *config.Config) { c.Server.Listen = "localhost" }, "server.listen"},
		{"listen non-numeric port", func(c *config.Config) { c.Server.Listen = "localhost:http" }, "server.listen"},
		{"listen port out of range", func(c *config.Config) { c.Server.Listen = "localhost:70000" }, "server.listen"},
		{"origin without scheme", func(c *config.Config) { c.Server.CORSOrigins = []string{"localhost:4200"} }, "server.cors_origins"},
		{"origin with ftp scheme", func(c *config.Config) { c.Server.CORSOrigins = []string{"ftp://example.com"} }, "server.cors_origins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, apperr.CodeValidationFailed, apperr.CodeOf(errs[0]))
			field, _ := apperr.ValueOf(errs[0]).Field()
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestValidate_AcceptsWildcardAndUppercaseLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.CORSOrigins = []string{"*", "https://app.example.com"}
	cfg.Logging.Level = "DEBUG"
	cfg.Server.Listen = ":8080"

	assert.Empty(t, cfg.Validate())
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Default()
	cfg.App.Name = ""
	cfg.Database.Path = ""
	cfg.Logging.Level = "loud"

	assert.Len(t, cfg.Validate(), 3)
}

func TestConfig_YAML(t *testing.T) {
	cfg := config.Default()

	out, err := cfg.YAML()
	require.NoError(t, err)

	var decoded config.Config
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, *cfg, decoded)
	assert.Contains(t, string(out), "create_sample_data: true")
}

func TestDefaultConfigYAML_Loads(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "starter.yaml")
	require.NoError(t, os.WriteFile(cfgPath, config.DefaultConfigYAML, 0o600))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestBootstrapConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "starter.yaml")

	written := config.BootstrapConfig(cfgPath)
	assert.Equal(t, cfgPath, written)

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigYAML, data)

	info, err := os.Stat(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assert.Empty(t, config.BootstrapConfig(cfgPath), "existing file is left alone")
}
