// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Starter Contributors

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	apperr "github.com/naranyala/webui-starter/pkg/errors"
)

// Config is the top-level application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app" yaml:"app"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
}

// AppConfig identifies the application.
type AppConfig struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Version string `mapstructure:"version" yaml:"version"`
}

// DatabaseConfig locates the user store.
type DatabaseConfig struct {
	Path             string `mapstructure:"path" yaml:"path"`
	CreateSampleData bool   `mapstructure:"create_sample_data" yaml:"create_sample_data"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	File   string `mapstructure:"file" yaml:"file"`
	Append bool   `mapstructure:"append" yaml:"append"`
}

// ServerConfig controls the local HTTP bridge.
type ServerConfig struct {
	Listen      string   `mapstructure:"listen" yaml:"listen"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// EnvPrefix is prepended to every environment override, e.g.
// STARTER_DATABASE_PATH.
const EnvPrefix = "STARTER"

// legacyEnv maps keys to the unprefixed variables older deployments set.
var legacyEnv = map[string]string{
	"database.path": "DATABASE_PATH",
	"logging.file":  "LOG_FILE",
	"logging.level": "LOG_LEVEL",
}

// SetDefaults registers every key's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "starter")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("database.path", "./app.db")
	v.SetDefault("database.create_sample_data", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "./app.log")
	v.SetDefault("logging.append", true)
	v.SetDefault("server.listen", "127.0.0.1:18790")
	v.SetDefault("server.cors_origins", []string{"http://localhost:4200"})
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides (prefix STARTER_).
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith is Load on a caller-owned viper instance, so flags bound to v by
// the CLI take part in resolution.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, prefixed, env)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, readError(path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperr.FromSerialization(err).WithContext("stage", "unmarshal")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		joined := errors.Join(errs...)
		first := apperr.ValueOf(errs[0])
		val := apperr.NewValue(apperr.CodeValidationFailed, "invalid configuration").
			WithCause(joined.Error())
		if field, ok := first.Field(); ok {
			val = val.WithField(field)
		}
		return nil, apperr.Wrap(apperr.KindValidation, val, joined)
	}

	return &cfg, nil
}

// Default returns the built-in configuration, ignoring files and environment.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func readError(path string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return apperr.FromIO(err)
	}
	return apperr.FromSerialization(err).WithContext("path", path)
}

// Validate checks the configuration for logical errors.
// It returns a slice of all validation errors found, collecting all issues
// rather than stopping at the first one. Each error names its key as field.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateApp()...)
	errs = append(errs, c.validateDatabase()...)
	errs = append(errs, c.validateLogging()...)
	errs = append(errs, c.validateServer()...)

	return errs
}

func invalid(key, format string, args ...any) error {
	return apperr.ValidationFailed(key, fmt.Sprintf("config: "+key+" "+format, args...))
}

func (c *Config) validateApp() []error {
	if strings.TrimSpace(c.App.Name) == "" {
		return []error{invalid("app.name", "must not be empty")}
	}
	return nil
}

func (c *Config) validateDatabase() []error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return []error{invalid("database.path", "must not be empty")}
	}
	return nil
}

// LogLevels lists the accepted logging.level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

func (c *Config) validateLogging() []error {
	for _, l := range LogLevels {
		if strings.EqualFold(c.Logging.Level, l) {
			return nil
		}
	}
	return []error{invalid("logging.level", "must be one of [%s], got %q", strings.Join(LogLevels, ", "), c.Logging.Level)}
}

func (c *Config) validateServer() []error {
	var errs []error

	if c.Server.Listen == "" {
		errs = append(errs, invalid("server.listen", "must not be empty"))
	} else {
		_, portStr, err := net.SplitHostPort(c.Server.Listen)
		if err != nil {
			errs = append(errs, invalid("server.listen", "must be a valid host:port address, got %q", c.Server.Listen))
		} else if port, err := strconv.Atoi(portStr); err != nil {
			errs = append(errs, invalid("server.listen", "port must be a number, got %q", portStr))
		} else if port < 1 || port > 65535 {
			errs = append(errs, invalid("server.listen", "port must be between 1 and 65535, got %d", port))
		}
	}

	for i, origin := range c.Server.CORSOrigins {
		if origin == "*" {
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, invalid("server.cors_origins", "entry %d must be an http(s) origin or \"*\", got %q", i, origin))
		}
	}

	return errs
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, apperr.FromSerialization(err)
	}
	return out, nil
}
