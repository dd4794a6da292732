// Package config loads connection profiles for pdooci from YAML files and PDOOCI_*
// environment variables, with passwords optionally kept in the OS keyring.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pdooci/pdooci"
	"github.com/pdooci/pdooci/logger"
	"github.com/sirupsen/logrus"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// KeyringService is the OS keyring service passwords are stored under, one entry per
// profile name.
const KeyringService = "pdooci"

// Config represents the file configuration.
type Config struct {
	Profiles []Profile `mapstructure:"profiles" yaml:"profiles"`
	Default  string    `mapstructure:"default" yaml:"default"`
	Log      LogConfig `mapstructure:"log" yaml:"log"`
}

// Profile is one saved connection.
type Profile struct {
	Name       string `mapstructure:"name" yaml:"name"`
	DataSource string `mapstructure:"dsn" yaml:"dsn"`
	User       string `mapstructure:"user" yaml:"user"`
	// Password is read from the keyring when empty
	Password   string `mapstructure:"password" yaml:"password,omitempty"`
	Autocommit *bool  `mapstructure:"autocommit" yaml:"autocommit,omitempty"`
	Case       string `mapstructure:"case" yaml:"case,omitempty"`
	Persistent bool   `mapstructure:"persistent" yaml:"persistent,omitempty"`
}

// LogConfig selects the logger backend: std, zap, zerolog, logrus or slog.
type LogConfig struct {
	Backend              string        `mapstructure:"backend" yaml:"backend"`
	Level                string        `mapstructure:"level" yaml:"level"`
	SlowThreshold        time.Duration `mapstructure:"slow_threshold" yaml:"slow_threshold"`
	Colorful             bool          `mapstructure:"colorful" yaml:"colorful"`
	ParameterizedQueries bool          `mapstructure:"parameterized_queries" yaml:"parameterized_queries"`
	// Output defaults to stdout
	Output io.Writer `mapstructure:"-" yaml:"-"`
}

// Profile returns the named profile; an empty name picks Default, then the first one.
func (c *Config) Profile(name string) (*Profile, error) {
	if name == "" {
		name = c.Default
	}
	if name == "" && len(c.Profiles) > 0 {
		return &c.Profiles[0], nil
	}
	for i := range c.Profiles {
		if c.Profiles[i].Name == name {
			return &c.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("profile %q not found", name)
}

// HasProfile checks if a profile with the given name already exists.
func (c *Config) HasProfile(name string) bool {
	_, err := c.Profile(name)
	return err == nil && name != ""
}

// ResolvePassword returns the profile password, looking it up in the keyring when the
// profile carries none. A missing keyring entry is an empty password, which Oracle
// external authentication accepts.
func (p Profile) ResolvePassword() (string, error) {
	if p.Password != "" {
		return p.Password, nil
	}
	pw, err := keyring.Get(KeyringService, p.Name)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("keyring %s/%s: %w", KeyringService, p.Name, err)
	}
	return pw, nil
}

// StorePassword saves password in the keyring under the profile name.
func StorePassword(profile, password string) error {
	if err := keyring.Set(KeyringService, profile, password); err != nil {
		return fmt.Errorf("keyring %s/%s: %w", KeyringService, profile, err)
	}
	return nil
}

// Options turns the profile settings into connection options.
func (p Profile) Options() ([]pdooci.ConfigOption, error) {
	var opts []pdooci.ConfigOption
	if p.Autocommit != nil {
		opts = append(opts, pdooci.WithAutocommit(*p.Autocommit))
	}
	if p.Case != "" {
		kc, err := pdooci.ParseCase(p.Case)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Name, err)
		}
		opts = append(opts, pdooci.WithCase(kc))
	}
	if p.Persistent {
		opts = append(opts, pdooci.WithPersistent())
	}
	return opts, nil
}

// Open connects with the profile. opts are applied after the profile's own options.
func (p Profile) Open(ctx context.Context, opts ...pdooci.ConfigOption) (*pdooci.Conn, error) {
	pw, err := p.ResolvePassword()
	if err != nil {
		return nil, err
	}
	own, err := p.Options()
	if err != nil {
		return nil, err
	}
	return pdooci.OpenContext(ctx, p.DataSource, p.User, pw, append(own, opts...)...)
}

// Build creates the configured logger backend.
func (l LogConfig) Build() (logger.Interface, error) {
	level := logger.DefaultLogLevel
	if l.Level != "" {
		var err error
		if level, err = logger.ParseLevel(l.Level); err != nil {
			return nil, err
		}
	}
	config := logger.Config{
		SlowThreshold:        l.SlowThreshold,
		Colorful:             l.Colorful,
		ParameterizedQueries: l.ParameterizedQueries,
		LogLevel:             level,
	}

	w := l.Output
	if w == nil {
		w = os.Stdout
	}

	switch strings.ToLower(l.Backend) {
	case "", "std":
		return logger.New(log.New(w, "\r\n", log.LstdFlags), config), nil
	case "zap":
		if l.Output == nil {
			return logger.NewZapLoggerWithConfig(config)
		}
		core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(w), logger.ZapLevel(level))
		return logger.NewZapLogger(zap.New(core), config), nil
	case "zerolog":
		return logger.NewZerologConsole(w, config), nil
	case "logrus":
		lg := logrus.New()
		lg.SetOutput(w)
		lg.SetLevel(logger.LogrusLevel(level))
		return logger.NewLogrusLogger(lg, config), nil
	case "slog":
		return logger.NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil)), config), nil
	}
	return nil, fmt.Errorf("unknown log backend %q", l.Backend)
}
