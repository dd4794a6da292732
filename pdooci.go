// Package pdooci is a PDO-style adapter over an Oracle native client. Positional `?`
// placeholders are rewritten into named markers, binds are tracked per statement, and
// fetched rows are shaped by fetch mode.
package pdooci

import (
	"context"

	"github.com/pdooci/pdooci/logger"
)

// Config is the connection configuration built from ConfigOptions.
type Config struct {
	// Persistent shares one native pool per driver and DSN across connections
	Persistent bool
	// Autocommit is the initial autocommit flag, true by default
	Autocommit bool
	// Case is the initial key-case policy
	Case      Case
	Logger    logger.Interface
	Connector Connector
}

// ConfigOption use functional option for Config.
type ConfigOption func(c *Config)

// WithPersistent selects the persistent connect variant.
func WithPersistent() ConfigOption {
	return func(c *Config) {
		c.Persistent = true
	}
}

// WithAutocommit sets the initial autocommit flag.
func WithAutocommit(on bool) ConfigOption {
	return func(c *Config) {
		c.Autocommit = on
	}
}

// WithCase sets the initial key-case policy.
func WithCase(kc Case) ConfigOption {
	return func(c *Config) {
		c.Case = kc
	}
}

// WithLogger set logger.
func WithLogger(l logger.Interface) ConfigOption {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithConnector replaces the database/sql native client.
func WithConnector(connector Connector) ConfigOption {
	return func(c *Config) {
		c.Connector = connector
	}
}

func newConfig(opts []ConfigOption) *Config {
	c := &Config{
		Autocommit: true,
		Case:       CaseNatural,
		Logger:     logger.Default,
		Connector:  defaultConnector,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Open connects to dataSource, `[<driver>:]dbname=//host:port/service[;charset=XXX]`.
// The driver prefix names a registered dialect, DefaultDriver when absent.
func Open(dataSource, user, password string, opts ...ConfigOption) (*Conn, error) {
	return OpenContext(context.Background(), dataSource, user, password, opts...)
}
