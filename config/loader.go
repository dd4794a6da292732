package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "pdooci"
	configType = "yaml"
	envPrefix  = "PDOOCI"
	// EnvProfile is the name of the profile built from PDOOCI_STR, PDOOCI_USER and PDOOCI_PWD
	EnvProfile = "env"
)

// Load reads the configuration from path, or from pdooci.yaml in the working directory
// and $HOME/.pdooci when path is empty. A missing default file yields an empty config.
// PDOOCI_LOG_* variables override the log section, and a profile named "env" is added
// when PDOOCI_STR is set.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.pdooci")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.backend", "std")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.slow_threshold", "200ms")
	v.SetDefault("log.colorful", false)
	v.SetDefault("log.parameterized_queries", false)

	cfg := &Config{}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if p, ok := FromEnv(); ok && !cfg.HasProfile(EnvProfile) {
		cfg.Profiles = append(cfg.Profiles, p)
	}
	return cfg, nil
}

// FromEnv builds the "env" profile from PDOOCI_STR, PDOOCI_USER and PDOOCI_PWD. It
// reports false when PDOOCI_STR is unset.
func FromEnv() (Profile, bool) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{"str", "user", "pwd"} {
		_ = v.BindEnv(key)
	}

	dsn := v.GetString("str")
	if dsn == "" {
		return Profile{}, false
	}
	return Profile{
		Name:       EnvProfile,
		DataSource: dsn,
		User:       v.GetString("user"),
		Password:   v.GetString("pwd"),
	}, true
}
