package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdooci/pdooci"
	_ "github.com/pdooci/pdooci/dialects/sqlite"
	"github.com/pdooci/pdooci/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

const sample = `
default: reporting
log:
  backend: zerolog
  level: info
  slow_threshold: 1s
profiles:
  - name: local
    dsn: oci:dbname=//localhost:1521/XEPDB1;charset=AL32UTF8
    user: scott
    password: tiger
  - name: reporting
    dsn: oci:dbname=//reports.example.com/REPORTS
    user: reader
    autocommit: false
    case: lower
    persistent: true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pdooci.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("PDOOCI_STR", "")
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	require.Len(t, cfg.Profiles, 2)
	assert.Equal(t, "zerolog", cfg.Log.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.Second, cfg.Log.SlowThreshold)

	p, err := cfg.Profile("")
	require.NoError(t, err)
	assert.Equal(t, "reporting", p.Name)
	require.NotNil(t, p.Autocommit)
	assert.False(t, *p.Autocommit)
	assert.True(t, p.Persistent)

	p, err = cfg.Profile("local")
	require.NoError(t, err)
	assert.Equal(t, "tiger", p.Password)
	assert.Nil(t, p.Autocommit)

	_, err = cfg.Profile("missing")
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PDOOCI_STR", "oci:dbname=//ci.example.com/FREEPDB1")
	t.Setenv("PDOOCI_USER", "ci")
	t.Setenv("PDOOCI_PWD", "secret")
	t.Setenv("PDOOCI_LOG_LEVEL", "error")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)

	p, err := cfg.Profile(EnvProfile)
	require.NoError(t, err)
	assert.Equal(t, Profile{
		Name:       EnvProfile,
		DataSource: "oci:dbname=//ci.example.com/FREEPDB1",
		User:       "ci",
		Password:   "secret",
	}, *p)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("PDOOCI_STR", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Profiles)
	assert.Equal(t, "std", cfg.Log.Backend)
	assert.Equal(t, 200*time.Millisecond, cfg.Log.SlowThreshold)
}

func TestResolvePassword(t *testing.T) {
	keyring.MockInit()

	pw, err := Profile{Name: "reporting", Password: "inline"}.ResolvePassword()
	require.NoError(t, err)
	assert.Equal(t, "inline", pw)

	pw, err = Profile{Name: "reporting"}.ResolvePassword()
	require.NoError(t, err)
	assert.Empty(t, pw)

	require.NoError(t, StorePassword("reporting", "from-keyring"))
	pw, err = Profile{Name: "reporting"}.ResolvePassword()
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", pw)
}

func TestOptions(t *testing.T) {
	off := false
	opts, err := Profile{Autocommit: &off, Case: "upper", Persistent: true}.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	_, err = Profile{Name: "bad", Case: "title"}.Options()
	var ue *pdooci.UsageError
	assert.ErrorAs(t, err, &ue)
}

func TestProfileOpen(t *testing.T) {
	keyring.MockInit()
	off := false
	p := Profile{
		Name:       "scratch",
		DataSource: "sqlite:dbname=" + filepath.Join(t.TempDir(), "scratch.db"),
		Autocommit: &off,
		Case:       "upper",
	}

	conn, err := p.Open(context.Background(), pdooci.WithLogger(logger.Discard))
	require.NoError(t, err)
	defer conn.Close()

	assert.True(t, conn.InTransaction())
	kc, _ := conn.GetAttribute(pdooci.AttrCase)
	assert.Equal(t, pdooci.CaseUpper, kc)
}

func TestBuildLogger(t *testing.T) {
	for _, backend := range []string{"", "std", "zap", "zerolog", "logrus", "slog"} {
		var buf bytes.Buffer
		l, err := LogConfig{Backend: backend, Level: "info", Output: &buf}.Build()
		require.NoError(t, err, backend)

		l.Info(context.Background(), "profile loaded")
		assert.Contains(t, buf.String(), "profile loaded", backend)
	}

	_, err := LogConfig{Backend: "syslog"}.Build()
	assert.Error(t, err)
	_, err = LogConfig{Level: "loud"}.Build()
	assert.Error(t, err)
}
