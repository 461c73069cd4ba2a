package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/plinth/pkg/config"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.New(config.WithDefaults(map[string]any{
		"app.key":                "",
		"http.trust_proxy":       false,
		"http.subdomain_offset":  2,
		"session.cookie":         "__sid",
		"session.max_age":        86400,
	}))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Int("http.subdomain_offset"))
	assert.False(t, cfg.Bool("http.trust_proxy"))
	assert.Equal(t, "__sid", cfg.String("session.cookie"))
}

func TestNew_UnknownKeysAreZero(t *testing.T) {
	t.Parallel()

	cfg, err := config.New()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.String("no.such.key"))
	assert.Equal(t, 0, cfg.Int("no.such.key"))
	assert.False(t, cfg.Bool("no.such.key"))
	assert.False(t, cfg.Exists("no.such.key"))
}

func TestNew_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	data := []byte("app:\n  key: supersecretsupersecretsupersecret11\nhttp:\n  trust_proxy: true\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := config.New(
		config.WithDefaults(map[string]any{
			"http.trust_proxy":      false,
			"http.subdomain_offset": 2,
		}),
		config.WithFile(path),
	)
	require.NoError(t, err)

	assert.True(t, cfg.Bool("http.trust_proxy"))
	assert.Equal(t, "supersecretsupersecretsupersecret11", cfg.String("app.key"))
	// untouched default survives
	assert.Equal(t, 2, cfg.Int("http.subdomain_offset"))
}

func TestNew_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.New(config.WithFile("/nonexistent/config.yml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrLoadFile)
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("PLINTHTEST_HTTP__TRUST_PROXY", "true")
	t.Setenv("PLINTHTEST_APP__KEY", "env-key")

	cfg, err := config.New(
		config.WithDefaults(map[string]any{"http.trust_proxy": false}),
		config.WithEnvPrefix("PLINTHTEST_"),
	)
	require.NoError(t, err)

	assert.True(t, cfg.Bool("http.trust_proxy"))
	assert.Equal(t, "env-key", cfg.String("app.key"))
}

func TestFromMap(t *testing.T) {
	t.Parallel()

	cfg := config.FromMap(map[string]any{"app.key": "abc"})
	assert.Equal(t, "abc", cfg.String("app.key"))
}
