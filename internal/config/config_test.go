package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 4096, cfg.Defaults.Shots)
	assert.Equal(t, 1, cfg.Defaults.OptLevel)
	assert.Equal(t, 5, cfg.Defaults.TopK)
	assert.Empty(t, cfg.Provider.URL)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
provider:
  url: https://quantum.example.com/v1
  backend: simulator_a
  channel: cloud
defaults:
  shots: 1024
  opt_level: 2
  topk: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://quantum.example.com/v1", cfg.Provider.URL)
	assert.Equal(t, "simulator_a", cfg.Provider.Backend)
	assert.Equal(t, "cloud", cfg.Provider.Channel)
	assert.Equal(t, 1024, cfg.Defaults.Shots)
	assert.Equal(t, 2, cfg.Defaults.OptLevel)
	assert.Equal(t, 3, cfg.Defaults.TopK)
}

func TestLoadMissingNamedFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"zero shots":    "defaults: {shots: 0, opt_level: 1, topk: 5}",
		"bad opt level": "defaults: {shots: 100, opt_level: 4, topk: 5}",
		"zero topk":     "defaults: {shots: 100, opt_level: 1, topk: 0}",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "provider: [not a mapping"))
	assert.Error(t, err)
}

func TestEnvOverridesToken(t *testing.T) {
	path := writeConfig(t, "provider: {token: from-file}")

	t.Setenv("MOTIFQU_TOKEN", "from-env")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Provider.Token)
}

func TestEnvTokenFallbackChain(t *testing.T) {
	t.Setenv("MOTIFQU_TOKEN", "")
	t.Setenv("IBMQ_TOKEN", "ibm-secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ibm-secret", cfg.Provider.Token)

	// MOTIFQU_TOKEN wins when both are set.
	t.Setenv("MOTIFQU_TOKEN", "native-secret")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "native-secret", cfg.Provider.Token)
}
