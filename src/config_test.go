package dsdneo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2_400_000, cfg.Input.SampleRate)
	assert.Equal(t, "fm", cfg.Demod.Mode)
	assert.Equal(t, 30, cfg.Trunking.HangTimeTicks)
	assert.Equal(t, 1, cfg.Trunking.DMRColorCode)
	assert.Equal(t, 48000, cfg.Audio.SampleRate)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dsdneo.yaml")
	yamlBody := "input:\n  sample_rate: 1000000\ndemod:\n  mode: qpsk\ntrunking:\n  enabled: true\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1000000, cfg.Input.SampleRate)
	assert.Equal(t, "qpsk", cfg.Demod.Mode)
	assert.True(t, cfg.Trunking.Enabled)
	// Unset sections keep the default's values.
	assert.Equal(t, 48000, cfg.Audio.SampleRate)
}

func TestLoadConfigFileMissingReturnsError(t *testing.T) {
	_, err := LoadConfigFile("/nonexistent/dsdneo.yaml")
	assert.Error(t, err)
}
