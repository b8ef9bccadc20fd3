package dsdneo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCCCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cc.cache")

	freqs := []uint64{851_000_000, 852_000_000, 853_500_000}
	require.NoError(t, SaveCCCache(path, freqs))

	loaded, err := LoadCCCache(path)
	require.NoError(t, err)
	assert.Equal(t, freqs, loaded)
}

func TestCCCacheMissingFileIsNotError(t *testing.T) {
	loaded, err := LoadCCCache("/nonexistent/path/dsdneo_cc.cache")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestCCCachePathGrammar(t *testing.T) {
	got := CCCachePath("/var/cache/dsdneo", 0xBEE00, 0x1A2, 0, 0)
	assert.Equal(t, "/var/cache/dsdneo/p25_cc_BEE00_1A2.txt", got)
}

func TestCCCachePathGrammarWithRFSSSite(t *testing.T) {
	got := CCCachePath("/var/cache/dsdneo", 0xBEE00, 0x1A2, 3, 7)
	assert.Equal(t, "/var/cache/dsdneo/p25_cc_BEE00_1A2_R003_S007.txt", got)
}
