package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseURL      string `json:"base_url"`
	DelaySeconds int    `json:"delay_seconds"`
}

func TestLoadWithLocalOverride(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "muscraper.json5")

	err := os.WriteFile(name, []byte(`{
		// checked-in defaults
		base_url: "https://www.mangaupdates.com",
		delay_seconds: 10,
	}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "muscraper.local.json5"), []byte(`{
		delay_seconds: 2,
	}`), 0600)
	require.NoError(t, err)

	config, err := Load[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "https://www.mangaupdates.com", config.BaseURL)
	require.Equal(t, 2, config.DelaySeconds)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
