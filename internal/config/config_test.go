package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.Provider.BaseURL)
	assert.Equal(t, 0.25, cfg.Advisor.HourlyThreshold)
	assert.Equal(t, 0.5, cfg.Advisor.DailyThreshold)
	assert.Equal(t, 5.0, cfg.Advisor.WeeklyThreshold)
	assert.Equal(t, 20, cfg.Signal.ShortWindow)
	assert.Equal(t, 60, cfg.Signal.LongWindow)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "btcwatch.yaml")
	body := `
provider:
  base_url: https://example.test/api/v3
  timeout_secs: 5
advisor:
  weekly_threshold: 8.0
server:
  port: 9000
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/api/v3", cfg.Provider.BaseURL)
	assert.Equal(t, 5, cfg.Provider.TimeoutSecs)
	assert.Equal(t, 8.0, cfg.Advisor.WeeklyThreshold)
	assert.Equal(t, 9000, cfg.Server.Port)

	// Untouched sections keep their defaults.
	assert.Equal(t, Default().Signal, cfg.Signal)
	assert.Equal(t, Default().Advisor.HourlyThreshold, cfg.Advisor.HourlyThreshold)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"negative timeout", "provider:\n  timeout_secs: -1\n"},
		{"zero rps", "provider:\n  rps: 0\n"},
		{"short window above long", "signal:\n  short_window: 80\n"},
		{"bad port", "server:\n  port: 70000\n"},
		{"zero hours", "signal:\n  hours: 0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
