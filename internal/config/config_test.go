package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeFile(t, "schedconf.yaml", `
version: 1
bus:
  kind: nats
  url: nats://localhost:4222
  prefix: scheduler
timeout_seconds: 30
science_file: science.yaml
events:
  postgres: true
fields:
  resolve: true
  dsn: host=db.local dbname=fields
`)

	cfg, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "nats", cfg.BusKind())
	assert.Equal(t, "nats://localhost:4222", cfg.Bus.URL)
	assert.Equal(t, "scheduler", cfg.Bus.Prefix)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, "science.yaml", cfg.ScienceFile)
	assert.True(t, cfg.Events.Postgres)
	assert.True(t, cfg.Fields.Resolve)
	assert.Equal(t, "host=db.local dbname=fields", cfg.Fields.DSN)
}

func TestLoadSettingsDefaults(t *testing.T) {
	path := writeFile(t, "schedconf.yaml", "version: 1\n")

	cfg, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "mqtt", cfg.BusKind())
	assert.Equal(t, 180*time.Second, cfg.Timeout())
}

func TestLoadSettingsBadVersion(t *testing.T) {
	path := writeFile(t, "schedconf.yaml", "version: 2\n")

	_, err := LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported schedconf.yaml version")
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadScience(t *testing.T) {
	path := writeFile(t, "science.yaml", `
version: 1
general:
  - name: WideFastDeep
    sky_region:
      selections:
        0:
          limit_type: Dec
          minimum_limit: -60
          maximum_limit: 0
    filters:
      g:
        name: g
        num_visits: 10
        exposures: [15, 15]
    scheduling:
      max_num_targets: 100
      airmass_bonus: 0.5
sequence:
  - name: DeepDrilling
    sky_user_regions: [2412, 290]
    sub_sequences:
      0:
        name: pairs
        filters: [r, g]
        visits_per_filter: [1, 1]
        num_events: 20
`)

	sci, err := LoadScience(path)
	require.NoError(t, err)

	require.Len(t, sci.General, 1)
	gen := sci.General[0]
	assert.Equal(t, "WideFastDeep", gen.Name)
	assert.Equal(t, "Dec", gen.SkyRegion.Selections[0].LimitType)
	assert.Equal(t, -60.0, gen.SkyRegion.Selections[0].MinimumLimit)
	assert.Equal(t, 10, gen.Filters["g"].NumVisits)
	assert.Equal(t, []float64{15, 15}, gen.Filters["g"].Exposures)
	assert.Equal(t, 100, gen.Scheduling.MaxNumTargets)

	require.Len(t, sci.Sequence, 1)
	seq := sci.Sequence[0]
	assert.Equal(t, []int{2412, 290}, seq.SkyUserRegions)
	assert.Equal(t, []string{"r", "g"}, seq.SubSequences[0].Filters)
	assert.Equal(t, 20, seq.SubSequences[0].NumEvents)
}

func TestLoadScienceBadVersion(t *testing.T) {
	path := writeFile(t, "science.yaml", "version: 0\n")

	_, err := LoadScience(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported science file version")
}
