package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "stations: [CLJ]\n")

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"CLJ"}, config.Stations)
	assert.Equal(t, "amey-phil", config.Voice.ID)
	assert.Equal(t, "four", config.Voice.Chime)
	assert.Equal(t, 10*time.Second, config.Announcements.PollInterval.AsDuration())
	assert.Equal(t, time.Minute, config.Announcements.SweepInterval.AsDuration())
	assert.Equal(t, 20*time.Second, config.Announcements.SettleTime.AsDuration())
	assert.Equal(t, time.Hour, config.Announcements.StandardTTL.AsDuration())
	assert.Equal(t, 10*time.Minute, config.Announcements.DisruptedTTL.AsDuration())
	assert.Equal(t, 4*time.Minute, config.Announcements.Lookahead.AsDuration())
	assert.True(t, config.Announcements.NextTrains)
	assert.True(t, config.Announcements.ViaPoints)
	assert.True(t, config.Announcements.ShortPlatformsAfterSplit)
	assert.False(t, config.Announcements.UnconfirmedPlatforms)
	assert.False(t, config.Journal)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
stations: [CLJ, BTN]
voice:
  chime: three
  legacy_toc_names: true
source:
  cache: true
  cache_ttl: 30s
announcements:
  poll_interval: 1m
  settle_time: 45s
  standard_ttl: 2h
  disrupted_ttl: 5m
  disrupted_trains: false
`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"CLJ", "BTN"}, config.Stations)
	assert.Equal(t, "three", config.Voice.Chime)
	assert.True(t, config.Voice.LegacyTOCNames)
	assert.True(t, config.Source.Cache)
	assert.Equal(t, 30*time.Second, config.Source.CacheTTL.AsDuration())
	assert.Equal(t, time.Minute, config.Announcements.PollInterval.AsDuration())
	assert.Equal(t, 45*time.Second, config.Announcements.SettleTime.AsDuration())
	assert.Equal(t, 2*time.Hour, config.Announcements.StandardTTL.AsDuration())
	assert.Equal(t, 5*time.Minute, config.Announcements.DisruptedTTL.AsDuration())
	assert.False(t, config.Announcements.DisruptedTrains)

	// Untouched fields keep their defaults.
	assert.True(t, config.Announcements.NextTrains)
}

func TestLoadStationFromEnvironment(t *testing.T) {
	t.Setenv("ANNOUNCER_STATION", "HHE")

	path := writeConfig(t, "stations: [CLJ]\n")

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"CLJ", "HHE"}, config.Stations)
}

func TestValidate(t *testing.T) {
	base := Default()
	base.Stations = []string{"CLJ"}
	require.NoError(t, base.Validate())

	noStations := base
	noStations.Stations = nil
	assert.Error(t, noStations.Validate())

	badCRS := base
	badCRS.Stations = []string{"CLAPHAM"}
	assert.Error(t, badCRS.Validate())

	badChime := base
	badChime.Voice.Chime = "five"
	assert.Error(t, badChime.Validate())

	badPoll := base
	badPoll.Announcements.PollInterval = 0
	assert.Error(t, badPoll.Validate())
}

func TestInvalidDuration(t *testing.T) {
	path := writeConfig(t, "stations: [CLJ]\nannouncements:\n  poll_interval: soon\n")

	_, err := Load(path)
	assert.Error(t, err)
}
