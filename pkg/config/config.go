// Package config loads the announcer's YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values can be written as "90s" or
// "10m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)

	return nil
}

func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

type Config struct {
	// Stations are the CRS codes to monitor.
	Stations []string `yaml:"stations"`

	Voice VoiceConfig `yaml:"voice"`

	Source SourceConfig `yaml:"source"`

	Announcements AnnouncementsConfig `yaml:"announcements"`

	// Journal enables the MongoDB announcement journal.
	Journal bool `yaml:"journal"`
}

type VoiceConfig struct {
	ID string `yaml:"id"`

	// Chime is "none", "three" or "four".
	Chime string `yaml:"chime"`

	// LegacyTOCNames announces operators under their franchise-era names.
	LegacyTOCNames bool `yaml:"legacy_toc_names"`
}

type SourceConfig struct {
	BaseURL        string `yaml:"base_url"`
	MaxServices    int    `yaml:"max_services"`
	TimeWindowMins int    `yaml:"time_window_mins"`

	// Cache enables the shared Redis board cache.
	Cache    bool     `yaml:"cache"`
	CacheTTL Duration `yaml:"cache_ttl"`
}

type AnnouncementsConfig struct {
	NextTrains        bool `yaml:"next_trains"`
	ApproachingTrains bool `yaml:"approaching_trains"`
	StandingTrains    bool `yaml:"standing_trains"`
	DisruptedTrains   bool `yaml:"disrupted_trains"`

	PollInterval  Duration `yaml:"poll_interval"`
	SweepInterval Duration `yaml:"sweep_interval"`
	Cooldown      Duration `yaml:"cooldown"`

	// SettleTime is how long a train must have been at the platform
	// before it is announced as standing rather than approaching.
	SettleTime Duration `yaml:"settle_time"`

	// StandardTTL and DisruptedTTL bound how long played announcements
	// stay suppressed.
	StandardTTL  Duration `yaml:"standard_ttl"`
	DisruptedTTL Duration `yaml:"disrupted_ttl"`

	// Lookahead is how close to departure a train must be before its
	// next-train announcement plays.
	Lookahead Duration `yaml:"lookahead"`

	// MinDelay is the threshold for disruption announcements.
	MinDelay Duration `yaml:"min_delay"`

	// ViaPoints includes the routing "via" stations in announcements.
	ViaPoints bool `yaml:"via_points"`

	// ShortPlatformsAfterSplit repeats short-platform advice for stops
	// served by a detaching portion.
	ShortPlatformsAfterSplit bool `yaml:"short_platforms_after_split"`

	// UnconfirmedPlatforms announces next trains before the feed has
	// confirmed which platform they will use.
	UnconfirmedPlatforms bool `yaml:"unconfirmed_platforms"`
}

// Default returns the configuration used when a field is absent from the
// file.
func Default() Config {
	return Config{
		Voice: VoiceConfig{
			ID:    "amey-phil",
			Chime: "four",
		},
		Source: SourceConfig{
			MaxServices:    10,
			TimeWindowMins: 30,
			CacheTTL:       Duration(10 * time.Second),
		},
		Announcements: AnnouncementsConfig{
			NextTrains:        true,
			ApproachingTrains: true,
			StandingTrains:    true,
			DisruptedTrains:   true,
			PollInterval:      Duration(10 * time.Second),
			SweepInterval:     Duration(time.Minute),
			Cooldown:          Duration(5 * time.Second),
			SettleTime:        Duration(20 * time.Second),
			StandardTTL:       Duration(time.Hour),
			DisruptedTTL:      Duration(10 * time.Minute),
			Lookahead:         Duration(4 * time.Minute),
			MinDelay:          Duration(5 * time.Minute),

			ViaPoints:                true,
			ShortPlatformsAfterSplit: true,
		},
	}
}

// Load reads and validates a configuration file. Fields absent from the
// file keep their defaults; ANNOUNCER_STATION adds one station without
// editing the file.
func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, err
	}

	if station := os.Getenv("ANNOUNCER_STATION"); station != "" {
		config.Stations = append(config.Stations, station)
	}

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

func (c Config) Validate() error {
	if len(c.Stations) == 0 {
		return fmt.Errorf("no stations configured")
	}

	for _, crs := range c.Stations {
		if len(crs) != 3 {
			return fmt.Errorf("station %q is not a CRS code", crs)
		}
	}

	switch c.Voice.Chime {
	case "none", "three", "four":
	default:
		return fmt.Errorf("unknown chime style %q", c.Voice.Chime)
	}

	if c.Announcements.PollInterval.AsDuration() <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}

	return nil
}
