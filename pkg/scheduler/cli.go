package scheduler

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/davwheat/rail-announcements-sub000/pkg/announcement"
	"github.com/davwheat/rail-announcements-sub000/pkg/audio"
	"github.com/davwheat/rail-announcements-sub000/pkg/config"
	"github.com/davwheat/rail-announcements-sub000/pkg/database"
	"github.com/davwheat/rail-announcements-sub000/pkg/datasource"
	"github.com/davwheat/rail-announcements-sub000/pkg/journal"
	"github.com/davwheat/rail-announcements-sub000/pkg/redis_client"
	"github.com/davwheat/rail-announcements-sub000/pkg/stationdir"
	"github.com/davwheat/rail-announcements-sub000/pkg/voice"
)

// VoiceByID returns the announcement voice for a config id.
func VoiceByID(id string) (*voice.Voice, error) {
	switch id {
	case "amey-phil":
		return voice.Phil(), nil
	}

	return nil, fmt.Errorf("unknown voice %q", id)
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "scheduler",
		Usage: "Watch live departure boards and play station announcements",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run monitors for every configured station",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "config.yaml",
						Usage: "path to the announcer configuration file",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					if cfg.Source.Cache {
						if err := redis_client.Connect(); err != nil {
							return err
						}
					}
					if cfg.Journal {
						if err := database.Connect(); err != nil {
							return err
						}
					}

					manager, err := BuildManager(cfg)
					if err != nil {
						return err
					}

					ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
					defer stop()

					manager.Run(ctx)

					return nil
				},
			},
		},
	}
}

// BuildManager wires a Manager from configuration. Redis and MongoDB must
// already be connected when the matching features are enabled.
func BuildManager(cfg config.Config) (*Manager, error) {
	announcerVoice, err := VoiceByID(cfg.Voice.ID)
	if err != nil {
		return nil, err
	}

	builder := announcement.NewBuilder(announcerVoice)
	directory := stationdir.NewDirectory()

	client := datasource.NewDepartureBoardClient(cfg.Source.BaseURL)
	if cfg.Source.MaxServices > 0 {
		client.MaxServices = cfg.Source.MaxServices
	}
	if cfg.Source.TimeWindowMins > 0 {
		client.TimeWindowMins = cfg.Source.TimeWindowMins
	}

	var source datasource.Source = client
	if cfg.Source.Cache {
		source = datasource.NewCachedSource(source, cfg.Source.CacheTTL.AsDuration())
	}

	var recorder journal.Recorder = journal.NopRecorder{}
	if cfg.Journal {
		recorder = journal.MongoRecorder{}
	}

	monitors := make([]*StationMonitor, 0, len(cfg.Stations))
	for _, station := range cfg.Stations {
		monitorConfig := MonitorConfig{
			Station: station,

			PollInterval:  cfg.Announcements.PollInterval.AsDuration(),
			SweepInterval: cfg.Announcements.SweepInterval.AsDuration(),
			Lookahead:     cfg.Announcements.Lookahead.AsDuration(),
			MinDelay:      cfg.Announcements.MinDelay.AsDuration(),
			SettleTime:    cfg.Announcements.SettleTime.AsDuration(),
			Cooldown:      cfg.Announcements.Cooldown.AsDuration(),
			StandardTTL:   cfg.Announcements.StandardTTL.AsDuration(),
			DisruptedTTL:  cfg.Announcements.DisruptedTTL.AsDuration(),

			NextTrains:        cfg.Announcements.NextTrains,
			ApproachingTrains: cfg.Announcements.ApproachingTrains,
			StandingTrains:    cfg.Announcements.StandingTrains,
			DisruptedTrains:   cfg.Announcements.DisruptedTrains,

			ViaPoints:                cfg.Announcements.ViaPoints,
			ShortPlatformsAfterSplit: cfg.Announcements.ShortPlatformsAfterSplit,
			UnconfirmedPlatforms:     cfg.Announcements.UnconfirmedPlatforms,

			Chime:          voice.ChimeStyle(cfg.Voice.Chime),
			LegacyTOCNames: cfg.Voice.LegacyTOCNames,
		}

		monitors = append(monitors, NewStationMonitor(
			monitorConfig, source, builder, audio.LogRenderer{}, directory, recorder, nil,
		))
	}

	return NewManager(monitors), nil
}
