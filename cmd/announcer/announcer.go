package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/davwheat/rail-announcements-sub000/pkg/announcement"
	"github.com/davwheat/rail-announcements-sub000/pkg/audio"
	"github.com/davwheat/rail-announcements-sub000/pkg/scheduler"
	"github.com/davwheat/rail-announcements-sub000/pkg/voice"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("ANNOUNCER_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("ANNOUNCER_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "announcer",
		Description: "Station public address announcement generator and live scheduler",

		Commands: []*cli.Command{
			scheduler.RegisterCLI(),
			speakCommand(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

// speakCommand builds a single announcement from flags, for testing voices
// and phrasing without a live feed.
func speakCommand() *cli.Command {
	return &cli.Command{
		Name:  "speak",
		Usage: "build and play one announcement from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "voice", Value: "amey-phil"},
			&cli.StringFlag{Name: "category", Value: "next", Usage: "next, standing, approaching, fast or disrupted"},
			&cli.StringFlag{Name: "chime", Value: "four", Usage: "none, three or four"},
			&cli.StringFlag{Name: "platform", Value: "1"},
			&cli.StringFlag{Name: "hour", Value: "12"},
			&cli.StringFlag{Name: "min", Value: "30"},
			&cli.StringFlag{Name: "toc", Value: "southern"},
			&cli.StringFlag{Name: "destination", Usage: "terminating station CRS", Required: true},
			&cli.StringFlag{Name: "origin", Usage: "origin CRS, approaching announcements only"},
			&cli.StringFlag{Name: "station", Usage: "announcing station CRS, standing announcements only"},
			&cli.StringFlag{Name: "calling", Usage: "comma separated calling point CRS codes"},
			&cli.IntFlag{Name: "coaches"},
			&cli.BoolFlag{Name: "delayed"},
			&cli.BoolFlag{Name: "cancelled", Usage: "disrupted announcements only"},
			&cli.IntFlag{Name: "delay-mins", Usage: "disrupted announcements only"},
			&cli.BoolFlag{Name: "dry-run", Usage: "print the clip sequence without rendering"},
		},
		Action: speakAction,
	}
}

func speakAction(c *cli.Context) error {
	announcerVoice, err := scheduler.VoiceByID(c.String("voice"))
	if err != nil {
		return err
	}

	builder := announcement.NewBuilder(announcerVoice)

	details := announcement.TrainDetails{
		Hour:               c.String("hour"),
		Min:                c.String("min"),
		TOC:                c.String("toc"),
		Platform:           c.String("platform"),
		IsDelayed:          c.Bool("delayed"),
		TerminatingStation: c.String("destination"),
		Coaches:            c.Int("coaches"),
	}

	if calling := c.String("calling"); calling != "" {
		for _, crs := range strings.Split(calling, ",") {
			details.CallingPoints = append(details.CallingPoints, announcement.CallingPoint{
				CRS: strings.TrimSpace(crs),
			})
		}
	}

	chime := voice.ChimeStyle(c.String("chime"))

	var tokens []announcement.Token

	switch c.String("category") {
	case "next":
		tokens, err = builder.BuildNextTrain(announcement.NextTrainOptions{
			Chime:        chime,
			TrainDetails: details,
		})

	case "standing":
		if c.String("station") == "" {
			return fmt.Errorf("standing announcements need --station")
		}
		tokens, err = builder.BuildStandingTrain(announcement.StandingTrainOptions{
			TrainDetails: details,
			ThisStation:  c.String("station"),
		})

	case "approaching":
		if c.String("origin") == "" {
			return fmt.Errorf("approaching announcements need --origin")
		}
		tokens, err = builder.BuildApproachingTrain(announcement.ApproachingTrainOptions{
			Chime:        chime,
			TrainDetails: details,
			Origin:       c.String("origin"),
		})

	case "fast":
		tokens, err = builder.BuildFastTrain(announcement.FastTrainOptions{
			Chime:    chime,
			Platform: c.String("platform"),
		})

	case "disrupted":
		disruptionType := announcement.DisruptionDelay
		if c.Bool("cancelled") {
			disruptionType = announcement.DisruptionCancel
		} else if c.Int("delay-mins") > 0 {
			disruptionType = announcement.DisruptionDelayedBy
		}

		tokens, err = builder.BuildDisruptedTrain(announcement.DisruptedTrainOptions{
			Chime:              chime,
			Hour:               details.Hour,
			Min:                details.Min,
			TOC:                details.TOC,
			TerminatingStation: details.TerminatingStation,
			Type:               disruptionType,
			DelayMins:          c.Int("delay-mins"),
		})

	default:
		return fmt.Errorf("unknown announcement category %q", c.String("category"))
	}

	if err != nil {
		return err
	}

	if c.Bool("dry-run") {
		pretty.Println(announcement.Clips(tokens))
		return nil
	}

	return audio.LogRenderer{}.Render(context.Background(), announcerVoice, tokens, audio.ModePlay)
}
