package audio

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/davwheat/rail-announcements-sub000/pkg/announcement"
	"github.com/davwheat/rail-announcements-sub000/pkg/voice"
)

// Mode selects whether a rendered announcement is played out live or
// assembled into a downloadable file.
type Mode string

const (
	ModePlay     Mode = "play"
	ModeDownload Mode = "download"
)

// Renderer turns a validated token sequence into audible output. Render
// blocks until playback finishes or ctx is cancelled.
type Renderer interface {
	Render(ctx context.Context, v *voice.Voice, tokens []announcement.Token, mode Mode) error
}

// LogRenderer writes the resolved clip file paths to the log instead of
// playing them. Useful for dry runs and headless deployments.
type LogRenderer struct{}

func (LogRenderer) Render(ctx context.Context, v *voice.Voice, tokens []announcement.Token, mode Mode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	urls := make([]string, len(tokens))
	for i, t := range tokens {
		urls[i] = v.ClipURL(t.Clip)
	}

	log.Info().
		Str("voice", v.ID).
		Str("mode", string(mode)).
		Int("clips", len(tokens)).
		Strs("files", urls).
		Msg("Rendered announcement")

	return nil
}
