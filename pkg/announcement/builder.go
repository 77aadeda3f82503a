package announcement

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/davwheat/rail-announcements-sub000/pkg/voice"
)

// ErrMissingClip marks a built announcement that references a clip the
// voice never recorded. Callers match it with errors.Is.
var ErrMissingClip = errors.New("missing audio clip")

// Builder assembles announcement token sequences for one voice. Every
// Build method validates the finished sequence against the voice's clip
// catalogue and returns ErrMissingClip on any gap, so a sequence that is
// returned without error is guaranteed renderable.
type Builder struct {
	voice *voice.Voice
}

func NewBuilder(v *voice.Voice) *Builder {
	return &Builder{voice: v}
}

func (b *Builder) Voice() *voice.Voice {
	return b.voice
}

func (b *Builder) validate(tokens []Token) ([]Token, error) {
	for _, t := range tokens {
		if !b.voice.HasClip(t.Clip) {
			return nil, fmt.Errorf("voice %s has no clip %q: %w", b.voice.ID, t.Clip, ErrMissingClip)
		}
	}

	return tokens, nil
}

func (b *Builder) chime(style voice.ChimeStyle) []Token {
	if id, ok := b.voice.Chime(style); ok {
		return []Token{clip(id)}
	}

	return nil
}

// FirstClassLocation is the announced position of first class seating, or
// empty when there is none to announce.
type FirstClassLocation string

const (
	FirstClassNone   FirstClassLocation = ""
	FirstClassFront  FirstClassLocation = "front"
	FirstClassMiddle FirstClassLocation = "middle"
	FirstClassRear   FirstClassLocation = "rear"
)

type NextTrainOptions struct {
	Chime voice.ChimeStyle
	TrainDetails

	FirstClass FirstClassLocation

	// NotCallingAt lists stations a diverted service misses, announced
	// as an explicit warning.
	NotCallingAt []string

	// ShortPlatformsAfterSplit announces portion-specific short platform
	// guidance for stops beyond a divide point.
	ShortPlatformsAfterSplit bool
}

// BuildNextTrain renders the full "platform N for the HH:MM service"
// announcement, ending with the platform and train summary repeated.
func (b *Builder) BuildNextTrain(opts NextTrainOptions) ([]Token, error) {
	tokens := b.chime(opts.Chime)

	tokens = append(tokens, b.platformForThe(opts.Platform, opts.IsDelayed, 250)...)
	tokens = append(tokens, b.basicTrainInfo(opts.TrainDetails, false, nil, 0)...)

	calling, err := b.callingPoints(opts.CallingPoints, opts.TerminatingStation, opts.Coaches, false)
	if err != nil {
		return nil, err
	}
	tokens = append(tokens, calling...)

	tokens = append(tokens, b.shortPlatforms(opts.CallingPoints, opts.TerminatingStation, opts.Coaches, opts.ShortPlatformsAfterSplit)...)
	tokens = append(tokens, b.firstClass(opts.FirstClass)...)
	tokens = append(tokens, b.formation(opts.Coaches)...)
	tokens = append(tokens, b.requestStops(opts.CallingPoints, opts.TerminatingStation, opts.Coaches)...)
	tokens = append(tokens, b.notCallingAt(opts.NotCallingAt)...)

	tokens = append(tokens, b.platformForThe(opts.Platform, opts.IsDelayed, b.voice.Timing.BeforeSection)...)
	tokens = append(tokens, b.basicTrainInfo(opts.TrainDetails, false, nil, 0)...)

	return b.validate(tokens)
}

type StandingTrainOptions struct {
	TrainDetails

	// ThisStation is the CRS of the station making the announcement.
	ThisStation string

	MindTheGap bool

	FirstClass               FirstClassLocation
	NotCallingAt             []string
	ShortPlatformsAfterSplit bool
}

// BuildStandingTrain renders the "this is X ... the train now standing at
// platform N" announcement. Standing announcements never chime.
func (b *Builder) BuildStandingTrain(opts StandingTrainOptions) ([]Token, error) {
	tokens := []Token{
		clip("station.m." + opts.ThisStation),
		clip("s.this is"),
		clip("station.e." + opts.ThisStation),
	}

	if opts.MindTheGap {
		tokens = append(tokens,
			delayed("w.mind the gap between the train and the platform", 250),
			delayed("w.mind the gap", 100),
		)
	}

	tokens = append(tokens, delayed("s.the train now standing at platform", b.voice.Timing.BeforeSection))
	tokens = append(tokens, b.platformIsThe(opts.Platform, opts.IsDelayed)...)
	tokens = append(tokens, b.basicTrainInfo(opts.TrainDetails, false, nil, 0)...)

	calling, err := b.callingPoints(opts.CallingPoints, opts.TerminatingStation, opts.Coaches, true)
	if err != nil {
		return nil, err
	}
	tokens = append(tokens, calling...)

	tokens = append(tokens, b.shortPlatforms(opts.CallingPoints, opts.TerminatingStation, opts.Coaches, opts.ShortPlatformsAfterSplit)...)
	tokens = append(tokens, b.requestStops(opts.CallingPoints, opts.TerminatingStation, opts.Coaches)...)
	tokens = append(tokens, b.firstClass(opts.FirstClass)...)
	tokens = append(tokens, b.notCallingAt(opts.NotCallingAt)...)

	return b.validate(tokens)
}

type ApproachingTrainOptions struct {
	Chime voice.ChimeStyle
	TrainDetails

	// Origin is the CRS the closing "this train is the service from"
	// clause names.
	Origin string
}

// BuildApproachingTrain renders the short "train now approaching platform
// N" announcement for services that stop but have not yet arrived.
func (b *Builder) BuildApproachingTrain(opts ApproachingTrainOptions) ([]Token, error) {
	tokens := b.chime(opts.Chime)

	plat, _ := strconv.Atoi(opts.Platform)
	switch {
	case opts.Platform == "0":
		tokens = append(tokens, clip("s.the train now approaching platform"), clip("m.0"))
	case isNumeric(opts.Platform) && plat <= 20:
		tokens = append(tokens, clip(fmt.Sprintf("s.the train now approaching platform %d", plat)))
	case plat >= 21:
		tokens = append(tokens, clip("s.the train now approaching platform"), clip(fmt.Sprintf("mins.m.%s", opts.Platform)))
	default:
		tokens = append(tokens, clip("s.the train now approaching platform"), clip(fmt.Sprintf("platform.m.%s", strings.ToLower(opts.Platform))))
	}

	tokens = append(tokens, clip("m.is the"))
	if opts.IsDelayed {
		tokens = append(tokens, clip("m.delayed"))
	}

	tokens = append(tokens, b.basicTrainInfo(opts.TrainDetails, false, nil, 0)...)

	tokens = append(tokens,
		delayed("s.this train is the service from", b.voice.Timing.Short),
		clip("station.e."+opts.Origin),
	)

	return b.validate(tokens)
}

type FastTrainOptions struct {
	Chime    voice.ChimeStyle
	Platform string

	// Fanfare replaces the chime with the fanfare recording.
	Fanfare bool

	// FastApproaching appends the urgent "fast train approaching" warning.
	FastApproaching bool
}

// BuildFastTrain renders the "stand well away from the edge" warning for
// non-stopping services.
func (b *Builder) BuildFastTrain(opts FastTrainOptions) ([]Token, error) {
	var tokens []Token
	if opts.Fanfare {
		tokens = append(tokens, clip("sfx - fanfare"))
	} else {
		tokens = b.chime(opts.Chime)
	}

	plat, _ := strconv.Atoi(opts.Platform)

	var platToken Token
	switch {
	case opts.Platform == "0":
		platToken = clip("e.0")
	case !isNumeric(opts.Platform) || plat <= 20:
		platToken = clip(fmt.Sprintf("platform.e.%s", strings.ToLower(opts.Platform)))
	default:
		platToken = clip(fmt.Sprintf("mins.e.%s", opts.Platform))
	}

	tokens = append(tokens,
		clip("s.stand well away from the edge of platform"),
		platToken,
		delayed("w.the approaching train is not scheduled to stop at this station", b.voice.Timing.BeforeSection),
	)

	if opts.FastApproaching {
		tokens = append(tokens, delayed("w.fast train approaching", b.voice.Timing.BeforeSection))
	}

	return b.validate(tokens)
}

// DisruptionType selects the phrasing of a disruption announcement.
type DisruptionType string

const (
	// DisruptionDelayedBy announces a known delay duration.
	DisruptionDelayedBy DisruptionType = "delayedBy"
	// DisruptionDelay announces a delay of unknown extent.
	DisruptionDelay DisruptionType = "delay"
	// DisruptionCancel announces a cancellation.
	DisruptionCancel DisruptionType = "cancel"
)

type DisruptedTrainOptions struct {
	Chime voice.ChimeStyle

	Hour string
	Min  string
	TOC  string

	TerminatingStation string
	Vias               []string

	Type DisruptionType

	// DelayMins is spoken only for DisruptionDelayedBy.
	DelayMins int

	// ReasonClips is the spoken disruption reason, empty to omit it.
	ReasonClips []string
}

// BuildDisruptedTrain renders the apology announcement for a delayed or
// cancelled service, with the apology severity scaled to the delay.
func (b *Builder) BuildDisruptedTrain(opts DisruptedTrainOptions) ([]Token, error) {
	tokens := b.chime(opts.Chime)

	tokens = append(tokens, clip("s.were sorry to announce that the"))

	var from []Token
	if opts.Type == DisruptionCancel {
		from = []Token{clip("e.this station-2")}
	}

	details := TrainDetails{
		Hour:               opts.Hour,
		Min:                opts.Min,
		TOC:                opts.TOC,
		TerminatingStation: opts.TerminatingStation,
		Vias:               opts.Vias,
	}
	tokens = append(tokens, b.basicTrainInfo(details, true, from, 0)...)

	endInflection := "e"
	if len(opts.ReasonClips) > 0 {
		endInflection = "m"
	}

	switch opts.Type {
	case DisruptionDelayedBy:
		tokens = append(tokens, clip("m.is delayed by approximately"))

		hours := opts.DelayMins / 60
		mins := opts.DelayMins % 60

		if hours > 0 {
			unit := "m.hours"
			if hours == 1 {
				unit = "m.hour"
			}
			tokens = append(tokens, clip(spokenNumber(hours)), clip(unit))
		}
		if hours > 0 && mins > 0 {
			tokens = append(tokens, clip("m.and"))
		}
		if mins > 0 {
			unit := fmt.Sprintf("%s.minutes", endInflection)
			if mins == 1 {
				unit = fmt.Sprintf("%s.minute", endInflection)
			}
			tokens = append(tokens, clip(spokenNumber(mins)), clip(unit))
		}

		if len(opts.ReasonClips) > 0 {
			tokens = append(tokens, clip("m.due to"))
			for _, reason := range opts.ReasonClips {
				tokens = append(tokens, clip(reason))
			}
		}

	case DisruptionDelay:
		if len(opts.ReasonClips) > 0 {
			tokens = append(tokens, clip("m.is being delayed due to"))
			for _, reason := range opts.ReasonClips {
				tokens = append(tokens, clip(reason))
			}
		} else {
			tokens = append(tokens, clip("e.is being delayed"))
		}

	case DisruptionCancel:
		if len(opts.ReasonClips) > 0 {
			tokens = append(tokens, clip("m.has been cancelled due to"))
			for _, reason := range opts.ReasonClips {
				tokens = append(tokens, clip(reason))
			}
		} else {
			tokens = append(tokens, clip("e.has been cancelled"))
		}

	default:
		return nil, fmt.Errorf("unknown disruption type %q", opts.Type)
	}

	tokens = append(tokens, delayed("w.please listen for further announcements", 250))

	switch opts.Type {
	case DisruptionDelayedBy:
		switch {
		case opts.DelayMins < 30:
			tokens = append(tokens, delayed("w.were sorry for the delay to this service", 250))
		case opts.DelayMins < 45:
			tokens = append(tokens, delayed("w.were very sorry for the delay to this service", 250))
		default:
			tokens = append(tokens, delayed("w.were extremely sorry for the severe delay to this service", 250))
		}
	case DisruptionDelay:
		tokens = append(tokens, delayed("w.were sorry for the delay to this service", 250))
	case DisruptionCancel:
		tokens = append(tokens, delayed("w.were sorry for the delay this will cause to your journey", 250))
	}

	return b.validate(tokens)
}

func (b *Builder) firstClass(location FirstClassLocation) []Token {
	if location == FirstClassNone {
		return nil
	}

	return []Token{
		delayed("m.first class accommodation is situated at the", 500),
		clip(fmt.Sprintf("e.%s of the train", location)),
	}
}

func (b *Builder) notCallingAt(stations []string) []Token {
	if len(stations) == 0 {
		return nil
	}

	opts := b.stopListOptions()
	opts.Prefix = "station.m."
	opts.FinalPrefix = "station.e."

	return append([]Token{delayed("s.please note this train will not call at", 250)}, Pluralise(stations, opts)...)
}

// spokenNumber picks the clip for a small count. Platform recordings double
// as coach and hour counts below ten; the minute bank covers the rest.
func spokenNumber(n int) string {
	if n < 10 {
		return fmt.Sprintf("platform.s.%d", n)
	}

	return fmt.Sprintf("mins.m.%d", n)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
