package voice

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

type ChimeStyle string

const (
	ChimeNone  ChimeStyle = "none"
	ChimeThree ChimeStyle = "three"
	ChimeFour  ChimeStyle = "four"
)

// Timing is the per-voice delay parameter table, all values in milliseconds.
// These match the gaps present in the source recordings, so they vary
// between voices even though the clause structure does not.
type Timing struct {
	BeforeTOC     int
	BeforeSection int
	Short         int

	BeforeCallingAt int
	AfterCallingAt  int
	BetweenStops    int
	AroundAnd       int
}

// Voice is a single announcement voice: an immutable clip catalogue plus the
// timing table and operator/disruption-reason vocabulary recorded for it.
// Concrete voices are data, constructed with New from a Definition.
type Voice struct {
	ID         string
	Name       string
	FilePrefix string
	Timing     Timing

	clips          map[string]struct{}
	stations       map[string]struct{}
	platforms      map[string]struct{}
	standaloneTOCs map[string]struct{}
	embeddedTOCs   map[string]struct{}
	delayReasons   map[int][]string
}

// Definition is the raw recorded inventory for a voice.
type Definition struct {
	ID         string
	Name       string
	FilePrefix string
	Timing     Timing

	// Phrases are fully-formed clip ids ("m.calling at", "e.only", ...).
	Phrases []string

	// StationCodes are the CRS codes with recorded station name clips.
	StationCodes []string

	// Platforms are the platform designators with recorded clips.
	Platforms []string

	// StandaloneTOCs are operators recorded only as a standalone name, so
	// "service to" must be played as a separate clip. EmbeddedTOCs have
	// combined "<toc> service to/from" recordings.
	StandaloneTOCs []string
	EmbeddedTOCs   []string

	// DelayReasons maps Darwin reason codes to the clip sequence for the
	// spoken reason.
	DelayReasons map[int][]string
}

// New builds a Voice, expanding the definition into the full clip catalogue
// (station inflections, hour and minute banks, platform banks, TOC clips).
func New(def Definition) *Voice {
	v := &Voice{
		ID:         def.ID,
		Name:       def.Name,
		FilePrefix: def.FilePrefix,
		Timing:     def.Timing,

		clips:          map[string]struct{}{},
		stations:       map[string]struct{}{},
		platforms:      map[string]struct{}{},
		standaloneTOCs: map[string]struct{}{},
		embeddedTOCs:   map[string]struct{}{},
		delayReasons:   def.DelayReasons,
	}

	for _, clip := range def.Phrases {
		v.clips[clip] = struct{}{}
	}

	for _, crs := range def.StationCodes {
		v.stations[crs] = struct{}{}
		v.clips[fmt.Sprintf("station.m.%s", crs)] = struct{}{}
		v.clips[fmt.Sprintf("station.e.%s", crs)] = struct{}{}
	}

	for hour := 0; hour < 24; hour++ {
		v.clips[fmt.Sprintf("hour.s.%02d", hour)] = struct{}{}
	}
	v.clips["hour.s.00 - midnight"] = struct{}{}

	for min := 0; min < 60; min++ {
		v.clips[fmt.Sprintf("mins.m.%02d", min)] = struct{}{}
		v.clips[fmt.Sprintf("mins.e.%02d", min)] = struct{}{}
	}
	v.clips["mins.m.00 - hundred-hours"] = struct{}{}

	// Platform zero has no dedicated recordings, only bare digits.
	v.clips["m.0"] = struct{}{}
	v.clips["e.0"] = struct{}{}

	// The minute bank doubles as the general number bank for high platform
	// numbers and delay durations.
	for n := 1; n < 60; n++ {
		v.clips[fmt.Sprintf("mins.m.%d", n)] = struct{}{}
		v.clips[fmt.Sprintf("mins.e.%d", n)] = struct{}{}
	}

	for _, plat := range def.Platforms {
		v.platforms[plat] = struct{}{}
		v.clips[fmt.Sprintf("platform.s.%s", plat)] = struct{}{}
		v.clips[fmt.Sprintf("platform.m.%s", plat)] = struct{}{}
		v.clips[fmt.Sprintf("platform.e.%s", plat)] = struct{}{}

		// Low-numbered and lettered platforms have combined recordings.
		n, err := strconv.Atoi(plat)
		numeric := err == nil
		if (numeric && n <= 12) || plat == "a" || plat == "b" {
			v.clips[fmt.Sprintf("s.platform %s for the", plat)] = struct{}{}
		}
		if numeric && n <= 20 {
			v.clips[fmt.Sprintf("s.the train now approaching platform %d", n)] = struct{}{}
		}
	}

	for _, toc := range def.StandaloneTOCs {
		toc = strings.ToLower(toc)
		v.standaloneTOCs[toc] = struct{}{}
		v.clips[fmt.Sprintf("toc.m.%s", toc)] = struct{}{}
	}

	for _, toc := range def.EmbeddedTOCs {
		toc = strings.ToLower(toc)
		v.embeddedTOCs[toc] = struct{}{}
		v.clips[fmt.Sprintf("toc.m.%s service to", toc)] = struct{}{}
		v.clips[fmt.Sprintf("toc.m.%s service from", toc)] = struct{}{}
	}

	for _, reason := range def.DelayReasons {
		for _, clip := range reason {
			v.clips[clip] = struct{}{}
		}
	}

	v.clips["sfx - three chimes"] = struct{}{}
	v.clips["sfx - four chimes"] = struct{}{}
	v.clips["sfx - fanfare"] = struct{}{}

	return v
}

// HasClip reports whether the clip id exists in this voice's catalogue.
func (v *Voice) HasClip(id string) bool {
	_, ok := v.clips[id]
	return ok
}

// HasStation reports whether a station name recording exists for the CRS.
func (v *Voice) HasStation(crs string) bool {
	_, ok := v.stations[crs]
	return ok
}

// Stations returns the sorted CRS codes this voice can announce.
func (v *Voice) Stations() []string {
	var codes []string
	for crs := range v.stations {
		codes = append(codes, crs)
	}
	slices.Sort(codes)

	return codes
}

// HasPlatform reports whether a dedicated platform clip exists.
func (v *Voice) HasPlatform(platform string) bool {
	_, ok := v.platforms[strings.ToLower(platform)]
	return ok
}

// IsStandaloneTOC reports whether the operator name is only recorded
// standalone, without a combined "service to" suffix.
func (v *Voice) IsStandaloneTOC(toc string) bool {
	_, ok := v.standaloneTOCs[strings.ToLower(toc)]
	return ok
}

// HasTOC reports whether the operator name is recorded at all.
func (v *Voice) HasTOC(toc string) bool {
	toc = strings.ToLower(toc)
	if _, ok := v.standaloneTOCs[toc]; ok {
		return true
	}
	_, ok := v.embeddedTOCs[toc]

	return ok
}

// DelayReasonClips returns the clip sequence for a Darwin reason code, or
// nil when the voice has no recording for it.
func (v *Voice) DelayReasonClips(code int) []string {
	return v.delayReasons[code]
}

// Chime returns the chime clip for the style, or ok=false for no chime.
func (v *Voice) Chime(style ChimeStyle) (string, bool) {
	switch style {
	case ChimeThree, ChimeFour:
		return fmt.Sprintf("sfx - %s chimes", style), true
	default:
		return "", false
	}
}

// ClipURL maps a clip id onto its audio file path.
func (v *Voice) ClipURL(id string) string {
	return fmt.Sprintf("/audio/%s/%s.mp3", v.FilePrefix, strings.ReplaceAll(id, ".", "/"))
}
