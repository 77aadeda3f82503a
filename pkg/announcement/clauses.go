package announcement

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// TrainDetails is the shared core of every train announcement: when it
// runs, who runs it, where it terminates and where it calls.
type TrainDetails struct {
	// Hour and Min are voice clip keys, eg "16" and "05". Midnight uses
	// "00 - midnight" and on-the-hour minutes use "00 - hundred-hours".
	Hour string
	Min  string

	// TOC is the spoken operator name, empty to omit the operator clause.
	TOC string

	Platform  string
	IsDelayed bool

	TerminatingStation string
	Vias               []string
	CallingPoints      []CallingPoint

	// Coaches is the total formation length, 0 when unknown.
	Coaches int
}

// basicTrainInfo renders "the HH:MM <toc> service to X [via Y]", shared by
// every announcement type. When the service divides it names both final
// destinations joined with a conjunction instead of the via form.
//
// from, when set, turns the clause into "service from <from> to X" (used by
// cancellations and approaching trains).
func (b *Builder) basicTrainInfo(d TrainDetails, stationsAlwaysMiddle bool, from []Token, delayMs int) []Token {
	tokens := []Token{
		delayed(fmt.Sprintf("hour.s.%s", d.Hour), delayMs),
		clip(fmt.Sprintf("mins.m.%s", d.Min)),
	}

	var fromTokens []Token
	if len(from) > 0 {
		fromTokens = append(append(fromTokens, from...), clip("m.to"))
	}

	serviceClip := "m.service to"
	if len(fromTokens) > 0 {
		serviceClip = "m.service from"
	}

	switch {
	case d.TOC == "":
		tokens = append(tokens, delayed(serviceClip, 50))
		tokens = append(tokens, fromTokens...)
	case b.voice.IsStandaloneTOC(d.TOC):
		tokens = append(tokens, delayed(fmt.Sprintf("toc.m.%s", strings.ToLower(d.TOC)), b.voice.Timing.BeforeTOC), clip(serviceClip))
		tokens = append(tokens, fromTokens...)
	default:
		suffix := "service to"
		if len(fromTokens) > 0 {
			suffix = "service from"
		}
		tokens = append(tokens, delayed(fmt.Sprintf("toc.m.%s %s", strings.ToLower(d.TOC), suffix), b.voice.Timing.BeforeTOC))
		tokens = append(tokens, fromTokens...)
	}

	finalPrefix := "station.e."
	if stationsAlwaysMiddle {
		finalPrefix = "station.m."
	}

	if divide := findDividePoint(d.CallingPoints); divide != nil && len(divide.SplitCallingPoints) > 0 {
		secondDestination := divide.SplitCallingPoints[len(divide.SplitCallingPoints)-1].CRS
		if divide.SplitType == SplitTerminates {
			secondDestination = divide.CRS
		}

		return append(tokens, Pluralise([]string{d.TerminatingStation, secondDestination}, PluraliseOptions{
			Prefix:            "station.m.",
			FinalPrefix:       finalPrefix,
			FirstItemDelayMs:  100,
			BeforeAndDelayMs:  100,
			BeforeItemDelayMs: 50,
		})...)
	}

	if len(d.Vias) > 0 {
		tokens = append(tokens, clip(fmt.Sprintf("station.m.%s", d.TerminatingStation)), clip("m.via"))

		items := make([]string, len(d.Vias))
		for i, via := range d.Vias {
			prefix := "station.m."
			if i == len(d.Vias)-1 && !stationsAlwaysMiddle {
				prefix = "station.e."
			}
			items[i] = prefix + via
		}

		return append(tokens, Pluralise(items, PluraliseOptions{BeforeAndDelayMs: 100})...)
	}

	return append(tokens, clip(finalPrefix+d.TerminatingStation))
}

func findDividePoint(points []CallingPoint) *CallingPoint {
	for i := range points {
		if points[i].SplitType == SplitDivides || points[i].SplitType == SplitTerminates {
			return &points[i]
		}
	}

	return nil
}

// platformForThe renders "platform N for the [delayed]", the clause that
// opens next-train announcements. Platforms 1-12 and lettered platforms
// have dedicated combined recordings; higher numbers are assembled from the
// number banks.
func (b *Builder) platformForThe(platform string, isDelayed bool, delayMs int) []Token {
	plat, _ := strconv.Atoi(platform)
	lower := strings.ToLower(platform)

	forThe := "m.for the"
	if isDelayed {
		forThe = "m.for the delayed"
	}

	switch {
	case platform == "0":
		return []Token{delayed("s.platform-2", delayMs), clip("m.0"), clip(forThe)}
	case (plat >= 1 && plat <= 12) || lower == "a" || lower == "b":
		tokens := []Token{delayed(fmt.Sprintf("s.platform %s for the", lower), delayMs)}
		if isDelayed {
			tokens = append(tokens, clip("m.delayed"))
		}
		return tokens
	case plat >= 21:
		return []Token{delayed("s.platform-2", delayMs), clip(fmt.Sprintf("mins.m.%s", platform)), clip(forThe)}
	default:
		return []Token{delayed("s.platform-2", delayMs), clip(fmt.Sprintf("platform.s.%s", lower)), clip(forThe)}
	}
}

// platformIsThe renders "<N> is the [delayed]", used after "the train now
// standing at platform".
func (b *Builder) platformIsThe(platform string, isDelayed bool) []Token {
	plat, _ := strconv.Atoi(platform)

	isThe := "m.is the"
	if isDelayed {
		isThe = "m.is the delayed"
	}

	switch {
	case platform == "0":
		return []Token{clip("m.0"), clip(isThe)}
	case plat >= 21:
		return []Token{clip(fmt.Sprintf("mins.m.%s", platform)), clip(isThe)}
	default:
		return []Token{clip(fmt.Sprintf("platform.s.%s", strings.ToLower(platform))), clip(isThe)}
	}
}

// callingPoints renders the "calling at ..." clause, delegating to the
// split-aware form when the service divides.
func (b *Builder) callingPoints(points []CallingPoint, terminatingStation string, overallLength int, arriving bool) ([]Token, error) {
	withSplits, err := b.callingPointsWithSplits(points, terminatingStation, overallLength, arriving)
	if err != nil {
		return nil, err
	}

	tokens := []Token{delayed("m.calling at", b.voice.Timing.BeforeCallingAt)}

	if len(withSplits) > 0 {
		return append(tokens, withSplits...), nil
	}

	if len(points) == 0 {
		return append(tokens, clip(fmt.Sprintf("station.m.%s", terminatingStation)), clip("e.only")), nil
	}

	var items []string
	for _, p := range points {
		if p.RequestStop {
			continue
		}
		items = append(items, "station.m."+p.CRS)
	}
	items = append(items, "station.e."+terminatingStation)

	return append(tokens, Pluralise(items, b.stopListOptions())...), nil
}

func (b *Builder) stopListOptions() PluraliseOptions {
	return PluraliseOptions{
		FirstItemDelayMs:  b.voice.Timing.AfterCallingAt,
		BeforeItemDelayMs: b.voice.Timing.BetweenStops,
		BeforeAndDelayMs:  b.voice.Timing.AroundAnd,
		AfterAndDelayMs:   b.voice.Timing.AroundAnd,
	}
}

// callingPointsWithSplits renders the full divide narrative: shared stops,
// the divide notice, which customers travel in which part, and the closing
// "the train will divide at" reminder. Returns nil when the service does
// not divide.
func (b *Builder) callingPointsWithSplits(points []CallingPoint, terminatingStation string, overallLength int, arriving bool) ([]Token, error) {
	info := ResolveSplit(points, terminatingStation, overallLength)
	if info.DivideType == SplitNone {
		return nil, nil
	}

	splitPoint := info.StopsUpToSplit[len(info.StopsUpToSplit)-1]

	var sharedStops []string
	for _, s := range info.StopsUpToSplit {
		if s.RequestStop {
			continue
		}
		sharedStops = append(sharedStops, "station.m."+s.CRS)
	}

	tokens := Pluralise(sharedStops, b.stopListOptions())

	tokens = append(tokens,
		clip("e.where the train will divide"),
		delayed("s.please make sure you travel", 400),
		clip("e.in the correct part of this train"),
	)

	switch info.DivideType {
	case SplitTerminates:
		if info.SplitB.Position == PositionUnknown {
			tokens = append(tokens,
				delayed("s.please note that", 400),
				clip("m.coaches"),
				clip("m.will be detached and will terminate at"),
			)
		} else {
			detach := fmt.Sprintf("m.%d coaches will detach at", info.SplitB.Length)
			if info.SplitB.Length == 1 {
				detach = "m.coach will detach at"
			}
			tokens = append(tokens,
				delayed(fmt.Sprintf("s.please note that the %s", info.SplitB.Position), 400),
				clip(detach),
			)
		}
		tokens = append(tokens, clip("station.e."+splitPoint.CRS))

	case SplitDivides:
		if len(info.SplitB.Stops) == 0 {
			return nil, fmt.Errorf("dividing service at %s has no calling points for the detaching portion", splitPoint.CRS)
		}
	}

	aStops := stopCodes(info.SplitA.Stops)
	bStops := stopCodes(info.SplitB.Stops)

	// The divide point itself sometimes leads the portion calling lists.
	if len(aStops) > 0 && aStops[0] == splitPoint.CRS {
		aStops = aStops[1:]
	}
	if len(bStops) > 0 && bStops[0] == splitPoint.CRS {
		bStops = bStops[1:]
	}

	sharedCodes := stopCodes(info.StopsUpToSplit)
	if len(sharedCodes) > 0 {
		tokens = append(tokens, b.listCustomersFor(sharedCodes)...)
		tokens = append(tokens, clip("e.may travel in any part of the train"))
	}

	aTokens := b.portionGuidance(aStops, info.SplitA)
	bTokens := b.portionGuidance(bStops, info.SplitB)

	if info.SplitA.Position == PositionFront {
		tokens = append(tokens, aTokens...)
		tokens = append(tokens, bTokens...)
	} else {
		tokens = append(tokens, bTokens...)
		tokens = append(tokens, aTokens...)
	}

	divideClip := "s.the next train will divide at"
	if arriving {
		divideClip = "s.this train will divide at"
	}

	return append(tokens, delayed(divideClip, 200), clip("station.e."+splitPoint.CRS)), nil
}

func stopCodes(stops []ResolvedStop) []string {
	codes := make([]string, len(stops))
	for i, s := range stops {
		codes[i] = s.CRS
	}

	return codes
}

func (b *Builder) listCustomersFor(stations []string) []Token {
	items := make([]string, len(stations))
	for i, crs := range stations {
		items[i] = "station.m." + crs
	}

	return append([]Token{delayed("s.customers for", 400)}, Pluralise(items, b.stopListOptions())...)
}

// portionGuidance renders "customers for A, B and C should travel in the
// front N coaches of the train" for one portion.
func (b *Builder) portionGuidance(stations []string, portion *Portion) []Token {
	if len(stations) == 0 {
		return nil
	}

	tokens := b.listCustomersFor(stations)

	if portion.Position == PositionUnknown {
		return append(tokens, clip("w.please listen for announcements on board the train"))
	}

	switch {
	case portion.Length == 0:
		return append(tokens, clip(fmt.Sprintf("e.should travel in the %s coaches of the train", portion.Position)))
	case portion.Length == 1:
		return append(tokens, clip(fmt.Sprintf("e.should travel in the %s coach of the train", portion.Position)))
	case portion.Length <= 8:
		return append(tokens,
			clip(fmt.Sprintf("m.should travel in the %s", portion.Position)),
			clip(fmt.Sprintf("e.%d coaches of the train", portion.Length)),
		)
	default:
		return append(tokens,
			clip(fmt.Sprintf("m.should travel in the %s", portion.Position)),
			clip(fmt.Sprintf("platform.s.%d", portion.Length)),
			clip("e.coaches of the train"),
		)
	}
}

// shortInstruction renders the rider-facing guidance for one short platform
// restriction, given the portion of the train the rider will be on. Returns
// nil when the restriction needs no announcement from this context.
func (b *Builder) shortInstruction(spec string, portion PortionRef, afterSplit bool) []Token {
	if spec == "" {
		return nil
	}

	pos, length := parsePortionSpec(spec)

	joinClip := func() Token {
		if length == 1 {
			return clip(fmt.Sprintf("e.should join the %s coach only", pos))
		}
		return clip(fmt.Sprintf("e.should join the %s %d coaches", pos, length))
	}

	if portion.Position == PositionAny {
		if pos == PositionUnknown {
			return []Token{clip("w.please listen for announcements on board the train")}
		}
		return []Token{joinClip()}
	}

	if !afterSplit {
		return nil
	}

	if pos == PositionUnknown {
		return []Token{clip("w.please listen for announcements on board the train")}
	}

	if portion.Position == pos {
		return []Token{joinClip()}
	}

	// The restriction names the other portion: point the rider at it.
	var tokens []Token
	if length == 1 {
		tokens = append(tokens, clip(fmt.Sprintf("m.should join the %s coach only", pos)))
	} else {
		tokens = append(tokens, clip(fmt.Sprintf("e.should join the %s %d coaches", pos, length)))
	}

	tokens = append(tokens, clip("m.of"), clip("m.the"), clip(fmt.Sprintf("m.%s", portion.Position)))
	if portion.Length == 1 {
		tokens = append(tokens, clip("e.coach"))
	} else {
		tokens = append(tokens, clip(fmt.Sprintf("platform.s.%d", portion.Length)), clip("e.coaches"))
	}

	return tokens
}

// shortPlatforms renders the short platform section. Stops whose resolved
// instruction is identical are merged into a single "customers for A, B and
// C ..." clause; groups are announced in instruction sort order so output
// is deterministic.
func (b *Builder) shortPlatforms(points []CallingPoint, terminatingStation string, overallLength int, afterSplit bool) []Token {
	info := ResolveSplit(points, terminatingStation, overallLength)

	groups := map[string][]string{}
	instructions := map[string][]Token{}

	for _, stop := range info.AllStops() {
		instruction := b.shortInstruction(stop.ShortPlatform, stop.Portion, afterSplit)
		if len(instruction) == 0 {
			continue
		}

		key := strings.Join(Clips(instruction), ",")
		groups[key] = append(groups[key], stop.CRS)
		instructions[key] = instruction
	}

	var order []string
	for key := range groups {
		order = append(order, key)
	}
	slices.Sort(order)

	var tokens []Token

	for i, key := range order {
		stations := groups[key]

		if i == 0 {
			if len(order) == 1 && len(stations) == 1 {
				tokens = append(tokens,
					delayed("m.due to a short platform at", b.voice.Timing.BeforeSection),
					clip("station.m."+stations[0]),
					clip("m.customers for this station"),
				)
			} else {
				tokens = append(tokens, delayed("s.due to short platforms customers for", b.voice.Timing.BeforeSection))
				tokens = append(tokens, b.pluraliseStations(stations)...)
			}
		} else {
			continuation := delayed("m.customers for", 200)
			if i == len(order)-1 {
				continuation = clip("m.and customers for")
			}
			tokens = append(tokens, continuation)
			tokens = append(tokens, b.pluraliseStations(stations)...)
		}

		tokens = append(tokens, instructions[key]...)
	}

	return tokens
}

func (b *Builder) pluraliseStations(stations []string) []Token {
	opts := b.stopListOptions()
	opts.Prefix = "station.m."
	opts.FinalPrefix = "station.m."

	return Pluralise(stations, opts)
}

// requestStops renders the single "customers may request to stop at ..."
// clause covering every request stop in any portion, or nothing at all.
func (b *Builder) requestStops(points []CallingPoint, terminatingStation string, overallLength int) []Token {
	info := ResolveSplit(points, terminatingStation, overallLength)

	var stations []string
	for _, stop := range info.AllStops() {
		if stop.RequestStop && !slices.Contains(stations, stop.CRS) {
			stations = append(stations, stop.CRS)
		}
	}

	if len(stations) == 0 {
		return nil
	}

	opts := b.stopListOptions()
	opts.Prefix = "station.m."
	opts.FinalPrefix = "station.m."
	opts.AndClip = "m.or-2"

	tokens := append([]Token{delayed("s.customers may request to stop at", 400)}, Pluralise(stations, opts)...)

	return append(tokens, clip("e.by contacting the conductor on board the train"))
}

// formation renders "this train is formed of N coaches".
func (b *Builder) formation(coaches int) []Token {
	if coaches == 0 {
		return nil
	}

	unit := "e.coaches"
	if coaches == 1 {
		unit = "e.coach"
	}

	return []Token{
		delayed("s.this train is formed of", 250),
		clip(fmt.Sprintf("platform.s.%d", coaches)),
		clip(unit),
	}
}
