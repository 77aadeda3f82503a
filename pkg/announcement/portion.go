package announcement

import (
	"strconv"
	"strings"
)

type SplitType string

const (
	SplitNone       SplitType = "none"
	SplitDivides    SplitType = "splits"
	SplitTerminates SplitType = "splitTerminates"
)

type PortionPosition string

const (
	PositionFront   PortionPosition = "front"
	PositionMiddle  PortionPosition = "middle"
	PositionRear    PortionPosition = "rear"
	PositionAny     PortionPosition = "any"
	PositionUnknown PortionPosition = "unknown"
)

// CallingPoint is one stop in the announced calling pattern, optionally
// carrying a divide marker with the detaching portion's own calling points.
type CallingPoint struct {
	CRS string

	// ShortPlatform is "<front|middle|rear>.<1..12>" when only part of the
	// train fits the platform at this stop, or "unknown" when a restriction
	// exists but its position cannot be resolved.
	ShortPlatform string

	RequestStop bool

	SplitType SplitType

	// SplitForm is "<front|rear>.<coaches>" describing the detaching
	// portion, set only on the calling point carrying the split marker.
	SplitForm string

	SplitCallingPoints []CallingPoint
}

// PortionRef locates a stop within the train formation. Length 0 means the
// coach count is unknown.
type PortionRef struct {
	Position PortionPosition
	Length   int
}

// ResolvedStop is a calling point annotated with the portion of the train
// that serves it.
type ResolvedStop struct {
	CRS           string
	ShortPlatform string
	RequestStop   bool
	Portion       PortionRef
}

// Portion is one physical section of a dividing train.
type Portion struct {
	Position PortionPosition
	Length   int
	Stops    []ResolvedStop
}

// SplitInfo is the resolved formation plan for an announcement. SplitA is
// the continuing portion, SplitB the detaching one; both are nil when the
// service does not divide.
type SplitInfo struct {
	DivideType     SplitType
	StopsUpToSplit []ResolvedStop
	SplitA         *Portion
	SplitB         *Portion
}

// AllStops returns every resolved stop across the shared section and both
// portions, in announcement order.
func (s SplitInfo) AllStops() []ResolvedStop {
	stops := append([]ResolvedStop{}, s.StopsUpToSplit...)
	if s.SplitA != nil {
		stops = append(stops, s.SplitA.Stops...)
	}
	if s.SplitB != nil {
		stops = append(stops, s.SplitB.Stops...)
	}

	return stops
}

func clampPortionLength(length int) int {
	if length < 1 {
		return 1
	}
	if length > 12 {
		return 12
	}

	return length
}

// parsePortionSpec splits "<position>.<count>" forms used by both split
// markers and short platform restrictions. Count is 0 when absent or
// malformed.
func parsePortionSpec(spec string) (PortionPosition, int) {
	pos, count, found := strings.Cut(spec, ".")
	if !found {
		return PortionPosition(pos), 0
	}

	n, err := strconv.Atoi(count)
	if err != nil || n < 1 {
		return PortionPosition(pos), 0
	}

	return PortionPosition(pos), n
}

// portionShortPlatform re-evaluates a stop's short platform restriction for
// a specific portion: once the train has divided, a restriction that fits
// the whole portion no longer binds. With unknown portion lengths the
// restriction's position can't be resolved either, so it degrades to
// "unknown".
func portionShortPlatform(spec string, portionLength int) string {
	if spec == "" {
		return ""
	}

	if portionLength == 0 {
		return "unknown"
	}

	_, restriction := parsePortionSpec(spec)
	if restriction != 0 && restriction >= portionLength {
		return ""
	}

	return spec
}

// ResolveSplit computes which stops belong to which physical portion of the
// train. It is pure: inputs are never mutated and the same inputs always
// produce the same plan.
//
// overallLength is the total coach count, 0 when formation data is absent.
func ResolveSplit(callingPoints []CallingPoint, terminatingStation string, overallLength int) SplitInfo {
	divideIndex := -1
	for i, p := range callingPoints {
		if p.SplitType == SplitDivides || p.SplitType == SplitTerminates {
			divideIndex = i
			break
		}
	}

	if divideIndex == -1 {
		stops := make([]ResolvedStop, len(callingPoints))
		for i, p := range callingPoints {
			stops[i] = ResolvedStop{
				CRS:           p.CRS,
				ShortPlatform: p.ShortPlatform,
				RequestStop:   p.RequestStop,
				Portion:       PortionRef{Position: PositionAny, Length: overallLength},
			}
		}

		return SplitInfo{DivideType: SplitNone, StopsUpToSplit: stops}
	}

	dividePoint := callingPoints[divideIndex]

	continuing := append([]CallingPoint{}, callingPoints[divideIndex+1:]...)
	if len(continuing) == 0 || continuing[len(continuing)-1].CRS != terminatingStation {
		continuing = append(continuing, CallingPoint{CRS: terminatingStation})
	}

	splitForm := dividePoint.SplitForm
	if splitForm == "" {
		splitForm = "front.1"
	}

	bPos, bLength := parsePortionSpec(splitForm)

	aPos := PositionFront
	if bPos == PositionFront {
		aPos = PositionRear
	}

	aLength := 0
	if overallLength != 0 {
		aLength = clampPortionLength(overallLength - bLength)
	}

	lengthKnown := overallLength != 0 && bLength != 0 && aLength != 0
	if !lengthKnown {
		// Without formation data we can still name the detaching end when
		// the marker states it, but the continuing portion's end is a
		// guess we refuse to make.
		aPos = PositionUnknown
		aLength, bLength = 0, 0
	}

	resolve := func(points []CallingPoint, ref PortionRef) []ResolvedStop {
		stops := make([]ResolvedStop, len(points))
		for i, p := range points {
			stops[i] = ResolvedStop{
				CRS:           p.CRS,
				ShortPlatform: portionShortPlatform(p.ShortPlatform, ref.Length),
				RequestStop:   p.RequestStop,
				Portion:       ref,
			}
		}

		return stops
	}

	shared := make([]ResolvedStop, divideIndex+1)
	for i, p := range callingPoints[:divideIndex+1] {
		sharedLength := overallLength
		if !lengthKnown {
			sharedLength = 0
		}
		shared[i] = ResolvedStop{
			CRS:           p.CRS,
			ShortPlatform: p.ShortPlatform,
			RequestStop:   p.RequestStop,
			Portion:       PortionRef{Position: PositionAny, Length: sharedLength},
		}
	}

	var bStops []ResolvedStop
	if dividePoint.SplitType == SplitTerminates && lengthKnown {
		// The detached portion goes nowhere; there is nothing to list.
		bStops = nil
	} else {
		bStops = resolve(dividePoint.SplitCallingPoints, PortionRef{Position: bPos, Length: bLength})
	}

	return SplitInfo{
		DivideType:     dividePoint.SplitType,
		StopsUpToSplit: shared,
		SplitA: &Portion{
			Position: aPos,
			Length:   aLength,
			Stops:    resolve(continuing, PortionRef{Position: aPos, Length: aLength}),
		},
		SplitB: &Portion{
			Position: bPos,
			Length:   bLength,
			Stops:    bStops,
		},
	}
}
