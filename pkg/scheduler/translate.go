package scheduler

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jinzhu/copier"

	"github.com/davwheat/rail-announcements-sub000/pkg/announcement"
	"github.com/davwheat/rail-announcements-sub000/pkg/raildata"
	"github.com/davwheat/rail-announcements-sub000/pkg/stationdir"
	"github.com/davwheat/rail-announcements-sub000/pkg/util"
	"github.com/davwheat/rail-announcements-sub000/pkg/voice"
)

// translator turns live feed records into announcement options for one
// voice. It is stateless; all methods are safe for concurrent use.
type translator struct {
	voice     *voice.Voice
	directory *stationdir.Directory

	legacyTOCNames           bool
	viaPoints                bool
	shortPlatformsAfterSplit bool
}

// mindTheGapStations have curved platforms with a large stepping gap.
var mindTheGapStations = map[string]bool{
	"BTN": true,
	"CLJ": true,
	"EPS": true,
	"LIT": true,
	"VIC": true,
	"WVF": true,
}

// hourMinClips maps a departure time onto the spoken time clip keys. On
// the hour and midnight use dedicated recordings.
func hourMinClips(t time.Time) (string, string) {
	hour := t.Format("15")
	if hour == "00" {
		hour = "00 - midnight"
	}

	min := t.Format("04")
	if min == "00" {
		min = "00 - hundred-hours"
	}

	return hour, min
}

// normalizePlatform maps feed platform designators onto ones the voice can
// speak. Letter-suffixed platforms without a dedicated recording fall back
// to their number.
func normalizePlatform(v *voice.Voice, platform string) string {
	p := strings.ToLower(platform)
	if v.HasPlatform(p) {
		return p
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, p)
	if digits != "" && v.HasPlatform(digits) {
		return digits
	}

	return "1"
}

var viaSeparator = regexp.MustCompile(`&|\band\b`)

func (t *translator) vias(train *raildata.TrainService) []string {
	if !t.viaPoints {
		return nil
	}

	via := train.FirstDestination().Via
	if via == "" {
		return nil
	}

	via = strings.TrimPrefix(via, "via ")

	var codes []string
	for _, part := range viaSeparator.Split(via, -1) {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}

		crs := t.guessVia(name, train.SubsequentLocations)
		if crs != "" && t.voice.HasStation(crs) {
			codes = append(codes, crs)
		}
	}

	return util.RemoveDuplicateStrings(codes, nil)
}

// guessVia resolves freeform via text to a CRS code. A few names are
// ambiguous or spelt differently in the feed and need manual handling.
func (t *translator) guessVia(name string, stops []raildata.ServiceLocation) string {
	if crs := t.directory.CRSForName(name); crs != "" {
		return crs
	}

	switch name {
	case "cobham":
		return "CSD"
	case "worcester":
		for _, s := range stops {
			if s.CRS == "WOF" || s.CRS == "WOS" || s.CRS == "WOP" {
				return s.CRS
			}
		}
	case "university":
		return "UNI"
	}

	return ""
}

func (t *translator) eligibleLocations(locations []raildata.ServiceLocation) []raildata.ServiceLocation {
	var copied []raildata.ServiceLocation
	if err := copier.Copy(&copied, locations); err != nil {
		return nil
	}

	util.InPlaceFilter(&copied, func(l raildata.ServiceLocation) bool {
		if l.CRS == "" || l.IsCancelled || l.IsOperational || l.IsPass {
			return false
		}
		return t.voice.HasStation(l.CRS)
	})

	return copied
}

// trimFalseDestination cuts the calling pattern at the advertised
// destination. Some services carry on beyond it as a different advertised
// service and those stops must not be announced.
func trimFalseDestination(locations []raildata.ServiceLocation, destTiploc string) []raildata.ServiceLocation {
	if len(locations) == 0 || locations[len(locations)-1].Tiploc == destTiploc {
		return locations
	}

	for i, l := range locations {
		if l.Tiploc == destTiploc {
			return locations[:i+1]
		}
	}

	return locations
}

func (t *translator) callingPoints(train *raildata.TrainService) []announcement.CallingPoint {
	dest := train.FirstDestination()

	locations := trimFalseDestination(t.eligibleLocations(train.SubsequentLocations), dest.Tiploc)

	divideCRS := ""
	divideIndex, divideAssoc := train.DivideAssociation()
	if divideAssoc != nil && divideIndex < len(train.SubsequentLocations) {
		divideCRS = train.SubsequentLocations[divideIndex].CRS
	}

	var points []announcement.CallingPoint
	for i, l := range locations {
		// The terminus is announced separately from the calling list.
		if i == len(locations)-1 && l.CRS == dest.CRS {
			break
		}

		point := announcement.CallingPoint{
			CRS:           l.CRS,
			ShortPlatform: stationdir.ShortPlatform(l.CRS, l.Platform, train),
			RequestStop:   l.IsRequestStop,
		}

		if divideAssoc != nil && l.CRS == divideCRS {
			point.SplitForm = divideAssoc.PortionForm

			if divideAssoc.DestCRS == l.CRS {
				point.SplitType = announcement.SplitTerminates
			} else {
				point.SplitType = announcement.SplitDivides
				point.SplitCallingPoints = t.portionCallingPoints(divideAssoc, train)
			}
		}

		points = append(points, point)
	}

	return points
}

// portionCallingPoints builds the detaching portion's calling pattern,
// terminus included.
func (t *translator) portionCallingPoints(assoc *raildata.Association, train *raildata.TrainService) []announcement.CallingPoint {
	locations := trimFalseDestination(t.eligibleLocations(assoc.PortionLocations), assoc.DestTiploc)

	var points []announcement.CallingPoint
	for _, l := range locations {
		points = append(points, announcement.CallingPoint{
			CRS:           l.CRS,
			ShortPlatform: stationdir.ShortPlatform(l.CRS, l.Platform, train),
			RequestStop:   l.IsRequestStop,
		})
	}

	return points
}

func (t *translator) details(train *raildata.TrainService) (announcement.TrainDetails, error) {
	dest := train.FirstDestination()
	if dest.CRS == "" {
		return announcement.TrainDetails{}, fmt.Errorf("service %s has no destination", train.RID)
	}
	if !t.voice.HasStation(dest.CRS) {
		return announcement.TrainDetails{}, fmt.Errorf("no station recording for destination %s", dest.CRS)
	}
	if train.ScheduledDeparture == nil {
		return announcement.TrainDetails{}, fmt.Errorf("service %s has no scheduled departure", train.RID)
	}

	hour, min := hourMinClips(*train.ScheduledDeparture)

	delayMins, delayKnown := train.DelayMins()

	return announcement.TrainDetails{
		Hour:               hour,
		Min:                min,
		TOC:                t.voice.ProcessTOC(train.Operator, train.OperatorCode, train.FirstOrigin().CRS, dest.CRS, t.legacyTOCNames),
		Platform:           normalizePlatform(t.voice, train.Platform),
		IsDelayed:          delayKnown && delayMins > 5,
		TerminatingStation: dest.CRS,
		Vias:               t.vias(train),
		CallingPoints:      t.callingPoints(train),
		Coaches:            train.Length,
	}, nil
}

func (t *translator) NextTrain(train *raildata.TrainService, chime voice.ChimeStyle) (announcement.NextTrainOptions, error) {
	details, err := t.details(train)
	if err != nil {
		return announcement.NextTrainOptions{}, err
	}

	return announcement.NextTrainOptions{
		Chime:                    chime,
		TrainDetails:             details,
		ShortPlatformsAfterSplit: t.shortPlatformsAfterSplit,
	}, nil
}

func (t *translator) StandingTrain(train *raildata.TrainService, station string) (announcement.StandingTrainOptions, error) {
	details, err := t.details(train)
	if err != nil {
		return announcement.StandingTrainOptions{}, err
	}
	if !t.voice.HasStation(station) {
		return announcement.StandingTrainOptions{}, fmt.Errorf("no station recording for %s", station)
	}

	return announcement.StandingTrainOptions{
		TrainDetails:             details,
		ThisStation:              station,
		MindTheGap:               mindTheGapStations[station],
		ShortPlatformsAfterSplit: t.shortPlatformsAfterSplit,
	}, nil
}

func (t *translator) ApproachingTrain(train *raildata.TrainService, chime voice.ChimeStyle) (announcement.ApproachingTrainOptions, error) {
	details, err := t.details(train)
	if err != nil {
		return announcement.ApproachingTrainOptions{}, err
	}

	origin := train.FirstOrigin()
	if !t.voice.HasStation(origin.CRS) {
		return announcement.ApproachingTrainOptions{}, fmt.Errorf("no station recording for origin %s", origin.CRS)
	}

	return announcement.ApproachingTrainOptions{
		Chime:        chime,
		TrainDetails: details,
		Origin:       origin.CRS,
	}, nil
}

func (t *translator) DisruptedTrain(train *raildata.TrainService, chime voice.ChimeStyle) (announcement.DisruptedTrainOptions, error) {
	dest := train.FirstDestination()
	if dest.CRS == "" || !t.voice.HasStation(dest.CRS) {
		return announcement.DisruptedTrainOptions{}, fmt.Errorf("no station recording for destination %q", dest.CRS)
	}
	if train.ScheduledDeparture == nil {
		return announcement.DisruptedTrainOptions{}, fmt.Errorf("service %s has no scheduled departure", train.RID)
	}

	hour, min := hourMinClips(*train.ScheduledDeparture)

	opts := announcement.DisruptedTrainOptions{
		Chime:              chime,
		Hour:               hour,
		Min:                min,
		TOC:                t.voice.ProcessTOC(train.Operator, train.OperatorCode, train.FirstOrigin().CRS, dest.CRS, t.legacyTOCNames),
		TerminatingStation: dest.CRS,
		Vias:               t.vias(train),
	}

	var reason *raildata.DisruptionReason

	if train.IsCancelled {
		opts.Type = announcement.DisruptionCancel
		reason = train.CancelReason
	} else {
		delayMins, delayKnown := train.DelayMins()
		if !delayKnown || delayMins > 59 {
			opts.Type = announcement.DisruptionDelay
		} else {
			opts.Type = announcement.DisruptionDelayedBy
			opts.DelayMins = delayMins
		}
		reason = train.DelayReason
	}

	if reason != nil {
		opts.ReasonClips = t.voice.DelayReasonClips(reason.Code)
	}

	return opts, nil
}
