package announcement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davwheat/rail-announcements-sub000/pkg/announcement"
	"github.com/davwheat/rail-announcements-sub000/pkg/voice"
)

func phil() *announcement.Builder {
	return announcement.NewBuilder(voice.Phil())
}

func details() announcement.TrainDetails {
	return announcement.TrainDetails{
		Hour:               "12",
		Min:                "30",
		TOC:                "southern",
		Platform:           "4",
		TerminatingStation: "BTN",
		CallingPoints:      []announcement.CallingPoint{{CRS: "CLJ"}},
	}
}

func TestBuildNextTrain(t *testing.T) {
	tokens, err := phil().BuildNextTrain(announcement.NextTrainOptions{
		Chime:        voice.ChimeFour,
		TrainDetails: details(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sfx - four chimes",
		"s.platform 4 for the",
		"hour.s.12",
		"mins.m.30",
		"toc.m.southern service to",
		"station.e.BTN",
		"m.calling at",
		"station.m.CLJ",
		"m.and",
		"station.e.BTN",
		"s.platform 4 for the",
		"hour.s.12",
		"mins.m.30",
		"toc.m.southern service to",
		"station.e.BTN",
	}, announcement.Clips(tokens))
}

func TestBuildNextTrainDelayed(t *testing.T) {
	d := details()
	d.IsDelayed = true

	tokens, err := phil().BuildNextTrain(announcement.NextTrainOptions{TrainDetails: d})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)
	assert.Equal(t, "s.platform 4 for the", clips[0])
	assert.Equal(t, "m.delayed", clips[1])
}

func TestBuildNextTrainHighPlatform(t *testing.T) {
	d := details()
	d.Platform = "21"

	tokens, err := phil().BuildNextTrain(announcement.NextTrainOptions{TrainDetails: d})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)
	assert.Equal(t, []string{"s.platform-2", "mins.m.21", "m.for the"}, clips[:3])
}

func TestBuildNextTrainUnknownStation(t *testing.T) {
	d := details()
	d.TerminatingStation = "ZZZ"

	_, err := phil().BuildNextTrain(announcement.NextTrainOptions{TrainDetails: d})
	assert.ErrorIs(t, err, announcement.ErrMissingClip)
}

func TestBuildNextTrainTerminatesHere(t *testing.T) {
	d := details()
	d.CallingPoints = nil

	tokens, err := phil().BuildNextTrain(announcement.NextTrainOptions{TrainDetails: d})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)
	assert.Contains(t, clips, "station.m.BTN")
	assert.Contains(t, clips, "e.only")
}

func TestBuildNextTrainVias(t *testing.T) {
	d := details()
	d.Vias = []string{"LWS"}

	tokens, err := phil().BuildNextTrain(announcement.NextTrainOptions{TrainDetails: d})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)
	assert.Contains(t, clips, "station.m.BTN")
	assert.Contains(t, clips, "m.via")
	assert.Contains(t, clips, "station.e.LWS")
}

func TestBuildNextTrainFormationAndFirstClass(t *testing.T) {
	d := details()
	d.Coaches = 8

	tokens, err := phil().BuildNextTrain(announcement.NextTrainOptions{
		TrainDetails: d,
		FirstClass:   announcement.FirstClassRear,
	})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)
	assert.Contains(t, clips, "s.this train is formed of")
	assert.Contains(t, clips, "platform.s.8")
	assert.Contains(t, clips, "e.coaches")
	assert.Contains(t, clips, "m.first class accommodation is situated at the")
	assert.Contains(t, clips, "e.rear of the train")
}

func TestBuildNextTrainDivide(t *testing.T) {
	d := details()
	d.Coaches = 8
	d.CallingPoints = []announcement.CallingPoint{
		{CRS: "CLJ"},
		{
			CRS:       "HHE",
			SplitType: announcement.SplitDivides,
			SplitForm: "rear.4",
			SplitCallingPoints: []announcement.CallingPoint{
				{CRS: "LWS"},
				{CRS: "EBN"},
			},
		},
	}

	tokens, err := phil().BuildNextTrain(announcement.NextTrainOptions{TrainDetails: d})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)

	// Both final destinations are named in the summary.
	assert.Contains(t, clips, "station.m.BTN")
	assert.Contains(t, clips, "station.e.EBN")

	assert.Contains(t, clips, "e.where the train will divide")
	assert.Contains(t, clips, "e.in the correct part of this train")
	assert.Contains(t, clips, "e.may travel in any part of the train")
	assert.Contains(t, clips, "m.should travel in the front")
	assert.Contains(t, clips, "m.should travel in the rear")
	assert.Contains(t, clips, "s.the next train will divide at")
	assert.Contains(t, clips, "station.e.HHE")
}

func TestBuildNextTrainDivideWithoutPortionStops(t *testing.T) {
	d := details()
	d.Coaches = 8
	d.CallingPoints = []announcement.CallingPoint{
		{CRS: "HHE", SplitType: announcement.SplitDivides, SplitForm: "rear.4"},
	}

	_, err := phil().BuildNextTrain(announcement.NextTrainOptions{TrainDetails: d})
	assert.Error(t, err)
}

func TestBuildNextTrainSplitTerminates(t *testing.T) {
	d := details()
	d.Coaches = 8
	d.CallingPoints = []announcement.CallingPoint{
		{CRS: "HHE", SplitType: announcement.SplitTerminates, SplitForm: "rear.4"},
	}

	tokens, err := phil().BuildNextTrain(announcement.NextTrainOptions{TrainDetails: d})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)
	assert.Contains(t, clips, "s.please note that the rear")
	assert.Contains(t, clips, "m.4 coaches will detach at")
	assert.Contains(t, clips, "station.e.HHE")
}

func TestBuildNextTrainShortPlatformGrouping(t *testing.T) {
	d := details()
	d.Coaches = 12
	d.CallingPoints = []announcement.CallingPoint{
		{CRS: "GBS", ShortPlatform: "front.4"},
		{CRS: "ANG", ShortPlatform: "front.7"},
		{CRS: "DUR", ShortPlatform: "front.4"},
	}

	tokens, err := phil().BuildNextTrain(announcement.NextTrainOptions{TrainDetails: d})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)

	// Stops sharing an instruction are merged into one clause; groups are
	// announced in deterministic order.
	first := indexOf(t, clips, "s.due to short platforms customers for")
	assert.Equal(t, "station.m.GBS", clips[first+1])
	assert.Equal(t, "m.and", clips[first+2])
	assert.Equal(t, "station.m.DUR", clips[first+3])
	assert.Equal(t, "e.should join the front 4 coaches", clips[first+4])
	assert.Equal(t, "m.and customers for", clips[first+5])
	assert.Equal(t, "station.m.ANG", clips[first+6])
	assert.Equal(t, "e.should join the front 7 coaches", clips[first+7])
}

func TestBuildNextTrainSingleShortPlatform(t *testing.T) {
	d := details()
	d.CallingPoints = []announcement.CallingPoint{
		{CRS: "RYE", ShortPlatform: "front.3"},
	}

	tokens, err := phil().BuildNextTrain(announcement.NextTrainOptions{TrainDetails: d})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)
	i := indexOf(t, clips, "m.due to a short platform at")
	assert.Equal(t, "station.m.RYE", clips[i+1])
	assert.Equal(t, "m.customers for this station", clips[i+2])
	assert.Equal(t, "e.should join the front 3 coaches", clips[i+3])
}

func TestBuildNextTrainRequestStops(t *testing.T) {
	d := details()
	d.TerminatingStation = "AFK"
	d.CallingPoints = []announcement.CallingPoint{
		{CRS: "RYE", RequestStop: true},
		{CRS: "APD", RequestStop: true},
	}

	tokens, err := phil().BuildNextTrain(announcement.NextTrainOptions{TrainDetails: d})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)

	// Request stops are left out of the calling list and announced in their
	// own clause, joined with "or".
	i := indexOf(t, clips, "m.calling at")
	assert.Equal(t, "station.e.AFK", clips[i+1])

	j := indexOf(t, clips, "s.customers may request to stop at")
	assert.Equal(t, "station.m.RYE", clips[j+1])
	assert.Equal(t, "m.or-2", clips[j+2])
	assert.Equal(t, "station.m.APD", clips[j+3])
	assert.Equal(t, "e.by contacting the conductor on board the train", clips[j+4])
}

func TestBuildNextTrainNotCallingAt(t *testing.T) {
	tokens, err := phil().BuildNextTrain(announcement.NextTrainOptions{
		TrainDetails: details(),
		NotCallingAt: []string{"HHE", "TBD"},
	})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)
	i := indexOf(t, clips, "s.please note this train will not call at")
	assert.Equal(t, "station.m.HHE", clips[i+1])
	assert.Equal(t, "m.and", clips[i+2])
	assert.Equal(t, "station.e.TBD", clips[i+3])
}

func TestBuildStandingTrain(t *testing.T) {
	tokens, err := phil().BuildStandingTrain(announcement.StandingTrainOptions{
		TrainDetails: details(),
		ThisStation:  "CLJ",
		MindTheGap:   true,
	})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)

	// Standing announcements never chime.
	assert.Equal(t, "station.m.CLJ", clips[0])
	assert.Equal(t, "s.this is", clips[1])
	assert.Equal(t, "station.e.CLJ", clips[2])
	assert.Equal(t, "w.mind the gap between the train and the platform", clips[3])
	assert.Equal(t, "w.mind the gap", clips[4])
	assert.Equal(t, "s.the train now standing at platform", clips[5])
	assert.Equal(t, "platform.s.4", clips[6])
	assert.Equal(t, "m.is the", clips[7])

	assert.NotContains(t, clips, "s.this train is formed of")
}

func TestBuildApproachingTrain(t *testing.T) {
	tokens, err := phil().BuildApproachingTrain(announcement.ApproachingTrainOptions{
		Chime:        voice.ChimeThree,
		TrainDetails: details(),
		Origin:       "VIC",
	})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)
	assert.Equal(t, "sfx - three chimes", clips[0])
	assert.Equal(t, "s.the train now approaching platform 4", clips[1])
	assert.Equal(t, "m.is the", clips[2])

	assert.Equal(t, "s.this train is the service from", clips[len(clips)-2])
	assert.Equal(t, "station.e.VIC", clips[len(clips)-1])
}

func TestBuildApproachingTrainPlatformForms(t *testing.T) {
	b := phil()

	for platform, expected := range map[string][]string{
		"0":   {"s.the train now approaching platform", "m.0"},
		"13a": {"s.the train now approaching platform", "platform.m.13a"},
		"21":  {"s.the train now approaching platform", "mins.m.21"},
	} {
		d := details()
		d.Platform = platform

		tokens, err := b.BuildApproachingTrain(announcement.ApproachingTrainOptions{
			TrainDetails: d,
			Origin:       "VIC",
		})
		require.NoError(t, err, platform)

		assert.Equal(t, expected, announcement.Clips(tokens)[:len(expected)], platform)
	}
}

func TestBuildFastTrain(t *testing.T) {
	tokens, err := phil().BuildFastTrain(announcement.FastTrainOptions{
		Chime:    voice.ChimeFour,
		Platform: "2",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"sfx - four chimes",
		"s.stand well away from the edge of platform",
		"platform.e.2",
		"w.the approaching train is not scheduled to stop at this station",
	}, announcement.Clips(tokens))
}

func TestBuildFastTrainFanfare(t *testing.T) {
	tokens, err := phil().BuildFastTrain(announcement.FastTrainOptions{
		Platform:        "2",
		Fanfare:         true,
		FastApproaching: true,
	})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)
	assert.Equal(t, "sfx - fanfare", clips[0])
	assert.Equal(t, "w.fast train approaching", clips[len(clips)-1])
}

func TestBuildDisruptedTrainDelayedBy(t *testing.T) {
	tokens, err := phil().BuildDisruptedTrain(announcement.DisruptedTrainOptions{
		Chime:              voice.ChimeFour,
		Hour:               "12",
		Min:                "30",
		TOC:                "southern",
		TerminatingStation: "BTN",
		Type:               announcement.DisruptionDelayedBy,
		DelayMins:          32,
	})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)
	i := indexOf(t, clips, "m.is delayed by approximately")
	assert.Equal(t, "mins.m.32", clips[i+1])
	assert.Equal(t, "e.minutes", clips[i+2])

	assert.Contains(t, clips, "w.please listen for further announcements")
	assert.Contains(t, clips, "w.were very sorry for the delay to this service")
}

func TestBuildDisruptedTrainDelayedByOverAnHour(t *testing.T) {
	tokens, err := phil().BuildDisruptedTrain(announcement.DisruptedTrainOptions{
		Hour:               "12",
		Min:                "30",
		TerminatingStation: "BTN",
		Type:               announcement.DisruptionDelayedBy,
		DelayMins:          75,
	})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)
	i := indexOf(t, clips, "m.is delayed by approximately")
	assert.Equal(t, []string{
		"platform.s.1", "m.hour", "m.and", "mins.m.15", "e.minutes",
	}, clips[i+1:i+6])

	assert.Contains(t, clips, "w.were extremely sorry for the severe delay to this service")
}

func TestBuildDisruptedTrainDelayedByWithReason(t *testing.T) {
	tokens, err := phil().BuildDisruptedTrain(announcement.DisruptedTrainOptions{
		Hour:               "12",
		Min:                "30",
		TerminatingStation: "BTN",
		Type:               announcement.DisruptionDelayedBy,
		DelayMins:          20,
		ReasonClips:        []string{"disruption-reason.e.a points failure"},
	})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)

	// The minutes clip switches to the middle inflection when a reason
	// follows it.
	i := indexOf(t, clips, "m.is delayed by approximately")
	assert.Equal(t, "m.minutes", clips[i+2])
	assert.Equal(t, "m.due to", clips[i+3])
	assert.Equal(t, "disruption-reason.e.a points failure", clips[i+4])

	assert.Contains(t, clips, "w.were sorry for the delay to this service")
}

func TestBuildDisruptedTrainCancelled(t *testing.T) {
	tokens, err := phil().BuildDisruptedTrain(announcement.DisruptedTrainOptions{
		Hour:               "12",
		Min:                "30",
		TOC:                "southern",
		TerminatingStation: "BTN",
		Type:               announcement.DisruptionCancel,
	})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)

	// Cancellations describe the service as "from this station".
	i := indexOf(t, clips, "toc.m.southern service from")
	assert.Equal(t, "e.this station-2", clips[i+1])
	assert.Equal(t, "m.to", clips[i+2])
	assert.Equal(t, "station.m.BTN", clips[i+3])

	assert.Contains(t, clips, "e.has been cancelled")
	assert.Contains(t, clips, "w.were sorry for the delay this will cause to your journey")
}

func TestBuildDisruptedTrainUnknownDelay(t *testing.T) {
	tokens, err := phil().BuildDisruptedTrain(announcement.DisruptedTrainOptions{
		Hour:               "12",
		Min:                "30",
		TerminatingStation: "BTN",
		Type:               announcement.DisruptionDelay,
	})
	require.NoError(t, err)

	clips := announcement.Clips(tokens)
	assert.Contains(t, clips, "e.is being delayed")
	assert.Contains(t, clips, "w.were sorry for the delay to this service")
}

func indexOf(t *testing.T, clips []string, clip string) int {
	t.Helper()

	for i, c := range clips {
		if c == clip {
			return i
		}
	}

	t.Fatalf("clip %q not found in %v", clip, clips)

	return -1
}
