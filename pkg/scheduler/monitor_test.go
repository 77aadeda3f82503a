package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davwheat/rail-announcements-sub000/pkg/announcement"
	"github.com/davwheat/rail-announcements-sub000/pkg/audio"
	"github.com/davwheat/rail-announcements-sub000/pkg/journal"
	"github.com/davwheat/rail-announcements-sub000/pkg/raildata"
	"github.com/davwheat/rail-announcements-sub000/pkg/stationdir"
	"github.com/davwheat/rail-announcements-sub000/pkg/voice"
)

type fakeSource struct {
	services []raildata.TrainService
	err      error
}

func (s *fakeSource) GetServices(context.Context, string) ([]raildata.TrainService, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]raildata.TrainService{}, s.services...), nil
}

type fakeRenderer struct {
	rendered [][]announcement.Token
}

func (r *fakeRenderer) Render(_ context.Context, _ *voice.Voice, tokens []announcement.Token, _ audio.Mode) error {
	r.rendered = append(r.rendered, tokens)
	return nil
}

type fakeRecorder struct {
	entries []journal.Entry
}

func (r *fakeRecorder) Record(_ context.Context, entry journal.Entry) {
	r.entries = append(r.entries, entry)
}

// fakeClock holds cooldown callbacks until the test fires them.
type fakeClock struct {
	now     time.Time
	pending []func()
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(_ time.Duration, f func()) {
	c.pending = append(c.pending, f)
}

func (c *fakeClock) fire() {
	for _, f := range c.pending {
		f()
	}
	c.pending = nil
}

func testMonitor(services []raildata.TrainService) (*StationMonitor, *fakeRenderer, *fakeRecorder, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)}
	renderer := &fakeRenderer{}
	recorder := &fakeRecorder{}

	monitor := NewStationMonitor(
		MonitorConfig{
			Station:           "CLJ",
			NextTrains:        true,
			ApproachingTrains: true,
			StandingTrains:    true,
			DisruptedTrains:   true,

			ViaPoints:                true,
			ShortPlatformsAfterSplit: true,

			Chime: voice.ChimeFour,
		},
		&fakeSource{services: services},
		announcement.NewBuilder(voice.Phil()),
		renderer,
		stationdir.NewDirectory(),
		recorder,
		clock,
	)

	return monitor, renderer, recorder, clock
}

func nextTrainService(clock *fakeClock) raildata.TrainService {
	return raildata.TrainService{
		RID:          "202608301234567",
		Operator:     "Southern",
		OperatorCode: "SN",

		IsPassengerService: true,

		Platform: "4",

		Origins:      []raildata.ServiceEndpoint{{CRS: "VIC", Tiploc: "VICTRIC"}},
		Destinations: []raildata.ServiceEndpoint{{CRS: "BTN", Tiploc: "BRGHTN"}},

		ScheduledArrival:   timePtr(clock.now.Add(2 * time.Minute)),
		EstimatedArrival:   timePtr(clock.now.Add(2 * time.Minute)),
		ScheduledDeparture: timePtr(clock.now.Add(3 * time.Minute)),
		EstimatedDeparture: timePtr(clock.now.Add(3 * time.Minute)),

		SubsequentLocations: []raildata.ServiceLocation{
			{CRS: "HHE", Tiploc: "HYWRDSH"},
			{CRS: "BTN", Tiploc: "BRGHTN"},
		},
	}
}

func TestMonitorAnnouncesNextTrainOnce(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)}
	monitor, renderer, recorder, clock := testMonitor([]raildata.TrainService{nextTrainService(clock)})

	monitor.Tick(context.Background())

	require.Len(t, renderer.rendered, 1)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "next", recorder.entries[0].Category)
	assert.Equal(t, "CLJ", recorder.entries[0].Station)
	assert.Equal(t, "BTN", recorder.entries[0].TerminatingStation)

	// Playback holds the monitor in cooldown until the clock fires.
	monitor.Tick(context.Background())
	assert.Len(t, renderer.rendered, 1)

	clock.fire()

	// Announced once per visit, never repeated.
	monitor.Tick(context.Background())
	assert.Len(t, renderer.rendered, 1)
}

func TestMonitorSkipsTrainsOutsideLookahead(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)}
	train := nextTrainService(clock)
	train.EstimatedDeparture = timePtr(clock.now.Add(20 * time.Minute))
	train.ScheduledDeparture = train.EstimatedDeparture
	train.EstimatedArrival = timePtr(clock.now.Add(19 * time.Minute))
	train.ScheduledArrival = train.EstimatedArrival

	monitor, renderer, _, _ := testMonitor([]raildata.TrainService{train})

	monitor.Tick(context.Background())
	assert.Empty(t, renderer.rendered)
}

func TestMonitorAnnouncesOriginatingService(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)}

	// Services starting here carry no arrival times at all.
	train := nextTrainService(clock)
	train.ScheduledArrival = nil
	train.EstimatedArrival = nil
	train.ActualArrival = nil

	monitor, renderer, recorder, _ := testMonitor([]raildata.TrainService{train})

	monitor.Tick(context.Background())

	require.Len(t, renderer.rendered, 1)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "next", recorder.entries[0].Category)
}

func TestMonitorSkipsNonPassengerServices(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)}
	train := nextTrainService(clock)
	train.IsPassengerService = false

	monitor, renderer, _, _ := testMonitor([]raildata.TrainService{train})

	monitor.Tick(context.Background())
	assert.Empty(t, renderer.rendered)
}

func TestMonitorStandingTakesPriority(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)}

	arrived := nextTrainService(clock)
	arrived.RID = "arrived"
	arrived.ActualArrival = timePtr(clock.now.Add(-time.Minute))

	waiting := nextTrainService(clock)
	waiting.RID = "waiting"

	monitor, renderer, recorder, _ := testMonitor([]raildata.TrainService{waiting, arrived})

	monitor.Tick(context.Background())

	require.Len(t, renderer.rendered, 1)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "standing", recorder.entries[0].Category)
	assert.Equal(t, "arrived", recorder.entries[0].RID)
}

func TestMonitorApproachingBeforeSettled(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)}

	train := nextTrainService(clock)
	train.ActualArrival = timePtr(clock.now.Add(-5 * time.Second))

	monitor, _, recorder, _ := testMonitor([]raildata.TrainService{train})

	monitor.Tick(context.Background())

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "approaching", recorder.entries[0].Category)
}

func TestMonitorAnnouncesCancellation(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)}

	train := nextTrainService(clock)
	train.IsCancelled = true
	train.Platform = ""
	train.EstimatedArrival = nil
	train.EstimatedDeparture = nil

	monitor, renderer, recorder, _ := testMonitor([]raildata.TrainService{train})

	monitor.Tick(context.Background())

	require.Len(t, renderer.rendered, 1)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "disrupted", recorder.entries[0].Category)

	clips := announcement.Clips(renderer.rendered[0])
	assert.Contains(t, clips, "e.has been cancelled")
}

func TestMonitorAnnouncesLostTrain(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)}

	// A scheduled departure with no estimate left on the board.
	train := nextTrainService(clock)
	train.Platform = ""
	train.EstimatedArrival = nil
	train.EstimatedDeparture = nil

	monitor, _, recorder, _ := testMonitor([]raildata.TrainService{train})

	monitor.Tick(context.Background())

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "disrupted", recorder.entries[0].Category)
}

func TestMonitorSourceFailureIsNoOp(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)}
	renderer := &fakeRenderer{}

	monitor := NewStationMonitor(
		MonitorConfig{
			Station:    "CLJ",
			NextTrains: true,
			Chime:      voice.ChimeFour,
		},
		&fakeSource{err: errors.New("upstream unavailable")},
		announcement.NewBuilder(voice.Phil()),
		renderer,
		stationdir.NewDirectory(),
		nil,
		clock,
	)

	monitor.Tick(context.Background())

	// A failed fetch must not mark anything or hold the monitor busy.
	assert.Empty(t, renderer.rendered)
	assert.False(t, monitor.isBusy())
}

func TestMonitorDepartedTrainsIgnored(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)}

	train := nextTrainService(clock)
	train.ActualDeparture = timePtr(clock.now.Add(-time.Minute))

	monitor, renderer, _, _ := testMonitor([]raildata.TrainService{train})

	monitor.Tick(context.Background())
	assert.Empty(t, renderer.rendered)
}
