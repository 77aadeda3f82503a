// Package scheduler watches live departure boards and decides which
// announcement to play at each station, and when.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/davwheat/rail-announcements-sub000/pkg/announcement"
	"github.com/davwheat/rail-announcements-sub000/pkg/audio"
	"github.com/davwheat/rail-announcements-sub000/pkg/datasource"
	"github.com/davwheat/rail-announcements-sub000/pkg/journal"
	"github.com/davwheat/rail-announcements-sub000/pkg/raildata"
	"github.com/davwheat/rail-announcements-sub000/pkg/stationdir"
	"github.com/davwheat/rail-announcements-sub000/pkg/util"
	"github.com/davwheat/rail-announcements-sub000/pkg/voice"
)

// Clock abstracts wall time so tests can drive the monitor directly.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func())
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

type MonitorConfig struct {
	// Station is the CRS code of the monitored station.
	Station string

	PollInterval  time.Duration
	SweepInterval time.Duration

	// Lookahead is how close to departure a train must be before its
	// next-train announcement plays.
	Lookahead time.Duration

	// MinDelay is the smallest delay announced as disruption.
	MinDelay time.Duration

	// SettleTime is how long a train must have been at the platform before
	// it is announced as standing rather than approaching.
	SettleTime time.Duration

	// Cooldown is the silence enforced between announcements.
	Cooldown time.Duration

	StandardTTL  time.Duration
	DisruptedTTL time.Duration

	NextTrains        bool
	ApproachingTrains bool
	StandingTrains    bool
	DisruptedTrains   bool

	// ViaPoints includes the routing "via" stations in announcements.
	ViaPoints bool

	// ShortPlatformsAfterSplit repeats short-platform advice for stops
	// served by a detaching portion.
	ShortPlatformsAfterSplit bool

	// UnconfirmedPlatforms announces next trains before the feed has
	// confirmed which platform they will use.
	UnconfirmedPlatforms bool

	Chime          voice.ChimeStyle
	LegacyTOCNames bool
}

func (c *MonitorConfig) applyDefaults() {
	if c.PollInterval == 0 {
		c.PollInterval = 10 * time.Second
	}
	if c.SweepInterval == 0 {
		c.SweepInterval = time.Minute
	}
	if c.Lookahead == 0 {
		c.Lookahead = 4 * time.Minute
	}
	if c.MinDelay == 0 {
		c.MinDelay = 5 * time.Minute
	}
	if c.SettleTime == 0 {
		c.SettleTime = 20 * time.Second
	}
	if c.Cooldown == 0 {
		c.Cooldown = 5 * time.Second
	}
	if c.StandardTTL == 0 {
		c.StandardTTL = time.Hour
	}
	if c.DisruptedTTL == 0 {
		c.DisruptedTTL = 10 * time.Minute
	}
}

// StationMonitor runs the announcement cycle for a single station. One
// train at most is announced per poll, highest-priority category first, so
// a busy board never queues a backlog of stale announcements.
type StationMonitor struct {
	config MonitorConfig

	source   datasource.Source
	builder  *announcement.Builder
	renderer audio.Renderer
	journal  journal.Recorder
	clock    Clock

	translator *translator
	records    *announcementRecords

	mutex     sync.Mutex
	busy      bool
	lastSweep time.Time
}

func NewStationMonitor(config MonitorConfig, source datasource.Source, builder *announcement.Builder, renderer audio.Renderer, directory *stationdir.Directory, recorder journal.Recorder, clock Clock) *StationMonitor {
	config.applyDefaults()

	if recorder == nil {
		recorder = journal.NopRecorder{}
	}
	if clock == nil {
		clock = systemClock{}
	}

	monitor := &StationMonitor{
		config: config,

		source:   source,
		builder:  builder,
		renderer: renderer,
		journal:  recorder,
		clock:    clock,

		translator: &translator{
			voice:                    builder.Voice(),
			directory:                directory,
			legacyTOCNames:           config.LegacyTOCNames,
			viaPoints:                config.ViaPoints,
			shortPlatformsAfterSplit: config.ShortPlatformsAfterSplit,
		},
		records: newAnnouncementRecords(config.StandardTTL, config.DisruptedTTL),
	}
	monitor.lastSweep = clock.Now()

	return monitor
}

// Run polls the departure board until ctx is cancelled.
func (m *StationMonitor) Run(ctx context.Context) {
	log.Info().
		Str("station", m.config.Station).
		Str("voice", m.builder.Voice().ID).
		Msg("Starting station monitor")

	for {
		startTime := time.Now()

		m.Tick(ctx)

		executionDuration := time.Since(startTime)
		waitTime := m.config.PollInterval - executionDuration

		if waitTime <= 0 {
			waitTime = time.Millisecond
		}

		select {
		case <-ctx.Done():
			log.Info().Str("station", m.config.Station).Msg("Stopping station monitor")
			return
		case <-time.After(waitTime):
		}
	}
}

// Tick runs one poll cycle. Exported so tests can drive the monitor
// without the poll loop.
func (m *StationMonitor) Tick(ctx context.Context) {
	now := m.clock.Now()

	if now.Sub(m.lastSweep) >= m.config.SweepInterval {
		m.records.Sweep(now)
		m.lastSweep = now
	}

	// Skip the cycle entirely while an announcement is playing.
	if m.isBusy() {
		return
	}

	services, err := m.source.GetServices(ctx, m.config.Station)
	if err != nil {
		log.Error().Err(err).Str("station", m.config.Station).Msg("Failed to fetch departure board")
		return
	}
	if ctx.Err() != nil {
		return
	}

	util.InPlaceFilter(&services, func(s raildata.TrainService) bool {
		return s.IsPassengerService
	})

	for i := range services {
		if m.config.StandingTrains && m.eligibleStanding(&services[i], now) {
			m.announce(ctx, categoryStanding, &services[i])
			return
		}
	}
	for i := range services {
		if m.config.ApproachingTrains && m.eligibleApproaching(&services[i], now) {
			m.announce(ctx, categoryApproaching, &services[i])
			return
		}
	}
	for i := range services {
		if m.config.NextTrains && m.eligibleNext(&services[i], now) {
			m.announce(ctx, categoryNext, &services[i])
			return
		}
	}
	for i := range services {
		if m.config.DisruptedTrains && m.eligibleDisrupted(&services[i]) {
			m.announce(ctx, categoryDisrupted, &services[i])
			return
		}
	}
}

type announcementCategory string

const (
	categoryNext        announcementCategory = "next"
	categoryApproaching announcementCategory = "approaching"
	categoryStanding    announcementCategory = "standing"
	categoryDisrupted   announcementCategory = "disrupted"
)

func (m *StationMonitor) eligibleStanding(train *raildata.TrainService, now time.Time) bool {
	if !m.records.CanAnnounceStanding(train.RID) {
		return false
	}
	if train.IsCancelled || train.HasDeparted() || !train.PlatformConfirmed() {
		return false
	}
	if train.ActualArrival == nil {
		return false
	}

	return now.Sub(*train.ActualArrival) >= m.config.SettleTime
}

func (m *StationMonitor) eligibleApproaching(train *raildata.TrainService, now time.Time) bool {
	if !m.records.CanAnnounceApproaching(train.RID) {
		return false
	}
	if train.IsCancelled || train.HasDeparted() || !train.PlatformConfirmed() {
		return false
	}
	if train.ActualArrival == nil {
		return false
	}

	return now.Sub(*train.ActualArrival) < m.config.SettleTime
}

func (m *StationMonitor) eligibleNext(train *raildata.TrainService, now time.Time) bool {
	if !m.records.CanAnnounceNext(train.RID) {
		return false
	}
	if train.IsCancelled || train.HasDeparted() {
		return false
	}
	if !m.config.UnconfirmedPlatforms && !train.PlatformConfirmed() {
		return false
	}
	// The window is keyed on the estimated departure so services that
	// originate here, and so carry no arrival times, still announce.
	if train.EstimatedDeparture == nil {
		return false
	}

	return train.EstimatedDeparture.Sub(now) <= m.config.Lookahead
}

func (m *StationMonitor) eligibleDisrupted(train *raildata.TrainService) bool {
	if !m.records.CanAnnounceDisrupted(train.RID) {
		return false
	}
	if train.HasDeparted() {
		return false
	}

	if train.IsCancelled {
		return true
	}

	if delay, known := train.Delay(); known && delay >= m.config.MinDelay {
		return true
	}

	// A scheduled departure with no estimate means the feed has lost track
	// of the train.
	return train.EstimatedDeparture == nil && train.ScheduledDeparture != nil
}

func (m *StationMonitor) announce(ctx context.Context, category announcementCategory, train *raildata.TrainService) {
	tokens, err := m.build(category, train)
	if err != nil {
		log.Error().
			Err(err).
			Str("station", m.config.Station).
			Str("category", string(category)).
			Str("rid", train.RID).
			Msg("Failed to build announcement")
		return
	}

	now := m.clock.Now()

	switch category {
	case categoryNext:
		m.records.MarkNext(train.RID, now)
	case categoryApproaching:
		m.records.MarkApproaching(train.RID, now)
	case categoryStanding:
		m.records.MarkStanding(train.RID, now)
	case categoryDisrupted:
		m.records.MarkDisrupted(train.RID, now)
	}

	if ctx.Err() != nil {
		return
	}

	m.setBusy(true)
	defer m.clock.AfterFunc(m.config.Cooldown, func() { m.setBusy(false) })

	log.Info().
		Str("station", m.config.Station).
		Str("category", string(category)).
		Str("rid", train.RID).
		Str("platform", train.Platform).
		Str("destination", train.FirstDestination().CRS).
		Msg("Playing announcement")

	if err := m.renderer.Render(ctx, m.builder.Voice(), tokens, audio.ModePlay); err != nil {
		log.Error().Err(err).Str("rid", train.RID).Msg("Failed to play announcement")
		return
	}

	m.journal.Record(ctx, journal.Entry{
		Station:  m.config.Station,
		Category: string(category),

		RID:                train.RID,
		TOC:                train.Operator,
		Platform:           train.Platform,
		TerminatingStation: train.FirstDestination().CRS,
		Clips:              announcement.Clips(tokens),

		AnnouncedAt: now,
	})
}

func (m *StationMonitor) build(category announcementCategory, train *raildata.TrainService) ([]announcement.Token, error) {
	switch category {
	case categoryNext:
		opts, err := m.translator.NextTrain(train, m.config.Chime)
		if err != nil {
			return nil, err
		}
		return m.builder.BuildNextTrain(opts)

	case categoryApproaching:
		opts, err := m.translator.ApproachingTrain(train, m.config.Chime)
		if err != nil {
			return nil, err
		}
		return m.builder.BuildApproachingTrain(opts)

	case categoryStanding:
		opts, err := m.translator.StandingTrain(train, m.config.Station)
		if err != nil {
			return nil, err
		}
		return m.builder.BuildStandingTrain(opts)

	case categoryDisrupted:
		opts, err := m.translator.DisruptedTrain(train, m.config.Chime)
		if err != nil {
			return nil, err
		}

		tokens, err := m.builder.BuildDisruptedTrain(opts)
		if errors.Is(err, announcement.ErrMissingClip) && len(opts.ReasonClips) > 0 {
			// The voice may not have a recording for this reason code.
			// The announcement is still worth playing without it.
			opts.ReasonClips = nil
			tokens, err = m.builder.BuildDisruptedTrain(opts)
		}
		return tokens, err
	}

	return nil, errors.New("unknown announcement category")
}

func (m *StationMonitor) isBusy() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.busy
}

func (m *StationMonitor) setBusy(busy bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.busy = busy
}
