package raildata

import (
	"time"
)

// TrainService is one normalized record from a live departure feed for a
// single station. All realtime fields use pointers; nil means the upstream
// feed did not supply a value.
type TrainService struct {
	RID     string
	UID     string
	TrainID string
	RSID    string

	Operator     string
	OperatorCode string

	IsPassengerService bool
	IsCharter          bool
	IsCancelled        bool

	CancelReason *DisruptionReason
	DelayReason  *DisruptionReason

	// Length is the total coach count, 0 when formation data is absent.
	Length      int
	DetachFront bool

	Origins      []ServiceEndpoint
	Destinations []ServiceEndpoint

	Platform         string
	PlatformIsHidden bool

	ScheduledArrival   *time.Time
	EstimatedArrival   *time.Time
	ActualArrival      *time.Time
	ScheduledDeparture *time.Time
	EstimatedDeparture *time.Time
	ActualDeparture    *time.Time

	SubsequentLocations []ServiceLocation
}

// ServiceEndpoint is an origin or destination of a service.
type ServiceEndpoint struct {
	LocationName string
	CRS          string
	Tiploc       string

	// Via is freeform routing text from the feed, eg "via Lewes".
	Via string
}

// ServiceLocation is a single location in a service's onward schedule.
type ServiceLocation struct {
	LocationName string
	Tiploc       string
	CRS          string

	IsOperational bool
	IsPass        bool
	IsCancelled   bool
	IsRequestStop bool

	Platform string

	// FalseDestinations are advertised destinations beyond where the
	// portion really terminates; calling patterns must be trimmed at the
	// first real destination.
	FalseDestinations []ServiceEndpoint

	Associations []Association
}

type AssociationCategory string

const (
	AssociationJoin   AssociationCategory = "join"
	AssociationDivide AssociationCategory = "divide"
	AssociationLinked AssociationCategory = "linked"
)

// Association links a location to another service, eg the rear portion that
// detaches here. When the feed has been expanded the portion's own calling
// pattern is carried in PortionLocations.
type Association struct {
	Category AssociationCategory

	RID         string
	UID         string
	TrainID     string
	Origin      string
	OriginCRS   string
	Destination string
	DestCRS     string
	DestTiploc  string
	IsCancelled bool

	// PortionForm describes which end of the train the associated portion
	// occupies, "<front|rear>.<coaches>". Empty when unknown.
	PortionForm string

	PortionLocations []ServiceLocation
}

// DisruptionReason is a Darwin delay or cancellation reason code.
type DisruptionReason struct {
	Code   int
	Tiploc string
	Near   bool
}

// HasDeparted reports whether the service has left the board's station.
func (s *TrainService) HasDeparted() bool {
	return s.ActualDeparture != nil
}

// PlatformConfirmed reports whether the feed has committed to a platform.
func (s *TrainService) PlatformConfirmed() bool {
	return s.Platform != "" && !s.PlatformIsHidden
}

// Delay returns how far behind schedule the departure is running. known is
// false when either timestamp is missing; callers must treat an unknown
// delay as unknown rather than zero. A negative duration (running early) is
// reported as known.
func (s *TrainService) Delay() (delay time.Duration, known bool) {
	if s.ScheduledDeparture == nil || s.EstimatedDeparture == nil {
		return 0, false
	}

	return s.EstimatedDeparture.Sub(*s.ScheduledDeparture), true
}

// DelayMins returns the delay in whole minutes. Negative or unknown delays
// are reported as not known, so every "not late" case looks the same to
// announcement logic.
func (s *TrainService) DelayMins() (mins int, known bool) {
	delay, known := s.Delay()
	if !known || delay < 0 {
		return 0, false
	}

	return int(delay.Minutes()), true
}

// FirstDestination returns the primary destination of the service.
func (s *TrainService) FirstDestination() ServiceEndpoint {
	if len(s.Destinations) == 0 {
		return ServiceEndpoint{}
	}

	return s.Destinations[0]
}

// FirstOrigin returns the primary origin of the service.
func (s *TrainService) FirstOrigin() ServiceEndpoint {
	if len(s.Origins) == 0 {
		return ServiceEndpoint{}
	}

	return s.Origins[0]
}

// DivideAssociation returns the location index and association for the first
// divide in the onward schedule, or -1 when the service does not divide.
func (s *TrainService) DivideAssociation() (int, *Association) {
	for i, location := range s.SubsequentLocations {
		for j, association := range location.Associations {
			if association.Category == AssociationDivide && !association.IsCancelled {
				return i, &s.SubsequentLocations[i].Associations[j]
			}
		}
	}

	return -1, nil
}
