package datasource

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/davwheat/rail-announcements-sub000/pkg/raildata"
)

func convertService(w wireService) raildata.TrainService {
	service := raildata.TrainService{
		RID:     w.RID,
		UID:     w.UID,
		TrainID: w.TrainID,
		RSID:    w.RSID,

		Operator:     w.Operator,
		OperatorCode: w.OperatorCode,

		IsPassengerService: w.IsPassengerService,
		IsCharter:          w.IsCharter,
		IsCancelled:        w.IsCancelled,

		CancelReason: convertReason(w.CancelReason),
		DelayReason:  convertReason(w.DelayReason),

		Length:      w.Length,
		DetachFront: w.DetachFront,

		Origins:      convertEndpoints(w.Origin),
		Destinations: convertEndpoints(w.Destination),

		Platform:         w.Platform,
		PlatformIsHidden: w.PlatformIsHidden,

		ScheduledArrival:   parseWireTime(w.STA, w.STASpecified),
		EstimatedArrival:   parseWireTime(w.ETA, w.ETASpecified),
		ActualArrival:      parseWireTime(w.ATA, w.ATASpecified),
		ScheduledDeparture: parseWireTime(w.STD, w.STDSpecified),
		EstimatedDeparture: parseWireTime(w.ETD, w.ETDSpecified),
		ActualDeparture:    parseWireTime(w.ATD, w.ATDSpecified),
	}

	for _, l := range w.SubsequentLocations {
		service.SubsequentLocations = append(service.SubsequentLocations, convertLocation(l, w.DetachFront))
	}

	return service
}

func convertReason(w *wireReason) *raildata.DisruptionReason {
	if w == nil {
		return nil
	}

	return &raildata.DisruptionReason{
		Code:   w.Value,
		Tiploc: w.Tiploc,
		Near:   w.Near,
	}
}

func convertEndpoints(wires []wireEndpoint) []raildata.ServiceEndpoint {
	endpoints := make([]raildata.ServiceEndpoint, len(wires))
	for i, w := range wires {
		endpoints[i] = raildata.ServiceEndpoint{
			LocationName: w.LocationName,
			CRS:          w.CRS,
			Tiploc:       w.Tiploc,
			Via:          w.Via,
		}
	}

	return endpoints
}

func convertLocation(w wireLocation, detachFront bool) raildata.ServiceLocation {
	location := raildata.ServiceLocation{
		LocationName: w.LocationName,
		Tiploc:       w.Tiploc,
		CRS:          w.CRS,

		IsOperational: w.IsOperational,
		IsPass:        w.IsPass,
		IsCancelled:   w.IsCancelled,
		IsRequestStop: slices.Contains(w.Activities, "R"),

		Platform: w.Platform,
	}

	for _, a := range w.Associations {
		location.Associations = append(location.Associations, convertAssociation(a, detachFront))
	}

	return location
}

// Wire association categories.
const (
	wireAssociationJoin = iota
	wireAssociationDivide
	wireAssociationLinkedFrom
	wireAssociationLinkedTo
)

func convertAssociation(w wireAssociation, detachFront bool) raildata.Association {
	association := raildata.Association{
		Category: convertAssociationCategory(w.Category),

		RID:         w.RID,
		UID:         w.UID,
		TrainID:     w.TrainID,
		Origin:      w.Origin,
		OriginCRS:   w.OriginCRS,
		Destination: w.Destination,
		DestCRS:     w.DestCRS,
		DestTiploc:  w.DestTiploc,
		IsCancelled: w.IsCancelled,
	}

	if association.Category == raildata.AssociationDivide && w.Service != nil {
		// The detaching portion rides at the front when the parent service
		// detaches its front, otherwise at the rear.
		position := "rear"
		if detachFront {
			position = "front"
		}

		association.PortionForm = position
		if len(w.Service.Locations) > 0 && w.Service.Locations[0].Length > 0 {
			association.PortionForm = fmt.Sprintf("%s.%d", position, w.Service.Locations[0].Length)
		}

		for _, l := range w.Service.Locations {
			portion := convertLocation(l.wireLocation, detachFront)
			portion.FalseDestinations = convertEndpoints(l.FalseDest)
			association.PortionLocations = append(association.PortionLocations, portion)
		}
	}

	return association
}

func convertAssociationCategory(category int) raildata.AssociationCategory {
	switch category {
	case wireAssociationJoin:
		return raildata.AssociationJoin
	case wireAssociationDivide:
		return raildata.AssociationDivide
	default:
		return raildata.AssociationLinked
	}
}
