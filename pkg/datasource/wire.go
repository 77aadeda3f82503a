package datasource

import (
	"time"
)

// Wire representations of the staff departure board feed. Every timestamp
// comes as a value/specified pair; the specified flag is authoritative and
// the value is garbage when it is false.

type staffServicesResponse struct {
	TrainServices []wireService `json:"trainServices"`

	GeneratedAt  string `json:"generatedAt"`
	LocationName string `json:"locationName"`
	CRS          string `json:"crs"`

	PlatformsAreHidden     bool `json:"platformsAreHidden"`
	ServicesAreUnavailable bool `json:"servicesAreUnavailable"`
}

type wireService struct {
	RID     string `json:"rid"`
	UID     string `json:"uid"`
	TrainID string `json:"trainid"`
	RSID    string `json:"rsid"`

	Operator     string `json:"operator"`
	OperatorCode string `json:"operatorCode"`

	IsPassengerService bool `json:"isPassengerService"`
	IsCharter          bool `json:"isCharter"`
	IsCancelled        bool `json:"isCancelled"`

	CancelReason *wireReason `json:"cancelReason"`
	DelayReason  *wireReason `json:"delayReason"`

	Length      int  `json:"length"`
	DetachFront bool `json:"detachFront"`

	Origin      []wireEndpoint `json:"origin"`
	Destination []wireEndpoint `json:"destination"`

	Platform         string `json:"platform"`
	PlatformIsHidden bool   `json:"platformIsHidden"`

	STA          string `json:"sta"`
	STASpecified bool   `json:"staSpecified"`
	ATA          string `json:"ata"`
	ATASpecified bool   `json:"ataSpecified"`
	ETA          string `json:"eta"`
	ETASpecified bool   `json:"etaSpecified"`
	STD          string `json:"std"`
	STDSpecified bool   `json:"stdSpecified"`
	ATD          string `json:"atd"`
	ATDSpecified bool   `json:"atdSpecified"`
	ETD          string `json:"etd"`
	ETDSpecified bool   `json:"etdSpecified"`

	SubsequentLocations []wireLocation `json:"subsequentLocations"`
}

type wireReason struct {
	Tiploc string `json:"tiploc"`
	Near   bool   `json:"near"`
	Value  int    `json:"value"`
}

type wireEndpoint struct {
	LocationName string `json:"locationName"`
	CRS          string `json:"crs"`
	Tiploc       string `json:"tiploc"`
	Via          string `json:"via"`
}

type wireLocation struct {
	LocationName string `json:"locationName"`
	Tiploc       string `json:"tiploc"`
	CRS          string `json:"crs"`

	IsOperational bool `json:"isOperational"`
	IsPass        bool `json:"isPass"`
	IsCancelled   bool `json:"isCancelled"`

	Platform string `json:"platform"`

	// Activities carries two-letter CIF activity codes; "R" marks a
	// request stop.
	Activities []string `json:"activities"`

	Associations []wireAssociation `json:"associations"`
}

type wireAssociation struct {
	// Category is numeric on the wire: 0 join, 1 divide, 2 linked-from,
	// 3 linked-to.
	Category int `json:"category"`

	RID         string `json:"rid"`
	UID         string `json:"uid"`
	TrainID     string `json:"trainid"`
	Origin      string `json:"origin"`
	OriginCRS   string `json:"originCRS"`
	Destination string `json:"destination"`
	DestCRS     string `json:"destCRS"`
	DestTiploc  string `json:"destTiploc"`
	IsCancelled bool   `json:"isCancelled"`

	// Service is the expanded associated service, present when the feed
	// was queried with expand=true.
	Service *wireAssociatedService `json:"service"`
}

type wireAssociatedService struct {
	RID       string              `json:"rid"`
	UID       string              `json:"uid"`
	TrainID   string              `json:"trainid"`
	Locations []wireAssocLocation `json:"locations"`
}

type wireAssocLocation struct {
	wireLocation

	Length    int            `json:"length"`
	FalseDest []wireEndpoint `json:"falseDest"`
}

// wireTimeLayouts cover the feed's timestamp formats; Darwin emits local
// wall time with no zone designator.
var wireTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
}

func parseWireTime(value string, specified bool) *time.Time {
	if !specified || value == "" {
		return nil
	}

	for _, layout := range wireTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t
		}
	}

	return nil
}
