package stationdir

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/davwheat/rail-announcements-sub000/pkg/raildata"
)

// shortSpec resolves a platform restriction for a concrete service. Most
// entries are fixed strings; coastway entries vary with traction type.
type shortSpec func(train *raildata.TrainService) string

func fixed(spec string) shortSpec {
	return func(*raildata.TrainService) string { return spec }
}

// turboStations mark diagrams worked by diesel units, which carry fewer
// passengers per platform length than the electric fleet.
var turboStations = []string{"AFK", "UCK", "APD", "EBT"}

func turboElectro(turbo, electro string) shortSpec {
	return func(train *raildata.TrainService) string {
		if train == nil {
			return electro
		}

		for _, o := range train.Origins {
			if slices.Contains(turboStations, o.CRS) {
				return turbo
			}
		}
		for _, d := range train.Destinations {
			if slices.Contains(turboStations, d.CRS) {
				return turbo
			}
		}
		for _, l := range train.SubsequentLocations {
			if slices.Contains(turboStations, l.CRS) {
				return turbo
			}
		}

		return electro
	}
}

// shortPlatforms maps CRS, then platform, then operator code to the portion
// of a full-length train that fits. The platform key "*" covers every
// platform at the station.
var shortPlatforms = map[string]map[string]map[string]shortSpec{
	"AGT": {"*": {"SN": fixed("front.4"), "TL": fixed("front.4")}},
	"ANG": {"*": {"SN": fixed("front.7"), "TL": fixed("front.7")}},
	"APD": {
		"1": {"SN": fixed("front.2")},
		"2": {"SN": fixed("front.2")},
	},
	"BAL": {
		"1": {"SN": fixed("front.10"), "TL": fixed("front.10"), "GN": fixed("front.10"), "GX": fixed("front.10"), "SE": fixed("front.10")},
		"2": {"SN": fixed("front.10"), "TL": fixed("front.10"), "GN": fixed("front.10"), "GX": fixed("front.10"), "SE": fixed("front.10")},
		"3": {"SN": fixed("front.8"), "TL": fixed("front.8"), "GN": fixed("front.8"), "GX": fixed("front.8"), "SE": fixed("front.8")},
		"4": {"SN": fixed("front.8"), "TL": fixed("front.8"), "GN": fixed("front.8"), "GX": fixed("front.8"), "SE": fixed("front.8")},
	},
	"BOG": {"4": {"SN": fixed("front.4")}},
	"CBR": {
		"1": {"SN": fixed("front.8")},
		"*": {"SN": fixed("front.6")},
	},
	"CHX": {"*": {"SE": fixed("front.11")}},
	"CLJ": {
		"14": {"SN": fixed("front.10")},
		"15": {"SN": fixed("front.10")},
		"16": {"SN": fixed("front.8")},
		"17": {"SN": fixed("front.8")},
	},
	"CLL": {
		"1": {"SN": fixed("front.4")},
		"2": {"SN": fixed("front.4")},
	},
	"CSD": {
		"1": {"SN": turboElectro("front.5", "front.6")},
		"2": {"SN": turboElectro("front.5", "front.6")},
	},
	"DFD": {"*": {"SE": fixed("front.10")}},
	"DUR": {"*": {"SN": fixed("front.6")}},
	"DVP": {"*": {"SE": fixed("front.8")}},
	"EPS": {"*": {"SN": fixed("front.10")}},
	"FOD": {
		"1": {"SN": fixed("front.6")},
		"2": {"SN": fixed("front.6")},
	},
	"GBS": {
		"1": {"SN": fixed("front.8")},
		"2": {"SN": fixed("front.5")},
	},
	"HGS": {"1": {"SN": turboElectro("front.6", "front.8")}},
	"HMD": {"*": {"SN": turboElectro("front.7", "front.8")}},
	"HYM": {"*": {"VT": fixed("front.9")}},
	"LIT": {
		"3": {"SN": fixed("front.8")},
		"4": {"SN": fixed("front.6")},
	},
	"LWS": {
		"3": {"SN": fixed("front.6")},
		"4": {"SN": fixed("front.7")},
		"5": {"SN": fixed("front.7")},
	},
	"MKC": {"2a": {"SN": fixed("front.6")}},
	"NWD": {
		"1": {"SN": turboElectro("front.7", "front.10")},
		"2": {"SN": turboElectro("front.7", "front.10")},
		"3": {"SN": turboElectro("front.7", "front.10")},
		"4": {"SN": turboElectro("front.7", "front.10")},
		"5": {"SN": turboElectro("front.7", "front.10")},
		"6": {"SN": turboElectro("front.7", "front.9")},
		"*": {"SE": fixed("front.8")},
	},
	"NXG": {
		"1": {"SN": fixed("front.5"), "TL": fixed("front.5")},
		"2": {"SN": fixed("front.10"), "TL": fixed("front.10")},
		"3": {"SN": fixed("front.8"), "TL": fixed("front.8")},
		"4": {"SN": fixed("front.8"), "TL": fixed("front.8")},
		"5": {"SN": fixed("front.10"), "TL": fixed("front.10")},
	},
	"ORE": {
		"1": {"SN": turboElectro("front.4", "front.5")},
		"2": {"SN": turboElectro("front.4", "front.5")},
		"*": {"SE": fixed("front.5")},
	},
	"OXT": {
		"1": {"SN": turboElectro("front.10", "front.11")},
		"2": {"SN": turboElectro("front.10", "front.11")},
		"3": {"SN": turboElectro("front.3", "front.4")},
	},
	"PEV": {
		"1": {"SN": turboElectro("front.4", "front.5")},
		"2": {"SN": turboElectro("front.4", "front.5")},
	},
	"PLD": {"2": {"SN": fixed("front.7")}},
	"PMH": {"1": {"SN": fixed("front.8")}},
	"PUL": {
		"1": {"SN": fixed("front.9")},
		"2": {"SN": fixed("front.9")},
	},
	"PUR": {
		"5": {"SN": fixed("front.10"), "TL": fixed("front.12")},
		"6": {"SN": fixed("front.10"), "TL": fixed("front.12")},
	},
	"RDD": {
		"1": {"SN": turboElectro("front.7", "front.9"), "TL": fixed("front.9")},
		"2": {"SN": turboElectro("front.7", "front.9"), "TL": fixed("front.9")},
	},
	"REI": {
		"1": {"SN": fixed("front.8"), "TL": fixed("front.8")},
		"2": {"SN": fixed("front.4"), "TL": fixed("front.4")},
	},
	"RYE": {
		"1": {"SN": fixed("front.3")},
		"2": {"SN": fixed("front.3")},
	},
	"SAF": {
		"1": {"SN": fixed("front.8"), "TL": fixed("front.8")},
		"2": {"SN": fixed("front.8"), "TL": fixed("front.8")},
	},
	"SCY": {
		"1": {"SN": turboElectro("front.6", "front.8"), "TL": fixed("front.8")},
		"2": {"SN": turboElectro("front.6", "front.8"), "TL": fixed("front.8")},
		"3": {"SN": turboElectro("front.6", "front.8"), "TL": fixed("front.8")},
		"4": {"SN": turboElectro("front.6", "front.8"), "TL": fixed("front.8")},
		"5": {"SN": turboElectro("front.6", "front.8"), "TL": fixed("front.8")},
	},
	"SLQ": {
		"1": {"SN": turboElectro("front.7", "front.8")},
		"2": {"SN": turboElectro("front.7", "front.8")},
		"*": {"SE": fixed("front.8")},
	},
	"SRC": {
		"1": {"SN": fixed("front.10"), "TL": fixed("front.10")},
		"2": {"SN": fixed("front.10"), "TL": fixed("front.10")},
		"3": {"SN": fixed("front.8"), "TL": fixed("front.8")},
		"4": {"SN": fixed("front.8"), "TL": fixed("front.8")},
	},
	"SWK": {
		"1": {"SN": fixed("front.9")},
		"2": {"SN": fixed("front.9")},
	},
	"TON": {"4": {"SN": fixed("front.8"), "TL": fixed("front.8")}},
	"TUH": {
		"1": {"SN": fixed("front.8"), "TL": fixed("front.7")},
		"2": {"SN": fixed("front.8"), "TL": fixed("front.7")},
		"3": {"SN": fixed("front.8"), "TL": fixed("front.7")},
		"4": {"SN": fixed("front.8"), "TL": fixed("front.7")},
	},
	"VIC": {
		"3": {"SN": fixed("front.9")},
		"4": {"SN": fixed("front.9")},
		"8": {"SN": fixed("front.10")},
		"*": {"SE": fixed("front.9")},
	},
	"WFJ": {"11": {"SN": fixed("front.4")}},
	"WMB": {
		"3": {"SN": fixed("front.7")},
		"4": {"SN": fixed("front.7")},
		"5": {"SN": fixed("front.7")},
		"6": {"SN": fixed("front.7")},
	},
	"WOH": {
		"1": {"SN": turboElectro("front.7", "front.9"), "TL": fixed("front.9")},
		"2": {"SN": turboElectro("front.7", "front.9"), "TL": fixed("front.9")},
	},
	"WWO": {
		"1": {"SN": fixed("front.6"), "TL": fixed("front.6")},
		"2": {"SN": fixed("front.6"), "TL": fixed("front.6")},
	},
}

// ShortPlatform returns the "<position>.<coaches>" restriction for a stop,
// or "" when the platform takes a full-length train. A restriction the
// whole train fits inside is not announced.
func ShortPlatform(crs, platform string, train *raildata.TrainService) string {
	if platform == "" || train == nil {
		return ""
	}

	byPlatform, ok := shortPlatforms[strings.ToUpper(crs)]
	if !ok {
		return ""
	}

	entry, ok := byPlatform[strings.ToLower(platform)]
	if !ok {
		entry, ok = byPlatform["*"]
	}
	if !ok {
		return ""
	}

	resolve, ok := entry[strings.ToUpper(train.OperatorCode)]
	if !ok {
		return ""
	}

	spec := resolve(train)
	if spec == "" {
		return ""
	}

	if _, capacity, found := strings.Cut(spec, "."); found {
		if n, err := strconv.Atoi(capacity); err == nil && train.Length > 0 && train.Length <= n {
			return ""
		}
	}

	return spec
}
