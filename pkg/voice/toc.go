package voice

import (
	"strings"

	"golang.org/x/exp/slices"
)

// legacyTOCNames maps current operator codes onto the franchise names the
// original recordings were made under. Used when the legacy naming toggle is
// on, to match what a station actually played in that era.
var legacyTOCNames = map[string]string{
	"AW": "arriva trains wales",
	"CC": "c2c",
	"CH": "chiltern railways",
	"CS": "caledonian sleeper",
	"EM": "east midlands railway",
	"ES": "eurostar",
	"GC": "grand central",
	"GN": "first capital connect",
	"GR": "national express east coast",
	"GW": "first great western",
	"GX": "gatwick express",
	"HT": "hull trains",
	"HX": "heathrow express",
	"IL": "island line",
	"LM": "london midland",
	"LO": "london overground",
	"ME": "merseyrail",
	"NT": "northern rail",
	"SE": "southeastern",
	"SN": "southern",
	"SR": "scotrail",
	"SW": "south west trains",
	"TL": "first capital connect",
	"TP": "first transpennine express",
	"TW": "tyne and wear metro",
	"VT": "virgin trains",
	"XC": "virgin trains",
}

// lnwrStations are the termini that distinguish London Northwestern Railway
// services from West Midlands Railway ones under the shared LM code.
var lnwrStations = []string{"EUS", "CRE", "BDM", "SAA", "MKC", "TRI", "LIV", "NMP"}

// ProcessTOC resolves the operator name to speak for a live service. An
// empty result means the operator clause is omitted entirely (the recording
// does not exist for this voice).
func (v *Voice) ProcessTOC(tocName, tocCode, originCRS, destinationCRS string, useLegacy bool) string {
	tocCode = strings.ToUpper(tocCode)

	if useLegacy {
		if name, ok := legacyTOCNames[tocCode]; ok {
			if v.HasTOC(name) {
				return name
			}
			return ""
		}
	}

	switch tocCode {
	// LNER's recording predates the TOC's current branding.
	case "GR":
		if v.HasTOC("london north eastern railway") {
			return "london north eastern railway"
		}

	// West Midlands Trains runs two brands under one code.
	case "LM":
		if slices.Contains(lnwrStations, originCRS) || slices.Contains(lnwrStations, destinationCRS) {
			if v.HasTOC("london northwestern railway") {
				return "london northwestern railway"
			}
		}
		if v.HasTOC("west midlands railway") {
			return "west midlands railway"
		}
	}

	name := strings.ToLower(tocName)
	if v.HasTOC(name) {
		return name
	}

	return ""
}
