package voice

import "fmt"

// Phil is the male Amey/KeTech voice heard across the former Southern
// region. Timings are measured from the source recordings.
func Phil() *Voice {
	return New(philDefinition())
}

func philDefinition() Definition {
	return Definition{
		ID:         "amey-phil",
		Name:       "Phil Sayer",
		FilePrefix: "station/ketech/phil",
		Timing: Timing{
			BeforeTOC:       150,
			BeforeSection:   550,
			Short:           500,
			BeforeCallingAt: 870,
			AfterCallingAt:  0,
			BetweenStops:    320,
			AroundAnd:       100,
		},
		Phrases:        philPhrases(),
		StationCodes:   philStations,
		Platforms:      philPlatforms(),
		StandaloneTOCs: philStandaloneTOCs,
		EmbeddedTOCs:   philEmbeddedTOCs,
		DelayReasons:   philDelayReasons,
	}
}

func philPhrases() []string {
	phrases := []string{
		"m.and",
		"m.or-2",
		"m.to",
		"m.via",
		"m.the",
		"m.of",
		"m.service to",
		"m.service from",

		"s.platform-2",
		"m.for the",
		"m.for the delayed",
		"m.is the",
		"m.is the delayed",
		"m.delayed",

		"m.calling at",
		"e.only",

		"s.this is",
		"s.the train now standing at platform",
		"s.the train now approaching platform",
		"s.this train is the service from",
		"w.mind the gap between the train and the platform",
		"w.mind the gap",

		"s.stand well away from the edge of platform",
		"w.the approaching train is not scheduled to stop at this station",
		"w.fast train approaching",

		"e.where the train will divide",
		"s.please make sure you travel",
		"e.in the correct part of this train",
		"s.please note that",
		"s.please note that the front",
		"s.please note that the rear",
		"m.coach will detach at",
		"m.coaches",
		"m.will be detached and will terminate at",
		"s.customers for",
		"e.may travel in any part of the train",
		"s.the next train will divide at",
		"s.this train will divide at",
		"w.please listen for announcements on board the train",
		"e.coach",
		"e.coaches",
		"e.coaches of the train",

		"m.due to a short platform at",
		"m.customers for this station",
		"s.due to short platforms customers for",
		"m.customers for",
		"m.and customers for",

		"s.customers may request to stop at",
		"e.by contacting the conductor on board the train",

		"s.this train is formed of",
		"m.first class accommodation is situated at the",
		"s.please note this train will not call at",

		"s.were sorry to announce that the",
		"e.this station-2",
		"m.is delayed by approximately",
		"m.hour",
		"m.hours",
		"m.minute",
		"m.minutes",
		"e.minute",
		"e.minutes",
		"m.due to",
		"m.is being delayed due to",
		"e.is being delayed",
		"m.has been cancelled due to",
		"e.has been cancelled",
		"w.please listen for further announcements",
		"w.were sorry for the delay to this service",
		"w.were very sorry for the delay to this service",
		"w.were extremely sorry for the severe delay to this service",
		"w.were sorry for the delay this will cause to your journey",
	}

	for n := 2; n <= 12; n++ {
		phrases = append(phrases, fmt.Sprintf("m.%d coaches will detach at", n))
	}
	for n := 2; n <= 8; n++ {
		phrases = append(phrases, fmt.Sprintf("e.%d coaches of the train", n))
	}

	for _, pos := range []string{"front", "middle", "rear"} {
		phrases = append(phrases,
			fmt.Sprintf("m.%s", pos),
			fmt.Sprintf("e.%s of the train", pos),
			fmt.Sprintf("m.should travel in the %s", pos),
			fmt.Sprintf("e.should travel in the %s coach of the train", pos),
			fmt.Sprintf("e.should travel in the %s coaches of the train", pos),
			fmt.Sprintf("e.should join the %s coach only", pos),
			fmt.Sprintf("m.should join the %s coach only", pos),
		)
		for n := 2; n <= 12; n++ {
			phrases = append(phrases, fmt.Sprintf("e.should join the %s %d coaches", pos, n))
		}
	}

	return phrases
}

// philStations are the CRS codes with station name recordings in this
// voice, both middle and end inflections.
var philStations = []string{
	"ABW", "AFK", "AGT", "ANG", "APD", "AYH", "AYL", "BAL", "BAN", "BDM",
	"BHM", "BKG", "BKJ", "BMG", "BOG", "BRI", "BTN", "CBG", "CBR", "CHX",
	"CLJ", "CLL", "COV", "CRE", "CSA", "CSD", "DFD", "DUR", "DVP",
	"EBN", "EBT", "EDB", "EPS", "EUS", "FOD", "GBS", "GLC", "GTW", "GUI",
	"HGS", "HHE", "HMD", "HOV", "HYM", "KGX", "LBG", "LDS", "LEI", "LIT",
	"LIV", "LST", "LWS", "MAN", "MKC", "MYB", "NCL", "NMP", "NRW", "NWD",
	"NXG", "ORE", "OXF", "OXT", "PAD", "PBO", "PEV", "PLD", "PMH", "PMS",
	"PRE", "PUL", "PUR", "RDD", "RDG", "REI", "RYE", "SAA", "SAF", "SCY",
	"SHF", "SLQ", "SOU", "SRC", "STP", "SWK", "TBD", "TON", "TRI", "TUH",
	"UCK", "UNI", "VIC", "WAT", "WFJ", "WMB", "WOH", "WRH", "WVF", "WWO",
	"YRK",
}

func philPlatforms() []string {
	platforms := []string{"a", "b", "c", "d", "2a", "2b", "4a", "13a"}
	for n := 1; n <= 20; n++ {
		platforms = append(platforms, fmt.Sprintf("%d", n))
	}

	return platforms
}

// Operators recorded only as a bare name.
var philStandaloneTOCs = []string{
	"london overground",
	"eurostar",
	"tyne and wear metro",
	"elizabeth line",
}

// Operators with combined "<name> service to/from" recordings.
var philEmbeddedTOCs = []string{
	"arriva trains wales",
	"avanti west coast",
	"c2c",
	"caledonian sleeper",
	"chiltern railways",
	"crosscountry",
	"east midlands railway",
	"first capital connect",
	"first great western",
	"first transpennine express",
	"gatwick express",
	"grand central",
	"great northern",
	"great western railway",
	"greater anglia",
	"heathrow express",
	"hull trains",
	"island line",
	"london midland",
	"london north eastern railway",
	"london northwestern railway",
	"lumo",
	"merseyrail",
	"national express east coast",
	"northern",
	"northern rail",
	"scotrail",
	"south west trains",
	"south western railway",
	"southeastern",
	"southern",
	"stansted express",
	"thameslink",
	"transpennine express",
	"transport for wales",
	"virgin trains",
	"west midlands railway",
}

// philDelayReasons maps Darwin reason codes onto spoken reason clips.
// Values are played verbatim after "due to".
var philDelayReasons = map[int][]string{
	100: {"disruption-reason.e.an earlier operating incident"},
	101: {"disruption-reason.e.a fire alarm sounding at a station"},
	102: {"disruption-reason.e.a security alert"},
	104: {"disruption-reason.e.a fault with the signalling system"},
	105: {"disruption-reason.e.a points failure"},
	106: {"disruption-reason.e.a broken down train"},
	107: {"disruption-reason.e.an earlier broken down train"},
	108: {"disruption-reason.e.overrunning engineering work"},
	109: {"disruption-reason.e.a landslip"},
	110: {"disruption-reason.e.flooding"},
	111: {"disruption-reason.e.a fallen tree on the line"},
	112: {"disruption-reason.e.damage to the overhead electric wires"},
	113: {"disruption-reason.e.a shortage of train crew"},
	114: {"disruption-reason.e.a speed restriction because of high track temperatures"},
	115: {"disruption-reason.e.severe weather conditions"},
	116: {"disruption-reason.e.animals on the railway line"},
	117: {"disruption-reason.e.a road vehicle colliding with a bridge"},
	118: {"disruption-reason.e.the emergency services dealing with an incident"},
	119: {"disruption-reason.e.a person hit by a train"},
	120: {"disruption-reason.e.vandalism"},
	121: {"disruption-reason.e.a fault on this train"},
	122: {"disruption-reason.e.a fault on a train in front of this one"},
	123: {"disruption-reason.e.congestion caused by an earlier incident"},
	124: {"disruption-reason.e.a signal failure"},
	125: {"disruption-reason.e.a track circuit failure"},
	126: {"disruption-reason.e.a trespassing incident"},
	127: {"disruption-reason.e.a level crossing failure"},
	128: {"disruption-reason.e.engineering work not being finished on time"},
	130: {"disruption-reason.e.a problem currently under investigation"},
	132: {"disruption-reason.e.an object caught on the overhead electric wires"},
	134: {"disruption-reason.e.a shortage of trains because of accident damage"},
	136: {"disruption-reason.e.industrial action"},
	140: {"disruption-reason.e.a train failing to stop at a station", "disruption-reason.e.as planned"},
	142: {"disruption-reason.e.poor rail conditions caused by leaf fall"},
	144: {"disruption-reason.e.poor weather conditions"},
	147: {"disruption-reason.e.a passenger being taken ill on a train"},
	151: {"disruption-reason.e.a passenger incident"},
}
