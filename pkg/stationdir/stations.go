package stationdir

// stations is the embedded station name table. It covers the network
// served by the recorded voices; stations outside it cannot be announced
// by name and are skipped by callers.
var stations = []Station{
	{"ABW", "Abbey Wood"},
	{"AFK", "Ashford International"},
	{"AGT", "Aldrington"},
	{"ANG", "Angmering"},
	{"APD", "Appledore"},
	{"AYH", "Aylesham"},
	{"AYL", "Aylesford"},
	{"BAL", "Balham"},
	{"BAN", "Banbury"},
	{"BDM", "Bedford"},
	{"BHM", "Birmingham New Street"},
	{"BKG", "Barking"},
	{"BKJ", "Beckenham Junction"},
	{"BMG", "Bromley North"},
	{"BOG", "Bognor Regis"},
	{"BRI", "Bristol Temple Meads"},
	{"BTN", "Brighton"},
	{"CBG", "Cambridge"},
	{"CBR", "Canterbury East"},
	{"CHX", "London Charing Cross"},
	{"CLJ", "Clapham Junction"},
	{"CLL", "Collington"},
	{"CSD", "Cobham & Stoke d'Abernon"},
	{"COV", "Coventry"},
	{"CRE", "Crewe"},
	{"CSA", "Conisbrough"},
	{"DFD", "Dartford"},
	{"DUR", "Durrington-on-Sea"},
	{"DVP", "Dover Priory"},
	{"EBN", "Eastbourne"},
	{"EBT", "Edenbridge Town"},
	{"EDB", "Edinburgh Waverley"},
	{"EPS", "Epsom"},
	{"EUS", "London Euston"},
	{"FOD", "Ford"},
	{"GBS", "Goring-by-Sea"},
	{"GLC", "Glasgow Central"},
	{"GTW", "Gatwick Airport"},
	{"GUI", "Guildford"},
	{"HGS", "Hastings"},
	{"HHE", "Haywards Heath"},
	{"HMD", "Hampden Park"},
	{"HOV", "Hove"},
	{"HYM", "Haymarket"},
	{"KGX", "London Kings Cross"},
	{"LBG", "London Bridge"},
	{"LDS", "Leeds"},
	{"LEI", "Leicester"},
	{"LIT", "Littlehampton"},
	{"LIV", "Liverpool Lime Street"},
	{"LST", "London Liverpool Street"},
	{"LWS", "Lewes"},
	{"MAN", "Manchester Piccadilly"},
	{"MKC", "Milton Keynes Central"},
	{"MYB", "London Marylebone"},
	{"NCL", "Newcastle"},
	{"NMP", "Northampton"},
	{"NRW", "Norwich"},
	{"NWD", "Norwood Junction"},
	{"NXG", "New Cross Gate"},
	{"ORE", "Ore"},
	{"OXF", "Oxford"},
	{"OXT", "Oxted"},
	{"PAD", "London Paddington"},
	{"PBO", "Peterborough"},
	{"PEV", "Pevensey & Westham"},
	{"PLD", "Portslade"},
	{"PMH", "Portsmouth Harbour"},
	{"PMS", "Portsmouth & Southsea"},
	{"PRE", "Preston"},
	{"PUL", "Pulborough"},
	{"PUR", "Purley"},
	{"RDG", "Reading"},
	{"RDD", "Riddlesdown"},
	{"REI", "Reigate"},
	{"RYE", "Rye"},
	{"SAA", "St Albans Abbey"},
	{"SAF", "Salfords"},
	{"SCY", "South Croydon"},
	{"SHF", "Sheffield"},
	{"SLQ", "St Leonards Warrior Square"},
	{"SOU", "Southampton Central"},
	{"SRC", "Selhurst"},
	{"STP", "London St Pancras International"},
	{"SWK", "Southwick"},
	{"TBD", "Three Bridges"},
	{"TON", "Tonbridge"},
	{"TRI", "Tring"},
	{"TUH", "Tulse Hill"},
	{"UCK", "Uckfield"},
	{"UNI", "University"},
	{"VIC", "London Victoria"},
	{"WAT", "London Waterloo"},
	{"WFJ", "Watford Junction"},
	{"WMB", "Wembley Central"},
	{"WOH", "Woldingham"},
	{"WRH", "Worthing"},
	{"WVF", "Wivelsfield"},
	{"WWO", "West Worthing"},
	{"YRK", "York"},
}
