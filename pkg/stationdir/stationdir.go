package stationdir

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Station is one national rail station known to the directory.
type Station struct {
	CRS  string
	Name string
}

// Directory resolves CRS codes to station names and back. Lookups are
// case-insensitive on names; CRS codes are always upper case.
type Directory struct {
	byCRS  map[string]Station
	byName map[string]Station
}

// NewDirectory builds a directory over the embedded station table.
func NewDirectory() *Directory {
	return newDirectory(stations)
}

func newDirectory(list []Station) *Directory {
	d := &Directory{
		byCRS:  make(map[string]Station, len(list)),
		byName: make(map[string]Station, len(list)),
	}

	for _, s := range list {
		d.byCRS[s.CRS] = s
		d.byName[strings.ToLower(s.Name)] = s
	}

	return d
}

// Lookup returns the station for a CRS code, or nil when unknown.
func (d *Directory) Lookup(crs string) *Station {
	if s, ok := d.byCRS[strings.ToUpper(crs)]; ok {
		return &s
	}

	return nil
}

// CRSForName returns the CRS code for a station name, or "" when the name
// is not in the directory.
func (d *Directory) CRSForName(name string) string {
	if s, ok := d.byName[strings.ToLower(name)]; ok {
		return s.CRS
	}

	return ""
}

// Codes returns every known CRS code, sorted.
func (d *Directory) Codes() []string {
	codes := make([]string, 0, len(d.byCRS))
	for crs := range d.byCRS {
		codes = append(codes, crs)
	}
	slices.Sort(codes)

	return codes
}
