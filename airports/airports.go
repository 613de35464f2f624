// Package airports holds the static airport directory and the
// country-to-continent table used for route classification.
package airports

import (
	"sort"

	"github.com/flightdesk/flightdesk/flight"
)

// Directory is a read-only lookup of airport metadata by IATA code.
// It is loaded once at startup and never mutated.
type Directory struct {
	records map[string]flight.AirportRecord
}

// NewDirectory returns a directory seeded with the built-in airport table.
func NewDirectory() *Directory {
	records := make(map[string]flight.AirportRecord, len(builtin))
	for _, r := range builtin {
		records[r.Code] = r
	}
	return &Directory{records: records}
}

// Lookup returns the record for a 3-letter IATA code.
func (d *Directory) Lookup(code string) (flight.AirportRecord, bool) {
	r, ok := d.records[code]
	return r, ok
}

// Codes returns all known IATA codes in sorted order.
func (d *Directory) Codes() []string {
	codes := make([]string, 0, len(d.records))
	for code := range d.records {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Continent maps a country name to its continent. Countries outside
// the table report false and are never classified long-haul.
func Continent(country string) (string, bool) {
	c, ok := continents[country]
	return c, ok
}

var continents = map[string]string{
	"United States":        "North America",
	"United Kingdom":       "Europe",
	"France":               "Europe",
	"Germany":              "Europe",
	"Japan":                "Asia",
	"United Arab Emirates": "Asia",
	"Nigeria":              "Africa",
}

var builtin = []flight.AirportRecord{
	{Code: "LAX", Name: "Los Angeles International Airport", City: "Los Angeles", State: "California", Country: "United States", Timezone: "America/Los_Angeles", ICAO: "KLAX"},
	{Code: "JFK", Name: "John F. Kennedy International Airport", City: "New York", State: "New York", Country: "United States", Timezone: "America/New_York", ICAO: "KJFK"},
	{Code: "LHR", Name: "London Heathrow Airport", City: "London", Country: "United Kingdom", Timezone: "Europe/London", ICAO: "EGLL"},
	{Code: "NRT", Name: "Narita International Airport", City: "Tokyo", Country: "Japan", Timezone: "Asia/Tokyo", ICAO: "RJAA"},
	{Code: "DXB", Name: "Dubai International Airport", City: "Dubai", Country: "United Arab Emirates", Timezone: "Asia/Dubai", ICAO: "OMDB"},
	{Code: "SFO", Name: "San Francisco International Airport", City: "San Francisco", State: "California", Country: "United States", Timezone: "America/Los_Angeles", ICAO: "KSFO"},
	{Code: "IND", Name: "Indianapolis International Airport", City: "Indianapolis", State: "Indiana", Country: "United States", Timezone: "America/Indiana/Indianapolis", ICAO: "KIND"},
	{Code: "LOS", Name: "Murtala Muhammed International Airport", City: "Lagos", Country: "Nigeria", Timezone: "Africa/Lagos", ICAO: "DNMM"},
	{Code: "ATL", Name: "Hartsfield-Jackson Atlanta International Airport", City: "Atlanta", State: "Georgia", Country: "United States", Timezone: "America/New_York", ICAO: "KATL"},
	{Code: "ORD", Name: "O'Hare International Airport", City: "Chicago", State: "Illinois", Country: "United States", Timezone: "America/Chicago", ICAO: "KORD"},
	{Code: "DEN", Name: "Denver International Airport", City: "Denver", State: "Colorado", Country: "United States", Timezone: "America/Denver", ICAO: "KDEN"},
	{Code: "MIA", Name: "Miami International Airport", City: "Miami", State: "Florida", Country: "United States", Timezone: "America/New_York", ICAO: "KMIA"},
	{Code: "CDG", Name: "Charles de Gaulle Airport", City: "Paris", Country: "France", Timezone: "Europe/Paris", ICAO: "LFPG"},
	{Code: "FRA", Name: "Frankfurt Airport", City: "Frankfurt", Country: "Germany", Timezone: "Europe/Berlin", ICAO: "EDDF"},
}
