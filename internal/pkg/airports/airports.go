// Package airports holds the fixed airport reference table used by the
// console. The demo backend has no airport listing endpoint, so the table is
// compiled in.
package airports

import "github.com/skylinedemo/skyline-console/internal/app/dto"

var table = []dto.Airport{
	{Code: "ICN", Name: "Incheon International Airport", City: "Seoul", Country: "South Korea"},
	{Code: "GMP", Name: "Gimpo International Airport", City: "Seoul", Country: "South Korea"},
	{Code: "PUS", Name: "Gimhae International Airport", City: "Busan", Country: "South Korea"},
	{Code: "CJU", Name: "Jeju International Airport", City: "Jeju", Country: "South Korea"},
	{Code: "NRT", Name: "Narita International Airport", City: "Tokyo", Country: "Japan"},
	{Code: "KIX", Name: "Kansai International Airport", City: "Osaka", Country: "Japan"},
	{Code: "PEK", Name: "Beijing Capital International Airport", City: "Beijing", Country: "China"},
	{Code: "PVG", Name: "Shanghai Pudong International Airport", City: "Shanghai", Country: "China"},
	{Code: "BKK", Name: "Suvarnabhumi Airport", City: "Bangkok", Country: "Thailand"},
	{Code: "SIN", Name: "Changi Airport", City: "Singapore", Country: "Singapore"},
	{Code: "LAX", Name: "Los Angeles International Airport", City: "Los Angeles", Country: "United States"},
	{Code: "SFO", Name: "San Francisco International Airport", City: "San Francisco", Country: "United States"},
}

// All returns a copy of the reference table.
func All() []dto.Airport {
	out := make([]dto.Airport, len(table))
	copy(out, table)

	return out
}

// ByCode looks up an airport by its IATA code.
func ByCode(code string) (dto.Airport, bool) {
	for _, a := range table {
		if a.Code == code {
			return a, true
		}
	}

	return dto.Airport{}, false
}
