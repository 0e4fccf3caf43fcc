package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// One World alliance carriers monitored by the service.
var seedAirlines = []Airlines{
	{Code: "AA", Name: "American Airlines", Alliance: "oneworld", Country: "United States"},
	{Code: "BA", Name: "British Airways", Alliance: "oneworld", Country: "United Kingdom"},
	{Code: "CX", Name: "Cathay Pacific", Alliance: "oneworld", Country: "Hong Kong"},
	{Code: "AY", Name: "Finnair", Alliance: "oneworld", Country: "Finland"},
	{Code: "IB", Name: "Iberia", Alliance: "oneworld", Country: "Spain"},
	{Code: "JL", Name: "Japan Airlines", Alliance: "oneworld", Country: "Japan"},
	{Code: "MH", Name: "Malaysia Airlines", Alliance: "oneworld", Country: "Malaysia"},
	{Code: "QF", Name: "Qantas", Alliance: "oneworld", Country: "Australia"},
	{Code: "QR", Name: "Qatar Airways", Alliance: "oneworld", Country: "Qatar"},
	{Code: "AT", Name: "Royal Air Maroc", Alliance: "oneworld", Country: "Morocco"},
	{Code: "RJ", Name: "Royal Jordanian", Alliance: "oneworld", Country: "Jordan"},
	{Code: "UL", Name: "SriLankan Airlines", Alliance: "oneworld", Country: "Sri Lanka"},
	{Code: "AS", Name: "Alaska Airlines", Alliance: "oneworld", Country: "United States"},
	{Code: "FJ", Name: "Fiji Airways", Alliance: "oneworld", Country: "Fiji"},
}

var seedRoutes = []Routes{
	{Origin: "LHR", Destination: "JFK", OriginCity: "London Heathrow", DestinationCity: "New York JFK", Region: "Transatlantic"},
	{Origin: "JFK", Destination: "LHR", OriginCity: "New York JFK", DestinationCity: "London Heathrow", Region: "Transatlantic"},
	{Origin: "LAX", Destination: "NRT", OriginCity: "Los Angeles", DestinationCity: "Tokyo Narita", Region: "Transpacific"},
	{Origin: "NRT", Destination: "LAX", OriginCity: "Tokyo Narita", DestinationCity: "Los Angeles", Region: "Transpacific"},
	{Origin: "SYD", Destination: "SIN", OriginCity: "Sydney", DestinationCity: "Singapore", Region: "Asia-Pacific"},
	{Origin: "SIN", Destination: "SYD", OriginCity: "Singapore", DestinationCity: "Sydney", Region: "Asia-Pacific"},
	{Origin: "LHR", Destination: "HKG", OriginCity: "London Heathrow", DestinationCity: "Hong Kong", Region: "Europe-Asia"},
	{Origin: "HKG", Destination: "LHR", OriginCity: "Hong Kong", DestinationCity: "London Heathrow", Region: "Europe-Asia"},
	{Origin: "DOH", Destination: "LHR", OriginCity: "Doha", DestinationCity: "London Heathrow", Region: "Middle East-Europe"},
	{Origin: "LHR", Destination: "DOH", OriginCity: "London Heathrow", DestinationCity: "Doha", Region: "Middle East-Europe"},
	{Origin: "JFK", Destination: "LAX", OriginCity: "New York JFK", DestinationCity: "Los Angeles", Region: "US Domestic"},
	{Origin: "LAX", Destination: "JFK", OriginCity: "Los Angeles", DestinationCity: "New York JFK", Region: "US Domestic"},
	{Origin: "MAD", Destination: "JFK", OriginCity: "Madrid", DestinationCity: "New York JFK", Region: "Transatlantic"},
	{Origin: "JFK", Destination: "MAD", OriginCity: "New York JFK", DestinationCity: "Madrid", Region: "Transatlantic"},
	{Origin: "HEL", Destination: "NRT", OriginCity: "Helsinki", DestinationCity: "Tokyo Narita", Region: "Europe-Asia"},
	{Origin: "NRT", Destination: "HEL", OriginCity: "Tokyo Narita", DestinationCity: "Helsinki", Region: "Europe-Asia"},
	{Origin: "SYD", Destination: "LAX", OriginCity: "Sydney", DestinationCity: "Los Angeles", Region: "Transpacific"},
	{Origin: "LAX", Destination: "SYD", OriginCity: "Los Angeles", DestinationCity: "Sydney", Region: "Transpacific"},
	{Origin: "LHR", Destination: "SYD", OriginCity: "London Heathrow", DestinationCity: "Sydney", Region: "Europe-Oceania"},
	{Origin: "SYD", Destination: "LHR", OriginCity: "Sydney", DestinationCity: "London Heathrow", Region: "Europe-Oceania"},
	{Origin: "AMM", Destination: "LHR", OriginCity: "Amman", DestinationCity: "London Heathrow", Region: "Middle East-Europe"},
	{Origin: "KUL", Destination: "NRT", OriginCity: "Kuala Lumpur", DestinationCity: "Tokyo Narita", Region: "Asia"},
	{Origin: "CMB", Destination: "SIN", OriginCity: "Colombo", DestinationCity: "Singapore", Region: "Asia"},
	{Origin: "CMN", Destination: "JFK", OriginCity: "Casablanca", DestinationCity: "New York JFK", Region: "Africa-Americas"},
}

// Which airlines realistically serve which routes, keyed
// "origin-destination". Not every airline serves every route.
var seedRouteAirlines = map[string][]string{
	"LHR-JFK": {"BA", "AA", "AY", "IB", "QR"},
	"JFK-LHR": {"BA", "AA", "AY", "IB", "QR"},
	"LAX-NRT": {"AA", "JL", "QF", "CX"},
	"NRT-LAX": {"JL", "AA", "QF", "CX"},
	"SYD-SIN": {"QF", "BA", "MH", "CX"},
	"SIN-SYD": {"QF", "BA", "MH", "CX"},
	"LHR-HKG": {"BA", "CX", "QR", "AY"},
	"HKG-LHR": {"CX", "BA", "QR", "AY"},
	"DOH-LHR": {"QR", "BA"},
	"LHR-DOH": {"QR", "BA"},
	"JFK-LAX": {"AA", "AS", "JL"},
	"LAX-JFK": {"AA", "AS", "JL"},
	"MAD-JFK": {"IB", "AA", "BA"},
	"JFK-MAD": {"IB", "AA", "BA"},
	"HEL-NRT": {"AY", "JL"},
	"NRT-HEL": {"AY", "JL"},
	"SYD-LAX": {"QF", "AA", "CX", "JL"},
	"LAX-SYD": {"QF", "AA", "CX", "JL"},
	"LHR-SYD": {"BA", "QF", "QR", "CX", "MH"},
	"SYD-LHR": {"QF", "BA", "QR", "CX", "MH"},
	"AMM-LHR": {"RJ", "BA"},
	"KUL-NRT": {"MH", "JL"},
	"CMB-SIN": {"UL", "MH"},
	"CMN-JFK": {"AT", "AA"},
}

// SeedReferenceData migrates the reference tables and inserts the
// monitored airline/route matrix. Idempotent: existing rows are left
// untouched, so it is safe to run on every startup.
func SeedReferenceData(db *gorm.DB) error {
	if err := db.AutoMigrate(&Airlines{}, &Routes{}, &RouteAirlines{}); err != nil {
		return fmt.Errorf("migrate reference tables: %w", err)
	}

	for _, airline := range seedAirlines {
		result := db.Where("code = ?", airline.Code).Attrs(airline).FirstOrCreate(&Airlines{})
		if result.Error != nil {
			return fmt.Errorf("seed airline %s: %w", airline.Code, result.Error)
		}
	}

	for _, route := range seedRoutes {
		var row Routes
		result := db.Where("origin = ? AND destination = ?", route.Origin, route.Destination).
			Attrs(route).FirstOrCreate(&row)
		if result.Error != nil {
			return fmt.Errorf("seed route %s-%s: %w", route.Origin, route.Destination, result.Error)
		}

		for _, code := range seedRouteAirlines[route.Origin+"-"+route.Destination] {
			result := db.Where(RouteAirlines{RouteID: row.ID, AirlineCode: code}).
				FirstOrCreate(&RouteAirlines{})
			if result.Error != nil {
				return fmt.Errorf("seed mapping %s-%s %s: %w", route.Origin, route.Destination, code, result.Error)
			}
		}
	}

	return nil
}
