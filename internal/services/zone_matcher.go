package services

import (
	"pricing-service/internal/models"
)

// MatchZone resolves the shipping zone for a destination address. Zones
// must already be sorted ascending by priority; the first zone containing
// any matching location wins, regardless of how specific a later zone's
// locations are. Returns nil when no zone matches - callers fall back to
// the default method, never an error.
//
// Codes are compared with exact string equality. State locations match
// against "COUNTRY:STATE".
func MatchZone(country, state, postcode string, zones []models.ShippingZone) *models.ShippingZone {
	stateCode := country + ":" + state

	for i := range zones {
		zone := &zones[i]
		for _, location := range zone.Locations {
			if locationMatches(location, country, stateCode, postcode) {
				return zone
			}
		}
	}
	return nil
}

func locationMatches(location models.ShippingLocation, country, stateCode, postcode string) bool {
	switch location.Type {
	case models.LocationTypeCountry:
		return location.Code == country
	case models.LocationTypeState:
		return location.Code == stateCode
	case models.LocationTypePostcode:
		return location.Code == postcode
	}
	return false
}
