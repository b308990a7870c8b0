package normalize

import (
	"time"

	"github.com/khudaiyar/aerora/errors"
	"github.com/khudaiyar/aerora/models"
)

// LocationMatches maps a raw direct-geocoding payload into a slice of
// LocationMatch records. An empty upstream result is an empty slice, never
// an error.
func LocationMatches(raw any) ([]models.LocationMatch, error) {
	if raw == nil {
		return []models.LocationMatch{}, nil
	}

	entries, ok := raw.([]any)
	if !ok {
		return nil, errors.NewNormalizationError("geocoding payload is not an array", nil)
	}

	matches := make([]models.LocationMatch, 0, len(entries))
	for _, entry := range entries {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		matches = append(matches, locationMatch(item))
	}

	return matches, nil
}

// ReverseGeocode maps a raw reverse-geocoding payload into a single
// LocationMatch. An empty result yields nil, which the caller treats as
// not-found rather than a failure.
func ReverseGeocode(raw any) (*models.LocationMatch, error) {
	if raw == nil {
		return nil, nil
	}

	entries, ok := raw.([]any)
	if !ok {
		return nil, errors.NewNormalizationError("reverse geocoding payload is not an array", nil)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	item, ok := entries[0].(map[string]any)
	if !ok {
		return nil, errors.NewNormalizationError("reverse geocoding entry is not an object", nil)
	}

	match := locationMatch(item)
	return &match, nil
}

func locationMatch(item map[string]any) models.LocationMatch {
	return models.LocationMatch{
		Name:     String(item["name"]),
		State:    String(item["state"]),
		Country:  String(item["country"]),
		Lat:      Float64(item["lat"]),
		Lon:      Float64(item["lon"]),
		LastSeen: time.Now().UTC(),
	}
}
