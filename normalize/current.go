package normalize

import (
	"time"

	"github.com/khudaiyar/aerora/errors"
	"github.com/khudaiyar/aerora/models"
)

// defaultUVIndex stands in for the UV index, which the base current-weather
// endpoint does not carry. Wiring the One Call endpoint would replace it;
// until then callers get a fixed moderate value rather than a silent zero.
const defaultUVIndex = 5.0

// Current maps a raw current-weather payload into CurrentConditions.
// Absent numeric fields normalize to zero and an absent weather array
// yields empty condition strings; only a payload that is not an object at
// all is an error.
func Current(raw any) (*models.CurrentConditions, error) {
	tree, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.NewNormalizationError("current weather payload is not an object", nil)
	}

	main := object(tree, "main")
	wind := object(tree, "wind")
	sys := object(tree, "sys")
	clouds := object(tree, "clouds")

	conditions := &models.CurrentConditions{
		Temperature:    Float64(main["temp"]),
		FeelsLike:      Float64(main["feels_like"]),
		TempMin:        Float64(main["temp_min"]),
		TempMax:        Float64(main["temp_max"]),
		Humidity:       Int(main["humidity"]),
		Pressure:       Int(main["pressure"]),
		WindSpeed:      Float64(wind["speed"]),
		WindDeg:        Float64(wind["deg"]),
		WindDirection:  WindDirection(wind["deg"]),
		Visibility:     Int(tree["visibility"]),
		Cloudiness:     Int(clouds["all"]),
		UVIndex:        defaultUVIndex,
		Sunrise:        Int64(sys["sunrise"]),
		Sunset:         Int64(sys["sunset"]),
		TimezoneOffset: Int(tree["timezone"]),
		FetchedAt:      time.Now().UTC(),
	}

	if weather := list(tree["weather"]); len(weather) > 0 {
		if entry, ok := weather[0].(map[string]any); ok {
			conditions.Description = String(entry["description"])
			conditions.Icon = String(entry["icon"])
			conditions.MainCondition = String(entry["main"])
		}
	}

	return conditions, nil
}
