package normalize

import "math"

// compassPoints is the fixed 16-point rose used for derived wind direction.
var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// WindDirection maps wind degrees onto the 16-point compass. A nil degree
// value reads as north, matching the upstream convention for calm wind.
func WindDirection(deg any) string {
	if deg == nil {
		return "N"
	}
	return windDirection(Float64(deg))
}

func windDirection(deg float64) string {
	index := int(math.Round(deg/22.5)) % 16
	if index < 0 {
		index += 16
	}
	return compassPoints[index]
}
