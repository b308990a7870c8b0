package providers

import "context"

// Endpoint identifies one of the upstream's logical endpoints.
type Endpoint string

const (
	EndpointGeocode        Endpoint = "geocode"
	EndpointReverseGeocode Endpoint = "reverse_geocode"
	EndpointCurrentWeather Endpoint = "current_weather"
	EndpointForecast       Endpoint = "forecast"
)

// Params carries the parameters of an upstream request. Coordinates apply
// to weather and reverse-geocode calls, Query to direct geocoding.
type Params struct {
	Lat   float64
	Lon   float64
	Query string
	Limit int
}

// WeatherProvider issues outbound requests and returns the raw decoded JSON
// payload. It performs no retries; retry policy belongs to callers.
type WeatherProvider interface {
	Fetch(ctx context.Context, endpoint Endpoint, params Params) (any, error)
}
