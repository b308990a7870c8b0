package cache

import (
	"fmt"
	"math"
	"strings"
)

// Query kinds used for cache keying. Distinct kinds never collide because
// the kind prefixes every key.
const (
	KindCurrent  = "current"
	KindForecast = "forecast"
	KindHourly   = "hourly"
	KindSearch   = "search"
	KindReverse  = "reverse"
)

// coordinatePrecision rounds coordinates to ~1.1km so nearby requests share
// a cache entry instead of each producing an upstream call.
const coordinatePrecision = 100.0

// CoordinateKey builds a cache key from a query kind and rounded coordinates.
func CoordinateKey(kind string, lat, lon float64) string {
	rLat := math.Round(lat*coordinatePrecision) / coordinatePrecision
	rLon := math.Round(lon*coordinatePrecision) / coordinatePrecision
	return fmt.Sprintf("%s:%.2f:%.2f", kind, rLat, rLon)
}

// QueryKey builds a cache key from a query kind and a canonicalized
// free-text query.
func QueryKey(kind, query string) string {
	return kind + ":" + strings.ToLower(strings.TrimSpace(query))
}
