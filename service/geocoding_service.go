package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/khudaiyar/aerora/cache"
	"github.com/khudaiyar/aerora/errors"
	"github.com/khudaiyar/aerora/models"
	"github.com/khudaiyar/aerora/normalize"
	"github.com/khudaiyar/aerora/providers"
)

// GeocodingService resolves free-text queries and coordinates into
// locations, persisting every match dedup-on-write.
type GeocodingService struct {
	provider     providers.WeatherProvider
	cache        *cache.Cache
	locationRepo LocationRepositoryInterface
	searchLimit  int
	geocodeTTL   time.Duration
}

// NewGeocodingService creates a geocoding service.
func NewGeocodingService(
	provider providers.WeatherProvider,
	cch *cache.Cache,
	locationRepo LocationRepositoryInterface,
	searchLimit int,
	geocodeTTL time.Duration,
) *GeocodingService {
	return &GeocodingService{
		provider:     provider,
		cache:        cch,
		locationRepo: locationRepo,
		searchLimit:  searchLimit,
		geocodeTTL:   geocodeTTL,
	}
}

// SearchLocation resolves a free-text query into location matches. When the
// upstream call fails the service degrades to a substring search over
// previously persisted locations; an empty result is not an error.
func (s *GeocodingService) SearchLocation(ctx context.Context, query string) ([]models.LocationMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewValidationError("query cannot be empty")
	}

	key := cache.QueryKey(cache.KindSearch, query)
	matches, err := cache.GetOrFetch(ctx, s.cache, key, s.geocodeTTL, func(ctx context.Context) ([]models.LocationMatch, error) {
		raw, err := s.provider.Fetch(ctx, providers.EndpointGeocode, providers.Params{Query: query, Limit: s.searchLimit})
		if err != nil {
			return nil, err
		}

		matches, err := normalize.LocationMatches(raw)
		if err != nil {
			return nil, err
		}

		s.persistMatches(matches)
		return matches, nil
	})
	if err != nil {
		if errors.IsUpstream(err) {
			slog.Warn("upstream geocoding failed, falling back to local search", "error", err, "query", query)
			local, dbErr := s.locationRepo.SearchByName(query)
			if dbErr != nil {
				return nil, opError("search location", err)
			}
			return local, nil
		}
		return nil, opError("search location", err)
	}

	return matches, nil
}

// ReverseGeocode resolves coordinates into the nearest known location. An
// empty upstream result maps to a not-found error.
func (s *GeocodingService) ReverseGeocode(ctx context.Context, lat, lon float64) (*models.LocationMatch, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	key := cache.CoordinateKey(cache.KindReverse, lat, lon)
	match, err := cache.GetOrFetch(ctx, s.cache, key, s.geocodeTTL, func(ctx context.Context) (*models.LocationMatch, error) {
		raw, err := s.provider.Fetch(ctx, providers.EndpointReverseGeocode, providers.Params{Lat: lat, Lon: lon, Limit: 1})
		if err != nil {
			return nil, err
		}

		match, err := normalize.ReverseGeocode(raw)
		if err != nil {
			return nil, err
		}
		if match == nil {
			return nil, errors.NewNotFoundError("no location at coordinates")
		}

		// Reverse results carry the queried coordinates, not the
		// upstream's own; callers asked about this point.
		match.Lat = lat
		match.Lon = lon

		s.persistMatches([]models.LocationMatch{*match})
		return match, nil
	})
	if err != nil {
		return nil, opError("reverse geocode", err)
	}

	return match, nil
}

func (s *GeocodingService) persistMatches(matches []models.LocationMatch) {
	if s.locationRepo == nil {
		return
	}

	for i := range matches {
		if err := s.locationRepo.SaveIfNew(&matches[i]); err != nil {
			slog.Warn("persist location match", "error", err, "name", matches[i].Name)
		}
	}
}
