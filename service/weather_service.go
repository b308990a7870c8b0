package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/khudaiyar/aerora/cache"
	"github.com/khudaiyar/aerora/config"
	"github.com/khudaiyar/aerora/errors"
	"github.com/khudaiyar/aerora/models"
	"github.com/khudaiyar/aerora/normalize"
	"github.com/khudaiyar/aerora/providers"
)

// WeatherService orchestrates cache lookup, upstream fetch, normalization
// and cache fill for the weather query operations.
type WeatherService struct {
	provider    providers.WeatherProvider
	cache       *cache.Cache
	weatherRepo WeatherRepositoryInterface
	ttl         config.CacheConfig

	// randFloat feeds the yesterday simulation; swapped for a fixed source
	// in tests.
	randFloat func() float64
}

// NewWeatherService creates a weather service over the given provider,
// cache and observation sink.
func NewWeatherService(
	provider providers.WeatherProvider,
	cch *cache.Cache,
	weatherRepo WeatherRepositoryInterface,
	ttl config.CacheConfig,
) *WeatherService {
	return &WeatherService{
		provider:    provider,
		cache:       cch,
		weatherRepo: weatherRepo,
		ttl:         ttl,
		randFloat:   rand.Float64,
	}
}

// CurrentWeather returns normalized current conditions for the coordinates,
// served from cache within the configured TTL.
func (s *WeatherService) CurrentWeather(ctx context.Context, lat, lon float64) (*models.CurrentConditions, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	key := cache.CoordinateKey(cache.KindCurrent, lat, lon)
	conditions, err := cache.GetOrFetch(ctx, s.cache, key, s.ttl.CurrentTTL(), func(ctx context.Context) (*models.CurrentConditions, error) {
		raw, err := s.provider.Fetch(ctx, providers.EndpointCurrentWeather, providers.Params{Lat: lat, Lon: lon})
		if err != nil {
			return nil, err
		}

		current, err := normalize.Current(raw)
		if err != nil {
			return nil, err
		}

		s.persistObservation(lat, lon, current)
		return current, nil
	})
	if err != nil {
		return nil, opError("current weather", err)
	}

	return conditions, nil
}

// WeekForecast returns up to seven daily summaries built from the upstream
// 3-hour forecast.
func (s *WeatherService) WeekForecast(ctx context.Context, lat, lon float64) (*models.ForecastResponse, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	key := cache.CoordinateKey(cache.KindForecast, lat, lon)
	forecast, err := cache.GetOrFetch(ctx, s.cache, key, s.ttl.ForecastTTL(), func(ctx context.Context) (*models.ForecastResponse, error) {
		records, err := s.fetchIntervals(ctx, lat, lon)
		if err != nil {
			return nil, err
		}

		return &models.ForecastResponse{Daily: normalize.AggregateDaily(records)}, nil
	})
	if err != nil {
		return nil, opError("week forecast", err)
	}

	return forecast, nil
}

// HourlyForecast returns the normalized 3-hour interval records without
// daily bucketing.
func (s *WeatherService) HourlyForecast(ctx context.Context, lat, lon float64) (*models.HourlyResponse, error) {
	if err := validateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	key := cache.CoordinateKey(cache.KindHourly, lat, lon)
	hourly, err := cache.GetOrFetch(ctx, s.cache, key, s.ttl.HourlyTTL(), func(ctx context.Context) (*models.HourlyResponse, error) {
		records, err := s.fetchIntervals(ctx, lat, lon)
		if err != nil {
			return nil, err
		}

		return &models.HourlyResponse{Hourly: records}, nil
	})
	if err != nil {
		return nil, opError("hourly forecast", err)
	}

	return hourly, nil
}

// YesterdayWeather approximates yesterday's conditions. The free upstream
// tier has no historical endpoint, so the result is current weather with a
// bounded random perturbation and is flagged as simulated.
func (s *WeatherService) YesterdayWeather(ctx context.Context, lat, lon float64) (*models.HistoricalConditions, error) {
	current, err := s.CurrentWeather(ctx, lat, lon)
	if err != nil {
		return nil, opError("yesterday weather", err)
	}

	history := &models.HistoricalConditions{
		Temperature:   current.Temperature - (s.randFloat()*4 - 2),
		FeelsLike:     current.FeelsLike - (s.randFloat()*4 - 2),
		Humidity:      clampHumidity(current.Humidity + int(s.randFloat()*20-10)),
		WindSpeed:     current.WindSpeed,
		Pressure:      current.Pressure,
		Description:   current.Description,
		Icon:          current.Icon,
		MainCondition: current.MainCondition,
		Timestamp:     time.Now().Unix() - 86400,
		Simulated:     true,
	}

	return history, nil
}

func (s *WeatherService) fetchIntervals(ctx context.Context, lat, lon float64) ([]models.IntervalRecord, error) {
	raw, err := s.provider.Fetch(ctx, providers.EndpointForecast, providers.Params{Lat: lat, Lon: lon})
	if err != nil {
		return nil, err
	}

	return normalize.Intervals(raw)
}

// persistObservation offers a normalized observation to the sink. Failures
// are logged, not surfaced: persistence is write-through, not part of the
// query contract.
func (s *WeatherService) persistObservation(lat, lon float64, current *models.CurrentConditions) {
	if s.weatherRepo == nil {
		return
	}

	record := &models.WeatherRecord{
		Latitude:      lat,
		Longitude:     lon,
		Temperature:   current.Temperature,
		FeelsLike:     current.FeelsLike,
		Humidity:      current.Humidity,
		Pressure:      current.Pressure,
		WindSpeed:     current.WindSpeed,
		WindDeg:       current.WindDeg,
		Description:   current.Description,
		Icon:          current.Icon,
		MainCondition: current.MainCondition,
		Cloudiness:    current.Cloudiness,
		Timestamp:     current.FetchedAt,
	}

	if err := s.weatherRepo.Create(record); err != nil {
		slog.Warn("persist weather observation", "error", err, "lat", lat, "lon", lon)
	}
}

func validateCoordinates(lat, lon float64) error {
	if !(models.Coordinates{Lat: lat, Lon: lon}).Valid() {
		return errors.NewValidationError(fmt.Sprintf("coordinates out of range: lat=%v lon=%v", lat, lon))
	}
	return nil
}

func clampHumidity(humidity int) int {
	if humidity < 0 {
		return 0
	}
	if humidity > 100 {
		return 100
	}
	return humidity
}

// opError tags an error with the failing operation while keeping the
// AppError type reachable through Unwrap.
func opError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
