package service

import (
	"context"
	"time"

	"github.com/khudaiyar/aerora/models"
)

// WeatherServiceInterface defines the weather query operations exposed to
// the HTTP layer
type WeatherServiceInterface interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*models.CurrentConditions, error)
	WeekForecast(ctx context.Context, lat, lon float64) (*models.ForecastResponse, error)
	HourlyForecast(ctx context.Context, lat, lon float64) (*models.HourlyResponse, error)
	YesterdayWeather(ctx context.Context, lat, lon float64) (*models.HistoricalConditions, error)
}

// GeocodingServiceInterface defines the location query operations exposed
// to the HTTP layer
type GeocodingServiceInterface interface {
	SearchLocation(ctx context.Context, query string) ([]models.LocationMatch, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (*models.LocationMatch, error)
}

// LocationRepositoryInterface abstracts the location persistence sink
type LocationRepositoryInterface interface {
	SaveIfNew(location *models.LocationMatch) error
	SearchByName(query string) ([]models.LocationMatch, error)
	FindByNameAndCountry(name, country string) (*models.LocationMatch, error)
}

// WeatherRepositoryInterface abstracts the observation sink
type WeatherRepositoryInterface interface {
	Create(record *models.WeatherRecord) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
