// Package models defines data structures used throughout the application
package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

// Coordinates is a latitude/longitude pair. It is the identity key for
// cache entries and location lookups.
type Coordinates struct {
	Lat float64 `json:"lat" form:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" form:"lon" validate:"gte=-180,lte=180"`
}

// Validate checks the pair against geographic bounds.
func (c Coordinates) Validate() error {
	return validate.Struct(c)
}

// Valid reports whether the pair is within geographic bounds.
func (c Coordinates) Valid() bool {
	return c.Validate() == nil
}

// CurrentConditions is the normalized view of a current-weather payload.
// It is constructed once per successful normalization and never mutated.
type CurrentConditions struct {
	Temperature    float64   `json:"temperature"`
	FeelsLike      float64   `json:"feelsLike"`
	TempMin        float64   `json:"tempMin"`
	TempMax        float64   `json:"tempMax"`
	Humidity       int       `json:"humidity"`
	Pressure       int       `json:"pressure"`
	WindSpeed      float64   `json:"windSpeed"`
	WindDeg        float64   `json:"windDeg"`
	WindDirection  string    `json:"windDirection"`
	Visibility     int       `json:"visibility"`
	Cloudiness     int       `json:"cloudiness"`
	Description    string    `json:"description"`
	Icon           string    `json:"icon"`
	MainCondition  string    `json:"mainCondition"`
	UVIndex        float64   `json:"uvIndex"`
	Sunrise        int64     `json:"sunrise"`
	Sunset         int64     `json:"sunset"`
	TimezoneOffset int       `json:"timezoneOffset"`
	FetchedAt      time.Time `json:"fetchedAt"`
}

// TemperatureSummary describes per-day temperatures in a forecast entry.
type TemperatureSummary struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Morning float64 `json:"morn"`
	Day     float64 `json:"day"`
	Evening float64 `json:"eve"`
	Night   float64 `json:"night"`
}

// DailyForecast summarizes one calendar day of a multi-day forecast.
type DailyForecast struct {
	Date          time.Time          `json:"date"`
	Timestamp     int64              `json:"dt"`
	Temp          TemperatureSummary `json:"temp"`
	Description   string             `json:"description"`
	Icon          string             `json:"icon"`
	MainCondition string             `json:"mainCondition"`
	Humidity      int                `json:"humidity"`
	Pressure      int                `json:"pressure"`
	WindSpeed     float64            `json:"windSpeed"`
	WindDeg       float64            `json:"windDeg"`
	Cloudiness    int                `json:"cloudiness"`
	Pop           float64            `json:"pop"`
	Rain          float64            `json:"rain,omitempty"`
	Snow          float64            `json:"snow,omitempty"`
	UVIndex       float64            `json:"uvIndex"`
}

// ForecastResponse is the week-forecast payload returned to callers.
type ForecastResponse struct {
	Daily []DailyForecast `json:"daily"`
}

// IntervalRecord is one sub-day forecast sample (3-hour step) after
// normalization, prior to any daily bucketing.
type IntervalRecord struct {
	Timestamp     int64     `json:"dt"`
	Time          time.Time `json:"time"`
	Temperature   float64   `json:"temperature"`
	FeelsLike     float64   `json:"feelsLike"`
	TempMin       float64   `json:"tempMin"`
	TempMax       float64   `json:"tempMax"`
	Humidity      int       `json:"humidity"`
	Pressure      int       `json:"pressure"`
	WindSpeed     float64   `json:"windSpeed"`
	WindDeg       float64   `json:"windDeg"`
	Cloudiness    int       `json:"cloudiness"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	MainCondition string    `json:"mainCondition"`
	Pop           float64   `json:"pop"`
	Rain          float64   `json:"rain,omitempty"`
	Snow          float64   `json:"snow,omitempty"`
}

// HourlyResponse is the hourly-forecast payload returned to callers.
type HourlyResponse struct {
	Hourly []IntervalRecord `json:"hourly"`
}

// HistoricalConditions approximates yesterday's weather. The upstream free
// tier has no historical endpoint, so values are derived from current
// conditions with a bounded perturbation. Simulated is always true so
// callers can tell this apart from real historical data.
type HistoricalConditions struct {
	Temperature   float64 `json:"temperature"`
	FeelsLike     float64 `json:"feelsLike"`
	Humidity      int     `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	Pressure      int     `json:"pressure"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon"`
	MainCondition string  `json:"mainCondition"`
	Timestamp     int64   `json:"timestamp"`
	Simulated     bool    `json:"simulated"`
}

// LocationMatch is a geocoding result. Persisted matches are deduplicated
// by (name, country).
type LocationMatch struct {
	ID       uint           `json:"-" gorm:"primaryKey"`
	Name     string         `json:"name" gorm:"index;not null"`
	State    string         `json:"state,omitempty"`
	Country  string         `json:"country" gorm:"not null"`
	Lat      float64        `json:"lat" gorm:"not null"`
	Lon      float64        `json:"lon" gorm:"not null"`
	LastSeen time.Time      `json:"lastSeen"`
	Deleted  gorm.DeletedAt `json:"-" gorm:"index"`
}

// WeatherRecord is a persisted normalized observation. The service writes
// these after a successful current-weather fetch; a background job prunes
// old rows.
type WeatherRecord struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Latitude      float64   `json:"latitude" gorm:"index:idx_coords;not null"`
	Longitude     float64   `json:"longitude" gorm:"index:idx_coords;not null"`
	Temperature   float64   `json:"temperature" gorm:"not null"`
	FeelsLike     float64   `json:"feelsLike"`
	Humidity      int       `json:"humidity"`
	Pressure      int       `json:"pressure"`
	WindSpeed     float64   `json:"windSpeed"`
	WindDeg       float64   `json:"windDeg"`
	Description   string    `json:"description" gorm:"size:500"`
	Icon          string    `json:"icon"`
	MainCondition string    `json:"mainCondition"`
	Cloudiness    int       `json:"cloudiness"`
	Timestamp     time.Time `json:"timestamp" gorm:"index;not null"`
	CreatedAt     time.Time `json:"created_at"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
