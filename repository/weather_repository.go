package repository

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/khudaiyar/aerora/models"
)

// WeatherRepository handles data access operations for persisted
// normalized observations. The service writes through after successful
// fetches; the scheduler prunes old rows.
type WeatherRepository struct {
	db *gorm.DB
}

// NewWeatherRepository creates a new repository for weather observations
func NewWeatherRepository(db *gorm.DB) *WeatherRepository {
	return &WeatherRepository{db: db}
}

// Create persists a normalized observation
func (r *WeatherRepository) Create(record *models.WeatherRecord) error {
	result := r.db.Create(record)
	if result.Error != nil {
		slog.Error("database error when creating weather record", "error", result.Error)
		return result.Error
	}

	return nil
}

// FindRecent retrieves the newest observation for a coordinate pair taken
// after the given time
func (r *WeatherRepository) FindRecent(lat, lon float64, after time.Time) (*models.WeatherRecord, error) {
	var record models.WeatherRecord
	result := r.db.Where("latitude = ? AND longitude = ? AND timestamp > ?", lat, lon, after).
		Order("timestamp desc").
		First(&record)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		slog.Error("database error when finding recent weather", "error", result.Error)
		return nil, result.Error
	}

	return &record, nil
}

// FindByLocation retrieves all observations for a coordinate pair, newest first
func (r *WeatherRepository) FindByLocation(lat, lon float64) ([]models.WeatherRecord, error) {
	var records []models.WeatherRecord
	result := r.db.Where("latitude = ? AND longitude = ?", lat, lon).
		Order("timestamp desc").
		Find(&records)
	if result.Error != nil {
		slog.Error("database error when listing weather records", "error", result.Error)
		return nil, result.Error
	}

	return records, nil
}

// DeleteOlderThan removes observations taken before the cutoff and reports
// how many rows went away
func (r *WeatherRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("timestamp < ?", cutoff).Delete(&models.WeatherRecord{})
	if result.Error != nil {
		slog.Error("database error when pruning weather records", "error", result.Error)
		return 0, result.Error
	}

	slog.Debug("pruned weather records", "rows", result.RowsAffected, "cutoff", cutoff)
	return result.RowsAffected, nil
}
