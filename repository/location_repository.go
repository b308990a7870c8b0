// Package repository implements data access layer for the application
package repository

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/khudaiyar/aerora/models"
)

// LocationRepository handles data access operations for geocoded locations
type LocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new repository for location data
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// FindByNameAndCountry retrieves a location by its dedup key
func (r *LocationRepository) FindByNameAndCountry(name, country string) (*models.LocationMatch, error) {
	var location models.LocationMatch
	result := r.db.Where("name = ? AND country = ?", name, country).First(&location)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("database error when finding location", "error", result.Error)
		return nil, result.Error
	}

	return &location, nil
}

// SaveIfNew persists a location unless one with the same (name, country)
// already exists. Existing rows only get their last-seen timestamp bumped.
func (r *LocationRepository) SaveIfNew(location *models.LocationMatch) error {
	existing, err := r.FindByNameAndCountry(location.Name, location.Country)
	if err != nil {
		return err
	}

	if existing != nil {
		result := r.db.Model(existing).Update("last_seen", time.Now().UTC())
		if result.Error != nil {
			slog.Error("database error when touching location", "error", result.Error)
			return result.Error
		}
		return nil
	}

	result := r.db.Create(location)
	if result.Error != nil {
		slog.Error("database error when creating location", "error", result.Error)
		return result.Error
	}

	slog.Debug("persisted new location", "name", location.Name, "country", location.Country)
	return nil
}

// SearchByName retrieves locations whose name contains the query,
// case-insensitive. Used as the degraded fallback when upstream geocoding
// is unreachable.
func (r *LocationRepository) SearchByName(query string) ([]models.LocationMatch, error) {
	var locations []models.LocationMatch
	pattern := "%" + query + "%"
	result := r.db.Where("LOWER(name) LIKE LOWER(?)", pattern).Order("name asc").Find(&locations)
	if result.Error != nil {
		slog.Error("database error when searching locations", "error", result.Error)
		return nil, result.Error
	}

	return locations, nil
}

// FindRecent retrieves locations ordered by last-seen time, newest first.
func (r *LocationRepository) FindRecent(limit int) ([]models.LocationMatch, error) {
	var locations []models.LocationMatch
	result := r.db.Order("last_seen desc").Limit(limit).Find(&locations)
	if result.Error != nil {
		slog.Error("database error when listing recent locations", "error", result.Error)
		return nil, result.Error
	}

	return locations, nil
}
