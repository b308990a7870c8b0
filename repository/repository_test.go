package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/khudaiyar/aerora/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.LocationMatch{}, &models.WeatherRecord{}))
	return db
}

func berlin() *models.LocationMatch {
	return &models.LocationMatch{
		Name:     "Berlin",
		State:    "Berlin",
		Country:  "DE",
		Lat:      52.52,
		Lon:      13.405,
		LastSeen: time.Now().UTC(),
	}
}

func TestLocationRepository_SaveIfNew(t *testing.T) {
	repo := NewLocationRepository(setupTestDB(t))

	require.NoError(t, repo.SaveIfNew(berlin()))

	found, err := repo.FindByNameAndCountry("Berlin", "DE")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 52.52, found.Lat)
}

func TestLocationRepository_SaveIfNew_DeduplicatesByNameAndCountry(t *testing.T) {
	repo := NewLocationRepository(setupTestDB(t))

	require.NoError(t, repo.SaveIfNew(berlin()))

	duplicate := berlin()
	duplicate.Lat = 52.53
	require.NoError(t, repo.SaveIfNew(duplicate))

	var count int64
	repo.db.Model(&models.LocationMatch{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// The original row survives; duplicates only bump last_seen.
	found, err := repo.FindByNameAndCountry("Berlin", "DE")
	require.NoError(t, err)
	assert.Equal(t, 52.52, found.Lat)
}

func TestLocationRepository_SaveIfNew_SameNameDifferentCountry(t *testing.T) {
	repo := NewLocationRepository(setupTestDB(t))

	require.NoError(t, repo.SaveIfNew(berlin()))
	require.NoError(t, repo.SaveIfNew(&models.LocationMatch{
		Name:    "Berlin",
		Country: "US",
		Lat:     44.47,
		Lon:     -71.18,
	}))

	var count int64
	repo.db.Model(&models.LocationMatch{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestLocationRepository_FindByNameAndCountry_NotFound(t *testing.T) {
	repo := NewLocationRepository(setupTestDB(t))

	found, err := repo.FindByNameAndCountry("Atlantis", "XX")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestLocationRepository_SearchByName(t *testing.T) {
	repo := NewLocationRepository(setupTestDB(t))

	require.NoError(t, repo.SaveIfNew(berlin()))
	require.NoError(t, repo.SaveIfNew(&models.LocationMatch{Name: "Bern", Country: "CH"}))
	require.NoError(t, repo.SaveIfNew(&models.LocationMatch{Name: "Kyiv", Country: "UA"}))

	matches, err := repo.SearchByName("ber")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Berlin", matches[0].Name)
	assert.Equal(t, "Bern", matches[1].Name)
}

func TestLocationRepository_SearchByName_NoMatches(t *testing.T) {
	repo := NewLocationRepository(setupTestDB(t))

	require.NoError(t, repo.SaveIfNew(berlin()))

	matches, err := repo.SearchByName("tokyo")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestLocationRepository_FindRecent(t *testing.T) {
	repo := NewLocationRepository(setupTestDB(t))

	older := berlin()
	older.LastSeen = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.SaveIfNew(older))
	require.NoError(t, repo.SaveIfNew(&models.LocationMatch{
		Name:     "Kyiv",
		Country:  "UA",
		LastSeen: time.Now().UTC(),
	}))

	recent, err := repo.FindRecent(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Kyiv", recent[0].Name)
}

func observation(lat, lon float64, taken time.Time) *models.WeatherRecord {
	return &models.WeatherRecord{
		Latitude:    lat,
		Longitude:   lon,
		Temperature: 18.5,
		Humidity:    60,
		Timestamp:   taken,
	}
}

func TestWeatherRepository_CreateAndFindRecent(t *testing.T) {
	repo := NewWeatherRepository(setupTestDB(t))
	now := time.Now().UTC()

	require.NoError(t, repo.Create(observation(50.45, 30.52, now.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(observation(50.45, 30.52, now)))

	found, err := repo.FindRecent(50.45, 30.52, now.Add(-time.Hour))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.WithinDuration(t, now, found.Timestamp, time.Second)
}

func TestWeatherRepository_FindRecent_NoneAfterCutoff(t *testing.T) {
	repo := NewWeatherRepository(setupTestDB(t))
	now := time.Now().UTC()

	require.NoError(t, repo.Create(observation(50.45, 30.52, now.Add(-2*time.Hour))))

	found, err := repo.FindRecent(50.45, 30.52, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestWeatherRepository_FindByLocation(t *testing.T) {
	repo := NewWeatherRepository(setupTestDB(t))
	now := time.Now().UTC()

	require.NoError(t, repo.Create(observation(50.45, 30.52, now.Add(-time.Hour))))
	require.NoError(t, repo.Create(observation(50.45, 30.52, now)))
	require.NoError(t, repo.Create(observation(52.52, 13.405, now)))

	records, err := repo.FindByLocation(50.45, 30.52)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Timestamp.After(records[1].Timestamp))
}

func TestWeatherRepository_DeleteOlderThan(t *testing.T) {
	repo := NewWeatherRepository(setupTestDB(t))
	now := time.Now().UTC()

	require.NoError(t, repo.Create(observation(50.45, 30.52, now.Add(-48*time.Hour))))
	require.NoError(t, repo.Create(observation(50.45, 30.52, now.Add(-36*time.Hour))))
	require.NoError(t, repo.Create(observation(50.45, 30.52, now)))

	deleted, err := repo.DeleteOlderThan(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	records, err := repo.FindByLocation(50.45, 30.52)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
