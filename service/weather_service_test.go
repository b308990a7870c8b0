package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khudaiyar/aerora/cache"
	"github.com/khudaiyar/aerora/config"
	"github.com/khudaiyar/aerora/errors"
	"github.com/khudaiyar/aerora/models"
	"github.com/khudaiyar/aerora/providers"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Fetch(ctx context.Context, endpoint providers.Endpoint, params providers.Params) (any, error) {
	args := m.Called(ctx, endpoint, params)
	return args.Get(0), args.Error(1)
}

type mockWeatherRepo struct {
	mock.Mock
}

func (m *mockWeatherRepo) Create(record *models.WeatherRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *mockWeatherRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func testCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Type:               "memory",
		CurrentTTLMinutes:  10,
		ForecastTTLMinutes: 60,
		HourlyTTLMinutes:   30,
		GeocodeTTLMinutes:  1440,
	}
}

func newWeatherService(t *testing.T, provider providers.WeatherProvider, repo WeatherRepositoryInterface) *WeatherService {
	t.Helper()

	store := cache.NewMemoryStore()
	t.Cleanup(store.Stop)
	return NewWeatherService(provider, cache.New(store, "memory"), repo, testCacheConfig())
}

func currentWeatherPayload(temp float64) map[string]any {
	return map[string]any{
		"main": map[string]any{
			"temp":       temp,
			"feels_like": temp - 1,
			"humidity":   60.0,
			"pressure":   1012.0,
		},
		"wind": map[string]any{"speed": 3.5, "deg": 90.0},
		"weather": []any{
			map[string]any{"description": "clear sky", "icon": "01d", "main": "Clear"},
		},
	}
}

func forecastPayload(days int) map[string]any {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var entries []any
	for i := 0; i < days*8; i++ {
		ts := base.Add(time.Duration(i) * 3 * time.Hour)
		entries = append(entries, map[string]any{
			"dt":   float64(ts.Unix()),
			"main": map[string]any{"temp": 10.0 + float64(i)},
		})
	}
	return map[string]any{"list": entries}
}

func TestCurrentWeather(t *testing.T) {
	provider := new(mockProvider)
	repo := new(mockWeatherRepo)
	provider.On("Fetch", mock.Anything, providers.EndpointCurrentWeather, mock.Anything).
		Return(currentWeatherPayload(21.5), nil).Once()
	repo.On("Create", mock.AnythingOfType("*models.WeatherRecord")).Return(nil).Once()

	svc := newWeatherService(t, provider, repo)
	current, err := svc.CurrentWeather(context.Background(), 50.45, 30.52)

	require.NoError(t, err)
	assert.Equal(t, 21.5, current.Temperature)
	assert.Equal(t, "E", current.WindDirection)
	assert.Equal(t, 5.0, current.UVIndex)
	provider.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCurrentWeather_ServedFromCache(t *testing.T) {
	provider := new(mockProvider)
	repo := new(mockWeatherRepo)
	provider.On("Fetch", mock.Anything, providers.EndpointCurrentWeather, mock.Anything).
		Return(currentWeatherPayload(21.5), nil).Once()
	repo.On("Create", mock.Anything).Return(nil).Once()

	svc := newWeatherService(t, provider, repo)
	ctx := context.Background()

	_, err := svc.CurrentWeather(ctx, 50.45, 30.52)
	require.NoError(t, err)

	second, err := svc.CurrentWeather(ctx, 50.45, 30.52)
	require.NoError(t, err)
	assert.Equal(t, 21.5, second.Temperature)

	// A single upstream fetch and a single persisted observation.
	provider.AssertNumberOfCalls(t, "Fetch", 1)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCurrentWeather_InvalidCoordinates(t *testing.T) {
	svc := newWeatherService(t, new(mockProvider), nil)

	_, err := svc.CurrentWeather(context.Background(), 91.0, 30.52)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ValidationError))

	_, err = svc.CurrentWeather(context.Background(), 50.45, 181.0)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ValidationError))
}

func TestCurrentWeather_ZeroCoordinatesAreValid(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Fetch", mock.Anything, providers.EndpointCurrentWeather, mock.Anything).
		Return(currentWeatherPayload(27.0), nil).Once()

	svc := newWeatherService(t, provider, nil)
	current, err := svc.CurrentWeather(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 27.0, current.Temperature)
}

func TestCurrentWeather_UpstreamErrorPropagates(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Fetch", mock.Anything, providers.EndpointCurrentWeather, mock.Anything).
		Return(nil, errors.NewUpstreamUnavailableError("provider down", nil))

	svc := newWeatherService(t, provider, nil)
	_, err := svc.CurrentWeather(context.Background(), 50.45, 30.52)

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.UpstreamUnavailableError))
	assert.Contains(t, err.Error(), "current weather")
}

func TestCurrentWeather_PersistenceFailureIsNotFatal(t *testing.T) {
	provider := new(mockProvider)
	repo := new(mockWeatherRepo)
	provider.On("Fetch", mock.Anything, providers.EndpointCurrentWeather, mock.Anything).
		Return(currentWeatherPayload(21.5), nil).Once()
	repo.On("Create", mock.Anything).Return(errors.NewDatabaseError("insert failed", nil)).Once()

	svc := newWeatherService(t, provider, repo)
	current, err := svc.CurrentWeather(context.Background(), 50.45, 30.52)

	require.NoError(t, err)
	assert.Equal(t, 21.5, current.Temperature)
}

func TestWeekForecast(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Fetch", mock.Anything, providers.EndpointForecast, mock.Anything).
		Return(forecastPayload(5), nil).Once()

	svc := newWeatherService(t, provider, nil)
	forecast, err := svc.WeekForecast(context.Background(), 50.45, 30.52)

	require.NoError(t, err)
	require.Len(t, forecast.Daily, 5)
	for i := 1; i < len(forecast.Daily); i++ {
		assert.True(t, forecast.Daily[i-1].Date.Before(forecast.Daily[i].Date))
	}
}

func TestWeekForecast_InvalidCoordinates(t *testing.T) {
	svc := newWeatherService(t, new(mockProvider), nil)

	_, err := svc.WeekForecast(context.Background(), -91.0, 0)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ValidationError))
}

func TestHourlyForecast(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Fetch", mock.Anything, providers.EndpointForecast, mock.Anything).
		Return(forecastPayload(2), nil).Once()

	svc := newWeatherService(t, provider, nil)
	hourly, err := svc.HourlyForecast(context.Background(), 50.45, 30.52)

	require.NoError(t, err)
	assert.Len(t, hourly.Hourly, 16)
	assert.Equal(t, 10.0, hourly.Hourly[0].Temperature)
}

func TestYesterdayWeather(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Fetch", mock.Anything, providers.EndpointCurrentWeather, mock.Anything).
		Return(currentWeatherPayload(20.0), nil).Once()

	svc := newWeatherService(t, provider, nil)

	// Fixed draw of 0.75 perturbs temperatures by -1 and humidity by +5.
	svc.randFloat = func() float64 { return 0.75 }

	history, err := svc.YesterdayWeather(context.Background(), 50.45, 30.52)
	require.NoError(t, err)

	assert.Equal(t, 19.0, history.Temperature)
	assert.Equal(t, 18.0, history.FeelsLike)
	assert.Equal(t, 65, history.Humidity)
	assert.Equal(t, "clear sky", history.Description)
	assert.True(t, history.Simulated)
	assert.InDelta(t, time.Now().Unix()-86400, history.Timestamp, 5)
}

func TestYesterdayWeather_PerturbationStaysBounded(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Fetch", mock.Anything, providers.EndpointCurrentWeather, mock.Anything).
		Return(currentWeatherPayload(20.0), nil)

	svc := newWeatherService(t, provider, nil)

	for i := 0; i < 100; i++ {
		history, err := svc.YesterdayWeather(context.Background(), 50.45, 30.52)
		require.NoError(t, err)

		assert.InDelta(t, 20.0, history.Temperature, 2.0)
		assert.GreaterOrEqual(t, history.Humidity, 0)
		assert.LessOrEqual(t, history.Humidity, 100)
		assert.True(t, history.Simulated)
	}
}

func TestYesterdayWeather_HumidityClamped(t *testing.T) {
	payload := currentWeatherPayload(20.0)
	payload["main"].(map[string]any)["humidity"] = 98.0

	provider := new(mockProvider)
	provider.On("Fetch", mock.Anything, providers.EndpointCurrentWeather, mock.Anything).
		Return(payload, nil).Once()

	svc := newWeatherService(t, provider, nil)
	svc.randFloat = func() float64 { return 1.0 }

	history, err := svc.YesterdayWeather(context.Background(), 50.45, 30.52)
	require.NoError(t, err)
	assert.Equal(t, 100, history.Humidity)
}

func TestYesterdayWeather_UpstreamErrorPropagates(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Fetch", mock.Anything, providers.EndpointCurrentWeather, mock.Anything).
		Return(nil, errors.NewUpstreamUnavailableError("provider down", nil))

	svc := newWeatherService(t, provider, nil)
	_, err := svc.YesterdayWeather(context.Background(), 50.45, 30.52)

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.UpstreamUnavailableError))
	assert.Contains(t, err.Error(), "yesterday weather")
}

func TestWeekForecast_MalformedPayloadIsNotCached(t *testing.T) {
	provider := new(mockProvider)
	provider.On("Fetch", mock.Anything, providers.EndpointForecast, mock.Anything).
		Return("not an object", nil).Once()
	provider.On("Fetch", mock.Anything, providers.EndpointForecast, mock.Anything).
		Return(forecastPayload(2), nil).Once()

	svc := newWeatherService(t, provider, nil)
	ctx := context.Background()

	_, err := svc.WeekForecast(ctx, 50.45, 30.52)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.NormalizationError))

	forecast, err := svc.WeekForecast(ctx, 50.45, 30.52)
	require.NoError(t, err)
	assert.NotEmpty(t, forecast.Daily)
	provider.AssertNumberOfCalls(t, "Fetch", 2)
}
