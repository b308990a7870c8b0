package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khudaiyar/aerora/config"
	apperrors "github.com/khudaiyar/aerora/errors"
	"github.com/khudaiyar/aerora/models"
	"github.com/khudaiyar/aerora/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router           *gin.Engine
	config           *config.Config
	weatherService   service.WeatherServiceInterface
	geocodingService service.GeocodingServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	cfg *config.Config,
	weatherService service.WeatherServiceInterface,
	geocodingService service.GeocodingServiceInterface,
) *Server {
	router := gin.Default()
	router.Use(RequestID(), CORS())

	server := &Server{
		router:           router,
		config:           cfg,
		weatherService:   weatherService,
		geocodingService: geocodingService,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		weather := api.Group("/weather")
		{
			weather.GET("/current", s.currentWeather)
			weather.GET("/forecast", s.weekForecast)
			weather.GET("/hourly", s.hourlyForecast)
			weather.GET("/yesterday", s.yesterdayWeather)
		}

		location := api.Group("/location")
		{
			location.GET("/search", s.searchLocation)
			location.GET("/reverse", s.reverseGeocode)
			location.GET("/coordinates", s.coordinates)
		}

		api.GET("/health", s.health)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) currentWeather(c *gin.Context) {
	lat, lon, ok := s.coordinateParams(c)
	if !ok {
		return
	}

	weather, err := s.weatherService.CurrentWeather(c.Request.Context(), lat, lon)
	if err != nil {
		slog.Error("current weather error", "error", err, "lat", lat, "lon", lon)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, weather)
}

func (s *Server) weekForecast(c *gin.Context) {
	lat, lon, ok := s.coordinateParams(c)
	if !ok {
		return
	}

	forecast, err := s.weatherService.WeekForecast(c.Request.Context(), lat, lon)
	if err != nil {
		slog.Error("week forecast error", "error", err, "lat", lat, "lon", lon)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, forecast)
}

func (s *Server) hourlyForecast(c *gin.Context) {
	lat, lon, ok := s.coordinateParams(c)
	if !ok {
		return
	}

	hourly, err := s.weatherService.HourlyForecast(c.Request.Context(), lat, lon)
	if err != nil {
		slog.Error("hourly forecast error", "error", err, "lat", lat, "lon", lon)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, hourly)
}

func (s *Server) yesterdayWeather(c *gin.Context) {
	lat, lon, ok := s.coordinateParams(c)
	if !ok {
		return
	}

	history, err := s.weatherService.YesterdayWeather(c.Request.Context(), lat, lon)
	if err != nil {
		slog.Error("yesterday weather error", "error", err, "lat", lat, "lon", lon)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

func (s *Server) searchLocation(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		s.handleError(c, apperrors.NewValidationError("query parameter is required"))
		return
	}

	locations, err := s.geocodingService.SearchLocation(c.Request.Context(), query)
	if err != nil {
		slog.Error("location search error", "error", err, "query", query)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, locations)
}

func (s *Server) reverseGeocode(c *gin.Context) {
	lat, lon, ok := s.coordinateParams(c)
	if !ok {
		return
	}

	location, err := s.geocodingService.ReverseGeocode(c.Request.Context(), lat, lon)
	if err != nil {
		slog.Error("reverse geocode error", "error", err, "lat", lat, "lon", lon)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// coordinates resolves a city name to its best-matching coordinates.
func (s *Server) coordinates(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		s.handleError(c, apperrors.NewValidationError("city parameter is required"))
		return
	}

	locations, err := s.geocodingService.SearchLocation(c.Request.Context(), city)
	if err != nil {
		slog.Error("coordinates lookup error", "error", err, "city", city)
		s.handleError(c, err)
		return
	}
	if len(locations) == 0 {
		s.handleError(c, apperrors.NewNotFoundError("city not found"))
		return
	}

	c.JSON(http.StatusOK, locations[0])
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"service": "aerora",
	})
}

func (s *Server) coordinateParams(c *gin.Context) (float64, float64, bool) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		s.handleError(c, apperrors.NewValidationError("lat and lon parameters are required"))
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		s.handleError(c, apperrors.NewValidationError("lat must be a number"))
		return 0, 0, false
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		s.handleError(c, apperrors.NewValidationError("lon must be a number"))
		return 0, 0, false
	}

	if !(models.Coordinates{Lat: lat, Lon: lon}).Valid() {
		s.handleError(c, apperrors.NewValidationError("coordinates out of range"))
		return 0, 0, false
	}

	return lat, lon, true
}

func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case apperrors.ValidationError:
		status = http.StatusBadRequest
	case apperrors.NotFoundError:
		status = http.StatusNotFound
	case apperrors.UpstreamRejectedError, apperrors.UpstreamMalformedError, apperrors.NormalizationError:
		status = http.StatusBadGateway
	case apperrors.UpstreamUnavailableError:
		status = http.StatusServiceUnavailable
	case apperrors.DatabaseError:
		status = http.StatusInternalServerError
	}

	c.JSON(status, models.ErrorResponse{Error: appErr.Message})
}
