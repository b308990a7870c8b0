package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/khudaiyar/aerora/config"
	"github.com/khudaiyar/aerora/errors"
)

// OpenWeatherClient fetches raw payloads from the OpenWeather data and
// geocoding APIs. It is stateless apart from the shared HTTP client.
type OpenWeatherClient struct {
	apiKey     string
	baseURL    string
	geoBaseURL string
	httpClient *http.Client
}

// NewOpenWeatherClient creates a provider client from configuration.
func NewOpenWeatherClient(cfg *config.ProviderConfig) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		geoBaseURL: cfg.GeoBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// Fetch issues one upstream request and decodes the JSON body without
// imposing a schema. Network failures and 5xx map to UPSTREAM_UNAVAILABLE,
// 4xx to UPSTREAM_REJECTED, and undecodable bodies to UPSTREAM_MALFORMED.
func (c *OpenWeatherClient) Fetch(ctx context.Context, endpoint Endpoint, params Params) (any, error) {
	requestURL, err := c.buildURL(endpoint, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewUpstreamUnavailableError("build upstream request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewUpstreamUnavailableError(fmt.Sprintf("upstream %s request failed", endpoint), err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleHTTPError(endpoint, resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewUpstreamMalformedError(fmt.Sprintf("decode upstream %s response", endpoint), err)
	}

	return payload, nil
}

func (c *OpenWeatherClient) buildURL(endpoint Endpoint, params Params) (string, error) {
	values := url.Values{}
	values.Set("appid", c.apiKey)

	switch endpoint {
	case EndpointCurrentWeather:
		values.Set("lat", formatCoord(params.Lat))
		values.Set("lon", formatCoord(params.Lon))
		values.Set("units", "metric")
		return c.baseURL + "/weather?" + values.Encode(), nil

	case EndpointForecast:
		values.Set("lat", formatCoord(params.Lat))
		values.Set("lon", formatCoord(params.Lon))
		values.Set("units", "metric")
		values.Set("cnt", "40")
		return c.baseURL + "/forecast?" + values.Encode(), nil

	case EndpointGeocode:
		values.Set("q", params.Query)
		values.Set("limit", strconv.Itoa(limitOrDefault(params.Limit)))
		return c.geoBaseURL + "/direct?" + values.Encode(), nil

	case EndpointReverseGeocode:
		values.Set("lat", formatCoord(params.Lat))
		values.Set("lon", formatCoord(params.Lon))
		values.Set("limit", "1")
		return c.geoBaseURL + "/reverse?" + values.Encode(), nil

	default:
		return "", errors.NewValidationError(fmt.Sprintf("unknown endpoint: %s", endpoint))
	}
}

func (c *OpenWeatherClient) handleHTTPError(endpoint Endpoint, statusCode int) error {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return errors.NewUpstreamRejectedError(fmt.Sprintf("upstream %s: invalid API key", endpoint), nil)
	case statusCode == http.StatusTooManyRequests:
		return errors.NewUpstreamRejectedError(fmt.Sprintf("upstream %s: rate limit exceeded", endpoint), nil)
	case statusCode >= 400 && statusCode < 500:
		return errors.NewUpstreamRejectedError(fmt.Sprintf("upstream %s: HTTP %d", endpoint, statusCode), nil)
	default:
		return errors.NewUpstreamUnavailableError(fmt.Sprintf("upstream %s: HTTP %d", endpoint, statusCode), nil)
	}
}

func formatCoord(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 5
	}
	return limit
}
