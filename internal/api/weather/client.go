package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-picnic-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-picnic-planner/internal/types"
)

// ErrCityNotFound is returned when the weather service does not know the name.
var ErrCityNotFound = fmt.Errorf("weather: %w", types.ErrUnknownCity)

var _ Lookup = (*Client)(nil)

// Lookup validates city names and reports their current weather.
type Lookup interface {
	CityExists(ctx context.Context, name string) (bool, error)
	CurrentWeather(ctx context.Context, name string) (*types.Weather, error)
}

// Client talks to an OpenWeatherMap-compatible current weather endpoint.
type Client struct {
	apiKey     string
	units      string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a weather client. baseURL is the service root, e.g.
// https://api.openweathermap.org.
func NewClient(baseURL, apiKey, units string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		units:  units,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// CityExists reports whether the service recognises name.
func (c *Client) CityExists(ctx context.Context, name string) (bool, error) {
	ctx, span := otel.Tracer("WeatherClient").Start(ctx, "CityExists", trace.WithAttributes(
		attribute.String("city.name", name),
	))
	defer span.End()

	start := time.Now()
	resp, err := c.get(ctx, name)
	if err != nil {
		metrics.ObserveLookup(ctx, "city_exists", "error", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Lookup failed")
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		metrics.ObserveLookup(ctx, "city_exists", "found", start)
		return true, nil
	case http.StatusNotFound:
		metrics.ObserveLookup(ctx, "city_exists", "not_found", start)
		return false, nil
	default:
		metrics.ObserveLookup(ctx, "city_exists", "error", start)
		err := statusError(resp)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unexpected status")
		return false, err
	}
}

// CurrentWeather returns the current conditions for name.
func (c *Client) CurrentWeather(ctx context.Context, name string) (*types.Weather, error) {
	ctx, span := otel.Tracer("WeatherClient").Start(ctx, "CurrentWeather", trace.WithAttributes(
		attribute.String("city.name", name),
	))
	defer span.End()

	start := time.Now()
	resp, err := c.get(ctx, name)
	if err != nil {
		metrics.ObserveLookup(ctx, "current_weather", "error", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Lookup failed")
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		metrics.ObserveLookup(ctx, "current_weather", "not_found", start)
		return nil, ErrCityNotFound
	default:
		metrics.ObserveLookup(ctx, "current_weather", "error", start)
		err := statusError(resp)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unexpected status")
		return nil, err
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.ObserveLookup(ctx, "current_weather", "error", start)
		span.RecordError(err)
		return nil, fmt.Errorf("%w: decode response: %v", types.ErrLookupUnavailable, err)
	}
	metrics.ObserveLookup(ctx, "current_weather", "found", start)

	w := &types.Weather{Temperature: body.Main.Temp}
	if len(body.Weather) > 0 {
		w.Description = body.Weather[0].Description
	}
	c.logger.DebugContext(ctx, "Fetched current weather",
		slog.String("city", name),
		slog.String("summary", w.Summary()),
	)
	return w, nil
}

func (c *Client) get(ctx context.Context, name string) (*http.Response, error) {
	params := url.Values{
		"q":     {name},
		"appid": {c.apiKey},
		"units": {c.units},
	}
	u := c.baseURL + "/data/2.5/weather?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Weather request failed", slog.String("city", name), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", types.ErrLookupUnavailable, err)
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%w: status %d: %s", types.ErrLookupUnavailable, resp.StatusCode, body)
}

// OpenWeatherMap response types.

type response struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}
