package city

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-picnic-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/weather"
	"github.com/FACorreiaa/go-picnic-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	CreateCity(ctx context.Context, name string) (*types.City, error)
	ListCities(ctx context.Context, name *string) ([]types.City, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   CityRepository
	lookup weather.Lookup
}

func NewCityService(repo CityRepository, lookup weather.Lookup, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		lookup: lookup,
	}
}

// CreateCity validates name against the weather service and stores it under
// its capitalized form. Calling it again for a known city refreshes the weather.
func (s *ServiceImpl) CreateCity(ctx context.Context, name string) (*types.City, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "CreateCity", trace.WithAttributes(
		attribute.String("city.requested", name),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "CreateCity"), slog.String("city", name))

	exists, err := s.lookup.CityExists(ctx, name)
	if err != nil {
		l.ErrorContext(ctx, "City lookup failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Lookup failed")
		return nil, fmt.Errorf("error validating city: %w", err)
	}
	if !exists {
		l.InfoContext(ctx, "City rejected by weather service")
		span.SetStatus(codes.Error, "Unknown city")
		return nil, types.ErrUnknownCity
	}

	canonical := Capitalize(name)

	var summary *string
	if w, err := s.lookup.CurrentWeather(ctx, canonical); err != nil {
		l.WarnContext(ctx, "Weather fetch failed, keeping stored weather", slog.Any("error", err))
	} else {
		v := w.Summary()
		summary = &v
	}

	city, err := s.repo.Upsert(ctx, canonical, summary)
	if err != nil {
		l.ErrorContext(ctx, "Failed to save city", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Save failed")
		return nil, fmt.Errorf("error saving city: %w", err)
	}
	metrics.Get().CitiesSavedTotal.Add(ctx, 1)

	l.InfoContext(ctx, "City saved", slog.Int64("id", city.ID))
	span.SetStatus(codes.Ok, "City saved")
	return city, nil
}

func (s *ServiceImpl) ListCities(ctx context.Context, name *string) ([]types.City, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "ListCities")
	defer span.End()

	cities, err := s.repo.List(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "List failed")
		return nil, fmt.Errorf("error listing cities: %w", err)
	}
	return cities, nil
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
