package city

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-picnic-planner/internal/api"
	"github.com/FACorreiaa/go-picnic-planner/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewCityHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// CreateCity godoc
// @Summary      Create City
// @Description  Validates a city name against the weather service and stores it with its current weather.
// @Tags         city
// @Produce      json
// @Param        city query string true "City name"
// @Success      200 {object} types.City
// @Failure      400 {object} api.Response "Missing or unknown city"
// @Failure      502 {object} api.Response "Weather service unavailable"
// @Failure      500 {object} api.Response "Internal Server Error"
// @Router       /create-city/ [get]
func (h *Handler) CreateCity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "CreateCity")
	defer span.End()

	l := h.logger.With(slog.String("method", "CreateCity"))

	name := strings.TrimSpace(r.URL.Query().Get("city"))
	if name == "" {
		span.SetStatus(codes.Error, "Missing city")
		api.ErrorResponse(w, r, http.StatusBadRequest, "city parameter must be given")
		return
	}

	city, err := h.service.CreateCity(ctx, name)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, types.ErrUnknownCity):
			span.SetStatus(codes.Error, "Unknown city")
			api.ErrorResponse(w, r, http.StatusBadRequest, "city parameter must be an existing city")
		case errors.Is(err, types.ErrLookupUnavailable):
			l.ErrorContext(ctx, "Weather service unavailable", slog.Any("error", err))
			span.SetStatus(codes.Error, "Lookup unavailable")
			api.ErrorResponse(w, r, http.StatusBadGateway, "city lookup unavailable")
		default:
			l.ErrorContext(ctx, "Failed to create city", slog.Any("error", err))
			span.SetStatus(codes.Error, "Service operation failed")
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create city")
		}
		return
	}

	span.SetStatus(codes.Ok, "City created")
	api.WriteJSONResponse(w, r, http.StatusOK, city)
}

// ListCities godoc
// @Summary      Get Cities
// @Description  Lists stored cities, optionally filtered by exact name.
// @Tags         city
// @Produce      json
// @Param        q query string false "City name"
// @Success      200 {array} types.City
// @Failure      500 {object} api.Response "Internal Server Error"
// @Router       /get-cities/ [post]
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "ListCities")
	defer span.End()

	l := h.logger.With(slog.String("method", "ListCities"))

	cities, err := h.service.ListCities(ctx, api.OptionalString(r, "q"))
	if err != nil {
		l.ErrorContext(ctx, "Failed to retrieve cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve cities")
		return
	}

	l.InfoContext(ctx, "Successfully returned cities", slog.Int("count", len(cities)))
	span.SetStatus(codes.Ok, "Cities returned successfully")
	api.WriteJSONResponse(w, r, http.StatusOK, cities)
}
