package picnic

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-picnic-planner/internal/api"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	ListPicnics(w http.ResponseWriter, r *http.Request)
	AddPicnic(w http.ResponseWriter, r *http.Request)
	RegisterToPicnic(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		logger:  logger,
	}
}

// ListPicnics godoc
// @Summary      All Picnics
// @Description  Lists picnics with their city and registered users.
// @Tags         picnic
// @Produce      json
// @Param        datetime query string false "Exact picnic time (ISO 8601)"
// @Param        past query bool false "Include past picnics" default(true)
// @Success      200 {array} types.PicnicDetail
// @Failure      400 {object} api.Response "Invalid Input"
// @Failure      500 {object} api.Response "Internal Server Error"
// @Router       /all-picnics/ [get]
func (h *HandlerImpl) ListPicnics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "ListPicnics"))

	at, err := api.QueryTime(r, "datetime")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	past, err := api.QueryBool(r, "past", true)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	picnics, err := h.service.ListPicnics(ctx, at, past)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list picnics", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve picnics")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, picnics)
}

// AddPicnic godoc
// @Summary      Picnic Add
// @Description  Creates a picnic in an existing city.
// @Tags         picnic
// @Produce      json
// @Param        city_id query int true "City ID"
// @Param        datetime query string true "Picnic time (ISO 8601)"
// @Success      200 {object} types.PicnicCreated
// @Failure      400 {object} api.Response "Invalid Input"
// @Failure      404 {object} api.Response "City Not Found"
// @Failure      500 {object} api.Response "Internal Server Error"
// @Router       /picnic-add/ [get]
func (h *HandlerImpl) AddPicnic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "AddPicnic"))

	cityID, err := api.RequiredID(r, "city_id")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	at, err := api.RequiredTime(r, "datetime")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.service.AddPicnic(ctx, cityID, at)
	if err != nil {
		if errors.Is(err, ErrCityNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "city not found")
			return
		}
		l.ErrorContext(ctx, "Failed to add picnic", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to add picnic")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, p)
}

// RegisterToPicnic godoc
// @Summary      Picnic Registration
// @Description  Registers a user to a picnic.
// @Tags         picnic
// @Produce      json
// @Param        picnic_id query int true "Picnic ID"
// @Param        user_id query int true "User ID"
// @Success      200 {object} types.RegistrationSummary
// @Failure      400 {object} api.Response "Invalid Input"
// @Failure      404 {object} api.Response "Picnic or User Not Found"
// @Failure      500 {object} api.Response "Internal Server Error"
// @Router       /picnic-register/ [get]
func (h *HandlerImpl) RegisterToPicnic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "RegisterToPicnic"))

	picnicID, err := api.RequiredID(r, "picnic_id")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	userID, err := api.RequiredID(r, "user_id")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	reg, err := h.service.RegisterToPicnic(ctx, picnicID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPicnicNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "picnic not found")
		case errors.Is(err, ErrUserNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "user not found")
		default:
			l.ErrorContext(ctx, "Failed to register to picnic", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to register to picnic")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, reg)
}
