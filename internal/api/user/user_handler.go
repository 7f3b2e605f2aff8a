package user

import (
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-picnic-planner/internal/api"
	"github.com/FACorreiaa/go-picnic-planner/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	RegisterUser(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

// NewHandlerImpl creates a new user HandlerImpl instance.
func NewHandlerImpl(userService UserService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("PANIC: Attempting to create HandlerImpl with nil logger!")
	}

	return &HandlerImpl{
		userService: userService,
		logger:      logger,
	}
}

// RegisterUser godoc
// @Summary      CreateUser
// @Description  Registers a new user.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        user body types.RegisterUserRequest true "User"
// @Success      200 {object} types.User
// @Failure      400 {object} api.Response "Invalid Input"
// @Failure      500 {object} api.Response "Internal Server Error"
// @Router       /register-user/ [post]
func (h *HandlerImpl) RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "RegisterUser"))

	var req types.RegisterUserRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := api.ValidateStruct(req); err != nil {
		l.WarnContext(ctx, "Invalid user payload", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.userService.RegisterUser(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to register user", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, u)
}

// ListUsers godoc
// @Summary      Users List
// @Description  Lists users whose age lies between amin and amax inclusive.
// @Tags         user
// @Produce      json
// @Param        amin query int false "Minimum age" default(0)
// @Param        amax query int false "Maximum age" default(99)
// @Success      200 {array} types.User
// @Failure      400 {object} api.Response "Invalid Input"
// @Failure      500 {object} api.Response "Internal Server Error"
// @Router       /users-list/ [post]
func (h *HandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "ListUsers"))

	minAge, err := api.QueryInt(r, "amin", types.DefaultMinAge)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	maxAge, err := api.QueryInt(r, "amax", types.DefaultMaxAge)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	users, err := h.userService.ListUsers(ctx, types.AgeRange{Min: minAge, Max: maxAge})
	if err != nil {
		l.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, users)
}
