package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-picnic-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-picnic-planner/internal/types"
)

// Ensure implementation satisfies the interface
var _ UserService = (*UserServiceImpl)(nil)

// UserService defines the business logic contract for user operations.
type UserService interface {
	RegisterUser(ctx context.Context, req types.RegisterUserRequest) (*types.User, error)
	ListUsers(ctx context.Context, ages types.AgeRange) ([]types.User, error)
}

// UserServiceImpl provides the implementation for UserService.
type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
}

// NewUserService creates a new user service instance.
func NewUserService(repo UserRepo, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// RegisterUser stores a new user. The request must already be validated.
func (s *UserServiceImpl) RegisterUser(ctx context.Context, req types.RegisterUserRequest) (*types.User, error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "RegisterUser")
	defer span.End()

	l := s.logger.With(slog.String("method", "RegisterUser"))
	if req.Age == nil {
		return nil, errors.New("error registering user: age is required")
	}

	u, err := s.repo.CreateUser(ctx, req.Name, req.Surname, *req.Age)
	if err != nil {
		l.ErrorContext(ctx, "Failed to register user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to register user")
		return nil, fmt.Errorf("error registering user: %w", err)
	}
	metrics.Get().UsersRegisteredTotal.Add(ctx, 1)

	l.InfoContext(ctx, "User registered", slog.Int64("userID", u.ID))
	span.SetStatus(codes.Ok, "User registered")
	return u, nil
}

// ListUsers returns users within the inclusive age range.
func (s *UserServiceImpl) ListUsers(ctx context.Context, ages types.AgeRange) ([]types.User, error) {
	ctx, span := otel.Tracer("UserService").Start(ctx, "ListUsers", trace.WithAttributes(
		attribute.Int("age.min", ages.Min),
		attribute.Int("age.max", ages.Max),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "ListUsers"))
	l.DebugContext(ctx, "Listing users", slog.Int("min", ages.Min), slog.Int("max", ages.Max))

	users, err := s.repo.ListUsers(ctx, ages)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list users")
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	span.SetStatus(codes.Ok, "Users listed")
	return users, nil
}
