package picnic

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-picnic-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-picnic-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// ListPicnics lists picnics, optionally at an exact time. When includePast
	// is false only picnics at or after the current time are returned.
	ListPicnics(ctx context.Context, at *time.Time, includePast bool) ([]types.PicnicDetail, error)
	AddPicnic(ctx context.Context, cityID int64, at time.Time) (*types.PicnicCreated, error)
	RegisterToPicnic(ctx context.Context, picnicID, userID int64) (*types.RegistrationSummary, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	clock  clockwork.Clock
}

func NewService(repo Repository, clock clockwork.Clock, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		clock:  clock,
	}
}

func (s *ServiceImpl) ListPicnics(ctx context.Context, at *time.Time, includePast bool) ([]types.PicnicDetail, error) {
	ctx, span := otel.Tracer("PicnicService").Start(ctx, "ListPicnics", trace.WithAttributes(
		attribute.Bool("include_past", includePast),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "ListPicnics"))

	filter := types.PicnicFilter{At: at}
	if !includePast {
		now := s.clock.Now().UTC()
		filter.Since = &now
	}

	picnics, err := s.repo.ListPicnics(ctx, filter)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list picnics", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list picnics")
		return nil, fmt.Errorf("error listing picnics: %w", err)
	}

	l.DebugContext(ctx, "Picnics listed", slog.Int("count", len(picnics)))
	span.SetStatus(codes.Ok, "Picnics listed")
	return picnics, nil
}

func (s *ServiceImpl) AddPicnic(ctx context.Context, cityID int64, at time.Time) (*types.PicnicCreated, error) {
	ctx, span := otel.Tracer("PicnicService").Start(ctx, "AddPicnic", trace.WithAttributes(
		attribute.Int64("city.id", cityID),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "AddPicnic"), slog.Int64("cityID", cityID))

	p, err := s.repo.AddPicnic(ctx, cityID, at.UTC())
	if err != nil {
		l.WarnContext(ctx, "Failed to add picnic", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to add picnic")
		return nil, fmt.Errorf("error adding picnic: %w", err)
	}
	metrics.Get().PicnicsCreatedTotal.Add(ctx, 1)

	l.InfoContext(ctx, "Picnic added", slog.Int64("picnicID", p.ID))
	span.SetStatus(codes.Ok, "Picnic added")
	return p, nil
}

func (s *ServiceImpl) RegisterToPicnic(ctx context.Context, picnicID, userID int64) (*types.RegistrationSummary, error) {
	ctx, span := otel.Tracer("PicnicService").Start(ctx, "RegisterToPicnic", trace.WithAttributes(
		attribute.Int64("picnic.id", picnicID),
		attribute.Int64("user.id", userID),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "RegisterToPicnic"),
		slog.Int64("picnicID", picnicID), slog.Int64("userID", userID))

	reg, err := s.repo.RegisterUser(ctx, picnicID, userID)
	if err != nil {
		l.WarnContext(ctx, "Failed to register user to picnic", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to register")
		return nil, fmt.Errorf("error registering to picnic: %w", err)
	}
	metrics.Get().RegistrationsTotal.Add(ctx, 1)

	l.InfoContext(ctx, "User registered to picnic", slog.Int64("registrationID", reg.RegistrationID))
	span.SetStatus(codes.Ok, "Registered")
	return reg, nil
}
