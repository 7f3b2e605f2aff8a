package picnic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/go-picnic-planner/app/db"
	"github.com/FACorreiaa/go-picnic-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-picnic-planner/internal/types"
)

var (
	ErrCityNotFound   = fmt.Errorf("city %w", types.ErrNotFound)
	ErrPicnicNotFound = fmt.Errorf("picnic %w", types.ErrNotFound)
	ErrUserNotFound   = fmt.Errorf("user %w", types.ErrNotFound)
)

const (
	picnicCityFK         = "picnics_city_id_fkey"
	registrationPicnicFK = "picnic_registrations_picnic_id_fkey"
	registrationUserFK   = "picnic_registrations_user_id_fkey"
)

var _ Repository = (*PostgresRepository)(nil)

type Repository interface {
	// ListPicnics returns picnics with their city name and registered users,
	// ordered by picnic id.
	ListPicnics(ctx context.Context, filter types.PicnicFilter) ([]types.PicnicDetail, error)
	AddPicnic(ctx context.Context, cityID int64, at time.Time) (*types.PicnicCreated, error)
	RegisterUser(ctx context.Context, picnicID, userID int64) (*types.RegistrationSummary, error)
}

type PostgresRepository struct {
	logger *slog.Logger
	pgpool database.DBTX
}

func NewPostgresRepository(pgpool database.DBTX, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresRepository) ListPicnics(ctx context.Context, filter types.PicnicFilter) ([]types.PicnicDetail, error) {
	ctx, span := otel.Tracer("PicnicRepository").Start(ctx, "ListPicnics", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.Bool("filter.at", filter.At != nil),
		attribute.Bool("filter.since", filter.Since != nil),
	))
	defer span.End()

	query := `
        SELECT p.id, c.name, p.time, u.id, u.name, u.surname, u.age
        FROM picnics p
        JOIN cities c ON c.id = p.city_id
        LEFT JOIN picnic_registrations pr ON pr.picnic_id = p.id
        LEFT JOIN users u ON u.id = pr.user_id
        WHERE ($1::timestamptz IS NULL OR p.time = $1)
          AND ($2::timestamptz IS NULL OR p.time >= $2)
        ORDER BY p.id, pr.id
    `

	start := time.Now()
	rows, err := r.pgpool.Query(ctx, query, filter.At, filter.Since)
	if err != nil {
		metrics.ObserveDBQuery(ctx, "picnics.list", start, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("failed to query picnics: %w", err)
	}
	defer rows.Close()

	picnics := make([]types.PicnicDetail, 0)
	for rows.Next() {
		var (
			p       types.PicnicDetail
			userID  *int64
			name    *string
			surname *string
			age     *int
		)
		if err := rows.Scan(&p.ID, &p.City, &p.Time, &userID, &name, &surname, &age); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan picnic row: %w", err)
		}

		// rows arrive grouped by picnic id
		if n := len(picnics); n == 0 || picnics[n-1].ID != p.ID {
			p.Users = make([]types.User, 0)
			picnics = append(picnics, p)
		}
		if userID != nil {
			last := &picnics[len(picnics)-1]
			last.Users = append(last.Users, types.User{
				ID:      *userID,
				Name:    deref(name),
				Surname: deref(surname),
				Age:     derefInt(age),
			})
		}
	}
	err = rows.Err()
	metrics.ObserveDBQuery(ctx, "picnics.list", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row iteration failed")
		return nil, fmt.Errorf("error iterating picnic rows: %w", err)
	}

	span.SetAttributes(attribute.Int("picnics.count", len(picnics)))
	return picnics, nil
}

func (r *PostgresRepository) AddPicnic(ctx context.Context, cityID int64, at time.Time) (*types.PicnicCreated, error) {
	ctx, span := otel.Tracer("PicnicRepository").Start(ctx, "AddPicnic", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.Int64("city.id", cityID),
	))
	defer span.End()

	query := `
        WITH ins AS (
            INSERT INTO picnics (city_id, time)
            VALUES ($1, $2)
            RETURNING id, city_id, time
        )
        SELECT ins.id, c.name, ins.time
        FROM ins
        JOIN cities c ON c.id = ins.city_id
    `

	start := time.Now()
	var p types.PicnicCreated
	err := database.WithTx(ctx, r.pgpool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, cityID, at).Scan(&p.ID, &p.City, &p.Time)
	})
	metrics.ObserveDBQuery(ctx, "picnics.add", start, err)
	if err != nil {
		span.RecordError(err)
		if database.IsForeignKeyViolation(err, picnicCityFK) || errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "City not found")
			return nil, ErrCityNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to insert picnic", slog.Int64("cityID", cityID), slog.Any("error", err))
		span.SetStatus(codes.Error, "DB insert failed")
		return nil, fmt.Errorf("failed to insert picnic: %w", err)
	}

	span.SetAttributes(attribute.Int64("picnic.id", p.ID))
	return &p, nil
}

func (r *PostgresRepository) RegisterUser(ctx context.Context, picnicID, userID int64) (*types.RegistrationSummary, error) {
	ctx, span := otel.Tracer("PicnicRepository").Start(ctx, "RegisterUser", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.Int64("picnic.id", picnicID),
		attribute.Int64("user.id", userID),
	))
	defer span.End()

	query := `
        WITH ins AS (
            INSERT INTO picnic_registrations (picnic_id, user_id)
            VALUES ($1, $2)
            RETURNING id, picnic_id, user_id
        )
        SELECT ins.id, u.id, u.name, p.id, p.time
        FROM ins
        JOIN users u ON u.id = ins.user_id
        JOIN picnics p ON p.id = ins.picnic_id
    `

	start := time.Now()
	var s types.RegistrationSummary
	err := database.WithTx(ctx, r.pgpool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, picnicID, userID).Scan(&s.RegistrationID, &s.UserID, &s.Name, &s.PicnicID, &s.Time)
	})
	metrics.ObserveDBQuery(ctx, "picnics.register", start, err)
	if err != nil {
		span.RecordError(err)
		switch {
		case database.IsForeignKeyViolation(err, registrationPicnicFK):
			span.SetStatus(codes.Error, "Picnic not found")
			return nil, ErrPicnicNotFound
		case database.IsForeignKeyViolation(err, registrationUserFK):
			span.SetStatus(codes.Error, "User not found")
			return nil, ErrUserNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to insert registration", slog.Any("error", err))
		span.SetStatus(codes.Error, "DB insert failed")
		return nil, fmt.Errorf("failed to insert registration: %w", err)
	}

	return &s, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
