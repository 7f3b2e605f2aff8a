package user

import (
	"context"
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

var _ UserRepo = (*PostgresUserRepo)(nil)

type UserRepo interface {
	// CreateUser inserts a user unconditionally and returns the stored row.
	CreateUser(ctx context.Context, name, surname string, age int) (*types.User, error)
	// ListUsers returns users whose age lies in the inclusive range, ordered by id.
	ListUsers(ctx context.Context, ages types.AgeRange) ([]types.User, error)
}

type PostgresUserRepo struct {
	logger *slog.Logger
	pgpool database.DBTX
}

func NewPostgresUserRepo(pgpool database.DBTX, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresUserRepo) CreateUser(ctx context.Context, name, surname string, age int) (*types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "CreateUser", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "INSERT"),
	))
	defer span.End()

	query := `
        INSERT INTO users (name, surname, age)
        VALUES ($1, $2, $3)
        RETURNING id, name, surname, age
    `

	start := time.Now()
	var u types.User
	err := database.WithTx(ctx, r.pgpool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, name, surname, age).Scan(&u.ID, &u.Name, &u.Surname, &u.Age)
	})
	metrics.ObserveDBQuery(ctx, "users.create", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB insert failed")
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	span.SetAttributes(attribute.Int64("user.id", u.ID))
	return &u, nil
}

func (r *PostgresUserRepo) ListUsers(ctx context.Context, ages types.AgeRange) ([]types.User, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "ListUsers", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.Int("age.min", ages.Min),
		attribute.Int("age.max", ages.Max),
	))
	defer span.End()

	query := `
        SELECT id, name, surname, age
        FROM users
        WHERE age >= $1::bigint AND age <= $2::bigint
        ORDER BY id
    `

	start := time.Now()
	rows, err := r.pgpool.Query(ctx, query, ages.Min, ages.Max)
	if err != nil {
		metrics.ObserveDBQuery(ctx, "users.list", start, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		var u types.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Surname, &u.Age); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	err = rows.Err()
	metrics.ObserveDBQuery(ctx, "users.list", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row iteration failed")
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	span.SetAttributes(attribute.Int("users.count", len(users)))
	return users, nil
}
