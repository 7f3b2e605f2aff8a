package city

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

var _ CityRepository = (*PostgresCityRepository)(nil)

type CityRepository interface {
	// Upsert inserts the city or returns the existing row with the same name.
	// A nil weather keeps whatever is stored.
	Upsert(ctx context.Context, name string, weather *string) (*types.City, error)
	// List returns cities ordered by id. A non-nil name filters by exact match.
	List(ctx context.Context, name *string) ([]types.City, error)
}

type PostgresCityRepository struct {
	logger *slog.Logger
	pgpool database.DBTX
}

func NewCityRepository(pgpool database.DBTX, logger *slog.Logger) *PostgresCityRepository {
	return &PostgresCityRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresCityRepository) Upsert(ctx context.Context, name string, weather *string) (*types.City, error) {
	ctx, span := otel.Tracer("CityRepository").Start(ctx, "Upsert", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("city.name", name),
	))
	defer span.End()

	query := `
        INSERT INTO cities (name, weather)
        VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE
            SET weather = COALESCE(EXCLUDED.weather, cities.weather)
        RETURNING id, name, weather
    `

	start := time.Now()
	var city types.City
	err := database.WithTx(ctx, r.pgpool, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, name, weather).Scan(&city.ID, &city.Name, &city.Weather)
	})
	metrics.ObserveDBQuery(ctx, "cities.upsert", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to upsert city", slog.String("name", name), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB upsert failed")
		return nil, fmt.Errorf("failed to upsert city: %w", err)
	}

	span.SetAttributes(attribute.Int64("city.id", city.ID))
	return &city, nil
}

func (r *PostgresCityRepository) List(ctx context.Context, name *string) ([]types.City, error) {
	ctx, span := otel.Tracer("CityRepository").Start(ctx, "List", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
	))
	defer span.End()

	query := `SELECT id, name, weather FROM cities`
	var args []any
	if name != nil {
		query += ` WHERE name = $1`
		args = append(args, *name)
	}
	query += ` ORDER BY id`

	start := time.Now()
	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		metrics.ObserveDBQuery(ctx, "cities.list", start, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	cities := make([]types.City, 0)
	for rows.Next() {
		var c types.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Weather); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		cities = append(cities, c)
	}
	err = rows.Err()
	metrics.ObserveDBQuery(ctx, "cities.list", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Row iteration failed")
		return nil, fmt.Errorf("error iterating city rows: %w", err)
	}

	span.SetAttributes(attribute.Int("cities.count", len(cities)))
	return cities, nil
}
