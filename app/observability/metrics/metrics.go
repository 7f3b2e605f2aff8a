package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	LookupRequestsTotal    metric.Int64Counter
	LookupDurationSeconds  metric.Float64Histogram
	DbQueryDurationSeconds metric.Float64Histogram
	DbQueryErrorsTotal     metric.Int64Counter
	CitiesSavedTotal       metric.Int64Counter
	UsersRegisteredTotal   metric.Int64Counter
	PicnicsCreatedTotal    metric.Int64Counter
	RegistrationsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once, using the global MeterProvider.
// Call it after the provider is installed so readings reach the exporter.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("PicnicPlanner")
		m := &AppMetrics{}

		m.LookupRequestsTotal = mustCounter(meter, "city_lookup_requests_total",
			"Total number of calls to the weather service", "{request}")
		m.LookupDurationSeconds = mustHistogram(meter, "city_lookup_duration_seconds",
			"Duration of weather service calls in seconds")
		m.DbQueryDurationSeconds = mustHistogram(meter, "db_query_duration_seconds",
			"Duration of database queries in seconds")
		m.DbQueryErrorsTotal = mustCounter(meter, "db_query_errors_total",
			"Total number of database query errors", "{error}")
		m.CitiesSavedTotal = mustCounter(meter, "cities_saved_total",
			"Total number of city upserts", "{city}")
		m.UsersRegisteredTotal = mustCounter(meter, "users_registered_total",
			"Total number of registered users", "{user}")
		m.PicnicsCreatedTotal = mustCounter(meter, "picnics_created_total",
			"Total number of created picnics", "{picnic}")
		m.RegistrationsTotal = mustCounter(meter, "picnic_registrations_total",
			"Total number of picnic registrations", "{registration}")

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the instruments, initialising them on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

// ObserveDBQuery records the duration of a repository query and counts failures.
func ObserveDBQuery(ctx context.Context, query string, start time.Time, err error) {
	m := Get()
	attrs := metric.WithAttributes(attribute.String("db.query", query))
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}

// ObserveLookup records one call to the weather service.
func ObserveLookup(ctx context.Context, operation, outcome string, start time.Time) {
	m := Get()
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	m.LookupRequestsTotal.Add(ctx, 1, attrs)
	m.LookupDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
}

func mustCounter(meter metric.Meter, name, desc, unit string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
	return c
}

func mustHistogram(meter metric.Meter, name, desc string) metric.Float64Histogram {
	h, err := meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
	return h
}
