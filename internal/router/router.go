package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	database "github.com/FACorreiaa/go-picnic-planner/app/db"
	appLogger "github.com/FACorreiaa/go-picnic-planner/app/logger"
	_ "github.com/FACorreiaa/go-picnic-planner/docs"
	"github.com/FACorreiaa/go-picnic-planner/internal/api"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/city"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/picnic"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/user"
)

// Config contains dependencies needed for the router setup
type Config struct {
	CityHandler    *city.Handler
	UserHandler    user.Handler
	PicnicHandler  picnic.Handler
	DB             database.Pinger
	Logger         *slog.Logger
	AllowedOrigins []string
	Timeout        time.Duration

	// RateLimit is the number of requests per RateWindow allowed per client IP.
	// Zero disables limiting.
	RateLimit  int
	RateWindow time.Duration
}

// SetupRouter initializes and configures the main application router,
// including server-wide middleware. Paths match with or without a trailing slash.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	if cfg.Timeout > 0 {
		r.Use(middleware.Timeout(cfg.Timeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))
	if cfg.RateLimit > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimit, cfg.RateWindow))
	}

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Get("/readyz", readiness(cfg.DB))

	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		r.Get("/create-city", cfg.CityHandler.CreateCity)
		r.Post("/get-cities", cfg.CityHandler.ListCities)
	})

	r.Group(func(r chi.Router) {
		r.Post("/users-list", cfg.UserHandler.ListUsers)
		r.Post("/register-user", cfg.UserHandler.RegisterUser)
	})

	r.Group(func(r chi.Router) {
		r.Get("/all-picnics", cfg.PicnicHandler.ListPicnics)
		r.Get("/picnic-add", cfg.PicnicHandler.AddPicnic)
		r.Get("/picnic-register", cfg.PicnicHandler.RegisterToPicnic)
	})

	return r
}

func readiness(db database.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if db == nil || db.Ping(ctx) != nil {
			api.WriteJSONResponse(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"status": "ready"})
	}
}
