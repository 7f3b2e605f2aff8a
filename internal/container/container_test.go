package container

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-picnic-planner/config"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/weather"
)

func TestNewLookup(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var cfg config.Config
	cfg.Weather.BaseURL = "http://localhost"
	cfg.Weather.Timeout = time.Second

	_, ok := NewLookup(&cfg, logger).(*weather.Client)
	assert.True(t, ok, "no TTL means no cache")

	cfg.Weather.CacheTTL = time.Minute
	_, ok = NewLookup(&cfg, logger).(*weather.CachedLookup)
	assert.True(t, ok, "positive TTL wraps the client in a cache")
}
