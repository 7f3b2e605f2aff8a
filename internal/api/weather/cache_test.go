package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-picnic-planner/internal/types"
)

type countingLookup struct {
	existsCalls  int
	weatherCalls int
	exists       bool
	weather      *types.Weather
	err          error
}

func (m *countingLookup) CityExists(context.Context, string) (bool, error) {
	m.existsCalls++
	return m.exists, m.err
}

func (m *countingLookup) CurrentWeather(context.Context, string) (*types.Weather, error) {
	m.weatherCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.weather, nil
}

func TestCachedLookup_CityExistsHit(t *testing.T) {
	inner := &countingLookup{exists: true}
	cached := NewCachedLookup(inner, time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := cached.CityExists(context.Background(), "Moscow")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	_, _ = cached.CityExists(context.Background(), "MOSCOW")

	assert.Equal(t, 1, inner.existsCalls, "should only call inner once")
}

func TestCachedLookup_NegativeNotCached(t *testing.T) {
	inner := &countingLookup{exists: false}
	cached := NewCachedLookup(inner, time.Minute)

	_, _ = cached.CityExists(context.Background(), "Atlantis")
	_, _ = cached.CityExists(context.Background(), "Atlantis")

	assert.Equal(t, 2, inner.existsCalls)
}

func TestCachedLookup_ErrorsNotCached(t *testing.T) {
	inner := &countingLookup{err: errors.New("timeout")}
	cached := NewCachedLookup(inner, time.Minute)

	_, err := cached.CurrentWeather(context.Background(), "Moscow")
	require.Error(t, err)
	_, err = cached.CurrentWeather(context.Background(), "Moscow")
	require.Error(t, err)

	assert.Equal(t, 2, inner.weatherCalls)
}

func TestCachedLookup_WeatherHitImpliesExistence(t *testing.T) {
	inner := &countingLookup{weather: &types.Weather{Description: "clear sky", Temperature: 20}}
	cached := NewCachedLookup(inner, time.Minute)

	w1, err := cached.CurrentWeather(context.Background(), "Paris")
	require.NoError(t, err)
	w2, err := cached.CurrentWeather(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, *w1, *w2)
	assert.Equal(t, 1, inner.weatherCalls)

	ok, err := cached.CityExists(context.Background(), "Paris")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, inner.existsCalls)
}

func TestCachedLookup_Expiry(t *testing.T) {
	inner := &countingLookup{exists: true}
	cached := NewCachedLookup(inner, 20*time.Millisecond)

	_, _ = cached.CityExists(context.Background(), "Moscow")
	time.Sleep(40 * time.Millisecond)
	_, _ = cached.CityExists(context.Background(), "Moscow")

	assert.Equal(t, 2, inner.existsCalls)
}
