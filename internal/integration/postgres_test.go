//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	database "github.com/FACorreiaa/go-picnic-planner/app/db"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/city"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/picnic"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/user"
	"github.com/FACorreiaa/go-picnic-planner/internal/router"
	"github.com/FACorreiaa/go-picnic-planner/internal/types"
)

// knownCities stands in for the weather service.
type knownCities map[string]types.Weather

func (k knownCities) CityExists(_ context.Context, name string) (bool, error) {
	_, ok := k[strings.ToLower(name)]
	return ok, nil
}

func (k knownCities) CurrentWeather(_ context.Context, name string) (*types.Weather, error) {
	w, ok := k[strings.ToLower(name)]
	if !ok {
		return nil, types.ErrUnknownCity
	}
	return &w, nil
}

type testEnv struct {
	server *httptest.Server
	pool   *pgxpool.Pool
	clock  *clockwork.FakeClock
}

func startPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()

	pg, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("picnics"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, pg)
	require.NoError(t, err, "start postgres container")

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func setup(t *testing.T, now time.Time) *testEnv {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	connStr := startPostgres(ctx, t)

	require.NoError(t, database.RunMigrations(connStr, logger))
	pool, err := database.Init(ctx, connStr, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.True(t, database.WaitForDB(ctx, pool, logger))

	lookup := knownCities{
		"moscow": {Description: "snow", Temperature: -3},
		"paris":  {Description: "clear sky", Temperature: 18},
	}
	clock := clockwork.NewFakeClockAt(now)

	r := router.SetupRouter(&router.Config{
		CityHandler: city.NewCityHandler(
			city.NewCityService(city.NewCityRepository(pool, logger), lookup, logger), logger),
		UserHandler: user.NewHandlerImpl(
			user.NewUserService(user.NewPostgresUserRepo(pool, logger), logger), logger),
		PicnicHandler: picnic.NewHandlerImpl(
			picnic.NewService(picnic.NewPostgresRepository(pool, logger), clock, logger), logger),
		DB:      pool,
		Logger:  logger,
		Timeout: 10 * time.Second,
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, pool: pool, clock: clock}
}

func (e *testEnv) call(t *testing.T, method, path string, query url.Values, body string, out any) int {
	t.Helper()
	u := e.server.URL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, u, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestPicnicPlanner(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	env := setup(t, now)

	var moscow types.City
	t.Run("creating the same city twice returns the same id", func(t *testing.T) {
		require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/create-city/", url.Values{"city": {"moscow"}}, "", &moscow))
		assert.Equal(t, "Moscow", moscow.Name)
		require.NotNil(t, moscow.Weather)
		assert.Equal(t, "snow, -3.0°C", *moscow.Weather)

		var again types.City
		require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/create-city", url.Values{"city": {"MOSCOW"}}, "", &again))
		assert.Equal(t, moscow.ID, again.ID)

		var cities []types.City
		require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/get-cities/", nil, "", &cities))
		assert.Len(t, cities, 1)
	})

	t.Run("unknown city is rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, env.call(t, http.MethodGet, "/create-city/", url.Values{"city": {"Atlantis"}}, "", nil))
		assert.Equal(t, http.StatusBadRequest, env.call(t, http.MethodGet, "/create-city/", nil, "", nil))
	})

	var ivan, anna types.User
	t.Run("registered users are listed within age bounds", func(t *testing.T) {
		require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/register-user/", nil,
			`{"name":"Ivan","surname":"Petrov","age":30}`, &ivan))
		require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/register-user/", nil,
			`{"name":"Anna","surname":"Ivanova","age":17}`, &anna))

		var all []types.User
		require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/users-list/", nil, "", &all))
		assert.Equal(t, []types.User{ivan, anna}, all)

		var adults []types.User
		require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/users-list/", url.Values{"amin": {"18"}}, "", &adults))
		assert.Equal(t, []types.User{ivan}, adults)
		assert.LessOrEqual(t, len(adults), len(all))

		var exact []types.User
		require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/users-list/", url.Values{"amin": {"17"}, "amax": {"17"}}, "", &exact))
		assert.Equal(t, []types.User{anna}, exact)
	})

	t.Run("picnic with city_id=0 creates nothing", func(t *testing.T) {
		status := env.call(t, http.MethodGet, "/picnic-add/", url.Values{"city_id": {"0"}, "datetime": {"2024-05-02T12:00:00"}}, "", nil)
		assert.Equal(t, http.StatusBadRequest, status)

		var count int
		require.NoError(t, env.pool.QueryRow(context.Background(), "SELECT count(*) FROM picnics").Scan(&count))
		assert.Zero(t, count)
	})

	t.Run("picnic in an unknown city is not found", func(t *testing.T) {
		status := env.call(t, http.MethodGet, "/picnic-add/", url.Values{"city_id": {"9999"}, "datetime": {"2024-05-02T12:00:00"}}, "", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	var future types.PicnicCreated
	t.Run("registration shows up in all picnics", func(t *testing.T) {
		q := url.Values{"city_id": {itoa(moscow.ID)}, "datetime": {"2024-05-01T14:00:00"}}
		require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/picnic-add/", q, "", &future))
		assert.Equal(t, "Moscow", future.City)
		assert.True(t, future.Time.Equal(now.Add(2*time.Hour)))

		var picnics []types.PicnicDetail
		require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/all-picnics/", nil, "", &picnics))
		require.Len(t, picnics, 1)
		assert.NotNil(t, picnics[0].Users)
		assert.Empty(t, picnics[0].Users)

		var reg types.RegistrationSummary
		require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/picnic-register/",
			url.Values{"picnic_id": {itoa(future.ID)}, "user_id": {itoa(ivan.ID)}}, "", &reg))
		assert.Equal(t, ivan.ID, reg.UserID)
		assert.Equal(t, "Ivan", reg.Name)
		assert.Equal(t, future.ID, reg.PicnicID)

		require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/all-picnics/", nil, "", &picnics))
		require.Len(t, picnics, 1)
		assert.Equal(t, []types.User{ivan}, picnics[0].Users)

		assert.Equal(t, http.StatusNotFound, env.call(t, http.MethodGet, "/picnic-register/",
			url.Values{"picnic_id": {itoa(future.ID)}, "user_id": {"9999"}}, "", nil))
		assert.Equal(t, http.StatusNotFound, env.call(t, http.MethodGet, "/picnic-register/",
			url.Values{"picnic_id": {"9999"}, "user_id": {itoa(ivan.ID)}}, "", nil))
	})

	t.Run("the same user can register twice", func(t *testing.T) {
		var first, second types.RegistrationSummary
		q := url.Values{"picnic_id": {itoa(future.ID)}, "user_id": {itoa(anna.ID)}}
		require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/picnic-register/", q, "", &first))
		require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/picnic-register/", q, "", &second))
		assert.NotEqual(t, first.RegistrationID, second.RegistrationID)

		var picnics []types.PicnicDetail
		require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/all-picnics/", nil, "", &picnics))
		require.Len(t, picnics, 1)
		assert.Equal(t, []types.User{ivan, anna, anna}, picnics[0].Users)
	})

	t.Run("age bounds beyond the int4 range", func(t *testing.T) {
		var users []types.User
		require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/users-list/",
			url.Values{"amin": {"-3000000000"}, "amax": {"3000000000"}}, "", &users))
		assert.Equal(t, []types.User{ivan, anna}, users)
	})

	t.Run("future picnic drops out of past=false once it has passed", func(t *testing.T) {
		var upcoming []types.PicnicDetail
		require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/all-picnics/", url.Values{"past": {"false"}}, "", &upcoming))
		require.Len(t, upcoming, 1)
		assert.Equal(t, future.ID, upcoming[0].ID)

		env.clock.Advance(3 * time.Hour)

		require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/all-picnics/", url.Values{"past": {"false"}}, "", &upcoming))
		assert.Empty(t, upcoming)

		var exact []types.PicnicDetail
		require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/all-picnics/",
			url.Values{"datetime": {"2024-05-01T14:00:00Z"}}, "", &exact))
		assert.Len(t, exact, 1)
	})
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
