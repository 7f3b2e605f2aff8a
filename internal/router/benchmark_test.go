package router

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FACorreiaa/go-picnic-planner/internal/api/city"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/picnic"
	"github.com/FACorreiaa/go-picnic-planner/internal/api/user"
	"github.com/FACorreiaa/go-picnic-planner/internal/types"
)

type stubUserService struct{}

func (stubUserService) RegisterUser(_ context.Context, req types.RegisterUserRequest) (*types.User, error) {
	return &types.User{ID: 1, Name: req.Name, Surname: req.Surname, Age: *req.Age}, nil
}

func (stubUserService) ListUsers(context.Context, types.AgeRange) ([]types.User, error) {
	return []types.User{{ID: 1, Name: "Ivan", Surname: "Petrov", Age: 30}}, nil
}

type stubPicnicService struct{}

func (stubPicnicService) ListPicnics(context.Context, *time.Time, bool) ([]types.PicnicDetail, error) {
	users := []types.User{{ID: 1, Name: "Ivan", Surname: "Petrov", Age: 30}}
	return []types.PicnicDetail{{ID: 1, City: "Moscow", Time: time.Unix(0, 0).UTC(), Users: users}}, nil
}

func (stubPicnicService) AddPicnic(_ context.Context, _ int64, at time.Time) (*types.PicnicCreated, error) {
	return &types.PicnicCreated{ID: 1, City: "Moscow", Time: at}, nil
}

func (stubPicnicService) RegisterToPicnic(_ context.Context, picnicID, userID int64) (*types.RegistrationSummary, error) {
	return &types.RegistrationSummary{RegistrationID: 1, UserID: userID, Name: "Ivan", PicnicID: picnicID}, nil
}

func newBenchmarkRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return SetupRouter(&Config{
		CityHandler:   city.NewCityHandler(stubCityService{}, logger),
		UserHandler:   user.NewHandlerImpl(stubUserService{}, logger),
		PicnicHandler: picnic.NewHandlerImpl(stubPicnicService{}, logger),
		DB:            fakePinger{},
		Logger:        logger,
	})
}

func BenchmarkCreateCity(b *testing.B) {
	r := newBenchmarkRouter()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		do(r, http.MethodGet, "/create-city/?city=moscow")
	}
}

func BenchmarkRegisterUser(b *testing.B) {
	r := newBenchmarkRouter()
	body := []byte(`{"name":"Ivan","surname":"Petrov","age":30}`)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/register-user/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkAllPicnics_Parallel(b *testing.B) {
	r := newBenchmarkRouter()

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			do(r, http.MethodGet, "/all-picnics/?past=false")
		}
	})
}
