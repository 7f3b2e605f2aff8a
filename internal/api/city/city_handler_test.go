package city

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-picnic-planner/internal/api"
	"github.com/FACorreiaa/go-picnic-planner/internal/types"
)

type MockCityService struct {
	mock.Mock
}

func (m *MockCityService) CreateCity(ctx context.Context, name string) (*types.City, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.City), args.Error(1)
}

func (m *MockCityService) ListCities(ctx context.Context, name *string) ([]types.City, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.City), args.Error(1)
}

func setupCityHandlerTest() (*Handler, *MockCityService) {
	mockService := new(MockCityService)
	return NewCityHandler(mockService, slog.New(slog.NewTextHandler(io.Discard, nil))), mockService
}

func decodeError(t *testing.T, body []byte) string {
	t.Helper()
	var resp api.Response
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.False(t, resp.Success)
	return resp.Error
}

func TestHandler_CreateCity(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		h, mockService := setupCityHandlerTest()
		summary := "clear sky, 21.0°C"
		mockService.On("CreateCity", mock.Anything, "moscow").
			Return(&types.City{ID: 1, Name: "Moscow", Weather: &summary}, nil).Once()

		w := httptest.NewRecorder()
		h.CreateCity(w, httptest.NewRequest(http.MethodGet, "/create-city/?city=moscow", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"name":"Moscow","weather":"clear sky, 21.0°C"}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("missing city", func(t *testing.T) {
		h, mockService := setupCityHandlerTest()

		for _, target := range []string{"/create-city/", "/create-city/?city=", "/create-city/?city=%20%20"} {
			w := httptest.NewRecorder()
			h.CreateCity(w, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code, target)
			assert.Equal(t, "city parameter must be given", decodeError(t, w.Body.Bytes()))
		}
		mockService.AssertNotCalled(t, "CreateCity", mock.Anything, mock.Anything)
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"unknown city", types.ErrUnknownCity, http.StatusBadRequest, "city parameter must be an existing city"},
		{"lookup unavailable", errors.Join(types.ErrLookupUnavailable, errors.New("timeout")), http.StatusBadGateway, "city lookup unavailable"},
		{"storage failure", errors.New("db down"), http.StatusInternalServerError, "Failed to create city"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockService := setupCityHandlerTest()
			mockService.On("CreateCity", mock.Anything, "Atlantis").Return(nil, tt.err).Once()

			w := httptest.NewRecorder()
			h.CreateCity(w, httptest.NewRequest(http.MethodGet, "/create-city/?city=Atlantis", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, decodeError(t, w.Body.Bytes()))
		})
	}
}

func TestHandler_ListCities(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		h, mockService := setupCityHandlerTest()
		mockService.On("ListCities", mock.Anything, (*string)(nil)).Return([]types.City{}, nil).Once()

		w := httptest.NewRecorder()
		h.ListCities(w, httptest.NewRequest(http.MethodPost, "/get-cities/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("filter by name", func(t *testing.T) {
		h, mockService := setupCityHandlerTest()
		mockService.On("ListCities", mock.Anything, mock.MatchedBy(func(q *string) bool {
			return q != nil && *q == "Paris"
		})).Return([]types.City{{ID: 2, Name: "Paris"}}, nil).Once()

		w := httptest.NewRecorder()
		h.ListCities(w, httptest.NewRequest(http.MethodPost, "/get-cities/?q=Paris", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":2,"name":"Paris","weather":null}]`, w.Body.String())
	})

	t.Run("service error", func(t *testing.T) {
		h, mockService := setupCityHandlerTest()
		mockService.On("ListCities", mock.Anything, (*string)(nil)).Return(nil, errors.New("db down")).Once()

		w := httptest.NewRecorder()
		h.ListCities(w, httptest.NewRequest(http.MethodPost, "/get-cities/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
