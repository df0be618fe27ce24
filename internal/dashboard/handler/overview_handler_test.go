package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/copia-dashboard/internal/dashboard/service"
	"github.com/copia-dashboard/internal/domain/copia"
	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/copia-dashboard/internal/domain/ledger"
	"github.com/copia-dashboard/internal/ledgerapi"
	"github.com/copia-dashboard/internal/series"
	"github.com/copia-dashboard/internal/suspend"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOverviewService struct {
	mock.Mock
}

func (m *MockOverviewService) GetOverview(ctx context.Context) service.Overview {
	args := m.Called(ctx)
	return args.Get(0).(service.Overview)
}

func (m *MockOverviewService) BalanceSeries(ctx context.Context, user entity.UserName) (service.BalanceSeries, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(service.BalanceSeries), args.Error(1)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	return r
}

var testLogger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// decodeData unmarshals the envelope and re-decodes its data field into out.
func decodeData(t *testing.T, body []byte, out interface{}) {
	t.Helper()
	var response Response
	require.NoError(t, json.Unmarshal(body, &response))
	require.NotNil(t, response.Data, "'data' field should not be nil")
	dataBytes, err := json.Marshal(response.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(dataBytes, out))
}

func TestOverviewHandler_Get(t *testing.T) {
	t.Run("AllSectionsFulfilled", func(t *testing.T) {
		mockService := new(MockOverviewService)
		handler := NewOverviewHandler(testLogger, mockService)

		overview := service.Overview{
			User: service.Section[ledger.User]{
				State: suspend.Fulfilled,
				Data:  ledger.User{Name: "alice", Balance: copia.FromInt64(1500000)},
			},
			Projects: service.Section[[]ledger.Project]{
				State: suspend.Fulfilled,
				Data:  []ledger.Project{{Name: "shop", Balance: copia.FromInt64(999999)}},
			},
			Recent: service.Section[[]ledger.Transaction]{
				State: suspend.Fulfilled,
				Data:  []ledger.Transaction{{Type: ledger.TransactionTypeTransfer, Amount: copia.FromInt64(1500)}},
			},
			Stats: service.Section[service.Stats]{
				State: suspend.Fulfilled,
				Data:  service.Stats{UserCount: 3, ProjectCount: 2, TransactionCount: 42},
			},
		}
		mockService.On("GetOverview", mock.Anything).Return(overview)

		router := setupTestRouter()
		router.GET("/overview", handler.Get)

		req, _ := http.NewRequest(http.MethodGet, "/overview", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var body OverviewResponse
		decodeData(t, rr.Body.Bytes(), &body)

		assert.Equal(t, "fulfilled", body.User.State)
		assert.Equal(t, "fulfilled", body.Stats.State)

		var user UserResponse
		userBytes, _ := json.Marshal(body.User.Data)
		require.NoError(t, json.Unmarshal(userBytes, &user))
		assert.Equal(t, "alice", user.Name)
		assert.Equal(t, "1.5M", user.Balance.Compact)
		assert.Equal(t, "1,500,000", user.Balance.Exact)
		assert.Equal(t, "1500000", user.Balance.Raw)
	})

	t.Run("FailedSectionStillRenders", func(t *testing.T) {
		mockService := new(MockOverviewService)
		handler := NewOverviewHandler(testLogger, mockService)

		overview := service.Overview{
			User: service.Section[ledger.User]{
				State: suspend.Rejected,
				Err:   errors.New("ledger unreachable"),
			},
			Projects: service.Section[[]ledger.Project]{
				State: suspend.Fulfilled,
				Data:  []ledger.Project{},
			},
			Recent: service.Section[[]ledger.Transaction]{State: suspend.Pending},
			Stats: service.Section[service.Stats]{
				State: suspend.Fulfilled,
				Data:  service.Stats{},
			},
		}
		mockService.On("GetOverview", mock.Anything).Return(overview)

		router := setupTestRouter()
		router.GET("/overview", handler.Get)

		req, _ := http.NewRequest(http.MethodGet, "/overview", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		// One broken card never fails the page.
		assert.Equal(t, http.StatusOK, rr.Code)

		var body OverviewResponse
		decodeData(t, rr.Body.Bytes(), &body)
		assert.Equal(t, "rejected", body.User.State)
		assert.Equal(t, "ledger unreachable", body.User.Error)
		assert.Nil(t, body.User.Data)
		assert.Equal(t, "pending", body.Recent.State)
		assert.Empty(t, body.Recent.Error)
		assert.Equal(t, "fulfilled", body.Projects.State)
	})

	t.Run("RejectedCredentialsAskForLogin", func(t *testing.T) {
		mockService := new(MockOverviewService)
		handler := NewOverviewHandler(testLogger, mockService)

		overview := service.Overview{
			User: service.Section[ledger.User]{
				State: suspend.Rejected,
				Err:   fmt.Errorf("fetch current user: %w", ledgerapi.ErrUnauthorized),
			},
			Projects: service.Section[[]ledger.Project]{State: suspend.Pending},
			Recent:   service.Section[[]ledger.Transaction]{State: suspend.Pending},
			Stats:    service.Section[service.Stats]{State: suspend.Pending},
		}
		mockService.On("GetOverview", mock.Anything).Return(overview)

		router := setupTestRouter()
		router.GET("/overview", handler.Get)

		req, _ := http.NewRequest(http.MethodGet, "/overview", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		var response Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		require.NotNil(t, response.Error)
		assert.Equal(t, "UNAUTHORIZED", response.Error.Code)
		assert.Contains(t, response.Error.Message, "log in")
	})
}

func TestOverviewHandler_BalanceSeries(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockOverviewService)
		handler := NewOverviewHandler(testLogger, mockService)

		mockService.On("BalanceSeries", mock.Anything, entity.UserName("alice")).
			Return(service.BalanceSeries{
				User: "alice",
				Points: []series.Point{
					{Label: "Jan 1", Balance: copia.FromInt64(500)},
					{Label: "Jan 2", Balance: copia.FromInt64(300)},
				},
			}, nil)

		router := setupTestRouter()
		router.GET("/users/:name/balance-series", handler.BalanceSeries)

		req, _ := http.NewRequest(http.MethodGet, "/users/alice/balance-series", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var body BalanceSeriesResponse
		decodeData(t, rr.Body.Bytes(), &body)
		assert.Equal(t, "alice", body.User)
		require.Len(t, body.Points, 2)
		assert.Equal(t, "Jan 1", body.Points[0].Label)
		assert.Equal(t, "500", body.Points[0].Balance.Raw)
		assert.False(t, body.NoData)
	})

	t.Run("EmptyHistoryIsExplicit", func(t *testing.T) {
		mockService := new(MockOverviewService)
		handler := NewOverviewHandler(testLogger, mockService)

		mockService.On("BalanceSeries", mock.Anything, entity.UserName("newbie")).
			Return(service.BalanceSeries{User: "newbie"}, nil)

		router := setupTestRouter()
		router.GET("/users/:name/balance-series", handler.BalanceSeries)

		req, _ := http.NewRequest(http.MethodGet, "/users/newbie/balance-series", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var body BalanceSeriesResponse
		decodeData(t, rr.Body.Bytes(), &body)
		assert.True(t, body.NoData)
		assert.Empty(t, body.Points)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		mockService := new(MockOverviewService)
		handler := NewOverviewHandler(testLogger, mockService)

		mockService.On("BalanceSeries", mock.Anything, entity.UserName("ghost")).
			Return(service.BalanceSeries{}, ledgerapi.ErrNotFound)

		router := setupTestRouter()
		router.GET("/users/:name/balance-series", handler.BalanceSeries)

		req, _ := http.NewRequest(http.MethodGet, "/users/ghost/balance-series", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
