package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-trade-journal/internal/entity"
	"go-trade-journal/internal/journal/dto"
	"go-trade-journal/internal/journal/repository"
	"go-trade-journal/internal/journal/service"
	"go-trade-journal/pkg/logger"
	"go-trade-journal/pkg/security"
	"go-trade-journal/pkg/sqlite"
)

type testServer struct {
	echo   *echo.Echo
	trades service.TradeService
	tokens *security.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := sqlite.NewDB(sqlite.Config{
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, db.DB.AutoMigrate(&entity.Trade{}))

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	hash, err := security.HashPassword("superadmin123")
	require.NoError(t, err)

	repo := repository.NewTradeRepository(db.DB)
	tokens := security.NewAuthService("test-secret", time.Hour)
	analyticsSvc := service.NewAnalyticsService(repo, log, time.Minute)
	screenshotSvc := service.NewScreenshotService(repo, t.TempDir(), 1024*1024, log)
	tradeSvc := service.NewTradeService(repo, screenshotSvc, analyticsSvc, log)
	exportSvc := service.NewExportService(repo, log)
	authSvc := service.NewAuthService("owner", hash, tokens, time.Hour, log)

	e := echo.New()
	apiV1 := e.Group("/api/v1")
	NewAuthHandler(authSvc, log, 100, 100).RegisterRoutes(apiV1.Group("/auth"))
	NewPublicHandler(tradeSvc, analyticsSvc, exportSvc, log).RegisterRoutes(apiV1.Group("/cases"))
	adminGroup := apiV1.Group("/admin", OwnerMiddleware(tokens, log))
	NewTradeHandler(tradeSvc, analyticsSvc, screenshotSvc, log).RegisterRoutes(adminGroup)

	return &testServer{echo: e, trades: tradeSvc, tokens: tokens}
}

func (ts *testServer) request(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) seed(t *testing.T, published bool, resultR *float64) *dto.TradeResponse {
	t.Helper()

	req := &dto.CreateTradeRequest{
		TradeDate:    "2024-05-01",
		Symbol:       "EURUSD",
		Direction:    "BUY",
		EntryPrice:   100,
		StopPrice:    95,
		TargetPrice:  110,
		Published:    published,
		Thesis:       "demand zone reclaim",
		PrivateNotes: "TOP-SECRET-NOTE",
		ResultR:      resultR,
	}
	if resultR != nil {
		req.Status = "CLOSED"
	}
	created, err := ts.trades.CreateTrade(context.Background(), req)
	require.NoError(t, err)
	return created
}

func fptr(v float64) *float64 { return &v }

func TestPublicListNeverLeaksPrivateNotes(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.seed(t, true, fptr(2.5))

	rec := ts.request(t, http.MethodGet, "/api/v1/cases", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "EURUSD")
	assert.NotContains(t, rec.Body.String(), "TOP-SECRET-NOTE")
	assert.NotContains(t, rec.Body.String(), "private_notes")
}

func TestPublicDetailHidesUnpublished(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	created := ts.seed(t, false, nil)

	rec := ts.request(t, http.MethodGet, "/api/v1/cases/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The owner workspace still sees it.
	token, err := ts.tokens.GenerateToken("owner")
	require.NoError(t, err)
	rec = ts.request(t, http.MethodGet, "/api/v1/admin/trades/1", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOP-SECRET-NOTE")
	_ = created
}

func TestAdminRequiresToken(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/v1/admin/trades", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/v1/admin/trades", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginAndCreateTrade(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/v1/auth/login",
		`{"username":"owner","password":"superadmin123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	body := `{"trade_date":"2024-05-02","symbol":"XAUUSD","direction":"SELL",` +
		`"entry_price":2400,"stop_price":2410,"target_price":2370,"status":"OPEN"}`
	rec = ts.request(t, http.MethodPost, "/api/v1/admin/trades", body, login.Token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created dto.TradeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "XAUUSD", created.Symbol)
	require.NotNil(t, created.RiskRewardRatio)
	assert.Equal(t, 3.0, *created.RiskRewardRatio)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec := ts.request(t, http.MethodPost, "/api/v1/auth/login",
		`{"username":"owner","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateTradeValidationResponse(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token, err := ts.tokens.GenerateToken("owner")
	require.NoError(t, err)

	rec := ts.request(t, http.MethodPost, "/api/v1/admin/trades",
		`{"symbol":"","direction":"LONG"}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "symbol")
	assert.Contains(t, resp.Fields, "direction")
}

func TestDeleteTradeEndpoint(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	created := ts.seed(t, true, fptr(1.0))
	token, err := ts.tokens.GenerateToken("owner")
	require.NoError(t, err)

	rec := ts.request(t, http.MethodDelete, "/api/v1/admin/trades/1", "", token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/v1/cases/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.request(t, http.MethodDelete, "/api/v1/admin/trades/1", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	_ = created
}

func TestPublicSummaryOmitsDataQuality(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.seed(t, true, fptr(2.5))
	ts.seed(t, true, fptr(-1.0))

	rec := ts.request(t, http.MethodGet, "/api/v1/cases/summary", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary dto.AnalyticsSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 50.0, summary.WinRate)
	assert.Len(t, summary.EquityCurve, 2)
	assert.Empty(t, summary.DataQuality)
	assert.NotContains(t, rec.Body.String(), "data_quality")
}

func TestExportEndpointServesCSV(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.seed(t, true, fptr(2.5))

	rec := ts.request(t, http.MethodGet, "/api/v1/cases/export/csv", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "trades_closed.csv")
	assert.Contains(t, rec.Body.String(), "EURUSD")
}
