package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/hr_records/internal/handler"
)

func TestRegisterRoutes(t *testing.T) {
	app := NewApp()
	app.RegisterRoutes(Handlers{
		Employee: handler.NewEmployeeHandler(nil),
		Record:   handler.NewRecordHandler(nil),
		Leave:    handler.NewLeaveHandler(nil),
		Review:   handler.NewReviewHandler(nil),
		Auth:     handler.NewAuthHandler(nil),
		Health:   handler.NewHealthHandler(nil),
	})

	registered := make(map[string]bool)
	for _, r := range app.Echo.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /employees",
		"POST /employees",
		"GET /employees/search",
		"DELETE /employees/:id",
		"GET /payroll",
		"GET /payroll/export",
		"GET /attendance",
		"GET /attendance/export",
		"GET /leave-requests",
		"POST /leave-requests",
		"PATCH /leave-requests/:id",
		"GET /performance-reviews",
		"POST /performance-reviews",
		"POST /login",
		"GET /health",
		"GET /metrics",
	} {
		assert.True(t, registered[want], "route %s not registered", want)
	}
}

func TestRequestContextMiddleware(t *testing.T) {
	app := NewApp()
	app.RegisterMiddlewares()
	app.Echo.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}
