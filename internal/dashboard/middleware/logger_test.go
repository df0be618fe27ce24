package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(buf *bytes.Buffer) *gin.Engine {
		testLogger := slog.New(slog.NewJSONHandler(buf, nil))
		router := gin.New()
		router.Use(CorrelationID())
		router.Use(Logger(testLogger))
		router.GET("/items", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		router.GET("/health", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	t.Run("LogsRequestDetails", func(t *testing.T) {
		var buf bytes.Buffer
		router := newRouter(&buf)

		req, _ := http.NewRequest(http.MethodGet, "/items?limit=5", nil)
		req.Header.Set(CorrelationIDHeader, "corr-log-test")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		out := buf.String()
		assert.Contains(t, out, "HTTP request")
		assert.Contains(t, out, `"method":"GET"`)
		assert.Contains(t, out, "/items?limit=5")
		assert.Contains(t, out, `"status":200`)
		assert.Contains(t, out, `"correlation_id":"corr-log-test"`)
	})

	t.Run("SkipsHealthProbes", func(t *testing.T) {
		var buf bytes.Buffer
		router := newRouter(&buf)

		req, _ := http.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, buf.String())
	})
}
