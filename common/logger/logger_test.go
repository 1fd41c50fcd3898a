package logger_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/common/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(logger.RequestID())
	r.GET("/", func(c *gin.Context) {
		seen = logger.RequestIDFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "unknown", seen)
	assert.Equal(t, seen, w.Header().Get(logger.RequestIDHeader))
}

func TestRequestID_ReusesIncomingHeader(t *testing.T) {
	r := gin.New()
	r.Use(logger.RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(logger.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(logger.RequestIDHeader))
}

func TestRequestIDFrom_Unknown(t *testing.T) {
	assert.Equal(t, "unknown", logger.RequestIDFrom(context.Background()))
}

func TestNew_TeesToSink(t *testing.T) {
	var sink bytes.Buffer
	log, err := logger.New("production", &sink)
	require.NoError(t, err)

	log.Info("order placed")
	_ = log.Sync()

	assert.Contains(t, sink.String(), `"msg":"order placed"`)
	assert.Contains(t, sink.String(), `"level":"info"`)
}
