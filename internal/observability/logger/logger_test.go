package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/burnout/internal/observability/context"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestOperationFromSQL(t *testing.T) {
	cases := map[string]string{
		"SELECT * FROM health_records":                       "SELECT",
		"  insert into burnout_assessments (id) values (1)": "INSERT",
		"WITH latest AS (SELECT 1) SELECT * FROM latest":     "SELECT",
		"":                                                   "UNKNOWN",
		"VACUUM":                                             "UNKNOWN",
	}
	for sql, want := range cases {
		assert.Equal(t, want, operationFromSQL(sql), sql)
	}
}

func TestWithContextAddsRequestAndUser(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := obscontext.WithRequestID(context.Background(), "req-1")
	ctx = obscontext.WithUserID(ctx, "42")

	WithContext(ctx, zap.New(core)).Info("hello")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "42", fields["user_id"])
	}
}

func TestGormLoggerDropsParamsAndLogsErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewGormLogger(zap.New(core), DefaultGormLoggerConfig())

	sql, params := l.ParamsFilter(context.Background(), "SELECT 1 WHERE x = ?", 72)
	assert.Equal(t, "SELECT 1 WHERE x = ?", sql)
	assert.Nil(t, params)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "INSERT INTO t", 0 }, errors.New("boom"))
	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gormlogger.ErrRecordNotFound)

	entries := logs.FilterMessage("gorm.query").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "INSERT", entries[0].ContextMap()["operation"])
	}
}

func TestGinMiddlewareSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware(MiddlewareConfig{}))
	router.GET("/ping", func(c *gin.Context) {
		assert.NotEmpty(t, obscontext.RequestIDFromContext(c.Request.Context()))
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "fixed-id")
	router.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get(HeaderRequestID))
}
