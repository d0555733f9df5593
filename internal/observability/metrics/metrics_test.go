package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("outcome", "accepted"),
		attribute.String("user_id", "456"),
		attribute.String("source", "http"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "outcome" && attrs[1].Key != "outcome" {
		t.Fatalf("expected outcome to be retained")
	}
	if attrs[0].Key != "source" && attrs[1].Key != "source" {
		t.Fatalf("expected source to be retained")
	}
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics
	m.RecordSubmission(context.Background(), "accepted")
	m.RecordPrediction(context.Background(), "http", "ok", time.Second)
	m.RecordRateLimitDenied(context.Background(), "prediction")
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{}, noop.NewMeterProvider())
	require.NoError(t, err)
	m.RecordSubmission(context.Background(), "accepted")
	m.RecordPrediction(context.Background(), "stub", "ok", 10*time.Millisecond)
}

func TestHTTPMetricsCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(reg, Config{ServiceName: "burnout", Environment: "test"})
	require.NoError(t, err)

	router := gin.New()
	router.Use(GinMiddleware(m))
	router.GET("/api/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	}

	families, err := reg.Gather()
	require.NoError(t, err)

	var counter *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "burnout_http_requests_total" {
			counter = f
		}
	}
	require.NotNil(t, counter)
	require.Len(t, counter.GetMetric(), 1)
	assert.Equal(t, 3.0, counter.GetMetric()[0].GetCounter().GetValue())
}

func TestHTTPMetricsRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewHTTPMetrics(reg, Config{})
	require.NoError(t, err)
	_, err = NewHTTPMetrics(reg, Config{})
	assert.Error(t, err)
}
