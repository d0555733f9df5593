package predictor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smallbiznis/burnout/internal/burnout/domain"
	"github.com/smallbiznis/burnout/internal/config"
	"github.com/smallbiznis/burnout/pkg/telemetry/correlation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var sampleSnapshot = domain.Snapshot{
	AvgSleep:        6.5,
	AvgStress:       7,
	AvgSteps:        8000,
	AvgWorkHours:    8,
	AvgHRV:          60,
	AvgRHR:          74,
	AvgSleepQuality: 50,
}

func TestHTTPPredictorSendsContract(t *testing.T) {
	var (
		gotAuth string
		gotCID  string
		gotBody map[string]float64
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		gotCID = r.Header.Get(correlation.Header)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"burnout_percentage": 42.5, "recommendations": ["Rest", "Hydrate"]}`))
	}))
	defer srv.Close()

	p := NewHTTPPredictor(zaptest.NewLogger(t), srv.URL, "secret", time.Second)
	ctx := correlation.ContextWithCorrelationID(context.Background(), "cid-1")
	pred, err := p.Predict(ctx, sampleSnapshot)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "cid-1", gotCID)
	assert.Equal(t, map[string]float64{
		"avg_sleep":         6.5,
		"avg_stress":        7,
		"avg_steps":         8000,
		"avg_work_hours":    8,
		"avg_hrv":           60,
		"avg_rhr":           74,
		"avg_sleep_quality": 50,
	}, gotBody)

	require.NotNil(t, pred.BurnoutPercentage)
	assert.Equal(t, 42.5, *pred.BurnoutPercentage)
	assert.Equal(t, []string{"Rest", "Hydrate"}, pred.Recommendations)
	assert.Equal(t, domain.SourceHTTP, p.Source())
}

func TestHTTPPredictorGeneratesCorrelationID(t *testing.T) {
	var gotCID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCID = r.Header.Get(correlation.Header)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	pred, err := NewHTTPPredictor(zaptest.NewLogger(t), srv.URL, "", time.Second).Predict(context.Background(), sampleSnapshot)
	require.NoError(t, err)
	assert.NotEmpty(t, gotCID)
	assert.Nil(t, pred.BurnoutPercentage)
	assert.Nil(t, pred.Recommendations)
}

func TestHTTPPredictorFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"unauthorized": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		},
		"bad body": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		},
		"timeout": func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
			_, _ = w.Write([]byte(`{}`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			p := NewHTTPPredictor(zaptest.NewLogger(t), srv.URL, "secret", 100*time.Millisecond)
			_, err := p.Predict(context.Background(), sampleSnapshot)
			assert.ErrorIs(t, err, domain.ErrExternalService)
		})
	}
}

func TestHTTPPredictorUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPPredictor(zaptest.NewLogger(t), url, "", time.Second).Predict(context.Background(), sampleSnapshot)
	assert.ErrorIs(t, err, domain.ErrExternalService)
}

func TestStubPredictor(t *testing.T) {
	p := StubPredictor{}
	pred, err := p.Predict(context.Background(), sampleSnapshot)
	require.NoError(t, err)
	assert.Equal(t, 11.0, *pred.BurnoutPercentage)
	assert.Equal(t, []string{"Take a break", "Go for a walk", "Talk to a friend", "Sleep well"}, pred.Recommendations)

	pred.Recommendations[0] = "changed"
	again, _ := p.Predict(context.Background(), sampleSnapshot)
	assert.Equal(t, "Take a break", again.Recommendations[0])
}

func TestProvideSelectsByMode(t *testing.T) {
	log := zaptest.NewLogger(t)

	p, err := Provide(config.Config{Predictor: config.PredictorConfig{Mode: "stub"}}, log)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceStub, p.Source())

	p, err = Provide(config.Config{Predictor: config.PredictorConfig{URL: "http://predictor.local"}}, log)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceHTTP, p.Source())

	_, err = Provide(config.Config{Predictor: config.PredictorConfig{Mode: "http"}}, log)
	assert.Error(t, err)

	_, err = Provide(config.Config{Predictor: config.PredictorConfig{Mode: "magic"}}, log)
	assert.Error(t, err)
}
