package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLoadPredictorDefaults(t *testing.T) {
	t.Setenv("PREDICTOR_MODE", "")
	t.Setenv("PREDICTOR_TOKEN", "")
	t.Setenv("HUGGINGFACE_TOKEN", "hf-token")
	t.Setenv("PREDICTOR_TIMEOUT_SECONDS", "")

	cfg := Load()

	assert.Equal(t, PredictorModeHTTP, cfg.Predictor.Mode)
	assert.Equal(t, "hf-token", cfg.Predictor.Token)
	assert.Equal(t, 10*time.Second, cfg.Predictor.Timeout)
	assert.Equal(t, 7, cfg.Predictor.WindowDays)
}

func TestLoadStubModeAndAdmins(t *testing.T) {
	t.Setenv("PREDICTOR_MODE", "STUB")
	t.Setenv("BOOTSTRAP_ADMIN_EMAILS", " ops@example.com, ,lead@example.com")

	cfg := Load()

	assert.Equal(t, PredictorModeStub, cfg.Predictor.Mode)
	assert.True(t, cfg.IsBootstrapAdmin("OPS@example.com"))
	assert.True(t, cfg.IsBootstrapAdmin("lead@example.com"))
	assert.False(t, cfg.IsBootstrapAdmin("someone@example.com"))
}

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Config{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, time.UTC, Config{}.Location())
}

func TestInsightConfigDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	holder, err := NewInsightConfigHolder(zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultInsightConfig(), holder.Get())
}

func TestInsightConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("insights:\n  stress:\n    lowMax: 2\n    moderateMax: 5\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "insights.yml"), content, 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	holder, err := NewInsightConfigHolder(zaptest.NewLogger(t))
	require.NoError(t, err)

	cfg := holder.Get()
	assert.Equal(t, 2.0, cfg.Stress.LowMax)
	assert.Equal(t, 5.0, cfg.Stress.ModerateMax)
	assert.Equal(t, 7.0, cfg.Sleep.OptimalMin)
	assert.Equal(t, 9.0, cfg.Sleep.OptimalMax)
	assert.Equal(t, DefaultInsightConfig().Activity, cfg.Activity)
	assert.Equal(t, DefaultInsightConfig().Risk, cfg.Risk)
}

func TestDecodeInsightConfigKeepsUnsetKeys(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yml")
	require.NoError(t, v.ReadConfig(strings.NewReader("insights:\n  risk:\n    moderateBelow: 0.8\n")))

	cfg, err := decodeInsightConfig(v)
	require.NoError(t, err)

	want := DefaultInsightConfig()
	want.Risk.ModerateBelow = 0.8
	assert.Equal(t, want, cfg)
	assert.NoError(t, validateInsightConfig(cfg))
}

func TestInsightConfigRejectsInvertedThresholds(t *testing.T) {
	cfg := DefaultInsightConfig()
	cfg.Risk.LowBelow = 0.9
	assert.Error(t, validateInsightConfig(cfg))
}

func TestLoadTelemetry(t *testing.T) {
	t.Setenv("LOG_LEVEL", " DEBUG ")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "HTTP")

	tel := Load().Telemetry
	assert.Equal(t, "debug", tel.LogLevel)
	assert.Equal(t, "json", tel.LogFormat)
	assert.True(t, tel.OtelEnabled)
	assert.Equal(t, "collector:4318", tel.OtelEndpoint)
	assert.Equal(t, "http", tel.OtelProtocol)
	assert.Equal(t, 0.1, tel.SamplingRatio)
}
