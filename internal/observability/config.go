package observability

import (
	"os"
	"strings"

	"github.com/smallbiznis/burnout/internal/config"
)

// Config is the observability view of the application configuration.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

func LoadConfig(cfg config.Config) Config {
	serviceName := strings.TrimSpace(cfg.AppName)
	if serviceName == "" {
		serviceName = "burnout"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if env := strings.TrimSpace(os.Getenv("DEPLOYMENT_ENV")); env != "" {
		environment = env
	}

	t := cfg.Telemetry
	logLevel := t.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := t.LogFormat
	if logFormat == "" {
		logFormat = "json"
	}

	return Config{
		ServiceName:          serviceName,
		Environment:          environment,
		Version:              strings.TrimSpace(cfg.AppVersion),
		LogLevel:             logLevel,
		LogFormat:            logFormat,
		OtelEnabled:          t.OtelEnabled,
		OtelExporterEndpoint: t.OtelEndpoint,
		OtelExporterProtocol: t.OtelProtocol,
		OtelSamplingRatio:    t.SamplingRatio,
	}
}

// Debug reports whether verbose diagnostics (stack traces on request errors) are wanted.
func (c Config) Debug() bool {
	if strings.EqualFold(strings.TrimSpace(c.LogLevel), "debug") {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}
