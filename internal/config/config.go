package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName          string
	AppVersion       string
	Environment      string
	HTTPAddr         string
	Timezone         string
	AuthCookieSecure bool

	Telemetry TelemetryConfig

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	Predictor PredictorConfig
	RateLimit RateLimitConfig
	Bootstrap BootstrapConfig
}

// PredictorConfig configures the burnout prediction collaborator.
type PredictorConfig struct {
	Mode       string
	URL        string
	Token      string
	Timeout    time.Duration
	WindowDays int
}

// TelemetryConfig carries logging and OpenTelemetry settings.
type TelemetryConfig struct {
	LogLevel      string
	LogFormat     string
	OtelEnabled   bool
	OtelEndpoint  string
	OtelProtocol  string
	SamplingRatio float64
}

type RateLimitConfig struct {
	Enabled           bool
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	PredictionRate    float64
	PredictionBurst   int
	PredictionLockTTL time.Duration
}

type BootstrapConfig struct {
	AdminEmails []string
}

const (
	PredictorModeHTTP = "http"
	PredictorModeStub = "stub"
)

const defaultPredictorURL = "https://yusef-faik-burnout-prediction.hf.space/predict"

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	token := strings.TrimSpace(getenv("PREDICTOR_TOKEN", ""))
	if token == "" {
		token = strings.TrimSpace(getenv("HUGGINGFACE_TOKEN", ""))
	}

	cfg := Config{
		AppName:           getenv("APP_SERVICE", "burnout"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       environment,
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		Timezone:          getenv("APP_TIMEZONE", "UTC"),
		AuthCookieSecure:  authCookieSecure,
		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "burnout"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 1800),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 300),
		Predictor: PredictorConfig{
			Mode:       normalizePredictorMode(getenv("PREDICTOR_MODE", PredictorModeHTTP)),
			URL:        strings.TrimSpace(getenv("PREDICTOR_URL", defaultPredictorURL)),
			Token:      token,
			Timeout:    time.Duration(getenvInt("PREDICTOR_TIMEOUT_SECONDS", 10)) * time.Second,
			WindowDays: getenvInt("PREDICTOR_WINDOW_DAYS", 7),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getenvBool("RATE_LIMIT_ENABLED", false),
			RedisAddr:         strings.TrimSpace(getenv("REDIS_ADDR", "localhost:6379")),
			RedisPassword:     getenv("REDIS_PASSWORD", ""),
			RedisDB:           getenvInt("REDIS_DB", 0),
			PredictionRate:    getenvFloat("RATE_LIMIT_PREDICTION_RATE", 0.2),
			PredictionBurst:   getenvInt("RATE_LIMIT_PREDICTION_BURST", 3),
			PredictionLockTTL: time.Duration(getenvInt("RATE_LIMIT_PREDICTION_LOCK_SECONDS", 30)) * time.Second,
		},
		Telemetry: loadTelemetry(),
		Bootstrap: BootstrapConfig{
			AdminEmails: parseList(getenv("BOOTSTRAP_ADMIN_EMAILS", "")),
		},
	}

	return cfg
}

// Location resolves the configured time zone used for calendar-day boundaries.
func (c Config) Location() *time.Location {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsBootstrapAdmin reports whether the email should be granted the admin role on signup.
func (c Config) IsBootstrapAdmin(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, candidate := range c.Bootstrap.AdminEmails {
		if strings.ToLower(candidate) == email {
			return true
		}
	}
	return false
}

func loadTelemetry() TelemetryConfig {
	protocol := getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	if traces := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL")); traces != "" {
		protocol = traces
	}
	return TelemetryConfig{
		LogLevel:      strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL", "info"))),
		LogFormat:     strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT", "json"))),
		OtelEnabled:   getenvBool("OTEL_ENABLED", false),
		OtelEndpoint:  strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_ENDPOINT", getenv("OTLP_ENDPOINT", "localhost:4317"))),
		OtelProtocol:  strings.ToLower(strings.TrimSpace(protocol)),
		SamplingRatio: getenvFloat("OTEL_SAMPLING_RATIO", 0.1),
	}
}

func normalizePredictorMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case PredictorModeStub:
		return PredictorModeStub
	default:
		return PredictorModeHTTP
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
