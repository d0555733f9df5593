package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	authdomain "github.com/smallbiznis/burnout/internal/auth/domain"
	"github.com/smallbiznis/burnout/internal/auth/session"
	"github.com/smallbiznis/burnout/internal/authorization"
	burnoutdomain "github.com/smallbiznis/burnout/internal/burnout/domain"
	"github.com/smallbiznis/burnout/internal/checkin"
	"github.com/smallbiznis/burnout/internal/config"
	"github.com/smallbiznis/burnout/internal/dashboard"
	healthdomain "github.com/smallbiznis/burnout/internal/healthdata/domain"
	"github.com/smallbiznis/burnout/internal/observability"
	obsmiddleware "github.com/smallbiznis/burnout/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/burnout/internal/observability/metrics"
	obstracing "github.com/smallbiznis/burnout/internal/observability/tracing"
	"github.com/smallbiznis/burnout/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	addr := strings.TrimSpace(cfg.HTTPAddr)
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Params struct {
	fx.In

	Engine     *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	AuthSvc    authdomain.Service
	Sessions   *session.Manager
	HealthData healthdomain.Service
	Checkin    *checkin.Pipeline
	Burnout    burnoutdomain.Service
	Dashboard  *dashboard.Service
	Authz      authorization.Service
	Limiter    *ratelimit.PredictionLimiter `optional:"true"`
	Metrics    *obsmetrics.Metrics          `optional:"true"`
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	authsvc    authdomain.Service
	sessions   *session.Manager
	healthData healthdomain.Service
	checkin    *checkin.Pipeline
	burnout    burnoutdomain.Service
	dashboard  *dashboard.Service
	authzSvc   authorization.Service
	limiter    *ratelimit.PredictionLimiter
	metrics    *obsmetrics.Metrics
}

func NewServer(p Params) *Server {
	return &Server{
		engine:     p.Engine,
		cfg:        p.Cfg,
		log:        p.Log.Named("http.server"),
		authsvc:    p.AuthSvc,
		sessions:   p.Sessions,
		healthData: p.HealthData,
		checkin:    p.Checkin,
		burnout:    p.Burnout,
		dashboard:  p.Dashboard,
		authzSvc:   p.Authz,
		limiter:    p.Limiter,
		metrics:    p.Metrics,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterRoutes() {
	api := s.engine.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", s.Signup)
	authGroup.POST("/login", s.Login)
	authGroup.POST("/logout", s.AuthRequired(), s.Logout)
	authGroup.GET("/me", s.AuthRequired(), s.Me)

	protected := api.Group("", s.AuthRequired())
	protected.GET("/profile", s.GetProfile)
	protected.PUT("/profile", s.UpdateProfile)
	protected.PUT("/profile/password", s.ChangePassword)

	protected.GET("/health-data", s.ListHealthData)
	protected.GET("/health-data/today", s.TodayHealthData)
	protected.POST("/health-data", s.SubmitHealthData)

	protected.POST("/burnout-prediction", s.PredictionRateLimit(), s.CreateBurnoutPrediction)
	protected.GET("/burnout-prediction/latest", s.LatestBurnoutPrediction)
	protected.GET("/burnout-prediction", s.ListBurnoutPredictions)

	protected.GET("/dashboard", s.Dashboard)

	admin := api.Group("/admin", s.AuthRequired(), s.RequireAdmin())
	admin.GET("/high-risk", s.ListHighRisk)
}
