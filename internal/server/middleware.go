package server

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/burnout/internal/observability/context"
	"github.com/smallbiznis/burnout/internal/observability/logger"
	"go.uber.org/zap"
)

const (
	contextUserIDKey = "user_id"

	rateLimitReasonRate        = "rate"
	rateLimitReasonConcurrency = "concurrency"
)

func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserIDKey, session.UserID.String())
		c.Request = c.Request.WithContext(obscontext.WithUserID(c.Request.Context(), session.UserID.String()))
		c.Next()
	}
}

func userIDFromContext(c *gin.Context) (snowflake.ID, error) {
	raw := strings.TrimSpace(c.GetString(contextUserIDKey))
	if raw == "" {
		return 0, ErrUnauthorized
	}
	id, err := snowflake.ParseString(raw)
	if err != nil || id == 0 {
		return 0, ErrUnauthorized
	}
	return id, nil
}

// PredictionRateLimit throttles on-demand predictions per user and rejects a second prediction
// while one is still running. A missing limiter lets every request through.
func (s *Server) PredictionRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter == nil || !s.limiter.Enabled() {
			c.Next()
			return
		}

		userID, err := userIDFromContext(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := c.Request.Context()
		result, err := s.limiter.Allow(ctx, userID.String())
		if err != nil {
			logger.FromContext(ctx).Warn("prediction rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if result != nil && !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			s.denyPrediction(c, rateLimitReasonRate, retryAfter)
			return
		}

		token, ok, err := s.limiter.TryLock(ctx, userID.String())
		if err != nil {
			logger.FromContext(ctx).Warn("prediction lock failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !ok {
			s.denyPrediction(c, rateLimitReasonConcurrency, 1)
			return
		}
		defer func() {
			if err := s.limiter.Release(ctx, userID.String(), token); err != nil {
				logger.FromContext(ctx).Warn("prediction unlock failed", zap.Error(err))
			}
		}()

		c.Next()
	}
}

func (s *Server) denyPrediction(c *gin.Context, reason string, retryAfter int) {
	ctx := c.Request.Context()
	endpoint := c.FullPath()
	logger.FromContext(ctx).Warn("prediction rate limit exceeded",
		zap.String("reason", reason),
		zap.String("endpoint", endpoint),
	)
	s.metrics.RecordRateLimitDenied(ctx, endpoint)

	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.Header("X-Rate-Limited-Reason", reason)
	AbortWithError(c, ErrRateLimited)
}
