package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	burnoutdomain "github.com/smallbiznis/burnout/internal/burnout/domain"
)

const defaultHighRiskThreshold = 0.7

// ListHighRisk lists each user's latest assessment at or above the threshold.
func (s *Server) ListHighRisk(c *gin.Context) {
	threshold, err := parseOptionalFloat(c.Query("threshold"))
	if err != nil {
		AbortWithError(c, newValidationError("threshold", "invalid_threshold", "threshold must be a number"))
		return
	}
	limit, err := parseOptionalInt(c.Query("limit"))
	if err != nil {
		AbortWithError(c, newValidationError("limit", "invalid_limit", "limit must be a whole number"))
		return
	}

	t := defaultHighRiskThreshold
	if threshold != nil {
		t = *threshold
	}
	n := 0
	if limit != nil {
		n = *limit
	}

	assessments, err := s.burnout.HighRisk(c.Request.Context(), t, n)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if assessments == nil {
		assessments = []burnoutdomain.Assessment{}
	}

	c.JSON(http.StatusOK, gin.H{
		"threshold": t,
		"data":      assessments,
	})
}
