package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	burnoutdomain "github.com/smallbiznis/burnout/internal/burnout/domain"
	"github.com/smallbiznis/burnout/pkg/db/pagination"
)

// CreateBurnoutPrediction assesses the caller's current window on demand and stores the result.
func (s *Server) CreateBurnoutPrediction(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	assessment, err := s.burnout.Assess(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Burnout prediction generated",
		"data":    assessment,
	})
}

func (s *Server) LatestBurnoutPrediction(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	assessment, err := s.burnout.Latest(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if assessment == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": assessment})
}

func (s *Server) ListBurnoutPredictions(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, newValidationError("page_size", "invalid_page_size", "page_size must be a whole number"))
		return
	}

	result, err := s.burnout.History(c.Request.Context(), userID, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if result.Assessments == nil {
		result.Assessments = []burnoutdomain.Assessment{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      result.Assessments,
		"page_info": result.PageInfo,
	})
}
