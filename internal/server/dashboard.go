package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) Dashboard(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	view, err := s.dashboard.Dashboard(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
