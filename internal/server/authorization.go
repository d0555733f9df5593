package server

import (
	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/burnout/internal/authorization"
)

func (s *Server) authorizeAction(object string, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := userIDFromContext(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if s.authzSvc == nil {
			AbortWithError(c, ErrForbidden)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), userID, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// RequireAdmin admits only users allowed to read every user's assessments.
func (s *Server) RequireAdmin() gin.HandlerFunc {
	return s.authorizeAction(authorization.ObjectAssessments, authorization.ActionReadAll)
}
