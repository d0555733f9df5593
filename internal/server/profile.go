package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/burnout/internal/auth/domain"
)

type UpdateProfileRequest struct {
	Name   *string        `json:"name"`
	Email  *string        `json:"email"`
	Age    numberOrString `json:"age"`
	Gender *string        `json:"gender"`
	Image  *string        `json:"image"`
}

func (s *Server) GetProfile(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	user, err := s.authsvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) UpdateProfile(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.authsvc.UpdateProfile(c.Request.Context(), userID, authdomain.UpdateProfileRequest{
		Name:   req.Name,
		Email:  req.Email,
		Age:    req.Age.Ptr(),
		Gender: req.Gender,
		Image:  req.Image,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
