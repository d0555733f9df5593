package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/burnout/internal/auth/domain"
	"github.com/smallbiznis/burnout/internal/authorization"
	"github.com/smallbiznis/burnout/internal/observability/logger"
	"go.uber.org/zap"
)

type SignupRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Age      numberOrString `json:"age"`
	Gender   string         `json:"gender"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *Server) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	user, err := s.authsvc.Signup(ctx, authdomain.SignupRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age.String(),
		Gender:   req.Gender,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.cfg.IsBootstrapAdmin(user.Email) && s.authzSvc != nil {
		if err := s.authzSvc.GrantRole(ctx, user.ID, authorization.RoleAdmin); err != nil {
			logger.FromContext(ctx).Error("grant bootstrap admin role failed", zap.Error(err))
			AbortWithError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)
	c.JSON(http.StatusOK, gin.H{
		"user":       result.User,
		"expires_at": result.ExpiresAt,
	})
}

func (s *Server) ChangePassword(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if strings.TrimSpace(req.CurrentPassword) == "" {
		AbortWithError(c, newValidationError("current_password", "required", "current password is required"))
		return
	}
	if req.CurrentPassword == req.NewPassword {
		AbortWithError(c, newValidationError("new_password", "must_differ", "new password must be different"))
		return
	}

	if err := s.authsvc.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) Logout(c *gin.Context) {
	token, ok := s.sessions.ReadToken(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.authsvc.Logout(c.Request.Context(), token); err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Clear(c)
	c.Status(http.StatusNoContent)
}

func (s *Server) Me(c *gin.Context) {
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

	isAdmin := false
	if s.authzSvc != nil {
		isAdmin, err = s.authzSvc.HasRole(c.Request.Context(), userID, authorization.RoleAdmin)
		if err != nil {
			AbortWithError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"is_admin": isAdmin,
	})
}
