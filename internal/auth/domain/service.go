package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
	GetProfile(ctx context.Context, userID snowflake.ID) (*User, error)
	UpdateProfile(ctx context.Context, userID snowflake.ID, req UpdateProfileRequest) (*User, error)
	ChangePassword(ctx context.Context, userID snowflake.ID, currentPassword, newPassword string) error
	UsersByID(ctx context.Context, ids []snowflake.ID) (map[snowflake.ID]User, error)
}

type SignupRequest struct {
	Name     string
	Email    string
	Password string
	Age      string
	Gender   string
}

// UpdateProfileRequest applies only the non-nil fields.
type UpdateProfileRequest struct {
	Name   *string
	Email  *string
	Age    *string
	Gender *string
	Image  *string
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	User      *User
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}
