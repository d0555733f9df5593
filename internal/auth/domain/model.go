// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// User represents a registered account and its profile.
type User struct {
	ID                  snowflake.ID `gorm:"primaryKey" json:"id"`
	ExternalID          string       `gorm:"column:external_id;type:text;not null;uniqueIndex" json:"external_id"`
	Name                string       `gorm:"column:name;type:text;not null" json:"name"`
	Email               string       `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	PasswordHash        *string      `gorm:"column:password_hash;type:text" json:"-"`
	Age                 int          `gorm:"column:age;not null" json:"age"`
	Gender              Gender       `gorm:"column:gender;type:text;not null" json:"gender"`
	Image               *string      `gorm:"column:image;type:text" json:"image,omitempty"`
	LastPasswordChanged *time.Time   `gorm:"column:last_password_changed" json:"-"`
	CreatedAt           time.Time    `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt           time.Time    `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session represents a persisted login session.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"column:user_id;not null;index"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	UserAgent        string       `gorm:"column:user_agent;type:text"`
	IPAddress        string       `gorm:"column:ip_address;type:text"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null"`
	LastSeenAt       time.Time    `gorm:"column:last_seen_at;not null"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }
