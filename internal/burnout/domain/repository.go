package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Cursor struct {
	ID         snowflake.ID
	AssessedAt time.Time
}

type ListFilter struct {
	UserID snowflake.ID
	Cursor *Cursor
	Limit  int
}

type Repository interface {
	Insert(ctx context.Context, assessment *Assessment) error
	Latest(ctx context.Context, userID snowflake.ID) (*Assessment, error)
	List(ctx context.Context, filter ListFilter) ([]Assessment, error)
	LatestPerUserAtLeast(ctx context.Context, threshold float64, limit int) ([]Assessment, error)
}
