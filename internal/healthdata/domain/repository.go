package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, record *Record) error
	ExistsForDay(ctx context.Context, userID snowflake.ID, day string) (bool, error)
	ListRecent(ctx context.Context, userID snowflake.ID, limit int) ([]Record, error)
	ListSince(ctx context.Context, userID snowflake.ID, since time.Time, limit int) ([]Record, error)
}
