package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/burnout/pkg/db/pagination"
)

type Service interface {
	// Derive scores a snapshot without persisting anything.
	Derive(ctx context.Context, snapshot Snapshot) (*Assessment, error)
	// Assess aggregates the user's window, derives a risk and stores it.
	Assess(ctx context.Context, userID snowflake.ID) (*Assessment, error)
	Latest(ctx context.Context, userID snowflake.ID) (*Assessment, error)
	History(ctx context.Context, userID snowflake.ID, page pagination.Pagination) (HistoryPage, error)
	HighRisk(ctx context.Context, threshold float64, limit int) ([]Assessment, error)
}

type HistoryPage struct {
	Assessments []Assessment        `json:"assessments"`
	PageInfo    pagination.PageInfo `json:"page_info"`
}
