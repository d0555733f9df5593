package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// MaxWindowRecords bounds how many records feed one aggregation.
const MaxWindowRecords = 7

type Service interface {
	Submit(ctx context.Context, userID snowflake.ID, req SubmitRecordRequest) (*Record, error)
	CanSubmit(ctx context.Context, userID snowflake.ID) (bool, error)
	ListRecent(ctx context.Context, userID snowflake.ID) ([]Record, error)
	ListWindow(ctx context.Context, userID snowflake.ID, windowDays int) ([]Record, error)
}

// SubmitRecordRequest carries the raw submitted values. Numeric fields arrive as text so that
// non-numeric input is reported as a validation failure instead of being coerced.
type SubmitRecordRequest struct {
	HeartRate     *string
	SleepDuration *string
	SleepQuality  *string
	ActivityLevel *string
	StressLevel   *string
}
