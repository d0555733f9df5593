// Package checkin runs a daily submission end to end: store the record, then score the user's
// refreshed window.
package checkin

import (
	"context"

	"github.com/bwmarrin/snowflake"
	burnoutdomain "github.com/smallbiznis/burnout/internal/burnout/domain"
	healthdomain "github.com/smallbiznis/burnout/internal/healthdata/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("checkin",
	fx.Provide(New),
)

// Result reports the two outcomes of a submission separately. Record is set whenever the record
// was stored, even if scoring failed afterwards.
type Result struct {
	Record     *healthdomain.Record      `json:"record"`
	Assessment *burnoutdomain.Assessment `json:"assessment,omitempty"`
}

type Params struct {
	fx.In

	Log        *zap.Logger
	HealthData healthdomain.Service
	Burnout    burnoutdomain.Service
}

type Pipeline struct {
	log        *zap.Logger
	healthData healthdomain.Service
	burnout    burnoutdomain.Service
}

func New(p Params) *Pipeline {
	return &Pipeline{
		log:        p.Log.Named("checkin"),
		healthData: p.HealthData,
		burnout:    p.Burnout,
	}
}

// Submit stores the record and then assesses the user's window. Validation and duplicate errors
// are returned before anything is written. A failed assessment never removes the stored record:
// the returned Result still carries it alongside the error.
func (p *Pipeline) Submit(ctx context.Context, userID snowflake.ID, req healthdomain.SubmitRecordRequest) (Result, error) {
	record, err := p.healthData.Submit(ctx, userID, req)
	if err != nil {
		return Result{}, err
	}

	result := Result{Record: record}
	assessment, err := p.burnout.Assess(ctx, userID)
	if err != nil {
		p.log.Warn("record stored but assessment failed",
			zap.String("user_id", userID.String()),
			zap.String("record_id", record.ID.String()),
			zap.Error(err),
		)
		return result, err
	}
	result.Assessment = assessment
	return result, nil
}
