package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Snapshot is the rolling-window summary sent to the predictor. Field names are the predictor's
// request contract.
type Snapshot struct {
	AvgSleep        float64 `json:"avg_sleep"`
	AvgStress       float64 `json:"avg_stress"`
	AvgSteps        float64 `json:"avg_steps"`
	AvgWorkHours    float64 `json:"avg_work_hours"`
	AvgHRV          float64 `json:"avg_hrv"`
	AvgRHR          float64 `json:"avg_rhr"`
	AvgSleepQuality float64 `json:"avg_sleep_quality"`
}

// Prediction is the predictor's raw answer. Nil fields were absent from the response.
type Prediction struct {
	BurnoutPercentage *float64
	Recommendations   []string
}

type Source string

const (
	SourceHTTP Source = "http"
	SourceStub Source = "stub"
)

// Assessment is an append-only burnout risk result for one user.
type Assessment struct {
	ID              snowflake.ID                 `gorm:"primaryKey" json:"id"`
	UserID          snowflake.ID                 `gorm:"column:user_id;not null;index:idx_burnout_assessments_user_assessed,priority:1" json:"user_id"`
	AssessedAt      time.Time                    `gorm:"column:assessed_at;not null;index:idx_burnout_assessments_user_assessed,priority:2" json:"date"`
	BurnoutRisk     float64                      `gorm:"column:burnout_risk;not null" json:"burnoutRisk"`
	Recommendations datatypes.JSONSlice[string]  `gorm:"column:recommendations" json:"recommendations"`
	Snapshot        datatypes.JSONType[Snapshot] `gorm:"column:snapshot" json:"snapshot"`
	Source          Source                       `gorm:"column:source;type:varchar(16);not null" json:"source"`
	CreatedAt       time.Time                    `gorm:"column:created_at;not null" json:"created_at"`
}

func (Assessment) TableName() string { return "burnout_assessments" }
