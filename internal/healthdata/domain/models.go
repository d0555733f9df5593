package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

type SleepQuality string

const (
	SleepQualityPoor      SleepQuality = "poor"
	SleepQualityFair      SleepQuality = "fair"
	SleepQualityGood      SleepQuality = "good"
	SleepQualityExcellent SleepQuality = "excellent"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityVigorous  ActivityLevel = "vigorous"
)

// Record is one daily check-in. Records are immutable once stored.
//
// Numeric fields are nullable: rows written before validation was enforced
// may lack them, and aggregation treats a missing value as zero.
type Record struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	UserID        snowflake.ID  `gorm:"column:user_id;not null;uniqueIndex:uidx_health_records_user_day,priority:1" json:"user_id"`
	Day           string        `gorm:"column:day;type:varchar(10);not null;uniqueIndex:uidx_health_records_user_day,priority:2" json:"day"`
	RecordedAt    time.Time     `gorm:"column:recorded_at;not null;index" json:"date"`
	HeartRate     *int          `gorm:"column:heart_rate" json:"heartRate"`
	SleepDuration *float64      `gorm:"column:sleep_duration" json:"sleepDuration"`
	SleepQuality  SleepQuality  `gorm:"column:sleep_quality;type:varchar(16)" json:"sleepQuality"`
	ActivityLevel ActivityLevel `gorm:"column:activity_level;type:varchar(16)" json:"activityLevel"`
	StressLevel   *int          `gorm:"column:stress_level" json:"stressLevel"`
	CreatedAt     time.Time     `gorm:"column:created_at;not null" json:"created_at"`
}

func (Record) TableName() string { return "health_records" }

// SleepQualityScore maps a sleep quality rating onto a 0-100 score. Unrecognised values score 70.
func SleepQualityScore(q SleepQuality) float64 {
	switch SleepQuality(strings.ToLower(strings.TrimSpace(string(q)))) {
	case SleepQualityPoor:
		return 25
	case SleepQualityFair:
		return 50
	case SleepQualityGood:
		return 75
	case SleepQualityExcellent:
		return 100
	default:
		return 70
	}
}

// ActivityScore maps an activity level onto 1-4. Unrecognised values score 0.
func ActivityScore(a ActivityLevel) float64 {
	switch ActivityLevel(strings.ToLower(strings.TrimSpace(string(a)))) {
	case ActivitySedentary:
		return 1
	case ActivityLight:
		return 2
	case ActivityModerate:
		return 3
	case ActivityVigorous:
		return 4
	default:
		return 0
	}
}
