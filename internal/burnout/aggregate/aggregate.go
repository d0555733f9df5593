// Package aggregate reduces a window of daily check-ins into the snapshot the predictor scores.
package aggregate

import (
	burnoutdomain "github.com/smallbiznis/burnout/internal/burnout/domain"
	healthdomain "github.com/smallbiznis/burnout/internal/healthdata/domain"
)

// Fixed inputs the check-in form does not collect.
const (
	DefaultSteps     = 8000
	DefaultWorkHours = 8
	DefaultHRV       = 60
)

// DefaultSnapshot is used when the window holds no records.
func DefaultSnapshot() burnoutdomain.Snapshot {
	return burnoutdomain.Snapshot{
		AvgSleep:        7,
		AvgStress:       5,
		AvgSteps:        DefaultSteps,
		AvgWorkHours:    DefaultWorkHours,
		AvgHRV:          DefaultHRV,
		AvgRHR:          70,
		AvgSleepQuality: 70,
	}
}

// Aggregate averages records field by field. A record missing a numeric field still counts in the
// denominator and contributes zero. The result does not depend on record order.
func Aggregate(records []healthdomain.Record) burnoutdomain.Snapshot {
	if len(records) == 0 {
		return DefaultSnapshot()
	}

	var sleep, stress, rhr, quality float64
	for _, r := range records {
		if r.SleepDuration != nil {
			sleep += *r.SleepDuration
		}
		if r.StressLevel != nil {
			stress += float64(*r.StressLevel)
		}
		if r.HeartRate != nil {
			rhr += float64(*r.HeartRate)
		}
		quality += healthdomain.SleepQualityScore(r.SleepQuality)
	}

	n := float64(len(records))
	return burnoutdomain.Snapshot{
		AvgSleep:        sleep / n,
		AvgStress:       stress / n,
		AvgSteps:        DefaultSteps,
		AvgWorkHours:    DefaultWorkHours,
		AvgHRV:          DefaultHRV,
		AvgRHR:          rhr / n,
		AvgSleepQuality: quality / n,
	}
}
