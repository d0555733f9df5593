package dashboard

import (
	"fmt"
	"math"

	"github.com/smallbiznis/burnout/internal/config"
)

const (
	RiskUnknown  = "Unknown"
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"

	notAvailable = "N/A"
)

// Mapper turns averages into display strings. Thresholds are read on every call so a reloaded
// insights file applies immediately.
type Mapper struct {
	holder *config.InsightConfigHolder
}

func NewMapper(holder *config.InsightConfigHolder) *Mapper {
	return &Mapper{holder: holder}
}

func (m *Mapper) thresholds() config.InsightConfig {
	if m == nil {
		return config.DefaultInsightConfig()
	}
	return m.holder.Get()
}

func (m *Mapper) SleepInsight(avg *float64) string {
	if avg == nil {
		return "No sleep data available"
	}
	t := m.thresholds().Sleep
	switch {
	case *avg >= t.OptimalMin && *avg <= t.OptimalMax:
		return "Optimal Sleep Duration"
	case *avg < t.OptimalMin:
		return "Consider More Sleep"
	default:
		return "Excessive Sleep, Consider Adjusting"
	}
}

func (m *Mapper) StressInsight(avg *float64) string {
	if avg == nil {
		return "No stress data available"
	}
	t := m.thresholds().Stress
	switch {
	case *avg <= t.LowMax:
		return "Low Stress Levels"
	case *avg <= t.ModerateMax:
		return "Moderate Stress Levels"
	default:
		return "High Stress Levels, Consider Stress Management"
	}
}

func (m *Mapper) ActivityInsight(avg *float64) string {
	if avg == nil {
		return "No activity data available"
	}
	t := m.thresholds().Activity
	switch {
	case *avg <= t.LowMax:
		return "Consider Increasing Activity"
	case *avg <= t.ModerateMax:
		return "Moderate Activity Level"
	default:
		return "Good Activity Level"
	}
}

// RiskLevel classifies a risk on the 0-1 scale. The value is compared as stored.
func (m *Mapper) RiskLevel(risk *float64) string {
	if risk == nil {
		return RiskUnknown
	}
	t := m.thresholds().Risk
	switch {
	case *risk < t.LowBelow:
		return RiskLow
	case *risk < t.ModerateBelow:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// RiskPercentage is round(risk*100), or nil when there is no risk.
func RiskPercentage(risk *float64) *int {
	if risk == nil {
		return nil
	}
	pct := int(math.Round(*risk * 100))
	return &pct
}

// ScoreText renders an average as "x.x/10".
func ScoreText(avg *float64) string {
	if avg == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.1f/10", *avg)
}

// Mean averages values, returning nil for an empty input.
func Mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	return &avg
}
