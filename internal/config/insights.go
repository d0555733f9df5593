package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// InsightConfig holds the thresholds used to turn averages into dashboard insights.
type InsightConfig struct {
	Sleep    SleepThresholds    `mapstructure:"sleep"`
	Stress   StressThresholds   `mapstructure:"stress"`
	Activity ActivityThresholds `mapstructure:"activity"`
	Risk     RiskThresholds     `mapstructure:"risk"`
}

type SleepThresholds struct {
	OptimalMin float64 `mapstructure:"optimalMin"`
	OptimalMax float64 `mapstructure:"optimalMax"`
}

type StressThresholds struct {
	LowMax      float64 `mapstructure:"lowMax"`
	ModerateMax float64 `mapstructure:"moderateMax"`
}

type ActivityThresholds struct {
	LowMax      float64 `mapstructure:"lowMax"`
	ModerateMax float64 `mapstructure:"moderateMax"`
}

// RiskThresholds are exclusive upper bounds on the 0-1 risk scale.
type RiskThresholds struct {
	LowBelow      float64 `mapstructure:"lowBelow"`
	ModerateBelow float64 `mapstructure:"moderateBelow"`
}

func DefaultInsightConfig() InsightConfig {
	return InsightConfig{
		Sleep:    SleepThresholds{OptimalMin: 7, OptimalMax: 9},
		Stress:   StressThresholds{LowMax: 3, ModerateMax: 6},
		Activity: ActivityThresholds{LowMax: 1.5, ModerateMax: 2.5},
		Risk:     RiskThresholds{LowBelow: 0.3, ModerateBelow: 0.7},
	}
}

type InsightConfigHolder struct {
	current atomic.Value // holds InsightConfig
}

// NewStaticInsightConfigHolder returns a holder that never reloads.
func NewStaticInsightConfigHolder(cfg InsightConfig) *InsightConfigHolder {
	holder := &InsightConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewInsightConfigHolder(log *zap.Logger) (*InsightConfigHolder, error) {
	log = log.Named("config.insights")
	v := viper.New()

	v.SetConfigName("insights")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/burnout")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BURNOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setInsightDefaults(v, DefaultInsightConfig())

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileFound = false
	}

	cfg, err := decodeInsightConfig(v)
	if err != nil {
		return nil, err
	}
	if err := validateInsightConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticInsightConfigHolder(cfg)
	if !fileFound {
		log.Info("insight config file not found, using defaults")
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeInsightConfig(v)
		if err != nil {
			log.Warn("insight config reload failed", zap.Error(err))
			return
		}
		if err := validateInsightConfig(updated); err != nil {
			log.Warn("invalid insight config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("insight config reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return holder, nil
}

func (h *InsightConfigHolder) Get() InsightConfig {
	if h == nil {
		return DefaultInsightConfig()
	}
	return h.current.Load().(InsightConfig)
}

// decodeInsightConfig starts from the defaults because viper does not merge nested defaults into
// a section the file only partially sets.
func decodeInsightConfig(v *viper.Viper) (InsightConfig, error) {
	cfg := DefaultInsightConfig()
	if err := v.UnmarshalKey("insights", &cfg); err != nil {
		return InsightConfig{}, err
	}
	return cfg, nil
}

func setInsightDefaults(v *viper.Viper, d InsightConfig) {
	v.SetDefault("insights.sleep.optimalMin", d.Sleep.OptimalMin)
	v.SetDefault("insights.sleep.optimalMax", d.Sleep.OptimalMax)
	v.SetDefault("insights.stress.lowMax", d.Stress.LowMax)
	v.SetDefault("insights.stress.moderateMax", d.Stress.ModerateMax)
	v.SetDefault("insights.activity.lowMax", d.Activity.LowMax)
	v.SetDefault("insights.activity.moderateMax", d.Activity.ModerateMax)
	v.SetDefault("insights.risk.lowBelow", d.Risk.LowBelow)
	v.SetDefault("insights.risk.moderateBelow", d.Risk.ModerateBelow)
}

func validateInsightConfig(cfg InsightConfig) error {
	if cfg.Sleep.OptimalMin > cfg.Sleep.OptimalMax {
		return errors.New("insights.sleep.optimalMin must not exceed optimalMax")
	}
	if cfg.Stress.LowMax > cfg.Stress.ModerateMax {
		return errors.New("insights.stress.lowMax must not exceed moderateMax")
	}
	if cfg.Activity.LowMax > cfg.Activity.ModerateMax {
		return errors.New("insights.activity.lowMax must not exceed moderateMax")
	}
	if cfg.Risk.LowBelow > cfg.Risk.ModerateBelow {
		return errors.New("insights.risk.lowBelow must not exceed moderateBelow")
	}
	return nil
}
