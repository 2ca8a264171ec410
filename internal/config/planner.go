package config

import (
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// PlannerConfig tunes the debit date planner. It never changes planning results,
// only how much work a single call may do.
type PlannerConfig struct {
	BatchWorkers        int
	MaxBatchSize        int
	HolidayZoneCacheTTL time.Duration
}

func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		BatchWorkers:        8,
		MaxBatchSize:        500,
		HolidayZoneCacheTTL: 0,
	}
}

type PlannerConfigHolder struct {
	current atomic.Value // holds PlannerConfig
}

// NewStaticPlannerConfigHolder returns a holder that never reloads.
func NewStaticPlannerConfigHolder(cfg PlannerConfig) *PlannerConfigHolder {
	holder := &PlannerConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

// NewPlannerConfigHolder reads planner.yml and watches it for changes.
func NewPlannerConfigHolder(log *zap.Logger) (*PlannerConfigHolder, error) {
	return newPlannerConfigHolder(viper.New(), log, "/etc/debitplan", ".")
}

func newPlannerConfigHolder(v *viper.Viper, log *zap.Logger, paths ...string) (*PlannerConfigHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("config.planner")

	v.SetConfigName("planner")
	v.SetConfigType("yml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix("DEBITPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPlannerConfig()
	v.SetDefault("planner.batchWorkers", defaults.BatchWorkers)
	v.SetDefault("planner.maxBatchSize", defaults.MaxBatchSize)
	v.SetDefault("planner.holidayZoneCacheTTL", defaults.HolidayZoneCacheTTL)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileFound = false
	}

	cfg, err := unmarshalPlannerConfig(v)
	if err != nil {
		return nil, err
	}

	holder := NewStaticPlannerConfigHolder(cfg)
	if !fileFound {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := unmarshalPlannerConfig(v)
		if err != nil {
			log.Warn("planner config reload rejected", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("planner config reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *PlannerConfigHolder) Get() PlannerConfig {
	return h.current.Load().(PlannerConfig)
}

func unmarshalPlannerConfig(v *viper.Viper) (PlannerConfig, error) {
	// Read per key so env, file and defaults layer over each other.
	cfg := PlannerConfig{
		BatchWorkers:        v.GetInt("planner.batchWorkers"),
		MaxBatchSize:        v.GetInt("planner.maxBatchSize"),
		HolidayZoneCacheTTL: v.GetDuration("planner.holidayZoneCacheTTL"),
	}
	if err := validatePlannerConfig(cfg); err != nil {
		return PlannerConfig{}, err
	}
	return cfg, nil
}

func validatePlannerConfig(cfg PlannerConfig) error {
	if cfg.BatchWorkers <= 0 {
		return errors.New("planner.batchWorkers must be positive")
	}
	if cfg.MaxBatchSize <= 0 {
		return errors.New("planner.maxBatchSize must be positive")
	}
	if cfg.HolidayZoneCacheTTL < 0 {
		return errors.New("planner.holidayZoneCacheTTL cannot be negative")
	}
	return nil
}
