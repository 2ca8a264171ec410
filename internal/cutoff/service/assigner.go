package service

import (
	"context"
	"sort"
	"time"

	cutoffdomain "github.com/smallbiznis/debitplan/internal/cutoff/domain"
	"github.com/smallbiznis/debitplan/pkg/caldate"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type AssignerParam struct {
	fx.In

	Repository cutoffdomain.Repository
	Log        *zap.Logger
}

type assigner struct {
	repo cutoffdomain.Repository
	log  *zap.Logger
}

func NewAssigner(p AssignerParam) cutoffdomain.Assigner {
	return &assigner{
		repo: p.Repository,
		log:  p.Log.Named("cutoff.assigner"),
	}
}

// AssignBatch loads the cutoff config and picks the batch absorbing plannedDate.
// An unknown config behaves like a config without windows.
func (a *assigner) AssignBatch(ctx context.Context, organisationID, cutoffConfigID string, plannedDate time.Time) (cutoffdomain.Assignment, error) {
	if cutoffConfigID == "" {
		return cutoffdomain.Assignment{}, cutoffdomain.ErrNoCutoffWindowConfigured
	}

	cfg, err := a.repo.GetCutoffConfig(ctx, organisationID, cutoffConfigID)
	if err != nil {
		return cutoffdomain.Assignment{}, err
	}
	if cfg == nil {
		a.log.Debug("cutoff config not found",
			zap.String("organisation_id", organisationID),
			zap.String("cutoff_config_id", cutoffConfigID),
		)
		return cutoffdomain.Assignment{}, cutoffdomain.ErrNoCutoffWindowConfigured
	}

	return Assign(cfg.Windows, plannedDate)
}

// Assign evaluates windows from the latest cutoff backwards and returns the
// first whose cutoff day, clamped to the month of date, is not after date.
// When every cutoff lies after date the date belongs to the last window of the
// previous cycle.
func Assign(windows []cutoffdomain.CutoffWindow, date time.Time) (cutoffdomain.Assignment, error) {
	if len(windows) == 0 {
		return cutoffdomain.Assignment{}, cutoffdomain.ErrNoCutoffWindowConfigured
	}

	date = caldate.Normalize(date)
	ordered := make([]cutoffdomain.CutoffWindow, len(windows))
	copy(ordered, windows)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CutoffDay != ordered[j].CutoffDay {
			return ordered[i].CutoffDay > ordered[j].CutoffDay
		}
		return ordered[i].BatchNumber > ordered[j].BatchNumber
	})

	day := date.Day()
	for _, w := range ordered {
		if caldate.ClampDay(date.Year(), date.Month(), w.CutoffDay).Day() <= day {
			return cutoffdomain.Assignment{BatchNumber: w.BatchNumber, CutoffDay: w.CutoffDay}, nil
		}
	}

	last := ordered[0]
	return cutoffdomain.Assignment{BatchNumber: last.BatchNumber, CutoffDay: last.CutoffDay, Wrapped: true}, nil
}
