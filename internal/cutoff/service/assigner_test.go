package service

import (
	"context"
	"errors"
	"testing"
	"time"

	cutoffdomain "github.com/smallbiznis/debitplan/internal/cutoff/domain"
	"github.com/smallbiznis/debitplan/pkg/caldate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cutoffRepoStub struct {
	configs map[string]*cutoffdomain.CutoffConfig
	err     error
}

func (s *cutoffRepoStub) GetCutoffConfig(_ context.Context, organisationID, id string) (*cutoffdomain.CutoffConfig, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.configs[organisationID+"/"+id], nil
}

func (s *cutoffRepoStub) Create(context.Context, *cutoffdomain.CutoffConfig) error { return nil }

func threeBatches() []cutoffdomain.CutoffWindow {
	return []cutoffdomain.CutoffWindow{
		{CutoffDay: 10, BatchNumber: 2},
		{CutoffDay: 1, BatchNumber: 1},
		{CutoffDay: 31, BatchNumber: 3},
	}
}

func TestAssign(t *testing.T) {
	tests := []struct {
		name    string
		windows []cutoffdomain.CutoffWindow
		date    time.Time
		want    cutoffdomain.Assignment
	}{
		{
			name:    "first window",
			windows: threeBatches(),
			date:    caldate.New(2026, time.January, 2),
			want:    cutoffdomain.Assignment{BatchNumber: 1, CutoffDay: 1},
		},
		{
			name:    "on cutoff day",
			windows: threeBatches(),
			date:    caldate.New(2026, time.January, 10),
			want:    cutoffdomain.Assignment{BatchNumber: 2, CutoffDay: 10},
		},
		{
			name:    "cutoff clamped to short month",
			windows: threeBatches(),
			date:    caldate.New(2026, time.February, 28),
			want:    cutoffdomain.Assignment{BatchNumber: 3, CutoffDay: 31},
		},
		{
			name:    "before day 31 in a long month",
			windows: threeBatches(),
			date:    caldate.New(2026, time.January, 30),
			want:    cutoffdomain.Assignment{BatchNumber: 2, CutoffDay: 10},
		},
		{
			name: "wraps to previous cycle",
			windows: []cutoffdomain.CutoffWindow{
				{CutoffDay: 5, BatchNumber: 1},
				{CutoffDay: 20, BatchNumber: 2},
			},
			date: caldate.New(2026, time.March, 3),
			want: cutoffdomain.Assignment{BatchNumber: 2, CutoffDay: 20, Wrapped: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Assign(tt.windows, tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssignDoesNotReorderInput(t *testing.T) {
	windows := threeBatches()
	_, err := Assign(windows, caldate.New(2026, time.January, 15))
	require.NoError(t, err)
	assert.Equal(t, threeBatches(), windows)
}

func TestAssignWithoutWindows(t *testing.T) {
	_, err := Assign(nil, caldate.New(2026, time.January, 15))
	assert.ErrorIs(t, err, cutoffdomain.ErrNoCutoffWindowConfigured)
}

func TestAssignBatch(t *testing.T) {
	repo := &cutoffRepoStub{configs: map[string]*cutoffdomain.CutoffConfig{
		"ORG1/CUT1":  {ID: "CUT1", OrganisationID: "ORG1", Windows: threeBatches()},
		"ORG1/EMPTY": {ID: "EMPTY", OrganisationID: "ORG1"},
	}}
	a := NewAssigner(AssignerParam{Repository: repo, Log: zap.NewNop()})
	ctx := context.Background()

	got, err := a.AssignBatch(ctx, "ORG1", "CUT1", caldate.New(2026, time.January, 12))
	require.NoError(t, err)
	assert.Equal(t, 2, got.BatchNumber)

	_, err = a.AssignBatch(ctx, "ORG1", "EMPTY", caldate.New(2026, time.January, 12))
	assert.ErrorIs(t, err, cutoffdomain.ErrNoCutoffWindowConfigured)

	_, err = a.AssignBatch(ctx, "ORG1", "MISSING", caldate.New(2026, time.January, 12))
	assert.ErrorIs(t, err, cutoffdomain.ErrNoCutoffWindowConfigured)

	_, err = a.AssignBatch(ctx, "ORG2", "CUT1", caldate.New(2026, time.January, 12))
	assert.ErrorIs(t, err, cutoffdomain.ErrNoCutoffWindowConfigured)

	_, err = a.AssignBatch(ctx, "ORG1", "", caldate.New(2026, time.January, 12))
	assert.ErrorIs(t, err, cutoffdomain.ErrNoCutoffWindowConfigured)
}

func TestAssignBatchRepositoryError(t *testing.T) {
	boom := errors.New("timeout")
	a := NewAssigner(AssignerParam{Repository: &cutoffRepoStub{err: boom}, Log: zap.NewNop()})
	_, err := a.AssignBatch(context.Background(), "ORG1", "CUT1", caldate.New(2026, time.January, 12))
	assert.ErrorIs(t, err, boom)
}
