package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	debitdomain "github.com/smallbiznis/debitplan/internal/debitconfig/domain"
	"github.com/smallbiznis/debitplan/pkg/caldate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type configRepoStub struct {
	rows  map[string][]debitdomain.DebitConfig
	err   error
	calls []string
}

func (s *configRepoStub) ListByOwner(_ context.Context, organisationID string, owner debitdomain.Owner) ([]debitdomain.DebitConfig, error) {
	s.calls = append(s.calls, owner.String())
	if s.err != nil {
		return nil, s.err
	}
	return s.rows[organisationID+"/"+owner.String()], nil
}

func (s *configRepoStub) Create(context.Context, *debitdomain.DebitConfig) error { return nil }

func (s *configRepoStub) add(cfg debitdomain.DebitConfig) {
	owner, err := cfg.Owner()
	if err != nil {
		panic(err)
	}
	key := cfg.OrganisationID + "/" + owner.String()
	if s.rows == nil {
		s.rows = map[string][]debitdomain.DebitConfig{}
	}
	s.rows[key] = append(s.rows[key], cfg)
}

func record(id string, level debitdomain.Level, owner string, from time.Time, to *time.Time) debitdomain.DebitConfig {
	return debitdomain.DebitConfig{
		ID:             id,
		OrganisationID: "ORG1",
		Level:          level,
		OwnerID:        owner,
		Mode:           debitdomain.ModeFixedDay,
		FixedDay:       5,
		ShiftStrategy:  debitdomain.ShiftNextBusinessDay,
		HolidayZoneID:  "FR",
		DefaultBatch:   1,
		EffectiveFrom:  from,
		EffectiveTo:    to,
	}
}

func datePtr(t time.Time) *time.Time { return &t }

var (
	jan2025 = caldate.New(2025, time.January, 1)
	asOf    = caldate.New(2026, time.March, 1)
	scope   = debitdomain.Scope{ContratID: "CTR1", ClientID: "CLI1", SocieteID: "SOC1"}
)

func newTestResolver(repo debitdomain.Repository) debitdomain.Resolver {
	return NewResolver(ResolverParam{Repository: repo, Log: zap.NewNop()})
}

func TestResolvePrecedencePermutations(t *testing.T) {
	lower := []debitdomain.Level{debitdomain.LevelClient, debitdomain.LevelCompany, debitdomain.LevelOrganisation}
	owners := map[debitdomain.Level]string{
		debitdomain.LevelClient:       "CLI1",
		debitdomain.LevelCompany:      "SOC1",
		debitdomain.LevelOrganisation: "",
	}

	for mask := 0; mask < 1<<len(lower); mask++ {
		t.Run(fmt.Sprintf("lower_mask_%03b", mask), func(t *testing.T) {
			repo := &configRepoStub{}
			repo.add(record("contract", debitdomain.LevelContract, "CTR1", jan2025, nil))
			for i, level := range lower {
				if mask&(1<<i) != 0 {
					repo.add(record(string(level), level, owners[level], jan2025, nil))
				}
			}

			res, err := newTestResolver(repo).Resolve(context.Background(), "ORG1", scope, asOf)
			require.NoError(t, err)
			assert.Equal(t, debitdomain.LevelContract, res.AppliedLevel)
			assert.Equal(t, "contract", res.Config.ID)
			require.Len(t, res.Inspections, 1)
			assert.Equal(t, debitdomain.OutcomeAccepted, res.Inspections[0].Outcome)
		})
	}
}

func TestResolveExpiredContractFallsThrough(t *testing.T) {
	repo := &configRepoStub{}
	repo.add(record("expired", debitdomain.LevelContract, "CTR1", jan2025, datePtr(caldate.New(2026, time.January, 1))))
	repo.add(record("client", debitdomain.LevelClient, "CLI1", jan2025, nil))
	repo.add(record("org", debitdomain.LevelOrganisation, "", jan2025, nil))

	res, err := newTestResolver(repo).Resolve(context.Background(), "ORG1", scope, asOf)
	require.NoError(t, err)
	assert.Equal(t, debitdomain.LevelClient, res.AppliedLevel)
	assert.Equal(t, "client", res.Config.ID)

	require.Len(t, res.Inspections, 2)
	assert.Equal(t, debitdomain.LevelInspection{
		Level:   debitdomain.LevelContract,
		OwnerID: "CTR1",
		Outcome: debitdomain.OutcomeRejected,
		Reason:  debitdomain.ReasonOutsideEffectiveWindow,
	}, res.Inspections[0])
}

func TestResolveEffectiveToIsExclusive(t *testing.T) {
	repo := &configRepoStub{}
	repo.add(record("ending", debitdomain.LevelContract, "CTR1", jan2025, datePtr(asOf)))
	repo.add(record("org", debitdomain.LevelOrganisation, "", jan2025, nil))

	res, err := newTestResolver(repo).Resolve(context.Background(), "ORG1", scope, asOf)
	require.NoError(t, err)
	assert.Equal(t, "org", res.Config.ID)

	res, err = newTestResolver(repo).Resolve(context.Background(), "ORG1", scope, caldate.AddDays(asOf, -1))
	require.NoError(t, err)
	assert.Equal(t, "ending", res.Config.ID)
}

func TestResolveSkipsLevelsWithoutOwner(t *testing.T) {
	repo := &configRepoStub{}
	repo.add(record("company", debitdomain.LevelCompany, "SOC1", jan2025, nil))
	repo.add(record("org", debitdomain.LevelOrganisation, "", jan2025, nil))

	res, err := newTestResolver(repo).Resolve(context.Background(), "ORG1", debitdomain.Scope{SocieteID: "SOC1"}, asOf)
	require.NoError(t, err)
	assert.Equal(t, debitdomain.LevelCompany, res.AppliedLevel)
	assert.Equal(t, []string{"COMPANY:SOC1"}, repo.calls)

	require.Len(t, res.Inspections, 3)
	assert.Equal(t, debitdomain.ReasonNoOwner, res.Inspections[0].Reason)
	assert.Equal(t, debitdomain.ReasonNoOwner, res.Inspections[1].Reason)
	assert.Equal(t, debitdomain.OutcomeAccepted, res.Inspections[2].Outcome)
}

func TestResolveWithoutOrganisationDefault(t *testing.T) {
	repo := &configRepoStub{}
	repo.add(record("expired-org", debitdomain.LevelOrganisation, "", jan2025, datePtr(caldate.New(2025, time.June, 1))))

	res, err := newTestResolver(repo).Resolve(context.Background(), "ORG1", scope, asOf)
	assert.ErrorIs(t, err, debitdomain.ErrInvalidState)
	require.NotNil(t, res)
	require.Len(t, res.Inspections, 4)
	assert.Equal(t, debitdomain.ReasonNotConfigured, res.Inspections[0].Reason)
	assert.Equal(t, debitdomain.ReasonOutsideEffectiveWindow, res.Inspections[3].Reason)
}

func TestResolveOverlapPicksLatestFromAndWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := &configRepoStub{}
	repo.add(record("old", debitdomain.LevelOrganisation, "", jan2025, nil))
	repo.add(record("new", debitdomain.LevelOrganisation, "", caldate.New(2025, time.June, 1), nil))

	r := NewResolver(ResolverParam{Repository: repo, Log: zap.New(core)})
	res, err := r.Resolve(context.Background(), "ORG1", debitdomain.Scope{}, asOf)
	require.NoError(t, err)
	assert.Equal(t, "new", res.Config.ID)

	last := res.Inspections[len(res.Inspections)-1]
	assert.Equal(t, debitdomain.ReasonOverlappingRecords, last.Reason)
	assert.Equal(t, []string{"old"}, last.Ignored)

	entries := logs.FilterMessage("overlapping debit configurations").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].ContextMap()["chosen_config_id"])
}

func TestResolveOverlapWithEqualStartIsOrderIndependent(t *testing.T) {
	from := caldate.New(2025, time.June, 1)
	orders := [][]string{{"100", "200"}, {"200", "100"}}

	for _, ids := range orders {
		repo := &configRepoStub{}
		for _, id := range ids {
			repo.add(record(id, debitdomain.LevelOrganisation, "", from, nil))
		}

		res, err := newTestResolver(repo).Resolve(context.Background(), "ORG1", debitdomain.Scope{}, asOf)
		require.NoError(t, err)
		assert.Equal(t, "200", res.Config.ID)
		assert.Equal(t, []string{"100"}, res.Inspections[len(res.Inspections)-1].Ignored)
	}
}

func TestResolveRepositoryError(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := newTestResolver(&configRepoStub{err: boom}).Resolve(context.Background(), "ORG1", scope, asOf)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, debitdomain.ErrInvalidState)
}

func TestResolveRequiresOrganisation(t *testing.T) {
	_, err := newTestResolver(&configRepoStub{}).Resolve(context.Background(), "", scope, asOf)
	assert.ErrorIs(t, err, debitdomain.ErrInvalidOrganisation)
}
