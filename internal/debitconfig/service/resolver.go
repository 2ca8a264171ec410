package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	debitdomain "github.com/smallbiznis/debitplan/internal/debitconfig/domain"
	"github.com/smallbiznis/debitplan/internal/observability/logger"
	"github.com/smallbiznis/debitplan/pkg/caldate"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ResolverParam struct {
	fx.In

	Repository debitdomain.Repository
	Log        *zap.Logger
}

type resolver struct {
	repo debitdomain.Repository
	log  *zap.Logger
}

func NewResolver(p ResolverParam) debitdomain.Resolver {
	return &resolver{
		repo: p.Repository,
		log:  p.Log.Named("debitconfig.resolver"),
	}
}

// lookup yields the owner to inspect at a level, or false when the scope
// names no owner there.
type lookup struct {
	level debitdomain.Level
	owner func(scope debitdomain.Scope) (debitdomain.Owner, bool)
}

func byID(build func(string) debitdomain.Owner, id func(debitdomain.Scope) string) func(debitdomain.Scope) (debitdomain.Owner, bool) {
	return func(scope debitdomain.Scope) (debitdomain.Owner, bool) {
		owner := build(id(scope))
		return owner, owner.ID() != ""
	}
}

var strategies = []lookup{
	{debitdomain.LevelContract, byID(debitdomain.ContractOwner, func(s debitdomain.Scope) string { return s.ContratID })},
	{debitdomain.LevelClient, byID(debitdomain.ClientOwner, func(s debitdomain.Scope) string { return s.ClientID })},
	{debitdomain.LevelCompany, byID(debitdomain.CompanyOwner, func(s debitdomain.Scope) string { return s.SocieteID })},
	{debitdomain.LevelOrganisation, func(debitdomain.Scope) (debitdomain.Owner, bool) {
		return debitdomain.OrganisationOwner(), true
	}},
}

func (r *resolver) Resolve(ctx context.Context, organisationID string, scope debitdomain.Scope, asOf time.Time) (*debitdomain.Resolution, error) {
	if organisationID == "" {
		return nil, debitdomain.ErrInvalidOrganisation
	}
	asOf = caldate.Normalize(asOf)
	log := logger.WithContext(ctx, r.log)

	inspections := make([]debitdomain.LevelInspection, 0, len(strategies))
	for _, s := range strategies {
		owner, ok := s.owner(scope)
		if !ok {
			inspections = append(inspections, debitdomain.LevelInspection{
				Level:   s.level,
				Outcome: debitdomain.OutcomeSkipped,
				Reason:  debitdomain.ReasonNoOwner,
			})
			continue
		}

		records, err := r.repo.ListByOwner(ctx, organisationID, owner)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", owner, err)
		}

		step := debitdomain.LevelInspection{Level: s.level, OwnerID: owner.ID()}
		if len(records) == 0 {
			step.Outcome = debitdomain.OutcomeRejected
			step.Reason = debitdomain.ReasonNotConfigured
			inspections = append(inspections, step)
			continue
		}

		covering := lo.Filter(records, func(c debitdomain.DebitConfig, _ int) bool {
			return c.Covers(asOf)
		})
		if len(covering) == 0 {
			step.Outcome = debitdomain.OutcomeRejected
			step.Reason = debitdomain.ReasonOutsideEffectiveWindow
			inspections = append(inspections, step)
			continue
		}

		chosen := lo.MaxBy(covering, laterRecord)
		step.Outcome = debitdomain.OutcomeAccepted
		step.Reason = debitdomain.ReasonAccepted
		step.ConfigID = chosen.ID

		if len(covering) > 1 {
			ignored := lo.FilterMap(covering, func(c debitdomain.DebitConfig, _ int) (string, bool) {
				return c.ID, c.ID != chosen.ID
			})
			step.Reason = debitdomain.ReasonOverlappingRecords
			step.Ignored = ignored
			log.Warn("overlapping debit configurations",
				zap.String("organisation_id", organisationID),
				zap.String("level", string(s.level)),
				zap.String("owner_id", owner.ID()),
				zap.String("chosen_config_id", chosen.ID),
				zap.Strings("ignored_config_ids", ignored),
				zap.String("as_of", caldate.Format(asOf)),
			)
		}

		inspections = append(inspections, step)
		return &debitdomain.Resolution{
			Config:       chosen,
			AppliedLevel: s.level,
			Inspections:  inspections,
		}, nil
	}

	return &debitdomain.Resolution{Inspections: inspections}, debitdomain.ErrInvalidState
}

// laterRecord orders by EffectiveFrom, then by id so equal starts still pick
// the same record whatever order the rows arrive in.
func laterRecord(a, b debitdomain.DebitConfig) bool {
	if !a.EffectiveFrom.Equal(b.EffectiveFrom) {
		return a.EffectiveFrom.After(b.EffectiveFrom)
	}
	return a.ID > b.ID
}
