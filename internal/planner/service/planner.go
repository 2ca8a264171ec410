package service

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/debitplan/internal/config"
	contractdomain "github.com/smallbiznis/debitplan/internal/contract/domain"
	cutoffdomain "github.com/smallbiznis/debitplan/internal/cutoff/domain"
	debitdomain "github.com/smallbiznis/debitplan/internal/debitconfig/domain"
	holidaydomain "github.com/smallbiznis/debitplan/internal/holiday/domain"
	"github.com/smallbiznis/debitplan/internal/observability/logger"
	"github.com/smallbiznis/debitplan/internal/observability/metrics"
	plannerdomain "github.com/smallbiznis/debitplan/internal/planner/domain"
	"github.com/smallbiznis/debitplan/pkg/caldate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const tracerName = "github.com/smallbiznis/debitplan/internal/planner"

type Param struct {
	fx.In

	Log       *zap.Logger
	Contracts contractdomain.Directory
	Resolver  debitdomain.Resolver
	Calendar  holidaydomain.Calendar
	Assigner  cutoffdomain.Assigner
	Config    *config.PlannerConfigHolder
	Metrics   *metrics.PlannerMetrics `optional:"true"`
}

type planner struct {
	log       *zap.Logger
	contracts contractdomain.Directory
	resolver  debitdomain.Resolver
	calendar  holidaydomain.Calendar
	assigner  cutoffdomain.Assigner
	cfg       *config.PlannerConfigHolder
	metrics   *metrics.PlannerMetrics
	tracer    trace.Tracer
}

func NewPlanner(p Param) plannerdomain.Planner {
	cfg := p.Config
	if cfg == nil {
		cfg = config.NewStaticPlannerConfigHolder(config.DefaultPlannerConfig())
	}
	return &planner{
		log:       p.Log.Named("planner.service"),
		contracts: p.Contracts,
		resolver:  p.Resolver,
		calendar:  p.Calendar,
		assigner:  p.Assigner,
		cfg:       cfg,
		metrics:   p.Metrics,
		tracer:    otel.Tracer(tracerName),
	}
}

func (s *planner) CalculatePlannedDate(ctx context.Context, req plannerdomain.PlanRequest) (*plannerdomain.PlannedDateResult, error) {
	ctx, span := s.tracer.Start(ctx, "planner.CalculatePlannedDate", trace.WithAttributes(
		attribute.String("organisation_id", req.OrganisationID),
		attribute.String("contrat_id", req.ContratID),
		attribute.Int("target_month", req.TargetMonth),
		attribute.Int("target_year", req.TargetYear),
	))
	defer span.End()

	result, err := s.plan(ctx, req)
	if err != nil {
		code := plannerdomain.ErrorCode(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(code))
		s.metrics.RecordError(string(code))

		log := logger.WithContext(ctx, s.log)
		fields := []zap.Field{zap.String("code", string(code)), zap.Error(err)}
		if plannerdomain.IsConfigurationError(code) || code == plannerdomain.CodeInvalidRequest {
			log.Info("debit date planning rejected", fields...)
		} else {
			log.Error("debit date planning failed", fields...)
		}
		return nil, err
	}

	span.SetAttributes(
		attribute.String("applied_level", string(result.ResolvedConfig.AppliedLevel)),
		attribute.String("planned_debit_date", caldate.Format(result.PlannedDebitDate)),
		attribute.Bool("was_shifted", result.WasShifted),
	)
	s.metrics.RecordPlanned(string(result.ResolvedConfig.AppliedLevel), result.WasShifted)
	return result, nil
}

func (s *planner) plan(ctx context.Context, req plannerdomain.PlanRequest) (*plannerdomain.PlannedDateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, plannerdomain.NewPlanningError(req, err)
	}

	if req.ContratID != "" {
		ref, err := s.contracts.GetContract(ctx, req.OrganisationID, req.ContratID)
		if err != nil {
			return nil, plannerdomain.NewPlanningError(req, err)
		}
		if req.ClientID == "" {
			req.ClientID = ref.ClientID
		}
		if req.SocieteID == "" {
			req.SocieteID = ref.SocieteID
		}
	}

	asOf := caldate.New(req.TargetYear, time.Month(req.TargetMonth), 1)
	if req.ReferenceDate != nil {
		asOf = caldate.Normalize(*req.ReferenceDate)
	}

	resolution, err := s.resolver.Resolve(ctx, req.OrganisationID, debitdomain.Scope{
		ContratID: req.ContratID,
		ClientID:  req.ClientID,
		SocieteID: req.SocieteID,
	}, asOf)
	if err != nil {
		return nil, plannerdomain.NewPlanningError(req, err)
	}

	cfg := resolution.Config
	resolved := cfg.Snapshot()
	fail := func(err error) error {
		pErr := plannerdomain.NewPlanningError(req, err)
		pErr.HolidayZoneID = cfg.HolidayZoneID
		pErr.CutoffConfigID = cfg.CutoffConfigID
		return pErr
	}

	naive, err := NaiveDate(cfg, req.TargetYear, time.Month(req.TargetMonth), req.ReferenceDate)
	if err != nil {
		return nil, fail(err)
	}

	zone, err := s.calendar.Zone(ctx, req.OrganisationID, cfg.HolidayZoneID)
	if err != nil {
		return nil, fail(err)
	}

	verdict := zone.Inspect(naive)
	result := &plannerdomain.PlannedDateResult{
		PlannedDebitDate:   naive,
		OriginalTargetDate: naive,
		IsWeekend:          verdict.IsWeekend,
		IsHoliday:          verdict.IsHoliday,
	}
	if !verdict.IsBusinessDay {
		planned, err := Shift(zone, naive, cfg.ShiftStrategy)
		if err != nil {
			return nil, fail(err)
		}
		reason := ShiftReason(verdict)
		result.PlannedDebitDate = planned
		result.WasShifted = !planned.Equal(naive)
		result.ShiftReason = &reason
	}

	batch := plannerdomain.BatchStep{Source: plannerdomain.BatchSourceDefault}
	if cfg.CutoffConfigID != "" {
		assignment, err := s.assigner.AssignBatch(ctx, req.OrganisationID, cfg.CutoffConfigID, result.PlannedDebitDate)
		if err != nil {
			return nil, fail(err)
		}
		resolved.Batch = assignment.BatchNumber
		batch = plannerdomain.BatchStep{
			Source:         plannerdomain.BatchSourceCutoff,
			CutoffConfigID: cfg.CutoffConfigID,
			Assignment:     assignment,
		}
	} else {
		batch.Assignment.BatchNumber = resolved.Batch
	}
	result.ResolvedConfig = resolved

	if req.IncludeResolutionTrace {
		result.Trace = &plannerdomain.ResolutionTrace{
			AsOfDate: asOf,
			Levels:   resolution.Inspections,
			Shift: &plannerdomain.ShiftStep{
				NaiveDate:   naive,
				Strategy:    cfg.ShiftStrategy,
				Verdict:     verdict,
				PlannedDate: result.PlannedDebitDate,
				Shifted:     result.WasShifted,
			},
			Batch: &batch,
		}
	}
	return result, nil
}

// NaiveDate derives the unshifted debit date of the period.
func NaiveDate(cfg debitdomain.DebitConfig, year int, month time.Month, referenceDate *time.Time) (time.Time, error) {
	switch cfg.Mode {
	case debitdomain.ModeFixedDay:
		return caldate.ClampDay(year, month, cfg.FixedDay), nil
	case debitdomain.ModeEndOfMonth:
		return caldate.New(year, month, caldate.LastDayOfMonth(year, month)), nil
	case debitdomain.ModeRelativeToInvoice:
		if referenceDate == nil || referenceDate.IsZero() {
			return time.Time{}, plannerdomain.ErrMissingReferenceDate
		}
		return caldate.AddDays(caldate.Normalize(*referenceDate), cfg.InvoiceOffsetDays), nil
	default:
		return time.Time{}, debitdomain.ErrInvalidMode
	}
}

// ShiftReason names why a date is not a business day; a holiday wins over a weekend.
func ShiftReason(verdict holidaydomain.DayVerdict) string {
	if verdict.IsHoliday {
		return plannerdomain.ShiftReasonHolidayPrefix + verdict.HolidayName
	}
	return plannerdomain.ShiftReasonWeekend
}

// Shift moves naive to a business day of zone according to strategy.
func Shift(zone *holidaydomain.HolidayZone, naive time.Time, strategy debitdomain.ShiftStrategy) (time.Time, error) {
	switch strategy {
	case debitdomain.ShiftNextBusinessDay:
		return zone.NearestBusinessDay(naive, holidaydomain.DirectionForward)
	case debitdomain.ShiftPreviousBusinessDay:
		return zone.NearestBusinessDay(naive, holidaydomain.DirectionBackward)
	case debitdomain.ShiftNearestBusinessDay:
		next, nextErr := zone.NearestBusinessDay(naive, holidaydomain.DirectionForward)
		prev, prevErr := zone.NearestBusinessDay(naive, holidaydomain.DirectionBackward)
		return Nearest(naive, next, nextErr, prev, prevErr)
	default:
		return time.Time{}, debitdomain.ErrInvalidShiftStrategy
	}
}

// Nearest picks the closer of the two candidates, preferring next on a tie.
// A direction that found no business day is ignored unless both did; any other
// error is returned as is.
func Nearest(naive, next time.Time, nextErr error, prev time.Time, prevErr error) (time.Time, error) {
	if nextErr != nil && !errors.Is(nextErr, holidaydomain.ErrNoBusinessDayFound) {
		return time.Time{}, nextErr
	}
	if prevErr != nil && !errors.Is(prevErr, holidaydomain.ErrNoBusinessDayFound) {
		return time.Time{}, prevErr
	}
	switch {
	case nextErr != nil && prevErr != nil:
		return time.Time{}, nextErr
	case nextErr != nil:
		return prev, nil
	case prevErr != nil:
		return next, nil
	}
	if caldate.DaysBetween(prev, naive) < caldate.DaysBetween(naive, next) {
		return prev, nil
	}
	return next, nil
}
