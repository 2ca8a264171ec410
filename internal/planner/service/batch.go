package service

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/smallbiznis/debitplan/internal/observability/logger"
	plannerdomain "github.com/smallbiznis/debitplan/internal/planner/domain"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// CalculatePlannedDatesBatch plans every item independently. A failing item is
// reported in its own slot and never aborts the rest.
func (s *planner) CalculatePlannedDatesBatch(ctx context.Context, req plannerdomain.BatchRequest) (*plannerdomain.BatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	cfg := s.cfg.Get()
	if cfg.MaxBatchSize > 0 && len(req.Items) > cfg.MaxBatchSize {
		return nil, fmt.Errorf("%w: %d items, limit %d", plannerdomain.ErrBatchTooLarge, len(req.Items), cfg.MaxBatchSize)
	}

	s.metrics.ObserveBatch(len(req.Items))
	results := make([]plannerdomain.BatchItemResult, len(req.Items))

	workers := max(cfg.BatchWorkers, 1)
	p := pool.New().WithMaxGoroutines(workers)
	for i, item := range req.Items {
		i, item := i, item
		p.Go(func() {
			results[i] = s.planItem(ctx, req.Request(item))
		})
	}
	p.Wait()

	success := lo.CountBy(results, func(r plannerdomain.BatchItemResult) bool { return r.Success })
	out := &plannerdomain.BatchResult{
		Results:      results,
		TotalCount:   len(results),
		SuccessCount: success,
		ErrorCount:   len(results) - success,
	}

	logger.WithContext(ctx, s.log).Info("debit date batch planned",
		zap.String("organisation_id", req.OrganisationID),
		zap.Int("total", out.TotalCount),
		zap.Int("success", out.SuccessCount),
		zap.Int("errors", out.ErrorCount),
		zap.Int("workers", workers),
	)
	return out, nil
}

func (s *planner) planItem(ctx context.Context, req plannerdomain.PlanRequest) (res plannerdomain.BatchItemResult) {
	res = plannerdomain.BatchItemResult{
		ContratID: req.ContratID,
		ClientID:  req.ClientID,
		SocieteID: req.SocieteID,
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic while planning batch item", zap.Any("panic", r), zap.String("contrat_id", req.ContratID))
			res.Success = false
			res.Result = nil
			res.ErrorCode = plannerdomain.CodeInternal
			res.ErrorMessage = fmt.Sprint(r)
		}
	}()

	planned, err := s.CalculatePlannedDate(ctx, req)
	if err != nil {
		res.ErrorCode = plannerdomain.ErrorCode(err)
		res.ErrorMessage = err.Error()
		return res
	}
	res.Success = true
	res.Result = planned
	return res
}
