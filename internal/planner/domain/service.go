package domain

import (
	"context"

	holidaydomain "github.com/smallbiznis/debitplan/internal/holiday/domain"
)

type Planner interface {
	CalculatePlannedDate(ctx context.Context, req PlanRequest) (*PlannedDateResult, error)
	CalculatePlannedDatesBatch(ctx context.Context, req BatchRequest) (*BatchResult, error)
	CheckDateEligibility(ctx context.Context, req EligibilityRequest) (holidaydomain.Eligibility, error)
}
