package service

import (
	"context"

	holidaydomain "github.com/smallbiznis/debitplan/internal/holiday/domain"
	plannerdomain "github.com/smallbiznis/debitplan/internal/planner/domain"
)

func (s *planner) CheckDateEligibility(ctx context.Context, req plannerdomain.EligibilityRequest) (holidaydomain.Eligibility, error) {
	if err := req.Validate(); err != nil {
		return holidaydomain.Eligibility{}, err
	}

	eligibility, err := s.calendar.CheckEligibility(ctx, req.OrganisationID, req.HolidayZoneID, req.Date)
	if err != nil {
		return holidaydomain.Eligibility{}, &plannerdomain.PlanningError{
			Code:           plannerdomain.ErrorCode(err),
			OrganisationID: req.OrganisationID,
			HolidayZoneID:  req.HolidayZoneID,
			Err:            err,
		}
	}
	return eligibility, nil
}
