package service

import (
	"context"
	"time"

	holidaydomain "github.com/smallbiznis/debitplan/internal/holiday/domain"
	"github.com/smallbiznis/debitplan/pkg/caldate"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type CalendarParam struct {
	fx.In

	Repository holidaydomain.Repository
	Log        *zap.Logger
}

type calendar struct {
	repo holidaydomain.Repository
	log  *zap.Logger
}

func NewCalendar(p CalendarParam) holidaydomain.Calendar {
	return &calendar{
		repo: p.Repository,
		log:  p.Log.Named("holiday.calendar"),
	}
}

func (c *calendar) IsBusinessDay(ctx context.Context, organisationID, zoneID string, date time.Time) (bool, error) {
	zone, err := c.zone(ctx, organisationID, zoneID)
	if err != nil {
		return false, err
	}
	return zone.Inspect(date).IsBusinessDay, nil
}

func (c *calendar) Inspect(ctx context.Context, organisationID, zoneID string, date time.Time) (holidaydomain.DayVerdict, error) {
	zone, err := c.zone(ctx, organisationID, zoneID)
	if err != nil {
		return holidaydomain.DayVerdict{}, err
	}
	return zone.Inspect(date), nil
}

func (c *calendar) NearestBusinessDay(ctx context.Context, organisationID, zoneID string, date time.Time, direction holidaydomain.Direction) (time.Time, error) {
	if direction != holidaydomain.DirectionForward && direction != holidaydomain.DirectionBackward {
		return time.Time{}, holidaydomain.ErrInvalidDirection
	}
	zone, err := c.zone(ctx, organisationID, zoneID)
	if err != nil {
		return time.Time{}, err
	}
	return zone.NearestBusinessDay(date, direction)
}

func (c *calendar) CheckEligibility(ctx context.Context, organisationID, zoneID string, date time.Time) (holidaydomain.Eligibility, error) {
	zone, err := c.zone(ctx, organisationID, zoneID)
	if err != nil {
		return holidaydomain.Eligibility{}, err
	}

	date = caldate.Normalize(date)
	verdict := zone.Inspect(date)
	result := holidaydomain.Eligibility{
		Date:        date,
		IsEligible:  verdict.IsBusinessDay,
		IsWeekend:   verdict.IsWeekend,
		IsHoliday:   verdict.IsHoliday,
		HolidayName: verdict.HolidayName,
	}

	result.NextEligibleDate, err = zone.NearestBusinessDay(date, holidaydomain.DirectionForward)
	if err != nil {
		return holidaydomain.Eligibility{}, err
	}
	result.PreviousEligibleDate, err = zone.NearestBusinessDay(date, holidaydomain.DirectionBackward)
	if err != nil {
		return holidaydomain.Eligibility{}, err
	}
	return result, nil
}

// Zone loads the zone once so a caller can evaluate several dates against one snapshot.
func (c *calendar) Zone(ctx context.Context, organisationID, zoneID string) (*holidaydomain.HolidayZone, error) {
	return c.zone(ctx, organisationID, zoneID)
}

func (c *calendar) zone(ctx context.Context, organisationID, zoneID string) (*holidaydomain.HolidayZone, error) {
	if zoneID == "" {
		return nil, holidaydomain.ErrZoneNotFound
	}
	zone, err := c.repo.GetHolidayZone(ctx, organisationID, zoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		c.log.Debug("holiday zone not found",
			zap.String("organisation_id", organisationID),
			zap.String("zone_id", zoneID),
		)
		return nil, holidaydomain.ErrZoneNotFound
	}
	return zone, nil
}
