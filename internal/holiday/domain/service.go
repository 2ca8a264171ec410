package domain

import (
	"context"
	"time"
)

// DayVerdict explains why a date is or is not a business day.
type DayVerdict struct {
	IsBusinessDay bool
	IsWeekend     bool
	IsHoliday     bool
	HolidayName   string
}

// Calendar answers business-day questions for a holiday zone.
type Calendar interface {
	IsBusinessDay(ctx context.Context, organisationID, zoneID string, date time.Time) (bool, error)
	Inspect(ctx context.Context, organisationID, zoneID string, date time.Time) (DayVerdict, error)
	NearestBusinessDay(ctx context.Context, organisationID, zoneID string, date time.Time, direction Direction) (time.Time, error)
	CheckEligibility(ctx context.Context, organisationID, zoneID string, date time.Time) (Eligibility, error)
	// Zone returns the zone with its holidays, or ErrZoneNotFound.
	Zone(ctx context.Context, organisationID, zoneID string) (*HolidayZone, error)
}
