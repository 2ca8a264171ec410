package domain

import "context"

// Repository reads holiday zones. Zones are administered elsewhere; Create exists
// for seeding.
type Repository interface {
	// GetHolidayZone returns the zone with its holidays, or nil when unknown.
	GetHolidayZone(ctx context.Context, organisationID, zoneID string) (*HolidayZone, error)
	Create(ctx context.Context, zone *HolidayZone) error
}
