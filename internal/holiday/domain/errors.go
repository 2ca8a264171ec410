package domain

import "errors"

var (
	ErrZoneNotFound        = errors.New("zone_not_found")
	ErrNoBusinessDayFound  = errors.New("no_business_day_found")
	ErrInvalidZoneID       = errors.New("invalid_zone_id")
	ErrInvalidOrganisation = errors.New("invalid_organisation")
	ErrInvalidDirection    = errors.New("invalid_direction")
	ErrInvalidHolidayName  = errors.New("invalid_holiday_name")
)
