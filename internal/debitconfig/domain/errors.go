package domain

import "errors"

var (
	// ErrInvalidState means no organisation default covers the requested date.
	ErrInvalidState = errors.New("invalid_state")

	ErrInvalidOrganisation    = errors.New("invalid_organisation")
	ErrInvalidLevel           = errors.New("invalid_level")
	ErrInvalidOwner           = errors.New("invalid_owner")
	ErrInvalidMode            = errors.New("invalid_mode")
	ErrInvalidFixedDay        = errors.New("invalid_fixed_day")
	ErrInvalidShiftStrategy   = errors.New("invalid_shift_strategy")
	ErrInvalidHolidayZone     = errors.New("invalid_holiday_zone")
	ErrInvalidEffectiveWindow = errors.New("invalid_effective_window")
)
