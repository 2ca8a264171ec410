package domain

import "errors"

var (
	ErrNoCutoffWindowConfigured = errors.New("no_cutoff_window_configured")

	ErrInvalidCutoffConfigID = errors.New("invalid_cutoff_config_id")
	ErrInvalidOrganisation   = errors.New("invalid_organisation")
	ErrInvalidCutoffDay      = errors.New("invalid_cutoff_day")
	ErrInvalidBatchNumber    = errors.New("invalid_batch_number")
)
