package domain

import "context"

type Repository interface {
	// GetCutoffConfig returns nil, nil when the config does not exist.
	GetCutoffConfig(ctx context.Context, organisationID, cutoffConfigID string) (*CutoffConfig, error)
	Create(ctx context.Context, cfg *CutoffConfig) error
}
