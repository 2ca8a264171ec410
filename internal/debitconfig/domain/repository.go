package domain

import "context"

// Repository reads debit configuration records.
type Repository interface {
	// ListByOwner returns every record of the owner, whatever its effective window,
	// ordered by effective_from descending.
	ListByOwner(ctx context.Context, organisationID string, owner Owner) ([]DebitConfig, error)
	Create(ctx context.Context, cfg *DebitConfig) error
}
