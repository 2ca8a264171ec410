package domain

import (
	"context"
	"time"
)

type Assigner interface {
	AssignBatch(ctx context.Context, organisationID, cutoffConfigID string, plannedDate time.Time) (Assignment, error)
}
