package domain

import (
	"context"
	"time"
)

// Scope names the optional owners a resolution may consider.
type Scope struct {
	ContratID string
	ClientID  string
	SocieteID string
}

// Outcome of inspecting one hierarchy level.
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
	OutcomeSkipped  Outcome = "skipped"
)

// Reasons reported in LevelInspection.
const (
	ReasonNoOwner                = "no_owner"
	ReasonNotConfigured          = "not_configured"
	ReasonOutsideEffectiveWindow = "outside_effective_window"
	ReasonAccepted               = "accepted"
	ReasonOverlappingRecords     = "overlapping_records"
)

// LevelInspection records what the resolver saw at one level.
type LevelInspection struct {
	Level    Level    `json:"level"`
	OwnerID  string   `json:"owner_id,omitempty"`
	Outcome  Outcome  `json:"outcome"`
	Reason   string   `json:"reason"`
	ConfigID string   `json:"config_id,omitempty"`
	Ignored  []string `json:"ignored_config_ids,omitempty"`
}

// Resolution is the configuration chosen for a scope and the path taken to find it.
type Resolution struct {
	Config       DebitConfig
	AppliedLevel Level
	Inspections  []LevelInspection
}

// Resolver picks the most specific configuration covering asOf.
type Resolver interface {
	Resolve(ctx context.Context, organisationID string, scope Scope, asOf time.Time) (*Resolution, error)
}
