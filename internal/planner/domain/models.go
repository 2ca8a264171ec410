package domain

import (
	"time"

	cutoffdomain "github.com/smallbiznis/debitplan/internal/cutoff/domain"
	debitdomain "github.com/smallbiznis/debitplan/internal/debitconfig/domain"
	holidaydomain "github.com/smallbiznis/debitplan/internal/holiday/domain"
)

// PlanRequest asks for the debit date of one contract in one period.
type PlanRequest struct {
	OrganisationID         string `validate:"required"`
	ContratID              string
	ClientID               string
	SocieteID              string
	ReferenceDate          *time.Time
	TargetMonth            int `validate:"min=1,max=12"`
	TargetYear             int `validate:"min=1,max=9999"`
	IncludeResolutionTrace bool
}

// BatchItem is one contract of a batch request.
type BatchItem struct {
	ContratID     string
	ClientID      string
	SocieteID     string
	ReferenceDate *time.Time
}

type BatchRequest struct {
	OrganisationID string      `validate:"required"`
	Items          []BatchItem `validate:"required,min=1"`
	TargetMonth    int         `validate:"min=1,max=12"`
	TargetYear     int         `validate:"min=1,max=9999"`
}

// Request returns the single-item request for item.
func (b BatchRequest) Request(item BatchItem) PlanRequest {
	return PlanRequest{
		OrganisationID: b.OrganisationID,
		ContratID:      item.ContratID,
		ClientID:       item.ClientID,
		SocieteID:      item.SocieteID,
		ReferenceDate:  item.ReferenceDate,
		TargetMonth:    b.TargetMonth,
		TargetYear:     b.TargetYear,
	}
}

type EligibilityRequest struct {
	OrganisationID string    `validate:"required"`
	Date           time.Time `validate:"required"`
	HolidayZoneID  string    `validate:"required"`
}

// Shift reasons.
const (
	ShiftReasonWeekend       = "weekend"
	ShiftReasonHolidayPrefix = "holiday:"
)

// PlannedDateResult is recomputed on every call.
type PlannedDateResult struct {
	PlannedDebitDate   time.Time
	OriginalTargetDate time.Time
	WasShifted         bool
	ShiftReason        *string
	IsWeekend          bool
	IsHoliday          bool
	ResolvedConfig     debitdomain.ResolvedDebitConfig
	Trace              *ResolutionTrace
}

// ResolutionTrace explains one planning call. It never influences the result.
type ResolutionTrace struct {
	AsOfDate time.Time
	Levels   []debitdomain.LevelInspection
	Shift    *ShiftStep
	Batch    *BatchStep
}

type ShiftStep struct {
	NaiveDate   time.Time
	Strategy    debitdomain.ShiftStrategy
	Verdict     holidaydomain.DayVerdict
	PlannedDate time.Time
	Shifted     bool
}

// Batch sources.
const (
	BatchSourceDefault = "default"
	BatchSourceCutoff  = "cutoff"
)

type BatchStep struct {
	Source         string
	CutoffConfigID string
	Assignment     cutoffdomain.Assignment
}

// BatchItemResult mirrors one BatchItem, in input order.
type BatchItemResult struct {
	ContratID    string
	ClientID     string
	SocieteID    string
	Success      bool
	Result       *PlannedDateResult
	ErrorCode    Code
	ErrorMessage string
}

type BatchResult struct {
	Results      []BatchItemResult
	TotalCount   int
	SuccessCount int
	ErrorCount   int
}
