package domain

import (
	"errors"
	"fmt"
	"strings"

	contractdomain "github.com/smallbiznis/debitplan/internal/contract/domain"
	cutoffdomain "github.com/smallbiznis/debitplan/internal/cutoff/domain"
	debitdomain "github.com/smallbiznis/debitplan/internal/debitconfig/domain"
	holidaydomain "github.com/smallbiznis/debitplan/internal/holiday/domain"
)

var (
	ErrMissingReferenceDate = errors.New("missing_reference_date")
	ErrInvalidRequest       = errors.New("invalid_request")
	ErrBatchTooLarge        = errors.New("batch_too_large")
)

// Code is the stable, client-visible identifier of a planning failure.
type Code string

const (
	CodeZoneNotFound             Code = "ZONE_NOT_FOUND"
	CodeInvalidState             Code = "INVALID_STATE"
	CodeMissingReferenceDate     Code = "MISSING_REFERENCE_DATE"
	CodeNoCutoffWindowConfigured Code = "NO_CUTOFF_WINDOW_CONFIGURED"
	CodeNoBusinessDayFound       Code = "NO_BUSINESS_DAY_FOUND"
	CodeContractNotFound         Code = "CONTRACT_NOT_FOUND"
	CodeInvalidRequest           Code = "INVALID_REQUEST"
	CodeInternal                 Code = "INTERNAL"
)

// ErrorCode classifies err. Anything unrecognised is INTERNAL.
func ErrorCode(err error) Code {
	var pErr *PlanningError
	if errors.As(err, &pErr) && pErr.Code != "" {
		return pErr.Code
	}
	return classify(err)
}

func classify(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, holidaydomain.ErrZoneNotFound):
		return CodeZoneNotFound
	case errors.Is(err, holidaydomain.ErrNoBusinessDayFound):
		return CodeNoBusinessDayFound
	case errors.Is(err, debitdomain.ErrInvalidState):
		return CodeInvalidState
	case errors.Is(err, cutoffdomain.ErrNoCutoffWindowConfigured):
		return CodeNoCutoffWindowConfigured
	case errors.Is(err, ErrMissingReferenceDate):
		return CodeMissingReferenceDate
	case errors.Is(err, contractdomain.ErrContractNotFound):
		return CodeContractNotFound
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrBatchTooLarge),
		errors.Is(err, debitdomain.ErrInvalidOrganisation),
		errors.Is(err, contractdomain.ErrInvalidContractID):
		return CodeInvalidRequest
	default:
		return CodeInternal
	}
}

// IsConfigurationError reports whether the caller must fix reference data
// rather than retry.
func IsConfigurationError(code Code) bool {
	switch code {
	case CodeZoneNotFound, CodeInvalidState, CodeMissingReferenceDate,
		CodeNoCutoffWindowConfigured, CodeNoBusinessDayFound, CodeContractNotFound:
		return true
	default:
		return false
	}
}

// PlanningError carries the ids an operator needs to find the offending record.
type PlanningError struct {
	Code           Code
	OrganisationID string
	ContratID      string
	ClientID       string
	SocieteID      string
	HolidayZoneID  string
	CutoffConfigID string
	Err            error
}

func NewPlanningError(req PlanRequest, err error) *PlanningError {
	return &PlanningError{
		Code:           classify(err),
		OrganisationID: req.OrganisationID,
		ContratID:      req.ContratID,
		ClientID:       req.ClientID,
		SocieteID:      req.SocieteID,
		Err:            err,
	}
}

func (e *PlanningError) Error() string {
	var ids []string
	add := func(key, value string) {
		if value != "" {
			ids = append(ids, key+"="+value)
		}
	}
	add("organisation", e.OrganisationID)
	add("contract", e.ContratID)
	add("client", e.ClientID)
	add("company", e.SocieteID)
	add("holiday_zone", e.HolidayZoneID)
	add("cutoff_config", e.CutoffConfigID)

	return fmt.Sprintf("%s (%s): %v", e.Code, strings.Join(ids, " "), e.Err)
}

func (e *PlanningError) Unwrap() error { return e.Err }
