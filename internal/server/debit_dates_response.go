package server

import (
	debitdomain "github.com/smallbiznis/debitplan/internal/debitconfig/domain"
	plannerdomain "github.com/smallbiznis/debitplan/internal/planner/domain"
	"github.com/smallbiznis/debitplan/pkg/caldate"
)

type plannedDateResponse struct {
	PlannedDebitDate   string                          `json:"planned_debit_date"`
	OriginalTargetDate string                          `json:"original_target_date"`
	WasShifted         bool                            `json:"was_shifted"`
	ShiftReason        *string                         `json:"shift_reason"`
	IsWeekend          bool                            `json:"is_weekend"`
	IsHoliday          bool                            `json:"is_holiday"`
	ResolvedConfig     debitdomain.ResolvedDebitConfig `json:"resolved_config"`
	ResolutionTrace    *traceResponse                  `json:"resolution_trace,omitempty"`
}

type traceResponse struct {
	AsOfDate string                        `json:"as_of_date"`
	Levels   []debitdomain.LevelInspection `json:"levels"`
	Shift    *shiftStepResponse            `json:"shift,omitempty"`
	Batch    *batchStepResponse            `json:"batch,omitempty"`
}

type shiftStepResponse struct {
	NaiveDate   string `json:"naive_date"`
	Strategy    string `json:"strategy"`
	IsWeekend   bool   `json:"is_weekend"`
	IsHoliday   bool   `json:"is_holiday"`
	HolidayName string `json:"holiday_name,omitempty"`
	PlannedDate string `json:"planned_date"`
	Shifted     bool   `json:"shifted"`
}

type batchStepResponse struct {
	Source         string `json:"source"`
	CutoffConfigID string `json:"cutoff_config_id,omitempty"`
	BatchNumber    int    `json:"batch_number"`
	CutoffDay      int    `json:"cutoff_day,omitempty"`
	Wrapped        bool   `json:"wrapped,omitempty"`
}

type batchItemResponse struct {
	ContratID    string               `json:"contrat_id"`
	ClientID     string               `json:"client_id,omitempty"`
	SocieteID    string               `json:"societe_id,omitempty"`
	Success      bool                 `json:"success"`
	Result       *plannedDateResponse `json:"result,omitempty"`
	ErrorCode    string               `json:"error_code,omitempty"`
	ErrorMessage string               `json:"error_message,omitempty"`
}

type batchResponse struct {
	Results      []batchItemResponse `json:"results"`
	TotalCount   int                 `json:"total_count"`
	SuccessCount int                 `json:"success_count"`
	ErrorCount   int                 `json:"error_count"`
}

type eligibilityResponse struct {
	Date                 string `json:"date"`
	IsEligible           bool   `json:"is_eligible"`
	IsWeekend            bool   `json:"is_weekend"`
	IsHoliday            bool   `json:"is_holiday"`
	HolidayName          string `json:"holiday_name,omitempty"`
	NextEligibleDate     string `json:"next_eligible_date"`
	PreviousEligibleDate string `json:"previous_eligible_date"`
}

func newPlannedDateResponse(r *plannerdomain.PlannedDateResult) *plannedDateResponse {
	if r == nil {
		return nil
	}
	resp := &plannedDateResponse{
		PlannedDebitDate:   caldate.Format(r.PlannedDebitDate),
		OriginalTargetDate: caldate.Format(r.OriginalTargetDate),
		WasShifted:         r.WasShifted,
		ShiftReason:        r.ShiftReason,
		IsWeekend:          r.IsWeekend,
		IsHoliday:          r.IsHoliday,
		ResolvedConfig:     r.ResolvedConfig,
	}
	if r.Trace == nil {
		return resp
	}

	trace := &traceResponse{
		AsOfDate: caldate.Format(r.Trace.AsOfDate),
		Levels:   r.Trace.Levels,
	}
	if step := r.Trace.Shift; step != nil {
		trace.Shift = &shiftStepResponse{
			NaiveDate:   caldate.Format(step.NaiveDate),
			Strategy:    string(step.Strategy),
			IsWeekend:   step.Verdict.IsWeekend,
			IsHoliday:   step.Verdict.IsHoliday,
			HolidayName: step.Verdict.HolidayName,
			PlannedDate: caldate.Format(step.PlannedDate),
			Shifted:     step.Shifted,
		}
	}
	if step := r.Trace.Batch; step != nil {
		trace.Batch = &batchStepResponse{
			Source:         step.Source,
			CutoffConfigID: step.CutoffConfigID,
			BatchNumber:    step.Assignment.BatchNumber,
			CutoffDay:      step.Assignment.CutoffDay,
			Wrapped:        step.Assignment.Wrapped,
		}
	}
	resp.ResolutionTrace = trace
	return resp
}

func newBatchResponse(r *plannerdomain.BatchResult) batchResponse {
	results := make([]batchItemResponse, 0, len(r.Results))
	for _, item := range r.Results {
		results = append(results, batchItemResponse{
			ContratID:    item.ContratID,
			ClientID:     item.ClientID,
			SocieteID:    item.SocieteID,
			Success:      item.Success,
			Result:       newPlannedDateResponse(item.Result),
			ErrorCode:    string(item.ErrorCode),
			ErrorMessage: item.ErrorMessage,
		})
	}
	return batchResponse{
		Results:      results,
		TotalCount:   r.TotalCount,
		SuccessCount: r.SuccessCount,
		ErrorCount:   r.ErrorCount,
	}
}
