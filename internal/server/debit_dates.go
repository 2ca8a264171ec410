package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	plannerdomain "github.com/smallbiznis/debitplan/internal/planner/domain"
	"github.com/smallbiznis/debitplan/pkg/caldate"
)

type planDebitDateRequest struct {
	OrganisationID         string `json:"organisation_id"`
	ContratID              string `json:"contrat_id"`
	ClientID               string `json:"client_id"`
	SocieteID              string `json:"societe_id"`
	ReferenceDate          string `json:"reference_date"`
	TargetMonth            int    `json:"target_month"`
	TargetYear             int    `json:"target_year"`
	IncludeResolutionTrace bool   `json:"include_resolution_trace"`
}

type batchItemRequest struct {
	ContratID     string `json:"contrat_id"`
	ClientID      string `json:"client_id"`
	SocieteID     string `json:"societe_id"`
	ReferenceDate string `json:"reference_date"`
}

type planDebitDatesBatchRequest struct {
	OrganisationID string             `json:"organisation_id"`
	Items          []batchItemRequest `json:"items"`
	TargetMonth    int                `json:"target_month"`
	TargetYear     int                `json:"target_year"`
}

func (s *Server) PlanDebitDate(c *gin.Context) {
	var req planDebitDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	referenceDate, err := parseOptionalDate(req.ReferenceDate)
	if err != nil {
		AbortWithError(c, newValidationError("reference_date", "invalid_reference_date", "reference_date must be YYYY-MM-DD"))
		return
	}

	resp, err := s.planner.CalculatePlannedDate(c.Request.Context(), plannerdomain.PlanRequest{
		OrganisationID:         organisationID(c, req.OrganisationID),
		ContratID:              strings.TrimSpace(req.ContratID),
		ClientID:               strings.TrimSpace(req.ClientID),
		SocieteID:              strings.TrimSpace(req.SocieteID),
		ReferenceDate:          referenceDate,
		TargetMonth:            req.TargetMonth,
		TargetYear:             req.TargetYear,
		IncludeResolutionTrace: req.IncludeResolutionTrace,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newPlannedDateResponse(resp)})
}

func (s *Server) PlanDebitDatesBatch(c *gin.Context) {
	var req planDebitDatesBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	items := make([]plannerdomain.BatchItem, 0, len(req.Items))
	for _, item := range req.Items {
		referenceDate, err := parseOptionalDate(item.ReferenceDate)
		if err != nil {
			AbortWithError(c, newValidationError("items.reference_date", "invalid_reference_date", "reference_date must be YYYY-MM-DD"))
			return
		}
		items = append(items, plannerdomain.BatchItem{
			ContratID:     strings.TrimSpace(item.ContratID),
			ClientID:      strings.TrimSpace(item.ClientID),
			SocieteID:     strings.TrimSpace(item.SocieteID),
			ReferenceDate: referenceDate,
		})
	}

	resp, err := s.planner.CalculatePlannedDatesBatch(c.Request.Context(), plannerdomain.BatchRequest{
		OrganisationID: organisationID(c, req.OrganisationID),
		Items:          items,
		TargetMonth:    req.TargetMonth,
		TargetYear:     req.TargetYear,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newBatchResponse(resp)})
}

func (s *Server) CheckDateEligibility(c *gin.Context) {
	var query struct {
		OrganisationID string `form:"organisation_id"`
		Date           string `form:"date"`
		HolidayZoneID  string `form:"holiday_zone_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date, err := caldate.Parse(query.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be YYYY-MM-DD"))
		return
	}

	resp, err := s.planner.CheckDateEligibility(c.Request.Context(), plannerdomain.EligibilityRequest{
		OrganisationID: organisationID(c, query.OrganisationID),
		Date:           date,
		HolidayZoneID:  strings.TrimSpace(query.HolidayZoneID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": eligibilityResponse{
		Date:                 caldate.Format(resp.Date),
		IsEligible:           resp.IsEligible,
		IsWeekend:            resp.IsWeekend,
		IsHoliday:            resp.IsHoliday,
		HolidayName:          resp.HolidayName,
		NextEligibleDate:     caldate.Format(resp.NextEligibleDate),
		PreviousEligibleDate: caldate.Format(resp.PreviousEligibleDate),
	}})
}

func parseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, err := caldate.Parse(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
