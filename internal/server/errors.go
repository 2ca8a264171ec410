package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	plannerdomain "github.com/smallbiznis/debitplan/internal/planner/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Code:    string(plannerdomain.CodeInvalidRequest),
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	code := plannerdomain.ErrorCode(err)
	switch {
	case code == plannerdomain.CodeInvalidRequest:
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Code:    string(code),
			Message: validationMessage(err),
		}
	case plannerdomain.IsConfigurationError(code):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "configuration_error",
			Code:    string(code),
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Code:    string(plannerdomain.CodeInternal),
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

// validationMessage drops the PlanningError prefix so clients see only what was wrong.
func validationMessage(err error) string {
	var pErr *plannerdomain.PlanningError
	if errors.As(err, &pErr) && pErr.Err != nil {
		err = pErr.Err
	}
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 && strings.HasPrefix(msg, plannerdomain.ErrInvalidRequest.Error()) {
		return msg[i+2:]
	}
	return msg
}

func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	if asValidationErrors(err) != nil {
		return "validation_error", string(plannerdomain.CodeInvalidRequest)
	}
	_, payload := mapError(err)
	return payload.Type, payload.Code
}
