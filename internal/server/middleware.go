package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/debitplan/internal/observability/context"
)

const (
	HeaderOrg       = "X-Org-ID"
	contextOrgIDKey = "organisation_id"
)

// OrgContext takes the organisation from the X-Org-ID header, when present, so
// request bodies may omit it.
func OrgContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := strings.TrimSpace(c.GetHeader(HeaderOrg))
		if orgID != "" {
			c.Set(contextOrgIDKey, orgID)
			c.Request = c.Request.WithContext(obscontext.WithOrgID(c.Request.Context(), orgID))
		}
		c.Next()
	}
}

// organisationID prefers the explicit value, then the header.
func organisationID(c *gin.Context, explicit string) string {
	if v := strings.TrimSpace(explicit); v != "" {
		if c.GetString(contextOrgIDKey) == "" {
			c.Request = c.Request.WithContext(obscontext.WithOrgID(c.Request.Context(), v))
		}
		return v
	}
	return c.GetString(contextOrgIDKey)
}
