package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
)

// Header names of the app-key credential scheme.
const (
	AppKeyHeader   = "X-App-Key"
	ClientIDHeader = "X-Client-Id"
)

// CredentialAuth authenticates requests against active API credentials.
// Requests without both headers, or with no matching active credential,
// are rejected.
func CredentialAuth(credentialSvc portssvc.ApiCredentialSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		appKey := c.GetHeader(AppKeyHeader)
		clientID := c.GetHeader(ClientIDHeader)

		if appKey == "" || clientID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing API credentials"})
			return
		}

		credential, err := credentialSvc.FindActiveCredential(c.Request.Context(), appKey, clientID)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Credential lookup failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during authentication"})
			return
		}
		if credential == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API credentials"})
			return
		}

		c.Request = c.Request.WithContext(WithCurrentUser(c.Request.Context(), credential.Login))
		c.Next()
	}
}
