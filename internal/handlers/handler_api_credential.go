package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/dto"
	"github.com/finworks/erp_financials_api/internal/middleware"
)

// apiCredentialHandler handles credential issuance and retrieval. These
// routes authenticate by login/password in the body, not by app key, so
// they live outside the credential-protected group.
type apiCredentialHandler struct {
	credentialSvc portssvc.ApiCredentialSvcFacade
}

func newApiCredentialHandler(credentialSvc portssvc.ApiCredentialSvcFacade) *apiCredentialHandler {
	return &apiCredentialHandler{credentialSvc: credentialSvc}
}

func registerApiCredentialRoutes(r *gin.Engine, credentialSvc portssvc.ApiCredentialSvcFacade) {
	h := newApiCredentialHandler(credentialSvc)
	credentials := r.Group("/api/credentials")
	{
		credentials.POST("", h.createCredentials)
		credentials.POST("/retrieve", h.getCredentials)
	}
}

// createCredentials issues a fresh client ID, app key and app secret for a
// login that holds none yet.
func (h *apiCredentialHandler) createCredentials(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var createReq dto.CreateApiCredentialRequest
	if err := c.ShouldBindJSON(&createReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	credentials, err := h.credentialSvc.Create(c.Request.Context(), createReq)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create credentials")
		return
	}

	logger.Info("API credentials issued", slog.String("login", createReq.Login))
	c.JSON(http.StatusCreated, credentials)
}

// getCredentials returns the existing credentials of a login. POST keeps
// the password out of URLs and access logs.
func (h *apiCredentialHandler) getCredentials(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var getReq dto.GetApiCredentialRequest
	if err := c.ShouldBindJSON(&getReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	credentials, err := h.credentialSvc.Get(c.Request.Context(), getReq)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve credentials")
		return
	}
	c.JSON(http.StatusOK, credentials)
}
