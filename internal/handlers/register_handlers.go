package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/middleware"
	"github.com/finworks/erp_financials_api/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerHomeRoutes(r)

	// Credential issuance authenticates by login/password, so it sits
	// outside the app-key-protected group.
	registerApiCredentialRoutes(r, services.ApiCredential)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// entity route registrations.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1",
		middleware.CredentialAuth(services.ApiCredential),
		middleware.RequestContextMiddleware(),
	)

	registerJournalEntryRoutes(v1, services.JournalEntry)
	registerAccountBalanceRoutes(v1, services.AccountBalance)
	registerCurrencyRateRoutes(v1, services.CurrencyRate)
	registerMasterDataRoutes(v1, services.MasterData)
}
