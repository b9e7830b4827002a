package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/dto"
	"github.com/finworks/erp_financials_api/internal/middleware"
)

// accountBalanceHandler handles HTTP requests for analytical balances.
type accountBalanceHandler struct {
	balanceSvc portssvc.AccountBalanceSvcFacade
}

func newAccountBalanceHandler(balanceSvc portssvc.AccountBalanceSvcFacade) *accountBalanceHandler {
	return &accountBalanceHandler{balanceSvc: balanceSvc}
}

func registerAccountBalanceRoutes(rg *gin.RouterGroup, balanceSvc portssvc.AccountBalanceSvcFacade) {
	h := newAccountBalanceHandler(balanceSvc)
	rg.GET("/account-balances", h.listAccountBalances)
}

// listAccountBalances lists aggregated balances with cursor pagination.
func (h *accountBalanceHandler) listAccountBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var filter dto.AccountBalanceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}
	var params dto.ListAccountBalancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	balances, err := h.balanceSvc.ListBalances(c.Request.Context(), filter, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list account balances")
		return
	}
	c.JSON(http.StatusOK, balances)
}
