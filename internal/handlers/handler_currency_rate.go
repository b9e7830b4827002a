package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/dto"
	"github.com/finworks/erp_financials_api/internal/middleware"
)

// currencyRateHandler handles HTTP requests for published exchange rates.
type currencyRateHandler struct {
	rateSvc portssvc.CurrencyRateSvcFacade
}

func newCurrencyRateHandler(rateSvc portssvc.CurrencyRateSvcFacade) *currencyRateHandler {
	return &currencyRateHandler{rateSvc: rateSvc}
}

func registerCurrencyRateRoutes(rg *gin.RouterGroup, rateSvc portssvc.CurrencyRateSvcFacade) {
	h := newCurrencyRateHandler(rateSvc)
	rg.GET("/currency-rates", h.listCurrencyRates)
}

// listCurrencyRates lists published rates, newest first.
func (h *currencyRateHandler) listCurrencyRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var filter dto.CurrencyRateFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}
	var params dto.ListCurrencyRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	rates, err := h.rateSvc.ListRates(c.Request.Context(), filter, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list currency rates")
		return
	}
	c.JSON(http.StatusOK, rates)
}
