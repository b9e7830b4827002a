package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/middleware"
)

// masterDataHandler exposes the read-only reference lookups.
type masterDataHandler struct {
	masterDataSvc portssvc.MasterDataSvcFacade
}

func newMasterDataHandler(masterDataSvc portssvc.MasterDataSvcFacade) *masterDataHandler {
	return &masterDataHandler{masterDataSvc: masterDataSvc}
}

func registerMasterDataRoutes(rg *gin.RouterGroup, masterDataSvc portssvc.MasterDataSvcFacade) {
	h := newMasterDataHandler(masterDataSvc)
	rg.GET("/sites", h.listSites)
	rg.GET("/dimension-types", h.listDimensionTypes)
}

// listSites returns every configured site.
func (h *masterDataHandler) listSites(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sites, err := h.masterDataSvc.ListSites(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list sites")
		return
	}

	type siteResponse struct {
		Code        string `json:"code"`
		Description string `json:"description,omitempty"`
		Company     string `json:"company"`
	}
	out := make([]siteResponse, 0, len(sites))
	for _, site := range sites {
		out = append(out, siteResponse{Code: site.Code, Description: site.Description, Company: site.Company})
	}
	c.JSON(http.StatusOK, gin.H{"sites": out})
}

// listDimensionTypes returns the configured dimension types with their
// semantic field names and storage slots.
func (h *masterDataHandler) listDimensionTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	types, err := h.masterDataSvc.ListDimensionTypes(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list dimension types")
		return
	}

	type dimensionTypeResponse struct {
		Field       string `json:"field"`
		Code        string `json:"code"`
		FieldNumber int    `json:"fieldNumber"`
	}
	out := make([]dimensionTypeResponse, 0, len(types))
	for _, config := range types {
		out = append(out, dimensionTypeResponse{Field: config.Field, Code: config.Code, FieldNumber: config.FieldNumber})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FieldNumber < out[j].FieldNumber })
	c.JSON(http.StatusOK, gin.H{"dimensionTypes": out})
}
