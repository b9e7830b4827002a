package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/dto"
	"github.com/finworks/erp_financials_api/internal/middleware"
)

// journalEntryHandler handles HTTP requests for journal entries.
type journalEntryHandler struct {
	journalEntrySvc portssvc.JournalEntrySvcFacade
}

func newJournalEntryHandler(journalEntrySvc portssvc.JournalEntrySvcFacade) *journalEntryHandler {
	return &journalEntryHandler{journalEntrySvc: journalEntrySvc}
}

func registerJournalEntryRoutes(rg *gin.RouterGroup, journalEntrySvc portssvc.JournalEntrySvcFacade) {
	h := newJournalEntryHandler(journalEntrySvc)
	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournalEntry)
		entries.GET("/:number", h.getJournalEntry)
		entries.GET("/:number/status", h.getJournalEntryStatus)
	}
}

// createJournalEntry validates and persists a journal entry.
func (h *journalEntryHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var createReq dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalEntrySvc.Create(c.Request.Context(), createReq)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created",
		slog.String("journal_entry_type", entry.JournalEntryType),
		slog.String("journal_entry_number", entry.JournalEntryNumber))
	c.JSON(http.StatusCreated, entry)
}

// getJournalEntry retrieves a committed entry by number. The optional
// documentType query narrows the lookup to one type.
func (h *journalEntryHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number := c.Param("number")
	documentType := c.Query("documentType")

	entry, err := h.journalEntrySvc.GetByNumber(c.Request.Context(), documentType, number)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// getJournalEntryStatus retrieves only the lifecycle status of an entry.
func (h *journalEntryHandler) getJournalEntryStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	number := c.Param("number")

	status, err := h.journalEntrySvc.GetStatus(c.Request.Context(), number)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve journal entry status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// respondWithError maps the error taxonomy onto HTTP statuses. Internal
// details are logged, never returned to the caller.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Concurrency conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "The operation conflicted with a concurrent change, please retry"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		logger.Warn("Unauthorized", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
