package services

import (
	"context"

	"github.com/finworks/erp_financials_api/internal/core/domain"
	"github.com/finworks/erp_financials_api/internal/dto"
)

// JournalEntryValidatorSvc runs the validation pipeline, producing the
// ledger-resolved context a valid input persists from.
type JournalEntryValidatorSvc interface {
	Validate(ctx context.Context, input dto.CreateJournalEntryRequest) (*domain.JournalEntryContext, error)
}

// JournalEntrySvcFacade exposes the journal-entry operations.
type JournalEntrySvcFacade interface {
	// Create validates input and atomically persists the resulting entry
	// graph, returning the committed entry.
	Create(ctx context.Context, input dto.CreateJournalEntryRequest) (*dto.JournalEntryResponse, error)

	// GetByNumber retrieves a committed entry by document type and number.
	// An empty documentType matches the latest entry with that number.
	GetByNumber(ctx context.Context, documentType, number string) (*dto.JournalEntryResponse, error)

	// GetStatus retrieves only the status of an entry.
	GetStatus(ctx context.Context, number string) (*dto.JournalEntryStatusResponse, error)
}
