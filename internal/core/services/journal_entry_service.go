package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/dto"
	"github.com/finworks/erp_financials_api/internal/middleware"
)

// Sequence and counter names of the persistence step.
const (
	lineCounterSequence    = "SEQ_GACCENTRYD"
	archiveCounterSequence = "SEQ_HISTODUD"
	defaultDocumentCounter = "GEN"
)

// journalEntryService orchestrates validation, key allocation and the
// atomic persistence of journal entries.
type journalEntryService struct {
	journalRepo  portsrepo.JournalEntryRepositoryWithTx
	sequenceRepo portsrepo.SequenceRepository
	validator    portssvc.JournalEntryValidatorSvc
}

// NewJournalEntryService creates the journal-entry service facade.
func NewJournalEntryService(
	journalRepo portsrepo.JournalEntryRepositoryWithTx,
	sequenceRepo portsrepo.SequenceRepository,
	validator portssvc.JournalEntryValidatorSvc,
) portssvc.JournalEntrySvcFacade {
	return &journalEntryService{
		journalRepo:  journalRepo,
		sequenceRepo: sequenceRepo,
		validator:    validator,
	}
}

var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

// Create validates the input, then persists the header, lines, analytical
// lines, open items and archives in one serializable transaction. The
// committed entry is re-read after commit so the response reflects exactly
// what was stored.
func (s *journalEntryService) Create(ctx context.Context, input dto.CreateJournalEntryRequest) (*dto.JournalEntryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryCtx, err := s.validator.Validate(ctx, input)
	if err != nil {
		return nil, err
	}

	currentUser, ok := middleware.GetCurrentUserFromCtx(ctx)
	if !ok {
		currentUser = domain.DefaultUser
	}
	isSimplified := middleware.IsSimplifiedViewFromCtx(ctx)
	now := time.Now().UTC()

	tx, err := s.journalRepo.BeginSerializable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = s.journalRepo.Rollback(ctx, tx) }()

	uniqueNumbers := make([]int64, len(entryCtx.Lines))
	for i := range entryCtx.Lines {
		uniqueNumbers[i], err = s.sequenceRepo.NextValue(ctx, tx, lineCounterSequence)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate line counter: %w", err)
		}
	}

	header, openItems, err := BuildJournalEntryPayloads(entryCtx, uniqueNumbers, currentUser, now)
	if err != nil {
		return nil, err
	}

	archiveIDs := make([]int64, len(openItems))
	for i := range openItems {
		archiveIDs[i], err = s.sequenceRepo.NextValue(ctx, tx, archiveCounterSequence)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate archive identifier: %w", err)
		}
	}
	archives, err := BuildOpenItemArchivePayloads(openItems, archiveIDs, currentUser, now)
	if err != nil {
		return nil, err
	}

	counter := entryCtx.DocumentType.SequenceNumber
	if counter == "" {
		counter = defaultDocumentCounter
	}
	documentNumber, err := s.sequenceRepo.NextDocumentNumber(ctx, tx,
		counter, entryCtx.Company, entryCtx.Site, entryCtx.AccountingDate, entryCtx.DocumentType.DefaultJournal)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate document number: %w", err)
	}

	header.JournalEntryNumber = documentNumber
	for i := range header.Lines {
		header.Lines[i].JournalEntryNumber = documentNumber
		for j := range header.Lines[i].Analytics {
			header.Lines[i].Analytics[j].JournalEntryNumber = documentNumber
		}
	}
	for i := range openItems {
		openItems[i].DocumentNumber = documentNumber
	}
	for i := range archives {
		archives[i].Document = documentNumber
	}

	if err := s.journalRepo.InsertJournalEntry(ctx, tx, *header); err != nil {
		return nil, fmt.Errorf("failed to insert journal entry %s: %w", documentNumber, err)
	}
	if err := s.journalRepo.InsertOpenItems(ctx, tx, openItems); err != nil {
		return nil, fmt.Errorf("failed to insert open items of %s: %w", documentNumber, err)
	}
	if err := s.journalRepo.InsertOpenItemArchives(ctx, tx, archives); err != nil {
		return nil, fmt.Errorf("failed to insert open item archives of %s: %w", documentNumber, err)
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit journal entry %s: %w", documentNumber, err)
	}

	logger.Info("Journal entry created",
		slog.String("document_type", header.JournalEntryType),
		slog.String("document_number", documentNumber),
		slog.Int("lines", len(header.Lines)),
		slog.Int("open_items", len(openItems)),
	)

	committed, err := s.journalRepo.FindByTypeAndNumber(ctx, header.JournalEntryType, documentNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read journal entry %s: %w", documentNumber, err)
	}
	if committed == nil {
		return nil, fmt.Errorf("%w: journal entry %s vanished after commit", apperrors.ErrInternal, documentNumber)
	}

	return mapJournalEntryToResponse(committed, isSimplified), nil
}

// GetByNumber retrieves a committed entry. An empty documentType matches
// the latest entry carrying the number.
func (s *journalEntryService) GetByNumber(ctx context.Context, documentType, number string) (*dto.JournalEntryResponse, error) {
	var (
		entry *domain.JournalEntry
		err   error
	)
	if documentType == "" {
		entry, err = s.journalRepo.FindLatestByNumber(ctx, number)
	} else {
		entry, err = s.journalRepo.FindByTypeAndNumber(ctx, documentType, number)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve journal entry %s: %w", number, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: journal entry %s not found", apperrors.ErrNotFound, number)
	}

	return mapJournalEntryToResponse(entry, middleware.IsSimplifiedViewFromCtx(ctx)), nil
}

// GetStatus retrieves only the lifecycle status of an entry.
func (s *journalEntryService) GetStatus(ctx context.Context, number string) (*dto.JournalEntryStatusResponse, error) {
	entry, err := s.journalRepo.FindStatus(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve journal entry status %s: %w", number, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: journal entry %s not found", apperrors.ErrNotFound, number)
	}

	return &dto.JournalEntryStatusResponse{
		JournalEntryType:   entry.JournalEntryType,
		JournalEntryNumber: entry.JournalEntryNumber,
		JournalEntryStatus: journalStatusLabel(entry.JournalEntryStatus),
	}, nil
}
