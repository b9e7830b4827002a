package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/finworks/erp_financials_api/internal/core/domain"
)

// JournalEntryReader defines read operations for committed journal entries.
type JournalEntryReader interface {
	// FindByTypeAndNumber retrieves one journal entry with its lines and
	// analytical lines by natural key.
	FindByTypeAndNumber(ctx context.Context, journalEntryType, journalEntryNumber string) (*domain.JournalEntry, error)

	// FindLatestByNumber retrieves the journal entry with the given number
	// regardless of type, preferring the highest-sorting type.
	FindLatestByNumber(ctx context.Context, journalEntryNumber string) (*domain.JournalEntry, error)

	// FindStatus retrieves only the natural key and status of an entry.
	FindStatus(ctx context.Context, journalEntryNumber string) (*domain.JournalEntry, error)
}

// JournalEntryWriter defines the ordered insert operations of the atomic
// persistence step. All writes happen on the supplied transaction; keys are
// pre-allocated by the caller, never generated by cascades.
type JournalEntryWriter interface {
	// InsertJournalEntry inserts the header, its lines and their analytical
	// lines in order.
	InsertJournalEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// InsertOpenItems inserts the open items of a freshly created entry.
	InsertOpenItems(ctx context.Context, tx pgx.Tx, items []domain.OpenItem) error

	// InsertOpenItemArchives inserts the archive mirrors of created open items.
	InsertOpenItemArchives(ctx context.Context, tx pgx.Tx, archives []domain.OpenItemArchive) error
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces.
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalEntryRepositoryWithTx extends the facade with transaction capabilities.
type JournalEntryRepositoryWithTx interface {
	JournalEntryRepositoryFacade
	TransactionManager
}
