package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// SequenceRepository issues monotonically-unique counters. Both methods
// must be called on the same transaction as the write they number, so a
// rollback never leaks an allocated value into a committed row.
type SequenceRepository interface {
	// NextValue returns the next integer of the named sequence.
	NextValue(ctx context.Context, tx pgx.Tx, sequenceName string) (int64, error)

	// NextDocumentNumber returns the next formatted document number for the
	// counter scoped by company, site, accounting date and journal.
	NextDocumentNumber(ctx context.Context, tx pgx.Tx, counter, company, site string, accountingDate time.Time, journal string) (string, error)
}
