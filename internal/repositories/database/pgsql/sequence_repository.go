package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
)

// PgxSequenceRepository issues counters from plain tables so allocations
// roll back with the surrounding transaction. Plain Postgres sequences are
// not used: a rolled-back entry must not burn document numbers.
type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextValue returns the next integer of the named sequence. The upsert
// locks the counter row for the rest of the transaction.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, tx pgx.Tx, sequenceName string) (int64, error) {
	query := `
		INSERT INTO sequence_counters (name, value)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequence_counters.value + 1
		RETURNING value;
	`
	var value int64
	if err := tx.QueryRow(ctx, query, sequenceName).Scan(&value); err != nil {
		return 0, translateTxError("failed to advance sequence "+sequenceName, err)
	}
	return value, nil
}

// NextDocumentNumber returns the next formatted document number for the
// counter scoped by company, site, year and journal. The format is
// <journal><yy><site>-<seq> padded to eight digits.
func (r *PgxSequenceRepository) NextDocumentNumber(ctx context.Context, tx pgx.Tx, counter, company, site string, accountingDate time.Time, journal string) (string, error) {
	year := accountingDate.Year()
	query := `
		INSERT INTO document_counters (counter, company, site, year, journal, value)
		VALUES ($1, $2, $3, $4, $5, 1)
		ON CONFLICT (counter, company, site, year, journal)
		DO UPDATE SET value = document_counters.value + 1
		RETURNING value;
	`
	var value int64
	if err := tx.QueryRow(ctx, query, counter, company, site, year, journal).Scan(&value); err != nil {
		return "", translateTxError("failed to advance document counter "+counter, err)
	}

	return fmt.Sprintf("%s%02d%s-%08d", journal, year%100, site, value), nil
}
