package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository off one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		JournalEntryRepo:   newPgxJournalEntryRepository(dbPool),
		MasterDataRepo:     newPgxMasterDataRepository(dbPool),
		DimensionRepo:      newPgxDimensionRepository(dbPool),
		CurrencyRateRepo:   newPgxCurrencyRateRepository(dbPool),
		SequenceRepo:       newPgxSequenceRepository(dbPool),
		ApiCredentialRepo:  newPgxApiCredentialRepository(dbPool),
		AccountBalanceRepo: newPgxAccountBalanceRepository(dbPool),
	}
}
