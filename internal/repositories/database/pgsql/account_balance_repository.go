package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
	"github.com/finworks/erp_financials_api/internal/dto"
)

// PgxAccountBalanceRepository lists aggregated analytical balances from the
// balances rollup table.
type PgxAccountBalanceRepository struct {
	BaseRepository
}

func newPgxAccountBalanceRepository(pool *pgxpool.Pool) portsrepo.AccountBalanceReader {
	return &PgxAccountBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountBalanceReader = (*PgxAccountBalanceRepository)(nil)

// ListBalances returns balance rows matching the filter in stable row_id
// order, starting after the cursor when given.
func (r *PgxAccountBalanceRepository) ListBalances(ctx context.Context, filter dto.AccountBalanceFilter, afterRowID *int64, limit int) ([]domain.AnalyticalBalance, error) {
	query := `
		SELECT row_id, company, site, fiscal_year, ledger, account,
			business_partner, dimension_1, currency, debit_amount, credit_amount
		FROM account_balances
		WHERE ($1 = '' OR company = $1)
			AND ($2 = '' OR site = $2)
			AND ($3 = 0 OR fiscal_year = $3)
			AND ($4 = '' OR ledger = $4)
			AND ($5 = '' OR account = $5)
			AND ($6 = '' OR dimension_1 = $6)
			AND ($7::bigint IS NULL OR row_id > $7)
		ORDER BY row_id
		LIMIT $8;
	`
	rows, err := r.Pool.Query(ctx, query,
		filter.Company, filter.Site, filter.FiscalYear, filter.Ledger,
		filter.Account, filter.Fixture, afterRowID, limit,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account balances", err)
	}
	defer rows.Close()

	var balances []domain.AnalyticalBalance
	for rows.Next() {
		var balance domain.AnalyticalBalance
		if err := rows.Scan(
			&balance.RowID, &balance.Company, &balance.Site, &balance.FiscalYear,
			&balance.Ledger, &balance.Account, &balance.BusinessPartner,
			&balance.Dimension1, &balance.Currency, &balance.DebitAmount, &balance.CreditAmount,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account balance", err)
		}
		balances = append(balances, balance)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read account balances", err)
	}
	return balances, nil
}
