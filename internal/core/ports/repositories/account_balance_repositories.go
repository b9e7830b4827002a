package repositories

import (
	"context"

	"github.com/finworks/erp_financials_api/internal/core/domain"
	"github.com/finworks/erp_financials_api/internal/dto"
)

// AccountBalanceReader lists aggregated analytical balances.
type AccountBalanceReader interface {
	// ListBalances returns balance rows matching the filter in stable
	// (company, site, fiscalYear, ledger, account, partner, dimension, row)
	// order, starting after the cursor row ID when given.
	ListBalances(ctx context.Context, filter dto.AccountBalanceFilter, afterRowID *int64, limit int) ([]domain.AnalyticalBalance, error)
}
