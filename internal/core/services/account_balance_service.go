package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/dto"
	"github.com/finworks/erp_financials_api/internal/utils/pagination"
)

const (
	defaultBalancePageSize = 50
	maxBalancePageSize     = 500
)

// accountBalanceService lists aggregated analytical balances with cursor
// pagination.
type accountBalanceService struct {
	balanceRepo portsrepo.AccountBalanceReader
}

// NewAccountBalanceService creates the balance listing facade.
func NewAccountBalanceService(balanceRepo portsrepo.AccountBalanceReader) portssvc.AccountBalanceSvcFacade {
	return &accountBalanceService{balanceRepo: balanceRepo}
}

var _ portssvc.AccountBalanceSvcFacade = (*accountBalanceService)(nil)

func (s *accountBalanceService) ListBalances(ctx context.Context, filter dto.AccountBalanceFilter, params dto.ListAccountBalancesParams) (*dto.ListAccountBalancesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultBalancePageSize
	}
	if limit > maxBalancePageSize {
		limit = maxBalancePageSize
	}

	var afterRowID *int64
	if params.NextToken != nil && *params.NextToken != "" {
		rowID, err := pagination.DecodeRowIDToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		afterRowID = &rowID
	}

	filter.Company = strings.ToUpper(filter.Company)
	filter.Site = strings.ToUpper(filter.Site)
	filter.Ledger = strings.ToUpper(filter.Ledger)
	filter.Account = strings.ToUpper(filter.Account)
	filter.Fixture = strings.ToUpper(filter.Fixture)

	// Fetch one extra row to detect whether another page exists.
	rows, err := s.balanceRepo.ListBalances(ctx, filter, afterRowID, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to list account balances: %w", err)
	}

	response := &dto.ListAccountBalancesResponse{
		Balances: make([]dto.AccountBalanceResponse, 0, len(rows)),
	}
	if len(rows) > limit {
		rows = rows[:limit]
		token := pagination.EncodeRowIDToken(rows[len(rows)-1].RowID)
		response.NextToken = &token
	}

	for _, row := range rows {
		response.Balances = append(response.Balances, dto.AccountBalanceResponse{
			Company:         row.Company,
			Site:            row.Site,
			FiscalYear:      row.FiscalYear,
			Ledger:          row.Ledger,
			Account:         row.Account,
			BusinessPartner: row.BusinessPartner,
			Fixture:         row.Dimension1,
			Currency:        row.Currency,
			DebitAmount:     row.DebitAmount,
			CreditAmount:    row.CreditAmount,
			NetAmount:       row.NetAmount(),
		})
	}
	return response, nil
}
