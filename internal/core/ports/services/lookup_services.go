package services

import (
	"context"

	"github.com/finworks/erp_financials_api/internal/core/domain"
	"github.com/finworks/erp_financials_api/internal/dto"
)

// AccountBalanceSvcFacade exposes the analytical balance listing.
type AccountBalanceSvcFacade interface {
	ListBalances(ctx context.Context, filter dto.AccountBalanceFilter, params dto.ListAccountBalancesParams) (*dto.ListAccountBalancesResponse, error)
}

// CurrencyRateSvcFacade exposes published exchange-rate lookups.
type CurrencyRateSvcFacade interface {
	ListRates(ctx context.Context, filter dto.CurrencyRateFilter, params dto.ListCurrencyRatesParams) (*dto.ListCurrencyRatesResponse, error)
}

// MasterDataSvcFacade exposes the read-only reference lookups.
type MasterDataSvcFacade interface {
	ListSites(ctx context.Context) ([]domain.Site, error)
	ListDimensionTypes(ctx context.Context) (map[string]domain.DimensionTypeConfig, error)
}
