package repositories

import (
	"context"
	"time"

	"github.com/finworks/erp_financials_api/internal/core/domain"
)

// CurrencyRateReader resolves conversion rates.
type CurrencyRateReader interface {
	// FindRatesForLedgers returns one rate per ledger converting
	// sourceCurrency into the ledger's currency on date, using the given
	// rate series. Ledgers whose currency equals sourceCurrency get a 1/1
	// rate; ledgers with no published rate are absent from the result.
	FindRatesForLedgers(ctx context.Context, ledgers []domain.Ledger, sourceCurrency string, date time.Time, rateType domain.RateType) ([]domain.CurrencyRate, error)

	// ListRates returns published rates matching the filter, newest first,
	// using cursor pagination.
	ListRates(ctx context.Context, sourceCurrency, destinationCurrency string, before *time.Time, limit int) ([]domain.CurrencyRate, error)
}
