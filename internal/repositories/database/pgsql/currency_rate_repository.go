package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
)

// PgxCurrencyRateRepository resolves published conversion rates.
type PgxCurrencyRateRepository struct {
	BaseRepository
}

func newPgxCurrencyRateRepository(pool *pgxpool.Pool) portsrepo.CurrencyRateReader {
	return &PgxCurrencyRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyRateReader = (*PgxCurrencyRateRepository)(nil)

// FindRatesForLedgers resolves one rate per ledger for the conversion from
// sourceCurrency into the ledger's currency on date. Same-currency ledgers
// get a synthetic 1/1 rate; ledgers with no published rate are skipped.
func (r *PgxCurrencyRateRepository) FindRatesForLedgers(ctx context.Context, ledgers []domain.Ledger, sourceCurrency string, date time.Time, rateType domain.RateType) ([]domain.CurrencyRate, error) {
	// Latest published rate on or before the rate date.
	query := `
		SELECT rate, divisor, rate_date
		FROM currency_rates
		WHERE source_currency = $1 AND destination_currency = $2
			AND rate_type = $3 AND rate_date <= $4
		ORDER BY rate_date DESC
		LIMIT 1;
	`

	one := decimal.NewFromInt(1)
	rates := make([]domain.CurrencyRate, 0, len(ledgers))
	for _, ledger := range ledgers {
		if ledger.Currency == sourceCurrency {
			rates = append(rates, domain.CurrencyRate{
				Ledger:              ledger.Code,
				SourceCurrency:      sourceCurrency,
				DestinationCurrency: ledger.Currency,
				Rate:                one,
				Divisor:             one,
				RateDate:            date,
				RateType:            rateType,
			})
			continue
		}

		rate := domain.CurrencyRate{
			Ledger:              ledger.Code,
			SourceCurrency:      sourceCurrency,
			DestinationCurrency: ledger.Currency,
			RateType:            rateType,
		}
		err := r.Pool.QueryRow(ctx, query, sourceCurrency, ledger.Currency, int(rateType), date).
			Scan(&rate.Rate, &rate.Divisor, &rate.RateDate)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to query rate for ledger "+ledger.Code, err)
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

// ListRates returns published rates matching the filter, newest first.
func (r *PgxCurrencyRateRepository) ListRates(ctx context.Context, sourceCurrency, destinationCurrency string, before *time.Time, limit int) ([]domain.CurrencyRate, error) {
	query := `
		SELECT source_currency, destination_currency, rate, divisor, rate_date, rate_type
		FROM currency_rates
		WHERE ($1 = '' OR source_currency = $1)
			AND ($2 = '' OR destination_currency = $2)
			AND ($3::timestamptz IS NULL OR rate_date < $3)
		ORDER BY rate_date DESC, source_currency, destination_currency
		LIMIT $4;
	`
	rows, err := r.Pool.Query(ctx, query, sourceCurrency, destinationCurrency, before, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query currency rates", err)
	}
	defer rows.Close()

	var rates []domain.CurrencyRate
	for rows.Next() {
		var rate domain.CurrencyRate
		var rateType int
		if err := rows.Scan(&rate.SourceCurrency, &rate.DestinationCurrency, &rate.Rate, &rate.Divisor, &rate.RateDate, &rateType); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency rate", err)
		}
		rate.RateType = domain.RateType(rateType)
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read currency rates", err)
	}
	return rates, nil
}
