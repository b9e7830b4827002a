package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateType selects which published rate series a conversion uses.
type RateType int

const (
	RateTypeDaily   RateType = 1
	RateTypeMonthly RateType = 2
	RateTypeAverage RateType = 3
)

// CurrencyRate is the resolved conversion between the transaction currency
// and one ledger's currency on a given date.
type CurrencyRate struct {
	Ledger              string
	SourceCurrency      string
	DestinationCurrency string
	Rate                decimal.Decimal // multiplier
	Divisor             decimal.Decimal
	RateDate            time.Time
	RateType            RateType
}

// Convert applies the rate's multiplier/divisor pair to an amount in the
// source currency.
func (r CurrencyRate) Convert(amount decimal.Decimal) decimal.Decimal {
	divisor := r.Divisor
	if divisor.IsZero() {
		divisor = decimal.NewFromInt(1)
	}
	rate := r.Rate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	return amount.Mul(rate).Div(divisor)
}
