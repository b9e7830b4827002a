package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRateFilter narrows the exchange rate listing.
type CurrencyRateFilter struct {
	SourceCurrency      string     `form:"sourceCurrency" json:"sourceCurrency,omitempty"`
	DestinationCurrency string     `form:"destinationCurrency" json:"destinationCurrency,omitempty"`
	RateDate            *time.Time `form:"rateDate" json:"rateDate,omitempty"`
}

// ListCurrencyRatesParams carries pagination for the rate listing.
type ListCurrencyRatesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// CurrencyRateResponse is one published conversion rate.
type CurrencyRateResponse struct {
	SourceCurrency      string          `json:"sourceCurrency"`
	DestinationCurrency string          `json:"destinationCurrency"`
	RateDate            time.Time       `json:"rateDate"`
	Rate                decimal.Decimal `json:"rate"`
	Divisor             decimal.Decimal `json:"divisor"`
}

// ListCurrencyRatesResponse is the paginated rate listing envelope.
type ListCurrencyRatesResponse struct {
	Rates     []CurrencyRateResponse `json:"rates"`
	NextToken *string                `json:"nextToken,omitempty"`
}
