package dto

import "github.com/shopspring/decimal"

// AccountBalanceFilter narrows the analytical balance listing. Every field
// is an exact-match filter; empty fields are ignored.
type AccountBalanceFilter struct {
	Company    string `form:"company" json:"company,omitempty"`
	Site       string `form:"site" json:"site,omitempty"`
	FiscalYear int    `form:"fiscalYear" json:"fiscalYear,omitempty"`
	Ledger     string `form:"ledger" json:"ledger,omitempty"`
	Account    string `form:"account" json:"account,omitempty"`
	Fixture    string `form:"fixture" json:"fixture,omitempty"`
}

// ListAccountBalancesParams carries pagination for the balance listing.
type ListAccountBalancesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// AccountBalanceResponse is one aggregated balance row.
type AccountBalanceResponse struct {
	Company         string          `json:"company"`
	Site            string          `json:"site"`
	FiscalYear      int             `json:"fiscalYear"`
	Ledger          string          `json:"ledger"`
	Account         string          `json:"account"`
	BusinessPartner string          `json:"businessPartner,omitempty"`
	Fixture         string          `json:"fixture,omitempty"`
	Currency        string          `json:"currency"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	NetAmount       decimal.Decimal `json:"netAmount"`
}

// ListAccountBalancesResponse is the paginated balance listing envelope.
type ListAccountBalancesResponse struct {
	Balances  []AccountBalanceResponse `json:"balances"`
	NextToken *string                  `json:"nextToken,omitempty"`
}
