package domain

import "github.com/shopspring/decimal"

// AnalyticalBalance is one aggregated balance row per ledger, account,
// business partner and first dimension.
type AnalyticalBalance struct {
	RowID           int64
	Company         string
	Site            string
	FiscalYear      int
	Ledger          string
	Account         string
	BusinessPartner string
	Dimension1      string
	Currency        string
	DebitAmount     decimal.Decimal
	CreditAmount    decimal.Decimal
}

// NetAmount is the debit-minus-credit balance of the row.
func (b AnalyticalBalance) NetAmount() decimal.Decimal {
	return b.DebitAmount.Sub(b.CreditAmount)
}
