package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finworks/erp_financials_api/internal/core/domain"
)

// DimensionsInput carries the analytical dimension values of one line,
// keyed by semantic field name.
type DimensionsInput struct {
	Fixture    string `json:"fixture,omitempty"`
	Broker     string `json:"broker,omitempty"`
	Department string `json:"department,omitempty"`
	Location   string `json:"location,omitempty"`
	Type       string `json:"type,omitempty"`
	Product    string `json:"product,omitempty"`
	Analysis   string `json:"analysis,omitempty"`
}

// Fields returns the non-empty dimension values keyed by semantic field name.
func (d *DimensionsInput) Fields() map[string]string {
	if d == nil {
		return nil
	}
	out := make(map[string]string)
	for field, value := range map[string]string{
		"fixture":    d.Fixture,
		"broker":     d.Broker,
		"department": d.Department,
		"location":   d.Location,
		"type":       d.Type,
		"product":    d.Product,
		"analysis":   d.Analysis,
	} {
		if value != "" {
			out[field] = value
		}
	}
	return out
}

func (d *DimensionsInput) normalized() *DimensionsInput {
	if d == nil {
		return nil
	}
	return &DimensionsInput{
		Fixture:    strings.ToUpper(d.Fixture),
		Broker:     strings.ToUpper(d.Broker),
		Department: strings.ToUpper(d.Department),
		Location:   strings.ToUpper(d.Location),
		Type:       strings.ToUpper(d.Type),
		Product:    strings.ToUpper(d.Product),
		Analysis:   strings.ToUpper(d.Analysis),
	}
}

// JournalEntryLineInput is one debit/credit line of a journal entry request.
type JournalEntryLineInput struct {
	Account         string           `json:"account" binding:"required"`
	BusinessPartner string           `json:"businessPartner,omitempty"`
	TaxCode         string           `json:"taxCode,omitempty"`
	Site            string           `json:"site,omitempty"`
	Debit           *decimal.Decimal `json:"debit,omitempty"`
	Credit          *decimal.Decimal `json:"credit,omitempty"`
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	Dimensions      *DimensionsInput `json:"dimensions,omitempty"`
	LineDescription string           `json:"lineDescription,omitempty"`
	FreeReference   string           `json:"freeReference,omitempty"`
}

// CreateJournalEntryRequest is the caller-facing input of the create operation.
type CreateJournalEntryRequest struct {
	Site               string                  `json:"site" binding:"required"`
	DocumentType       string                  `json:"documentType" binding:"required"`
	SourceCurrency     string                  `json:"sourceCurrency" binding:"required"`
	AccountingDate     *time.Time              `json:"accountingDate,omitempty"`
	SourceDocument     string                  `json:"sourceDocument,omitempty"`
	SourceDocumentDate *time.Time              `json:"sourceDocumentDate,omitempty"`
	Reference          string                  `json:"reference,omitempty"`
	Description        string                  `json:"description,omitempty"`
	IsReversing        bool                    `json:"isReversing,omitempty"`
	ReversingDate      *time.Time              `json:"reversingDate,omitempty"`
	RateType           string                  `json:"rateType,omitempty"`
	RateDate           *time.Time              `json:"rateDate,omitempty"`
	Lines              []JournalEntryLineInput `json:"lines"`
}

// Normalized returns a copy with every code-like string field uppercased.
// Numeric and date fields are untouched, and the operation is idempotent.
func (r CreateJournalEntryRequest) Normalized() CreateJournalEntryRequest {
	out := r
	out.Site = strings.ToUpper(r.Site)
	out.DocumentType = strings.ToUpper(r.DocumentType)
	out.SourceCurrency = strings.ToUpper(r.SourceCurrency)
	out.SourceDocument = strings.ToUpper(r.SourceDocument)

	out.Lines = make([]JournalEntryLineInput, len(r.Lines))
	for i, line := range r.Lines {
		normalized := line
		normalized.Account = strings.ToUpper(line.Account)
		normalized.BusinessPartner = strings.ToUpper(line.BusinessPartner)
		normalized.TaxCode = strings.ToUpper(line.TaxCode)
		normalized.Site = strings.ToUpper(line.Site)
		normalized.Dimensions = line.Dimensions.normalized()
		out.Lines[i] = normalized
	}
	return out
}

// Validate runs the transport-level checks and returns every violation found.
// Business rules (balance, master data, dimensions) belong to the pipeline.
func (r CreateJournalEntryRequest) Validate() []string {
	var violations []string
	if strings.TrimSpace(r.Site) == "" {
		violations = append(violations, "site is required")
	}
	if strings.TrimSpace(r.DocumentType) == "" {
		violations = append(violations, "documentType is required")
	}
	if len(strings.TrimSpace(r.SourceCurrency)) != 3 {
		violations = append(violations, "sourceCurrency must be a 3-letter ISO code")
	}
	for i, line := range r.Lines {
		if strings.TrimSpace(line.Account) == "" {
			violations = append(violations, fmt.Sprintf("line #%d: account is required", i+1))
		}
	}
	return violations
}

// RateTypeOrDefault maps the request's rate type to its local-menu value,
// falling back to the document type's configured default.
func (r CreateJournalEntryRequest) RateTypeOrDefault(fallback domain.RateType) (domain.RateType, error) {
	switch r.RateType {
	case "":
		if fallback == 0 {
			return domain.RateTypeMonthly, nil
		}
		return fallback, nil
	case "dailyRate":
		return domain.RateTypeDaily, nil
	case "monthlyRate":
		return domain.RateTypeMonthly, nil
	case "averageRate":
		return domain.RateTypeAverage, nil
	default:
		return 0, fmt.Errorf("unknown rate type %q", r.RateType)
	}
}

// DimensionsOutput mirrors DimensionsInput on responses.
type DimensionsOutput struct {
	Fixture    string `json:"fixture,omitempty"`
	Broker     string `json:"broker,omitempty"`
	Department string `json:"department,omitempty"`
	Location   string `json:"location,omitempty"`
	Type       string `json:"type,omitempty"`
	Product    string `json:"product,omitempty"`
	Analysis   string `json:"analysis,omitempty"`
}

// JournalEntryAnalyticalLineResponse is the nested analytical detail of one line.
type JournalEntryAnalyticalLineResponse struct {
	AnalyticalLineNumber int              `json:"analyticalLineNumber"`
	LedgerTypeNumber     int              `json:"ledgerTypeNumber"`
	Site                 string           `json:"site,omitempty"`
	Dimensions           DimensionsOutput `json:"dimensions"`
	TransactionAmount    decimal.Decimal  `json:"transactionAmount"`
}

// JournalEntryLineResponse is one committed line in the output representation.
type JournalEntryLineResponse struct {
	LineNumber          int                                  `json:"lineNumber"`
	LedgerTypeNumber    int                                  `json:"ledgerTypeNumber"`
	Ledger              string                               `json:"ledger"`
	Site                string                               `json:"site,omitempty"`
	AccountingDate      time.Time                            `json:"accountingDate"`
	ChartOfAccounts     string                               `json:"chartOfAccounts,omitempty"`
	ControlAccount      string                               `json:"controlAccount,omitempty"`
	Account             string                               `json:"account"`
	BusinessPartner     string                               `json:"businessPartner,omitempty"`
	DebitOrCredit       string                               `json:"debitOrCredit"`
	TransactionCurrency string                               `json:"transactionCurrency"`
	TransactionAmount   decimal.Decimal                      `json:"transactionAmount"`
	LedgerCurrency      string                               `json:"ledgerCurrency"`
	LedgerAmount        decimal.Decimal                      `json:"ledgerAmount"`
	LineDescription     string                               `json:"lineDescription,omitempty"`
	Tax                 string                               `json:"tax,omitempty"`
	AnalyticalLines     []JournalEntryAnalyticalLineResponse `json:"analyticalLines,omitempty"`
}

// JournalEntryResponse mirrors a committed journal entry.
type JournalEntryResponse struct {
	JournalEntryType        string                     `json:"journalEntryType"`
	JournalEntryNumber      string                     `json:"journalEntryNumber"`
	Company                 string                     `json:"company"`
	Site                    string                     `json:"site"`
	Journal                 string                     `json:"journal"`
	AccountingDate          time.Time                  `json:"accountingDate"`
	JournalEntryStatus      string                     `json:"journalEntryStatus"`
	JournalEntryTransaction string                     `json:"journalEntryTransaction"`
	TransactionCurrency     string                     `json:"transactionCurrency"`
	JournalEntryLines       []JournalEntryLineResponse `json:"journalEntryLines"`
}

// JournalEntryStatusResponse is the lightweight status lookup output.
type JournalEntryStatusResponse struct {
	JournalEntryType   string `json:"journalEntryType"`
	JournalEntryNumber string `json:"journalEntryNumber"`
	JournalEntryStatus string `json:"journalEntryStatus"`
}
