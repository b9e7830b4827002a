package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sign distinguishes debit from credit amounts on persisted lines.
type Sign int

const (
	SignDebit  Sign = 1
	SignCredit Sign = -1
)

// JournalCategory classifies the journal an entry posts to.
type JournalCategory int

const JournalCategoryActual JournalCategory = 1

// JournalStatus is the lifecycle state of a committed journal entry.
type JournalStatus int

const (
	JournalStatusTemporary JournalStatus = 1
	JournalStatusFinal     JournalStatus = 2
)

// EntryOrigin records how an entry reached the system.
type EntryOrigin int

const EntryOriginDirect EntryOrigin = 1

// LineAmounts holds the computed debit/credit amounts of one line for one
// ledger, in both the transaction currency and the ledger currency.
type LineAmounts struct {
	Sign           Sign
	Currency       string
	CurrencyAmount decimal.Decimal
	LedgerCurrency string
	LedgerAmount   decimal.Decimal
}

// JournalEntryLineContext is one resolved accounting line for one ledger.
// Many line contexts (one per ledger) derive from one source input line and
// share its line number.
type JournalEntryLineContext struct {
	LineNumber int
	LedgerType LedgerType
	Ledger     string
	PlanCode   string

	Account          string
	Collective       string
	BusinessPartner  *BusinessPartner // nil when the line carries none
	TaxCode          string
	UnitOfWorkFlag   NoYes
	NonFinancialUnit string

	FiscalYear int
	Period     int

	// Resolved dimension values keyed by semantic field name.
	Dimensions map[string]string

	Amounts         LineAmounts
	Quantity        decimal.Decimal
	LineDescription string
	FreeReference   string
}

// JournalEntryContext is the validated, ledger-resolved representation of a
// pending journal entry. It exists only between validation and persistence.
type JournalEntryContext struct {
	Company        string
	Site           string
	FiscalYear     int
	Period         int
	AccountingDate time.Time

	DocumentType     DocumentType
	EntryTransaction string
	Legislation      string
	Category         JournalCategory
	Status           JournalStatus
	Source           EntryOrigin
	TypeOfOpenItem   int

	SourceCurrency     string
	RateType           RateType
	RateDate           time.Time
	SourceDocument     string
	SourceDocumentDate time.Time
	Reference          string
	Description        string

	IsReversing   bool
	ReversingDate time.Time

	// One entry per configured ledger, in ledger-type order.
	Ledgers       []Ledger
	CurrencyRates []CurrencyRate

	// Semantic field name -> dimension-type configuration.
	DimensionTypesMap map[string]DimensionTypeConfig

	Lines []JournalEntryLineContext
}
