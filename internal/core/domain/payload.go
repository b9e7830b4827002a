package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxLedgerSlots is the number of positional ledger-rate slots on a journal
// entry header.
const MaxLedgerSlots = 10

// LedgerRateSlot is one positional currency-rate entry on the header, one
// per configured ledger. Multiplier and divisor default to 1 when no rate
// was resolved for the ledger.
type LedgerRateSlot struct {
	Ledger            string
	ReferenceCurrency string
	RateMultiplier    decimal.Decimal
	RateDivisor       decimal.Decimal
}

// PaymentApprovalLevel is the approval state stamped on headers and open items.
type PaymentApprovalLevel int

const PaymentApprovalAuthorizedToPay PaymentApprovalLevel = 1

// JournalEntry is the persisted header row. It owns its lines.
type JournalEntry struct {
	JournalEntryType       string
	JournalEntryNumber     string
	Journal                string
	JournalEntryTransaction string
	Company                string
	Site                   string
	AccountingDate         time.Time
	EntryDate              time.Time
	DueDate                time.Time
	ValueDate              time.Time
	VatDate                time.Time
	BankDate               time.Time
	FiscalYear             int
	Period                 int
	Category               JournalCategory
	JournalEntryStatus     JournalStatus
	Source                 EntryOrigin
	TypeOfOpenItem         int
	Description            string
	Reference              string
	SourceDocument         string
	SourceDocumentDate     time.Time
	TransactionCurrency    string
	RateType               RateType
	RateDate               time.Time
	Reversing              NoYes
	ReversingDate          time.Time
	Reminder               NoYes
	PayApproval            PaymentApprovalLevel
	ExcelFileName          string

	LedgerSlots [MaxLedgerSlots]LedgerRateSlot

	Lines []JournalEntryLine

	RowStamp
	CreateDate time.Time
	UpdateDate time.Time
}

// JournalEntryLine is one persisted line row. It owns its analytical lines.
type JournalEntryLine struct {
	JournalEntryType   string
	JournalEntryNumber string
	LedgerTypeNumber   LedgerType
	Ledger             string
	Company            string
	Site               string
	AccountingDate     time.Time
	FiscalYear         int
	Period             int
	UniqueNumber       int64
	LineNumber         int
	Identifier         string
	ChartOfAccounts    string
	ControlAccount     string
	Account            string
	BusinessPartner    string
	Sign               Sign
	TransactionCurrency string
	TransactionAmount  decimal.Decimal
	LedgerCurrency     string
	LedgerAmount       decimal.Decimal
	Quantity           decimal.Decimal
	NonFinancialUnit   string
	LineDescription    string
	FreeReference      string
	Tax1               string

	Analytics []JournalEntryAnalyticalLine

	RowStamp
}

// JournalEntryAnalyticalLine is one persisted analytical sub-row carrying
// dimension values in numbered slots.
type JournalEntryAnalyticalLine struct {
	JournalEntryType     string
	JournalEntryNumber   string
	LedgerTypeNumber     LedgerType
	LineNumber           int
	AnalyticalLineNumber int
	Identifier           string
	Ledger               string
	Company              string
	Site                 string
	AccountingDate       time.Time
	UniqueNumber         int64
	ChartOfAccounts      string
	Account              string
	BusinessPartner      string
	Sign                 Sign
	Currency             string
	TransactionAmount    decimal.Decimal
	ReferenceCurrency    string
	ReferenceAmount      decimal.Decimal
	Quantity             decimal.Decimal
	NonFinancialUnit     string

	DimensionTypes [MaxDimensionSlots]string
	Dimensions     [MaxDimensionSlots]string

	RowStamp
}

// OpenItem is a payable/receivable row derived from a legal-ledger line
// carrying a business partner, keyed by document number.
type OpenItem struct {
	DocumentType                   string
	DocumentNumber                 string
	LineNumber                     int
	OpenItemLineNumber             int
	Company                        string
	Site                           string
	Currency                       string
	ControlAccount                 string
	BusinessPartner                string
	BusinessPartnerType            BusinessPartnerType
	PayToOrPayByBusinessPartner    string
	BusinessPartnerAddress         string
	DueDate                        time.Time
	PaymentMethod                  string
	PaymentType                    int
	Sign                           Sign
	AmountInCurrency               decimal.Decimal
	AmountInCompanyCurrency        decimal.Decimal
	CanBeReminded                  NoYes
	PaymentApprovalLevel           PaymentApprovalLevel
	PostedStatus                   int
	ClosedStatus                   int
	FiscalYear                     int
	Period                         int
	TypeOfOpenItem                 int
	UniqueNumber                   string
	JournalEntryLineInternalNumber int64

	RowStamp
	CreateDate time.Time
}

// OpenItemArchive is the 1:1 archive mirror of a created open item.
type OpenItemArchive struct {
	Identifier              int64
	DocumentType            string
	Document                string
	LineNumber              int
	DueDateNumber           int
	InternalNumber          int64
	Company                 string
	Site                    string
	Currency                string
	Collective              string
	BusinessPartner         string
	BusinessPartnerType     BusinessPartnerType
	PayToBusinessPartner    string
	DueDate                 time.Time
	Sign                    Sign
	AmountInCurrency        decimal.Decimal
	AmountInCompanyCurrency decimal.Decimal
	PaymentApprovalLevel    PaymentApprovalLevel
	PostedStatus            int
	ClosedStatus            int
	TypeOfOpenItem          int
	EventDate               time.Time

	RowStamp
	CreateDate time.Time
}
