package domain

import "time"

// MaxDimensionSlots is the number of configurable dimension-type slots on a
// company record and on analytical lines.
const MaxDimensionSlots = 10

// Site is a physical or organizational location owned by one company.
type Site struct {
	Code        string
	Description string
	Company     string
}

// Company carries the company-level accounting configuration the journal
// entry pipeline validates against.
type Company struct {
	Code            string
	AccountingModel string
	Legislation     string
	IsLegalCompany  NoYes

	// Configurable dimension-type slots. A zero-value code means the slot is
	// unused. IsMandatoryDimension follows the NoYes local menu.
	DimensionTypes       [MaxDimensionSlots]string
	IsMandatoryDimension [MaxDimensionSlots]NoYes
}

// LedgerType numbers the parallel sets of books a company maintains.
// The legal ledger is always number 1.
type LedgerType int

const LedgerTypeLegal LedgerType = 1

// Ledger is one parallel set of books configured on an accounting model.
type Ledger struct {
	Code        string
	Type        LedgerType
	Legislation string
	PlanCode    string
	Currency    string
}

// Account is one entry in a ledger's chart of accounts, with the
// enrichment data line building needs.
type Account struct {
	Account         string
	PlanCode        string
	Collective      string // control account mnemonic, empty when not collective
	UnitOfWorkFlag  NoYes
	NonFinancialUnit string

	// Dimension types this account requires, positionally configured.
	DimensionTypes             [MaxDimensionSlots]string
	NumberOfDimensionsEntered  int
}

// LedgerAccounts groups the resolved accounts of one ledger of an
// accounting model, in ledger-type order.
type LedgerAccounts struct {
	Ledger   Ledger
	Accounts map[string]Account // keyed by account code
}

// DocumentType configures one journal-entry document type for a company.
type DocumentType struct {
	DocumentType   string
	SequenceNumber string // counter name for document-number allocation
	DefaultJournal string
	OpenItemType   int
	Reminders      NoYes
	RateType       RateType
}

// EntryTransaction is the entry-screen transaction configuration a journal
// entry is captured against.
type EntryTransaction struct {
	Code        string
	Description string
}

// FiscalPeriod is the open-period bucket an accounting date resolves into.
type FiscalPeriod struct {
	Company    string
	FiscalYear int
	Period     int
	Start      time.Time
	End        time.Time
	IsOpen     bool
}

// BusinessPartnerType classifies the party on an open item.
type BusinessPartnerType int

const (
	BusinessPartnerCustomer BusinessPartnerType = 1
	BusinessPartnerSupplier BusinessPartnerType = 2
)

// BusinessPartner is the master-data record for a customer or supplier
// referenced on a journal-entry line.
type BusinessPartner struct {
	Code          string
	IsActive      NoYes
	IsCustomer    NoYes
	IsSupplier    NoYes
	PaymentMethod string
	PaymentType   int

	// Customer payment routing.
	PayByCustomer        string
	PayByCustomerAddress string

	// Supplier payment routing.
	PayToBusinessPartner        string
	PayToBusinessPartnerAddress string
}

// OpenItemBusinessPartnerInfo is the per-line payment-routing data resolved
// when a legal-ledger line carries a business partner and control account.
type OpenItemBusinessPartnerInfo struct {
	Code           string
	PartnerType    BusinessPartnerType
	PayToOrPayBy   string
	PartnerAddress string
	PaymentMethod  string
	PaymentType    int
}

// TaxCode identifies a tax code valid for a legislation.
type TaxCode struct {
	Code        string
	Legislation string
}

// Parameter is one legislation/site/company-scoped configuration value.
type Parameter struct {
	Code  string
	Value string
}
