package repositories

import (
	"context"
	"time"

	"github.com/finworks/erp_financials_api/internal/core/domain"
)

// SiteReader resolves sites and their owning companies.
type SiteReader interface {
	// FindSiteByCode returns the site and its owning company configuration.
	FindSiteByCode(ctx context.Context, code string) (*domain.Site, *domain.Company, error)

	// ListSites returns every configured site.
	ListSites(ctx context.Context) ([]domain.Site, error)
}

// DocumentTypeReader resolves document-type configuration per company.
type DocumentTypeReader interface {
	// FindDocumentType returns the configuration of a document type valid
	// for the given legislation.
	FindDocumentType(ctx context.Context, documentType, legislation string) (*domain.DocumentType, error)
}

// EntryTransactionReader resolves entry-screen transaction configuration.
type EntryTransactionReader interface {
	FindEntryTransaction(ctx context.Context, code string) (*domain.EntryTransaction, error)
}

// LedgerAccountsReader batch-resolves accounts across the ledgers of an
// accounting model.
type LedgerAccountsReader interface {
	// FindLedgerAccounts returns one entry per configured ledger of the
	// accounting model, each with the requested accounts that exist in its
	// chart. Accounts absent from a ledger are simply missing from that
	// ledger's map.
	FindLedgerAccounts(ctx context.Context, accountingModel string, accountCodes []string) ([]domain.LedgerAccounts, error)
}

// FiscalPeriodReader resolves accounting dates into fiscal periods.
type FiscalPeriodReader interface {
	// FindPeriodForDate returns the fiscal period containing date for the
	// company, whether open or not.
	FindPeriodForDate(ctx context.Context, company string, date time.Time) (*domain.FiscalPeriod, error)
}

// BusinessPartnerReader batch-resolves business partner master data.
type BusinessPartnerReader interface {
	// FindBusinessPartners returns the partners that exist among codes,
	// keyed by code.
	FindBusinessPartners(ctx context.Context, codes []string) (map[string]domain.BusinessPartner, error)
}

// TaxCodeReader batch-resolves tax codes for a legislation.
type TaxCodeReader interface {
	// FindTaxCodes returns the subset of codes that exist for legislation.
	FindTaxCodes(ctx context.Context, codes []string, legislation string) (map[string]struct{}, error)
}

// ParameterReader resolves scoped configuration parameters, most specific
// scope first (legislation, site, company, then global).
type ParameterReader interface {
	GetParameterValue(ctx context.Context, legislation, site, company, code string) (*domain.Parameter, error)
}

// MasterDataRepositoryFacade combines every master-data lookup the
// validation pipeline depends on.
type MasterDataRepositoryFacade interface {
	SiteReader
	DocumentTypeReader
	EntryTransactionReader
	LedgerAccountsReader
	FiscalPeriodReader
	BusinessPartnerReader
	TaxCodeReader
	ParameterReader
}
