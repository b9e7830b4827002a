package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/finworks/erp_financials_api/internal/core/domain"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
	"github.com/finworks/erp_financials_api/internal/dto"
)

// --- Mock MasterDataRepository ---

type MockMasterDataRepository struct {
	mock.Mock
}

var _ portsrepo.MasterDataRepositoryFacade = (*MockMasterDataRepository)(nil)

func (m *MockMasterDataRepository) FindSiteByCode(ctx context.Context, code string) (*domain.Site, *domain.Company, error) {
	args := m.Called(ctx, code)
	var site *domain.Site
	var company *domain.Company
	if args.Get(0) != nil {
		site = args.Get(0).(*domain.Site)
	}
	if args.Get(1) != nil {
		company = args.Get(1).(*domain.Company)
	}
	return site, company, args.Error(2)
}

func (m *MockMasterDataRepository) ListSites(ctx context.Context) ([]domain.Site, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Site), args.Error(1)
}

func (m *MockMasterDataRepository) FindDocumentType(ctx context.Context, documentType, legislation string) (*domain.DocumentType, error) {
	args := m.Called(ctx, documentType, legislation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentType), args.Error(1)
}

func (m *MockMasterDataRepository) FindEntryTransaction(ctx context.Context, code string) (*domain.EntryTransaction, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryTransaction), args.Error(1)
}

func (m *MockMasterDataRepository) FindLedgerAccounts(ctx context.Context, accountingModel string, accountCodes []string) ([]domain.LedgerAccounts, error) {
	args := m.Called(ctx, accountingModel, accountCodes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccounts), args.Error(1)
}

func (m *MockMasterDataRepository) FindPeriodForDate(ctx context.Context, company string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, company, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockMasterDataRepository) FindBusinessPartners(ctx context.Context, codes []string) (map[string]domain.BusinessPartner, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.BusinessPartner), args.Error(1)
}

func (m *MockMasterDataRepository) FindTaxCodes(ctx context.Context, codes []string, legislation string) (map[string]struct{}, error) {
	args := m.Called(ctx, codes, legislation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockMasterDataRepository) GetParameterValue(ctx context.Context, legislation, site, company, code string) (*domain.Parameter, error) {
	args := m.Called(ctx, legislation, site, company, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parameter), args.Error(1)
}

// --- Mock CurrencyRateRepository ---

type MockCurrencyRateRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRateReader = (*MockCurrencyRateRepository)(nil)

func (m *MockCurrencyRateRepository) FindRatesForLedgers(ctx context.Context, ledgers []domain.Ledger, sourceCurrency string, date time.Time, rateType domain.RateType) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx, ledgers, sourceCurrency, date, rateType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRateRepository) ListRates(ctx context.Context, sourceCurrency, destinationCurrency string, before *time.Time, limit int) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx, sourceCurrency, destinationCurrency, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRate), args.Error(1)
}

// --- Mock DimensionRepository ---

type MockDimensionRepository struct {
	mock.Mock
}

var _ portsrepo.DimensionRepositoryFacade = (*MockDimensionRepository)(nil)

func (m *MockDimensionRepository) FindDimensions(ctx context.Context, keys []domain.DimensionKey) (map[string]domain.Dimension, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Dimension), args.Error(1)
}

func (m *MockDimensionRepository) ListDimensionTypes(ctx context.Context) (map[string]domain.DimensionTypeConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.DimensionTypeConfig), args.Error(1)
}

// --- Mock JournalEntryRepository ---

type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryWithTx = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockJournalEntryRepository) BeginSerializable(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockJournalEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockJournalEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockJournalEntryRepository) InsertJournalEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	return m.Called(ctx, tx, entry).Error(0)
}

func (m *MockJournalEntryRepository) InsertOpenItems(ctx context.Context, tx pgx.Tx, items []domain.OpenItem) error {
	return m.Called(ctx, tx, items).Error(0)
}

func (m *MockJournalEntryRepository) InsertOpenItemArchives(ctx context.Context, tx pgx.Tx, archives []domain.OpenItemArchive) error {
	return m.Called(ctx, tx, archives).Error(0)
}

func (m *MockJournalEntryRepository) FindByTypeAndNumber(ctx context.Context, journalEntryType, journalEntryNumber string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryType, journalEntryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindLatestByNumber(ctx context.Context, journalEntryNumber string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindStatus(ctx context.Context, journalEntryNumber string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock SequenceRepository ---

type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepository = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) NextValue(ctx context.Context, tx pgx.Tx, sequenceName string) (int64, error) {
	args := m.Called(ctx, tx, sequenceName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSequenceRepository) NextDocumentNumber(ctx context.Context, tx pgx.Tx, counter, company, site string, accountingDate time.Time, journal string) (string, error) {
	args := m.Called(ctx, tx, counter, company, site, accountingDate, journal)
	return args.String(0), args.Error(1)
}

// --- Mock ApiCredentialRepository ---

type MockApiCredentialRepository struct {
	mock.Mock
}

var _ portsrepo.ApiCredentialRepository = (*MockApiCredentialRepository)(nil)

func (m *MockApiCredentialRepository) FindByLogin(ctx context.Context, login string) (*domain.ApiCredential, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApiCredential), args.Error(1)
}

func (m *MockApiCredentialRepository) FindActive(ctx context.Context, appKey, clientID string) (*domain.ApiCredential, error) {
	args := m.Called(ctx, appKey, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApiCredential), args.Error(1)
}

func (m *MockApiCredentialRepository) CountByClientID(ctx context.Context, clientID string) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

func (m *MockApiCredentialRepository) UpdateCredentials(ctx context.Context, credential domain.ApiCredential) error {
	return m.Called(ctx, credential).Error(0)
}

// --- Mock AccountBalanceRepository ---

type MockAccountBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.AccountBalanceReader = (*MockAccountBalanceRepository)(nil)

func (m *MockAccountBalanceRepository) ListBalances(ctx context.Context, filter dto.AccountBalanceFilter, afterRowID *int64, limit int) ([]domain.AnalyticalBalance, error) {
	args := m.Called(ctx, filter, afterRowID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnalyticalBalance), args.Error(1)
}
