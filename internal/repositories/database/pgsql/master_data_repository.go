package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
)

// PgxMasterDataRepository resolves the accounting reference data the
// validation pipeline reads. All lookups are read-only.
type PgxMasterDataRepository struct {
	BaseRepository
}

func newPgxMasterDataRepository(pool *pgxpool.Pool) portsrepo.MasterDataRepositoryFacade {
	return &PgxMasterDataRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MasterDataRepositoryFacade = (*PgxMasterDataRepository)(nil)

// FindSiteByCode returns the site and its owning company configuration.
func (r *PgxMasterDataRepository) FindSiteByCode(ctx context.Context, code string) (*domain.Site, *domain.Company, error) {
	query := `
		SELECT s.code, s.description, s.company,
			c.code, c.accounting_model, c.legislation, c.is_legal_company,
			c.dimension_types, c.is_mandatory_dimension
		FROM sites s
		JOIN companies c ON c.code = s.company
		WHERE s.code = $1;
	`
	var (
		site               domain.Site
		company            domain.Company
		isLegal            int
		dimensionTypes     []string
		mandatoryDimension []int
	)
	err := r.Pool.QueryRow(ctx, query, code).Scan(
		&site.Code, &site.Description, &site.Company,
		&company.Code, &company.AccountingModel, &company.Legislation, &isLegal,
		&dimensionTypes, &mandatoryDimension,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query site "+code, err)
	}
	company.IsLegalCompany = domain.NoYes(isLegal)
	copy(company.DimensionTypes[:], dimensionTypes)
	for i, v := range mandatoryDimension {
		if i >= domain.MaxDimensionSlots {
			break
		}
		company.IsMandatoryDimension[i] = domain.NoYes(v)
	}
	return &site, &company, nil
}

// ListSites returns every configured site ordered by code.
func (r *PgxMasterDataRepository) ListSites(ctx context.Context) ([]domain.Site, error) {
	rows, err := r.Pool.Query(ctx, `SELECT code, description, company FROM sites ORDER BY code;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sites", err)
	}
	defer rows.Close()

	var sites []domain.Site
	for rows.Next() {
		var site domain.Site
		if err := rows.Scan(&site.Code, &site.Description, &site.Company); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan site", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read sites", err)
	}
	return sites, nil
}

// FindDocumentType returns the document type valid for the legislation.
// Legislation-specific configuration wins over the blank global row.
func (r *PgxMasterDataRepository) FindDocumentType(ctx context.Context, documentType, legislation string) (*domain.DocumentType, error) {
	query := `
		SELECT document_type, sequence_number, default_journal, open_item_type, reminders, rate_type
		FROM document_types
		WHERE document_type = $1 AND (legislation = $2 OR legislation = '')
		ORDER BY legislation DESC
		LIMIT 1;
	`
	var dt domain.DocumentType
	var reminders, rateType int
	err := r.Pool.QueryRow(ctx, query, documentType, legislation).Scan(
		&dt.DocumentType, &dt.SequenceNumber, &dt.DefaultJournal, &dt.OpenItemType, &reminders, &rateType,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query document type "+documentType, err)
	}
	dt.Reminders = domain.NoYes(reminders)
	dt.RateType = domain.RateType(rateType)
	return &dt, nil
}

// FindEntryTransaction returns the entry-screen transaction configuration.
func (r *PgxMasterDataRepository) FindEntryTransaction(ctx context.Context, code string) (*domain.EntryTransaction, error) {
	var et domain.EntryTransaction
	err := r.Pool.QueryRow(ctx,
		`SELECT code, description FROM entry_transactions WHERE code = $1;`, code,
	).Scan(&et.Code, &et.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry transaction "+code, err)
	}
	return &et, nil
}

// FindLedgerAccounts returns one entry per ledger of the accounting model,
// each carrying the requested account codes that exist in its chart.
func (r *PgxMasterDataRepository) FindLedgerAccounts(ctx context.Context, accountingModel string, accountCodes []string) ([]domain.LedgerAccounts, error) {
	ledgerQuery := `
		SELECT code, type, legislation, plan_code, currency
		FROM ledgers
		WHERE accounting_model = $1
		ORDER BY type;
	`
	rows, err := r.Pool.Query(ctx, ledgerQuery, accountingModel)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledgers of model "+accountingModel, err)
	}
	defer rows.Close()

	var result []domain.LedgerAccounts
	for rows.Next() {
		var ledger domain.Ledger
		var ledgerType int
		if err := rows.Scan(&ledger.Code, &ledgerType, &ledger.Legislation, &ledger.PlanCode, &ledger.Currency); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger", err)
		}
		ledger.Type = domain.LedgerType(ledgerType)
		result = append(result, domain.LedgerAccounts{Ledger: ledger, Accounts: make(map[string]domain.Account)})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read ledgers", err)
	}
	if len(result) == 0 || len(accountCodes) == 0 {
		return result, nil
	}

	accountQuery := `
		SELECT plan_code, account, collective, unit_of_work_flag, non_financial_unit,
			dimension_types, number_of_dimensions_entered
		FROM accounts
		WHERE account = ANY($1);
	`
	accountRows, err := r.Pool.Query(ctx, accountQuery, accountCodes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer accountRows.Close()

	for accountRows.Next() {
		var account domain.Account
		var unitOfWork int
		var dimensionTypes []string
		if err := accountRows.Scan(
			&account.PlanCode, &account.Account, &account.Collective, &unitOfWork,
			&account.NonFinancialUnit, &dimensionTypes, &account.NumberOfDimensionsEntered,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		account.UnitOfWorkFlag = domain.NoYes(unitOfWork)
		copy(account.DimensionTypes[:], dimensionTypes)

		for i := range result {
			if result[i].Ledger.PlanCode == account.PlanCode {
				result[i].Accounts[account.Account] = account
			}
		}
	}
	if err := accountRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read accounts", err)
	}
	return result, nil
}

// FindPeriodForDate returns the fiscal period covering date for company.
func (r *PgxMasterDataRepository) FindPeriodForDate(ctx context.Context, company string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT company, fiscal_year, period, start_date, end_date, is_open
		FROM fiscal_periods
		WHERE company = $1 AND start_date <= $2 AND end_date >= $2
		LIMIT 1;
	`
	var period domain.FiscalPeriod
	err := r.Pool.QueryRow(ctx, query, company, date).Scan(
		&period.Company, &period.FiscalYear, &period.Period, &period.Start, &period.End, &period.IsOpen,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal period", err)
	}
	return &period, nil
}

// FindBusinessPartners returns the partners existing among codes, keyed by code.
func (r *PgxMasterDataRepository) FindBusinessPartners(ctx context.Context, codes []string) (map[string]domain.BusinessPartner, error) {
	query := `
		SELECT code, is_active, is_customer, is_supplier, payment_method, payment_type,
			pay_by_customer, pay_by_customer_address,
			pay_to_business_partner, pay_to_business_partner_address
		FROM business_partners
		WHERE code = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query business partners", err)
	}
	defer rows.Close()

	partners := make(map[string]domain.BusinessPartner)
	for rows.Next() {
		var partner domain.BusinessPartner
		var isActive, isCustomer, isSupplier int
		if err := rows.Scan(
			&partner.Code, &isActive, &isCustomer, &isSupplier, &partner.PaymentMethod, &partner.PaymentType,
			&partner.PayByCustomer, &partner.PayByCustomerAddress,
			&partner.PayToBusinessPartner, &partner.PayToBusinessPartnerAddress,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan business partner", err)
		}
		partner.IsActive = domain.NoYes(isActive)
		partner.IsCustomer = domain.NoYes(isCustomer)
		partner.IsSupplier = domain.NoYes(isSupplier)
		partners[partner.Code] = partner
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read business partners", err)
	}
	return partners, nil
}

// FindTaxCodes returns the subset of codes valid for the legislation.
func (r *PgxMasterDataRepository) FindTaxCodes(ctx context.Context, codes []string, legislation string) (map[string]struct{}, error) {
	query := `
		SELECT code FROM tax_codes
		WHERE code = ANY($1) AND (legislation = $2 OR legislation = '');
	`
	rows, err := r.Pool.Query(ctx, query, codes, legislation)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax codes", err)
	}
	defer rows.Close()

	found := make(map[string]struct{})
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax code", err)
		}
		found[code] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read tax codes", err)
	}
	return found, nil
}

// GetParameterValue resolves a scoped parameter, most specific scope first:
// company, then site, then legislation, then the global blank-scope row.
func (r *PgxMasterDataRepository) GetParameterValue(ctx context.Context, legislation, site, company, code string) (*domain.Parameter, error) {
	query := `
		SELECT code, value
		FROM parameters
		WHERE code = $1
			AND (company = $2 OR company = '')
			AND (site = $3 OR site = '')
			AND (legislation = $4 OR legislation = '')
		ORDER BY (company <> '') DESC, (site <> '') DESC, (legislation <> '') DESC
		LIMIT 1;
	`
	var param domain.Parameter
	err := r.Pool.QueryRow(ctx, query, code, company, site, legislation).Scan(&param.Code, &param.Value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query parameter "+code, err)
	}
	return &param, nil
}
