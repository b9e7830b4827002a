package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/dto"
	"github.com/finworks/erp_financials_api/internal/middleware"
)

// standardEntryTransaction is the entry-screen transaction direct journal
// entries are captured against.
const standardEntryTransaction = "STDCO"

// zeroLinesParameter is the legislation parameter permitting all-zero entries.
const zeroLinesParameter = "SIVNULL"

// journalEntryValidationService implements the journal-entry validation
// pipeline: it normalizes input, validates header invariants, resolves
// master data and rates, and expands every line across the configured
// ledgers into a JournalEntryContext.
type journalEntryValidationService struct {
	masterData   portsrepo.MasterDataRepositoryFacade
	currencyRate portsrepo.CurrencyRateReader
	dimensionSvc *dimensionService
}

// NewJournalEntryValidationService creates the validation pipeline service.
func NewJournalEntryValidationService(
	masterData portsrepo.MasterDataRepositoryFacade,
	currencyRate portsrepo.CurrencyRateReader,
	dimensionRepo portsrepo.DimensionRepositoryFacade,
) portssvc.JournalEntryValidatorSvc {
	return &journalEntryValidationService{
		masterData:   masterData,
		currencyRate: currencyRate,
		dimensionSvc: newDimensionService(dimensionRepo),
	}
}

var _ portssvc.JournalEntryValidatorSvc = (*journalEntryValidationService)(nil)

// Validate runs the whole pipeline, failing fast on the first violated rule.
func (s *journalEntryValidationService) Validate(ctx context.Context, input dto.CreateJournalEntryRequest) (*domain.JournalEntryContext, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	input = input.Normalized()
	if violations := input.Validate(); len(violations) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(violations, "; "))
	}

	if len(input.Lines) < 1 {
		return nil, fmt.Errorf("%w: at least one journal entry line is required", apperrors.ErrValidation)
	}

	entryTransaction, err := s.masterData.FindEntryTransaction(ctx, standardEntryTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entry transaction: %w", err)
	}
	if entryTransaction == nil {
		return nil, fmt.Errorf("%w: standard column transaction type not found", apperrors.ErrValidation)
	}

	site, company, err := s.masterData.FindSiteByCode(ctx, input.Site)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve site %s: %w", input.Site, err)
	}
	if site == nil || company == nil {
		return nil, fmt.Errorf("%w: site %s or its associated company not found", apperrors.ErrNotFound, input.Site)
	}

	if input.IsReversing && input.ReversingDate == nil {
		return nil, fmt.Errorf("%w: reversing date must be provided when reversing entry flag is set", apperrors.ErrValidation)
	}
	if !input.IsReversing && input.ReversingDate != nil {
		return nil, fmt.Errorf("%w: reversing entry flag must be set when reversing date is provided", apperrors.ErrValidation)
	}

	hasQuantity, err := validateDebitCreditFields(input.Lines)
	if err != nil {
		return nil, err
	}

	documentType, err := s.masterData.FindDocumentType(ctx, input.DocumentType, company.Legislation)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve document type %s: %w", input.DocumentType, err)
	}
	if documentType == nil {
		return nil, fmt.Errorf("%w: document type %s is not valid for company %s", apperrors.ErrNotFound, input.DocumentType, company.Code)
	}

	accountCodes := make([]string, 0, len(input.Lines))
	for _, line := range input.Lines {
		accountCodes = append(accountCodes, line.Account)
	}
	ledgerAccounts, err := s.masterData.FindLedgerAccounts(ctx, company.AccountingModel, uniqueStrings(accountCodes))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ledger accounts: %w", err)
	}
	if len(ledgerAccounts) == 0 {
		return nil, fmt.Errorf("%w: no ledgers configured for accounting model %s", apperrors.ErrNotFound, company.AccountingModel)
	}

	accountingDate := time.Now().UTC().Truncate(24 * time.Hour)
	if input.AccountingDate != nil {
		accountingDate = *input.AccountingDate
	}
	period, err := s.resolveAccountingDate(ctx, company.Code, accountingDate)
	if err != nil {
		return nil, err
	}

	if !hasQuantity {
		zeroAllowed, err := s.zeroLinesAllowed(ctx, company.Legislation, input.Site, company.Code)
		if err != nil {
			return nil, err
		}
		if err := checkJournalEntryIsBalanced(input.Lines, zeroAllowed); err != nil {
			return nil, err
		}
	}

	rateType, err := input.RateTypeOrDefault(documentType.RateType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	rateDate := accountingDate
	if input.RateDate != nil {
		rateDate = *input.RateDate
	}
	ledgers := make([]domain.Ledger, len(ledgerAccounts))
	for i, la := range ledgerAccounts {
		ledgers[i] = la.Ledger
	}
	rates, err := s.currencyRate.FindRatesForLedgers(ctx, ledgers, input.SourceCurrency, rateDate, rateType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve currency rates: %w", err)
	}

	dimensionTypesMap, err := s.dimensionSvc.LoadDimensionTypesMap(ctx, *company)
	if err != nil {
		return nil, err
	}

	lineContexts, err := s.validateLines(ctx, input.Lines, lineValidationContext{
		company:           *company,
		siteCode:          input.Site,
		fiscalYear:        period.FiscalYear,
		period:            period.Period,
		accountingDate:    accountingDate,
		sourceCurrency:    input.SourceCurrency,
		rateType:          rateType,
		ledgerAccounts:    ledgerAccounts,
		exchangeRates:     rates,
		dimensionTypesMap: dimensionTypesMap,
	})
	if err != nil {
		return nil, err
	}

	reversingDate := domain.DefaultLegacyDate
	if input.ReversingDate != nil {
		reversingDate = *input.ReversingDate
	}
	sourceDocumentDate := domain.DefaultLegacyDate
	if input.SourceDocumentDate != nil {
		sourceDocumentDate = *input.SourceDocumentDate
	}

	logger.Debug("Journal entry input validated",
		slog.String("site", input.Site),
		slog.String("document_type", documentType.DocumentType),
		slog.Int("source_lines", len(input.Lines)),
		slog.Int("resolved_lines", len(lineContexts)),
	)

	return &domain.JournalEntryContext{
		Company:            company.Code,
		Site:               input.Site,
		FiscalYear:         period.FiscalYear,
		Period:             period.Period,
		AccountingDate:     accountingDate,
		DocumentType:       *documentType,
		EntryTransaction:   entryTransaction.Code,
		Legislation:        company.Legislation,
		Category:           domain.JournalCategoryActual,
		Status:             domain.JournalStatusTemporary,
		Source:             domain.EntryOriginDirect,
		TypeOfOpenItem:     documentType.OpenItemType,
		SourceCurrency:     input.SourceCurrency,
		RateType:           rateType,
		RateDate:           rateDate,
		SourceDocument:     input.SourceDocument,
		SourceDocumentDate: sourceDocumentDate,
		Reference:          input.Reference,
		Description:        input.Description,
		IsReversing:        input.IsReversing,
		ReversingDate:      reversingDate,
		Ledgers:            ledgers,
		CurrencyRates:      rates,
		DimensionTypesMap:  dimensionTypesMap,
		Lines:              lineContexts,
	}, nil
}

// resolveAccountingDate resolves date into an open fiscal period for company.
func (s *journalEntryValidationService) resolveAccountingDate(ctx context.Context, company string, date time.Time) (*domain.FiscalPeriod, error) {
	period, err := s.masterData.FindPeriodForDate(ctx, company, date)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve fiscal period: %w", err)
	}
	if period == nil {
		return nil, fmt.Errorf("%w: no fiscal period covers accounting date %s for company %s",
			apperrors.ErrValidation, date.Format("2006-01-02"), company)
	}
	if !period.IsOpen {
		return nil, fmt.Errorf("%w: period %d of fiscal year %d is closed for company %s",
			apperrors.ErrValidation, period.Period, period.FiscalYear, company)
	}
	return period, nil
}

// zeroLinesAllowed reads the SIVNULL parameter scoped to the entry's
// legislation, site and company. Absent, zero-amount entries are rejected.
func (s *journalEntryValidationService) zeroLinesAllowed(ctx context.Context, legislation, site, company string) (bool, error) {
	param, err := s.masterData.GetParameterValue(ctx, legislation, site, company, zeroLinesParameter)
	if err != nil {
		return false, fmt.Errorf("failed to resolve parameter %s: %w", zeroLinesParameter, err)
	}
	value := int(domain.No)
	if param != nil {
		parsed, parseErr := strconv.Atoi(param.Value)
		if parseErr == nil {
			value = parsed
		}
	}
	return domain.NoYes(value) == domain.Yes, nil
}

// validateDebitCreditFields checks that every line carries exactly one of a
// debit/credit value or a quantity. Amounts must not be negative and
// quantities must be positive. It reports whether all lines use quantities.
func validateDebitCreditFields(lines []dto.JournalEntryLineInput) (bool, error) {
	hasQuantity := true

	for i, line := range lines {
		lineNumber := i + 1
		debit := decimalOrZero(line.Debit)
		credit := decimalOrZero(line.Credit)
		quantity := decimalOrZero(line.Quantity)

		hasAmount := line.Debit != nil || line.Credit != nil
		hasQty := line.Quantity != nil

		switch {
		case hasAmount && hasQty:
			return false, fmt.Errorf("%w: line #%d: a line may carry either a debit/credit value or a quantity, not both",
				apperrors.ErrValidation, lineNumber)
		case !hasAmount && !hasQty:
			return false, fmt.Errorf("%w: line #%d: a debit/credit value or a quantity is required",
				apperrors.ErrValidation, lineNumber)
		case hasAmount:
			hasQuantity = false
			if line.Debit != nil && line.Credit != nil {
				return false, fmt.Errorf("%w: line #%d: debit and credit are mutually exclusive",
					apperrors.ErrValidation, lineNumber)
			}
			if debit.IsNegative() || credit.IsNegative() {
				return false, fmt.Errorf("%w: line #%d: amount must not be negative", apperrors.ErrValidation, lineNumber)
			}
		default:
			if !quantity.IsPositive() {
				return false, fmt.Errorf("%w: line #%d: quantity must be positive", apperrors.ErrValidation, lineNumber)
			}
		}
	}

	return hasQuantity, nil
}

// checkJournalEntryIsBalanced enforces total debit equals total credit over
// the source lines, rejecting all-zero entries unless allowed by parameter.
func checkJournalEntryIsBalanced(lines []dto.JournalEntryLineInput, zeroLinesAllowed bool) error {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(decimalOrZero(line.Debit))
		totalCredit = totalCredit.Add(decimalOrZero(line.Credit))
	}

	if !zeroLinesAllowed && totalDebit.IsZero() && totalCredit.IsZero() {
		return fmt.Errorf("%w: zero lines not allowed", apperrors.ErrValidation)
	}
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("%w: journal entry is not balanced: total debit %s, total credit %s",
			apperrors.ErrValidation, totalDebit.String(), totalCredit.String())
	}
	return nil
}

func decimalOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
