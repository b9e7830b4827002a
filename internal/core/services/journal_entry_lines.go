package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
	"github.com/finworks/erp_financials_api/internal/dto"
)

// lineValidationContext threads the header-level data line validation needs
// without re-resolving it per line.
type lineValidationContext struct {
	company           domain.Company
	siteCode          string
	fiscalYear        int
	period            int
	accountingDate    time.Time
	sourceCurrency    string
	rateType          domain.RateType
	ledgerAccounts    []domain.LedgerAccounts
	exchangeRates     []domain.CurrencyRate
	dimensionTypesMap map[string]domain.DimensionTypeConfig
}

// validateLines expands every source line across the configured ledgers and
// validates each (line, ledger) pair. Line contexts derived from the same
// source line share its 1-based line number.
func (s *journalEntryValidationService) validateLines(
	ctx context.Context,
	lines []dto.JournalEntryLineInput,
	vctx lineValidationContext,
) ([]domain.JournalEntryLineContext, error) {
	partners, err := s.resolveBusinessPartners(ctx, lines)
	if err != nil {
		return nil, err
	}

	taxCodes, err := s.resolveTaxCodes(ctx, lines, vctx.company.Legislation)
	if err != nil {
		return nil, err
	}

	dimensionData, err := s.dimensionSvc.LoadDimensionsData(ctx, collectDimensionKeys(lines, vctx.dimensionTypesMap))
	if err != nil {
		return nil, err
	}

	ratesByLedger := make(map[string]domain.CurrencyRate, len(vctx.exchangeRates))
	for _, rate := range vctx.exchangeRates {
		ratesByLedger[rate.Ledger] = rate
	}

	contexts := make([]domain.JournalEntryLineContext, 0, len(lines)*len(vctx.ledgerAccounts))
	for i, line := range lines {
		lineNumber := i + 1

		if line.Site != "" && line.Site != vctx.siteCode {
			return nil, fmt.Errorf("%w: line #%d: site override %s is not allowed on direct entries",
				apperrors.ErrValidation, lineNumber, line.Site)
		}

		var partner *domain.BusinessPartner
		if line.BusinessPartner != "" {
			bp := partners[line.BusinessPartner]
			partner = &bp
		}

		for _, la := range vctx.ledgerAccounts {
			account, ok := la.Accounts[line.Account]
			if !ok {
				return nil, fmt.Errorf("%w: line #%d: ledger [%s] account code %s is not valid for company %s",
					apperrors.ErrNotFound, lineNumber, la.Ledger.Code, line.Account, vctx.company.Code)
			}

			if partner != nil && account.Collective == "" {
				return nil, fmt.Errorf("%w: line #%d: ledger [%s]: account %s is not a control account and cannot carry business partner %s",
					apperrors.ErrValidation, lineNumber, la.Ledger.Code, account.Account, line.BusinessPartner)
			}

			if line.TaxCode != "" {
				if _, ok := taxCodes[line.TaxCode]; !ok {
					return nil, fmt.Errorf("%w: line #%d: ledger [%s]: tax code %s is not valid for legislation %s",
						apperrors.ErrValidation, lineNumber, la.Ledger.Code, line.TaxCode, vctx.company.Legislation)
				}
			}

			dimensions, err := s.validateLineDimensions(lineNumber, la.Ledger.Code, line, account, vctx.dimensionTypesMap, dimensionData)
			if err != nil {
				return nil, err
			}

			amounts, quantity, err := calculateLineAmounts(lineNumber, line, la.Ledger, vctx.sourceCurrency, vctx.rateType, ratesByLedger)
			if err != nil {
				return nil, err
			}

			contexts = append(contexts, domain.JournalEntryLineContext{
				LineNumber:       lineNumber,
				LedgerType:       la.Ledger.Type,
				Ledger:           la.Ledger.Code,
				PlanCode:         la.Ledger.PlanCode,
				Account:          account.Account,
				Collective:       account.Collective,
				BusinessPartner:  partner,
				TaxCode:          line.TaxCode,
				UnitOfWorkFlag:   account.UnitOfWorkFlag,
				NonFinancialUnit: account.NonFinancialUnit,
				FiscalYear:       vctx.fiscalYear,
				Period:           vctx.period,
				Dimensions:       dimensions,
				Amounts:          amounts,
				Quantity:         quantity,
				LineDescription:  line.LineDescription,
				FreeReference:    line.FreeReference,
			})
		}
	}

	return contexts, nil
}

// resolveBusinessPartners batch-loads every partner referenced by the lines
// and checks existence and activity up front.
func (s *journalEntryValidationService) resolveBusinessPartners(ctx context.Context, lines []dto.JournalEntryLineInput) (map[string]domain.BusinessPartner, error) {
	codes := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.BusinessPartner != "" {
			codes = append(codes, line.BusinessPartner)
		}
	}
	if len(codes) == 0 {
		return map[string]domain.BusinessPartner{}, nil
	}

	partners, err := s.masterData.FindBusinessPartners(ctx, uniqueStrings(codes))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve business partners: %w", err)
	}

	for i, line := range lines {
		if line.BusinessPartner == "" {
			continue
		}
		partner, ok := partners[line.BusinessPartner]
		if !ok {
			return nil, fmt.Errorf("%w: line #%d: business partner %s not found",
				apperrors.ErrNotFound, i+1, line.BusinessPartner)
		}
		if !partner.IsActive.Bool() {
			return nil, fmt.Errorf("%w: line #%d: business partner %s is not active",
				apperrors.ErrValidation, i+1, line.BusinessPartner)
		}
	}
	return partners, nil
}

// resolveTaxCodes batch-loads the tax codes referenced by the lines, valid
// for the company's legislation.
func (s *journalEntryValidationService) resolveTaxCodes(ctx context.Context, lines []dto.JournalEntryLineInput, legislation string) (map[string]struct{}, error) {
	codes := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.TaxCode != "" {
			codes = append(codes, line.TaxCode)
		}
	}
	if len(codes) == 0 {
		return map[string]struct{}{}, nil
	}

	taxCodes, err := s.masterData.FindTaxCodes(ctx, uniqueStrings(codes), legislation)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tax codes: %w", err)
	}
	return taxCodes, nil
}

// collectDimensionKeys gathers every (type, value) pair referenced by the
// lines for one batched lookup.
func collectDimensionKeys(lines []dto.JournalEntryLineInput, typesMap map[string]domain.DimensionTypeConfig) []domain.DimensionKey {
	seen := make(map[string]struct{})
	var keys []domain.DimensionKey
	for _, line := range lines {
		for field, value := range line.Dimensions.Fields() {
			config, ok := typesMap[field]
			if !ok {
				continue
			}
			mapKey := DimensionDataKey(config.Code, value)
			if _, dup := seen[mapKey]; dup {
				continue
			}
			seen[mapKey] = struct{}{}
			keys = append(keys, domain.DimensionKey{TypeCode: config.Code, Code: value})
		}
	}
	return keys
}

// validateLineDimensions applies the dimension rules of one (line, ledger)
// pair and returns the accepted values keyed by semantic field name.
func (s *journalEntryValidationService) validateLineDimensions(
	lineNumber int,
	ledger string,
	line dto.JournalEntryLineInput,
	account domain.Account,
	typesMap map[string]domain.DimensionTypeConfig,
	dimensionData map[string]domain.Dimension,
) (map[string]string, error) {
	provided := line.Dimensions.Fields()

	required, providedByType, err := s.dimensionSvc.RequiredDimensions(lineNumber, ledger, provided, account, typesMap)
	if err != nil {
		return nil, err
	}

	if len(required) > 0 && len(providedByType) == 0 {
		missing := make([]string, 0, len(required))
		for typeCode := range required {
			missing = append(missing, typeCode)
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: line #%d: ledger [%s]: account %s requires dimension types %s and none were provided",
			apperrors.ErrValidation, lineNumber, ledger, account.Account, strings.Join(missing, ", "))
	}

	strategyCtx := DimensionStrategyContext{LineNumber: lineNumber, Ledger: ledger, Account: account.Account}
	for typeCode, value := range providedByType {
		dimension, ok := dimensionData[DimensionDataKey(typeCode, value)]
		if !ok {
			return nil, fmt.Errorf("%w: line #%d: ledger [%s]: dimension %s of type %s not found",
				apperrors.ErrNotFound, lineNumber, ledger, value, typeCode)
		}
		if err := StrategyForDimensionType(typeCode).Validate(dimension, strategyCtx); err != nil {
			return nil, err
		}
	}

	return provided, nil
}

// calculateLineAmounts derives the signed transaction and ledger-currency
// amounts of one (line, ledger) pair.
func calculateLineAmounts(
	lineNumber int,
	line dto.JournalEntryLineInput,
	ledger domain.Ledger,
	sourceCurrency string,
	rateType domain.RateType,
	ratesByLedger map[string]domain.CurrencyRate,
) (domain.LineAmounts, decimal.Decimal, error) {
	if line.Quantity != nil {
		return domain.LineAmounts{
			Sign:           domain.SignDebit,
			Currency:       sourceCurrency,
			LedgerCurrency: ledger.Currency,
		}, *line.Quantity, nil
	}

	sign := domain.SignDebit
	amount := decimalOrZero(line.Debit)
	if line.Credit != nil {
		sign = domain.SignCredit
		amount = *line.Credit
	}

	ledgerAmount := amount
	if ledger.Currency != sourceCurrency {
		rate, ok := ratesByLedger[ledger.Code]
		if !ok {
			return domain.LineAmounts{}, decimal.Zero, fmt.Errorf("%w: line #%d: no %s rate published from %s to %s for ledger [%s]",
				apperrors.ErrValidation, lineNumber, rateTypeLabel(rateType), sourceCurrency, ledger.Currency, ledger.Code)
		}
		ledgerAmount = rate.Convert(amount)
	}

	return domain.LineAmounts{
		Sign:           sign,
		Currency:       sourceCurrency,
		CurrencyAmount: amount,
		LedgerCurrency: ledger.Currency,
		LedgerAmount:   ledgerAmount,
	}, decimal.Zero, nil
}

// rateTypeLabel names a rate series for error messages.
func rateTypeLabel(rateType domain.RateType) string {
	switch rateType {
	case domain.RateTypeDaily:
		return "daily"
	case domain.RateTypeMonthly:
		return "monthly"
	case domain.RateTypeAverage:
		return "average"
	default:
		return "exchange"
	}
}
