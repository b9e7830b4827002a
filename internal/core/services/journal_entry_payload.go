package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
)

func oneDecimal() decimal.Decimal { return decimal.NewFromInt(1) }

// Open-item lifecycle conventions on freshly created items.
const (
	openItemPostedStatus = 2
	openItemOpenStatus   = 1
)

// BuildJournalEntryPayloads turns a validated context into the persistable
// header, line, analytical and open-item rows. It is pure: all identifiers
// and timestamps come in as arguments, so the same inputs always produce
// the same payloads. uniqueNumbers carries one pre-allocated line counter
// per line context, in order.
func BuildJournalEntryPayloads(
	entry *domain.JournalEntryContext,
	uniqueNumbers []int64,
	currentUser string,
	now time.Time,
) (*domain.JournalEntry, []domain.OpenItem, error) {
	if len(uniqueNumbers) != len(entry.Lines) {
		return nil, nil, fmt.Errorf("%w: expected %d line counters, got %d",
			apperrors.ErrInternal, len(entry.Lines), len(uniqueNumbers))
	}

	header := buildHeaderPayload(entry, currentUser, now)

	var openItems []domain.OpenItem
	header.Lines = make([]domain.JournalEntryLine, 0, len(entry.Lines))
	for i, line := range entry.Lines {
		unique := uniqueNumbers[i]
		row := buildLinePayload(entry, line, unique, currentUser, now)
		header.Lines = append(header.Lines, row)

		if line.LedgerType == domain.LedgerTypeLegal && line.BusinessPartner != nil && line.Collective != "" {
			item, err := buildOpenItemPayload(entry, line, unique, currentUser, now)
			if err != nil {
				return nil, nil, err
			}
			openItems = append(openItems, item)
		}
	}

	return header, openItems, nil
}

func buildHeaderPayload(entry *domain.JournalEntryContext, currentUser string, now time.Time) *domain.JournalEntry {
	header := &domain.JournalEntry{
		JournalEntryType:        entry.DocumentType.DocumentType,
		Journal:                 entry.DocumentType.DefaultJournal,
		JournalEntryTransaction: entry.EntryTransaction,
		Company:                 entry.Company,
		Site:                    entry.Site,
		AccountingDate:          entry.AccountingDate,
		EntryDate:               entry.AccountingDate,
		DueDate:                 entry.AccountingDate,
		ValueDate:               entry.AccountingDate,
		VatDate:                 entry.AccountingDate,
		BankDate:                entry.AccountingDate,
		FiscalYear:              entry.FiscalYear,
		Period:                  entry.Period,
		Category:                entry.Category,
		JournalEntryStatus:      entry.Status,
		Source:                  entry.Source,
		TypeOfOpenItem:          entry.TypeOfOpenItem,
		Description:             entry.Description,
		Reference:               entry.Reference,
		SourceDocument:          entry.SourceDocument,
		SourceDocumentDate:      entry.SourceDocumentDate,
		TransactionCurrency:     entry.SourceCurrency,
		RateType:                entry.RateType,
		RateDate:                entry.RateDate,
		Reversing:               domain.NoYesFromBool(entry.IsReversing),
		ReversingDate:           entry.ReversingDate,
		Reminder:                entry.DocumentType.Reminders,
		PayApproval:             domain.PaymentApprovalAuthorizedToPay,
		RowStamp:                domain.NewRowStamp(currentUser, now),
		CreateDate:              now,
		UpdateDate:              now,
	}

	ratesByLedger := make(map[string]domain.CurrencyRate, len(entry.CurrencyRates))
	for _, rate := range entry.CurrencyRates {
		ratesByLedger[rate.Ledger] = rate
	}
	for i, ledger := range entry.Ledgers {
		if i >= domain.MaxLedgerSlots {
			break
		}
		slot := domain.LedgerRateSlot{
			Ledger:            ledger.Code,
			ReferenceCurrency: ledger.Currency,
		}
		if rate, ok := ratesByLedger[ledger.Code]; ok && !rate.Rate.IsZero() {
			slot.RateMultiplier = rate.Rate
			slot.RateDivisor = rate.Divisor
		}
		if slot.RateMultiplier.IsZero() {
			slot.RateMultiplier = oneDecimal()
		}
		if slot.RateDivisor.IsZero() {
			slot.RateDivisor = oneDecimal()
		}
		header.LedgerSlots[i] = slot
	}

	return header
}

func buildLinePayload(entry *domain.JournalEntryContext, line domain.JournalEntryLineContext, unique int64, currentUser string, now time.Time) domain.JournalEntryLine {
	partner := ""
	if line.BusinessPartner != nil {
		partner = line.BusinessPartner.Code
	}

	row := domain.JournalEntryLine{
		JournalEntryType:    entry.DocumentType.DocumentType,
		LedgerTypeNumber:    line.LedgerType,
		Ledger:              line.Ledger,
		Company:             entry.Company,
		Site:                entry.Site,
		AccountingDate:      entry.AccountingDate,
		FiscalYear:          line.FiscalYear,
		Period:              line.Period,
		UniqueNumber:        unique,
		LineNumber:          line.LineNumber,
		Identifier:          strconv.FormatInt(unique, 10),
		ChartOfAccounts:     line.PlanCode,
		ControlAccount:      line.Collective,
		Account:             line.Account,
		BusinessPartner:     partner,
		Sign:                line.Amounts.Sign,
		TransactionCurrency: line.Amounts.Currency,
		TransactionAmount:   line.Amounts.CurrencyAmount,
		LedgerCurrency:      line.Amounts.LedgerCurrency,
		LedgerAmount:        line.Amounts.LedgerAmount,
		Quantity:            line.Quantity,
		NonFinancialUnit:    line.NonFinancialUnit,
		LineDescription:     line.LineDescription,
		FreeReference:       line.FreeReference,
		Tax1:                line.TaxCode,
		RowStamp:            domain.NewRowStamp(currentUser, now),
	}

	if analytic, ok := buildAnalyticalLinePayload(entry, line, row, currentUser, now); ok {
		row.Analytics = append(row.Analytics, analytic)
	}
	return row
}

// buildAnalyticalLinePayload places the line's dimension values into their
// configured positional slots. Lines without dimensions carry no analytics.
func buildAnalyticalLinePayload(
	entry *domain.JournalEntryContext,
	line domain.JournalEntryLineContext,
	row domain.JournalEntryLine,
	currentUser string,
	now time.Time,
) (domain.JournalEntryAnalyticalLine, bool) {
	if len(line.Dimensions) == 0 {
		return domain.JournalEntryAnalyticalLine{}, false
	}

	analytic := domain.JournalEntryAnalyticalLine{
		JournalEntryType:     row.JournalEntryType,
		LedgerTypeNumber:     row.LedgerTypeNumber,
		LineNumber:           row.LineNumber,
		AnalyticalLineNumber: 1,
		Identifier:           row.Identifier,
		Ledger:               row.Ledger,
		Company:              row.Company,
		Site:                 row.Site,
		AccountingDate:       row.AccountingDate,
		UniqueNumber:         row.UniqueNumber,
		ChartOfAccounts:      row.ChartOfAccounts,
		Account:              row.Account,
		BusinessPartner:      row.BusinessPartner,
		Sign:                 row.Sign,
		Currency:             row.TransactionCurrency,
		TransactionAmount:    row.TransactionAmount,
		ReferenceCurrency:    row.LedgerCurrency,
		ReferenceAmount:      row.LedgerAmount,
		Quantity:             row.Quantity,
		NonFinancialUnit:     row.NonFinancialUnit,
		RowStamp:             domain.NewRowStamp(currentUser, now),
	}

	for field, value := range line.Dimensions {
		config, ok := entry.DimensionTypesMap[field]
		if !ok || config.FieldNumber < 1 || config.FieldNumber > domain.MaxDimensionSlots {
			continue
		}
		analytic.DimensionTypes[config.FieldNumber-1] = config.Code
		analytic.Dimensions[config.FieldNumber-1] = value
	}

	return analytic, true
}

// buildOpenItemPayload derives the payable/receivable row of one
// legal-ledger line carrying a business partner on a control account.
func buildOpenItemPayload(entry *domain.JournalEntryContext, line domain.JournalEntryLineContext, unique int64, currentUser string, now time.Time) (domain.OpenItem, error) {
	info, err := resolvePartnerInfo(line.LineNumber, *line.BusinessPartner)
	if err != nil {
		return domain.OpenItem{}, err
	}

	return domain.OpenItem{
		DocumentType:                   entry.DocumentType.DocumentType,
		LineNumber:                     line.LineNumber,
		OpenItemLineNumber:             1,
		Company:                        entry.Company,
		Site:                           entry.Site,
		Currency:                       line.Amounts.Currency,
		ControlAccount:                 line.Collective,
		BusinessPartner:                info.Code,
		BusinessPartnerType:            info.PartnerType,
		PayToOrPayByBusinessPartner:    info.PayToOrPayBy,
		BusinessPartnerAddress:         info.PartnerAddress,
		DueDate:                        entry.AccountingDate,
		PaymentMethod:                  info.PaymentMethod,
		PaymentType:                    info.PaymentType,
		Sign:                           line.Amounts.Sign,
		AmountInCurrency:               line.Amounts.CurrencyAmount,
		AmountInCompanyCurrency:        line.Amounts.LedgerAmount,
		CanBeReminded:                  entry.DocumentType.Reminders,
		PaymentApprovalLevel:           domain.PaymentApprovalAuthorizedToPay,
		PostedStatus:                   openItemPostedStatus,
		ClosedStatus:                   openItemOpenStatus,
		FiscalYear:                     line.FiscalYear,
		Period:                         line.Period,
		TypeOfOpenItem:                 entry.TypeOfOpenItem,
		UniqueNumber:                   fmt.Sprintf("%d/%d", unique, line.LineNumber),
		JournalEntryLineInternalNumber: unique,
		RowStamp:                       domain.NewRowStamp(currentUser, now),
		CreateDate:                     now,
	}, nil
}

// resolvePartnerInfo routes payment data off the partner record, customer
// role first.
func resolvePartnerInfo(lineNumber int, partner domain.BusinessPartner) (domain.OpenItemBusinessPartnerInfo, error) {
	info := domain.OpenItemBusinessPartnerInfo{
		Code:          partner.Code,
		PaymentMethod: partner.PaymentMethod,
		PaymentType:   partner.PaymentType,
	}

	switch {
	case partner.IsCustomer.Bool():
		info.PartnerType = domain.BusinessPartnerCustomer
		info.PayToOrPayBy = partner.PayByCustomer
		info.PartnerAddress = partner.PayByCustomerAddress
	case partner.IsSupplier.Bool():
		info.PartnerType = domain.BusinessPartnerSupplier
		info.PayToOrPayBy = partner.PayToBusinessPartner
		info.PartnerAddress = partner.PayToBusinessPartnerAddress
	default:
		return domain.OpenItemBusinessPartnerInfo{}, fmt.Errorf("%w: line #%d: business partner %s is neither a customer nor a supplier",
			apperrors.ErrValidation, lineNumber, partner.Code)
	}

	if info.PayToOrPayBy == "" {
		info.PayToOrPayBy = partner.Code
	}
	return info, nil
}

// BuildOpenItemArchivePayloads mirrors every open item into its archive
// row, consuming one pre-allocated identifier per item.
func BuildOpenItemArchivePayloads(openItems []domain.OpenItem, identifiers []int64, currentUser string, now time.Time) ([]domain.OpenItemArchive, error) {
	if len(identifiers) != len(openItems) {
		return nil, fmt.Errorf("%w: expected %d archive identifiers, got %d",
			apperrors.ErrInternal, len(openItems), len(identifiers))
	}

	archives := make([]domain.OpenItemArchive, len(openItems))
	for i, item := range openItems {
		archives[i] = domain.OpenItemArchive{
			Identifier:              identifiers[i],
			DocumentType:            item.DocumentType,
			Document:                item.DocumentNumber,
			LineNumber:              item.LineNumber,
			DueDateNumber:           item.OpenItemLineNumber,
			InternalNumber:          item.JournalEntryLineInternalNumber,
			Company:                 item.Company,
			Site:                    item.Site,
			Currency:                item.Currency,
			Collective:              item.ControlAccount,
			BusinessPartner:         item.BusinessPartner,
			BusinessPartnerType:     item.BusinessPartnerType,
			PayToBusinessPartner:    item.PayToOrPayByBusinessPartner,
			DueDate:                 item.DueDate,
			Sign:                    item.Sign,
			AmountInCurrency:        item.AmountInCurrency,
			AmountInCompanyCurrency: item.AmountInCompanyCurrency,
			PaymentApprovalLevel:    item.PaymentApprovalLevel,
			PostedStatus:            item.PostedStatus,
			ClosedStatus:            item.ClosedStatus,
			TypeOfOpenItem:          item.TypeOfOpenItem,
			EventDate:               item.DueDate,
			RowStamp:                domain.NewRowStamp(currentUser, now),
			CreateDate:              now,
		}
	}
	return archives, nil
}
