package services

import (
	"github.com/finworks/erp_financials_api/internal/core/domain"
	"github.com/finworks/erp_financials_api/internal/dto"
)

// mapJournalEntryToResponse shapes a committed entry for the caller. With
// isSimplified set only legal-ledger lines are returned.
func mapJournalEntryToResponse(entry *domain.JournalEntry, isSimplified bool) *dto.JournalEntryResponse {
	response := &dto.JournalEntryResponse{
		JournalEntryType:        entry.JournalEntryType,
		JournalEntryNumber:      entry.JournalEntryNumber,
		Company:                 entry.Company,
		Site:                    entry.Site,
		Journal:                 entry.Journal,
		AccountingDate:          entry.AccountingDate,
		JournalEntryStatus:      journalStatusLabel(entry.JournalEntryStatus),
		JournalEntryTransaction: entry.JournalEntryTransaction,
		TransactionCurrency:     entry.TransactionCurrency,
		JournalEntryLines:       make([]dto.JournalEntryLineResponse, 0, len(entry.Lines)),
	}

	for _, line := range entry.Lines {
		if isSimplified && line.LedgerTypeNumber != domain.LedgerTypeLegal {
			continue
		}
		response.JournalEntryLines = append(response.JournalEntryLines, mapLineToResponse(line))
	}
	return response
}

func mapLineToResponse(line domain.JournalEntryLine) dto.JournalEntryLineResponse {
	out := dto.JournalEntryLineResponse{
		LineNumber:          line.LineNumber,
		LedgerTypeNumber:    int(line.LedgerTypeNumber),
		Ledger:              line.Ledger,
		Site:                line.Site,
		AccountingDate:      line.AccountingDate,
		ChartOfAccounts:     line.ChartOfAccounts,
		ControlAccount:      line.ControlAccount,
		Account:             line.Account,
		BusinessPartner:     line.BusinessPartner,
		DebitOrCredit:       signLabel(line.Sign),
		TransactionCurrency: line.TransactionCurrency,
		TransactionAmount:   line.TransactionAmount,
		LedgerCurrency:      line.LedgerCurrency,
		LedgerAmount:        line.LedgerAmount,
		LineDescription:     line.LineDescription,
		Tax:                 line.Tax1,
	}

	for _, analytic := range line.Analytics {
		out.AnalyticalLines = append(out.AnalyticalLines, dto.JournalEntryAnalyticalLineResponse{
			AnalyticalLineNumber: analytic.AnalyticalLineNumber,
			LedgerTypeNumber:     int(analytic.LedgerTypeNumber),
			Site:                 analytic.Site,
			Dimensions:           mapDimensionSlots(analytic.DimensionTypes, analytic.Dimensions),
			TransactionAmount:    analytic.TransactionAmount,
		})
	}
	return out
}

// mapDimensionSlots reads the stored slots back into semantic fields. Slot
// positions are configuration, so each value is routed by the type code
// persisted next to it rather than by position.
func mapDimensionSlots(types, values [domain.MaxDimensionSlots]string) dto.DimensionsOutput {
	var out dto.DimensionsOutput
	for i, typeCode := range types {
		switch typeCode {
		case DimensionTypeFixture:
			out.Fixture = values[i]
		case DimensionTypeBroker:
			out.Broker = values[i]
		case DimensionTypeDepartment:
			out.Department = values[i]
		case DimensionTypeLocation:
			out.Location = values[i]
		case DimensionTypeType:
			out.Type = values[i]
		case DimensionTypeProduct:
			out.Product = values[i]
		case DimensionTypeAnalysis:
			out.Analysis = values[i]
		}
	}
	return out
}

func signLabel(sign domain.Sign) string {
	if sign == domain.SignCredit {
		return "CREDIT"
	}
	return "DEBIT"
}

func journalStatusLabel(status domain.JournalStatus) string {
	switch status {
	case domain.JournalStatusFinal:
		return "FINAL"
	default:
		return "TEMPORARY"
	}
}
