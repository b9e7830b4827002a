package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
	portsrepo "github.com/finworks/erp_financials_api/internal/core/ports/repositories"
)

// PgxJournalEntryRepository persists the journal entry graph. All writes
// are explicit ordered inserts on a caller-owned transaction; nothing
// cascades.
type PgxJournalEntryRepository struct {
	BaseRepository
}

func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryWithTx {
	return &PgxJournalEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalEntryRepositoryWithTx = (*PgxJournalEntryRepository)(nil)

// Ledger rate slots are stored as parallel arrays, one element per slot.
const insertJournalEntryQuery = `
	INSERT INTO journal_entries (
		journal_entry_type, journal_entry_number, journal, journal_entry_transaction,
		company, site, accounting_date, entry_date, due_date, value_date, vat_date, bank_date,
		fiscal_year, period, category, journal_entry_status, source, type_of_open_item,
		description, reference, source_document, source_document_date,
		transaction_currency, rate_type, rate_date, reversing, reversing_date,
		reminder, pay_approval, excel_file_name,
		slot_ledgers, slot_currencies, slot_rate_multipliers, slot_rate_divisors,
		create_user, update_user, create_datetime, update_datetime, single_id,
		create_date, update_date
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
		$31, $32, $33, $34, $35, $36, $37, $38, $39, $40, $41
	);
`

const insertJournalEntryLineQuery = `
	INSERT INTO journal_entry_lines (
		journal_entry_type, journal_entry_number, ledger_type_number, ledger,
		company, site, accounting_date, fiscal_year, period,
		unique_number, line_number, identifier, chart_of_accounts, control_account,
		account, business_partner, sign, transaction_currency, transaction_amount,
		ledger_currency, ledger_amount, quantity, non_financial_unit,
		line_description, free_reference, tax_1,
		create_user, update_user, create_datetime, update_datetime, single_id
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31
	);
`

const insertAnalyticalLineQuery = `
	INSERT INTO journal_entry_analytical_lines (
		journal_entry_type, journal_entry_number, ledger_type_number, line_number,
		analytical_line_number, identifier, ledger, company, site, accounting_date,
		unique_number, chart_of_accounts, account, business_partner, sign,
		currency, transaction_amount, reference_currency, reference_amount,
		quantity, non_financial_unit, dimension_types, dimensions,
		create_user, update_user, create_datetime, update_datetime, single_id
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22, $23, $24, $25, $26, $27, $28
	);
`

// InsertJournalEntry inserts the header, then its lines, then their
// analytical lines, in that order.
func (r *PgxJournalEntryRepository) InsertJournalEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	slotLedgers := make([]string, domain.MaxLedgerSlots)
	slotCurrencies := make([]string, domain.MaxLedgerSlots)
	slotMultipliers := make([]string, domain.MaxLedgerSlots)
	slotDivisors := make([]string, domain.MaxLedgerSlots)
	for i, slot := range entry.LedgerSlots {
		slotLedgers[i] = slot.Ledger
		slotCurrencies[i] = slot.ReferenceCurrency
		slotMultipliers[i] = decimalSlotString(slot.RateMultiplier)
		slotDivisors[i] = decimalSlotString(slot.RateDivisor)
	}

	_, err := tx.Exec(ctx, insertJournalEntryQuery,
		entry.JournalEntryType, entry.JournalEntryNumber, entry.Journal, entry.JournalEntryTransaction,
		entry.Company, entry.Site, entry.AccountingDate, entry.EntryDate, entry.DueDate,
		entry.ValueDate, entry.VatDate, entry.BankDate,
		entry.FiscalYear, entry.Period, int(entry.Category), int(entry.JournalEntryStatus),
		int(entry.Source), entry.TypeOfOpenItem,
		entry.Description, entry.Reference, entry.SourceDocument, entry.SourceDocumentDate,
		entry.TransactionCurrency, int(entry.RateType), entry.RateDate,
		int(entry.Reversing), entry.ReversingDate,
		int(entry.Reminder), int(entry.PayApproval), entry.ExcelFileName,
		slotLedgers, slotCurrencies, slotMultipliers, slotDivisors,
		entry.CreateUser, entry.UpdateUser, entry.CreateDatetime, entry.UpdateDatetime, entry.SingleID,
		entry.CreateDate, entry.UpdateDate,
	)
	if err != nil {
		return translateTxError("failed to insert journal entry header "+entry.JournalEntryNumber, err)
	}

	batch := &pgx.Batch{}
	for _, line := range entry.Lines {
		batch.Queue(insertJournalEntryLineQuery,
			line.JournalEntryType, line.JournalEntryNumber, int(line.LedgerTypeNumber), line.Ledger,
			line.Company, line.Site, line.AccountingDate, line.FiscalYear, line.Period,
			line.UniqueNumber, line.LineNumber, line.Identifier, line.ChartOfAccounts, line.ControlAccount,
			line.Account, line.BusinessPartner, int(line.Sign), line.TransactionCurrency, line.TransactionAmount,
			line.LedgerCurrency, line.LedgerAmount, line.Quantity, line.NonFinancialUnit,
			line.LineDescription, line.FreeReference, line.Tax1,
			line.CreateUser, line.UpdateUser, line.CreateDatetime, line.UpdateDatetime, line.SingleID,
		)
		for _, analytic := range line.Analytics {
			batch.Queue(insertAnalyticalLineQuery,
				analytic.JournalEntryType, analytic.JournalEntryNumber, int(analytic.LedgerTypeNumber), analytic.LineNumber,
				analytic.AnalyticalLineNumber, analytic.Identifier, analytic.Ledger, analytic.Company,
				analytic.Site, analytic.AccountingDate,
				analytic.UniqueNumber, analytic.ChartOfAccounts, analytic.Account, analytic.BusinessPartner, int(analytic.Sign),
				analytic.Currency, analytic.TransactionAmount, analytic.ReferenceCurrency, analytic.ReferenceAmount,
				analytic.Quantity, analytic.NonFinancialUnit, analytic.DimensionTypes[:], analytic.Dimensions[:],
				analytic.CreateUser, analytic.UpdateUser, analytic.CreateDatetime, analytic.UpdateDatetime, analytic.SingleID,
			)
		}
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateTxError("failed to insert journal entry lines of "+entry.JournalEntryNumber, err)
	}
	return nil
}

const insertOpenItemQuery = `
	INSERT INTO open_items (
		document_type, document_number, line_number, open_item_line_number,
		company, site, currency, control_account, business_partner, business_partner_type,
		pay_to_or_pay_by, business_partner_address, due_date, payment_method, payment_type,
		sign, amount_in_currency, amount_in_company_currency, can_be_reminded,
		payment_approval_level, posted_status, closed_status,
		fiscal_year, period, type_of_open_item, unique_number, journal_entry_line_internal_number,
		create_user, update_user, create_datetime, update_datetime, single_id, create_date
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33
	);
`

// InsertOpenItems inserts the open items derived from a new entry.
func (r *PgxJournalEntryRepository) InsertOpenItems(ctx context.Context, tx pgx.Tx, items []domain.OpenItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(insertOpenItemQuery,
			item.DocumentType, item.DocumentNumber, item.LineNumber, item.OpenItemLineNumber,
			item.Company, item.Site, item.Currency, item.ControlAccount, item.BusinessPartner, int(item.BusinessPartnerType),
			item.PayToOrPayByBusinessPartner, item.BusinessPartnerAddress, item.DueDate, item.PaymentMethod, item.PaymentType,
			int(item.Sign), item.AmountInCurrency, item.AmountInCompanyCurrency, int(item.CanBeReminded),
			int(item.PaymentApprovalLevel), item.PostedStatus, item.ClosedStatus,
			item.FiscalYear, item.Period, item.TypeOfOpenItem, item.UniqueNumber, item.JournalEntryLineInternalNumber,
			item.CreateUser, item.UpdateUser, item.CreateDatetime, item.UpdateDatetime, item.SingleID, item.CreateDate,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateTxError("failed to insert open items", err)
	}
	return nil
}

const insertOpenItemArchiveQuery = `
	INSERT INTO open_item_archives (
		identifier, document_type, document, line_number, due_date_number, internal_number,
		company, site, currency, collective, business_partner, business_partner_type,
		pay_to_business_partner, due_date, sign, amount_in_currency, amount_in_company_currency,
		payment_approval_level, posted_status, closed_status, type_of_open_item, event_date,
		create_user, update_user, create_datetime, update_datetime, single_id, create_date
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22, $23, $24, $25, $26, $27, $28
	);
`

// InsertOpenItemArchives inserts the archive mirrors of created open items.
func (r *PgxJournalEntryRepository) InsertOpenItemArchives(ctx context.Context, tx pgx.Tx, archives []domain.OpenItemArchive) error {
	if len(archives) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, archive := range archives {
		batch.Queue(insertOpenItemArchiveQuery,
			archive.Identifier, archive.DocumentType, archive.Document, archive.LineNumber,
			archive.DueDateNumber, archive.InternalNumber,
			archive.Company, archive.Site, archive.Currency, archive.Collective,
			archive.BusinessPartner, int(archive.BusinessPartnerType),
			archive.PayToBusinessPartner, archive.DueDate, int(archive.Sign),
			archive.AmountInCurrency, archive.AmountInCompanyCurrency,
			int(archive.PaymentApprovalLevel), archive.PostedStatus, archive.ClosedStatus,
			archive.TypeOfOpenItem, archive.EventDate,
			archive.CreateUser, archive.UpdateUser, archive.CreateDatetime, archive.UpdateDatetime,
			archive.SingleID, archive.CreateDate,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return translateTxError("failed to insert open item archives", err)
	}
	return nil
}

const selectJournalEntryQuery = `
	SELECT journal_entry_type, journal_entry_number, journal, journal_entry_transaction,
		company, site, accounting_date, entry_date, due_date, value_date, vat_date, bank_date,
		fiscal_year, period, category, journal_entry_status, source, type_of_open_item,
		description, reference, source_document, source_document_date,
		transaction_currency, rate_type, rate_date, reversing, reversing_date,
		reminder, pay_approval, excel_file_name,
		slot_ledgers, slot_currencies, slot_rate_multipliers, slot_rate_divisors,
		create_user, update_user, create_datetime, update_datetime, single_id,
		create_date, update_date
	FROM journal_entries
`

// FindByTypeAndNumber retrieves one entry with its lines and analytics.
func (r *PgxJournalEntryRepository) FindByTypeAndNumber(ctx context.Context, journalEntryType, journalEntryNumber string) (*domain.JournalEntry, error) {
	query := selectJournalEntryQuery + ` WHERE journal_entry_type = $1 AND journal_entry_number = $2;`
	entry, err := r.scanHeader(r.Pool.QueryRow(ctx, query, journalEntryType, journalEntryNumber))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	if err := r.loadLines(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// FindLatestByNumber retrieves the entry with the number regardless of
// type, preferring the highest-sorting type.
func (r *PgxJournalEntryRepository) FindLatestByNumber(ctx context.Context, journalEntryNumber string) (*domain.JournalEntry, error) {
	query := selectJournalEntryQuery + ` WHERE journal_entry_number = $1 ORDER BY journal_entry_type DESC LIMIT 1;`
	entry, err := r.scanHeader(r.Pool.QueryRow(ctx, query, journalEntryNumber))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	if err := r.loadLines(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// FindStatus retrieves only the natural key and status of an entry.
func (r *PgxJournalEntryRepository) FindStatus(ctx context.Context, journalEntryNumber string) (*domain.JournalEntry, error) {
	query := `
		SELECT journal_entry_type, journal_entry_number, journal_entry_status
		FROM journal_entries
		WHERE journal_entry_number = $1
		ORDER BY journal_entry_type DESC
		LIMIT 1;
	`
	var entry domain.JournalEntry
	var status int
	err := r.Pool.QueryRow(ctx, query, journalEntryNumber).Scan(
		&entry.JournalEntryType, &entry.JournalEntryNumber, &status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entry status "+journalEntryNumber, err)
	}
	entry.JournalEntryStatus = domain.JournalStatus(status)
	return &entry, nil
}

func (r *PgxJournalEntryRepository) scanHeader(row pgx.Row) (*domain.JournalEntry, error) {
	var (
		entry                                   domain.JournalEntry
		category, status, source                int
		rateType, reversing, reminder, approve  int
		slotLedgers, slotCurrencies             []string
		slotMultipliers, slotDivisors           []string
	)
	err := row.Scan(
		&entry.JournalEntryType, &entry.JournalEntryNumber, &entry.Journal, &entry.JournalEntryTransaction,
		&entry.Company, &entry.Site, &entry.AccountingDate, &entry.EntryDate, &entry.DueDate,
		&entry.ValueDate, &entry.VatDate, &entry.BankDate,
		&entry.FiscalYear, &entry.Period, &category, &status, &source, &entry.TypeOfOpenItem,
		&entry.Description, &entry.Reference, &entry.SourceDocument, &entry.SourceDocumentDate,
		&entry.TransactionCurrency, &rateType, &entry.RateDate, &reversing, &entry.ReversingDate,
		&reminder, &approve, &entry.ExcelFileName,
		&slotLedgers, &slotCurrencies, &slotMultipliers, &slotDivisors,
		&entry.CreateUser, &entry.UpdateUser, &entry.CreateDatetime, &entry.UpdateDatetime, &entry.SingleID,
		&entry.CreateDate, &entry.UpdateDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entry header", err)
	}

	entry.Category = domain.JournalCategory(category)
	entry.JournalEntryStatus = domain.JournalStatus(status)
	entry.Source = domain.EntryOrigin(source)
	entry.RateType = domain.RateType(rateType)
	entry.Reversing = domain.NoYes(reversing)
	entry.Reminder = domain.NoYes(reminder)
	entry.PayApproval = domain.PaymentApprovalLevel(approve)

	for i := 0; i < domain.MaxLedgerSlots; i++ {
		slot := domain.LedgerRateSlot{}
		if i < len(slotLedgers) {
			slot.Ledger = slotLedgers[i]
		}
		if i < len(slotCurrencies) {
			slot.ReferenceCurrency = slotCurrencies[i]
		}
		if i < len(slotMultipliers) {
			if slot.RateMultiplier, err = decimalFromSlot(slotMultipliers[i]); err != nil {
				return nil, apperrors.NewAppError(500, "invalid stored rate multiplier", err)
			}
		}
		if i < len(slotDivisors) {
			if slot.RateDivisor, err = decimalFromSlot(slotDivisors[i]); err != nil {
				return nil, apperrors.NewAppError(500, "invalid stored rate divisor", err)
			}
		}
		entry.LedgerSlots[i] = slot
	}
	return &entry, nil
}

const selectJournalEntryLinesQuery = `
	SELECT journal_entry_type, journal_entry_number, ledger_type_number, ledger,
		company, site, accounting_date, fiscal_year, period,
		unique_number, line_number, identifier, chart_of_accounts, control_account,
		account, business_partner, sign, transaction_currency, transaction_amount,
		ledger_currency, ledger_amount, quantity, non_financial_unit,
		line_description, free_reference, tax_1,
		create_user, update_user, create_datetime, update_datetime, single_id
	FROM journal_entry_lines
	WHERE journal_entry_type = $1 AND journal_entry_number = $2
	ORDER BY line_number, ledger_type_number;
`

const selectAnalyticalLinesQuery = `
	SELECT journal_entry_type, journal_entry_number, ledger_type_number, line_number,
		analytical_line_number, identifier, ledger, company, site, accounting_date,
		unique_number, chart_of_accounts, account, business_partner, sign,
		currency, transaction_amount, reference_currency, reference_amount,
		quantity, non_financial_unit, dimension_types, dimensions,
		create_user, update_user, create_datetime, update_datetime, single_id
	FROM journal_entry_analytical_lines
	WHERE journal_entry_type = $1 AND journal_entry_number = $2
	ORDER BY line_number, ledger_type_number, analytical_line_number;
`

// loadLines attaches the entry's lines and their analytical lines.
func (r *PgxJournalEntryRepository) loadLines(ctx context.Context, entry *domain.JournalEntry) error {
	rows, err := r.Pool.Query(ctx, selectJournalEntryLinesQuery, entry.JournalEntryType, entry.JournalEntryNumber)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query journal entry lines", err)
	}
	defer rows.Close()

	// (line number, ledger type) -> index into entry.Lines
	lineIndex := make(map[string]int)
	for rows.Next() {
		var line domain.JournalEntryLine
		var ledgerType, sign int
		if err := rows.Scan(
			&line.JournalEntryType, &line.JournalEntryNumber, &ledgerType, &line.Ledger,
			&line.Company, &line.Site, &line.AccountingDate, &line.FiscalYear, &line.Period,
			&line.UniqueNumber, &line.LineNumber, &line.Identifier, &line.ChartOfAccounts, &line.ControlAccount,
			&line.Account, &line.BusinessPartner, &sign, &line.TransactionCurrency, &line.TransactionAmount,
			&line.LedgerCurrency, &line.LedgerAmount, &line.Quantity, &line.NonFinancialUnit,
			&line.LineDescription, &line.FreeReference, &line.Tax1,
			&line.CreateUser, &line.UpdateUser, &line.CreateDatetime, &line.UpdateDatetime, &line.SingleID,
		); err != nil {
			return apperrors.NewAppError(500, "failed to scan journal entry line", err)
		}
		line.LedgerTypeNumber = domain.LedgerType(ledgerType)
		line.Sign = domain.Sign(sign)
		lineIndex[lineKey(line.LineNumber, ledgerType)] = len(entry.Lines)
		entry.Lines = append(entry.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "failed to read journal entry lines", err)
	}

	analyticRows, err := r.Pool.Query(ctx, selectAnalyticalLinesQuery, entry.JournalEntryType, entry.JournalEntryNumber)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query analytical lines", err)
	}
	defer analyticRows.Close()

	for analyticRows.Next() {
		var analytic domain.JournalEntryAnalyticalLine
		var ledgerType, sign int
		var dimensionTypes, dimensions []string
		if err := analyticRows.Scan(
			&analytic.JournalEntryType, &analytic.JournalEntryNumber, &ledgerType, &analytic.LineNumber,
			&analytic.AnalyticalLineNumber, &analytic.Identifier, &analytic.Ledger, &analytic.Company,
			&analytic.Site, &analytic.AccountingDate,
			&analytic.UniqueNumber, &analytic.ChartOfAccounts, &analytic.Account, &analytic.BusinessPartner, &sign,
			&analytic.Currency, &analytic.TransactionAmount, &analytic.ReferenceCurrency, &analytic.ReferenceAmount,
			&analytic.Quantity, &analytic.NonFinancialUnit, &dimensionTypes, &dimensions,
			&analytic.CreateUser, &analytic.UpdateUser, &analytic.CreateDatetime, &analytic.UpdateDatetime, &analytic.SingleID,
		); err != nil {
			return apperrors.NewAppError(500, "failed to scan analytical line", err)
		}
		analytic.LedgerTypeNumber = domain.LedgerType(ledgerType)
		analytic.Sign = domain.Sign(sign)
		copy(analytic.DimensionTypes[:], dimensionTypes)
		copy(analytic.Dimensions[:], dimensions)

		idx, ok := lineIndex[lineKey(analytic.LineNumber, ledgerType)]
		if !ok {
			return apperrors.NewAppError(500, "analytical line without parent line", nil)
		}
		entry.Lines[idx].Analytics = append(entry.Lines[idx].Analytics, analytic)
	}
	if err := analyticRows.Err(); err != nil {
		return apperrors.NewAppError(500, "failed to read analytical lines", err)
	}
	return nil
}

func lineKey(lineNumber, ledgerType int) string {
	return fmt.Sprintf("%d/%d", lineNumber, ledgerType)
}

func decimalSlotString(v decimal.Decimal) string {
	return v.String()
}

func decimalFromSlot(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
