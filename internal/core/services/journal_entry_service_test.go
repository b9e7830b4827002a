package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/core/services"
	"github.com/finworks/erp_financials_api/internal/dto"
	"github.com/finworks/erp_financials_api/internal/middleware"
)

type MockJournalEntryValidator struct {
	mock.Mock
}

var _ portssvc.JournalEntryValidatorSvc = (*MockJournalEntryValidator)(nil)

func (m *MockJournalEntryValidator) Validate(ctx context.Context, input dto.CreateJournalEntryRequest) (*domain.JournalEntryContext, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntryContext), args.Error(1)
}

type JournalEntryServiceTestSuite struct {
	suite.Suite

	journalRepo  *MockJournalEntryRepository
	sequenceRepo *MockSequenceRepository
	validator    *MockJournalEntryValidator
	service      portssvc.JournalEntrySvcFacade

	ctx      context.Context
	entryCtx *domain.JournalEntryContext
}

func (s *JournalEntryServiceTestSuite) SetupTest() {
	s.journalRepo = new(MockJournalEntryRepository)
	s.sequenceRepo = new(MockSequenceRepository)
	s.validator = new(MockJournalEntryValidator)
	s.service = services.NewJournalEntryService(s.journalRepo, s.sequenceRepo, s.validator)

	s.ctx = middleware.WithCurrentUser(context.Background(), "ADMIN")
	s.entryCtx = payloadFixture()
}

// expectCreatePath wires the happy-path expectations up to the commit.
func (s *JournalEntryServiceTestSuite) expectCreatePath(documentNumber string) {
	s.validator.On("Validate", mock.Anything, mock.AnythingOfType("dto.CreateJournalEntryRequest")).
		Return(s.entryCtx, nil).Once()
	s.journalRepo.On("BeginSerializable", mock.Anything).Return(nil, nil).Once()
	s.journalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)

	for _, n := range []int64{101, 102, 103, 104} {
		s.sequenceRepo.On("NextValue", mock.Anything, mock.Anything, "SEQ_GACCENTRYD").
			Return(n, nil).Once()
	}
	s.sequenceRepo.On("NextValue", mock.Anything, mock.Anything, "SEQ_HISTODUD").
		Return(int64(9001), nil).Once()
	s.sequenceRepo.On("NextDocumentNumber", mock.Anything, mock.Anything,
		"GEN", "FRCO", "PAR01", s.entryCtx.AccountingDate, "ODJ").
		Return(documentNumber, nil).Once()
}

func (s *JournalEntryServiceTestSuite) TestCreate_PropagatesDocumentNumberAndCommits() {
	const documentNumber = "ODJ26PAR01-00000042"
	s.expectCreatePath(documentNumber)

	var insertedHeader domain.JournalEntry
	var insertedItems []domain.OpenItem
	var insertedArchives []domain.OpenItemArchive
	s.journalRepo.On("InsertJournalEntry", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) { insertedHeader = args.Get(2).(domain.JournalEntry) }).
		Return(nil).Once()
	s.journalRepo.On("InsertOpenItems", mock.Anything, mock.Anything, mock.AnythingOfType("[]domain.OpenItem")).
		Run(func(args mock.Arguments) { insertedItems = args.Get(2).([]domain.OpenItem) }).
		Return(nil).Once()
	s.journalRepo.On("InsertOpenItemArchives", mock.Anything, mock.Anything, mock.AnythingOfType("[]domain.OpenItemArchive")).
		Run(func(args mock.Arguments) { insertedArchives = args.Get(2).([]domain.OpenItemArchive) }).
		Return(nil).Once()
	s.journalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	committed := &domain.JournalEntry{
		JournalEntryType:   "ODINV",
		JournalEntryNumber: documentNumber,
		Company:            "FRCO",
		Site:               "PAR01",
		Journal:            "ODJ",
		JournalEntryStatus: domain.JournalStatusTemporary,
		Lines: []domain.JournalEntryLine{
			{LineNumber: 1, LedgerTypeNumber: domain.LedgerTypeLegal, Sign: domain.SignDebit, TransactionAmount: decimal.NewFromInt(120)},
			{LineNumber: 1, LedgerTypeNumber: 2, Sign: domain.SignDebit, TransactionAmount: decimal.NewFromInt(120)},
		},
	}
	s.journalRepo.On("FindByTypeAndNumber", mock.Anything, "ODINV", documentNumber).
		Return(committed, nil).Once()

	response, err := s.service.Create(s.ctx, dto.CreateJournalEntryRequest{})
	s.Require().NoError(err)
	s.Require().NotNil(response)
	s.Equal(documentNumber, response.JournalEntryNumber)
	s.Equal("TEMPORARY", response.JournalEntryStatus)

	s.Equal(documentNumber, insertedHeader.JournalEntryNumber)
	s.Require().Len(insertedHeader.Lines, 4)
	for _, line := range insertedHeader.Lines {
		s.Equal(documentNumber, line.JournalEntryNumber)
		for _, analytic := range line.Analytics {
			s.Equal(documentNumber, analytic.JournalEntryNumber)
		}
	}
	s.Equal("ADMIN", insertedHeader.CreateUser)

	s.Require().Len(insertedItems, 1)
	s.Equal(documentNumber, insertedItems[0].DocumentNumber)
	s.Require().Len(insertedArchives, 1)
	s.Equal(documentNumber, insertedArchives[0].Document)
	s.Equal(int64(9001), insertedArchives[0].Identifier)

	s.journalRepo.AssertExpectations(s.T())
	s.sequenceRepo.AssertExpectations(s.T())
	s.validator.AssertExpectations(s.T())
}

func (s *JournalEntryServiceTestSuite) TestCreate_ValidationFailureSkipsPersistence() {
	s.validator.On("Validate", mock.Anything, mock.AnythingOfType("dto.CreateJournalEntryRequest")).
		Return(nil, apperrors.ErrValidation).Once()

	_, err := s.service.Create(s.ctx, dto.CreateJournalEntryRequest{})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.journalRepo.AssertNotCalled(s.T(), "BeginSerializable", mock.Anything)
}

func (s *JournalEntryServiceTestSuite) TestCreate_InsertFailureRollsBack() {
	s.expectCreatePath("ODJ26PAR01-00000043")
	s.journalRepo.On("InsertJournalEntry", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).
		Return(errors.New("insert failed")).Once()

	_, err := s.service.Create(s.ctx, dto.CreateJournalEntryRequest{})
	s.Require().Error(err)
	s.journalRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
	s.journalRepo.AssertCalled(s.T(), "Rollback", mock.Anything, mock.Anything)
}

func (s *JournalEntryServiceTestSuite) TestCreate_CommitConflictSurfaces() {
	s.expectCreatePath("ODJ26PAR01-00000044")
	s.journalRepo.On("InsertJournalEntry", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	s.journalRepo.On("InsertOpenItems", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	s.journalRepo.On("InsertOpenItemArchives", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	s.journalRepo.On("Commit", mock.Anything, mock.Anything).
		Return(apperrors.NewAppError(409, "transaction conflict", apperrors.ErrConflict)).Once()

	_, err := s.service.Create(s.ctx, dto.CreateJournalEntryRequest{})
	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (s *JournalEntryServiceTestSuite) TestGetByNumber_WithType() {
	entry := &domain.JournalEntry{
		JournalEntryType:   "ODINV",
		JournalEntryNumber: "ODJ26PAR01-00000042",
		JournalEntryStatus: domain.JournalStatusTemporary,
		Lines: []domain.JournalEntryLine{
			{LineNumber: 1, LedgerTypeNumber: domain.LedgerTypeLegal, Sign: domain.SignDebit},
			{LineNumber: 1, LedgerTypeNumber: 2, Sign: domain.SignDebit},
			{LineNumber: 2, LedgerTypeNumber: domain.LedgerTypeLegal, Sign: domain.SignCredit},
		},
	}
	s.journalRepo.On("FindByTypeAndNumber", mock.Anything, "ODINV", "ODJ26PAR01-00000042").
		Return(entry, nil).Once()

	response, err := s.service.GetByNumber(s.ctx, "ODINV", "ODJ26PAR01-00000042")
	s.Require().NoError(err)
	s.Len(response.JournalEntryLines, 3)
	s.Equal("DEBIT", response.JournalEntryLines[0].DebitOrCredit)
	s.Equal("CREDIT", response.JournalEntryLines[2].DebitOrCredit)
}

func (s *JournalEntryServiceTestSuite) TestGetByNumber_RoutesDimensionsByStoredTypeCode() {
	var types, values [domain.MaxDimensionSlots]string
	// Fixture configured on slot 3, department on slot 1.
	types[2], values[2] = services.DimensionTypeFixture, "FX001"
	types[0], values[0] = services.DimensionTypeDepartment, "SALES"

	entry := &domain.JournalEntry{
		JournalEntryType:   "ODINV",
		JournalEntryNumber: "ODJ26PAR01-00000042",
		Lines: []domain.JournalEntryLine{
			{
				LineNumber:       1,
				LedgerTypeNumber: domain.LedgerTypeLegal,
				Analytics: []domain.JournalEntryAnalyticalLine{
					{AnalyticalLineNumber: 1, DimensionTypes: types, Dimensions: values},
				},
			},
		},
	}
	s.journalRepo.On("FindByTypeAndNumber", mock.Anything, "ODINV", "ODJ26PAR01-00000042").
		Return(entry, nil).Once()

	response, err := s.service.GetByNumber(s.ctx, "ODINV", "ODJ26PAR01-00000042")
	s.Require().NoError(err)
	s.Require().Len(response.JournalEntryLines, 1)
	s.Require().Len(response.JournalEntryLines[0].AnalyticalLines, 1)

	dimensions := response.JournalEntryLines[0].AnalyticalLines[0].Dimensions
	s.Equal("FX001", dimensions.Fixture)
	s.Equal("SALES", dimensions.Department)
	s.Empty(dimensions.Broker)
	s.Empty(dimensions.Location)
}

func (s *JournalEntryServiceTestSuite) TestGetByNumber_SimplifiedViewKeepsLegalLedgerOnly() {
	entry := &domain.JournalEntry{
		JournalEntryType:   "ODINV",
		JournalEntryNumber: "ODJ26PAR01-00000042",
		Lines: []domain.JournalEntryLine{
			{LineNumber: 1, LedgerTypeNumber: domain.LedgerTypeLegal},
			{LineNumber: 1, LedgerTypeNumber: 2},
			{LineNumber: 2, LedgerTypeNumber: domain.LedgerTypeLegal},
			{LineNumber: 2, LedgerTypeNumber: 2},
		},
	}
	s.journalRepo.On("FindByTypeAndNumber", mock.Anything, "ODINV", "ODJ26PAR01-00000042").
		Return(entry, nil).Once()

	ctx := middleware.WithSimplifiedView(s.ctx, true)
	response, err := s.service.GetByNumber(ctx, "ODINV", "ODJ26PAR01-00000042")
	s.Require().NoError(err)
	s.Require().Len(response.JournalEntryLines, 2)
	for _, line := range response.JournalEntryLines {
		s.Equal(int(domain.LedgerTypeLegal), line.LedgerTypeNumber)
	}
}

func (s *JournalEntryServiceTestSuite) TestGetByNumber_EmptyTypeUsesLatest() {
	entry := &domain.JournalEntry{JournalEntryType: "ODINV", JournalEntryNumber: "N1"}
	s.journalRepo.On("FindLatestByNumber", mock.Anything, "N1").Return(entry, nil).Once()

	response, err := s.service.GetByNumber(s.ctx, "", "N1")
	s.Require().NoError(err)
	s.Equal("ODINV", response.JournalEntryType)
}

func (s *JournalEntryServiceTestSuite) TestGetByNumber_NotFound() {
	s.journalRepo.On("FindByTypeAndNumber", mock.Anything, "ODINV", "MISSING").
		Return(nil, nil).Once()

	_, err := s.service.GetByNumber(s.ctx, "ODINV", "MISSING")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalEntryServiceTestSuite) TestGetStatus() {
	s.journalRepo.On("FindStatus", mock.Anything, "N1").
		Return(&domain.JournalEntry{
			JournalEntryType:   "ODINV",
			JournalEntryNumber: "N1",
			JournalEntryStatus: domain.JournalStatusFinal,
		}, nil).Once()

	response, err := s.service.GetStatus(s.ctx, "N1")
	s.Require().NoError(err)
	s.Equal("FINAL", response.JournalEntryStatus)
}

func (s *JournalEntryServiceTestSuite) TestGetStatus_NotFound() {
	s.journalRepo.On("FindStatus", mock.Anything, "MISSING").Return(nil, nil).Once()

	_, err := s.service.GetStatus(s.ctx, "MISSING")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestJournalEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalEntryServiceTestSuite))
}
