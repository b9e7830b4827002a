package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finworks/erp_financials_api/internal/apperrors"
	"github.com/finworks/erp_financials_api/internal/core/domain"
	portssvc "github.com/finworks/erp_financials_api/internal/core/ports/services"
	"github.com/finworks/erp_financials_api/internal/dto"
	"github.com/finworks/erp_financials_api/internal/handlers"
	"github.com/finworks/erp_financials_api/internal/middleware"
	"github.com/finworks/erp_financials_api/internal/platform/config"
)

// --- Mock JournalEntryService ---

type MockJournalEntryService struct {
	mock.Mock
}

var _ portssvc.JournalEntrySvcFacade = (*MockJournalEntryService)(nil)

func (m *MockJournalEntryService) Create(ctx context.Context, input dto.CreateJournalEntryRequest) (*dto.JournalEntryResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JournalEntryResponse), args.Error(1)
}

func (m *MockJournalEntryService) GetByNumber(ctx context.Context, documentType, number string) (*dto.JournalEntryResponse, error) {
	args := m.Called(ctx, documentType, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JournalEntryResponse), args.Error(1)
}

func (m *MockJournalEntryService) GetStatus(ctx context.Context, number string) (*dto.JournalEntryStatusResponse, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JournalEntryStatusResponse), args.Error(1)
}

// --- Mock ApiCredentialService ---

type MockApiCredentialService struct {
	mock.Mock
}

var _ portssvc.ApiCredentialSvcFacade = (*MockApiCredentialService)(nil)

func (m *MockApiCredentialService) Create(ctx context.Context, input dto.CreateApiCredentialRequest) (*dto.ApiCredentialResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ApiCredentialResponse), args.Error(1)
}

func (m *MockApiCredentialService) Get(ctx context.Context, input dto.GetApiCredentialRequest) (*dto.ApiCredentialResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ApiCredentialResponse), args.Error(1)
}

func (m *MockApiCredentialService) FindActiveCredential(ctx context.Context, appKey, clientID string) (*domain.ApiCredential, error) {
	args := m.Called(ctx, appKey, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApiCredential), args.Error(1)
}

type JournalEntryHandlerTestSuite struct {
	suite.Suite

	router        *gin.Engine
	journalSvc    *MockJournalEntryService
	credentialSvc *MockApiCredentialService
}

func (s *JournalEntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.journalSvc = new(MockJournalEntryService)
	s.credentialSvc = new(MockApiCredentialService)

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, &config.Config{}, &portssvc.ServiceContainer{
		JournalEntry:  s.journalSvc,
		ApiCredential: s.credentialSvc,
	})
}

func (s *JournalEntryHandlerTestSuite) expectAuthenticated() {
	s.credentialSvc.On("FindActiveCredential", mock.Anything, "key1", "client1").
		Return(&domain.ApiCredential{Login: "erp.client", ClientID: "client1", AppKey: "key1", IsActive: domain.Yes}, nil)
}

func (s *JournalEntryHandlerTestSuite) perform(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.AppKeyHeader, "key1")
	req.Header.Set(middleware.ClientIDHeader, "client1")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func (s *JournalEntryHandlerTestSuite) TestCreateJournalEntry_Created() {
	s.expectAuthenticated()
	expected := &dto.JournalEntryResponse{
		JournalEntryType:   "ODINV",
		JournalEntryNumber: "ODJ26PAR01-00000042",
		JournalEntryStatus: "TEMPORARY",
	}
	s.journalSvc.On("Create", mock.Anything, mock.AnythingOfType("dto.CreateJournalEntryRequest")).
		Return(expected, nil).Once()

	body := gin.H{
		"site":           "PAR01",
		"documentType":   "ODINV",
		"sourceCurrency": "EUR",
		"lines": []gin.H{
			{"account": "601000", "debit": "100"},
			{"account": "401000", "credit": "100"},
		},
	}
	recorder := s.perform(http.MethodPost, "/api/v1/journal-entries", body, nil)

	s.Require().Equal(http.StatusCreated, recorder.Code)
	var response dto.JournalEntryResponse
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	s.Equal("ODJ26PAR01-00000042", response.JournalEntryNumber)
	s.journalSvc.AssertExpectations(s.T())
}

func (s *JournalEntryHandlerTestSuite) TestCreateJournalEntry_MalformedBody() {
	s.expectAuthenticated()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/journal-entries", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.AppKeyHeader, "key1")
	req.Header.Set(middleware.ClientIDHeader, "client1")
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)

	s.Equal(http.StatusBadRequest, recorder.Code)
	s.journalSvc.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *JournalEntryHandlerTestSuite) TestCreateJournalEntry_ErrorMapping() {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: fmt.Errorf("%w: unbalanced", apperrors.ErrValidation), wantStatus: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("%w: site", apperrors.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "conflict", err: fmt.Errorf("%w: serialization", apperrors.ErrConflict), wantStatus: http.StatusConflict},
		{name: "internal", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError},
	}

	body := gin.H{
		"site":           "PAR01",
		"documentType":   "ODINV",
		"sourceCurrency": "EUR",
		"lines":          []gin.H{{"account": "601000", "debit": "100"}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.expectAuthenticated()
			s.journalSvc.On("Create", mock.Anything, mock.AnythingOfType("dto.CreateJournalEntryRequest")).
				Return(nil, tc.err).Once()

			recorder := s.perform(http.MethodPost, "/api/v1/journal-entries", body, nil)
			s.Equal(tc.wantStatus, recorder.Code)
		})
	}
}

func (s *JournalEntryHandlerTestSuite) TestCreateJournalEntry_InternalErrorHidesDetails() {
	s.expectAuthenticated()
	s.journalSvc.On("Create", mock.Anything, mock.AnythingOfType("dto.CreateJournalEntryRequest")).
		Return(nil, fmt.Errorf("pq: connection reset")).Once()

	body := gin.H{
		"site":           "PAR01",
		"documentType":   "ODINV",
		"sourceCurrency": "EUR",
		"lines":          []gin.H{{"account": "601000", "debit": "100"}},
	}
	recorder := s.perform(http.MethodPost, "/api/v1/journal-entries", body, nil)

	s.Equal(http.StatusInternalServerError, recorder.Code)
	s.NotContains(recorder.Body.String(), "connection reset")
}

func (s *JournalEntryHandlerTestSuite) TestGetJournalEntry_PassesTypeQuery() {
	s.expectAuthenticated()
	s.journalSvc.On("GetByNumber", mock.Anything, "ODINV", "N1").
		Return(&dto.JournalEntryResponse{JournalEntryNumber: "N1"}, nil).Once()

	recorder := s.perform(http.MethodGet, "/api/v1/journal-entries/N1?documentType=ODINV", nil, nil)
	s.Equal(http.StatusOK, recorder.Code)
	s.journalSvc.AssertExpectations(s.T())
}

func (s *JournalEntryHandlerTestSuite) TestGetJournalEntryStatus() {
	s.expectAuthenticated()
	s.journalSvc.On("GetStatus", mock.Anything, "N1").
		Return(&dto.JournalEntryStatusResponse{JournalEntryNumber: "N1", JournalEntryStatus: "TEMPORARY"}, nil).Once()

	recorder := s.perform(http.MethodGet, "/api/v1/journal-entries/N1/status", nil, nil)
	s.Require().Equal(http.StatusOK, recorder.Code)

	var response dto.JournalEntryStatusResponse
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	s.Equal("TEMPORARY", response.JournalEntryStatus)
}

func (s *JournalEntryHandlerTestSuite) TestMissingCredentialHeaders() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/journal-entries/N1", nil)
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)

	s.Equal(http.StatusUnauthorized, recorder.Code)
	s.credentialSvc.AssertNotCalled(s.T(), "FindActiveCredential", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalEntryHandlerTestSuite) TestUnknownCredentialRejected() {
	s.credentialSvc.On("FindActiveCredential", mock.Anything, "key1", "client1").
		Return(nil, nil).Once()

	recorder := s.perform(http.MethodGet, "/api/v1/journal-entries/N1", nil, nil)
	s.Equal(http.StatusUnauthorized, recorder.Code)
	s.journalSvc.AssertNotCalled(s.T(), "GetByNumber", mock.Anything, mock.Anything, mock.Anything)
}

func TestJournalEntryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JournalEntryHandlerTestSuite))
}
