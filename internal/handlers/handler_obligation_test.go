package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecclesiahq/church_ledger_app/internal/apperrors"
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/ecclesiahq/church_ledger_app/internal/handlers"
	"github.com/ecclesiahq/church_ledger_app/internal/platform/config"
	"github.com/ecclesiahq/church_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ObligationService ---
type MockObligationService struct {
	mock.Mock
}

var _ portssvc.ObligationSvcFacade = (*MockObligationService)(nil)

func (m *MockObligationService) CreateObligation(ctx context.Context, churchID string, req dto.CreateObligationRequest, userID string) (*domain.Obligation, error) {
	args := m.Called(ctx, churchID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationService) SplitIntoInstallments(ctx context.Context, churchID string, req dto.SplitInstallmentsRequest, userID string) ([]domain.Obligation, error) {
	args := m.Called(ctx, churchID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationService) Settle(ctx context.Context, churchID, obligationID string, req dto.SettleRequest, userID string) (*domain.Obligation, error) {
	args := m.Called(ctx, churchID, obligationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationService) SettleMany(ctx context.Context, churchID string, req dto.SettleManyRequest, userID string) (*dto.SettleManyResponse, error) {
	args := m.Called(ctx, churchID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SettleManyResponse), args.Error(1)
}

func (m *MockObligationService) Cancel(ctx context.Context, churchID, obligationID, userID string) error {
	args := m.Called(ctx, churchID, obligationID, userID)
	return args.Error(0)
}

func (m *MockObligationService) GetObligationByID(ctx context.Context, churchID, obligationID, userID string) (*domain.Obligation, error) {
	args := m.Called(ctx, churchID, obligationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationService) ListObligations(ctx context.Context, churchID, userID string, params dto.ListObligationsParams) (*dto.ListObligationsResponse, error) {
	args := m.Called(ctx, churchID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListObligationsResponse), args.Error(1)
}

// --- Test Suite ---
type ObligationHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockObligationService *MockObligationService
	cfg                   *config.Config
	churchID              string
	userID                string
	now                   time.Time
}

func (suite *ObligationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockObligationService = new(MockObligationService)
	suite.cfg = &config.Config{
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "cla-test",
	}
	suite.churchID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.now = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	services := &portssvc.ServiceProvider{
		ObligationSvc: suite.mockObligationService,
		Now:           func() time.Time { return suite.now },
	}
	noRateLimit := func(c *gin.Context) { c.Next() }
	handlers.RegisterRoutes(suite.router, suite.cfg, services, noRateLimit)
}

func (suite *ObligationHandlerTestSuite) bearerToken() string {
	token, err := utils.GenerateJWT(suite.userID, suite.cfg.JWTSecret, suite.cfg.JWTExpiryDuration, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	return "Bearer " + token
}

func (suite *ObligationHandlerTestSuite) doJSON(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", suite.bearerToken())
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ObligationHandlerTestSuite) TestCreateObligation_Success() {
	req := dto.CreateObligationRequest{
		Amount:   decimal.NewFromInt(100),
		DueDate:  time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		Category: "tithe",
	}
	created := &domain.Obligation{
		ObligationID: uuid.NewString(),
		ChurchID:     suite.churchID,
		Amount:       req.Amount,
		DueDate:      req.DueDate,
		PaymentType:  domain.PaymentSingle,
		Category:     req.Category,
	}
	suite.mockObligationService.On("CreateObligation", mock.Anything, suite.churchID, mock.AnythingOfType("dto.CreateObligationRequest"), suite.userID).
		Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/churches/%s/obligations", suite.churchID), req)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.ObligationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ObligationID, resp.ObligationID)
	suite.Equal(domain.StatusOpen, resp.Status)
	suite.mockObligationService.AssertExpectations(suite.T())
}

// Responses derive status from the provider clock, not the wall clock, so a
// due date behind the injected "today" reads OVERDUE no matter when this runs.
func (suite *ObligationHandlerTestSuite) TestGetObligation_StatusUsesInjectedClock() {
	obligation := &domain.Obligation{
		ObligationID: uuid.NewString(),
		ChurchID:     suite.churchID,
		Amount:       decimal.NewFromInt(100),
		DueDate:      time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		PaymentType:  domain.PaymentSingle,
	}
	suite.mockObligationService.On("GetObligationByID", mock.Anything, suite.churchID, obligation.ObligationID, suite.userID).
		Return(obligation, nil).Once()

	w := suite.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/churches/%s/obligations/%s", suite.churchID, obligation.ObligationID), nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ObligationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusOverdue, resp.Status)

	// Rewinding the clock before the due date flips the same record to OPEN.
	suite.now = time.Date(2026, time.February, 20, 10, 0, 0, 0, time.UTC)
	suite.mockObligationService.On("GetObligationByID", mock.Anything, suite.churchID, obligation.ObligationID, suite.userID).
		Return(obligation, nil).Once()

	w = suite.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/churches/%s/obligations/%s", suite.churchID, obligation.ObligationID), nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusOpen, resp.Status)
}

func (suite *ObligationHandlerTestSuite) TestCreateObligation_MissingToken() {
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/churches/%s/obligations", suite.churchID), bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockObligationService.AssertNotCalled(suite.T(), "CreateObligation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ObligationHandlerTestSuite) TestSettle_ConflictMapsTo409() {
	obligationID := uuid.NewString()
	suite.mockObligationService.On("Settle", mock.Anything, suite.churchID, obligationID, mock.AnythingOfType("dto.SettleRequest"), suite.userID).
		Return(nil, fmt.Errorf("%w: obligation is already settled", apperrors.ErrConflict)).Once()

	body := dto.SettleRequest{PaymentDate: time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), ReceivedVia: "cash"}
	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/churches/%s/obligations/%s/settle", suite.churchID, obligationID), body)

	suite.Equal(http.StatusConflict, w.Code, w.Body.String())
}

func (suite *ObligationHandlerTestSuite) TestSettle_NotFoundMapsTo404() {
	obligationID := uuid.NewString()
	suite.mockObligationService.On("Settle", mock.Anything, suite.churchID, obligationID, mock.AnythingOfType("dto.SettleRequest"), suite.userID).
		Return(nil, fmt.Errorf("%w: church not found", apperrors.ErrNotFound)).Once()

	body := dto.SettleRequest{PaymentDate: time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)}
	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/churches/%s/obligations/%s/settle", suite.churchID, obligationID), body)

	suite.Equal(http.StatusNotFound, w.Code, w.Body.String())
}

func (suite *ObligationHandlerTestSuite) TestSplitInstallments_ReturnsBatch() {
	batchID := uuid.NewString()
	count := 3
	obligations := make([]domain.Obligation, count)
	for i := range obligations {
		index := i + 1
		obligations[i] = domain.Obligation{
			ObligationID:     uuid.NewString(),
			ChurchID:         suite.churchID,
			Amount:           decimal.NewFromFloat(333.33),
			DueDate:          time.Date(2026, time.April+time.Month(i), 10, 0, 0, 0, 0, time.UTC),
			PaymentType:      domain.PaymentInstallment,
			InstallmentIndex: &index,
			InstallmentCount: &count,
			BatchID:          &batchID,
		}
	}
	suite.mockObligationService.On("SplitIntoInstallments", mock.Anything, suite.churchID, mock.AnythingOfType("dto.SplitInstallmentsRequest"), suite.userID).
		Return(obligations, nil).Once()

	body := dto.SplitInstallmentsRequest{
		TotalAmount:  decimal.NewFromInt(1000),
		Count:        count,
		FirstDueDate: time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC),
		Category:     "event",
	}
	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/churches/%s/obligations/installments", suite.churchID), body)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.ListObligationsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Obligations, count)
	suite.Equal(batchID, *resp.Obligations[0].BatchID)
}

func (suite *ObligationHandlerTestSuite) TestCancel_NoContent() {
	obligationID := uuid.NewString()
	suite.mockObligationService.On("Cancel", mock.Anything, suite.churchID, obligationID, suite.userID).Return(nil).Once()

	w := suite.doJSON(http.MethodDelete, fmt.Sprintf("/api/v1/churches/%s/obligations/%s", suite.churchID, obligationID), nil)

	suite.Equal(http.StatusNoContent, w.Code, w.Body.String())
}

func (suite *ObligationHandlerTestSuite) TestSettleBatch_ReportsPerIDOutcomes() {
	resp := &dto.SettleManyResponse{
		Outcomes: []dto.BatchOutcome{
			{ObligationID: uuid.NewString(), Settled: true},
			{ObligationID: uuid.NewString(), Settled: false, Error: "resource not found"},
		},
		Succeeded: 1,
		Failed:    1,
	}
	suite.mockObligationService.On("SettleMany", mock.Anything, suite.churchID, mock.AnythingOfType("dto.SettleManyRequest"), suite.userID).
		Return(resp, nil).Once()

	body := dto.SettleManyRequest{
		ObligationIDs: []string{resp.Outcomes[0].ObligationID, resp.Outcomes[1].ObligationID},
		PaymentDate:   time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
	}
	w := suite.doJSON(http.MethodPost, fmt.Sprintf("/api/v1/churches/%s/obligations/settle-batch", suite.churchID), body)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var got dto.SettleManyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(1, got.Succeeded)
	suite.Equal(1, got.Failed)
	suite.Len(got.Outcomes, 2)
}

func TestObligationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ObligationHandlerTestSuite))
}
