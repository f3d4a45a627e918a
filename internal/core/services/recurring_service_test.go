package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ecclesiahq/church_ledger_app/internal/apperrors"
	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/core/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RecurringServiceTestSuite struct {
	suite.Suite
	mockRecurringRepo  *MockRecurringRepository
	mockObligationRepo *MockObligationRepository
	mockChurchSvc      *MockChurchService
	churchID           string
	userID             string
}

func (suite *RecurringServiceTestSuite) SetupTest() {
	suite.mockRecurringRepo = new(MockRecurringRepository)
	suite.mockObligationRepo = new(MockObligationRepository)
	suite.mockChurchSvc = new(MockChurchService)
	suite.churchID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockChurchSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.churchID, domain.RoleMember).Return(nil)
	suite.mockChurchSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.churchID, domain.RoleReadOnly).Return(nil)
}

// newService builds the service under test with the clock pinned to today.
func (suite *RecurringServiceTestSuite) newService(today time.Time) portssvc.RecurringSvcFacade {
	return services.NewRecurringService(suite.mockRecurringRepo, suite.mockObligationRepo, suite.mockChurchSvc, fixedClock(today))
}

func (suite *RecurringServiceTestSuite) TestCreateRecurring_FirstOccurrenceInCurrentMonth() {
	ctx := context.Background()
	// March 5th, due day 10: the first occurrence is still ahead this month.
	svc := suite.newService(time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC))

	var savedDef domain.RecurringDefinition
	var savedOcc domain.Obligation
	suite.mockRecurringRepo.On("SaveDefinitionWithOccurrence", ctx, mock.AnythingOfType("domain.RecurringDefinition"), mock.AnythingOfType("domain.Obligation")).
		Run(func(args mock.Arguments) {
			savedDef = args.Get(1).(domain.RecurringDefinition)
			savedOcc = args.Get(2).(domain.Obligation)
		}).
		Return(nil).Once()

	req := dto.CreateRecurringRequest{
		Amount:    decimal.NewFromInt(200),
		Category:  "tithe",
		DueDay:    10,
		StartDate: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}

	def, occurrence, err := svc.CreateRecurring(ctx, suite.churchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(def)
	suite.Require().NotNil(occurrence)
	suite.True(def.IsActive)
	suite.Equal(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), occurrence.DueDate)
	suite.Equal(domain.PaymentRecurring, occurrence.PaymentType)
	suite.Require().NotNil(occurrence.RecurringDefID)
	suite.Equal(def.RecurringDefID, *occurrence.RecurringDefID)
	suite.True(def.Amount.Equal(occurrence.Amount))
	suite.Require().NotNil(savedOcc.RecurringDefID)
	suite.Equal(savedDef.RecurringDefID, *savedOcc.RecurringDefID)
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestCreateRecurring_DueDayPassedRollsForward() {
	ctx := context.Background()
	// March 15th, due day 10: this month's slot is gone, first occurrence
	// lands in April.
	svc := suite.newService(time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC))

	suite.mockRecurringRepo.On("SaveDefinitionWithOccurrence", ctx, mock.AnythingOfType("domain.RecurringDefinition"), mock.AnythingOfType("domain.Obligation")).Return(nil).Once()

	req := dto.CreateRecurringRequest{
		Amount:    decimal.NewFromInt(200),
		Category:  "tithe",
		DueDay:    10,
		StartDate: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}

	_, occurrence, err := svc.CreateRecurring(ctx, suite.churchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC), occurrence.DueDate)
}

func (suite *RecurringServiceTestSuite) TestCreateRecurring_DueDayOutOfRange() {
	ctx := context.Background()
	svc := suite.newService(time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC))

	for _, day := range []int{0, 32, -1} {
		req := dto.CreateRecurringRequest{
			Amount:    decimal.NewFromInt(200),
			Category:  "tithe",
			DueDay:    day,
			StartDate: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		}
		_, _, err := svc.CreateRecurring(ctx, suite.churchID, req, suite.userID)
		suite.Require().ErrorIs(err, apperrors.ErrValidation, "due day %d", day)
	}
	suite.mockRecurringRepo.AssertNotCalled(suite.T(), "SaveDefinitionWithOccurrence", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestCreateRecurring_EndBeforeStart() {
	ctx := context.Background()
	svc := suite.newService(time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC))

	end := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateRecurringRequest{
		Amount:    decimal.NewFromInt(200),
		Category:  "tithe",
		DueDay:    10,
		StartDate: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end,
	}

	_, _, err := svc.CreateRecurring(ctx, suite.churchID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RecurringServiceTestSuite) TestRenew_MaterializesNextOccurrence() {
	ctx := context.Background()
	svc := suite.newService(time.Date(2026, time.April, 20, 9, 0, 0, 0, time.UTC))

	defID := uuid.NewString()
	def := &domain.RecurringDefinition{
		RecurringDefID: defID,
		ChurchID:       suite.churchID,
		Amount:         decimal.NewFromInt(200),
		Category:       "tithe",
		DueDay:         10,
		StartDate:      time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}
	suite.mockRecurringRepo.On("FindDefinitionByID", ctx, suite.churchID, defID).Return(def, nil).Once()

	var saved domain.Obligation
	suite.mockObligationRepo.On("SaveObligation", ctx, mock.AnythingOfType("domain.Obligation")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Obligation) }).
		Return(nil).Once()

	occurrence, err := svc.Renew(ctx, suite.churchID, defID, suite.userID)

	suite.Require().NoError(err)
	// April 20th is past due day 10, so the renewal lands on May 10th.
	suite.Equal(time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC), occurrence.DueDate)
	suite.Equal(saved.ObligationID, occurrence.ObligationID)
	suite.Require().NotNil(saved.RecurringDefID)
	suite.Equal(defID, *saved.RecurringDefID)
}

func (suite *RecurringServiceTestSuite) TestRenew_InactiveDefinition() {
	ctx := context.Background()
	svc := suite.newService(time.Date(2026, time.April, 20, 9, 0, 0, 0, time.UTC))

	defID := uuid.NewString()
	def := &domain.RecurringDefinition{
		RecurringDefID: defID,
		ChurchID:       suite.churchID,
		Amount:         decimal.NewFromInt(200),
		DueDay:         10,
		IsActive:       false,
	}
	suite.mockRecurringRepo.On("FindDefinitionByID", ctx, suite.churchID, defID).Return(def, nil).Once()

	_, err := svc.Renew(ctx, suite.churchID, defID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockObligationRepo.AssertNotCalled(suite.T(), "SaveObligation", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestRenew_PastEndDate() {
	ctx := context.Background()
	svc := suite.newService(time.Date(2026, time.April, 20, 9, 0, 0, 0, time.UTC))

	defID := uuid.NewString()
	end := time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC)
	def := &domain.RecurringDefinition{
		RecurringDefID: defID,
		ChurchID:       suite.churchID,
		Amount:         decimal.NewFromInt(200),
		DueDay:         10,
		EndDate:        &end,
		IsActive:       true,
	}
	suite.mockRecurringRepo.On("FindDefinitionByID", ctx, suite.churchID, defID).Return(def, nil).Once()

	// The next slot would be May 10th, past the April 30th end date.
	_, err := svc.Renew(ctx, suite.churchID, defID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (suite *RecurringServiceTestSuite) TestDeactivate_SetsInactive() {
	ctx := context.Background()
	svc := suite.newService(time.Date(2026, time.April, 20, 9, 0, 0, 0, time.UTC))

	defID := uuid.NewString()
	def := &domain.RecurringDefinition{
		RecurringDefID: defID,
		ChurchID:       suite.churchID,
		Amount:         decimal.NewFromInt(200),
		DueDay:         10,
		IsActive:       true,
	}
	suite.mockRecurringRepo.On("FindDefinitionByID", ctx, suite.churchID, defID).Return(def, nil).Once()

	var updated domain.RecurringDefinition
	suite.mockRecurringRepo.On("UpdateDefinition", ctx, mock.AnythingOfType("domain.RecurringDefinition")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.RecurringDefinition) }).
		Return(nil).Once()

	err := svc.Deactivate(ctx, suite.churchID, defID, suite.userID)

	suite.Require().NoError(err)
	suite.False(updated.IsActive)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func (suite *RecurringServiceTestSuite) TestDeactivate_AlreadyInactiveIsNoOp() {
	ctx := context.Background()
	svc := suite.newService(time.Date(2026, time.April, 20, 9, 0, 0, 0, time.UTC))

	defID := uuid.NewString()
	def := &domain.RecurringDefinition{
		RecurringDefID: defID,
		ChurchID:       suite.churchID,
		Amount:         decimal.NewFromInt(200),
		DueDay:         10,
		IsActive:       false,
	}
	suite.mockRecurringRepo.On("FindDefinitionByID", ctx, suite.churchID, defID).Return(def, nil).Once()

	err := svc.Deactivate(ctx, suite.churchID, defID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRecurringRepo.AssertNotCalled(suite.T(), "UpdateDefinition", mock.Anything, mock.Anything)
}

func TestRecurringServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecurringServiceTestSuite))
}
