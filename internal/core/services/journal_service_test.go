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

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockChurchSvc   *MockChurchService
	service         portssvc.JournalSvcFacade
	churchID        string
	userID          string
	cashAccount     domain.Account
	titheAccount    domain.Account
	groupAccount    domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockChurchSvc = new(MockChurchService)

	accountSvc := services.NewAccountService(suite.mockAccountRepo)
	clock := fixedClock(time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC))
	suite.service = services.NewJournalService(suite.mockJournalRepo, accountSvc, suite.mockChurchSvc, clock)

	suite.churchID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.cashAccount = domain.Account{Code: services.AccountCashGeneral, Name: "Cash", Kind: domain.KindLeaf}
	suite.titheAccount = domain.Account{Code: services.AccountRevenueTithes, Name: "Tithes", Kind: domain.KindLeaf}
	suite.groupAccount = domain.Account{Code: "4.1.1", Name: "Regular Contributions", Kind: domain.KindGroup}

	suite.mockChurchSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.churchID, domain.RoleMember).Return(nil)
	suite.mockChurchSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.churchID, domain.RoleReadOnly).Return(nil)
}

func (suite *JournalServiceTestSuite) accountsReturn(accounts ...domain.Account) {
	byCode := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a
	}
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, mock.AnythingOfType("[]string")).Return(byCode, nil).Once()
}

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	suite.accountsReturn(suite.cashAccount, suite.titheAccount)

	var saved domain.JournalEntry
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.JournalEntry) }).
		Return(nil).Once()

	req := dto.PostEntryRequest{
		Date:              time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		Memo:              "Cash tithe received during service",
		DebitAccountCode:  suite.cashAccount.Code,
		CreditAccountCode: suite.titheAccount.Code,
		Amount:            decimal.NewFromFloat(150.00),
	}

	entry, err := suite.service.PostEntry(ctx, suite.churchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(suite.churchID, entry.ChurchID)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Equal(saved.EntryID, entry.EntryID)
	// One balanced pair: the same amount leaves the credit side and lands on
	// the debit side.
	suite.Equal(req.DebitAccountCode, saved.DebitAccountCode)
	suite.Equal(req.CreditAccountCode, saved.CreditAccountCode)
	suite.True(req.Amount.Equal(saved.Amount))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		req := dto.PostEntryRequest{
			Date:              time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
			Memo:              "bad amount",
			DebitAccountCode:  suite.cashAccount.Code,
			CreditAccountCode: suite.titheAccount.Code,
			Amount:            amount,
		}
		_, err := suite.service.PostEntry(ctx, suite.churchID, req, suite.userID)
		suite.Require().ErrorIs(err, apperrors.ErrValidation, "amount %s", amount)
	}
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_SameAccountOnBothSides() {
	ctx := context.Background()

	req := dto.PostEntryRequest{
		Date:              time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		Memo:              "self transfer",
		DebitAccountCode:  suite.cashAccount.Code,
		CreditAccountCode: suite.cashAccount.Code,
		Amount:            decimal.NewFromInt(50),
	}

	_, err := suite.service.PostEntry(ctx, suite.churchID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostEntry_UnknownAccount() {
	ctx := context.Background()
	// Only the debit side resolves.
	suite.accountsReturn(suite.cashAccount)

	req := dto.PostEntryRequest{
		Date:              time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		Memo:              "posting to a code outside the chart",
		DebitAccountCode:  suite.cashAccount.Code,
		CreditAccountCode: "9.9.9.99",
		Amount:            decimal.NewFromInt(50),
	}

	_, err := suite.service.PostEntry(ctx, suite.churchID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, "9.9.9.99")
}

func (suite *JournalServiceTestSuite) TestPostEntry_GroupAccountRejected() {
	ctx := context.Background()
	suite.accountsReturn(suite.cashAccount, suite.groupAccount)

	req := dto.PostEntryRequest{
		Date:              time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
		Memo:              "posting to a grouping account",
		DebitAccountCode:  suite.cashAccount.Code,
		CreditAccountCode: suite.groupAccount.Code,
		Amount:            decimal.NewFromInt(50),
	}

	_, err := suite.service.PostEntry(ctx, suite.churchID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetEntryByID_CrossTenantLooksLikeMissing() {
	ctx := context.Background()

	entryID := uuid.NewString()
	foreign := &domain.JournalEntry{
		EntryID:  entryID,
		ChurchID: uuid.NewString(), // some other tenant
		Amount:   decimal.NewFromInt(10),
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(foreign, nil).Once()

	_, err := suite.service.GetEntryByID(ctx, suite.churchID, entryID, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestListEntries_PassesFilterThrough() {
	ctx := context.Background()

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), ChurchID: suite.churchID, Amount: decimal.NewFromInt(10)},
	}
	suite.mockJournalRepo.On("ListEntriesByChurch", ctx, suite.churchID, mock.AnythingOfType("repositories.EntryFilter")).
		Return(entries, nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.churchID, suite.userID, dto.ListEntriesParams{From: &from, Limit: 20})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Entries, 1)
	suite.Equal(entries[0].EntryID, resp.Entries[0].EntryID)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
