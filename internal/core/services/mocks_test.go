package services_test

import (
	"context"
	"time"

	"github.com/ecclesiahq/church_ledger_app/internal/core/domain"
	portsrepo "github.com/ecclesiahq/church_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/ecclesiahq/church_ledger_app/internal/core/ports/services"
	"github.com/ecclesiahq/church_ledger_app/internal/core/services"
	"github.com/ecclesiahq/church_ledger_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// fixedClock pins the service clock to one instant so due-date and status
// derivation are deterministic.
func fixedClock(at time.Time) services.Clock {
	return func() time.Time { return at }
}

// --- Mock ObligationRepository ---

type MockObligationRepository struct {
	mock.Mock
}

var _ portsrepo.ObligationRepositoryFacade = (*MockObligationRepository)(nil)

func (m *MockObligationRepository) FindObligationByID(ctx context.Context, churchID, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, churchID, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) ListObligations(ctx context.Context, churchID string, filter portsrepo.ObligationFilter) ([]domain.Obligation, error) {
	args := m.Called(ctx, churchID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	args := m.Called(ctx, obligation)
	return args.Error(0)
}

func (m *MockObligationRepository) SaveObligations(ctx context.Context, obligations []domain.Obligation) error {
	args := m.Called(ctx, obligations)
	return args.Error(0)
}

func (m *MockObligationRepository) SettleWithEntry(ctx context.Context, obligation domain.Obligation, entry domain.JournalEntry) error {
	args := m.Called(ctx, obligation, entry)
	return args.Error(0)
}

func (m *MockObligationRepository) DeleteObligation(ctx context.Context, churchID, obligationID string) error {
	args := m.Called(ctx, churchID, obligationID)
	return args.Error(0)
}

func (m *MockObligationRepository) DeleteObligationsByBatch(ctx context.Context, churchID, batchID string) (int64, error) {
	args := m.Called(ctx, churchID, batchID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByChurch(ctx context.Context, churchID string, filter portsrepo.EntryFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, churchID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Mock RecurringRepository ---

type MockRecurringRepository struct {
	mock.Mock
}

var _ portsrepo.RecurringRepositoryFacade = (*MockRecurringRepository)(nil)

func (m *MockRecurringRepository) FindDefinitionByID(ctx context.Context, churchID, recurringDefID string) (*domain.RecurringDefinition, error) {
	args := m.Called(ctx, churchID, recurringDefID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringDefinition), args.Error(1)
}

func (m *MockRecurringRepository) ListDefinitions(ctx context.Context, churchID string, activeOnly bool) ([]domain.RecurringDefinition, error) {
	args := m.Called(ctx, churchID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringDefinition), args.Error(1)
}

func (m *MockRecurringRepository) SaveDefinitionWithOccurrence(ctx context.Context, def domain.RecurringDefinition, occurrence domain.Obligation) error {
	args := m.Called(ctx, def, occurrence)
	return args.Error(0)
}

func (m *MockRecurringRepository) UpdateDefinition(ctx context.Context, def domain.RecurringDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock ChurchRepository ---

type MockChurchRepository struct {
	mock.Mock
}

var _ portsrepo.ChurchRepositoryFacade = (*MockChurchRepository)(nil)

func (m *MockChurchRepository) FindChurchByID(ctx context.Context, churchID string) (*domain.Church, error) {
	args := m.Called(ctx, churchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Church), args.Error(1)
}

func (m *MockChurchRepository) FindUserChurchRole(ctx context.Context, userID, churchID string) (*domain.UserChurch, error) {
	args := m.Called(ctx, userID, churchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserChurch), args.Error(1)
}

func (m *MockChurchRepository) ListChurchesByUser(ctx context.Context, userID string) ([]domain.Church, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Church), args.Error(1)
}

func (m *MockChurchRepository) SaveChurch(ctx context.Context, church domain.Church) error {
	args := m.Called(ctx, church)
	return args.Error(0)
}

func (m *MockChurchRepository) AddUserToChurch(ctx context.Context, membership domain.UserChurch) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User, passwordHash string) error {
	args := m.Called(ctx, user, passwordHash)
	return args.Error(0)
}

// --- Mock ChurchService ---

type MockChurchService struct {
	mock.Mock
}

var _ portssvc.ChurchSvcFacade = (*MockChurchService)(nil)

func (m *MockChurchService) CreateChurch(ctx context.Context, req dto.CreateChurchRequest, creatorUserID string) (*domain.Church, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Church), args.Error(1)
}

func (m *MockChurchService) GetChurchByID(ctx context.Context, churchID, userID string) (*domain.Church, error) {
	args := m.Called(ctx, churchID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Church), args.Error(1)
}

func (m *MockChurchService) ListChurches(ctx context.Context, userID string) ([]domain.Church, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Church), args.Error(1)
}

func (m *MockChurchService) AddMember(ctx context.Context, churchID string, req dto.AddChurchMemberRequest, requestingUserID string) error {
	args := m.Called(ctx, churchID, req, requestingUserID)
	return args.Error(0)
}

func (m *MockChurchService) AuthorizeUserAction(ctx context.Context, userID, churchID string, requiredRole domain.ChurchRole) error {
	args := m.Called(ctx, userID, churchID, requiredRole)
	return args.Error(0)
}
