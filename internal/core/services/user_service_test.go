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
	"github.com/ecclesiahq/church_ledger_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	clock := fixedClock(time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC))
	suite.service = services.NewUserService(suite.mockUserRepo, clock)
}

func (suite *UserServiceTestSuite) TestCreateUser_NormalizesEmailAndHashes() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(nil, "", apperrors.ErrNotFound).Once()

	var savedHash string
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { savedHash = args.String(2) }).
		Return(nil).Once()

	req := dto.CreateUserRequest{Name: "Ana", Email: "  Ana@Example.COM ", Password: "s3cret-pass"}
	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("ana@example.com", user.Email)
	suite.NotEqual(req.Password, savedHash)
	suite.True(utils.CheckPasswordHash(req.Password, savedHash))
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()

	existing := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com"}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(existing, "some-hash", nil).Once()

	req := dto.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "s3cret-pass"}
	_, err := suite.service.CreateUser(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything, mock.Anything)
}

// Unknown email and wrong password collapse into the same failure so the
// login endpoint cannot be used to enumerate accounts.
func (suite *UserServiceTestSuite) TestAuthenticate_UniformFailure() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, "", apperrors.ErrNotFound).Once()
	_, unknownErr := suite.service.Authenticate(ctx, "ghost@example.com", "whatever")
	suite.Require().ErrorIs(unknownErr, apperrors.ErrForbidden)

	hash, err := utils.HashPassword("right-password")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com"}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(user, hash, nil).Once()
	_, wrongErr := suite.service.Authenticate(ctx, "ana@example.com", "wrong-password")
	suite.Require().ErrorIs(wrongErr, apperrors.ErrForbidden)

	suite.Equal(unknownErr.Error(), wrongErr.Error())
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()

	hash, err := utils.HashPassword("right-password")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com"}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(user, hash, nil).Once()

	got, err := suite.service.Authenticate(ctx, "Ana@Example.com", "right-password")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestFindOrCreateOAuthUser_CreatesOnFirstSignIn() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, "", apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User"), mock.AnythingOfType("string")).Return(nil).Once()

	user, err := suite.service.FindOrCreateOAuthUser(ctx, "new@example.com", "New User")

	suite.Require().NoError(err)
	suite.Equal("new@example.com", user.Email)
	suite.Equal("New User", user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateOAuthUser_ReturnsExisting() {
	ctx := context.Background()

	existing := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", Name: "Ana"}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(existing, "hash", nil).Once()

	user, err := suite.service.FindOrCreateOAuthUser(ctx, "ana@example.com", "Ana From Google")

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
