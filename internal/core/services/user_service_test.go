package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/apperrors"
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/core/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/SscSPs/personal_finance_app/internal/platform/config"
	"github.com/SscSPs/personal_finance_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo     *MockUserRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	categories := services.NewCategoryService(suite.mockCategoryRepo, services.WithClock(fixedClock))
	suite.service = services.NewUserService(suite.mockUserRepo, categories, services.WithClock(fixedClock))
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "  Ana@Example.com ", Password: "password123", Name: "Ana"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "ana@example.com" && user.Name == "Ana" &&
			user.PasswordHash != nil && *user.PasswordHash != req.Password &&
			user.AuthProvider == domain.ProviderLocal && user.CreatedAt.Equal(fixedNow)
	})).Return(nil).Once()
	suite.mockCategoryRepo.On("SaveCategories", ctx, mock.MatchedBy(func(cats []domain.Category) bool {
		return len(cats) == len(domain.DefaultCategories) && cats[0].IsDefault
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.True(utils.CheckPasswordHash(req.Password, *user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com"}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(existing, nil).Once()

	user, err := suite.service.CreateUser(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "password123", Name: "Ana"})

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_SeedFailureIsNotFatal() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "bob@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.mockCategoryRepo.On("SaveCategories", ctx, mock.Anything).Return(assert.AnError).Once()

	user, err := suite.service.CreateUser(ctx, dto.RegisterRequest{Email: "bob@example.com", Password: "password123", Name: "Bob"})

	suite.Require().NoError(err)
	suite.NotNil(user)
}

func (suite *UserServiceTestSuite) TestCreateUser_SaveError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "bob@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(assert.AnError).Once()

	user, err := suite.service.CreateUser(ctx, dto.RegisterRequest{Email: "bob@example.com", Password: "password123", Name: "Bob"})

	suite.Nil(user)
	suite.ErrorIs(err, assert.AnError)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "SaveCategories", mock.Anything, mock.Anything)
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", PasswordHash: &hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(stored, nil)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	user, err := suite.service.AuthenticateUser(ctx, "ANA@example.com", "password123")
	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)

	_, err = suite.service.AuthenticateUser(ctx, "ana@example.com", "wrong-password")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(ctx, "ghost@example.com", "password123")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_GoogleUserHasNoPassword() {
	ctx := context.Background()
	stored := &domain.User{UserID: uuid.NewString(), Email: "g@example.com", AuthProvider: domain.ProviderGoogle}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "g@example.com").Return(stored, nil).Once()

	_, err := suite.service.AuthenticateUser(ctx, "g@example.com", "anything")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- FindOrCreateGoogleUser Tests ---
func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_ExistingIdentity() {
	ctx := context.Background()
	stored := &domain.User{UserID: uuid.NewString(), Email: "g@example.com"}
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, "GOOGLE", "sub-1").Return(stored, nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{Subject: "sub-1", Email: "g@example.com"})

	suite.Require().NoError(err)
	suite.Equal(stored, user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_LinksExistingEmail() {
	ctx := context.Background()
	stored := &domain.User{UserID: uuid.NewString(), Email: "ana@example.com", AuthProvider: domain.ProviderLocal}
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, "GOOGLE", "sub-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == stored.UserID && u.ProviderUserID == "sub-2"
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{Subject: "sub-2", Email: "Ana@example.com"})

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesUser() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, "GOOGLE", "sub-3").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider == domain.ProviderGoogle && u.ProviderUserID == "sub-3" && u.PasswordHash == nil && u.Name == "new"
	})).Return(nil).Once()
	suite.mockCategoryRepo.On("SaveCategories", ctx, mock.Anything).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{Subject: "sub-3", Email: "new@example.com"})

	suite.Require().NoError(err)
	suite.Equal("new@example.com", user.Email)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

// --- UpdateUser Tests ---
func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	stored := &domain.User{UserID: userID, Name: "Old"}
	name, phone := "New Name", "+55 (11) 98765-4321"

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == name && u.Phone == "5511987654321" && u.LastUpdatedBy == userID
	})).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &name, Phone: &phone})

	suite.Require().NoError(err)
	suite.Equal(name, user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NotFound() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.UpdateUser(ctx, "missing", dto.UpdateUserRequest{})

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

// --- Token Service Tests ---
type TokenServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	cfg          *config.Config
	service      portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "pfa-test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	users := services.NewUserService(suite.mockUserRepo, nil)
	suite.service = services.NewTokenService(suite.cfg, users, services.WithClock(fixedClock))
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken() {
	user := &domain.User{UserID: uuid.NewString()}

	token, expiresAt, err := suite.service.GenerateAccessToken(context.Background(), user)

	suite.Require().NoError(err)
	claims, err := utils.ParseAndValidateJWT(token, suite.cfg.JWTSecret, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.Subject)
	suite.True(expiresAt.After(time.Now()))
}

func (suite *TokenServiceTestSuite) TestIssueAndValidateRefreshToken() {
	ctx := context.Background()
	userID := uuid.NewString()
	var storedHash string
	var storedExpiry time.Time

	suite.mockUserRepo.On("UpdateRefreshToken", ctx, userID, mock.AnythingOfType("string"), fixedNow.Add(24*time.Hour)).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
			storedExpiry = args.Get(3).(time.Time)
		}).Return(nil).Once()

	raw, expiresAt, err := suite.service.IssueRefreshToken(ctx, &domain.User{UserID: userID})
	suite.Require().NoError(err)
	suite.Equal(fixedNow.Add(24*time.Hour), expiresAt)
	suite.NotEqual(raw, storedHash)

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(&domain.User{
		UserID:                 userID,
		RefreshTokenHash:       storedHash,
		RefreshTokenExpiryTime: &storedExpiry,
	}, nil)

	user, err := suite.service.ValidateAndParseRefreshToken(ctx, userID, raw)
	suite.Require().NoError(err)
	suite.Equal(userID, user.UserID)

	_, err = suite.service.ValidateAndParseRefreshToken(ctx, userID, "tampered")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Expired() {
	ctx := context.Background()
	userID := uuid.NewString()
	expired := fixedNow.Add(-time.Minute)
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(&domain.User{
		UserID:                 userID,
		RefreshTokenHash:       utils.HashRefreshToken("raw"),
		RefreshTokenExpiryTime: &expired,
	}, nil).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, userID, "raw")
	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_UnknownUser() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, "ghost", "raw")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestRevokeRefreshToken() {
	ctx := context.Background()
	suite.mockUserRepo.On("ClearRefreshToken", ctx, "u1").Return(nil).Once()
	suite.mockUserRepo.On("ClearRefreshToken", ctx, "gone").Return(apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.RevokeRefreshToken(ctx, "u1"))
	suite.NoError(suite.service.RevokeRefreshToken(ctx, "gone"))
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
