package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"conduit/internal/domain/entity"
	domainerrors "conduit/internal/domain/errors"
	"conduit/internal/domain/repository"
	"conduit/internal/domain/service"
	mockRepo "conduit/internal/mocks/repository"
	mockSvc "conduit/internal/mocks/service"
	"conduit/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewUserService(UserServiceParams{
		TxManager:    txManager,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})

	return userServiceFixtures{
		service:      service,
		txManager:    txManager,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

// expectTransaction routes every Execute call through a factory that hands out
// the fixture's user repository, propagating the callback's error.
func (f userServiceFixtures) expectTransaction(t *testing.T, ctx context.Context) {
	t.Helper()

	f.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().UserRepo().Return(f.userRepo).Maybe()

			return fn(factory)
		})
}

func validClaims(email string) *service.Claims {
	return &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       email,
			Subject:  email,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "12345",
	}

	fx.hasher.EXPECT().
		Hash(entity.Password("12345")).
		Return(entity.PasswordHash("hashed_password"), nil)

	fx.expectTransaction(t, ctx)
	fx.userRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) {
			assert.Equal(t, entity.PasswordHash("hashed_password"), user.PasswordHash)
			assert.Empty(t, user.Bio)
			assert.Nil(t, user.Image)
		}).
		Return(nil)

	fx.tokenService.EXPECT().Sign(input.Email).Return("signed.token", nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "alice@example.com", output.User.Email)
	assert.Equal(t, "alice", output.User.Username)
	assert.Equal(t, "signed.token", output.User.Token)
	assert.Empty(t, output.User.Bio)
	assert.Nil(t, output.User.Image)
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "12345",
	}

	fx.hasher.EXPECT().
		Hash(entity.Password("12345")).
		Return(entity.PasswordHash("hashed_password"), nil)

	fx.expectTransaction(t, ctx)
	fx.userRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(&entity.User{Email: input.Email, Username: "someone"}, nil)

	output, err := fx.service.Register(ctx, input)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountExists))
}

func TestUserService_Register_UsernameCollisionFromStore(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "taken",
		Email:    "new@example.com",
		Password: "12345",
	}

	fx.hasher.EXPECT().
		Hash(entity.Password("12345")).
		Return(entity.PasswordHash("hashed_password"), nil)

	// The email precheck passes; the unique constraint on username fires on insert.
	fx.expectTransaction(t, ctx)
	fx.userRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrAccountExists.WrapMessage("duplicate key"))

	output, err := fx.service.Register(ctx, input)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountExists))
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	account := &entity.User{
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: entity.PasswordHash("hashed_password"),
		Bio:          "likes go",
	}

	fx.expectTransaction(t, ctx)
	fx.userRepo.EXPECT().
		FindByEmail(ctx, account.Email).
		Return(account, nil)
	fx.hasher.EXPECT().
		Check(entity.Password("12345"), account.PasswordHash).
		Return(true)
	fx.tokenService.EXPECT().Sign(account.Email).Return("signed.token", nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "12345",
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "alice", output.User.Username)
	assert.Equal(t, "likes go", output.User.Bio)
	assert.Equal(t, "signed.token", output.User.Token)
}

// An unknown email and a wrong password must be indistinguishable to the caller.
func TestUserService_Login_FailureUniformity(t *testing.T) {
	ctx := context.Background()

	unknownEmail := func(t *testing.T) error {
		fx := createTestUserService(t)
		fx.expectTransaction(t, ctx)
		fx.userRepo.EXPECT().
			FindByEmail(ctx, "ghost@example.com").
			Return(nil, repository.ErrUserNotFound)

		output, err := fx.service.Login(ctx, &usecase.LoginInput{
			Email:    "ghost@example.com",
			Password: "12345",
		})
		assert.Nil(t, output)

		return err
	}

	wrongPassword := func(t *testing.T) error {
		fx := createTestUserService(t)
		fx.expectTransaction(t, ctx)
		fx.userRepo.EXPECT().
			FindByEmail(ctx, "alice@example.com").
			Return(&entity.User{
				Email:        "alice@example.com",
				PasswordHash: entity.PasswordHash("hashed_password"),
			}, nil)
		fx.hasher.EXPECT().
			Check(entity.Password("wrong"), entity.PasswordHash("hashed_password")).
			Return(false)

		output, err := fx.service.Login(ctx, &usecase.LoginInput{
			Email:    "alice@example.com",
			Password: "wrong",
		})
		assert.Nil(t, output)

		return err
	}

	errUnknown := unknownEmail(t)
	errMismatch := wrongPassword(t)

	assert.True(t, errors.Is(errUnknown, domainerrors.ErrUnauthorized))
	assert.True(t, errors.Is(errMismatch, domainerrors.ErrUnauthorized))
	assert.Equal(t, errUnknown.Error(), errMismatch.Error())
}

func TestUserService_GetCurrent_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	account := &entity.User{
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: entity.PasswordHash("hashed_password"),
	}

	fx.tokenService.EXPECT().Verify("bearer.token").Return(validClaims(account.Email), nil)
	fx.expectTransaction(t, ctx)
	fx.userRepo.EXPECT().
		FindByEmail(ctx, account.Email).
		Return(account, nil)
	fx.tokenService.EXPECT().Sign(account.Email).Return("fresh.token", nil)

	output, err := fx.service.GetCurrent(ctx, "bearer.token")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", output.User.Email)
	assert.Equal(t, "fresh.token", output.User.Token)
}

func TestUserService_GetCurrent_EmptyToken(t *testing.T) {
	fx := createTestUserService(t)

	output, err := fx.service.GetCurrent(context.Background(), "")

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestUserService_GetCurrent_InvalidToken(t *testing.T) {
	fx := createTestUserService(t)

	fx.tokenService.EXPECT().
		Verify("tampered.token").
		Return(nil, errors.WithStack(service.ErrInvalidToken))

	output, err := fx.service.GetCurrent(context.Background(), "tampered.token")

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

// A valid token whose account has since been deleted must fail exactly like an
// invalid token.
func TestUserService_GetCurrent_AccountGone(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	fx.tokenService.EXPECT().Verify("bearer.token").Return(validClaims("gone@example.com"), nil)
	fx.expectTransaction(t, ctx)
	fx.userRepo.EXPECT().
		FindByEmail(ctx, "gone@example.com").
		Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.GetCurrent(ctx, "bearer.token")

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestUserService_Update_BioOnly(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	account := &entity.User{
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: entity.PasswordHash("hashed_password"),
		Bio:          "old bio",
	}
	newBio := "new bio"

	fx.tokenService.EXPECT().Verify("bearer.token").Return(validClaims(account.Email), nil)
	fx.expectTransaction(t, ctx)
	fx.userRepo.EXPECT().
		FindByEmail(ctx, account.Email).
		Return(account, nil)
	fx.userRepo.EXPECT().
		Update(ctx, "alice@example.com", mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, _ string, user *entity.User) {
			assert.Equal(t, "new bio", user.Bio)
			assert.Equal(t, "alice", user.Username)
			assert.Equal(t, entity.PasswordHash("hashed_password"), user.PasswordHash)
		}).
		Return(nil)
	fx.tokenService.EXPECT().Sign(account.Email).Return("fresh.token", nil)

	output, err := fx.service.Update(ctx, "bearer.token", &usecase.UpdateInput{Bio: &newBio})

	require.NoError(t, err)
	assert.Equal(t, "new bio", output.User.Bio)
	assert.Equal(t, "fresh.token", output.User.Token)
}

func TestUserService_Update_EmailChangeSignsNewSubject(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	account := &entity.User{
		Email:    "alice@example.com",
		Username: "alice",
	}
	newEmail := "alice.new@example.com"

	fx.tokenService.EXPECT().Verify("bearer.token").Return(validClaims("alice@example.com"), nil)
	fx.expectTransaction(t, ctx)
	fx.userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(account, nil)
	// The write is keyed by the pre-update email.
	fx.userRepo.EXPECT().
		Update(ctx, "alice@example.com", mock.AnythingOfType("*entity.User")).
		Return(nil)
	fx.tokenService.EXPECT().Sign(newEmail).Return("rekeyed.token", nil)

	output, err := fx.service.Update(ctx, "bearer.token", &usecase.UpdateInput{Email: &newEmail})

	require.NoError(t, err)
	assert.Equal(t, newEmail, output.User.Email)
	assert.Equal(t, "rekeyed.token", output.User.Token)
}

func TestUserService_Update_PasswordRehash(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	account := &entity.User{
		Email:        "alice@example.com",
		PasswordHash: entity.PasswordHash("old_hash"),
	}
	newPassword := "new-password"

	fx.tokenService.EXPECT().Verify("bearer.token").Return(validClaims(account.Email), nil)
	fx.hasher.EXPECT().
		Hash(entity.Password("new-password")).
		Return(entity.PasswordHash("new_hash"), nil)
	fx.expectTransaction(t, ctx)
	fx.userRepo.EXPECT().
		FindByEmail(ctx, account.Email).
		Return(account, nil)
	fx.userRepo.EXPECT().
		Update(ctx, account.Email, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, _ string, user *entity.User) {
			assert.Equal(t, entity.PasswordHash("new_hash"), user.PasswordHash)
		}).
		Return(nil)
	fx.tokenService.EXPECT().Sign(account.Email).Return("fresh.token", nil)

	output, err := fx.service.Update(ctx, "bearer.token", &usecase.UpdateInput{Password: &newPassword})

	require.NoError(t, err)
	require.NotNil(t, output)
}

func TestUserService_Update_EmailCollision(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	account := &entity.User{Email: "alice@example.com"}
	takenEmail := "bob@example.com"

	fx.tokenService.EXPECT().Verify("bearer.token").Return(validClaims(account.Email), nil)
	fx.expectTransaction(t, ctx)
	fx.userRepo.EXPECT().
		FindByEmail(ctx, account.Email).
		Return(account, nil)
	fx.userRepo.EXPECT().
		Update(ctx, account.Email, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrAccountExists.WrapMessage("duplicate key"))

	output, err := fx.service.Update(ctx, "bearer.token", &usecase.UpdateInput{Email: &takenEmail})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountExists))
}

func TestUserService_Update_InvalidToken(t *testing.T) {
	fx := createTestUserService(t)

	fx.tokenService.EXPECT().
		Verify("tampered.token").
		Return(nil, errors.WithStack(service.ErrInvalidToken))

	bio := "whatever"
	output, err := fx.service.Update(context.Background(), "tampered.token", &usecase.UpdateInput{Bio: &bio})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}
