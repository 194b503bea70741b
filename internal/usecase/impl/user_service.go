// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "conduit/internal/delivery/context"
	"conduit/internal/domain/entity"
	domainerrors "conduit/internal/domain/errors"
	"conduit/internal/domain/repository"
	"conduit/internal/domain/service"
	"conduit/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates account creation: hash the credential, insert the
// account inside one transaction with an email precheck, then issue a token.
// The insert is all-or-nothing; no partial account state survives a failure.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.UserResponse, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashed, err := srv.hasher.Hash(entity.Password(input.Password))
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	var created *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return domainerrors.ErrAccountExists.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to look up account by email")
		}

		newUser := &entity.User{
			Email:        input.Email,
			Username:     input.Username,
			PasswordHash: hashed,
			Bio:          "",
			Image:        nil,
		}

		// The store's unique constraints still back this up: under a
		// concurrent insert of the same email the precheck can pass for
		// both, but exactly one Create succeeds.
		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return errors.Wrap(createErr, "failed to create account")
		}

		created = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	token, err := srv.signToken(ctx, created.Email)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.String("email", created.Email))

	return userResponse(created, token), nil
}

// Login verifies credentials and issues a fresh token. An unknown email and a
// password mismatch return the identical error so account existence never leaks.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.UserResponse, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.findAccount(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

			return nil, domainerrors.ErrUnauthorized.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// Check password outside the transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(entity.Password(input.Password), account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrUnauthorized.WrapMessage("login failed")
	}

	token, err := srv.signToken(ctx, account.Email)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Login completed", slog.String("email", account.Email))

	return userResponse(account, token), nil
}

// GetCurrent resolves the account behind a bearer token. A valid token for a
// deleted account fails exactly like an invalid token.
func (srv *userService) GetCurrent(ctx context.Context, token string) (*usecase.UserResponse, error) {
	email, err := srv.resolveSubject(ctx, token)
	if err != nil {
		return nil, err
	}

	account, err := srv.findAccount(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Token subject no longer exists", slog.String("email", email))

			return nil, domainerrors.ErrUnauthorized.WrapMessage("account gone")
		}

		return nil, errors.Wrap(err, "failed to load current account")
	}

	fresh, err := srv.signToken(ctx, account.Email)
	if err != nil {
		return nil, err
	}

	return userResponse(account, fresh), nil
}

// Update authenticates like GetCurrent, stages the supplied fields, persists
// them in one transaction and re-signs a token for the resulting email.
// Email and username changes are subject to the same uniqueness invariant as
// registration.
func (srv *userService) Update(ctx context.Context, token string, input *usecase.UpdateInput) (*usecase.UserResponse, error) {
	email, err := srv.resolveSubject(ctx, token)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Starting profile update", slog.String("email", email))

	// Re-hash outside the transaction when a new password is supplied.
	var newHash *entity.PasswordHash
	if input.Password != nil {
		hashed, hashErr := srv.hasher.Hash(entity.Password(*input.Password))
		if hashErr != nil {
			srv.log(ctx).Error("Failed to hash password during update", slog.Any("error", hashErr))

			return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, hashErr.Error())
		}
		newHash = &hashed
	}

	var updated *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		account, findErr := userRepo.FindByEmail(ctx, email)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return domainerrors.ErrUnauthorized.WrapMessage("account gone")
			}

			return errors.Wrap(findErr, "failed to load account for update")
		}

		stageUpdate(account, input, newHash)

		if updateErr := userRepo.Update(ctx, email, account); updateErr != nil {
			if errors.Is(updateErr, repository.ErrUserNotFound) {
				// Target vanished between the read and the write.
				return domainerrors.ErrUnauthorized.WrapMessage("account gone")
			}

			return errors.Wrap(updateErr, "failed to persist account update")
		}

		updated = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	fresh, err := srv.signToken(ctx, updated.Email)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Profile update completed", slog.String("email", updated.Email))

	return userResponse(updated, fresh), nil
}

// resolveSubject verifies the bearer token and extracts the subject email.
// Every failure mode collapses into ErrUnauthorized.
func (srv *userService) resolveSubject(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domainerrors.ErrUnauthorized.WrapMessage("missing bearer token")
	}

	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		srv.log(ctx).Warn("Token verification failed", slog.Any("error", err))

		return "", domainerrors.ErrUnauthorized.WrapMessage("token verification failed")
	}

	email := claims.Email()
	if email == "" {
		return "", domainerrors.ErrUnauthorized.WrapMessage("token subject missing")
	}

	return email, nil
}

// findAccount loads one account by email in its own short transaction.
func (srv *userService) findAccount(ctx context.Context, email string) (*entity.User, error) {
	var account *entity.User

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		account, findErr = repoFactory.UserRepo().FindByEmail(ctx, email)

		return findErr
	}); err != nil {
		return nil, err
	}

	return account, nil
}

func (srv *userService) signToken(ctx context.Context, email string) (string, error) {
	token, err := srv.tokenService.Sign(email)
	if err != nil {
		srv.log(ctx).Error("Failed to sign token", slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrTokenSignFailed, err.Error())
	}

	return token, nil
}

// stageUpdate applies the supplied fields onto the loaded account.
// Absent fields are left untouched.
func stageUpdate(account *entity.User, input *usecase.UpdateInput, newHash *entity.PasswordHash) {
	if input.Username != nil {
		account.Username = *input.Username
	}
	if input.Email != nil {
		account.Email = *input.Email
	}
	if input.Bio != nil {
		account.Bio = *input.Bio
	}
	if input.Image != nil {
		account.Image = input.Image
	}
	if newHash != nil {
		account.PasswordHash = *newHash
	}
}

// userResponse projects an account into its public shape. The password hash
// never crosses this boundary.
func userResponse(account *entity.User, token string) *usecase.UserResponse {
	return &usecase.UserResponse{
		User: usecase.UserBody{
			Username: account.Username,
			Email:    account.Email,
			Token:    token,
			Bio:      account.Bio,
			Image:    account.Image,
		},
	}
}
