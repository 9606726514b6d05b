// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"booker/config"
	deliverycontext "booker/internal/delivery/context"
	"booker/internal/domain/entity"
	domainerrors "booker/internal/domain/errors"
	"booker/internal/domain/repository"
	"booker/internal/domain/service"
	"booker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	inviteRepo   repository.InviteRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	codeGen      service.InviteCodeGenerator
	adminEmail   string
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	InviteRepo   repository.InviteRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	CodeGen      service.InviteCodeGenerator
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	adminEmail := ""
	if params.Config != nil && params.Config.Admin != nil {
		adminEmail = entity.NormalizeEmail(params.Config.Admin.Email)
	}

	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		inviteRepo:   params.InviteRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		codeGen:      params.CodeGen,
		adminEmail:   adminEmail,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup orchestrates invite-gated registration. User creation and invite
// redemption happen in one transaction so a spent code never strands a
// half-created account.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting signup", slog.String("email", email))

	// Hash outside the transaction (the KDF is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during signup")
	}

	newUser := &entity.User{
		Email:        email,
		PasswordHash: hashedPassword,
		IsAdmin:      srv.adminEmail != "" && email == srv.adminEmail,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		inviteRepo := repoFactory.InviteRepo()

		if _, findErr := userRepo.FindByEmail(ctx, email); findErr == nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "signup for registered email")
		} else if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check existing user")
		}

		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return errors.Wrap(createErr, "failed to create user during signup")
		}

		if redeemErr := inviteRepo.Redeem(ctx, input.InviteCode, newUser.ID); redeemErr != nil {
			switch {
			case errors.Is(redeemErr, repository.ErrInviteNotFound):
				return errors.Wrap(domainerrors.ErrInviteNotFound, "signup with unknown invite code")
			case errors.Is(redeemErr, repository.ErrInviteAlreadyUsed):
				return errors.Wrap(domainerrors.ErrInviteAlreadyUsed, "signup with spent invite code")
			default:
				return errors.Wrap(redeemErr, "failed to redeem invite during signup")
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	accessToken, err := srv.issueAccessToken(newUser)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after signup", slog.Any("userID", newUser.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("userID", newUser.ID), slog.Bool("isAdmin", newUser.IsAdmin))

	return &usecase.AuthOutput{AccessToken: accessToken, User: newUser}, nil
}

// Login verifies credentials and issues a fresh session token.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			// Same generic error as a wrong password: do not reveal which
			// half of the credential pair was wrong.
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	accessToken, err := srv.issueAccessToken(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{AccessToken: accessToken, User: user}, nil
}

// Me loads the user behind an authenticated session.
func (srv *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "session user no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load session user")
	}

	return user, nil
}

// IssueInvite mints a new single-use invite code. Admin actors only.
func (srv *authService) IssueInvite(ctx context.Context, actor entity.Actor) (*entity.Invite, error) {
	if !actor.IsAdmin {
		srv.log(ctx).Warn("Non-admin attempted to issue invite", slog.Any("userID", actor.UserID))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "only admins may issue invites")
	}

	code, err := srv.codeGen.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate invite code")
	}

	invite := &entity.Invite{
		Code:      code,
		CreatedBy: actor.UserID,
	}

	if err := srv.inviteRepo.Create(ctx, invite); err != nil {
		srv.log(ctx).Error("Failed to create invite", slog.Any("userID", actor.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create invite")
	}

	srv.log(ctx).Info("Invite issued", slog.Any("userID", actor.UserID), slog.Any("inviteID", invite.ID))

	return invite, nil
}

func (srv *authService) issueAccessToken(user *entity.User) (string, error) {
	token, err := srv.tokenService.Issue(service.Claims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, service.TokenTypeAccess)
	if err != nil {
		return "", errors.Wrap(err, "failed to issue access token")
	}

	return token, nil
}
