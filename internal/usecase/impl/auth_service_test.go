package impl

import (
	"context"
	"testing"

	"booker/internal/domain/entity"
	domainerrors "booker/internal/domain/errors"
	"booker/internal/domain/repository"
	"booker/internal/domain/service"
	"booker/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Signup_Success(t *testing.T) {
	fx := newAuthServiceFixture("")
	ctx := context.Background()

	fx.hasher.On("Hash", "s3cret-password").Return("salt:derived", nil)
	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.userRepo.On("FindByEmail", ctx, "diner@example.com").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.On("Create", ctx, mock.MatchedBy(func(user *entity.User) bool {
		return user.Email == "diner@example.com" && user.PasswordHash == "salt:derived" && !user.IsAdmin
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = uuid.New()
	}).Return(nil)
	fx.invites.On("Redeem", ctx, "INVITE-ABCD-EFGH", mock.AnythingOfType("uuid.UUID")).Return(nil)
	fx.tokens.On("Issue", mock.Anything, service.TokenTypeAccess).Return("signed-token", nil)

	output, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Email:      "Diner@Example.com",
		Password:   "s3cret-password",
		InviteCode: "INVITE-ABCD-EFGH",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.AccessToken)
	assert.Equal(t, "diner@example.com", output.User.Email)
	assert.False(t, output.User.IsAdmin)
	fx.invites.AssertExpectations(t)
	fx.userRepo.AssertExpectations(t)
}

func TestAuthService_Signup_AdminEmailGrant(t *testing.T) {
	fx := newAuthServiceFixture("Admin@Example.com")
	ctx := context.Background()

	fx.hasher.On("Hash", mock.Anything).Return("salt:derived", nil)
	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.userRepo.On("FindByEmail", ctx, "admin@example.com").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.On("Create", ctx, mock.MatchedBy(func(user *entity.User) bool {
		return user.IsAdmin
	})).Return(nil)
	fx.invites.On("Redeem", ctx, mock.Anything, mock.Anything).Return(nil)
	fx.tokens.On("Issue", mock.Anything, service.TokenTypeAccess).Return("signed-token", nil)

	output, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Email:      "admin@example.com",
		Password:   "s3cret-password",
		InviteCode: "INVITE-ABCD-EFGH",
	})

	require.NoError(t, err)
	assert.True(t, output.User.IsAdmin)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	fx := newAuthServiceFixture("")
	ctx := context.Background()

	fx.hasher.On("Hash", mock.Anything).Return("salt:derived", nil)
	fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
	fx.userRepo.On("FindByEmail", ctx, "diner@example.com").Return(&entity.User{ID: uuid.New()}, nil)

	_, err := fx.service.Signup(ctx, &usecase.SignupInput{
		Email:      "diner@example.com",
		Password:   "s3cret-password",
		InviteCode: "INVITE-ABCD-EFGH",
	})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_InviteErrors(t *testing.T) {
	cases := []struct {
		name      string
		redeemErr error
		wantErr   error
	}{
		{name: "unknown code", redeemErr: repository.ErrInviteNotFound, wantErr: domainerrors.ErrInviteNotFound},
		{name: "spent code", redeemErr: repository.ErrInviteAlreadyUsed, wantErr: domainerrors.ErrInviteAlreadyUsed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newAuthServiceFixture("")
			ctx := context.Background()

			fx.hasher.On("Hash", mock.Anything).Return("salt:derived", nil)
			fx.txManager.On("Execute", ctx, mock.Anything).Return(nil)
			fx.userRepo.On("FindByEmail", ctx, mock.Anything).Return(nil, repository.ErrUserNotFound)
			fx.userRepo.On("Create", ctx, mock.Anything).Return(nil)
			fx.invites.On("Redeem", ctx, mock.Anything, mock.Anything).Return(tc.redeemErr)

			_, err := fx.service.Signup(ctx, &usecase.SignupInput{
				Email:      "diner@example.com",
				Password:   "s3cret-password",
				InviteCode: "INVITE-XXXX-XXXX",
			})

			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := newAuthServiceFixture("")
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByEmail", ctx, "diner@example.com").Return(&entity.User{
		ID:           userID,
		Email:        "diner@example.com",
		PasswordHash: "salt:derived",
	}, nil)
	fx.hasher.On("Check", "s3cret-password", "salt:derived").Return(true)
	fx.tokens.On("Issue", mock.MatchedBy(func(claims service.Claims) bool {
		return claims.UserID == userID && claims.Email == "diner@example.com"
	}), service.TokenTypeAccess).Return("signed-token", nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "Diner@example.com", Password: "s3cret-password"})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.AccessToken)
	assert.Equal(t, userID, output.User.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := newAuthServiceFixture("")
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "diner@example.com").Return(&entity.User{
		ID:           uuid.New(),
		PasswordHash: "salt:derived",
	}, nil)
	fx.hasher.On("Check", "wrong", "salt:derived").Return(false)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "diner@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := newAuthServiceFixture("")
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "whatever"})

	// Unknown email and wrong password must be indistinguishable.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Me(t *testing.T) {
	fx := newAuthServiceFixture("")
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).Return(&entity.User{ID: userID, Email: "diner@example.com"}, nil)

	user, err := fx.service.Me(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, "diner@example.com", user.Email)
}

func TestAuthService_Me_Gone(t *testing.T) {
	fx := newAuthServiceFixture("")
	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Me(ctx, userID)

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_IssueInvite_Admin(t *testing.T) {
	fx := newAuthServiceFixture("")
	ctx := context.Background()
	adminID := uuid.New()

	fx.codes.On("Generate").Return("INVITE-WXYZ-2345", nil)
	fx.invites.On("Create", ctx, mock.MatchedBy(func(invite *entity.Invite) bool {
		return invite.Code == "INVITE-WXYZ-2345" && invite.CreatedBy == adminID
	})).Return(nil)

	invite, err := fx.service.IssueInvite(ctx, entity.Actor{UserID: adminID, IsAdmin: true})

	require.NoError(t, err)
	assert.Equal(t, "INVITE-WXYZ-2345", invite.Code)
}

func TestAuthService_IssueInvite_NonAdmin(t *testing.T) {
	fx := newAuthServiceFixture("")

	_, err := fx.service.IssueInvite(context.Background(), entity.Actor{UserID: uuid.New()})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	fx.invites.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
