package impl

import (
	"io"
	"log/slog"

	"booker/config"
	mockrepo "booker/internal/mocks/repository"
	mocksvc "booker/internal/mocks/service"
)

// authServiceFixture bundles an authService under test with its mocks.
type authServiceFixture struct {
	service   *authService
	txManager *mockrepo.MockTransactionManager
	userRepo  *mockrepo.MockUserRepository
	invites   *mockrepo.MockInviteRepository
	hasher    *mocksvc.MockPasswordHasher
	tokens    *mocksvc.MockTokenService
	codes     *mocksvc.MockInviteCodeGenerator
}

func newAuthServiceFixture(adminEmail string) *authServiceFixture {
	userRepo := new(mockrepo.MockUserRepository)
	invites := new(mockrepo.MockInviteRepository)
	txManager := &mockrepo.MockTransactionManager{
		Factory: &mockrepo.MockRepositoryFactory{
			UserRepository:   userRepo,
			InviteRepository: invites,
		},
	}
	hasher := new(mocksvc.MockPasswordHasher)
	tokens := new(mocksvc.MockTokenService)
	codes := new(mocksvc.MockInviteCodeGenerator)

	cfg := &config.Config{}
	if adminEmail != "" {
		cfg.Admin = &config.AdminConfig{Email: adminEmail}
	}

	svc := NewAuthService(AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		InviteRepo:   invites,
		Hasher:       hasher,
		TokenService: tokens,
		CodeGen:      codes,
		Config:       cfg,
		Logger:       discardLogger(),
	}).(*authService)

	return &authServiceFixture{
		service:   svc,
		txManager: txManager,
		userRepo:  userRepo,
		invites:   invites,
		hasher:    hasher,
		tokens:    tokens,
		codes:     codes,
	}
}

// bookingServiceFixture bundles a bookingService under test with its mocks.
type bookingServiceFixture struct {
	service   *bookingService
	bookings  *mockrepo.MockBookingRequestRepository
	logs      *mockrepo.MockBookingLogRepository
	cipher    *mocksvc.MockCredentialCipher
	publisher *mocksvc.MockEventPublisher
}

func newBookingServiceFixture() *bookingServiceFixture {
	bookings := new(mockrepo.MockBookingRequestRepository)
	logs := new(mockrepo.MockBookingLogRepository)
	cipher := new(mocksvc.MockCredentialCipher)
	publisher := new(mocksvc.MockEventPublisher)

	svc := NewBookingService(BookingServiceParams{
		BookingRepo: bookings,
		LogRepo:     logs,
		Cipher:      cipher,
		Publisher:   publisher,
		Logger:      discardLogger(),
	}).(*bookingService)

	return &bookingServiceFixture{
		service:   svc,
		bookings:  bookings,
		logs:      logs,
		cipher:    cipher,
		publisher: publisher,
	}
}

// bookingProcessorFixture bundles a bookingProcessor under test with its mocks.
type bookingProcessorFixture struct {
	processor  *bookingProcessor
	bookings   *mockrepo.MockBookingRequestRepository
	logs       *mockrepo.MockBookingLogRepository
	cipher     *mocksvc.MockCredentialCipher
	automation *mocksvc.MockBookingAutomation
}

func newBookingProcessorFixture() *bookingProcessorFixture {
	bookings := new(mockrepo.MockBookingRequestRepository)
	logs := new(mockrepo.MockBookingLogRepository)
	cipher := new(mocksvc.MockCredentialCipher)
	automation := new(mocksvc.MockBookingAutomation)

	processor := NewBookingProcessor(BookingProcessorParams{
		BookingRepo: bookings,
		LogRepo:     logs,
		Cipher:      cipher,
		Automation:  automation,
		Logger:      discardLogger(),
	}).(*bookingProcessor)

	return &bookingProcessorFixture{
		processor:  processor,
		bookings:   bookings,
		logs:       logs,
		cipher:     cipher,
		automation: automation,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string {
	return &s
}
