// Package repository provides testify mocks for the domain repository interfaces.
package repository

import (
	"context"

	"booker/internal/domain/entity"
	domainrepo "booker/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

// MockInviteRepository is a mock implementation of repository.InviteRepository.
type MockInviteRepository struct {
	mock.Mock
}

func (m *MockInviteRepository) Create(ctx context.Context, invite *entity.Invite) error {
	args := m.Called(ctx, invite)

	return args.Error(0)
}

func (m *MockInviteRepository) FindByCode(ctx context.Context, code string) (*entity.Invite, error) {
	args := m.Called(ctx, code)
	if invite, ok := args.Get(0).(*entity.Invite); ok {
		return invite, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockInviteRepository) Redeem(ctx context.Context, code string, userID uuid.UUID) error {
	args := m.Called(ctx, code, userID)

	return args.Error(0)
}

// MockBookingRequestRepository is a mock implementation of repository.BookingRequestRepository.
type MockBookingRequestRepository struct {
	mock.Mock
}

func (m *MockBookingRequestRepository) Create(ctx context.Context, request *entity.BookingRequest) error {
	args := m.Called(ctx, request)

	return args.Error(0)
}

func (m *MockBookingRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingRequest, error) {
	args := m.Called(ctx, id)
	if request, ok := args.Get(0).(*entity.BookingRequest); ok {
		return request, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockBookingRequestRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BookingRequest, error) {
	args := m.Called(ctx, userID)
	if requests, ok := args.Get(0).([]*entity.BookingRequest); ok {
		return requests, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockBookingRequestRepository) ListAll(ctx context.Context) ([]*entity.BookingRequest, error) {
	args := m.Called(ctx)
	if requests, ok := args.Get(0).([]*entity.BookingRequest); ok {
		return requests, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockBookingRequestRepository) UpdateCriteria(ctx context.Context, id uuid.UUID, criteria entity.BookingCriteria) error {
	args := m.Called(ctx, id, criteria)

	return args.Error(0)
}

func (m *MockBookingRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}

func (m *MockBookingRequestRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, result, errMsg *string) error {
	args := m.Called(ctx, id, from, to, result, errMsg)

	return args.Error(0)
}

func (m *MockBookingRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// MockBookingLogRepository is a mock implementation of repository.BookingLogRepository.
type MockBookingLogRepository struct {
	mock.Mock
}

func (m *MockBookingLogRepository) Create(ctx context.Context, log *entity.BookingLog) error {
	args := m.Called(ctx, log)

	return args.Error(0)
}

func (m *MockBookingLogRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.BookingLog, error) {
	args := m.Called(ctx, requestID)
	if logs, ok := args.Get(0).([]*entity.BookingLog); ok {
		return logs, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockRepositoryFactory is a mock implementation of repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock

	UserRepository           *MockUserRepository
	InviteRepository         *MockInviteRepository
	BookingRequestRepository *MockBookingRequestRepository
}

func (m *MockRepositoryFactory) UserRepo() domainrepo.UserRepository {
	return m.UserRepository
}

func (m *MockRepositoryFactory) InviteRepo() domainrepo.InviteRepository {
	return m.InviteRepository
}

func (m *MockRepositoryFactory) BookingRequestRepo() domainrepo.BookingRequestRepository {
	return m.BookingRequestRepository
}

// MockTransactionManager is a mock implementation of repository.TransactionManager.
// Execute runs the callback against the embedded factory so tests exercise the
// real transactional logic without a database.
type MockTransactionManager struct {
	mock.Mock

	Factory *MockRepositoryFactory
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repoFactory domainrepo.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}

	return fn(m.Factory)
}
