// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"
	"time"

	"booker/internal/domain/entity"
	domainsvc "booker/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hashRecord string) bool {
	args := m.Called(password, hashRecord)

	return args.Bool(0)
}

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(claims domainsvc.Claims, tokenType domainsvc.TokenType) (string, error) {
	args := m.Called(claims, tokenType)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(token string, expected domainsvc.TokenType) (*domainsvc.Claims, error) {
	args := m.Called(token, expected)
	if claims, ok := args.Get(0).(*domainsvc.Claims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) TTL(tokenType domainsvc.TokenType) time.Duration {
	args := m.Called(tokenType)

	return args.Get(0).(time.Duration)
}

// MockCredentialCipher is a mock implementation of service.CredentialCipher.
type MockCredentialCipher struct {
	mock.Mock
}

func (m *MockCredentialCipher) Seal(credentials domainsvc.BookingCredentials) (string, error) {
	args := m.Called(credentials)

	return args.String(0), args.Error(1)
}

func (m *MockCredentialCipher) Open(sealed string) (domainsvc.BookingCredentials, error) {
	args := m.Called(sealed)
	if credentials, ok := args.Get(0).(domainsvc.BookingCredentials); ok {
		return credentials, args.Error(1)
	}

	return domainsvc.BookingCredentials{}, args.Error(1)
}

// MockInviteCodeGenerator is a mock implementation of service.InviteCodeGenerator.
type MockInviteCodeGenerator struct {
	mock.Mock
}

func (m *MockInviteCodeGenerator) Generate() (string, error) {
	args := m.Called()

	return args.String(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishBookingJob(ctx context.Context, event *domainsvc.BookingJobEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockBookingAutomation is a mock implementation of service.BookingAutomation.
type MockBookingAutomation struct {
	mock.Mock
}

func (m *MockBookingAutomation) Run(ctx context.Context, criteria entity.BookingCriteria, credentials domainsvc.BookingCredentials) (*domainsvc.AutomationResult, error) {
	args := m.Called(ctx, criteria, credentials)
	if result, ok := args.Get(0).(*domainsvc.AutomationResult); ok {
		return result, args.Error(1)
	}

	return nil, args.Error(1)
}
