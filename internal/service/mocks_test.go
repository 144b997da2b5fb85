// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"mybudget/internal/domain"
	"mybudget/internal/events"
	"mybudget/internal/repository"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	if argsCalled.Get(0) == nil {
		return nil, argsCalled.Error(1)
	}
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	m.Called(ctx, query, args)
	return &sqlx.Row{}
}

// MockEnvelopeRepository is a mock implementation of repository.EnvelopeRepository.
type MockEnvelopeRepository struct {
	mock.Mock
}

func (m *MockEnvelopeRepository) CreateEnvelope(ctx context.Context, q repository.DBExecutor, envelope *domain.Envelope) error {
	args := m.Called(ctx, q, envelope)
	return args.Error(0)
}

func (m *MockEnvelopeRepository) GetEnvelopeByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Envelope, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Envelope), args.Error(1)
}

func (m *MockEnvelopeRepository) ListEnvelopes(ctx context.Context, q repository.DBExecutor, includeInactive bool) ([]domain.Envelope, error) {
	args := m.Called(ctx, q, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Envelope), args.Error(1)
}

func (m *MockEnvelopeRepository) SetEnvelopeActive(ctx context.Context, q repository.DBExecutor, id int64, active bool) (*domain.Envelope, error) {
	args := m.Called(ctx, q, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Envelope), args.Error(1)
}

func (m *MockEnvelopeRepository) DeleteEnvelope(ctx context.Context, q repository.DBExecutor, id int64) (int64, error) {
	args := m.Called(ctx, q, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEnvelopeRepository) LockEnvelope(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockEnvelopeRepository) GetEnvelopeBalance(ctx context.Context, q repository.DBExecutor, id int64) (decimal.Decimal, error) {
	args := m.Called(ctx, q, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, q repository.DBExecutor, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, q, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockTxController is a mock implementation of db.TxController.
// It also implements repository.DBExecutor by embedding MockDBExecutor;
// expectations for executor calls go on the embedded mock.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishTransactionPosted(ctx context.Context, event *events.TransactionPosted) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
