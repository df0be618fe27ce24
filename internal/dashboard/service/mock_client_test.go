package service

import (
	"context"

	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/copia-dashboard/internal/domain/ledger"
	"github.com/copia-dashboard/internal/ledgerapi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockLedgerClient struct {
	mock.Mock
}

func (m *MockLedgerClient) CurrentUser(ctx context.Context) (ledger.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(ledger.User), args.Error(1)
}

func (m *MockLedgerClient) Users(ctx context.Context) ([]ledger.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.User), args.Error(1)
}

func (m *MockLedgerClient) User(ctx context.Context, name entity.UserName) (ledger.User, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(ledger.User), args.Error(1)
}

func (m *MockLedgerClient) Projects(ctx context.Context) ([]ledger.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Project), args.Error(1)
}

func (m *MockLedgerClient) Project(ctx context.Context, name entity.ProjectName) (ledger.Project, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(ledger.Project), args.Error(1)
}

func (m *MockLedgerClient) CreateProject(ctx context.Context, name entity.ProjectName, redirectURL entity.Url) (ledger.Project, error) {
	args := m.Called(ctx, name, redirectURL)
	return args.Get(0).(ledger.Project), args.Error(1)
}

func (m *MockLedgerClient) AddAdmin(ctx context.Context, project entity.ProjectName, user entity.UserName) error {
	args := m.Called(ctx, project, user)
	return args.Error(0)
}

func (m *MockLedgerClient) RemoveAdmin(ctx context.Context, project entity.ProjectName, user entity.UserName) error {
	args := m.Called(ctx, project, user)
	return args.Error(0)
}

func (m *MockLedgerClient) APIClients(ctx context.Context, project entity.ProjectName) ([]ledger.APIClient, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.APIClient), args.Error(1)
}

func (m *MockLedgerClient) CreateAPIClient(ctx context.Context, project entity.ProjectName, name string) (ledger.APIClient, error) {
	args := m.Called(ctx, project, name)
	return args.Get(0).(ledger.APIClient), args.Error(1)
}

func (m *MockLedgerClient) DeleteAPIClient(ctx context.Context, project entity.ProjectName, id uuid.UUID) error {
	args := m.Called(ctx, project, id)
	return args.Error(0)
}

func (m *MockLedgerClient) Transactions(ctx context.Context, filter ledgerapi.TransactionFilter) ([]ledger.Transaction, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]ledger.Transaction), args.Int(1), args.Error(2)
}

func (m *MockLedgerClient) Bill(ctx context.Context, id uuid.UUID) (ledger.Bill, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ledger.Bill), args.Error(1)
}

func (m *MockLedgerClient) ApproveBill(ctx context.Context, id uuid.UUID) (ledger.Bill, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ledger.Bill), args.Error(1)
}

func (m *MockLedgerClient) DeclineBill(ctx context.Context, id uuid.UUID) (ledger.Bill, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ledger.Bill), args.Error(1)
}

func (m *MockLedgerClient) Rankings(ctx context.Context, q ledger.RankingQuery) ([]ledger.RankingRow, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.RankingRow), args.Error(1)
}
