package service

import (
	"context"

	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/copia-dashboard/internal/domain/ledger"
	"github.com/copia-dashboard/internal/ledgerapi"
	"github.com/google/uuid"
)

// LedgerClient is the slice of the ledger API the dashboard services consume.
// Satisfied by *ledgerapi.Client; mocked in tests.
type LedgerClient interface {
	CurrentUser(ctx context.Context) (ledger.User, error)
	Users(ctx context.Context) ([]ledger.User, error)
	User(ctx context.Context, name entity.UserName) (ledger.User, error)
	Projects(ctx context.Context) ([]ledger.Project, error)
	Project(ctx context.Context, name entity.ProjectName) (ledger.Project, error)
	CreateProject(ctx context.Context, name entity.ProjectName, redirectURL entity.Url) (ledger.Project, error)
	AddAdmin(ctx context.Context, project entity.ProjectName, user entity.UserName) error
	RemoveAdmin(ctx context.Context, project entity.ProjectName, user entity.UserName) error
	APIClients(ctx context.Context, project entity.ProjectName) ([]ledger.APIClient, error)
	CreateAPIClient(ctx context.Context, project entity.ProjectName, name string) (ledger.APIClient, error)
	DeleteAPIClient(ctx context.Context, project entity.ProjectName, id uuid.UUID) error
	Transactions(ctx context.Context, filter ledgerapi.TransactionFilter) ([]ledger.Transaction, int, error)
	Bill(ctx context.Context, id uuid.UUID) (ledger.Bill, error)
	ApproveBill(ctx context.Context, id uuid.UUID) (ledger.Bill, error)
	DeclineBill(ctx context.Context, id uuid.UUID) (ledger.Bill, error)
	Rankings(ctx context.Context, q ledger.RankingQuery) ([]ledger.RankingRow, error)
}

// OverviewService assembles the dashboard's independent sections.
type OverviewService interface {
	// GetOverview fetches the current user, projects, recent transactions,
	// and ledger stats as independent sections. A failed section carries its
	// error; it never fails the others.
	GetOverview(ctx context.Context) Overview

	// BalanceSeries charts a user's running balance from their transaction
	// history. An empty history yields an empty series.
	BalanceSeries(ctx context.Context, user entity.UserName) (BalanceSeries, error)
}

// RankingService composes ledger rankings for display.
type RankingService interface {
	// GetRanking fetches and composes one ranking. When the fetch has not
	// settled before ctx expires the view reports the loading state rather
	// than an error.
	GetRanking(ctx context.Context, q ledger.RankingQuery, layout RankingLayout) (RankingView, error)
}

// CheckoutService drives the bill approval flow.
type CheckoutService interface {
	// GetCheckout loads the bill behind a checkout link.
	GetCheckout(ctx context.Context, id uuid.UUID) (CheckoutView, error)

	// Approve transitions the bill to APPROVED. An already-processed bill is
	// reported on the view, not as an error.
	Approve(ctx context.Context, id uuid.UUID) (CheckoutView, error)

	// Decline transitions the bill to DECLINED, with the same
	// already-processed semantics as Approve.
	Decline(ctx context.Context, id uuid.UUID) (CheckoutView, error)
}

// ProjectService manages projects and their API credentials.
type ProjectService interface {
	// CreateProject validates inputs locally, then registers the project.
	// Validation failures come back as *ValidationError, never as a panic.
	CreateProject(ctx context.Context, name entity.ProjectName, redirectURL entity.Url) (ledger.Project, error)

	AddAdmin(ctx context.Context, project entity.ProjectName, user entity.UserName) error
	RemoveAdmin(ctx context.Context, project entity.ProjectName, user entity.UserName) error

	ListAPIClients(ctx context.Context, project entity.ProjectName) ([]ledger.APIClient, error)
	CreateAPIClient(ctx context.Context, project entity.ProjectName, name string) (ledger.APIClient, error)
	DeleteAPIClient(ctx context.Context, project entity.ProjectName, id uuid.UUID) error
}
