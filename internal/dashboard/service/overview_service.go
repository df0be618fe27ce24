package service

import (
	"context"

	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/copia-dashboard/internal/domain/ledger"
	"github.com/copia-dashboard/internal/ledgerapi"
	"github.com/copia-dashboard/internal/series"
	"github.com/copia-dashboard/internal/suspend"
)

// recentTransactionCount is how many transactions the overview's history
// card shows.
const recentTransactionCount = 10

// historyPageSize is the page size used when walking a user's full
// transaction history for the balance chart.
const historyPageSize = 200

// Section is one independently-fetched dashboard card. Exactly one of the
// three applies: State pending (still loading), Err set (this card failed),
// or Data valid.
type Section[T any] struct {
	State suspend.State
	Data  T
	Err   error
}

// Stats summarizes the ledger for the overview's stats card.
type Stats struct {
	UserCount        int `json:"user_count"`
	ProjectCount     int `json:"project_count"`
	TransactionCount int `json:"transaction_count"`
}

// Overview is the dashboard page: four sections that resolve in any order
// and fail independently.
type Overview struct {
	User     Section[ledger.User]
	Projects Section[[]ledger.Project]
	Recent   Section[[]ledger.Transaction]
	Stats    Section[Stats]
}

// BalanceSeries is a chartable running-balance curve. Empty means "no data",
// which renders differently from a flat chart.
type BalanceSeries struct {
	User   entity.UserName
	Points []series.Point
}

// OverviewServiceImpl implements OverviewService on top of the suspension
// cache, so concurrent dashboard loads share upstream fetches.
type OverviewServiceImpl struct {
	client LedgerClient
	cache  *suspend.Cache
}

// NewOverviewService creates a new overview service.
func NewOverviewService(client LedgerClient, cache *suspend.Cache) OverviewService {
	return &OverviewServiceImpl{
		client: client,
		cache:  cache,
	}
}

// GetOverview fires all four section fetches and collects each outcome
// independently. The fetches run concurrently on the cache's pool and may
// settle in any order; a section that has not settled when ctx expires is
// reported as still pending.
func (s *OverviewServiceImpl) GetOverview(ctx context.Context) Overview {
	userTask := suspend.Do(s.cache, s.fetchCurrentUser, "me")
	projectsTask := suspend.Do(s.cache, s.fetchProjects, "all")
	recentTask := suspend.Do(s.cache, s.fetchRecent, "recent", recentTransactionCount)
	statsTask := suspend.Do(s.cache, s.fetchStats, "stats")

	return Overview{
		User:     collect(ctx, userTask),
		Projects: collect(ctx, projectsTask),
		Recent:   collect(ctx, recentTask),
		Stats:    collect(ctx, statsTask),
	}
}

// collect awaits one task, translating a ctx expiry into a pending section
// instead of an error: the card renders its skeleton and the producer keeps
// running for the next request.
func collect[T any](ctx context.Context, task *suspend.Task[T]) Section[T] {
	data, err := task.Await(ctx)
	if err != nil {
		if ctx.Err() != nil {
			_, state, _ := task.Poll()
			if state == suspend.Pending {
				return Section[T]{State: suspend.Pending}
			}
		}
		return Section[T]{State: suspend.Rejected, Err: err}
	}
	return Section[T]{State: suspend.Fulfilled, Data: data}
}

func (s *OverviewServiceImpl) fetchCurrentUser(ctx context.Context) (ledger.User, error) {
	return s.client.CurrentUser(ctx)
}

func (s *OverviewServiceImpl) fetchProjects(ctx context.Context) ([]ledger.Project, error) {
	return s.client.Projects(ctx)
}

func (s *OverviewServiceImpl) fetchRecent(ctx context.Context) ([]ledger.Transaction, error) {
	txs, _, err := s.client.Transactions(ctx, ledgerapi.TransactionFilter{
		Page:    1,
		PerPage: recentTransactionCount,
	})
	return txs, err
}

func (s *OverviewServiceImpl) fetchStats(ctx context.Context) (Stats, error) {
	users, err := s.client.Users(ctx)
	if err != nil {
		return Stats{}, err
	}
	projects, err := s.client.Projects(ctx)
	if err != nil {
		return Stats{}, err
	}
	_, total, err := s.client.Transactions(ctx, ledgerapi.TransactionFilter{Page: 1, PerPage: 1})
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		UserCount:        len(users),
		ProjectCount:     len(projects),
		TransactionCount: total,
	}, nil
}

// BalanceSeries fetches a user's full transaction history and reduces it
// into one point per day. The fetch walks every page the ledger reports;
// a truncated history would corrupt the running total. It is cached per
// user name: the closure body is the function identity and the name is
// the argument key.
func (s *OverviewServiceImpl) BalanceSeries(ctx context.Context, user entity.UserName) (BalanceSeries, error) {
	fetch := func(ctx context.Context) ([]ledger.Transaction, error) {
		filter := ledgerapi.TransactionFilter{
			OwnerKind: entity.KindUser,
			OwnerName: string(user),
			Page:      1,
			PerPage:   historyPageSize,
		}
		var all []ledger.Transaction
		for {
			txs, total, err := s.client.Transactions(ctx, filter)
			if err != nil {
				return nil, err
			}
			all = append(all, txs...)
			if len(all) >= total || len(txs) == 0 {
				return all, nil
			}
			filter.Page++
		}
	}

	task := suspend.Do(s.cache, fetch, "user-transactions", string(user))
	txs, err := task.Await(ctx)
	if err != nil {
		return BalanceSeries{}, err
	}

	return BalanceSeries{
		User:   user,
		Points: series.Build(txs, series.Options{}),
	}, nil
}
