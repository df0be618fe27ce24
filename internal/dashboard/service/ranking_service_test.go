package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/copia-dashboard/internal/config"
	"github.com/copia-dashboard/internal/domain/copia"
	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/copia-dashboard/internal/domain/ledger"
	"github.com/copia-dashboard/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testRankingsConfig() config.RankingsConfig {
	return config.RankingsConfig{
		DefaultLimit:     20,
		MaxItems:         5,
		PodiumBreakpoint: 768,
	}
}

func userRow(rank int, name string, balance int64) ledger.RankingRow {
	return ledger.RankingRow{
		Rank:   rank,
		Entity: entity.User(entity.UserName(name), copia.FromInt64(balance)),
	}
}

func TestGetRanking_ComposesPodiumAndList(t *testing.T) {
	mockClient := new(MockLedgerClient)
	svc := NewRankingService(mockClient, newTestCache(t), testRankingsConfig())

	q := ledger.RankingQuery{
		Entity: ledger.RankingEntityUser,
		Metric: ledger.RankingMetricBalance,
		Period: ledger.RankingPeriod7Days,
		Order:  ledger.RankingOrderDesc,
		Limit:  20,
	}
	rows := []ledger.RankingRow{
		userRow(1, "alice", 900),
		userRow(2, "bob", 800),
		userRow(3, "carol", 700),
		userRow(4, "dave", 600),
		userRow(5, "erin", 500),
		userRow(6, "frank", 400),
	}
	mockClient.On("Rankings", mock.Anything, q).Return(rows, nil)

	view, err := svc.GetRanking(context.Background(), q, RankingLayout{Width: 1024, Podium: true})

	require.NoError(t, err)
	assert.Equal(t, ranking.StateReady, view.Composition.State)
	require.Len(t, view.Composition.Podium, 3)
	// Wide viewport: podium renders 2nd, 1st, 3rd.
	assert.Equal(t, "user:bob", view.Composition.Podium[0].Key)
	assert.Equal(t, "user:alice", view.Composition.Podium[1].Key)
	assert.Equal(t, "user:carol", view.Composition.Podium[2].Key)
	require.Len(t, view.Composition.List, 2)
	assert.Equal(t, "user:dave", view.Composition.List[0].Key)
	assert.Equal(t, "user:erin", view.Composition.List[1].Key)
}

func TestGetRanking_NarrowViewportKeepsRankOrder(t *testing.T) {
	mockClient := new(MockLedgerClient)
	svc := NewRankingService(mockClient, newTestCache(t), testRankingsConfig())

	q := ledger.RankingQuery{
		Entity: ledger.RankingEntityUser,
		Metric: ledger.RankingMetricBalance,
		Period: ledger.RankingPeriod7Days,
		Order:  ledger.RankingOrderDesc,
		Limit:  20,
	}
	mockClient.On("Rankings", mock.Anything, q).Return([]ledger.RankingRow{
		userRow(1, "alice", 900),
		userRow(2, "bob", 800),
		userRow(3, "carol", 700),
	}, nil)

	view, err := svc.GetRanking(context.Background(), q, RankingLayout{Width: 390, Podium: true})

	require.NoError(t, err)
	require.Len(t, view.Composition.Podium, 3)
	assert.Equal(t, "user:alice", view.Composition.Podium[0].Key)
	assert.Equal(t, "user:bob", view.Composition.Podium[1].Key)
	assert.Equal(t, "user:carol", view.Composition.Podium[2].Key)
}

func TestGetRanking_DefaultsLimit(t *testing.T) {
	mockClient := new(MockLedgerClient)
	svc := NewRankingService(mockClient, newTestCache(t), testRankingsConfig())

	q := ledger.RankingQuery{
		Entity: ledger.RankingEntityProject,
		Metric: ledger.RankingMetricTotal,
		Period: ledger.RankingPeriod30Days,
		Order:  ledger.RankingOrderDesc,
	}
	expected := q
	expected.Limit = 20
	mockClient.On("Rankings", mock.Anything, expected).Return([]ledger.RankingRow{}, nil)

	view, err := svc.GetRanking(context.Background(), q, RankingLayout{})

	require.NoError(t, err)
	assert.Equal(t, expected, view.Query)
	mockClient.AssertExpectations(t)
}

func TestGetRanking_InvalidQueryNeverFetches(t *testing.T) {
	mockClient := new(MockLedgerClient)
	svc := NewRankingService(mockClient, newTestCache(t), testRankingsConfig())

	q := ledger.RankingQuery{
		Entity: "moderator",
		Metric: ledger.RankingMetricBalance,
		Period: ledger.RankingPeriod7Days,
		Order:  ledger.RankingOrderDesc,
	}

	_, err := svc.GetRanking(context.Background(), q, RankingLayout{})

	assert.ErrorIs(t, err, ledger.ErrInvalidRankingQuery)
	mockClient.AssertNotCalled(t, "Rankings", mock.Anything, mock.Anything)
}

func TestGetRanking_EmptyRankingIsEmptyNotLoading(t *testing.T) {
	mockClient := new(MockLedgerClient)
	svc := NewRankingService(mockClient, newTestCache(t), testRankingsConfig())

	q := ledger.RankingQuery{
		Entity: ledger.RankingEntityUser,
		Metric: ledger.RankingMetricCount,
		Period: ledger.RankingPeriod24Hours,
		Order:  ledger.RankingOrderAsc,
		Limit:  10,
	}
	mockClient.On("Rankings", mock.Anything, q).Return([]ledger.RankingRow{}, nil)

	view, err := svc.GetRanking(context.Background(), q, RankingLayout{Podium: true})

	require.NoError(t, err)
	assert.Equal(t, ranking.StateEmpty, view.Composition.State)
}

func TestGetRanking_SlowFetchReportsLoading(t *testing.T) {
	mockClient := new(MockLedgerClient)
	svc := NewRankingService(mockClient, newTestCache(t), testRankingsConfig())

	q := ledger.RankingQuery{
		Entity: ledger.RankingEntityUser,
		Metric: ledger.RankingMetricBalance,
		Period: ledger.RankingPeriod365Days,
		Order:  ledger.RankingOrderDesc,
		Limit:  10,
	}
	release := make(chan struct{})
	mockClient.On("Rankings", mock.Anything, q).
		Run(func(mock.Arguments) { <-release }).
		Return([]ledger.RankingRow{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	view, err := svc.GetRanking(ctx, q, RankingLayout{})
	close(release)

	require.NoError(t, err)
	assert.Equal(t, ranking.StateLoading, view.Composition.State)
}

func TestGetRanking_UpstreamErrorPropagates(t *testing.T) {
	mockClient := new(MockLedgerClient)
	svc := NewRankingService(mockClient, newTestCache(t), testRankingsConfig())

	q := ledger.RankingQuery{
		Entity: ledger.RankingEntityUser,
		Metric: ledger.RankingMetricBalance,
		Period: ledger.RankingPeriod7Days,
		Order:  ledger.RankingOrderDesc,
		Limit:  10,
	}
	upstreamErr := errors.New("ledger unreachable")
	mockClient.On("Rankings", mock.Anything, q).Return(nil, upstreamErr)

	_, err := svc.GetRanking(context.Background(), q, RankingLayout{})

	assert.ErrorIs(t, err, upstreamErr)
}

func TestGetRanking_SystemEntityCarriesNoScore(t *testing.T) {
	mockClient := new(MockLedgerClient)
	svc := NewRankingService(mockClient, newTestCache(t), testRankingsConfig())

	q := ledger.RankingQuery{
		Entity: ledger.RankingEntityUser,
		Metric: ledger.RankingMetricBalance,
		Period: ledger.RankingPeriod7Days,
		Order:  ledger.RankingOrderDesc,
		Limit:  10,
	}
	mockClient.On("Rankings", mock.Anything, q).Return([]ledger.RankingRow{
		{Rank: 1, Entity: entity.System()},
	}, nil)

	view, err := svc.GetRanking(context.Background(), q, RankingLayout{})

	require.NoError(t, err)
	require.Len(t, view.Composition.List, 1)
	assert.Nil(t, view.Composition.List[0].Score)
}
