package service

import (
	"context"
	"math/big"

	"github.com/copia-dashboard/internal/config"
	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/copia-dashboard/internal/domain/ledger"
	"github.com/copia-dashboard/internal/ranking"
	"github.com/copia-dashboard/internal/suspend"
)

// RankingLayout is the caller's viewport hint. Width is compared against the
// configured podium breakpoint; the pixel value is presentation-only.
type RankingLayout struct {
	Width  int
	Podium bool
}

// RankingView is a display-ready ranking composition.
type RankingView struct {
	Query       ledger.RankingQuery
	Composition ranking.Composition[entity.Entity]
}

// RankingServiceImpl implements RankingService. Ranking fetches are cached
// by their full query, a bounded key domain of closed enums.
type RankingServiceImpl struct {
	client LedgerClient
	cache  *suspend.Cache
	cfg    config.RankingsConfig
}

// NewRankingService creates a new ranking service.
func NewRankingService(client LedgerClient, cache *suspend.Cache, cfg config.RankingsConfig) RankingService {
	return &RankingServiceImpl{
		client: client,
		cache:  cache,
		cfg:    cfg,
	}
}

// GetRanking fetches the ranking rows for q and composes them into podium
// and list. A fetch still pending at ctx expiry yields the loading state so
// the caller can render a skeleton; the underlying fetch keeps running and
// later requests pick up its result.
func (s *RankingServiceImpl) GetRanking(ctx context.Context, q ledger.RankingQuery, layout RankingLayout) (RankingView, error) {
	if q.Limit <= 0 {
		q.Limit = s.cfg.DefaultLimit
	}
	if err := q.Validate(); err != nil {
		return RankingView{}, err
	}

	fetch := func(ctx context.Context) ([]ledger.RankingRow, error) {
		return s.client.Rankings(ctx, q)
	}
	task := suspend.Do(s.cache, fetch,
		string(q.Entity), string(q.Metric), string(q.Period), string(q.Order), q.Limit)

	rows, err := task.Await(ctx)
	if err != nil {
		if ctx.Err() != nil {
			if _, state, _ := task.Poll(); state == suspend.Pending {
				return RankingView{Query: q, Composition: ranking.Loading[entity.Entity]()}, nil
			}
		}
		return RankingView{}, err
	}

	opts := ranking.Options{
		MaxItems: s.cfg.MaxItems,
		Podium:   layout.Podium,
		Layout:   s.layoutFor(layout.Width),
	}
	return RankingView{
		Query:       q,
		Composition: ranking.Compose(toItems(rows), opts),
	}, nil
}

// layoutFor maps a viewport width onto the podium arrangement. Unknown
// widths get the narrow, rank-ordered arrangement.
func (s *RankingServiceImpl) layoutFor(width int) ranking.Layout {
	if width >= s.cfg.PodiumBreakpoint {
		return ranking.LayoutWide
	}
	return ranking.LayoutNarrow
}

// toItems adapts server ranking rows into composer items. Rank and Diff are
// carried through untouched; the render key is the entity identity because
// server-assigned ranks may tie.
func toItems(rows []ledger.RankingRow) []ranking.Item[entity.Entity] {
	items := make([]ranking.Item[entity.Entity], 0, len(rows))
	for _, row := range rows {
		var score *big.Int
		if row.Entity.Kind != entity.KindSystem {
			score = row.Entity.Balance.BigInt()
		}
		items = append(items, ranking.Item[entity.Entity]{
			Entity: row.Entity,
			Key:    row.Entity.Identity(),
			Rank:   row.Rank,
			Diff:   row.Difference,
			Score:  score,
		})
	}
	return items
}
