package ledger

import (
	"errors"
	"fmt"

	"github.com/copia-dashboard/internal/domain/entity"
)

// RankingEntity selects which party kind a ranking covers.
type RankingEntity string

const (
	RankingEntityUser    RankingEntity = "user"
	RankingEntityProject RankingEntity = "project"
)

// RankingMetric selects what a ranking measures.
type RankingMetric string

const (
	RankingMetricBalance    RankingMetric = "balance"
	RankingMetricDifference RankingMetric = "difference"
	RankingMetricIn         RankingMetric = "in"
	RankingMetricOut        RankingMetric = "out"
	RankingMetricCount      RankingMetric = "count"
	RankingMetricTotal      RankingMetric = "total"
	RankingMetricRatio      RankingMetric = "ratio"
)

// RankingPeriod selects the window a ranking is computed over.
type RankingPeriod string

const (
	RankingPeriod24Hours RankingPeriod = "24hours"
	RankingPeriod7Days   RankingPeriod = "7days"
	RankingPeriod30Days  RankingPeriod = "30days"
	RankingPeriod365Days RankingPeriod = "365days"
)

// RankingOrder selects the server-side sort direction.
type RankingOrder string

const (
	RankingOrderAsc  RankingOrder = "asc"
	RankingOrderDesc RankingOrder = "desc"
)

// ErrInvalidRankingQuery is wrapped by RankingQuery.Validate failures.
var ErrInvalidRankingQuery = errors.New("invalid ranking query")

// RankingQuery parameterizes a ranking lookup against the ledger API. The
// field domains are closed enums, which keeps suspension-cache keys bounded.
type RankingQuery struct {
	Entity RankingEntity
	Metric RankingMetric
	Period RankingPeriod
	Order  RankingOrder
	Limit  int
}

// Validate checks every field against its closed domain.
func (q RankingQuery) Validate() error {
	switch q.Entity {
	case RankingEntityUser, RankingEntityProject:
	default:
		return fmt.Errorf("%w: entity %q", ErrInvalidRankingQuery, q.Entity)
	}
	switch q.Metric {
	case RankingMetricBalance, RankingMetricDifference, RankingMetricIn,
		RankingMetricOut, RankingMetricCount, RankingMetricTotal, RankingMetricRatio:
	default:
		return fmt.Errorf("%w: metric %q", ErrInvalidRankingQuery, q.Metric)
	}
	switch q.Period {
	case RankingPeriod24Hours, RankingPeriod7Days, RankingPeriod30Days, RankingPeriod365Days:
	default:
		return fmt.Errorf("%w: period %q", ErrInvalidRankingQuery, q.Period)
	}
	switch q.Order {
	case RankingOrderAsc, RankingOrderDesc:
	default:
		return fmt.Errorf("%w: order %q", ErrInvalidRankingQuery, q.Order)
	}
	if q.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive", ErrInvalidRankingQuery)
	}
	return nil
}

// RankingRow is one externally-ranked entry as returned by the ledger API.
// Rank is authoritative server data; the client never recomputes it.
// Difference is the signed rank change since the prior period, nil when
// unknown.
type RankingRow struct {
	Rank       int           `json:"rank"`
	Difference *int          `json:"difference,omitempty"`
	Entity     entity.Entity `json:"entity"`
}
