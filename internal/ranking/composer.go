// Package ranking splits externally-ranked items into a podium and a list
// for "top 3 + remainder" displays. Rank is authoritative server data; every
// sort and reorder here is presentation only and never renumbers an item.
package ranking

import (
	"math/big"
	"sort"
)

// Trend classifies a rank movement for badge rendering.
type Trend int

const (
	TrendNeutral Trend = iota
	TrendUp
	TrendDown
)

func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "up"
	case TrendDown:
		return "down"
	default:
		return "neutral"
	}
}

// Item pairs a domain entity with its server-assigned rank. Rank is 1-based;
// zero or negative means unranked. Diff is the signed rank change since the
// prior period, nil when unknown. Score may be nil for metrics without one.
// Key must be the entity's identity, because server-assigned ties make Rank
// unsafe as a render key.
type Item[T any] struct {
	Entity T
	Key    string
	Rank   int
	Diff   *int
	Score  *big.Int
}

// Trend maps Diff onto its three badge cases; zero and absent collapse to
// neutral.
func (it Item[T]) Trend() Trend {
	switch {
	case it.Diff == nil || *it.Diff == 0:
		return TrendNeutral
	case *it.Diff > 0:
		return TrendUp
	default:
		return TrendDown
	}
}

// Layout selects the podium render order.
type Layout int

const (
	// LayoutNarrow renders the podium in rank order: 1, 2, 3.
	LayoutNarrow Layout = iota
	// LayoutWide renders the podium center-weighted: 2, 1, 3.
	LayoutWide
)

// State is the three-way display state. Loading (from a still-pending fetch)
// must stay distinguishable from a confirmed-empty ranking.
type State int

const (
	StateLoading State = iota
	StateEmpty
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	default:
		return "ready"
	}
}

// Options control the split.
type Options struct {
	// MaxItems truncates the tail; zero or negative means no limit.
	MaxItems int
	// Podium splits the first three items off into Composition.Podium.
	Podium bool
	// Layout orders the podium for rendering.
	Layout Layout
}

// Composition is the display split. Podium is in render order, which under
// LayoutWide differs from rank order.
type Composition[T any] struct {
	State  State
	Podium []Item[T]
	List   []Item[T]
}

// Loading is the composition for a fetch that has not settled yet.
func Loading[T any]() Composition[T] {
	return Composition[T]{State: StateLoading}
}

// Compose sorts defensively by rank (stable, so server tie order survives),
// truncates to MaxItems, and splits off the podium when enabled. The podium
// boundary is strictly positional at index 3, ties notwithstanding. Input is
// never modified.
func Compose[T any](items []Item[T], opts Options) Composition[T] {
	sorted := make([]Item[T], len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rankKey(sorted[i]) < rankKey(sorted[j])
	})

	if opts.MaxItems > 0 && len(sorted) > opts.MaxItems {
		sorted = sorted[:opts.MaxItems]
	}

	if len(sorted) == 0 {
		return Composition[T]{State: StateEmpty}
	}

	comp := Composition[T]{State: StateReady}
	if !opts.Podium {
		comp.List = sorted
		return comp
	}

	cut := 3
	if len(sorted) < cut {
		cut = len(sorted)
	}
	comp.Podium = arrangePodium(sorted[:cut:cut], opts.Layout)
	comp.List = sorted[cut:]
	return comp
}

// rankKey orders ranked items ascending with unranked items last. Missing or
// non-positive ranks never panic the sort.
func rankKey[T any](it Item[T]) int {
	if it.Rank <= 0 {
		return int(^uint(0) >> 1)
	}
	return it.Rank
}

// arrangePodium returns the podium in render order. Wide layouts put the
// winner in the center: second, first, third.
func arrangePodium[T any](podium []Item[T], layout Layout) []Item[T] {
	if layout != LayoutWide || len(podium) < 2 {
		return podium
	}
	arranged := make([]Item[T], 0, len(podium))
	arranged = append(arranged, podium[1], podium[0])
	if len(podium) == 3 {
		arranged = append(arranged, podium[2])
	}
	return arranged
}
