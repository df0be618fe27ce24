// Package series reconstructs running-balance curves from transaction
// history for charting.
package series

import (
	"time"

	"github.com/copia-dashboard/internal/domain/copia"
	"github.com/copia-dashboard/internal/domain/ledger"
)

// DefaultLabelFormat is the chart axis label layout.
const DefaultLabelFormat = "Jan 2"

// Point is the cumulative balance at the end of one calendar day.
type Point struct {
	Day     time.Time   `json:"day"`
	Label   string      `json:"label"`
	Balance copia.Copia `json:"balance"`
}

// Options tune the builder. The zero value means: opening balance 0,
// time.Now as the clock, DefaultLabelFormat labels.
type Options struct {
	// Opening is the balance before the first charted day.
	Opening copia.Copia
	// Now supplies "today"; the series always extends through it.
	Now func() time.Time
	// LabelFormat is the time layout for Point.Label.
	LabelFormat string
}

// Build reduces transactions into one point per calendar day from the
// earliest transaction's day through today inclusive. Days without
// transactions repeat the prior running total, so gaps chart as flat
// segments. Bill payments debit the balance, transfers and system
// transactions credit it. An empty input yields an empty series, and callers
// render a "no data" state rather than a synthetic zero point. The input is
// never mutated.
func Build(txs []ledger.Transaction, opts Options) []Point {
	if len(txs) == 0 {
		return nil
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	layout := opts.LabelFormat
	if layout == "" {
		layout = DefaultLabelFormat
	}

	// Bucket signed deltas by canonical UTC day.
	deltas := make(map[time.Time]copia.Copia, len(txs))
	var first time.Time
	for _, tx := range txs {
		day := dayOf(tx.CreatedAt)
		deltas[day] = deltas[day].Add(tx.SignedAmount())
		if first.IsZero() || day.Before(first) {
			first = day
		}
	}

	today := dayOf(now())
	if today.Before(first) {
		// Clock behind the data; chart at least the transaction days.
		for day := range deltas {
			if day.After(today) {
				today = day
			}
		}
	}

	total := opts.Opening
	points := make([]Point, 0, int(today.Sub(first).Hours()/24)+1)
	for day := first; !day.After(today); day = day.AddDate(0, 0, 1) {
		total = total.Add(deltas[day])
		points = append(points, Point{
			Day:     day,
			Label:   day.Format(layout),
			Balance: total,
		})
	}
	return points
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
