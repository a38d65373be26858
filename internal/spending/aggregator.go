// Package spending reduces raw transactions to rolling spending totals.
package spending

import (
	"math"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/model"
)

// Window cutoffs, measured backwards from the reference time.
const (
	dailyWindow   = 24 * time.Hour
	weeklyWindow  = 7 * 24 * time.Hour
	monthlyWindow = 30 * 24 * time.Hour
)

// LookbackDays is how far back transactions are fetched from the provider.
const LookbackDays = 30

// Snapshot holds the three rolling spending totals. It is a pure function
// of the reference time and the transaction set, always replaced wholesale.
type Snapshot struct {
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
}

// IsZero reports whether the snapshot is the zero value.
func (s Snapshot) IsZero() bool {
	return s == Snapshot{}
}

// Rounded returns the snapshot with all totals rounded to two decimals.
// Rounding happens only at the presentation edge, never during aggregation.
func (s Snapshot) Rounded() Snapshot {
	return Snapshot{
		Daily:   round2(s.Daily),
		Weekly:  round2(s.Weekly),
		Monthly: round2(s.Monthly),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Aggregate sums transaction amounts into the three cumulative windows
// ending at now. The windows overlap: a transaction from yesterday counts
// toward daily, weekly and monthly alike.
//
// Only positive amounts (money out, per the provider convention) are
// counted; refunds and credits are excluded rather than subtracted.
func Aggregate(txns []model.Transaction, now time.Time) Snapshot {
	var snap Snapshot
	for _, t := range txns {
		if t.Amount <= 0 {
			continue
		}
		age := now.Sub(t.Date)
		if age < 0 || age > monthlyWindow {
			continue
		}
		snap.Monthly += t.Amount
		if age <= weeklyWindow {
			snap.Weekly += t.Amount
		}
		if age <= dailyWindow {
			snap.Daily += t.Amount
		}
	}
	return snap
}
