package kokkai

import (
	"fmt"
	"sort"
	"time"
)

// SessionRange is the calendar-date range covered by one legislative
// session, aggregated from the meeting records observed for that session
// number. Start and End are both dates of actual meetings, so Start <= End
// always holds.
type SessionRange struct {
	Session int
	Start   time.Time
	End     time.Time
}

// Aggregator reduces meeting records into one SessionRange per distinct
// session number, tracking the minimum and maximum date seen. The
// reduction is single-pass and order-independent: feeding the same records
// in any order produces identical ranges.
type Aggregator struct {
	ranges map[int]*SessionRange
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{ranges: make(map[int]*SessionRange)}
}

// Add folds one meeting record into the aggregation. A record without a
// session number or date is a response-shape failure: fatal, never
// skipped.
func (a *Aggregator) Add(m Meeting) error {
	if m.Session <= 0 {
		return fmt.Errorf("meeting record missing session: %w", ErrShape)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("meeting record missing date: %w", ErrShape)
	}

	r, ok := a.ranges[m.Session]
	if !ok {
		a.ranges[m.Session] = &SessionRange{Session: m.Session, Start: m.Date, End: m.Date}
		return nil
	}
	if m.Date.Before(r.Start) {
		r.Start = m.Date
	}
	if m.Date.After(r.End) {
		r.End = m.Date
	}
	return nil
}

// Ranges returns one SessionRange per distinct session number seen, sorted
// by session number descending (newest session first).
func (a *Aggregator) Ranges() []SessionRange {
	out := make([]SessionRange, 0, len(a.ranges))
	for _, r := range a.ranges {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Session > out[j].Session })
	return out
}

// AggregateMeetings reduces a complete record list in a single call.
func AggregateMeetings(records []Meeting) ([]SessionRange, error) {
	agg := NewAggregator()
	for i, m := range records {
		if err := agg.Add(m); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return agg.Ranges(), nil
}
