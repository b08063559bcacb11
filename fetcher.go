package kokkai

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Query selects which meeting records to fetch.
type Query struct {
	// NameOfMeeting filters records by meeting name. Empty means no
	// name filter.
	NameOfMeeting string

	// Start and End bound the meeting dates, inclusive on both ends.
	Start time.Time
	End   time.Time
}

// Validate reports whether the query is well-formed enough to send.
func (q Query) Validate() error {
	if q.Start.IsZero() {
		return fmt.Errorf("start date is required: %w", ErrValidation)
	}
	if q.End.IsZero() {
		return fmt.Errorf("end date is required: %w", ErrValidation)
	}
	return nil
}

// Fetcher retrieves meeting records matching a query.
type Fetcher interface {
	// Meetings opens a stream of meeting records for the query. The
	// returned stream yields records one at a time across however many
	// API pages the query spans.
	Meetings(ctx context.Context, query Query) (RecordStream, error)
}

// RecordStream is a pull-based stream of meeting records.
type RecordStream interface {
	// Next returns the next record. It returns io.EOF when the stream
	// is exhausted. Any other error is fatal to the stream.
	Next() (Meeting, error)

	// Close releases resources associated with the stream.
	Close() error
}

// Collect drains a stream into a slice. Any record error aborts the
// collection: partial results are never returned.
func Collect(s RecordStream) ([]Meeting, error) {
	var out []Meeting
	for {
		m, err := s.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
}
