// Package mock provides test doubles for kokkai interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/kokkai"
)

// Interface compliance check.
var _ kokkai.Fetcher = (*Fetcher)(nil)

// Fetcher is a test double for kokkai.Fetcher.
// Set MeetingsFn before calling Meetings.
type Fetcher struct {
	MeetingsFn func(ctx context.Context, query kokkai.Query) (kokkai.RecordStream, error)
}

// Meetings delegates to MeetingsFn.
func (f *Fetcher) Meetings(ctx context.Context, query kokkai.Query) (kokkai.RecordStream, error) {
	return f.MeetingsFn(ctx, query)
}
