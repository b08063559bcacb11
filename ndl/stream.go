package ndl

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/kokkai"
)

// stream implements [kokkai.RecordStream] by walking meeting-list pages.
type stream struct {
	client *Client
	ctx    context.Context
	query  kokkai.Query

	page   []kokkai.Meeting // records of the current page not yet served
	pos    int              // 1-based recordPosition of the next page
	done   bool             // a fetched page came back empty
	closed bool
	err    error // terminal error, if any
}

// Interface compliance check.
var _ kokkai.RecordStream = (*stream)(nil)

func newStream(ctx context.Context, client *Client, query kokkai.Query) *stream {
	return &stream{
		client: client,
		ctx:    ctx,
		query:  query,
		pos:    1,
	}
}

// Next returns the next meeting record, fetching further pages as needed.
// Returns io.EOF once the API serves an empty page.
func (s *stream) Next() (kokkai.Meeting, error) {
	if s.closed {
		return kokkai.Meeting{}, fmt.Errorf("ndl: %w", kokkai.ErrStreamClosed)
	}
	if s.err != nil {
		return kokkai.Meeting{}, s.err
	}

	for len(s.page) == 0 {
		if s.done {
			return kokkai.Meeting{}, io.EOF
		}
		if err := s.fetch(); err != nil {
			s.err = err
			return kokkai.Meeting{}, err
		}
	}

	m := s.page[0]
	s.page = s.page[1:]
	return m, nil
}

// fetch retrieves the page at the current position. A non-empty page
// advances the position by the page size; an empty page marks the stream
// done. A page shorter than the page size is not the end: the walk stops
// only on an empty one.
func (s *stream) fetch() error {
	page, err := s.client.fetchPage(s.ctx, s.query, s.pos)
	if err != nil {
		return err
	}
	if len(page) == 0 {
		s.done = true
		return nil
	}
	s.page = page
	s.pos += s.client.pageSize
	return nil
}

// Close marks the stream closed. Subsequent Next calls fail.
func (s *stream) Close() error {
	s.closed = true
	return nil
}
