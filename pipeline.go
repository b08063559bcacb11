package kokkai

import (
	"context"
	"fmt"
	"io"
)

// Pipeline runs the fetch-and-aggregate flow: stream meeting records for a
// query, fold them into per-session date ranges, and return the ranges
// sorted newest-session first. Any failure along the way aborts the whole
// run; there are no partial results.
type Pipeline struct {
	fetcher Fetcher
}

// NewPipeline returns a Pipeline backed by the given fetcher.
func NewPipeline(fetcher Fetcher) *Pipeline {
	return &Pipeline{fetcher: fetcher}
}

// RunOption configures a single Run call.
type RunOption func(*runConfig)

type runConfig struct {
	onRecord func(Meeting)
}

// WithRecordHandler registers a callback invoked for every record as it is
// consumed from the stream. The callback runs on the Run goroutine and
// must not block; it exists for progress reporting.
func WithRecordHandler(fn func(Meeting)) RunOption {
	return func(c *runConfig) {
		c.onRecord = fn
	}
}

// Run executes the pipeline for one query.
func (p *Pipeline) Run(ctx context.Context, query Query, opts ...RunOption) ([]SessionRange, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := query.Validate(); err != nil {
		return nil, err
	}

	stream, err := p.fetcher.Meetings(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	agg := NewAggregator()
	n := 0
	for {
		m, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := agg.Add(m); err != nil {
			return nil, fmt.Errorf("record %d: %w", n, err)
		}
		if cfg.onRecord != nil {
			cfg.onRecord(m)
		}
		n++
	}

	return agg.Ranges(), nil
}
