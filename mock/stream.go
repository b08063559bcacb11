package mock

import "github.com/fwojciec/kokkai"

// Interface compliance check.
var _ kokkai.RecordStream = (*RecordStream)(nil)

// RecordStream is a test double for kokkai.RecordStream.
// Set the function fields for the methods you need. Close is a no-op when
// CloseFn is not set.
type RecordStream struct {
	NextFn  func() (kokkai.Meeting, error)
	CloseFn func() error
}

// Next delegates to NextFn.
func (s *RecordStream) Next() (kokkai.Meeting, error) {
	return s.NextFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *RecordStream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
