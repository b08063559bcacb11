package ndl_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/kokkai"
	"github.com/fwojciec/kokkai/ndl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_SinglePage(t *testing.T) {
	t.Parallel()

	client, positions := pagedServer(t, map[string]string{
		"1": envelope(record(211, "2023-01-23"), record(211, "2023-01-24")),
	})

	s, err := client.Meetings(context.Background(), testQuery())
	require.NoError(t, err)
	defer s.Close()

	records, err := kokkai.Collect(s)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"1", "101"}, *positions)
}

func TestStream_Pagination(t *testing.T) {
	t.Parallel()

	// Two full pages, then a partial one. The partial page must not end
	// the walk; only the empty page at position 301 does.
	client, positions := pagedServer(t, map[string]string{
		"1":   pageOf(t, 100, 210, "2022-10-03"),
		"101": pageOf(t, 100, 210, "2022-11-03"),
		"201": pageOf(t, 3, 211, "2023-01-23"),
	})

	s, err := client.Meetings(context.Background(), testQuery())
	require.NoError(t, err)
	defer s.Close()

	records, err := kokkai.Collect(s)
	require.NoError(t, err)
	assert.Len(t, records, 203)
	assert.Equal(t, []string{"1", "101", "201", "301"}, *positions)

	assert.Equal(t, 210, records[0].Session)
	assert.Equal(t, 211, records[202].Session)
}

func TestStream_EmptyFirstPage(t *testing.T) {
	t.Parallel()

	client, positions := pagedServer(t, nil)

	s, err := client.Meetings(context.Background(), testQuery())
	require.NoError(t, err)
	defer s.Close()

	records, err := kokkai.Collect(s)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, []string{"1"}, *positions)
}

func TestStream_EOFIsRepeatable(t *testing.T) {
	t.Parallel()

	client, _ := pagedServer(t, map[string]string{
		"1": envelope(record(211, "2023-01-23")),
	})

	s, err := client.Meetings(context.Background(), testQuery())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Next()
	require.NoError(t, err)
	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStream_CountersAreAdvisory(t *testing.T) {
	t.Parallel()

	// The envelope claims thousands of records and a next position, but
	// the record list is empty. The empty list wins.
	client, positions := pagedServer(t, map[string]string{
		"1": `{"numberOfRecords":5000,"numberOfReturn":0,"nextRecordPosition":101,"meetingRecord":[]}`,
	})

	s, err := client.Meetings(context.Background(), testQuery())
	require.NoError(t, err)
	defer s.Close()

	records, err := kokkai.Collect(s)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, []string{"1"}, *positions)
}

func TestStream_NextAfterClose(t *testing.T) {
	t.Parallel()

	client, _ := pagedServer(t, map[string]string{
		"1": envelope(record(211, "2023-01-23")),
	})

	s, err := client.Meetings(context.Background(), testQuery())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Next()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kokkai.ErrStreamClosed))
}

func TestStream_CloseStopsPagination(t *testing.T) {
	t.Parallel()

	client, positions := pagedServer(t, map[string]string{
		"1":   pageOf(t, 100, 210, "2022-10-03"),
		"101": pageOf(t, 100, 210, "2022-11-03"),
	})

	s, err := client.Meetings(context.Background(), testQuery())
	require.NoError(t, err)

	// Drain part of the first page, then close. No request beyond the
	// eagerly fetched first page may go out.
	for i := 0; i < 10; i++ {
		_, err := s.Next()
		require.NoError(t, err)
	}
	require.NoError(t, s.Close())

	_, err = s.Next()
	require.Error(t, err)
	assert.Equal(t, []string{"1"}, *positions)
}

func TestStream_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	client, _ := pagedServer(t, map[string]string{
		"1": envelope(record(211, "2023-01-23")),
	})

	s, err := client.Meetings(context.Background(), testQuery())
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}

func TestStream_MidStreamHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("recordPosition") == "1" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(pageOf(t, 100, 211, "2023-01-23")))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := ndl.New(ndl.WithBaseURL(srv.URL))
	s, err := client.Meetings(context.Background(), testQuery())
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 100; i++ {
		_, err := s.Next()
		require.NoError(t, err)
	}

	_, err = s.Next()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kokkai.ErrTransport))

	// The error is terminal.
	_, again := s.Next()
	assert.Equal(t, err, again)
}

func TestStream_ContextCancellation(t *testing.T) {
	t.Parallel()

	client, _ := pagedServer(t, map[string]string{
		"1": envelope(record(211, "2023-01-23")),
	})

	ctx, cancel := context.WithCancel(context.Background())
	s, err := client.Meetings(ctx, testQuery())
	require.NoError(t, err)
	defer s.Close()

	// The buffered record is still served after cancellation; the next
	// page fetch fails.
	cancel()
	_, err = s.Next()
	require.NoError(t, err)

	_, err = s.Next()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kokkai.ErrTransport))
	assert.Contains(t, err.Error(), "context canceled")
}
