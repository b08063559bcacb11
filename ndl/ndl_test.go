package ndl_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/kokkai"
	"github.com/fwojciec/kokkai/ndl"
)

const emptyPage = `{"numberOfRecords":0,"numberOfReturn":0,"startRecord":0,"nextRecordPosition":null,"meetingRecord":[]}`

// record builds a minimal meeting record JSON object.
func record(session int, date string) string {
	return fmt.Sprintf(`{"issueID":"121105254X00120230123","session":%d,"nameOfMeeting":"本会議","issue":"第1号","date":%q,"meetingURL":"https://kokkai.ndl.go.jp/#/detail?minId=121105254X00120230123"}`,
		session, date)
}

// envelope wraps record JSON objects in a response envelope.
func envelope(records ...string) string {
	return fmt.Sprintf(`{"numberOfRecords":%d,"meetingRecord":[%s]}`, len(records), strings.Join(records, ","))
}

// pageOf builds an envelope holding n records for one session, dated
// consecutively from start.
func pageOf(t *testing.T, n, session int, start string) string {
	t.Helper()
	day, err := time.Parse("2006-01-02", start)
	if err != nil {
		t.Fatalf("bad start date %q: %v", start, err)
	}
	records := make([]string, n)
	for i := range records {
		records[i] = record(session, day.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return envelope(records...)
}

// pagedServer starts a server that serves canned envelope bodies keyed by
// the recordPosition parameter, recording the positions requested.
// Unlisted positions get an empty page.
func pagedServer(t *testing.T, pages map[string]string, opts ...ndl.Option) (*ndl.Client, *[]string) {
	t.Helper()
	positions := &[]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pos := r.URL.Query().Get("recordPosition")
		*positions = append(*positions, pos)
		body, ok := pages[pos]
		if !ok {
			body = emptyPage
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return ndl.New(append([]ndl.Option{ndl.WithBaseURL(srv.URL)}, opts...)...), positions
}

// staticServer starts a server that serves the same body at every position.
func staticServer(t *testing.T, body string) *ndl.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return ndl.New(ndl.WithBaseURL(srv.URL))
}

func testQuery() kokkai.Query {
	return kokkai.Query{
		NameOfMeeting: kokkai.PlenaryMeetingName,
		Start:         time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:           time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}
