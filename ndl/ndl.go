// Package ndl implements [kokkai.Fetcher] for the National Diet Library
// meeting-list API.
//
// The API serves results in pages addressed by a 1-based recordPosition.
// The stream returned by [Client.Meetings] walks the pages lazily,
// advancing the position by the page size after every non-empty page and
// treating the first empty page as the end of the result set. Counters in
// the response envelope (numberOfRecords, nextRecordPosition) are advisory
// and play no part in termination.
package ndl

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/kokkai"
)

const (
	defaultBaseURL  = "https://kokkai.ndl.go.jp"
	meetingListPath = "/api/meeting_list"
	defaultPageSize = 100
	defaultTimeout  = 30 * time.Second
)

// apiEnvelope is the JSON body returned by the meeting-list endpoint.
// MeetingRecord stays raw so that a missing key, a null and a non-array
// payload can be told apart from an empty page.
type apiEnvelope struct {
	NumberOfRecords    int             `json:"numberOfRecords"`
	NumberOfReturn     int             `json:"numberOfReturn"`
	StartRecord        int             `json:"startRecord"`
	NextRecordPosition *int            `json:"nextRecordPosition"`
	MeetingRecord      json.RawMessage `json:"meetingRecord"`
}

// apiMeetingRecord is one meeting entry in the envelope. Session and Date
// are pointers so absent keys can be distinguished from zero values.
type apiMeetingRecord struct {
	IssueID       string     `json:"issueID"`
	Session       *intString `json:"session"`
	NameOfMeeting string     `json:"nameOfMeeting"`
	Issue         string     `json:"issue"`
	Date          *string    `json:"date"`
	MeetingURL    string     `json:"meetingURL"`
}

// intString decodes a JSON number or a string holding one. The API has
// served the session field both ways.
type intString int

func (v *intString) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid session %q", s)
	}
	*v = intString(n)
	return nil
}

// apiErrorResponse is the JSON body returned on non-200 HTTP responses.
type apiErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// convertRecord maps a wire record to the domain type. A record without a
// session or date, or with a date that is not ISO formatted, is a shape
// error.
func convertRecord(rec apiMeetingRecord) (kokkai.Meeting, error) {
	if rec.Session == nil {
		return kokkai.Meeting{}, fmt.Errorf("missing session: %w", kokkai.ErrShape)
	}
	if rec.Date == nil {
		return kokkai.Meeting{}, fmt.Errorf("missing date: %w", kokkai.ErrShape)
	}
	d, err := time.Parse(time.DateOnly, *rec.Date)
	if err != nil {
		return kokkai.Meeting{}, fmt.Errorf("invalid date %q: %w", *rec.Date, kokkai.ErrShape)
	}
	return kokkai.Meeting{
		Session: int(*rec.Session),
		Date:    d,
		Name:    rec.NameOfMeeting,
		Issue:   rec.Issue,
		IssueID: rec.IssueID,
		URL:     rec.MeetingURL,
	}, nil
}
