package ndl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fwojciec/kokkai"
)

// Interface compliance check.
var _ kokkai.Fetcher = (*Client)(nil)

// Client implements [kokkai.Fetcher] for the NDL meeting-list API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	pageSize   int
	logger     *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPageSize sets the records-per-page request size.
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

// WithLogger sets the logger for page-level debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new NDL [Client] with the given options. The default HTTP
// client applies a 30 second timeout per page request.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		pageSize:   defaultPageSize,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Meetings opens a record stream for the query. The first page is fetched
// eagerly so connection and query problems surface here rather than on the
// first Next call.
func (c *Client) Meetings(ctx context.Context, query kokkai.Query) (kokkai.RecordStream, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("ndl: %w", err)
	}
	s := newStream(ctx, c, query)
	if err := s.fetch(); err != nil {
		return nil, err
	}
	return s, nil
}

// fetchPage retrieves and parses a single page at the given record
// position.
func (c *Client) fetchPage(ctx context.Context, query kokkai.Query, position int) ([]kokkai.Meeting, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL(query, position), nil)
	if err != nil {
		return nil, fmt.Errorf("ndl: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ndl: %v: %w", err, kokkai.ErrTransport)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseHTTPError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ndl: read response: %v: %w", err, kokkai.ErrTransport)
	}

	page, err := parsePage(body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched page", "position", position, "records", len(page))
	return page, nil
}

func (c *Client) pageURL(query kokkai.Query, position int) string {
	params := url.Values{}
	if query.NameOfMeeting != "" {
		params.Set("nameOfMeeting", query.NameOfMeeting)
	}
	params.Set("startDate", query.Start.Format(time.DateOnly))
	params.Set("endDate", query.End.Format(time.DateOnly))
	params.Set("maximumRecords", strconv.Itoa(c.pageSize))
	params.Set("recordPosition", strconv.Itoa(position))
	params.Set("recordPacking", "json")
	return c.baseURL + meetingListPath + "?" + params.Encode()
}

// parsePage validates the envelope and converts the page's records. An
// empty slice means the page is empty and the walk is complete.
func parsePage(body []byte) ([]kokkai.Meeting, error) {
	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("ndl: parse response: %v: %w", err, kokkai.ErrShape)
	}

	raw := bytes.TrimSpace(env.MeetingRecord)
	if len(raw) == 0 {
		return nil, fmt.Errorf("ndl: missing meetingRecord: %w", kokkai.ErrShape)
	}
	if raw[0] != '[' {
		return nil, fmt.Errorf("ndl: meetingRecord is not a list: %w", kokkai.ErrShape)
	}

	var recs []apiMeetingRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("ndl: invalid meeting record: %v: %w", err, kokkai.ErrShape)
	}

	page := make([]kokkai.Meeting, 0, len(recs))
	for i, rec := range recs {
		m, err := convertRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("ndl: record %d: %w", i, err)
		}
		page = append(page, m)
	}
	return page, nil
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ndl: HTTP %d: %w", resp.StatusCode, kokkai.ErrTransport)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("ndl: HTTP %d: %s: %w", resp.StatusCode, apiErr.Message, kokkai.ErrTransport)
	}
	return fmt.Errorf("ndl: HTTP %d: %w", resp.StatusCode, kokkai.ErrTransport)
}
