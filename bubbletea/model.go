package bubbletea

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/kokkai"
	"github.com/fwojciec/kokkai/table"
	"github.com/mattn/go-runewidth"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the fetch progress display. It starts
// the fetch on Init, counts records and sessions as they arrive, and renders
// the session table when the fetch completes.
type Model struct {
	fetch  FetchFunc
	theme  kokkai.Theme
	styles Styles

	spin  spinner.Model
	start time.Time
	width int

	records  int
	sessions map[int]struct{}
	latest   string

	ranges  []kokkai.SessionRange
	elapsed time.Duration
	running bool
	done    bool
	err     error

	// canceled is set when the user interrupts the fetch. The fetch then
	// fails with whatever error the aborted request produced; the flag tells
	// the interruption apart from a genuine failure.
	canceled bool

	ctx      context.Context
	cancel   context.CancelFunc
	recordCh chan kokkai.Meeting
	doneCh   chan FetchDoneMsg
}

// New creates a progress Model for the given fetch function. The fetch runs
// under a context derived from ctx so an interrupt cancels it.
func New(ctx context.Context, fetch FetchFunc, theme kokkai.Theme) Model {
	styles := NewStyles(theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	ctx, cancel := context.WithCancel(ctx)

	return Model{
		fetch:    fetch,
		theme:    theme,
		styles:   styles,
		spin:     sp,
		start:    time.Now(),
		sessions: make(map[int]struct{}),
		running:  true,
		ctx:      ctx,
		cancel:   cancel,
		recordCh: make(chan kokkai.Meeting, 256),
		doneCh:   make(chan FetchDoneMsg, 1),
	}
}

// Running returns whether the fetch is still in progress.
func (m Model) Running() bool { return m.running }

// Err returns the fetch error, if any. A user interrupt yields
// context.Canceled regardless of how the aborted fetch failed.
func (m Model) Err() error { return m.err }

// Ranges returns the aggregated session ranges once the fetch has completed.
func (m Model) Ranges() []kokkai.SessionRange { return m.ranges }

// SetCancelFunc is a test helper that replaces the model's cancel function.
func SetCancelFunc(m Model, cancel func()) Model {
	m.cancel = cancel
	return m
}

// Init implements tea.Model. It starts the fetch and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		startFetch(m.fetch, m.ctx, m.recordCh, m.doneCh),
		listenForRecord(m.recordCh, m.doneCh),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.running {
				m.canceled = true
				if m.cancel != nil {
					m.cancel()
				}
				return m, nil
			}
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case RecordMsg:
		m.records++
		m.sessions[msg.Meeting.Session] = struct{}{}
		m.latest = meetingLabel(msg.Meeting)
		if m.recordCh != nil {
			return m, listenForRecord(m.recordCh, m.doneCh)
		}
		return m, nil

	case FetchDoneMsg:
		m.running = false
		m.done = true
		m.elapsed = time.Since(m.start)
		m.cancel = nil
		m.recordCh = nil
		m.doneCh = nil
		m.ranges = msg.Ranges
		switch {
		case m.canceled:
			m.err = context.Canceled
		case msg.Err != nil:
			m.err = msg.Err
		}
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return m.finalView()
	}

	var b strings.Builder
	b.WriteString(m.spin.View())
	b.WriteString(" ")
	b.WriteString(m.styles.Accent.Render("fetching meeting records"))
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %s  %d records  %d sessions",
		time.Since(m.start).Round(time.Second), m.records, len(m.sessions))))
	b.WriteString("\n")
	if m.latest != "" {
		b.WriteString(m.styles.Muted.Render("  " + m.truncate(m.latest)))
		b.WriteString("\n")
	}
	return b.String()
}

// finalView is the last frame left on screen when the program exits: the
// session table and a summary on success, the error on failure, nothing
// when the user interrupted.
func (m Model) finalView() string {
	if m.canceled {
		return ""
	}
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	var b strings.Builder
	b.WriteString(table.Render(m.ranges, m.theme))
	b.WriteString(m.styles.Success.Render("✓"))
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" %d records, %d sessions in %s",
		m.records, len(m.sessions), m.elapsed.Round(100*time.Millisecond))))
	b.WriteString("\n")
	return b.String()
}

// truncate shortens s to the terminal width, measured in display cells.
func (m Model) truncate(s string) string {
	w := m.width
	if w <= 0 {
		w = 80
	}
	return runewidth.Truncate(s, w-2, "…")
}

func meetingLabel(rec kokkai.Meeting) string {
	label := strings.TrimSpace(rec.Name + " " + rec.Issue)
	if !rec.Date.IsZero() {
		label += " (" + rec.Date.Format(time.DateOnly) + ")"
	}
	return label
}

// startFetch runs the fetch in a goroutine and signals completion.
func startFetch(fetch FetchFunc, ctx context.Context, recordCh chan<- kokkai.Meeting, doneCh chan<- FetchDoneMsg) tea.Cmd {
	return func() tea.Msg {
		ranges, err := fetch(ctx, func(rec kokkai.Meeting) {
			select {
			case recordCh <- rec:
			case <-ctx.Done():
			}
		})
		close(recordCh)
		doneCh <- FetchDoneMsg{Ranges: ranges, Err: err}
		return nil
	}
}

// listenForRecord waits for the next record from the channel. When the
// channel closes, it reads the outcome from doneCh and returns FetchDoneMsg.
func listenForRecord(ch <-chan kokkai.Meeting, doneCh <-chan FetchDoneMsg) tea.Cmd {
	return func() tea.Msg {
		rec, ok := <-ch
		if !ok {
			return <-doneCh
		}
		return RecordMsg{Meeting: rec}
	}
}
