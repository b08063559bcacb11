// Package bubbletea provides a Bubble Tea progress display for kokkai fetches.
package bubbletea

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/kokkai"
)

// FetchFunc runs a fetch. The onRecord callback is called for each meeting
// record as it arrives. The function blocks until the fetch completes or the
// context is cancelled, and returns the aggregated session ranges.
type FetchFunc func(ctx context.Context, onRecord func(kokkai.Meeting)) ([]kokkai.SessionRange, error)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits and returns the final model so the caller can read the fetch outcome.
// The context is used for graceful shutdown; when cancelled, the program quits.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m)
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if err != nil {
		return m, err
	}
	fm, ok := final.(Model)
	if !ok {
		return m, fmt.Errorf("bubbletea: unexpected final model type %T", final)
	}
	return fm, nil
}

// RecordMsg wraps a meeting record for delivery to the Bubble Tea model.
type RecordMsg struct {
	Meeting kokkai.Meeting
}

// FetchDoneMsg signals that the fetch has completed.
type FetchDoneMsg struct {
	Ranges []kokkai.SessionRange
	Err    error
}
