package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/kokkai"
	bt "github.com/fwojciec/kokkai/bubbletea"
	"github.com/stretchr/testify/require"
)

// initModel creates a model and sends a WindowSizeMsg so width-dependent
// rendering is exercised.
func initModel(t *testing.T, fetch bt.FetchFunc) bt.Model {
	t.Helper()
	return initModelWithWidth(t, fetch, 80)
}

// initModelWithWidth creates a model with a custom terminal width.
func initModelWithWidth(t *testing.T, fetch bt.FetchFunc, width int) bt.Model {
	t.Helper()
	m := bt.New(context.Background(), fetch, kokkai.DefaultTheme())
	return updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: 24})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// nopFetch is a fetch function that completes immediately with no records.
func nopFetch(_ context.Context, _ func(kokkai.Meeting)) ([]kokkai.SessionRange, error) {
	return nil, nil
}
