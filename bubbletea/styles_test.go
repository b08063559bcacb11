package bubbletea_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/kokkai"
	bt "github.com/fwojciec/kokkai/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	theme := kokkai.DefaultTheme()
	styles := bt.NewStyles(theme)

	assert.Equal(t, lipgloss.Color("4"), styles.Spinner.GetForeground())

	assert.Equal(t, lipgloss.Color("4"), styles.Accent.GetForeground())
	assert.True(t, styles.Accent.GetBold())

	assert.Equal(t, lipgloss.Color("8"), styles.Muted.GetForeground())
	assert.True(t, styles.Muted.GetFaint())

	assert.Equal(t, lipgloss.Color("1"), styles.Error.GetForeground())

	assert.Equal(t, lipgloss.Color("2"), styles.Success.GetForeground())
}

func TestNewStylesNegativeIndexYieldsNoColor(t *testing.T) {
	t.Parallel()

	theme := kokkai.Theme{Muted: -1}
	styles := bt.NewStyles(theme)

	assert.Equal(t, lipgloss.NoColor{}, styles.Muted.GetForeground())
}
