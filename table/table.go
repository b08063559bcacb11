// Package table renders session date ranges as an ANSI-styled terminal
// table using lipgloss for styling.
//
// Column widths are measured in terminal cells rather than runes or bytes
// so that wide characters, such as the Japanese column headers, line up
// with the ASCII dates below them.
package table

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/kokkai"
	"github.com/rivo/uniseg"
)

const gutter = "  "

var header = []string{"回次", "開始日", "終了日"}

// Render returns the ranges as an aligned table with a styled header row,
// one line per range in the order given.
func Render(ranges []kokkai.SessionRange, theme kokkai.Theme) string {
	rows := make([][]string, len(ranges))
	for i, r := range ranges {
		rows[i] = []string{
			strconv.Itoa(r.Session),
			r.Start.Format(time.DateOnly),
			r.End.Format(time.DateOnly),
		}
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = uniseg.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := uniseg.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(ansiColor(theme.Header)).Bold(true)
	sessionStyle := lipgloss.NewStyle().Foreground(ansiColor(theme.Accent))

	var sb strings.Builder
	for i, h := range header {
		if i > 0 {
			sb.WriteString(gutter)
		}
		sb.WriteString(headerStyle.Render(pad(h, widths[i], i == len(header)-1)))
	}
	sb.WriteByte('\n')

	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(gutter)
			}
			padded := pad(cell, widths[i], i == len(row)-1)
			if i == 0 {
				padded = sessionStyle.Render(padded)
			}
			sb.WriteString(padded)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// pad right-pads s with spaces to the given display width. The last column
// stays unpadded so lines carry no trailing spaces.
func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	if n := width - uniseg.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
