package kokkai

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the
// output automatically matches any color scheme.
type Theme struct {
	Header  int // Table headers
	Error   int // Error messages
	Success int // Completion indicators
	Muted   int // Progress counters, separators
	Accent  int // Session numbers, highlights
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Header:  5,
		Error:   1,
		Success: 2,
		Muted:   8,
		Accent:  4,
	}
}
