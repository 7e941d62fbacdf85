package cliutil

import (
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiCyan  = "\x1b[36m"
)

// ColorEnabled reports whether output written to f should carry ANSI
// styling: f must be a terminal and NO_COLOR must be unset.
func ColorEnabled(f *os.File) bool {
	if f == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Bold renders s in bold when enabled.
func Bold(s string, enabled bool) string {
	if !enabled {
		return s
	}
	return ansiBold + s + ansiReset
}

// BoldCyan renders s in bold cyan when enabled.
func BoldCyan(s string, enabled bool) string {
	if !enabled {
		return s
	}
	return ansiBold + ansiCyan + s + ansiReset
}
