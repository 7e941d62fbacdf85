// Package severity provides the level attached to compatibility rules and
// to the messages they report.
//
// Levels are ordered from least to most severe: Info < Warning < Error.
package severity

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Level indicates how serious a reported incompatibility is.
type Level int

const (
	// Info marks changes worth knowing about that do not break clients.
	Info Level = iota

	// Warning marks changes that may break some clients.
	Warning

	// Error marks changes that break clients relying on the old document.
	Error
)

// Levels lists every level from least to most severe.
var Levels = []Level{Info, Warning, Error}

// String returns the upper-case name used in reports, such as "ERROR".
func (l Level) String() string {
	switch l {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Title returns the level name for display, such as "Error".
func (l Level) Title() string {
	return cases.Title(language.English).String(l.String())
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	if l < Info || l > Error {
		return nil, fmt.Errorf("severity: invalid level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name, ignoring case.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Parse returns the level named s, ignoring case.
func Parse(s string) (Level, error) {
	for _, l := range Levels {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("severity: unknown level %q", s)
}
