// Package options checks input source settings shared by the loader and the
// MCP server.
package options

import (
	"fmt"
	"strings"

	"github.com/erraggy/oascompat/oaserrors"
)

// Source is one way of providing a document, and whether it was used.
type Source struct {
	Name string
	Set  bool
}

// ExactlyOne returns an *oaserrors.ConfigError for option unless exactly
// one of sources is set. The message lists the source names.
func ExactlyOne(option string, sources ...Source) error {
	count := 0
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
		if s.Set {
			count++
		}
	}
	if count == 1 {
		return nil
	}
	return &oaserrors.ConfigError{
		Option:  option,
		Message: fmt.Sprintf("exactly one of %s must be provided (got %d)", orList(names), count),
	}
}

// orList joins names as "a, b, or c".
func orList(names []string) string {
	switch len(names) {
	case 0:
		return "nothing"
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
