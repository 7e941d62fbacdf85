package rules

import (
	"fmt"
	"strings"

	"github.com/erraggy/oascompat/internal/cliutil"
)

// Explain renders a rule for humans:
//
//	[CODE] Short name:
//		description wrapped at 120 columns
//
//	More info on link
//
// The link paragraph is omitted when the rule has none. With colorize set,
// the code is bold and the short name bold cyan.
func Explain(rule Rule, colorize bool) string {
	info := rule.Info()
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s:\n%s",
		cliutil.Bold(info.Code, colorize),
		cliutil.BoldCyan(info.ShortName, colorize),
		cliutil.Wrap(info.Description, cliutil.DefaultWrapWidth, "\t"),
	)
	if info.DocumentationLink != "" {
		fmt.Fprintf(&b, "\n\nMore info on %s", info.DocumentationLink)
	}
	return b.String()
}

// ExplainAll renders the rules in code order under a title, as printed by
// the explain command.
func ExplainAll(rules []Rule, colorize bool) string {
	parts := []string{cliutil.Bold("Rules explanation", colorize)}
	for _, rule := range sortedByCode(rules) {
		parts = append(parts, Explain(rule, colorize))
	}
	return strings.Join(parts, "\n")
}
