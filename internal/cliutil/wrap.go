package cliutil

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DefaultWrapWidth is the column limit used for rule descriptions.
const DefaultWrapWidth = 120

// Wrap fills each line of text into lines at most width columns wide,
// prefixing every output line with indent. Words longer than the available
// width are kept whole. Indent characters count one column each.
func Wrap(text string, width int, indent string) string {
	indentWidth := utf8.RuneCountInString(indent)
	var out []string
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		var b strings.Builder
		b.WriteString(indent)
		col := indentWidth
		for i, word := range words {
			w := runewidth.StringWidth(word)
			if i > 0 && col+1+w > width {
				out = append(out, b.String())
				b.Reset()
				b.WriteString(indent)
				col = indentWidth
			} else if i > 0 {
				b.WriteByte(' ')
				col++
			}
			b.WriteString(word)
			col += w
		}
		out = append(out, b.String())
	}
	return strings.Join(out, "\n")
}
