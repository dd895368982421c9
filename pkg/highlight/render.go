package highlight

import (
	"sort"
	"strings"

	"github.com/walteh/cibash/pkg/position"
	"github.com/walteh/cibash/pkg/shell"
)

type span struct {
	rng position.Range
	typ shell.TokenType
}

// Render paints the decoration ranges of one analysis pass onto the raw
// source for terminal output. Undecorated bytes pass through untouched, so
// an empty result renders the document as-is.
func Render(source string, highlights *DocumentHighlights) string {
	var spans []span
	for typ, ranges := range highlights.Decorations {
		for _, rng := range ranges {
			if rng.Start < 0 || rng.End > len(source) || rng.Len() <= 0 {
				continue
			}
			spans = append(spans, span{rng: rng, typ: typ})
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		return spans[i].rng.Start < spans[j].rng.Start
	})

	var out strings.Builder
	cursor := 0
	for _, sp := range spans {
		if sp.rng.Start < cursor {
			continue
		}
		out.WriteString(source[cursor:sp.rng.Start])
		out.WriteString(terminalStyles[sp.typ].Render(source[sp.rng.Start:sp.rng.End]))
		cursor = sp.rng.End
	}
	out.WriteString(source[cursor:])
	return out.String()
}
