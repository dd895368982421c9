package highlight

import (
	"context"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/walteh/cibash/pkg/dialect"
	"github.com/walteh/cibash/pkg/extract"
	"github.com/walteh/cibash/pkg/position"
	"github.com/walteh/cibash/pkg/shell"
	"github.com/walteh/cibash/pkg/yamldoc"
)

// DocumentHighlights is the result of one analysis pass over one document:
// the detected dialect and every mapped decoration range, grouped by token
// type.
type DocumentHighlights struct {
	Name        string
	Result      dialect.Result
	RegionCount int
	Decorations map[shell.TokenType][]position.Range
}

// DecorationCount is the total number of mapped ranges across all types.
func (h *DocumentHighlights) DecorationCount() int {
	n := 0
	for _, ranges := range h.Decorations {
		n += len(ranges)
	}
	return n
}

// Analyzer runs the detect → extract → tokenize → map pipeline. It holds no
// per-document state; one analyzer can serve any number of documents, and
// concurrent Analyze calls are independent.
type Analyzer struct {
	id string
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{id: xid.New().String()}
}

// Analyze processes one document. It never fails: malformed input degrades
// to an empty result, per-token mapping failures drop the token, and
// everything in between is best-effort.
func (a *Analyzer) Analyze(ctx context.Context, name, source string) *DocumentHighlights {
	logger := zerolog.Ctx(ctx)

	highlights := &DocumentHighlights{
		Name:        name,
		Result:      dialect.Result{Dialect: dialect.Unknown},
		Decorations: make(map[shell.TokenType][]position.Range),
	}

	doc, err := yamldoc.Parse(source)
	if err != nil {
		logger.Debug().
			Str("analyzer", a.id).
			Str("file", name).
			Msg("document did not parse, skipping analysis")
		return highlights
	}

	highlights.Result = dialect.DetectDocument(doc)
	if highlights.Result.Dialect == dialect.Unknown {
		logger.Info().
			Str("analyzer", a.id).
			Str("file", name).
			Msg("no CI dialect detected")
		return highlights
	}

	regions := extract.Extract(highlights.Result.Dialect, doc)
	highlights.RegionCount = len(regions)

	for _, region := range regions {
		for _, token := range shell.Tokenize(region.Content) {
			rng, ok := position.MapToken(token.Offset, token.Length, region.Content, region.LineOffsets)
			if !ok {
				continue
			}
			highlights.Decorations[token.Type] = append(highlights.Decorations[token.Type], rng)
		}
	}

	logger.Info().
		Str("analyzer", a.id).
		Str("file", name).
		Str("dialect", string(highlights.Result.Dialect)).
		Float64("confidence", highlights.Result.Confidence).
		Int("regions", highlights.RegionCount).
		Int("decorations", highlights.DecorationCount()).
		Msg("document analyzed")

	return highlights
}
