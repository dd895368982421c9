package highlight_cmd

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/cibash/pkg/highlight"
)

type Handler struct {
	asJSON   bool
	language string

	fs  afero.Fs
	out io.Writer
}

func NewHighlightCommand() *cobra.Command {
	me := &Handler{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "highlight <file>...",
		Short: "highlight the shell fragments of CI configuration files",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.Flags().BoolVar(&me.asJSON, "json", false, "emit byte ranges as JSON instead of styled text")
	cmd.Flags().StringVar(&me.language, "language", "", "force the document kind instead of inferring it from the path")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.out = cmd.OutOrStdout()
		return me.Run(cmd.Context(), args)
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, paths []string) error {
	analyzer := highlight.NewAnalyzer()

	var errs error
	for _, path := range paths {
		if err := me.runFile(ctx, analyzer, path); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (me *Handler) runFile(ctx context.Context, analyzer *highlight.Analyzer, path string) error {
	kind := highlight.DocumentKind(me.language)
	if me.language == "" {
		kind = highlight.KindFromPath(path)
	}
	if !kind.TriggersAnalysis() {
		zerolog.Ctx(ctx).Info().
			Str("file", path).
			Str("kind", string(kind)).
			Msg("document kind not supported, skipping")
		return nil
	}

	data, err := afero.ReadFile(me.fs, path)
	if err != nil {
		return errors.Errorf("reading %s: %w", path, err)
	}

	source := string(data)
	highlights := analyzer.Analyze(ctx, path, source)

	if me.asJSON {
		return me.writeJSON(source, highlights)
	}

	_, err = io.WriteString(me.out, highlight.Render(source, highlights))
	if err != nil {
		return errors.Errorf("writing output for %s: %w", path, err)
	}
	return nil
}

type jsonRange struct {
	Start  int `json:"start"`
	End    int `json:"end"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonDocument struct {
	File        string                 `json:"file"`
	Dialect     string                 `json:"dialect"`
	Confidence  float64                `json:"confidence"`
	Regions     int                    `json:"regions"`
	Decorations map[string][]jsonRange `json:"decorations"`
}

func (me *Handler) writeJSON(source string, highlights *highlight.DocumentHighlights) error {
	doc := jsonDocument{
		File:        highlights.Name,
		Dialect:     string(highlights.Result.Dialect),
		Confidence:  highlights.Result.Confidence,
		Regions:     highlights.RegionCount,
		Decorations: make(map[string][]jsonRange, len(highlights.Decorations)),
	}
	for typ, ranges := range highlights.Decorations {
		name := typ.String()
		for _, rng := range ranges {
			line, col := rng.LineAndColumn(source)
			doc.Decorations[name] = append(doc.Decorations[name], jsonRange{
				Start:  rng.Start,
				End:    rng.End,
				Line:   line,
				Column: col,
			})
		}
	}

	enc := json.NewEncoder(me.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Errorf("encoding %s: %w", highlights.Name, err)
	}
	return nil
}
