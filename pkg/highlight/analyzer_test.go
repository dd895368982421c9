package highlight_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/cibash/pkg/dialect"
	"github.com/walteh/cibash/pkg/highlight"
	"github.com/walteh/cibash/pkg/position"
	"github.com/walteh/cibash/pkg/shell"
)

const workflowSource = `jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - run: |
          echo hi
          echo bye
`

func TestAnalyzeWorkflow(t *testing.T) {
	ctx := context.Background()
	analyzer := highlight.NewAnalyzer()

	highlights := analyzer.Analyze(ctx, "ci.yml", workflowSource)
	require.NotNil(t, highlights)

	assert.Equal(t, dialect.GitHubActions, highlights.Result.Dialect)
	assert.Equal(t, 1, highlights.RegionCount)
	require.NotEmpty(t, highlights.Decorations)

	commands := highlights.Decorations[shell.TokenCommand]
	require.Len(t, commands, 2)
	assert.Equal(t, strings.Index(workflowSource, "echo hi"), commands[0].Start)
	assert.Equal(t, strings.Index(workflowSource, "echo bye"), commands[1].Start)

	args := highlights.Decorations[shell.TokenArgument]
	require.Len(t, args, 2)
	assert.Equal(t, strings.Index(workflowSource, "hi"), args[0].Start)

	assert.Equal(t, 4, highlights.DecorationCount())
}

func TestAnalyzeGitLab(t *testing.T) {
	source := `stages:
  - test
unit:
  stage: test
  script:
    - make unit VERBOSE=1
`
	highlights := highlight.NewAnalyzer().Analyze(context.Background(), ".gitlab-ci.yml", source)

	assert.Equal(t, dialect.GitLabCI, highlights.Result.Dialect)
	assert.Equal(t, 1, highlights.RegionCount)

	commands := highlights.Decorations[shell.TokenCommand]
	require.Len(t, commands, 1)
	assert.Equal(t, strings.Index(source, "make"), commands[0].Start)
}

func TestAnalyzeDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty document", ""},
		{"malformed yaml", "key: 'unterminated\n"},
		{"unrelated yaml", "foo: bar\n"},
		{"non mapping root", "- a\n- b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var highlights *highlight.DocumentHighlights
			assert.NotPanics(t, func() {
				highlights = highlight.NewAnalyzer().Analyze(context.Background(), "x.yml", tt.source)
			})
			require.NotNil(t, highlights)
			assert.Equal(t, dialect.Unknown, highlights.Result.Dialect)
			assert.Zero(t, highlights.RegionCount)
			assert.Zero(t, highlights.DecorationCount())
		})
	}
}

func TestRenderPassesThroughUndecoratedSource(t *testing.T) {
	source := "foo: bar\n"
	highlights := highlight.NewAnalyzer().Analyze(context.Background(), "x.yml", source)
	assert.Equal(t, source, highlight.Render(source, highlights))
}

func TestRenderKeepsAllSourceBytes(t *testing.T) {
	rendered := highlight.Render(workflowSource, highlight.NewAnalyzer().Analyze(context.Background(), "ci.yml", workflowSource))
	// Styling may wrap spans in escape sequences but never drops source text.
	for _, word := range []string{"jobs:", "runs-on:", "echo", "hi", "bye"} {
		assert.Contains(t, rendered, word)
	}
}

func TestRenderIgnoresOutOfBoundsRanges(t *testing.T) {
	source := "short"
	highlights := &highlight.DocumentHighlights{
		Decorations: map[shell.TokenType][]position.Range{
			shell.TokenCommand: {{Start: 2, End: 99}},
		},
	}
	assert.NotPanics(t, func() { highlight.Render(source, highlights) })
}

func TestStyleRegistryCoversAllTokenTypes(t *testing.T) {
	covered := []shell.TokenType{
		shell.TokenCommand, shell.TokenBuiltin, shell.TokenKeyword,
		shell.TokenArgument, shell.TokenOption, shell.TokenVariable,
		shell.TokenVariableSpecial, shell.TokenStringSingle,
		shell.TokenStringDouble, shell.TokenComment, shell.TokenOperator,
		shell.TokenRedirect, shell.TokenSubshell, shell.TokenGitHubExpression,
		shell.TokenGlob,
	}
	for _, typ := range covered {
		s, ok := highlight.StyleFor(typ)
		assert.True(t, ok, "missing style for %s", typ)
		assert.True(t, strings.HasPrefix(s.Foreground, "#"), "style for %s is not a hex color", typ)
	}

	// Degenerate text spans deliberately have no decoration.
	_, ok := highlight.StyleFor(shell.TokenText)
	assert.False(t, ok)
}

func TestStyleRegistryColors(t *testing.T) {
	tests := []struct {
		typ  shell.TokenType
		want string
	}{
		{shell.TokenCommand, "#DCDCAA"},
		{shell.TokenBuiltin, "#DCDCAA"},
		{shell.TokenKeyword, "#C586C0"},
		{shell.TokenVariable, "#9CDCFE"},
		{shell.TokenStringSingle, "#CE9178"},
		{shell.TokenComment, "#6A9955"},
		{shell.TokenOperator, "#D4D4D4"},
		{shell.TokenGitHubExpression, "#4EC9B0"},
		{shell.TokenGlob, "#D16969"},
	}
	for _, tt := range tests {
		s, ok := highlight.StyleFor(tt.typ)
		require.True(t, ok)
		assert.Equal(t, tt.want, s.Foreground)
	}
}
