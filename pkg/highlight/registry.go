package highlight

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/walteh/cibash/pkg/shell"
)

// Style is the rendering style for one token classification.
type Style struct {
	// Foreground is a hex color, e.g. "#DCDCAA".
	Foreground string
}

// styles is the decoration registry: built once, read-only afterwards, safe
// for any number of concurrent readers.
var styles = map[shell.TokenType]Style{
	shell.TokenCommand:          {Foreground: "#DCDCAA"},
	shell.TokenBuiltin:          {Foreground: "#DCDCAA"},
	shell.TokenKeyword:          {Foreground: "#C586C0"},
	shell.TokenVariable:         {Foreground: "#9CDCFE"},
	shell.TokenVariableSpecial:  {Foreground: "#9CDCFE"},
	shell.TokenStringSingle:     {Foreground: "#CE9178"},
	shell.TokenStringDouble:     {Foreground: "#CE9178"},
	shell.TokenComment:          {Foreground: "#6A9955"},
	shell.TokenOperator:         {Foreground: "#D4D4D4"},
	shell.TokenRedirect:         {Foreground: "#D4D4D4"},
	shell.TokenOption:           {Foreground: "#9CDCFE"},
	shell.TokenArgument:         {Foreground: "#9CDCFE"},
	shell.TokenGitHubExpression: {Foreground: "#4EC9B0"},
	shell.TokenSubshell:         {Foreground: "#4EC9B0"},
	shell.TokenGlob:             {Foreground: "#D16969"},
}

var terminalStyles = buildTerminalStyles()

func buildTerminalStyles() map[shell.TokenType]lipgloss.Style {
	out := make(map[shell.TokenType]lipgloss.Style, len(styles))
	for typ, s := range styles {
		out[typ] = lipgloss.NewStyle().Foreground(lipgloss.Color(s.Foreground))
	}
	return out
}

// StyleFor returns the registered style for a token type. Token types
// without an entry (TokenText) get no decoration.
func StyleFor(typ shell.TokenType) (Style, bool) {
	s, ok := styles[typ]
	return s, ok
}
