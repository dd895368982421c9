package shell

// TokenType classifies one lexical span of shell text.
type TokenType int

const (
	// TokenCommand is a bare word in command position that is not a known
	// builtin (e.g. the `git` in `git status`).
	TokenCommand TokenType = iota + 1

	// TokenBuiltin is a bare word in command position that names a shell
	// builtin (e.g. `echo`, `cd`).
	TokenBuiltin

	// TokenKeyword is a shell control keyword (`if`, `then`, `done`, ...)
	// or a bracket literal.
	TokenKeyword

	// TokenArgument is a bare word outside command position.
	TokenArgument

	// TokenOption is a `-f`/`--flag` style option word.
	TokenOption

	// TokenVariable is `$name` or `${...}`.
	TokenVariable

	// TokenVariableSpecial is a two-byte special parameter (`$?`, `$1`, `$@`).
	TokenVariableSpecial

	// TokenStringSingle is a single-quoted string including its quotes.
	TokenStringSingle

	// TokenStringDouble is a double-quoted string including its quotes. The
	// tokenizer does not sub-tokenize inside it.
	TokenStringDouble

	// TokenComment is `#` to end of line.
	TokenComment

	// TokenOperator is `;`, `|`, `||`, `&`, or `&&`.
	TokenOperator

	// TokenRedirect is `>`, `<`, `>>`, `>&`, `<&`.
	TokenRedirect

	// TokenSubshell is `$(...)` or a backtick span.
	TokenSubshell

	// TokenGitHubExpression is a `${{ ... }}` GitHub Actions expression.
	TokenGitHubExpression

	// TokenGlob is `*`, `?`, or a `[...]` character class.
	TokenGlob

	// TokenText is a degenerate span with no better classification (a lone
	// `$` at end of input).
	TokenText
)

func (t TokenType) String() string {
	switch t {
	case TokenCommand:
		return "command"
	case TokenBuiltin:
		return "builtin"
	case TokenKeyword:
		return "keyword"
	case TokenArgument:
		return "argument"
	case TokenOption:
		return "option"
	case TokenVariable:
		return "variable"
	case TokenVariableSpecial:
		return "variable-special"
	case TokenStringSingle:
		return "string-single"
	case TokenStringDouble:
		return "string-double"
	case TokenComment:
		return "comment"
	case TokenOperator:
		return "operator"
	case TokenRedirect:
		return "redirect"
	case TokenSubshell:
		return "subshell"
	case TokenGitHubExpression:
		return "github-expression"
	case TokenGlob:
		return "glob"
	case TokenText:
		return "text"
	default:
		return "unknown"
	}
}

// Token is one classified span. Offset and Length are relative to the region
// content handed to Tokenize, not to the document.
type Token struct {
	Type   TokenType
	Value  string
	Offset int
	Length int
}
