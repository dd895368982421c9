// Package shell is a single-pass lexer for the shell fragments found in CI
// configuration files. It is deliberately not a shell grammar: the only
// parsing state is one boolean tracking whether the next bare word starts a
// command. Unrecognized bytes are skipped, never reported; the lexer cannot
// fail.
package shell

// keywords are classified as TokenKeyword wherever they appear.
var keywords = map[string]bool{
	"if": true, "then": true, "else": true, "elif": true, "fi": true,
	"for": true, "while": true, "until": true, "do": true, "done": true,
	"case": true, "esac": true, "in": true, "function": true, "select": true,
	"time": true,
}

// openerKeywords restore command position: the word after them starts a new
// command.
var openerKeywords = map[string]bool{
	"then": true, "do": true, "else": true,
}

// builtins are command-position words rendered as builtins rather than
// external commands. `echo` is intentionally absent: it reads better styled
// like any other command in CI logs-oriented scripts.
var builtins = map[string]bool{
	"cd": true, "pwd": true, "export": true, "unset": true, "set": true,
	"source": true, "alias": true, "unalias": true, "read": true,
	"exit": true, "return": true, "shift": true, "local": true,
	"declare": true, "readonly": true, "eval": true, "exec": true,
	"trap": true, "type": true, "ulimit": true, "umask": true, "wait": true,
	"true": true, "false": true, "jobs": true, "fg": true, "bg": true,
}

// Tokenize lexes content in one forward pass. Offsets in the returned tokens
// are relative to content.
func Tokenize(content string) []Token {
	t := &tokenizer{content: content, cmdPos: true}
	t.run()
	return t.tokens
}

type tokenizer struct {
	content string
	pos     int
	cmdPos  bool
	tokens  []Token
}

func (t *tokenizer) run() {
	for t.pos < len(t.content) {
		c := t.content[t.pos]
		switch {
		case c == '$':
			t.lexDollar()
		case c == '#':
			t.lexComment()
		case c == '\'':
			t.lexSingleQuoted()
		case c == '"':
			t.emit(TokenStringDouble, t.pos, t.scanEscaped(t.pos+1, '"'))
		case c == '`':
			t.emit(TokenSubshell, t.pos, t.scanEscaped(t.pos+1, '`'))
		case c == '|' || c == '&' || c == ';':
			t.lexOperator(c)
		case c == '>' || c == '<':
			t.lexRedirect()
		case c == '\n':
			t.pos++
			t.cmdPos = true
		case c == ' ' || c == '\t':
			t.pos++
		case c == '-' && t.startsOption():
			t.lexOption()
		case isWordStart(c):
			t.lexWord()
		case c == '*' || c == '?':
			t.emit(TokenGlob, t.pos, t.pos+1)
		case c == '[':
			t.lexBracketGlob()
		case c == '(' || c == ')' || c == '{' || c == '}':
			t.emit(TokenKeyword, t.pos, t.pos+1)
			if c == '(' || c == '{' {
				t.cmdPos = true
			}
		default:
			// Not an error; the fragment may be arbitrary text.
			t.pos++
		}
	}
}

func (t *tokenizer) emit(typ TokenType, start, end int) {
	if end <= start {
		t.pos = start + 1
		return
	}
	t.tokens = append(t.tokens, Token{
		Type:   typ,
		Value:  t.content[start:end],
		Offset: start,
		Length: end - start,
	})
	t.pos = end
}

// lexDollar dispatches the `$` forms, longest match first.
func (t *tokenizer) lexDollar() {
	rest := t.content[t.pos:]

	if len(rest) >= 3 && rest[1] == '{' && rest[2] == '{' {
		end := len(t.content)
		if idx := indexFrom(t.content, "}}", t.pos+3); idx >= 0 {
			end = idx + 2
		}
		t.emit(TokenGitHubExpression, t.pos, end)
		return
	}

	if len(rest) >= 2 && isSpecialParam(rest[1]) {
		t.emit(TokenVariableSpecial, t.pos, t.pos+2)
		return
	}

	if len(rest) >= 2 && rest[1] == '{' {
		t.emit(TokenVariable, t.pos, t.scanDepthMatched(t.pos+1, '{', '}'))
		return
	}

	if len(rest) >= 2 && rest[1] == '(' {
		t.emit(TokenSubshell, t.pos, t.scanDepthMatched(t.pos+1, '(', ')'))
		return
	}

	end := t.pos + 1
	for end < len(t.content) && isIdentChar(t.content[end]) {
		end++
	}
	if end > t.pos+1 {
		t.emit(TokenVariable, t.pos, end)
		return
	}

	// Lone `$` with nothing usable after it.
	t.emit(TokenText, t.pos, t.pos+1)
}

// lexComment takes `#` to end of line. A comment terminates the statement,
// so the next word is back in command position.
func (t *tokenizer) lexComment() {
	end := len(t.content)
	if idx := indexByteFrom(t.content, '\n', t.pos); idx >= 0 {
		end = idx
	}
	t.emit(TokenComment, t.pos, end)
	t.cmdPos = true
}

// lexSingleQuoted scans to the closing quote with no escape handling;
// single quotes are literal in shell.
func (t *tokenizer) lexSingleQuoted() {
	end := len(t.content)
	if idx := indexByteFrom(t.content, '\'', t.pos+1); idx >= 0 {
		end = idx + 1
	}
	t.emit(TokenStringSingle, t.pos, end)
}

func (t *tokenizer) lexOperator(c byte) {
	end := t.pos + 1
	if c != ';' && end < len(t.content) && t.content[end] == c {
		end++
	}
	t.emit(TokenOperator, t.pos, end)
	t.cmdPos = true
}

func (t *tokenizer) lexRedirect() {
	end := t.pos + 1
	if end < len(t.content) && (t.content[end] == '>' || t.content[end] == '&') {
		end++
	}
	t.emit(TokenRedirect, t.pos, end)
}

// startsOption reports whether the `-` at the cursor opens an option word
// rather than a bare word like `-` or `-9`.
func (t *tokenizer) startsOption() bool {
	if t.pos+1 >= len(t.content) {
		return false
	}
	next := t.content[t.pos+1]
	return next == '-' || isLetter(next)
}

func (t *tokenizer) lexOption() {
	end := t.pos + 1
	if end < len(t.content) && t.content[end] == '-' {
		end++
	}
	for end < len(t.content) && isOptionChar(t.content[end]) {
		end++
	}
	if end < len(t.content) && t.content[end] == '=' {
		end++
	}
	t.emit(TokenOption, t.pos, end)
}

// lexWord scans a bare word and classifies it by the command-position flag
// and the keyword/builtin sets. Leaving this branch always drops command
// position unless an opener keyword restores it.
func (t *tokenizer) lexWord() {
	end := t.pos
	for end < len(t.content) && isWordChar(t.content[end]) {
		end++
	}
	value := t.content[t.pos:end]

	var typ TokenType
	switch {
	case keywords[value]:
		typ = TokenKeyword
	case t.cmdPos && builtins[value]:
		typ = TokenBuiltin
	case t.cmdPos:
		typ = TokenCommand
	default:
		typ = TokenArgument
	}

	t.emit(typ, t.pos, end)
	t.cmdPos = openerKeywords[value]
}

// lexBracketGlob scans `[...]` to the closing bracket, no escape handling.
func (t *tokenizer) lexBracketGlob() {
	end := len(t.content)
	if idx := indexByteFrom(t.content, ']', t.pos+1); idx >= 0 {
		end = idx + 1
	}
	t.emit(TokenGlob, t.pos, end)
}

// scanEscaped scans from start to the closing delimiter, with backslash
// escaping the next byte unconditionally. Returns one past the delimiter, or
// end of input if unterminated.
func (t *tokenizer) scanEscaped(start int, delim byte) int {
	i := start
	for i < len(t.content) {
		switch t.content[i] {
		case '\\':
			i += 2
		case delim:
			return i + 1
		default:
			i++
		}
	}
	return len(t.content)
}

// scanDepthMatched scans a bracketed span starting at the opening bracket,
// tolerating nesting. Returns one past the matching close, or end of input.
func (t *tokenizer) scanDepthMatched(start int, open, close byte) int {
	depth := 0
	for i := start; i < len(t.content); i++ {
		switch t.content[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(t.content)
}

func indexFrom(s, substr string, from int) int {
	if from >= len(s) {
		return -1
	}
	for i := from; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func indexByteFrom(s string, c byte, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func isSpecialParam(c byte) bool {
	switch c {
	case '?', '!', '$', '@', '*', '#', '-':
		return true
	}
	return isDigit(c)
}

func isWordStart(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '-' || c == '.' ||
		c == '/' || c == '~'
}

func isWordChar(c byte) bool {
	return isWordStart(c) || c == '=' || c == ':' || c == '+'
}

func isOptionChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '-'
}
