package toml

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// =========================
// Tokenizer
// =========================

// Tokenizer turns a document into tokens on demand. Tokens are scanned
// lazily into a lookahead buffer, so Peek and PeekSequence never consume.
type Tokenizer struct {
	input     string
	pos       int
	line      int
	lineStart int
	buf       []Token
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input, line: 1}
}

// Peek returns the next token without consuming it.
func (t *Tokenizer) Peek() (Token, error) {
	return t.peekAt(0)
}

// Next consumes and returns the next token.
func (t *Tokenizer) Next() (Token, error) {
	tok, err := t.peekAt(0)
	if err != nil {
		return tok, err
	}
	t.buf = t.buf[1:]
	return tok, nil
}

// Take consumes the next token if its kind is one of kinds.
func (t *Tokenizer) Take(kinds ...TokenKind) (bool, error) {
	tok, err := t.Peek()
	if err != nil {
		return false, err
	}
	for _, k := range kinds {
		if tok.Kind == k {
			t.buf = t.buf[1:]
			return true, nil
		}
	}
	return false, nil
}

// Sequence consumes len(kinds) tokens, failing unless each has the
// corresponding kind.
func (t *Tokenizer) Sequence(kinds ...TokenKind) ([]Token, error) {
	toks := make([]Token, 0, len(kinds))
	for _, k := range kinds {
		tok, err := t.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind != k {
			return nil, unexpected(tok, k.String())
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// PeekSequence reports whether the upcoming tokens have exactly the given
// kinds, without consuming any of them.
func (t *Tokenizer) PeekSequence(kinds ...TokenKind) (bool, error) {
	for i, k := range kinds {
		tok, err := t.peekAt(i)
		if err != nil {
			return false, err
		}
		if tok.Kind != k {
			return false, nil
		}
	}
	return true, nil
}

func (t *Tokenizer) peekAt(n int) (Token, error) {
	for len(t.buf) <= n {
		if k := len(t.buf); k > 0 && t.buf[k-1].Kind == TokenEOF {
			return t.buf[k-1], nil
		}
		tok, err := t.scan()
		if err != nil {
			return tok, err
		}
		t.buf = append(t.buf, tok)
	}
	return t.buf[n], nil
}

func unexpected(tok Token, want string) error {
	return &SyntaxError{
		Line:   tok.Line,
		Column: tok.Column,
		Msg:    "unexpected " + tok.String() + ", expected " + want,
	}
}

// =========================
// Scanning
// =========================

func (t *Tokenizer) errorf(format string, args ...any) error {
	err := syntaxErrorf(format, args...)
	err.Line, err.Column = t.line, t.pos-t.lineStart+1
	return err
}

func (t *Tokenizer) advance(n int) {
	for i := t.pos; i < t.pos+n; i++ {
		if t.input[i] == '\n' {
			t.line++
			t.lineStart = i + 1
		}
	}
	t.pos += n
}

func (t *Tokenizer) scan() (Token, error) {
	tok := Token{Line: t.line, Column: t.pos - t.lineStart + 1}
	if t.pos >= len(t.input) {
		tok.Kind = TokenEOF
		return tok, nil
	}
	c := t.input[t.pos]
	switch {
	case c == ' ' || c == '\t':
		end := t.pos
		for end < len(t.input) && (t.input[end] == ' ' || t.input[end] == '\t') {
			end++
		}
		tok.Kind, tok.Value = TokenWhitespace, t.input[t.pos:end]
		t.advance(end - t.pos)
	case c == '\n':
		tok.Kind, tok.Value = TokenNewline, "\n"
		t.advance(1)
	case c == '\r':
		if !strings.HasPrefix(t.input[t.pos:], "\r\n") {
			return tok, t.errorf("bare carriage return")
		}
		tok.Kind, tok.Value = TokenNewline, "\n"
		t.advance(2)
	case c == '#':
		return t.scanComment(tok)
	case c == '"' || c == '\'':
		return t.scanString(tok, c)
	case isBareChar(c):
		end := t.pos
		for end < len(t.input) && isBareChar(t.input[end]) {
			end++
		}
		tok.Kind, tok.Value = TokenBare, t.input[t.pos:end]
		t.advance(end - t.pos)
	default:
		kind, ok := punctuation[c]
		if !ok {
			r, _ := utf8.DecodeRuneInString(t.input[t.pos:])
			return tok, t.errorf("unexpected character %q", r)
		}
		tok.Kind, tok.Value = kind, string(c)
		t.advance(1)
	}
	return tok, nil
}

var punctuation = map[byte]TokenKind{
	'=': TokenEquals,
	'.': TokenPeriod,
	',': TokenComma,
	':': TokenColon,
	'+': TokenPlus,
	'[': TokenLeftSquareBracket,
	']': TokenRightSquareBracket,
	'{': TokenLeftCurlyBracket,
	'}': TokenRightCurlyBracket,
}

func isBareChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isControl(r rune) bool {
	return (r >= 0 && r < 0x20) || r == 0x7f
}

func (t *Tokenizer) scanComment(tok Token) (Token, error) {
	start := t.pos
	t.advance(1)
	for t.pos < len(t.input) {
		if t.input[t.pos] == '\n' || strings.HasPrefix(t.input[t.pos:], "\r\n") {
			break
		}
		r, size := utf8.DecodeRuneInString(t.input[t.pos:])
		if r == utf8.RuneError && size == 1 {
			return tok, t.errorf("invalid UTF-8 in comment")
		}
		if r != '\t' && isControl(r) {
			return tok, t.errorf("control character %U in comment", r)
		}
		t.advance(size)
	}
	tok.Kind, tok.Value = TokenComment, t.input[start:t.pos]
	return tok, nil
}

func (t *Tokenizer) scanString(tok Token, quote byte) (Token, error) {
	delim := strings.Repeat(string(quote), 3)
	multiline := strings.HasPrefix(t.input[t.pos:], delim)
	if multiline {
		t.advance(3)
		if strings.HasPrefix(t.input[t.pos:], "\n") {
			t.advance(1)
		} else if strings.HasPrefix(t.input[t.pos:], "\r\n") {
			t.advance(2)
		}
	} else {
		t.advance(1)
	}

	var b strings.Builder
	for {
		if t.pos >= len(t.input) {
			return tok, t.errorf("unterminated string")
		}
		c := t.input[t.pos]
		switch {
		case c == quote:
			if !multiline {
				t.advance(1)
				tok.Kind, tok.Value = TokenString, b.String()
				return tok, nil
			}
			n := 0
			for t.pos+n < len(t.input) && t.input[t.pos+n] == quote {
				n++
			}
			if n < 3 {
				b.WriteString(t.input[t.pos : t.pos+n])
				t.advance(n)
				continue
			}
			if n > 5 {
				return tok, t.errorf("too many quotes at end of multiline string")
			}
			b.WriteString(t.input[t.pos : t.pos+n-3])
			t.advance(n)
			tok.Kind, tok.Value, tok.Multiline = TokenString, b.String(), true
			return tok, nil
		case c == '\\' && quote == '"':
			if err := t.scanEscape(&b, multiline); err != nil {
				return tok, err
			}
		case c == '\n':
			if !multiline {
				return tok, t.errorf("unterminated string")
			}
			b.WriteByte('\n')
			t.advance(1)
		case c == '\r':
			if !multiline || !strings.HasPrefix(t.input[t.pos:], "\r\n") {
				return tok, t.errorf("control character U+000D in string")
			}
			b.WriteByte('\n')
			t.advance(2)
		default:
			r, size := utf8.DecodeRuneInString(t.input[t.pos:])
			if r == utf8.RuneError && size == 1 {
				return tok, t.errorf("invalid UTF-8 in string")
			}
			if r != '\t' && isControl(r) {
				return tok, t.errorf("control character %U in string", r)
			}
			b.WriteRune(r)
			t.advance(size)
		}
	}
}

var simpleEscapes = map[byte]byte{
	'b':  '\b',
	't':  '\t',
	'n':  '\n',
	'f':  '\f',
	'r':  '\r',
	'"':  '"',
	'\\': '\\',
}

func (t *Tokenizer) scanEscape(b *strings.Builder, multiline bool) error {
	if t.pos+1 >= len(t.input) {
		return t.errorf("unterminated string")
	}
	e := t.input[t.pos+1]
	if r, ok := simpleEscapes[e]; ok {
		b.WriteByte(r)
		t.advance(2)
		return nil
	}
	switch e {
	case 'u', 'U':
		n := 4
		if e == 'U' {
			n = 8
		}
		if t.pos+2+n > len(t.input) {
			return t.errorf("invalid unicode escape")
		}
		hex := t.input[t.pos+2 : t.pos+2+n]
		for i := 0; i < len(hex); i++ {
			if !isHexDigit(hex[i]) {
				return t.errorf("invalid unicode escape %q", hex)
			}
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return t.errorf("invalid unicode scalar value %q", hex)
		}
		b.WriteRune(rune(v))
		t.advance(2 + n)
		return nil
	case ' ', '\t', '\n', '\r':
		if !multiline {
			return t.errorf("invalid escape sequence")
		}
		// a line-ending backslash trims through the next non-whitespace
		i := t.pos + 1
		for i < len(t.input) && (t.input[i] == ' ' || t.input[i] == '\t') {
			i++
		}
		if !strings.HasPrefix(t.input[i:], "\n") && !strings.HasPrefix(t.input[i:], "\r\n") {
			return t.errorf("invalid escape sequence")
		}
	trim:
		for i < len(t.input) {
			switch {
			case t.input[i] == ' ' || t.input[i] == '\t' || t.input[i] == '\n':
				i++
			case strings.HasPrefix(t.input[i:], "\r\n"):
				i += 2
			default:
				break trim
			}
		}
		t.advance(i - t.pos)
		return nil
	default:
		return t.errorf("invalid escape sequence \\%c", e)
	}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
