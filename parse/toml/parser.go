package toml

import (
	"strings"
	"time"
)

// =========================
// Parser Implementation
// =========================

// Parser builds the AST of one document, registering every top-level
// expression with a document-wide Keystore as it goes.
type Parser struct {
	tokens   *Tokenizer
	keystore *Keystore
}

func NewParser(src string) *Parser {
	return &Parser{
		tokens:   NewTokenizer(src),
		keystore: NewKeystore(),
	}
}

// Parse reads the whole document and returns its root table.
func (p *Parser) Parse() (*RootTable, error) {
	root := &RootTable{}
	var elements *[]*KeyValuePair
	for {
		if err := p.skipBlank(); err != nil {
			return nil, err
		}
		tok, err := p.tokens.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return root, nil
		}

		var node Node
		if tok.Kind == TokenLeftSquareBracket {
			node, err = p.parseHeader()
		} else {
			node, err = p.parseKeyValue()
		}
		if err != nil {
			return nil, err
		}
		if err := p.expectEndOfLine(); err != nil {
			return nil, err
		}
		if err := p.keystore.Add(node); err != nil {
			return nil, at(err, tok.Line, tok.Column)
		}

		switch n := node.(type) {
		case *Table:
			root.Elements = append(root.Elements, n)
			elements = &n.Elements
		case *ArrayTable:
			root.Elements = append(root.Elements, n)
			elements = &n.Elements
		case *KeyValuePair:
			if elements == nil {
				root.Elements = append(root.Elements, n)
			} else {
				*elements = append(*elements, n)
			}
		}
	}
}

// skipBlank drops whitespace, comments and newlines between expressions.
func (p *Parser) skipBlank() error {
	for {
		ok, err := p.tokens.Take(TokenWhitespace, TokenNewline, TokenComment)
		if err != nil || !ok {
			return err
		}
	}
}

func (p *Parser) skipWhitespace() error {
	_, err := p.tokens.Take(TokenWhitespace)
	return err
}

func (p *Parser) expectEndOfLine() error {
	if err := p.skipWhitespace(); err != nil {
		return err
	}
	if _, err := p.tokens.Take(TokenComment); err != nil {
		return err
	}
	tok, err := p.tokens.Next()
	if err != nil {
		return err
	}
	if tok.Kind != TokenNewline && tok.Kind != TokenEOF {
		return unexpected(tok, "end of line")
	}
	return nil
}

func (p *Parser) parseHeader() (Node, error) {
	if _, err := p.tokens.Sequence(TokenLeftSquareBracket); err != nil {
		return nil, err
	}
	isArray, err := p.tokens.Take(TokenLeftSquareBracket)
	if err != nil {
		return nil, err
	}
	if err := p.skipWhitespace(); err != nil {
		return nil, err
	}
	key, err := p.parseKey()
	if err != nil {
		return nil, err
	}
	if err := p.skipWhitespace(); err != nil {
		return nil, err
	}
	if !isArray {
		if _, err := p.tokens.Sequence(TokenRightSquareBracket); err != nil {
			return nil, err
		}
		return &Table{Key: key}, nil
	}
	if _, err := p.tokens.Sequence(TokenRightSquareBracket, TokenRightSquareBracket); err != nil {
		return nil, err
	}
	return &ArrayTable{Key: key}, nil
}

func (p *Parser) parseKey() (*Key, error) {
	first, err := p.tokens.Peek()
	if err != nil {
		return nil, err
	}
	key := &Key{Pos: Pos{Line: first.Line, Column: first.Column}}
	for {
		tok, err := p.tokens.Next()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Kind == TokenBare:
		case tok.Kind == TokenString && !tok.Multiline:
		case tok.Kind == TokenString:
			return nil, &SyntaxError{Line: tok.Line, Column: tok.Column, Msg: "multiline string cannot be used as a key"}
		default:
			return nil, unexpected(tok, "key")
		}
		key.Parts = append(key.Parts, tok.Value)

		dotted, err := p.tokens.PeekSequence(TokenWhitespace, TokenPeriod)
		if err != nil {
			return nil, err
		}
		if dotted {
			if err := p.skipWhitespace(); err != nil {
				return nil, err
			}
		}
		ok, err := p.tokens.Take(TokenPeriod)
		if err != nil {
			return nil, err
		}
		if !ok {
			return key, nil
		}
		if err := p.skipWhitespace(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseKeyValue() (*KeyValuePair, error) {
	key, err := p.parseKey()
	if err != nil {
		return nil, err
	}
	if err := p.skipWhitespace(); err != nil {
		return nil, err
	}
	if _, err := p.tokens.Sequence(TokenEquals); err != nil {
		return nil, err
	}
	if err := p.skipWhitespace(); err != nil {
		return nil, err
	}
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return &KeyValuePair{Key: key, Value: value}, nil
}

// =========================
// Value Parsing
// =========================

func (p *Parser) parseValue() (Node, error) {
	tok, err := p.tokens.Next()
	if err != nil {
		return nil, err
	}
	var node Node
	switch tok.Kind {
	case TokenString:
		return &String{Value: tok.Value}, nil
	case TokenBare:
		node, err = p.parseBare(tok)
	case TokenPlus:
		var word Token
		word, err = p.tokens.Next()
		if err == nil && word.Kind != TokenBare {
			return nil, unexpected(word, "number")
		}
		if err == nil {
			node, err = p.parseNumber("+"+word.Value, word)
		}
	case TokenLeftSquareBracket:
		return p.parseArray()
	case TokenLeftCurlyBracket:
		return p.parseInlineTable()
	default:
		return nil, unexpected(tok, "value")
	}
	if err != nil {
		return nil, at(err, tok.Line, tok.Column)
	}
	return node, nil
}

func (p *Parser) parseBare(tok Token) (Node, error) {
	switch tok.Value {
	case "true":
		return &Boolean{Value: true}, nil
	case "false":
		return &Boolean{Value: false}, nil
	}
	if isDateLike(tok.Value) {
		return p.parseDateTime(tok.Value)
	}
	colon, err := p.tokens.PeekSequence(TokenColon)
	if err != nil {
		return nil, err
	}
	if colon {
		return p.parseLocalTime(tok.Value)
	}
	return p.parseNumber(tok.Value, tok)
}

// isDateLike reports a '-' past the first byte that is not an exponent sign.
func isDateLike(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] == '-' && s[i-1] != 'e' && s[i-1] != 'E' {
			return true
		}
	}
	return false
}

func (p *Parser) parseDateTime(s string) (Node, error) {
	if len(s) == 10 {
		spaced, err := p.tokens.PeekSequence(TokenWhitespace, TokenBare)
		if err != nil {
			return nil, err
		}
		if spaced {
			ws, err := p.tokens.peekAt(0)
			if err != nil {
				return nil, err
			}
			spaced = ws.Value == " "
		}
		if !spaced {
			d, err := ParseLocalDate(s)
			if err != nil {
				return nil, err
			}
			return &LocalDateValue{Value: d}, nil
		}
		toks, err := p.tokens.Sequence(TokenWhitespace, TokenBare)
		if err != nil {
			return nil, err
		}
		s += "T" + toks[1].Value
	}
	if len(s) < 11 || (s[10] != 'T' && s[10] != 't') {
		return nil, syntaxErrorf("invalid date-time %q", s)
	}

	toks, err := p.tokens.Sequence(TokenColon, TokenBare, TokenColon, TokenBare)
	if err != nil {
		return nil, err
	}
	seconds := toks[3].Value
	s += ":" + toks[1].Value + ":" + seconds

	if hasOffset(seconds) {
		return p.finishOffsetDateTime(s, seconds)
	}
	fraction, err := p.tokens.Take(TokenPeriod)
	if err != nil {
		return nil, err
	}
	if fraction {
		frac, err := p.tokens.Sequence(TokenBare)
		if err != nil {
			return nil, err
		}
		s += "." + frac[0].Value
		if hasOffset(frac[0].Value) {
			return p.finishOffsetDateTime(s, frac[0].Value)
		}
	}
	plus, err := p.tokens.Take(TokenPlus)
	if err != nil {
		return nil, err
	}
	if plus {
		off, err := p.tokens.Sequence(TokenBare, TokenColon, TokenBare)
		if err != nil {
			return nil, err
		}
		return offsetDateTime(s + "+" + off[0].Value + ":" + off[2].Value)
	}
	dt, err := ParseLocalDateTime(s)
	if err != nil {
		return nil, err
	}
	return &LocalDateTimeValue{Value: dt}, nil
}

func hasOffset(fragment string) bool {
	return strings.HasSuffix(fragment, "Z") || strings.HasSuffix(fragment, "z") ||
		strings.Contains(fragment, "-")
}

// finishOffsetDateTime completes a negative offset, whose minutes follow
// one more ':', and decodes the instant.
func (p *Parser) finishOffsetDateTime(s, fragment string) (Node, error) {
	if strings.Contains(fragment, "-") {
		toks, err := p.tokens.Sequence(TokenColon, TokenBare)
		if err != nil {
			return nil, err
		}
		s += ":" + toks[1].Value
	}
	return offsetDateTime(s)
}

func offsetDateTime(s string) (Node, error) {
	norm := []byte(s)
	norm[10] = 'T'
	if last := len(norm) - 1; norm[last] == 'z' {
		norm[last] = 'Z'
	}
	t, err := time.Parse(time.RFC3339Nano, string(norm))
	if err != nil {
		return nil, syntaxErrorf("invalid offset date-time %q", s)
	}
	return &OffsetDateTime{Value: t}, nil
}

func (p *Parser) parseLocalTime(hour string) (Node, error) {
	toks, err := p.tokens.Sequence(TokenColon, TokenBare, TokenColon, TokenBare)
	if err != nil {
		return nil, err
	}
	s := hour + ":" + toks[1].Value + ":" + toks[3].Value
	fraction, err := p.tokens.Take(TokenPeriod)
	if err != nil {
		return nil, err
	}
	if fraction {
		frac, err := p.tokens.Sequence(TokenBare)
		if err != nil {
			return nil, err
		}
		s += "." + frac[0].Value
	}
	t, err := ParseLocalTime(s)
	if err != nil {
		return nil, err
	}
	return &LocalTimeValue{Value: t}, nil
}

// parseNumber gathers the tokens a float may be split across, "1", ".",
// "5e", "+", "3" for 1.5e+3, and decodes the result.
func (p *Parser) parseNumber(s string, tok Token) (Node, error) {
	decimal := !hasRadixPrefix(s)
	if decimal {
		period, err := p.tokens.Take(TokenPeriod)
		if err != nil {
			return nil, err
		}
		if period {
			frac, err := p.tokens.Next()
			if err != nil {
				return nil, err
			}
			if frac.Kind != TokenBare {
				return nil, syntaxErrorf("invalid float %q", s+".")
			}
			s += "." + frac.Value
		}
		if strings.HasSuffix(s, "e") || strings.HasSuffix(s, "E") {
			plus, err := p.tokens.Take(TokenPlus)
			if err != nil {
				return nil, err
			}
			if plus {
				exp, err := p.tokens.Sequence(TokenBare)
				if err != nil {
					return nil, err
				}
				s += "+" + exp[0].Value
			}
		}
	}
	if isFloat(s) {
		f, err := parseFloat(s)
		if err != nil {
			return nil, err
		}
		return &Float{Value: f}, nil
	}
	i, err := parseInteger(s)
	if err != nil {
		return nil, err
	}
	return &Integer{Value: i}, nil
}

func (p *Parser) parseArray() (*Array, error) {
	arr := &Array{Elements: make([]Node, 0)}
	for {
		if err := p.skipBlank(); err != nil {
			return nil, err
		}
		closed, err := p.tokens.Take(TokenRightSquareBracket)
		if err != nil {
			return nil, err
		}
		if closed {
			return arr, nil
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, value)
		if err := p.skipBlank(); err != nil {
			return nil, err
		}
		tok, err := p.tokens.Next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenComma:
		case TokenRightSquareBracket:
			return arr, nil
		default:
			return nil, unexpected(tok, "',' or ']'")
		}
	}
}

// parseInlineTable reads a single-line table. Its keys are checked by a
// fresh Keystore, isolated from the document's.
func (p *Parser) parseInlineTable() (*InlineTable, error) {
	tbl := &InlineTable{Elements: make([]*KeyValuePair, 0)}
	keystore := NewKeystore()
	if err := p.skipWhitespace(); err != nil {
		return nil, err
	}
	closed, err := p.tokens.Take(TokenRightCurlyBracket)
	if err != nil {
		return nil, err
	}
	if closed {
		return tbl, nil
	}
	for {
		if err := p.skipWhitespace(); err != nil {
			return nil, err
		}
		kv, err := p.parseKeyValue()
		if err != nil {
			return nil, err
		}
		if err := keystore.Add(kv); err != nil {
			return nil, at(err, kv.Key.Line, kv.Key.Column)
		}
		tbl.Elements = append(tbl.Elements, kv)
		if err := p.skipWhitespace(); err != nil {
			return nil, err
		}
		tok, err := p.tokens.Next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenComma:
		case TokenRightCurlyBracket:
			return tbl, nil
		default:
			return nil, unexpected(tok, "',' or '}'")
		}
	}
}
