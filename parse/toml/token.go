package toml

import "fmt"

type TokenKind int

const (
	TokenWhitespace TokenKind = iota
	TokenNewline
	TokenComment
	TokenEquals
	TokenPeriod
	TokenComma
	TokenColon
	TokenPlus
	TokenLeftSquareBracket
	TokenRightSquareBracket
	TokenLeftCurlyBracket
	TokenRightCurlyBracket
	TokenBare
	TokenString
	TokenEOF
)

var tokenKindNames = map[TokenKind]string{
	TokenWhitespace:         "whitespace",
	TokenNewline:            "newline",
	TokenComment:            "comment",
	TokenEquals:             "'='",
	TokenPeriod:             "'.'",
	TokenComma:              "','",
	TokenColon:              "':'",
	TokenPlus:               "'+'",
	TokenLeftSquareBracket:  "'['",
	TokenRightSquareBracket: "']'",
	TokenLeftCurlyBracket:   "'{'",
	TokenRightCurlyBracket:  "'}'",
	TokenBare:               "bare word",
	TokenString:             "string",
	TokenEOF:                "end of input",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexical unit. Value holds the raw text for bare words,
// whitespace and comments, and the decoded contents for strings.
type Token struct {
	Kind      TokenKind
	Value     string
	Multiline bool
	Line      int
	Column    int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenBare, TokenString:
		return fmt.Sprintf("%s %q", t.Kind, t.Value)
	default:
		return t.Kind.String()
	}
}
