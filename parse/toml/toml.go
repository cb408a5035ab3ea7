// Package toml decodes TOML v1.0.0 documents into plain Go values.
//
// Pipeline:
// - Tokenizer: lazy tokens with lookahead
// - Parser: recursive descent into an explicit AST
// - Keystore: key and table redefinition rules, checked as the AST grows
// - Normalizer: folds the AST into map[string]any with deterministic merges
//
// Non-goals:
// - Encoding
// - Comment preservation
// - Streaming decode
package toml

import (
	"io"
	"time"
)

// =========================
// Public API
// =========================

// Decode decodes src into a table of values. Values are string, int64,
// float64, bool, time.Time (offset date-time), LocalDateTime, LocalDate,
// LocalTime, []any and map[string]any.
func Decode(src string) (map[string]any, error) {
	root, err := ParseAST(src)
	if err != nil {
		return nil, err
	}
	v, err := Normalize(root)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

// Parse reads all of r and decodes it.
func Parse(r io.Reader) (map[string]any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(string(b))
}

// ParseAST parses src without normalizing it.
func ParseAST(src string) (*RootTable, error) {
	return NewParser(src).Parse()
}

// =========================
// Safe Access Helpers
// =========================

// Get walks nested tables along path. Empty path elements are skipped.
func Get(root map[string]any, path ...string) (any, bool) {
	var cur any = root
	for _, p := range path {
		if len(p) == 0 {
			continue
		}
		t, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = t[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Must* assert the dynamic type of a decoded value and panic on mismatch.
func MustString(v any) string {
	return v.(string)
}

func MustInt(v any) int64 {
	return v.(int64)
}

func MustFloat(v any) float64 {
	return v.(float64)
}

func MustBool(v any) bool {
	return v.(bool)
}

func MustTime(v any) time.Time {
	return v.(time.Time)
}

func MustTable(v any) map[string]any {
	return v.(map[string]any)
}

func MustArray(v any) []any {
	return v.([]any)
}
