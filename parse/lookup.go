package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrNotFound = errors.New("key not found")

type step struct {
	key   string
	index int // -1 for table keys
}

// Lookup selects a value from a decoded tree by path. Path components are
// separated by '.', may be quoted as in TOML keys, and arrays are indexed
// with [n]: `fruit[1].name`, `site."google.com"`.
func Lookup(root map[string]any, path string) (any, error) {
	steps, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	var cur any = root
	for i, st := range steps {
		where := formatSteps(steps[:i+1])
		if st.index >= 0 {
			arr, ok := cur.([]any)
			if !ok {
				return nil, fmt.Errorf("%s: not an array", where)
			}
			if st.index >= len(arr) {
				return nil, fmt.Errorf("%s: index out of range (len %d)", where, len(arr))
			}
			cur = arr[st.index]
			continue
		}
		tbl, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: not a table", where)
		}
		cur, ok = tbl[st.key]
		if !ok {
			return nil, fmt.Errorf("%s: %w", where, ErrNotFound)
		}
	}
	return cur, nil
}

func splitPath(path string) ([]step, error) {
	var steps []step
	i := 0
	expectKey := true
	for i < len(path) {
		c := path[i]
		switch {
		case c == '.':
			if expectKey {
				return nil, fmt.Errorf("invalid path %q: empty component", path)
			}
			expectKey = true
			i++
		case c == '[':
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("invalid path %q: unclosed index", path)
			}
			n, err := strconv.Atoi(path[i+1 : i+end])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid path %q: bad index %q", path, path[i+1:i+end])
			}
			steps = append(steps, step{index: n})
			expectKey = false
			i += end + 1
		case c == '"' || c == '\'':
			if !expectKey {
				return nil, fmt.Errorf("invalid path %q: missing '.'", path)
			}
			key, n, err := quotedComponent(path[i:])
			if err != nil {
				return nil, fmt.Errorf("invalid path %q: %w", path, err)
			}
			steps = append(steps, step{key: key, index: -1})
			expectKey = false
			i += n
		default:
			if !expectKey {
				return nil, fmt.Errorf("invalid path %q: missing '.'", path)
			}
			end := i
			for end < len(path) && path[end] != '.' && path[end] != '[' {
				end++
			}
			steps = append(steps, step{key: path[i:end], index: -1})
			expectKey = false
			i = end
		}
	}
	if expectKey && len(steps) > 0 {
		return nil, fmt.Errorf("invalid path %q: trailing '.'", path)
	}
	return steps, nil
}

// quotedComponent reads one quoted key and returns it with the number of
// bytes consumed.
func quotedComponent(s string) (string, int, error) {
	quote := s[0]
	for i := 1; i < len(s); i++ {
		if quote == '"' && s[i] == '\\' {
			i++
			continue
		}
		if s[i] == quote {
			if quote == '\'' {
				return s[1:i], i + 1, nil
			}
			key, err := strconv.Unquote(s[:i+1])
			return key, i + 1, err
		}
	}
	return "", 0, errors.New("unterminated quoted component")
}

func formatSteps(steps []step) string {
	var b strings.Builder
	for _, st := range steps {
		if st.index >= 0 {
			fmt.Fprintf(&b, "[%d]", st.index)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		if st.key == "" || strings.ContainsAny(st.key, ".[]\"' ") {
			b.WriteString(strconv.Quote(st.key))
		} else {
			b.WriteString(st.key)
		}
	}
	return b.String()
}
