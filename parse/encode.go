package parse

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding for decoded trees.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
}

// Encode writes v to w. indent is the number of spaces per nesting level;
// 0 selects compact JSON and the default YAML indentation.
func Encode(w io.Writer, v any, format Format, indent int) error {
	switch format {
	case FormatJSON:
		var (
			b   []byte
			err error
		)
		if indent > 0 {
			b, err = json.MarshalIndent(jsonSafe(v), "", strings.Repeat(" ", indent))
		} else {
			b, err = json.Marshal(jsonSafe(v))
		}
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		b = append(b, '\n')
		_, err = w.Write(b)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if indent > 0 {
			enc.SetIndent(indent)
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

// Render is Encode into a string.
func Render(v any, format Format, indent int) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, v, format, indent); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// jsonSafe copies v, replacing the float values JSON cannot express.
func jsonSafe(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = jsonSafe(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = jsonSafe(e)
		}
		return out
	case float64:
		switch {
		case math.IsNaN(x):
			return "nan"
		case math.IsInf(x, 1):
			return "inf"
		case math.IsInf(x, -1):
			return "-inf"
		}
	}
	return v
}
