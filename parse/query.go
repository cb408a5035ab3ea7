package parse

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Query evaluates an expr-lang expression with the document's top-level
// keys as variables, e.g. `len(fruit)` or `server.port > 1024`. The
// lookup(path) function resolves a Lookup path against the same document.
func Query(root map[string]any, expression string) (any, error) {
	program, err := expr.Compile(expression, queryOpts(root)...)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}
	out, err := expr.Run(program, root)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}
	return out, nil
}

func queryOpts(root map[string]any) []expr.Option {
	return []expr.Option{
		expr.Env(root),
		expr.Function("lookup", func(params ...any) (any, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("lookup takes 1 argument, got %d", len(params))
			}
			path, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("lookup: path must be a string, got %T", params[0])
			}
			return Lookup(root, path)
		}),
	}
}
