package toml

// =========================
// Normalizer
// =========================

// Normalize folds an AST node into plain values: map[string]any, []any,
// string, int64, float64, bool, time.Time, LocalDateTime, LocalDate and
// LocalTime. The result shares nothing with the AST.
func Normalize(n Node) (any, error) {
	switch n := n.(type) {
	case *RootTable:
		return mergeAll(n.Elements)
	case *InlineTable:
		return mergeAll(pairNodes(n.Elements))
	case *KeyValuePair:
		v, err := Normalize(n.Value)
		if err != nil {
			return nil, err
		}
		return nest(n.Key.Parts, v), nil
	case *Table:
		v, err := mergeAll(pairNodes(n.Elements))
		if err != nil {
			return nil, err
		}
		return nest(n.Key.Parts, v), nil
	case *ArrayTable:
		v, err := mergeAll(pairNodes(n.Elements))
		if err != nil {
			return nil, err
		}
		return nest(n.Key.Parts, []any{v}), nil
	case *Key:
		parts := make([]any, len(n.Parts))
		for i, p := range n.Parts {
			parts[i] = p
		}
		return parts, nil
	case *Array:
		out := make([]any, 0, len(n.Elements))
		for _, elem := range n.Elements {
			v, err := Normalize(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case *String:
		return n.Value, nil
	case *Integer:
		return n.Value, nil
	case *Float:
		return n.Value, nil
	case *Boolean:
		return n.Value, nil
	case *OffsetDateTime:
		return n.Value, nil
	case *LocalDateTimeValue:
		return n.Value, nil
	case *LocalDateValue:
		return n.Value, nil
	case *LocalTimeValue:
		return n.Value, nil
	case nil:
		return nil, syntaxErrorf("cannot normalize nil node")
	default:
		return nil, syntaxErrorf("cannot normalize %s node", n.Kind())
	}
}

func pairNodes(pairs []*KeyValuePair) []Node {
	nodes := make([]Node, len(pairs))
	for i, kv := range pairs {
		nodes[i] = kv
	}
	return nodes
}

// nest wraps v in one single-key map per key part, outermost first.
func nest(parts []string, v any) map[string]any {
	for i := len(parts) - 1; i > 0; i-- {
		v = map[string]any{parts[i]: v}
	}
	return map[string]any{parts[0]: v}
}

func mergeAll(nodes []Node) (map[string]any, error) {
	out := make(map[string]any)
	for _, n := range nodes {
		v, err := Normalize(n)
		if err != nil {
			return nil, err
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, syntaxErrorf("cannot merge %s node into a table", n.Kind())
		}
		if err := mergeInto(out, m); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// mergeInto deep-merges src into dst. For each shared key the cases are
// tried in order: map with map, array with array, array ending in a map
// with map. Anything else is a conflict.
func mergeInto(dst, src map[string]any) error {
	for k, sv := range src {
		dv, exists := dst[k]
		if !exists {
			dst[k] = sv
			continue
		}
		merged, err := merge(dv, sv)
		if err != nil {
			return syntaxErrorf("key %q: %s", k, err.(*SyntaxError).Msg)
		}
		dst[k] = merged
	}
	return nil
}

func merge(dst, src any) (any, error) {
	dm, dIsMap := dst.(map[string]any)
	sm, sIsMap := src.(map[string]any)
	if dIsMap && sIsMap {
		if err := mergeInto(dm, sm); err != nil {
			return nil, err
		}
		return dm, nil
	}
	da, dIsArr := dst.([]any)
	if sa, ok := src.([]any); ok && dIsArr {
		return append(da, sa...), nil
	}
	if dIsArr && sIsMap && len(da) > 0 {
		if last, ok := da[len(da)-1].(map[string]any); ok {
			if err := mergeInto(last, sm); err != nil {
				return nil, err
			}
			return da, nil
		}
	}
	return nil, syntaxErrorf("conflicting definitions")
}
