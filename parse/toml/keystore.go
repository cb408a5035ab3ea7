package toml

import (
	"strconv"
	"strings"
)

// =========================
// Keystore
// =========================

// Keystore validates key and table definitions as the parser discovers
// them. Paths are stored resolved: every key component is quoted, and each
// array of tables on the path is followed by a "[n]" segment naming its
// current element, so distinct elements never share a key space.
type Keystore struct {
	keys       map[string]struct{}
	tables     map[string]struct{}
	implicit   map[string]struct{}
	arrays     map[string]int
	containers map[string]struct{}
	current    []string
}

func NewKeystore() *Keystore {
	return &Keystore{
		keys:       make(map[string]struct{}),
		tables:     make(map[string]struct{}),
		implicit:   make(map[string]struct{}),
		arrays:     make(map[string]int),
		containers: make(map[string]struct{}),
	}
}

// Add registers a key/value pair, table header or array-of-tables header,
// returning an error if it redefines anything already registered.
func (ks *Keystore) Add(n Node) error {
	switch n := n.(type) {
	case *KeyValuePair:
		return ks.addKeyValue(n)
	case *Table:
		return ks.addTable(n)
	case *ArrayTable:
		return ks.addArrayTable(n)
	default:
		return syntaxErrorf("cannot register %s node", n.Kind())
	}
}

func (ks *Keystore) addKeyValue(kv *KeyValuePair) error {
	base := len(ks.current)
	segs := append(append([]string(nil), ks.current...), quoteParts(kv.Key.Parts)...)
	name := strings.Join(kv.Key.Parts, ".")

	for i := base + 1; i < len(segs); i++ {
		id := pathID(segs[:i])
		if has(ks.keys, id) {
			return syntaxErrorf("key %q is already defined as a value", name)
		}
		if has(ks.tables, id) || ks.isArray(id) {
			return syntaxErrorf("cannot extend table %q with dotted keys", name)
		}
	}
	id := pathID(segs)
	if has(ks.keys, id) {
		return syntaxErrorf("duplicate key %q", name)
	}
	if has(ks.tables, id) || ks.isArray(id) || has(ks.implicit, id) || has(ks.containers, id) {
		return syntaxErrorf("key %q is already defined as a table", name)
	}

	ks.keys[id] = struct{}{}
	for i := base + 1; i < len(segs); i++ {
		ks.implicit[pathID(segs[:i])] = struct{}{}
	}
	ks.addContainers(segs)
	return nil
}

func (ks *Keystore) addTable(t *Table) error {
	segs := ks.resolve(t.Key.Parts)
	name := strings.Join(t.Key.Parts, ".")
	if err := ks.checkPrefixes(segs, name); err != nil {
		return err
	}
	id := pathID(segs)
	switch {
	case ks.isArray(id):
		return syntaxErrorf("table %q is already defined as an array of tables", name)
	case has(ks.keys, id):
		return syntaxErrorf("table %q is already defined as a value", name)
	case has(ks.tables, id):
		return syntaxErrorf("table %q is already defined", name)
	case has(ks.implicit, id):
		return syntaxErrorf("table %q is already defined by dotted keys", name)
	}
	ks.tables[id] = struct{}{}
	ks.addContainers(segs)
	ks.current = segs
	return nil
}

func (ks *Keystore) addArrayTable(t *ArrayTable) error {
	segs := ks.resolve(t.Key.Parts)
	name := strings.Join(t.Key.Parts, ".")
	if err := ks.checkPrefixes(segs, name); err != nil {
		return err
	}
	id := pathID(segs)
	idx, ok := ks.arrays[id]
	if ok {
		idx++
	} else {
		switch {
		case has(ks.keys, id):
			return syntaxErrorf("array of tables %q is already defined as a value", name)
		case has(ks.tables, id):
			return syntaxErrorf("array of tables %q is already defined as a table", name)
		case has(ks.implicit, id):
			return syntaxErrorf("array of tables %q is already defined by dotted keys", name)
		case has(ks.containers, id):
			return syntaxErrorf("array of tables %q declared after its subtables", name)
		}
	}
	ks.arrays[id] = idx
	ks.current = append(segs, indexSegment(idx))
	ks.addContainers(ks.current)
	return nil
}

// resolve quotes parts and places the current index of every array of
// tables crossed by the path's proper prefixes.
func (ks *Keystore) resolve(parts []string) []string {
	segs := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		segs = append(segs, strconv.Quote(p))
		if i == len(parts)-1 {
			break
		}
		if idx, ok := ks.arrays[pathID(segs)]; ok {
			segs = append(segs, indexSegment(idx))
		}
	}
	return segs
}

func (ks *Keystore) checkPrefixes(segs []string, name string) error {
	for i := 1; i < len(segs); i++ {
		if has(ks.keys, pathID(segs[:i])) {
			return syntaxErrorf("key %q is already defined as a value", name)
		}
	}
	return nil
}

func (ks *Keystore) addContainers(segs []string) {
	for i := 1; i < len(segs); i++ {
		ks.containers[pathID(segs[:i])] = struct{}{}
	}
}

func (ks *Keystore) isArray(id string) bool {
	_, ok := ks.arrays[id]
	return ok
}

func has(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}

func quoteParts(parts []string) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strconv.Quote(p)
	}
	return out
}

func indexSegment(idx int) string {
	return "[" + strconv.Itoa(idx) + "]"
}

func pathID(segs []string) string {
	return strings.Join(segs, ".")
}
