package toml

import (
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func kvNode(parts ...string) *KeyValuePair {
	return &KeyValuePair{Key: &Key{Parts: parts}, Value: &Integer{Value: 1}}
}

func tableNode(parts ...string) *Table {
	return &Table{Key: &Key{Parts: parts}}
}

func arrayTableNode(parts ...string) *ArrayTable {
	return &ArrayTable{Key: &Key{Parts: parts}}
}

// addAll registers nodes in order and returns the index of the first
// rejected node, or -1.
func addAll(ks *Keystore, nodes ...Node) (int, error) {
	for i, n := range nodes {
		if err := ks.Add(n); err != nil {
			return i, err
		}
	}
	return -1, nil
}

func TestKeystoreAccepts(t *testing.T) {
	cases := map[string][]Node{
		"sibling dotted keys":              {kvNode("a", "b"), kvNode("a", "c")},
		"subtable of header-implied table": {tableNode("a", "b", "c"), tableNode("a"), kvNode("d")},
		"subtable of dotted table":         {kvNode("a", "b", "c"), tableNode("a", "b", "d")},
		"repeated array of tables":         {arrayTableNode("a"), arrayTableNode("a"), arrayTableNode("a")},
		"same key in two array elements":   {arrayTableNode("a"), kvNode("x"), arrayTableNode("a"), kvNode("x")},
		"table under each array element":   {arrayTableNode("a"), tableNode("a", "b"), arrayTableNode("a"), tableNode("a", "b")},
		"quoted dots stay one component":   {kvNode("a.b"), kvNode("a", "b")},
		"nested arrays restart per element": {
			arrayTableNode("a"), arrayTableNode("a", "b"), arrayTableNode("a", "b"),
			arrayTableNode("a"), arrayTableNode("a", "b"),
		},
	}
	for name, nodes := range cases {
		convey.Convey(name, t, func() {
			idx, err := addAll(NewKeystore(), nodes...)
			convey.So(err, convey.ShouldBeNil)
			convey.So(idx, convey.ShouldEqual, -1)
		})
	}
}

func TestKeystoreRejects(t *testing.T) {
	cases := map[string][]Node{
		"duplicate key":                      {kvNode("a"), kvNode("a")},
		"duplicate table":                    {tableNode("a"), tableNode("a")},
		"dotted key then table":              {kvNode("a", "b"), tableNode("a")},
		"value then dotted key":              {kvNode("a"), kvNode("a", "b")},
		"implicit table assigned":            {kvNode("a", "b"), kvNode("a")},
		"table then dotted extension":        {tableNode("a", "b"), tableNode("a"), kvNode("b", "c")},
		"table assigned as value":            {tableNode("a", "b"), tableNode("a"), kvNode("b")},
		"header-implied table assigned":      {tableNode("a", "b", "c"), tableNode("a"), kvNode("b")},
		"table through a value":              {kvNode("a"), tableNode("a", "b")},
		"array of tables over a value":       {kvNode("a"), arrayTableNode("a")},
		"array of tables over a table":       {tableNode("a"), arrayTableNode("a")},
		"array of tables over dotted table":  {kvNode("a", "b"), arrayTableNode("a")},
		"table over array of tables":         {arrayTableNode("a"), tableNode("a")},
		"subtable before its array":          {tableNode("fruit", "taste"), arrayTableNode("fruit")},
		"duplicate table in one element":     {arrayTableNode("a"), tableNode("a", "b"), tableNode("a", "b")},
		"dotted key through array of tables": {arrayTableNode("c", "a"), tableNode("c"), kvNode("a", "b")},
	}
	for name, nodes := range cases {
		convey.Convey(name, t, func() {
			idx, err := addAll(NewKeystore(), nodes...)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, ErrSyntax), convey.ShouldBeTrue)
			convey.So(idx, convey.ShouldEqual, len(nodes)-1)
		})
	}
}

func TestKeystoreResolution(t *testing.T) {
	convey.Convey("array indices are embedded in table paths", t, func() {
		ks := NewKeystore()
		_, err := addAll(ks,
			arrayTableNode("a"),
			arrayTableNode("a"),
			tableNode("a", "b"),
			arrayTableNode("a", "c"),
		)
		convey.So(err, convey.ShouldBeNil)
		convey.So(has(ks.tables, `"a".[1]."b"`), convey.ShouldBeTrue)
		convey.So(has(ks.tables, `"a".[0]."b"`), convey.ShouldBeFalse)
		convey.So(ks.arrays[`"a"`], convey.ShouldEqual, 1)
		convey.So(ks.arrays[`"a".[1]."c"`], convey.ShouldEqual, 0)
		convey.So(ks.current, convey.ShouldResemble, []string{`"a"`, "[1]", `"c"`, "[0]"})
	})

	convey.Convey("dotted keys record implicit tables under the open table", t, func() {
		ks := NewKeystore()
		_, err := addAll(ks, tableNode("t"), kvNode("x", "y", "z"))
		convey.So(err, convey.ShouldBeNil)
		convey.So(has(ks.implicit, `"t"."x"`), convey.ShouldBeTrue)
		convey.So(has(ks.implicit, `"t"."x"."y"`), convey.ShouldBeTrue)
		convey.So(has(ks.keys, `"t"."x"."y"."z"`), convey.ShouldBeTrue)
	})

	convey.Convey("only pairs and headers are registered", t, func() {
		err := NewKeystore().Add(&String{Value: "x"})
		convey.So(errors.Is(err, ErrSyntax), convey.ShouldBeTrue)
	})
}
