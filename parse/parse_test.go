package parse

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dzjyyds666/aqtoml/parse/toml"
	"github.com/klauspost/compress/gzip"
	"github.com/smartystreets/goconvey/convey"
)

const fruitDoc = `
title = "basket"

[[fruit]]
name = "apple"
[fruit.physical]
color = "red"

[[fruit]]
name = "banana"

[site]
"google.com" = true
'a b' = 1

[server]
port = 8080
`

func mustLoad(t *testing.T, src string) map[string]any {
	t.Helper()
	doc, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return doc
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	convey.Convey("plain files decode", t, func() {
		path := filepath.Join(dir, "plain.toml")
		convey.So(os.WriteFile(path, []byte(`a = 1`), 0o644), convey.ShouldBeNil)
		doc, err := LoadFile(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(doc["a"], convey.ShouldEqual, int64(1))
	})

	convey.Convey("gzip files are decompressed", t, func() {
		path := filepath.Join(dir, "packed.toml.gz")
		f, err := os.Create(path)
		convey.So(err, convey.ShouldBeNil)
		zw := gzip.NewWriter(f)
		_, err = zw.Write([]byte("[t]\nk = \"v\"\n"))
		convey.So(err, convey.ShouldBeNil)
		convey.So(zw.Close(), convey.ShouldBeNil)
		convey.So(f.Close(), convey.ShouldBeNil)

		doc, err := LoadFile(path)
		convey.So(err, convey.ShouldBeNil)
		v, ok := toml.Get(doc, "t", "k")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(v, convey.ShouldEqual, "v")
	})

	convey.Convey("missing files and syntax errors are reported with the path", t, func() {
		_, err := LoadFile(filepath.Join(dir, "nope.toml"))
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldContainSubstring, "not exist")

		path := filepath.Join(dir, "bad.toml")
		convey.So(os.WriteFile(path, []byte("a = 1\na = 2\n"), 0o644), convey.ShouldBeNil)
		_, err = LoadFile(path)
		convey.So(errors.Is(err, toml.ErrSyntax), convey.ShouldBeTrue)
		convey.So(err.Error(), convey.ShouldStartWith, path+": toml:2:")
	})
}

func TestLookup(t *testing.T) {
	doc := mustLoad(t, fruitDoc)

	convey.Convey("paths select nested values", t, func() {
		cases := map[string]any{
			"title":                   "basket",
			"fruit[0].name":           "apple",
			"fruit[0].physical.color": "red",
			"fruit[1].name":           "banana",
			`site."google.com"`:       true,
			`site.'a b'`:              int64(1),
			"server.port":             int64(8080),
		}
		for path, want := range cases {
			got, err := Lookup(doc, path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, want)
		}
	})

	convey.Convey("the empty path is the whole document", t, func() {
		got, err := Lookup(doc, "")
		convey.So(err, convey.ShouldBeNil)
		convey.So(got, convey.ShouldResemble, doc)
	})

	convey.Convey("missing keys wrap ErrNotFound", t, func() {
		_, err := Lookup(doc, "fruit[0].weight")
		convey.So(errors.Is(err, ErrNotFound), convey.ShouldBeTrue)
		convey.So(err.Error(), convey.ShouldStartWith, "fruit[0].weight:")
	})

	convey.Convey("shape mismatches and bad paths fail", t, func() {
		for _, path := range []string{
			"fruit[2]",
			"title[0]",
			"fruit.name",
			"a..b",
			"a.",
			"fruit[x]",
			"fruit[0",
			`site."google.com`,
			`site."google.com"x`,
		} {
			_, err := Lookup(doc, path)
			convey.So(err, convey.ShouldNotBeNil)
		}
	})
}

func TestQuery(t *testing.T) {
	doc := mustLoad(t, fruitDoc)

	convey.Convey("expressions see top-level keys", t, func() {
		out, err := Query(doc, `len(fruit)`)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, 2)

		out, err = Query(doc, `server.port > 1024`)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, true)

		out, err = Query(doc, `title + "!"`)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "basket!")
	})

	convey.Convey("lookup resolves paths inside expressions", t, func() {
		out, err := Query(doc, `lookup("fruit[1].name")`)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "banana")

		_, err = Query(doc, `lookup("fruit[9]")`)
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("malformed expressions fail to compile", t, func() {
		_, err := Query(doc, `title +`)
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err.Error(), convey.ShouldStartWith, "compile query:")
	})
}

func TestEncode(t *testing.T) {
	convey.Convey("json output is key-sorted", t, func() {
		doc := mustLoad(t, "b = \"x\"\na = 1\nd = 1979-05-27\n")
		out, err := Render(doc, FormatJSON, 0)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, `{"a":1,"b":"x","d":"1979-05-27"}`+"\n")

		out, err = Render(map[string]any{"a": int64(1)}, FormatJSON, 2)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "{\n  \"a\": 1\n}\n")
	})

	convey.Convey("json spells out special floats", t, func() {
		doc := map[string]any{"x": []any{math.Inf(1), math.Inf(-1), math.NaN()}}
		out, err := Render(doc, FormatJSON, 0)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, `{"x":["inf","-inf","nan"]}`+"\n")
		convey.So(math.IsNaN(doc["x"].([]any)[2].(float64)), convey.ShouldBeTrue)
	})

	convey.Convey("yaml output", t, func() {
		out, err := Render(map[string]any{"a": int64(1), "t": map[string]any{"k": "v"}}, FormatYAML, 2)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "a: 1\nt:\n  k: v\n")
	})

	convey.Convey("format names", t, func() {
		f, err := ParseFormat("YML")
		convey.So(err, convey.ShouldBeNil)
		convey.So(f, convey.ShouldEqual, FormatYAML)
		_, err = ParseFormat("xml")
		convey.So(err, convey.ShouldNotBeNil)
		_, err = Render(nil, Format("xml"), 0)
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestDiff(t *testing.T) {
	convey.Convey("trees that decode alike do not differ", t, func() {
		a := mustLoad(t, "[t]\nx = 1\ny = 2\n")
		b := mustLoad(t, "t.y = 2\nt.x = 1\n")
		lines, err := Diff(a, b, FormatJSON)
		convey.So(err, convey.ShouldBeNil)
		convey.So(Changed(lines), convey.ShouldBeFalse)
	})

	convey.Convey("changed values show as a delete and an insert", t, func() {
		lines, err := Diff(map[string]any{"a": int64(1)}, map[string]any{"a": int64(2)}, FormatJSON)
		convey.So(err, convey.ShouldBeNil)
		convey.So(Changed(lines), convey.ShouldBeTrue)
		convey.So(lines, convey.ShouldContain, DiffLine{Op: DiffDelete, Text: `  "a": 1`})
		convey.So(lines, convey.ShouldContain, DiffLine{Op: DiffInsert, Text: `  "a": 2`})
		convey.So(lines[0], convey.ShouldResemble, DiffLine{Op: DiffEqual, Text: "{"})
	})

	convey.Convey("lines print with a marker column", t, func() {
		convey.So(DiffLine{Op: DiffInsert, Text: "x"}.String(), convey.ShouldEqual, "+x")
		convey.So(DiffLine{Op: DiffDelete, Text: "x"}.String(), convey.ShouldEqual, "-x")
		convey.So(DiffLine{Text: "x"}.String(), convey.ShouldEqual, " x")
	})
}
