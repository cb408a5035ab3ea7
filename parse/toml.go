// Package parse loads TOML documents and works with the decoded tree:
// path lookup, expression queries, JSON/YAML rendering and diffs.
//
// The decoder itself lives in parse/toml; this package only adds the
// file and presentation plumbing the aq command needs.
package parse

import (
	"fmt"
	"io"

	"github.com/dzjyyds666/aqtoml/parse/toml"
	"github.com/dzjyyds666/aqtoml/pkg"
)

// Load decodes the TOML document read from r.
func Load(r io.Reader) (map[string]any, error) {
	return toml.Parse(r)
}

// LoadFile decodes the TOML document at path. Files ending in .gz or .zst
// are decompressed first.
func LoadFile(path string) (map[string]any, error) {
	exist, err := pkg.CheckFileExist(path)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", path, err)
	}
	if !exist {
		return nil, fmt.Errorf("input file %s not exist", path)
	}
	rc, err := pkg.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	doc, err := Load(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
