package parse

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffDelete
	DiffInsert
)

// DiffLine is one line of a line-oriented diff.
type DiffLine struct {
	Op   DiffOp
	Text string
}

func (l DiffLine) String() string {
	switch l.Op {
	case DiffDelete:
		return "-" + l.Text
	case DiffInsert:
		return "+" + l.Text
	}
	return " " + l.Text
}

// Diff renders a and b in format and returns their line diff. Keys are
// sorted by both encoders, so equal trees give no changes regardless of
// how their documents were written.
func Diff(a, b map[string]any, format Format) ([]DiffLine, error) {
	left, err := Render(a, format, 2)
	if err != nil {
		return nil, err
	}
	right, err := Render(b, format, 2)
	if err != nil {
		return nil, err
	}
	return DiffText(left, right), nil
}

// DiffText diffs two texts line by line.
func DiffText(left, right string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(left, right)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, DiffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

// Changed reports whether any line differs.
func Changed(lines []DiffLine) bool {
	for _, l := range lines {
		if l.Op != DiffEqual {
			return true
		}
	}
	return false
}
