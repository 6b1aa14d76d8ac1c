// Package tags generates paragraph tags for format.Config.Tags.
//
// A Generator maps a zero-based paragraph index to a label. Take collects
// the first n labels:
//
//	labels := tags.Take(tags.Roman{Suffix: "."}, 3) // i. ii. iii.
package tags

import (
	"strconv"
	"strings"

	"github.com/matzehuels/textfmt/pkg/errors"
)

// Generator produces the tag for paragraph i (zero-based).
type Generator interface {
	Label(i int) string
}

// Number labels paragraphs 1, 2, 3... starting at Start (1 when zero).
type Number struct {
	Start  int
	Prefix string
	Suffix string
}

// Label implements Generator.
func (n Number) Label(i int) string {
	start := n.Start
	if start == 0 {
		start = 1
	}
	return n.Prefix + strconv.Itoa(start+i) + n.Suffix
}

// Alpha labels paragraphs a, b, ..., z, aa, ab, ... like spreadsheet columns.
type Alpha struct {
	Upper  bool
	Prefix string
	Suffix string
}

// Label implements Generator.
func (a Alpha) Label(i int) string {
	base := byte('a')
	if a.Upper {
		base = 'A'
	}
	var buf []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		buf = append(buf, base+byte((n-1)%26))
	}
	for l, r := 0, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	return a.Prefix + string(buf) + a.Suffix
}

// Roman labels paragraphs i, ii, iii, iv, ... Indexes past 3998 fall back
// to decimal.
type Roman struct {
	Upper  bool
	Prefix string
	Suffix string
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// Label implements Generator.
func (r Roman) Label(i int) string {
	n := i + 1
	if n <= 0 || n >= 4000 {
		return r.Prefix + strconv.Itoa(n) + r.Suffix
	}
	var sb strings.Builder
	for _, rn := range romanNumerals {
		for n >= rn.value {
			sb.WriteString(rn.symbol)
			n -= rn.value
		}
	}
	s := sb.String()
	if r.Upper {
		s = strings.ToUpper(s)
	}
	return r.Prefix + s + r.Suffix
}

// Take returns the first n labels of g.
func Take(g Generator, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = g.Label(i)
	}
	return out
}

// Styles lists the names accepted by Parse.
var Styles = []string{"number", "alpha", "ALPHA", "roman", "ROMAN"}

// Parse returns the generator for a style name. Upper-case names select
// upper-case letters. suffix is appended to every label.
func Parse(style, suffix string) (Generator, error) {
	switch style {
	case "number", "numbers", "1":
		return Number{Suffix: suffix}, nil
	case "alpha", "a":
		return Alpha{Suffix: suffix}, nil
	case "ALPHA", "A":
		return Alpha{Upper: true, Suffix: suffix}, nil
	case "roman", "i":
		return Roman{Suffix: suffix}, nil
	case "ROMAN", "I":
		return Roman{Upper: true, Suffix: suffix}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown tag style %q (must be one of: %s)", style, strings.Join(Styles, ", "))
}
