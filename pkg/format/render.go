package format

import (
	"slices"
	"strings"
)

// renderer turns a finished line into text under the configured style.
type renderer struct {
	cfg Config
}

// render lays out tokens after the left margin and indent. avail is the
// text width available on this line; terminal marks the paragraph's last
// line, which Justify renders as Fill.
func (r renderer) render(tokens []token, indent, avail int, terminal bool) string {
	tokens = slices.Clone(tokens)

	if r.cfg.Style == Justify && !terminal {
		justify(tokens, avail-lineWidth(tokens))
	}

	var sb strings.Builder
	sb.WriteString(spaces(r.cfg.LeftMargin))
	sb.WriteString(spaces(indent))
	for _, t := range tokens {
		sb.WriteString(spaces(t.sep))
		sb.WriteString(t.text)
	}

	if r.cfg.Style == Fill || r.cfg.Style == Justify {
		if used := lineWidth(tokens); used < avail {
			sb.WriteString(spaces(avail - used))
		}
	}

	out := sb.String()
	if r.cfg.Style == Right {
		out = spaces(r.cfg.Columns-r.cfg.RightMargin-width(out)) + out
	}
	return out + "\n"
}

// justify widens the separators of tokens by extra spaces in total, working
// from the last word back. The number of slots is half the word count, not
// the gap count, so long lines get more than extra spaces; that is the
// historical output and callers depend on it.
func justify(tokens []token, extra int) {
	slots := len(tokens) / 2
	if slots == 0 || extra <= 0 {
		return
	}
	base, rem := extra/slots, extra%slots
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].sep == 0 {
			continue
		}
		tokens[i].sep += base
		if rem > 0 {
			tokens[i].sep++
			rem--
		}
	}
}

func lineWidth(tokens []token) int {
	n := 0
	for _, t := range tokens {
		n += t.sep + width(t.text)
	}
	return n
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
