package format

// splitPolicy names a split rule. splitPolicies is the fixed priority order.
type splitPolicy struct {
	rule SplitRules
	name string
}

var splitPolicies = []splitPolicy{
	{SplitHyphenation, "hyphenation"},
	{SplitContinuation, "continuation"},
	{SplitFixed, "fixed"},
}

// SplitWord records a word divided across a line boundary.
type SplitWord struct {
	Word  string `json:"word"`
	First string `json:"first"`
	Rest  string `json:"rest"`
}

// splitter decides how an overflowing word is divided. It makes one
// decision per overflow; if the rest still does not fit, the next line's
// fill pass calls it again.
type splitter struct {
	cfg       Config
	hyphenate hyphenateFunc

	// nextWidth is the text width of the following lines. A word that
	// cannot be hyphenated and would not fit there whole is cut at the
	// budget even when SplitFixed is off.
	nextWidth int
}

// split divides word so that the first part takes at most budget runes.
// When ok is false the word is to be moved whole to the next line.
func (s splitter) split(word string, budget int) (first, rest string, ok bool) {
	if budget < 1 || width(word) <= budget {
		return "", word, false
	}

	if first, rest, ok := splitAtHyphen(word, budget); ok {
		return first, rest, true
	}

	if !s.cfg.HardMargins {
		return "", word, false
	}

	rest = word
	if s.cfg.SplitRules.Has(SplitHyphenation) {
		f, r, ok := s.hyphenate(word, budget, s.cfg)
		if ok && f != "" && width(f) <= budget {
			return f, r, true
		}
		if r != "" {
			rest = r
		}
	}

	if s.cfg.SplitRules.Has(SplitContinuation) {
		f, r, ok := Continuation{}.HyphenateTo(word, budget)
		if ok {
			return f, r, true
		}
		rest = r
	}

	if s.cfg.SplitRules.Has(SplitFixed) || width(rest) > s.nextWidth {
		first, rest = SplitWordTo(word, budget)
		return first, rest, true
	}

	return "", word, false
}

// splitAtHyphen breaks after the last hyphen that leaves a first part of at
// most budget runes. Both parts must be non-empty.
func splitAtHyphen(word string, budget int) (string, string, bool) {
	runes := []rune(word)
	for i := min(budget, len(runes)-1) - 1; i >= 1; i-- {
		if runes[i] == '-' {
			return string(runes[:i+1]), string(runes[i+1:]), true
		}
	}
	return "", word, false
}
