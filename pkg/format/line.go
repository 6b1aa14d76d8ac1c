package format

import (
	"slices"
	"strings"
)

// token is a word placed on a line together with the number of spaces in
// front of it. The first word of a line has sep 0.
type token struct {
	text string
	sep  int
}

// line is the line being filled.
type line struct {
	tokens []token
	width  int
}

func (l *line) reset(seed string) {
	l.tokens = l.tokens[:0]
	l.width = 0
	if seed != "" {
		l.append(seed, 0)
	}
}

func (l *line) append(word string, sep int) {
	if len(l.tokens) == 0 {
		sep = 0
	}
	l.tokens = append(l.tokens, token{text: word, sep: sep})
	l.width += sep + width(word)
}

// pop removes the last word and returns it with its separator.
func (l *line) pop() token {
	t := l.tokens[len(l.tokens)-1]
	l.tokens = l.tokens[:len(l.tokens)-1]
	l.width -= t.sep + width(t.text)
	return t
}

// truncate drops the words from index i on and returns their text.
func (l *line) truncate(i int) []string {
	var words []string
	for len(l.tokens) > i {
		words = append(words, l.pop().text)
	}
	slices.Reverse(words)
	return words
}

func (l *line) empty() bool {
	return len(l.tokens) == 0
}

func (l *line) last() string {
	if len(l.tokens) == 0 {
		return ""
	}
	return l.tokens[len(l.tokens)-1].text
}

func (l *line) words() []string {
	words := make([]string, len(l.tokens))
	for i, t := range l.tokens {
		words[i] = t.text
	}
	return words
}

// sentenceRules decides whether a word earns two spaces after it.
type sentenceRules struct {
	enabled     bool
	punctuation string
	quotes      string
	abbrevs     map[string]bool
}

func newSentenceRules(cfg Config) sentenceRules {
	abbrevs := make(map[string]bool, len(Abbreviations)+len(cfg.Abbreviations))
	for _, a := range Abbreviations {
		abbrevs[a] = true
	}
	for _, a := range cfg.Abbreviations {
		abbrevs[a] = true
	}
	return sentenceRules{
		enabled:     cfg.ExtraSpace,
		punctuation: TerminalPunctuation + cfg.TerminalPunctuation,
		quotes:      TerminalQuotes + cfg.TerminalQuotes,
		abbrevs:     abbrevs,
	}
}

// extraSpace reports whether the word following w gets two spaces.
func (r sentenceRules) extraSpace(w string) bool {
	if !r.enabled || w == "" {
		return false
	}
	if r.abbrevs[strings.TrimSuffix(w, ".")] {
		return false
	}
	return r.endsSentence(w)
}

// endsSentence matches [punctuation][quotes]?$ against w.
func (r sentenceRules) endsSentence(w string) bool {
	runes := []rune(w)
	n := len(runes)
	if n == 0 {
		return false
	}
	if strings.ContainsRune(r.punctuation, runes[n-1]) {
		return true
	}
	return n >= 2 &&
		strings.ContainsRune(r.quotes, runes[n-1]) &&
		strings.ContainsRune(r.punctuation, runes[n-2])
}
