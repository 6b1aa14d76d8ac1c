package format

import (
	"strings"
	"unicode/utf8"
)

// wordStack holds the words of a paragraph still waiting to be placed.
// Words are stored reversed so the next word is popped from the end, and
// words handed back by the splitter or the nobreak guard are pushed there.
type wordStack struct {
	words []string
}

// newWordStack splits text on runs of whitespace. Empty tokens are dropped.
func newWordStack(text string) *wordStack {
	fields := strings.Fields(text)
	for i, j := 0, len(fields)-1; i < j; i, j = i+1, j-1 {
		fields[i], fields[j] = fields[j], fields[i]
	}
	return &wordStack{words: fields}
}

func (s *wordStack) pop() (string, bool) {
	if len(s.words) == 0 {
		return "", false
	}
	w := s.words[len(s.words)-1]
	s.words = s.words[:len(s.words)-1]
	return w, true
}

// pushFront returns words to the front of the stream, keeping their order:
// after pushFront(a, b) the next pops are a then b.
func (s *wordStack) pushFront(words ...string) {
	for i := len(words) - 1; i >= 0; i-- {
		if words[i] != "" {
			s.words = append(s.words, words[i])
		}
	}
}

func (s *wordStack) empty() bool {
	return len(s.words) == 0
}

// width counts runes; no grapheme or east-asian width handling.
func width(s string) int {
	return utf8.RuneCountInString(s)
}

// cut splits s after n runes.
func cut(s string, n int) (string, string) {
	if n <= 0 {
		return "", s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
