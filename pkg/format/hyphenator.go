package format

import (
	"github.com/matzehuels/textfmt/pkg/errors"
)

// ContinuationMark ends the first part of a word split by the built-in
// hyphenator.
const ContinuationMark = `\`

// Hyphenator divides word so that the first part, including any
// hyphenation mark the hyphenator adds, is at most size runes. It returns
// ok == false, and rest == word, when the word cannot be divided.
type Hyphenator interface {
	HyphenateTo(word string, size int) (first, rest string, ok bool)
}

// ContextHyphenator is a Hyphenator that also wants to see the formatting
// rules in effect.
type ContextHyphenator interface {
	HyphenateToContext(word string, size int, cfg Config) (first, rest string, ok bool)
}

// HyphenatorFunc adapts a function to Hyphenator.
type HyphenatorFunc func(word string, size int) (string, string, bool)

// HyphenateTo calls f.
func (f HyphenatorFunc) HyphenateTo(word string, size int) (string, string, bool) {
	return f(word, size)
}

// ContextHyphenatorFunc adapts a function to ContextHyphenator.
type ContextHyphenatorFunc func(word string, size int, cfg Config) (string, string, bool)

// HyphenateToContext calls f.
func (f ContextHyphenatorFunc) HyphenateToContext(word string, size int, cfg Config) (string, string, bool) {
	return f(word, size, cfg)
}

// Continuation is the built-in hyphenator. It keeps size-1 runes and adds
// ContinuationMark, so it needs size >= 2.
type Continuation struct{}

// HyphenateTo implements Hyphenator.
func (Continuation) HyphenateTo(word string, size int) (string, string, bool) {
	if size < 2 || width(word) < size {
		return "", word, false
	}
	first, rest := cut(word, size-1)
	return first + ContinuationMark, rest, true
}

// SplitWordTo cuts word after size runes with no decoration.
func SplitWordTo(word string, size int) (string, string) {
	return cut(word, size)
}

type hyphenateFunc func(word string, size int, cfg Config) (string, string, bool)

// bindHyphenator turns a Hyphenator or ContextHyphenator into a call the
// splitter can use. A nil value selects Continuation. Anything else is
// rejected.
func bindHyphenator(h any) (hyphenateFunc, error) {
	switch h := h.(type) {
	case nil:
		return bindHyphenator(Continuation{})
	case ContextHyphenator:
		return h.HyphenateToContext, nil
	case Hyphenator:
		return func(word string, size int, _ Config) (string, string, bool) {
			return h.HyphenateTo(word, size)
		}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidHyphenator,
			"%T is not a valid hyphenator (needs HyphenateTo(word, size) or HyphenateToContext(word, size, cfg))", h)
	}
}
