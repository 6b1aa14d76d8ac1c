package format

import (
	"regexp"
	"slices"
	"strings"

	"github.com/matzehuels/textfmt/pkg/errors"
)

// =============================================================================
// Style
// =============================================================================

// Style selects how finished lines are aligned and padded.
type Style int

const (
	// Left is flush left with a ragged right margin and no padding.
	//
	//	>A paragraph that is<
	//	>left aligned.<
	Left Style = iota

	// Right is flush right; the left side is padded so every line ends at
	// columns minus the right margin.
	//
	//	>A paragraph that is<
	//	>     right aligned.<
	Right

	// Fill is flush left, padded with spaces to the full text width.
	//
	//	>A paragraph that is<
	//	>right filled.      <
	Fill

	// Justify stretches inter-word spacing so lines reach the right margin.
	// The last line of a paragraph is rendered as Fill.
	//
	//	|A paragraph  that|
	//	|is     justified.|
	Justify
)

var styleNames = map[Style]string{
	Left:    "left",
	Right:   "right",
	Fill:    "fill",
	Justify: "justify",
}

// String returns the lowercase style name.
func (s Style) String() string {
	if n, ok := styleNames[s]; ok {
		return n
	}
	return "unknown"
}

// Valid reports whether s is one of the defined styles.
func (s Style) Valid() bool {
	_, ok := styleNames[s]
	return ok
}

// ParseStyle converts a style name (left, right, fill, justify) to a Style.
func ParseStyle(name string) (Style, error) {
	for s, n := range styleNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return s, nil
		}
	}
	return Left, errors.New(errors.ErrCodeInvalidStyle, "unknown format style %q (must be one of: left, right, fill, justify)", name)
}

// =============================================================================
// Split rules
// =============================================================================

// SplitRules is the set of policies allowed to divide an overlong word when
// hard margins are on. Policies are tried in the order Hyphenation,
// Continuation, Fixed regardless of how the set was built.
type SplitRules int

const (
	// SplitFixed cuts the word at exactly the available width, undecorated.
	//
	//	repre
	//	senta
	//	tion
	SplitFixed SplitRules = 1 << iota

	// SplitContinuation cuts one character early and appends a C-style
	// continuation mark (\).
	//
	//	repr\
	//	esen\
	//	tati\
	//	on
	SplitContinuation

	// SplitHyphenation asks the configured Hyphenator. With the default
	// hyphenator this behaves like SplitContinuation.
	SplitHyphenation

	SplitContinuationFixed       = SplitContinuation | SplitFixed
	SplitHyphenationFixed        = SplitHyphenation | SplitFixed
	SplitHyphenationContinuation = SplitHyphenation | SplitContinuation
	SplitAll                     = SplitHyphenation | SplitContinuation | SplitFixed
)

// Has reports whether every flag in p is set in r.
func (r SplitRules) Has(p SplitRules) bool {
	return r&p == p
}

// Valid reports whether r is a non-empty subset of SplitAll.
func (r SplitRules) Valid() bool {
	return r >= SplitFixed && r <= SplitAll
}

// Names returns the policy names contained in r, in priority order.
func (r SplitRules) Names() []string {
	var names []string
	for _, p := range splitPolicies {
		if r.Has(p.rule) {
			names = append(names, p.name)
		}
	}
	return names
}

// String joins Names with commas.
func (r SplitRules) String() string {
	return strings.Join(r.Names(), ",")
}

// ParseSplitRules converts a comma-separated list of policy names
// (fixed, continuation, hyphenation, all) into SplitRules.
func ParseSplitRules(s string) (SplitRules, error) {
	var r SplitRules
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if name == "all" {
			r |= SplitAll
			continue
		}
		idx := slices.IndexFunc(splitPolicies, func(p splitPolicy) bool { return p.name == name })
		if idx < 0 {
			return 0, errors.New(errors.ErrCodeInvalidSplitRules, "unknown split rule %q (must be one of: fixed, continuation, hyphenation, all)", part)
		}
		r |= splitPolicies[idx].rule
	}
	if !r.Valid() {
		return 0, errors.New(errors.ErrCodeInvalidSplitRules, "no split rule given")
	}
	return r, nil
}

// =============================================================================
// Nobreak pairs
// =============================================================================

// NoBreakPair forbids a line break between a word matching First and the
// word after it matching Second. Patterns are unanchored.
type NoBreakPair struct {
	First  *regexp.Regexp
	Second *regexp.Regexp
}

// NewNoBreakPair compiles both patterns.
func NewNoBreakPair(first, second string) (NoBreakPair, error) {
	f, err := regexp.Compile(first)
	if err != nil {
		return NoBreakPair{}, errors.Wrap(errors.ErrCodeInvalidPattern, err, "nobreak pattern %q", first)
	}
	s, err := regexp.Compile(second)
	if err != nil {
		return NoBreakPair{}, errors.Wrap(errors.ErrCodeInvalidPattern, err, "nobreak pattern %q", second)
	}
	return NoBreakPair{First: f, Second: s}, nil
}

// MustNoBreakPair is like NewNoBreakPair but panics on an invalid pattern.
func MustNoBreakPair(first, second string) NoBreakPair {
	p, err := NewNoBreakPair(first, second)
	if err != nil {
		panic(err)
	}
	return p
}

// Matches reports whether a break between left and right is forbidden.
func (p NoBreakPair) Matches(left, right string) bool {
	return p.First != nil && p.Second != nil &&
		p.First.MatchString(left) && p.Second.MatchString(right)
}

func (p NoBreakPair) equal(o NoBreakPair) bool {
	return patternString(p.First) == patternString(o.First) &&
		patternString(p.Second) == patternString(o.Second)
}

func patternString(re *regexp.Regexp) string {
	if re == nil {
		return ""
	}
	return re.String()
}

// =============================================================================
// Config
// =============================================================================

// Default values, matching the classic Text::Format defaults.
const (
	DefaultColumns     = 72
	DefaultTabstop     = 8
	DefaultFirstIndent = 4
	DefaultBodyIndent  = 0
)

// Built-in sentence terminators. Config.TerminalPunctuation and
// Config.TerminalQuotes extend these sets; they never replace them.
const (
	TerminalPunctuation = ".?!"
	TerminalQuotes      = `'"`
)

// Abbreviations never get a double space after them, whatever
// Config.Abbreviations says.
var Abbreviations = []string{"Mr", "Mrs", "Ms", "Jr", "Sr", "Dr"}

// Config holds the formatting rules.
//
//	                            Columns
//	<-------------------------------------------------------------->
//	<-----------><------><---------------------------><------------>
//	 LeftMargin   indent  text is formatted into here   RightMargin
//
// The indent is FirstIndent on the first line of a paragraph and BodyIndent
// on the others. Negative widths are treated as their absolute value.
type Config struct {
	Columns     int
	LeftMargin  int
	RightMargin int
	FirstIndent int
	BodyIndent  int
	Tabstop     int

	Style Style

	// HardMargins splits words that cross the right margin according to
	// SplitRules. Without it an overlong word is placed on a line alone.
	HardMargins bool
	SplitRules  SplitRules

	// ExtraSpace puts two spaces after a sentence terminator unless the
	// word is an abbreviation.
	ExtraSpace          bool
	Abbreviations       []string
	TerminalPunctuation string
	TerminalQuotes      string

	NoBreak      bool
	NoBreakPairs []NoBreakPair

	// TagParagraph prefixes paragraph n with Tags[n].
	TagParagraph bool
	Tags         []string
}

// DefaultConfig returns the default formatting rules.
func DefaultConfig() Config {
	return Config{
		Columns:     DefaultColumns,
		Tabstop:     DefaultTabstop,
		FirstIndent: DefaultFirstIndent,
		BodyIndent:  DefaultBodyIndent,
		Style:       Left,
		SplitRules:  SplitFixed,
	}
}

// Normalize returns a copy with every width coerced to a non-negative value.
func (c Config) Normalize() Config {
	c.Columns = abs(c.Columns)
	c.LeftMargin = abs(c.LeftMargin)
	c.RightMargin = abs(c.RightMargin)
	c.FirstIndent = abs(c.FirstIndent)
	c.BodyIndent = abs(c.BodyIndent)
	c.Tabstop = abs(c.Tabstop)
	return c
}

// Validate checks the constrained fields.
func (c Config) Validate() error {
	if !c.Style.Valid() {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid format style %d", int(c.Style))
	}
	if !c.SplitRules.Valid() {
		return errors.New(errors.ErrCodeInvalidSplitRules, "split rules %d outside [%d, %d]", int(c.SplitRules), int(SplitFixed), int(SplitAll))
	}
	if err := errors.ValidateCharClass("terminal_punctuation", c.TerminalPunctuation); err != nil {
		return err
	}
	if err := errors.ValidateCharClass("terminal_quotes", c.TerminalQuotes); err != nil {
		return err
	}
	for i, p := range c.NoBreakPairs {
		if p.First == nil || p.Second == nil {
			return errors.New(errors.ErrCodeInvalidPattern, "nobreak pair %d has a missing pattern", i)
		}
	}
	return nil
}

// Equal compares the formatting rules of two configs. Patterns are compared
// by their source text.
func (c Config) Equal(o Config) bool {
	a, b := c.Normalize(), o.Normalize()
	return a.Columns == b.Columns &&
		a.LeftMargin == b.LeftMargin &&
		a.RightMargin == b.RightMargin &&
		a.FirstIndent == b.FirstIndent &&
		a.BodyIndent == b.BodyIndent &&
		a.Tabstop == b.Tabstop &&
		a.Style == b.Style &&
		a.HardMargins == b.HardMargins &&
		a.SplitRules == b.SplitRules &&
		a.ExtraSpace == b.ExtraSpace &&
		slices.Equal(a.Abbreviations, b.Abbreviations) &&
		a.TerminalPunctuation == b.TerminalPunctuation &&
		a.TerminalQuotes == b.TerminalQuotes &&
		a.NoBreak == b.NoBreak &&
		slices.EqualFunc(a.NoBreakPairs, b.NoBreakPairs, NoBreakPair.equal) &&
		a.TagParagraph == b.TagParagraph &&
		slices.Equal(a.Tags, b.Tags)
}

// TextWidth is the space left for words once margins and the given indent
// are taken out. It may be zero or negative.
func (c Config) TextWidth(indent int) int {
	return c.Columns - c.LeftMargin - c.RightMargin - indent
}

// clone copies the slices so a stored config cannot be changed through the
// caller's backing arrays.
func (c Config) clone() Config {
	c.Abbreviations = slices.Clone(c.Abbreviations)
	c.NoBreakPairs = slices.Clone(c.NoBreakPairs)
	c.Tags = slices.Clone(c.Tags)
	return c
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
