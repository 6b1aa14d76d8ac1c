package format

import (
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultSeparator divides paragraphs in Paragraphs.
const DefaultSeparator = "\n\n"

// Formatter formats text under a Config.
//
// A Formatter carries state between calls: the log of words it had to
// split and the tag cursor. Neither is reset automatically. A Formatter
// is not safe for concurrent use; callers sharing one must serialize calls.
type Formatter struct {
	cfg        Config
	hyphenator any
	hyphenate  hyphenateFunc
	logger     *log.Logger

	splits   []SplitWord
	tagIndex int
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLogger sets the logger used for debug output about splits and
// nobreak backtracking. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(f *Formatter) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithHyphenator sets the hyphenator used by SplitHyphenation. The value
// must implement Hyphenator or ContextHyphenator; New reports anything else.
func WithHyphenator(h any) Option {
	return func(f *Formatter) {
		f.hyphenator = h
	}
}

// New creates a Formatter. The config is normalized and validated.
func New(cfg Config, opts ...Option) (*Formatter, error) {
	f := &Formatter{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.SetHyphenator(f.hyphenator); err != nil {
		return nil, err
	}
	if err := f.SetConfig(cfg); err != nil {
		return nil, err
	}
	return f, nil
}

// Config returns a copy of the current rules.
func (f *Formatter) Config() Config {
	return f.cfg.clone()
}

// SetConfig replaces the rules. On error the previous rules stay in effect.
func (f *Formatter) SetConfig(cfg Config) error {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	f.cfg = cfg.clone()
	return nil
}

// Update applies fn to a copy of the rules and keeps the result only if it
// validates.
func (f *Formatter) Update(fn func(*Config)) error {
	cfg := f.Config()
	fn(&cfg)
	return f.SetConfig(cfg)
}

// SetStyle changes the format style.
func (f *Formatter) SetStyle(s Style) error {
	return f.Update(func(c *Config) { c.Style = s })
}

// SetSplitRules changes the split rules.
func (f *Formatter) SetSplitRules(r SplitRules) error {
	return f.Update(func(c *Config) { c.SplitRules = r })
}

// SetHyphenator installs h for SplitHyphenation. nil restores the built-in
// Continuation hyphenator. A value implementing neither Hyphenator nor
// ContextHyphenator is rejected and the current hyphenator is kept.
func (f *Formatter) SetHyphenator(h any) error {
	fn, err := bindHyphenator(h)
	if err != nil {
		return err
	}
	if h == nil {
		h = Continuation{}
	}
	f.hyphenator = h
	f.hyphenate = fn
	return nil
}

// Hyphenator returns the installed hyphenator.
func (f *Formatter) Hyphenator() any {
	return f.hyphenator
}

// HyphenateTo is the built-in continuation split, so a Formatter can itself
// be installed as a hyphenator.
func (f *Formatter) HyphenateTo(word string, size int) (string, string, bool) {
	return Continuation{}.HyphenateTo(word, size)
}

// SplitWords returns the words split since the last ClearSplitWords.
func (f *Formatter) SplitWords() []SplitWord {
	return slices.Clone(f.splits)
}

// ClearSplitWords empties the split word log.
func (f *Formatter) ClearSplitWords() {
	f.splits = nil
}

// TagIndex returns the index into Config.Tags used by the next Format call.
func (f *Formatter) TagIndex() int {
	return f.tagIndex
}

// SetTagIndex moves the tag cursor. Negative values are treated as zero.
func (f *Formatter) SetTagIndex(i int) {
	f.tagIndex = max(i, 0)
}

// ResetTagIndex moves the tag cursor back to the first tag.
func (f *Formatter) ResetTagIndex() {
	f.tagIndex = 0
}

// Format reflows text as a single paragraph. Every output line ends in a
// newline. Empty or blank text gives empty output.
func (f *Formatter) Format(text string) string {
	lines := f.formatLines(text)
	lines = f.tagLines(lines, f.currentTag())
	return strings.Join(lines, "")
}

// Lines is like Format but returns the lines separately, without tagging.
func (f *Formatter) Lines(text string) []string {
	return f.formatLines(text)
}

// Paragraphs splits text on DefaultSeparator and formats each part.
func (f *Formatter) Paragraphs(text string) string {
	return f.ParagraphsSplit(text, DefaultSeparator)
}

// ParagraphsSplit splits text on sep and formats each part as a paragraph.
// An empty sep treats the whole text as one paragraph.
func (f *Formatter) ParagraphsSplit(text, sep string) string {
	if sep == "" {
		return f.FormatParagraphs([]string{text})
	}
	return f.FormatParagraphs(strings.Split(text, sep))
}

// FormatParagraphs formats each element as a paragraph. Paragraph i is
// tagged with Tags[i]. Paragraphs are separated by an empty line when the
// first and body indents are equal or tagging is on. The output has its
// final newline removed.
func (f *Formatter) FormatParagraphs(paras []string) string {
	end := ""
	if f.cfg.FirstIndent == f.cfg.BodyIndent || f.cfg.TagParagraph {
		end = "\n"
	}

	var out []string
	for i, p := range paras {
		f.tagIndex = i
		if s := f.Format(p); s != "" {
			out = append(out, s+end)
		}
	}
	if len(out) > 0 {
		out[len(out)-1] = strings.TrimSuffix(out[len(out)-1], "\n")
	}
	return strings.Join(out, "")
}

func (f *Formatter) formatLines(text string) []string {
	b := newLineBuilder(f.cfg, text, f.hyphenate, f.logger, func(sw SplitWord) {
		f.splits = append(f.splits, sw)
	})
	return b.build()
}

func (f *Formatter) currentTag() string {
	if !f.cfg.TagParagraph || f.tagIndex >= len(f.cfg.Tags) {
		return ""
	}
	return f.cfg.Tags[f.tagIndex]
}

// tagLines puts tag in the leading whitespace of the first line when there
// is room for it plus a space, and on a line of its own otherwise.
func (f *Formatter) tagLines(lines []string, tag string) []string {
	if tag == "" || len(lines) == 0 {
		return lines
	}
	lm := f.cfg.LeftMargin
	first := lines[0]
	white := strings.IndexFunc(first, func(r rune) bool { return r != ' ' })

	if white-lm-1 > width(tag) {
		lines[0] = spaces(lm) + tag + first[lm+width(tag):]
		return lines
	}
	return append([]string{spaces(lm) + tag + "\n"}, lines...)
}
