package format

import (
	"strings"
	"testing"

	"github.com/matzehuels/textfmt/pkg/errors"
)

const fox = "The quick brown fox jumps over the lazy dog."

// testConfig returns the defaults with no first-line indent, adjusted by fn.
func testConfig(columns int, fn func(*Config)) Config {
	cfg := DefaultConfig()
	cfg.Columns = columns
	cfg.FirstIndent = 0
	if fn != nil {
		fn(&cfg)
	}
	return cfg
}

func mustFormatter(t *testing.T, cfg Config, opts ...Option) *Formatter {
	t.Helper()
	f, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		in   string
		want string
	}{
		{
			name: "left",
			cfg:  testConfig(20, nil),
			in:   fox,
			want: "The quick brown fox\njumps over the lazy\ndog.\n",
		},
		{
			name: "first indent",
			cfg:  testConfig(20, func(c *Config) { c.FirstIndent = 4 }),
			in:   fox,
			want: "    The quick brown\nfox jumps over the\nlazy dog.\n",
		},
		{
			name: "right",
			cfg:  testConfig(20, func(c *Config) { c.Style = Right }),
			in:   fox,
			want: " The quick brown fox\n jumps over the lazy\n                dog.\n",
		},
		{
			name: "fill",
			cfg:  testConfig(20, func(c *Config) { c.Style = Fill }),
			in:   fox,
			want: "The quick brown fox \njumps over the lazy \ndog.                \n",
		},
		{
			name: "justify",
			cfg:  testConfig(20, func(c *Config) { c.Style = Justify }),
			in:   fox,
			want: "The quick brown  fox\njumps over the  lazy\ndog.                \n",
		},
		{
			name: "margins",
			cfg: testConfig(20, func(c *Config) {
				c.LeftMargin = 2
				c.RightMargin = 2
			}),
			in:   fox,
			want: "  The quick brown\n  fox jumps over\n  the lazy dog.\n",
		},
		{
			name: "collapses whitespace",
			cfg:  testConfig(72, nil),
			in:   "  one\t two\n\nthree  ",
			want: "one two three\n",
		},
		{
			name: "empty",
			cfg:  testConfig(72, nil),
			in:   "",
			want: "",
		},
		{
			name: "blank",
			cfg:  testConfig(72, nil),
			in:   " \n\t ",
			want: "",
		},
		{
			name: "overlong word without hard margins",
			cfg:  testConfig(10, nil),
			in:   "a representation of things",
			want: "a\nrepresentation\nof things\n",
		},
		{
			name: "literal hyphen",
			cfg:  testConfig(10, nil),
			in:   "a well-known fact",
			want: "a well-\nknown fact\n",
		},
		{
			name: "fixed split",
			cfg: testConfig(10, func(c *Config) {
				c.HardMargins = true
				c.SplitRules = SplitFixed
			}),
			in:   "a representation of things",
			want: "a represen\ntation of\nthings\n",
		},
		{
			name: "continuation split",
			cfg: testConfig(10, func(c *Config) {
				c.HardMargins = true
				c.SplitRules = SplitContinuation
			}),
			in:   "a representation of things",
			want: "a represe\\\nntation of\nthings\n",
		},
		{
			name: "fixed split of a lone word",
			cfg: testConfig(5, func(c *Config) {
				c.HardMargins = true
				c.SplitRules = SplitFixed
			}),
			in:   "abcdefghijkl",
			want: "abcde\nfghij\nkl\n",
		},
		{
			name: "continuation split of a lone word",
			cfg: testConfig(5, func(c *Config) {
				c.HardMargins = true
				c.SplitRules = SplitContinuation
			}),
			in:   "abcdefghijkl",
			want: "abcd\\\nefgh\\\nijkl\n",
		},
		{
			name: "justify overshoots with many words",
			cfg:  testConfig(20, func(c *Config) { c.Style = Justify }),
			in:   "aaa bbb ccc ddd eeeeeeee",
			want: "aaa   bbb   ccc    ddd\neeeeeeee            \n",
		},
		{
			name: "justify exact fit",
			cfg:  testConfig(12, func(c *Config) { c.Style = Justify }),
			in:   "aaaa bbbb cc",
			want: "aaaa bbbb cc\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustFormatter(t, tt.cfg)
			if got := f.Format(tt.in); got != tt.want {
				t.Errorf("Format() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestFormatExtraSpace(t *testing.T) {
	tests := []struct {
		name    string
		columns int
		abbrevs []string
		in      string
		want    string
	}{
		{"sentences", 72, nil, "Go. Now. See Mr. Smith run.", "Go.  Now.  See Mr. Smith run.\n"},
		{"wrapped", 20, nil, "Go. Now. See Mr. Smith run.", "Go.  Now.  See Mr.\nSmith run.\n"},
		{"quotes and custom abbreviations", 72, []string{"Prof"},
			`Ask Prof. Plum. He said "Yes!" Then left.`,
			`Ask Prof. Plum.  He said "Yes!"  Then left.` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustFormatter(t, testConfig(tt.columns, func(c *Config) {
				c.ExtraSpace = true
				c.Abbreviations = tt.abbrevs
			}))
			if got := f.Format(tt.in); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatNoBreak(t *testing.T) {
	pairs := []NoBreakPair{MustNoBreakPair(`^Mr\.$`, `^[A-Z]`)}
	in := "He met with Mr. Jones today."

	f := mustFormatter(t, testConfig(20, func(c *Config) { c.NoBreakPairs = pairs }))
	if got, want := f.Format(in), "He met with Mr.\nJones today.\n"; got != want {
		t.Errorf("without nobreak: got %q, want %q", got, want)
	}

	for _, columns := range []int{18, 20, 25} {
		f := mustFormatter(t, testConfig(columns, func(c *Config) {
			c.NoBreak = true
			c.NoBreakPairs = pairs
		}))
		for _, ln := range f.Lines(in) {
			if strings.HasSuffix(strings.TrimSpace(ln), "Mr.") {
				t.Errorf("columns=%d: line %q ends between a bound pair", columns, ln)
			}
		}
	}

	f = mustFormatter(t, testConfig(20, func(c *Config) {
		c.NoBreak = true
		c.NoBreakPairs = pairs
	}))
	if got, want := f.Format(in), "He met with\nMr. Jones today.\n"; got != want {
		t.Errorf("with nobreak: got %q, want %q", got, want)
	}
}

func TestFormatNoBreakAllBound(t *testing.T) {
	// Every boundary is bound, so the guard gives up and the line breaks
	// where the fill pass wanted it to.
	f := mustFormatter(t, testConfig(6, func(c *Config) {
		c.NoBreak = true
		c.NoBreakPairs = []NoBreakPair{MustNoBreakPair(`.`, `.`)}
	}))
	got := f.Format("aa bb cc")
	if want := "aa bb\ncc\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatStyleKeepsLineBreaks(t *testing.T) {
	text := "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."
	var base []string
	for _, s := range []Style{Left, Right, Fill, Justify} {
		f := mustFormatter(t, testConfig(30, func(c *Config) { c.Style = s }))
		var words []string
		for _, ln := range f.Lines(text) {
			words = append(words, strings.Join(strings.Fields(ln), " "))
		}
		if base == nil {
			base = words
			continue
		}
		if strings.Join(words, "|") != strings.Join(base, "|") {
			t.Errorf("%s breaks lines differently:\n%q\nwant\n%q", s, words, base)
		}
	}
}

func TestFormatIdempotent(t *testing.T) {
	text := "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua."
	for _, columns := range []int{10, 25, 40, 72} {
		f := mustFormatter(t, testConfig(columns, nil))
		once := f.Format(text)
		if twice := f.Format(once); twice != once {
			t.Errorf("columns=%d: reformatting changed output:\n%q\n%q", columns, once, twice)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	text := "a bb ccc dddd eeeee ffffff ggggggg hhhhhhhh"
	f := mustFormatter(t, testConfig(10, nil))
	lines := f.Lines(text)

	for _, ln := range lines {
		if !strings.HasSuffix(ln, "\n") {
			t.Errorf("line %q lacks a newline", ln)
		}
		if w := width(strings.TrimSuffix(ln, "\n")); w > 10 {
			t.Errorf("line %q is %d wide", ln, w)
		}
	}
	if got := strings.Join(strings.Fields(strings.Join(lines, "")), " "); got != text {
		t.Errorf("words changed: %q", got)
	}
}

func TestFormatZeroWidth(t *testing.T) {
	for _, hard := range []bool{false, true} {
		f := mustFormatter(t, testConfig(0, func(c *Config) {
			c.HardMargins = hard
			c.SplitRules = SplitAll
		}))
		if got, want := f.Format("a bb ccc"), "a\nbb\nccc\n"; got != want {
			t.Errorf("hard=%v: got %q, want %q", hard, got, want)
		}
	}

	f := mustFormatter(t, testConfig(2, func(c *Config) {
		c.HardMargins = true
		c.SplitRules = SplitContinuation
	}))
	if got, want := f.Format("abcdef"), "a\\\nb\\\nc\\\nd\\\nef\n"; got != want {
		t.Errorf("columns=2: got %q, want %q", got, want)
	}
}

func TestFormatNegativeWidths(t *testing.T) {
	f := mustFormatter(t, testConfig(-20, func(c *Config) { c.FirstIndent = -4 }))
	if got := f.Config(); got.Columns != 20 || got.FirstIndent != 4 {
		t.Errorf("widths not normalized: %+v", got)
	}
	if got, want := f.Format(fox), "    The quick brown\nfox jumps over the\nlazy dog.\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestSplitWords(t *testing.T) {
	f := mustFormatter(t, testConfig(5, func(c *Config) {
		c.HardMargins = true
		c.SplitRules = SplitFixed
	}))

	f.Format("abcdefghijkl")
	want := []SplitWord{
		{Word: "abcdefghijkl", First: "abcde", Rest: "fghijkl"},
		{Word: "fghijkl", First: "fghij", Rest: "kl"},
	}
	got := f.SplitWords()
	if len(got) != len(want) {
		t.Fatalf("SplitWords() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitWords()[%d] = %+v, want %+v", i, got[i], want[i])
		}
		if got[i].First+got[i].Rest != got[i].Word {
			t.Errorf("split %+v does not reassemble", got[i])
		}
	}

	f.Format("mnopqr")
	if n := len(f.SplitWords()); n != 3 {
		t.Errorf("log should accumulate, got %d entries", n)
	}

	f.ClearSplitWords()
	if n := len(f.SplitWords()); n != 0 {
		t.Errorf("ClearSplitWords left %d entries", n)
	}
}

func TestSplitWordsContinuation(t *testing.T) {
	f := mustFormatter(t, testConfig(10, func(c *Config) {
		c.HardMargins = true
		c.SplitRules = SplitContinuation
	}))
	f.Format("a representation of things")
	for _, sw := range f.SplitWords() {
		if strings.TrimSuffix(sw.First, ContinuationMark)+sw.Rest != sw.Word {
			t.Errorf("split %+v does not reassemble", sw)
		}
	}
}

func TestNoSplitWordsWithoutSplit(t *testing.T) {
	f := mustFormatter(t, testConfig(10, nil))
	f.Format("a representation of things")
	if n := len(f.SplitWords()); n != 0 {
		t.Errorf("got %d split words without hard margins", n)
	}
}

func TestTagging(t *testing.T) {
	tests := []struct {
		name   string
		indent int
		tag    string
		want   string
	}{
		{"in indent", 4, "1.", "1.  one two three\nfour five six\n"},
		{"own line", 2, "(a)", "(a)\n  one two three four\nfive six\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustFormatter(t, testConfig(20, func(c *Config) {
				c.FirstIndent = tt.indent
				c.TagParagraph = true
				c.Tags = []string{tt.tag}
			}))
			if got := f.Format("one two three four five six"); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTagIndex(t *testing.T) {
	f := mustFormatter(t, testConfig(20, func(c *Config) {
		c.FirstIndent = 4
		c.TagParagraph = true
		c.Tags = []string{"1.", "2."}
	}))

	f.SetTagIndex(1)
	if got, want := f.Format("word"), "2.  word\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	f.SetTagIndex(5)
	if got, want := f.Format("word"), "    word\n"; got != want {
		t.Errorf("exhausted tags: got %q, want %q", got, want)
	}
	f.SetTagIndex(-3)
	if f.TagIndex() != 0 {
		t.Errorf("TagIndex() = %d, want 0", f.TagIndex())
	}
	f.SetTagIndex(2)
	f.ResetTagIndex()
	if f.TagIndex() != 0 {
		t.Errorf("ResetTagIndex left %d", f.TagIndex())
	}
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		in   string
		want string
	}{
		{
			name: "equal indents separate with a blank line",
			cfg:  testConfig(20, nil),
			in:   "alpha beta\n\ngamma",
			want: "alpha beta\n\ngamma\n",
		},
		{
			name: "first line indent marks paragraphs",
			cfg:  testConfig(20, func(c *Config) { c.FirstIndent = 4 }),
			in:   "alpha beta\n\ngamma",
			want: "    alpha beta\n    gamma",
		},
		{
			name: "empty paragraphs are dropped",
			cfg:  testConfig(20, nil),
			in:   "alpha\n\n\n\nbeta",
			want: "alpha\n\nbeta\n",
		},
		{
			name: "tagged",
			cfg: testConfig(20, func(c *Config) {
				c.FirstIndent = 4
				c.TagParagraph = true
				c.Tags = []string{"1.", "2."}
			}),
			in:   "first para here\n\nsecond para\n\nthird",
			want: "1.  first para here\n\n2.  second para\n\n    third\n",
		},
		{
			name: "empty",
			cfg:  testConfig(20, nil),
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustFormatter(t, tt.cfg)
			if got := f.Paragraphs(tt.in); got != tt.want {
				t.Errorf("Paragraphs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParagraphsSplit(t *testing.T) {
	f := mustFormatter(t, testConfig(20, nil))
	if got, want := f.ParagraphsSplit("alpha beta%%gamma", "%%"), "alpha beta\n\ngamma\n"; got != want {
		t.Errorf("ParagraphsSplit() = %q, want %q", got, want)
	}
	if got, want := f.ParagraphsSplit("alpha\n\nbeta", ""), "alpha beta\n"; got != want {
		t.Errorf("empty separator: got %q, want %q", got, want)
	}
}

func TestSetConfigKeepsPreviousOnError(t *testing.T) {
	f := mustFormatter(t, testConfig(40, nil))

	err := f.SetConfig(testConfig(10, func(c *Config) { c.SplitRules = 0 }))
	if errors.GetCode(err) != errors.ErrCodeInvalidSplitRules {
		t.Errorf("SetConfig error = %v, want %s", err, errors.ErrCodeInvalidSplitRules)
	}
	if f.Config().Columns != 40 {
		t.Errorf("Columns = %d, want 40", f.Config().Columns)
	}

	if err := f.SetStyle(Style(9)); errors.GetCode(err) != errors.ErrCodeInvalidStyle {
		t.Errorf("SetStyle error = %v", err)
	}
	if err := f.SetSplitRules(8); errors.GetCode(err) != errors.ErrCodeInvalidSplitRules {
		t.Errorf("SetSplitRules error = %v", err)
	}
	if err := f.SetStyle(Justify); err != nil {
		t.Fatalf("SetStyle: %v", err)
	}
	if f.Config().Style != Justify {
		t.Errorf("Style = %s, want justify", f.Config().Style)
	}
}

func TestConfigIsCopied(t *testing.T) {
	tags := []string{"a", "b"}
	f := mustFormatter(t, testConfig(20, func(c *Config) { c.Tags = tags }))
	tags[0] = "changed"
	if f.Config().Tags[0] != "a" {
		t.Error("formatter shares the caller's Tags slice")
	}
	cfg := f.Config()
	cfg.Tags[1] = "changed"
	if f.Config().Tags[1] != "b" {
		t.Error("Config() exposes the formatter's Tags slice")
	}
}

func TestSetHyphenator(t *testing.T) {
	f := mustFormatter(t, testConfig(20, nil))

	if _, ok := f.Hyphenator().(Continuation); !ok {
		t.Errorf("default hyphenator is %T", f.Hyphenator())
	}
	err := f.SetHyphenator("not a hyphenator")
	if errors.GetCode(err) != errors.ErrCodeInvalidHyphenator {
		t.Errorf("SetHyphenator error = %v", err)
	}
	if _, ok := f.Hyphenator().(Continuation); !ok {
		t.Errorf("rejected hyphenator replaced %T", f.Hyphenator())
	}
	if err := f.SetHyphenator(f); err != nil {
		t.Errorf("formatter should be accepted as a hyphenator: %v", err)
	}
	if err := f.SetHyphenator(nil); err != nil {
		t.Errorf("SetHyphenator(nil): %v", err)
	}

	if _, err := New(DefaultConfig(), WithHyphenator(42)); err == nil {
		t.Error("New accepted an int hyphenator")
	}
}

func TestCustomHyphenator(t *testing.T) {
	// Splits only at syllable marks known in advance.
	syllables := HyphenatorFunc(func(word string, size int) (string, string, bool) {
		if word == "formatting" && size >= 7 {
			return "format-", "ting", true
		}
		return "", word, false
	})

	f := mustFormatter(t, testConfig(12, func(c *Config) {
		c.HardMargins = true
		c.SplitRules = SplitHyphenation
	}), WithHyphenator(syllables))

	got := f.Format("text formatting")
	if want := "text format-\nting\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	var seen Config
	ctxHyph := ContextHyphenatorFunc(func(word string, size int, cfg Config) (string, string, bool) {
		seen = cfg
		return "", word, false
	})
	if err := f.SetHyphenator(ctxHyph); err != nil {
		t.Fatal(err)
	}
	f.Format("text formatting")
	if seen.Columns != 12 {
		t.Errorf("context hyphenator saw columns %d", seen.Columns)
	}
}
