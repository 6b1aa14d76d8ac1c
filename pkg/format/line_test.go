package format

import (
	"slices"
	"testing"
)

func TestWordStack(t *testing.T) {
	s := newWordStack("  one two\n\tthree ")

	w, _ := s.pop()
	if w != "one" {
		t.Fatalf("pop() = %q, want one", w)
	}
	s.pushFront("a", "", "b")

	var got []string
	for !s.empty() {
		w, _ := s.pop()
		got = append(got, w)
	}
	if want := []string{"a", "b", "two", "three"}; !slices.Equal(got, want) {
		t.Errorf("words = %q, want %q", got, want)
	}
	if _, ok := s.pop(); ok {
		t.Error("pop on an empty stack should fail")
	}
}

func TestLine(t *testing.T) {
	var l line
	l.reset("one")
	l.append("two", 1)
	l.append("three", 2)
	if l.width != 3+1+3+2+5 {
		t.Errorf("width = %d", l.width)
	}

	moved := l.truncate(1)
	if !slices.Equal(moved, []string{"two", "three"}) {
		t.Errorf("truncate moved %q", moved)
	}
	if l.width != 3 || l.last() != "one" {
		t.Errorf("after truncate: width %d, last %q", l.width, l.last())
	}

	l.reset("")
	if !l.empty() || l.width != 0 || l.last() != "" {
		t.Error("reset(\"\") should leave an empty line")
	}
	l.append("x", 5)
	if l.tokens[0].sep != 0 {
		t.Error("the first word of a line must not carry a separator")
	}
}

func TestSentenceRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExtraSpace = true
	cfg.Abbreviations = []string{"etc"}
	cfg.TerminalPunctuation = ";"
	cfg.TerminalQuotes = ")"
	r := newSentenceRules(cfg)

	tests := []struct {
		word string
		want bool
	}{
		{"end.", true},
		{"what?", true},
		{"wow!", true},
		{`said."`, true},
		{"said.'", true},
		{"clause;", true},
		{"(aside.)", true},
		{"Mr.", false},
		{"Dr.", false},
		{"etc.", false},
		{"word", false},
		{`"quoted"`, false},
		{".", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := r.extraSpace(tt.word); got != tt.want {
			t.Errorf("extraSpace(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}

	cfg.ExtraSpace = false
	if newSentenceRules(cfg).extraSpace("end.") {
		t.Error("extraSpace should be off without ExtraSpace")
	}
}

func TestNoBreakGuard(t *testing.T) {
	g := noBreakGuard{pairs: []NoBreakPair{MustNoBreakPair(`^Mr\.$`, `^[A-Z]`)}}

	tests := []struct {
		name  string
		words []string
		next  string
		want  int
	}{
		{"allowed", []string{"He", "met"}, "Jones", 0},
		{"bound to next", []string{"He", "met", "Mr."}, "Jones", 2},
		{"single word line", []string{"Mr."}, "Jones", 0},
		{"empty line", nil, "Jones", 0},
	}
	for _, tt := range tests {
		if got := g.cutIndex(tt.words, tt.next); got != tt.want {
			t.Errorf("%s: cutIndex = %d, want %d", tt.name, got, tt.want)
		}
	}

	chain := noBreakGuard{pairs: []NoBreakPair{MustNoBreakPair(`^[a-z]$`, `^[a-z]$`)}}
	if got := chain.cutIndex([]string{"one", "a", "b"}, "c"); got != 1 {
		t.Errorf("chain cutIndex = %d, want 1", got)
	}
}

func TestJustify(t *testing.T) {
	tokens := []token{{"aaa", 0}, {"bbb", 1}, {"ccc", 1}, {"ddd", 1}}
	justify(tokens, 5)

	var seps []int
	for _, tk := range tokens {
		seps = append(seps, tk.sep)
	}
	if want := []int{0, 3, 3, 4}; !slices.Equal(seps, want) {
		t.Errorf("separators = %v, want %v", seps, want)
	}

	single := []token{{"alone", 0}}
	justify(single, 10)
	if single[0].sep != 0 {
		t.Error("a single word must not be moved")
	}
}

func TestRender(t *testing.T) {
	tokens := []token{{"ab", 0}, {"cd", 1}}
	tests := []struct {
		name     string
		style    Style
		terminal bool
		want     string
	}{
		{"left", Left, false, "  ab cd\n"},
		{"fill", Fill, false, "  ab cd   \n"},
		{"right", Right, false, "     ab cd\n"},
		{"justify", Justify, false, "  ab    cd\n"},
		{"justify terminal", Justify, true, "  ab cd   \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Columns = 12
			cfg.LeftMargin = 2
			cfg.RightMargin = 2
			cfg.Style = tt.style
			got := renderer{cfg: cfg}.render(tokens, 0, 8, tt.terminal)
			if got != tt.want {
				t.Errorf("render = %q, want %q", got, tt.want)
			}
		})
	}
	if tokens[1].sep != 1 {
		t.Error("render modified its input")
	}
}
