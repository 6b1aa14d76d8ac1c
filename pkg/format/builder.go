package format

import (
	"github.com/charmbracelet/log"
)

// lineBuilder fills lines greedily from a paragraph's words.
type lineBuilder struct {
	cfg      Config
	words    *wordStack
	splitter splitter
	guard    noBreakGuard
	sentence sentenceRules
	renderer renderer
	logger   *log.Logger
	onSplit  func(SplitWord)

	line     line
	indent   int
	maxWidth int
	first    bool
	out      []string
}

func newLineBuilder(cfg Config, text string, hyphenate hyphenateFunc, logger *log.Logger, onSplit func(SplitWord)) *lineBuilder {
	return &lineBuilder{
		cfg:   cfg,
		words: newWordStack(text),
		splitter: splitter{
			cfg:       cfg,
			hyphenate: hyphenate,
			nextWidth: cfg.TextWidth(cfg.BodyIndent),
		},
		guard:    noBreakGuard{pairs: cfg.NoBreakPairs},
		sentence: newSentenceRules(cfg),
		renderer: renderer{cfg: cfg},
		logger:   logger,
		onSplit:  onSplit,
		indent:   cfg.FirstIndent,
		maxWidth: cfg.TextWidth(cfg.FirstIndent),
		first:    true,
	}
}

// build returns the rendered lines, each ending in a newline.
func (b *lineBuilder) build() []string {
	seed, ok := b.words.pop()
	if !ok {
		return nil
	}
	b.line.reset(seed)

	for {
		w, ok := b.words.pop()
		if !ok {
			break
		}
		sep := 1
		if b.sentence.extraSpace(b.line.last()) {
			sep = 2
		}
		if b.line.width+sep+width(w) <= b.maxWidth {
			b.line.append(w, sep)
			continue
		}
		b.overflow(w)
	}

	b.flush()
	return b.out
}

// overflow ends the current line because w does not fit on it.
func (b *lineBuilder) overflow(w string) {
	if b.cfg.NoBreak {
		if k := b.guard.cutIndex(b.line.words(), w); k > 0 {
			moved := b.line.truncate(k)
			b.logger.Debug("nobreak backtrack", "moved", moved, "next", w)
			b.words.pushFront(append(moved, w)...)
			b.breakLine()
			return
		}
	}

	switch {
	case b.line.width > b.maxWidth:
		b.words.pushFront(w)
		b.shrink()
	case b.line.width < b.maxWidth:
		b.grow(w)
	default:
		b.words.pushFront(w)
	}
	b.breakLine()
}

// shrink splits the last word of an overfull line so its first part ends
// at the margin. The rest goes back to the front of the stream.
func (b *lineBuilder) shrink() bool {
	last := b.line.tokens[len(b.line.tokens)-1]
	budget := b.maxWidth - (b.line.width - width(last.text))

	first, rest, ok := b.splitter.split(last.text, budget)
	if !ok {
		return false
	}
	b.line.pop()
	b.line.append(first, last.sep)
	b.record(last.text, first, rest)
	b.words.pushFront(rest)
	return true
}

// grow puts as much of w as the split rules allow into the room left on
// the line, one separator space included.
func (b *lineBuilder) grow(w string) {
	budget := b.maxWidth - b.line.width - 1

	first, rest, ok := b.splitter.split(w, budget)
	if !ok {
		b.words.pushFront(w)
		return
	}
	b.line.append(first, 1)
	b.record(w, first, rest)
	b.words.pushFront(rest)
}

func (b *lineBuilder) record(word, first, rest string) {
	b.logger.Debug("split word", "word", word, "first", first, "rest", rest)
	if b.onSplit != nil {
		b.onSplit(SplitWord{Word: word, First: first, Rest: rest})
	}
}

// breakLine emits the current line and seeds the next one from the stream.
func (b *lineBuilder) breakLine() {
	b.emit(false)
	next, _ := b.words.pop()
	b.line.reset(next)
}

// flush emits what is left once the stream is exhausted. An overfull last
// line is split as long as the rules allow; the final piece is the
// paragraph's terminal line.
func (b *lineBuilder) flush() {
	for !b.line.empty() {
		if b.line.width > b.maxWidth && b.shrink() {
			b.breakLine()
			continue
		}
		b.emit(true)
		return
	}
}

func (b *lineBuilder) emit(terminal bool) {
	if b.line.empty() {
		return
	}
	b.out = append(b.out, b.renderer.render(b.line.tokens, b.indent, b.maxWidth, terminal))
	if b.first {
		b.first = false
		b.indent = b.cfg.BodyIndent
		b.maxWidth = b.cfg.TextWidth(b.indent)
	}
}
