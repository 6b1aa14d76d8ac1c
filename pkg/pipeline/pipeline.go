// Package pipeline runs a formatting request end to end: validation, cache
// lookup, formatting and cache write.
//
// The CLI and the HTTP server both go through a Runner so that they share
// cache keys and behaviour:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Mode: pipeline.ModeParagraphs,
//	    Text: text,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(result.Output)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/textfmt/pkg/cache"
	"github.com/matzehuels/textfmt/pkg/config"
	"github.com/matzehuels/textfmt/pkg/errors"
	"github.com/matzehuels/textfmt/pkg/format"
)

// =============================================================================
// Modes
// =============================================================================

// Modes select which Formatter operation a run performs.
const (
	ModeFormat     = "format"
	ModeParagraphs = "paragraphs"
	ModeCenter     = "center"
	ModeExpand     = "expand"
	ModeUnexpand   = "unexpand"
)

// DefaultMode is used when Options.Mode is empty.
const DefaultMode = ModeFormat

// ValidModes is the set of supported modes.
var ValidModes = map[string]bool{
	ModeFormat:     true,
	ModeParagraphs: true,
	ModeCenter:     true,
	ModeExpand:     true,
	ModeUnexpand:   true,
}

// ValidateMode checks that mode is supported.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid mode: %q (must be one of: format, paragraphs, center, expand, unexpand)", mode)
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options describes one formatting run.
type Options struct {
	Mode      string `json:"mode,omitempty"`
	Text      string `json:"text"`
	Separator string `json:"separator,omitempty"`

	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Config holds the formatting rules; nil means format.DefaultConfig.
	Config *format.Config `json:"-"`

	// Hyphenator is passed to format.WithHyphenator. Runs with a custom
	// hyphenator are never cached since the key cannot describe it.
	Hyphenator any `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if err := errors.ValidateText(o.Text); err != nil {
		return err
	}
	if o.Mode == ModeParagraphs && o.Separator == "" {
		o.Separator = format.DefaultSeparator
	}

	cfg := format.DefaultConfig()
	if o.Config != nil {
		cfg = o.Config.Normalize()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.Config = &cfg

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Cacheable reports whether a run with these options may use the cache.
func (o *Options) Cacheable() bool {
	return o.Hyphenator == nil
}

// OutputKeyOpts returns the cache key options. Call after
// ValidateAndSetDefaults.
func (o *Options) OutputKeyOpts() cache.OutputKeyOpts {
	return cache.OutputKeyOpts{
		Mode:      o.Mode,
		Separator: o.Separator,
		Config:    config.Snapshot(*o.Config),
	}
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of a run.
type Result struct {
	Output     string             `json:"output"`
	SplitWords []format.SplitWord `json:"split_words"`
	Stats      Stats              `json:"stats"`
	CacheHit   bool               `json:"cache_hit"`
}

// Stats describes the output of a run.
type Stats struct {
	Lines      int           `json:"lines"`
	Paragraphs int           `json:"paragraphs"`
	SplitCount int           `json:"split_count"`
	Duration   time.Duration `json:"duration"`
}

// countLines counts output lines; a final line without a newline counts.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// countParagraphs counts the parts of text that hold at least one word.
func countParagraphs(text, sep string) int {
	n := 0
	for _, p := range strings.Split(text, sep) {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}
