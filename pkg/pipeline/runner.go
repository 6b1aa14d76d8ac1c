package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/textfmt/pkg/cache"
	"github.com/matzehuels/textfmt/pkg/format"
	"github.com/matzehuels/textfmt/pkg/observability"
)

// cacheKeyType labels cache events for observability hooks.
const cacheKeyType = "output"

// Runner executes formatting runs against a cache.
//
// A Runner holds no per-run state; it is safe to share between goroutines
// as long as the cache is.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects DefaultKeyer and a nil logger selects log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedOutput is what the cache stores for a run.
type cachedOutput struct {
	Output     string             `json:"output"`
	SplitWords []format.SplitWord `json:"split_words,omitempty"`
	Lines      int                `json:"lines"`
	Paragraphs int                `json:"paragraphs"`
}

// Execute validates opts, serves the result from cache when possible and
// formats otherwise.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Format().OnFormatStart(ctx, opts.Mode, len(opts.Text))

	var key string
	if opts.Cacheable() {
		key = r.Keyer.OutputKey(cache.Hash([]byte(opts.Text)), opts.OutputKeyOpts())
		if !opts.Refresh {
			if res, ok := r.lookup(ctx, key); ok {
				res.Stats.Duration = time.Since(start)
				observability.Format().OnFormatComplete(ctx, opts.Mode, res.Stats.Lines, res.Stats.Duration, nil)
				r.Logger.Debug("cache hit", "mode", opts.Mode, "lines", res.Stats.Lines)
				return res, nil
			}
		}
	}

	res, err := Run(opts)
	if err != nil {
		observability.Format().OnFormatComplete(ctx, opts.Mode, 0, time.Since(start), err)
		return nil, err
	}
	res.Stats.Duration = time.Since(start)

	if key != "" {
		r.store(ctx, key, res)
	}

	observability.Format().OnFormatComplete(ctx, opts.Mode, res.Stats.Lines, res.Stats.Duration, nil)
	r.Logger.Info("formatted text",
		"mode", opts.Mode,
		"lines", res.Stats.Lines,
		"splits", res.Stats.SplitCount,
		"duration", res.Stats.Duration)

	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}

	var c cachedOutput
	if err := json.Unmarshal(data, &c); err != nil {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return &Result{
		Output:     c.Output,
		SplitWords: c.SplitWords,
		Stats: Stats{
			Lines:      c.Lines,
			Paragraphs: c.Paragraphs,
			SplitCount: len(c.SplitWords),
		},
		CacheHit: true,
	}, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(cachedOutput{
		Output:     res.Output,
		SplitWords: res.SplitWords,
		Lines:      res.Stats.Lines,
		Paragraphs: res.Stats.Paragraphs,
	})
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLOutput); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

// Run formats without touching any cache.
func Run(opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	f, err := format.New(*opts.Config,
		format.WithLogger(opts.Logger),
		format.WithHyphenator(opts.Hyphenator))
	if err != nil {
		return nil, err
	}

	res := &Result{}
	switch opts.Mode {
	case ModeFormat:
		res.Output = f.Format(opts.Text)
		if res.Output != "" {
			res.Stats.Paragraphs = 1
		}
	case ModeParagraphs:
		res.Output = f.ParagraphsSplit(opts.Text, opts.Separator)
		res.Stats.Paragraphs = countParagraphs(opts.Text, opts.Separator)
	case ModeCenter:
		res.Output = f.Center(opts.Text)
	case ModeExpand:
		res.Output = f.Expand(opts.Text)
	case ModeUnexpand:
		res.Output = f.Unexpand(opts.Text)
	}

	res.SplitWords = f.SplitWords()
	res.Stats.SplitCount = len(res.SplitWords)
	res.Stats.Lines = countLines(res.Output)
	return res, nil
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options that have none.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
