package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/textfmt/pkg/config"
	"github.com/matzehuels/textfmt/pkg/errors"
	"github.com/matzehuels/textfmt/pkg/format"
	"github.com/matzehuels/textfmt/pkg/pipeline"
)

// formatOpts holds the command-line flags shared by the formatting commands.
// Config flags only override the profile when they were set explicitly.
type formatOpts struct {
	configPath string

	columns     int
	leftMargin  int
	rightMargin int
	firstIndent int
	bodyIndent  int
	tabstop     int

	style       string
	hardMargins bool
	split       string

	extraSpace     bool
	abbrevs        []string
	terminalPunct  string
	terminalQuotes string

	nobreak      bool
	nobreakPairs []string

	tags      []string
	tagStyle  string
	tagSuffix string

	separator  string
	output     string
	noCache    bool
	refresh    bool
	showSplits bool
	watch      bool
}

var modeDescriptions = map[string]string{
	pipeline.ModeFormat:     "Reflow text as a single paragraph",
	pipeline.ModeParagraphs: "Reflow text paragraph by paragraph",
	pipeline.ModeCenter:     "Center each line between the margins",
	pipeline.ModeExpand:     "Replace tabs with spaces",
	pipeline.ModeUnexpand:   "Replace runs of tabstop spaces with tabs",
}

// formatCommand creates the command for one pipeline mode.
func (c *CLI) formatCommand(mode string) *cobra.Command {
	var opts formatOpts

	cmd := &cobra.Command{
		Use:   mode + " [file]",
		Short: modeDescriptions[mode],
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 && args[0] != "-" {
				path = args[0]
			}
			if opts.watch {
				if path == "" {
					return errors.New(errors.ErrCodeInvalidInput, "--watch needs a file argument")
				}
				return watchFile(cmd.Context(), path, loggerFromContext(cmd.Context()), func() error {
					return c.runFormat(cmd, mode, &opts, path)
				})
			}
			return c.runFormat(cmd, mode, &opts, path)
		},
	}

	opts.register(cmd, mode)
	return cmd
}

func (o *formatOpts) register(cmd *cobra.Command, mode string) {
	o.registerConfig(cmd)

	f := cmd.Flags()
	if mode == pipeline.ModeParagraphs {
		f.StringVar(&o.separator, "separator", format.DefaultSeparator, "paragraph separator")
	}
	f.StringVarP(&o.output, "output", "o", "", "output file (default stdout)")
	f.BoolVar(&o.noCache, "no-cache", false, "disable the output cache")
	f.BoolVar(&o.refresh, "refresh", false, "ignore cached output and format again")
	f.BoolVar(&o.showSplits, "show-splits", false, "report words split at the right margin")
	f.BoolVar(&o.watch, "watch", false, "format again whenever the input file changes")
}

// registerConfig adds the flags that map onto format.Config.
func (o *formatOpts) registerConfig(cmd *cobra.Command) {
	def := format.DefaultConfig()
	f := cmd.Flags()

	f.StringVar(&o.configPath, "config", "", "profile file (.toml or .yaml); default $XDG_CONFIG_HOME/textfmt/config.toml")

	f.IntVarP(&o.columns, "columns", "w", def.Columns, "total line width")
	f.IntVar(&o.leftMargin, "left-margin", def.LeftMargin, "spaces before every line")
	f.IntVar(&o.rightMargin, "right-margin", def.RightMargin, "columns kept free at the right")
	f.IntVar(&o.firstIndent, "first-indent", def.FirstIndent, "indent of the first line of a paragraph")
	f.IntVar(&o.bodyIndent, "body-indent", def.BodyIndent, "indent of the other lines")
	f.IntVar(&o.tabstop, "tabstop", def.Tabstop, "columns per tab")

	f.StringVarP(&o.style, "style", "s", def.Style.String(), "alignment: left, right, fill, justify")
	f.BoolVar(&o.hardMargins, "hard-margins", false, "split words that cross the right margin")
	f.StringVar(&o.split, "split", def.SplitRules.String(), "split policies: hyphenation, continuation, fixed (comma-separated) or all")

	f.BoolVar(&o.extraSpace, "extra-space", false, "two spaces after sentence ends")
	f.StringSliceVar(&o.abbrevs, "abbrev", nil, "extra abbreviations that do not end a sentence")
	f.StringVar(&o.terminalPunct, "terminal-punctuation", "", "extra sentence-ending punctuation")
	f.StringVar(&o.terminalQuotes, "terminal-quotes", "", "extra closing quotes after sentence-ending punctuation")

	f.BoolVar(&o.nobreak, "nobreak", false, "never break between words matching a nobreak pair")
	f.StringArrayVar(&o.nobreakPairs, "nobreak-pair", nil, "nobreak pair as first=second regular expressions (repeatable)")

	f.StringSliceVar(&o.tags, "tag", nil, "paragraph tags, one per paragraph")
	f.StringVar(&o.tagStyle, "tag-style", "", "generate paragraph tags: number, alpha, ALPHA, roman, ROMAN")
	f.StringVar(&o.tagSuffix, "tag-suffix", ".", "suffix for generated tags")
}

// profile collects the explicitly set config flags. text is used to size
// generated tag lists.
func (o *formatOpts) profile(changed func(string) bool, text string) (*config.Profile, error) {
	p := &config.Profile{}
	ints := []struct {
		flag string
		val  *int
		dst  **int
	}{
		{"columns", &o.columns, &p.Columns},
		{"left-margin", &o.leftMargin, &p.LeftMargin},
		{"right-margin", &o.rightMargin, &p.RightMargin},
		{"first-indent", &o.firstIndent, &p.FirstIndent},
		{"body-indent", &o.bodyIndent, &p.BodyIndent},
		{"tabstop", &o.tabstop, &p.Tabstop},
	}
	for _, i := range ints {
		if changed(i.flag) {
			*i.dst = i.val
		}
	}

	bools := []struct {
		flag string
		val  *bool
		dst  **bool
	}{
		{"hard-margins", &o.hardMargins, &p.HardMargins},
		{"extra-space", &o.extraSpace, &p.ExtraSpace},
		{"nobreak", &o.nobreak, &p.NoBreak},
	}
	for _, b := range bools {
		if changed(b.flag) {
			*b.dst = b.val
		}
	}

	if changed("style") {
		p.Style = o.style
	}
	if changed("split") {
		p.Split = o.split
	}
	if changed("abbrev") {
		p.Abbreviations = o.abbrevs
	}
	if changed("terminal-punctuation") {
		p.TerminalPunctuation = &o.terminalPunct
	}
	if changed("terminal-quotes") {
		p.TerminalQuotes = &o.terminalQuotes
	}

	if changed("nobreak-pair") {
		p.NoBreakPairs = make([]config.PairSpec, 0, len(o.nobreakPairs))
		for _, s := range o.nobreakPairs {
			pair, err := config.ParsePair(s)
			if err != nil {
				return nil, err
			}
			p.NoBreakPairs = append(p.NoBreakPairs, pair)
		}
		if !changed("nobreak") {
			on := true
			p.NoBreak = &on
		}
	}

	switch {
	case changed("tag"):
		p.Tags = o.tags
	case changed("tag-style"):
		p.TagStyle = o.tagStyle
		p.TagSuffix = o.tagSuffix
		p.TagCount = max(1, countParts(text, o.separatorOrDefault()))
	}
	if p.Tags != nil || p.TagStyle != "" {
		on := true
		p.TagParagraph = &on
	}
	return p, nil
}

func (o *formatOpts) separatorOrDefault() string {
	if o.separator == "" {
		return format.DefaultSeparator
	}
	return o.separator
}

// countParts counts the separator-delimited parts of text.
func countParts(text, sep string) int {
	return strings.Count(text, sep) + 1
}

// buildConfig loads the profile and lays the explicit flags over it.
func (o *formatOpts) buildConfig(changed func(string) bool, text string) (format.Config, string, error) {
	cfg, path, err := config.LoadConfig(o.configPath)
	if err != nil {
		return cfg, path, err
	}
	p, err := o.profile(changed, text)
	if err != nil {
		return cfg, path, err
	}
	cfg, err = p.Apply(cfg)
	return cfg, path, err
}

// runFormat reads the input, runs the pipeline and writes the output.
func (c *CLI) runFormat(cmd *cobra.Command, mode string, opts *formatOpts, path string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	text, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	cfg, profilePath, err := opts.buildConfig(cmd.Flags().Changed, text)
	if err != nil {
		return err
	}
	if profilePath != "" {
		logger.Debug("loaded profile", "path", profilePath)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, pipeline.Options{
		Mode:      mode,
		Text:      text,
		Separator: opts.separator,
		Refresh:   opts.refresh,
		Config:    &cfg,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	if err := writeOutput(cmd.OutOrStdout(), opts.output, res.Output); err != nil {
		return err
	}

	status := cmd.ErrOrStderr()
	if opts.output != "" {
		printSuccess(status, "Wrote %s output", mode)
		printFile(status, opts.output)
		printStats(status, res)
	}
	if opts.showSplits {
		printSplitWords(status, res.SplitWords)
	}
	return nil
}

// readInput reads path, or r when path is empty.
func readInput(r io.Reader, path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// writeOutput writes s to path, or to w when path is empty.
func writeOutput(w io.Writer, path, s string) error {
	if path == "" {
		_, err := io.WriteString(w, s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
