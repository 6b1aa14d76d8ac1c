// Package config loads formatting profiles from TOML or YAML files.
//
// A profile lists only the settings it wants to change; everything else
// keeps its value from the config the profile is applied to:
//
//	columns = 60
//	style = "justify"
//	hard_margins = true
//	split = "continuation,fixed"
//
//	[[nobreak_pairs]]
//	first = '^Mr\.$'
//	second = '^[A-Z]'
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/textfmt/pkg/errors"
	"github.com/matzehuels/textfmt/pkg/format"
	"github.com/matzehuels/textfmt/pkg/tags"
)

const (
	appName  = "textfmt"
	fileName = "config.toml"
)

// Profile is the on-disk form of format.Config. Pointer fields distinguish
// "not set" from a zero value.
type Profile struct {
	Columns     *int `toml:"columns" yaml:"columns" json:"columns,omitempty"`
	LeftMargin  *int `toml:"left_margin" yaml:"left_margin" json:"left_margin,omitempty"`
	RightMargin *int `toml:"right_margin" yaml:"right_margin" json:"right_margin,omitempty"`
	FirstIndent *int `toml:"first_indent" yaml:"first_indent" json:"first_indent,omitempty"`
	BodyIndent  *int `toml:"body_indent" yaml:"body_indent" json:"body_indent,omitempty"`
	Tabstop     *int `toml:"tabstop" yaml:"tabstop" json:"tabstop,omitempty"`

	Style       string `toml:"style" yaml:"style" json:"style,omitempty"`
	HardMargins *bool  `toml:"hard_margins" yaml:"hard_margins" json:"hard_margins,omitempty"`
	Split       string `toml:"split" yaml:"split" json:"split,omitempty"`

	ExtraSpace          *bool    `toml:"extra_space" yaml:"extra_space" json:"extra_space,omitempty"`
	Abbreviations       []string `toml:"abbreviations" yaml:"abbreviations" json:"abbreviations,omitempty"`
	TerminalPunctuation *string  `toml:"terminal_punctuation" yaml:"terminal_punctuation" json:"terminal_punctuation,omitempty"`
	TerminalQuotes      *string  `toml:"terminal_quotes" yaml:"terminal_quotes" json:"terminal_quotes,omitempty"`

	NoBreak      *bool      `toml:"nobreak" yaml:"nobreak" json:"nobreak,omitempty"`
	NoBreakPairs []PairSpec `toml:"nobreak_pairs" yaml:"nobreak_pairs" json:"nobreak_pairs,omitempty"`

	TagParagraph *bool    `toml:"tag_paragraph" yaml:"tag_paragraph" json:"tag_paragraph,omitempty"`
	Tags         []string `toml:"tags" yaml:"tags" json:"tags,omitempty"`

	// TagStyle generates TagCount tags (see tags.Parse) when Tags is empty.
	TagStyle  string `toml:"tag_style" yaml:"tag_style" json:"tag_style,omitempty"`
	TagSuffix string `toml:"tag_suffix" yaml:"tag_suffix" json:"tag_suffix,omitempty"`
	TagCount  int    `toml:"tag_count" yaml:"tag_count" json:"tag_count,omitempty"`
}

// PairSpec is a nobreak pair given as two regular expressions.
type PairSpec struct {
	First  string `toml:"first" yaml:"first" json:"first"`
	Second string `toml:"second" yaml:"second" json:"second"`
}

// Load reads a profile. The format follows the extension: .toml, .yaml or .yml.
func Load(path string) (*Profile, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "profile %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read profile %s", path)
	}
	return Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// Parse decodes a profile in the named format (toml, yaml or yml).
func Parse(data []byte, format string) (*Profile, error) {
	var p Profile
	switch strings.ToLower(format) {
	case "toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml profile")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown profile key %q", undecoded[0].String())
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml profile")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported profile format %q (must be toml or yaml)", format)
	}
	return &p, nil
}

// Apply returns cfg with the profile's settings laid over it.
func (p *Profile) Apply(cfg format.Config) (format.Config, error) {
	setInt(&cfg.Columns, p.Columns)
	setInt(&cfg.LeftMargin, p.LeftMargin)
	setInt(&cfg.RightMargin, p.RightMargin)
	setInt(&cfg.FirstIndent, p.FirstIndent)
	setInt(&cfg.BodyIndent, p.BodyIndent)
	setInt(&cfg.Tabstop, p.Tabstop)

	if p.Style != "" {
		s, err := format.ParseStyle(p.Style)
		if err != nil {
			return cfg, err
		}
		cfg.Style = s
	}
	if p.Split != "" {
		r, err := format.ParseSplitRules(p.Split)
		if err != nil {
			return cfg, err
		}
		cfg.SplitRules = r
	}
	setBool(&cfg.HardMargins, p.HardMargins)
	setBool(&cfg.ExtraSpace, p.ExtraSpace)
	setBool(&cfg.NoBreak, p.NoBreak)
	setBool(&cfg.TagParagraph, p.TagParagraph)

	if p.Abbreviations != nil {
		cfg.Abbreviations = p.Abbreviations
	}
	if p.TerminalPunctuation != nil {
		cfg.TerminalPunctuation = *p.TerminalPunctuation
	}
	if p.TerminalQuotes != nil {
		cfg.TerminalQuotes = *p.TerminalQuotes
	}

	if p.NoBreakPairs != nil {
		pairs, err := CompilePairs(p.NoBreakPairs)
		if err != nil {
			return cfg, err
		}
		cfg.NoBreakPairs = pairs
	}

	switch {
	case p.Tags != nil:
		cfg.Tags = p.Tags
	case p.TagStyle != "":
		g, err := tags.Parse(p.TagStyle, p.TagSuffix)
		if err != nil {
			return cfg, err
		}
		cfg.Tags = tags.Take(g, p.TagCount)
	}

	return cfg, cfg.Normalize().Validate()
}

// Snapshot returns a profile that sets every field of cfg. It is the
// serialisable form of a config, used for cache keys and API responses.
func Snapshot(cfg format.Config) Profile {
	cfg = cfg.Normalize()
	pairs := make([]PairSpec, len(cfg.NoBreakPairs))
	for i, p := range cfg.NoBreakPairs {
		pairs[i] = PairSpec{First: p.First.String(), Second: p.Second.String()}
	}
	return Profile{
		Columns:             &cfg.Columns,
		LeftMargin:          &cfg.LeftMargin,
		RightMargin:         &cfg.RightMargin,
		FirstIndent:         &cfg.FirstIndent,
		BodyIndent:          &cfg.BodyIndent,
		Tabstop:             &cfg.Tabstop,
		Style:               cfg.Style.String(),
		HardMargins:         &cfg.HardMargins,
		Split:               cfg.SplitRules.String(),
		ExtraSpace:          &cfg.ExtraSpace,
		Abbreviations:       slices.Clone(cfg.Abbreviations),
		TerminalPunctuation: &cfg.TerminalPunctuation,
		TerminalQuotes:      &cfg.TerminalQuotes,
		NoBreak:             &cfg.NoBreak,
		NoBreakPairs:        pairs,
		TagParagraph:        &cfg.TagParagraph,
		Tags:                slices.Clone(cfg.Tags),
	}
}

// CompilePairs compiles pattern pairs into nobreak pairs.
func CompilePairs(specs []PairSpec) ([]format.NoBreakPair, error) {
	pairs := make([]format.NoBreakPair, 0, len(specs))
	for _, s := range specs {
		p, err := format.NewNoBreakPair(s.First, s.Second)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// ParsePair parses a "first=second" nobreak pair as given on the command
// line. The split is at the first "=" so the second pattern may contain one.
func ParsePair(s string) (PairSpec, error) {
	first, second, ok := strings.Cut(s, "=")
	if !ok || first == "" || second == "" {
		return PairSpec{}, errors.New(errors.ErrCodeInvalidPattern, "nobreak pair %q must look like first=second", s)
	}
	return PairSpec{First: first, Second: second}, nil
}

// Resolve returns the profile path to use. An explicit path always wins;
// otherwise the first existing file on the search path is returned. An
// empty result means no profile.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// SearchPaths lists where a profile is looked for, in order.
func SearchPaths() []string {
	var paths []string
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		paths = append(paths, filepath.Join(dir, appName, fileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, fileName))
	}
	return paths
}

// LoadConfig resolves and applies a profile on top of format.DefaultConfig.
// With no profile found the defaults are returned unchanged.
func LoadConfig(explicit string) (format.Config, string, error) {
	cfg := format.DefaultConfig()
	path := Resolve(explicit)
	if path == "" {
		return cfg, "", nil
	}
	p, err := Load(path)
	if err != nil {
		return cfg, path, err
	}
	cfg, err = p.Apply(cfg)
	return cfg, path, err
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
