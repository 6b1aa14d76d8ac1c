package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/textfmt/pkg/errors"
	"github.com/matzehuels/textfmt/pkg/format"
)

const tomlProfile = `
columns = 60
first_indent = 0
style = "justify"
hard_margins = true
split = "continuation,fixed"
extra_space = true
abbreviations = ["etc", "vs"]
terminal_punctuation = ";"

[[nobreak_pairs]]
first = '^Mr\.$'
second = '^[A-Z]'
`

const yamlProfile = `
columns: 40
left_margin: 2
style: right
tag_paragraph: true
tag_style: roman
tag_suffix: "."
tag_count: 3
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "profile.toml", tomlProfile)

	p, err := Load(path)
	require.NoError(t, err)

	cfg, err := p.Apply(format.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Columns)
	assert.Equal(t, 0, cfg.FirstIndent)
	assert.Equal(t, format.Justify, cfg.Style)
	assert.True(t, cfg.HardMargins)
	assert.Equal(t, format.SplitContinuationFixed, cfg.SplitRules)
	assert.True(t, cfg.ExtraSpace)
	assert.Equal(t, []string{"etc", "vs"}, cfg.Abbreviations)
	assert.Equal(t, ";", cfg.TerminalPunctuation)
	require.Len(t, cfg.NoBreakPairs, 1)
	assert.True(t, cfg.NoBreakPairs[0].Matches("Mr.", "Jones"))

	// Untouched settings keep their defaults.
	assert.Equal(t, format.DefaultTabstop, cfg.Tabstop)
	assert.False(t, cfg.NoBreak)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "profile.yml", yamlProfile)

	p, err := Load(path)
	require.NoError(t, err)

	cfg, err := p.Apply(format.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Columns)
	assert.Equal(t, 2, cfg.LeftMargin)
	assert.Equal(t, format.Right, cfg.Style)
	assert.True(t, cfg.TagParagraph)
	assert.Equal(t, []string{"i.", "ii.", "iii."}, cfg.Tags)
}

func TestParseEmpty(t *testing.T) {
	for _, f := range []string{"toml", "yaml"} {
		p, err := Parse(nil, f)
		require.NoError(t, err, f)
		cfg, err := p.Apply(format.DefaultConfig())
		require.NoError(t, err, f)
		assert.True(t, cfg.Equal(format.DefaultConfig()), f)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
		code   errors.Code
	}{
		{"unknown toml key", "colums = 3", "toml", errors.ErrCodeInvalidConfig},
		{"unknown yaml key", "colums: 3", "yaml", errors.ErrCodeInvalidConfig},
		{"bad toml", "columns = ", "toml", errors.ErrCodeInvalidConfig},
		{"wrong type", "columns: wide", "yaml", errors.ErrCodeInvalidConfig},
		{"unsupported format", "{}", "json", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"style", `style = "center"`, errors.ErrCodeInvalidStyle},
		{"split", `split = "sideways"`, errors.ErrCodeInvalidSplitRules},
		{"pattern", "[[nobreak_pairs]]\nfirst = '('\nsecond = 'x'", errors.ErrCodeInvalidPattern},
		{"tag style", `tag_style = "greek"`, errors.ErrCodeInvalidFormat},
		{"punctuation", `terminal_punctuation = " "`, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.data), "toml")
			require.NoError(t, err)
			_, err = p.Apply(format.DefaultConfig())
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestParsePair(t *testing.T) {
	p, err := ParsePair(`^Mr\.$=^[A-Z]`)
	require.NoError(t, err)
	assert.Equal(t, PairSpec{First: `^Mr\.$`, Second: `^[A-Z]`}, p)

	p, err = ParsePair(`a=b=c`)
	require.NoError(t, err)
	assert.Equal(t, "b=c", p.Second)

	for _, bad := range []string{"", "abc", "=b", "a="} {
		_, err := ParsePair(bad)
		assert.Error(t, err, bad)
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "/explicit.toml", Resolve("/explicit.toml"))

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", t.TempDir())
	assert.Equal(t, "", Resolve(""))

	path := writeFile(t, dir, filepath.Join(appName, fileName), "columns = 33\n")
	assert.Equal(t, path, Resolve(""))

	cfg, got, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, 33, cfg.Columns)
}

func TestSearchPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	paths := SearchPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, filepath.Join("/tmp/xdg", appName, fileName), paths[0])
}

func TestSnapshotRoundTrip(t *testing.T) {
	cfg := format.DefaultConfig()
	cfg.Columns = 50
	cfg.Style = format.Fill
	cfg.HardMargins = true
	cfg.SplitRules = format.SplitAll
	cfg.ExtraSpace = true
	cfg.Abbreviations = []string{"etc"}
	cfg.NoBreak = true
	cfg.NoBreakPairs = []format.NoBreakPair{format.MustNoBreakPair(`^Mr\.$`, `^[A-Z]`)}
	cfg.TagParagraph = true
	cfg.Tags = []string{"a)", "b)"}

	snap := Snapshot(cfg)
	assert.Equal(t, "fill", snap.Style)
	assert.Equal(t, "hyphenation,continuation,fixed", snap.Split)

	got, err := snap.Apply(format.Config{})
	require.NoError(t, err)
	assert.True(t, got.Equal(cfg), "round trip changed the config: %+v", got)
}

func TestExampleProfiles(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "profiles", "*"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			p, err := Load(path)
			require.NoError(t, err)

			cfg, err := p.Apply(format.DefaultConfig())
			require.NoError(t, err)
			assert.NotEqual(t, format.DefaultConfig().Columns, cfg.Columns)
		})
	}
}

func TestNumberedProfile(t *testing.T) {
	p, err := Load(filepath.Join("..", "..", "examples", "profiles", "numbered.yaml"))
	require.NoError(t, err)

	cfg, err := p.Apply(format.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, cfg.TagParagraph)
	require.Len(t, cfg.Tags, 20)
	assert.Equal(t, "1.", cfg.Tags[0])
	assert.Equal(t, "20.", cfg.Tags[19])
}
