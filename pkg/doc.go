// Package pkg provides the libraries behind textfmt, a plain-text reflow
// engine.
//
// # Overview
//
// textfmt turns ragged text into paragraphs that fit a column width, with
// margins, first-line and body indents, four alignment styles, forced word
// splitting at hard margins, two spaces after sentences, nobreak word pairs
// and paragraph tags. The pkg directory is organized into three areas:
//
//  1. [format] - The engine (config, line building, splitting, rendering)
//  2. [pipeline] - Orchestration (validate → cache lookup → format → store)
//  3. Surrounding infrastructure: [config], [tags], [cache], [server],
//     [observability], [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow through textfmt:
//
//	Text + profile (TOML/YAML) + flags
//	         ↓
//	    [config] package (profile → format.Config)
//	         ↓
//	    [pipeline] package (validate, cache key, hooks)
//	         ↓
//	    [format] package (words → lines → aligned output)
//	         ↓
//	    formatted text, split-word log, stats
//
// # Quick Start
//
// Reflow text with the engine directly:
//
//	cfg := format.DefaultConfig()
//	cfg.Columns = 60
//	cfg.Style = format.Justify
//
//	f, err := format.New(cfg)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(f.Paragraphs(text))
//
// # Main Packages
//
// [format] - The reflow engine. A Formatter holds a validated Config, the
// split-word log and the tag cursor. Format reflows one paragraph,
// Paragraphs splits on blank lines, and Center, Expand and Unexpand are the
// line utilities.
//
// [tags] - Label generators (numbers, letters, roman numerals) producing the
// tag list a Config consumes one per paragraph.
//
// [config] - Profile files laid over format.DefaultConfig, searched under
// $XDG_CONFIG_HOME/textfmt.
//
// [pipeline] - The Runner shared by the CLI and the HTTP server so both use
// the same cache keys and behavior.
//
// [cache] - Output cache with null, file and Redis backends.
//
// [server] - HTTP API: POST /v1/format and GET /healthz.
//
// [observability] - Hooks for format, cache and HTTP events.
//
// # Common Workflows
//
// Load the user's profile and format through the cached pipeline:
//
//	cfg, _, err := config.LoadConfig("")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Mode:   pipeline.ModeParagraphs,
//	    Text:   text,
//	    Config: &cfg,
//	})
//
// Number paragraphs:
//
//	cfg.TagParagraph = true
//	cfg.Tags = tags.Take(tags.Number{Suffix: "."}, 10)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/format/...             # Specific package
//	go test -run Example                 # Examples only
//	TEXTFMT_TEST_REDIS=localhost:6379 go test ./pkg/cache/...
//
// [format]: https://pkg.go.dev/github.com/matzehuels/textfmt/pkg/format
// [tags]: https://pkg.go.dev/github.com/matzehuels/textfmt/pkg/tags
// [config]: https://pkg.go.dev/github.com/matzehuels/textfmt/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/textfmt/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/textfmt/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/textfmt/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/textfmt/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/textfmt/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/textfmt/pkg/buildinfo
package pkg
