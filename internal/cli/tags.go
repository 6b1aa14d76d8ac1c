package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/textfmt/pkg/errors"
	"github.com/matzehuels/textfmt/pkg/tags"
)

// tagsCommand prints generated paragraph tags, one per line.
func (c *CLI) tagsCommand() *cobra.Command {
	var (
		style  string
		count  int
		start  int
		prefix string
		suffix string
	)

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Print generated paragraph tags",
		Long: `Tags prints the labels --tag-style would attach to paragraphs. The
output can be edited and passed back with --tag.`,
		Example: "  textfmt tags --style roman -n 5\n  textfmt tags --style number --start 3 --prefix '(' --suffix ')'",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "count must not be negative")
			}
			g, err := tags.Parse(style, suffix)
			if err != nil {
				return err
			}
			g = withLabelOptions(g, start, prefix)
			out := cmd.OutOrStdout()
			for _, label := range tags.Take(g, count) {
				fmt.Fprintln(out, label)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "number", "tag style: "+strings.Join(tags.Styles, ", "))
	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of tags")
	cmd.Flags().IntVar(&start, "start", 1, "first number (number style only)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "text before each tag")
	cmd.Flags().StringVar(&suffix, "suffix", ".", "text after each tag")

	return cmd
}

// withLabelOptions sets the options tags.Parse does not take.
func withLabelOptions(g tags.Generator, start int, prefix string) tags.Generator {
	switch g := g.(type) {
	case tags.Number:
		g.Start, g.Prefix = start, prefix
		return g
	case tags.Alpha:
		g.Prefix = prefix
		return g
	case tags.Roman:
		g.Prefix = prefix
		return g
	}
	return g
}
