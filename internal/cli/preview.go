package cli

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var opts formatOpts

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Interactively adjust columns, style and margins",
		Long: `Preview reflows the input paragraph by paragraph and redraws it as you
change the settings. Use ←/→ to change the columns, s to cycle the style,
h to toggle hard margins and q to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 && args[0] != "-" {
				path = args[0]
			}
			text, err := readInput(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}
			cfg, _, err := opts.buildConfig(cmd.Flags().Changed, text)
			if err != nil {
				return err
			}

			name := "stdin"
			progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(cmd.Context())}
			if path == "" {
				// stdin carried the text, so keys come from the terminal
				progOpts = append(progOpts, tea.WithInputTTY())
			} else {
				name = filepath.Base(path)
			}

			_, err = tea.NewProgram(NewPreviewModel(name, text, cfg), progOpts...).Run()
			return err
		},
	}

	opts.registerConfig(cmd)
	return cmd
}
