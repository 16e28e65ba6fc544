package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// previewCommand prints the composed visual tree without rendering it.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags   cardFlags
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "preview [text]",
		Short: "Print the composed card layout as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, args, cfg)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cfg)
			if err != nil {
				return err
			}
			tree, err := runner.Layout(cmd.Context(), opts)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(tree)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&compact, "compact", false, "print without indentation")

	return cmd
}
