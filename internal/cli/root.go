package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/guidecard/pkg/buildinfo"
	"github.com/matzehuels/guidecard/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Guidecard scatters text into noisy guidance cards",
		Long:         `Guidecard renders a short text as scattered, rotated characters over decorative lines and emoji, and saves the card as a PNG or an animated GIF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			hooks := logHooks{logger: c.Logger}
			observability.SetLayoutHooks(hooks)
			observability.SetExportHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/guidecard/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}
