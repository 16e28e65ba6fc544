package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/guidecard/pkg/export"
)

// generateCommand composes a card and saves it into the output directory.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags     cardFlags
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "generate [text]",
		Short: "Generate a card as PNG, or GIF with the dynamic style",
		Example: `  guidecard generate "wechat_id" --style lines,emoji
  guidecard generate --text "abc123" --top "add me" --style lines,emoji,dynamic -o cards/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if outputDir == "" {
				outputDir = cfg.Export.OutputDir
			}
			opts, err := flags.options(cmd, args, cfg)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cfg)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			var spin *Spinner
			if opts.Styles.Dynamic {
				spin = newSpinner(ctx, fmt.Sprintf("Capturing %d frames...", export.FrameCount))
				spin.Start()
			}
			dl := export.DirDownloader{Dir: outputDir}
			res, err := runner.Execute(ctx, opts, dl)
			if spin != nil {
				spin.Finish(err)
			}
			if err != nil {
				return err
			}

			prog.done("Generated card")
			printSuccess("Saved %s", StyleHighlight.Render(res.Export.Filename))
			printFile(dl.Path(res.Export.Filename))
			printStats(len(res.Tree.Chars), len(res.Tree.Lines), len(res.Tree.Emoji), res.Export.Frames)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory to save the card in (default from config)")

	return cmd
}
