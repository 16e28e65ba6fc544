package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/guidecard/pkg/config"
	"github.com/matzehuels/guidecard/pkg/fonts"
	"github.com/matzehuels/guidecard/pkg/layout"
	"github.com/matzehuels/guidecard/pkg/pipeline"
)

// cardFlags holds the card inputs shared by generate and preview.
type cardFlags struct {
	top    string // caption above the main text
	text   string // main text, may also be given as the first argument
	bottom string // caption below the main text
	font   string // font family
	size   int    // font size in px, clamped to [20, 100]
	styles string // comma-separated style toggles
	seed   uint64 // 0 draws a random layout every run
}

func (f *cardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.text, "text", "", "main text to scatter")
	cmd.Flags().StringVar(&f.top, "top", "", "caption above the main text")
	cmd.Flags().StringVar(&f.bottom, "bottom", "", "caption below the main text")
	cmd.Flags().StringVar(&f.font, "font", "", "font family (see 'guidecard fonts')")
	cmd.Flags().IntVar(&f.size, "size", 0, "font size in px (20-100)")
	cmd.Flags().StringVar(&f.styles, "style", "", "styles: lines, emoji, dynamic (comma-separated)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for a reproducible layout (0 = random)")

	_ = cmd.RegisterFlagCompletionFunc("font", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return fonts.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("style", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(layout.AllStyles))
		for i, s := range layout.AllStyles {
			names[i] = string(s)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// options merges flags over the config. Flags left unset take the config
// value; an explicitly empty --style selects nothing.
func (f *cardFlags) options(cmd *cobra.Command, args []string, cfg config.Config) (pipeline.Options, error) {
	text := f.text
	if text == "" && len(args) > 0 {
		text = args[0]
	}

	styles := cfg.DefaultStyles()
	if cmd.Flags().Changed("style") {
		sel, err := layout.ParseStyles(f.styles)
		if err != nil {
			return pipeline.Options{}, err
		}
		styles = sel
	}

	opts := pipeline.Options{
		TopText:    f.top,
		MainText:   text,
		BottomText: f.bottom,
		Font:       cfg.Font.Family,
		FontSize:   cfg.Font.Size,
		Styles:     &styles,
		Seed:       f.seed,
		Canvas:     cfg.CanvasGeometry(),
	}
	if f.font != "" {
		opts.Font = f.font
	}
	if cmd.Flags().Changed("size") {
		opts.FontSize = layout.ClampFontSize(f.size)
	}
	return opts, opts.ValidateAndSetDefaults()
}
