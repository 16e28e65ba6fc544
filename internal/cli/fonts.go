package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/guidecard/pkg/fonts"
)

// fontsCommand lists the selectable families.
func (c *CLI) fontsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "List the selectable font families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fontsTable(cfg.Font.Family))
			if cfg.Font.Emoji == "" {
				printDetail("emoji: built-in stickers (set font.emoji or GUIDECARD_EMOJI_FONT for glyphs)")
			} else {
				printDetail("emoji: %s", cfg.Font.Emoji)
			}
			return nil
		},
	}
}

// fontsTable renders the family list, marking current as the default.
func fontsTable(current string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("FAMILY", "LOOK", "DEFAULT").
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Inherit(StyleTitle)
			}
			return style
		})
	for _, f := range fonts.Families() {
		mark := ""
		if f.Name == current {
			mark = iconSuccess
		}
		t.Row(f.Name, f.Label, mark)
	}
	return t.String()
}
