package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexirank/internal/ranking"
	"github.com/abhisek/lexirank/internal/ui/components"
	"github.com/abhisek/lexirank/internal/ui/theme"
)

var ranksCmd = &cobra.Command{
	Use:   "ranks",
	Short: "List the rank tiers",
	Run: func(cmd *cobra.Command, args []string) {
		tiers := ranking.AllTiers()
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
			Headers("RANK", "TIER", "LEVELS", "")

		for _, tier := range tiers {
			levels := strconv.Itoa(tier.Rank)
			if tier.IsLegend() {
				levels = fmt.Sprintf("%d-%d", ranking.MaxRank, ranking.MaxDifficulty)
			}
			swatch := components.GradientText("          ", tier.Visual.GradientFrom, tier.Visual.GradientTo)
			t.Row(strconv.Itoa(tier.Rank), tier.Label(), levels, swatch)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.String())
	},
}
