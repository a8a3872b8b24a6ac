package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var statsDeck string

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	Long: `Show aggregated study statistics: totals, accuracy, the current
daily streak and a seven day activity strip, plus a per-deck table.

Examples:
  fc stats
  fc stats --deck Spanish`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsDeck, "deck", "d", "", "Statistics for one deck only")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	resp, err := statsService.Execute(ctx, services.StatsRequest{Deck: resolveDeckArg(statsDeck)})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to compute statistics"))
		return err
	}

	fmt.Println(ui.FormatTitle("📊 Study Statistics"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Sessions", fmt.Sprintf("%d", resp.TotalSessions)))
	fmt.Println(ui.RenderKeyValue("Cards studied", fmt.Sprintf("%d", resp.CardsStudied)))
	fmt.Println(ui.RenderKeyValue("Cards known", fmt.Sprintf("%d", resp.CardsKnown)))
	if resp.CardsStudied > 0 {
		fmt.Println(ui.RenderKeyValue("Accuracy", ui.FormatAccuracy(resp.AverageAccuracy)))
	}
	fmt.Println(ui.RenderKeyValue("Total time", formatDuration(resp.TotalTime)))
	fmt.Println(ui.RenderKeyValue("Streak", formatStreak(resp.Streak)))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Last 7 days", renderHeatmap(resp.Heatmap)))
	fmt.Println()

	if len(resp.Decks) > 0 {
		table := ui.NewTable([]ui.TableColumn{
			{Header: "Deck", Width: 20},
			{Header: "Cards", Width: 6, Align: "right"},
			{Header: "Studies", Width: 8, Align: "right"},
			{Header: "Time", Width: 10, Align: "right"},
			{Header: "Last Studied", Width: 14},
		})
		for _, row := range resp.Decks {
			table.AddRow([]string{
				truncate(row.Deck, 20),
				fmt.Sprintf("%d", row.Cards),
				fmt.Sprintf("%d", row.Studies),
				formatDuration(row.TotalTime),
				displayDatePtr(row.LastStudied),
			})
		}
		fmt.Print(table.Render())
	}

	return nil
}

func formatStreak(days int) string {
	switch days {
	case 0:
		return "0 days"
	case 1:
		return "🔥 1 day"
	}
	return fmt.Sprintf("🔥 %d days", days)
}

// renderHeatmap draws the seven day strip, oldest day first. Cell
// brightness tracks how many cards were studied that day.
func renderHeatmap(cells []services.DayActivity) string {
	var b strings.Builder
	for _, cell := range cells {
		switch {
		case cell.Sessions == 0:
			b.WriteString(ui.StyleMuted.Render("·"))
		case cell.Cards < 10:
			b.WriteString(ui.StyleAccent.Render("▪"))
		default:
			b.WriteString(ui.StyleSuccess.Render("■"))
		}
		b.WriteString(" ")
	}
	return strings.TrimRight(b.String(), " ")
}
