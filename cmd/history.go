package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var (
	historyDeck  string
	historyLimit int
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent study sessions",
	Long: `Show the session log, most recent first.

Examples:
  fc history
  fc history --deck Spanish
  fc history -n 5`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&historyDeck, "deck", "d", "", "Only sessions for one deck")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of sessions to show (0 = all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	resp, err := statsService.History(ctx, services.HistoryRequest{
		Deck:  resolveDeckArg(historyDeck),
		Limit: historyLimit,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load history"))
		return err
	}

	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No study sessions yet"))
		fmt.Println(ui.FormatInfo("Start one with: fc study"))
		return nil
	}

	fmt.Println(ui.FormatTitle(fmt.Sprintf("Study History (%d sessions)", resp.Total)))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Date", Width: 16},
		{Header: "Deck", Width: 20},
		{Header: "Cards", Width: 6, Align: "right"},
		{Header: "Known", Width: 6, Align: "right"},
		{Header: "Accuracy", Width: 9, Align: "right"},
		{Header: "Duration", Width: 10, Align: "right"},
	})
	for _, rec := range resp.Records {
		table.AddRow([]string{
			rec.Date.Local().Format("2006-01-02 15:04"),
			truncate(rec.Deck, 20),
			fmt.Sprintf("%d", rec.CardsStudied),
			fmt.Sprintf("%d", rec.CardsKnown),
			fmt.Sprintf("%.0f%%", rec.Accuracy*100),
			formatDuration(rec.Duration),
		})
	}
	fmt.Print(table.Render())

	if len(resp.Records) < resp.Total {
		fmt.Println(ui.FormatMuted(fmt.Sprintf("Showing %d of %d. Use -n 0 for all.",
			len(resp.Records), resp.Total)))
	}

	return nil
}
