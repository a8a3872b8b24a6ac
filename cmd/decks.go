package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var (
	decksSortBy  string
	decksReverse bool
)

// decksCmd represents the decks command
var decksCmd = &cobra.Command{
	Use:     "decks",
	Short:   "List all decks",
	Aliases: []string{"ls"},
	Long: `List all flashcard decks in a table format.

Examples:
  fc decks
  fc decks --sort cards
  fc decks --sort studied --reverse`,
	RunE: runDecks,
}

func init() {
	decksCmd.Flags().StringVar(&decksSortBy, "sort", "name", "Sort by field (name, cards, studied)")
	decksCmd.Flags().BoolVar(&decksReverse, "reverse", false, "Reverse sort order")
}

func runDecks(cmd *cobra.Command, args []string) error {
	req := services.ListDecksRequest{
		SortBy:  decksSortBy,
		Reverse: decksReverse,
	}

	ctx := getContext()
	resp, err := deckService.List(ctx, req)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list decks"))
		return err
	}

	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No decks found"))
		fmt.Println(ui.FormatInfo("Create your first deck with: fc new \"My Deck\""))
		return nil
	}

	fmt.Println(ui.FormatTitle(ui.IconDeck + " Decks"))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Name", Width: 30, Align: "left"},
		{Header: "Cards", Width: 6, Align: "right"},
		{Header: "Studies", Width: 8, Align: "right"},
		{Header: "Last Studied", Width: 14, Align: "left"},
		{Header: "Description", Width: 30, Align: "left"},
	})

	for _, deck := range resp.Decks {
		table.AddRow([]string{
			truncate(deck.Name, 30),
			fmt.Sprintf("%d", deck.CardCount),
			fmt.Sprintf("%d", deck.TotalStudies),
			displayDatePtr(deck.LastStudied),
			truncate(deck.Description, 30),
		})
	}

	fmt.Print(table.Render())
	fmt.Println()
	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d decks", resp.Total)))

	return nil
}
