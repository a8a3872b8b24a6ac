package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var cardsTagFilter string

// cardsCmd represents the cards command
var cardsCmd = &cobra.Command{
	Use:   "cards [deck]",
	Short: "List the cards in a deck",
	Long: `List all cards in a deck in a table format.

Examples:
  fc cards Spanish
  fc cards Spanish --tag greetings
  fc cards`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCards,
}

func init() {
	cardsCmd.Flags().StringVar(&cardsTagFilter, "tag", "", "Filter cards by tag")
}

func runCards(cmd *cobra.Command, args []string) error {
	deckName, err := deckArgOrPick(args)
	if err != nil || deckName == "" {
		return err
	}

	ctx := getContext()
	deck, err := deckService.Get(ctx, deckName)
	if err != nil {
		fmt.Println(ui.FormatError("Deck not found: " + deckName))
		return err
	}

	cards := deck.Cards
	if cardsTagFilter != "" {
		var filtered []*domain.Card
		for _, c := range cards {
			if c.HasTag(cardsTagFilter) {
				filtered = append(filtered, c)
			}
		}
		cards = filtered
	}

	if len(cards) == 0 {
		if cardsTagFilter != "" {
			fmt.Println(ui.FormatWarning("No cards found with tag: " + cardsTagFilter))
		} else {
			fmt.Println(ui.FormatWarning("No cards in deck: " + deckName))
			fmt.Println(ui.FormatInfo("Add one with: fc add \"" + deckName + "\""))
		}
		return nil
	}

	fmt.Println(ui.FormatTitle(fmt.Sprintf("%s %s", ui.IconCard, deckName)))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "ID", Width: 12, Align: "left"},
		{Header: "Question", Width: 45, Align: "left"},
		{Header: "Tags", Width: 20, Align: "left"},
		{Header: "Reviews", Width: 8, Align: "right"},
		{Header: "Img", Width: 4, Align: "left"},
	})

	for _, card := range cards {
		img := ""
		if card.HasImages() {
			img = ui.IconImage
		}
		table.AddRow([]string{
			card.ID,
			card.Preview(45),
			truncate(strings.Join(card.Tags, ", "), 20),
			fmt.Sprintf("%d", card.ReviewCount),
			img,
		})
	}

	fmt.Print(table.Render())
	fmt.Println()
	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d cards", len(cards))))

	return nil
}
