package cmd

import (
	"fmt"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var removeForce bool

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <deck> [card-id]",
	Short: "Remove a card from a deck",
	Long: `Remove a card. Without a card id, pick one interactively.

Attachments used only by the removed card are deleted as well.

Examples:
  fc remove Spanish a1b2c3d4e5
  fc remove Spanish`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip confirmation prompt")
}

func runRemove(cmd *cobra.Command, args []string) error {
	deckName := resolveDeckArg(args[0])
	ctx := getContext()

	var cardID string
	if len(args) > 1 {
		cardID = args[1]
	} else {
		deck, err := deckService.Get(ctx, deckName)
		if err != nil {
			fmt.Println(ui.FormatError("Deck not found: " + deckName))
			return err
		}
		if deck.CardCount() == 0 {
			fmt.Println(ui.FormatWarning("No cards in deck: " + deckName))
			return nil
		}

		idx, err := fuzzyfinder.Find(
			deck.Cards,
			func(i int) string { return deck.Cards[i].Preview(60) },
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				c := deck.Cards[i]
				return fmt.Sprintf("Q: %s\n\nA: %s", c.Question, c.Answer)
			}),
		)
		if err != nil {
			fmt.Println(ui.FormatInfo("Operation cancelled."))
			return nil
		}
		cardID = deck.Cards[idx].ID
	}

	card, err := cardService.Get(ctx, deckName, cardID)
	if err != nil {
		fmt.Println(ui.FormatError("Card not found"))
		return err
	}

	if !removeForce {
		fmt.Println(ui.FormatWarning("You are about to delete:"))
		fmt.Printf("  %s %s\n", ui.StyleBold.Render(card.Preview(60)), ui.StyleMuted.Render("("+card.ID+")"))
		fmt.Println()

		if !confirm(ui.StyleError.Render("Delete card? (y/n): ")) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := cardService.Delete(ctx, services.DeleteCardRequest{Deck: deckName, ID: cardID}); err != nil {
		fmt.Println(ui.FormatError("Failed to delete card"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Card deleted."))
	return nil
}
