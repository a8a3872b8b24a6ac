package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var deleteDeckForce bool

var deleteDeckCmd = &cobra.Command{
	Use:   "delete-deck [name]",
	Short: "Delete a deck and all its cards",
	Long: `Delete a deck together with every card it contains.

Attachments used only by the deleted cards are removed as well;
images shared with cards in other decks are kept.

Examples:
  fc delete-deck Spanish
  fc delete-deck            # pick interactively`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDeleteDeck,
}

func init() {
	deleteDeckCmd.Flags().BoolVarP(&deleteDeckForce, "force", "f", false, "Skip confirmation prompt")
}

func runDeleteDeck(cmd *cobra.Command, args []string) error {
	name, err := deckArgOrPick(args)
	if err != nil || name == "" {
		return err
	}

	ctx := getContext()
	deck, err := deckService.Get(ctx, name)
	if err != nil {
		fmt.Println(ui.FormatError("Deck not found: " + name))
		return err
	}

	if !deleteDeckForce {
		fmt.Println(ui.FormatWarning("You are about to delete:"))
		fmt.Printf("  %s %s\n", ui.StyleBold.Render(deck.Name),
			ui.StyleMuted.Render(fmt.Sprintf("(%d cards)", deck.CardCount())))
		fmt.Println()

		if !confirm(ui.StyleError.Render("Delete deck? (y/n): ")) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	resp, err := deckService.Delete(ctx, services.DeleteDeckRequest{Name: name})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to delete deck"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Deck deleted."))
	fmt.Println(ui.FormatMuted(fmt.Sprintf("Removed %d cards and %d attachments",
		resp.CardsDeleted, resp.ImagesDropped)))

	return nil
}
