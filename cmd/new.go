package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var newDescription string

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new deck",
	Long: `Create a new flashcard deck.

Examples:
  fc new "Spanish"
  fc new "Organic Chemistry" --description "Exam prep for CHEM 301"`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "Description of the deck")
}

func runNew(cmd *cobra.Command, args []string) error {
	req := services.CreateDeckRequest{
		Name:        args[0],
		Description: newDescription,
	}

	ctx := getContext()
	resp, err := deckService.Create(ctx, req)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to create deck"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Deck created successfully!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Name", resp.Deck.Name))
	if resp.Deck.Description != "" {
		fmt.Println(ui.RenderKeyValue("Description", resp.Deck.Description))
	}
	fmt.Println()
	fmt.Println(ui.FormatInfo("Add your first card with: fc add \"" + resp.Deck.Name + "\""))

	return nil
}
