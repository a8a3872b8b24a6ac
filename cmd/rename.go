package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var renameCmd = &cobra.Command{
	Use:   "rename <old-name> <new-name>",
	Short: "Rename a deck",
	Long: `Rename a deck. Cards, statistics and session history move with it.

Examples:
  fc rename Spanish Español`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	oldName := resolveDeckArg(args[0])
	newName := args[1]

	ctx := getContext()
	err := deckService.Rename(ctx, services.RenameDeckRequest{
		OldName: oldName,
		NewName: newName,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to rename deck"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Deck renamed."))
	fmt.Println(ui.RenderKeyValue("From", oldName))
	fmt.Println(ui.RenderKeyValue("To", newName))

	return nil
}
