package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var restoreForce bool

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [timestamp]",
	Short: "Restore the vault from a backup",
	Long: `Replace the current deck store with a backup. Without a
timestamp the most recent backup is used. The archive is validated
before anything is touched; a corrupt backup leaves the vault as it
was.

Examples:
  fc restore
  fc restore 20260825_141523
  fc backup --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().BoolVarP(&restoreForce, "force", "f", false, "Skip confirmation prompt")
}

func runRestore(cmd *cobra.Command, args []string) error {
	var timestamp string
	if len(args) > 0 {
		timestamp = args[0]
	}

	if !restoreForce {
		label := "the most recent backup"
		if timestamp != "" {
			label = "backup " + timestamp
		}
		fmt.Println(ui.FormatWarning("This replaces your current decks with " + label + "."))
		if !confirm(ui.StyleError.Render("Restore? (y/n): ")) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	ctx := getContext()
	resp, err := backupService.Restore(ctx, services.RestoreRequest{Timestamp: timestamp})
	if err != nil {
		fmt.Println(ui.FormatError("Restore failed"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Vault restored!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Backup", resp.Timestamp))
	fmt.Println(ui.RenderKeyValue("Decks", fmt.Sprintf("%d", resp.Decks)))
	fmt.Println(ui.RenderKeyValue("Cards", fmt.Sprintf("%d", resp.Cards)))
	fmt.Println(ui.RenderKeyValue("Images restored", fmt.Sprintf("%d", resp.ImagesRestored)))

	return nil
}
