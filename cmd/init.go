package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/pkg/config"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
	"github.com/kamal-hamza/fc-cli/pkg/vault"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the fc vault",
	Long: `Initialize the fc vault directory structure.

This creates the managed vault at ~/.local/share/fc/ with the following structure:
  - flashcards.json : The deck store document
  - images/         : Card attachments
  - backups/        : Timestamped backup archives
  - config.yaml     : Global configuration`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Create vault instance
	v, err := vault.New()
	if err != nil {
		fmt.Println(ui.FormatError("Failed to determine vault location"))
		return err
	}

	// Check if already initialized
	if v.Exists() {
		fmt.Println(ui.FormatWarning("Vault already initialized"))
		fmt.Println(ui.FormatMuted("Location: " + v.RootPath))
		return nil
	}

	// Initialize the vault
	fmt.Println(ui.FormatRocket("Initializing fc vault..."))
	fmt.Println()

	if err := v.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to initialize vault"))
		return err
	}

	// Create default config
	if err := config.DefaultConfig().Save(v.ConfigPath); err != nil {
		fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
		// Don't fail - config is optional
	}

	// Success message
	fmt.Println(ui.FormatSuccess("Vault initialized successfully!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Location", v.RootPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Directory structure:"))
	fmt.Println(ui.FormatMuted("  flashcards.json - Your decks and cards"))
	fmt.Println(ui.FormatMuted("  images/         - Card attachments"))
	fmt.Println(ui.FormatMuted("  backups/        - Backup archives"))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Create your first deck: fc new \"Spanish\""))
	fmt.Println(ui.FormatMuted("  2. Add a card: fc add Spanish"))
	fmt.Println(ui.FormatMuted("  3. Start studying: fc study Spanish"))

	return nil
}
