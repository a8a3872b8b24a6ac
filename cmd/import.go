package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var importName string

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a deck from a JSON file",
	Long: `Read a deck exported by 'fc export' and add it to this vault.
The deck name must not already exist; use --name to import under a
different one. Image references whose files are not in this vault are
dropped.

Examples:
  fc import spanish.json
  fc import spanish.json --name "Spanish (copy)"`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importName, "name", "n", "", "Import under a different deck name")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	resp, err := exportService.Import(ctx, services.ImportRequest{Path: args[0], Name: importName})
	if err != nil {
		fmt.Println(ui.FormatError("Import failed"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Deck imported!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Deck", resp.Deck))
	fmt.Println(ui.RenderKeyValue("Cards", fmt.Sprintf("%d", resp.Cards)))
	if resp.DroppedImages > 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("%d image reference(s) dropped (files not in this vault)", resp.DroppedImages)))
	}
	fmt.Println()
	fmt.Println(ui.FormatInfo("Study it with: fc study \"" + resp.Deck + "\""))

	return nil
}
