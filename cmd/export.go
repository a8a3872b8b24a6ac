package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var exportOut string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [deck]",
	Short: "Export a deck to a JSON file",
	Long: `Write a deck to a portable JSON file that another vault can
import. Image files are not included, only their names.

Examples:
  fc export Spanish
  fc export Spanish -o spanish-backup.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default <deck>.json)")
}

func runExport(cmd *cobra.Command, args []string) error {
	deckName, err := deckArgOrPick(args)
	if err != nil || deckName == "" {
		return err
	}

	outPath := exportOut
	if outPath == "" {
		outPath = strings.ReplaceAll(strings.ToLower(deckName), " ", "_") + ".json"
	}

	ctx := getContext()
	resp, err := exportService.Export(ctx, services.ExportRequest{Deck: deckName, OutPath: outPath})
	if err != nil {
		fmt.Println(ui.FormatError("Export failed"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Deck exported!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Deck", deckName))
	fmt.Println(ui.RenderKeyValue("File", resp.Path))
	fmt.Println(ui.RenderKeyValue("Cards", fmt.Sprintf("%d", resp.Cards)))

	return nil
}
