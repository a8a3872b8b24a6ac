package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

// tagsCmd represents the tags command
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tags in use",
	Long: `List every tag across all decks with the number of cards
carrying it, most used first.`,
	Args: cobra.NoArgs,
	RunE: runTags,
}

func runTags(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	resp, err := tagService.List(ctx)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list tags"))
		return err
	}

	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No tags yet"))
		fmt.Println(ui.FormatInfo("Tag cards with: fc add <deck> --tags a,b"))
		return nil
	}

	fmt.Println(ui.FormatTitle(fmt.Sprintf("%s Tags (%d)", ui.IconTag, resp.Total)))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Tag", Width: 24},
		{Header: "Cards", Width: 6, Align: "right"},
	})
	for _, t := range resp.Tags {
		table.AddRow([]string{ui.FormatTag(t.Tag), fmt.Sprintf("%d", t.Count)})
	}
	fmt.Print(table.Render())

	return nil
}
