package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var (
	searchDeck  string
	searchTag   string
	searchLimit int
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search cards across decks",
	Long: `Search card questions, answers and tags. Matching is
case-insensitive substring matching.

Examples:
  fc search "hello"
  fc search "verb" --deck Spanish
  fc search --tag greetings`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchDeck, "deck", "d", "", "Restrict search to one deck")
	searchCmd.Flags().StringVarP(&searchTag, "tag", "t", "", "Restrict search to cards with a tag")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum number of results (default from config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	}

	limit := searchLimit
	if limit <= 0 {
		limit = appConfig.MaxSearchResults
	}

	ctx := getContext()
	resp, err := searchService.Execute(ctx, services.SearchRequest{
		Query: query,
		Deck:  resolveDeckArg(searchDeck),
		Tag:   searchTag,
		Limit: limit,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Search failed"))
		return err
	}

	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No matching cards"))
		return nil
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Deck", Width: 16},
		{Header: "ID", Width: 12},
		{Header: "Question", Width: 45},
		{Header: "Tags", Width: 20},
	})
	for _, r := range resp.Results {
		table.AddRow([]string{
			r.Deck,
			r.Card.ID,
			r.Card.Preview(45),
			truncate(strings.Join(r.Card.Tags, ", "), 20),
		})
	}

	fmt.Println(ui.FormatTitle(fmt.Sprintf("🔍 %d match(es)", resp.Total)))
	fmt.Println()
	fmt.Print(table.Render())

	if resp.Truncated {
		fmt.Println(ui.FormatMuted(fmt.Sprintf("Showing first %d of %d. Narrow the query or raise --limit.",
			len(resp.Results), resp.Total)))
	}

	return nil
}
