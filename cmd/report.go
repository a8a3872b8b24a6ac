package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var (
	reportOut  string
	reportDeck string
	reportDays int
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an HTML study report",
	Long: `Render the session log as an HTML chart: cards studied per day
and daily accuracy. The report is a self-contained file you can open
in a browser.

Examples:
  fc report
  fc report --deck Spanish --days 90 -o spanish.html`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "fc_report.html", "Output HTML file")
	reportCmd.Flags().StringVarP(&reportDeck, "deck", "d", "", "Report for one deck only")
	reportCmd.Flags().IntVar(&reportDays, "days", 30, "Number of days to include")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	resp, err := statsService.History(ctx, services.HistoryRequest{Deck: resolveDeckArg(reportDeck)})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to load session history"))
		return err
	}
	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No study sessions to report on"))
		return nil
	}

	type dayTotals struct {
		studied int
		known   int
	}

	cutoff := time.Now().AddDate(0, 0, -reportDays)
	byDay := make(map[string]*dayTotals)
	for _, rec := range resp.Records {
		if rec.Date.Before(cutoff) {
			continue
		}
		day := rec.Date.Local().Format("2006-01-02")
		t, ok := byDay[day]
		if !ok {
			t = &dayTotals{}
			byDay[day] = t
		}
		t.studied += rec.CardsStudied
		t.known += rec.CardsKnown
	}
	if len(byDay) == 0 {
		fmt.Println(ui.FormatWarning(fmt.Sprintf("No sessions in the last %d days", reportDays)))
		return nil
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	var cardSeries, accuracySeries []opts.LineData
	for _, day := range days {
		t := byDay[day]
		cardSeries = append(cardSeries, opts.LineData{Value: t.studied})
		accuracy := 0.0
		if t.studied > 0 {
			accuracy = float64(t.known) / float64(t.studied) * 100
		}
		accuracySeries = append(accuracySeries, opts.LineData{Value: fmt.Sprintf("%.1f", accuracy)})
	}

	title := "Study Report"
	if reportDeck != "" {
		title = "Study Report: " + reportDeck
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("Last %d days", reportDays),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	line.SetXAxis(days).
		AddSeries("Cards studied", cardSeries).
		AddSeries("Accuracy (%)", accuracySeries)

	page := components.NewPage()
	page.AddCharts(line)

	// When the report spans every deck, add a per-deck breakdown.
	if reportDeck == "" {
		deckTotals := make(map[string]int)
		for _, rec := range resp.Records {
			if rec.Date.Before(cutoff) {
				continue
			}
			deckTotals[rec.Deck] += rec.CardsStudied
		}
		deckNames := make([]string, 0, len(deckTotals))
		for name := range deckTotals {
			deckNames = append(deckNames, name)
		}
		sort.Strings(deckNames)

		var deckSeries []opts.BarData
		for _, name := range deckNames {
			deckSeries = append(deckSeries, opts.BarData{Value: deckTotals[name]})
		}

		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Cards studied per deck"}),
		)
		bar.SetXAxis(deckNames).AddSeries("Cards studied", deckSeries)
		page.AddCharts(bar)
	}

	f, err := os.Create(reportOut)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to create report file"))
		return err
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		fmt.Println(ui.FormatError("Failed to render report"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Report generated!"))
	fmt.Println(ui.RenderKeyValue("File", reportOut))
	fmt.Println(ui.RenderKeyValue("Days with activity", fmt.Sprintf("%d", len(days))))

	return nil
}
