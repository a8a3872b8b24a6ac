package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// displayDate formats a timestamp with the configured display format.
func displayDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(appConfig.DisplayDateFormat)
}

// displayDatePtr formats an optional timestamp.
func displayDatePtr(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return displayDate(*t)
}

// formatDuration renders a seconds count as something readable.
func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

// pickDeck interactively selects a deck with the fuzzy finder. Returns
// "" when the user cancels or no decks exist.
func pickDeck() (string, error) {
	resp, err := deckService.List(getContext(), services.ListDecksRequest{})
	if err != nil {
		return "", err
	}
	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No decks found"))
		fmt.Println(ui.FormatInfo("Create your first deck with: fc new \"My Deck\""))
		return "", nil
	}

	idx, err := fuzzyfinder.Find(
		resp.Decks,
		func(i int) string { return resp.Decks[i].Name },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			d := resp.Decks[i]
			preview := fmt.Sprintf("Deck: %s\nCards: %d\nCreated: %s\nLast studied: %s",
				d.Name, d.CardCount, displayDate(d.Created), displayDatePtr(d.LastStudied))
			if d.Description != "" {
				preview += "\n\n" + d.Description
			}
			return preview
		}),
	)
	if err != nil {
		// User cancelled (Ctrl+C or ESC)
		fmt.Println(ui.FormatInfo("Operation cancelled."))
		return "", nil
	}
	return resp.Decks[idx].Name, nil
}

// deckArgOrPick resolves the deck name from args, falling back to the
// interactive picker.
func deckArgOrPick(args []string) (string, error) {
	if len(args) > 0 {
		return resolveDeckArg(args[0]), nil
	}
	return pickDeck()
}

// confirm asks a y/n question on stdin.
func confirm(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(response)) == "y"
}
