package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var (
	showReveal bool
	showCopy   bool
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <deck> <card-id>",
	Short: "Show a single card",
	Long: `Show a card with its question side. Use --answer to reveal the
answer, --copy to put the answer on the clipboard.

Examples:
  fc show Spanish a1b2c3d4e5
  fc show Spanish a1b2c3d4e5 --answer
  fc show Spanish a1b2c3d4e5 --answer --copy`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVarP(&showReveal, "answer", "a", false, "Reveal the answer side")
	showCmd.Flags().BoolVarP(&showCopy, "copy", "c", false, "Copy the answer to the clipboard")
}

func runShow(cmd *cobra.Command, args []string) error {
	deckName := resolveDeckArg(args[0])

	ctx := getContext()
	card, err := cardService.Get(ctx, deckName, args[1])
	if err != nil {
		fmt.Println(ui.FormatError("Card not found"))
		return err
	}

	content := ui.StyleHeader.Render("Q: ") + card.Question
	if card.QuestionImage != "" {
		content += "\n" + describeImage(card.QuestionImage)
	}
	if showReveal || showCopy {
		content += "\n\n" + ui.StyleHeader.Render("A: ") + card.Answer
		if card.AnswerImage != "" {
			content += "\n" + describeImage(card.AnswerImage)
		}
	}
	fmt.Println(ui.StyleCardFrame.Render(content))

	if len(card.Tags) > 0 {
		tags := make([]string, len(card.Tags))
		for i, t := range card.Tags {
			tags[i] = ui.FormatTag(t)
		}
		fmt.Println(strings.Join(tags, " "))
	}
	fmt.Println(ui.FormatMuted(fmt.Sprintf("ID %s · reviewed %d times · modified %s",
		card.ID, card.ReviewCount, displayDate(card.Modified))))

	if showCopy {
		if err := clipboard.WriteAll(card.Answer); err != nil {
			fmt.Println(ui.FormatWarning("Failed to copy to clipboard: " + err.Error()))
		} else {
			fmt.Println(ui.FormatSuccess("Answer copied to clipboard"))
		}
	}

	return nil
}

// describeImage renders an attachment line with decoded dimensions
// when the file is readable, falling back to the bare filename.
func describeImage(name string) string {
	line := ui.IconImage + " " + name
	data, err := attachmentService.Resolve(getContext(), name)
	if err != nil {
		return ui.FormatMuted(line + " (missing)")
	}
	info, err := imageDecoder.Probe(data)
	if err != nil {
		return ui.FormatMuted(line)
	}
	return ui.FormatMuted(fmt.Sprintf("%s (%s %dx%d)", line, info.Format, info.Width, info.Height))
}
