package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var attachSide string

// attachCmd represents the attach command
var attachCmd = &cobra.Command{
	Use:   "attach <deck> <card-id> <image-file>",
	Short: "Attach an image to a card",
	Long: `Attach an image file to one side of a card. The file is copied
into the vault's images directory under a managed name; the original
is left untouched.

Examples:
  fc attach Spanish a1b2c3d4e5 diagram.png
  fc attach Spanish a1b2c3d4e5 chart.jpg --side answer`,
	Args: cobra.ExactArgs(3),
	RunE: runAttach,
}

func init() {
	attachCmd.Flags().StringVarP(&attachSide, "side", "s", "question", "Card side to attach to (question, answer)")
}

func runAttach(cmd *cobra.Command, args []string) error {
	deckName := resolveDeckArg(args[0])
	cardID := args[1]
	imagePath := args[2]

	req := services.UpdateCardRequest{
		Deck: deckName,
		ID:   cardID,
	}
	switch attachSide {
	case "question":
		req.QuestionImagePath = imagePath
	case "answer":
		req.AnswerImagePath = imagePath
	default:
		return fmt.Errorf("invalid side %q (must be question or answer)", attachSide)
	}

	ctx := getContext()
	resp, err := cardService.Update(ctx, req)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to attach image"))
		return err
	}

	name := resp.Card.QuestionImage
	if attachSide == "answer" {
		name = resp.Card.AnswerImage
	}

	fmt.Println(ui.FormatSuccess("Image attached!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Card", resp.Card.ID))
	fmt.Println(ui.RenderKeyValue("Side", attachSide))
	fmt.Println(ui.RenderKeyValue("Stored as", name))
	fmt.Println(ui.RenderKeyValue("Path", attachmentService.Path(name)))

	// Try to write to clipboard (non-blocking if fails)
	if err := clipboard.WriteAll(name); err != nil {
		fmt.Println(ui.FormatMuted("(Clipboard access failed, please copy manually)"))
	} else {
		fmt.Println(ui.FormatMuted("(Filename copied to clipboard)"))
	}

	return nil
}
