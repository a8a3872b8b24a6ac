package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var (
	editQuestion      string
	editAnswer        string
	editTags          []string
	editQuestionImage string
	editAnswerImage   string
	editRmQuestionImg bool
	editRmAnswerImg   bool
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <deck> <card-id>",
	Short: "Edit a card",
	Long: `Edit the fields of an existing card. Only the flags you pass are
changed; everything else stays as it is.

Examples:
  fc edit Spanish a1b2c3d4e5 -q "new question"
  fc edit Spanish a1b2c3d4e5 --tags verbs,present
  fc edit Spanish a1b2c3d4e5 --answer-image chart.png
  fc edit Spanish a1b2c3d4e5 --remove-question-image`,
	Args: cobra.ExactArgs(2),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editQuestion, "question", "q", "", "New question text")
	editCmd.Flags().StringVarP(&editAnswer, "answer", "a", "", "New answer text")
	editCmd.Flags().StringSliceVar(&editTags, "tags", []string{}, "Replace the card's tags (comma-separated)")
	editCmd.Flags().StringVar(&editQuestionImage, "question-image", "", "Replace the question image")
	editCmd.Flags().StringVar(&editAnswerImage, "answer-image", "", "Replace the answer image")
	editCmd.Flags().BoolVar(&editRmQuestionImg, "remove-question-image", false, "Remove the question image")
	editCmd.Flags().BoolVar(&editRmAnswerImg, "remove-answer-image", false, "Remove the answer image")
}

func runEdit(cmd *cobra.Command, args []string) error {
	req := services.UpdateCardRequest{
		Deck:                resolveDeckArg(args[0]),
		ID:                  args[1],
		QuestionImagePath:   editQuestionImage,
		RemoveQuestionImage: editRmQuestionImg,
		AnswerImagePath:     editAnswerImage,
		RemoveAnswerImage:   editRmAnswerImg,
	}

	// Only fields whose flags were actually set are touched.
	if cmd.Flags().Changed("question") {
		req.Question = &editQuestion
	}
	if cmd.Flags().Changed("answer") {
		req.Answer = &editAnswer
	}
	if cmd.Flags().Changed("tags") {
		req.Tags = &editTags
	}

	ctx := getContext()
	resp, err := cardService.Update(ctx, req)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to edit card"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Card updated."))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("ID", resp.Card.ID))
	fmt.Println(ui.RenderKeyValue("Question", truncate(resp.Card.Question, 60)))
	if resp.Card.Answer != "" {
		fmt.Println(ui.RenderKeyValue("Answer", truncate(resp.Card.Answer, 60)))
	}
	if len(resp.Card.Tags) > 0 {
		fmt.Println(ui.RenderKeyValue("Tags", strings.Join(resp.Card.Tags, ", ")))
	}

	return nil
}
