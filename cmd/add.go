package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var (
	addQuestion      string
	addAnswer        string
	addTags          []string
	addQuestionImage string
	addAnswerImage   string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [deck]",
	Short: "Add a card to a deck",
	Long: `Add a flashcard to a deck. Question and answer can be given as
flags or entered interactively.

Examples:
  fc add Spanish -q "hello" -a "hola" --tags greetings
  fc add Spanish -q "What is this?" --question-image diagram.png
  fc add Spanish`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addQuestion, "question", "q", "", "Question text")
	addCmd.Flags().StringVarP(&addAnswer, "answer", "a", "", "Answer text")
	addCmd.Flags().StringSliceVar(&addTags, "tags", []string{}, "Tags for the card (comma-separated)")
	addCmd.Flags().StringVar(&addQuestionImage, "question-image", "", "Image file to attach to the question")
	addCmd.Flags().StringVar(&addAnswerImage, "answer-image", "", "Image file to attach to the answer")
}

func runAdd(cmd *cobra.Command, args []string) error {
	deckName, err := deckArgOrPick(args)
	if err != nil || deckName == "" {
		return err
	}

	question := addQuestion
	answer := addAnswer

	// Prompt for whatever the flags did not provide.
	reader := bufio.NewReader(os.Stdin)
	if question == "" {
		fmt.Print(ui.StyleInfo.Render("Question: "))
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read question: %w", err)
		}
		question = strings.TrimSpace(line)
	}
	if answer == "" && !cmd.Flags().Changed("answer") {
		fmt.Print(ui.StyleInfo.Render("Answer: "))
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		answer = strings.TrimSpace(line)
	}

	req := services.AddCardRequest{
		Deck:              deckName,
		Question:          question,
		Answer:            answer,
		Tags:              addTags,
		QuestionImagePath: addQuestionImage,
		AnswerImagePath:   addAnswerImage,
	}

	ctx := getContext()
	resp, err := cardService.Add(ctx, req)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to add card"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Card added!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("ID", resp.Card.ID))
	fmt.Println(ui.RenderKeyValue("Deck", deckName))
	fmt.Println(ui.RenderKeyValue("Question", truncate(resp.Card.Question, 60)))
	if len(resp.Card.Tags) > 0 {
		fmt.Println(ui.RenderKeyValue("Tags", strings.Join(resp.Card.Tags, ", ")))
	}
	if resp.Card.HasImages() {
		fmt.Println(ui.RenderKeyValue("Images", strings.Join(resp.Card.ImageRefs(), ", ")))
	}

	return nil
}
