package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var (
	studyOrder string
	studyAll   bool
)

// studyCmd represents the study command
var studyCmd = &cobra.Command{
	Use:   "study [deck]",
	Short: "Start a study session",
	Long: `Study the cards of a deck (or all decks) in the terminal.

Controls:
  Space/Enter : Reveal answer
  y           : I knew it
  n           : I did not know
  q / Esc     : End session

The session only ends when you quit; reaching the last card shows a
summary and waits. Random order is shuffled once at session start.

Examples:
  fc study Spanish
  fc study Spanish --order random
  fc study --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStudy,
}

func init() {
	studyCmd.Flags().StringVarP(&studyOrder, "order", "o", "", "Card order (sequential, random)")
	studyCmd.Flags().BoolVar(&studyAll, "all", false, "Study cards from every deck")
}

func runStudy(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	var deckName string
	if !studyAll {
		name, err := deckArgOrPick(args)
		if err != nil || name == "" {
			return err
		}
		deckName = name
	}

	orderValue := studyOrder
	if orderValue == "" {
		orderValue = appConfig.DefaultOrder
	}
	order, err := domain.ParseOrder(orderValue)
	if err != nil {
		return err
	}

	resp, err := studyService.Start(ctx, services.StartStudyRequest{
		Deck:  deckName,
		Order: order,
	})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to start study session"))
		return err
	}
	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("Nothing to study"))
		fmt.Println(ui.FormatInfo("Add cards with: fc add"))
		return nil
	}

	m := newStudyModel(resp.Session)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running study session: %w", err)
	}

	// The TUI recorded outcomes on the session; persist them now.
	finish, err := studyService.Finish(ctx, services.FinishStudyRequest{Session: resp.Session})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to save study session"))
		return err
	}

	record := finish.Record
	fmt.Println(ui.FormatTitle("Session complete"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Deck", record.Deck))
	fmt.Println(ui.RenderKeyValue("Cards studied", fmt.Sprintf("%d", record.CardsStudied)))
	fmt.Println(ui.RenderKeyValue("Known", fmt.Sprintf("%d", record.CardsKnown)))
	if record.CardsStudied > 0 {
		fmt.Println(ui.RenderKeyValue("Accuracy", ui.FormatAccuracy(record.Accuracy)))
	}
	fmt.Println(ui.RenderKeyValue("Duration", formatDuration(record.Duration)))

	return nil
}

// --- TUI Model ---

type studyKeyMap struct {
	Reveal key.Binding
	Knew   key.Binding
	Missed key.Binding
	Quit   key.Binding
}

func (k studyKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reveal, k.Knew, k.Missed, k.Quit}
}

func (k studyKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Reveal, k.Knew, k.Missed, k.Quit}}
}

var studyKeys = studyKeyMap{
	Reveal: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "reveal answer"),
	),
	Knew: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "knew it"),
	),
	Missed: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "didn't know"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "end session"),
	),
}

type studyModel struct {
	handle   *services.StudySessionHandle
	keys     studyKeyMap
	help     help.Model
	revealed bool
	width    int
	height   int
}

func newStudyModel(handle *services.StudySessionHandle) studyModel {
	return studyModel{
		handle: handle,
		keys:   studyKeys,
		help:   help.New(),
	}
}

func (m studyModel) Init() tea.Cmd {
	return nil
}

func (m studyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		session := m.handle.Session
		_, hasCard := session.Current()

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Reveal):
			if hasCard {
				m.revealed = true
			}

		case key.Matches(msg, m.keys.Knew):
			if hasCard && m.revealed {
				session.Record(domain.OutcomeKnew)
				m.revealed = false
			}

		case key.Matches(msg, m.keys.Missed):
			if hasCard && m.revealed {
				session.Record(domain.OutcomeMissed)
				m.revealed = false
			}
		}
	}

	return m, nil
}

func (m studyModel) View() string {
	session := m.handle.Session
	done, total := session.Progress()

	var s strings.Builder

	deckLabel := session.DeckName
	if deckLabel == "" {
		deckLabel = domain.AllDecks
	}
	s.WriteString(ui.FormatTitle(ui.IconCard + " " + deckLabel))
	s.WriteString("\n")
	s.WriteString(ui.ProgressBar(done, total, 40))
	s.WriteString(ui.FormatMuted(fmt.Sprintf("  %d/%d", done, total)))
	s.WriteString("\n\n")

	current, ok := session.Current()
	if !ok {
		// Queue exhausted: show the summary but keep the session open
		// until the user quits.
		s.WriteString(ui.FormatSuccess("All cards done!"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Accuracy so far: %s\n", ui.FormatAccuracy(session.Accuracy())))
		s.WriteString("\n")
		s.WriteString(ui.FormatMuted("Press q to end the session"))
		return s.String()
	}

	content := ui.StyleHeader.Render("Q: ") + current.Card.Question
	if current.Card.QuestionImage != "" {
		content += "\n" + ui.FormatMuted(ui.IconImage+" "+current.Card.QuestionImage)
	}
	if m.revealed {
		content += "\n\n" + ui.StyleHeader.Render("A: ") + current.Card.Answer
		if current.Card.AnswerImage != "" {
			content += "\n" + ui.FormatMuted(ui.IconImage+" "+current.Card.AnswerImage)
		}
	}
	s.WriteString(ui.StyleCardFrame.Render(content))
	s.WriteString("\n")

	if session.DeckName == "" {
		s.WriteString(ui.FormatMuted("from " + current.Deck))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	if m.revealed {
		s.WriteString(ui.FormatInfo("Did you know it? (y/n)"))
	} else {
		s.WriteString(ui.FormatMuted("Press space to reveal the answer"))
	}
	s.WriteString("\n\n")
	s.WriteString(m.help.View(m.keys))

	return s.String()
}
