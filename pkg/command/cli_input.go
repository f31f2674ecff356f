package command

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

type cliInputModel struct {
	title     string
	textInput textinput.Model
	cancelled bool
}

// NewCliInput prompts for a single value. Secret input is masked.
func NewCliInput(title string, placeholder string, charLimit int, secret bool) string {
	m, err := tea.NewProgram(newCliInputModel(title, placeholder, charLimit, secret)).Run()
	if err != nil {
		log.Fatalf("Unknown error: %s\n", err)
	}

	input, ok := m.(cliInputModel)
	if !ok || input.cancelled || input.textInput.Value() == "" {
		log.Infoln("Good bye! :)")
		os.Exit(0)
	}

	return input.textInput.Value()
}

func newCliInputModel(title string, placeholder string, charLimit int, secret bool) cliInputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = charLimit
	ti.Width = 40

	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}

	return cliInputModel{title: title, textInput: ti}
}

func (m cliInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m cliInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)

	return m, cmd
}

func (m cliInputModel) View() string {
	return fmt.Sprintf("%s\n\n%s\n\n%s\n", m.title, m.textInput.View(), "(esc to quit)")
}
