package command

import (
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/kekaadrenalin/hookedit/pkg/types"
)

type selectItem struct {
	id    string
	title string
}

type cliSelectModel struct {
	title  string
	items  []selectItem
	cursor int
	choice string
}

func webhookChoices(webhooks []types.Webhook) []selectItem {
	items := make([]selectItem, 0, len(webhooks))
	for _, w := range webhooks {
		items = append(items, selectItem{id: w.WebhookID, title: w.GetDescription()})
	}

	return items
}

// selectChoice returns the id of the picked item and exits when nothing was picked.
func selectChoice(title string, items []selectItem) string {
	m, err := tea.NewProgram(cliSelectModel{title: title, items: items}).Run()
	if err != nil {
		log.Fatalf("Unknown error: %s\n", err)
	}

	selected, ok := m.(cliSelectModel)
	if !ok || selected.choice == "" {
		log.Infoln("Good bye! :)")
		os.Exit(0)
	}

	return selected.choice
}

func (m cliSelectModel) Init() tea.Cmd { return nil }

func (m cliSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "enter":
		if len(m.items) > 0 {
			m.choice = m.items[m.cursor].id
		}
		return m, tea.Quit

	case "down", "j", "s":
		m.cursor++
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}

	case "up", "k", "w":
		m.cursor--
		if m.cursor < 0 {
			m.cursor = max(len(m.items)-1, 0)
		}
	}

	return m, nil
}

func (m cliSelectModel) View() string {
	s := strings.Builder{}
	s.WriteString(m.title + "\n\n")

	for i, item := range m.items {
		if m.cursor == i {
			s.WriteString("(•) ")
		} else {
			s.WriteString("( ) ")
		}
		s.WriteString(item.title)
		s.WriteString("\n")
	}

	s.WriteString("\n(press q to quit)\n")

	return s.String()
}
