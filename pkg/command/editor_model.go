package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kekaadrenalin/hookedit/pkg/editor"
	"github.com/kekaadrenalin/hookedit/pkg/types"
)

type focusTarget int

const (
	focusName focusTarget = iota
	focusDescription
	focusURL
	focusSecret
	focusActive
	focusEventKinds
	focusSearch
	focusPackages
	focusPayloadKind
	focusContentType
	focusTemplate
	focusSubmit
	focusCount
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("124")).Padding(0, 1)
)

// API is what the editor needs from the remote side.
type API interface {
	editor.WebhookAPI
	editor.PackageSearcher
}

type searchResultMsg struct {
	query    string
	packages []types.Package
	err      error
}

type submitDoneMsg struct {
	err error
}

type editorModel struct {
	ctx context.Context
	api API
	org string

	form   editor.Form
	focus  focusTarget
	result *editor.Result
	closed bool

	name        textinput.Model
	description textinput.Model
	url         textinput.Model
	secret      textinput.Model
	search      textinput.Model
	contentType textinput.Model
	template    textarea.Model
	spinner     spinner.Model

	eventCursor   int
	results       []types.Package
	resultCursor  int
	searchErr     error
	packageCursor int
}

func newEditorModel(ctx context.Context, api API, org string, form editor.Form) editorModel {
	m := editorModel{
		ctx:         ctx,
		api:         api,
		org:         org,
		form:        form,
		name:        newTextInput("Release notifier", form.Name()),
		description: newTextInput("", form.Description()),
		url:         newTextInput("https://example.com/hooks", form.URL()),
		secret:      newTextInput("", form.Secret()),
		search:      newTextInput("Search packages", ""),
		contentType: newTextInput(editor.DefaultContentType, form.ContentType()),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	m.template = textarea.New()
	m.template.CharLimit = 0
	m.template.ShowLineNumbers = false
	m.template.SetWidth(80)
	m.template.SetHeight(8)
	m.template.SetValue(form.Template())

	m.name.Focus()

	return m
}

func newTextInput(placeholder string, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 60
	ti.SetValue(value)

	return ti
}

func (m editorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case searchResultMsg:
		if msg.query == m.search.Value() {
			m.results = msg.packages
			m.searchErr = msg.err
			m.resultCursor = 0
		}

		return m, nil

	case submitDoneMsg:
		var result editor.Result
		m.form, result = m.form.Complete(msg.err)

		if result.Kind == editor.Success || result.Kind == editor.AuthError {
			m.result = &result
			return m, tea.Quit
		}

		return m, nil

	case spinner.TickMsg:
		if !m.form.Sending() {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m editorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.closed = true
		return m, tea.Quit

	case "ctrl+s":
		return m.submit()
	}

	if m.form.Sending() {
		return m, nil
	}

	switch msg.String() {
	case "tab":
		return m.moveFocus(1)

	case "shift+tab":
		return m.moveFocus(-1)
	}

	switch m.focus {
	case focusName, focusDescription, focusURL, focusSecret, focusContentType:
		if msg.Type == tea.KeyEnter {
			return m.moveFocus(1)
		}

	case focusActive:
		if msg.String() == " " || msg.Type == tea.KeyEnter {
			m.form = m.form.ToggleActive()
		}
		return m, nil

	case focusEventKinds:
		switch msg.String() {
		case "up", "k":
			m.eventCursor = (m.eventCursor - 1 + len(types.EventKinds)) % len(types.EventKinds)
		case "down", "j":
			m.eventCursor = (m.eventCursor + 1) % len(types.EventKinds)
		case " ", "enter":
			m.form = m.form.ToggleEventKind(types.EventKinds[m.eventCursor].Kind)
		}
		return m, nil

	case focusSearch:
		switch msg.String() {
		case "up":
			if m.resultCursor > 0 {
				m.resultCursor--
			}
			return m, nil
		case "down":
			if m.resultCursor < len(m.results)-1 {
				m.resultCursor++
			}
			return m, nil
		case "enter":
			return m.addSelectedResult()
		}

	case focusPackages:
		packages := m.form.Packages()
		switch msg.String() {
		case "up", "k":
			if m.packageCursor > 0 {
				m.packageCursor--
			}
		case "down", "j":
			if m.packageCursor < len(packages)-1 {
				m.packageCursor++
			}
		case "x", "delete", "backspace":
			if m.packageCursor < len(packages) {
				m.form = m.form.RemovePackage(packages[m.packageCursor].PackageID)
				if m.packageCursor > 0 && m.packageCursor >= len(packages)-1 {
					m.packageCursor--
				}
			}
		}
		return m, nil

	case focusPayloadKind:
		switch msg.String() {
		case " ", "enter", "left", "right", "h", "l":
			m = m.togglePayloadKind()
		}
		return m, nil

	case focusSubmit:
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m editorModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
		if m.name.Value() != m.form.Name() {
			m.form = m.form.SetName(m.name.Value())
		}
	case focusDescription:
		m.description, cmd = m.description.Update(msg)
		if m.description.Value() != m.form.Description() {
			m.form = m.form.SetDescription(m.description.Value())
		}
	case focusURL:
		m.url, cmd = m.url.Update(msg)
		if m.url.Value() != m.form.URL() {
			m.form = m.form.SetURL(m.url.Value())
		}
	case focusSecret:
		m.secret, cmd = m.secret.Update(msg)
		if m.secret.Value() != m.form.Secret() {
			m.form = m.form.SetSecret(m.secret.Value())
		}
	case focusContentType:
		m.contentType, cmd = m.contentType.Update(msg)
		if m.contentType.Value() != m.form.ContentType() {
			m.form = m.form.SetContentType(m.contentType.Value())
		}
	case focusTemplate:
		m.template, cmd = m.template.Update(msg)
		if m.template.Value() != m.form.Template() {
			m.form = m.form.SetTemplate(m.template.Value())
		}
	case focusSearch:
		previous := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if query := m.search.Value(); query != previous {
			return m, tea.Batch(cmd, m.searchPackages(query))
		}
	}

	return m, cmd
}

func (m editorModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	next := m.focus
	for {
		next = focusTarget((int(next) + delta + int(focusCount)) % int(focusCount))
		if m.focusable(next) {
			break
		}
	}

	m.name.Blur()
	m.description.Blur()
	m.url.Blur()
	m.secret.Blur()
	m.search.Blur()
	m.contentType.Blur()
	m.template.Blur()

	m.focus = next

	var cmd tea.Cmd
	switch next {
	case focusName:
		cmd = m.name.Focus()
	case focusDescription:
		cmd = m.description.Focus()
	case focusURL:
		cmd = m.url.Focus()
	case focusSecret:
		cmd = m.secret.Focus()
	case focusSearch:
		cmd = m.search.Focus()
	case focusContentType:
		cmd = m.contentType.Focus()
	case focusTemplate:
		cmd = m.template.Focus()
	}

	return m, cmd
}

// focusable skips the payload inputs while the default payload is selected and
// the package table while it is empty.
func (m editorModel) focusable(target focusTarget) bool {
	switch target {
	case focusContentType, focusTemplate:
		return m.form.PayloadKind() == types.PayloadCustom
	case focusPackages:
		return len(m.form.Packages()) > 0
	}

	return true
}

func (m editorModel) togglePayloadKind() editorModel {
	kind := types.PayloadCustom
	if m.form.PayloadKind() == types.PayloadCustom {
		kind = types.PayloadDefault
	}

	m.form = m.form.SetPayloadKind(kind)
	m.contentType.SetValue(m.form.ContentType())
	m.template.SetValue(m.form.Template())

	return m
}

func (m editorModel) addSelectedResult() (tea.Model, tea.Cmd) {
	if m.resultCursor >= len(m.results) {
		return m, nil
	}

	m.form = m.form.AddPackage(m.results[m.resultCursor])
	m.results = nil
	m.resultCursor = 0
	m.search.SetValue("")

	return m, nil
}

func (m editorModel) searchPackages(query string) tea.Cmd {
	if strings.TrimSpace(query) == "" {
		return func() tea.Msg { return searchResultMsg{query: query} }
	}

	ctx, api, exclude := m.ctx, m.api, m.form.PackageIDs()

	return func() tea.Msg {
		packages, err := api.SearchPackages(ctx, query, exclude)
		return searchResultMsg{query: query, packages: packages, err: err}
	}
}

func (m editorModel) submit() (tea.Model, tea.Cmd) {
	form, webhook, _ := m.form.Begin()
	m.form = form

	if webhook == nil {
		return m, nil
	}

	ctx, api, org, payload := m.ctx, m.api, m.org, *webhook

	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return submitDoneMsg{err: form.Send(ctx, api, payload, org)}
	})
}

func (m editorModel) View() string {
	s := strings.Builder{}

	title := "Add webhook"
	if m.form.IsEdit() {
		title = "Edit webhook"
	}
	s.WriteString(labelStyle.Render(title) + "\n")

	s.WriteString(sectionStyle.Render("Identity") + "\n")
	m.writeInput(&s, focusName, "Name (required)", m.name.View(), editor.FieldName)
	m.writeInput(&s, focusDescription, "Description", m.description.View(), "")
	m.writeInput(&s, focusURL, "Url (required)", m.url.View(), editor.FieldURL)
	s.WriteString(hintStyle.Render("A POST request will be sent to the provided URL when any of the selected events happens.") + "\n")
	m.writeInput(&s, focusSecret, "Secret", m.secret.View(), "")
	s.WriteString(hintStyle.Render("Sent in the X-ArtifactHub-Secret header of each request.") + "\n")
	s.WriteString(m.label(focusActive, "Active") + " " + checkbox(m.form.Active()) + "\n")

	s.WriteString(sectionStyle.Render("Triggers") + "\n")
	s.WriteString(m.label(focusEventKinds, "Events") + "\n")
	for i, item := range types.EventKinds {
		cursor := "  "
		if m.focus == focusEventKinds && i == m.eventCursor {
			cursor = "> "
		}
		s.WriteString(cursor + checkbox(m.form.HasEventKind(item.Kind)) + " " + item.Title + "\n")
	}

	m.writeInput(&s, focusSearch, "Packages (required)", m.search.View(), editor.FieldPackages)
	if m.searchErr != nil {
		s.WriteString(invalidStyle.Render(fmt.Sprintf("search failed: %s", m.searchErr)) + "\n")
	}
	for i, p := range m.results {
		cursor := "  "
		if m.focus == focusSearch && i == m.resultCursor {
			cursor = "+ "
		}
		s.WriteString(hintStyle.Render(cursor+p.GetDescription()) + "\n")
	}
	for i, p := range m.form.Packages() {
		cursor := "  "
		if m.focus == focusPackages && i == m.packageCursor {
			cursor = "x "
		}
		s.WriteString(fmt.Sprintf("%s%-12s %-30s %s\n", cursor, p.Kind, p.Title(), p.Publisher()))
	}

	s.WriteString(sectionStyle.Render("Payload") + "\n")
	s.WriteString(m.label(focusPayloadKind, "Kind") + " " +
		radio(m.form.PayloadKind() == types.PayloadDefault) + " Default (CloudEvents)  " +
		radio(m.form.PayloadKind() == types.PayloadCustom) + " Custom\n")

	if m.form.PayloadKind() == types.PayloadCustom {
		s.WriteString(hintStyle.Render("Custom payloads are generated using Go templates. Slack example:\n"+editor.SlackPayloadExample) + "\n")
		m.writeInput(&s, focusContentType, "Content type (required)", m.contentType.View(), editor.FieldContentType)
		m.writeInput(&s, focusTemplate, "Template (required)", m.template.View(), editor.FieldTemplate)
		s.WriteString(labelStyle.Render("Variables reference") + "\n")
		for _, variable := range editor.TemplateVariables {
			s.WriteString(hintStyle.Render(fmt.Sprintf("  %-24s %s", variable.Name, variable.Description)) + "\n")
		}
	} else {
		s.WriteString(hintStyle.Render("Content type: "+editor.DefaultContentType) + "\n")
		s.WriteString(hintStyle.Render(m.form.Template()) + "\n")
	}

	s.WriteString("\n")
	if m.form.APIError() != "" {
		s.WriteString(bannerStyle.Render(m.form.APIError()) + "\n")
	}

	button := "[ " + m.form.SubmitLabel() + " ]"
	if m.form.Sending() {
		button = m.spinner.View() + " " + m.form.SubmitLabel()
	}
	s.WriteString(m.label(focusSubmit, button) + "\n")

	s.WriteString(hintStyle.Render("\n(tab to move, space to toggle, ctrl+s to save, esc to quit)") + "\n")

	return s.String()
}

func (m editorModel) writeInput(s *strings.Builder, target focusTarget, label string, input string, field string) {
	s.WriteString(m.label(target, label) + "\n" + input + "\n")

	if field == "" {
		return
	}

	if hint := m.form.FieldError(field); hint != "" {
		s.WriteString(invalidStyle.Render(hint) + "\n")
	}
}

func (m editorModel) label(target focusTarget, text string) string {
	if m.focus == target {
		return focusedStyle.Render(text)
	}

	return labelStyle.Render(text)
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}

	return "[ ]"
}

func radio(selected bool) string {
	if selected {
		return "(•)"
	}

	return "( )"
}
