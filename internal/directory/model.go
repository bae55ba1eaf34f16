package directory

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/roster/internal/editor"
	"github.com/smileynet/roster/internal/session"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// listChrome is the number of list pane lines outside the table: title,
// blank line, and the empty-list hint.
const listChrome = 3

// Model is the root Bubble Tea model for the directory TUI.
// The session is shared by pointer; all mutation happens in Update.
type Model struct {
	session *session.Session
	focus   Focus
	width   int
	height  int
	table   table.Model
	inputs  [3]textinput.Model
	help    help.Model
	status  string
}

// NewModel creates a directory Model focused on the first name input.
func NewModel(s *session.Session) Model {
	m := Model{
		session: s,
		focus:   FocusFirstName,
		table: table.New(
			table.WithColumns(columnsFor(0)),
			table.WithStyles(tableStyles(false)),
		),
		help: help.New(),
	}
	for i, f := range editor.Fields() {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "Enter " + strings.ToLower(f.Label())
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	m.refreshRows()
	m.syncInputs()
	return m
}

// Init starts the input cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages with focus-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		listWidth, formWidth := PaneWidths(msg.Width)
		m.table.SetColumns(columnsFor(listWidth - borderChrome))
		m.table.SetWidth(max(listWidth-borderChrome, 0))
		m.table.SetHeight(max(m.contentHeight()-listChrome, 3))
		for i := range m.inputs {
			m.inputs[i].Width = max(formWidth-borderChrome-2, 1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input-internal messages.
	if f, ok := m.focus.Field(); ok {
		var cmd tea.Cmd
		m.inputs[f], cmd = m.inputs[f].Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes key messages with global and focus-specific routing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m, m.setFocus(m.focus.next())
	case "shift+tab":
		return m, m.setFocus(m.focus.prev())
	}

	if m.focus == FocusList {
		return m.handleListKey(msg)
	}
	return m.handleFormKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "e", "enter":
		if len(m.table.Rows()) == 0 {
			return m, nil
		}
		out, err := m.session.Edit(m.table.Cursor() + 1)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.syncInputs()
		m.status = fmt.Sprintf("Editing %s %s", out.User.FirstName, out.User.LastName)
		return m, m.setFocus(FocusFirstName)

	case "d", "delete":
		if len(m.table.Rows()) == 0 {
			return m, nil
		}
		out, err := m.session.Delete(m.table.Cursor() + 1)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.refreshRows()
		m.status = fmt.Sprintf("Deleted %s %s", out.User.FirstName, out.User.LastName)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		out := m.session.Submit()
		m.syncInputs()
		if !out.Accepted {
			m.status = ""
			return m, nil
		}
		m.refreshRows()
		if out.Added {
			m.status = fmt.Sprintf("Added %s %s", out.User.FirstName, out.User.LastName)
		} else {
			m.status = fmt.Sprintf("Updated %s %s", out.User.FirstName, out.User.LastName)
		}
		return m, m.setFocus(FocusFirstName)

	case "esc":
		out := m.session.Cancel()
		m.syncInputs()
		if out.Abandoned {
			m.status = "Edit cancelled"
		} else {
			m.status = ""
		}
		return m, nil
	}

	f, _ := m.focus.Field()
	var cmd tea.Cmd
	m.inputs[f], cmd = m.inputs[f].Update(msg)
	// SetField only fails for unknown fields, which focus cannot produce.
	_ = m.session.Set(f, m.inputs[f].Value())
	return m, cmd
}

// setFocus moves focus, blurring the previous control.
func (m *Model) setFocus(f Focus) tea.Cmd {
	if prev, ok := m.focus.Field(); ok {
		m.inputs[prev].Blur()
	} else {
		m.table.Blur()
		m.table.SetStyles(tableStyles(false))
	}
	m.focus = f
	if field, ok := f.Field(); ok {
		return m.inputs[field].Focus()
	}
	m.table.Focus()
	m.table.SetStyles(tableStyles(true))
	return nil
}

// syncInputs copies the controller's draft into the text inputs.
func (m *Model) syncInputs() {
	d := m.session.Editor().Draft()
	for _, f := range editor.Fields() {
		if m.inputs[f].Value() != d.Get(f) {
			m.inputs[f].SetValue(d.Get(f))
		}
	}
}

// refreshRows reloads the table from the session, keeping the cursor in range.
func (m *Model) refreshRows() {
	users := m.session.Rows()
	rows := make([]table.Row, len(users))
	for i, u := range users {
		rows[i] = table.Row{u.FirstName, u.LastName, u.Phone}
	}
	cursor := m.table.Cursor()
	m.table.SetRows(rows)
	if len(rows) > 0 && cursor >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

// contentHeight returns the usable height for pane content,
// accounting for border chrome and the help bar.
func (m Model) contentHeight() int {
	h := m.height - borderChrome - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the two-pane layout with help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	listWidth, formWidth := PaneWidths(m.width)
	contentHeight := m.contentHeight()

	listStyle, formStyle := UnfocusedBorder(), FocusedBorder()
	if m.focus == FocusList {
		listStyle, formStyle = FocusedBorder(), UnfocusedBorder()
	}
	listStyle = listStyle.Width(max(listWidth-borderChrome, 0)).Height(contentHeight)
	formStyle = formStyle.Width(max(formWidth-borderChrome, 0)).Height(contentHeight)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Render(m.viewList()),
		formStyle.Render(m.viewForm(formWidth-borderChrome)),
	)
	helpView := m.help.View(HelpBindings(m.focus, m.session.Editor().SubmitLabel()))
	return lipgloss.JoinVertical(lipgloss.Left, panes, helpView)
}

// viewList renders the user table pane.
func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(titleText.Render("Users"))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	if len(m.table.Rows()) == 0 {
		b.WriteString("\n")
		b.WriteString(mutedText.Render("No users yet"))
	}
	return b.String()
}

// viewForm renders the add/edit form pane.
func (m Model) viewForm(width int) string {
	ed := m.session.Editor()
	invalid := make(map[editor.Field]bool)
	for _, f := range ed.Problems() {
		invalid[f] = true
	}

	var b strings.Builder
	b.WriteString(titleText.Render(ed.SubmitLabel()))
	b.WriteString("\n")
	for _, f := range editor.Fields() {
		label := labelText
		if invalid[f] {
			label = invalidText
		}
		b.WriteString("\n")
		b.WriteString(label.Render(f.Label()))
		b.WriteString("\n")
		b.WriteString(m.inputs[f].View())
		b.WriteString("\n")
	}

	if ed.Failed() {
		b.WriteString("\n")
		b.WriteString(alertBox.Width(max(width-2, 1)).Render(editor.AlertText))
		b.WriteString("\n")
	}

	b.WriteString("\n  [Esc] Cancel   ")
	b.WriteString(submitButton.Render("[Enter] " + ed.SubmitLabel()))

	if m.status != "" {
		b.WriteString("\n\n")
		b.WriteString(mutedText.Render(m.status))
	}
	return b.String()
}
