// Package tui implements the interactive scratchpad: a text buffer plus a
// fuzzy script picker, wired to the transform engine.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/engine"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/registry"
	"github.com/sudo-give-me-coffee/Boop-GTK/internal/scripting"
)

type scriptItem struct {
	d *registry.Descriptor
}

func (i scriptItem) Title() string { return i.d.Name }
func (i scriptItem) Description() string {
	desc := i.d.Description
	if i.d.Shortcut != "" {
		if desc != "" {
			desc += "  "
		}
		desc += "[" + i.d.Shortcut + "]"
	}
	return desc
}
func (i scriptItem) FilterValue() string {
	return i.d.Name + " " + i.d.Identifier + " " + strings.Join(i.d.Tags, " ")
}

// transformDoneMsg carries the outcome of a script run back into Update.
type transformDoneMsg struct {
	out engine.Outcome
	err error
}

// Model is the Bubble Tea model for the scratchpad.
type Model struct {
	buffer  textarea.Model
	picker  list.Model
	engine  *engine.Engine
	scripts *registry.Registry

	width   int
	height  int
	picking bool

	status    string
	statusErr bool
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0ea5a4")).Background(lipgloss.Color("#0b1226")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")).Padding(0, 1)
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f87171")).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#94a3b8"))
)

// NewModel builds the scratchpad over the given registry and engine.
func NewModel(reg *registry.Registry, eng *engine.Engine) *Model {
	ta := textarea.New()
	ta.Placeholder = "Paste or type text, then press ctrl+b to pick a script..."
	ta.CharLimit = 0
	ta.Focus()

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Scripts"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	m := &Model{buffer: ta, picker: l, engine: eng, scripts: reg}
	m.refreshScripts()
	return m
}

// NewProgram constructs the tea.Program for the scratchpad.
func NewProgram(reg *registry.Registry, eng *engine.Engine) *tea.Program {
	return tea.NewProgram(NewModel(reg, eng), tea.WithAltScreen())
}

// refreshScripts rebuilds the picker items from the registry.
func (m *Model) refreshScripts() {
	all := m.scripts.All()
	items := make([]list.Item, 0, len(all))
	for _, d := range all {
		items = append(items, scriptItem{d: d})
	}
	m.picker.SetItems(items)
	if len(items) > 0 {
		m.picker.Select(0)
	}
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyH := msg.Height - 3
		if bodyH < 3 {
			bodyH = 3
		}
		m.buffer.SetWidth(msg.Width - 2)
		m.buffer.SetHeight(bodyH)
		m.picker.SetSize(msg.Width-2, bodyH)
		return m, nil

	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.updateBuffer(msg)

	case transformDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusErr = true
			return m, nil
		}
		m.buffer.SetValue(msg.out.NewText)
		m.status, m.statusErr = statusLine(msg.out)
		return m, nil
	}

	var cmd tea.Cmd
	m.buffer, cmd = m.buffer.Update(msg)
	return m, cmd
}

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		// Let esc clear an active filter before it closes the picker.
		if m.picker.FilterState() == list.Filtering {
			break
		}
		m.picking = false
		m.buffer.Focus()
		return m, nil
	case "enter":
		if m.picker.FilterState() == list.Filtering {
			break
		}
		if it, ok := m.picker.SelectedItem().(scriptItem); ok {
			m.picking = false
			m.buffer.Focus()
			return m, m.runScript(engine.Request{Identifier: it.d.Identifier})
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *Model) updateBuffer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+b":
		m.picking = true
		m.buffer.Blur()
		m.refreshScripts()
		return m, nil
	case "ctrl+x":
		m.buffer.Reset()
		m.status = ""
		m.statusErr = false
		return m, nil
	}
	// Modifier combos may be bound directly to a script.
	if strings.Contains(key, "+") {
		if d := m.scripts.FindByShortcut(key); d != nil {
			return m, m.runScript(engine.Request{Shortcut: key})
		}
	}
	var cmd tea.Cmd
	m.buffer, cmd = m.buffer.Update(msg)
	return m, cmd
}

// runScript executes the transform off the update loop. The buffer
// snapshot travels with the request so a slow script races nothing.
func (m *Model) runScript(req engine.Request) tea.Cmd {
	req.FullText = m.buffer.Value()
	return func() tea.Msg {
		out, err := m.engine.Transform(context.Background(), req)
		return transformDoneMsg{out: out, err: err}
	}
}

// statusLine folds an outcome's notifications into one status bar line.
func statusLine(out engine.Outcome) (string, bool) {
	for _, n := range out.Result.Notifications {
		if n.Severity == scripting.SeverityError {
			return n.Message, true
		}
	}
	if len(out.Result.Notifications) > 0 {
		return out.Result.Notifications[0].Message, false
	}
	if out.Script != nil {
		return fmt.Sprintf("%s · %s", out.Script.Name, out.Duration.Round(time.Millisecond)), false
	}
	return "", false
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Boop-GTK scratchpad"))
	b.WriteString("\n")

	if m.picking {
		b.WriteString(m.picker.View())
	} else {
		b.WriteString(m.buffer.View())
	}
	b.WriteString("\n")

	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("ctrl+b scripts · ctrl+x clear · ctrl+c quit"))
	return b.String()
}
