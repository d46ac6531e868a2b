package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ScopeEntry is one browsable scope with its pre-enumerated methods.
type ScopeEntry struct {
	Name    string
	Methods []MethodEntry
}

// MethodEntry is the rendered view of one enumerated method. Doc carries
// the declaration's doc string and is often empty.
type MethodEntry struct {
	Name       string
	Doc        string
	Mangled    string
	Properties []string
}

type scopeItem struct {
	entry ScopeEntry
}

func (i scopeItem) Title() string { return i.entry.Name }
func (i scopeItem) Description() string {
	return fmt.Sprintf("%d methods", len(i.entry.Methods))
}
func (i scopeItem) FilterValue() string { return i.entry.Name }

type browserModel struct {
	scopes  list.Model
	width   int
	height  int
	focused int
}

// NewBrowserModel returns a Bubble Tea model for browsing scopes and their
// enumerated methods side by side.
func NewBrowserModel(scopes []ScopeEntry) tea.Model {
	items := make([]list.Item, 0, len(scopes))
	for _, s := range scopes {
		if s.Name == "" {
			s.Name = "(global)"
		}
		items = append(items, scopeItem{entry: s})
	}
	l := list.New(items, list.NewDefaultDelegate(), 40, 20)
	l.Title = "scopes"
	l.SetShowHelp(false)
	return &browserModel{scopes: l, width: 100, height: 30}
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.height = msg.Height
			m.scopes.SetSize(msg.Width/3, msg.Height-2)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.scopes, cmd = m.scopes.Update(msg)
	return m, cmd
}

func (m *browserModel) View() string {
	left := m.scopes.View()

	detailWidth := m.width - m.width/3 - 4
	if detailWidth < 30 {
		detailWidth = 30
	}
	right := m.renderMethods(detailWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m *browserModel) renderMethods(width int) string {
	item, ok := m.scopes.SelectedItem().(scopeItem)
	if !ok {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	docStyle := lipgloss.NewStyle().Faint(true)
	symStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	propStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(item.entry.Name))
	b.WriteString("\n\n")
	maxRows := m.height - 6
	for i, method := range item.entry.Methods {
		if maxRows > 0 && i >= maxRows {
			fmt.Fprintf(&b, "  ... %d more\n", len(item.entry.Methods)-i)
			break
		}
		b.WriteString("  ")
		b.WriteString(truncate(method.Name, width-2))
		b.WriteString("\n")
		if method.Doc != "" {
			b.WriteString("    ")
			b.WriteString(docStyle.Render(truncate(method.Doc, width-4)))
			b.WriteString("\n")
		}
		if method.Mangled != "" {
			b.WriteString("    ")
			b.WriteString(symStyle.Render(truncate(method.Mangled, width-4)))
			b.WriteString("\n")
		}
		if len(method.Properties) > 0 {
			b.WriteString("    ")
			b.WriteString(propStyle.Render(truncate(strings.Join(method.Properties, " "), width-4)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
