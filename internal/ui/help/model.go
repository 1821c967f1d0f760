package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fieldservice/internal/keys"
	"github.com/nhle/fieldservice/internal/theme"
	"github.com/nhle/fieldservice/internal/ui/command"
)

// section is one titled block of key bindings.
type section struct {
	title    string
	bindings []key.Binding
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// sections groups the bindings by the screen they act on.
func (m Model) sections() []section {
	k := m.keys
	return []section{
		{"Order List", []key.Binding{k.Up, k.Down, k.Select, k.NextTab, k.PrevTab, k.NewOrder, k.SwitchView}},
		{"Order Detail", []key.Binding{k.NextTab, k.PrevTab, k.Back, k.Search, k.CycleFilter}},
		{"Follow-up Selection", []key.Binding{k.ToggleItem, k.SelectAll, k.ClearSelection, k.FollowUp}},
		{"General", []key.Binding{k.Command, k.Help, k.Quit}},
	}
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	blocks := []string{titleStyle.Render("Keyboard Shortcuts")}

	for _, s := range m.sections() {
		blocks = append(blocks,
			theme.SectionTitleStyle.Render(s.title),
			m.help.FullHelpView([][]key.Binding{s.bindings}),
			"")
	}

	blocks = append(blocks, theme.SectionTitleStyle.Render("Commands"))
	for _, c := range command.Commands {
		blocks = append(blocks,
			theme.ValueStyle.Render(":"+c.Name)+"  "+theme.DimmedStyle.Render(c.Help))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
