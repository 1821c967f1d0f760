package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fieldservice/internal/theme"
)

// Action is a resolved palette command.
type Action int

const (
	ActionUnknown Action = iota
	ActionNewOrder
	ActionWorkOrders
	ActionAnnualService
	ActionHelp
	ActionQuit
)

// Command describes one palette entry.
type Command struct {
	Name    string
	Aliases []string
	Help    string
	Action  Action
}

// Commands lists every palette command in display order.
var Commands = []Command{
	{Name: "new", Aliases: []string{"create", "n"}, Help: "create a work order", Action: ActionNewOrder},
	{Name: "work orders", Aliases: []string{"wo", "work", "orders"}, Help: "show work orders", Action: ActionWorkOrders},
	{Name: "annual", Aliases: []string{"as", "annual service", "annual services"}, Help: "show annual services", Action: ActionAnnualService},
	{Name: "help", Aliases: []string{"?"}, Help: "show key bindings", Action: ActionHelp},
	{Name: "quit", Aliases: []string{"q", "exit"}, Help: "exit the application", Action: ActionQuit},
}

// Parse resolves raw palette input to an action, ignoring case and
// surrounding whitespace.
func Parse(input string) Action {
	in := strings.ToLower(strings.Join(strings.Fields(input), " "))
	if in == "" {
		return ActionUnknown
	}
	for _, c := range Commands {
		if in == c.Name {
			return c.Action
		}
		for _, alias := range c.Aliases {
			if in == alias {
				return c.Action
			}
		}
	}
	return ActionUnknown
}

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "new, work orders, annual, quit..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(suggestions())
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

func suggestions() []string {
	out := make([]string, 0, len(Commands))
	for _, c := range Commands {
		out = append(out, c.Name)
	}
	return out
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmd := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if cmd != "" {
				return m, func() tea.Msg {
					return CommandMsg(cmd)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")
	input := m.input.View()

	var lines []string
	for _, c := range Commands {
		lines = append(lines, theme.DimmedStyle.Render(c.Name+"  "+c.Help))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		input,
		"",
		strings.Join(lines, "\n"),
	)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Reset clears any partially typed command.
func (m *Model) Reset() {
	m.input.Reset()
}
