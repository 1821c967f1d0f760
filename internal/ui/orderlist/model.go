package orderlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fieldservice/internal/derive"
	"github.com/nhle/fieldservice/internal/keys"
	"github.com/nhle/fieldservice/internal/model"
	"github.com/nhle/fieldservice/internal/theme"
	"github.com/nhle/fieldservice/internal/ui"
)

// SelectedOrderMsg is sent when a user opens an order.
type SelectedOrderMsg struct {
	OrderID string
}

// Model is the order list screen: one status tab at a time of the orders
// in the current view.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	view   model.View
	orders []model.WorkOrder
	counts map[model.OrderStatus]int
	tab    int
	width  int
	height int
}

// New creates a new order list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, OrderDelegate{}, width, height-2)
	l.Title = model.ViewWorkOrders.Title()
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	return Model{
		list:   l,
		keys:   k,
		view:   model.ViewWorkOrders,
		counts: derive.TabCounts(nil),
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetOrders replaces the orders shown. orders is the full order list; the
// view decides which of them are listed.
func (m *Model) SetOrders(orders []model.WorkOrder, view model.View) tea.Cmd {
	if view != m.view {
		m.list.ResetSelected()
	}
	m.view = view
	m.orders = derive.ByView(orders, view)
	m.counts = derive.TabCounts(m.orders)
	m.list.Title = view.Title()
	m.list.SetDelegate(OrderDelegate{Annual: view == model.ViewAnnualService})
	return m.refresh()
}

// SetStatus switches to the tab for status.
func (m *Model) SetStatus(status model.OrderStatus) tea.Cmd {
	for i, s := range model.OrderStatuses {
		if s == status {
			if i != m.tab {
				m.tab = i
				m.list.ResetSelected()
			}
			break
		}
	}
	return m.refresh()
}

// Status returns the status of the active tab.
func (m Model) Status() model.OrderStatus {
	return model.OrderStatuses[m.tab]
}

// CurrentView returns the list view being shown.
func (m Model) CurrentView() model.View {
	return m.view
}

// Count returns the number of orders on the tab for status.
func (m Model) Count(status model.OrderStatus) int {
	return m.counts[status]
}

// Visible returns the orders listed on the active tab.
func (m Model) Visible() []model.WorkOrder {
	items := m.list.Items()
	out := make([]model.WorkOrder, 0, len(items))
	for _, it := range items {
		if oi, ok := it.(OrderItem); ok {
			out = append(out, oi.Order)
		}
	}
	return out
}

func (m *Model) refresh() tea.Cmd {
	visible := derive.ByStatus(m.orders, m.Status())
	items := make([]list.Item, len(visible))
	for i, o := range visible {
		items[i] = OrderItem{Order: o}
	}
	return m.list.SetItems(items)
}

// Update handles messages for the order list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Select):
			item, ok := m.list.SelectedItem().(OrderItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return SelectedOrderMsg{OrderID: item.Order.ID}
			}

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(model.OrderStatuses)
			m.list.ResetSelected()
			cmd := m.refresh()
			return m, cmd

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + len(model.OrderStatuses) - 1) % len(model.OrderStatuses)
			m.list.ResetSelected()
			cmd := m.refresh()
			return m, cmd
		}
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the tab row and the orders of the active tab.
func (m Model) View() string {
	labels := make([]string, len(model.OrderStatuses))
	for i, s := range model.OrderStatuses {
		labels[i] = fmt.Sprintf("%s (%d)", s, m.counts[s])
	}
	tabs := ui.RenderTabs(labels, m.tab)

	if len(m.list.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, tabs, m.renderEmptyState())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabs, m.list.View())
}

// renderEmptyState shows guidance text when the tab has no orders.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if len(m.orders) > 0 {
		return style.Render(fmt.Sprintf("No %s orders.\nUse tab to switch status.", m.Status()))
	}

	return style.Render(fmt.Sprintf(
		"No %s yet.\n\nPress n to create one.",
		m.view.Title(),
	))
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
