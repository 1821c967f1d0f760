package orderlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fieldservice/internal/derive"
	"github.com/nhle/fieldservice/internal/model"
	"github.com/nhle/fieldservice/internal/theme"
)

// OrderItem wraps a model.WorkOrder so it can be used in a bubbles/list.
type OrderItem struct {
	Order model.WorkOrder
}

// FilterValue returns the string used for fuzzy filtering.
func (i OrderItem) FilterValue() string {
	return i.Order.JobNumber + " " + i.Order.Title + " " + i.Order.Customer.CompanyName
}

// Title returns the order title for the list.
func (i OrderItem) Title() string { return i.Order.Title }

// Description returns a short summary line for the list.
func (i OrderItem) Description() string {
	return strings.Join([]string{
		i.Order.JobNumber,
		i.Order.Customer.CompanyName,
		i.Order.Date,
	}, " | ")
}

// OrderDelegate implements list.ItemDelegate for rendering order rows.
type OrderDelegate struct {
	// Annual hides the priority column and shows inspection progress.
	Annual bool
}

// Height returns the number of lines each item takes.
func (d OrderDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d OrderDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d OrderDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list item line.
func (d OrderDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	oi, ok := item.(OrderItem)
	if !ok {
		return
	}

	line := d.renderLine(oi.Order)
	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// renderLine builds the unstyled row for an order.
func (d OrderDelegate) renderLine(o model.WorkOrder) string {
	jobNumber := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Width(12).
		Render(o.JobNumber)

	parts := []string{
		jobNumber,
		theme.CustomerBadge(o.Customer),
		o.Customer.CompanyName,
		"·",
		o.Title,
	}

	if d.Annual {
		stats := derive.Stats(o.ServiceItems())
		parts = append(parts, theme.DimmedStyle.Render(fmt.Sprintf(
			"%d%% (%d/%d)", stats.ProgressPercent, stats.Fixed, stats.Total)))
	} else {
		parts = append(parts, theme.PriorityStyle(o.Priority).Render(o.Priority.String()))
	}

	parts = append(parts,
		theme.EngineerBadge(o.AssignedEngineer),
		theme.DimmedStyle.Render(o.Date),
	)

	if n := len(o.FollowUpIDs); n > 0 {
		parts = append(parts, theme.DimmedStyle.Render(fmt.Sprintf("↳%d", n)))
	}

	return strings.Join(parts, " ")
}
