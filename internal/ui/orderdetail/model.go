package orderdetail

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fieldservice/internal/derive"
	"github.com/nhle/fieldservice/internal/followup"
	"github.com/nhle/fieldservice/internal/keys"
	"github.com/nhle/fieldservice/internal/model"
	"github.com/nhle/fieldservice/internal/theme"
	"github.com/nhle/fieldservice/internal/ui"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// OpenOrderMsg asks the parent to open another order, such as a follow-up.
type OpenOrderMsg struct {
	OrderID string
}

// FollowUpCreatedMsg reports a follow-up order created from the selection.
type FollowUpCreatedMsg struct {
	ParentID string
	Order    model.WorkOrder
}

// FollowUpFailedMsg reports that creating a follow-up failed.
type FollowUpFailedMsg struct {
	Err error
}

// headerLines is the number of lines above the tab body.
const headerLines = 3

// Model is the order detail view component.
type Model struct {
	order    *model.WorkOrder
	orders   []model.WorkOrder
	workflow *followup.Workflow
	creator  followup.Creator
	keys     *keys.KeyMap
	viewport viewport.Model

	filter      derive.ItemFilter
	searchMode  bool
	searchInput textinput.Model
	itemCursor  int
	fuCursor    int

	width  int
	height int
}

// New creates a new detail view model. creator receives follow-up requests.
func New(creator followup.Creator, keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-headerLines)
	vp.Style = lipgloss.NewStyle()

	si := textinput.New()
	si.Placeholder = "name or serial number..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		creator:     creator,
		keys:        keys,
		viewport:    vp,
		filter:      derive.FilterAll,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetOrder shows order. orders is the full order list, used to resolve
// follow-ups. Showing the same order again keeps the tab, filter and
// selection.
func (m *Model) SetOrder(order model.WorkOrder, orders []model.WorkOrder) {
	same := m.order != nil && m.order.ID == order.ID
	m.order = &order
	m.orders = orders
	m.workflow = m.workflow.For(order.ID)

	if !same {
		m.filter = derive.FilterAll
		m.searchMode = false
		m.searchInput.Reset()
		m.itemCursor = 0
		m.fuCursor = 0
		m.viewport.GotoTop()
	}
	if !m.hasTab(m.workflow.Tab) {
		m.workflow.Tab = followup.TabOverview
	}

	m.clampCursors()
	m.viewport.SetContent(m.renderOverview())
}

// Reset forgets the shown order along with its tab, filter and selection.
// The next SetOrder starts from a fresh workflow.
func (m *Model) Reset() {
	m.order = nil
	m.orders = nil
	m.workflow = nil
	m.filter = derive.FilterAll
	m.searchMode = false
	m.searchInput.Reset()
	m.searchInput.Blur()
	m.itemCursor = 0
	m.fuCursor = 0
	m.viewport.GotoTop()
}

// Order returns the order being shown.
func (m Model) Order() (model.WorkOrder, bool) {
	if m.order == nil {
		return model.WorkOrder{}, false
	}
	return *m.order, true
}

// Workflow returns the follow-up selection state of the shown order.
func (m Model) Workflow() *followup.Workflow {
	return m.workflow
}

// Tab returns the active tab.
func (m Model) Tab() followup.Tab {
	if m.workflow == nil {
		return followup.TabOverview
	}
	return m.workflow.Tab
}

// Filter returns the active service item filter.
func (m Model) Filter() derive.ItemFilter {
	return m.filter
}

// InputActive reports whether the search input has keyboard focus.
func (m Model) InputActive() bool {
	return m.searchMode
}

// tabs returns the tabs available for the shown order.
func (m Model) tabs() []followup.Tab {
	if m.order != nil && m.order.IsAnnualService() {
		return followup.Tabs
	}
	return []followup.Tab{followup.TabOverview}
}

func (m Model) hasTab(t followup.Tab) bool {
	for _, candidate := range m.tabs() {
		if candidate == t {
			return true
		}
	}
	return false
}

// visibleItems returns the service items after filter and search.
func (m Model) visibleItems() []model.ServiceItem {
	if m.order == nil {
		return nil
	}
	return derive.FilterItems(m.order.ServiceItems(), m.filter, m.searchInput.Value())
}

func (m Model) followUps() []model.WorkOrder {
	if m.order == nil {
		return nil
	}
	return derive.FollowUps(*m.order, m.orders)
}

func (m *Model) clampCursors() {
	m.itemCursor = clamp(m.itemCursor, len(m.visibleItems()))
	m.fuCursor = clamp(m.fuCursor, len(m.followUps()))
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.order == nil {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.Tab() == followup.TabOverview {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.searchMode {
		return m.handleSearchKeys(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(keyMsg, m.keys.NextTab):
		m.cycleTab(1)
		return m, nil

	case key.Matches(keyMsg, m.keys.PrevTab):
		m.cycleTab(-1)
		return m, nil
	}

	switch m.Tab() {
	case followup.TabServiceProgress:
		return m.handleProgressKeys(keyMsg)
	case followup.TabFollowUps:
		return m.handleFollowUpKeys(keyMsg)
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) cycleTab(delta int) {
	tabs := m.tabs()
	current := 0
	for i, t := range tabs {
		if t == m.workflow.Tab {
			current = i
		}
	}
	m.workflow.Tab = tabs[(current+delta+len(tabs))%len(tabs)]
}

// handleSearchKeys processes key input while the item search has focus.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		m.searchInput.Reset()
		m.clampCursors()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.itemCursor = 0
	return m, cmd
}

// handleProgressKeys processes keys on the Service Progress tab.
func (m Model) handleProgressKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	items := m.visibleItems()

	switch {
	case key.Matches(msg, m.keys.Down):
		m.itemCursor = clamp(m.itemCursor+1, len(items))

	case key.Matches(msg, m.keys.Up):
		m.itemCursor = clamp(m.itemCursor-1, len(items))

	case key.Matches(msg, m.keys.ToggleItem):
		if len(items) > 0 {
			m.workflow.Toggle(*m.order, items[m.itemCursor].ID)
		}

	case key.Matches(msg, m.keys.SelectAll):
		m.workflow.SelectAll(*m.order)

	case key.Matches(msg, m.keys.ClearSelection):
		m.workflow.Clear()

	case key.Matches(msg, m.keys.CycleFilter):
		m.filter = m.filter.Next()
		m.itemCursor = 0

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.FollowUp):
		return m, m.submitFollowUp()
	}

	return m, nil
}

func (m Model) submitFollowUp() tea.Cmd {
	parent := *m.order
	fu, err := m.workflow.Submit(m.creator, parent)
	if errors.Is(err, followup.ErrEmptySelection) {
		return nil
	}
	if err != nil {
		return func() tea.Msg { return FollowUpFailedMsg{Err: err} }
	}
	return func() tea.Msg {
		return FollowUpCreatedMsg{ParentID: parent.ID, Order: fu}
	}
}

// handleFollowUpKeys processes keys on the Follow-up Orders tab.
func (m Model) handleFollowUpKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	fus := m.followUps()

	switch {
	case key.Matches(msg, m.keys.Down):
		m.fuCursor = clamp(m.fuCursor+1, len(fus))

	case key.Matches(msg, m.keys.Up):
		m.fuCursor = clamp(m.fuCursor-1, len(fus))

	case key.Matches(msg, m.keys.Select):
		if len(fus) == 0 {
			return m, nil
		}
		id := fus[m.fuCursor].ID
		return m, func() tea.Msg { return OpenOrderMsg{OrderID: id} }
	}

	return m, nil
}

// View renders the detail view.
func (m Model) View() string {
	if m.order == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No order selected")
	}

	var body string
	switch m.Tab() {
	case followup.TabServiceProgress:
		body = m.renderProgress()
	case followup.TabFollowUps:
		body = m.renderFollowUps()
	default:
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body)
}

func (m Model) renderHeader() string {
	o := m.order
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).
		Render(o.JobNumber + "  " + o.Title)
	status := theme.StatusStyle(o.Status).Render(string(o.Status))

	tabs := m.tabs()
	labels := make([]string, len(tabs))
	active := 0
	for i, t := range tabs {
		labels[i] = t.String()
		if t == m.Tab() {
			active = i
		}
	}
	if m.order.IsAnnualService() {
		labels[2] = fmt.Sprintf("%s (%d)", labels[2], len(m.order.FollowUpIDs))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title+" "+status,
		ui.RenderTabs(labels, active),
		"",
	)
}

// renderOverview builds the overview content string for the viewport.
func (m Model) renderOverview() string {
	if m.order == nil {
		return ""
	}

	o := m.order
	var sections []string

	field := func(label, value string) string {
		return theme.LabelStyle.Width(14).Render(label) + theme.ValueStyle.Render(value)
	}

	meta := []string{
		field("Type", string(o.Type())),
		field("Status", string(o.Status)),
	}
	if !o.IsAnnualService() {
		meta = append(meta, field("Priority", theme.PriorityStyle(o.Priority).Render(o.Priority.String())))
	}
	meta = append(meta, field("Date", o.Date))
	sections = append(sections, strings.Join(meta, "\n"))

	customer := []string{
		theme.SectionTitleStyle.Render("Customer"),
		theme.CustomerBadge(o.Customer) + " " + theme.ValueStyle.Render(o.Customer.CompanyName),
	}
	if o.Customer.ContactName != "" {
		customer = append(customer, theme.DimmedStyle.Render("Contact: "+o.Customer.ContactName))
	}
	sections = append(sections, strings.Join(customer, "\n"))

	engineer := []string{theme.SectionTitleStyle.Render("Assigned Engineer")}
	if e := o.AssignedEngineer; e != nil {
		engineer = append(engineer, theme.EngineerBadge(e)+" "+theme.ValueStyle.Render(e.Name))
		if len(e.Tags) > 0 {
			engineer = append(engineer, theme.DimmedStyle.Render(strings.Join(e.Tags, " ")))
		}
	} else {
		engineer = append(engineer, theme.DimmedStyle.Render("Unassigned"))
	}
	sections = append(sections, strings.Join(engineer, "\n"))

	desc := o.Description
	if desc == "" {
		desc = theme.DimmedStyle.Render("No description")
	}
	sections = append(sections, theme.SectionTitleStyle.Render("Description")+"\n"+
		lipgloss.NewStyle().Width(m.width-4).Render(desc))

	attachments := []string{theme.SectionTitleStyle.Render("Attachments")}
	if len(o.Attachments) == 0 {
		attachments = append(attachments, theme.DimmedStyle.Render("None"))
	}
	for _, a := range o.Attachments {
		attachments = append(attachments, "• "+a)
	}
	sections = append(sections, strings.Join(attachments, "\n"))

	if o.IsAnnualService() {
		stats := derive.Stats(o.ServiceItems())
		sections = append(sections, theme.SectionTitleStyle.Render("Service Progress")+"\n"+
			ui.ProgressBar(stats.ProgressPercent, 30)+fmt.Sprintf(" %d%%", stats.ProgressPercent))
	}

	return strings.Join(sections, "\n\n")
}

// renderProgress renders the Service Progress tab.
func (m Model) renderProgress() string {
	stats := derive.Stats(m.order.ServiceItems())

	statLine := strings.Join([]string{
		fmt.Sprintf("Total %d", stats.Total),
		theme.ItemStatusStyle(model.ItemStatusFixed).Render(fmt.Sprintf("Fixed %d", stats.Fixed)),
		theme.ItemStatusStyle(model.ItemStatusIssue).Render(fmt.Sprintf("Issues %d", stats.Issues)),
		theme.ItemStatusStyle(model.ItemStatusPending).Render(fmt.Sprintf("Pending %d", stats.Pending)),
	}, "  ")

	bar := ui.ProgressBar(stats.ProgressPercent, min(40, max(10, m.width-20))) +
		fmt.Sprintf(" %d%%", stats.ProgressPercent)

	filters := make([]string, len(derive.ItemFilters))
	active := 0
	for i, f := range derive.ItemFilters {
		filters[i] = string(f)
		if f == m.filter {
			active = i
		}
	}

	search := theme.DimmedStyle.Render("/ search")
	if m.searchMode || m.searchInput.Value() != "" {
		search = m.searchInput.View()
	}

	selection := theme.DimmedStyle.Render("space select issue · a select all")
	if m.workflow.Selecting() {
		selection = theme.ErrorStyle.Render(fmt.Sprintf(
			"%d selected · c create follow-up · u clear", m.workflow.Count()))
	}

	lines := []string{
		statLine,
		bar,
		ui.RenderTabs(filters, active) + "  " + search,
		selection,
		"",
	}

	items := m.visibleItems()
	if len(items) == 0 {
		lines = append(lines, theme.DimmedStyle.Render("No matching items"))
		return strings.Join(lines, "\n")
	}

	rows := max(1, m.height-headerLines-len(lines))
	start, end := window(m.itemCursor, len(items), rows)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderItem(items[i], i == m.itemCursor))
	}

	return strings.Join(lines, "\n")
}

// window returns the [start, end) range of n rows that keeps cursor in a
// viewport of size rows.
func window(cursor, n, rows int) (int, int) {
	if n <= rows {
		return 0, n
	}
	start := max(0, cursor-rows/2)
	end := start + rows
	if end > n {
		end = n
		start = n - rows
	}
	return start, end
}

func (m Model) renderItem(item model.ServiceItem, focused bool) string {
	check := "   "
	if item.Status == model.ItemStatusIssue {
		check = "[ ]"
		if m.workflow.IsSelected(item.ID) {
			check = "[x]"
		}
	}

	status := theme.ItemStatusStyle(item.Status).Width(8).Render(string(item.Status))
	name := lipgloss.NewStyle().Width(24).Render(item.Name)
	serial := theme.DimmedStyle.Width(16).Render(item.SerialNumber)

	line := strings.Join([]string{check, status, name, serial}, " ")
	if item.EngineerComments != "" {
		line += " " + theme.DimmedStyle.Render(item.EngineerComments)
	}
	if n := len(item.Images); n > 0 {
		line += theme.DimmedStyle.Render(fmt.Sprintf(" [%d img]", n))
	}

	if focused {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// renderFollowUps renders the Follow-up Orders tab.
func (m Model) renderFollowUps() string {
	fus := m.followUps()
	if len(fus) == 0 {
		return theme.DimmedStyle.Render(
			"No follow-up orders yet.\nSelect issue items on Service Progress and press c.")
	}

	lines := make([]string, 0, len(fus))
	for i, fu := range fus {
		line := strings.Join([]string{
			lipgloss.NewStyle().Foreground(theme.ColorGray).Width(12).Render(fu.JobNumber),
			theme.StatusStyle(fu.Status).Render(string(fu.Status)),
			fu.Title,
			theme.DimmedStyle.Render(fu.Date),
		}, " ")
		if i == m.fuCursor {
			lines = append(lines, theme.SelectedItemStyle.Render(line))
		} else {
			lines = append(lines, theme.ListItemStyle.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - headerLines
	m.searchInput.Width = width - 4
	if m.order != nil {
		m.viewport.SetContent(m.renderOverview())
	}
}
