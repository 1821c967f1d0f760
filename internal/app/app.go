package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nhle/fieldservice/internal/ai"
	"github.com/nhle/fieldservice/internal/keys"
	"github.com/nhle/fieldservice/internal/model"
	"github.com/nhle/fieldservice/internal/orders"
	"github.com/nhle/fieldservice/internal/store"
	"github.com/nhle/fieldservice/internal/ui"
	"github.com/nhle/fieldservice/internal/ui/command"
	helpview "github.com/nhle/fieldservice/internal/ui/help"
	"github.com/nhle/fieldservice/internal/ui/orderdetail"
	"github.com/nhle/fieldservice/internal/ui/orderform"
	"github.com/nhle/fieldservice/internal/ui/orderlist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewForm
	ViewHelp
	ViewCommand
)

// Deps are the services the root model is built from.
type Deps struct {
	Orders      *orders.Store
	Catalog     store.Catalog
	Recommender ai.Recommender
	Config      *model.AppConfig
	Log         zerolog.Logger

	// AIEnabled reports whether an API key was found; it only affects the
	// header.
	AIEnabled bool
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the order store.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	orders       *orders.Store
	catalog      store.Catalog
	keys         *keys.KeyMap
	log          zerolog.Logger
	aiEnabled    bool

	orderList   orderlist.Model
	detail      orderdetail.Model
	form        orderform.Model
	helpView    helpview.Model
	commandView command.Model

	ready  bool
	notice string
}

// New creates a new root application model.
func New(d Deps) Model {
	k := keys.DefaultKeyMap()
	log := d.Log.With().Str("component", "app").Logger()

	debounce := ai.DefaultDebounce
	if d.Config != nil && d.Config.AI.DebounceMs > 0 {
		debounce = time.Duration(d.Config.AI.DebounceMs) * time.Millisecond
	}
	scheduler := ai.NewScheduler(d.Recommender, loadEngineers(d.Catalog, log), debounce)

	m := Model{
		currentView: ViewList,
		orders:      d.Orders,
		catalog:     d.Catalog,
		keys:        k,
		log:         log,
		aiEnabled:   d.AIEnabled,
		orderList:   orderlist.New(k, 80, 24),
		detail:      orderdetail.New(d.Orders, k, 80, 24),
		form:        orderform.New(d.Catalog, scheduler, d.Log, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
	}
	m.orderList.SetOrders(d.Orders.Orders(), d.Orders.View())
	return m
}

// loadEngineers reads the roster the AI chooses from.
func loadEngineers(catalog store.Catalog, log zerolog.Logger) []model.Engineer {
	engineers, err := catalog.GetEngineers(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("loading engineer roster")
		return nil
	}
	return engineers
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.orderList.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.orderList.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.form.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case orderlist.SelectedOrderMsg:
		cmd := m.openOrder(msg.OrderID)
		return m, cmd

	case orderdetail.OpenOrderMsg:
		cmd := m.openOrder(msg.OrderID)
		return m, cmd

	case orderdetail.BackMsg:
		m.orders.ClearSelection()
		m.detail.Reset()
		m.currentView = ViewList
		cmd := m.refreshList()
		return m, cmd

	case orderdetail.FollowUpCreatedMsg:
		m.notice = fmt.Sprintf("Created %s", msg.Order.JobNumber)
		m.refreshDetail()
		cmd := m.refreshList()
		return m, cmd

	case orderdetail.FollowUpFailedMsg:
		m.log.Error().Err(msg.Err).Msg("creating follow-up")
		m.notice = "Follow-up failed: " + msg.Err.Error()
		return m, nil

	case orderform.OrderSubmittedMsg:
		m.currentView = ViewList
		cmd := m.createOrder(msg.Input)
		return m, cmd

	case orderform.FormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(string(msg))
		return m, cmd

	case tea.KeyMsg:
		m.notice = ""

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Text inputs own every other key.
		if m.currentView == ViewForm || (m.currentView == ViewDetail && m.detail.InputActive()) {
			if m.currentView == ViewForm && msg.String() == "esc" {
				m.currentView = ViewList
				return m, nil
			}
			break
		}

		switch msg.String() {
		case "q":
			if m.currentView == ViewList {
				return m, tea.Quit
			}

		case "esc":
			if m.currentView == ViewHelp || m.currentView == ViewCommand {
				m.commandView.Reset()
				m.currentView = m.previousView
				return m, nil
			}

		case "?":
			if m.currentView == ViewCommand {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case ":":
			if m.currentView == ViewCommand {
				m.currentView = m.previousView
				return m, nil
			}
			if m.currentView == ViewHelp {
				break
			}
			m.previousView = m.currentView
			m.currentView = ViewCommand
			cmd := m.commandView.Focus()
			return m, cmd

		case "n":
			if m.currentView == ViewList {
				cmd := m.startCreate()
				return m, cmd
			}

		case "v":
			if m.currentView == ViewList {
				next := model.ViewAnnualService
				if m.orders.View() == model.ViewAnnualService {
					next = model.ViewWorkOrders
				}
				cmd := m.navigate(next)
				return m, cmd
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.orderList, cmd = m.orderList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// openOrder selects id and shows it in the detail view.
func (m *Model) openOrder(id string) tea.Cmd {
	if err := m.orders.Select(id); err != nil {
		m.log.Warn().Err(err).Str("order_id", id).Msg("opening order")
		m.notice = "Order not found"
		return nil
	}
	m.refreshDetail()
	m.previousView = ViewList
	m.currentView = ViewDetail
	return nil
}

// refreshDetail shows the store's selected order in the detail view.
func (m *Model) refreshDetail() {
	if sel, ok := m.orders.Selected(); ok {
		m.detail.SetOrder(sel, m.orders.Orders())
	}
}

func (m *Model) refreshList() tea.Cmd {
	return m.orderList.SetOrders(m.orders.Orders(), m.orders.View())
}

func (m *Model) navigate(view model.View) tea.Cmd {
	m.orders.Navigate(view)
	m.detail.Reset()
	m.currentView = ViewList
	return m.refreshList()
}

// startCreate opens the form preset to the type of the current view.
func (m *Model) startCreate() tea.Cmd {
	t := model.OrderTypeRegular
	if m.orders.View() == model.ViewAnnualService {
		t = model.OrderTypeAnnualService
	}
	m.previousView = ViewList
	m.currentView = ViewForm
	return m.form.StartCreate(t)
}

func (m *Model) createOrder(in orders.CreateOrderInput) tea.Cmd {
	order, err := m.orders.CreateOrder(in)
	if errors.Is(err, orders.ErrCustomerRequired) {
		m.notice = "A customer is required"
		return nil
	}
	if err != nil {
		m.notice = "Could not create order: " + err.Error()
		return nil
	}

	m.detail.Reset()
	m.notice = fmt.Sprintf("Created %s", order.JobNumber)
	return tea.Batch(m.refreshList(), m.orderList.SetStatus(order.Status))
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	switch command.Parse(cmd) {
	case command.ActionNewOrder:
		return m.startCreate()
	case command.ActionWorkOrders:
		return m.navigate(model.ViewWorkOrders)
	case command.ActionAnnualService:
		return m.navigate(model.ViewAnnualService)
	case command.ActionHelp:
		m.currentView = ViewHelp
		return nil
	case command.ActionQuit:
		return tea.Quit
	default:
		m.notice = fmt.Sprintf("Unknown command %q", cmd)
		return nil
	}
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Field Service", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.orderList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewForm:
		return m.form.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

func (m Model) headerStatus() string {
	aiState := "AI off"
	if m.aiEnabled {
		aiState = "AI on"
	}
	return m.orders.View().Title() + " | " + aiState
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.notice != "" {
		return m.notice
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewForm:
		return "enter next | shift+tab back | esc cancel"
	case ViewDetail:
		if m.detail.InputActive() {
			return "enter apply | esc clear"
		}
		return "esc back | tab switch tab | space select | a all | f filter | / search | c follow-up"
	default:
		return "q quit | ? help | : command | n new | v work orders/annual | tab status"
	}
}
