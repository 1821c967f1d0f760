package orderform

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/nhle/fieldservice/internal/ai"
	"github.com/nhle/fieldservice/internal/model"
	"github.com/nhle/fieldservice/internal/orders"
	"github.com/nhle/fieldservice/internal/store"
	"github.com/nhle/fieldservice/internal/theme"
)

// OrderSubmittedMsg is dispatched when the form is completed.
type OrderSubmittedMsg struct {
	Input orders.CreateOrderInput
}

// FormCancelMsg is dispatched when the user cancels the form.
type FormCancelMsg struct{}

const (
	adviceHint    = "Add a title and description to get an engineer suggestion."
	adviceLoading = "Finding the best engineer..."
	suggestedMark = " ★ AI suggestion"
	lookupTimeout = 2 * time.Second
)

// engineerQuery drives the engineer options. Its fields are exported so
// huh can hash it to detect changes.
type engineerQuery struct {
	Query     string
	Suggested string
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	orderType     model.OrderType
	customerQuery string
	customerID    string
	title         string
	description   string
	engineer      engineerQuery
	engineerID    string
	attachments   string
	date          string
	advice        string
}

// Model is the Bubble Tea model for the create-order form.
type Model struct {
	form      *huh.Form
	fb        *formBindings
	catalog   store.Catalog
	scheduler *ai.Scheduler
	log       zerolog.Logger
	now       func() time.Time

	// Draft text last sent to the scheduler.
	lastTitle       string
	lastDescription string

	width  int
	height int
}

// New creates a new order form model.
func New(catalog store.Catalog, scheduler *ai.Scheduler, log zerolog.Logger, width, height int) Model {
	return Model{
		fb:        &formBindings{orderType: model.OrderTypeRegular},
		catalog:   catalog,
		scheduler: scheduler,
		log:       log,
		now:       time.Now,
		width:     width,
		height:    height,
	}
}

// StartCreate initializes the form for a new order of type t.
func (m *Model) StartCreate(t model.OrderType) tea.Cmd {
	if t == model.OrderTypeUnset {
		t = model.OrderTypeRegular
	}
	*m.fb = formBindings{
		orderType: t,
		date:      m.now().Format(orders.DateLayout),
		advice:    adviceHint,
	}
	m.lastTitle = ""
	m.lastDescription = ""

	// Invalidate anything still in flight for a previous draft.
	m.scheduler.Edit("", "")

	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the order form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if rec, ok, cmd := m.scheduler.Handle(msg); ok || cmd != nil {
		if m.scheduler.Loading() {
			m.fb.advice = adviceLoading
		}
		if ok {
			m.applyRecommendation(rec)
		}
		return m, cmd
	}

	var cmds []tea.Cmd

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return FormCancelMsg{} }
	}

	cmds = append(cmds, m.draftChanged())

	return m, tea.Batch(cmds...)
}

// draftChanged tells the scheduler about title or description edits.
func (m *Model) draftChanged() tea.Cmd {
	if m.fb.title == m.lastTitle && m.fb.description == m.lastDescription {
		return nil
	}
	m.lastTitle = m.fb.title
	m.lastDescription = m.fb.description

	cmd := m.scheduler.Edit(m.fb.title, m.fb.description)
	if !ai.Eligible(m.fb.title, m.fb.description) {
		m.fb.advice = adviceHint
		m.fb.engineer.Suggested = ""
	}
	return cmd
}

// applyRecommendation shows the suggestion without assigning it.
func (m *Model) applyRecommendation(rec ai.Recommendation) {
	m.fb.engineer.Suggested = rec.EngineerID
	m.fb.advice = rec.Reasoning
	m.log.Debug().
		Str("engineer_id", rec.EngineerID).
		Msg("engineer suggestion received")
}

// Suggested returns the id of the engineer the AI suggested, if any.
func (m Model) Suggested() string {
	return m.fb.engineer.Suggested
}

// Advice returns the advisory line shown under the engineer picker.
func (m Model) Advice() string {
	return m.fb.advice
}

// View renders the order form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Work Order") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth()).WithHeight(m.formHeight())
	}
}

func (m *Model) buildForm() *huh.Form {
	fb := m.fb
	catalog := m.catalog
	log := m.log

	typeGroup := huh.NewGroup(
		huh.NewSelect[model.OrderType]().
			Title("Order Type").
			Options(
				huh.NewOption("Regular Work Order", model.OrderTypeRegular),
				huh.NewOption("Annual Service", model.OrderTypeAnnualService),
			).
			Value(&fb.orderType),
	)

	detailsGroup := huh.NewGroup(
		huh.NewInput().
			Title("Find Customer").
			Placeholder("company or contact name").
			Value(&fb.customerQuery),
		huh.NewSelect[string]().
			Title("Customer").
			OptionsFunc(func() []huh.Option[string] {
				return customerOptions(catalog, log, fb.customerQuery)
			}, &fb.customerQuery).
			Value(&fb.customerID).
			Height(6).
			Validate(validateRequired("Customer")),
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&fb.title),
		huh.NewText().
			Title("Description").
			Placeholder("Describe the problem or scope...").
			Value(&fb.description),
		huh.NewNote().
			Title("AI Suggestion").
			DescriptionFunc(func() string { return fb.advice }, &fb.advice),
		huh.NewInput().
			Title("Find Engineer").
			Placeholder("engineer name").
			Value(&fb.engineer.Query),
		huh.NewSelect[string]().
			Title("Assigned Engineer").
			OptionsFunc(func() []huh.Option[string] {
				return engineerOptions(catalog, log, fb.engineer)
			}, &fb.engineer).
			Value(&fb.engineerID).
			Height(6),
		huh.NewInput().
			Title("Attachments").
			Placeholder("file names, comma separated").
			Value(&fb.attachments),
		huh.NewInput().
			Title("Date").
			Placeholder("defaults to today").
			Value(&fb.date),
	)

	return huh.NewForm(typeGroup, detailsGroup).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight())
}

// customerOptions lists customers matching query, led by an empty choice
// that the required validation rejects.
func customerOptions(catalog store.Catalog, log zerolog.Logger, query string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Select a customer", "")}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	var customers []model.Customer
	var err error
	if strings.TrimSpace(query) == "" {
		customers, err = catalog.GetCustomers(ctx)
	} else {
		customers, err = catalog.SearchCustomers(ctx, query)
	}
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("searching customers")
		return opts
	}
	for _, c := range customers {
		label := c.CompanyName
		if c.ContactName != "" {
			label += " (" + c.ContactName + ")"
		}
		opts = append(opts, huh.NewOption(label, c.ID))
	}
	return opts
}

// engineerOptions lists engineers matching q.Query and marks the
// suggested one.
func engineerOptions(catalog store.Catalog, log zerolog.Logger, q engineerQuery) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Unassigned", "")}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	engineers, err := catalog.SearchEngineers(ctx, q.Query)
	if err != nil {
		log.Error().Err(err).Str("query", q.Query).Msg("searching engineers")
		return opts
	}
	for _, e := range engineers {
		label := e.Name
		if len(e.Tags) > 0 {
			label += " [" + strings.Join(e.Tags, " ") + "]"
		}
		if e.ID == q.Suggested {
			label += suggestedMark
		}
		opts = append(opts, huh.NewOption(label, e.ID))
	}
	return opts
}

func (m Model) handleSubmit() tea.Cmd {
	in := m.buildInput(context.Background())
	return func() tea.Msg { return OrderSubmittedMsg{Input: in} }
}

// buildInput resolves the picked customer and engineer against the catalog.
// A customer that cannot be resolved is left nil for the store to reject.
func (m Model) buildInput(ctx context.Context) orders.CreateOrderInput {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	in := orders.CreateOrderInput{
		Type:        m.fb.orderType,
		Title:       strings.TrimSpace(m.fb.title),
		Description: strings.TrimSpace(m.fb.description),
		Attachments: parseAttachments(m.fb.attachments),
		Date:        strings.TrimSpace(m.fb.date),
	}

	if m.fb.customerID != "" {
		c, err := m.catalog.GetCustomerByID(ctx, m.fb.customerID)
		if err != nil {
			m.log.Error().Err(err).Str("customer_id", m.fb.customerID).Msg("resolving customer")
		} else {
			in.Customer = c
		}
	}

	if m.fb.engineerID != "" {
		e, err := m.catalog.GetEngineerByID(ctx, m.fb.engineerID)
		if err != nil {
			m.log.Error().Err(err).Str("engineer_id", m.fb.engineerID).Msg("resolving engineer")
		} else {
			in.Engineer = e
		}
	}

	return in
}

// parseAttachments splits a comma separated list of file names.
func parseAttachments(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
