package orders

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/fieldservice/internal/model"
	"github.com/nhle/fieldservice/internal/seed"
)

// DateLayout is the format used for order dates set by the store.
const DateLayout = "02-01-2006"

const untitledOrder = "Untitled Request"

// State is the complete order state of the application. Reducers never
// modify a State in place; they return a new one.
type State struct {
	// Orders holds every work order, most recent first.
	Orders []model.WorkOrder

	// Selected is a snapshot of the order open in the detail view, or nil.
	Selected *model.WorkOrder

	// View is the list screen currently shown.
	View model.View
}

// CreateOrderInput carries the fields collected by the create form.
type CreateOrderInput struct {
	Type        model.OrderType
	Customer    *model.Customer
	Title       string
	Description string
	Engineer    *model.Engineer
	Attachments []string
	Date        string
}

// Env supplies ids, time and service item batches to the reducers.
type Env struct {
	NewID     func() string
	Now       func() time.Time
	Items     seed.Generator
	ItemCount int
}

// DefaultEnv returns an Env backed by random UUIDs and the wall clock.
func DefaultEnv(items seed.Generator, itemCount int) Env {
	return Env{
		NewID:     uuid.NewString,
		Now:       time.Now,
		Items:     items,
		ItemCount: itemCount,
	}
}

func (e Env) newID() string {
	if e.NewID == nil {
		return uuid.NewString()
	}
	return e.NewID()
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// ReduceCreateOrder returns s with a new order prepended. The selection is
// cleared and the view follows the new order's type. A missing customer
// leaves s untouched and returns ErrCustomerRequired.
func ReduceCreateOrder(s State, in CreateOrderInput, env Env) (State, model.WorkOrder, error) {
	if in.Customer == nil {
		return s, model.WorkOrder{}, ErrCustomerRequired
	}

	now := env.now()
	prefix := model.PrefixWorkOrder
	if in.Type == model.OrderTypeAnnualService {
		prefix = model.PrefixAnnualService
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = untitledOrder
	}
	date := in.Date
	if date == "" {
		date = now.Format(DateLayout)
	}

	order := model.WorkOrder{
		ID:          env.newID(),
		JobNumber:   NextJobNumber(s.Orders, prefix, now.Year()),
		Customer:    *in.Customer,
		Title:       title,
		Description: in.Description,
		Date:        date,
		Priority:    model.PriorityNone,
		Status:      model.OrderStatusNew,
		Attachments: slices.Clone(in.Attachments),
	}
	if in.Engineer != nil {
		eng := in.Engineer.Clone()
		order.AssignedEngineer = &eng
	}

	switch in.Type {
	case model.OrderTypeAnnualService:
		var items []model.ServiceItem
		if env.Items != nil {
			items = env.Items.ServiceItems(env.ItemCount)
		}
		if items == nil {
			items = []model.ServiceItem{}
		}
		order.Variant = model.AnnualService{Items: items}
	case model.OrderTypeRegular:
		order.Variant = model.RegularWork{}
	default:
		order.Variant = model.RegularWork{Untyped: true}
	}

	next := State{
		Orders:   prepend(order, s.Orders),
		Selected: nil,
		View:     model.ViewFor(order.Type()),
	}
	return next, order, nil
}

// ReduceCreateFollowUp returns s with a high-priority follow-up order built
// from items and linked to the parent. The link is recorded on the stored
// parent and on the selected snapshot when it is the same order.
func ReduceCreateFollowUp(
	s State,
	parentID string,
	items []model.ServiceItem,
	env Env,
) (State, model.WorkOrder, error) {
	idx := indexOf(s.Orders, parentID)
	if idx < 0 {
		return s, model.WorkOrder{}, fmt.Errorf("%w: %s", ErrOrderNotFound, parentID)
	}
	parent := s.Orders[idx]
	now := env.now()

	followUp := model.WorkOrder{
		ID:          env.newID(),
		JobNumber:   NextJobNumber(s.Orders, model.PrefixFollowUp, now.Year()),
		Customer:    parent.Customer,
		Title:       FollowUpTitle(parent, len(items)),
		Description: FollowUpDescription(parent, items),
		Date:        now.Format(DateLayout),
		Priority:    model.PriorityHigh,
		Status:      model.OrderStatusNew,
		Attachments: []string{},
		Variant:     model.RegularWork{},
	}

	orders := make([]model.WorkOrder, 0, len(s.Orders)+1)
	orders = append(orders, followUp)
	for i, o := range s.Orders {
		if i == idx {
			o.FollowUpIDs = appendID(o.FollowUpIDs, followUp.ID)
		}
		orders = append(orders, o)
	}

	selected := s.Selected
	if selected != nil && selected.ID == parentID {
		snap := *selected
		snap.FollowUpIDs = appendID(snap.FollowUpIDs, followUp.ID)
		selected = &snap
	}

	next := State{Orders: orders, Selected: selected, View: s.View}
	return next, followUp, nil
}

// ReduceSelect returns s with the order id opened in the detail view.
func ReduceSelect(s State, id string) (State, error) {
	idx := indexOf(s.Orders, id)
	if idx < 0 {
		return s, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	snap := s.Orders[idx]
	s.Selected = &snap
	return s, nil
}

// ReduceNavigate returns s showing view with no order selected.
func ReduceNavigate(s State, view model.View) State {
	s.View = view
	s.Selected = nil
	return s
}

// FollowUpTitle returns the title of a follow-up created from n issues.
func FollowUpTitle(parent model.WorkOrder, n int) string {
	noun := "Issues"
	if n == 1 {
		noun = "Issue"
	}
	return fmt.Sprintf("Follow-up: %d %s from %s", n, noun, parent.Title)
}

// FollowUpDescription lists each item with its serial number and the
// engineer's comment.
func FollowUpDescription(parent model.WorkOrder, items []model.ServiceItem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Follow-up required for the following items from %s:\n\n", parent.JobNumber)

	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		comment := item.EngineerComments
		if comment == "" {
			comment = "Not specified"
		}
		fmt.Fprintf(&sb, "• %s (SN: %s)\n  Issue: %s", item.Name, item.SerialNumber, comment)
	}

	return sb.String()
}

// NextJobNumber returns the next "{prefix}-{year}-{NNN}" code after the
// highest sequence already used for that prefix and year.
func NextJobNumber(orders []model.WorkOrder, prefix string, year int) string {
	yearStr := strconv.Itoa(year)
	highest := 0

	for _, o := range orders {
		parts := strings.SplitN(o.JobNumber, "-", 3)
		if len(parts) != 3 || parts[0] != prefix || parts[1] != yearStr {
			continue
		}
		seq, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}

	return fmt.Sprintf("%s-%d-%03d", prefix, year, highest+1)
}

func indexOf(orders []model.WorkOrder, id string) int {
	for i, o := range orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func prepend(order model.WorkOrder, orders []model.WorkOrder) []model.WorkOrder {
	out := make([]model.WorkOrder, 0, len(orders)+1)
	out = append(out, order)
	return append(out, orders...)
}

// appendID appends to a copy so snapshots never share a backing array.
func appendID(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id)
}
