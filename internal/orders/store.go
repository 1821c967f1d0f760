// Package orders holds the in-memory work order state: the list of orders,
// the order open in the detail view and the list screen being shown.
//
// All mutations are pure reducers over State; Store applies them and keeps
// the current value. Store is owned by the UI loop and is not safe for
// concurrent use.
package orders

import (
	"github.com/rs/zerolog"

	"github.com/nhle/fieldservice/internal/model"
)

// Store holds the current State and applies reducers to it.
type Store struct {
	state State
	env   Env
	log   zerolog.Logger
}

// NewStore returns a store seeded with initial orders on the Work Orders
// view.
func NewStore(initial []model.WorkOrder, env Env, log zerolog.Logger) *Store {
	orders := make([]model.WorkOrder, len(initial))
	copy(orders, initial)

	return &Store{
		state: State{Orders: orders, View: model.ViewWorkOrders},
		env:   env,
		log:   log.With().Str("component", "orders").Logger(),
	}
}

// State returns the current state. Callers must treat it as read-only.
func (s *Store) State() State {
	return s.state
}

// Orders returns every order, most recent first.
func (s *Store) Orders() []model.WorkOrder {
	return s.state.Orders
}

// Selected returns the order open in the detail view.
func (s *Store) Selected() (model.WorkOrder, bool) {
	if s.state.Selected == nil {
		return model.WorkOrder{}, false
	}
	return *s.state.Selected, true
}

// View returns the list screen currently shown.
func (s *Store) View() model.View {
	return s.state.View
}

// Order looks up an order by id.
func (s *Store) Order(id string) (model.WorkOrder, bool) {
	idx := indexOf(s.state.Orders, id)
	if idx < 0 {
		return model.WorkOrder{}, false
	}
	return s.state.Orders[idx], true
}

// CreateOrder adds a new order built from in and switches to the view for
// its type.
func (s *Store) CreateOrder(in CreateOrderInput) (model.WorkOrder, error) {
	next, order, err := ReduceCreateOrder(s.state, in, s.env)
	if err != nil {
		s.log.Warn().Err(err).Msg("create order rejected")
		return model.WorkOrder{}, err
	}
	s.state = next

	s.log.Info().
		Str("order_id", order.ID).
		Str("job_number", order.JobNumber).
		Str("type", string(order.Type())).
		Int("items", len(order.ServiceItems())).
		Msg("order created")
	return order, nil
}

// CreateFollowUp adds a follow-up order for the given items of parentID.
func (s *Store) CreateFollowUp(parentID string, items []model.ServiceItem) (model.WorkOrder, error) {
	next, followUp, err := ReduceCreateFollowUp(s.state, parentID, items, s.env)
	if err != nil {
		s.log.Warn().Err(err).Str("parent_id", parentID).Msg("create follow-up rejected")
		return model.WorkOrder{}, err
	}
	s.state = next

	s.log.Info().
		Str("order_id", followUp.ID).
		Str("job_number", followUp.JobNumber).
		Str("parent_id", parentID).
		Int("items", len(items)).
		Msg("follow-up created")
	return followUp, nil
}

// Select opens the order id in the detail view.
func (s *Store) Select(id string) error {
	next, err := ReduceSelect(s.state, id)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// ClearSelection closes the detail view.
func (s *Store) ClearSelection() {
	s.state.Selected = nil
}

// Navigate switches the list screen and clears the selection.
func (s *Store) Navigate(view model.View) {
	s.state = ReduceNavigate(s.state, view)
	s.log.Debug().Str("view", string(view)).Msg("navigate")
}
