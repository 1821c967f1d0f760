package orderlist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/fieldservice/internal/keys"
	"github.com/nhle/fieldservice/internal/model"
)

func order(id string, status model.OrderStatus, v model.Variant) model.WorkOrder {
	return model.WorkOrder{
		ID:        id,
		JobNumber: "JOB-" + id,
		Title:     "Order " + id,
		Status:    status,
		Priority:  model.PriorityHigh,
		Customer:  model.Customer{ID: "c1", CompanyName: "Acme Fitness", LogoInitial: "A"},
		Variant:   v,
	}
}

func fixtures() []model.WorkOrder {
	return []model.WorkOrder{
		order("w1", model.OrderStatusNew, model.RegularWork{}),
		order("w2", model.OrderStatusNew, model.RegularWork{Untyped: true}),
		order("w3", model.OrderStatusOngoing, model.RegularWork{}),
		order("a1", model.OrderStatusNew, model.AnnualService{Items: []model.ServiceItem{
			model.PendingItem("i1", "Treadmill", "SN-1"),
		}}),
	}
}

func ids(orders []model.WorkOrder) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func TestSetOrders_FiltersByViewAndTab(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)
	m.SetOrders(fixtures(), model.ViewWorkOrders)

	assert.Equal(t, model.OrderStatusNew, m.Status())
	assert.Equal(t, []string{"w1", "w2"}, ids(m.Visible()))
	assert.Equal(t, 2, m.Count(model.OrderStatusNew))
	assert.Equal(t, 1, m.Count(model.OrderStatusOngoing))
	assert.Equal(t, 0, m.Count(model.OrderStatusHistory))

	m.SetOrders(fixtures(), model.ViewAnnualService)
	assert.Equal(t, model.ViewAnnualService, m.CurrentView())
	assert.Equal(t, []string{"a1"}, ids(m.Visible()))
}

func TestUpdate_TabCycling(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)
	m.SetOrders(fixtures(), model.ViewWorkOrders)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.OrderStatusPending, m.Status())
	assert.Empty(t, m.Visible())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.OrderStatusOngoing, m.Status())
	assert.Equal(t, []string{"w3"}, ids(m.Visible()))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, model.OrderStatusHistory, m.Status(), "wraps around")

	m.SetStatus(model.OrderStatusNew)
	assert.Equal(t, model.OrderStatusNew, m.Status())
}

func TestUpdate_EnterOpensSelectedOrder(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 30)
	m.SetOrders(fixtures(), model.ViewWorkOrders)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectedOrderMsg{OrderID: "w1"}, cmd())

	m.SetStatus(model.OrderStatusHistory)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "empty tab opens nothing")
}

func TestRenderLine_PriorityHiddenForAnnualService(t *testing.T) {
	o := fixtures()[3]

	regular := OrderDelegate{}.renderLine(fixtures()[0])
	assert.Contains(t, regular, "High")

	annual := OrderDelegate{Annual: true}.renderLine(o)
	assert.NotContains(t, annual, "High")
	assert.Contains(t, annual, "0% (0/1)")
}

func TestView_ShowsTabCounts(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 120, 30)
	m.SetOrders(fixtures(), model.ViewWorkOrders)

	out := m.View()
	assert.Contains(t, out, "New (2)")
	assert.Contains(t, out, "Ongoing (1)")
	assert.Contains(t, out, "History (0)")
}
