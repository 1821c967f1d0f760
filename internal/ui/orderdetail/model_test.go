package orderdetail

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/fieldservice/internal/derive"
	"github.com/nhle/fieldservice/internal/followup"
	"github.com/nhle/fieldservice/internal/keys"
	"github.com/nhle/fieldservice/internal/model"
)

var servicedAt = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeCreator struct {
	calls  [][]model.ServiceItem
	result model.WorkOrder
	err    error
}

func (f *fakeCreator) CreateFollowUp(_ string, items []model.ServiceItem) (model.WorkOrder, error) {
	f.calls = append(f.calls, items)
	return f.result, f.err
}

func annualOrder() model.WorkOrder {
	items := []model.ServiceItem{
		model.InspectedItem("i1", "Treadmill #100", "SN-100", model.ItemStatusIssue, "belt worn", servicedAt, nil),
		model.InspectedItem("i2", "Leg Press #101", "SN-101", model.ItemStatusFixed, "", servicedAt, nil),
		model.InspectedItem("i3", "Rower #102", "SN-102", model.ItemStatusIssue, "seat loose", servicedAt, nil),
		model.PendingItem("i4", "Bike #103", "SN-103"),
	}
	return model.WorkOrder{
		ID:        "as1",
		JobNumber: "AS-2025-001",
		Title:     "Annual Service",
		Status:    model.OrderStatusOngoing,
		Customer:  model.Customer{ID: "c1", CompanyName: "Acme Fitness", LogoInitial: "A"},
		Variant:   model.AnnualService{Items: items},
	}
}

func press(m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newModel(creator followup.Creator) Model {
	m := New(creator, keys.DefaultKeyMap(), 120, 40)
	o := annualOrder()
	m.SetOrder(o, []model.WorkOrder{o})
	return m
}

func TestRegularOrderHasOnlyOverview(t *testing.T) {
	m := New(&fakeCreator{}, keys.DefaultKeyMap(), 120, 40)
	o := model.WorkOrder{ID: "w1", Title: "Fix treadmill", Variant: model.RegularWork{}, Priority: model.PriorityHigh}
	m.SetOrder(o, []model.WorkOrder{o})

	m, _ = press(m, tab)
	assert.Equal(t, followup.TabOverview, m.Tab())
	assert.Contains(t, m.renderOverview(), "High")
	assert.Contains(t, m.renderOverview(), "Unassigned")
}

func TestAnnualOverviewHidesPriority(t *testing.T) {
	m := newModel(&fakeCreator{})
	out := m.renderOverview()
	assert.NotContains(t, out, "Priority")
	assert.Contains(t, out, "Service Progress")
}

func TestSelectAndSubmitFollowUp(t *testing.T) {
	creator := &fakeCreator{result: model.WorkOrder{ID: "fu1", JobNumber: "FU-2025-001"}}
	m := newModel(creator)

	m, _ = press(m, tab)
	require.Equal(t, followup.TabServiceProgress, m.Tab())

	// Cursor on i1 (issue), then i2 (fixed, ignored).
	m, _ = press(m, space, down, space)
	assert.Equal(t, 1, m.Workflow().Count())
	assert.True(t, m.Workflow().IsSelected("i1"))

	m, _ = press(m, runes("a"))
	assert.Equal(t, 2, m.Workflow().Count())

	m, cmd := press(m, runes("c"))
	require.NotNil(t, cmd)
	assert.Equal(t, FollowUpCreatedMsg{ParentID: "as1", Order: creator.result}, cmd())
	require.Len(t, creator.calls, 1)
	assert.Len(t, creator.calls[0], 2)
	assert.Equal(t, followup.TabFollowUps, m.Tab())
	assert.False(t, m.Workflow().Selecting())
}

func TestSubmitWithoutSelectionDoesNothing(t *testing.T) {
	creator := &fakeCreator{}
	m := newModel(creator)

	m, cmd := press(m, tab, runes("c"))
	assert.Nil(t, cmd)
	assert.Empty(t, creator.calls)
	assert.Equal(t, followup.TabServiceProgress, m.Tab())
}

func TestSubmitFailureIsReported(t *testing.T) {
	creator := &fakeCreator{err: errors.New("boom")}
	m := newModel(creator)

	m, cmd := press(m, tab, runes("a"), runes("c"))
	require.NotNil(t, cmd)
	failed, ok := cmd().(FollowUpFailedMsg)
	require.True(t, ok)
	assert.ErrorContains(t, failed.Err, "boom")
	assert.Equal(t, 2, m.Workflow().Count(), "selection kept on failure")
}

func TestFilterAndSearch(t *testing.T) {
	m := newModel(&fakeCreator{})
	m, _ = press(m, tab, runes("f"))
	assert.Equal(t, derive.FilterFixed, m.Filter())
	assert.Len(t, m.visibleItems(), 1)

	m, _ = press(m, runes("f"))
	assert.Equal(t, derive.FilterIssue, m.Filter())
	assert.Len(t, m.visibleItems(), 2)

	m, _ = press(m, runes("/"))
	require.True(t, m.InputActive())
	m, _ = press(m, runes("r"), runes("o"), runes("w"), enter)
	assert.False(t, m.InputActive())
	items := m.visibleItems()
	require.Len(t, items, 1)
	assert.Equal(t, "i3", items[0].ID)

	m, _ = press(m, runes("/"), esc)
	assert.Len(t, m.visibleItems(), 2, "esc clears the query")
}

func TestFollowUpsTabOpensOrder(t *testing.T) {
	parent := annualOrder()
	parent.FollowUpIDs = []string{"fu1", "fu2"}
	orders := []model.WorkOrder{
		{ID: "fu2", JobNumber: "FU-2025-002", Title: "second"},
		{ID: "fu1", JobNumber: "FU-2025-001", Title: "first"},
		parent,
	}

	m := New(&fakeCreator{}, keys.DefaultKeyMap(), 120, 40)
	m.SetOrder(parent, orders)
	m, _ = press(m, tab, tab)
	require.Equal(t, followup.TabFollowUps, m.Tab())
	assert.Contains(t, m.View(), "Follow-up Orders (2)")

	m, cmd := press(m, down, enter)
	require.NotNil(t, cmd)
	assert.Equal(t, OpenOrderMsg{OrderID: "fu2"}, cmd())

	_, cmd = press(m, esc)
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}

func TestSetOrderKeepsStateForSameOrder(t *testing.T) {
	m := newModel(&fakeCreator{})
	m, _ = press(m, tab, runes("f"), space)

	o := annualOrder()
	o.FollowUpIDs = []string{"fu1"}
	m.SetOrder(o, []model.WorkOrder{o})
	assert.Equal(t, followup.TabServiceProgress, m.Tab())
	assert.Equal(t, derive.FilterFixed, m.Filter())

	other := annualOrder()
	other.ID = "as2"
	m.SetOrder(other, []model.WorkOrder{other})
	assert.Equal(t, followup.TabOverview, m.Tab())
	assert.Equal(t, derive.FilterAll, m.Filter())
}

func TestResetStartsFresh(t *testing.T) {
	m := newModel(&fakeCreator{})
	m, _ = press(m, tab, runes("a"))
	require.Equal(t, 2, m.Workflow().Count())

	m.Reset()
	_, ok := m.Order()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No order selected")

	o := annualOrder()
	m.SetOrder(o, []model.WorkOrder{o})
	assert.Equal(t, 0, m.Workflow().Count())
	assert.Equal(t, followup.TabOverview, m.Tab())
}

func TestWindow(t *testing.T) {
	s, e := window(0, 5, 10)
	assert.Equal(t, [2]int{0, 5}, [2]int{s, e})

	s, e = window(50, 100, 10)
	assert.Equal(t, [2]int{45, 55}, [2]int{s, e})

	s, e = window(99, 100, 10)
	assert.Equal(t, [2]int{90, 100}, [2]int{s, e})
}
