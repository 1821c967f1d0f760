// Package followup tracks which issue items of an Annual Service are picked
// for a follow-up order, and which detail tab is active.
package followup

import (
	"errors"
	"fmt"

	"github.com/nhle/fieldservice/internal/derive"
	"github.com/nhle/fieldservice/internal/model"
)

// ErrEmptySelection is returned by Submit when no issue item is selected.
var ErrEmptySelection = errors.New("no issue items selected")

// Tab is a section of the order detail screen.
type Tab int

const (
	TabOverview Tab = iota
	TabServiceProgress
	TabFollowUps
)

// Tabs lists the detail tabs in display order.
var Tabs = []Tab{TabOverview, TabServiceProgress, TabFollowUps}

// String returns the tab label.
func (t Tab) String() string {
	switch t {
	case TabServiceProgress:
		return "Service Progress"
	case TabFollowUps:
		return "Follow-up Orders"
	default:
		return "Overview"
	}
}

// Creator creates follow-up orders. orders.Store satisfies it.
type Creator interface {
	CreateFollowUp(parentID string, items []model.ServiceItem) (model.WorkOrder, error)
}

// Workflow is the selection state for one order. The zero value is not
// usable; start with New or For.
type Workflow struct {
	OrderID  string
	Tab      Tab
	selected map[string]struct{}
}

// New returns an idle workflow for orderID on the Overview tab.
func New(orderID string) *Workflow {
	return &Workflow{
		OrderID:  orderID,
		Tab:      TabOverview,
		selected: make(map[string]struct{}),
	}
}

// For returns w when it already tracks orderID, and a fresh idle workflow
// otherwise.
func (w *Workflow) For(orderID string) *Workflow {
	if w != nil && w.OrderID == orderID {
		return w
	}
	return New(orderID)
}

// Selecting reports whether at least one item is selected.
func (w *Workflow) Selecting() bool {
	return len(w.selected) > 0
}

// Count returns the number of selected items.
func (w *Workflow) Count() int {
	return len(w.selected)
}

// IsSelected reports whether itemID is selected.
func (w *Workflow) IsSelected(itemID string) bool {
	_, ok := w.selected[itemID]
	return ok
}

// Toggle flips the selection of itemID. Items that are not issues are
// ignored.
func (w *Workflow) Toggle(order model.WorkOrder, itemID string) {
	for _, item := range order.ServiceItems() {
		if item.ID != itemID {
			continue
		}
		if item.Status != model.ItemStatusIssue {
			return
		}
		if w.IsSelected(itemID) {
			delete(w.selected, itemID)
		} else {
			w.selected[itemID] = struct{}{}
		}
		return
	}
}

// SelectAll selects every issue item of order, or clears the selection when
// it already covers all of them.
func (w *Workflow) SelectAll(order model.WorkOrder) {
	issues := derive.IssueItems(order.ServiceItems())

	all := len(issues) > 0
	for _, item := range issues {
		if !w.IsSelected(item.ID) {
			all = false
			break
		}
	}

	if all {
		w.Clear()
		return
	}
	for _, item := range issues {
		w.selected[item.ID] = struct{}{}
	}
}

// Clear empties the selection.
func (w *Workflow) Clear() {
	clear(w.selected)
}

// Selected returns the selected items in the order's own item sequence.
func (w *Workflow) Selected(order model.WorkOrder) []model.ServiceItem {
	var out []model.ServiceItem
	for _, item := range order.ServiceItems() {
		if w.IsSelected(item.ID) {
			out = append(out, item)
		}
	}
	return out
}

// Submit creates a follow-up from the selected items, clears the selection
// and switches to the Follow-up Orders tab.
func (w *Workflow) Submit(creator Creator, order model.WorkOrder) (model.WorkOrder, error) {
	items := w.Selected(order)
	if len(items) == 0 {
		return model.WorkOrder{}, ErrEmptySelection
	}

	fu, err := creator.CreateFollowUp(order.ID, items)
	if err != nil {
		return model.WorkOrder{}, fmt.Errorf("creating follow-up for %s: %w", order.JobNumber, err)
	}

	w.Clear()
	w.Tab = TabFollowUps
	return fu, nil
}
