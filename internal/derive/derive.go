// Package derive computes the read-only views the screens render from the
// order state. Every function is pure and cheap enough to run on each
// render.
package derive

import (
	"math"
	"strings"

	"github.com/nhle/fieldservice/internal/model"
)

// ByView returns the orders shown on view, keeping their relative order.
// The work orders view shows regular and untyped orders.
func ByView(orders []model.WorkOrder, view model.View) []model.WorkOrder {
	out := make([]model.WorkOrder, 0, len(orders))
	for _, o := range orders {
		if o.IsAnnualService() == (view == model.ViewAnnualService) {
			out = append(out, o)
		}
	}
	return out
}

// ByStatus returns the orders with the given status.
func ByStatus(orders []model.WorkOrder, status model.OrderStatus) []model.WorkOrder {
	out := make([]model.WorkOrder, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// TabCounts returns the number of orders per status tab.
func TabCounts(orders []model.WorkOrder) map[model.OrderStatus]int {
	counts := make(map[model.OrderStatus]int, len(model.OrderStatuses))
	for _, s := range model.OrderStatuses {
		counts[s] = 0
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}

// ServiceStats summarises the inspection progress of an Annual Service.
type ServiceStats struct {
	Total   int
	Fixed   int
	Issues  int
	Pending int

	// ProgressPercent is the share of fixed items, rounded to the nearest
	// whole percent.
	ProgressPercent int
}

// Stats counts items by status.
func Stats(items []model.ServiceItem) ServiceStats {
	s := ServiceStats{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case model.ItemStatusFixed:
			s.Fixed++
		case model.ItemStatusIssue:
			s.Issues++
		case model.ItemStatusPending:
			s.Pending++
		}
	}
	if s.Total > 0 {
		s.ProgressPercent = int(math.Round(float64(s.Fixed) / float64(s.Total) * 100))
	}
	return s
}

// FollowUps resolves parent's follow-up ids against orders, in link order.
// Ids with no matching order are skipped.
func FollowUps(parent model.WorkOrder, orders []model.WorkOrder) []model.WorkOrder {
	if len(parent.FollowUpIDs) == 0 {
		return nil
	}

	byID := make(map[string]model.WorkOrder, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	out := make([]model.WorkOrder, 0, len(parent.FollowUpIDs))
	for _, id := range parent.FollowUpIDs {
		if o, ok := byID[id]; ok {
			out = append(out, o)
		}
	}
	return out
}

// ItemFilter narrows the service item table by status.
type ItemFilter string

const (
	FilterAll     ItemFilter = "All"
	FilterFixed   ItemFilter = "Fixed"
	FilterIssue   ItemFilter = "Issue"
	FilterPending ItemFilter = "Pending"
)

// ItemFilters lists the filters in display order.
var ItemFilters = []ItemFilter{FilterAll, FilterFixed, FilterIssue, FilterPending}

// Next returns the filter after f, wrapping around.
func (f ItemFilter) Next() ItemFilter {
	for i, candidate := range ItemFilters {
		if candidate == f {
			return ItemFilters[(i+1)%len(ItemFilters)]
		}
	}
	return FilterAll
}

// FilterItems returns the items matching filter whose name or serial number
// contains query, ignoring case. An empty query matches everything.
func FilterItems(items []model.ServiceItem, filter ItemFilter, query string) []model.ServiceItem {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.ServiceItem, 0, len(items))

	for _, item := range items {
		if filter != FilterAll && filter != "" && string(item.Status) != string(filter) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.SerialNumber), q) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// IssueItems returns the items with an Issue status, in item order.
func IssueItems(items []model.ServiceItem) []model.ServiceItem {
	return FilterItems(items, FilterIssue, "")
}
