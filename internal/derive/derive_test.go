package derive

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/fieldservice/internal/model"
	"github.com/nhle/fieldservice/internal/seed"
)

var servicedAt = time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)

func items(statuses ...model.ItemStatus) []model.ServiceItem {
	f := &seed.Fixture{Statuses: statuses, ServicedAt: servicedAt}
	return f.ServiceItems(len(statuses))
}

func TestByView(t *testing.T) {
	orders := []model.WorkOrder{
		{ID: "a", Variant: model.AnnualService{}},
		{ID: "r", Variant: model.RegularWork{}},
		{ID: "u", Variant: model.RegularWork{Untyped: true}},
		{ID: "n"},
	}

	annual := ByView(orders, model.ViewAnnualService)
	require.Len(t, annual, 1)
	assert.Equal(t, "a", annual[0].ID)

	var ids []string
	for _, o := range ByView(orders, model.ViewWorkOrders) {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"r", "u", "n"}, ids)
}

func TestByStatusAndTabCounts(t *testing.T) {
	orders := []model.WorkOrder{
		{ID: "1", Status: model.OrderStatusNew},
		{ID: "2", Status: model.OrderStatusOngoing},
		{ID: "3", Status: model.OrderStatusNew},
	}

	got := ByStatus(orders, model.OrderStatusNew)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Empty(t, ByStatus(orders, model.OrderStatusHistory))

	counts := TabCounts(orders)
	assert.Equal(t, 2, counts[model.OrderStatusNew])
	assert.Equal(t, 1, counts[model.OrderStatusOngoing])
	assert.Equal(t, 0, counts[model.OrderStatusDeclined])
	assert.Len(t, counts, len(model.OrderStatuses))
}

func TestStats(t *testing.T) {
	tests := []struct {
		name  string
		items []model.ServiceItem
		want  ServiceStats
	}{
		{
			name:  "empty",
			items: nil,
			want:  ServiceStats{},
		},
		{
			name:  "one of three fixed rounds down",
			items: items(model.ItemStatusFixed, model.ItemStatusIssue, model.ItemStatusPending),
			want:  ServiceStats{Total: 3, Fixed: 1, Issues: 1, Pending: 1, ProgressPercent: 33},
		},
		{
			name:  "two of three fixed rounds up",
			items: items(model.ItemStatusFixed, model.ItemStatusFixed, model.ItemStatusPending),
			want:  ServiceStats{Total: 3, Fixed: 2, Pending: 1, ProgressPercent: 67},
		},
		{
			name:  "all fixed",
			items: items(model.ItemStatusFixed, model.ItemStatusFixed),
			want:  ServiceStats{Total: 2, Fixed: 2, ProgressPercent: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stats(tt.items))
		})
	}
}

func TestFollowUps(t *testing.T) {
	parent := model.WorkOrder{ID: "p", FollowUpIDs: []string{"f2", "missing", "f1"}}
	orders := []model.WorkOrder{{ID: "f1"}, parent, {ID: "f2"}}

	got := FollowUps(parent, orders)
	require.Len(t, got, 2)
	assert.Equal(t, "f2", got[0].ID)
	assert.Equal(t, "f1", got[1].ID)
	assert.Nil(t, FollowUps(model.WorkOrder{}, orders))
}

func TestFilterItems(t *testing.T) {
	list := []model.ServiceItem{
		model.InspectedItem("1", "Treadmill #100", "SN-ABC", model.ItemStatusFixed, "", servicedAt, nil),
		model.InspectedItem("2", "Leg Press #101", "SN-XYZ", model.ItemStatusIssue, "worn", servicedAt, nil),
		model.PendingItem("3", "Treadmill #102", "SN-QQQ"),
	}

	assert.Len(t, FilterItems(list, FilterAll, ""), 3)
	assert.Len(t, FilterItems(list, FilterFixed, ""), 1)
	assert.Len(t, FilterItems(list, FilterPending, ""), 1)

	got := FilterItems(list, FilterAll, "tread")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	got = FilterItems(list, FilterAll, "sn-xy")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	assert.Empty(t, FilterItems(list, FilterIssue, "treadmill"))
}

func TestIssueItems(t *testing.T) {
	list := items(model.ItemStatusIssue, model.ItemStatusFixed, model.ItemStatusIssue, model.ItemStatusPending)

	got := IssueItems(list)
	require.Len(t, got, 2)
	assert.Equal(t, list[0].ID, got[0].ID)
	assert.Equal(t, list[2].ID, got[1].ID)
}

func TestItemFilterNext(t *testing.T) {
	assert.Equal(t, FilterFixed, FilterAll.Next())
	assert.Equal(t, FilterAll, FilterPending.Next())
	assert.Equal(t, FilterAll, ItemFilter("bogus").Next())
}

var statusByIndex = []model.ItemStatus{
	model.ItemStatusFixed,
	model.ItemStatusIssue,
	model.ItemStatusPending,
}

func toItems(idx []int) []model.ServiceItem {
	statuses := make([]model.ItemStatus, len(idx))
	for i, n := range idx {
		statuses[i] = statusByIndex[n]
	}
	return items(statuses...)
}

func TestFilterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("filtering is idempotent", prop.ForAll(
		func(raw []int, f int, query string) bool {
			list := toItems(raw)
			filter := ItemFilters[f]
			once := FilterItems(list, filter, query)
			twice := FilterItems(once, filter, query)
			if len(once) != len(twice) {
				return false
			}
			for i := range once {
				if once[i].ID != twice[i].ID {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 2)),
		gen.IntRange(0, len(ItemFilters)-1),
		gen.AlphaString(),
	))

	properties.Property("stats partition the items", prop.ForAll(
		func(raw []int) bool {
			s := Stats(toItems(raw))
			return s.Fixed+s.Issues+s.Pending == s.Total &&
				s.ProgressPercent >= 0 && s.ProgressPercent <= 100 &&
				len(IssueItems(toItems(raw))) == s.Issues
		},
		gen.SliceOf(gen.IntRange(0, 2)),
	))

	properties.TestingRun(t)
}
