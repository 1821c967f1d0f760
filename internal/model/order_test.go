package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inspectedAt = time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)

func TestWorkOrderType(t *testing.T) {
	assert.Equal(t, OrderTypeUnset, WorkOrder{}.Type())
	assert.Equal(t, OrderTypeUnset, WorkOrder{Variant: RegularWork{Untyped: true}}.Type())
	assert.Equal(t, OrderTypeRegular, WorkOrder{Variant: RegularWork{}}.Type())
	assert.Equal(t, OrderTypeAnnualService, WorkOrder{Variant: AnnualService{}}.Type())

	assert.True(t, WorkOrder{Variant: AnnualService{}}.IsAnnualService())
	assert.False(t, WorkOrder{}.IsAnnualService())
	assert.Nil(t, WorkOrder{Variant: RegularWork{}}.ServiceItems())
}

func TestWorkOrderClone_IsDeep(t *testing.T) {
	eng := Engineer{ID: "e1", Tags: []string{"SW"}}
	o := WorkOrder{
		ID:               "as1",
		AssignedEngineer: &eng,
		Attachments:      []string{"a.pdf"},
		FollowUpIDs:      []string{"fu1"},
		Variant: AnnualService{Items: []ServiceItem{
			InspectedItem("i1", "Treadmill #100", "SN-1", ItemStatusIssue, "worn", inspectedAt, []string{"img"}),
		}},
	}

	c := o.Clone()
	c.AssignedEngineer.Tags[0] = "XX"
	c.Attachments[0] = "b.pdf"
	c.FollowUpIDs[0] = "fu2"
	c.ServiceItems()[0].Images[0] = "other"
	*c.ServiceItems()[0].ServicedAt = time.Time{}

	assert.Equal(t, "SW", o.AssignedEngineer.Tags[0])
	assert.Equal(t, "a.pdf", o.Attachments[0])
	assert.Equal(t, "fu1", o.FollowUpIDs[0])
	assert.Equal(t, "img", o.ServiceItems()[0].Images[0])
	assert.Equal(t, inspectedAt, *o.ServiceItems()[0].ServicedAt)
	assert.True(t, o.HasFollowUp("fu1"))
	assert.False(t, o.HasFollowUp("fu2"))
}

func TestServiceItemConstructors(t *testing.T) {
	p := PendingItem("i1", "Leg Press #101", "SN-2")
	assert.True(t, p.Valid())
	assert.Nil(t, p.ServicedAt)

	fixed := InspectedItem("i2", "Rowing Machine #102", "SN-3", ItemStatusFixed, "", inspectedAt, []string{"img"})
	assert.True(t, fixed.Valid())
	require.NotNil(t, fixed.ServicedAt)
	assert.Nil(t, fixed.Images, "images are only kept for issues")

	downgraded := InspectedItem("i3", "Elliptical #103", "SN-4", ItemStatusPending, "note", inspectedAt, nil)
	assert.True(t, downgraded.Valid())
	assert.Empty(t, downgraded.EngineerComments)

	assert.False(t, ServiceItem{Status: ItemStatusFixed}.Valid())
}

func TestPriorityAndView(t *testing.T) {
	assert.Equal(t, "No Priority", PriorityNone.String())
	assert.Equal(t, "High", PriorityHigh.String())
	assert.True(t, PriorityHigh > PriorityMedium)

	assert.Equal(t, "Annual Services", ViewAnnualService.Title())
	assert.Equal(t, "Work Orders", ViewWorkOrders.Title())
	assert.Equal(t, ViewAnnualService, ViewFor(OrderTypeAnnualService))
	assert.Equal(t, ViewWorkOrders, ViewFor(OrderTypeUnset))
}
