package model

import "time"

// ItemStatus is the inspection outcome of a single service item.
type ItemStatus string

const (
	ItemStatusFixed   ItemStatus = "Fixed"
	ItemStatusIssue   ItemStatus = "Issue"
	ItemStatusPending ItemStatus = "Pending"
)

// ServiceItem is one piece of equipment inspected during an Annual Service.
// Build items with PendingItem or InspectedItem so that ServicedAt is set
// exactly when the item has left the Pending state.
type ServiceItem struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	SerialNumber     string     `json:"serial_number"`
	Status           ItemStatus `json:"status"`
	EngineerComments string     `json:"engineer_comments,omitempty"`
	ServicedAt       *time.Time `json:"serviced_at,omitempty"`

	// Images holds URLs of photos attached to an Issue.
	Images []string `json:"images,omitempty"`
}

// PendingItem returns an item that has not been inspected yet.
func PendingItem(id, name, serial string) ServiceItem {
	return ServiceItem{
		ID:           id,
		Name:         name,
		SerialNumber: serial,
		Status:       ItemStatusPending,
	}
}

// InspectedItem returns an item with a recorded outcome. Passing
// ItemStatusPending yields a pending item and drops the other fields.
// Images are only kept for issues.
func InspectedItem(
	id, name, serial string,
	status ItemStatus,
	comments string,
	servicedAt time.Time,
	images []string,
) ServiceItem {
	if status == ItemStatusPending {
		return PendingItem(id, name, serial)
	}

	at := servicedAt
	item := ServiceItem{
		ID:               id,
		Name:             name,
		SerialNumber:     serial,
		Status:           status,
		EngineerComments: comments,
		ServicedAt:       &at,
	}
	if status == ItemStatusIssue && len(images) > 0 {
		item.Images = cloneStrings(images)
	}
	return item
}

// Valid reports whether ServicedAt is present iff the item is not pending.
func (i ServiceItem) Valid() bool {
	return (i.ServicedAt != nil) == (i.Status != ItemStatusPending)
}

// Clone returns a deep copy of the item.
func (i ServiceItem) Clone() ServiceItem {
	c := i
	if i.ServicedAt != nil {
		at := *i.ServicedAt
		c.ServicedAt = &at
	}
	c.Images = cloneStrings(i.Images)
	return c
}
