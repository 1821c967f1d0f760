package model

// Priority is the display urgency of a work order. Higher values are more
// urgent; the ordering carries no business rules.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// String returns the display label for the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "No Priority"
	}
}

// OrderStatus is the triage state of a work order.
type OrderStatus string

const (
	OrderStatusNew      OrderStatus = "New"
	OrderStatusPending  OrderStatus = "Pending"
	OrderStatusOngoing  OrderStatus = "Ongoing"
	OrderStatusDeclined OrderStatus = "Declined"
	OrderStatusHistory  OrderStatus = "History"
)

// OrderStatuses lists every status in tab order.
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusPending,
	OrderStatusOngoing,
	OrderStatusDeclined,
	OrderStatusHistory,
}

// OrderType identifies which kind of work an order represents.
type OrderType string

const (
	OrderTypeUnset         OrderType = ""
	OrderTypeAnnualService OrderType = "Annual Service"
	OrderTypeRegular       OrderType = "Regular Work Order"
)

// Job number prefixes.
const (
	PrefixWorkOrder     = "WO"
	PrefixAnnualService = "AS"
	PrefixFollowUp      = "FU"
)

// Variant is the type-specific part of a WorkOrder. It is sealed: the only
// implementations are RegularWork and AnnualService.
type Variant interface {
	orderType() OrderType
}

// RegularWork marks an ad-hoc repair order. Untyped is set for orders that
// were recorded before a type was chosen; they are treated as regular work.
type RegularWork struct {
	Untyped bool
}

func (r RegularWork) orderType() OrderType {
	if r.Untyped {
		return OrderTypeUnset
	}
	return OrderTypeRegular
}

// AnnualService is a bulk inspection campaign and the equipment it covers.
type AnnualService struct {
	Items []ServiceItem
}

func (AnnualService) orderType() OrderType { return OrderTypeAnnualService }

// WorkOrder is the root aggregate managed by the order store.
type WorkOrder struct {
	// ID is the internal unique identifier.
	ID string `json:"id"`

	// JobNumber is the human-facing code, e.g. "AS-2025-014".
	JobNumber string `json:"job_number"`

	// Customer is a snapshot copy taken when the order was created.
	Customer Customer `json:"customer"`

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Date is a display string and is never parsed.
	Date string `json:"date"`

	Priority Priority    `json:"priority"`
	Status   OrderStatus `json:"status"`

	// AssignedEngineer is a snapshot copy, or nil when unassigned.
	AssignedEngineer *Engineer `json:"assigned_engineer,omitempty"`

	// Attachments holds file names only.
	Attachments []string `json:"attachments,omitempty"`

	// FollowUpIDs lists orders created from this order's issues. Append-only.
	FollowUpIDs []string `json:"follow_up_ids,omitempty"`

	Variant Variant `json:"-"`
}

// Type returns the order type derived from the variant.
func (o WorkOrder) Type() OrderType {
	if o.Variant == nil {
		return OrderTypeUnset
	}
	return o.Variant.orderType()
}

// IsAnnualService reports whether the order is an Annual Service.
func (o WorkOrder) IsAnnualService() bool {
	_, ok := o.Variant.(AnnualService)
	return ok
}

// ServiceItems returns the inspected equipment for an Annual Service and nil
// for any other order.
func (o WorkOrder) ServiceItems() []ServiceItem {
	if a, ok := o.Variant.(AnnualService); ok {
		return a.Items
	}
	return nil
}

// Clone returns a deep copy that shares no slices or pointers with o.
func (o WorkOrder) Clone() WorkOrder {
	c := o
	if o.AssignedEngineer != nil {
		eng := o.AssignedEngineer.Clone()
		c.AssignedEngineer = &eng
	}
	c.Attachments = cloneStrings(o.Attachments)
	c.FollowUpIDs = cloneStrings(o.FollowUpIDs)
	if a, ok := o.Variant.(AnnualService); ok {
		items := make([]ServiceItem, len(a.Items))
		for i, item := range a.Items {
			items[i] = item.Clone()
		}
		c.Variant = AnnualService{Items: items}
	}
	return c
}

// HasFollowUp reports whether id is linked as a follow-up of o.
func (o WorkOrder) HasFollowUp(id string) bool {
	for _, fid := range o.FollowUpIDs {
		if fid == id {
			return true
		}
	}
	return false
}

// View selects which kind of order the list screen shows.
type View string

const (
	ViewWorkOrders    View = "work-orders"
	ViewAnnualService View = "annual-service"
)

// Title returns the page heading for the view.
func (v View) Title() string {
	if v == ViewAnnualService {
		return "Annual Services"
	}
	return "Work Orders"
}

// ViewFor returns the list view that shows orders of type t.
func ViewFor(t OrderType) View {
	if t == OrderTypeAnnualService {
		return ViewAnnualService
	}
	return ViewWorkOrders
}
