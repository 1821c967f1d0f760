package seed

import (
	"fmt"

	"github.com/nhle/fieldservice/internal/model"
)

// Customers returns the demo customer catalog.
func Customers() []model.Customer {
	return []model.Customer{
		{ID: "c1", CompanyName: "Gamma Technologies", ContactName: "David Wilson", LogoInitial: "G"},
		{ID: "c2", CompanyName: "Alpha Innovations", ContactName: "Emily Carter", LogoInitial: "A"},
		{ID: "c3", CompanyName: "Beta Solutions", ContactName: "Michael Smith", LogoInitial: "B"},
		{ID: "c4", CompanyName: "Delta Dynamics", ContactName: "Sophia Johnson", LogoInitial: "D"},
		{ID: "c5", CompanyName: "Omega Enterprises", ContactName: "James Brown", LogoInitial: "O"},
		{ID: "c6", CompanyName: "Zeta Technologies", ContactName: "Olivia Davis", LogoInitial: "Z"},
		{ID: "c7", CompanyName: "FlexiStrength 9000", ContactName: "Delta Innovations", LogoInitial: "D"},
	}
}

// Engineers returns the demo engineer roster.
func Engineers() []model.Engineer {
	return []model.Engineer{
		{
			ID: "e1", Name: "Alex Kim", Initials: "AK",
			Tags: []string{"SW", "E2"}, Color: "#2563EB",
			Specialties: []string{"software", "firmware", "diagnostics"},
		},
		{
			ID: "e2", Name: "Daniel Jones", Initials: "DJ",
			Tags: []string{"SW", "E2"}, Color: "#10B981",
			Specialties: []string{"conveyor", "mechanical", "sensors"},
		},
		{
			ID: "e3", Name: "Brian Lee", Initials: "BL",
			Tags: []string{"SW", "E2", "E3"}, Color: "#9333EA",
			Specialties: []string{"heavy machinery", "electrical", "power"},
		},
		{
			ID: "e4", Name: "Sarah Connor", Initials: "SC",
			Tags: []string{"ME", "E1"}, Color: "#F97316",
			Specialties: []string{"hydraulics", "maintenance"},
		},
	}
}

type demoAnnual struct {
	customer model.Customer
	title    string
	date     string
	priority model.Priority
	status   model.OrderStatus
	items    int
}

// DemoOrders returns the sample orders shown on first launch, in display
// order. Annual Services draw their items from gen.
func DemoOrders(gen Generator) []model.WorkOrder {
	orders := []model.WorkOrder{
		regular("wo1", "WO-2024-001", model.Customer{ID: "c7", CompanyName: "FlexiStrength 9000", ContactName: "Delta Innovations", LogoInitial: "D"},
			"FlexiStrength 9000 Maintenance", model.PriorityNone),
		regular("wo2", "WO-2024-002", model.Customer{ID: "c5", CompanyName: "UltraFit 8000", ContactName: "Omega Tech Solutions", LogoInitial: "U"},
			"UltraFit 8000 Calibration", model.PriorityMedium),
		regular("wo3", "WO-2024-003", model.Customer{ID: "c2", CompanyName: "MaxPower 6000", ContactName: "Alpha Systems", LogoInitial: "M"},
			"MaxPower 6000 Repair", model.PriorityLow),
		regular("wo4", "WO-2024-004", model.Customer{ID: "c3", CompanyName: "TurboFit 5000", ContactName: "Beta Enterprises", LogoInitial: "T"},
			"TurboFit 5000 Overhaul", model.PriorityHigh),
	}

	customers := Customers()
	byID := make(map[string]model.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}
	flexi := model.Customer{ID: "c7", CompanyName: "FlexiStrength 9000", ContactName: "Ethan Carter", LogoInitial: "F"}

	annuals := []demoAnnual{
		{byID["c1"], "Annual Safety Inspection", "15-01-2025", model.PriorityMedium, model.OrderStatusOngoing, 45},
		{byID["c2"], "Yearly Equipment Audit", "16-01-2025", model.PriorityLow, model.OrderStatusNew, 12},
		{byID["c3"], "Full System Diagnostic", "18-01-2025", model.PriorityHigh, model.OrderStatusNew, 80},
		{byID["c4"], "Preventative Maintenance Check", "20-01-2025", model.PriorityMedium, model.OrderStatusNew, 30},
		{byID["c5"], "Annual Calibration Service", "22-01-2025", model.PriorityMedium, model.OrderStatusNew, 25},
		{byID["c6"], "Hardware Certification Renewal", "25-01-2025", model.PriorityLow, model.OrderStatusNew, 15},
		{byID["c1"], "Q1 Performance Review", "28-01-2025", model.PriorityNone, model.OrderStatusNew, 50},
		{flexi, "Hydraulic Systems Check", "01-02-2025", model.PriorityHigh, model.OrderStatusNew, 10},
		{byID["c2"], "Electrical Safety Compliance", "03-02-2025", model.PriorityMedium, model.OrderStatusNew, 60},
		{byID["c4"], "Software Firmware Update", "05-02-2025", model.PriorityLow, model.OrderStatusNew, 100},
	}

	lead := Engineers()[0]
	for i, a := range annuals {
		order := model.WorkOrder{
			ID:        fmt.Sprintf("as%d", i+1),
			JobNumber: fmt.Sprintf("AS-2025-%03d", i+1),
			Customer:  a.customer,
			Title:     a.title,
			Date:      a.date,
			Priority:  a.priority,
			Status:    a.status,
			Variant:   model.AnnualService{Items: gen.ServiceItems(a.items)},
		}
		if i == 0 {
			eng := lead.Clone()
			order.AssignedEngineer = &eng
		}
		orders = append(orders, order)
	}

	return orders
}

func regular(id, job string, c model.Customer, title string, p model.Priority) model.WorkOrder {
	return model.WorkOrder{
		ID:        id,
		JobNumber: job,
		Customer:  c,
		Title:     title,
		Date:      "1-12-2025",
		Priority:  p,
		Status:    model.OrderStatusNew,
		Variant:   model.RegularWork{},
	}
}
