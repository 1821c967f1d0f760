package model

// Customer is a client company that owns the serviced equipment.
type Customer struct {
	ID          string `json:"id" db:"id"`
	CompanyName string `json:"company_name" db:"company_name"`
	ContactName string `json:"contact_name" db:"contact_name"`

	// LogoInitial is the single letter shown in the customer badge.
	LogoInitial string `json:"logo_initial" db:"logo_initial"`
}
