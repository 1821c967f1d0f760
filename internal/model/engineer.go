package model

// Engineer is a field engineer that can be assigned to work orders.
type Engineer struct {
	// ID is the unique identifier for this engineer.
	ID string `json:"id"`

	// Name is the engineer's display name.
	Name string `json:"name"`

	// Initials are shown in the avatar badge.
	Initials string `json:"initials"`

	// Tags are short capability codes (e.g. "SW", "E2") in display order.
	Tags []string `json:"tags"`

	// Color is the avatar accent as a hex colour string.
	Color string `json:"color"`

	// Specialties are free-text skill keywords used when asking the AI
	// for an assignment suggestion.
	Specialties []string `json:"specialties,omitempty"`
}

// Clone returns a deep copy of the engineer.
func (e Engineer) Clone() Engineer {
	c := e
	c.Tags = cloneStrings(e.Tags)
	c.Specialties = cloneStrings(e.Specialties)
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
