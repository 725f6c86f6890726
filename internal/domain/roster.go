package domain

import "slices"

type Staff struct {
	ID     string    `json:"id" yaml:"id"`
	Name   string    `json:"name" yaml:"name"`
	Role   StaffRole `json:"role" yaml:"role"`
	Active bool      `json:"active" yaml:"active"`
}

type Client struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Crisis        bool     `json:"crisis" yaml:"crisis"`
	ExcludedStaff []string `json:"excludedStaff,omitempty" yaml:"excluded_staff"`
	TrainedStaff  []string `json:"trainedStaff,omitempty" yaml:"trained_staff"`
	FocusStaff    []string `json:"focusStaff,omitempty" yaml:"focus_staff"`
}

// Excludes reports whether staffID is on the client's exclusion list.
func (c Client) Excludes(staffID string) bool {
	return slices.Contains(c.ExcludedStaff, staffID)
}

// IsTrained reports whether staffID is on the trained list.
func (c Client) IsTrained(staffID string) bool {
	return slices.Contains(c.TrainedStaff, staffID)
}

// IsFocus reports whether staffID is on the focus list.
func (c Client) IsFocus(staffID string) bool {
	return slices.Contains(c.FocusStaff, staffID)
}

// Knows reports whether staffID is trained on or a focus staff member for the client.
func (c Client) Knows(staffID string) bool {
	return c.IsTrained(staffID) || c.IsFocus(staffID)
}

// Roster is the staff and client lists a day is scheduled against.
type Roster struct {
	Staff   []Staff  `json:"staff"`
	Clients []Client `json:"clients"`
}

func (r Roster) StaffByID(id string) (Staff, bool) {
	for _, s := range r.Staff {
		if s.ID == id {
			return s, true
		}
	}
	return Staff{}, false
}

func (r Roster) ClientByID(id string) (Client, bool) {
	for _, c := range r.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}

// StaffName returns the staff member's name, or fallback when unresolved.
func (r Roster) StaffName(id, fallback string) string {
	s, _ := r.StaffByID(id)
	return CoalesceStr(s.Name, fallback)
}

// ClientName returns the client's name, or fallback when unresolved.
func (r Roster) ClientName(id, fallback string) string {
	c, _ := r.ClientByID(id)
	return CoalesceStr(c.Name, fallback)
}
