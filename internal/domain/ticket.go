package domain

import "time"

type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "RESERVED"
	TicketStatusPaid     TicketStatus = "PAID"
)

type TicketType struct {
	ID            int64
	Name          string
	Price         int
	IsRemote      bool
	IncludesHotel bool
}

type Ticket struct {
	ID           int64
	EnrollmentID int64
	Status       TicketStatus
	TicketType   *TicketType // nil when the referenced type row is missing
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GrantsHotelAccess reports whether the ticket entitles its holder to browse hotels.
// A ticket without a type never does.
func (t Ticket) GrantsHotelAccess() bool {
	tt := t.TicketType
	if tt == nil || !tt.IncludesHotel || tt.IsRemote {
		return false
	}
	return t.Status == TicketStatusPaid
}
