package domain

import "time"

type Hotel struct {
	ID        int64
	Name      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Room struct {
	ID        int64
	Name      string
	Capacity  int
	HotelID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HotelWithRooms is a hotel together with its rooms in storage order.
// Rooms is never nil for a found hotel.
type HotelWithRooms struct {
	Hotel
	Rooms []Room
}
