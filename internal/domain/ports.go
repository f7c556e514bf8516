package domain

import "context"

// Read paths return ErrNotFound when the record is absent.
type EnrollmentRepository interface {
	FindEnrollmentByUser(ctx context.Context, userID int64) (Enrollment, error)
}

type TicketRepository interface {
	FindTicketByEnrollment(ctx context.Context, enrollmentID int64) (Ticket, error)
}

type HotelRepository interface {
	// ListHotels returns a non-nil slice on success; nil means the result was absent.
	ListHotels(ctx context.Context) ([]Hotel, error)
	FindHotelWithRooms(ctx context.Context, hotelID int64) (HotelWithRooms, error)
}

// CatalogWriter is used by the seed tool only; the API never writes.
type CatalogWriter interface {
	UpsertHotel(ctx context.Context, h Hotel) (int64, error)
	UpsertRoom(ctx context.Context, r Room) (int64, error)
}

type SessionStore interface {
	FindSessionByToken(ctx context.Context, token string) (Session, error)
}
