package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event_hotels/internal/app"
	"event_hotels/internal/domain"
)

// ---- fakes ----

type fakeStore struct {
	enrollments map[int64]domain.Enrollment // by user id
	tickets     map[int64]domain.Ticket     // by enrollment id
	hotels      []domain.Hotel
	rooms       map[int64][]domain.Room
	listErr     error
	enrollErr   error

	hotelCalls int
}

func (f *fakeStore) FindEnrollmentByUser(ctx context.Context, userID int64) (domain.Enrollment, error) {
	if f.enrollErr != nil {
		return domain.Enrollment{}, f.enrollErr
	}
	e, ok := f.enrollments[userID]
	if !ok {
		return domain.Enrollment{}, domain.ErrNotFound
	}
	return e, nil
}

func (f *fakeStore) FindTicketByEnrollment(ctx context.Context, enrollmentID int64) (domain.Ticket, error) {
	t, ok := f.tickets[enrollmentID]
	if !ok {
		return domain.Ticket{}, domain.ErrNotFound
	}
	return t, nil
}

func (f *fakeStore) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	f.hotelCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.hotels, nil
}

func (f *fakeStore) FindHotelWithRooms(ctx context.Context, hotelID int64) (domain.HotelWithRooms, error) {
	f.hotelCalls++
	for _, h := range f.hotels {
		if h.ID == hotelID {
			return domain.HotelWithRooms{Hotel: h, Rooms: f.rooms[hotelID]}, nil
		}
	}
	return domain.HotelWithRooms{}, domain.ErrNotFound
}

const (
	userID       = int64(7)
	enrollmentID = int64(70)
)

var (
	now       = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	hotelType = &domain.TicketType{ID: 1, Name: "Presencial + Hotel", Price: 600, IncludesHotel: true}
)

// eligibleStore has a user with a paid, in-person, hotel-including ticket.
func eligibleStore() *fakeStore {
	return &fakeStore{
		enrollments: map[int64]domain.Enrollment{userID: {ID: enrollmentID, UserID: userID, Name: "Ana"}},
		tickets: map[int64]domain.Ticket{enrollmentID: {
			ID: 1, EnrollmentID: enrollmentID, Status: domain.TicketStatusPaid, TicketType: hotelType,
		}},
		hotels: []domain.Hotel{},
		rooms:  map[int64][]domain.Room{},
	}
}

func newService(f *fakeStore) *app.CatalogService {
	return app.NewCatalogService(f, f, f)
}

// ---- gate ----

func TestCatalog_GateFailures(t *testing.T) {
	cases := map[string]func(f *fakeStore){
		"no enrollment": func(f *fakeStore) { delete(f.enrollments, userID) },
		"no ticket":     func(f *fakeStore) { delete(f.tickets, enrollmentID) },
		"reserved ticket": func(f *fakeStore) {
			tk := f.tickets[enrollmentID]
			tk.Status = domain.TicketStatusReserved
			f.tickets[enrollmentID] = tk
		},
		"type without hotel": func(f *fakeStore) {
			tk := f.tickets[enrollmentID]
			tk.TicketType = &domain.TicketType{ID: 2, IncludesHotel: false}
			f.tickets[enrollmentID] = tk
		},
		"remote type": func(f *fakeStore) {
			tk := f.tickets[enrollmentID]
			tk.TicketType = &domain.TicketType{ID: 3, IncludesHotel: true, IsRemote: true}
			f.tickets[enrollmentID] = tk
		},
		"missing type": func(f *fakeStore) {
			tk := f.tickets[enrollmentID]
			tk.TicketType = nil
			f.tickets[enrollmentID] = tk
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := eligibleStore()
			f.hotels = []domain.Hotel{{ID: 1, Name: "Hotel A"}}
			mutate(f)
			svc := newService(f)

			_, err := svc.ListHotels(context.Background(), userID)
			assert.ErrorIs(t, err, domain.ErrNotFound)

			_, err = svc.GetHotelByID(context.Background(), userID, 1)
			assert.ErrorIs(t, err, domain.ErrNotFound)

			assert.Zero(t, f.hotelCalls, "catalog must not be queried when the gate fails")
		})
	}
}

func TestCatalog_GateStorageErrorIsWrapped(t *testing.T) {
	f := eligibleStore()
	boom := errors.New("connection refused")
	f.enrollErr = boom

	_, err := newService(f).ListHotels(context.Background(), userID)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

// ---- list ----

func TestListHotels_EmptyCatalogIsSuccess(t *testing.T) {
	f := eligibleStore()

	hs, err := newService(f).ListHotels(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, hs)
	assert.Empty(t, hs)
}

func TestListHotels_NilResultIsNotFound(t *testing.T) {
	f := eligibleStore()
	f.hotels = nil

	_, err := newService(f).ListHotels(context.Background(), userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListHotels_ReturnsStorageOrder(t *testing.T) {
	f := eligibleStore()
	f.hotels = []domain.Hotel{
		{ID: 2, Name: "Beira Mar", Image: "https://img/2.png", CreatedAt: now, UpdatedAt: now},
		{ID: 1, Name: "Centro", Image: "https://img/1.png", CreatedAt: now, UpdatedAt: now},
	}

	hs, err := newService(f).ListHotels(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, f.hotels, hs)
}

func TestListHotels_StorageError(t *testing.T) {
	f := eligibleStore()
	f.listErr = errors.New("deadlock")

	_, err := newService(f).ListHotels(context.Background(), userID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list hotels")
}

// ---- get by id ----

func TestGetHotelByID_WithRooms(t *testing.T) {
	f := eligibleStore()
	f.hotels = []domain.Hotel{{ID: 5, Name: "Serra", Image: "https://img/5.png", CreatedAt: now, UpdatedAt: now}}
	f.rooms[5] = []domain.Room{{ID: 50, Name: "101", Capacity: 3, HotelID: 5, CreatedAt: now, UpdatedAt: now}}

	h, err := newService(f).GetHotelByID(context.Background(), userID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), h.ID)
	assert.Equal(t, "Serra", h.Name)
	require.Len(t, h.Rooms, 1)
	assert.Equal(t, f.rooms[5][0], h.Rooms[0])
}

func TestGetHotelByID_NoRoomsIsEmptySlice(t *testing.T) {
	f := eligibleStore()
	f.hotels = []domain.Hotel{{ID: 5, Name: "Serra"}}

	h, err := newService(f).GetHotelByID(context.Background(), userID, 5)
	require.NoError(t, err)
	require.NotNil(t, h.Rooms)
	assert.Empty(t, h.Rooms)
}

func TestGetHotelByID_UnknownHotel(t *testing.T) {
	f := eligibleStore()
	f.hotels = []domain.Hotel{{ID: 5, Name: "Serra"}}

	for _, id := range []int64{0, -1, 6} {
		_, err := newService(f).GetHotelByID(context.Background(), userID, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, "hotel %d", id)
	}
}
