package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"event_hotels/internal/adapters/observability"
	"event_hotels/internal/domain"
)

// CatalogService serves the hotel catalog to attendees whose ticket includes lodging.
type CatalogService struct {
	enrollments domain.EnrollmentRepository
	tickets     domain.TicketRepository
	hotels      domain.HotelRepository
}

func NewCatalogService(e domain.EnrollmentRepository, t domain.TicketRepository, h domain.HotelRepository) *CatalogService {
	return &CatalogService{enrollments: e, tickets: t, hotels: h}
}

func (s *CatalogService) ListHotels(ctx context.Context, userID int64) ([]domain.Hotel, error) {
	if _, err := s.checkEligibility(ctx, userID); err != nil {
		return nil, err
	}
	hs, err := s.hotels.ListHotels(ctx)
	if err != nil {
		return nil, lookupErr("list hotels", err)
	}
	if hs == nil {
		return nil, domain.ErrNotFound
	}
	return hs, nil
}

func (s *CatalogService) GetHotelByID(ctx context.Context, userID, hotelID int64) (domain.HotelWithRooms, error) {
	if _, err := s.checkEligibility(ctx, userID); err != nil {
		return domain.HotelWithRooms{}, err
	}
	h, err := s.hotels.FindHotelWithRooms(ctx, hotelID)
	if err != nil {
		return domain.HotelWithRooms{}, lookupErr("find hotel", err)
	}
	if h.Rooms == nil {
		h.Rooms = []domain.Room{}
	}
	return h, nil
}

// checkEligibility resolves enrollment -> ticket -> ticket type and fails closed
// with ErrNotFound unless the ticket is a paid, in-person ticket that includes a hotel.
func (s *CatalogService) checkEligibility(ctx context.Context, userID int64) (domain.Ticket, error) {
	enr, err := s.enrollments.FindEnrollmentByUser(ctx, userID)
	if err != nil {
		return domain.Ticket{}, s.gateFailure(userID, "no_enrollment", lookupErr("find enrollment", err))
	}

	t, err := s.tickets.FindTicketByEnrollment(ctx, enr.ID)
	if err != nil {
		return domain.Ticket{}, s.gateFailure(userID, "no_ticket", lookupErr("find ticket", err))
	}

	if !t.GrantsHotelAccess() {
		return domain.Ticket{}, s.gateFailure(userID, "ineligible", domain.ErrNotFound)
	}

	observability.ObserveEligibility("pass")
	return t, nil
}

func (s *CatalogService) gateFailure(userID int64, outcome string, err error) error {
	if !errors.Is(err, domain.ErrNotFound) {
		outcome = "error"
	}
	observability.ObserveEligibility(outcome)
	log.Debug().Int64("user_id", userID).Str("outcome", outcome).Err(err).Msg("hotel access denied")
	return err
}

// lookupErr keeps ErrNotFound bare and wraps everything else with context.
func lookupErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
