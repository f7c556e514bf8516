package mysql

import (
	"context"
	"database/sql"
	"errors"

	"event_hotels/internal/adapters/observability"
	"event_hotels/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) FindEnrollmentByUser(ctx context.Context, userID int64) (domain.Enrollment, error) {
	var e domain.Enrollment
	var (
		addrID                                      sql.NullInt64
		cep, street, city, state, num, neighborhood sql.NullString
	)
	err := r.db.QueryRowContext(ctx, findEnrollmentByUserSQL, userID).Scan(
		&e.ID, &e.UserID, &e.Name,
		&addrID, &cep, &street, &city, &state, &num, &neighborhood,
	)
	if err != nil {
		return domain.Enrollment{}, notFound(err)
	}
	if addrID.Valid {
		e.Address = &domain.Address{
			ID:           addrID.Int64,
			EnrollmentID: e.ID,
			CEP:          cep.String,
			Street:       street.String,
			City:         city.String,
			State:        state.String,
			Number:       num.String,
			Neighborhood: neighborhood.String,
		}
	}
	return e, nil
}

func (r *Repo) FindTicketByEnrollment(ctx context.Context, enrollmentID int64) (domain.Ticket, error) {
	var t domain.Ticket
	var status string
	var (
		typeID                  sql.NullInt64
		typeName                sql.NullString
		price                   sql.NullInt64
		isRemote, includesHotel sql.NullBool
	)
	err := r.db.QueryRowContext(ctx, findTicketByEnrollmentSQL, enrollmentID).Scan(
		&t.ID, &t.EnrollmentID, &status, &t.CreatedAt, &t.UpdatedAt,
		&typeID, &typeName, &price, &isRemote, &includesHotel,
	)
	if err != nil {
		return domain.Ticket{}, notFound(err)
	}
	t.Status = domain.TicketStatus(status)
	if typeID.Valid {
		t.TicketType = &domain.TicketType{
			ID:            typeID.Int64,
			Name:          typeName.String,
			Price:         int(price.Int64),
			IsRemote:      isRemote.Bool,
			IncludesHotel: includesHotel.Bool,
		}
	}
	return t, nil
}

// ListHotels always returns a non-nil slice on success.
func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Hotel, 0)
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) FindHotelWithRooms(ctx context.Context, hotelID int64) (domain.HotelWithRooms, error) {
	var hw domain.HotelWithRooms
	if err := r.db.QueryRowContext(ctx, findHotelSQL, hotelID).Scan(
		&hw.ID, &hw.Name, &hw.Image, &hw.CreatedAt, &hw.UpdatedAt,
	); err != nil {
		return domain.HotelWithRooms{}, notFound(err)
	}

	rows, err := r.db.QueryContext(ctx, listRoomsByHotelSQL, hotelID)
	if err != nil {
		return domain.HotelWithRooms{}, err
	}
	defer rows.Close()

	hw.Rooms = make([]domain.Room, 0)
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.HotelID, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return domain.HotelWithRooms{}, err
		}
		hw.Rooms = append(hw.Rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return domain.HotelWithRooms{}, err
	}
	return hw, nil
}

func (r *Repo) FindSessionByToken(ctx context.Context, token string) (domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRowContext(ctx, findSessionByTokenSQL, token).Scan(&s.ID, &s.UserID, &s.Token)
	switch {
	case err == nil:
		observability.ObserveSession("mysql", "hit")
		return s, nil
	case errors.Is(err, sql.ErrNoRows):
		observability.ObserveSession("mysql", "miss")
		return domain.Session{}, domain.ErrNotFound
	default:
		observability.ObserveSession("mysql", "error")
		return domain.Session{}, err
	}
}

// UpsertHotel inserts a new hotel when h.ID is zero, otherwise inserts or
// updates the row with that id. It returns the hotel id.
func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) (int64, error) {
	if h.ID == 0 {
		res, err := r.db.ExecContext(ctx, insertHotelSQL, h.Name, h.Image)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}
	if _, err := r.db.ExecContext(ctx, upsertHotelSQL, h.ID, h.Name, h.Image); err != nil {
		return 0, err
	}
	return h.ID, nil
}

func (r *Repo) UpsertRoom(ctx context.Context, rm domain.Room) (int64, error) {
	if rm.ID == 0 {
		res, err := r.db.ExecContext(ctx, insertRoomSQL, rm.Name, rm.Capacity, rm.HotelID)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}
	if _, err := r.db.ExecContext(ctx, upsertRoomSQL, rm.ID, rm.Name, rm.Capacity, rm.HotelID); err != nil {
		return 0, err
	}
	return rm.ID, nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
