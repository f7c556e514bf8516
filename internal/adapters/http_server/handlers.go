package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"event_hotels/internal/adapters/auth"
	"event_hotels/internal/domain"
)

// Catalog is the read side the handlers need.
type Catalog interface {
	ListHotels(ctx context.Context, userID int64) ([]domain.Hotel, error)
	GetHotelByID(ctx context.Context, userID, hotelID int64) (domain.HotelWithRooms, error)
}

type Handlers struct {
	Catalog Catalog
	Auth    *auth.Authenticator
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Group(func(r chi.Router) {
		r.Use(h.Auth.Middleware(writeUnauthorized))
		r.Get("/hotels", h.listHotels)
		r.Get("/hotels/{hotelId}", h.getHotel)
	})
}

// ---- response bodies ----

// isoTime renders like JavaScript's Date.toISOString: UTC with milliseconds.
type isoTime time.Time

func (t isoTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format("2006-01-02T15:04:05.000Z") + `"`), nil
}

type hotelBody struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	CreatedAt isoTime `json:"createdAt"`
	UpdatedAt isoTime `json:"updatedAt"`
}

type roomBody struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Capacity  int     `json:"capacity"`
	HotelID   int64   `json:"hotelId"`
	CreatedAt isoTime `json:"createdAt"`
	UpdatedAt isoTime `json:"updatedAt"`
}

type hotelWithRoomsBody struct {
	hotelBody
	Rooms []roomBody `json:"Rooms"`
}

func toHotelBody(h domain.Hotel) hotelBody {
	return hotelBody{ID: h.ID, Name: h.Name, Image: h.Image, CreatedAt: isoTime(h.CreatedAt), UpdatedAt: isoTime(h.UpdatedAt)}
}

func toHotelWithRoomsBody(h domain.HotelWithRooms) hotelWithRoomsBody {
	rooms := make([]roomBody, 0, len(h.Rooms))
	for _, r := range h.Rooms {
		rooms = append(rooms, roomBody{
			ID: r.ID, Name: r.Name, Capacity: r.Capacity, HotelID: r.HotelID,
			CreatedAt: isoTime(r.CreatedAt), UpdatedAt: isoTime(r.UpdatedAt),
		})
	}
	return hotelWithRoomsBody{hotelBody: toHotelBody(h.Hotel), Rooms: rooms}
}

// ---- helpers ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing or invalid bearer token")
}

// writeCatalogErr maps every non-auth failure to 404; storage faults are logged.
func writeCatalogErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeUnauthorized(w, r)
		return
	case !errors.Is(err, domain.ErrNotFound):
		log.Error().Err(err).Str("path", r.URL.Path).Msg("catalog lookup failed")
	}
	writeProblem(w, http.StatusNotFound, "Not Found", "hotel data not available")
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

// ---- handlers ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserID(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}
	hs, err := h.Catalog.ListHotels(r.Context(), uid)
	if err != nil {
		writeCatalogErr(w, r, err)
		return
	}
	out := make([]hotelBody, 0, len(hs))
	for _, x := range hs {
		out = append(out, toHotelBody(x))
	}
	writeJSON(w, r, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserID(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}
	// a non-numeric id can never match a hotel
	hotelID, err := strconv.ParseInt(chi.URLParam(r, "hotelId"), 10, 64)
	if err != nil {
		writeCatalogErr(w, r, domain.ErrNotFound)
		return
	}
	hw, err := h.Catalog.GetHotelByID(r.Context(), uid, hotelID)
	if err != nil {
		writeCatalogErr(w, r, err)
		return
	}
	writeJSON(w, r, toHotelWithRoomsBody(hw))
}
