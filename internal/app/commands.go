package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"event_hotels/internal/domain"
)

// SeedHotel is one catalog entry in a seed file.
type SeedHotel struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Image string     `json:"image"`
	Rooms []SeedRoom `json:"rooms"`
}

type SeedRoom struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type SeedSummary struct {
	Hotels int
	Rooms  int
	Failed int
}

// SeedService loads the hotel catalog. It is the only writer and is never
// reachable from the HTTP API.
type SeedService struct {
	w domain.CatalogWriter
}

func NewSeedService(w domain.CatalogWriter) *SeedService {
	return &SeedService{w: w}
}

// LoadSeedFile reads a JSON array of hotels with nested rooms.
func LoadSeedFile(path string) ([]SeedHotel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var out []SeedHotel
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return out, nil
}

func (e SeedHotel) validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("hotel name is required")
	}
	for i, r := range e.Rooms {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("room %d: name is required", i)
		}
		if r.Capacity <= 0 {
			return fmt.Errorf("room %q: capacity must be positive", r.Name)
		}
	}
	return nil
}

// SeedHotel upserts the hotel first so its rooms can reference it, then each room.
// It returns the number of rooms written.
func (s *SeedService) SeedHotel(ctx context.Context, e SeedHotel) (int, error) {
	if err := e.validate(); err != nil {
		return 0, err
	}
	hotelID, err := s.w.UpsertHotel(ctx, domain.Hotel{ID: e.ID, Name: e.Name, Image: e.Image})
	if err != nil {
		return 0, fmt.Errorf("upsert hotel %q: %w", e.Name, err)
	}
	for i, r := range e.Rooms {
		if _, err := s.w.UpsertRoom(ctx, domain.Room{ID: r.ID, Name: r.Name, Capacity: r.Capacity, HotelID: hotelID}); err != nil {
			return i, fmt.Errorf("upsert room %q of hotel %d: %w", r.Name, hotelID, err)
		}
	}
	return len(e.Rooms), nil
}

// SeedAll seeds entries with at most workers concurrent hotels. Per-hotel
// failures are logged and counted; only a cancelled context aborts the run.
func (s *SeedService) SeedAll(ctx context.Context, entries []SeedHotel, workers int) (SeedSummary, error) {
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg                    sync.WaitGroup
		hotels, rooms, failed atomic.Int64
	)

	for _, e := range entries {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return summarize(&hotels, &rooms, &failed), err
		}

		wg.Add(1)
		go func(e SeedHotel) {
			defer wg.Done()
			defer sem.Release(1)

			n, err := s.SeedHotel(ctx, e)
			rooms.Add(int64(n))
			if err != nil {
				failed.Add(1)
				log.Warn().Int64("id", e.ID).Str("name", e.Name).Err(err).Msg("seed hotel failed")
				return
			}
			hotels.Add(1)
			log.Debug().Int64("id", e.ID).Int("rooms", n).Msg("seed hotel ok")
		}(e)
	}

	wg.Wait()
	return summarize(&hotels, &rooms, &failed), nil
}

func summarize(hotels, rooms, failed *atomic.Int64) SeedSummary {
	return SeedSummary{Hotels: int(hotels.Load()), Rooms: int(rooms.Load()), Failed: int(failed.Load())}
}
