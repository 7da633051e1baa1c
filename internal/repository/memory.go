package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oceanview/hotel-reservation/internal/model"
)

// MemoryReservationStore is an in-memory implementation of the reservation
// store contract.  It backs the test suite and local runs without MySQL.
// All reads and writes copy the record so callers never share memory with
// the store.
type MemoryReservationStore struct {
	mu       sync.RWMutex
	seq      uint64
	byNumber map[string]model.Reservation
}

// NewMemoryReservationStore returns an empty in-memory store.
func NewMemoryReservationStore() *MemoryReservationStore {
	return &MemoryReservationStore{byNumber: make(map[string]model.Reservation)}
}

// Create stores a new reservation and assigns the surrogate key.
func (s *MemoryReservationStore) Create(_ context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	res.ID = s.seq
	s.byNumber[res.Number] = *res
	return nil
}

// Update replaces the stored record for the reservation's number.
func (s *MemoryReservationStore) Update(_ context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byNumber[res.Number]; !ok {
		return ErrNotFound
	}
	s.byNumber[res.Number] = *res
	return nil
}

// GetByNumber returns a copy of the reservation with the given number, or
// ErrNotFound.
func (s *MemoryReservationStore) GetByNumber(_ context.Context, number string) (*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.byNumber[number]
	if !ok {
		return nil, ErrNotFound
	}
	out := res
	return &out, nil
}

// List returns all reservations, newest first.
func (s *MemoryReservationStore) List(_ context.Context) ([]model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Reservation, 0, len(s.byNumber))
	for _, res := range s.byNumber {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// SearchByGuestName returns reservations whose guest name contains the
// substring, case-insensitively, newest first.
func (s *MemoryReservationStore) SearchByGuestName(ctx context.Context, name string) ([]model.Reservation, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(name)
	out := make([]model.Reservation, 0)
	for _, res := range all {
		if strings.Contains(strings.ToLower(res.GuestName), needle) {
			out = append(out, res)
		}
	}
	return out, nil
}

// CountOverlapping counts room-occupying reservations of the given type
// that overlap [checkIn, checkOut) half-open.
func (s *MemoryReservationStore) CountOverlapping(_ context.Context, roomType model.RoomType, checkIn, checkOut time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, res := range s.byNumber {
		if res.RoomType != roomType || !res.Status.CountsAgainstCapacity() {
			continue
		}
		if res.Overlaps(checkIn, checkOut) {
			count++
		}
	}
	return count, nil
}
