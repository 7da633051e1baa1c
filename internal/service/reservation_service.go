package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/oceanview/hotel-reservation/internal/model"
	"github.com/oceanview/hotel-reservation/internal/repository"
)

// ReservationStore is the persistence contract the engine consumes.  Both
// the MySQL repository and the in-memory store satisfy it.  GetByNumber
// and Update must report missing records with repository.ErrNotFound.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	Update(ctx context.Context, res *model.Reservation) error
	GetByNumber(ctx context.Context, number string) (*model.Reservation, error)
	List(ctx context.Context) ([]model.Reservation, error)
	SearchByGuestName(ctx context.Context, name string) ([]model.Reservation, error)
	CountOverlapping(ctx context.Context, roomType model.RoomType, checkIn, checkOut time.Time) (int, error)
}

// ReservationInput carries the caller-supplied fields for creating or
// updating a reservation.  Dates must be UTC-midnight date values.
type ReservationInput struct {
	GuestName       string
	Address         string
	ContactNumber   string
	Email           string
	RoomType        model.RoomType
	CheckIn         time.Time
	CheckOut        time.Time
	NumberOfGuests  int
	SpecialRequests string
}

// ReservationService is the booking engine and lifecycle manager.
//
// The availability check and the subsequent insert form one atomic
// decision region: a mutex keyed by room type serializes concurrent
// bookings so two requests cannot both observe a free room and oversell
// the type.  Updates to an existing reservation are serialized per
// reservation number via striped locks so concurrent operators cannot
// lose each other's writes.
type ReservationService struct {
	store     ReservationStore
	roomLocks map[model.RoomType]*sync.Mutex
	resLocks  [64]sync.Mutex
}

// NewReservationService constructs a ReservationService on top of the
// given store.
func NewReservationService(store ReservationStore) *ReservationService {
	locks := make(map[model.RoomType]*sync.Mutex, len(model.RoomTypes()))
	for _, t := range model.RoomTypes() {
		locks[t] = &sync.Mutex{}
	}
	return &ReservationService{store: store, roomLocks: locks}
}

var contactNumberRe = regexp.MustCompile(`^[0-9]{10}$`)

// CreateReservation validates the request, checks room-type availability
// for the requested date window, prices the stay and persists a new
// CONFIRMED reservation.  On success exactly one store write occurs; on a
// validation or availability failure, none.
func (s *ReservationService) CreateReservation(ctx context.Context, in ReservationInput) (*model.Reservation, error) {
	if err := validateGuestFields(in); err != nil {
		return nil, err
	}
	if err := validateDates(in.CheckIn, in.CheckOut); err != nil {
		return nil, err
	}

	// Atomic decision region: count and insert under the room type's lock.
	mu := s.roomLocks[in.RoomType]
	mu.Lock()
	defer mu.Unlock()

	count, err := s.store.CountOverlapping(ctx, in.RoomType, in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	if count >= in.RoomType.MaxRooms() {
		return nil, validationErrorf("no rooms available for selected dates")
	}

	number, err := newReservationNumber()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	res := &model.Reservation{
		Number:          number,
		GuestName:       in.GuestName,
		Address:         in.Address,
		ContactNumber:   in.ContactNumber,
		Email:           in.Email,
		RoomType:        in.RoomType,
		CheckIn:         in.CheckIn,
		CheckOut:        in.CheckOut,
		Status:          model.StatusConfirmed,
		NumberOfGuests:  in.NumberOfGuests,
		SpecialRequests: in.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	res.TotalAmount = in.RoomType.RatePerNight() * int64(res.Nights())
	if err := s.store.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetByNumber returns the reservation with the given number.
func (s *ReservationService) GetByNumber(ctx context.Context, number string) (*model.Reservation, error) {
	res, err := s.store.GetByNumber(ctx, number)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Number: number}
	}
	return res, err
}

// List returns all reservations, newest first.
func (s *ReservationService) List(ctx context.Context) ([]model.Reservation, error) {
	return s.store.List(ctx)
}

// SearchByGuestName returns reservations whose guest name contains the
// given substring, case-insensitively.
func (s *ReservationService) SearchByGuestName(ctx context.Context, name string) ([]model.Reservation, error) {
	return s.store.SearchByGuestName(ctx, strings.TrimSpace(name))
}

// UpdateStatus moves a reservation to the given status and refreshes its
// updated-at timestamp.  Any known status is reachable from any current
// status; there is no transition table.
func (s *ReservationService) UpdateStatus(ctx context.Context, number string, status model.Status) (*model.Reservation, error) {
	if _, ok := model.ParseStatus(string(status)); !ok {
		return nil, validationErrorf("unknown status: %s", status)
	}
	mu := s.resLock(number)
	mu.Lock()
	defer mu.Unlock()

	res, err := s.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	res.Status = status
	res.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Cancel marks a reservation CANCELLED.  Cancelling an already-cancelled
// reservation is a no-op that succeeds.
func (s *ReservationService) Cancel(ctx context.Context, number string) (*model.Reservation, error) {
	return s.UpdateStatus(ctx, number, model.StatusCancelled)
}

// UpdateDetails overwrites the guest, room and date fields of a CONFIRMED
// reservation, re-validating the date range and recomputing the total.
// Reservations in any other status are rejected.  Availability is not
// re-checked against other bookings when dates or room type change.
func (s *ReservationService) UpdateDetails(ctx context.Context, number string, in ReservationInput) (*model.Reservation, error) {
	if err := validateGuestFields(in); err != nil {
		return nil, err
	}
	if err := validateDates(in.CheckIn, in.CheckOut); err != nil {
		return nil, err
	}

	mu := s.resLock(number)
	mu.Lock()
	defer mu.Unlock()

	res, err := s.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if res.Status != model.StatusConfirmed {
		return nil, validationErrorf("can only update CONFIRMED reservations")
	}
	res.GuestName = in.GuestName
	res.Address = in.Address
	res.ContactNumber = in.ContactNumber
	res.Email = in.Email
	res.RoomType = in.RoomType
	res.CheckIn = in.CheckIn
	res.CheckOut = in.CheckOut
	res.NumberOfGuests = in.NumberOfGuests
	res.SpecialRequests = in.SpecialRequests
	res.TotalAmount = in.RoomType.RatePerNight() * int64(res.Nights())
	res.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// resLock returns the striped mutex guarding the given reservation
// number.  Distinct numbers may share a stripe; that only over-serializes
// and never under-serializes.
func (s *ReservationService) resLock(number string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(number))
	return &s.resLocks[h.Sum32()%uint32(len(s.resLocks))]
}

func validateGuestFields(in ReservationInput) error {
	name := strings.TrimSpace(in.GuestName)
	if len(name) < 2 || len(name) > 100 {
		return validationErrorf("guest name must be between 2 and 100 characters")
	}
	if strings.TrimSpace(in.Address) == "" {
		return validationErrorf("address is required")
	}
	if !contactNumberRe.MatchString(in.ContactNumber) {
		return validationErrorf("contact number must be 10 digits")
	}
	if !in.RoomType.Valid() {
		return validationErrorf("unknown room type: %s", in.RoomType)
	}
	if in.NumberOfGuests < 1 || in.NumberOfGuests > 10 {
		return validationErrorf("number of guests must be between 1 and 10")
	}
	return nil
}

// validateDates enforces the date-range invariant: check-out strictly
// after check-in, and check-in no earlier than today (today allowed).
func validateDates(checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return validationErrorf("check-out date must be after check-in date")
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return validationErrorf("check-in date cannot be in the past")
	}
	return nil
}

// newReservationNumber allocates a guest-facing identifier that is unique
// across back-to-back calls: a nanosecond timestamp plus a random suffix,
// so two allocations within the same clock tick still differ.
func newReservationNumber() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("RES%d%s", time.Now().UTC().UnixNano(), strings.ToUpper(hex.EncodeToString(buf))), nil
}
