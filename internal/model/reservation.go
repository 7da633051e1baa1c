package model

import "time"

// Status tracks where a reservation is in its lifecycle.  A reservation
// starts out CONFIRMED and is moved between states by the service layer;
// records are never deleted, so terminal states remain on file for history.
type Status string

const (
	StatusConfirmed  Status = "CONFIRMED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusCheckedOut Status = "CHECKED_OUT"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

var knownStatuses = map[Status]bool{
	StatusConfirmed:  true,
	StatusCheckedIn:  true,
	StatusCheckedOut: true,
	StatusCancelled:  true,
	StatusNoShow:     true,
}

// ParseStatus maps a string to a known Status.  The boolean is false for
// unknown values.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, knownStatuses[st]
}

// CountsAgainstCapacity reports whether a reservation in this status
// occupies a room for availability purposes.  Only CONFIRMED and
// CHECKED_IN reservations block other bookings.
func (s Status) CountsAgainstCapacity() bool {
	return s == StatusConfirmed || s == StatusCheckedIn
}

// DateLayout is the wire and database format for check-in/check-out dates.
const DateLayout = "2006-01-02"

// Reservation is the sole aggregate of the system: one guest's stay in one
// room of a given type over a half-open date range [CheckIn, CheckOut).
//
// Number is the guest-facing identifier, unique across all reservations
// ever created and immutable after creation.  ID is the store-assigned
// surrogate key.  TotalAmount is derived (rate × nights) and recomputed by
// the service whenever dates or room type change; the nightly count itself
// is never persisted.
type Reservation struct {
	ID              uint64
	Number          string
	GuestName       string
	Address         string
	ContactNumber   string
	Email           string
	RoomType        RoomType
	CheckIn         time.Time // date only, UTC midnight
	CheckOut        time.Time // date only, UTC midnight
	Status          Status
	NumberOfGuests  int
	SpecialRequests string
	TotalAmount     int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Nights returns the length of the stay in nights.  Dates are held at UTC
// midnight, so the difference is always a whole number of days.
func (r *Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Overlaps reports whether the reservation's date range shares at least one
// night with [in, out) under half-open semantics.  Adjacent stays, where one
// guest checks out the day another checks in, do not overlap.
func (r *Reservation) Overlaps(in, out time.Time) bool {
	return r.CheckIn.Before(out) && r.CheckOut.After(in)
}
