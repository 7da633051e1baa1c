package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/oceanview/hotel-reservation/internal/model"
	"github.com/oceanview/hotel-reservation/internal/repository"
)

func newTestService() (*ReservationService, *repository.MemoryReservationStore) {
	store := repository.NewMemoryReservationStore()
	return NewReservationService(store), store
}

// futureDate returns today (UTC midnight) shifted by n days.
func futureDate(n int) time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, n)
}

func validInput() ReservationInput {
	return ReservationInput{
		GuestName:      "John Doe",
		Address:        "123 Main St, Colombo",
		ContactNumber:  "0771234567",
		Email:          "john@example.com",
		RoomType:       model.RoomDeluxe,
		CheckIn:        futureDate(1),
		CheckOut:       futureDate(3),
		NumberOfGuests: 2,
	}
}

func TestCreateReservation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	res, err := svc.CreateReservation(ctx, validInput())
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if res.Status != model.StatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", res.Status)
	}
	if res.Nights() != 2 {
		t.Errorf("nights = %d, want 2", res.Nights())
	}
	if res.TotalAmount != 16000 {
		t.Errorf("total = %d, want 16000 (8000/night x 2 nights)", res.TotalAmount)
	}
	if !strings.HasPrefix(res.Number, "RES") || len(res.Number) <= 3 {
		t.Errorf("reservation number %q should be non-empty with RES prefix", res.Number)
	}
	if res.ID == 0 {
		t.Error("store should assign a surrogate key")
	}
	if !res.CreatedAt.Equal(res.UpdatedAt) {
		t.Error("createdAt and updatedAt should match at creation")
	}

	second, err := svc.CreateReservation(ctx, validInput())
	if err != nil {
		t.Fatalf("second CreateReservation: %v", err)
	}
	if second.Number == res.Number {
		t.Errorf("reservation numbers must be unique, both got %q", res.Number)
	}
}

func TestCreateReservationValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ReservationInput)
	}{
		{"check-out equals check-in", func(in *ReservationInput) { in.CheckOut = in.CheckIn }},
		{"check-out before check-in", func(in *ReservationInput) { in.CheckIn, in.CheckOut = in.CheckOut, in.CheckIn }},
		{"check-in in the past", func(in *ReservationInput) { in.CheckIn = futureDate(-1); in.CheckOut = futureDate(1) }},
		{"zero guests", func(in *ReservationInput) { in.NumberOfGuests = 0 }},
		{"too many guests", func(in *ReservationInput) { in.NumberOfGuests = 11 }},
		{"guest name too short", func(in *ReservationInput) { in.GuestName = "J" }},
		{"guest name too long", func(in *ReservationInput) { in.GuestName = strings.Repeat("x", 101) }},
		{"missing address", func(in *ReservationInput) { in.Address = "  " }},
		{"bad contact number", func(in *ReservationInput) { in.ContactNumber = "12345" }},
		{"unknown room type", func(in *ReservationInput) { in.RoomType = "PENTHOUSE" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newTestService()
			in := validInput()
			tc.mutate(&in)

			_, err := svc.CreateReservation(context.Background(), in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			all, _ := store.List(context.Background())
			if len(all) != 0 {
				t.Errorf("store has %d reservations after rejected request, want 0", len(all))
			}
		})
	}
}

func TestCreateReservationTodayCheckInAllowed(t *testing.T) {
	svc, _ := newTestService()
	in := validInput()
	in.CheckIn = futureDate(0)
	in.CheckOut = futureDate(1)
	if _, err := svc.CreateReservation(context.Background(), in); err != nil {
		t.Fatalf("check-in today should be allowed: %v", err)
	}
}

func TestCapacityExhaustion(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	in := validInput()
	in.RoomType = model.RoomFamily // capacity 8
	for i := 0; i < in.RoomType.MaxRooms(); i++ {
		if _, err := svc.CreateReservation(ctx, in); err != nil {
			t.Fatalf("booking %d of %d: %v", i+1, in.RoomType.MaxRooms(), err)
		}
	}

	_, err := svc.CreateReservation(ctx, in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError once capacity is reached", err)
	}
	if !strings.Contains(verr.Error(), "no rooms available") {
		t.Errorf("error = %q, want a no-rooms-available message", verr.Error())
	}
}

func TestAdjacentStaysDoNotCollide(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	in := validInput()
	in.RoomType = model.RoomPresidential // capacity 3
	in.CheckIn = futureDate(1)
	in.CheckOut = futureDate(3)
	for i := 0; i < 3; i++ {
		if _, err := svc.CreateReservation(ctx, in); err != nil {
			t.Fatalf("filling capacity: %v", err)
		}
	}

	// A stay starting the day the others end shares no night with them.
	in.CheckIn = futureDate(3)
	in.CheckOut = futureDate(5)
	if _, err := svc.CreateReservation(ctx, in); err != nil {
		t.Fatalf("back-to-back stay should not count against capacity: %v", err)
	}
}

func TestCancelledReservationFreesCapacity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	in := validInput()
	in.RoomType = model.RoomPresidential
	var last *model.Reservation
	for i := 0; i < 3; i++ {
		res, err := svc.CreateReservation(ctx, in)
		if err != nil {
			t.Fatalf("filling capacity: %v", err)
		}
		last = res
	}
	if _, err := svc.CreateReservation(ctx, in); err == nil {
		t.Fatal("expected rejection at capacity")
	}

	if _, err := svc.Cancel(ctx, last.Number); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := svc.CreateReservation(ctx, in); err != nil {
		t.Fatalf("cancelled reservation should free a room: %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	res, err := svc.CreateReservation(ctx, validInput())
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}

	// Any known status is reachable from any other; walk an arbitrary path.
	for _, status := range []model.Status{
		model.StatusCheckedIn, model.StatusCheckedOut, model.StatusNoShow, model.StatusConfirmed,
	} {
		updated, err := svc.UpdateStatus(ctx, res.Number, status)
		if err != nil {
			t.Fatalf("UpdateStatus(%s): %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("status = %s, want %s", updated.Status, status)
		}
	}

	if _, err := svc.UpdateStatus(ctx, res.Number, model.Status("LOST")); err == nil {
		t.Error("unknown status should be rejected")
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.UpdateStatus(context.Background(), "RES000", model.StatusCheckedIn)
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	res, err := svc.CreateReservation(ctx, validInput())
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	for i := 0; i < 2; i++ {
		cancelled, err := svc.Cancel(ctx, res.Number)
		if err != nil {
			t.Fatalf("Cancel #%d: %v", i+1, err)
		}
		if cancelled.Status != model.StatusCancelled {
			t.Errorf("status = %s, want CANCELLED", cancelled.Status)
		}
	}
}

func TestUpdateDetailsRecomputesTotal(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	res, err := svc.CreateReservation(ctx, validInput())
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}

	in := validInput()
	in.GuestName = "Jane Doe"
	in.RoomType = model.RoomSuite
	in.CheckIn = futureDate(2)
	in.CheckOut = futureDate(5)
	updated, err := svc.UpdateDetails(ctx, res.Number, in)
	if err != nil {
		t.Fatalf("UpdateDetails: %v", err)
	}
	if updated.GuestName != "Jane Doe" {
		t.Errorf("guest name = %q, want Jane Doe", updated.GuestName)
	}
	if updated.TotalAmount != 36000 {
		t.Errorf("total = %d, want 36000 (12000/night x 3 nights)", updated.TotalAmount)
	}
	if updated.Nights() != 3 {
		t.Errorf("nights = %d, want 3", updated.Nights())
	}
	if updated.Number != res.Number {
		t.Error("reservation number must not change on update")
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Error("updatedAt must not precede createdAt")
	}
}

func TestUpdateDetailsRequiresConfirmed(t *testing.T) {
	for _, status := range []model.Status{
		model.StatusCheckedIn, model.StatusCheckedOut, model.StatusCancelled, model.StatusNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			svc, store := newTestService()
			ctx := context.Background()

			res, err := svc.CreateReservation(ctx, validInput())
			if err != nil {
				t.Fatalf("CreateReservation: %v", err)
			}
			if _, err := svc.UpdateStatus(ctx, res.Number, status); err != nil {
				t.Fatalf("UpdateStatus: %v", err)
			}

			in := validInput()
			in.GuestName = "Someone Else"
			_, err = svc.UpdateDetails(ctx, res.Number, in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}

			stored, err := store.GetByNumber(ctx, res.Number)
			if err != nil {
				t.Fatalf("GetByNumber: %v", err)
			}
			if stored.GuestName != "John Doe" {
				t.Errorf("rejected update must leave the record unchanged, guest name = %q", stored.GuestName)
			}
		})
	}
}

func TestUpdateDetailsDoesNotRecheckAvailability(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// Fill the SUITE capacity for the window.
	in := validInput()
	in.RoomType = model.RoomSuite
	for i := 0; i < in.RoomType.MaxRooms(); i++ {
		if _, err := svc.CreateReservation(ctx, in); err != nil {
			t.Fatalf("filling capacity: %v", err)
		}
	}

	// Moving a STANDARD reservation into the full window succeeds: update
	// validates dates only, not availability.
	other := validInput()
	other.RoomType = model.RoomStandard
	res, err := svc.CreateReservation(ctx, other)
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	other.RoomType = model.RoomSuite
	if _, err := svc.UpdateDetails(ctx, res.Number, other); err != nil {
		t.Fatalf("UpdateDetails does not re-check availability and must succeed: %v", err)
	}
}

func TestSearchByGuestName(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i, name := range []string{"Alice Perera", "Bob Fernando", "alice de silva"} {
		in := validInput()
		in.GuestName = name
		in.RoomType = model.RoomStandard
		in.CheckIn = futureDate(1 + i*3)
		in.CheckOut = futureDate(3 + i*3)
		if _, err := svc.CreateReservation(ctx, in); err != nil {
			t.Fatalf("CreateReservation(%s): %v", name, err)
		}
	}

	found, err := svc.SearchByGuestName(ctx, "ALICE")
	if err != nil {
		t.Fatalf("SearchByGuestName: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("found %d reservations, want 2 (search is case-insensitive substring)", len(found))
	}
}

func TestConcurrentBookingsNeverOversell(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	const workers = 24
	capacity := model.RoomPresidential.MaxRooms()

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := validInput()
			in.RoomType = model.RoomPresidential
			in.GuestName = fmt.Sprintf("Guest %02d", i)
			_, err := svc.CreateReservation(ctx, in)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("unexpected error type: %v", err)
		}
	}
	if succeeded != capacity {
		t.Errorf("%d bookings succeeded, want exactly %d", succeeded, capacity)
	}

	count, err := store.CountOverlapping(ctx, model.RoomPresidential, futureDate(1), futureDate(3))
	if err != nil {
		t.Fatalf("CountOverlapping: %v", err)
	}
	if count != capacity {
		t.Errorf("store holds %d overlapping reservations, want %d", count, capacity)
	}
}
