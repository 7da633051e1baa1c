package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/oceanview/hotel-reservation/internal/model"
	"github.com/oceanview/hotel-reservation/internal/queue"
	"github.com/oceanview/hotel-reservation/internal/repository"
	"github.com/oceanview/hotel-reservation/internal/service"
)

// newTestHandler builds a ReservationHandler over the in-memory store with
// a publisher stub that records events instead of dialing RabbitMQ.
func newTestHandler() (*ReservationHandler, *[]queue.ReservationConfirmedEvent) {
	svc := service.NewReservationService(repository.NewMemoryReservationStore())
	h := NewReservationHandler(svc)
	var events []queue.ReservationConfirmedEvent
	h.Publish = func(_ context.Context, ev queue.ReservationConfirmedEvent) error {
		events = append(events, ev)
		return nil
	}
	return h, &events
}

func dateStr(n int) string {
	return time.Now().UTC().AddDate(0, 0, n).Format(model.DateLayout)
}

func validBody() string {
	return fmt.Sprintf(`{
		"guest_name": "John Doe",
		"address": "123 Main St, Colombo",
		"contact_number": "0771234567",
		"email": "john@example.com",
		"room_type": "DELUXE",
		"check_in_date": %q,
		"check_out_date": %q,
		"number_of_guests": 2
	}`, dateStr(1), dateStr(3))
}

func doJSON(h echo.HandlerFunc, method, target, body string, setup func(echo.Context)) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	return rec, h(c)
}

func TestCreateReservationEndpoint(t *testing.T) {
	h, events := newTestHandler()

	rec, err := doJSON(h.Create, http.MethodPost, "/v1/reservations", validBody(), nil)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ReservationNumber string `json:"reservation_number"`
		Status            string `json:"status"`
		TotalAmount       int64  `json:"total_amount"`
		NumberOfNights    int    `json:"number_of_nights"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Status != "CONFIRMED" {
		t.Errorf("status = %s, want CONFIRMED", resp.Status)
	}
	if resp.TotalAmount != 16000 || resp.NumberOfNights != 2 {
		t.Errorf("total/nights = %d/%d, want 16000/2", resp.TotalAmount, resp.NumberOfNights)
	}
	if !strings.HasPrefix(resp.ReservationNumber, "RES") {
		t.Errorf("reservation number %q missing RES prefix", resp.ReservationNumber)
	}
	if len(*events) != 1 || (*events)[0].ReservationNumber != resp.ReservationNumber {
		t.Errorf("expected one confirmation event for %s, got %+v", resp.ReservationNumber, *events)
	}
}

func TestCreateReservationBadDates(t *testing.T) {
	h, events := newTestHandler()

	cases := []struct {
		name string
		body string
	}{
		{"malformed date", strings.Replace(validBody(), dateStr(1), "01/09/2026", 1)},
		{"check-out before check-in", fmt.Sprintf(`{
			"guest_name": "John Doe", "address": "123 Main St", "contact_number": "0771234567",
			"room_type": "DELUXE", "check_in_date": %q, "check_out_date": %q, "number_of_guests": 2
		}`, dateStr(3), dateStr(1))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := doJSON(h.Create, http.MethodPost, "/v1/reservations", tc.body, nil)
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
			}
		})
	}
	if len(*events) != 0 {
		t.Errorf("no events expected for rejected requests, got %d", len(*events))
	}
}

func TestGetReservationNotFound(t *testing.T) {
	h, _ := newTestHandler()

	rec, err := doJSON(h.Get, http.MethodGet, "/v1/reservations/RES404", "", func(c echo.Context) {
		c.SetParamNames("number")
		c.SetParamValues("RES404")
	})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCancelEndpoint(t *testing.T) {
	h, _ := newTestHandler()

	rec, err := doJSON(h.Create, http.MethodPost, "/v1/reservations", validBody(), nil)
	if err != nil || rec.Code != http.StatusCreated {
		t.Fatalf("create failed: err=%v code=%d", err, rec.Code)
	}
	var created struct {
		ReservationNumber string `json:"reservation_number"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	rec, err = doJSON(h.Cancel, http.MethodPut, "/v1/reservations/x/cancel", "", func(c echo.Context) {
		c.SetParamNames("number")
		c.SetParamValues(created.ReservationNumber)
	})
	if err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var cancelled struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &cancelled); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cancelled.Status != "CANCELLED" {
		t.Errorf("status = %s, want CANCELLED", cancelled.Status)
	}
}

func TestUpdateStatusEndpointRejectsUnknownStatus(t *testing.T) {
	h, _ := newTestHandler()

	rec, err := doJSON(h.UpdateStatus, http.MethodPut, "/v1/reservations/x/status",
		`{"status":"TELEPORTED"}`, func(c echo.Context) {
			c.SetParamNames("number")
			c.SetParamValues("RES1")
		})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	h, _ := newTestHandler()

	for _, name := range []string{"Alice Perera", "Bob Fernando"} {
		body := strings.Replace(validBody(), "John Doe", name, 1)
		if rec, err := doJSON(h.Create, http.MethodPost, "/v1/reservations", body, nil); err != nil || rec.Code != http.StatusCreated {
			t.Fatalf("create %s failed: err=%v code=%d", name, err, rec.Code)
		}
	}

	rec, err := doJSON(h.Search, http.MethodGet, "/v1/reservations/search?name=alice", "", nil)
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var found []struct {
		GuestName string `json:"guest_name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &found); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(found) != 1 || found[0].GuestName != "Alice Perera" {
		t.Errorf("found = %+v, want just Alice Perera", found)
	}

	rec, err = doJSON(h.Search, http.MethodGet, "/v1/reservations/search", "", nil)
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing name param: status = %d, want 400", rec.Code)
	}
}

func TestRoomTypesEndpoint(t *testing.T) {
	rec, err := doJSON(RoomTypes, http.MethodGet, "/v1/room-types", "", nil)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var types []struct {
		RoomType     string `json:"room_type"`
		RatePerNight int64  `json:"rate_per_night"`
		MaxRooms     int    `json:"max_rooms"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &types); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(types) != 5 {
		t.Fatalf("got %d room types, want 5", len(types))
	}
	if types[1].RoomType != "DELUXE" || types[1].RatePerNight != 8000 || types[1].MaxRooms != 15 {
		t.Errorf("unexpected DELUXE row: %+v", types[1])
	}
}
