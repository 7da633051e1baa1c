package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/oceanview/hotel-reservation/internal/model"
	"github.com/oceanview/hotel-reservation/internal/queue"
	"github.com/oceanview/hotel-reservation/internal/service"
)

// ReservationHandler exposes the booking engine over HTTP.  JWT
// authentication and role checks happen in middleware before any of the
// protected methods run; the public intake endpoint reaches the same
// engine path without them.
type ReservationHandler struct {
	Svc *service.ReservationService

	// Publish sends the confirmation event after a successful booking.
	// Failures are ignored: the reservation is already persisted.
	Publish func(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

// NewReservationHandler constructs a ReservationHandler wired to the
// RabbitMQ publisher.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Svc: svc, Publish: queue.PublishReservationConfirmed}
}

type reservationRequest struct {
	GuestName       string `json:"guest_name"`
	Address         string `json:"address"`
	ContactNumber   string `json:"contact_number"`
	Email           string `json:"email"`
	RoomType        string `json:"room_type"`
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`
	NumberOfGuests  int    `json:"number_of_guests"`
	SpecialRequests string `json:"special_requests"`
}

type reservationResponse struct {
	ID                uint64    `json:"id"`
	ReservationNumber string    `json:"reservation_number"`
	GuestName         string    `json:"guest_name"`
	Address           string    `json:"address"`
	ContactNumber     string    `json:"contact_number"`
	Email             string    `json:"email"`
	RoomType          string    `json:"room_type"`
	CheckInDate       string    `json:"check_in_date"`
	CheckOutDate      string    `json:"check_out_date"`
	Status            string    `json:"status"`
	NumberOfGuests    int       `json:"number_of_guests"`
	SpecialRequests   string    `json:"special_requests,omitempty"`
	TotalAmount       int64     `json:"total_amount"`
	NumberOfNights    int       `json:"number_of_nights"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toResponse(res *model.Reservation) reservationResponse {
	return reservationResponse{
		ID:                res.ID,
		ReservationNumber: res.Number,
		GuestName:         res.GuestName,
		Address:           res.Address,
		ContactNumber:     res.ContactNumber,
		Email:             res.Email,
		RoomType:          string(res.RoomType),
		CheckInDate:       res.CheckIn.Format(model.DateLayout),
		CheckOutDate:      res.CheckOut.Format(model.DateLayout),
		Status:            string(res.Status),
		NumberOfGuests:    res.NumberOfGuests,
		SpecialRequests:   res.SpecialRequests,
		TotalAmount:       res.TotalAmount,
		NumberOfNights:    res.Nights(),
		CreatedAt:         res.CreatedAt,
		UpdatedAt:         res.UpdatedAt,
	}
}

// toInput converts the wire request into a service input.  Dates must be
// in YYYY-MM-DD form; anything else is rejected before reaching the
// engine.  Room-type validity is the engine's concern.
func (req reservationRequest) toInput() (service.ReservationInput, error) {
	checkIn, err := time.ParseInLocation(model.DateLayout, req.CheckInDate, time.UTC)
	if err != nil {
		return service.ReservationInput{}, errors.New("check_in_date must be formatted as YYYY-MM-DD")
	}
	checkOut, err := time.ParseInLocation(model.DateLayout, req.CheckOutDate, time.UTC)
	if err != nil {
		return service.ReservationInput{}, errors.New("check_out_date must be formatted as YYYY-MM-DD")
	}
	return service.ReservationInput{
		GuestName:       req.GuestName,
		Address:         req.Address,
		ContactNumber:   req.ContactNumber,
		Email:           req.Email,
		RoomType:        model.RoomType(req.RoomType),
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
	}, nil
}

// writeServiceError maps engine errors onto HTTP statuses: validation
// failures are 400, unknown reservation numbers 404, anything else 500.
func writeServiceError(c echo.Context, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
	}
	var nferr *service.NotFoundError
	if errors.As(err, &nferr) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": nferr.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// Create handles POST /v1/reservations and POST /v1/reservations/public.
// On success it returns 201 with the reservation snapshot and publishes a
// confirmation event.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	res, err := h.Svc.CreateReservation(c.Request().Context(), in)
	if err != nil {
		return writeServiceError(c, err)
	}

	if h.Publish != nil {
		_ = h.Publish(c.Request().Context(), queue.ReservationConfirmedEvent{
			ReservationNumber: res.Number,
			GuestName:         res.GuestName,
			RoomType:          string(res.RoomType),
			CheckInDate:       res.CheckIn.Format(model.DateLayout),
			CheckOutDate:      res.CheckOut.Format(model.DateLayout),
			Nights:            res.Nights(),
			NumberOfGuests:    res.NumberOfGuests,
			TotalAmount:       res.TotalAmount,
			ConfirmedAt:       res.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, toResponse(res))
}

// Get handles GET /v1/reservations/:number.
func (h *ReservationHandler) Get(c echo.Context) error {
	res, err := h.Svc.GetByNumber(c.Request().Context(), c.Param("number"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toResponse(res))
}

// List handles GET /v1/reservations.
func (h *ReservationHandler) List(c echo.Context) error {
	all, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toResponseList(all))
}

// Search handles GET /v1/reservations/search?name=.
func (h *ReservationHandler) Search(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name query parameter is required"})
	}
	found, err := h.Svc.SearchByGuestName(c.Request().Context(), name)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toResponseList(found))
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /v1/reservations/:number/status.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status, ok := model.ParseStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status: " + req.Status})
	}
	res, err := h.Svc.UpdateStatus(c.Request().Context(), c.Param("number"), status)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toResponse(res))
}

// Cancel handles PUT /v1/reservations/:number/cancel.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	res, err := h.Svc.Cancel(c.Request().Context(), c.Param("number"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toResponse(res))
}

// Update handles PUT /v1/reservations/:number.
func (h *ReservationHandler) Update(c echo.Context) error {
	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	in, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res, err := h.Svc.UpdateDetails(c.Request().Context(), c.Param("number"), in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toResponse(res))
}

func toResponseList(all []model.Reservation) []reservationResponse {
	out := make([]reservationResponse, 0, len(all))
	for i := range all {
		out = append(out, toResponse(&all[i]))
	}
	return out
}
