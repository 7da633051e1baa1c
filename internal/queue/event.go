// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// ReservationConfirmedEvent is published when a reservation is
// successfully created.  It carries enough information for downstream
// consumers to log, notify, or feed analytics without querying the
// primary database.
type ReservationConfirmedEvent struct {
	ReservationNumber string `json:"reservation_number"`
	GuestName         string `json:"guest_name"`
	RoomType          string `json:"room_type"`
	CheckInDate       string `json:"check_in_date"`
	CheckOutDate      string `json:"check_out_date"`
	Nights            int    `json:"nights"`
	NumberOfGuests    int    `json:"number_of_guests"`
	TotalAmount       int64  `json:"total_amount"`
	ConfirmedAt       string `json:"confirmed_at"`
}
