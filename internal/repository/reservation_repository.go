package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/oceanview/hotel-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations backed by the
// `reservations` table.  Dates are stored as DATE columns and all
// timestamps in UTC.  Rows are never deleted; cancelled and no-show
// reservations stay on file for history.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, reservation_number, guest_name, address, contact_number, email,
       room_type, check_in_date, check_out_date, status, number_of_guests,
       special_requests, total_amount, created_at, updated_at`

// Create inserts a new reservation and populates the generated surrogate
// key on the provided record.  The reservation number, status, amounts and
// timestamps must already be set by the caller.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (reservation_number, guest_name, address, contact_number, email,
	            room_type, check_in_date, check_out_date, status, number_of_guests,
	            special_requests, total_amount, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.Number, res.GuestName, res.Address, res.ContactNumber, res.Email,
		string(res.RoomType), res.CheckIn, res.CheckOut, string(res.Status),
		res.NumberOfGuests, res.SpecialRequests, res.TotalAmount,
		res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// Update overwrites all mutable fields of an existing reservation,
// identified by its reservation number.  The number and surrogate key are
// immutable and never change.  ErrNotFound is returned when no row matches.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	const q = `UPDATE reservations SET
	           guest_name = ?, address = ?, contact_number = ?, email = ?,
	           room_type = ?, check_in_date = ?, check_out_date = ?, status = ?,
	           number_of_guests = ?, special_requests = ?, total_amount = ?,
	           updated_at = ?
	           WHERE reservation_number = ?`
	result, err := r.db.ExecContext(ctx, q,
		res.GuestName, res.Address, res.ContactNumber, res.Email,
		string(res.RoomType), res.CheckIn, res.CheckOut, string(res.Status),
		res.NumberOfGuests, res.SpecialRequests, res.TotalAmount,
		res.UpdatedAt, res.Number,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is also 0 for a no-op update of an existing row, so
		// confirm absence before reporting not found.
		if _, err := r.GetByNumber(ctx, res.Number); err != nil {
			return err
		}
	}
	return nil
}

// GetByNumber fetches a reservation by its guest-facing number.  It
// returns ErrNotFound when no such reservation exists.
func (r *ReservationRepo) GetByNumber(ctx context.Context, number string) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_number = ? LIMIT 1`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, number))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return res, err
}

// List returns every reservation ordered by creation time descending.
func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, q)
}

// SearchByGuestName returns reservations whose guest name contains the
// given substring, case-insensitively, newest first.
func (r *ReservationRepo) SearchByGuestName(ctx context.Context, name string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE LOWER(guest_name) LIKE CONCAT('%', LOWER(?), '%')
	           ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, q, name)
}

// CountOverlapping counts reservations of the given room type whose date
// range overlaps [checkIn, checkOut) under half-open semantics and whose
// status still occupies a room (CONFIRMED or CHECKED_IN).  Adjacent stays
// where one check-out equals another check-in do not count.
func (r *ReservationRepo) CountOverlapping(ctx context.Context, roomType model.RoomType, checkIn, checkOut time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM reservations
	           WHERE room_type = ?
	             AND status IN (?, ?)
	             AND check_in_date < ?
	             AND check_out_date > ?`
	var count int
	err := r.db.QueryRowContext(ctx, q,
		string(roomType), string(model.StatusConfirmed), string(model.StatusCheckedIn),
		checkOut, checkIn,
	).Scan(&count)
	return count, err
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*model.Reservation, error) {
	var res model.Reservation
	var roomType, status string
	var special sql.NullString
	if err := row.Scan(
		&res.ID, &res.Number, &res.GuestName, &res.Address, &res.ContactNumber,
		&res.Email, &roomType, &res.CheckIn, &res.CheckOut, &status,
		&res.NumberOfGuests, &special, &res.TotalAmount,
		&res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	res.RoomType = model.RoomType(roomType)
	res.Status = model.Status(status)
	if special.Valid {
		res.SpecialRequests = special.String
	}
	return &res, nil
}

func (r *ReservationRepo) queryMany(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}
