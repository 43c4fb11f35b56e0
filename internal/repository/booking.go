package repository

import (
	"context"
	"errors"

	"github.com/TadaisheChibondo/campus-accomodation/pkg/booking"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepositoryI interface {
	CreateTables(ctx context.Context) error
	GetBooking(ctx context.Context, id int64) (*booking.Booking, error)
	GetBookingsByStudent(ctx context.Context, studentId uuid.UUID) ([]booking.Booking, error)
	GetBookingsByLandlord(ctx context.Context, landlordId uuid.UUID) ([]booking.Booking, error)
	InsertBooking(ctx context.Context, booking *booking.Booking) (int64, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	DeleteBooking(ctx context.Context, id int64, studentId uuid.UUID) error
}

type BookingRepository struct {
	Pool *pgxpool.Pool
	Host string
	Port string
}

func NewBookingRepository(pool *pgxpool.Pool, host string, port string) BookingRepositoryI {
	return &BookingRepository{
		Pool: pool,
		Host: host,
		Port: port,
	}
}

func (bookingRepo *BookingRepository) CreateTables(ctx context.Context) error {
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS booking (
		id BIGSERIAL PRIMARY KEY,
		property_id BIGINT NOT NULL REFERENCES property(id) ON DELETE CASCADE,
		room_id BIGINT REFERENCES room(id) ON DELETE SET NULL,
		student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		move_in_date DATE NOT NULL,
		message TEXT DEFAULT '',
		status TEXT DEFAULT 'pending',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := bookingRepo.Pool.Exec(ctx, createTableQuery)
	if err != nil {
		return customerror.NewError("bookingRepo.CreateTables", bookingRepo.Host+":"+bookingRepo.Port, err.Error())
	}
	createIndexQuery := `CREATE INDEX IF NOT EXISTS booking_property_id_idx ON booking(property_id);`
	_, err = bookingRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("bookingRepo.CreateTables", bookingRepo.Host+":"+bookingRepo.Port, err.Error())
	}
	createIndexQuery = `CREATE INDEX IF NOT EXISTS booking_student_id_idx ON booking(student_id);`
	_, err = bookingRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("bookingRepo.CreateTables", bookingRepo.Host+":"+bookingRepo.Port, err.Error())
	}
	return nil
}

const bookingSelect = `SELECT booking.id, booking.property_id, property.title, booking.room_id, room.label,
	booking.student_id, users.username, users.program, users.year_of_study, users.phone_number,
	booking.move_in_date, booking.message, booking.status, booking.created_at
	FROM booking
	JOIN property ON booking.property_id = property.id
	JOIN users ON booking.student_id = users.id
	LEFT JOIN room ON booking.room_id = room.id`

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var record booking.Booking
	err := row.Scan(
		&record.Id,
		&record.PropertyId,
		&record.PropertyTitle,
		&record.RoomId,
		&record.RoomLabel,
		&record.StudentId,
		&record.StudentName,
		&record.StudentProgram,
		&record.StudentYear,
		&record.StudentPhone,
		&record.MoveInDate,
		&record.Message,
		&record.Status,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (bookingRepo *BookingRepository) GetBooking(ctx context.Context, id int64) (*booking.Booking, error) {
	query := bookingSelect + ` WHERE booking.id = $1`
	record, err := scanBooking(bookingRepo.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, customerror.NewError("bookingRepo.GetBooking", bookingRepo.Host+":"+bookingRepo.Port, err.Error())
	}
	return record, nil
}

func (bookingRepo *BookingRepository) GetBookingsByStudent(ctx context.Context, studentId uuid.UUID) ([]booking.Booking, error) {
	query := bookingSelect + ` WHERE booking.student_id = $1 ORDER BY booking.created_at DESC`
	return bookingRepo.queryBookings(ctx, "bookingRepo.GetBookingsByStudent", query, studentId)
}

func (bookingRepo *BookingRepository) GetBookingsByLandlord(ctx context.Context, landlordId uuid.UUID) ([]booking.Booking, error) {
	query := bookingSelect + ` WHERE property.landlord_id = $1 ORDER BY booking.created_at DESC`
	return bookingRepo.queryBookings(ctx, "bookingRepo.GetBookingsByLandlord", query, landlordId)
}

func (bookingRepo *BookingRepository) queryBookings(ctx context.Context, module string, query string, args ...any) ([]booking.Booking, error) {
	rows, err := bookingRepo.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, customerror.NewError(module, bookingRepo.Host+":"+bookingRepo.Port, err.Error())
	}
	defer rows.Close()
	bookings := []booking.Booking{}
	for rows.Next() {
		record, err := scanBooking(rows)
		if err != nil {
			return nil, customerror.NewError(module, bookingRepo.Host+":"+bookingRepo.Port, err.Error())
		}
		bookings = append(bookings, *record)
	}
	return bookings, nil
}

func (bookingRepo *BookingRepository) InsertBooking(ctx context.Context, record *booking.Booking) (int64, error) {
	query := `INSERT INTO booking (property_id, room_id, student_id, move_in_date, message) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	err := bookingRepo.Pool.QueryRow(ctx, query, record.PropertyId, record.RoomId, record.StudentId, record.MoveInDate, record.Message).Scan(&id)
	if err != nil {
		return 0, customerror.NewError("bookingRepo.InsertBooking", bookingRepo.Host+":"+bookingRepo.Port, err.Error())
	}
	return id, nil
}

func (bookingRepo *BookingRepository) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE booking SET status = $1 WHERE id = $2`
	command, err := bookingRepo.Pool.Exec(ctx, query, status, id)
	if err != nil {
		return customerror.NewError("bookingRepo.UpdateBookingStatus", bookingRepo.Host+":"+bookingRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (bookingRepo *BookingRepository) DeleteBooking(ctx context.Context, id int64, studentId uuid.UUID) error {
	query := `DELETE FROM booking WHERE id = $1 AND student_id = $2`
	command, err := bookingRepo.Pool.Exec(ctx, query, id, studentId)
	if err != nil {
		return customerror.NewError("bookingRepo.DeleteBooking", bookingRepo.Host+":"+bookingRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
