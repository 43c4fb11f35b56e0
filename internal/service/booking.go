package service

import (
	"context"
	"time"

	"github.com/TadaisheChibondo/campus-accomodation/internal/repository"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/booking"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/customerror"
	"github.com/TadaisheChibondo/campus-accomodation/pkg/user"

	"github.com/jackc/pgx/v5"
)

type BookingServiceI interface {
	CreateBooking(student *user.User, record *booking.Booking) (*booking.Booking, error)
	GetMyBookings(student *user.User) ([]booking.Booking, error)
	GetManagedBookings(landlord *user.User) ([]booking.Booking, error)
	SetStatus(landlord *user.User, bookingId int64, status string) (*booking.Booking, error)
	CancelBooking(student *user.User, bookingId int64) error
}

type BookingService struct {
	bookingRepo  repository.BookingRepositoryI
	propertyRepo repository.PropertyRepositoryI
	host         string
	port         string
}

func NewBookingService(bookingRepo repository.BookingRepositoryI, propertyRepo repository.PropertyRepositoryI, host string, port string) BookingServiceI {
	return &BookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		host:         host,
		port:         port,
	}
}

func (bookingService *BookingService) CreateBooking(student *user.User, record *booking.Booking) (*booking.Booking, error) {
	if student.Role != user.RoleStudent && !student.IsSuperUser {
		return nil, customerror.ErrNotStudent
	}
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	if _, err := bookingService.propertyRepo.GetProperty(ctx, record.PropertyId); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("BookingService.CreateBooking")
		return nil, customErr
	}
	if record.RoomId != nil {
		room, err := bookingService.propertyRepo.GetRoom(ctx, *record.RoomId)
		if err == pgx.ErrNoRows {
			return nil, customerror.ErrRoomMismatch
		}
		if err != nil {
			customErr := err.(customerror.CustomError)
			customErr.AppendModule("BookingService.CreateBooking")
			return nil, customErr
		}
		if room.PropertyId != record.PropertyId {
			return nil, customerror.ErrRoomMismatch
		}
	}
	record.StudentId = student.UUID
	record.Status = booking.StatusPending
	id, err := bookingService.bookingRepo.InsertBooking(ctx, record)
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("BookingService.CreateBooking")
		return nil, customErr
	}
	created, err := bookingService.bookingRepo.GetBooking(ctx, id)
	if err != nil && err != pgx.ErrNoRows {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("BookingService.CreateBooking")
		return nil, customErr
	}
	return created, nil
}

func (bookingService *BookingService) GetMyBookings(student *user.User) ([]booking.Booking, error) {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	bookings, err := bookingService.bookingRepo.GetBookingsByStudent(ctx, student.UUID)
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("BookingService.GetMyBookings")
		return nil, customErr
	}
	return bookings, nil
}

func (bookingService *BookingService) GetManagedBookings(landlord *user.User) ([]booking.Booking, error) {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	bookings, err := bookingService.bookingRepo.GetBookingsByLandlord(ctx, landlord.UUID)
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("BookingService.GetManagedBookings")
		return nil, customErr
	}
	return bookings, nil
}

// SetStatus lets the landlord of the booked property accept or reject a
// request.
func (bookingService *BookingService) SetStatus(landlord *user.User, bookingId int64, status string) (*booking.Booking, error) {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	record, err := bookingService.bookingRepo.GetBooking(ctx, bookingId)
	if err == pgx.ErrNoRows {
		return nil, err
	}
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("BookingService.SetStatus")
		return nil, customErr
	}
	owned, err := bookingService.propertyRepo.GetProperty(ctx, record.PropertyId)
	if err != nil && err != pgx.ErrNoRows {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("BookingService.SetStatus")
		return nil, customErr
	}
	if owned == nil || (owned.LandlordId != landlord.UUID && !landlord.IsSuperUser) {
		return nil, customerror.ErrNotLandlord
	}
	if err := bookingService.bookingRepo.UpdateBookingStatus(ctx, bookingId, status); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("BookingService.SetStatus")
		return nil, customErr
	}
	record.Status = status
	return record, nil
}

func (bookingService *BookingService) CancelBooking(student *user.User, bookingId int64) error {
	ctx, close := context.WithTimeout(context.Background(), time.Minute)
	defer close()
	err := bookingService.bookingRepo.DeleteBooking(ctx, bookingId, student.UUID)
	if err == pgx.ErrNoRows {
		return err
	}
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("BookingService.CancelBooking")
		return customErr
	}
	return nil
}
