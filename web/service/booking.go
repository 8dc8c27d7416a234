package service

import (
	"context"

	"github.com/ReshmithaBathala/bookingbackend/database"
	"github.com/ReshmithaBathala/bookingbackend/database/model"
	"github.com/ReshmithaBathala/bookingbackend/logger"

	"gorm.io/gorm"
)

// BookingService is the booking store plus the booking workflow.
type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// Book reserves one seat on trainId for userId. The seat check, the
// decrement and the booking insert commit together or not at all, so
// concurrent callers can never take more seats than the train has, even
// across server instances sharing the store.
func (s *BookingService) Book(ctx context.Context, userId, trainId int) (*model.Booking, error) {
	var booking *model.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := decrementSeats(tx, trainId); err != nil {
			return err
		}
		b, err := recordBooking(tx, userId, trainId)
		if database.IsForeignKeyViolation(err) {
			// the train row was just updated, so the user is the missing side
			return ErrUserNotFound
		} else if err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debugf("booking %d: user %d took a seat on train %d", booking.Id, userId, trainId)
	return booking, nil
}

// RecordBooking inserts a booking row without touching seat counters.
func (s *BookingService) RecordBooking(ctx context.Context, userId, trainId int) (*model.Booking, error) {
	b, err := recordBooking(s.db.WithContext(ctx), userId, trainId)
	if database.IsForeignKeyViolation(err) {
		return nil, ErrInvalidInput
	}
	return b, err
}

func recordBooking(tx *gorm.DB, userId, trainId int) (*model.Booking, error) {
	b := &model.Booking{UserId: userId, TrainId: trainId}
	if err := tx.Create(b).Error; err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) ListBookingsForUser(ctx context.Context, userId int) ([]model.Booking, error) {
	bookings := make([]model.Booking, 0)
	err := s.db.WithContext(ctx).
		Preload("Train").
		Where("user_id = ?", userId).
		Order("id ASC").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBooking looks a booking up within userId's bookings only; another
// user's booking reads as ErrBookingNotFound.
func (s *BookingService) GetBooking(ctx context.Context, bookingId, userId int) (*model.Booking, error) {
	b := &model.Booking{}
	err := s.db.WithContext(ctx).
		Preload("Train").
		Where("id = ? AND user_id = ?", bookingId, userId).
		First(b).
		Error
	if database.IsNotFound(err) {
		return nil, ErrBookingNotFound
	} else if err != nil {
		return nil, err
	}
	return b, nil
}
