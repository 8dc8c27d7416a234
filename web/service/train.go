package service

import (
	"context"
	"strings"

	"github.com/ReshmithaBathala/bookingbackend/database"
	"github.com/ReshmithaBathala/bookingbackend/database/model"

	"gorm.io/gorm"
)

// TrainService is the inventory store.
type TrainService struct {
	db *gorm.DB
}

func NewTrainService(db *gorm.DB) *TrainService {
	return &TrainService{db: db}
}

// TrainFilter narrows a listing to one route. It applies only when both
// fields are set.
type TrainFilter struct {
	Source      string
	Destination string
}

func (f TrainFilter) active() bool {
	return f.Source != "" && f.Destination != ""
}

func (s *TrainService) CreateTrain(ctx context.Context, name, source, destination string, totalSeats int) (*model.Train, error) {
	name, source, destination = strings.TrimSpace(name), strings.TrimSpace(source), strings.TrimSpace(destination)
	if name == "" || source == "" || destination == "" {
		return nil, ErrInvalidInput
	}
	if totalSeats <= 0 {
		return nil, ErrInvalidSeats
	}
	t := &model.Train{
		TrainName:      name,
		Source:         source,
		Destination:    destination,
		TotalSeats:     totalSeats,
		AvailableSeats: totalSeats,
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TrainService) ListTrains(ctx context.Context, filter TrainFilter) ([]model.Train, error) {
	query := s.db.WithContext(ctx).Model(&model.Train{})
	if filter.active() {
		query = query.Where("source = ? AND destination = ?", filter.Source, filter.Destination)
	}
	trains := make([]model.Train, 0)
	if err := query.Order("id ASC").Find(&trains).Error; err != nil {
		return nil, err
	}
	return trains, nil
}

func (s *TrainService) GetTrain(ctx context.Context, id int) (*model.Train, error) {
	t := &model.Train{}
	err := s.db.WithContext(ctx).First(t, id).Error
	if database.IsNotFound(err) {
		return nil, ErrTrainNotFound
	} else if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TrainService) GetAvailableSeats(ctx context.Context, id int) (int, error) {
	t, err := s.GetTrain(ctx, id)
	if err != nil {
		return 0, err
	}
	return t.AvailableSeats, nil
}

// UpdateTotalSeats sets total_seats and moves available_seats by the same
// delta, so the number of booked seats is preserved. Both columns are
// rewritten in one statement guarded on booked <= newTotal; the SET
// expressions see the pre-update row.
func (s *TrainService) UpdateTotalSeats(ctx context.Context, id, newTotal int) (*model.Train, error) {
	if newTotal <= 0 {
		return nil, ErrInvalidSeats
	}
	res := s.db.WithContext(ctx).
		Model(&model.Train{}).
		Where("id = ? AND total_seats - available_seats <= ?", id, newTotal).
		Updates(map[string]any{
			"available_seats": gorm.Expr("available_seats + ? - total_seats", newTotal),
			"total_seats":     newTotal,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetTrain(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrSeatsBelowBooked
	}
	return s.GetTrain(ctx, id)
}

// DecrementAvailableSeats takes one seat if any is left.
func (s *TrainService) DecrementAvailableSeats(ctx context.Context, id int) error {
	return decrementSeats(s.db.WithContext(ctx), id)
}

// decrementSeats is the conditional update shared with the booking workflow.
// It never drives available_seats below zero.
func decrementSeats(tx *gorm.DB, id int) error {
	res := tx.Model(&model.Train{}).
		Where("id = ? AND available_seats > 0", id).
		UpdateColumn("available_seats", gorm.Expr("available_seats - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := tx.Model(&model.Train{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrTrainNotFound
	}
	return ErrNoAvailability
}

// SeatViolation is a train whose counters disagree with the seat invariant
// or with its booking rows.
type SeatViolation struct {
	TrainId        int
	TotalSeats     int
	AvailableSeats int
	Booked         int
}

func (v SeatViolation) OutOfBounds() bool {
	return v.AvailableSeats < 0 || v.AvailableSeats > v.TotalSeats
}

func (s *TrainService) CheckSeatInvariants(ctx context.Context) ([]SeatViolation, error) {
	var out []SeatViolation
	err := s.db.WithContext(ctx).Raw(`
SELECT t.id AS train_id, t.total_seats, t.available_seats, COUNT(b.id) AS booked
FROM trains t
LEFT JOIN bookings b ON b.train_id = t.id
GROUP BY t.id, t.total_seats, t.available_seats
HAVING t.available_seats < 0
    OR t.available_seats > t.total_seats
    OR t.total_seats - t.available_seats <> COUNT(b.id)
ORDER BY t.id`).Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
