// Package job holds the background jobs scheduled by the web server.
package job

import (
	"context"
	"time"

	"github.com/ReshmithaBathala/bookingbackend/logger"
	"github.com/ReshmithaBathala/bookingbackend/util/common"
	"github.com/ReshmithaBathala/bookingbackend/util/metrics"
	"github.com/ReshmithaBathala/bookingbackend/web/service"

	"go.uber.org/atomic"
)

const auditTimeout = 30 * time.Second

// SeatAuditJob reports trains whose counters break 0 <= available <= total or
// disagree with their booking rows. It only reports; it never repairs.
type SeatAuditJob struct {
	trainService *service.TrainService
	running      atomic.Bool
}

func NewSeatAuditJob(trainService *service.TrainService) *SeatAuditJob {
	return &SeatAuditJob{trainService: trainService}
}

// Run is invoked by cron. A run that overlaps a previous one is skipped.
func (j *SeatAuditJob) Run() {
	if !j.running.CompareAndSwap(false, true) {
		logger.Debug("seat audit still running, skipping")
		return
	}
	defer j.running.Store(false)
	defer common.Recover("seat audit")

	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	if _, err := j.Check(ctx); err != nil {
		logger.Warning("seat audit failed:", err)
	}
}

// Check runs one audit pass and returns what it found.
func (j *SeatAuditJob) Check(ctx context.Context) ([]service.SeatViolation, error) {
	violations, err := j.trainService.CheckSeatInvariants(ctx)
	if err != nil {
		return nil, err
	}
	metrics.SeatAuditViolations.Set(float64(len(violations)))
	for _, v := range violations {
		if v.OutOfBounds() {
			logger.Errorf("train %d: available_seats %d outside [0, %d]", v.TrainId, v.AvailableSeats, v.TotalSeats)
		} else {
			logger.Warningf("train %d: %d seats taken but %d bookings recorded",
				v.TrainId, v.TotalSeats-v.AvailableSeats, v.Booked)
		}
	}
	if len(violations) == 0 {
		logger.Debug("seat audit clean")
	}
	return violations, nil
}
