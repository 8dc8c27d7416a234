package job

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ReshmithaBathala/bookingbackend/config"
	"github.com/ReshmithaBathala/bookingbackend/database"
	"github.com/ReshmithaBathala/bookingbackend/database/model"
	"github.com/ReshmithaBathala/bookingbackend/util/metrics"
	"github.com/ReshmithaBathala/bookingbackend/web/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.GetDefaultDatabaseConfig()
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "audit.db")
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestSeatAuditJob(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	trains := service.NewTrainService(db)
	bookings := service.NewBookingService(db)

	u, err := service.NewUserService(db).Register(ctx, "audit", "pw", model.RoleUser)
	require.NoError(t, err)
	healthy, err := trains.CreateTrain(ctx, "Healthy", "Pune", "Mumbai", 3)
	require.NoError(t, err)
	drifted, err := trains.CreateTrain(ctx, "Drifted", "Pune", "Delhi", 3)
	require.NoError(t, err)
	broken, err := trains.CreateTrain(ctx, "Broken", "Pune", "Goa", 3)
	require.NoError(t, err)

	_, err = bookings.Book(ctx, u.Id, healthy.Id)
	require.NoError(t, err)

	j := NewSeatAuditJob(trains)
	violations, err := j.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, violations)

	require.NoError(t, db.Exec("UPDATE trains SET available_seats = 2 WHERE id = ?", drifted.Id).Error)
	require.NoError(t, db.Exec("UPDATE trains SET available_seats = 7 WHERE id = ?", broken.Id).Error)

	violations, err = j.Check(ctx)
	require.NoError(t, err)
	require.Len(t, violations, 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.SeatAuditViolations))

	assert.Equal(t, drifted.Id, violations[0].TrainId)
	assert.False(t, violations[0].OutOfBounds())
	assert.Equal(t, 0, violations[0].Booked)

	assert.Equal(t, broken.Id, violations[1].TrainId)
	assert.True(t, violations[1].OutOfBounds())
}

func TestSeatAuditJobSkipsOverlap(t *testing.T) {
	// no store behind the service: a run that got past the guard would panic
	j := NewSeatAuditJob(service.NewTrainService(nil))
	j.running.Store(true)

	assert.NotPanics(t, j.Run)
	assert.True(t, j.running.Load())
}

func TestSeatAuditJobRecoversPanic(t *testing.T) {
	// a service without a store panics inside the audit query
	j := NewSeatAuditJob(service.NewTrainService(nil))

	assert.NotPanics(t, j.Run)
	assert.False(t, j.running.Load())
}
