package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ReshmithaBathala/bookingbackend/config"
	"github.com/ReshmithaBathala/bookingbackend/database"
	"github.com/ReshmithaBathala/bookingbackend/database/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.GetDefaultDatabaseConfig()
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func mustUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u, err := NewUserService(db).Register(context.Background(), username, "pw-"+username, model.RoleUser)
	require.NoError(t, err)
	return u
}

func mustTrain(t *testing.T, db *gorm.DB, seats int) *model.Train {
	t.Helper()
	tr, err := NewTrainService(db).CreateTrain(context.Background(), "Express", "Pune", "Mumbai", seats)
	require.NoError(t, err)
	return tr
}
