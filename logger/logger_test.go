package logger

import (
	"strings"
	"testing"

	"github.com/ReshmithaBathala/bookingbackend/config"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogsFiltersBySeverity(t *testing.T) {
	Info("booking created for train 7")
	Warningf("seat audit: train %d drifted", 3)
	Errorf("store unavailable: %s", "timeout")

	warnings := GetLogs(10, "WARNING")
	require.Len(t, warnings, 2)
	assert.True(t, strings.Contains(warnings[0], "store unavailable: timeout"))
	assert.True(t, strings.Contains(warnings[1], "train 3 drifted"))

	newest := GetLogs(1, "DEBUG")
	require.Len(t, newest, 1)
	assert.Contains(t, newest[0], "ERROR")
}

func TestLevelFromConfig(t *testing.T) {
	lvl, err := LevelFromConfig(config.Warn)
	require.NoError(t, err)
	assert.Equal(t, logging.WARNING, lvl)

	_, err = LevelFromConfig("verbose")
	assert.Error(t, err)
}
