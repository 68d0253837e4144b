package testutil

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/quantmind-br/jesse/internal/utils"
)

// NewTestLogger creates a debug logger that writes through t.Log
func NewTestLogger(t *testing.T) *utils.Logger {
	t.Helper()

	zlogger := zerolog.New(zerolog.NewTestWriter(t)).
		Level(zerolog.DebugLevel).
		With().
		Str("test", t.Name()).
		Logger()

	return &utils.Logger{Logger: zlogger}
}
