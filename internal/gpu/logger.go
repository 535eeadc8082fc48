//go:build !nogpu

package gpu

import (
	"log/slog"

	"github.com/gogpu/curveview"
)

// slogger returns the logger configured with curveview.SetLogger.
// All logging in internal/gpu goes through this function.
func slogger() *slog.Logger { return curveview.Logger() }
