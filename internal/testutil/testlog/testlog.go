// Package testlog gives every package's tests a one-call way to opt into
// the same zerolog configuration the runtime uses, via a Start(t)
// breadcrumb helper.
package testlog

import (
	"testing"

	"github.com/danmuck/aethercfg/internal/logging"
)

// Start configures the test logging profile once per process and emits a
// breadcrumb line naming the running test.
func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	logging.Logger.Debug().Str("test", t.Name()).Msg("start")
}
