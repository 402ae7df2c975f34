package scenario

import (
	"log"
	"time"

	"github.com/louisbranch/stalinopoly/internal/platform/telemetry/metrics"
)

// runnerDeps bundles injectable dependencies for runner construction.
type runnerDeps struct {
	metrics *metrics.Recorder
	// engineLogger receives operator logs from the engine.
	engineLogger *log.Logger
	now          func() time.Time
}
