// Package timeouts defines shared timeout constants used by the commands
// and the scenario runner.
package timeouts

import "time"

// ScenarioStep caps a single scenario step against the engine.
const ScenarioStep = 10 * time.Second

// TelemetryShutdown limits how long exporters may flush on exit.
const TelemetryShutdown = 5 * time.Second
