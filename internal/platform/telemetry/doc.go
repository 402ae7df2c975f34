// Package telemetry groups the operational observability of the engine.
//
// The game log (state.LogEntry) is the player-facing record of play and
// lives with the game state. Operational metrics in telemetry/metrics count
// operations, sentences, verdicts, eliminations and rounds so a run can be
// monitored without reading the log. Tracing is configured by platform/otel.
package telemetry
