// Package metrics exposes Prometheus collectors for game engine activity.
//
// A Recorder is optional everywhere it is accepted: a nil *Recorder records
// nothing, so callers never need to guard their calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stalinopoly"

// Operation results.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
)

// Recorder groups the engine collectors registered on one registry.
type Recorder struct {
	operations     *prometheus.CounterVec
	incarcerations *prometheus.CounterVec
	verdicts       *prometheus.CounterVec
	eliminations   *prometheus.CounterVec
	rounds         prometheus.Counter
	treasury       prometheus.Gauge
}

// NewRecorder registers the engine collectors on reg. A nil registerer uses
// the default Prometheus registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Recorder{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "operations_total",
			Help:      "Engine operations by name and result.",
		}, []string{"op", "result"}),
		incarcerations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gulag",
			Name:      "sentences_total",
			Help:      "Players sent to the gulag by reason.",
		}, []string{"reason"}),
		verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tribunal",
			Name:      "verdicts_total",
			Help:      "Tribunal verdicts by outcome.",
		}, []string{"verdict"}),
		eliminations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "eliminations_total",
			Help:      "Player eliminations by reason.",
		}, []string{"reason"}),
		rounds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "rounds_total",
			Help:      "Completed rounds.",
		}),
		treasury: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "treasury",
			Help:      "State treasury after the last committed operation.",
		}),
	}
}

// Operation counts one engine operation.
func (r *Recorder) Operation(op string, err error) {
	if r == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultRejected
	}
	r.operations.WithLabelValues(op, result).Inc()
}

// Incarceration counts one gulag sentence.
func (r *Recorder) Incarceration(reason string) {
	if r == nil {
		return
	}
	r.incarcerations.WithLabelValues(reason).Inc()
}

// Verdict counts one tribunal verdict.
func (r *Recorder) Verdict(verdict string) {
	if r == nil {
		return
	}
	r.verdicts.WithLabelValues(verdict).Inc()
}

// Elimination counts one eliminated player.
func (r *Recorder) Elimination(reason string) {
	if r == nil {
		return
	}
	r.eliminations.WithLabelValues(reason).Inc()
}

// Rounds adds completed rounds.
func (r *Recorder) Rounds(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.rounds.Add(float64(n))
}

// Treasury records the current treasury balance.
func (r *Recorder) Treasury(amount int) {
	if r == nil {
		return
	}
	r.treasury.Set(float64(amount))
}
