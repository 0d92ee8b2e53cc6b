// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package candidatevalidation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "parachain"
const subsystem = "candidate_validation"

// Metrics holds this core's prometheus instrumentation. A nil *Metrics is usable: every
// method guards against a nil receiver and does nothing.
//
// There are three latency histograms, one per public entry point, mirroring the
// three-function call chain a request goes through: ValidateFromChainState wraps
// ValidateFromExhaustive-equivalent work with assumption resolution and a post-execution
// check; ValidateFromExhaustive and ValidateFromChainState both bottom out in the same
// inner candidate-exhaustive check. validationRequests is only incremented once per
// request, at whichever of the two outer entry points produced the final verdict — never
// by the inner check, since its result can still be downgraded by the chain-state path's
// post-execution check.
type Metrics struct {
	validationRequests          *prometheus.CounterVec
	validateFromChainState      prometheus.Histogram
	validateFromExhaustive      prometheus.Histogram
	validateCandidateExhaustive prometheus.Histogram
	codeDecompression           prometheus.Histogram
	povDecompression            prometheus.Histogram
}

// NewMetrics builds a Metrics instance and registers it with reg. With a nil registry
// the collectors still count and observe but are registered nowhere (useful in tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	histogram := func(name, help string) prometheus.Histogram {
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
			Buckets:   prometheus.DefBuckets,
		})
	}

	m := &Metrics{
		validationRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "Number of candidate validation requests by verdict.",
		}, []string{"validity"}),
		validateFromChainState: histogram(
			"validate_from_chain_state_seconds",
			"Time taken to validate a candidate resolved against chain state, start to reply.",
		),
		validateFromExhaustive: histogram(
			"validate_from_exhaustive_seconds",
			"Time taken to validate a candidate given explicit validation data and code, start to reply.",
		),
		validateCandidateExhaustive: histogram(
			"validate_candidate_exhaustive_seconds",
			"Time taken by the inner basic-checks/decompress/execute/classify pipeline.",
		),
		codeDecompression: histogram(
			"code_decompression_seconds",
			"Time taken to decompress validation code.",
		),
		povDecompression: histogram(
			"pov_decompression_seconds",
			"Time taken to decompress PoV block data.",
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.validationRequests,
			m.validateFromChainState,
			m.validateFromExhaustive,
			m.validateCandidateExhaustive,
			m.codeDecompression,
			m.povDecompression,
		)
	}
	return m
}

// startChainStateTimer starts a scope-guard timer for a ValidateFromChainState request;
// the returned func records the validate_from_chain_state histogram observation and the
// validationRequests counter increment (keyed by the verdict passed to it), and must be
// called exactly once, after any post-execution downgrade has already been applied.
func (m *Metrics) startChainStateTimer() func(validity string) {
	return m.startOuterTimer(func() prometheus.Histogram {
		if m == nil {
			return nil
		}
		return m.validateFromChainState
	})
}

// startFromExhaustiveTimer is the ValidateFromExhaustive-path equivalent of
// startChainStateTimer.
func (m *Metrics) startFromExhaustiveTimer() func(validity string) {
	return m.startOuterTimer(func() prometheus.Histogram {
		if m == nil {
			return nil
		}
		return m.validateFromExhaustive
	})
}

func (m *Metrics) startOuterTimer(pick func() prometheus.Histogram) func(validity string) {
	start := time.Now()
	return func(validity string) {
		if m == nil {
			return
		}
		m.validationRequests.WithLabelValues(validity).Inc()
		pick().Observe(time.Since(start).Seconds())
	}
}

// startCandidateExhaustiveTimer starts a scope-guard timer for the inner
// basic-checks/decompress/execute/classify pipeline. Unlike the two outer timers, it
// never touches the validationRequests counter: its result can still be overridden by a
// post-execution check higher up the call chain before a request is considered settled.
func (m *Metrics) startCandidateExhaustiveTimer() func() {
	start := time.Now()
	return func() {
		if m == nil {
			return
		}
		m.validateCandidateExhaustive.Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) observeCodeDecompression(d time.Duration) {
	if m == nil {
		return
	}
	m.codeDecompression.Observe(d.Seconds())
}

func (m *Metrics) observePoVDecompression(d time.Duration) {
	if m == nil {
		return
	}
	m.povDecompression.Observe(d.Seconds())
}
