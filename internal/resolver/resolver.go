// Package resolver implements the ordered candidate fallback chain: for each
// logical query it tries known upstream operation and argument variants in
// listed order until one succeeds.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/metrics"
	"go.uber.org/zap"
)

// Candidate is one upstream operation with its ordered argument-set variants.
// A nil or empty Args list means one attempt with no arguments.
type Candidate struct {
	Operation string
	Args      []capability.Args
}

// Outcome is the terminal result of one resolution. On success Err is nil and
// Operation names the winning candidate; on failure Err carries the joined
// trace of every attempt.
type Outcome struct {
	Operation string
	Payload   any
	Err       error
}

// OK reports whether the resolution succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Resolver walks candidate chains against a capability.
type Resolver struct {
	log     *zap.Logger
	metrics *metrics.Registry
}

// New creates a resolver. Logger and metrics may be nil.
func New(log *zap.Logger, m *metrics.Registry) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log, metrics: m}
}

// Resolve tries every candidate in list order, and within a candidate every
// argument set in list order, returning on the first success. Each attempt is
// tried exactly once; there is no backoff, reordering, or retry. Operations
// absent from the capability are skipped without a trace entry, mirroring an
// optional upstream catalogue.
func (r *Resolver) Resolve(ctx context.Context, cap capability.Capability, candidates []Candidate) Outcome {
	start := time.Now()

	if err := cap.Ready(); err != nil {
		r.record("", "not_ready", start)
		return Outcome{Err: err}
	}

	var trace []string
	attempted := false

	for _, cand := range candidates {
		if !cap.Has(cand.Operation) {
			continue
		}

		argSets := cand.Args
		if len(argSets) == 0 {
			argSets = []capability.Args{{}}
		}

		for _, args := range argSets {
			attempted = true
			if r.metrics != nil {
				r.metrics.RecordAttempt(cand.Operation)
			}

			payload, err := cap.Invoke(ctx, cand.Operation, args)
			if err == nil {
				r.log.Debug("candidate resolved",
					zap.String("operation", cand.Operation),
					zap.Int("attempts", len(trace)+1))
				r.record(cand.Operation, "success", start)
				return Outcome{Operation: cand.Operation, Payload: payload}
			}
			if errors.Is(err, core.ErrOpNotAvailable) {
				// Registered check raced or a nested capability; treat as absent.
				continue
			}
			trace = append(trace, fmt.Sprintf("%s(%s): %v", cand.Operation, formatArgs(args), err))
		}
	}

	msg := strings.Join(trace, "; ")
	if !attempted && msg == "" {
		msg = "no callable api found"
	}
	r.record("", "failed", start)
	return Outcome{Err: core.WrapError(core.ErrNoCandidate, errors.New(msg))}
}

func (r *Resolver) record(operation, status string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.RecordOutcome(operation, status, time.Since(start).Seconds())
}

// formatArgs renders an argument set deterministically for the error trace.
func formatArgs(args capability.Args) string {
	if len(args) == 0 {
		return ""
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, args[k]))
	}
	return strings.Join(parts, ", ")
}
