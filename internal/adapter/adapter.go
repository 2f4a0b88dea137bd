// Package adapter implements one operation adapter per logical market-data
// operation. Every adapter builds its candidate list, resolves it against the
// capability, normalizes the payload, and post-processes the records. Failures
// never cross an adapter boundary: every call returns a result value.
package adapter

import (
	"time"

	"github.com/finquery/finquery/internal/capability"
	"github.com/finquery/finquery/internal/core"
	"github.com/finquery/finquery/internal/metrics"
	"github.com/finquery/finquery/internal/resolver"
	"github.com/finquery/finquery/internal/table"
	"go.uber.org/zap"
)

// Service bundles the operation adapters around one capability.
type Service struct {
	cap capability.Capability
	res *resolver.Resolver
	log *zap.Logger
	met *metrics.Registry
	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithMetrics wires the metrics registry into resolution and aggregation.
func WithMetrics(m *metrics.Registry) Option {
	return func(s *Service) { s.met = m }
}

// WithNow overrides the clock used for trade-date defaults.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates the adapter service.
func New(cap capability.Capability, opts ...Option) *Service {
	s := &Service{
		cap: cap,
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.res = resolver.New(s.log, s.met)
	return s
}

func ok(source string, data map[string]any) *core.OperationResult {
	return &core.OperationResult{OK: true, Source: source, Data: data}
}

func fail(source string, err error) *core.OperationResult {
	return &core.OperationResult{OK: false, Source: source, Err: err.Error()}
}

// normalized projects a payload to records, degrading to a string for
// non-tabular payloads.
func normalized(payload any, limit int) any {
	if records, tabular := table.Records(payload, limit); tabular {
		return records
	}
	return table.Fallback(payload)
}

// reversedLimited inverts a chronological payload to newest-first before
// limiting. Non-tabular payloads fall back to a string, unreversed.
func reversedLimited(payload any, limit int) any {
	records, tabular := table.Records(payload, 0)
	if !tabular {
		return table.Fallback(payload)
	}
	return table.Head(table.Reverse(records), limit)
}

// recordsOrNil projects a payload and filters out the fallback path entirely.
func recordsOrNil(payload any) []core.Record {
	records, tabular := table.Records(payload, 0)
	if !tabular {
		return nil
	}
	return records
}

func clampLimit(n, def, max int) int {
	if n <= 0 {
		n = def
	}
	if n > max {
		n = max
	}
	if n < 1 {
		n = 1
	}
	return n
}
