// Package capability defines the named-operation invocation surface over the
// external market data source. The core never knows upstream schemas in
// advance; it only invokes operations by name with an argument map.
package capability

import (
	"context"
	"sort"
	"sync"

	"github.com/finquery/finquery/internal/core"
)

// Args is the argument map for one operation invocation.
type Args map[string]string

// InvokeFunc performs one upstream call and returns the raw payload.
type InvokeFunc func(ctx context.Context, args Args) (any, error)

// Capability is the external data source's invocation surface.
type Capability interface {
	// Ready reports whether the capability initialized; a non-nil error makes
	// every operation fail immediately with that cause.
	Ready() error
	// Has reports whether the named operation is registered. Absence is
	// distinct from call failure.
	Has(operation string) bool
	// Invoke calls the named operation. Returns core.ErrOpNotAvailable when
	// the operation is not registered.
	Invoke(ctx context.Context, operation string, args Args) (any, error)
}

// Registry maps operation names to typed invocation functions, populated at
// startup and read-only afterwards.
type Registry struct {
	mu       sync.RWMutex
	ops      map[string]InvokeFunc
	readyErr error
}

// NewRegistry creates an empty operation registry.
func NewRegistry() *Registry {
	return &Registry{
		ops: make(map[string]InvokeFunc),
	}
}

// Register adds an operation to the registry.
func (r *Registry) Register(operation string, fn InvokeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[operation] = fn
}

// SetNotReady marks the whole capability as failed to initialize.
func (r *Registry) SetNotReady(cause error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readyErr = cause
}

// Ready implements Capability.
func (r *Registry) Ready() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.readyErr != nil {
		return core.WrapError(core.ErrCapabilityNotReady, r.readyErr)
	}
	return nil
}

// Has implements Capability.
func (r *Registry) Has(operation string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ops[operation]
	return ok
}

// Invoke implements Capability.
func (r *Registry) Invoke(ctx context.Context, operation string, args Args) (any, error) {
	if err := r.Ready(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	fn, ok := r.ops[operation]
	r.mu.RUnlock()
	if !ok {
		return nil, core.ErrOpNotAvailable
	}

	return fn(ctx, args)
}

// Operations returns the registered operation names, sorted.
func (r *Registry) Operations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
