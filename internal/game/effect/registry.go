package effect

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Targets resolves an object ID to its effect state.
// Implemented by the world; ok=false means the target does not exist.
type Targets interface {
	EffectState(objectID uint32) (*State, bool)
}

// Registry maps effect IDs to kinds and dispatches applications.
// It holds no per-target state.
type Registry struct {
	mu     sync.RWMutex
	kinds  map[ID]*Kind
	frozen bool

	targets       Targets
	allowOverride bool
	observer      Observer
	meterProvider metric.MeterProvider
	metrics       *metrics
	notify        *lifecycleNotifier
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithOverride makes duplicate registration replace the previous kind
// instead of failing.
func WithOverride(allow bool) RegistryOption {
	return func(r *Registry) { r.allowOverride = allow }
}

// WithObserver installs an observer notified on every attach and detach.
func WithObserver(obs Observer) RegistryOption {
	return func(r *Registry) { r.observer = obs }
}

// WithMeterProvider overrides the global otel meter provider.
func WithMeterProvider(mp metric.MeterProvider) RegistryOption {
	return func(r *Registry) { r.meterProvider = mp }
}

// NewRegistry creates an empty registry resolving targets through targets.
func NewRegistry(targets Targets, opts ...RegistryOption) *Registry {
	r := &Registry{
		kinds:   make(map[ID]*Kind, 16),
		targets: targets,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.meterProvider == nil {
		r.meterProvider = otel.GetMeterProvider()
	}
	r.metrics = newMetrics(r.meterProvider)
	r.notify = &lifecycleNotifier{metrics: r.metrics, next: r.observer}
	return r
}

// Register adds kind to the registry.
// Duplicate IDs fail with ErrDuplicateKind unless overrides are allowed.
func (r *Registry) Register(kind Kind) error {
	if kind.ID == 0 || kind.New == nil {
		return fmt.Errorf("registering %q (%d): %w", kind.Name, kind.ID, ErrInvalidKind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("registering %q (%d): %w", kind.Name, kind.ID, ErrRegistryFrozen)
	}
	if prev, ok := r.kinds[kind.ID]; ok {
		if !r.allowOverride {
			return fmt.Errorf("registering %q (%d), taken by %q: %w", kind.Name, kind.ID, prev.Name, ErrDuplicateKind)
		}
		slog.Warn("effect kind overridden", "effect", kind.ID, "old", prev.Name, "new", kind.Name)
	}

	k := kind
	r.kinds[kind.ID] = &k
	return nil
}

// MustRegister is Register that panics on error. Startup use only.
func (r *Registry) MustRegister(kind Kind) {
	if err := r.Register(kind); err != nil {
		panic(err)
	}
}

// Freeze forbids further registration. Call once startup wiring is done.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Kind returns the kind registered under id.
func (r *Registry) Kind(id ID) (*Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[id]
	return k, ok
}

// Kinds returns all registered kinds ordered by ID.
func (r *Registry) Kinds() []*Kind {
	r.mu.RLock()
	out := make([]*Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		out = append(out, k)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Kind) int { return int(a.ID) - int(b.ID) })
	return out
}

// Apply applies effect id to the target with the given object ID.
//
// Unknown IDs and missing targets are logged and ignored; nil is returned.
// Otherwise the kind's stack policy decides between creating, refreshing or
// ignoring, and the live instance is returned.
func (r *Registry) Apply(objectID uint32, id ID, value float64, duration, tickInterval time.Duration) *Instance {
	kind, ok := r.Kind(id)
	if !ok {
		slog.Warn("unknown effect type", "effect", id, "target", objectID)
		r.metrics.inc(r.metrics.unknown, id)
		return nil
	}

	var state *State
	if r.targets != nil {
		state, ok = r.targets.EffectState(objectID)
	}
	if !ok || state == nil || state.Released() {
		slog.Debug("effect target not found", "effect", id, "target", objectID)
		return nil
	}

	return r.apply(state, kind, value, duration, tickInterval)
}

// ApplyState is Apply for callers that already hold the target's state.
func (r *Registry) ApplyState(state *State, id ID, value float64, duration, tickInterval time.Duration) *Instance {
	kind, ok := r.Kind(id)
	if !ok {
		slog.Warn("unknown effect type", "effect", id)
		r.metrics.inc(r.metrics.unknown, id)
		return nil
	}
	if state == nil || state.Released() {
		return nil
	}
	return r.apply(state, kind, value, duration, tickInterval)
}

func (r *Registry) apply(state *State, kind *Kind, value float64, duration, tickInterval time.Duration) *Instance {
	switch kind.Policy {
	case PolicyRefresh:
		if inst, ok := state.Find(kind.ID); ok {
			inst.Refresh(duration, value)
			r.metrics.inc(r.metrics.refreshed, kind.ID)
			return inst
		}
	case PolicyIgnoreIfPresent:
		if inst, ok := state.Find(kind.ID); ok {
			r.metrics.inc(r.metrics.ignored, kind.ID)
			return inst
		}
	}

	return r.create(state, kind, value, duration, tickInterval)
}

// create attaches a fresh instance regardless of the stack policy.
func (r *Registry) create(state *State, kind *Kind, value float64, duration, tickInterval time.Duration) *Instance {
	inst := newInstance(kind, state, r.notify)
	inst.initialize(duration, value, tickInterval)
	if !inst.Active() {
		return nil
	}
	state.attach(inst)
	return inst
}

// lifecycleNotifier counts lifecycle transitions and forwards them to the
// user observer.
type lifecycleNotifier struct {
	metrics *metrics
	next    Observer
}

func (n *lifecycleNotifier) EffectApplied(inst *Instance) {
	n.metrics.inc(n.metrics.applied, inst.ID())
	if n.next != nil {
		n.next.EffectApplied(inst)
	}
}

func (n *lifecycleNotifier) EffectRemoved(inst *Instance) {
	n.metrics.inc(n.metrics.removed, inst.ID())
	if n.next != nil {
		n.next.EffectRemoved(inst)
	}
}
