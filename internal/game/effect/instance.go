package effect

import "time"

// Phase is the lifecycle state of an Instance.
type Phase uint8

const (
	PhaseUninitialized Phase = iota
	PhaseActive
	PhaseRemoved
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseActive:
		return "active"
	case PhaseRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Instance is one application of one effect kind to one target.
// Owned exclusively by the target's State.
type Instance struct {
	kind     *Kind
	behavior Behavior
	state    *State
	obs      Observer

	caps Capability
	mul  StatMulSource
	add  StatAddSource
	cond ConditionSource

	magnitude    float64
	total        time.Duration
	remaining    time.Duration
	tickInterval time.Duration
	tickAccum    time.Duration
	phase        Phase
}

func newInstance(kind *Kind, state *State, obs Observer) *Instance {
	b := kind.New()
	caps, mul, add, cond := capabilitiesOf(b)
	return &Instance{
		kind:     kind,
		behavior: b,
		state:    state,
		obs:      obs,
		caps:     caps,
		mul:      mul,
		add:      add,
		cond:     cond,
	}
}

// Kind returns the registered kind the instance was created from.
func (in *Instance) Kind() *Kind { return in.kind }

// ID returns the kind's effect ID.
func (in *Instance) ID() ID { return in.kind.ID }

// Behavior returns the instance's hook set.
func (in *Instance) Behavior() Behavior { return in.behavior }

// State returns the per-target state that owns the instance.
func (in *Instance) State() *State { return in.state }

// Capabilities returns the aggregations the instance contributes to.
func (in *Instance) Capabilities() Capability { return in.caps }

// Magnitude returns the current magnitude. Its meaning is kind-specific.
func (in *Instance) Magnitude() float64 { return in.magnitude }

// TotalDuration returns the duration set by the last apply or refresh.
func (in *Instance) TotalDuration() time.Duration { return in.total }

// Remaining returns the time left before expiry.
func (in *Instance) Remaining() time.Duration { return in.remaining }

// TickInterval returns the periodic tick interval, 0 if the instance never ticks.
func (in *Instance) TickInterval() time.Duration { return in.tickInterval }

// TickAccumulator returns time accumulated toward the next tick.
func (in *Instance) TickAccumulator() time.Duration { return in.tickAccum }

// Phase returns the lifecycle phase.
func (in *Instance) Phase() Phase { return in.phase }

// Active reports whether the instance is live.
func (in *Instance) Active() bool { return in.phase == PhaseActive }

// Host returns the entity the instance is attached to, or nil.
func (in *Instance) Host() Host {
	if in.state == nil {
		return nil
	}
	return in.state.host
}

// initialize snapshots the parameters and runs OnApply.
// Returns false if the instance was already initialized.
func (in *Instance) initialize(duration time.Duration, magnitude float64, tickInterval time.Duration) bool {
	if in.phase != PhaseUninitialized {
		return false
	}
	if tickInterval < 0 {
		tickInterval = 0
	}
	in.magnitude = magnitude
	in.total = duration
	in.remaining = duration
	in.tickInterval = tickInterval
	in.tickAccum = 0
	in.phase = PhaseActive

	in.behavior.OnApply(in)
	if in.obs != nil {
		in.obs.EffectApplied(in)
	}
	return true
}

// Refresh renews duration and magnitude without re-running OnApply or
// resetting the tick cadence. No-op on instances that are not live.
func (in *Instance) Refresh(duration time.Duration, magnitude float64) {
	if in.phase != PhaseActive {
		return
	}
	in.total = duration
	in.remaining = duration
	in.magnitude = magnitude
}

// advance moves the instance forward by dt. Returns false once the instance
// is no longer live.
func (in *Instance) advance(dt time.Duration) bool {
	if in.phase != PhaseActive {
		return false
	}
	if in.state == nil || in.state.released {
		// Target is gone: treat as already removed, no hooks.
		in.phase = PhaseRemoved
		return false
	}

	if in.tickInterval > 0 {
		in.tickAccum += dt
		for in.tickAccum >= in.tickInterval && in.phase == PhaseActive {
			in.behavior.OnTick(in, in.tickInterval)
			in.tickAccum -= in.tickInterval
		}
		if in.phase != PhaseActive {
			return false
		}
	}

	in.remaining -= dt
	if in.remaining <= 0 {
		in.remove()
		return false
	}
	return true
}

// remove runs teardown at most once.
func (in *Instance) remove() bool {
	if in.phase != PhaseActive {
		return false
	}
	in.phase = PhaseRemoved
	in.behavior.OnRemove(in)
	if in.obs != nil {
		in.obs.EffectRemoved(in)
	}
	return true
}
