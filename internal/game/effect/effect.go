package effect

import "time"

// Behavior is the per-instance hook set of an effect kind.
// OnApply runs once when the instance goes live, OnTick once per elapsed
// tick interval, OnRemove once on expiry or cleanse.
type Behavior interface {
	OnApply(inst *Instance)
	OnTick(inst *Instance, interval time.Duration)
	OnRemove(inst *Instance)
}

// StatMulSource is optionally implemented by behaviors that scale a stat.
// ok=false means the behavior does not touch the stat.
type StatMulSource interface {
	StatMultiplier(stat StatType, magnitude float64) (mul float64, ok bool)
}

// StatAddSource is optionally implemented by behaviors that add a flat amount to a stat.
type StatAddSource interface {
	StatAdd(stat StatType, magnitude float64) (add float64, ok bool)
}

// ConditionSource is optionally implemented by behaviors that put the target
// into a crowd-control condition.
type ConditionSource interface {
	ConditionValue(cond ConditionType, magnitude float64) (value float64, ok bool)
}

// Capability is the set of aggregations an instance contributes to.
type Capability uint8

const (
	CapStatMul Capability = 1 << iota
	CapStatAdd
	CapCondition
)

// Has reports whether all bits of c are set.
func (s Capability) Has(c Capability) bool {
	return s&c == c
}

// capabilitiesOf resolves the capability views of b once per instance.
func capabilitiesOf(b Behavior) (Capability, StatMulSource, StatAddSource, ConditionSource) {
	var caps Capability
	mul, okMul := b.(StatMulSource)
	if okMul {
		caps |= CapStatMul
	}
	add, okAdd := b.(StatAddSource)
	if okAdd {
		caps |= CapStatAdd
	}
	cond, okCond := b.(ConditionSource)
	if okCond {
		caps |= CapCondition
	}
	return caps, mul, add, cond
}

// StackPolicy decides what Apply does when the target already carries an
// instance of the same kind.
type StackPolicy uint8

const (
	// PolicyStack always creates a new instance.
	PolicyStack StackPolicy = iota
	// PolicyRefresh renews the existing instance's duration and magnitude.
	PolicyRefresh
	// PolicyIgnoreIfPresent drops the application while an instance is live.
	PolicyIgnoreIfPresent
)

func (p StackPolicy) String() string {
	switch p {
	case PolicyStack:
		return "stack"
	case PolicyRefresh:
		return "refresh"
	case PolicyIgnoreIfPresent:
		return "ignore_if_present"
	default:
		return "unknown"
	}
}

// Kind describes one registered effect type.
type Kind struct {
	ID     ID
	Name   string
	Policy StackPolicy
	New    func() Behavior
}

// Host is the entity a State is attached to.
type Host interface {
	ObjectID() uint32
}

// Damageable is optionally implemented by hosts that periodic effects can hurt.
type Damageable interface {
	ReduceCurrentHP(amount int32)
	IsDead() bool
}

// Observer receives attach/detach notifications for every instance.
type Observer interface {
	EffectApplied(inst *Instance)
	EffectRemoved(inst *Instance)
}
