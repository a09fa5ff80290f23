package effect

import "log/slog"

// KnockbackEffect marks the target as knocked back with a fixed strength of 1.
// Re-application refreshes the live instance.
type KnockbackEffect struct {
	baseBehavior
}

func NewKnockbackEffect() Behavior {
	return &KnockbackEffect{}
}

func (e *KnockbackEffect) OnApply(inst *Instance) {
	slog.Debug("knockback applied", "duration", inst.TotalDuration(), "target", targetObjectID(inst))
}

// ConditionValue implements ConditionSource.
func (e *KnockbackEffect) ConditionValue(cond ConditionType, _ float64) (float64, bool) {
	if cond != ConditionKnockback {
		return 0, false
	}
	return 1, true
}
