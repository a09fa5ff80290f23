package effect

import "log/slog"

// StunEffect blocks actions. Presence is what matters: re-application while
// stunned is ignored.
type StunEffect struct {
	baseBehavior
}

func NewStunEffect() Behavior {
	return &StunEffect{}
}

func (e *StunEffect) OnApply(inst *Instance) {
	slog.Debug("stun applied", "target", targetObjectID(inst))
}

func (e *StunEffect) OnRemove(inst *Instance) {
	slog.Debug("stun removed", "target", targetObjectID(inst))
}

// ConditionValue implements ConditionSource.
func (e *StunEffect) ConditionValue(cond ConditionType, _ float64) (float64, bool) {
	if cond != ConditionStun {
		return 0, false
	}
	return 1, true
}
