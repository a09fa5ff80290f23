package effect

import "log/slog"

// AttackMultiplierEffect scales attack by 1+magnitude.
// Every application is a separate instance; multipliers stack multiplicatively.
type AttackMultiplierEffect struct {
	baseBehavior
}

func NewAttackMultiplierEffect() Behavior {
	return &AttackMultiplierEffect{}
}

func (e *AttackMultiplierEffect) OnApply(inst *Instance) {
	slog.Debug("attack multiplier applied", "value", inst.Magnitude(), "target", targetObjectID(inst))
}

func (e *AttackMultiplierEffect) OnRemove(inst *Instance) {
	slog.Debug("attack multiplier removed", "target", targetObjectID(inst))
}

// StatMultiplier implements StatMulSource.
func (e *AttackMultiplierEffect) StatMultiplier(stat StatType, magnitude float64) (float64, bool) {
	if stat != StatAttack {
		return 0, false
	}
	return 1 + magnitude, true
}
