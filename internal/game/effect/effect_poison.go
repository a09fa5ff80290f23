package effect

import (
	"log/slog"
	"math"
	"time"
)

// PoisonEffect deals magnitude damage to the host every tick.
// Hosts that do not implement Damageable are unaffected.
type PoisonEffect struct {
	baseBehavior
}

func NewPoisonEffect() Behavior {
	return &PoisonEffect{}
}

func (e *PoisonEffect) OnTick(inst *Instance, _ time.Duration) {
	target, ok := inst.Host().(Damageable)
	if !ok || target.IsDead() {
		return
	}
	damage := tickDamage(inst.Magnitude())
	if damage <= 0 {
		return
	}
	target.ReduceCurrentHP(damage)

	slog.Debug("poison tick", "damage", damage, "target", targetObjectID(inst))
}

// tickDamage rounds magnitude to whole HP and clamps it to the int32 range.
func tickDamage(magnitude float64) int32 {
	if math.IsNaN(magnitude) || magnitude <= 0 {
		return 0
	}
	v := math.Round(magnitude)
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}
