package combat

import (
	"math"

	"github.com/udisondev/statusfx/internal/game/effect"
	"github.com/udisondev/statusfx/internal/model"
)

// EffectiveAttack returns base attack scaled by every attack multiplier and
// shifted by every flat attack bonus on the actor.
func EffectiveAttack(a *model.Actor) int32 {
	s := a.Effects()
	v := float64(a.Base().Attack) * effect.TotalMultiplier(s, effect.StatAttack)
	if add, ok := effect.TotalAdd(s, effect.StatAttack); ok {
		v += add
	}
	return clampStat(v)
}

// EffectiveDefense returns base defense with multipliers and flat bonuses applied.
func EffectiveDefense(a *model.Actor) int32 {
	s := a.Effects()
	v := float64(a.Base().Defense) * effect.TotalMultiplier(s, effect.StatDefense)
	if add, ok := effect.TotalAdd(s, effect.StatDefense); ok {
		v += add
	}
	return clampStat(v)
}

// EffectiveAccuracy returns base accuracy minus the blind penalty, never below 0.
func EffectiveAccuracy(a *model.Actor) int32 {
	s := a.Effects()
	v := float64(a.Base().Accuracy) * effect.TotalMultiplier(s, effect.StatAccuracy)
	v -= s.AccuracyPenalty()
	return clampStat(v)
}

// CanAct reports whether the actor may start an attack or cast.
// Stunned and knocked-back actors cannot.
func CanAct(a *model.Actor) bool {
	if a.IsDead() {
		return false
	}
	s := a.Effects()
	return !effect.HasCondition(s, effect.ConditionStun) &&
		!effect.HasCondition(s, effect.ConditionKnockback)
}

// ConfuseChance returns the probability (0..1) that the actor picks a random target.
func ConfuseChance(a *model.Actor) float64 {
	return min(effect.ConditionValue(a.Effects(), effect.ConditionConfuse), 1)
}

func clampStat(v float64) int32 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(math.Round(v))
}
