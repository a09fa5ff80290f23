package effect

import "fmt"

// Builtins returns the built-in kinds in registration order.
func Builtins() []Kind {
	return []Kind{
		{ID: IDAttackMultiplier, Name: "AttackMultiplier", Policy: PolicyStack, New: NewAttackMultiplierEffect},
		{ID: IDDefenseBonus, Name: "DefenseBonus", Policy: PolicyRefresh, New: NewDefenseBonusEffect},
		{ID: IDAccuracyBlind, Name: "AccuracyBlind", Policy: PolicyStack, New: NewAccuracyBlindEffect},
		{ID: IDPoison, Name: "Poison", Policy: PolicyRefresh, New: NewPoisonEffect},
		{ID: IDStun, Name: "Stun", Policy: PolicyIgnoreIfPresent, New: NewStunEffect},
		{ID: IDConfuse, Name: "Confuse", Policy: PolicyStack, New: NewConfuseEffect},
		{ID: IDKnockback, Name: "Knockback", Policy: PolicyRefresh, New: NewKnockbackEffect},
	}
}

// RegisterBuiltins registers every built-in kind on r.
// Must run during startup, before any Apply.
func RegisterBuiltins(r *Registry) error {
	for _, k := range Builtins() {
		if err := r.Register(k); err != nil {
			return fmt.Errorf("registering builtin effects: %w", err)
		}
	}
	return nil
}
