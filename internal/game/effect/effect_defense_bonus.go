package effect

// DefenseBonusEffect adds a flat amount to defense. Re-application refreshes.
type DefenseBonusEffect struct {
	baseBehavior
}

func NewDefenseBonusEffect() Behavior {
	return &DefenseBonusEffect{}
}

// StatAdd implements StatAddSource.
func (e *DefenseBonusEffect) StatAdd(stat StatType, magnitude float64) (float64, bool) {
	if stat != StatDefense {
		return 0, false
	}
	return magnitude, true
}
