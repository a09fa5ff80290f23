package effect

// ConfuseEffect puts the target in a confuse condition whose strength is the
// magnitude. Sources stack as instances but the strongest one wins.
type ConfuseEffect struct {
	baseBehavior
}

func NewConfuseEffect() Behavior {
	return &ConfuseEffect{}
}

// ConditionValue implements ConditionSource.
func (e *ConfuseEffect) ConditionValue(cond ConditionType, magnitude float64) (float64, bool) {
	if cond != ConditionConfuse {
		return 0, false
	}
	return magnitude, true
}
