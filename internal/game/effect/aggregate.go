package effect

// TotalMultiplier folds every stat-multiplier source on s by multiplication.
// Returns 1.0 when nothing contributes.
func TotalMultiplier(s *State, stat StatType) float64 {
	total := 1.0
	if s == nil {
		return total
	}
	for _, inst := range s.instances {
		if !inst.Active() || !inst.caps.Has(CapStatMul) {
			continue
		}
		if mul, ok := inst.mul.StatMultiplier(stat, inst.magnitude); ok {
			total *= mul
		}
	}
	return total
}

// TotalAdd folds every stat-additive source on s by addition.
// ok is false when nothing contributes; the sum is then 0.
func TotalAdd(s *State, stat StatType) (sum float64, ok bool) {
	if s == nil {
		return 0, false
	}
	for _, inst := range s.instances {
		if !inst.Active() || !inst.caps.Has(CapStatAdd) {
			continue
		}
		if add, contributes := inst.add.StatAdd(stat, inst.magnitude); contributes {
			sum += add
			ok = true
		}
	}
	return sum, ok
}

// ConditionValue returns the strongest value among condition sources on s.
// Sources do not stack: the maximum wins. Returns 0 when nothing contributes.
func ConditionValue(s *State, cond ConditionType) float64 {
	best := 0.0
	if s == nil {
		return best
	}
	for _, inst := range s.instances {
		if !inst.Active() || !inst.caps.Has(CapCondition) {
			continue
		}
		if v, ok := inst.cond.ConditionValue(cond, inst.magnitude); ok && v > best {
			best = v
		}
	}
	return best
}

// HasCondition reports whether cond is active on s.
func HasCondition(s *State, cond ConditionType) bool {
	return ConditionValue(s, cond) > 0
}

// Aggregator answers aggregate queries by target object ID.
// Missing targets yield the neutral value of each fold.
type Aggregator struct {
	targets Targets
}

// NewAggregator creates an Aggregator over targets.
func NewAggregator(targets Targets) *Aggregator {
	return &Aggregator{targets: targets}
}

func (a *Aggregator) state(objectID uint32) *State {
	if a.targets == nil {
		return nil
	}
	s, ok := a.targets.EffectState(objectID)
	if !ok {
		return nil
	}
	return s
}

// TotalMultiplier returns the product of all multipliers for stat on the target.
func (a *Aggregator) TotalMultiplier(objectID uint32, stat StatType) float64 {
	return TotalMultiplier(a.state(objectID), stat)
}

// TotalAdd returns the sum of all flat bonuses for stat on the target.
func (a *Aggregator) TotalAdd(objectID uint32, stat StatType) (float64, bool) {
	return TotalAdd(a.state(objectID), stat)
}

// ConditionValue returns the strongest source of cond on the target.
func (a *Aggregator) ConditionValue(objectID uint32, cond ConditionType) float64 {
	return ConditionValue(a.state(objectID), cond)
}

// HasCondition reports whether cond is active on the target.
func (a *Aggregator) HasCondition(objectID uint32, cond ConditionType) bool {
	return HasCondition(a.state(objectID), cond)
}

// AccuracyPenalty returns the accumulated blind penalty on the target.
func (a *Aggregator) AccuracyPenalty(objectID uint32) float64 {
	s := a.state(objectID)
	if s == nil {
		return 0
	}
	return s.AccuracyPenalty()
}
