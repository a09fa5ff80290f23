package effect

import "log/slog"

// AccuracyBlindEffect lowers accuracy through the target's running penalty:
// the magnitude is added on apply and taken back on remove.
type AccuracyBlindEffect struct {
	baseBehavior
	applied float64
}

func NewAccuracyBlindEffect() Behavior {
	return &AccuracyBlindEffect{}
}

func (e *AccuracyBlindEffect) OnApply(inst *Instance) {
	e.applied = inst.Magnitude()
	inst.State().accuracyPenalty += e.applied
	slog.Debug("blind applied", "value", e.applied, "target", targetObjectID(inst))
}

func (e *AccuracyBlindEffect) OnRemove(inst *Instance) {
	s := inst.State()
	s.accuracyPenalty -= e.applied
	// Float residue must not outlive the last blind.
	if s.Count(IDAccuracyBlind) == 0 {
		s.accuracyPenalty = 0
	}
	slog.Debug("blind removed", "value", e.applied, "target", targetObjectID(inst))
}
