package effect

import (
	"log/slog"
	"time"
)

// Snapshot is the persisted form of one live instance.
type Snapshot struct {
	EffectID     ID
	Magnitude    float64
	Total        time.Duration
	Remaining    time.Duration
	TickInterval time.Duration
	TickAccum    time.Duration
}

// Snapshot captures every live instance in application order.
func (s *State) Snapshot() []Snapshot {
	out := make([]Snapshot, 0, len(s.instances))
	for _, inst := range s.instances {
		if !inst.Active() {
			continue
		}
		out = append(out, Snapshot{
			EffectID:     inst.kind.ID,
			Magnitude:    inst.magnitude,
			Total:        inst.total,
			Remaining:    inst.remaining,
			TickInterval: inst.tickInterval,
			TickAccum:    inst.tickAccum,
		})
	}
	return out
}

// Restore recreates instances from snapshots on state. OnApply runs for each
// new instance so kind bookkeeping is rebuilt; timers then resume where they
// were captured.
//
// Stack policies hold against instances already on state: a live Refresh
// kind is refreshed to the snapshot's remaining time and magnitude, a live
// IgnoreIfPresent kind is left untouched and the snapshot dropped.
// Returns the number of snapshots that created or refreshed an instance.
func (r *Registry) Restore(state *State, snaps []Snapshot) int {
	restored := 0
	for _, snap := range snaps {
		if snap.Remaining <= 0 {
			continue
		}
		if state == nil || state.Released() {
			return restored
		}
		kind, ok := r.Kind(snap.EffectID)
		if !ok {
			slog.Warn("skipping unrestorable effect", "effect", snap.EffectID)
			r.metrics.inc(r.metrics.unknown, snap.EffectID)
			continue
		}

		if live, ok := state.Find(kind.ID); ok {
			switch kind.Policy {
			case PolicyRefresh:
				live.Refresh(snap.Remaining, snap.Magnitude)
				r.metrics.inc(r.metrics.refreshed, kind.ID)
				restored++
				continue
			case PolicyIgnoreIfPresent:
				r.metrics.inc(r.metrics.ignored, kind.ID)
				continue
			}
		}

		inst := r.create(state, kind, snap.Magnitude, snap.Total, snap.TickInterval)
		if inst == nil {
			continue
		}
		// A corrupt row may carry remaining > total; total grows to match.
		inst.total = max(inst.total, snap.Remaining)
		inst.remaining = snap.Remaining
		if snap.TickAccum >= 0 && snap.TickAccum < inst.tickInterval {
			inst.tickAccum = snap.TickAccum
		}
		restored++
	}
	return restored
}
