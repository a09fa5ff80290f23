package effect

import "time"

// State is the per-target effect component: every instance currently
// attached to one target plus type-specific bookkeeping.
//
// Not safe for concurrent use; the goroutine that owns the target's update
// slice must serialise Apply, Advance and queries.
type State struct {
	host      Host
	instances []*Instance

	// accuracyPenalty is the running sum kept by AccuracyBlind instances.
	accuracyPenalty float64

	advancing bool
	released  bool
}

// NewState creates an empty State attached to host.
func NewState(host Host) *State {
	return &State{
		host:      host,
		instances: make([]*Instance, 0, 8),
	}
}

// Host returns the entity the state is attached to.
func (s *State) Host() Host { return s.host }

// Released reports whether the owning target has been released.
func (s *State) Released() bool { return s.released }

// Len returns the number of live instances.
func (s *State) Len() int {
	n := 0
	for _, inst := range s.instances {
		if inst.Active() {
			n++
		}
	}
	return n
}

// Instances returns a copy of the live instances in application order.
func (s *State) Instances() []*Instance {
	out := make([]*Instance, 0, len(s.instances))
	for _, inst := range s.instances {
		if inst.Active() {
			out = append(out, inst)
		}
	}
	return out
}

// Find returns the oldest live instance of kind id.
func (s *State) Find(id ID) (*Instance, bool) {
	for _, inst := range s.instances {
		if inst.Active() && inst.kind.ID == id {
			return inst, true
		}
	}
	return nil, false
}

// Count returns the number of live instances of kind id.
func (s *State) Count(id ID) int {
	n := 0
	for _, inst := range s.instances {
		if inst.Active() && inst.kind.ID == id {
			n++
		}
	}
	return n
}

// AccuracyPenalty returns the accumulated blind penalty.
func (s *State) AccuracyPenalty() float64 { return s.accuracyPenalty }

// Advance moves every instance attached at the start of the step forward by
// dt and detaches the ones that expired. Instances added by hooks during the
// step start ticking on the next one. Returns the number of detached instances.
func (s *State) Advance(dt time.Duration) int {
	if s.released || dt < 0 {
		return 0
	}

	s.advancing = true
	n := len(s.instances)
	for i := 0; i < n; i++ {
		s.instances[i].advance(dt)
	}
	s.advancing = false

	return s.compact()
}

// Remove cleanses inst: OnRemove runs immediately and the instance is
// detached. Returns false if inst was not live on this state.
func (s *State) Remove(inst *Instance) bool {
	if inst == nil || inst.state != s || !inst.remove() {
		return false
	}
	if !s.advancing {
		s.compact()
	}
	return true
}

// RemoveKind cleanses every live instance of kind id and returns how many
// were removed.
func (s *State) RemoveKind(id ID) int {
	removed := 0
	for _, inst := range s.instances {
		if inst.kind.ID == id && inst.remove() {
			removed++
		}
	}
	if removed > 0 && !s.advancing {
		s.compact()
	}
	return removed
}

// Clear cleanses every live instance.
func (s *State) Clear() int {
	removed := 0
	for _, inst := range s.instances {
		if inst.remove() {
			removed++
		}
	}
	if !s.advancing {
		s.compact()
	}
	return removed
}

// Release clears the state and marks it dead. Called by the owning system
// when the target leaves the world; later applications are ignored.
func (s *State) Release() {
	if s.released {
		return
	}
	s.Clear()
	s.released = true
}

// attach appends a freshly initialized instance.
func (s *State) attach(inst *Instance) {
	s.instances = append(s.instances, inst)
}

// compact drops instances that are no longer live.
func (s *State) compact() int {
	n := 0
	for _, inst := range s.instances {
		if inst.Active() {
			s.instances[n] = inst
			n++
		}
	}
	dropped := len(s.instances) - n
	clear(s.instances[n:])
	s.instances = s.instances[:n]
	return dropped
}
