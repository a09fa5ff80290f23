package effect

import "time"

// baseBehavior provides no-op hooks for kinds that only override some of them.
type baseBehavior struct{}

func (baseBehavior) OnApply(*Instance)               {}
func (baseBehavior) OnTick(*Instance, time.Duration) {}
func (baseBehavior) OnRemove(*Instance)              {}

// targetObjectID returns the host's object ID for logging, 0 if detached.
func targetObjectID(inst *Instance) uint32 {
	if h := inst.Host(); h != nil {
		return h.ObjectID()
	}
	return 0
}
