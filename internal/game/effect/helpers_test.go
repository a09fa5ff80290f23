package effect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

// testHost is a minimal Host + Damageable target.
type testHost struct {
	id uint32
	hp int32
}

func (h *testHost) ObjectID() uint32 { return h.id }

func (h *testHost) ReduceCurrentHP(amount int32) {
	h.hp -= amount
	if h.hp < 0 {
		h.hp = 0
	}
}

func (h *testHost) IsDead() bool { return h.hp <= 0 }

// testTargets resolves object IDs from a plain map.
type testTargets map[uint32]*State

func (t testTargets) EffectState(objectID uint32) (*State, bool) {
	s, ok := t[objectID]
	return s, ok
}

func (t testTargets) spawn(id uint32, hp int32) (*testHost, *State) {
	h := &testHost{id: id, hp: hp}
	s := NewState(h)
	t[id] = s
	return h, s
}

// recordingEffect counts hook calls.
type recordingEffect struct {
	applies   int
	ticks     int
	removes   int
	intervals []time.Duration

	// onTick runs after counting, if set.
	onTick func(inst *Instance)
}

func (e *recordingEffect) OnApply(*Instance) { e.applies++ }

func (e *recordingEffect) OnTick(inst *Instance, interval time.Duration) {
	e.ticks++
	e.intervals = append(e.intervals, interval)
	if e.onTick != nil {
		e.onTick(inst)
	}
}

func (e *recordingEffect) OnRemove(*Instance) { e.removes++ }

const (
	testIDRecording ID = 9001
	testIDRefresh   ID = 9002
	testIDIgnore    ID = 9003
)

func recordingKind(id ID, policy StackPolicy) Kind {
	return Kind{
		ID:     id,
		Name:   "Recording",
		Policy: policy,
		New:    func() Behavior { return &recordingEffect{} },
	}
}

// newTestRegistry builds a registry with the builtins and the recording kinds.
func newTestRegistry(t *testing.T, targets Targets, opts ...RegistryOption) *Registry {
	t.Helper()
	opts = append([]RegistryOption{WithMeterProvider(noop.NewMeterProvider())}, opts...)
	r := NewRegistry(targets, opts...)
	require.NoError(t, RegisterBuiltins(r))
	require.NoError(t, r.Register(recordingKind(testIDRecording, PolicyStack)))
	require.NoError(t, r.Register(recordingKind(testIDRefresh, PolicyRefresh)))
	require.NoError(t, r.Register(recordingKind(testIDIgnore, PolicyIgnoreIfPresent)))
	r.Freeze()
	return r
}

func recorder(t *testing.T, inst *Instance) *recordingEffect {
	t.Helper()
	require.NotNil(t, inst)
	rec, ok := inst.Behavior().(*recordingEffect)
	require.True(t, ok, "behavior is %T", inst.Behavior())
	return rec
}
