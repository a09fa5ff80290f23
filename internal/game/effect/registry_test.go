package effect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestRegister_DuplicateRejected(t *testing.T) {
	r := NewRegistry(testTargets{}, WithMeterProvider(noop.NewMeterProvider()))
	require.NoError(t, r.Register(recordingKind(testIDRecording, PolicyStack)))

	err := r.Register(recordingKind(testIDRecording, PolicyRefresh))
	require.ErrorIs(t, err, ErrDuplicateKind)

	k, ok := r.Kind(testIDRecording)
	require.True(t, ok)
	assert.Equal(t, PolicyStack, k.Policy, "first registration must survive")
}

func TestRegister_OverrideLastWriterWins(t *testing.T) {
	r := NewRegistry(testTargets{}, WithOverride(true), WithMeterProvider(noop.NewMeterProvider()))
	require.NoError(t, r.Register(recordingKind(testIDRecording, PolicyStack)))
	require.NoError(t, r.Register(recordingKind(testIDRecording, PolicyRefresh)))

	k, ok := r.Kind(testIDRecording)
	require.True(t, ok)
	assert.Equal(t, PolicyRefresh, k.Policy)
}

func TestRegister_Invalid(t *testing.T) {
	r := NewRegistry(testTargets{}, WithMeterProvider(noop.NewMeterProvider()))

	err := r.Register(Kind{ID: 0, Name: "Zero", New: NewStunEffect})
	assert.ErrorIs(t, err, ErrInvalidKind)

	err = r.Register(Kind{ID: 42, Name: "NoFactory"})
	assert.ErrorIs(t, err, ErrInvalidKind)

	assert.Empty(t, r.Kinds())
}

func TestRegister_Frozen(t *testing.T) {
	r := NewRegistry(testTargets{}, WithMeterProvider(noop.NewMeterProvider()))
	r.Freeze()

	err := r.Register(recordingKind(testIDRecording, PolicyStack))
	assert.ErrorIs(t, err, ErrRegistryFrozen)
	assert.Panics(t, func() { r.MustRegister(recordingKind(testIDRecording, PolicyStack)) })
}

func TestRegisterBuiltins_Twice(t *testing.T) {
	r := NewRegistry(testTargets{}, WithMeterProvider(noop.NewMeterProvider()))
	require.NoError(t, RegisterBuiltins(r))
	assert.ErrorIs(t, RegisterBuiltins(r), ErrDuplicateKind)
}

func TestKinds_OrderedByID(t *testing.T) {
	r := newTestRegistry(t, testTargets{})

	kinds := r.Kinds()
	require.Len(t, kinds, len(Builtins())+3)
	for i := 1; i < len(kinds); i++ {
		assert.Less(t, kinds[i-1].ID, kinds[i].ID)
	}
}

func TestApply_UnknownEffectLeavesStateUnchanged(t *testing.T) {
	targets := testTargets{}
	_, s := targets.spawn(1, 100)
	r := newTestRegistry(t, targets)

	r.Apply(1, IDStun, 0, time.Second, 0)
	before := s.Snapshot()

	var inst *Instance
	require.NotPanics(t, func() {
		inst = r.Apply(1, ID(424242), 1, time.Second, 0)
	})
	assert.Nil(t, inst)
	assert.Equal(t, before, s.Snapshot())
	assert.Nil(t, r.ApplyState(s, ID(424242), 1, time.Second, 0))
}

func TestApply_MissingTargetIgnored(t *testing.T) {
	r := newTestRegistry(t, testTargets{})

	assert.Nil(t, r.Apply(77, IDStun, 0, time.Second, 0))
}

func TestApply_NilTargetsIgnored(t *testing.T) {
	r := newTestRegistry(t, nil)

	assert.Nil(t, r.Apply(1, IDStun, 0, time.Second, 0))
}

func TestApply_Policies(t *testing.T) {
	tests := []struct {
		name      string
		id        ID
		wantCount int
		wantSame  bool
	}{
		{name: "stack creates new instance", id: testIDRecording, wantCount: 2, wantSame: false},
		{name: "refresh reuses instance", id: testIDRefresh, wantCount: 1, wantSame: true},
		{name: "ignore keeps first instance", id: testIDIgnore, wantCount: 1, wantSame: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := testTargets{}
			_, s := targets.spawn(1, 100)
			r := newTestRegistry(t, targets)

			first := r.Apply(1, tt.id, 1, 2*time.Second, 0)
			second := r.Apply(1, tt.id, 2, 5*time.Second, 0)

			require.NotNil(t, first)
			require.NotNil(t, second)
			assert.Equal(t, tt.wantCount, s.Count(tt.id))
			assert.Equal(t, tt.wantSame, first == second)
			assert.Equal(t, 1, recorder(t, first).applies)
		})
	}
}

func TestApply_IgnorePolicyKeepsTimer(t *testing.T) {
	targets := testTargets{}
	_, s := targets.spawn(1, 100)
	r := newTestRegistry(t, targets)

	inst := r.Apply(1, testIDIgnore, 1, 2*time.Second, 0)
	s.Advance(time.Second)
	r.Apply(1, testIDIgnore, 3, 10*time.Second, 0)

	assert.Equal(t, time.Second, inst.Remaining())
	assert.Equal(t, 1.0, inst.Magnitude())
}

type countingObserver struct {
	applied []ID
	removed []ID
}

func (o *countingObserver) EffectApplied(inst *Instance) { o.applied = append(o.applied, inst.ID()) }
func (o *countingObserver) EffectRemoved(inst *Instance) { o.removed = append(o.removed, inst.ID()) }

func TestApply_ObserverNotified(t *testing.T) {
	targets := testTargets{}
	_, s := targets.spawn(1, 100)
	obs := &countingObserver{}
	r := newTestRegistry(t, targets, WithObserver(obs))

	r.Apply(1, IDStun, 0, time.Second, 0)
	r.Apply(1, IDStun, 0, time.Second, 0) // ignored, no notification
	r.Apply(1, IDKnockback, 0, 3*time.Second, 0)
	s.Advance(2 * time.Second)

	assert.Equal(t, []ID{IDStun, IDKnockback}, obs.applied)
	assert.Equal(t, []ID{IDStun}, obs.removed)

	s.Clear()
	assert.Equal(t, []ID{IDStun, IDKnockback}, obs.removed)
}
