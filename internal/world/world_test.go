package world

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/udisondev/statusfx/internal/game/effect"
	"github.com/udisondev/statusfx/internal/model"
)

func newTestRegistry(t *testing.T, w *World) *effect.Registry {
	t.Helper()
	r := effect.NewRegistry(w, effect.WithMeterProvider(noop.NewMeterProvider()))
	require.NoError(t, effect.RegisterBuiltins(r))
	r.Freeze()
	return r
}

func TestWorld_SpawnAssignsRanges(t *testing.T) {
	w := New()

	p := w.Spawn("Player", model.KindPlayer, 100, model.BaseStats{})
	n := w.Spawn("Orc", model.KindNpc, 100, model.BaseStats{})

	assert.Equal(t, uint32(0x10000001), p.ObjectID())
	assert.Equal(t, uint32(0x20000001), n.ObjectID())
	assert.Equal(t, 2, w.Len())

	got, ok := w.Actor(p.ObjectID())
	require.True(t, ok)
	assert.Same(t, p, got)
}

func TestWorld_AddDuplicate(t *testing.T) {
	w := New()
	a := model.NewActor(7, "Seven", model.KindNpc, 10, model.BaseStats{})

	require.NoError(t, w.Add(a))
	assert.ErrorIs(t, w.Add(a), ErrObjectExists)
}

func TestWorld_EffectState(t *testing.T) {
	w := New()
	a := w.Spawn("Player", model.KindPlayer, 100, model.BaseStats{})

	s, ok := w.EffectState(a.ObjectID())
	require.True(t, ok)
	assert.Same(t, a.Effects(), s)

	_, ok = w.EffectState(12345)
	assert.False(t, ok)
}

func TestWorld_DespawnReleasesEffects(t *testing.T) {
	w := New()
	r := newTestRegistry(t, w)
	a := w.Spawn("Player", model.KindPlayer, 100, model.BaseStats{})

	r.Apply(a.ObjectID(), effect.IDAccuracyBlind, 20, time.Minute, 0)
	r.Apply(a.ObjectID(), effect.IDStun, 0, time.Minute, 0)
	require.Equal(t, 2, a.Effects().Len())

	assert.True(t, w.Despawn(a.ObjectID()))
	assert.False(t, w.Despawn(a.ObjectID()))

	assert.True(t, a.Effects().Released())
	assert.Zero(t, a.Effects().Len())
	assert.Zero(t, a.Effects().AccuracyPenalty())
	assert.Nil(t, r.Apply(a.ObjectID(), effect.IDStun, 0, time.Minute, 0))
}

func TestWorld_StepAdvancesEveryActorOnce(t *testing.T) {
	w := New()
	r := newTestRegistry(t, w)

	var insts []*effect.Instance
	for range 5 {
		a := w.Spawn("Orc", model.KindNpc, 100, model.BaseStats{})
		insts = append(insts, r.Apply(a.ObjectID(), effect.IDKnockback, 0, 2*time.Second, 0))
	}

	expired := w.Step(500 * time.Millisecond)
	assert.Zero(t, expired)
	for _, inst := range insts {
		assert.Equal(t, 1500*time.Millisecond, inst.Remaining())
	}

	expired = w.Step(1500 * time.Millisecond)
	assert.Equal(t, 5, expired)
}

func TestWorld_StepParallel(t *testing.T) {
	w := New()
	r := newTestRegistry(t, w)

	var actors []*model.Actor
	for range 37 {
		a := w.Spawn("Orc", model.KindNpc, 100, model.BaseStats{})
		r.Apply(a.ObjectID(), effect.IDPoison, 3, 10*time.Second, time.Second)
		r.Apply(a.ObjectID(), effect.IDAttackMultiplier, 0.1, 10*time.Second, 0)
		actors = append(actors, a)
	}

	for range 4 {
		require.NoError(t, w.StepParallel(context.Background(), 500*time.Millisecond, 4))
	}

	for _, a := range actors {
		assert.Equal(t, int32(94), a.CurrentHP(), "actor %d", a.ObjectID())
		inst, ok := a.Effects().Find(effect.IDPoison)
		require.True(t, ok)
		assert.Equal(t, 8*time.Second, inst.Remaining())
	}
}

func TestWorld_StepParallelSingleWorker(t *testing.T) {
	w := New()
	r := newTestRegistry(t, w)
	a := w.Spawn("Orc", model.KindNpc, 100, model.BaseStats{})
	inst := r.Apply(a.ObjectID(), effect.IDStun, 0, time.Second, 0)

	require.NoError(t, w.StepParallel(context.Background(), 250*time.Millisecond, 1))
	assert.Equal(t, 750*time.Millisecond, inst.Remaining())
}

func TestWorld_StepParallelCancelled(t *testing.T) {
	w := New()
	r := newTestRegistry(t, w)
	for range 8 {
		a := w.Spawn("Orc", model.KindNpc, 100, model.BaseStats{})
		r.Apply(a.ObjectID(), effect.IDStun, 0, time.Second, 0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.StepParallel(ctx, time.Second, 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorld_EmptyStep(t *testing.T) {
	w := New()

	assert.Zero(t, w.Step(time.Second))
	assert.NoError(t, w.StepParallel(context.Background(), time.Second, 8))
}

func TestObjectIDGenerator(t *testing.T) {
	gen := NewObjectIDGenerator()

	assert.Equal(t, uint32(0x10000001), gen.Next(model.KindPlayer))
	assert.Equal(t, uint32(0x10000002), gen.Next(model.KindPlayer))
	assert.Equal(t, uint32(0x20000001), gen.Next(model.KindNpc))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name   string
		id     uint32
		want   model.ActorKind
		wantOK bool
	}{
		{"player", 0x10000001, model.KindPlayer, true},
		{"npc", 0x2000ABCD, model.KindNpc, true},
		{"player base", 0x10000000, model.KindPlayer, false},
		{"zero", 0, 0, false},
		{"reserved", 0x40000001, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KindOf(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
