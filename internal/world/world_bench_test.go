package world

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/udisondev/statusfx/internal/game/effect"
	"github.com/udisondev/statusfx/internal/model"
)

func benchWorld(b *testing.B, actors int) *World {
	b.Helper()
	w := New()
	r := effect.NewRegistry(w, effect.WithMeterProvider(noop.NewMeterProvider()))
	if err := effect.RegisterBuiltins(r); err != nil {
		b.Fatal(err)
	}
	r.Freeze()

	for i := range actors {
		a := w.Spawn(fmt.Sprintf("npc-%d", i), model.KindNpc, 1_000_000, model.BaseStats{Attack: 100})
		id := a.ObjectID()
		r.Apply(id, effect.IDAttackMultiplier, 0.1, time.Hour, 0)
		r.Apply(id, effect.IDAccuracyBlind, 5, time.Hour, 0)
		r.Apply(id, effect.IDPoison, 1, time.Hour, 100*time.Millisecond)
		r.Apply(id, effect.IDKnockback, 0, time.Hour, 0)
	}
	return w
}

// BenchmarkWorld_Step measures one sequential step over 1000 actors with 4 effects each.
func BenchmarkWorld_Step(b *testing.B) {
	w := benchWorld(b, 1000)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		w.Step(50 * time.Millisecond)
	}
}

func BenchmarkWorld_StepParallel(b *testing.B) {
	for _, workers := range []int{2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			w := benchWorld(b, 1000)
			ctx := context.Background()

			b.ResetTimer()
			b.ReportAllocs()

			for range b.N {
				if err := w.StepParallel(ctx, 50*time.Millisecond, workers); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkWorld_CaptureSnapshots measures the per-interval cost of building a save batch.
func BenchmarkWorld_CaptureSnapshots(b *testing.B) {
	w := benchWorld(b, 1000)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		_ = w.CaptureSnapshots()
	}
}
