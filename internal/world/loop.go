package world

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/statusfx/internal/game/effect"
)

// SnapshotBatch maps actor name to the actor's live effects at capture time.
// Names are the persistent identity; object IDs change between runs.
type SnapshotBatch map[string][]effect.Snapshot

// CaptureSnapshots captures every actor's effects. Actors without effects map
// to an empty slice so stores can clear stale rows. When names collide the
// actor with the lowest object ID wins and the rest are skipped.
// Must run on the goroutine that steps the world.
func (w *World) CaptureSnapshots() SnapshotBatch {
	actors := w.Actors()
	batch := make(SnapshotBatch, len(actors))
	for _, a := range actors {
		if _, dup := batch[a.Name()]; dup {
			slog.Warn("duplicate actor name, effects not captured", "name", a.Name(), "objectID", a.ObjectID())
			continue
		}
		batch[a.Name()] = a.Effects().Snapshot()
	}
	return batch
}

// Loop drives fixed-rate steps and periodic snapshot capture on a single
// goroutine, so capture never races with effect mutation.
type Loop struct {
	world         *World
	step          time.Duration
	workers       int
	snapshotEvery time.Duration
	snapshots     chan SnapshotBatch
}

// NewLoop creates a loop stepping w by step every step of wall time.
// snapshotEvery <= 0 disables capture; otherwise the caller must drain Snapshots.
func NewLoop(w *World, step time.Duration, workers int, snapshotEvery time.Duration) *Loop {
	return &Loop{
		world:         w,
		step:          step,
		workers:       workers,
		snapshotEvery: snapshotEvery,
		snapshots:     make(chan SnapshotBatch, 1),
	}
}

// Snapshots returns captured batches. Closed when Run returns.
func (l *Loop) Snapshots() <-chan SnapshotBatch {
	return l.snapshots
}

// Run steps the world until ctx is cancelled. A final snapshot is emitted on
// shutdown when capture is enabled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.snapshots)

	stepTicker := time.NewTicker(l.step)
	defer stepTicker.Stop()

	var snapC <-chan time.Time
	if l.snapshotEvery > 0 {
		snapTicker := time.NewTicker(l.snapshotEvery)
		defer snapTicker.Stop()
		snapC = snapTicker.C
	}

	var steps uint64
	for {
		select {
		case <-ctx.Done():
			if l.snapshotEvery > 0 {
				l.snapshots <- l.world.CaptureSnapshots()
			}
			slog.Info("simulation loop stopped", "steps", steps)
			return nil

		case <-stepTicker.C:
			if err := l.world.StepParallel(ctx, l.step, l.workers); err != nil {
				if ctx.Err() != nil {
					continue
				}
				return err
			}
			steps++

		case <-snapC:
			select {
			case l.snapshots <- l.world.CaptureSnapshots():
			default:
				slog.Warn("snapshot skipped, previous batch still pending")
			}
		}
	}
}
