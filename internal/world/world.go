package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/statusfx/internal/game/effect"
	"github.com/udisondev/statusfx/internal/model"
)

// ErrObjectExists is returned by Add when the object ID is taken.
var ErrObjectExists = errors.New("object already in world")

// World owns every live actor and drives the per-step effect advance.
// Implements effect.Targets.
//
// The actor map is guarded by mu; mu is never held while effect hooks run.
// Each actor's effect state is advanced by exactly one goroutine per step.
type World struct {
	mu     sync.RWMutex
	actors map[uint32]*model.Actor
	ids    *ObjectIDGenerator
}

// New creates an empty world.
func New() *World {
	return &World{
		actors: make(map[uint32]*model.Actor, 64),
		ids:    NewObjectIDGenerator(),
	}
}

// Spawn creates an actor with a fresh object ID and adds it to the world.
func (w *World) Spawn(name string, kind model.ActorKind, maxHP int32, base model.BaseStats) *model.Actor {
	id := w.ids.Next(kind)
	a := model.NewActor(id, name, kind, maxHP, base)

	w.mu.Lock()
	w.actors[id] = a
	w.mu.Unlock()

	slog.Debug("actor spawned", "objectID", id, "name", name, "kind", kind)
	return a
}

// Add inserts an actor created elsewhere.
func (w *World) Add(a *model.Actor) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.actors[a.ObjectID()]; ok {
		return fmt.Errorf("adding actor %d: %w", a.ObjectID(), ErrObjectExists)
	}
	w.actors[a.ObjectID()] = a
	return nil
}

// Despawn removes the actor and releases every effect attached to it.
// Returns false if the actor was not in the world.
func (w *World) Despawn(objectID uint32) bool {
	w.mu.Lock()
	a, ok := w.actors[objectID]
	if ok {
		delete(w.actors, objectID)
	}
	w.mu.Unlock()

	if !ok {
		return false
	}
	a.Effects().Release()
	slog.Debug("actor despawned", "objectID", objectID)
	return true
}

// Actor returns the actor with the given object ID.
func (w *World) Actor(objectID uint32) (*model.Actor, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	a, ok := w.actors[objectID]
	return a, ok
}

// EffectState implements effect.Targets.
func (w *World) EffectState(objectID uint32) (*effect.State, bool) {
	a, ok := w.Actor(objectID)
	if !ok {
		return nil, false
	}
	return a.Effects(), true
}

// Len returns the number of actors in the world.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.actors)
}

// Actors returns all actors ordered by object ID.
func (w *World) Actors() []*model.Actor {
	w.mu.RLock()
	out := make([]*model.Actor, 0, len(w.actors))
	for _, a := range w.actors {
		out = append(out, a)
	}
	w.mu.RUnlock()

	slices.SortFunc(out, func(a, b *model.Actor) int {
		switch {
		case a.ObjectID() < b.ObjectID():
			return -1
		case a.ObjectID() > b.ObjectID():
			return 1
		default:
			return 0
		}
	})
	return out
}

// Step advances every actor's effects by dt on the calling goroutine.
// Returns the number of instances that expired or were cleansed.
func (w *World) Step(dt time.Duration) int {
	expired := 0
	for _, a := range w.Actors() {
		expired += a.Effects().Advance(dt)
	}
	return expired
}

// StepParallel advances actors in up to workers shards. Every actor belongs to
// exactly one shard, so effect hooks must only touch their own target.
// workers <= 1 falls back to Step.
func (w *World) StepParallel(ctx context.Context, dt time.Duration, workers int) error {
	if workers <= 1 {
		w.Step(dt)
		return ctx.Err()
	}

	actors := w.Actors()
	if len(actors) == 0 {
		return ctx.Err()
	}

	chunk := (len(actors) + workers - 1) / workers
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(actors); start += chunk {
		shard := actors[start:min(start+chunk, len(actors))]
		g.Go(func() error {
			for _, a := range shard {
				if err := ctx.Err(); err != nil {
					return err
				}
				a.Effects().Advance(dt)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("stepping world: %w", err)
	}
	return nil
}
