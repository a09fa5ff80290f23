package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/statusfx/internal/config"
	"github.com/udisondev/statusfx/internal/db"
	"github.com/udisondev/statusfx/internal/game/combat"
	"github.com/udisondev/statusfx/internal/game/effect"
	"github.com/udisondev/statusfx/internal/model"
	"github.com/udisondev/statusfx/internal/world"
)

const ConfigPath = "config/statusfx.yaml"

// saveTimeout bounds one snapshot flush, including the final one after shutdown.
const saveTimeout = 5 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv(config.EnvPrefix + "CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.Runtime.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cfgPath, err)
	}

	slog.Info("statusfx starting",
		"log_level", cfg.Runtime.LogLevel,
		"tick_rate", cfg.Runtime.TickRate,
		"workers", cfg.Runtime.Workers,
		"database", cfg.Database.Enabled)

	w := world.New()
	registry := effect.NewRegistry(w,
		effect.WithOverride(cfg.Runtime.AllowOverride),
		effect.WithObserver(logObserver{}),
	)
	if err := effect.RegisterBuiltins(registry); err != nil {
		return fmt.Errorf("registering effects: %w", err)
	}
	registry.Freeze()
	slog.Info("effect kinds registered", "count", len(registry.Kinds()))

	actors := spawnTargets(w, cfg.Scenario.Targets)

	var repo *db.EffectRepository
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN(), db.WithMaxConns(int32(cfg.Runtime.Workers)+1))
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		repo = database.Effects()
		if err := restoreEffects(ctx, repo, registry, w); err != nil {
			return fmt.Errorf("restoring effects: %w", err)
		}
	}

	applyScenario(registry, actors, cfg.Scenario.Applications)

	snapshotEvery := time.Duration(0)
	if repo != nil {
		snapshotEvery = cfg.Runtime.SnapshotInterval
	}
	loop := world.NewLoop(w, cfg.Runtime.StepInterval(), cfg.Runtime.Workers, snapshotEvery)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting simulation loop", "step", cfg.Runtime.StepInterval())
		if err := loop.Run(gctx); err != nil {
			return fmt.Errorf("simulation loop: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Drains until the loop closes the channel; the final batch lands after cancel.
		for batch := range loop.Snapshots() {
			saveCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), saveTimeout)
			if err := repo.SaveBatch(saveCtx, batch); err != nil {
				slog.Error("saving effect snapshots", "targets", len(batch), "err", err)
			} else {
				slog.Debug("effect snapshots saved", "targets", len(batch))
			}
			cancel()
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("simulation error: %w", err)
	}

	for _, a := range w.Actors() {
		logActor(a)
	}
	slog.Info("statusfx stopped")
	return nil
}

func spawnTargets(w *world.World, specs []config.TargetSpec) map[string]*model.Actor {
	actors := make(map[string]*model.Actor, len(specs))
	for _, t := range specs {
		kind := model.KindNpc
		if t.Kind == "player" {
			kind = model.KindPlayer
		}
		a := w.Spawn(t.Name, kind, t.MaxHP, model.BaseStats{
			Attack:   t.Attack,
			Defense:  t.Defense,
			Accuracy: t.Accuracy,
		})
		actors[t.Name] = a
		slog.Debug("target spawned", "name", t.Name, "kind", kind, "object_id", a.ObjectID())
	}
	return actors
}

func applyScenario(r *effect.Registry, actors map[string]*model.Actor, apps []config.Application) {
	for _, app := range apps {
		a := actors[app.Target]
		inst := r.Apply(a.ObjectID(), effect.ID(app.Effect), app.Value, app.Duration, app.TickInterval)
		if inst == nil {
			slog.Warn("scenario application dropped", "target", app.Target, "effect", app.Effect)
		}
	}
}

// effectLoader reads persisted effects by target name.
type effectLoader interface {
	Load(ctx context.Context, targetName string) ([]effect.Snapshot, error)
}

func restoreEffects(ctx context.Context, repo effectLoader, r *effect.Registry, w *world.World) error {
	total := 0
	for _, a := range w.Actors() {
		snaps, err := repo.Load(ctx, a.Name())
		if err != nil {
			return fmt.Errorf("loading effects for %s: %w", a.Name(), err)
		}
		total += r.Restore(a.Effects(), snaps)
	}
	slog.Info("effects restored", "count", total)
	return nil
}

func logActor(a *model.Actor) {
	slog.Info("target state",
		"name", a.Name(),
		"hp", a.CurrentHP(),
		"effects", a.Effects().Len(),
		"attack", combat.EffectiveAttack(a),
		"defense", combat.EffectiveDefense(a),
		"accuracy", combat.EffectiveAccuracy(a),
		"can_act", combat.CanAct(a))
}

type logObserver struct{}

func (logObserver) EffectApplied(inst *effect.Instance) {
	slog.Debug("effect applied",
		"effect", inst.Kind().Name,
		"target", inst.Host().ObjectID(),
		"magnitude", inst.Magnitude(),
		"duration", inst.TotalDuration())
}

func (logObserver) EffectRemoved(inst *effect.Instance) {
	slog.Debug("effect removed",
		"effect", inst.Kind().Name,
		"target", inst.Host().ObjectID(),
		"remaining", inst.Remaining())
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
