package effect

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/udisondev/statusfx/internal/game/effect"

// metrics counts registry and lifecycle outcomes per effect ID.
type metrics struct {
	applied   metric.Int64Counter
	refreshed metric.Int64Counter
	ignored   metric.Int64Counter
	unknown   metric.Int64Counter
	removed   metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider) *metrics {
	meter := mp.Meter(meterName)
	return &metrics{
		applied:   newCounter(meter, "statusfx.effect.applied", "Effect instances created"),
		refreshed: newCounter(meter, "statusfx.effect.refreshed", "Applications that refreshed a live instance"),
		ignored:   newCounter(meter, "statusfx.effect.ignored", "Applications dropped because an instance was live"),
		unknown:   newCounter(meter, "statusfx.effect.unknown", "Applications with an unregistered effect ID"),
		removed:   newCounter(meter, "statusfx.effect.removed", "Effect instances torn down"),
	}
}

func newCounter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		slog.Warn("creating effect counter", "name", name, "err", err)
		return noop.Int64Counter{}
	}
	return c
}

func (m *metrics) inc(c metric.Int64Counter, id ID) {
	c.Add(context.Background(), 1, metric.WithAttributes(attribute.Int("effect_id", int(id))))
}
