package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/statusfx/internal/game/effect"
)

// EffectRepository хранит снапшоты активных эффектов по имени цели.
// Object ID выдаётся заново при каждом запуске, имя стабильно.
type EffectRepository struct {
	db *pgxpool.Pool
}

// NewEffectRepository создаёт новый EffectRepository.
func NewEffectRepository(db *pgxpool.Pool) *EffectRepository {
	return &EffectRepository{db: db}
}

// Load возвращает снапшоты эффектов цели в порядке применения.
func (r *EffectRepository) Load(ctx context.Context, targetName string) ([]effect.Snapshot, error) {
	query := `
		SELECT effect_id, magnitude, total_ns, remaining_ns, tick_interval_ns, tick_accum_ns
		FROM active_effects
		WHERE target_name = $1
		ORDER BY slot
	`

	rows, err := r.db.Query(ctx, query, targetName)
	if err != nil {
		return nil, fmt.Errorf("querying effects for %q: %w", targetName, err)
	}
	defer rows.Close()

	snaps := make([]effect.Snapshot, 0, 8)
	for rows.Next() {
		var (
			effectID                          int32
			magnitude                         float64
			total, remaining, interval, accum int64
		)
		if err := rows.Scan(&effectID, &magnitude, &total, &remaining, &interval, &accum); err != nil {
			return nil, fmt.Errorf("scanning effect row: %w", err)
		}
		snaps = append(snaps, effect.Snapshot{
			EffectID:     effect.ID(effectID),
			Magnitude:    magnitude,
			Total:        time.Duration(total),
			Remaining:    time.Duration(remaining),
			TickInterval: time.Duration(interval),
			TickAccum:    time.Duration(accum),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating effect rows: %w", err)
	}

	return snaps, nil
}

// Save заменяет все сохранённые эффекты цели (полная перезапись в одной транзакции).
func (r *EffectRepository) Save(ctx context.Context, targetName string, snaps []effect.Snapshot) error {
	return r.SaveBatch(ctx, map[string][]effect.Snapshot{targetName: snaps})
}

// SaveBatch заменяет эффекты нескольких целей в одной транзакции.
func (r *EffectRepository) SaveBatch(ctx context.Context, byTarget map[string][]effect.Snapshot) error {
	if len(byTarget) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		// Rollback after commit is expected to fail
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for name, snaps := range byTarget {
		batch.Queue(`DELETE FROM active_effects WHERE target_name = $1`, name)
		for slot, s := range snaps {
			batch.Queue(
				`INSERT INTO active_effects
				 (target_name, slot, effect_id, magnitude, total_ns, remaining_ns, tick_interval_ns, tick_accum_ns)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				name, slot, int32(s.EffectID), s.Magnitude,
				int64(s.Total), int64(s.Remaining), int64(s.TickInterval), int64(s.TickAccum),
			)
		}
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("writing effect snapshots: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing effect snapshots: %w", err)
	}
	return nil
}

// Delete удаляет все сохранённые эффекты цели.
func (r *EffectRepository) Delete(ctx context.Context, targetName string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM active_effects WHERE target_name = $1`, targetName); err != nil {
		return fmt.Errorf("deleting effects for %q: %w", targetName, err)
	}
	return nil
}
