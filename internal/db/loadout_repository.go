package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/skillcast/internal/model"
)

// LoadoutRepository хранит слоты скиллов и выбранный слот каждого актора.
type LoadoutRepository struct {
	db *pgxpool.Pool
}

// NewLoadoutRepository создаёт новый LoadoutRepository.
func NewLoadoutRepository(db *pgxpool.Pool) *LoadoutRepository {
	return &LoadoutRepository{db: db}
}

// Load загружает loadout актора.
// Возвращает nil, nil если loadout не сохранён.
func (r *LoadoutRepository) Load(ctx context.Context, actorID int64) (*model.Loadout, error) {
	l := &model.Loadout{ActorID: actorID}

	var selected int16
	err := r.db.QueryRow(ctx,
		`SELECT selected_slot FROM actor_loadouts WHERE actor_id = $1`, actorID,
	).Scan(&selected)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying loadout for actor %d: %w", actorID, err)
	}
	l.Selected = int(selected)

	rows, err := r.db.Query(ctx,
		`SELECT slot, skill_name FROM actor_loadout_slots WHERE actor_id = $1 ORDER BY slot`, actorID)
	if err != nil {
		return nil, fmt.Errorf("querying loadout slots for actor %d: %w", actorID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			slot int16
			name string
		)
		if err := rows.Scan(&slot, &name); err != nil {
			return nil, fmt.Errorf("scanning loadout slot row: %w", err)
		}
		if int(slot) >= model.SkillSlotCount {
			continue
		}
		l.Slots[slot] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating loadout slot rows: %w", err)
	}

	return l, nil
}

// Save сохраняет loadout (полная перезапись слотов) в одной транзакции.
func (r *LoadoutRepository) Save(ctx context.Context, l model.Loadout) error {
	if l.Selected < 0 || l.Selected >= model.SkillSlotCount {
		return fmt.Errorf("saving loadout for actor %d: selected slot %d out of range", l.ActorID, l.Selected)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `
		INSERT INTO actor_loadouts (actor_id, selected_slot, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (actor_id)
		DO UPDATE SET selected_slot = $2, updated_at = now()`,
		l.ActorID, int16(l.Selected),
	); err != nil {
		return fmt.Errorf("upserting loadout for actor %d: %w", l.ActorID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM actor_loadout_slots WHERE actor_id = $1`, l.ActorID); err != nil {
		return fmt.Errorf("deleting loadout slots for actor %d: %w", l.ActorID, err)
	}

	batch := &pgx.Batch{}
	for slot, name := range l.Slots {
		if name == "" {
			continue
		}
		batch.Queue(
			`INSERT INTO actor_loadout_slots (actor_id, slot, skill_name) VALUES ($1, $2, $3)`,
			l.ActorID, int16(slot), name,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting loadout slots for actor %d: %w", l.ActorID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing loadout save: %w", err)
	}
	return nil
}

// Delete удаляет loadout актора (слоты удаляются каскадно).
func (r *LoadoutRepository) Delete(ctx context.Context, actorID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM actor_loadouts WHERE actor_id = $1`, actorID); err != nil {
		return fmt.Errorf("deleting loadout for actor %d: %w", actorID, err)
	}
	return nil
}
