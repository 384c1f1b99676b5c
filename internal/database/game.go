// internal/database/game.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cardtable/uno/internal/cache"
	"github.com/cardtable/uno/internal/game"
)

// ErrGameNotFound is returned when no snapshot exists for a game id.
var ErrGameNotFound = errors.New("game not found")

// SaveGameSnapshot upserts the full game snapshot. Called after every
// successful dispatch so a restarted process (or another instance) can pick
// the game back up.
func SaveGameSnapshot(ctx context.Context, snap game.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal game snapshot: %w", err)
	}
	q := `
		INSERT INTO games (id, state, snapshot, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE SET state=$2, snapshot=$3, updated_at=now()
	`
	if _, err := DB.Exec(ctx, q, snap.ID, string(snap.State), data); err != nil {
		return fmt.Errorf("failed to upsert game %s: %w", snap.ID, err)
	}
	return nil
}

// LoadGame reads a stored snapshot and rehydrates it into a live,
// dispatch-capable Game. The raw row is never handed out: a snapshot that
// skipped rehydration cannot accept events.
func LoadGame(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	var data []byte
	q := `SELECT snapshot FROM games WHERE id=$1`
	err := DB.QueryRow(ctx, q, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", id, err)
	}

	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot for game %s: %w", id, err)
	}
	g, err := snap.Rehydrate()
	if err != nil {
		return nil, fmt.Errorf("failed to rehydrate game %s: %w", id, err)
	}
	return g, nil
}

// DeleteGame removes an archived game row.
func DeleteGame(ctx context.Context, id uuid.UUID) error {
	if _, err := DB.Exec(ctx, `DELETE FROM games WHERE id=$1`, id); err != nil {
		return fmt.Errorf("failed to delete game %s: %w", id, err)
	}
	return nil
}

// InsertGameActions bulk-inserts archived action records. Used by the
// archiver service draining the Redis action queue.
func InsertGameActions(ctx context.Context, records []cache.GameActionRecord) error {
	if len(records) == 0 {
		return nil
	}
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		q := `
			INSERT INTO game_actions (game_id, actor_id, event_kind, result_kind, error_code, raw_event, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, to_timestamp($7 / 1000.0))
		`
		for _, rec := range records {
			if _, err := tx.Exec(ctx, q,
				rec.GameID, rec.ActorID, rec.EventKind, rec.ResultKind,
				rec.ErrorCode, []byte(rec.RawEvent), rec.Timestamp,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
