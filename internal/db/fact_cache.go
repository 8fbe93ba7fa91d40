package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/daniel/career-assistant/internal/factcache"
	"github.com/daniel/career-assistant/internal/types"
)

// GetExtraction returns the profile's cached extraction row, or nil when
// none exists. Implements factcache.Store.
func (db *DB) GetExtraction(ctx context.Context, profileID uuid.UUID) (*factcache.Entry, error) {
	var entry factcache.Entry
	var inventoryBytes []byte
	err := db.pool.QueryRow(ctx,
		`SELECT profile_id, inventory, fingerprint, status, error, updated_at
		 FROM fact_cache WHERE profile_id = $1`,
		profileID,
	).Scan(&entry.ProfileID, &inventoryBytes, &entry.Fingerprint, &entry.Status, &entry.Error, &entry.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached extraction: %w", err)
	}

	if len(inventoryBytes) > 0 {
		var inventory types.FactInventory
		if err := json.Unmarshal(inventoryBytes, &inventory); err != nil {
			return nil, fmt.Errorf("failed to decode cached inventory: %w", err)
		}
		entry.Inventory = &inventory
	}
	return &entry, nil
}

// ClaimExtraction atomically claims the single-writer slot for a profile:
// it upserts a generating row carrying the fingerprint captured at trigger
// time, unless a generation is already in flight or a ready row already
// matches the fingerprint. The conditional upsert replaces a read-then-write
// check, so two concurrent triggers cannot both claim the slot.
func (db *DB) ClaimExtraction(ctx context.Context, profileID uuid.UUID, fingerprint string) (bool, error) {
	var claimed uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO fact_cache (profile_id, inventory, fingerprint, status, error, updated_at)
		 VALUES ($1, NULL, $2, 'generating', '', NOW())
		 ON CONFLICT (profile_id) DO UPDATE
		 SET inventory = NULL, fingerprint = EXCLUDED.fingerprint,
		     status = 'generating', error = '', updated_at = NOW()
		 WHERE fact_cache.status <> 'generating'
		   AND NOT (fact_cache.status = 'ready' AND fact_cache.fingerprint = EXCLUDED.fingerprint)
		 RETURNING profile_id`,
		profileID, fingerprint,
	).Scan(&claimed)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to claim extraction: %w", err)
	}
	return true, nil
}

// CompleteExtraction stores the extracted inventory and marks the row ready
func (db *DB) CompleteExtraction(ctx context.Context, profileID uuid.UUID, inventory *types.FactInventory) error {
	inventoryBytes, err := json.Marshal(inventory)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE fact_cache
		 SET inventory = $1, status = 'ready', error = '', updated_at = NOW()
		 WHERE profile_id = $2 AND status = 'generating'`,
		inventoryBytes, profileID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete extraction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no in-flight extraction for profile %s", profileID)
	}
	return nil
}

// FailExtraction marks the row failed with a human-readable error. The row
// is kept so callers can see what failed.
func (db *DB) FailExtraction(ctx context.Context, profileID uuid.UUID, message string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE fact_cache
		 SET status = 'failed', error = $1, updated_at = NOW()
		 WHERE profile_id = $2 AND status = 'generating'`,
		message, profileID,
	)
	if err != nil {
		return fmt.Errorf("failed to record extraction failure: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no in-flight extraction for profile %s", profileID)
	}
	return nil
}
