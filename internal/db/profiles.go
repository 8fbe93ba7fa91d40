package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateProfile inserts a new profile and returns it
func (db *DB) CreateProfile(ctx context.Context, name, email, summary string) (*Profile, error) {
	var profile Profile
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (name, email, summary)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, email, summary, created_at`,
		name, email, summary,
	).Scan(&profile.ID, &profile.Name, &profile.Email, &profile.Summary, &profile.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &profile, nil
}

// GetProfile retrieves a profile by ID, returning nil when not found
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var profile Profile
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, summary, created_at FROM profiles WHERE id = $1`,
		id,
	).Scan(&profile.ID, &profile.Name, &profile.Email, &profile.Summary, &profile.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfileSummary replaces the profile's free-text summary
func (db *DB) UpdateProfileSummary(ctx context.Context, id uuid.UUID, summary string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE profiles SET summary = $1 WHERE id = $2`,
		summary, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", id)
	}
	return nil
}

// DeleteProfile deletes a profile and its dependent rows (via cascade)
func (db *DB) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", id)
	}
	return nil
}
