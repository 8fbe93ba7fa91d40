// Package factcache persists fact-extraction results per profile and runs
// the status state machine gating them by content fingerprint.
package factcache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/daniel/career-assistant/internal/facts"
	"github.com/daniel/career-assistant/internal/types"
)

// Status is the externally visible cache state for a profile.
// Stored rows only ever hold generating/ready/failed; none and outdated
// are derived at query time.
type Status string

// Cache statuses
const (
	StatusNone       Status = "none"
	StatusGenerating Status = "generating"
	StatusReady      Status = "ready"
	StatusOutdated   Status = "outdated"
	StatusFailed     Status = "failed"
)

// Entry is the persisted extraction row for a profile. One row per profile;
// a new trigger overwrites it (last-write-wins, no history).
type Entry struct {
	ProfileID   uuid.UUID            `json:"profile_id"`
	Inventory   *types.FactInventory `json:"inventory,omitempty"`
	Fingerprint string               `json:"fingerprint"`
	Status      Status               `json:"status"`
	Error       string               `json:"error,omitempty"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// Store is the persistence boundary for cached extractions.
// Implemented by internal/db against Postgres.
type Store interface {
	// GetExtraction returns the profile's row, or nil when none exists
	GetExtraction(ctx context.Context, profileID uuid.UUID) (*Entry, error)
	// ClaimExtraction atomically claims the single-writer slot: it upserts a
	// generating row with the given fingerprint unless a generation is
	// already in flight or a ready row already matches the fingerprint.
	// Returns false when the claim was refused (trigger is a no-op).
	ClaimExtraction(ctx context.Context, profileID uuid.UUID, fingerprint string) (bool, error)
	// CompleteExtraction stores the payload and marks the row ready
	CompleteExtraction(ctx context.Context, profileID uuid.UUID, inventory *types.FactInventory) error
	// FailExtraction marks the row failed with a human-readable error,
	// keeping the row so callers can see what failed
	FailExtraction(ctx context.Context, profileID uuid.UUID, message string) error
}

// Extractor runs a fact extraction. Production wires facts.ExtractFacts
// closed over an llm.Client; tests inject fakes.
type Extractor func(ctx context.Context, profileSummary string, documents []types.SourceDocument) (*types.FactInventory, error)

// Manager coordinates extraction triggers and status queries for profiles.
// The database claim is the cross-process single-writer guard; the
// singleflight group additionally coalesces concurrent in-process triggers
// so a burst of requests issues at most one external call.
type Manager struct {
	store   Store
	extract Extractor
	timeout time.Duration
	group   singleflight.Group
}

// NewManager creates a cache manager. A zero timeout leaves external calls
// unbounded except by the caller's context.
func NewManager(store Store, extract Extractor, timeout time.Duration) *Manager {
	return &Manager{
		store:   store,
		extract: extract,
		timeout: timeout,
	}
}

// GetStatus reports the derived cache status for a profile given its current
// documents: none when no row exists, generating/failed as stored, and
// ready/outdated depending on whether the stored fingerprint still matches
// the live one.
func (m *Manager) GetStatus(ctx context.Context, profileID uuid.UUID, documents []types.SourceDocument) (Status, *Entry, error) {
	entry, err := m.store.GetExtraction(ctx, profileID)
	if err != nil {
		return "", nil, err
	}
	if entry == nil {
		return StatusNone, nil, nil
	}

	switch entry.Status {
	case StatusGenerating:
		return StatusGenerating, entry, nil
	case StatusFailed:
		return StatusFailed, entry, nil
	}

	if entry.Fingerprint != facts.Fingerprint(documents) {
		return StatusOutdated, entry, nil
	}
	return StatusReady, entry, nil
}

// Trigger starts a fact extraction for the profile unless one is already in
// flight or a ready cache already matches the current fingerprint, in which
// case it is a no-op. The fingerprint is captured here, at trigger time, so
// that documents changing mid-generation surface as outdated afterwards.
//
// Returns whether an extraction actually ran. Extraction failures are
// recorded on the row as failed and also returned.
func (m *Manager) Trigger(ctx context.Context, profileID uuid.UUID, profileSummary string, documents []types.SourceDocument) (bool, error) {
	fingerprint := facts.Fingerprint(documents)

	started, err, _ := m.group.Do(profileID.String(), func() (any, error) {
		claimed, err := m.store.ClaimExtraction(ctx, profileID, fingerprint)
		if err != nil {
			return false, err
		}
		if !claimed {
			return false, nil
		}

		inventory, err := m.runExtraction(ctx, profileSummary, documents)
		if err != nil {
			if failErr := m.store.FailExtraction(ctx, profileID, err.Error()); failErr != nil {
				return true, failErr
			}
			return true, err
		}

		return true, m.store.CompleteExtraction(ctx, profileID, inventory)
	})

	return started.(bool), err
}

// Resolve returns the fact inventory for a generation request: the cached
// payload when it is ready and fingerprint-matched, otherwise a synchronous
// extraction. The cache row is not touched on the synchronous path.
func (m *Manager) Resolve(ctx context.Context, profileID uuid.UUID, profileSummary string, documents []types.SourceDocument) (*types.FactInventory, error) {
	entry, err := m.store.GetExtraction(ctx, profileID)
	if err == nil && entry != nil && entry.Status == StatusReady &&
		entry.Inventory != nil && entry.Fingerprint == facts.Fingerprint(documents) {
		return entry.Inventory, nil
	}

	return m.runExtraction(ctx, profileSummary, documents)
}

func (m *Manager) runExtraction(ctx context.Context, profileSummary string, documents []types.SourceDocument) (*types.FactInventory, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	return m.extract(ctx, profileSummary, documents)
}
