package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/daniel/career-assistant/internal/types"
)

// Profile represents a candidate profile
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Generated document statuses. The row is created as generating and moves
// to ready or failed when the external call resolves.
const (
	DocStatusGenerating = "generating"
	DocStatusReady      = "ready"
	DocStatusFailed     = "failed"
)

// GeneratedDocument is a persisted CV or briefing pack. The refinement loop
// overwrites Content in place; no version history is retained.
type GeneratedDocument struct {
	ID          uuid.UUID              `json:"id"`
	ProfileID   uuid.UUID              `json:"profile_id"`
	Kind        types.GeneratedKind    `json:"kind"`
	Template    string                 `json:"template"`
	JobTitle    string                 `json:"job_title"`
	CompanyName string                 `json:"company_name"`
	Content     *types.DocumentContent `json:"content,omitempty"`
	Status      string                 `json:"status"`
	Error       string                 `json:"error,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
