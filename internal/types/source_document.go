package types

import (
	"time"

	"github.com/google/uuid"
)

// DocumentKind categorizes an uploaded source document
type DocumentKind string

// Document kinds. Only CV and experience documents participate in fact
// extraction and fingerprinting.
const (
	DocumentCV         DocumentKind = "cv"
	DocumentExperience DocumentKind = "experience"
	DocumentOther      DocumentKind = "other"
)

// SourceDocument is a free-text document owned by a profile. Immutable once
// created except for deletion.
type SourceDocument struct {
	ID        uuid.UUID    `json:"id"`
	ProfileID uuid.UUID    `json:"profile_id"`
	Name      string       `json:"name"`
	Kind      DocumentKind `json:"kind"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

// Relevant reports whether the document participates in fact extraction
func (d *SourceDocument) Relevant() bool {
	return d.Kind == DocumentCV || d.Kind == DocumentExperience
}
