package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/daniel/career-assistant/internal/types"
)

// CreateDocument inserts a source document. Documents are immutable once
// created except for deletion.
func (db *DB) CreateDocument(ctx context.Context, profileID uuid.UUID, name string, kind types.DocumentKind, content string) (*types.SourceDocument, error) {
	var doc types.SourceDocument
	err := db.pool.QueryRow(ctx,
		`INSERT INTO documents (profile_id, name, kind, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, profile_id, name, kind, content, created_at`,
		profileID, name, kind, content,
	).Scan(&doc.ID, &doc.ProfileID, &doc.Name, &doc.Kind, &doc.Content, &doc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return &doc, nil
}

// GetDocument retrieves a document by ID, returning nil when not found
func (db *DB) GetDocument(ctx context.Context, id uuid.UUID) (*types.SourceDocument, error) {
	var doc types.SourceDocument
	err := db.pool.QueryRow(ctx,
		`SELECT id, profile_id, name, kind, content, created_at
		 FROM documents WHERE id = $1`,
		id,
	).Scan(&doc.ID, &doc.ProfileID, &doc.Name, &doc.Kind, &doc.Content, &doc.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// ListDocuments retrieves all of a profile's source documents
func (db *DB) ListDocuments(ctx context.Context, profileID uuid.UUID) ([]types.SourceDocument, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, profile_id, name, kind, content, created_at
		 FROM documents WHERE profile_id = $1 ORDER BY created_at ASC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []types.SourceDocument
	for rows.Next() {
		var doc types.SourceDocument
		if err := rows.Scan(&doc.ID, &doc.ProfileID, &doc.Name, &doc.Kind, &doc.Content, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// DeleteDocument deletes a source document
func (db *DB) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}
