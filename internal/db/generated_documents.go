package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/daniel/career-assistant/internal/types"
)

// CreateGeneratedDocument inserts a placeholder row with status=generating
// and returns its ID. The content is filled in by CompleteGeneratedDocument.
func (db *DB) CreateGeneratedDocument(ctx context.Context, profileID uuid.UUID, kind types.GeneratedKind, template, jobTitle, companyName string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO generated_documents (profile_id, kind, template, job_title, company_name, status)
		 VALUES ($1, $2, $3, $4, $5, 'generating')
		 RETURNING id`,
		profileID, kind, template, jobTitle, companyName,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create generated document: %w", err)
	}
	return id, nil
}

// CompleteGeneratedDocument stores the validated content and marks the row ready
func (db *DB) CompleteGeneratedDocument(ctx context.Context, id uuid.UUID, content *types.DocumentContent) error {
	contentBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal document content: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE generated_documents
		 SET content = $1, status = 'ready', error = '', updated_at = NOW()
		 WHERE id = $2`,
		contentBytes, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete generated document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("generated document not found: %s", id)
	}
	return nil
}

// FailGeneratedDocument marks the row failed with the error message
func (db *DB) FailGeneratedDocument(ctx context.Context, id uuid.UUID, message string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE generated_documents
		 SET status = 'failed', error = $1, updated_at = NOW()
		 WHERE id = $2`,
		message, id,
	)
	if err != nil {
		return fmt.Errorf("failed to record generation failure: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("generated document not found: %s", id)
	}
	return nil
}

// OverwriteGeneratedDocument replaces a ready document's content in place.
// Used by the refinement loop; no version history is retained.
func (db *DB) OverwriteGeneratedDocument(ctx context.Context, id uuid.UUID, content *types.DocumentContent) error {
	contentBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal document content: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE generated_documents
		 SET content = $1, updated_at = NOW()
		 WHERE id = $2 AND status = 'ready'`,
		contentBytes, id,
	)
	if err != nil {
		return fmt.Errorf("failed to overwrite generated document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no ready generated document: %s", id)
	}
	return nil
}

// GetGeneratedDocument retrieves a generated document by ID, returning nil
// when not found
func (db *DB) GetGeneratedDocument(ctx context.Context, id uuid.UUID) (*GeneratedDocument, error) {
	var doc GeneratedDocument
	var contentBytes []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, profile_id, kind, template, job_title, company_name, content, status, error, created_at, updated_at
		 FROM generated_documents WHERE id = $1`,
		id,
	).Scan(&doc.ID, &doc.ProfileID, &doc.Kind, &doc.Template, &doc.JobTitle, &doc.CompanyName,
		&contentBytes, &doc.Status, &doc.Error, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get generated document: %w", err)
	}

	if len(contentBytes) > 0 {
		var content types.DocumentContent
		if err := json.Unmarshal(contentBytes, &content); err != nil {
			return nil, fmt.Errorf("failed to decode document content: %w", err)
		}
		doc.Content = &content
	}
	return &doc, nil
}

// ListGeneratedDocuments retrieves a profile's generated documents, newest first
func (db *DB) ListGeneratedDocuments(ctx context.Context, profileID uuid.UUID) ([]GeneratedDocument, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, profile_id, kind, template, job_title, company_name, status, error, created_at, updated_at
		 FROM generated_documents WHERE profile_id = $1 ORDER BY created_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list generated documents: %w", err)
	}
	defer rows.Close()

	var docs []GeneratedDocument
	for rows.Next() {
		var doc GeneratedDocument
		if err := rows.Scan(&doc.ID, &doc.ProfileID, &doc.Kind, &doc.Template, &doc.JobTitle,
			&doc.CompanyName, &doc.Status, &doc.Error, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generated document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
