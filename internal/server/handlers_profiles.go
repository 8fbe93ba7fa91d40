package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/daniel/career-assistant/internal/types"
)

// CreateProfileRequest is the payload for creating a profile
type CreateProfileRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Summary string `json:"summary" validate:"max=10000"`
}

// UpdateSummaryRequest is the payload for replacing a profile summary
type UpdateSummaryRequest struct {
	Summary string `json:"summary" validate:"required,max=10000"`
}

// CreateDocumentRequest is the payload for uploading a source document
type CreateDocumentRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Kind    string `json:"kind" validate:"required,oneof=cv experience other"`
	Content string `json:"content" validate:"required"`
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	profile, err := s.db.CreateProfile(r.Context(), req.Name, req.Email, req.Summary)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, profile)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profileID, ok := s.pathUUID(w, r, "id", "Invalid profile ID")
	if !ok {
		return
	}

	profile, err := s.db.GetProfile(r.Context(), profileID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfileSummary(w http.ResponseWriter, r *http.Request) {
	profileID, ok := s.pathUUID(w, r, "id", "Invalid profile ID")
	if !ok {
		return
	}

	var req UpdateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.db.UpdateProfileSummary(r.Context(), profileID, req.Summary); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	profileID, ok := s.pathUUID(w, r, "id", "Invalid profile ID")
	if !ok {
		return
	}

	if err := s.db.DeleteProfile(r.Context(), profileID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	profileID, ok := s.pathUUID(w, r, "id", "Invalid profile ID")
	if !ok {
		return
	}

	var req CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	doc, err := s.db.CreateDocument(r.Context(), profileID, req.Name, types.DocumentKind(req.Kind), req.Content)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	profileID, ok := s.pathUUID(w, r, "id", "Invalid profile ID")
	if !ok {
		return
	}

	docs, err := s.db.ListDocuments(r.Context(), profileID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"documents": docs,
		"count":     len(docs),
	})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	docID, ok := s.pathUUID(w, r, "id", "Invalid document ID")
	if !ok {
		return
	}

	doc, err := s.db.GetDocument(r.Context(), docID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if doc == nil {
		s.errorResponse(w, http.StatusNotFound, "Document not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID, ok := s.pathUUID(w, r, "id", "Invalid document ID")
	if !ok {
		return
	}

	if err := s.db.DeleteDocument(r.Context(), docID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathUUID parses a UUID path value, writing a 400 response when invalid
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, key, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(key))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, message)
		return uuid.Nil, false
	}
	return id, true
}
