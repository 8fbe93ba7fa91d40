package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/daniel/career-assistant/internal/db"
	"github.com/daniel/career-assistant/internal/generation"
	"github.com/daniel/career-assistant/internal/jobpost"
	"github.com/daniel/career-assistant/internal/types"
)

// GenerateRequest is the payload for generating a document
type GenerateRequest struct {
	JobTitle       string `json:"job_title" validate:"required"`
	CompanyName    string `json:"company_name" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
	CompanyURL     string `json:"company_url" validate:"omitempty,url"`
	Kind           string `json:"kind" validate:"omitempty,oneof=cv briefing"`
	Template       string `json:"template" validate:"omitempty,oneof=classic hybrid executive"`
}

// RefineRequest is the payload for refining a generated document
type RefineRequest struct {
	Request string              `json:"request" validate:"required"`
	History []types.ChatMessage `json:"history" validate:"omitempty,dive"`
}

// handleGenerate starts document generation and returns the placeholder
// document immediately; clients poll the generated-document endpoint for the
// outcome.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	profileID, ok := s.pathUUID(w, r, "id", "Invalid profile ID")
	if !ok {
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
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

	documents, err := s.db.ListDocuments(r.Context(), profileID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	templateName := req.Template
	if templateName == "" {
		templateName = s.defaultTmpl
	}
	kind := types.GeneratedKind(req.Kind)
	if kind == "" {
		kind = types.GeneratedCV
	}

	genReq := generation.Request{
		ProfileID:      profileID,
		ProfileSummary: profile.Summary,
		Documents:      documents,
		Job: types.JobSpec{
			JobTitle:       req.JobTitle,
			CompanyName:    req.CompanyName,
			JobDescription: req.JobDescription,
			CompanyURL:     req.CompanyURL,
		},
		Kind:     kind,
		Template: types.TemplateByName(templateName),
	}

	docID, err := s.db.CreateGeneratedDocument(r.Context(), profileID, genReq.Kind,
		genReq.Template.Name, genReq.Job.JobTitle, genReq.Job.CompanyName)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	go func() {
		if _, err := s.generator.GenerateInto(context.Background(), docID, genReq); err != nil {
			log.Printf("generation for document %s failed: %v", docID, err)
		}
	}()

	s.jsonResponse(w, http.StatusAccepted, map[string]string{
		"id":     docID.String(),
		"status": db.DocStatusGenerating,
	})
}

func (s *Server) handleGetGeneratedDocument(w http.ResponseWriter, r *http.Request) {
	docID, ok := s.pathUUID(w, r, "id", "Invalid document ID")
	if !ok {
		return
	}

	doc, err := s.db.GetGeneratedDocument(r.Context(), docID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if doc == nil {
		s.errorResponse(w, http.StatusNotFound, "Generated document not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleListGeneratedDocuments(w http.ResponseWriter, r *http.Request) {
	profileID, ok := s.pathUUID(w, r, "id", "Invalid profile ID")
	if !ok {
		return
	}

	docs, err := s.db.ListGeneratedDocuments(r.Context(), profileID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"documents": docs,
		"count":     len(docs),
	})
}

// handleRefine applies one refinement round to a ready generated document.
// Refinement is synchronous: the refined document comes back in the
// response, and a failed round leaves the stored document untouched.
func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	docID, ok := s.pathUUID(w, r, "id", "Invalid document ID")
	if !ok {
		return
	}

	var req RefineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	doc, err := s.db.GetGeneratedDocument(r.Context(), docID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if doc == nil {
		s.errorResponse(w, http.StatusNotFound, "Generated document not found")
		return
	}
	if doc.Status != db.DocStatusReady || doc.Content == nil {
		s.errorResponse(w, http.StatusConflict, "Document is not ready for refinement")
		return
	}

	refined, err := s.generator.Refine(r.Context(), docID, doc.Content, req.Request, req.History)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, refined)
}

// IngestJobRequest is the payload for parsing a job posting URL
type IngestJobRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// handleIngestJob fetches a posting URL and extracts the structured job spec
func (s *Server) handleIngestJob(w http.ResponseWriter, r *http.Request) {
	var req IngestJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	spec, err := jobpost.Ingest(r.Context(), s.llmClient, req.URL, jobpost.IngestOptions{
		UseBrowser: s.useBrowser,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, spec)
}
