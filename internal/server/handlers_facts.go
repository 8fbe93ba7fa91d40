package server

import (
	"context"
	"log"
	"net/http"

	"github.com/daniel/career-assistant/internal/factcache"
)

// FactStatusResponse reports the cache state for a profile's fact inventory
type FactStatusResponse struct {
	Status    factcache.Status `json:"status"`
	Inventory any              `json:"inventory,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// handleTriggerFacts requests a background fact extraction for a profile.
// The trigger is idempotent: a generation already in flight, or a ready
// inventory whose fingerprint matches the current documents, makes it a
// no-op.
func (s *Server) handleTriggerFacts(w http.ResponseWriter, r *http.Request) {
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

	documents, err := s.db.ListDocuments(r.Context(), profileID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// Run the extraction in the background; its outcome lands on the cache
	// row. The claim itself decides whether this trigger is a no-op.
	go func() {
		started, err := s.factCache.Trigger(context.Background(), profileID, profile.Summary, documents)
		if err != nil {
			log.Printf("fact extraction trigger for profile %s failed: %v", profileID, err)
			return
		}
		if !started {
			log.Printf("fact extraction trigger for profile %s was a no-op", profileID)
		}
	}()

	s.jsonResponse(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// handleGetFacts reports the fact-cache status for a profile, including the
// inventory when one is ready. A ready inventory whose fingerprint no longer
// matches the profile's documents reports as outdated.
func (s *Server) handleGetFacts(w http.ResponseWriter, r *http.Request) {
	profileID, ok := s.pathUUID(w, r, "id", "Invalid profile ID")
	if !ok {
		return
	}

	documents, err := s.db.ListDocuments(r.Context(), profileID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	status, entry, err := s.factCache.GetStatus(r.Context(), profileID, documents)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Cache error: "+err.Error())
		return
	}

	resp := FactStatusResponse{Status: status}
	if entry != nil {
		if entry.Inventory != nil {
			resp.Inventory = entry.Inventory
		}
		resp.Error = entry.Error
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
