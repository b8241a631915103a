package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/models"
)

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	docs, err := h.db.ListDocuments(r.Context(), claims.OrgID, r.URL.Query().Get("candidate_id"))
	if err != nil {
		log.Printf("Failed to list documents: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	writeJSON(w, http.StatusOK, docs)
}

// CreateDocument records a file reference. Upload itself happens against
// the storage service; only the resulting URL and type land here.
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		CandidateID string `json:"candidate_id"`
		FileURL     string `json:"file_url"`
		FileType    string `json:"file_type"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if req.CandidateID == "" || req.FileURL == "" || req.FileType == "" {
		writeError(w, http.StatusBadRequest, "candidate_id, file_url and file_type are required")
		return
	}

	doc := &models.Document{
		OrgID:       claims.OrgID,
		CandidateID: req.CandidateID,
		FileURL:     req.FileURL,
		FileType:    req.FileType,
	}

	if err := h.db.CreateDocument(r.Context(), doc); err != nil {
		log.Printf("Failed to create document: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create document")
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteDocument(r.Context(), claims.OrgID, mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err, "Failed to delete document")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
