package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/models"
)

var candidateStatuses = map[string]bool{
	"new": true, "screening": true, "interview": true,
	"offer": true, "hired": true, "rejected": true,
}

func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	candidates, err := h.db.ListCandidates(r.Context(), claims.OrgID, q.Get("status"), q.Get("source"), q.Get("q"))
	if err != nil {
		log.Printf("Failed to list candidates: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list candidates")
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}

func (h *Handler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	candidate, err := h.db.GetCandidate(r.Context(), claims.OrgID, mux.Vars(r)["id"])
	if err != nil {
		if err == pgx.ErrNoRows {
			writeError(w, http.StatusNotFound, "Candidate not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get candidate")
		return
	}

	writeJSON(w, http.StatusOK, candidate)
}

func (h *Handler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		FirstName string  `json:"first_name"`
		LastName  string  `json:"last_name"`
		Email     *string `json:"email"`
		Phone     *string `json:"phone"`
		Status    string  `json:"status"`
		Source    string  `json:"source"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if req.FirstName == "" || req.LastName == "" {
		writeError(w, http.StatusBadRequest, "first_name and last_name are required")
		return
	}

	if req.Status == "" {
		req.Status = "new"
	}
	if !candidateStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	if req.Source == "" {
		req.Source = "Other"
	}

	candidate := &models.Candidate{
		OrgID:     claims.OrgID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Status:    req.Status,
		Source:    req.Source,
	}

	if err := h.db.CreateCandidate(r.Context(), candidate); err != nil {
		log.Printf("Failed to create candidate: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	writeJSON(w, http.StatusCreated, candidate)
}

func (h *Handler) UpdateCandidateStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !candidateStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	if err := h.db.UpdateCandidateStatus(r.Context(), claims.OrgID, mux.Vars(r)["id"], req.Status); err != nil {
		writeStoreError(w, err, "Failed to update candidate")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteCandidate(r.Context(), claims.OrgID, mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err, "Failed to delete candidate")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
