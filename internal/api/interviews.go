package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/models"
)

func (h *Handler) ListInterviews(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	interviews, err := h.db.ListInterviews(r.Context(), claims.OrgID)
	if err != nil {
		log.Printf("Failed to list interviews: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list interviews")
		return
	}

	writeJSON(w, http.StatusOK, interviews)
}

func (h *Handler) CreateInterview(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		CandidateID   string  `json:"candidate_id"`
		JobPostID     string  `json:"job_post_id"`
		InterviewDate string  `json:"interview_date"`
		Notes         *string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if req.CandidateID == "" || req.JobPostID == "" {
		writeError(w, http.StatusBadRequest, "candidate_id and job_post_id are required")
		return
	}

	var interviewDate *time.Time
	if req.InterviewDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.InterviewDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "interview_date must be RFC3339")
			return
		}
		interviewDate = &parsed
	}

	interview := &models.Interview{
		OrgID:         claims.OrgID,
		CandidateID:   req.CandidateID,
		JobPostID:     req.JobPostID,
		InterviewDate: interviewDate,
		Notes:         req.Notes,
	}

	if err := h.db.CreateInterview(r.Context(), interview); err != nil {
		log.Printf("Failed to create interview: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create interview")
		return
	}

	writeJSON(w, http.StatusCreated, interview)
}
