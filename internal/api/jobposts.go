package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/models"
)

var jobPostStatuses = map[string]bool{"draft": true, "published": true, "archived": true}

func (h *Handler) ListJobPosts(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	posts, err := h.db.ListJobPosts(r.Context(), claims.OrgID, r.URL.Query().Get("status"))
	if err != nil {
		log.Printf("Failed to list job posts: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list job posts")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *Handler) CreateJobPost(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Status      string  `json:"status"`
		Location    *string `json:"location"`
		Seniority   *string `json:"seniority"`
		Industry    *string `json:"industry"`
		WorkMode    *string `json:"work_mode"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if req.Title == "" || req.Description == "" {
		writeError(w, http.StatusBadRequest, "title and description are required")
		return
	}

	if req.Status == "" {
		req.Status = "draft"
	}
	if !jobPostStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	post := &models.JobPost{
		OrgID:       claims.OrgID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Location:    req.Location,
		Seniority:   req.Seniority,
		Industry:    req.Industry,
		WorkMode:    req.WorkMode,
	}

	if err := h.db.CreateJobPost(r.Context(), post); err != nil {
		log.Printf("Failed to create job post: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create job post")
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (h *Handler) UpdateJobPostStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !jobPostStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	if err := h.db.UpdateJobPostStatus(r.Context(), claims.OrgID, mux.Vars(r)["id"], req.Status); err != nil {
		writeStoreError(w, err, "Failed to update job post")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
