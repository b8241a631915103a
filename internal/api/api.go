// Package api exposes the recruiting CRUD surface: candidates, job posts,
// messages, interviews, document references, automations, AI history and
// dashboard stats. Routes are mounted behind the auth and org rate-limit
// middleware; every query is scoped to the caller's organization.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/auth"
	"github.com/Jacques-glitch1996/talentpilot-ai/internal/db"
)

type Handler struct {
	db *db.DB
}

func NewHandler(database *db.DB) *Handler {
	return &Handler{db: database}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/candidates", h.ListCandidates).Methods("GET")
	router.HandleFunc("/candidates", h.CreateCandidate).Methods("POST")
	router.HandleFunc("/candidates/{id}", h.GetCandidate).Methods("GET")
	router.HandleFunc("/candidates/{id}", h.UpdateCandidateStatus).Methods("PATCH")
	router.HandleFunc("/candidates/{id}", h.DeleteCandidate).Methods("DELETE")

	router.HandleFunc("/job-posts", h.ListJobPosts).Methods("GET")
	router.HandleFunc("/job-posts", h.CreateJobPost).Methods("POST")
	router.HandleFunc("/job-posts/{id}", h.UpdateJobPostStatus).Methods("PATCH")

	router.HandleFunc("/messages", h.ListMessages).Methods("GET")
	router.HandleFunc("/messages", h.CreateMessage).Methods("POST")

	router.HandleFunc("/interviews", h.ListInterviews).Methods("GET")
	router.HandleFunc("/interviews", h.CreateInterview).Methods("POST")

	router.HandleFunc("/documents", h.ListDocuments).Methods("GET")
	router.HandleFunc("/documents", h.CreateDocument).Methods("POST")
	router.HandleFunc("/documents/{id}", h.DeleteDocument).Methods("DELETE")

	router.HandleFunc("/automations", h.ListAutomations).Methods("GET")
	router.HandleFunc("/automations", h.CreateAutomation).Methods("POST")
	router.HandleFunc("/automations/{id}", h.SetAutomationActive).Methods("PATCH")
	router.HandleFunc("/automations/{id}", h.DeleteAutomation).Methods("DELETE")
	router.HandleFunc("/automations/{id}/runs", h.ListAutomationRuns).Methods("GET")
	router.HandleFunc("/automation-runs", h.CreateAutomationRun).Methods("POST")

	router.HandleFunc("/ai/logs", h.ListAILogs).Methods("GET")
	router.HandleFunc("/dashboard", h.GetDashboardStats).Methods("GET")
}

// caller pulls the authenticated identity set by auth.Middleware. A miss
// means the route was mounted outside the middleware chain.
func caller(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return claims, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps store failures onto 404 or 500.
func writeStoreError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeError(w, http.StatusInternalServerError, msg)
}
