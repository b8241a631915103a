package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/models"
)

func (h *Handler) ListAutomations(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	automations, err := h.db.ListAutomations(r.Context(), claims.OrgID)
	if err != nil {
		log.Printf("Failed to list automations: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list automations")
		return
	}

	writeJSON(w, http.StatusOK, automations)
}

func (h *Handler) CreateAutomation(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Name       string  `json:"name"`
		TemplateID *string `json:"template_id"`
		AIType     string  `json:"ai_type"`
		Trigger    *string `json:"trigger"`
		Prompt     string  `json:"prompt"`
		Active     *bool   `json:"active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if req.Name == "" || req.AIType == "" || req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "name, ai_type and prompt are required")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	automation := &models.Automation{
		OrgID:      claims.OrgID,
		UserID:     claims.UserID,
		Name:       req.Name,
		TemplateID: req.TemplateID,
		AIType:     req.AIType,
		Trigger:    req.Trigger,
		Prompt:     req.Prompt,
		Active:     active,
	}

	if err := h.db.CreateAutomation(r.Context(), automation); err != nil {
		log.Printf("Failed to create automation: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create automation")
		return
	}

	writeJSON(w, http.StatusCreated, automation)
}

func (h *Handler) SetAutomationActive(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Active *bool `json:"active"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
		writeError(w, http.StatusBadRequest, "active is required")
		return
	}

	if err := h.db.SetAutomationActive(r.Context(), claims.OrgID, mux.Vars(r)["id"], *req.Active); err != nil {
		writeStoreError(w, err, "Failed to update automation")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) DeleteAutomation(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteAutomation(r.Context(), claims.OrgID, mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err, "Failed to delete automation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListAutomationRuns(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	runs, err := h.db.ListAutomationRuns(r.Context(), claims.OrgID, mux.Vars(r)["id"])
	if err != nil {
		log.Printf("Failed to list automation runs: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list automation runs")
		return
	}

	writeJSON(w, http.StatusOK, runs)
}

// CreateAutomationRun records a client-side automation execution. The
// generated text itself comes back from the generation endpoint; this row
// ties it to the automation for the history view.
func (h *Handler) CreateAutomationRun(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		AutomationID *string `json:"automation_id"`
		AIType       string  `json:"ai_type"`
		Input        string  `json:"input"`
		Output       *string `json:"output"`
		Status       string  `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if req.AIType == "" || req.Input == "" {
		writeError(w, http.StatusBadRequest, "ai_type and input are required")
		return
	}

	if req.Status == "" {
		req.Status = "done"
	}

	run := &models.AutomationRun{
		OrgID:        claims.OrgID,
		UserID:       claims.UserID,
		AutomationID: req.AutomationID,
		AIType:       req.AIType,
		Input:        req.Input,
		Output:       req.Output,
		Status:       req.Status,
	}

	if err := h.db.CreateAutomationRun(r.Context(), run); err != nil {
		log.Printf("Failed to create automation run: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create automation run")
		return
	}

	writeJSON(w, http.StatusCreated, run)
}
