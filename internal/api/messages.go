package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/models"
)

var messageChannels = map[string]bool{"email": true, "linkedin": true, "phone": true, "other": true}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	messages, err := h.db.ListMessages(r.Context(), claims.OrgID)
	if err != nil {
		log.Printf("Failed to list messages: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list messages")
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
		Channel string `json:"channel"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if !messageChannels[req.Channel] {
		writeError(w, http.StatusBadRequest, "Invalid channel")
		return
	}

	message := &models.Message{
		OrgID:   claims.OrgID,
		Content: req.Content,
		Channel: req.Channel,
	}

	if err := h.db.CreateMessage(r.Context(), message); err != nil {
		log.Printf("Failed to create message: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create message")
		return
	}

	writeJSON(w, http.StatusCreated, message)
}
