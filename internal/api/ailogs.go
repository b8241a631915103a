package api

import (
	"log"
	"net/http"
	"strconv"
)

// ListAILogs serves the AI history view: recent generations for the
// caller's org, optionally filtered by type.
func (h *Handler) ListAILogs(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	logs, err := h.db.ListAILogs(r.Context(), claims.OrgID, q.Get("type"), limit)
	if err != nil {
		log.Printf("Failed to list AI logs: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list AI logs")
		return
	}

	writeJSON(w, http.StatusOK, logs)
}
