package api

import (
	"log"
	"net/http"
)

func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := caller(w, r)
	if !ok {
		return
	}

	stats, err := h.db.GetDashboardStats(r.Context(), claims.OrgID)
	if err != nil {
		log.Printf("Failed to get dashboard stats: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to get dashboard stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
