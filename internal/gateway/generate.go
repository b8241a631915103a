// Package gateway implements the AI generation endpoint: request
// validation, session resolution, hourly quota checks against the ai_logs
// history, the provider call, and the audit write.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/auth"
	"github.com/Jacques-glitch1996/talentpilot-ai/internal/llm"
	"github.com/Jacques-glitch1996/talentpilot-ai/internal/models"
)

const (
	// MaxInputChars caps the user prompt before anything else runs.
	MaxInputChars = 8000

	// MaxOutputTokens bounds the provider response.
	MaxOutputTokens = 800

	// RateWindow is the sliding window for both generation quotas.
	RateWindow = time.Hour

	// storeTimeout bounds each audit store call.
	storeTimeout = 10 * time.Second

	systemPrompt = "Tu es un assistant RH pour recruteurs au Canada/Québec. " +
		"Style: professionnel, clair, sans jargon inutile. " +
		"Ne fais pas de promesses irréalistes. Donne un résultat immédiatement exploitable."
)

// SessionAuthority exchanges a bearer credential for a caller identity.
type SessionAuthority interface {
	ResolveToken(token string) (*auth.Claims, error)
}

// AuditStore is the append-only generation history. It is both the
// compliance trail and the data source for the quota counts.
type AuditStore interface {
	CountAILogsForUserSince(ctx context.Context, userID string, since time.Time) (int, error)
	CountAILogsForOrgSince(ctx context.Context, orgID string, since time.Time) (int, error)
	InsertAILog(ctx context.Context, log *models.AILog) error
}

type Handler struct {
	sessions  SessionAuthority
	audit     AuditStore
	provider  llm.Client
	userLimit int
	orgLimit  int
}

// NewHandler wires the generation endpoint. provider may be nil when the
// upstream credential is not configured; requests then fail with 500
// instead of crashing the server at boot.
func NewHandler(sessions SessionAuthority, audit AuditStore, provider llm.Client, userLimit, orgLimit int) *Handler {
	return &Handler{
		sessions:  sessions,
		audit:     audit,
		provider:  provider,
		userLimit: userLimit,
		orgLimit:  orgLimit,
	}
}

type generateRequest struct {
	Type  string `json:"type"`
	Input string `json:"input"`
}

// HandleGenerate runs the request pipeline in a fixed order, stopping at
// the first failing stage. Only the audit write is allowed to fail without
// failing the request: the generated text is already paid for, so it is
// returned alongside a warning.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Type == "" || req.Input == "" {
		writeError(w, http.StatusBadRequest, "Missing type or input")
		return
	}

	if utf8.RuneCountInString(req.Input) > MaxInputChars {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Input exceeds %d characters", MaxInputChars))
		return
	}

	token := auth.BearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Missing access token")
		return
	}

	claims, err := h.sessions.ResolveToken(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	since := time.Now().Add(-RateWindow)

	countCtx, cancelCount := context.WithTimeout(r.Context(), storeTimeout)
	defer cancelCount()

	userCount, err := h.audit.CountAILogsForUserSince(countCtx, claims.UserID, since)
	if err != nil {
		log.Printf("AI quota count failed for user %s: %v", claims.UserID, err)
		writeError(w, http.StatusInternalServerError, "Quota check failed")
		return
	}
	if userCount >= h.userLimit {
		writeError(w, http.StatusTooManyRequests, "Hourly AI generation limit reached")
		return
	}

	orgCount, err := h.audit.CountAILogsForOrgSince(countCtx, claims.OrgID, since)
	if err != nil {
		log.Printf("AI quota count failed for org %s: %v", claims.OrgID, err)
		writeError(w, http.StatusInternalServerError, "Quota check failed")
		return
	}
	if orgCount >= h.orgLimit {
		writeError(w, http.StatusTooManyRequests, "Organization AI generation limit reached")
		return
	}

	if h.provider == nil {
		log.Println("AI generation requested but ANTHROPIC_API_KEY is not configured")
		writeError(w, http.StatusInternalServerError, "AI provider is not configured")
		return
	}

	// A client disconnect must not abort the provider call or the audit
	// write; the audit row matters even if nobody reads the response.
	ctx := context.WithoutCancel(r.Context())

	userMessage := fmt.Sprintf("TYPE: %s\n\nINPUT:\n%s", req.Type, req.Input)

	blocks, err := h.provider.Complete(ctx, systemPrompt, userMessage, MaxOutputTokens)
	if err != nil {
		log.Printf("Provider call failed for user %s: %v", claims.UserID, err)
		writeError(w, http.StatusBadGateway, "AI generation failed: "+err.Error())
		return
	}

	output := llm.JoinText(blocks)

	entry := &models.AILog{
		OrgID:  claims.OrgID,
		UserID: claims.UserID,
		Type:   req.Type,
		Input:  req.Input,
		Output: output,
	}

	insertCtx, cancelInsert := context.WithTimeout(ctx, storeTimeout)
	defer cancelInsert()

	if err := h.audit.InsertAILog(insertCtx, entry); err != nil {
		log.Printf("Audit write failed for user %s: %v", claims.UserID, err)
		writeJSON(w, http.StatusOK, map[string]string{
			"output":  output,
			"warning": "Generation succeeded but audit log failed: " + err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"output": output})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
