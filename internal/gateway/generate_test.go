package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/auth"
	"github.com/Jacques-glitch1996/talentpilot-ai/internal/llm"
	"github.com/Jacques-glitch1996/talentpilot-ai/internal/models"
)

type stubSessions struct {
	claims *auth.Claims
	err    error
	calls  int
}

func (s *stubSessions) ResolveToken(token string) (*auth.Claims, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

type stubAudit struct {
	userCount int
	orgCount  int
	userErr   error
	orgErr    error
	insertErr error

	userCalls int
	orgCalls  int
	inserted  []models.AILog
}

func (s *stubAudit) CountAILogsForUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	s.userCalls++
	return s.userCount, s.userErr
}

func (s *stubAudit) CountAILogsForOrgSince(ctx context.Context, orgID string, since time.Time) (int, error) {
	s.orgCalls++
	return s.orgCount, s.orgErr
}

func (s *stubAudit) InsertAILog(ctx context.Context, log *models.AILog) error {
	s.inserted = append(s.inserted, *log)
	return s.insertErr
}

type stubProvider struct {
	blocks []llm.ContentBlock
	err    error

	calls     int
	gotSystem string
	gotUser   string
	gotMax    int
}

func (s *stubProvider) Complete(ctx context.Context, system, user string, maxTokens int) ([]llm.ContentBlock, error) {
	s.calls++
	s.gotSystem = system
	s.gotUser = user
	s.gotMax = maxTokens
	if s.err != nil {
		return nil, s.err
	}
	return s.blocks, nil
}

func validClaims() *auth.Claims {
	return &auth.Claims{UserID: "user-1", OrgID: "org-1", Email: "jacques@example.com"}
}

func newTestHandler(sessions *stubSessions, audit *stubAudit, provider llm.Client) *Handler {
	return NewHandler(sessions, audit, provider, 100, 500)
}

func doGenerate(h *Handler, body string, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/ai/generate", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGenerateRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing type", `{"input":"hello"}`},
		{"missing input", `{"type":"outreach"}`},
		{"both empty", `{}`},
		{"invalid json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &stubSessions{claims: validClaims()}
			audit := &stubAudit{}
			provider := &stubProvider{}
			h := newTestHandler(sessions, audit, provider)

			rec := doGenerate(h, tt.body, "token")

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Zero(t, provider.calls)
			require.Empty(t, audit.inserted)
			require.Contains(t, decodeBody(t, rec), "error")
		})
	}
}

func TestGenerateRejectsOversizedInput(t *testing.T) {
	sessions := &stubSessions{claims: validClaims()}
	audit := &stubAudit{}
	provider := &stubProvider{}
	h := newTestHandler(sessions, audit, provider)

	big := strings.Repeat("x", MaxInputChars+1)
	body, _ := json.Marshal(map[string]string{"type": "outreach", "input": big})

	rec := doGenerate(h, string(body), "token")

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Zero(t, provider.calls)
	require.Empty(t, audit.inserted)
}

func TestGenerateAcceptsInputAtCap(t *testing.T) {
	sessions := &stubSessions{claims: validClaims()}
	audit := &stubAudit{}
	provider := &stubProvider{blocks: []llm.ContentBlock{{Type: "text", Text: "ok"}}}
	h := newTestHandler(sessions, audit, provider)

	exact := strings.Repeat("x", MaxInputChars)
	body, _ := json.Marshal(map[string]string{"type": "outreach", "input": exact})

	rec := doGenerate(h, string(body), "token")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, provider.calls)
}

func TestGenerateRejectsMissingToken(t *testing.T) {
	sessions := &stubSessions{claims: validClaims()}
	audit := &stubAudit{}
	provider := &stubProvider{}
	h := newTestHandler(sessions, audit, provider)

	rec := doGenerate(h, `{"type":"outreach","input":"hello"}`, "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Zero(t, sessions.calls)
	require.Zero(t, audit.userCalls)
	require.Zero(t, provider.calls)
}

func TestGenerateRejectsInvalidToken(t *testing.T) {
	sessions := &stubSessions{err: errors.New("token expired")}
	audit := &stubAudit{}
	provider := &stubProvider{}
	h := newTestHandler(sessions, audit, provider)

	rec := doGenerate(h, `{"type":"outreach","input":"hello"}`, "bad-token")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Zero(t, audit.userCalls)
	require.Zero(t, provider.calls)
}

func TestGenerateEnforcesUserQuota(t *testing.T) {
	sessions := &stubSessions{claims: validClaims()}
	audit := &stubAudit{userCount: 100}
	provider := &stubProvider{}
	h := newTestHandler(sessions, audit, provider)

	rec := doGenerate(h, `{"type":"outreach","input":"hello"}`, "token")

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Zero(t, provider.calls)
	require.Empty(t, audit.inserted)
}

func TestGenerateEnforcesOrgQuota(t *testing.T) {
	// Caller is well under their personal quota; the org safety net still
	// applies.
	sessions := &stubSessions{claims: validClaims()}
	audit := &stubAudit{userCount: 3, orgCount: 500}
	provider := &stubProvider{}
	h := newTestHandler(sessions, audit, provider)

	rec := doGenerate(h, `{"type":"outreach","input":"hello"}`, "token")

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Zero(t, provider.calls)
}

func TestGenerateFailsClosedOnQuotaQueryError(t *testing.T) {
	tests := []struct {
		name  string
		audit *stubAudit
	}{
		{"user count fails", &stubAudit{userErr: errors.New("connection reset")}},
		{"org count fails", &stubAudit{orgErr: errors.New("connection reset")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &stubSessions{claims: validClaims()}
			provider := &stubProvider{}
			h := newTestHandler(sessions, tt.audit, provider)

			rec := doGenerate(h, `{"type":"outreach","input":"hello"}`, "token")

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			require.Zero(t, provider.calls)
		})
	}
}

func TestGenerateFailsWhenProviderNotConfigured(t *testing.T) {
	sessions := &stubSessions{claims: validClaims()}
	audit := &stubAudit{}
	h := newTestHandler(sessions, audit, nil)

	rec := doGenerate(h, `{"type":"outreach","input":"hello"}`, "token")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Empty(t, audit.inserted)
}

func TestGeneratePropagatesProviderFailure(t *testing.T) {
	sessions := &stubSessions{claims: validClaims()}
	audit := &stubAudit{}
	provider := &stubProvider{err: errors.New("overloaded")}
	h := newTestHandler(sessions, audit, provider)

	rec := doGenerate(h, `{"type":"outreach","input":"hello"}`, "token")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, 1, provider.calls)
	require.Empty(t, audit.inserted)
}

func TestGenerateSuccess(t *testing.T) {
	sessions := &stubSessions{claims: validClaims()}
	audit := &stubAudit{}
	provider := &stubProvider{blocks: []llm.ContentBlock{
		{Type: "text", Text: "Titre: Ingénieur backend"},
		{Type: "tool_use"},
		{Type: "text", Text: "Responsabilités: concevoir des API"},
	}}
	h := newTestHandler(sessions, audit, provider)

	rec := doGenerate(h, `{"type":"job_description","input":"Backend engineer, Montréal, hybrid"}`, "token")

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	want := "Titre: Ingénieur backend\n\nResponsabilités: concevoir des API"
	require.Equal(t, map[string]string{"output": want}, body)

	require.Equal(t, 1, provider.calls)
	require.Equal(t, "TYPE: job_description\n\nINPUT:\nBackend engineer, Montréal, hybrid", provider.gotUser)
	require.Equal(t, MaxOutputTokens, provider.gotMax)
	require.Contains(t, provider.gotSystem, "assistant RH")

	require.Len(t, audit.inserted, 1)
	entry := audit.inserted[0]
	require.Equal(t, "job_description", entry.Type)
	require.Equal(t, "Backend engineer, Montréal, hybrid", entry.Input)
	require.Equal(t, want, entry.Output)
	require.Equal(t, "user-1", entry.UserID)
	require.Equal(t, "org-1", entry.OrgID)
}

func TestGenerateKeepsOutputWhenAuditWriteFails(t *testing.T) {
	sessions := &stubSessions{claims: validClaims()}
	audit := &stubAudit{insertErr: errors.New("disk full")}
	provider := &stubProvider{blocks: []llm.ContentBlock{{Type: "text", Text: "result"}}}
	h := newTestHandler(sessions, audit, provider)

	rec := doGenerate(h, `{"type":"outreach","input":"hello"}`, "token")

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "result", body["output"])
	require.Contains(t, body["warning"], "disk full")
	require.NotContains(t, body, "error")
}

func TestGenerateNoDeduplication(t *testing.T) {
	sessions := &stubSessions{claims: validClaims()}
	audit := &stubAudit{}
	provider := &stubProvider{blocks: []llm.ContentBlock{{Type: "text", Text: "out"}}}
	h := newTestHandler(sessions, audit, provider)

	body := `{"type":"outreach","input":"hello"}`
	rec1 := doGenerate(h, body, "token")
	rec2 := doGenerate(h, body, "token")

	require.Equal(t, http.StatusOK, rec1.Code)
	require.Equal(t, http.StatusOK, rec2.Code)
	require.Equal(t, 2, provider.calls)
	require.Len(t, audit.inserted, 2)
}

func TestGenerateEmptyOutputWhenNoTextBlocks(t *testing.T) {
	sessions := &stubSessions{claims: validClaims()}
	audit := &stubAudit{}
	provider := &stubProvider{blocks: []llm.ContentBlock{{Type: "tool_use"}}}
	h := newTestHandler(sessions, audit, provider)

	rec := doGenerate(h, `{"type":"outreach","input":"hello"}`, "token")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "", decodeBody(t, rec)["output"])
	require.Len(t, audit.inserted, 1)
	require.Equal(t, "", audit.inserted[0].Output)
}
