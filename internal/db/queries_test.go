package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/models"
)

func newMockDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &DB{Pool: mock}, mock
}

func TestCountAILogsForUserSince(t *testing.T) {
	database, mock := newMockDB(t)
	since := time.Now().Add(-time.Hour)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ai_logs WHERE user_id`).
		WithArgs("user-1", since).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))

	count, err := database.CountAILogsForUserSince(context.Background(), "user-1", since)
	require.NoError(t, err)
	require.Equal(t, 42, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAILogsForOrgSince(t *testing.T) {
	database, mock := newMockDB(t)
	since := time.Now().Add(-time.Hour)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ai_logs WHERE org_id`).
		WithArgs("org-1", since).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := database.CountAILogsForOrgSince(context.Background(), "org-1", since)
	require.NoError(t, err)
	require.Equal(t, 7, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountAILogsPropagatesQueryError(t *testing.T) {
	database, mock := newMockDB(t)
	since := time.Now().Add(-time.Hour)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ai_logs WHERE user_id`).
		WithArgs("user-1", since).
		WillReturnError(errors.New("connection reset"))

	_, err := database.CountAILogsForUserSince(context.Background(), "user-1", since)
	require.Error(t, err)
}

func TestInsertAILogGeneratesID(t *testing.T) {
	database, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO ai_logs`).
		WithArgs(pgxmock.AnyArg(), "org-1", "user-1", "outreach", "hello", "salut").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	entry := &models.AILog{
		OrgID:  "org-1",
		UserID: "user-1",
		Type:   "outreach",
		Input:  "hello",
		Output: "salut",
	}

	require.NoError(t, database.InsertAILog(context.Background(), entry))
	require.NotEmpty(t, entry.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAILogsFiltersByKind(t *testing.T) {
	database, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, org_id, user_id, type, input, output, created_at\s+FROM ai_logs`).
		WithArgs("org-1", "outreach", 50).
		WillReturnRows(pgxmock.NewRows([]string{"id", "org_id", "user_id", "type", "input", "output", "created_at"}).
			AddRow("log-1", "org-1", "user-1", "outreach", "in", "out", now))

	logs, err := database.ListAILogs(context.Background(), "org-1", "outreach", 50)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, "outreach", logs[0].Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCandidate(t *testing.T) {
	database, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO candidates`).
		WithArgs(pgxmock.AnyArg(), "org-1", "Marie", "Tremblay", pgxmock.AnyArg(), pgxmock.AnyArg(), "new", "LinkedIn").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	candidate := &models.Candidate{
		OrgID:     "org-1",
		FirstName: "Marie",
		LastName:  "Tremblay",
		Status:    "new",
		Source:    "LinkedIn",
	}

	require.NoError(t, database.CreateCandidate(context.Background(), candidate))
	require.NotEmpty(t, candidate.ID)
	require.Equal(t, now, candidate.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCandidateStatusNotFound(t *testing.T) {
	database, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE candidates SET status`).
		WithArgs("org-1", "missing-id", "hired").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := database.UpdateCandidateStatus(context.Background(), "org-1", "missing-id", "hired")
	require.ErrorIs(t, err, ErrNotFound)
}
