package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/models"
)

func (db *DB) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `
        SELECT id, org_id, email, password_hash, full_name, created_at
        FROM profiles
        WHERE email = $1
    `

	var profile models.Profile
	err := db.Pool.QueryRow(ctx, query, email).Scan(
		&profile.ID,
		&profile.OrgID,
		&profile.Email,
		&profile.PasswordHash,
		&profile.FullName,
		&profile.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (db *DB) GetOrganization(ctx context.Context, orgID string) (*models.Organization, error) {
	query := `
        SELECT id, name, rate_limit_per_hour, created_at
        FROM organizations
        WHERE id = $1
    `

	var org models.Organization
	err := db.Pool.QueryRow(ctx, query, orgID).Scan(
		&org.ID,
		&org.Name,
		&org.RateLimitPerHour,
		&org.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &org, nil
}

// CountAILogsForUserSince reports how many generations a user has recorded
// since the given instant. Used for the per-user hourly quota.
func (db *DB) CountAILogsForUserSince(ctx context.Context, userID string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM ai_logs WHERE user_id = $1 AND created_at >= $2`

	var count int
	if err := db.Pool.QueryRow(ctx, query, userID, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountAILogsForOrgSince is the org-wide counterpart, the safety net that
// holds even when every individual user is under their personal quota.
func (db *DB) CountAILogsForOrgSince(ctx context.Context, orgID string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM ai_logs WHERE org_id = $1 AND created_at >= $2`

	var count int
	if err := db.Pool.QueryRow(ctx, query, orgID, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (db *DB) InsertAILog(ctx context.Context, log *models.AILog) error {
	query := `
        INSERT INTO ai_logs (id, org_id, user_id, type, input, output)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	if log.ID == "" {
		log.ID = uuid.NewString()
	}

	_, err := db.Pool.Exec(ctx, query,
		log.ID,
		log.OrgID,
		log.UserID,
		log.Type,
		log.Input,
		log.Output,
	)

	return err
}

func (db *DB) ListAILogs(ctx context.Context, orgID, kind string, limit int) ([]models.AILog, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	query := `
        SELECT id, org_id, user_id, type, input, output, created_at
        FROM ai_logs
        WHERE org_id = $1 AND ($2 = '' OR type = $2)
        ORDER BY created_at DESC
        LIMIT $3
    `

	rows, err := db.Pool.Query(ctx, query, orgID, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.AILog{}
	for rows.Next() {
		var l models.AILog
		if err := rows.Scan(&l.ID, &l.OrgID, &l.UserID, &l.Type, &l.Input, &l.Output, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
