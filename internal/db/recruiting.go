package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/models"
)

func (db *DB) ListCandidates(ctx context.Context, orgID, status, source, search string) ([]models.Candidate, error) {
	query := `
        SELECT id, org_id, first_name, last_name, email, phone, status, source, created_at
        FROM candidates
        WHERE org_id = $1
          AND ($2 = '' OR status = $2)
          AND ($3 = '' OR source = $3)
          AND ($4 = '' OR first_name ILIKE '%' || $4 || '%' OR last_name ILIKE '%' || $4 || '%' OR email ILIKE '%' || $4 || '%')
        ORDER BY created_at DESC
    `

	rows, err := db.Pool.Query(ctx, query, orgID, status, source, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.OrgID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Status, &c.Source, &c.CreatedAt); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (db *DB) GetCandidate(ctx context.Context, orgID, id string) (*models.Candidate, error) {
	query := `
        SELECT id, org_id, first_name, last_name, email, phone, status, source, created_at
        FROM candidates
        WHERE org_id = $1 AND id = $2
    `

	var c models.Candidate
	err := db.Pool.QueryRow(ctx, query, orgID, id).Scan(
		&c.ID, &c.OrgID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Status, &c.Source, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (db *DB) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	query := `
        INSERT INTO candidates (id, org_id, first_name, last_name, email, phone, status, source)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at
    `

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	return db.Pool.QueryRow(ctx, query,
		c.ID, c.OrgID, c.FirstName, c.LastName, c.Email, c.Phone, c.Status, c.Source,
	).Scan(&c.CreatedAt)
}

func (db *DB) UpdateCandidateStatus(ctx context.Context, orgID, id, status string) error {
	query := `UPDATE candidates SET status = $3 WHERE org_id = $1 AND id = $2`

	tag, err := db.Pool.Exec(ctx, query, orgID, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteCandidate(ctx context.Context, orgID, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM candidates WHERE org_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) ListJobPosts(ctx context.Context, orgID, status string) ([]models.JobPost, error) {
	query := `
        SELECT id, org_id, title, description, status, location, seniority, industry, work_mode, created_at
        FROM job_posts
        WHERE org_id = $1 AND ($2 = '' OR status = $2)
        ORDER BY created_at DESC
    `

	rows, err := db.Pool.Query(ctx, query, orgID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.JobPost{}
	for rows.Next() {
		var p models.JobPost
		if err := rows.Scan(&p.ID, &p.OrgID, &p.Title, &p.Description, &p.Status, &p.Location, &p.Seniority, &p.Industry, &p.WorkMode, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (db *DB) CreateJobPost(ctx context.Context, p *models.JobPost) error {
	query := `
        INSERT INTO job_posts (id, org_id, title, description, status, location, seniority, industry, work_mode)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at
    `

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	return db.Pool.QueryRow(ctx, query,
		p.ID, p.OrgID, p.Title, p.Description, p.Status, p.Location, p.Seniority, p.Industry, p.WorkMode,
	).Scan(&p.CreatedAt)
}

func (db *DB) UpdateJobPostStatus(ctx context.Context, orgID, id, status string) error {
	tag, err := db.Pool.Exec(ctx, `UPDATE job_posts SET status = $3 WHERE org_id = $1 AND id = $2`, orgID, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) ListMessages(ctx context.Context, orgID string) ([]models.Message, error) {
	query := `
        SELECT id, org_id, content, channel, created_at
        FROM messages
        WHERE org_id = $1
        ORDER BY created_at DESC
    `

	rows, err := db.Pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.OrgID, &m.Content, &m.Channel, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (db *DB) CreateMessage(ctx context.Context, m *models.Message) error {
	query := `
        INSERT INTO messages (id, org_id, content, channel)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at
    `

	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	return db.Pool.QueryRow(ctx, query, m.ID, m.OrgID, m.Content, m.Channel).Scan(&m.CreatedAt)
}

func (db *DB) ListInterviews(ctx context.Context, orgID string) ([]models.Interview, error) {
	query := `
        SELECT id, org_id, candidate_id, job_post_id, interview_date, notes, created_at
        FROM interviews
        WHERE org_id = $1
        ORDER BY interview_date DESC NULLS LAST
    `

	rows, err := db.Pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interviews := []models.Interview{}
	for rows.Next() {
		var iv models.Interview
		if err := rows.Scan(&iv.ID, &iv.OrgID, &iv.CandidateID, &iv.JobPostID, &iv.InterviewDate, &iv.Notes, &iv.CreatedAt); err != nil {
			return nil, err
		}
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}

func (db *DB) CreateInterview(ctx context.Context, iv *models.Interview) error {
	query := `
        INSERT INTO interviews (id, org_id, candidate_id, job_post_id, interview_date, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at
    `

	if iv.ID == "" {
		iv.ID = uuid.NewString()
	}

	return db.Pool.QueryRow(ctx, query,
		iv.ID, iv.OrgID, iv.CandidateID, iv.JobPostID, iv.InterviewDate, iv.Notes,
	).Scan(&iv.CreatedAt)
}

func (db *DB) ListDocuments(ctx context.Context, orgID, candidateID string) ([]models.Document, error) {
	query := `
        SELECT id, org_id, candidate_id, file_url, file_type, created_at
        FROM documents
        WHERE org_id = $1 AND ($2 = '' OR candidate_id::text = $2)
        ORDER BY created_at DESC
    `

	rows, err := db.Pool.Query(ctx, query, orgID, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.OrgID, &d.CandidateID, &d.FileURL, &d.FileType, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (db *DB) CreateDocument(ctx context.Context, d *models.Document) error {
	query := `
        INSERT INTO documents (id, org_id, candidate_id, file_url, file_type)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at
    `

	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	return db.Pool.QueryRow(ctx, query, d.ID, d.OrgID, d.CandidateID, d.FileURL, d.FileType).Scan(&d.CreatedAt)
}

func (db *DB) DeleteDocument(ctx context.Context, orgID, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM documents WHERE org_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) GetDashboardStats(ctx context.Context, orgID string) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{CandidatesByStatus: map[string]int{}}

	rows, err := db.Pool.Query(ctx, `SELECT status, COUNT(*) FROM candidates WHERE org_id = $1 GROUP BY status`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.CandidatesByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM interviews WHERE org_id = $1 AND interview_date >= NOW()`, orgID,
	).Scan(&stats.UpcomingInterviews)
	if err != nil {
		return nil, err
	}

	weekAgo := time.Now().Add(-7 * 24 * time.Hour)
	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE org_id = $1 AND created_at >= $2`, orgID, weekAgo,
	).Scan(&stats.MessagesThisWeek)
	if err != nil {
		return nil, err
	}

	dayAgo := time.Now().Add(-24 * time.Hour)
	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ai_logs WHERE org_id = $1 AND created_at >= $2`, orgID, dayAgo,
	).Scan(&stats.GenerationsToday)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
