package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/Jacques-glitch1996/talentpilot-ai/internal/models"
)

func (db *DB) ListAutomations(ctx context.Context, orgID string) ([]models.Automation, error) {
	query := `
        SELECT id, org_id, user_id, name, template_id, ai_type, trigger, prompt, active, created_at, updated_at
        FROM automations
        WHERE org_id = $1
        ORDER BY created_at DESC
    `

	rows, err := db.Pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	automations := []models.Automation{}
	for rows.Next() {
		var a models.Automation
		if err := rows.Scan(&a.ID, &a.OrgID, &a.UserID, &a.Name, &a.TemplateID, &a.AIType, &a.Trigger, &a.Prompt, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		automations = append(automations, a)
	}
	return automations, rows.Err()
}

func (db *DB) CreateAutomation(ctx context.Context, a *models.Automation) error {
	query := `
        INSERT INTO automations (id, org_id, user_id, name, template_id, ai_type, trigger, prompt, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at
    `

	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	return db.Pool.QueryRow(ctx, query,
		a.ID, a.OrgID, a.UserID, a.Name, a.TemplateID, a.AIType, a.Trigger, a.Prompt, a.Active,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (db *DB) SetAutomationActive(ctx context.Context, orgID, id string, active bool) error {
	query := `UPDATE automations SET active = $3, updated_at = NOW() WHERE org_id = $1 AND id = $2`

	tag, err := db.Pool.Exec(ctx, query, orgID, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) DeleteAutomation(ctx context.Context, orgID, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM automations WHERE org_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) ListAutomationRuns(ctx context.Context, orgID, automationID string) ([]models.AutomationRun, error) {
	query := `
        SELECT id, org_id, user_id, automation_id, ai_type, input, output, status, created_at
        FROM automation_runs
        WHERE org_id = $1 AND ($2 = '' OR automation_id::text = $2)
        ORDER BY created_at DESC
        LIMIT 100
    `

	rows, err := db.Pool.Query(ctx, query, orgID, automationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []models.AutomationRun{}
	for rows.Next() {
		var run models.AutomationRun
		if err := rows.Scan(&run.ID, &run.OrgID, &run.UserID, &run.AutomationID, &run.AIType, &run.Input, &run.Output, &run.Status, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (db *DB) CreateAutomationRun(ctx context.Context, run *models.AutomationRun) error {
	query := `
        INSERT INTO automation_runs (id, org_id, user_id, automation_id, ai_type, input, output, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at
    `

	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	return db.Pool.QueryRow(ctx, query,
		run.ID, run.OrgID, run.UserID, run.AutomationID, run.AIType, run.Input, run.Output, run.Status,
	).Scan(&run.CreatedAt)
}
