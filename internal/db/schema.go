package db

import "context"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS organizations (
        id UUID PRIMARY KEY,
        name TEXT NOT NULL,
        rate_limit_per_hour INT NOT NULL DEFAULT 1000,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS profiles (
        id UUID PRIMARY KEY,
        org_id UUID NOT NULL REFERENCES organizations(id),
        email TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        full_name TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS candidates (
        id UUID PRIMARY KEY,
        org_id UUID NOT NULL REFERENCES organizations(id),
        first_name TEXT NOT NULL,
        last_name TEXT NOT NULL,
        email TEXT,
        phone TEXT,
        status TEXT NOT NULL DEFAULT 'new',
        source TEXT NOT NULL DEFAULT 'Other',
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS job_posts (
        id UUID PRIMARY KEY,
        org_id UUID NOT NULL REFERENCES organizations(id),
        title TEXT NOT NULL,
        description TEXT NOT NULL,
        status TEXT NOT NULL DEFAULT 'draft',
        location TEXT,
        seniority TEXT,
        industry TEXT,
        work_mode TEXT,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS messages (
        id UUID PRIMARY KEY,
        org_id UUID NOT NULL REFERENCES organizations(id),
        content TEXT NOT NULL,
        channel TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS interviews (
        id UUID PRIMARY KEY,
        org_id UUID NOT NULL REFERENCES organizations(id),
        candidate_id UUID NOT NULL REFERENCES candidates(id),
        job_post_id UUID NOT NULL REFERENCES job_posts(id),
        interview_date TIMESTAMPTZ,
        notes TEXT,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS documents (
        id UUID PRIMARY KEY,
        org_id UUID NOT NULL REFERENCES organizations(id),
        candidate_id UUID NOT NULL REFERENCES candidates(id),
        file_url TEXT NOT NULL,
        file_type TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS ai_logs (
        id UUID PRIMARY KEY,
        org_id UUID NOT NULL REFERENCES organizations(id),
        user_id UUID NOT NULL REFERENCES profiles(id),
        type TEXT NOT NULL,
        input TEXT NOT NULL,
        output TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE INDEX IF NOT EXISTS idx_ai_logs_user_created ON ai_logs (user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_ai_logs_org_created ON ai_logs (org_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS automations (
        id UUID PRIMARY KEY,
        org_id UUID NOT NULL REFERENCES organizations(id),
        user_id UUID NOT NULL REFERENCES profiles(id),
        name TEXT NOT NULL,
        template_id TEXT,
        ai_type TEXT NOT NULL,
        trigger TEXT,
        prompt TEXT NOT NULL,
        active BOOLEAN NOT NULL DEFAULT TRUE,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS automation_runs (
        id UUID PRIMARY KEY,
        org_id UUID NOT NULL REFERENCES organizations(id),
        user_id UUID NOT NULL REFERENCES profiles(id),
        automation_id UUID REFERENCES automations(id),
        ai_type TEXT NOT NULL,
        input TEXT NOT NULL,
        output TEXT,
        status TEXT NOT NULL DEFAULT 'done',
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
}

// Migrate creates missing tables and indexes. Statements are idempotent so
// it is safe to run on every startup.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
