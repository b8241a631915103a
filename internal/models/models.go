package models

import "time"

type Organization struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	RateLimitPerHour int       `json:"rate_limit_per_hour"`
	CreatedAt        time.Time `json:"created_at"`
}

type Profile struct {
	ID           string    `json:"id"`
	OrgID        string    `json:"org_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type Candidate struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Status    string    `json:"status"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type JobPost struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Location    *string   `json:"location"`
	Seniority   *string   `json:"seniority"`
	Industry    *string   `json:"industry"`
	WorkMode    *string   `json:"work_mode"`
	CreatedAt   time.Time `json:"created_at"`
}

type Message struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"-"`
	Content   string    `json:"content"`
	Channel   string    `json:"channel"`
	CreatedAt time.Time `json:"created_at"`
}

type Interview struct {
	ID            string     `json:"id"`
	OrgID         string     `json:"-"`
	CandidateID   string     `json:"candidate_id"`
	JobPostID     string     `json:"job_post_id"`
	InterviewDate *time.Time `json:"interview_date"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Document is a reference to an externally stored file. The service only
// tracks metadata; upload and signed-URL issuance live in the storage layer.
type Document struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"-"`
	CandidateID string    `json:"candidate_id"`
	FileURL     string    `json:"file_url"`
	FileType    string    `json:"file_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// AILog is one row of the append-only AI generation audit trail. It doubles
// as the data source for the hourly generation quotas.
type AILog struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"-"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"created_at"`
}

type Automation struct {
	ID         string    `json:"id"`
	OrgID      string    `json:"-"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	TemplateID *string   `json:"template_id"`
	AIType     string    `json:"ai_type"`
	Trigger    *string   `json:"trigger"`
	Prompt     string    `json:"prompt"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AutomationRun struct {
	ID           string    `json:"id"`
	OrgID        string    `json:"-"`
	UserID       string    `json:"user_id"`
	AutomationID *string   `json:"automation_id"`
	AIType       string    `json:"ai_type"`
	Input        string    `json:"input"`
	Output       *string   `json:"output"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// DashboardStats aggregates the counters shown on the dashboard page.
type DashboardStats struct {
	CandidatesByStatus map[string]int `json:"candidates_by_status"`
	UpcomingInterviews int            `json:"upcoming_interviews"`
	MessagesThisWeek   int            `json:"messages_this_week"`
	GenerationsToday   int            `json:"generations_today"`
}
