package domain

import (
	"context"
	"time"
)

// ApplicationStatus values. Any status may move to any other.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every status in display order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application represents a job application from a candidate
type Application struct {
	ID          int64             `json:"id"`
	UserID      string            `json:"user_id"`
	JobID       int64             `json:"job_id"`
	Status      ApplicationStatus `json:"status"`
	CoverLetter *string           `json:"cover_letter,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Joined job summary (candidate listing)
	JobTitle        *string `json:"job_title,omitempty"`
	JobCompanyName  *string `json:"job_company_name,omitempty"`
	JobLocation     *string `json:"job_location,omitempty"`
	JobContractType *string `json:"job_contract_type,omitempty"`

	// Joined candidate summary (recruiter listing)
	CandidateEmail     *string `json:"candidate_email,omitempty"`
	CandidateFirstName *string `json:"candidate_first_name,omitempty"`
	CandidateLastName  *string `json:"candidate_last_name,omitempty"`
	CandidatePhoto     *string `json:"candidate_photo,omitempty"`
}

// ApplicationStats is always fully populated, zero counts included.
type ApplicationStats struct {
	Pending  int64 `json:"pending"`
	Reviewed int64 `json:"reviewed"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

// Add records n applications with status s.
func (st *ApplicationStats) Add(s ApplicationStatus, n int64) {
	switch s {
	case ApplicationStatusPending:
		st.Pending += n
	case ApplicationStatusReviewed:
		st.Reviewed += n
	case ApplicationStatusAccepted:
		st.Accepted += n
	case ApplicationStatusRejected:
		st.Rejected += n
	default:
		return
	}
	st.Total += n
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*Application, error)
	GetByUserID(ctx context.Context, userID string) ([]Application, error)
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	CheckExists(ctx context.Context, jobID int64, userID string) (bool, error)
	CountByJobID(ctx context.Context, jobID int64) (int64, error)
	CountByStatus(ctx context.Context, userID string) (map[ApplicationStatus]int64, error)
	UpdateStatus(ctx context.Context, id int64, status ApplicationStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, userID string, jobID int64, coverLetter *string) (*Application, error)
	ListMine(ctx context.Context, userID string) ([]Application, error)
	Stats(ctx context.Context, userID string) (*ApplicationStats, error)
	Delete(ctx context.Context, id int64, userID string) error

	// Either owning actor
	Get(ctx context.Context, id int64, userID string) (*Application, error)
	UpdateStatus(ctx context.Context, id int64, status ApplicationStatus, userID string) (*Application, error)

	// Recruiter operations
	ListByJob(ctx context.Context, jobID int64, userID string) ([]Application, error)
	ExportByJob(ctx context.Context, jobID int64, userID string) ([]byte, error)
}

// StatusNotifier tells a candidate that a recruiter changed their application.
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, n StatusChange) error
}

type StatusChange struct {
	CandidateEmail string
	JobTitle       string
	CompanyName    string
	Status         ApplicationStatus
}
