package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("resource already exists")
	// ErrReferenced is returned when a row cannot be removed because other rows point to it.
	ErrReferenced = errors.New("resource is still referenced")
)

// JobExpiryMonths is the age after which a listing stops accepting applications.
const JobExpiryMonths = 3

type Job struct {
	ID           int64     `json:"id"`
	OwnerUserID  string    `json:"owner_user_id"`
	Title        string    `json:"title"`
	CompanyName  string    `json:"company_name"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	ContractType string    `json:"contract_type"`
	Level        string    `json:"level"`
	TimeType     string    `json:"time_type"`
	WorkMode     string    `json:"work_mode"`
	Field        string    `json:"field"`
	SalaryRange  string    `json:"salary_range"`
	Requirements string    `json:"requirements"`
	Benefits     string    `json:"benefits"`
	Expired      bool      `json:"expired"` // computed at read time, not stored
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ExpiryCutoff returns the creation time before which a job counts as expired.
func ExpiryCutoff(now time.Time) time.Time {
	return now.AddDate(0, -JobExpiryMonths, 0)
}

func (j *Job) IsExpired(now time.Time) bool {
	return j.CreatedAt.Before(ExpiryCutoff(now))
}

// JobPatch carries a partial update; nil fields are left unchanged.
type JobPatch struct {
	Title        *string `json:"title"`
	CompanyName  *string `json:"company_name"`
	Location     *string `json:"location"`
	Description  *string `json:"description"`
	ContractType *string `json:"contract_type"`
	Level        *string `json:"level"`
	TimeType     *string `json:"time_type"`
	WorkMode     *string `json:"work_mode"`
	Field        *string `json:"field"`
	SalaryRange  *string `json:"salary_range"`
	Requirements *string `json:"requirements"`
	Benefits     *string `json:"benefits"`
}

// Apply copies the non-nil fields of p onto j.
func (p JobPatch) Apply(j *Job) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&j.Title, p.Title)
	set(&j.CompanyName, p.CompanyName)
	set(&j.Location, p.Location)
	set(&j.Description, p.Description)
	set(&j.ContractType, p.ContractType)
	set(&j.Level, p.Level)
	set(&j.TimeType, p.TimeType)
	set(&j.WorkMode, p.WorkMode)
	set(&j.Field, p.Field)
	set(&j.SalaryRange, p.SalaryRange)
	set(&j.Requirements, p.Requirements)
	set(&j.Benefits, p.Benefits)
}

// JobFilter holds AND-composed search predicates. Empty slices and strings match everything.
type JobFilter struct {
	ContractTypes  []string
	Levels         []string
	TimeTypes      []string
	WorkModes      []string
	Fields         []string
	// Location and Keyword are substring matches, case and accent insensitive.
	Location       string
	Keyword        string
	IncludeExpired bool
	// CreatedAfter is set by the usecase from the clock when IncludeExpired is false.
	CreatedAfter *time.Time
	Limit        int
	Offset       int
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*Job, error)
	Search(ctx context.Context, filter JobFilter) ([]Job, int64, error)
	FetchByOwner(ctx context.Context, ownerID string) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, userID string, job *Job) error
	UpdateJob(ctx context.Context, jobID int64, userID string, patch JobPatch) (*Job, error)
	DeleteJob(ctx context.Context, jobID int64, userID string) error
	GetJob(ctx context.Context, id int64) (*Job, error)
	SearchJobs(ctx context.Context, filter JobFilter, page, pageSize int) ([]Job, int64, error)
	ListJobsByOwner(ctx context.Context, userID string) ([]Job, error)
}
