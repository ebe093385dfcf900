package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/textnorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	// keeps (page-1)*pageSize inside int
	maxPage = math.MaxInt32 / maxPageSize
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	appRepo  domain.ApplicationRepository
	userRepo domain.UserRepository
	tx       domain.TxManager
	now      func() time.Time
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	appRepo domain.ApplicationRepository,
	userRepo domain.UserRepository,
	tx domain.TxManager,
	opts ...Option,
) domain.JobUsecase {
	o := buildOptions(opts)
	return &jobUsecase{
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		userRepo: userRepo,
		tx:       tx,
		now:      o.now,
	}
}

func (u *jobUsecase) markExpiry(jobs []domain.Job) []domain.Job {
	now := u.now()
	for i := range jobs {
		jobs[i].Expired = jobs[i].IsExpired(now)
	}
	return jobs
}

// checkJobRequired rejects blank titles and company names. Values are stored as sent.
func checkJobRequired(job *domain.Job) error {
	if strings.TrimSpace(job.Title) == "" {
		return apperror.BadRequest("Title is required")
	}
	if strings.TrimSpace(job.CompanyName) == "" {
		return apperror.BadRequest("Company name is required")
	}
	return nil
}

func (u *jobUsecase) CreateJob(ctx context.Context, userID string, job *domain.Job) error {
	actor, err := loadActor(ctx, u.userRepo, userID)
	if err != nil {
		return err
	}
	if !domain.PolicyFor(actor.AccountType).CanCreateJobs {
		return apperror.Forbidden("Only recruiters can create jobs")
	}

	if err := checkJobRequired(job); err != nil {
		return err
	}

	now := u.now()
	job.ID = 0
	job.OwnerUserID = actor.ID
	job.CreatedAt = now
	job.UpdatedAt = now
	job.Expired = false

	return u.jobRepo.Create(ctx, job)
}

// lockOwnedJob loads and locks a job inside a transaction and checks that
// userID owns it.
func (u *jobUsecase) lockOwnedJob(ctx context.Context, jobID int64, userID string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByIDForUpdate(ctx, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Job not found")
	}
	if err != nil {
		return nil, err
	}
	if err := RequireOwnership(job.OwnerUserID, userID); err != nil {
		return nil, err
	}
	return job, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, jobID int64, userID string, patch domain.JobPatch) (*domain.Job, error) {
	var updated *domain.Job
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		job, err := u.lockOwnedJob(ctx, jobID, userID)
		if err != nil {
			return err
		}

		patch.Apply(job)
		if err := checkJobRequired(job); err != nil {
			return err
		}
		job.UpdatedAt = u.now()

		if err := u.jobRepo.Update(ctx, job); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apperror.NotFound("Job not found")
			}
			return err
		}
		updated = job
		return nil
	})
	if err != nil {
		return nil, err
	}
	updated.Expired = updated.IsExpired(u.now())
	return updated, nil
}

func jobHasApplications(n int64) error {
	return apperror.Conflict(apperror.CodeJobHasApplications, "Cannot delete a job that has applications").
		WithDetails(map[string]int64{"applications": n})
}

func (u *jobUsecase) DeleteJob(ctx context.Context, jobID int64, userID string) error {
	return u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := u.lockOwnedJob(ctx, jobID, userID); err != nil {
			return err
		}

		n, err := u.appRepo.CountByJobID(ctx, jobID)
		if err != nil {
			return err
		}
		if n > 0 {
			return jobHasApplications(n)
		}

		err = u.jobRepo.Delete(ctx, jobID)
		switch {
		case errors.Is(err, domain.ErrReferenced):
			// an application slipped in after the count
			return jobHasApplications(1)
		case errors.Is(err, domain.ErrNotFound):
			return apperror.NotFound("Job not found")
		}
		return err
	})
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Job not found")
	}
	if err != nil {
		return nil, err
	}
	job.Expired = job.IsExpired(u.now())
	return job, nil
}

// normalizePage clamps pagination parameters to their defaults and bounds.
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func (u *jobUsecase) SearchJobs(ctx context.Context, filter domain.JobFilter, page, pageSize int) ([]domain.Job, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	if page > maxPage {
		return nil, 0, apperror.BadRequest("Page is out of range")
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize
	// matched against unaccent(lower(column)) in the store
	filter.Keyword = textnorm.Fold(textnorm.Text(filter.Keyword))
	filter.Location = textnorm.Fold(textnorm.Text(filter.Location))

	filter.CreatedAfter = nil
	if !filter.IncludeExpired {
		cutoff := domain.ExpiryCutoff(u.now())
		filter.CreatedAfter = &cutoff
	}

	jobs, total, err := u.jobRepo.Search(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return u.markExpiry(jobs), total, nil
}

// ListJobsByOwner returns the postings of the calling recruiter
func (u *jobUsecase) ListJobsByOwner(ctx context.Context, userID string) ([]domain.Job, error) {
	actor, err := loadActor(ctx, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if err := RequireRole(actor, domain.RoleRecruiter); err != nil {
		return nil, err
	}

	jobs, err := u.jobRepo.FetchByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return u.markExpiry(jobs), nil
}
