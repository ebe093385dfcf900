package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/xuri/excelize/v2"
)

type applicationUsecase struct {
	appRepo  domain.ApplicationRepository
	jobRepo  domain.JobRepository
	userRepo domain.UserRepository
	tx       domain.TxManager
	notifier domain.StatusNotifier
	now      func() time.Time
}

// NewApplicationUsecase creates a new application usecase instance
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
	tx domain.TxManager,
	opts ...Option,
) domain.ApplicationUsecase {
	o := buildOptions(opts)
	return &applicationUsecase{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		tx:       tx,
		notifier: o.notifier,
		now:      o.now,
	}
}

func errAlreadyApplied() error {
	return apperror.Conflict(apperror.CodeAlreadyApplied, "You have already applied to this job")
}

func errJobExpired() error {
	return apperror.Conflict(apperror.CodeJobExpired, "This job offer has expired")
}

func (u *applicationUsecase) getJob(ctx context.Context, jobID int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("Job not found")
	}
	return job, err
}

func (u *applicationUsecase) Apply(ctx context.Context, userID string, jobID int64, coverLetter *string) (*domain.Application, error) {
	actor, err := loadActor(ctx, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !domain.PolicyFor(actor.AccountType).CanApply {
		return nil, apperror.Forbidden("Only candidates can apply to jobs")
	}

	job, err := u.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	exists, err := u.appRepo.CheckExists(ctx, jobID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errAlreadyApplied()
	}

	now := u.now()
	if job.IsExpired(now) {
		return nil, errJobExpired()
	}

	if coverLetter != nil {
		trimmed := strings.TrimSpace(*coverLetter)
		if trimmed == "" {
			coverLetter = nil
		} else {
			coverLetter = &trimmed
		}
	}

	app := &domain.Application{
		UserID:      actor.ID,
		JobID:       jobID,
		Status:      domain.ApplicationStatusPending,
		CoverLetter: coverLetter,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = u.appRepo.Create(ctx, app)
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return nil, errAlreadyApplied()
	case errors.Is(err, domain.ErrReferenced):
		// job removed between the lookup and the insert
		return nil, apperror.NotFound("Job not found")
	case err != nil:
		return nil, err
	}
	return app, nil
}

func (u *applicationUsecase) ListMine(ctx context.Context, userID string) ([]domain.Application, error) {
	actor, err := loadActor(ctx, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if err := RequireRole(actor, domain.RoleCandidate); err != nil {
		return nil, err
	}
	return u.appRepo.GetByUserID(ctx, actor.ID)
}

func (u *applicationUsecase) Stats(ctx context.Context, userID string) (*domain.ApplicationStats, error) {
	actor, err := loadActor(ctx, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if err := RequireRole(actor, domain.RoleCandidate); err != nil {
		return nil, err
	}

	counts, err := u.appRepo.CountByStatus(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	stats := &domain.ApplicationStats{}
	for status, n := range counts {
		stats.Add(status, n)
	}
	return stats, nil
}

// authorize loads the application and its job and checks that the actor may
// act on it. Inside a transaction the application row is locked.
func (u *applicationUsecase) authorize(ctx context.Context, id int64, userID string, lock bool) (*domain.Application, *domain.Job, *domain.User, error) {
	actor, err := loadActor(ctx, u.userRepo, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	var app *domain.Application
	if lock {
		app, err = u.appRepo.GetByIDForUpdate(ctx, id)
	} else {
		app, err = u.appRepo.GetByID(ctx, id)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, nil, apperror.NotFound("Application not found")
	}
	if err != nil {
		return nil, nil, nil, err
	}

	job, err := u.getJob(ctx, app.JobID)
	if err != nil {
		return nil, nil, nil, err
	}

	if !domain.PolicyFor(actor.AccountType).OwnsApplication(app, job.OwnerUserID, actor.ID) {
		return nil, nil, nil, apperror.Forbidden("You do not have access to this application")
	}
	return app, job, actor, nil
}

func (u *applicationUsecase) Get(ctx context.Context, id int64, userID string) (*domain.Application, error) {
	app, _, _, err := u.authorize(ctx, id, userID, false)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (u *applicationUsecase) Delete(ctx context.Context, id int64, userID string) error {
	return u.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, _, actor, err := u.authorize(ctx, id, userID, true)
		if err != nil {
			return err
		}
		if !domain.PolicyFor(actor.AccountType).CanDeleteApplication {
			return apperror.Forbidden("Only the candidate can withdraw an application")
		}

		if err := u.appRepo.Delete(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apperror.NotFound("Application not found")
			}
			return err
		}
		return nil
	})
}

func (u *applicationUsecase) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus, userID string) (*domain.Application, error) {
	if !status.Valid() {
		return nil, apperror.BadRequest("Status must be one of pending, reviewed, accepted, rejected")
	}

	var (
		app      *domain.Application
		job      *domain.Job
		byOwner  bool
		previous domain.ApplicationStatus
	)
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		var (
			actor *domain.User
			err   error
		)
		app, job, actor, err = u.authorize(ctx, id, userID, true)
		if err != nil {
			return err
		}

		previous = app.Status
		app.Status = status
		app.UpdatedAt = u.now()
		if err := u.appRepo.UpdateStatus(ctx, app.ID, status, app.UpdatedAt); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apperror.NotFound("Application not found")
			}
			return err
		}
		byOwner = job.OwnerUserID == actor.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if byOwner && previous != status {
		u.notify(ctx, app, job)
	}
	return app, nil
}

// notify is best-effort: the status change is already committed.
func (u *applicationUsecase) notify(ctx context.Context, app *domain.Application, job *domain.Job) {
	if u.notifier == nil {
		return
	}
	candidate, err := u.userRepo.GetByID(ctx, app.UserID)
	if err != nil {
		logger.FromContext(ctx).Warn("status notification skipped", "application_id", app.ID, "error", err)
		return
	}

	err = u.notifier.NotifyStatusChange(ctx, domain.StatusChange{
		CandidateEmail: candidate.Email,
		JobTitle:       job.Title,
		CompanyName:    job.CompanyName,
		Status:         app.Status,
	})
	if err != nil {
		logger.FromContext(ctx).Warn("status notification failed", "application_id", app.ID, "error", err)
	}
}

// ownedJob returns the job when the actor is a recruiter who owns it.
func (u *applicationUsecase) ownedJob(ctx context.Context, jobID int64, userID string) (*domain.Job, error) {
	actor, err := loadActor(ctx, u.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if err := RequireRole(actor, domain.RoleRecruiter); err != nil {
		return nil, err
	}
	job, err := u.getJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnership(job.OwnerUserID, actor.ID); err != nil {
		return nil, err
	}
	return job, nil
}

func (u *applicationUsecase) ListByJob(ctx context.Context, jobID int64, userID string) ([]domain.Application, error) {
	if _, err := u.ownedJob(ctx, jobID, userID); err != nil {
		return nil, err
	}
	return u.appRepo.GetByJobID(ctx, jobID)
}

// ExportByJob renders the applicants of a job as an xlsx workbook.
func (u *applicationUsecase) ExportByJob(ctx context.Context, jobID int64, userID string) ([]byte, error) {
	if _, err := u.ownedJob(ctx, jobID, userID); err != nil {
		return nil, err
	}
	apps, err := u.appRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return exportApplicants(apps)
}

var applicantColumns = []string{
	"APPLICATION ID",
	"EMAIL",
	"FIRST NAME",
	"LAST NAME",
	"STATUS",
	"APPLIED AT",
	"COVER LETTER",
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func exportApplicants(apps []domain.Application) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applicants"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, header := range applicantColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(applicantColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, app := range apps {
		values := []interface{}{
			app.ID,
			deref(app.CandidateEmail),
			deref(app.CandidateFirstName),
			deref(app.CandidateLastName),
			string(app.Status),
			app.CreatedAt.UTC().Format("2006-01-02 15:04"),
			deref(app.CoverLetter),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	for i := range applicantColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
