package postgres

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `a.id, a.user_id, a.job_id, a.status, a.cover_letter, a.created_at, a.updated_at`

func scanApplication(row pgx.Row, app *domain.Application, extra ...any) error {
	var status string
	dest := append([]any{
		&app.ID, &app.UserID, &app.JobID, &status, &app.CoverLetter, &app.CreatedAt, &app.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	app.Status = domain.ApplicationStatus(status)
	return nil
}

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (user_id, job_id, status, cover_letter, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		app.UserID, app.JobID, string(app.Status), app.CoverLetter, app.CreatedAt, app.UpdatedAt,
	).Scan(&app.ID)
	return mapError(err)
}

// GetByID retrieves an application by ID
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	var app domain.Application
	err := scanApplication(conn(ctx, r.db).QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, id), &app)
	if err != nil {
		return nil, mapError(err)
	}
	return &app, nil
}

func (r *applicationRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Application, error) {
	var app domain.Application
	err := scanApplication(conn(ctx, r.db).QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1 FOR UPDATE`, id), &app)
	if err != nil {
		return nil, mapError(err)
	}
	return &app, nil
}

// GetByUserID retrieves a candidate's applications with a summary of each job
func (r *applicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	query := `
		SELECT ` + applicationColumns + `,
			j.title, j.company_name, j.location, j.contract_type
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC, a.id DESC`

	rows, err := conn(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app,
			&app.JobTitle, &app.JobCompanyName, &app.JobLocation, &app.JobContractType,
		); err != nil {
			return nil, mapError(err)
		}
		apps = append(apps, app)
	}
	return apps, mapError(rows.Err())
}

// GetByJobID retrieves the applications to a job with the candidate's identity
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `
		SELECT ` + applicationColumns + `,
			u.email, cp.first_name, cp.last_name, NULLIF(cp.profile_picture, '')
		FROM applications a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN candidate_profiles cp ON cp.user_id = a.user_id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC, a.id DESC`

	rows, err := conn(ctx, r.db).Query(ctx, query, jobID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app,
			&app.CandidateEmail, &app.CandidateFirstName, &app.CandidateLastName, &app.CandidatePhoto,
		); err != nil {
			return nil, mapError(err)
		}
		apps = append(apps, app)
	}
	return apps, mapError(rows.Err())
}

// CheckExists reports whether userID already applied to jobID
func (r *applicationRepo) CheckExists(ctx context.Context, jobID int64, userID string) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`, jobID, userID,
	).Scan(&exists)
	return exists, mapError(err)
}

func (r *applicationRepo) CountByJobID(ctx context.Context, jobID int64) (int64, error) {
	var n int64
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&n)
	return n, mapError(err)
}

func (r *applicationRepo) CountByStatus(ctx context.Context, userID string) (map[domain.ApplicationStatus]int64, error) {
	rows, err := conn(ctx, r.db).Query(ctx,
		`SELECT status, COUNT(*) FROM applications WHERE user_id = $1 GROUP BY status`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	counts := make(map[domain.ApplicationStatus]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, mapError(err)
		}
		counts[domain.ApplicationStatus(status)] = n
	}
	return counts, mapError(rows.Err())
}

// UpdateStatus updates the status of an application
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus, updatedAt time.Time) error {
	tag, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`, string(status), updatedAt, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
