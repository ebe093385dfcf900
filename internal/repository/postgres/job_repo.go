package postgres

import (
	"context"
	"fmt"
	"strings"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id, owner_user_id, title, company_name, location, description, contract_type, level,
	time_type, work_mode, field, salary_range, requirements, benefits, created_at, updated_at`

func scanJob(row pgx.Row, job *domain.Job) error {
	return row.Scan(
		&job.ID, &job.OwnerUserID, &job.Title, &job.CompanyName, &job.Location, &job.Description,
		&job.ContractType, &job.Level, &job.TimeType, &job.WorkMode, &job.Field,
		&job.SalaryRange, &job.Requirements, &job.Benefits, &job.CreatedAt, &job.UpdatedAt,
	)
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		var job domain.Job
		if err := scanJob(rows, &job); err != nil {
			return nil, mapError(err)
		}
		jobs = append(jobs, job)
	}
	return jobs, mapError(rows.Err())
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (owner_user_id, title, company_name, location, description, contract_type, level,
                  time_type, work_mode, field, salary_range, requirements, benefits, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		job.OwnerUserID, job.Title, job.CompanyName, job.Location, job.Description, job.ContractType, job.Level,
		job.TimeType, job.WorkMode, job.Field, job.SalaryRange, job.Requirements, job.Benefits,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
	return mapError(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	var job domain.Job
	if err := scanJob(conn(ctx, r.db).QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id), &job); err != nil {
		return nil, mapError(err)
	}
	return &job, nil
}

func (r *jobRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Job, error) {
	var job domain.Job
	if err := scanJob(conn(ctx, r.db).QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, id), &job); err != nil {
		return nil, mapError(err)
	}
	return &job, nil
}

// likePattern escapes LIKE metacharacters and wraps s for a substring match.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// buildJobFilter returns the WHERE clause and its arguments for filter.
func buildJobFilter(filter domain.JobFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	for _, in := range []struct {
		column string
		values []string
	}{
		{"contract_type", filter.ContractTypes},
		{"level", filter.Levels},
		{"time_type", filter.TimeTypes},
		{"work_mode", filter.WorkModes},
		{"field", filter.Fields},
	} {
		if len(in.values) > 0 {
			add(in.column+" = ANY($%d)", pq.Array(in.values))
		}
	}
	if filter.Location != "" {
		add("unaccent(lower(location)) LIKE $%d", likePattern(filter.Location))
	}
	if filter.Keyword != "" {
		add("(unaccent(lower(title)) LIKE $%[1]d OR unaccent(lower(company_name)) LIKE $%[1]d"+
			" OR unaccent(lower(description)) LIKE $%[1]d)", likePattern(filter.Keyword))
	}
	if !filter.IncludeExpired && filter.CreatedAfter != nil {
		add("created_at >= $%d", *filter.CreatedAfter)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *jobRepo) Search(ctx context.Context, filter domain.JobFilter) ([]domain.Job, int64, error) {
	where, args := buildJobFilter(filter)
	q := conn(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	query := `SELECT ` + jobColumns + ` FROM jobs` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := q.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// FetchByOwner retrieves the postings of one recruiter, newest first
func (r *jobRepo) FetchByOwner(ctx context.Context, ownerID string) ([]domain.Job, error) {
	rows, err := conn(ctx, r.db).Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE owner_user_id = $1 ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	return collectJobs(rows)
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET title = $2, company_name = $3, location = $4, description = $5, contract_type = $6,
                  level = $7, time_type = $8, work_mode = $9, field = $10, salary_range = $11,
                  requirements = $12, benefits = $13, updated_at = $14
              WHERE id = $1`
	tag, err := conn(ctx, r.db).Exec(ctx, query,
		job.ID, job.Title, job.CompanyName, job.Location, job.Description, job.ContractType,
		job.Level, job.TimeType, job.WorkMode, job.Field, job.SalaryRange,
		job.Requirements, job.Benefits, job.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
