package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Save(ctx context.Context, p domain.Profile) error {
	switch p := p.(type) {
	case *domain.CandidateProfile:
		return r.saveCandidate(ctx, p)
	case *domain.RecruiterProfile:
		return r.saveRecruiter(ctx, p)
	default:
		return fmt.Errorf("profile repository: unsupported profile type %T", p)
	}
}

func (r *profileRepo) Get(ctx context.Context, userID string, role domain.Role) (domain.Profile, error) {
	switch role {
	case domain.RoleCandidate:
		p, err := r.getCandidate(ctx, userID)
		if err != nil {
			return nil, err
		}
		return p, nil
	case domain.RoleRecruiter:
		p, err := r.getRecruiter(ctx, userID)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, domain.ErrNotFound
	}
}

// Delete removes the user's profile of either shape; missing rows are not an error.
func (r *profileRepo) Delete(ctx context.Context, userID string) error {
	q := conn(ctx, r.db)
	if _, err := q.Exec(ctx, `DELETE FROM candidate_profiles WHERE user_id = $1`, userID); err != nil {
		return mapError(err)
	}
	_, err := q.Exec(ctx, `DELETE FROM recruiter_profiles WHERE user_id = $1`, userID)
	return mapError(err)
}

func marshalEntries(entries []domain.Entry) ([]byte, error) {
	if entries == nil {
		entries = []domain.Entry{}
	}
	return json.Marshal(entries)
}

func (r *profileRepo) saveCandidate(ctx context.Context, p *domain.CandidateProfile) error {
	var collections [4][]byte
	for i, entries := range [][]domain.Entry{p.Skills, p.Experiences, p.Educations, p.Activities} {
		b, err := marshalEntries(entries)
		if err != nil {
			return err
		}
		collections[i] = b
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}

	query := `
		INSERT INTO candidate_profiles (user_id, first_name, last_name, bio, phone, linkedin, github,
			profile_picture, skills, experiences, educations, activities, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			bio = EXCLUDED.bio,
			phone = EXCLUDED.phone,
			linkedin = EXCLUDED.linkedin,
			github = EXCLUDED.github,
			profile_picture = EXCLUDED.profile_picture,
			skills = EXCLUDED.skills,
			experiences = EXCLUDED.experiences,
			educations = EXCLUDED.educations,
			activities = EXCLUDED.activities,
			updated_at = EXCLUDED.updated_at`
	_, err := conn(ctx, r.db).Exec(ctx, query,
		p.UserID, p.FirstName, p.LastName, p.Bio, p.Phone, p.LinkedIn, p.GitHub, p.ProfilePicture,
		collections[0], collections[1], collections[2], collections[3], p.UpdatedAt,
	)
	return mapError(err)
}

func (r *profileRepo) getCandidate(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	query := `
		SELECT user_id, first_name, last_name, bio, phone, linkedin, github, profile_picture,
			skills, experiences, educations, activities, updated_at
		FROM candidate_profiles WHERE user_id = $1`

	var p domain.CandidateProfile
	var skills, experiences, educations, activities []byte
	err := conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FirstName, &p.LastName, &p.Bio, &p.Phone, &p.LinkedIn, &p.GitHub, &p.ProfilePicture,
		&skills, &experiences, &educations, &activities, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	for _, c := range []struct {
		raw []byte
		dst *[]domain.Entry
	}{
		{skills, &p.Skills},
		{experiences, &p.Experiences},
		{educations, &p.Educations},
		{activities, &p.Activities},
	} {
		if err := json.Unmarshal(c.raw, c.dst); err != nil {
			return nil, fmt.Errorf("profile repository: decode collection: %w", err)
		}
	}
	p.Normalize()
	return &p, nil
}

func (r *profileRepo) saveRecruiter(ctx context.Context, p *domain.RecruiterProfile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}

	query := `
		INSERT INTO recruiter_profiles (user_id, first_name, last_name, position, bio, phone, linkedin,
			work_email, profile_picture, company_name, company_website, industry, company_size,
			annual_revenue, company_description, company_location, founded_year, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			position = EXCLUDED.position,
			bio = EXCLUDED.bio,
			phone = EXCLUDED.phone,
			linkedin = EXCLUDED.linkedin,
			work_email = EXCLUDED.work_email,
			profile_picture = EXCLUDED.profile_picture,
			company_name = EXCLUDED.company_name,
			company_website = EXCLUDED.company_website,
			industry = EXCLUDED.industry,
			company_size = EXCLUDED.company_size,
			annual_revenue = EXCLUDED.annual_revenue,
			company_description = EXCLUDED.company_description,
			company_location = EXCLUDED.company_location,
			founded_year = EXCLUDED.founded_year,
			updated_at = EXCLUDED.updated_at`
	_, err := conn(ctx, r.db).Exec(ctx, query,
		p.UserID, p.FirstName, p.LastName, p.Position, p.Bio, p.Phone, p.LinkedIn,
		p.WorkEmail, p.ProfilePicture, p.CompanyName, p.CompanyWebsite, p.Industry, p.CompanySize,
		p.AnnualRevenue, p.CompanyDescription, p.CompanyLocation, p.FoundedYear, p.UpdatedAt,
	)
	return mapError(err)
}

func (r *profileRepo) getRecruiter(ctx context.Context, userID string) (*domain.RecruiterProfile, error) {
	query := `
		SELECT user_id, first_name, last_name, position, bio, phone, linkedin, work_email, profile_picture,
			company_name, company_website, industry, company_size, annual_revenue, company_description,
			company_location, founded_year, updated_at
		FROM recruiter_profiles WHERE user_id = $1`

	var p domain.RecruiterProfile
	err := conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FirstName, &p.LastName, &p.Position, &p.Bio, &p.Phone, &p.LinkedIn, &p.WorkEmail,
		&p.ProfilePicture, &p.CompanyName, &p.CompanyWebsite, &p.Industry, &p.CompanySize,
		&p.AnnualRevenue, &p.CompanyDescription, &p.CompanyLocation, &p.FoundedYear, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}
