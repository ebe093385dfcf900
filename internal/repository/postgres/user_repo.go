package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, password_hash, account_type, created_at, updated_at`

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, password_hash, account_type, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := conn(ctx, r.db).Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, string(user.AccountType), user.CreatedAt, user.UpdatedAt,
	)
	return mapError(err)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepo) getOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	var user domain.User
	var accountType string
	err := conn(ctx, r.db).QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &accountType, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	user.AccountType = domain.Role(accountType)
	return &user, nil
}
