package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/password"
	"go-jobboard-backend/pkg/textnorm"
	"go-jobboard-backend/pkg/validation"

	"github.com/google/uuid"
)

type authUsecase struct {
	userRepo domain.UserRepository
	now      func() time.Time
}

func NewAuthUsecase(userRepo domain.UserRepository, opts ...Option) domain.AuthUsecase {
	o := buildOptions(opts)
	return &authUsecase{userRepo: userRepo, now: o.now}
}

type registerInput struct {
	Email       string `validate:"required,email,max=254"`
	Password    string `validate:"required,min=6,max=72"`
	AccountType string `validate:"required,account_type"`
}

func validationError(err error) error {
	return apperror.BadRequest("Validation failed").WithDetails(validation.FormatValidationErrors(err))
}

func (u *authUsecase) Register(ctx context.Context, email, plain, accountType string) (*domain.User, error) {
	in := registerInput{Email: textnorm.Email(email), Password: plain, AccountType: accountType}
	if err := validation.Struct(in); err != nil {
		return nil, validationError(err)
	}
	role, _ := domain.ParseRole(in.AccountType)

	// Pre-check for a readable error; the unique constraint is authoritative
	if _, err := u.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.DuplicateEmail("Email already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := password.Hash(in.Password)
	if errors.Is(err, password.ErrTooLong) {
		return nil, apperror.BadRequest("Password must be at most 72 bytes")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := u.now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		AccountType:  role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.DuplicateEmail("Email already registered")
		}
		return nil, err
	}
	return user, nil
}

// Authenticate returns the same InvalidCredentials error for an unknown email
// and for a wrong password.
func (u *authUsecase) Authenticate(ctx context.Context, email, plain string) (*domain.User, error) {
	email = textnorm.Email(email)
	if email == "" || plain == "" {
		return nil, apperror.BadRequest("Email and password are required")
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		password.VerifyDummy(plain)
		return nil, apperror.InvalidCredentials()
	}
	if err != nil {
		return nil, err
	}

	if !password.Verify(plain, user.PasswordHash) {
		return nil, apperror.InvalidCredentials()
	}
	return user, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := u.userRepo.GetByEmail(ctx, textnorm.Email(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
