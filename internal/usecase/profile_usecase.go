package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/textnorm"
	"go-jobboard-backend/pkg/validation"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	userRepo    domain.UserRepository
	pictures    domain.PictureProcessor
	now         func() time.Time
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, userRepo domain.UserRepository, opts ...Option) domain.ProfileUsecase {
	o := buildOptions(opts)
	pictures := o.pictures
	if pictures == nil {
		pictures = NewPictureProcessor(nil)
	}
	return &profileUsecase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		pictures:    pictures,
		now:         o.now,
	}
}

func (u *profileUsecase) user(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	return user, err
}

// Save overwrites the whole profile of userID with raw. The shape of raw is
// decided by the user's account type.
func (u *profileUsecase) Save(ctx context.Context, userID string, raw json.RawMessage) (domain.Profile, error) {
	user, err := u.user(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := domain.PolicyFor(user.AccountType).NewProfile()
	if profile == nil {
		return nil, apperror.Forbidden("This account cannot have a profile")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(profile); err != nil {
		return nil, apperror.BadRequest("Invalid profile payload")
	}
	profile.SetOwner(user.ID)
	if err := validation.Struct(profile); err != nil {
		return nil, validationError(err)
	}

	picture := profile.Picture()
	*picture, err = u.pictures.Process(ctx, user.ID, *picture)
	if err != nil {
		return nil, err
	}

	switch p := profile.(type) {
	case *domain.CandidateProfile:
		p.UpdatedAt = u.now()
		p.Normalize()
	case *domain.RecruiterProfile:
		p.UpdatedAt = u.now()
	}

	if err := u.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (u *profileUsecase) forUser(ctx context.Context, user *domain.User) (domain.Profile, error) {
	p, err := u.profileRepo.Get(ctx, user.ID, user.AccountType)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (u *profileUsecase) Get(ctx context.Context, userID string) (domain.Profile, error) {
	user, err := u.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.forUser(ctx, user)
}

// GetByEmail is the public lookup. An unknown email and a user without a
// profile both yield a nil profile.
func (u *profileUsecase) GetByEmail(ctx context.Context, email string) (domain.Profile, error) {
	user, err := u.userRepo.GetByEmail(ctx, textnorm.Email(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u.forUser(ctx, user)
}

func (u *profileUsecase) Delete(ctx context.Context, userID string) error {
	user, err := u.user(ctx, userID)
	if err != nil {
		return err
	}
	return u.profileRepo.Delete(ctx, user.ID)
}
