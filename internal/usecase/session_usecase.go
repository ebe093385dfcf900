package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/sessiontoken"

	"github.com/google/uuid"
)

type sessionUsecase struct {
	store domain.SessionStore
	codec *sessiontoken.Codec
	ttl   time.Duration
	now   func() time.Time
}

func NewSessionUsecase(store domain.SessionStore, codec *sessiontoken.Codec, ttl time.Duration, opts ...Option) domain.SessionUsecase {
	o := buildOptions(opts)
	return &sessionUsecase{store: store, codec: codec, ttl: ttl, now: o.now}
}

func (u *sessionUsecase) TTL() time.Duration { return u.ttl }

func (u *sessionUsecase) Create(ctx context.Context, userID, previousToken string) (string, error) {
	if previousToken != "" {
		if err := u.Destroy(ctx, previousToken); err != nil {
			return "", err
		}
	}

	now := u.now()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(u.ttl),
	}
	if err := u.store.Save(ctx, sess); err != nil {
		return "", apperror.Unavailable(err)
	}

	token, err := u.codec.Sign(sess.ID, sess.ExpiresAt)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

func (u *sessionUsecase) Resolve(ctx context.Context, token string) (string, bool, error) {
	sid, err := u.codec.Parse(token)
	if err != nil {
		return "", false, nil
	}

	sess, err := u.store.Get(ctx, sid)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperror.Unavailable(err)
	}
	if !u.now().Before(sess.ExpiresAt) {
		return "", false, nil
	}
	return sess.UserID, true, nil
}

// Destroy is idempotent; unknown or malformed tokens are ignored.
func (u *sessionUsecase) Destroy(ctx context.Context, token string) error {
	sid, err := u.codec.Parse(token)
	if err != nil {
		return nil
	}
	if err := u.store.Delete(ctx, sid); err != nil {
		return apperror.Unavailable(err)
	}
	return nil
}
