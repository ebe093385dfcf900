package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

// RequireAuthenticated returns the user id bound to ctx by the session middleware.
func RequireAuthenticated(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || userID == "" {
		return "", apperror.Unauthorized("User not authenticated")
	}
	return userID, nil
}

// RequireRole fails with Forbidden unless user has the given role.
func RequireRole(user *domain.User, role domain.Role) error {
	if user == nil || user.AccountType != role {
		return apperror.Forbidden("This action requires a " + string(role) + " account")
	}
	return nil
}

// RequireOwnership fails with Forbidden unless userID owns the resource.
func RequireOwnership(ownerID, userID string) error {
	if ownerID == "" || ownerID != userID {
		return apperror.Forbidden("You do not have access to this resource")
	}
	return nil
}

// loadActor fetches the acting user. A session that points at a missing user
// is treated as no session.
func loadActor(ctx context.Context, users domain.UserRepository, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	user, err := users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
